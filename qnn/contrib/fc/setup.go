// Copyright 2025 go-qnnpack Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fc

import (
	"fmt"

	"github.com/ajroetker/go-qnnpack/qnn"
	"github.com/ajroetker/go-qnnpack/qnn/contrib/workerpool"
)

// Setup binds the operator to one batch's runtime buffers without touching
// the packed weights.
//
// input holds batchSize rows of at least InputChannels elements each,
// consecutive rows inputStride elements apart; output likewise with
// OutputChannels and outputStride. pool is recorded for the subsequent Run
// and may be nil for inline execution; Setup itself does not use it.
//
// Setup performs no allocation and is idempotent: it may be called
// repeatedly on the same operator with different buffers and batch sizes,
// always rebinding rather than repacking. All validation happens before any
// field is written, so a failed Setup leaves a previous binding intact.
func (op *Operator) Setup(params *qnn.Params, batchSize int, input []uint8, inputStride int, output []uint8, outputStride int, pool workerpool.Executor) error {
	if !params.Valid() {
		return fmt.Errorf("setup fully connected operator: %w", qnn.ErrUninitialized)
	}

	if batchSize <= 0 {
		return fmt.Errorf("%w: batch size %d: batch size must be non-zero",
			qnn.ErrInvalidParameter, batchSize)
	}
	if inputStride < op.groupInputChannels {
		return fmt.Errorf("%w: input stride %d is less than %d input channels",
			qnn.ErrInvalidParameter, inputStride, op.groupInputChannels)
	}
	if outputStride < op.groupOutputChannels {
		return fmt.Errorf("%w: output stride %d is less than %d output channels",
			qnn.ErrInvalidParameter, outputStride, op.groupOutputChannels)
	}
	if want := (batchSize-1)*inputStride + op.groupInputChannels; len(input) < want {
		return fmt.Errorf("%w: input buffer has %d elements, batch of %d needs %d",
			qnn.ErrInvalidParameter, len(input), batchSize, want)
	}
	if want := (batchSize-1)*outputStride + op.groupOutputChannels; len(output) < want {
		return fmt.Errorf("%w: output buffer has %d elements, batch of %d needs %d",
			qnn.ErrInvalidParameter, len(output), batchSize, want)
	}

	// The whole request is one "image": the outer batch size stays 1 and
	// the real batch count becomes the image height. The execution layout
	// depends on this exact aliasing.
	op.batchSize = 1
	op.inputHeight = batchSize
	op.inputWidth = 1
	op.input = input
	op.inputPixelStride = inputStride

	op.outputHeight = batchSize
	op.outputWidth = 1
	op.output = output
	op.outputPixelStride = outputStride

	op.pool = pool
	op.bound = true
	return nil
}
