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
	"github.com/ajroetker/go-qnnpack/qnn/contrib/q8gemm"
)

// Run executes the batch bound by the last successful Setup.
//
// The batch is split into MR-row strips; each strip sweeps the output
// channels in NR-column tiles through the q8 GEMM micro-kernel. Strips are
// dispatched across the pool recorded at Setup, or run inline when the pool
// is nil or the batch yields a single strip.
//
// Run must not overlap a concurrent Setup or Run on the same operator.
func (op *Operator) Run() error {
	if !op.bound {
		return fmt.Errorf("run fully connected operator before setup: %w", qnn.ErrInvalidState)
	}

	batch := op.inputHeight // real batch count; see Setup
	ic := op.groupInputChannels
	oc := op.groupOutputChannels
	if batch == 0 || oc == 0 {
		return nil
	}

	strips := (batch + op.mr - 1) / op.mr
	strip := func(s int) {
		rowStart := s * op.mr
		rows := min(op.mr, batch-rowStart)
		a := op.input[rowStart*op.inputPixelStride:]
		c := op.output[rowStart*op.outputPixelStride:]

		for colStart := 0; colStart < oc; colStart += op.nr {
			cols := min(op.nr, oc-colStart)
			q8gemm.GEMM(rows, cols, ic,
				a, op.inputPixelStride, colStart,
				op.packedKernel,
				c, op.outputPixelStride,
				&op.quantization)
		}
	}

	if op.pool == nil || strips < 2 {
		for s := range strips {
			strip(s)
		}
		return nil
	}
	op.pool.Parallel(strips, strip)
	return nil
}
