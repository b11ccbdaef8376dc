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
	"github.com/ajroetker/go-qnnpack/qnn"
	"github.com/ajroetker/go-qnnpack/qnn/contrib/q8gemm"
	"github.com/ajroetker/go-qnnpack/qnn/contrib/workerpool"
)

// Format tags the operator's numeric representation.
type Format uint8

const (
	// FormatQuint8 is unsigned 8-bit quantization with asymmetric zero
	// points, the only format this operator supports.
	FormatQuint8 Format = iota
)

// Operator flags.
const (
	// flagGEMM marks an operator that executes as a single dense matrix
	// multiply rather than a sliding-window convolution.
	flagGEMM uint32 = 1 << 0
)

// Operator is a created fully-connected operator descriptor.
//
// Weight state (packed kernel, quantization parameters, channel counts) is
// written once by Create and immutable afterward. Binding state (batch
// shape, buffers, strides, executor) is written by each Setup call.
type Operator struct {
	groups              int
	groupInputChannels  int
	groupOutputChannels int

	inputZeroPoint  uint8
	kernelZeroPoint uint8

	packedKernel *q8gemm.PackedKernel
	quantization qnn.ConvQuantizationParams

	format Format
	flags  uint32

	// Tile geometry captured from the capability table at creation, so
	// execution does not need the Params handle.
	mr, nr int

	// Batch-dependent fields, set only by Setup. A fully-connected layer
	// is a 1x1 "image" whose height is the batch dimension: batchSize
	// stays 1 and the real batch count lives in the height fields.
	batchSize         int
	inputHeight       int
	inputWidth        int
	input             []uint8
	inputPixelStride  int
	outputHeight      int
	outputWidth       int
	output            []uint8
	outputPixelStride int

	pool  workerpool.Executor
	bound bool
}

// InputChannels returns the layer's logical input feature count.
func (op *Operator) InputChannels() int { return op.groupInputChannels }

// OutputChannels returns the layer's logical output feature count.
func (op *Operator) OutputChannels() int { return op.groupOutputChannels }

// PackedKernel returns the operator's packed weight buffer. It is immutable
// once creation succeeds; treat it as read-only.
func (op *Operator) PackedKernel() *q8gemm.PackedKernel { return op.packedKernel }

// Quantization returns the fixed-point requantization block the execution
// step applies.
func (op *Operator) Quantization() qnn.ConvQuantizationParams { return op.quantization }
