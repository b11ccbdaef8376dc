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
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ajroetker/go-qnnpack/qnn"
)

// createTestOperator builds a 16-in, 8-out operator with the fixed test
// tile geometry.
func createTestOperator(t *testing.T) *Operator {
	t.Helper()
	op, err := Create(testParams(), testConfig(testRNGFC(), 16, 8))
	if err != nil {
		t.Fatal(err)
	}
	return op
}

func TestSetupBatchShapeAliasing(t *testing.T) {
	op := createTestOperator(t)
	input := make([]uint8, 4*16)
	output := make([]uint8, 4*8)

	if err := op.Setup(testParams(), 4, input, 16, output, 8, nil); err != nil {
		t.Fatal(err)
	}

	// The whole request is modeled as one 4x1 "image": outer batch size
	// stays 1, the real batch count lands in the height fields.
	if op.batchSize != 1 {
		t.Errorf("batchSize = %d, want 1", op.batchSize)
	}
	if op.inputHeight != 4 || op.outputHeight != 4 {
		t.Errorf("heights = %d/%d, want 4/4", op.inputHeight, op.outputHeight)
	}
	if op.inputWidth != 1 || op.outputWidth != 1 {
		t.Errorf("widths = %d/%d, want 1/1", op.inputWidth, op.outputWidth)
	}
	if op.inputPixelStride != 16 || op.outputPixelStride != 8 {
		t.Errorf("strides = %d/%d, want 16/8", op.inputPixelStride, op.outputPixelStride)
	}
	if !op.bound {
		t.Error("operator not marked bound")
	}
}

func TestSetupUninitialized(t *testing.T) {
	op := createTestOperator(t)
	input := make([]uint8, 16)
	output := make([]uint8, 8)

	for _, params := range []*qnn.Params{nil, {}} {
		err := op.Setup(params, 1, input, 16, output, 8, nil)
		if !errors.Is(err, qnn.ErrUninitialized) {
			t.Errorf("params %+v: err = %v, want ErrUninitialized", params, err)
		}
	}
	if op.bound {
		t.Error("failed setup marked the operator bound")
	}
}

func TestSetupZeroBatchDoesNotMutate(t *testing.T) {
	op := createTestOperator(t)
	input := make([]uint8, 2*16)
	output := make([]uint8, 2*8)

	if err := op.Setup(testParams(), 2, input, 16, output, 8, nil); err != nil {
		t.Fatal(err)
	}

	err := op.Setup(testParams(), 0, make([]uint8, 16), 16, make([]uint8, 8), 8, nil)
	if !errors.Is(err, qnn.ErrInvalidParameter) {
		t.Fatalf("err = %v, want ErrInvalidParameter", err)
	}

	// Previous binding intact.
	if op.inputHeight != 2 || op.outputHeight != 2 {
		t.Errorf("heights = %d/%d, want previous 2/2", op.inputHeight, op.outputHeight)
	}
	if &op.input[0] != &input[0] || &op.output[0] != &output[0] {
		t.Error("failed setup rebound the buffers")
	}
}

func TestSetupValidatesBuffers(t *testing.T) {
	op := createTestOperator(t)

	testCases := []struct {
		name           string
		batch          int
		inLen, inStr   int
		outLen, outStr int
	}{
		{"input_stride_below_channels", 1, 16, 15, 8, 8},
		{"output_stride_below_channels", 1, 16, 16, 8, 7},
		{"input_too_short", 3, 3*16 - 1, 16, 3 * 8, 8},
		{"output_too_short", 3, 3 * 16, 16, 3*8 - 1, 8},
		{"negative_batch", -1, 16, 16, 8, 8},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := op.Setup(testParams(), tc.batch,
				make([]uint8, tc.inLen), tc.inStr,
				make([]uint8, tc.outLen), tc.outStr, nil)
			if !errors.Is(err, qnn.ErrInvalidParameter) {
				t.Errorf("err = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestSetupRebindLeavesPackedKernelUntouched(t *testing.T) {
	op := createTestOperator(t)

	before := append([]byte(nil), op.PackedKernel().Bytes()...)

	if err := op.Setup(testParams(), 2, make([]uint8, 2*16), 16, make([]uint8, 2*8), 8, nil); err != nil {
		t.Fatal(err)
	}
	if err := op.Setup(testParams(), 7, make([]uint8, 7*20), 20, make([]uint8, 7*10), 10, nil); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(before, op.PackedKernel().Bytes()); diff != "" {
		t.Errorf("packed kernel changed across rebinds (-before +after):\n%s", diff)
	}
	if op.inputHeight != 7 || op.inputPixelStride != 20 || op.outputPixelStride != 10 {
		t.Errorf("rebind did not update binding fields: height %d, strides %d/%d",
			op.inputHeight, op.inputPixelStride, op.outputPixelStride)
	}
}
