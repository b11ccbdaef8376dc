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

package qnn

import (
	"fmt"
	"math"
)

// ConvQuantizationParams is the fixed-point requantization block consumed by
// the q8 micro-kernels. It encodes the combined requantization scale as a
// Q31 multiplier plus arithmetic shift, together with the zero points and
// output clamp bounds.
//
// Fields are precomputed differences where the kernels want them that way:
// the clamp bounds are stored relative to the output zero point so clamping
// happens before the zero point is added back.
type ConvQuantizationParams struct {
	InputZeroPoint  int32
	KernelZeroPoint int32

	Multiplier         int32
	RemainderMask      int32
	RemainderThreshold int32
	Shift              uint32

	OutputMinLessZeroPoint int32
	OutputMaxLessZeroPoint int32
	OutputZeroPoint        int32
}

// ComputeConvQuantizationParams derives the fixed-point requantization block
// from a floating-point requantization scale, the input/kernel/output zero
// points, and the output clamp bounds.
//
// The multiplier and shift are taken directly from the IEEE-754 bits of the
// scale: the 24-bit significand (with the implicit leading one restored) is
// left-aligned into Q31, and the exponent becomes the arithmetic shift. The
// representable range is [0x1p-32, 1.0); scales outside it fail with
// ErrUnsupportedParameter.
func ComputeConvQuantizationParams(
	inputZeroPoint, kernelZeroPoint uint8,
	requantizationScale float32,
	outputZeroPoint, outputMin, outputMax uint8,
) (ConvQuantizationParams, error) {
	scaleBits := math.Float32bits(requantizationScale)

	// Multiplier is in [0x40000000, 0x7FFFFF80] range.
	multiplier := int32(((scaleBits & 0x007FFFFF) | 0x00800000) << 7)

	// Shift is in [0, 31] range for scales in [0x1p-32, 1.0).
	shift := 127 + 31 - 32 - int32(scaleBits>>23)
	if shift < 0 {
		return ConvQuantizationParams{}, fmt.Errorf(
			"%w: requantization scale %.7g is greater or equal to 1.0",
			ErrUnsupportedParameter, requantizationScale)
	}
	if shift >= 32 {
		return ConvQuantizationParams{}, fmt.Errorf(
			"%w: requantization scale %.7g is less than 2**-32",
			ErrUnsupportedParameter, requantizationScale)
	}

	remainderMask := int32(uint32(1)<<uint32(shift) - 1)

	return ConvQuantizationParams{
		InputZeroPoint:         int32(inputZeroPoint),
		KernelZeroPoint:        int32(kernelZeroPoint),
		Multiplier:             multiplier,
		RemainderMask:          remainderMask,
		RemainderThreshold:     remainderMask >> 1,
		Shift:                  uint32(shift),
		OutputMinLessZeroPoint: int32(outputMin) - int32(outputZeroPoint),
		OutputMaxLessZeroPoint: int32(outputMax) - int32(outputZeroPoint),
		OutputZeroPoint:        int32(outputZeroPoint),
	}, nil
}

// Requantize converts a 32-bit accumulator to the output's quantized uint8
// representation: Q31 multiply with round-to-nearest, arithmetic shift with
// exact remainder correction, clamp, and zero point restoration.
func (p *ConvQuantizationParams) Requantize(acc int32) uint8 {
	product := int64(acc) * int64(p.Multiplier)
	q31 := int32((product + (1 << 30)) >> 31)

	remainder := q31 & p.RemainderMask
	if q31 < 0 {
		remainder--
	}

	n := q31 >> p.Shift
	if remainder > p.RemainderThreshold {
		n++
	}

	if n < p.OutputMinLessZeroPoint {
		n = p.OutputMinLessZeroPoint
	}
	if n > p.OutputMaxLessZeroPoint {
		n = p.OutputMaxLessZeroPoint
	}
	return uint8(n + p.OutputZeroPoint)
}
