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
	"math"

	"github.com/ajroetker/go-qnnpack/qnn"
	"github.com/ajroetker/go-qnnpack/qnn/contrib/q8gemm"
)

// Config carries everything Create needs to build an operator.
type Config struct {
	InputChannels  int
	OutputChannels int

	// Input quantization: quantized byte b represents the real value
	// (b - InputZeroPoint) * InputScale. Kernel and output follow the
	// same convention with their own zero point and scale.
	InputZeroPoint  uint8
	InputScale      float32
	KernelZeroPoint uint8
	KernelScale     float32

	// Kernel is the dense weight matrix, OutputChannels x InputChannels
	// in row-major order. Bias is one int32 per output channel. Both are
	// read-only during Create and may be reused afterward by the caller;
	// the operator keeps only the packed copy.
	Kernel []uint8
	Bias   []int32

	OutputZeroPoint uint8
	OutputScale     float32

	// Clamp bounds applied to the quantized output post-requantization.
	OutputMin uint8
	OutputMax uint8
}

// Create builds a ready-to-bind fully-connected operator from a dense
// quantized weight matrix.
//
// Validation order is fixed: capability handle, then each scale
// independently (finite and positive), then the derived requantization
// scale (must be < 1.0 for the fixed-point requantizer), then buffer
// lengths, then packed-buffer sizing. The first violated precondition
// decides the returned sentinel; no partially-built operator ever escapes
// on failure.
func Create(params *qnn.Params, cfg Config) (*Operator, error) {
	if !params.Valid() {
		return nil, fmt.Errorf("create fully connected operator: %w", qnn.ErrUninitialized)
	}

	if err := validateScale("input", cfg.InputScale); err != nil {
		return nil, err
	}
	if err := validateScale("kernel", cfg.KernelScale); err != nil {
		return nil, err
	}
	if err := validateScale("output", cfg.OutputScale); err != nil {
		return nil, err
	}

	requantizationScale := cfg.InputScale * cfg.KernelScale / cfg.OutputScale
	if requantizationScale >= 1.0 {
		return nil, fmt.Errorf(
			"%w: %.7g input scale, %.7g kernel scale, and %.7g output scale: "+
				"requantization scale %.7g is greater or equal to 1.0",
			qnn.ErrUnsupportedParameter,
			cfg.InputScale, cfg.KernelScale, cfg.OutputScale, requantizationScale)
	}

	if cfg.InputChannels < 0 || cfg.OutputChannels < 0 {
		return nil, fmt.Errorf("%w: channel counts %d x %d must be non-negative",
			qnn.ErrInvalidParameter, cfg.OutputChannels, cfg.InputChannels)
	}
	if want := cfg.OutputChannels * cfg.InputChannels; len(cfg.Kernel) != want {
		return nil, fmt.Errorf("%w: kernel has %d bytes, want %d x %d = %d",
			qnn.ErrInvalidParameter, len(cfg.Kernel), cfg.OutputChannels, cfg.InputChannels, want)
	}
	if len(cfg.Bias) != cfg.OutputChannels {
		return nil, fmt.Errorf("%w: bias has %d values, want %d",
			qnn.ErrInvalidParameter, len(cfg.Bias), cfg.OutputChannels)
	}

	packed, err := q8gemm.NewPackedKernel(
		cfg.InputChannels, cfg.OutputChannels,
		params.Q8Conv.NR, params.Q8Conv.KR,
		cfg.KernelZeroPoint)
	if err != nil {
		return nil, err
	}
	q8gemm.PackWeights(packed, cfg.Kernel, cfg.Bias, cfg.InputZeroPoint, cfg.KernelZeroPoint)

	quantization, err := qnn.ComputeConvQuantizationParams(
		cfg.InputZeroPoint, cfg.KernelZeroPoint,
		requantizationScale,
		cfg.OutputZeroPoint, cfg.OutputMin, cfg.OutputMax)
	if err != nil {
		return nil, err
	}

	return &Operator{
		groups:              1,
		groupInputChannels:  cfg.InputChannels,
		groupOutputChannels: cfg.OutputChannels,
		inputZeroPoint:      cfg.InputZeroPoint,
		kernelZeroPoint:     cfg.KernelZeroPoint,
		packedKernel:        packed,
		quantization:        quantization,
		format:              FormatQuint8,
		flags:               flagGEMM,
		mr:                  int(params.Q8Conv.MR),
		nr:                  int(params.Q8Conv.NR),
	}, nil
}

// validateScale enforces the original contract: scales must be positive
// normal floats. Zero, negatives, subnormals, infinities, and NaN all fail.
func validateScale(name string, scale float32) error {
	exponent := math.Float32bits(scale) >> 23 & 0xff
	if !(scale > 0) || exponent == 0 || exponent == 0xff {
		return fmt.Errorf("%w: %.7g %s scale: scale must be finite and positive",
			qnn.ErrInvalidParameter, scale, name)
	}
	return nil
}
