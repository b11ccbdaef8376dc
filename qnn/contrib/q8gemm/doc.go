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

// Package q8gemm implements the packed-weight buffer and the portable q8
// GEMM micro-kernel for quantized 8-bit matrix multiplication.
//
// Weights are repacked once, at operator creation, from dense row-major
// form into per-output-channel tiles padded to the capability table's
// NR/KR tile sizes. Each tile holds KStride weight bytes followed by one
// little-endian int32 bias accumulator; padding bytes carry the kernel
// zero point so padded channels contribute zero to any accumulation.
//
// PackWeights folds the input zero point into the packed bias, so the
// micro-kernel only subtracts the kernel zero point in the inner loop:
//
//	acc = packedBias[j] + sum_k a[k] * (w[j][k] - kernelZeroPoint)
//
// which equals bias[j] + sum_k (a[k]-inputZP) * (w[j][k]-kernelZP).
package q8gemm
