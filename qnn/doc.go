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

// Package qnn provides the shared substrate for quantized 8-bit neural
// network operators: the capability parameter table, the status error
// taxonomy, and fixed-point requantization parameter computation.
//
// # Capability Parameters
//
// Operators are shaped around micro-kernel tile sizes that depend on the
// host CPU. Initialize detects the host once and returns a process-wide
// *Params handle that callers pass into operator creation and setup:
//
//	params := qnn.Initialize()
//	op, err := fc.Create(params, cfg)
//
// Params is a plain struct so tests and special deployments can construct
// one with explicit tile sizes instead of using host detection.
//
// # Status Errors
//
// All operator entry points fail with exactly one of the sentinel errors in
// this package, wrapped with the offending value. Match with errors.Is:
//
//	if errors.Is(err, qnn.ErrInvalidParameter) { ... }
//
// # Requantization
//
// ComputeConvQuantizationParams converts a floating-point requantization
// scale plus zero points and clamp bounds into the Q31 fixed-point form the
// micro-kernels consume. The derivation operates directly on the IEEE-754
// bits of the scale, so results are exact and reproducible across hosts.
package qnn
