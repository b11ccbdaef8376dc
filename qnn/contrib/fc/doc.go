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

// Package fc implements the quantized 8-bit fully-connected (linear)
// operator.
//
// An operator moves through three phases:
//
//	Create — once per layer at model-load time. Validates quantization
//	metadata, derives the requantization scale, and repacks the dense
//	weight matrix into the tiled layout the micro-kernel consumes. The
//	packed weights are immutable afterward.
//
//	Setup — once per batch (or per distinct shape/buffer pair). Rebinds
//	the operator to runtime input/output buffers without repacking.
//	Rebinding is idempotent and may be repeated any number of times.
//
//	Run — executes the bound batch, dispatching row strips across a
//	worker pool when one was supplied at Setup.
//
// A fully-connected layer is modeled as a 1x1 "image" whose height is the
// batch dimension, reusing the convolution-shaped descriptor fields: Setup
// stores an outer batch size of 1 and the real batch count in the height
// fields. The execution layout depends on this convention; it is preserved
// deliberately.
//
// Setup and Run on one operator must be serialized. To execute batches
// concurrently, create one operator per in-flight batch; packed weights are
// safe to share read-only.
//
//	params := qnn.Initialize()
//	op, err := fc.Create(params, fc.Config{...})
//	if err != nil { ... }
//	if err := op.Setup(params, batch, input, ic, output, oc, pool); err != nil { ... }
//	if err := op.Run(); err != nil { ... }
package fc
