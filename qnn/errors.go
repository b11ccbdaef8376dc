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

import "errors"

// Status sentinels. Every failing operator call returns exactly one of
// these, wrapped with the offending value; callers match with errors.Is.
var (
	// ErrUninitialized reports a call made before (or without) a valid
	// capability Params handle.
	ErrUninitialized = errors.New("qnnpack is not initialized")

	// ErrInvalidParameter reports a caller-supplied value that can never
	// be valid: a non-positive or non-finite scale, a zero batch size, a
	// mismatched buffer length.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUnsupportedParameter reports a value that is well-formed but
	// outside what the fixed-point micro-kernels can represent, such as a
	// requantization scale of 1.0 or more.
	ErrUnsupportedParameter = errors.New("unsupported parameter")

	// ErrOutOfMemory reports a packed buffer whose padded size is not
	// representable.
	ErrOutOfMemory = errors.New("out of memory")

	// ErrInvalidState reports an operation attempted in the wrong
	// lifecycle state, such as running an operator that was never set up.
	ErrInvalidState = errors.New("invalid state")
)
