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
	"runtime"
	"sync"

	"golang.org/x/sys/cpu"
)

// Q8ConvParams describes the micro-kernel tile geometry for the q8 GEMM and
// convolution family.
//
//   - MR: row tile; the execution loop dispatches MR rows of the batch at a
//     time.
//   - NR: output-channel tile; packed weights are padded up to a multiple of
//     NR output channels.
//   - KR: input-channel tile; each packed tile is padded up to a multiple of
//     KR input channels.
type Q8ConvParams struct {
	MR uint32 `json:"mr"`
	NR uint32 `json:"nr"`
	KR uint32 `json:"kr"`
}

// Params is the capability parameter table. It is constructed once per
// process by Initialize and passed by handle into operator creation and
// setup; it is read-only after construction.
//
// Tests may construct Params directly with explicit tile sizes; set
// Initialized to true so operator entry points accept the handle.
type Params struct {
	Q8Conv Q8ConvParams `json:"q8conv"`

	// Level names the detected dispatch target ("avx2", "sse2", "neon",
	// "scalar"). Diagnostic only; tile sizes are what operators consume.
	Level string `json:"level"`

	Initialized bool `json:"initialized"`
}

var (
	initOnce     sync.Once
	sharedParams *Params
)

// Initialize detects the host CPU and returns the process-wide capability
// table. The first call performs detection; subsequent calls return the same
// handle. The returned Params must not be mutated.
func Initialize() *Params {
	initOnce.Do(func() {
		sharedParams = detectParams()
	})
	return sharedParams
}

// detectParams selects tile sizes for the host. The geometry mirrors the
// micro-kernels each target would use: 4x4 with paired k on SSE2/AVX2-class
// x86, 8x8 on NEON-class arm64, and a conservative 4x4 scalar fallback.
func detectParams() *Params {
	p := &Params{Initialized: true}

	switch runtime.GOARCH {
	case "amd64":
		switch {
		case cpu.X86.HasAVX2:
			p.Level = "avx2"
			p.Q8Conv = Q8ConvParams{MR: 4, NR: 8, KR: 2}
		default:
			// SSE2 is part of the amd64 baseline.
			p.Level = "sse2"
			p.Q8Conv = Q8ConvParams{MR: 4, NR: 4, KR: 2}
		}
	case "arm64":
		p.Level = "neon"
		if cpu.ARM64.HasASIMDDP {
			p.Level = "neon_dot"
		}
		p.Q8Conv = Q8ConvParams{MR: 8, NR: 8, KR: 1}
	default:
		p.Level = "scalar"
		p.Q8Conv = Q8ConvParams{MR: 4, NR: 4, KR: 1}
	}

	return p
}

// Valid reports whether p is a usable capability handle: non-nil,
// initialized, with nonzero tile sizes.
func (p *Params) Valid() bool {
	return p != nil && p.Initialized &&
		p.Q8Conv.MR != 0 && p.Q8Conv.NR != 0 && p.Q8Conv.KR != 0
}
