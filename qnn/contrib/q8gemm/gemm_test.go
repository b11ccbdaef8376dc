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

package q8gemm

import (
	"math/rand"
	"testing"

	"github.com/ajroetker/go-qnnpack/qnn"
)

// testRNGGemm returns a seeded random number generator for reproducible tests.
func testRNGGemm() *rand.Rand {
	return rand.New(rand.NewSource(99))
}

// referenceFullyConnected computes the quantized fully-connected output the
// slow way, straight from the definition:
//
//	out[m][j] = requantize(bias[j] + sum_k (a[m][k]-izp) * (w[j][k]-kzp))
func referenceFullyConnected(a, kernel []uint8, bias []int32, izp, kzp uint8, m, ic, oc int, qp *qnn.ConvQuantizationParams) []uint8 {
	out := make([]uint8, m*oc)
	for i := range m {
		for j := range oc {
			acc := bias[j]
			for k := range ic {
				acc += (int32(a[i*ic+k]) - int32(izp)) * (int32(kernel[j*ic+k]) - int32(kzp))
			}
			out[i*oc+j] = qp.Requantize(acc)
		}
	}
	return out
}

func TestGEMMMatchesReference(t *testing.T) {
	rng := testRNGGemm()

	testCases := []struct {
		name       string
		m, ic, oc  int
		nr, kr     uint32
	}{
		{"tile_aligned", 8, 16, 8, 8, 16},
		{"unaligned_channels", 5, 13, 7, 8, 4},
		{"single_row", 1, 32, 16, 4, 2},
		{"wide_output", 3, 8, 40, 8, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			const (
				izp = uint8(121)
				kzp = uint8(127)
			)

			kernel, bias := randomKernel(rng, tc.oc, tc.ic)
			a := make([]uint8, tc.m*tc.ic)
			for i := range a {
				a[i] = uint8(rng.Intn(256))
			}

			qp, err := qnn.ComputeConvQuantizationParams(izp, kzp, 0.0005, 128, 0, 255)
			if err != nil {
				t.Fatal(err)
			}

			pk, err := NewPackedKernel(tc.ic, tc.oc, tc.nr, tc.kr, kzp)
			if err != nil {
				t.Fatal(err)
			}
			PackWeights(pk, kernel, bias, izp, kzp)

			got := make([]uint8, tc.m*tc.oc)
			GEMM(tc.m, tc.oc, tc.ic, a, tc.ic, 0, pk, got, tc.oc, &qp)

			want := referenceFullyConnected(a, kernel, bias, izp, kzp, tc.m, tc.ic, tc.oc, &qp)
			for i := range got {
				if got[i] != want[i] {
					t.Fatalf("output[%d] = %d, want %d", i, got[i], want[i])
				}
			}
		})
	}
}

func TestGEMMTiledDispatchMatchesWholeMatrix(t *testing.T) {
	rng := testRNGGemm()
	const (
		m, ic, oc = 7, 19, 23
		izp       = uint8(10)
		kzp       = uint8(140)
	)

	kernel, bias := randomKernel(rng, oc, ic)
	a := make([]uint8, m*ic)
	for i := range a {
		a[i] = uint8(rng.Intn(256))
	}

	qp, err := qnn.ComputeConvQuantizationParams(izp, kzp, 0.001, 100, 5, 250)
	if err != nil {
		t.Fatal(err)
	}
	pk, err := NewPackedKernel(ic, oc, 8, 2, kzp)
	if err != nil {
		t.Fatal(err)
	}
	PackWeights(pk, kernel, bias, izp, kzp)

	whole := make([]uint8, m*oc)
	GEMM(m, oc, ic, a, ic, 0, pk, whole, oc, &qp)

	// Same computation dispatched as mr x nr blocks, the way the
	// execution loop does it.
	const mr, nr = 4, 8
	tiled := make([]uint8, m*oc)
	for rowStart := 0; rowStart < m; rowStart += mr {
		rows := min(mr, m-rowStart)
		for colStart := 0; colStart < oc; colStart += nr {
			cols := min(nr, oc-colStart)
			GEMM(rows, cols, ic, a[rowStart*ic:], ic, colStart, pk, tiled[rowStart*oc:], oc, &qp)
		}
	}

	for i := range whole {
		if whole[i] != tiled[i] {
			t.Fatalf("tiled dispatch diverges at %d: whole=%d tiled=%d", i, whole[i], tiled[i])
		}
	}
}

func TestGEMMZeroInputChannels(t *testing.T) {
	// Degenerate layer: accumulator is just the packed bias.
	qp, err := qnn.ComputeConvQuantizationParams(0, 0, 0.5, 128, 0, 255)
	if err != nil {
		t.Fatal(err)
	}
	pk, err := NewPackedKernel(0, 3, 4, 4, 0)
	if err != nil {
		t.Fatal(err)
	}
	PackWeights(pk, nil, []int32{-10, 0, 10}, 0, 0)

	got := make([]uint8, 3)
	GEMM(1, 3, 0, nil, 0, 0, pk, got, 3, &qp)

	want := []uint8{qp.Requantize(-10), qp.Requantize(0), qp.Requantize(10)}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("output[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
