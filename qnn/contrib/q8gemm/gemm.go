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

import "github.com/ajroetker/go-qnnpack/qnn"

// GEMM computes one block of a quantized matrix multiply:
// output rows [0, mrBlock) by output channels [colStart, colStart+nrBlock).
//
// a is the first input row of the block; consecutive rows are aStride
// elements apart. c is the first output row of the block; consecutive rows
// are cStride elements apart. Output elements land at c[i*cStride + col],
// so a whole-matrix call and a per-tile dispatch write identical bytes.
//
// Accumulation runs over kc real input channels against the packed tile
// weights, subtracting the kernel zero point per weight; the input zero
// point is already folded into the packed bias. The accumulator is then
// requantized, clamped, and offset by the output zero point.
func GEMM(mrBlock, nrBlock, kc int, a []uint8, aStride, colStart int, w *PackedKernel, c []uint8, cStride int, qp *qnn.ConvQuantizationParams) {
	kzp := qp.KernelZeroPoint

	for i := range mrBlock {
		aRow := a[i*aStride : i*aStride+kc]
		cRow := c[i*cStride:]

		for j := range nrBlock {
			col := colStart + j
			weights := w.TileWeights(col)

			acc := w.Bias(col)
			for k, av := range aRow {
				acc += int32(av) * (int32(weights[k]) - kzp)
			}
			cRow[col] = qp.Requantize(acc)
		}
	}
}
