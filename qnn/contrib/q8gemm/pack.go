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

// PackWeights packs a dense row-major kernel and its per-output-channel
// bias into pk.
//
// kernel holds outputChannels x inputChannels uint8 weights in row-major
// order; bias holds outputChannels int32 values. Both must match pk's
// logical dimensions; callers validate lengths before packing.
//
// The stored bias is pre-folded with the input zero point so the inner
// loop never touches it:
//
//	packedBias[j] = bias[j] + ic*izp*kzp - izp * sum_k kernel[j][k]
//
// Padding regions keep their kernel-zero-point prefill; PackWeights only
// writes the logical [0,outputChannels) x [0,inputChannels) region and the
// real bias slots.
func PackWeights(pk *PackedKernel, kernel []uint8, bias []int32, inputZeroPoint, kernelZeroPoint uint8) {
	ic := pk.inputChannels
	izp := int32(inputZeroPoint)
	biasOffset := int32(ic) * izp * int32(kernelZeroPoint)

	for j := range pk.outputChannels {
		row := kernel[j*ic : (j+1)*ic]
		tile := pk.TileWeights(j)

		var ksum int32
		for k, kv := range row {
			tile[k] = kv
			ksum += int32(kv)
		}
		pk.SetBias(j, bias[j]+biasOffset-ksum*izp)
	}
}
