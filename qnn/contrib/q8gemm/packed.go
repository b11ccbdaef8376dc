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
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ajroetker/go-qnnpack/qnn"
)

// biasSize is the per-tile bias accumulator width in bytes.
const biasSize = 4

// PackedKernel owns the tiled, zero-padded weight matrix for one operator.
//
// The buffer is a sequence of NStride tiles, one per (padded) output
// channel. Tile i is KStride packed weight bytes followed by one
// little-endian int32 bias accumulator. KStride is the input channel count
// rounded up to KR; NStride is the output channel count rounded up to NR.
// The total size is exactly NStride * (KStride + 4) bytes.
//
// Padding — weight bytes beyond the input channel count, and whole tiles
// beyond the output channel count — is filled with the kernel zero point at
// construction, so a micro-kernel that reads the full padded extent
// accumulates exact zeros for channels that do not exist.
//
// The buffer is written by PackWeights during operator creation and is
// immutable afterward; it is safe to share read-only across concurrent
// executions.
type PackedKernel struct {
	inputChannels  int
	outputChannels int
	nr, kr         int
	nStride        int
	kStride        int
	data           []byte
}

// NewPackedKernel allocates a packed-weight buffer for the given logical
// dimensions and tile sizes, pre-filled with kernelZeroPoint. It fails with
// qnn.ErrOutOfMemory when the padded size is not representable and
// qnn.ErrInvalidParameter on negative dimensions or zero tile sizes.
func NewPackedKernel(inputChannels, outputChannels int, nr, kr uint32, kernelZeroPoint uint8) (*PackedKernel, error) {
	if inputChannels < 0 || outputChannels < 0 {
		return nil, fmt.Errorf("%w: channel counts %d x %d must be non-negative",
			qnn.ErrInvalidParameter, outputChannels, inputChannels)
	}
	if nr == 0 || kr == 0 {
		return nil, fmt.Errorf("%w: tile sizes nr=%d kr=%d must be nonzero",
			qnn.ErrInvalidParameter, nr, kr)
	}

	nStride, ok := roundUp(outputChannels, int(nr))
	if !ok {
		return nil, fmt.Errorf("%w: cannot pad %d output channels to a multiple of %d",
			qnn.ErrOutOfMemory, outputChannels, nr)
	}
	kStride, ok := roundUp(inputChannels, int(kr))
	if !ok {
		return nil, fmt.Errorf("%w: cannot pad %d input channels to a multiple of %d",
			qnn.ErrOutOfMemory, inputChannels, kr)
	}

	tileSize := kStride + biasSize
	if nStride != 0 && tileSize > math.MaxInt/nStride {
		return nil, fmt.Errorf("%w: cannot allocate %d x %d bytes for packed kernel data",
			qnn.ErrOutOfMemory, nStride, tileSize)
	}

	pk := &PackedKernel{
		inputChannels:  inputChannels,
		outputChannels: outputChannels,
		nr:             int(nr),
		kr:             int(kr),
		nStride:        nStride,
		kStride:        kStride,
		data:           make([]byte, nStride*tileSize),
	}

	// Establish the padding invariant before any packing writes real
	// values: every byte, bias slots included, starts at the kernel zero
	// point.
	for i := range pk.data {
		pk.data[i] = kernelZeroPoint
	}
	return pk, nil
}

// roundUp rounds n up to a multiple of m, reporting false on overflow.
func roundUp(n, m int) (int, bool) {
	if n > math.MaxInt-(m-1) {
		return 0, false
	}
	return (n + m - 1) / m * m, true
}

// InputChannels returns the logical (unpadded) input channel count.
func (pk *PackedKernel) InputChannels() int { return pk.inputChannels }

// OutputChannels returns the logical (unpadded) output channel count.
func (pk *PackedKernel) OutputChannels() int { return pk.outputChannels }

// NStride returns the output channel count padded up to the NR tile size.
func (pk *PackedKernel) NStride() int { return pk.nStride }

// KStride returns the input channel count padded up to the KR tile size.
func (pk *PackedKernel) KStride() int { return pk.kStride }

// NR returns the output-channel tile size the buffer was padded for.
func (pk *PackedKernel) NR() int { return pk.nr }

// KR returns the input-channel tile size the buffer was padded for.
func (pk *PackedKernel) KR() int { return pk.kr }

// Size returns the total buffer size in bytes: NStride * (KStride + 4).
func (pk *PackedKernel) Size() int { return len(pk.data) }

// Bytes exposes the raw packed buffer. The returned slice aliases the
// buffer; treat it as read-only once packing is complete.
func (pk *PackedKernel) Bytes() []byte { return pk.data }

// TileWeights returns the KStride weight bytes of tile i. The slice aliases
// the buffer with capacity clamped to the tile, so writes cannot spill into
// the adjacent bias slot.
func (pk *PackedKernel) TileWeights(i int) []byte {
	off := i * (pk.kStride + biasSize)
	return pk.data[off : off+pk.kStride : off+pk.kStride]
}

// Bias returns the bias accumulator of tile i.
func (pk *PackedKernel) Bias(i int) int32 {
	off := i*(pk.kStride+biasSize) + pk.kStride
	return int32(binary.LittleEndian.Uint32(pk.data[off : off+biasSize]))
}

// SetBias stores the bias accumulator of tile i.
func (pk *PackedKernel) SetBias(i int, v int32) {
	off := i*(pk.kStride+biasSize) + pk.kStride
	binary.LittleEndian.PutUint32(pk.data[off:off+biasSize], uint32(v))
}
