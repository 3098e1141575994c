/*
Copyright 2011-2017 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package integer

import "github.com/mensong/LASzip/entropy"

// Decompressor is the decode side of the integer corrector coder,
// mirroring Compressor field for field so the two stay in lockstep: every
// model update on the encode side must be replayed identically here, in
// the same order, or the two sides diverge.
type Decompressor struct {
	dec *entropy.Decoder

	bitsHigh uint32
	params   corrParams

	kModels         []*entropy.SymbolDecoderModel
	zeroOneModel    *entropy.BitModel
	correctorModels []*entropy.SymbolDecoderModel

	lastK int
}

// NewDecompressor mirrors NewCompressor.
func NewDecompressor(dec *entropy.Decoder, bits uint32, contexts uint32, bitsHigh uint32) (*Decompressor, error) {
	return newDecompressor(dec, bits, 0, contexts, bitsHigh)
}

// NewDecompressorWithRange mirrors NewCompressorWithRange.
func NewDecompressorWithRange(dec *entropy.Decoder, rng uint32, contexts uint32, bitsHigh uint32) (*Decompressor, error) {
	return newDecompressor(dec, 0, rng, contexts, bitsHigh)
}

func newDecompressor(dec *entropy.Decoder, bits, rng, contexts, bitsHigh uint32) (*Decompressor, error) {
	params := computeCorrParams(bits, rng)

	d := &Decompressor{
		dec:      dec,
		bitsHigh: bitsHigh,
		params:   params,
	}

	d.kModels = make([]*entropy.SymbolDecoderModel, contexts)
	for i := range d.kModels {
		m, err := entropy.NewSymbolDecoderModel(int(params.corrBits) + 1)
		if err != nil {
			return nil, err
		}
		d.kModels[i] = m
	}

	d.zeroOneModel = entropy.NewBitModel()

	d.correctorModels = make([]*entropy.SymbolDecoderModel, params.corrBits+1)
	for k := uint32(1); k <= params.corrBits; k++ {
		m, err := entropy.NewSymbolDecoderModel(correctorAlphabet(k, bitsHigh))
		if err != nil {
			return nil, err
		}
		d.correctorModels[k] = m
	}

	return d, nil
}

// LastK returns the magnitude class decoded by the most recent Decompress
// call.
func (this *Decompressor) LastK() int {
	return this.lastK
}

// Decompress reconstructs the true value given pred and context, which
// must match the (pred, context) the encoder used to produce this byte
// of the stream. For a folded corrector (width below 32 bits) the result
// is returned folded into [0, corrRange), so a negative value comes back
// as its two's-complement pattern in that width.
func (this *Decompressor) Decompress(pred int32, context uint32) (int32, error) {
	corr, err := this.readCorrector(this.kModels[context])
	if err != nil {
		return 0, err
	}

	real := pred + corr

	if real < 0 {
		real += int32(this.params.corrRange)
	} else if uint32(real) >= this.params.corrRange {
		real -= int32(this.params.corrRange)
	}

	return real, nil
}

func (this *Decompressor) readCorrector(kModel *entropy.SymbolDecoderModel) (int32, error) {
	k, err := this.dec.DecodeSymbol(kModel)
	if err != nil {
		return 0, err
	}

	this.lastK = k

	if k == 0 {
		bit, err := this.dec.DecodeBit(this.zeroOneModel)
		if err != nil {
			return 0, err
		}

		return int32(bit), nil
	}

	kk := uint32(k)

	var c int32

	if kk <= this.bitsHigh {
		sym, err := this.dec.DecodeSymbol(this.correctorModels[kk])
		if err != nil {
			return 0, err
		}

		c = int32(sym)
	} else {
		k1 := kk - this.bitsHigh

		high, err := this.dec.DecodeSymbol(this.correctorModels[kk])
		if err != nil {
			return 0, err
		}

		low, err := this.dec.ReadBits(uint(k1))
		if err != nil {
			return 0, err
		}

		c = int32(uint32(high)<<k1 | low)
	}

	if c >= int32(1)<<(kk-1) {
		c++
	} else {
		c -= int32(1)<<kk - 1
	}

	return c, nil
}
