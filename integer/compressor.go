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

// Compressor is the encode side of the integer corrector coder. One
// Compressor instance is shared by every call site that
// predicts values of the same kind but needs independent per-context
// statistics — item codecs index into it by context (e.g. POINT10's
// scan-direction-keyed x/y compressors).
type Compressor struct {
	enc *entropy.Encoder

	bitsHigh uint32
	params   corrParams

	kModels         []*entropy.SymbolEncoderModel
	zeroOneModel    *entropy.BitModel
	correctorModels []*entropy.SymbolEncoderModel // index 1..corrBits; 0 unused

	lastK int
}

// NewCompressor creates a Compressor whose corrector spans a fixed width
// of bits (bits in [1, 32); 0 or 32 both mean "full 32-bit range, never
// folded"). contexts is the number of independent k-magnitude statistics
// to keep (one per prediction context); bitsHigh bounds how many high
// bits of a large corrector are coded adaptively before the rest is
// written raw.
func NewCompressor(enc *entropy.Encoder, bits uint32, contexts uint32, bitsHigh uint32) (*Compressor, error) {
	return newCompressor(enc, bits, 0, contexts, bitsHigh)
}

// NewCompressorWithRange creates a Compressor whose corrector interval is
// derived from an explicit value range rng rather than a fixed bit width
// — used where the predicted quantity's range is known exactly rather
// than bounded by a power of two (original_source's "range" setup path).
func NewCompressorWithRange(enc *entropy.Encoder, rng uint32, contexts uint32, bitsHigh uint32) (*Compressor, error) {
	return newCompressor(enc, 0, rng, contexts, bitsHigh)
}

func newCompressor(enc *entropy.Encoder, bits, rng, contexts, bitsHigh uint32) (*Compressor, error) {
	params := computeCorrParams(bits, rng)

	c := &Compressor{
		enc:      enc,
		bitsHigh: bitsHigh,
		params:   params,
	}

	c.kModels = make([]*entropy.SymbolEncoderModel, contexts)
	for i := range c.kModels {
		m, err := entropy.NewSymbolEncoderModel(int(params.corrBits) + 1)
		if err != nil {
			return nil, err
		}
		c.kModels[i] = m
	}

	c.zeroOneModel = entropy.NewBitModel()

	c.correctorModels = make([]*entropy.SymbolEncoderModel, params.corrBits+1)
	for k := uint32(1); k <= params.corrBits; k++ {
		m, err := entropy.NewSymbolEncoderModel(correctorAlphabet(k, bitsHigh))
		if err != nil {
			return nil, err
		}
		c.correctorModels[k] = m
	}

	return c, nil
}

// LastK returns the magnitude class k computed by the most recent
// Compress call, which some item codecs consult to pick the context for
// a dependent field (e.g. POINT10 chaining dy's context off dx's k).
func (this *Compressor) LastK() int {
	return this.lastK
}

// Compress entropy-codes real's deviation from pred under context (which
// must be < the contexts given to NewCompressor).
func (this *Compressor) Compress(pred int32, real int32, context uint32) error {
	corr := real - pred

	if corr < this.params.corrMin {
		corr += int32(this.params.corrRange)
	} else if corr > this.params.corrMax {
		corr -= int32(this.params.corrRange)
	}

	return this.writeCorrector(corr, this.kModels[context])
}

// writeCorrector finds the tightest interval [-(2^k-1) .. 2^k] containing
// corr, codes k under kModel, then codes corr's exact position within
// that interval.
func (this *Compressor) writeCorrector(corr int32, kModel *entropy.SymbolEncoderModel) error {
	var c1 uint32
	if corr <= 0 {
		c1 = uint32(-corr)
	} else {
		c1 = uint32(corr - 1)
	}

	k := uint32(0)
	for c1 != 0 {
		c1 >>= 1
		k++
	}

	this.lastK = int(k)

	if err := this.enc.EncodeSymbol(kModel, int(k)); err != nil {
		return err
	}

	if k == 0 {
		bit := 0
		if corr != 0 {
			bit = 1
		}

		return this.enc.EncodeBit(this.zeroOneModel, bit)
	}

	var c int32
	if corr < 0 {
		c = corr + (int32(1)<<k - 1)
	} else {
		c = corr - 1
	}

	if k <= this.bitsHigh {
		return this.enc.EncodeSymbol(this.correctorModels[k], int(c))
	}

	k1 := k - this.bitsHigh
	low := uint32(c) & (uint32(1)<<k1 - 1)
	high := uint32(c) >> k1

	if err := this.enc.EncodeSymbol(this.correctorModels[k], int(high)); err != nil {
		return err
	}

	return this.enc.WriteBits(uint(k1), low)
}
