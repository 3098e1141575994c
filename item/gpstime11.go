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

package item

import (
	"math"

	"github.com/mensong/LASzip/entropy"
	"github.com/mensong/LASzip/integer"
)

// gpstimeMultiMax bounds the GPSTIME11 multiplier alphabet; the top
// three symbols are reserved for "unchanged", "huge jump, stored raw"
// and "extreme multiplier clamp" respectively.
const gpstimeMultiMax = 512

// GpsTime11 is the uncompressed LAS GPS time field: a single float64.
type GpsTime11 struct {
	Value float64
}

// gpstime11State is the two-state diff/multiplier machine shared by the
// writer and reader: once a non-zero integer difference
// between consecutive (bit-reinterpreted) gpstimes has been observed, the
// coder switches from predicting "no change" to predicting "the same
// difference again, scaled by an adaptively coded multiplier".
type gpstime11State struct {
	last         float64
	lastDiff     int32
	multiExtreme int
}

func (this *gpstime11State) reset(first GpsTime11) {
	*this = gpstime11State{last: first.Value}
}

// gpstimeBits reinterprets v's IEEE-754 bit pattern as a signed 64-bit
// integer — LASzip predicts gpstime as an integer difference of bit
// patterns, not a floating-point difference of values (original_source's
// I64F64 union), which is what makes the huge-jump fallback exactly
// representable and bit-for-bit deterministic.
func gpstimeBits(v float64) int64 {
	return int64(math.Float64bits(v))
}

func gpstimeFromBits(bits int64) float64 {
	return math.Float64frombits(uint64(bits))
}

// gpstimeMultiplier computes round(diff / lastDiff), clamped into
// [0, gpstimeMultiMax-3]. The +0.5f/truncate rounding and the float32
// precision are both load-bearing: this is the one place in the whole
// codec where floating point arithmetic appears, and it must be computed
// exactly this way on encode and decode to stay in lockstep.
func gpstimeMultiplier(diff, lastDiff int32) int32 {
	multi := int32(float32(diff)/float32(lastDiff) + 0.5)

	if multi >= gpstimeMultiMax-3 {
		return gpstimeMultiMax - 3
	} else if multi <= 0 {
		return 0
	}

	return multi
}

// GpsTime11Writer is the GPSTIME11 encode side.
type GpsTime11Writer struct {
	enc *entropy.Encoder

	mMulti  *entropy.SymbolEncoderModel
	m0diff  *entropy.SymbolEncoderModel
	icGpstime *integer.Compressor

	state gpstime11State
}

// NewGpsTime11Writer creates a GPSTIME11 encoder writing through enc.
func NewGpsTime11Writer(enc *entropy.Encoder) (*GpsTime11Writer, error) {
	w := &GpsTime11Writer{enc: enc}

	var err error

	if w.mMulti, err = entropy.NewSymbolEncoderModel(gpstimeMultiMax); err != nil {
		return nil, err
	}
	if w.m0diff, err = entropy.NewSymbolEncoderModel(3); err != nil {
		return nil, err
	}
	if w.icGpstime, err = integer.NewCompressor(enc, 32, 6, 8); err != nil {
		return nil, err
	}

	return w, nil
}

// Init seeds the predictor with the raw first gpstime of a block.
func (this *GpsTime11Writer) Init(first GpsTime11) {
	this.state.reset(first)
}

// Write entropy-codes v.
func (this *GpsTime11Writer) Write(v GpsTime11) error {
	thisBits := gpstimeBits(v.Value)
	lastBits := gpstimeBits(this.state.last)

	if this.state.lastDiff == 0 {
		return this.writeZeroState(v, thisBits, lastBits)
	}

	return this.writeMultiState(v, thisBits, lastBits)
}

func (this *GpsTime11Writer) writeZeroState(v GpsTime11, thisBits, lastBits int64) error {
	if thisBits == lastBits {
		return this.enc.EncodeSymbol(this.m0diff, 0)
	}

	diff64 := thisBits - lastBits
	diff32 := int32(diff64)

	if diff64 == int64(diff32) {
		if err := this.enc.EncodeSymbol(this.m0diff, 1); err != nil {
			return err
		}

		if err := this.icGpstime.Compress(0, diff32, 0); err != nil {
			return err
		}

		this.state.lastDiff = diff32
	} else {
		if err := this.enc.EncodeSymbol(this.m0diff, 2); err != nil {
			return err
		}

		if err := this.enc.WriteInt64(thisBits); err != nil {
			return err
		}
	}

	this.state.last = v.Value
	return nil
}

func (this *GpsTime11Writer) writeMultiState(v GpsTime11, thisBits, lastBits int64) error {
	if thisBits == lastBits {
		return this.enc.EncodeSymbol(this.mMulti, gpstimeMultiMax-1)
	}

	diff64 := thisBits - lastBits
	diff32 := int32(diff64)

	if diff64 != int64(diff32) {
		if err := this.enc.EncodeSymbol(this.mMulti, gpstimeMultiMax-2); err != nil {
			return err
		}

		if err := this.enc.WriteInt64(thisBits); err != nil {
			return err
		}

		this.state.last = v.Value
		return nil
	}

	multi := gpstimeMultiplier(diff32, this.state.lastDiff)

	if err := this.enc.EncodeSymbol(this.mMulti, int(multi)); err != nil {
		return err
	}

	switch {
	case multi == 1:
		if err := this.icGpstime.Compress(this.state.lastDiff, diff32, 1); err != nil {
			return err
		}

		this.state.lastDiff = diff32
		this.state.multiExtreme = 0

	case multi == 0:
		if err := this.icGpstime.Compress(this.state.lastDiff/4, diff32, 2); err != nil {
			return err
		}

		this.state.multiExtreme++

		if this.state.multiExtreme > 3 {
			this.state.lastDiff = diff32
			this.state.multiExtreme = 0
		}

	case multi < 10:
		if err := this.icGpstime.Compress(multi*this.state.lastDiff, diff32, 3); err != nil {
			return err
		}

	case multi < 50:
		if err := this.icGpstime.Compress(multi*this.state.lastDiff, diff32, 4); err != nil {
			return err
		}

	default:
		if err := this.icGpstime.Compress(multi*this.state.lastDiff, diff32, 5); err != nil {
			return err
		}

		if multi == gpstimeMultiMax-3 {
			this.state.multiExtreme++

			if this.state.multiExtreme > 3 {
				this.state.lastDiff = diff32
				this.state.multiExtreme = 0
			}
		}
	}

	this.state.last = v.Value
	return nil
}

// GpsTime11Reader is the GPSTIME11 decode side, mirroring GpsTime11Writer.
type GpsTime11Reader struct {
	dec *entropy.Decoder

	mMulti    *entropy.SymbolDecoderModel
	m0diff    *entropy.SymbolDecoderModel
	icGpstime *integer.Decompressor

	state gpstime11State
}

// NewGpsTime11Reader creates a GPSTIME11 decoder reading through dec.
func NewGpsTime11Reader(dec *entropy.Decoder) (*GpsTime11Reader, error) {
	r := &GpsTime11Reader{dec: dec}

	var err error

	if r.mMulti, err = entropy.NewSymbolDecoderModel(gpstimeMultiMax); err != nil {
		return nil, err
	}
	if r.m0diff, err = entropy.NewSymbolDecoderModel(3); err != nil {
		return nil, err
	}
	if r.icGpstime, err = integer.NewDecompressor(dec, 32, 6, 8); err != nil {
		return nil, err
	}

	return r, nil
}

// Init seeds the predictor with the raw first gpstime of a block.
func (this *GpsTime11Reader) Init(first GpsTime11) {
	this.state.reset(first)
}

// Read decodes the next gpstime.
func (this *GpsTime11Reader) Read() (GpsTime11, error) {
	if this.state.lastDiff == 0 {
		if err := this.readZeroState(); err != nil {
			return GpsTime11{}, err
		}
	} else {
		if err := this.readMultiState(); err != nil {
			return GpsTime11{}, err
		}
	}

	return GpsTime11{Value: this.state.last}, nil
}

func (this *GpsTime11Reader) readZeroState() error {
	sym, err := this.dec.DecodeSymbol(this.m0diff)
	if err != nil {
		return err
	}

	switch sym {
	case 0:
		// unchanged
	case 1:
		lastBits := gpstimeBits(this.state.last)

		diff32, err := this.icGpstime.Decompress(0, 0)
		if err != nil {
			return err
		}

		this.state.lastDiff = diff32
		this.state.last = gpstimeFromBits(lastBits + int64(diff32))
	default:
		bits, err := this.dec.ReadInt64()
		if err != nil {
			return err
		}

		this.state.last = gpstimeFromBits(bits)
	}

	return nil
}

func (this *GpsTime11Reader) readMultiState() error {
	sym, err := this.dec.DecodeSymbol(this.mMulti)
	if err != nil {
		return err
	}

	if sym == gpstimeMultiMax-1 {
		return nil
	}

	if sym == gpstimeMultiMax-2 {
		bits, err := this.dec.ReadInt64()
		if err != nil {
			return err
		}

		this.state.last = gpstimeFromBits(bits)
		return nil
	}

	lastBits := gpstimeBits(this.state.last)
	multi := int32(sym)

	var diff32 int32

	switch {
	case multi == 1:
		diff32, err = this.icGpstime.Decompress(this.state.lastDiff, 1)
		if err != nil {
			return err
		}

		this.state.lastDiff = diff32
		this.state.multiExtreme = 0

	case multi == 0:
		diff32, err = this.icGpstime.Decompress(this.state.lastDiff/4, 2)
		if err != nil {
			return err
		}

		this.state.multiExtreme++

		if this.state.multiExtreme > 3 {
			this.state.lastDiff = diff32
			this.state.multiExtreme = 0
		}

	case multi < 10:
		diff32, err = this.icGpstime.Decompress(multi*this.state.lastDiff, 3)
		if err != nil {
			return err
		}

	case multi < 50:
		diff32, err = this.icGpstime.Decompress(multi*this.state.lastDiff, 4)
		if err != nil {
			return err
		}

	default:
		diff32, err = this.icGpstime.Decompress(multi*this.state.lastDiff, 5)
		if err != nil {
			return err
		}

		if multi == gpstimeMultiMax-3 {
			this.state.multiExtreme++

			if this.state.multiExtreme > 3 {
				this.state.lastDiff = diff32
				this.state.multiExtreme = 0
			}
		}
	}

	this.state.last = gpstimeFromBits(lastBits + int64(diff32))
	return nil
}
