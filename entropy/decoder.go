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

package entropy

import "github.com/mensong/LASzip/bytestream"

// Decoder is the arithmetic-coding read side, mirroring Encoder bit for
// bit: every model update on encode must be replayed in the same order
// here for the two sides to stay synchronized.
type Decoder struct {
	in bytestream.Reader

	code uint32
	rng  uint32
}

// NewDecoder creates a Decoder over in. It performs no I/O: the caller
// must call Start once the underlying Reader's cursor is positioned at
// the start of the arithmetic-coded region (i.e. after any raw,
// uncompressed data that precedes it in the stream) and before the
// first DecodeBit/DecodeSymbol/ReadBits call.
func NewDecoder(in bytestream.Reader) (*Decoder, error) {
	return &Decoder{in: in}, nil
}

// Start (re)primes the decoder's code register by reading 5 bytes from
// the current read position of in (the encoder's initial cache byte
// followed by 4 bytes of code). Every Encoder/Decoder pair must call
// Flush/Start exactly once per framed stream, in the same order the
// bytes were written, and Start must not run until any raw data that
// precedes the arithmetic-coded region has already been consumed.
func (this *Decoder) Start() error {
	this.rng = 0xFFFFFFFF
	this.code = 0

	for i := 0; i < 5; i++ {
		b, err := this.in.ReadByte()
		if err != nil {
			return err
		}

		this.code = (this.code << 8) | uint32(b)
	}

	return nil
}

func (this *Decoder) normalize() error {
	for this.rng < topValue {
		b, err := this.in.ReadByte()
		if err != nil {
			return err
		}

		this.code = (this.code << 8) | uint32(b)
		this.rng <<= 8
	}

	return nil
}

// DecodeBit decodes one bit under m, then updates m.
func (this *Decoder) DecodeBit(m *BitModel) (int, error) {
	bound := (this.rng >> probShift) * m.bit0Prob

	var bit int

	if this.code < bound {
		this.rng = bound
		bit = 0
	} else {
		this.code -= bound
		this.rng -= bound
		bit = 1
	}

	m.update(bit)

	if err := this.normalize(); err != nil {
		return 0, err
	}

	return bit, nil
}

// DecodeSymbol decodes one symbol under m, then updates m.
func (this *Decoder) DecodeSymbol(m *SymbolDecoderModel) (int, error) {
	m.ensureTable()
	core := m.core

	r := this.rng >> symbolFreqBits

	scaled := this.code / r
	if scaled >= symbolFreqMax {
		scaled = symbolFreqMax - 1
	}

	sym := core.find(scaled)

	this.code -= r * core.cumFreq[sym]
	this.rng = r * (core.cumFreq[sym+1] - core.cumFreq[sym])

	core.bump(sym)

	if err := this.normalize(); err != nil {
		return 0, err
	}

	return sym, nil
}

func (this *Decoder) decodeDirectBit() (uint32, error) {
	this.rng >>= 1

	var bit uint32

	if this.code >= this.rng {
		this.code -= this.rng
		bit = 1
	}

	if err := this.normalize(); err != nil {
		return 0, err
	}

	return bit, nil
}

// ReadBits decodes n (in [1, 32]) uniformly-distributed bits written by
// WriteBits, most-significant-bit first.
func (this *Decoder) ReadBits(n uint) (uint32, error) {
	if n == 0 || n > 32 {
		return 0, errInvalidBitCount
	}

	var v uint32

	for i := uint(0); i < n; i++ {
		bit, err := this.decodeDirectBit()
		if err != nil {
			return 0, err
		}

		v = (v << 1) | bit
	}

	return v, nil
}

// ReadInt32 decodes a value written by Encoder.WriteInt32.
func (this *Decoder) ReadInt32() (int32, error) {
	v, err := this.readRawBits(32)
	if err != nil {
		return 0, err
	}

	return int32(v), nil
}

// ReadInt64 decodes a value written by Encoder.WriteInt64.
func (this *Decoder) ReadInt64() (int64, error) {
	hi, err := this.readRawBits(32)
	if err != nil {
		return 0, err
	}

	lo, err := this.readRawBits(32)
	if err != nil {
		return 0, err
	}

	return int64(uint64(hi)<<32 | uint64(lo)), nil
}

func (this *Decoder) readRawBits(n uint) (uint32, error) {
	var v uint32

	for i := uint(0); i < n; i++ {
		bit, err := this.decodeDirectBit()
		if err != nil {
			return 0, err
		}

		v = (v << 1) | bit
	}

	return v, nil
}
