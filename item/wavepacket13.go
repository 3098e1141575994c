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
	"github.com/mensong/LASzip/entropy"
	"github.com/mensong/LASzip/integer"
)

// WavePacket13 is the uncompressed LAS wave packet descriptor field.
// ReturnPoint, X, Y and Z are carried as the raw IEEE-754
// bit pattern of the underlying float32 values (original_source's
// I32F32 union) — the predictor operates on those bits as plain int32s
// and never interprets them as floating point.
type WavePacket13 struct {
	PacketIndex             uint8
	Offset                  uint64
	PacketSize              uint32
	ReturnPoint, X, Y, Z int32
}

type wavepacket13State struct {
	last      WavePacket13 // PacketIndex unused here
	lastDiff  int32
}

func (this *wavepacket13State) reset(first WavePacket13) {
	this.last = first
	this.lastDiff = 0
}

// WavePacket13Writer is the WAVEPACKET13 encode side.
type WavePacket13Writer struct {
	enc *entropy.Encoder

	packetIndex    *entropy.SymbolEncoderModel
	smallOffsetDiff *entropy.BitModel
	icOffsetDiff   *integer.Compressor
	icPacketSize   *integer.Compressor
	icReturnPoint  *integer.Compressor
	icXYZ          *integer.Compressor

	state wavepacket13State
}

// NewWavePacket13Writer creates a WAVEPACKET13 encoder writing through
// enc.
func NewWavePacket13Writer(enc *entropy.Encoder) (*WavePacket13Writer, error) {
	w := &WavePacket13Writer{enc: enc, smallOffsetDiff: entropy.NewBitModel()}

	var err error

	if w.packetIndex, err = entropy.NewSymbolEncoderModel(256); err != nil {
		return nil, err
	}
	if w.icOffsetDiff, err = integer.NewCompressor(enc, 32, 1, 8); err != nil {
		return nil, err
	}
	if w.icPacketSize, err = integer.NewCompressor(enc, 32, 1, 8); err != nil {
		return nil, err
	}
	if w.icReturnPoint, err = integer.NewCompressor(enc, 32, 1, 8); err != nil {
		return nil, err
	}
	if w.icXYZ, err = integer.NewCompressor(enc, 32, 3, 8); err != nil {
		return nil, err
	}

	return w, nil
}

// Init seeds the predictor with the raw first wave packet of a block.
func (this *WavePacket13Writer) Init(first WavePacket13) {
	this.state.reset(first)
}

// Write entropy-codes p.
func (this *WavePacket13Writer) Write(p WavePacket13) error {
	if err := this.enc.EncodeSymbol(this.packetIndex, int(p.PacketIndex)); err != nil {
		return err
	}

	last := this.state.last

	diff64 := int64(p.Offset - last.Offset)
	diff32 := int32(diff64)

	if diff64 == int64(diff32) {
		if err := this.enc.EncodeBit(this.smallOffsetDiff, 1); err != nil {
			return err
		}

		if err := this.icOffsetDiff.Compress(this.state.lastDiff, diff32, 0); err != nil {
			return err
		}

		this.state.lastDiff = diff32
	} else {
		if err := this.enc.EncodeBit(this.smallOffsetDiff, 0); err != nil {
			return err
		}

		if err := this.enc.WriteInt64(int64(p.Offset)); err != nil {
			return err
		}
	}

	if err := this.icPacketSize.Compress(int32(last.PacketSize), int32(p.PacketSize), 0); err != nil {
		return err
	}
	if err := this.icReturnPoint.Compress(last.ReturnPoint, p.ReturnPoint, 0); err != nil {
		return err
	}
	if err := this.icXYZ.Compress(last.X, p.X, 0); err != nil {
		return err
	}
	if err := this.icXYZ.Compress(last.Y, p.Y, 1); err != nil {
		return err
	}
	if err := this.icXYZ.Compress(last.Z, p.Z, 2); err != nil {
		return err
	}

	this.state.last = p
	return nil
}

// WavePacket13Reader is the WAVEPACKET13 decode side, mirroring
// WavePacket13Writer.
type WavePacket13Reader struct {
	dec *entropy.Decoder

	packetIndex     *entropy.SymbolDecoderModel
	smallOffsetDiff *entropy.BitModel
	icOffsetDiff    *integer.Decompressor
	icPacketSize    *integer.Decompressor
	icReturnPoint   *integer.Decompressor
	icXYZ           *integer.Decompressor

	state wavepacket13State
}

// NewWavePacket13Reader creates a WAVEPACKET13 decoder reading through
// dec.
func NewWavePacket13Reader(dec *entropy.Decoder) (*WavePacket13Reader, error) {
	r := &WavePacket13Reader{dec: dec, smallOffsetDiff: entropy.NewBitModel()}

	var err error

	if r.packetIndex, err = entropy.NewSymbolDecoderModel(256); err != nil {
		return nil, err
	}
	if r.icOffsetDiff, err = integer.NewDecompressor(dec, 32, 1, 8); err != nil {
		return nil, err
	}
	if r.icPacketSize, err = integer.NewDecompressor(dec, 32, 1, 8); err != nil {
		return nil, err
	}
	if r.icReturnPoint, err = integer.NewDecompressor(dec, 32, 1, 8); err != nil {
		return nil, err
	}
	if r.icXYZ, err = integer.NewDecompressor(dec, 32, 3, 8); err != nil {
		return nil, err
	}

	return r, nil
}

// Init seeds the predictor with the raw first wave packet of a block.
func (this *WavePacket13Reader) Init(first WavePacket13) {
	this.state.reset(first)
}

// Read decodes the next wave packet.
func (this *WavePacket13Reader) Read() (WavePacket13, error) {
	last := this.state.last

	sym, err := this.dec.DecodeSymbol(this.packetIndex)
	if err != nil {
		return WavePacket13{}, err
	}

	var p WavePacket13
	p.PacketIndex = uint8(sym)

	bit, err := this.dec.DecodeBit(this.smallOffsetDiff)
	if err != nil {
		return WavePacket13{}, err
	}

	if bit == 1 {
		diff32, err := this.icOffsetDiff.Decompress(this.state.lastDiff, 0)
		if err != nil {
			return WavePacket13{}, err
		}

		this.state.lastDiff = diff32
		p.Offset = uint64(int64(last.Offset) + int64(diff32))
	} else {
		bits, err := this.dec.ReadInt64()
		if err != nil {
			return WavePacket13{}, err
		}

		p.Offset = uint64(bits)
	}

	packetSize, err := this.icPacketSize.Decompress(int32(last.PacketSize), 0)
	if err != nil {
		return WavePacket13{}, err
	}
	p.PacketSize = uint32(packetSize)

	if p.ReturnPoint, err = this.icReturnPoint.Decompress(last.ReturnPoint, 0); err != nil {
		return WavePacket13{}, err
	}
	if p.X, err = this.icXYZ.Decompress(last.X, 0); err != nil {
		return WavePacket13{}, err
	}
	if p.Y, err = this.icXYZ.Decompress(last.Y, 1); err != nil {
		return WavePacket13{}, err
	}
	if p.Z, err = this.icXYZ.Decompress(last.Z, 2); err != nil {
		return WavePacket13{}, err
	}

	this.state.last = p
	return p, nil
}
