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

// Point10 is the uncompressed LAS point data record format 0, laid out
// the way LASzip's LASpoint10 struct packs it: x, y, z
// then intensity, a flags byte packing return_number (bits 0-2),
// number_of_returns_of_given_pulse (bits 3-5), scan_direction_flag (bit
// 6) and edge_of_flight_line (bit 7), then classification,
// scan_angle_rank, user_data and point_source_ID.
type Point10 struct {
	X, Y, Z       int32
	Intensity     uint16
	Flags         uint8
	Classification uint8
	ScanAngleRank  int8
	UserData       uint8
	PointSourceID  uint16
}

// ScanDirectionFlag extracts bit 6 of Flags, the field the predictor uses
// to key its per-direction history.
func (this Point10) ScanDirectionFlag() int {
	return int((this.Flags >> 6) & 1)
}

// point10State holds the fields shared by Point10Writer and
// Point10Reader: the per-direction median history and the previously
// coded point, both of which must evolve identically on both sides.
type point10State struct {
	last      Point10
	lastDir   int
	xDiff     [2][3]int32
	yDiff     [2][3]int32
	incr      [2]int
}

func (this *point10State) reset(first Point10) {
	*this = point10State{last: first}
}

func (this *point10State) medians() (int32, int32) {
	d := this.lastDir
	mx := median3(this.xDiff[d][0], this.xDiff[d][1], this.xDiff[d][2])
	my := median3(this.yDiff[d][0], this.yDiff[d][1], this.yDiff[d][2])
	return mx, my
}

// advance records xDiff/yDiff into the direction history if the scan
// direction did not change, otherwise switches to the new direction —
// mirroring the tail of LASwriteItemCompressed_POINT10_v1::write.
func (this *point10State) advance(p Point10, xDiff, yDiff int32) {
	dir := p.ScanDirectionFlag()

	if this.lastDir == dir {
		this.xDiff[dir][this.incr[dir]] = xDiff
		this.yDiff[dir][this.incr[dir]] = yDiff
		this.incr[dir]++

		if this.incr[dir] > 2 {
			this.incr[dir] = 0
		}
	} else {
		this.lastDir = dir
	}

	this.last = p
}

// scanAngleContext mirrors the write-side `k_bits < 3` boolean context.
func scanAngleContext(kBits int) uint32 {
	if kBits < 3 {
		return 1
	}
	return 0
}

// Point10Writer is the POINT10 encode side.
type Point10Writer struct {
	enc *entropy.Encoder

	icDX, icDY, icZ *integer.Compressor
	changedValues   *entropy.SymbolEncoderModel
	icIntensity     *integer.Compressor
	bitByte         *entropy.SymbolEncoderModel
	classification  *entropy.SymbolEncoderModel
	icScanAngleRank *integer.Compressor
	userData        *entropy.SymbolEncoderModel
	icPointSourceID *integer.Compressor

	state point10State
}

// NewPoint10Writer creates a POINT10 encoder writing through enc.
func NewPoint10Writer(enc *entropy.Encoder) (*Point10Writer, error) {
	w := &Point10Writer{enc: enc}

	var err error

	if w.icDX, err = integer.NewCompressor(enc, 32, 2, 8); err != nil {
		return nil, err
	}
	if w.icDY, err = integer.NewCompressor(enc, 32, 33, 8); err != nil {
		return nil, err
	}
	if w.icZ, err = integer.NewCompressor(enc, 32, 33, 8); err != nil {
		return nil, err
	}
	if w.changedValues, err = entropy.NewSymbolEncoderModel(64); err != nil {
		return nil, err
	}
	if w.icIntensity, err = integer.NewCompressor(enc, 16, 1, 8); err != nil {
		return nil, err
	}
	if w.bitByte, err = entropy.NewSymbolEncoderModel(256); err != nil {
		return nil, err
	}
	if w.classification, err = entropy.NewSymbolEncoderModel(256); err != nil {
		return nil, err
	}
	if w.icScanAngleRank, err = integer.NewCompressor(enc, 8, 2, 8); err != nil {
		return nil, err
	}
	if w.userData, err = entropy.NewSymbolEncoderModel(256); err != nil {
		return nil, err
	}
	if w.icPointSourceID, err = integer.NewCompressor(enc, 16, 1, 8); err != nil {
		return nil, err
	}

	return w, nil
}

// Init seeds the predictor with the uncompressed first point of a block.
func (this *Point10Writer) Init(first Point10) {
	this.state.reset(first)
}

// Write entropy-codes p as the difference from the previously written
// point.
func (this *Point10Writer) Write(p Point10) error {
	medianX, medianY := this.state.medians()
	last := this.state.last

	xDiff := p.X - last.X
	yDiff := p.Y - last.Y

	if err := this.icDX.Compress(medianX, xDiff, uint32(this.state.lastDir)); err != nil {
		return err
	}
	kBits := this.icDX.LastK()

	if err := this.icDY.Compress(medianY, yDiff, uint32(kBits)); err != nil {
		return err
	}
	kBits = (kBits + this.icDY.LastK()) / 2

	if err := this.icZ.Compress(last.Z, p.Z, uint32(kBits)); err != nil {
		return err
	}

	changed := 0
	if last.Intensity != p.Intensity {
		changed |= 1 << 5
	}
	if last.Flags != p.Flags {
		changed |= 1 << 4
	}
	if last.Classification != p.Classification {
		changed |= 1 << 3
	}
	if last.ScanAngleRank != p.ScanAngleRank {
		changed |= 1 << 2
	}
	if last.UserData != p.UserData {
		changed |= 1 << 1
	}
	if last.PointSourceID != p.PointSourceID {
		changed |= 1
	}

	if err := this.enc.EncodeSymbol(this.changedValues, changed); err != nil {
		return err
	}

	if changed&(1<<5) != 0 {
		if err := this.icIntensity.Compress(int32(last.Intensity), int32(p.Intensity), 0); err != nil {
			return err
		}
	}

	if changed&(1<<4) != 0 {
		if err := this.enc.EncodeSymbol(this.bitByte, int(p.Flags)); err != nil {
			return err
		}
	}

	if changed&(1<<3) != 0 {
		if err := this.enc.EncodeSymbol(this.classification, int(p.Classification)); err != nil {
			return err
		}
	}

	if changed&(1<<2) != 0 {
		ctx := scanAngleContext(kBits)
		if err := this.icScanAngleRank.Compress(int32(last.ScanAngleRank), int32(p.ScanAngleRank), ctx); err != nil {
			return err
		}
	}

	if changed&(1<<1) != 0 {
		if err := this.enc.EncodeSymbol(this.userData, int(p.UserData)); err != nil {
			return err
		}
	}

	if changed&1 != 0 {
		if err := this.icPointSourceID.Compress(int32(last.PointSourceID), int32(p.PointSourceID), 0); err != nil {
			return err
		}
	}

	this.state.advance(p, xDiff, yDiff)
	return nil
}

// Point10Reader is the POINT10 decode side, mirroring Point10Writer.
type Point10Reader struct {
	dec *entropy.Decoder

	icDX, icDY, icZ *integer.Decompressor
	changedValues   *entropy.SymbolDecoderModel
	icIntensity     *integer.Decompressor
	bitByte         *entropy.SymbolDecoderModel
	classification  *entropy.SymbolDecoderModel
	icScanAngleRank *integer.Decompressor
	userData        *entropy.SymbolDecoderModel
	icPointSourceID *integer.Decompressor

	state point10State
}

// NewPoint10Reader creates a POINT10 decoder reading through dec.
func NewPoint10Reader(dec *entropy.Decoder) (*Point10Reader, error) {
	r := &Point10Reader{dec: dec}

	var err error

	if r.icDX, err = integer.NewDecompressor(dec, 32, 2, 8); err != nil {
		return nil, err
	}
	if r.icDY, err = integer.NewDecompressor(dec, 32, 33, 8); err != nil {
		return nil, err
	}
	if r.icZ, err = integer.NewDecompressor(dec, 32, 33, 8); err != nil {
		return nil, err
	}
	if r.changedValues, err = entropy.NewSymbolDecoderModel(64); err != nil {
		return nil, err
	}
	if r.icIntensity, err = integer.NewDecompressor(dec, 16, 1, 8); err != nil {
		return nil, err
	}
	if r.bitByte, err = entropy.NewSymbolDecoderModel(256); err != nil {
		return nil, err
	}
	if r.classification, err = entropy.NewSymbolDecoderModel(256); err != nil {
		return nil, err
	}
	if r.icScanAngleRank, err = integer.NewDecompressor(dec, 8, 2, 8); err != nil {
		return nil, err
	}
	if r.userData, err = entropy.NewSymbolDecoderModel(256); err != nil {
		return nil, err
	}
	if r.icPointSourceID, err = integer.NewDecompressor(dec, 16, 1, 8); err != nil {
		return nil, err
	}

	return r, nil
}

// Init seeds the predictor with the uncompressed first point of a block.
func (this *Point10Reader) Init(first Point10) {
	this.state.reset(first)
}

// Read decodes the next point.
func (this *Point10Reader) Read() (Point10, error) {
	medianX, medianY := this.state.medians()
	last := this.state.last

	xDiff, err := this.icDX.Decompress(medianX, uint32(this.state.lastDir))
	if err != nil {
		return Point10{}, err
	}
	kBits := this.icDX.LastK()

	yDiff, err := this.icDY.Decompress(medianY, uint32(kBits))
	if err != nil {
		return Point10{}, err
	}
	kBits = (kBits + this.icDY.LastK()) / 2

	z, err := this.icZ.Decompress(last.Z, uint32(kBits))
	if err != nil {
		return Point10{}, err
	}

	changed, err := this.dec.DecodeSymbol(this.changedValues)
	if err != nil {
		return Point10{}, err
	}

	p := last
	p.X = last.X + xDiff
	p.Y = last.Y + yDiff
	p.Z = z

	if changed&(1<<5) != 0 {
		v, err := this.icIntensity.Decompress(int32(last.Intensity), 0)
		if err != nil {
			return Point10{}, err
		}
		p.Intensity = uint16(v)
	}

	if changed&(1<<4) != 0 {
		sym, err := this.dec.DecodeSymbol(this.bitByte)
		if err != nil {
			return Point10{}, err
		}
		p.Flags = uint8(sym)
	}

	if changed&(1<<3) != 0 {
		sym, err := this.dec.DecodeSymbol(this.classification)
		if err != nil {
			return Point10{}, err
		}
		p.Classification = uint8(sym)
	}

	if changed&(1<<2) != 0 {
		ctx := scanAngleContext(kBits)
		v, err := this.icScanAngleRank.Decompress(int32(last.ScanAngleRank), ctx)
		if err != nil {
			return Point10{}, err
		}
		p.ScanAngleRank = int8(v)
	}

	if changed&(1<<1) != 0 {
		sym, err := this.dec.DecodeSymbol(this.userData)
		if err != nil {
			return Point10{}, err
		}
		p.UserData = uint8(sym)
	}

	if changed&1 != 0 {
		v, err := this.icPointSourceID.Decompress(int32(last.PointSourceID), 0)
		if err != nil {
			return Point10{}, err
		}
		p.PointSourceID = uint16(v)
	}

	this.state.advance(p, xDiff, yDiff)
	return p, nil
}
