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

// Rgb12 is the uncompressed LAS RGB color field: three 16-bit channels,
// each effectively two independent bytes once split by
// the predictor below.
type Rgb12 struct {
	R, G, B uint16
}

func rgbChangedMask(last, cur Rgb12) int {
	sym := 0

	if last.R&0xFF != cur.R&0xFF {
		sym |= 1 << 0
	}
	if last.R>>8 != cur.R>>8 {
		sym |= 1 << 1
	}
	if last.G&0xFF != cur.G&0xFF {
		sym |= 1 << 2
	}
	if last.G>>8 != cur.G>>8 {
		sym |= 1 << 3
	}
	if last.B&0xFF != cur.B&0xFF {
		sym |= 1 << 4
	}
	if last.B>>8 != cur.B>>8 {
		sym |= 1 << 5
	}

	return sym
}

// Rgb12Writer is the RGB12 encode side.
type Rgb12Writer struct {
	enc *entropy.Encoder

	byteUsed *entropy.SymbolEncoderModel
	icRgb    *integer.Compressor

	last Rgb12
}

// NewRgb12Writer creates an RGB12 encoder writing through enc.
func NewRgb12Writer(enc *entropy.Encoder) (*Rgb12Writer, error) {
	w := &Rgb12Writer{enc: enc}

	var err error

	if w.byteUsed, err = entropy.NewSymbolEncoderModel(64); err != nil {
		return nil, err
	}
	if w.icRgb, err = integer.NewCompressor(enc, 8, 6, 8); err != nil {
		return nil, err
	}

	return w, nil
}

// Init seeds the predictor with the raw first color of a block.
func (this *Rgb12Writer) Init(first Rgb12) {
	this.last = first
}

// Write entropy-codes cur as a per-byte difference from the previously
// written color.
func (this *Rgb12Writer) Write(cur Rgb12) error {
	last := this.last
	sym := rgbChangedMask(last, cur)

	if err := this.enc.EncodeSymbol(this.byteUsed, sym); err != nil {
		return err
	}

	if sym&(1<<0) != 0 {
		if err := this.icRgb.Compress(int32(last.R&0xFF), int32(cur.R&0xFF), 0); err != nil {
			return err
		}
	}
	if sym&(1<<1) != 0 {
		if err := this.icRgb.Compress(int32(last.R>>8), int32(cur.R>>8), 1); err != nil {
			return err
		}
	}
	if sym&(1<<2) != 0 {
		if err := this.icRgb.Compress(int32(last.G&0xFF), int32(cur.G&0xFF), 2); err != nil {
			return err
		}
	}
	if sym&(1<<3) != 0 {
		if err := this.icRgb.Compress(int32(last.G>>8), int32(cur.G>>8), 3); err != nil {
			return err
		}
	}
	if sym&(1<<4) != 0 {
		if err := this.icRgb.Compress(int32(last.B&0xFF), int32(cur.B&0xFF), 4); err != nil {
			return err
		}
	}
	if sym&(1<<5) != 0 {
		if err := this.icRgb.Compress(int32(last.B>>8), int32(cur.B>>8), 5); err != nil {
			return err
		}
	}

	this.last = cur
	return nil
}

// Rgb12Reader is the RGB12 decode side, mirroring Rgb12Writer.
type Rgb12Reader struct {
	dec *entropy.Decoder

	byteUsed *entropy.SymbolDecoderModel
	icRgb    *integer.Decompressor

	last Rgb12
}

// NewRgb12Reader creates an RGB12 decoder reading through dec.
func NewRgb12Reader(dec *entropy.Decoder) (*Rgb12Reader, error) {
	r := &Rgb12Reader{dec: dec}

	var err error

	if r.byteUsed, err = entropy.NewSymbolDecoderModel(64); err != nil {
		return nil, err
	}
	if r.icRgb, err = integer.NewDecompressor(dec, 8, 6, 8); err != nil {
		return nil, err
	}

	return r, nil
}

// Init seeds the predictor with the raw first color of a block.
func (this *Rgb12Reader) Init(first Rgb12) {
	this.last = first
}

// Read decodes the next color.
func (this *Rgb12Reader) Read() (Rgb12, error) {
	last := this.last

	sym, err := this.dec.DecodeSymbol(this.byteUsed)
	if err != nil {
		return Rgb12{}, err
	}

	cur := last

	if sym&(1<<0) != 0 {
		v, err := this.icRgb.Decompress(int32(last.R&0xFF), 0)
		if err != nil {
			return Rgb12{}, err
		}
		cur.R = (cur.R &^ 0xFF) | uint16(v&0xFF)
	}
	if sym&(1<<1) != 0 {
		v, err := this.icRgb.Decompress(int32(last.R>>8), 1)
		if err != nil {
			return Rgb12{}, err
		}
		cur.R = (cur.R & 0xFF) | (uint16(v&0xFF) << 8)
	}
	if sym&(1<<2) != 0 {
		v, err := this.icRgb.Decompress(int32(last.G&0xFF), 2)
		if err != nil {
			return Rgb12{}, err
		}
		cur.G = (cur.G &^ 0xFF) | uint16(v&0xFF)
	}
	if sym&(1<<3) != 0 {
		v, err := this.icRgb.Decompress(int32(last.G>>8), 3)
		if err != nil {
			return Rgb12{}, err
		}
		cur.G = (cur.G & 0xFF) | (uint16(v&0xFF) << 8)
	}
	if sym&(1<<4) != 0 {
		v, err := this.icRgb.Decompress(int32(last.B&0xFF), 4)
		if err != nil {
			return Rgb12{}, err
		}
		cur.B = (cur.B &^ 0xFF) | uint16(v&0xFF)
	}
	if sym&(1<<5) != 0 {
		v, err := this.icRgb.Decompress(int32(last.B>>8), 5)
		if err != nil {
			return Rgb12{}, err
		}
		cur.B = (cur.B & 0xFF) | (uint16(v&0xFF) << 8)
	}

	this.last = cur
	return cur, nil
}
