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

package pointcodec

import (
	"fmt"

	"github.com/mensong/LASzip/entropy"
	"github.com/mensong/LASzip/item"
)

// encodeItem is the capability every schema slot's encode side exposes to
// the orchestrator, regardless of which item type backs it: seed from the
// slot's raw uncompressed bytes, then entropy-code each subsequent point's
// raw bytes against the shared encoder. It is the tagged-variant boundary
// that lets Writer iterate the schema as a plain slice of interfaces
// instead of switching on item.Type at every point.
type encodeItem interface {
	init(raw []byte)
	write(raw []byte) error
}

// decodeItem is the symmetric decode-side capability: init from raw bytes,
// then decode each subsequent point and fill its raw byte slot.
type decodeItem interface {
	init(raw []byte)
	read(raw []byte) error
}

type point10Encode struct{ w *item.Point10Writer }

func (this point10Encode) init(raw []byte) { this.w.Init(unmarshalPoint10(raw)) }
func (this point10Encode) write(raw []byte) error {
	return this.w.Write(unmarshalPoint10(raw))
}

type point10Decode struct{ r *item.Point10Reader }

func (this point10Decode) init(raw []byte) { this.r.Init(unmarshalPoint10(raw)) }
func (this point10Decode) read(raw []byte) error {
	p, err := this.r.Read()
	if err != nil {
		return err
	}
	marshalPoint10(p, raw)
	return nil
}

type gpsTime11Encode struct{ w *item.GpsTime11Writer }

func (this gpsTime11Encode) init(raw []byte) { this.w.Init(unmarshalGpsTime11(raw)) }
func (this gpsTime11Encode) write(raw []byte) error {
	return this.w.Write(unmarshalGpsTime11(raw))
}

type gpsTime11Decode struct{ r *item.GpsTime11Reader }

func (this gpsTime11Decode) init(raw []byte) { this.r.Init(unmarshalGpsTime11(raw)) }
func (this gpsTime11Decode) read(raw []byte) error {
	v, err := this.r.Read()
	if err != nil {
		return err
	}
	marshalGpsTime11(v, raw)
	return nil
}

type rgb12Encode struct{ w *item.Rgb12Writer }

func (this rgb12Encode) init(raw []byte) { this.w.Init(unmarshalRgb12(raw)) }
func (this rgb12Encode) write(raw []byte) error {
	return this.w.Write(unmarshalRgb12(raw))
}

type rgb12Decode struct{ r *item.Rgb12Reader }

func (this rgb12Decode) init(raw []byte) { this.r.Init(unmarshalRgb12(raw)) }
func (this rgb12Decode) read(raw []byte) error {
	c, err := this.r.Read()
	if err != nil {
		return err
	}
	marshalRgb12(c, raw)
	return nil
}

type wavePacket13Encode struct{ w *item.WavePacket13Writer }

func (this wavePacket13Encode) init(raw []byte) { this.w.Init(unmarshalWavePacket13(raw)) }
func (this wavePacket13Encode) write(raw []byte) error {
	return this.w.Write(unmarshalWavePacket13(raw))
}

type wavePacket13Decode struct{ r *item.WavePacket13Reader }

func (this wavePacket13Decode) init(raw []byte) { this.r.Init(unmarshalWavePacket13(raw)) }
func (this wavePacket13Decode) read(raw []byte) error {
	p, err := this.r.Read()
	if err != nil {
		return err
	}
	marshalWavePacket13(p, raw)
	return nil
}

// byteEncode and byteDecode pass their schema slot's raw bytes straight
// through to item.ByteWriter/Reader — BYTE has no typed intermediate
// representation, the raw record bytes are already what the predictor
// operates on.
type byteEncode struct{ w *item.ByteWriter }

func (this byteEncode) init(raw []byte)        { this.w.Init(raw) }
func (this byteEncode) write(raw []byte) error { return this.w.Write(raw) }

type byteDecode struct{ r *item.ByteReader }

func (this byteDecode) init(raw []byte) { this.r.Init(raw) }
func (this byteDecode) read(raw []byte) error {
	cur, err := this.r.Read()
	if err != nil {
		return err
	}
	copy(raw, cur)
	return nil
}

func newEncodeItem(enc *entropy.Encoder, spec item.Spec) (encodeItem, error) {
	switch spec.Type {
	case item.TypePoint10:
		w, err := item.NewPoint10Writer(enc)
		if err != nil {
			return nil, err
		}
		return point10Encode{w}, nil

	case item.TypeGpsTime11:
		w, err := item.NewGpsTime11Writer(enc)
		if err != nil {
			return nil, err
		}
		return gpsTime11Encode{w}, nil

	case item.TypeRgb12:
		w, err := item.NewRgb12Writer(enc)
		if err != nil {
			return nil, err
		}
		return rgb12Encode{w}, nil

	case item.TypeWavePacket13:
		w, err := item.NewWavePacket13Writer(enc)
		if err != nil {
			return nil, err
		}
		return wavePacket13Encode{w}, nil

	case item.TypeByte:
		w, err := item.NewByteWriter(enc, int(spec.Size))
		if err != nil {
			return nil, err
		}
		return byteEncode{w}, nil

	default:
		return nil, fmt.Errorf("pointcodec: unknown item type %v", spec.Type)
	}
}

func newDecodeItem(dec *entropy.Decoder, spec item.Spec) (decodeItem, error) {
	switch spec.Type {
	case item.TypePoint10:
		r, err := item.NewPoint10Reader(dec)
		if err != nil {
			return nil, err
		}
		return point10Decode{r}, nil

	case item.TypeGpsTime11:
		r, err := item.NewGpsTime11Reader(dec)
		if err != nil {
			return nil, err
		}
		return gpsTime11Decode{r}, nil

	case item.TypeRgb12:
		r, err := item.NewRgb12Reader(dec)
		if err != nil {
			return nil, err
		}
		return rgb12Decode{r}, nil

	case item.TypeWavePacket13:
		r, err := item.NewWavePacket13Reader(dec)
		if err != nil {
			return nil, err
		}
		return wavePacket13Decode{r}, nil

	case item.TypeByte:
		r, err := item.NewByteReader(dec, int(spec.Size))
		if err != nil {
			return nil, err
		}
		return byteDecode{r}, nil

	default:
		return nil, fmt.Errorf("pointcodec: unknown item type %v", spec.Type)
	}
}
