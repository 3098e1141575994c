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
	"encoding/binary"
	"math"

	"github.com/mensong/LASzip/item"
)

// The raw (uncompressed) wire layout of each fixed-size item mirrors the
// LAS point data record byte order, little-endian throughout — this is
// what gets written verbatim for the first point of a block and what
// Init() seeds every item predictor from.

func marshalPoint10(p item.Point10, raw []byte) {
	binary.LittleEndian.PutUint32(raw[0:4], uint32(p.X))
	binary.LittleEndian.PutUint32(raw[4:8], uint32(p.Y))
	binary.LittleEndian.PutUint32(raw[8:12], uint32(p.Z))
	binary.LittleEndian.PutUint16(raw[12:14], p.Intensity)
	raw[14] = p.Flags
	raw[15] = p.Classification
	raw[16] = byte(p.ScanAngleRank)
	raw[17] = p.UserData
	binary.LittleEndian.PutUint16(raw[18:20], p.PointSourceID)
}

func unmarshalPoint10(raw []byte) item.Point10 {
	return item.Point10{
		X:              int32(binary.LittleEndian.Uint32(raw[0:4])),
		Y:              int32(binary.LittleEndian.Uint32(raw[4:8])),
		Z:              int32(binary.LittleEndian.Uint32(raw[8:12])),
		Intensity:      binary.LittleEndian.Uint16(raw[12:14]),
		Flags:          raw[14],
		Classification: raw[15],
		ScanAngleRank:  int8(raw[16]),
		UserData:       raw[17],
		PointSourceID:  binary.LittleEndian.Uint16(raw[18:20]),
	}
}

func marshalGpsTime11(v item.GpsTime11, raw []byte) {
	binary.LittleEndian.PutUint64(raw[0:8], math.Float64bits(v.Value))
}

func unmarshalGpsTime11(raw []byte) item.GpsTime11 {
	return item.GpsTime11{Value: math.Float64frombits(binary.LittleEndian.Uint64(raw[0:8]))}
}

func marshalRgb12(c item.Rgb12, raw []byte) {
	binary.LittleEndian.PutUint16(raw[0:2], c.R)
	binary.LittleEndian.PutUint16(raw[2:4], c.G)
	binary.LittleEndian.PutUint16(raw[4:6], c.B)
}

func unmarshalRgb12(raw []byte) item.Rgb12 {
	return item.Rgb12{
		R: binary.LittleEndian.Uint16(raw[0:2]),
		G: binary.LittleEndian.Uint16(raw[2:4]),
		B: binary.LittleEndian.Uint16(raw[4:6]),
	}
}

func marshalWavePacket13(p item.WavePacket13, raw []byte) {
	raw[0] = p.PacketIndex
	binary.LittleEndian.PutUint64(raw[1:9], p.Offset)
	binary.LittleEndian.PutUint32(raw[9:13], p.PacketSize)
	binary.LittleEndian.PutUint32(raw[13:17], uint32(p.ReturnPoint))
	binary.LittleEndian.PutUint32(raw[17:21], uint32(p.X))
	binary.LittleEndian.PutUint32(raw[21:25], uint32(p.Y))
	binary.LittleEndian.PutUint32(raw[25:29], uint32(p.Z))
}

func unmarshalWavePacket13(raw []byte) item.WavePacket13 {
	return item.WavePacket13{
		PacketIndex: raw[0],
		Offset:      binary.LittleEndian.Uint64(raw[1:9]),
		PacketSize:  binary.LittleEndian.Uint32(raw[9:13]),
		ReturnPoint: int32(binary.LittleEndian.Uint32(raw[13:17])),
		X:           int32(binary.LittleEndian.Uint32(raw[17:21])),
		Y:           int32(binary.LittleEndian.Uint32(raw[21:25])),
		Z:           int32(binary.LittleEndian.Uint32(raw[25:29])),
	}
}
