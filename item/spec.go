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

// Package item implements the per-item predictors and entropy-coded
// representations for LAS point record fields: POINT10, GPSTIME11,
// RGB12, WAVEPACKET13 and raw BYTE arrays. Each item has a Writer and a
// Reader sharing one entropy.Encoder/Decoder; the block and schema these
// belong to is not this package's concern (that is pointcodec's job).
package item

// Type identifies which item kind a Spec entry names.
type Type int

const (
	TypePoint10 Type = iota
	TypeGpsTime11
	TypeRgb12
	TypeWavePacket13
	TypeByte
)

func (t Type) String() string {
	switch t {
	case TypePoint10:
		return "POINT10"
	case TypeGpsTime11:
		return "GPSTIME11"
	case TypeRgb12:
		return "RGB12"
	case TypeWavePacket13:
		return "WAVEPACKET13"
	case TypeByte:
		return "BYTE"
	default:
		return "UNKNOWN"
	}
}

// Version is the compressed-item format revision this package
// implements. Later LASzip revisions changed the predictors for some
// item types (version 2); those predictors are out of this module's
// scope, but the version tag is still part of the schema's data model,
// so every Spec carries one.
const Version = 1

// Spec names one item slot in a point's record layout: its type, its
// format revision, and how many bytes it occupies in the uncompressed
// record. For TypeByte, Size doubles as the item's byte count n — a raw
// byte array has no other way to declare its length.
type Spec struct {
	Type    Type
	Version uint8
	Size    uint16
}

// FixedSize reports the uncompressed byte length of every item type
// except TypeByte, whose length is schema-defined per Spec.Size.
func FixedSize(t Type) (uint16, bool) {
	switch t {
	case TypePoint10:
		return 20, true
	case TypeGpsTime11:
		return 8, true
	case TypeRgb12:
		return 6, true
	case TypeWavePacket13:
		return 29, true
	default:
		return 0, false
	}
}
