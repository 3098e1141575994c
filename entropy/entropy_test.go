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

import (
	"testing"

	"github.com/mensong/LASzip/bytestream"
)

func TestBitModelRoundTrip(t *testing.T) {
	bits := []int{0, 0, 0, 1, 0, 1, 1, 1, 1, 0, 0, 1, 0, 0, 0, 0, 1, 1, 1, 0}

	buf := bytestream.NewMemBuffer(nil)
	enc := NewEncoder(buf)
	encModel := NewBitModel()

	for _, b := range bits {
		if err := enc.EncodeBit(encModel, b); err != nil {
			t.Fatalf("EncodeBit: %v", err)
		}
	}

	if err := enc.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	buf.Rewind()
	dec, err := NewDecoder(buf)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	if err := dec.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	decModel := NewBitModel()

	for i, want := range bits {
		got, err := dec.DecodeBit(decModel)
		if err != nil {
			t.Fatalf("DecodeBit[%d]: %v", i, err)
		}

		if got != want {
			t.Fatalf("bit %d: got %d, want %d", i, got, want)
		}
	}
}

func TestSymbolModelRoundTrip(t *testing.T) {
	const alphabet = 7
	syms := []int{0, 3, 3, 6, 1, 2, 2, 2, 5, 0, 4, 6, 6, 6, 6, 3, 1, 0}

	buf := bytestream.NewMemBuffer(nil)
	enc := NewEncoder(buf)

	encModel, err := NewSymbolEncoderModel(alphabet)
	if err != nil {
		t.Fatalf("NewSymbolEncoderModel: %v", err)
	}

	for _, s := range syms {
		if err := enc.EncodeSymbol(encModel, s); err != nil {
			t.Fatalf("EncodeSymbol: %v", err)
		}
	}

	if err := enc.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	buf.Rewind()
	dec, err := NewDecoder(buf)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	if err := dec.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	decModel, err := NewSymbolDecoderModel(alphabet)
	if err != nil {
		t.Fatalf("NewSymbolDecoderModel: %v", err)
	}

	for i, want := range syms {
		got, err := dec.DecodeSymbol(decModel)
		if err != nil {
			t.Fatalf("DecodeSymbol[%d]: %v", i, err)
		}

		if got != want {
			t.Fatalf("symbol %d: got %d, want %d", i, got, want)
		}
	}
}

func TestRawBitsRoundTrip(t *testing.T) {
	values := []struct {
		n uint
		v uint32
	}{
		{1, 1},
		{1, 0},
		{5, 17},
		{13, 8191},
		{32, 0xDEADBEEF},
		{3, 0},
	}

	buf := bytestream.NewMemBuffer(nil)
	enc := NewEncoder(buf)

	for _, tc := range values {
		if err := enc.WriteBits(tc.n, tc.v); err != nil {
			t.Fatalf("WriteBits: %v", err)
		}
	}

	if err := enc.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	buf.Rewind()
	dec, err := NewDecoder(buf)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	if err := dec.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	for i, tc := range values {
		got, err := dec.ReadBits(tc.n)
		if err != nil {
			t.Fatalf("ReadBits[%d]: %v", i, err)
		}

		mask := uint32(1)<<tc.n - 1
		if got != tc.v&mask {
			t.Fatalf("value %d: got %d, want %d", i, got, tc.v&mask)
		}
	}
}

func TestInt32Int64RoundTrip(t *testing.T) {
	i32s := []int32{0, 1, -1, 123456789, -123456789, 2147483647, -2147483648}
	i64s := []int64{0, 1, -1, 9223372036854775807, -9223372036854775808, 42}

	buf := bytestream.NewMemBuffer(nil)
	enc := NewEncoder(buf)

	for _, v := range i32s {
		if err := enc.WriteInt32(v); err != nil {
			t.Fatalf("WriteInt32: %v", err)
		}
	}

	for _, v := range i64s {
		if err := enc.WriteInt64(v); err != nil {
			t.Fatalf("WriteInt64: %v", err)
		}
	}

	if err := enc.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	buf.Rewind()
	dec, err := NewDecoder(buf)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	if err := dec.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	for i, want := range i32s {
		got, err := dec.ReadInt32()
		if err != nil {
			t.Fatalf("ReadInt32[%d]: %v", i, err)
		}

		if got != want {
			t.Fatalf("int32 %d: got %d, want %d", i, got, want)
		}
	}

	for i, want := range i64s {
		got, err := dec.ReadInt64()
		if err != nil {
			t.Fatalf("ReadInt64[%d]: %v", i, err)
		}

		if got != want {
			t.Fatalf("int64 %d: got %d, want %d", i, got, want)
		}
	}
}

func TestAdaptiveBitModelConverges(t *testing.T) {
	buf := bytestream.NewMemBuffer(nil)
	enc := NewEncoder(buf)
	m := NewBitModel()

	const n = 500

	for i := 0; i < n; i++ {
		if err := enc.EncodeBit(m, 0); err != nil {
			t.Fatalf("EncodeBit: %v", err)
		}
	}

	if err := enc.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	if m.bit0Prob <= probMax/2 {
		t.Fatalf("model did not converge toward bit 0: bit0Prob=%d", m.bit0Prob)
	}

	buf.Rewind()
	dec, err := NewDecoder(buf)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	if err := dec.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	dm := NewBitModel()

	for i := 0; i < n; i++ {
		got, err := dec.DecodeBit(dm)
		if err != nil {
			t.Fatalf("DecodeBit[%d]: %v", i, err)
		}

		if got != 0 {
			t.Fatalf("bit %d: got %d, want 0", i, got)
		}
	}
}

func TestNewSymbolModelRejectsTooSmallAlphabet(t *testing.T) {
	if _, err := NewSymbolEncoderModel(1); err == nil {
		t.Fatal("expected error for numSymbols=1")
	}

	if _, err := NewSymbolDecoderModel(0); err == nil {
		t.Fatal("expected error for numSymbols=0")
	}
}
