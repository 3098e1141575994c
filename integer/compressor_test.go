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

import (
	"testing"

	"github.com/mensong/LASzip/bytestream"
	"github.com/mensong/LASzip/entropy"
)

func TestCompressorRoundTripFixedBits(t *testing.T) {
	preds := []int32{0, 10, -10, 1000, -1000, 32767, -32768, 5, 5, 5}
	reals := []int32{0, 12, -15, 1003, -998, 32767, -32767, 5, 6, -100}

	buf := bytestream.NewMemBuffer(nil)
	enc := entropy.NewEncoder(buf)

	comp, err := NewCompressor(enc, 16, 1, 8)
	if err != nil {
		t.Fatalf("NewCompressor: %v", err)
	}

	for i := range preds {
		if err := comp.Compress(preds[i], reals[i], 0); err != nil {
			t.Fatalf("Compress[%d]: %v", i, err)
		}
	}

	if err := enc.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	buf.Rewind()
	dec, err := entropy.NewDecoder(buf)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	if err := dec.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	decomp, err := NewDecompressor(dec, 16, 1, 8)
	if err != nil {
		t.Fatalf("NewDecompressor: %v", err)
	}

	for i, pred := range preds {
		got, err := decomp.Decompress(pred, 0)
		if err != nil {
			t.Fatalf("Decompress[%d]: %v", i, err)
		}

		want := reals[i]
		if want < 0 {
			want += 1 << 16
		}

		if got != want {
			t.Fatalf("value %d: got %d, want %d", i, got, want)
		}
	}
}

func TestCompressorRoundTripWithRangeAndContexts(t *testing.T) {
	type sample struct {
		ctx  uint32
		pred int32
		real int32
	}

	samples := []sample{
		{0, 100, 102},
		{1, -50, -50},
		{2, 0, 255},
		{0, 200, 199},
		{1, 30, -30},
		{2, 128, 0},
	}

	buf := bytestream.NewMemBuffer(nil)
	enc := entropy.NewEncoder(buf)

	comp, err := NewCompressorWithRange(enc, 256, 3, 6)
	if err != nil {
		t.Fatalf("NewCompressorWithRange: %v", err)
	}

	for i, s := range samples {
		if err := comp.Compress(s.pred, s.real, s.ctx); err != nil {
			t.Fatalf("Compress[%d]: %v", i, err)
		}
	}

	if err := enc.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	buf.Rewind()
	dec, err := entropy.NewDecoder(buf)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	if err := dec.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	decomp, err := NewDecompressorWithRange(dec, 256, 3, 6)
	if err != nil {
		t.Fatalf("NewDecompressorWithRange: %v", err)
	}

	for i, s := range samples {
		got, err := decomp.Decompress(s.pred, s.ctx)
		if err != nil {
			t.Fatalf("Decompress[%d]: %v", i, err)
		}

		want := s.real
		if want < 0 {
			want += 256
		}

		if got != want {
			t.Fatalf("value %d: got %d, want %d", i, got, want)
		}
	}
}

func TestCompressorFullRangeNoFolding(t *testing.T) {
	preds := []int32{0, 1 << 20, -(1 << 20)}
	reals := []int32{1 << 30, -(1 << 30), 2147483647}

	buf := bytestream.NewMemBuffer(nil)
	enc := entropy.NewEncoder(buf)

	comp, err := NewCompressor(enc, 0, 1, 8)
	if err != nil {
		t.Fatalf("NewCompressor: %v", err)
	}

	for i := range preds {
		if err := comp.Compress(preds[i], reals[i], 0); err != nil {
			t.Fatalf("Compress[%d]: %v", i, err)
		}
	}

	if err := enc.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	buf.Rewind()
	dec, err := entropy.NewDecoder(buf)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	if err := dec.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	decomp, err := NewDecompressor(dec, 0, 1, 8)
	if err != nil {
		t.Fatalf("NewDecompressor: %v", err)
	}

	for i, pred := range preds {
		got, err := decomp.Decompress(pred, 0)
		if err != nil {
			t.Fatalf("Decompress[%d]: %v", i, err)
		}

		if got != reals[i] {
			t.Fatalf("value %d: got %d, want %d", i, got, reals[i])
		}
	}
}
