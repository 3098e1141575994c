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
	"testing"

	"github.com/mensong/LASzip/bytestream"
	"github.com/mensong/LASzip/entropy"
)

func TestRgb12RoundTrip(t *testing.T) {
	colors := []Rgb12{
		{R: 0x1234, G: 0x5678, B: 0x9ABC},
		{R: 0x1234, G: 0x5678, B: 0x9ABC}, // unchanged
		{R: 0x1235, G: 0x5678, B: 0x9ABC}, // low byte of R changes
		{R: 0x2235, G: 0x5678, B: 0x9ABC}, // high byte of R changes
		{R: 0x2235, G: 0x0000, B: 0xFFFF}, // G and B fully change
		{R: 0x0000, G: 0x0000, B: 0x0000},
	}

	buf := bytestream.NewMemBuffer(nil)
	enc := entropy.NewEncoder(buf)

	w, err := NewRgb12Writer(enc)
	if err != nil {
		t.Fatalf("NewRgb12Writer: %v", err)
	}

	w.Init(colors[0])

	for _, c := range colors[1:] {
		if err := w.Write(c); err != nil {
			t.Fatalf("Write: %v", err)
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

	r, err := NewRgb12Reader(dec)
	if err != nil {
		t.Fatalf("NewRgb12Reader: %v", err)
	}

	r.Init(colors[0])

	for i, want := range colors[1:] {
		got, err := r.Read()
		if err != nil {
			t.Fatalf("Read[%d]: %v", i, err)
		}

		if got != want {
			t.Fatalf("color %d: got %+v, want %+v", i, got, want)
		}
	}
}
