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

func TestByteRoundTrip(t *testing.T) {
	records := [][]byte{
		{1, 2, 3, 4, 5},
		{1, 2, 3, 4, 5},
		{1, 2, 3, 200, 5},
		{255, 0, 128, 200, 5},
		{0, 0, 0, 0, 0},
	}

	buf := bytestream.NewMemBuffer(nil)
	enc := entropy.NewEncoder(buf)

	w, err := NewByteWriter(enc, 5)
	if err != nil {
		t.Fatalf("NewByteWriter: %v", err)
	}

	w.Init(records[0])

	for _, rec := range records[1:] {
		if err := w.Write(rec); err != nil {
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

	r, err := NewByteReader(dec, 5)
	if err != nil {
		t.Fatalf("NewByteReader: %v", err)
	}

	r.Init(records[0])

	for i, want := range records[1:] {
		got, err := r.Read()
		if err != nil {
			t.Fatalf("Read[%d]: %v", i, err)
		}

		for j := range want {
			if got[j] != want[j] {
				t.Fatalf("record %d byte %d: got %d, want %d", i, j, got[j], want[j])
			}
		}
	}
}

func TestNewByteWriterRejectsZeroNumber(t *testing.T) {
	buf := bytestream.NewMemBuffer(nil)
	enc := entropy.NewEncoder(buf)

	if _, err := NewByteWriter(enc, 0); err == nil {
		t.Fatal("expected error for number=0")
	}
}
