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

func TestWavePacket13RoundTrip(t *testing.T) {
	packets := []WavePacket13{
		{PacketIndex: 1, Offset: 1000, PacketSize: 64, ReturnPoint: 100, X: 10, Y: 20, Z: 30},
		{PacketIndex: 1, Offset: 1064, PacketSize: 64, ReturnPoint: 100, X: 10, Y: 20, Z: 30},
		{PacketIndex: 2, Offset: 1128, PacketSize: 128, ReturnPoint: 105, X: 12, Y: 18, Z: 33},
		{PacketIndex: 2, Offset: 1 << 40, PacketSize: 128, ReturnPoint: 105, X: 12, Y: 18, Z: 33}, // huge offset jump
		{PacketIndex: 0, Offset: (1 << 40) + 64, PacketSize: 32, ReturnPoint: -20, X: -5, Y: 0, Z: 100},
	}

	buf := bytestream.NewMemBuffer(nil)
	enc := entropy.NewEncoder(buf)

	w, err := NewWavePacket13Writer(enc)
	if err != nil {
		t.Fatalf("NewWavePacket13Writer: %v", err)
	}

	w.Init(packets[0])

	for _, p := range packets[1:] {
		if err := w.Write(p); err != nil {
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

	r, err := NewWavePacket13Reader(dec)
	if err != nil {
		t.Fatalf("NewWavePacket13Reader: %v", err)
	}

	r.Init(packets[0])

	for i, want := range packets[1:] {
		got, err := r.Read()
		if err != nil {
			t.Fatalf("Read[%d]: %v", i, err)
		}

		if got != want {
			t.Fatalf("packet %d: got %+v, want %+v", i, got, want)
		}
	}
}
