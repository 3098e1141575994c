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
	"math"
	"testing"

	"github.com/mensong/LASzip/bytestream"
	"github.com/mensong/LASzip/entropy"
)

func TestGpsTime11RoundTrip(t *testing.T) {
	values := []float64{
		403192800.100000,
		403192800.100000, // exact repeat: zero-diff branch, symbol 0
		403192800.200001,
		403192800.300002, // steady diff: should settle into multi==1 path
		403192800.400003,
		403192800.400500, // smaller-than-usual diff: multi could clamp low
		403192800.400600,
		math.Float64frombits(0),                    // huge jump vs previous: forces 64-bit fallback
		math.Float64frombits(1) + 1e12,
		1e12 + 1.0000001,
	}

	buf := bytestream.NewMemBuffer(nil)
	enc := entropy.NewEncoder(buf)

	w, err := NewGpsTime11Writer(enc)
	if err != nil {
		t.Fatalf("NewGpsTime11Writer: %v", err)
	}

	w.Init(GpsTime11{Value: values[0]})

	for _, v := range values[1:] {
		if err := w.Write(GpsTime11{Value: v}); err != nil {
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

	r, err := NewGpsTime11Reader(dec)
	if err != nil {
		t.Fatalf("NewGpsTime11Reader: %v", err)
	}

	r.Init(GpsTime11{Value: values[0]})

	for i, want := range values[1:] {
		got, err := r.Read()
		if err != nil {
			t.Fatalf("Read[%d]: %v", i, err)
		}

		if math.Float64bits(got.Value) != math.Float64bits(want) {
			t.Fatalf("value %d: got %v (bits %x), want %v (bits %x)",
				i, got.Value, math.Float64bits(got.Value), want, math.Float64bits(want))
		}
	}
}

func TestGpstimeMultiplierRounding(t *testing.T) {
	// exact 2x: rounds to 2, not 1
	if got := gpstimeMultiplier(200, 100); got != 2 {
		t.Fatalf("gpstimeMultiplier(200,100): got %d, want 2", got)
	}

	// negative multiplier clamps to 0
	if got := gpstimeMultiplier(-50, 100); got != 0 {
		t.Fatalf("gpstimeMultiplier(-50,100): got %d, want 0", got)
	}

	// huge multiplier clamps to gpstimeMultiMax-3
	if got := gpstimeMultiplier(1000000, 1); got != gpstimeMultiMax-3 {
		t.Fatalf("gpstimeMultiplier clamp: got %d, want %d", got, gpstimeMultiMax-3)
	}
}
