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

	"github.com/mensong/LASzip/bytestream"
	"github.com/mensong/LASzip/entropy"
	"github.com/mensong/LASzip/item"
)

// Writer is the orchestrator's encode side: it wires an ordered item
// schema to one entropy.Encoder over a caller-supplied ByteStream sink,
// writes the first point of a block raw, then entropy-codes every point
// after it as a difference from its predecessor.
//
// A point is passed as one []Fields: len(point) must equal len(schema),
// and point[i] must have exactly schema[i]'s declared Size bytes. Init
// and Write both validate this shape.
type Writer struct {
	bs     bytestream.Writer
	enc    *entropy.Encoder
	schema []item.Spec
	items  []encodeItem
	sizes  []int
	inited bool
}

// Open validates schema and constructs one encode-side item codec per
// slot, all sharing a fresh entropy.Encoder over bs. The caller owns bs's
// lifetime (including whatever header precedes the point stream) and
// calls Init to seed the first point before the first Write.
func Open(bs bytestream.Writer, schema []item.Spec) (*Writer, error) {
	if err := validateSchema(schema); err != nil {
		return nil, err
	}

	w := &Writer{
		bs:     bs,
		enc:    entropy.NewEncoder(bs),
		schema: append([]item.Spec(nil), schema...),
		items:  make([]encodeItem, len(schema)),
		sizes:  make([]int, len(schema)),
	}

	for i, spec := range w.schema {
		it, err := newEncodeItem(w.enc, spec)
		if err != nil {
			return nil, err
		}

		w.items[i] = it
		w.sizes[i] = itemRawSize(spec)
	}

	return w, nil
}

// Schema returns the schema the Writer was opened with.
func (this *Writer) Schema() []item.Spec {
	return append([]item.Spec(nil), this.schema...)
}

// Init writes first's raw bytes directly to the underlying stream,
// uncompressed, and seeds every item codec's predictor from it. It must
// be called exactly once, before the first Write.
func (this *Writer) Init(first []Fields) error {
	if err := this.checkShape(first); err != nil {
		return err
	}

	for i, raw := range first {
		if err := this.bs.WriteBytes(raw); err != nil {
			return err
		}

		this.items[i].init(raw)
	}

	this.inited = true
	return nil
}

// Write entropy-codes p as the difference from the previously written
// point (or from the Init seed, for the first call).
func (this *Writer) Write(p []Fields) error {
	if !this.inited {
		return ErrNotInitialized
	}

	if err := this.checkShape(p); err != nil {
		return err
	}

	for i, raw := range p {
		if err := this.items[i].write(raw); err != nil {
			return err
		}
	}

	return nil
}

// Done flushes the arithmetic coder's pending state. The block is not
// decodable until this has run.
func (this *Writer) Done() error {
	return this.enc.Flush()
}

func (this *Writer) checkShape(p []Fields) error {
	if len(p) != len(this.schema) {
		return ErrSchemaMismatch
	}

	for i, raw := range p {
		if len(raw) != this.sizes[i] {
			return fmt.Errorf("pointcodec: item %d: got %d bytes, want %d", i, len(raw), this.sizes[i])
		}
	}

	return nil
}

// Fields is one schema slot's raw uncompressed byte representation —
// 20 bytes for POINT10, 8 for GPSTIME11, 6 for RGB12, 29 for
// WAVEPACKET13, and schema.Size bytes for BYTE.
type Fields = []byte

func itemRawSize(spec item.Spec) int {
	if spec.Type == item.TypeByte {
		return int(spec.Size)
	}

	n, _ := item.FixedSize(spec.Type)
	return int(n)
}
