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
	"github.com/mensong/LASzip/bytestream"
	"github.com/mensong/LASzip/entropy"
	"github.com/mensong/LASzip/item"
)

// Reader is the orchestrator's decode side, mirroring Writer: it reads
// the first point of a block raw off bs, seeds every item codec from it,
// then decodes one point per Read call from the shared entropy.Decoder.
type Reader struct {
	bs     bytestream.Reader
	dec    *entropy.Decoder
	schema []item.Spec
	items  []decodeItem
	sizes  []int
	inited bool
}

// OpenReader validates schema and constructs one decode-side item codec
// per slot, all sharing a fresh entropy.Decoder over bs. The Decoder is
// constructed but not yet primed: bs's cursor may still need to pass
// over caller-owned header bytes before the raw first point, and priming
// must wait until Init has consumed that raw point.
func OpenReader(bs bytestream.Reader, schema []item.Spec) (*Reader, error) {
	if err := validateSchema(schema); err != nil {
		return nil, err
	}

	dec, err := entropy.NewDecoder(bs)
	if err != nil {
		return nil, err
	}

	r := &Reader{
		bs:     bs,
		dec:    dec,
		schema: append([]item.Spec(nil), schema...),
		items:  make([]decodeItem, len(schema)),
		sizes:  make([]int, len(schema)),
	}

	for i, spec := range r.schema {
		it, err := newDecodeItem(r.dec, spec)
		if err != nil {
			return nil, err
		}

		r.items[i] = it
		r.sizes[i] = itemRawSize(spec)
	}

	return r, nil
}

// Schema returns the schema the Reader was opened with.
func (this *Reader) Schema() []item.Spec {
	return append([]item.Spec(nil), this.schema...)
}

// Init reads the first point of a block directly off the underlying
// stream, uncompressed, then primes the entropy.Decoder for the
// arithmetic-coded region that follows it, and seeds every item codec's
// predictor from the raw point. The returned slice has one entry per
// schema item, freshly allocated.
//
// The Decoder must not be primed any earlier than this: priming reads 5
// bytes off the shared stream cursor, and those bytes belong to the
// start of the arithmetic-coded region, which comes strictly after the
// raw first point read here.
func (this *Reader) Init() ([]Fields, error) {
	first := make([]Fields, len(this.schema))

	for i := range this.schema {
		raw := make([]byte, this.sizes[i])

		if err := this.bs.ReadBytes(raw); err != nil {
			return nil, err
		}

		first[i] = raw
	}

	if err := this.dec.Start(); err != nil {
		return nil, err
	}

	for i, raw := range first {
		this.items[i].init(raw)
	}

	this.inited = true
	return first, nil
}

// Read decodes the next point, one freshly allocated Fields slice per
// schema item.
func (this *Reader) Read() ([]Fields, error) {
	if !this.inited {
		return nil, ErrNotInitialized
	}

	p := make([]Fields, len(this.schema))

	for i := range this.schema {
		raw := make([]byte, this.sizes[i])

		if err := this.items[i].read(raw); err != nil {
			return nil, err
		}

		p[i] = raw
	}

	return p, nil
}
