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
	"fmt"

	"github.com/mensong/LASzip/entropy"
	"github.com/mensong/LASzip/integer"
)

// ByteWriter is the BYTE[n] encode side: n independent bytes per record,
// each predicted from its own position in the previous
// record. Used for LAS "extra bytes" and any point format's raw trailing
// payload.
type ByteWriter struct {
	number int
	icByte *integer.Compressor
	last   []byte
}

// NewByteWriter creates a BYTE[number] encoder writing through enc.
func NewByteWriter(enc *entropy.Encoder, number int) (*ByteWriter, error) {
	if number <= 0 {
		return nil, fmt.Errorf("item: BYTE: number must be > 0, got %d", number)
	}

	ic, err := integer.NewCompressor(enc, 8, uint32(number), 8)
	if err != nil {
		return nil, err
	}

	return &ByteWriter{number: number, icByte: ic, last: make([]byte, number)}, nil
}

// Init seeds the predictor with the raw first byte array of a block.
func (this *ByteWriter) Init(first []byte) {
	copy(this.last, first)
}

// Write entropy-codes cur, which must have length number.
func (this *ByteWriter) Write(cur []byte) error {
	for i := 0; i < this.number; i++ {
		if err := this.icByte.Compress(int32(this.last[i]), int32(cur[i]), uint32(i)); err != nil {
			return err
		}
	}

	copy(this.last, cur)
	return nil
}

// ByteReader is the BYTE[n] decode side, mirroring ByteWriter.
type ByteReader struct {
	number int
	icByte *integer.Decompressor
	last   []byte
}

// NewByteReader creates a BYTE[number] decoder reading through dec.
func NewByteReader(dec *entropy.Decoder, number int) (*ByteReader, error) {
	if number <= 0 {
		return nil, fmt.Errorf("item: BYTE: number must be > 0, got %d", number)
	}

	ic, err := integer.NewDecompressor(dec, 8, uint32(number), 8)
	if err != nil {
		return nil, err
	}

	return &ByteReader{number: number, icByte: ic, last: make([]byte, number)}, nil
}

// Init seeds the predictor with the raw first byte array of a block.
func (this *ByteReader) Init(first []byte) {
	copy(this.last, first)
}

// Read decodes the next byte array into a freshly allocated slice.
func (this *ByteReader) Read() ([]byte, error) {
	cur := make([]byte, this.number)

	for i := 0; i < this.number; i++ {
		v, err := this.icByte.Decompress(int32(this.last[i]), uint32(i))
		if err != nil {
			return nil, err
		}

		cur[i] = byte(v)
	}

	copy(this.last, cur)
	return cur, nil
}
