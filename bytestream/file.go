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

package bytestream

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
	"os"
)

// FileStream is a ByteStream backed by a buffered *os.File, for callers
// that want to compress/decompress directly against disk instead of
// through a MemBuffer. Mirrors the buffered-file pattern used throughout
// flanglet-kanzi-go/app (bufio.Reader/Writer wrapping *os.File) rather
// than issuing a syscall per byte.
type FileStream struct {
	file   *os.File
	r      *bufio.Reader
	w      *bufio.Writer
	closed bool
}

// OpenFileForReading opens path for buffered reads through the ByteStream
// contract.
func OpenFileForReading(path string) (*FileStream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	return &FileStream{file: f, r: bufio.NewReader(f)}, nil
}

// CreateFileForWriting creates (truncating) path for buffered writes
// through the ByteStream contract.
func CreateFileForWriting(path string) (*FileStream, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	return &FileStream{file: f, w: bufio.NewWriter(f)}, nil
}

// Close flushes any pending writes and releases the underlying file.
func (this *FileStream) Close() error {
	if this.closed {
		return nil
	}

	this.closed = true

	if this.w != nil {
		if err := this.w.Flush(); err != nil {
			this.file.Close()
			return err
		}
	}

	return this.file.Close()
}

func (this *FileStream) WriteByte(b byte) error {
	if this.closed || this.w == nil {
		return ErrClosed
	}

	return this.w.WriteByte(b)
}

func (this *FileStream) WriteBytes(buf []byte) error {
	if this.closed || this.w == nil {
		return ErrClosed
	}

	_, err := this.w.Write(buf)
	return err
}

func (this *FileStream) WriteInt32(v int32) error {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], uint32(v))
	return this.WriteBytes(tmp[:])
}

func (this *FileStream) WriteInt64(v int64) error {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], uint64(v))
	return this.WriteBytes(tmp[:])
}

func (this *FileStream) WriteBits(n uint, bits uint32) error {
	if n == 0 || n > 32 {
		return errors.New("bytestream: WriteBits: n must be in [1, 32]")
	}

	for n > 0 {
		take := n
		if take > 8 {
			take = 8
		}

		shift := n - take
		b := byte((bits >> shift) & ((1 << take) - 1))

		if err := this.WriteByte(b << (8 - take)); err != nil {
			return err
		}

		n -= take
	}

	return nil
}

func (this *FileStream) ReadByte() (byte, error) {
	if this.closed || this.r == nil {
		return 0, ErrClosed
	}

	return this.r.ReadByte()
}

func (this *FileStream) ReadBytes(buf []byte) error {
	if this.closed || this.r == nil {
		return ErrClosed
	}

	_, err := io.ReadFull(this.r, buf)
	return err
}

func (this *FileStream) ReadInt32() (int32, error) {
	var tmp [4]byte
	if err := this.ReadBytes(tmp[:]); err != nil {
		return 0, err
	}

	return int32(binary.LittleEndian.Uint32(tmp[:])), nil
}

func (this *FileStream) ReadInt64() (int64, error) {
	var tmp [8]byte
	if err := this.ReadBytes(tmp[:]); err != nil {
		return 0, err
	}

	return int64(binary.LittleEndian.Uint64(tmp[:])), nil
}

func (this *FileStream) ReadBits(n uint) (uint32, error) {
	if n == 0 || n > 32 {
		return 0, errors.New("bytestream: ReadBits: n must be in [1, 32]")
	}

	var v uint32

	for n > 0 {
		take := n
		if take > 8 {
			take = 8
		}

		b, err := this.ReadByte()
		if err != nil {
			return 0, err
		}

		v = (v << take) | uint32(b>>(8-take))
		n -= take
	}

	return v, nil
}
