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

// laszipcat is a thin demonstration shell around pointcodec: it
// round-trips a synthetic stream of POINT10 + GPSTIME11 + RGB12 records
// through a file-backed ByteStream, the way flanglet-kanzi-go/app is a
// thin CLI wrapper around its entropy/transform packages.
package main

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/mensong/LASzip/bytestream"
	"github.com/mensong/LASzip/item"
	"github.com/mensong/LASzip/pointcodec"
)

const appHeader = "laszipcat - point record arithmetic coder demo"

var schema = []item.Spec{
	{Type: item.TypePoint10, Version: item.Version, Size: 20},
	{Type: item.TypeGpsTime11, Version: item.Version, Size: 8},
	{Type: item.TypeRgb12, Version: item.Version, Size: 6},
}

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	fmt.Println(appHeader)

	if len(args) < 3 {
		usage()
		return 1
	}

	switch args[1] {
	case "-c":
		n := 1000
		if len(args) > 3 {
			if v, err := strconv.Atoi(args[3]); err == nil {
				n = v
			}
		}
		if err := compress(args[2], n); err != nil {
			fmt.Printf("compress failed: %v\n", err)
			return 1
		}
	case "-d":
		if err := decompress(args[2]); err != nil {
			fmt.Printf("decompress failed: %v\n", err)
			return 1
		}
	default:
		usage()
		return 1
	}

	return 0
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  laszipcat -c <output file> [point count]")
	fmt.Println("  laszipcat -d <input file>")
}

// syntheticRecord builds one demo record: a point walking along a
// shallow ramp in x/y/z, a steadily advancing gpstime, and a slowly
// cycling RGB color, each raw-encoded into the byte layout its item
// codec expects.
func syntheticRecord(i int) []pointcodec.Fields {
	p10 := make([]byte, 20)
	putUint32(p10[0:4], uint32(100000+i*37))
	putUint32(p10[4:8], uint32(200000-i*11))
	putUint32(p10[8:12], uint32(5000+(i%97)*3))
	putUint16(p10[12:14], uint16(i%4096))
	p10[14] = uint8((i % 2) << 6)
	p10[15] = uint8(i % 32)
	p10[16] = byte(int8((i % 60) - 30))
	p10[17] = uint8(i % 256)
	putUint16(p10[18:20], uint16(i%1024))

	gps := make([]byte, 8)
	putUint64(gps, math.Float64bits(400000.0+float64(i)*0.004))

	rgb := make([]byte, 6)
	putUint16(rgb[0:2], uint16(i%65536))
	putUint16(rgb[2:4], uint16((i*3)%65536))
	putUint16(rgb[4:6], uint16((i*7)%65536))

	return []pointcodec.Fields{p10, gps, rgb}
}

func compress(path string, n int) error {
	if n < 1 {
		n = 1
	}

	fs, err := bytestream.CreateFileForWriting(path)
	if err != nil {
		return err
	}
	defer fs.Close()

	if err := fs.WriteInt32(int32(n)); err != nil {
		return err
	}

	w, err := pointcodec.Open(fs, schema)
	if err != nil {
		return err
	}

	if err := w.Init(syntheticRecord(0)); err != nil {
		return err
	}

	for i := 1; i < n; i++ {
		if err := w.Write(syntheticRecord(i)); err != nil {
			return err
		}
	}

	if err := w.Done(); err != nil {
		return err
	}

	fmt.Printf("wrote %d points to %s\n", n, path)
	return nil
}

func decompress(path string) error {
	fs, err := bytestream.OpenFileForReading(path)
	if err != nil {
		return err
	}
	defer fs.Close()

	n, err := fs.ReadInt32()
	if err != nil {
		return err
	}

	r, err := pointcodec.OpenReader(fs, schema)
	if err != nil {
		return err
	}

	last, err := r.Init()
	if err != nil {
		return err
	}

	for i := int32(1); i < n; i++ {
		last, err = r.Read()
		if err != nil {
			return fmt.Errorf("reading point %d of %d: %w", i, n, err)
		}
	}

	fmt.Printf("read %d points from %s\n", n, path)

	x := int32(getUint32(last[0][0:4]))
	y := int32(getUint32(last[0][4:8]))
	z := int32(getUint32(last[0][8:12]))
	intensity := getUint16(last[0][12:14])
	fmt.Printf("last point: x=%d y=%d z=%d intensity=%d\n", x, y, z, intensity)

	return nil
}

func putUint16(b []byte, v uint16) { b[0] = byte(v); b[1] = byte(v >> 8) }

func putUint32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func putUint64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}

func getUint16(b []byte) uint16 { return uint16(b[0]) | uint16(b[1])<<8 }

func getUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
