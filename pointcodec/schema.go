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

// Package pointcodec implements the point-record orchestrator: given an
// ordered item schema, it constructs the matching item codecs, wires
// them to one shared entropy.Encoder/Decoder, and drives per-point
// write/read in schema order.
package pointcodec

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/mensong/LASzip/item"
)

// ErrEmptySchema is returned by Open when given a schema with no items.
var ErrEmptySchema = errors.New("pointcodec: schema must contain at least one item")

// ErrNotInitialized is returned by Write/Read when called before Init.
var ErrNotInitialized = errors.New("pointcodec: Init must be called before Write/Read")

// ErrSchemaMismatch is returned when a caller-supplied point does not
// have one entry per schema item.
var ErrSchemaMismatch = errors.New("pointcodec: point does not match schema shape")

// SchemasEqual reports whether two schemas describe the same item
// sequence — encoder and decoder schemas must match for a stream
// produced by one to be readable by the other.
func SchemasEqual(a, b []item.Spec) bool {
	return slices.EqualFunc(a, b, func(x, y item.Spec) bool {
		return x.Type == y.Type && x.Version == y.Version && x.Size == y.Size
	})
}

// validateSchema checks that every item's declared Size matches its
// type's uncompressed record length (BYTE items must declare a non-zero
// length instead), and that its Version is one this package implements.
func validateSchema(schema []item.Spec) error {
	if len(schema) == 0 {
		return ErrEmptySchema
	}

	badIndex := slices.IndexFunc(schema, func(s item.Spec) bool {
		if s.Version != item.Version {
			return true
		}

		if s.Type == item.TypeByte {
			return s.Size == 0
		}

		want, ok := item.FixedSize(s.Type)
		return !ok || s.Size != want
	})

	if badIndex >= 0 {
		s := schema[badIndex]
		return fmt.Errorf("pointcodec: schema item %d (%s v%d): unsupported version or invalid size %d", badIndex, s.Type, s.Version, s.Size)
	}

	return nil
}
