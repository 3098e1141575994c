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

// Package integer implements the prediction-corrector residual coder:
// given a predicted value and the true value, it folds their
// difference into a fixed-width "corrector" interval and entropy-codes
// its magnitude and position through an entropy.Encoder/Decoder pair.
// Grounded on original_source/src/arithmeticintegercompressor.cpp, with
// the COMPRESS_ONLY_K branch (permanently #undef'd upstream) left out —
// see DESIGN.md.
package integer

import "math"

// corrParams describes the folding interval for one Compressor/
// Decompressor instance, derived once at construction time from either a
// fixed corrector width (bits) or an explicit value range (rng) — the two
// ways LASzip's item codecs configure an integer compressor.
type corrParams struct {
	corrBits  uint32
	corrRange uint32
	corrMin   int32
	corrMax   int32
}

// computeCorrParams mirrors ArithmeticIntegerCompressor::SetupCompressor's
// corrector-interval derivation: exactly one of bits/rng should be
// non-zero. When rng is given, corrBits is derived from rng's bit length
// (preferring the tighter of the two candidate widths when rng is itself
// a power of two); when only bits is given (and is below 32), the
// interval has exactly that width; otherwise the corrector spans the
// full 32-bit range and is never folded.
func computeCorrParams(bits uint32, rng uint32) corrParams {
	var p corrParams

	switch {
	case rng != 0:
		corrBits := uint32(0)
		r := rng

		for r != 0 {
			r >>= 1
			corrBits++
		}

		if rng == (uint32(1) << (corrBits - 1)) {
			corrBits--
		}

		p.corrBits = corrBits
		p.corrRange = rng
		p.corrMin = -int32(rng / 2)
		p.corrMax = p.corrMin + int32(rng) - 1

	case bits != 0 && bits < 32:
		p.corrBits = bits
		p.corrRange = uint32(1) << bits
		p.corrMin = -int32(p.corrRange / 2)
		p.corrMax = p.corrMin + int32(p.corrRange) - 1

	default:
		p.corrBits = 32
		p.corrRange = 0
		p.corrMin = math.MinInt32
		p.corrMax = math.MaxInt32
	}

	return p
}

// correctorAlphabet returns the alphabet size of the symbol model used to
// code the high bits of a corrector whose magnitude class is k, given the
// bitsHigh threshold, splitting large magnitude classes into a modeled
// high part and a raw low part.
func correctorAlphabet(k uint32, bitsHigh uint32) int {
	size := k

	if size > bitsHigh {
		size = bitsHigh
	}

	return 1 << size
}
