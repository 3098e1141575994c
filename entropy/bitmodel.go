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

package entropy

// BitModel is the degenerate two-symbol adaptive model: a single
// 13-bit-precision probability of a zero bit, updated after every
// coded bit. Grounded on the AdaptiveBitModel design (bit_0_count,
// bit_count, bit_0_prob, update_cycle countdown) used throughout the
// retrieved arithmetic-coder corpus (amaanq-FastAC-go, itself the Go port
// of the Amir Said coder LASzip's own arithmetic coder descends from).
//
// A BitModel is mutable and is meant to be single-owned by whichever item
// codec created it; encoder and decoder sides each hold their own instance
// and must be updated in lockstep for the two sides to stay synchronized.
type BitModel struct {
	bit0Count   uint32
	bitCount    uint32
	bit0Prob    uint32
	updateCycle uint32
	countdown   uint32
}

const (
	probShift = 13
	probMax   = uint32(1) << probShift
)

// NewBitModel creates a BitModel in its initial (50/50) state.
func NewBitModel() *BitModel {
	m := &BitModel{}
	m.Reset()
	return m
}

// Reset restores the model to its initial state, as if newly constructed.
func (this *BitModel) Reset() {
	this.bit0Count = 1
	this.bitCount = 2
	this.bit0Prob = probMax >> 1
	this.updateCycle = 4
	this.countdown = 4
}

// update adjusts the probability estimate after coding bit (0 or 1).
func (this *BitModel) update(bit int) {
	if bit == 0 {
		this.bit0Count++
	}

	this.countdown--

	if this.countdown != 0 {
		return
	}

	this.bitCount += this.updateCycle

	if this.bitCount > probMax {
		this.bitCount = (this.bitCount + 1) >> 1
		this.bit0Count = (this.bit0Count + 1) >> 1

		if this.bit0Count == this.bitCount {
			this.bitCount++
		}
	}

	scale := uint32(0x80000000) / this.bitCount
	this.bit0Prob = (this.bit0Count * scale) >> (31 - probShift)

	this.updateCycle = (5 * this.updateCycle) >> 2
	if this.updateCycle > 64 {
		this.updateCycle = 64
	}

	this.countdown = this.updateCycle
}
