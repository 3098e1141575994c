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

import "fmt"

// symbolFreqBits is the precision, in bits, of the cumulative-frequency
// table shared by every SymbolEncoderModel/SymbolDecoderModel: the total
// of all symbol frequencies is rescaled to fit under 1<<symbolFreqBits
// every time the update threshold is reached. Grounded on amaanq-FastAC-go's
// AdaptiveDataModel (DM__LengthShift), narrowed slightly so that
// corr_bits+1-ary magnitude models (up to 33 symbols) and the largest
// item-codec alphabet (512, GPSTIME11's multiplier) both fit comfortably.
const (
	symbolFreqBits = 15
	symbolFreqMax  = uint32(1) << symbolFreqBits
)

// symbolModelCore holds the state shared by the encoder and decoder model
// types: per-symbol counts and the derived cumulative table. Kept as its
// own unexported type so the encoder/decoder wrappers share this helper
// instead of toggling a mode flag, making it structurally impossible to
// forget to set the flag.
type symbolModelCore struct {
	numSymbols int
	freq       []uint32
	cumFreq    []uint32 // len numSymbols+1; cumFreq[numSymbols] == symbolFreqMax

	totalCount         uint32
	updateCycle        uint32
	symbolsUntilUpdate uint32
	tableDirty         bool
}

func newSymbolModelCore(numSymbols int) (*symbolModelCore, error) {
	if numSymbols < 2 {
		return nil, fmt.Errorf("entropy: symbol model: numSymbols must be >= 2, got %d", numSymbols)
	}

	m := &symbolModelCore{
		numSymbols: numSymbols,
		freq:       make([]uint32, numSymbols),
		cumFreq:    make([]uint32, numSymbols+1),
	}
	m.reset()
	return m, nil
}

// reset restores the initial state: one count per symbol, marking the
// table for a rebuild.
func (this *symbolModelCore) reset() {
	this.totalCount = 0
	this.updateCycle = uint32(this.numSymbols)

	for i := range this.freq {
		this.freq[i] = 1
	}

	this.tableDirty = true
}

// rebuild recomputes the cumulative-frequency table from the current
// per-symbol counts, rescaling (halving every count) if the running total
// would overflow the coder's precision window.
func (this *symbolModelCore) rebuild() {
	this.totalCount += this.updateCycle

	if this.totalCount > symbolFreqMax {
		this.totalCount = 0

		for i := range this.freq {
			this.freq[i] = (this.freq[i] + 1) >> 1
			this.totalCount += this.freq[i]
		}
	}

	scale := uint32(0x80000000) / this.totalCount
	sum := uint32(0)

	for i := 0; i < this.numSymbols; i++ {
		this.cumFreq[i] = (scale * sum) >> (31 - symbolFreqBits)
		sum += this.freq[i]
	}

	this.cumFreq[this.numSymbols] = symbolFreqMax

	this.updateCycle = (5 * this.updateCycle) >> 2
	maxCycle := uint32(this.numSymbols+6) << 3

	if this.updateCycle > maxCycle {
		this.updateCycle = maxCycle
	}

	this.symbolsUntilUpdate = this.updateCycle
	this.tableDirty = false
}

// bump records one more occurrence of sym and rebuilds the table once the
// update threshold is reached.
func (this *symbolModelCore) bump(sym int) {
	this.freq[sym]++
	this.symbolsUntilUpdate--

	if this.symbolsUntilUpdate == 0 {
		this.rebuild()
	}
}

// find returns the symbol whose cumulative-frequency interval contains
// scaledValue (0 <= scaledValue < symbolFreqMax), via binary search — the
// decode-side mirror of the encoder's direct cumFreq[sym] lookup. This
// trades an O(1) reverse-lookup table (kanzi's f2s / FastAC's
// decoder_table) for a simpler O(log N) search: these alphabets top out
// at 512 symbols (GPSTIME11's multiplier model), so the constant factor
// is not worth the extra bookkeeping (see DESIGN.md).
func (this *symbolModelCore) find(scaledValue uint32) int {
	lo, hi := 0, this.numSymbols

	for hi-lo > 1 {
		mid := (lo + hi) >> 1

		if this.cumFreq[mid] <= scaledValue {
			lo = mid
		} else {
			hi = mid
		}
	}

	return lo
}

// SymbolEncoderModel is the encode-side adaptive symbol model for an
// N-symbol alphabet. Its cumulative table is valid immediately after
// construction/Reset (eager), since the first EncodeSymbol call needs it.
type SymbolEncoderModel struct {
	core *symbolModelCore
}

// NewSymbolEncoderModel creates a model over numSymbols outcomes.
func NewSymbolEncoderModel(numSymbols int) (*SymbolEncoderModel, error) {
	core, err := newSymbolModelCore(numSymbols)
	if err != nil {
		return nil, err
	}

	m := &SymbolEncoderModel{core: core}
	m.core.rebuild()
	return m, nil
}

// Reset restores the model to its initial state.
func (this *SymbolEncoderModel) Reset() {
	this.core.reset()
	this.core.rebuild()
}

// SymbolDecoderModel is the decode-side adaptive symbol model. Its
// cumulative table is built lazily, on first use after construction or
// Reset, rather than eagerly like the encoder's — a distinct type rather
// than a shared mode flag, so the two call sites can't be confused.
type SymbolDecoderModel struct {
	core *symbolModelCore
}

// NewSymbolDecoderModel creates a model over numSymbols outcomes.
func NewSymbolDecoderModel(numSymbols int) (*SymbolDecoderModel, error) {
	core, err := newSymbolModelCore(numSymbols)
	if err != nil {
		return nil, err
	}

	return &SymbolDecoderModel{core: core}, nil
}

// Reset restores the model to its initial state; the table is rebuilt
// lazily on the next DecodeSymbol call.
func (this *SymbolDecoderModel) Reset() {
	this.core.reset()
}

func (this *SymbolDecoderModel) ensureTable() {
	if this.core.tableDirty {
		this.core.rebuild()
	}
}
