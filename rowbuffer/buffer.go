// Package rowbuffer implements the indexed row store described in spec
// §4.5: a single data structure parameterized by an eviction strategy,
// with different semantics on the read side (rows already produced) and
// the write side (fields staged for not-yet-written rows). The teacher
// (oleg578/swiftcsv) has no analogue for this — it is purely sequential —
// so this package is new, grounded directly on the spec's strategy table.
package rowbuffer

import (
	"fmt"

	"github.com/puzpuzpuz/xsync/v4"
)

// ReadStrategy selects how previously produced rows are retained.
type ReadStrategy int

const (
	// ReadKeepAll retains every row indefinitely.
	ReadKeepAll ReadStrategy = iota
	// ReadSequential retains at most the most recently produced row.
	ReadSequential

	// The "unfulfilled" strategy (drop rows after first delivery) is
	// reserved per spec §9 Open Question (a) but not implemented; no
	// ReadStrategy constant is defined for it until a concrete policy is
	// specified.
)

// WriteStrategy selects how fields staged for not-yet-written rows are
// retained.
type WriteStrategy int

const (
	// WriteKeepAll retains every (row,field) until Sink.complete flushes
	// them all. Required when headers are unknown, since the writer
	// cannot begin emitting rows until the expected width is known.
	WriteKeepAll WriteStrategy = iota
	// WriteAssembled flushes a row as soon as every field of that row is
	// present contiguously beginning at the writer's next position.
	WriteAssembled
	// WriteSequential keeps only fields of the current row (or later
	// rows known to be monotonically advancing); coordinates behind the
	// writer's focus are rejected.
	WriteSequential
)

// ErrExpiredCache is returned by Read's Get when the read-side strategy
// has already evicted the requested row.
var ErrExpiredCache = fmt.Errorf("rowbuffer: row evicted under sequential read strategy")

// ErrWritingSurpassed is returned by Write's Put when a coordinate falls
// behind the writer's current focus under the sequential write strategy.
var ErrWritingSurpassed = fmt.Errorf("rowbuffer: coordinate is behind the writer's focus")

// Read is the read-side row store: a map from row index to the row's
// fields, keyed by the eviction strategy chosen at construction. The
// keep-all strategy is backed by xsync.Map (github.com/puzpuzpuz/xsync/v4,
// the same dependency oy3o/codec's go.mod requires) purely for its
// generic, allocation-friendly Map[K,V] API — the core remains
// single-threaded per spec §5, so no concurrent access is ever made
// through it.
type Read struct {
	strategy ReadStrategy
	keepAll  *xsync.Map[int, []string]

	// sequential strategy state: at most one row retained.
	haveLast bool
	lastIdx  int
	lastRow  []string
}

// NewRead constructs a Read buffer for the given strategy.
func NewRead(strategy ReadStrategy) *Read {
	r := &Read{strategy: strategy}
	if strategy == ReadKeepAll {
		r.keepAll = xsync.NewMap[int, []string]()
	}
	return r
}

// Store records row at the given index, per the configured strategy.
func (r *Read) Store(index int, row []string) {
	switch r.strategy {
	case ReadKeepAll:
		r.keepAll.Store(index, row)
	default:
		r.haveLast = true
		r.lastIdx = index
		r.lastRow = row
	}
}

// Get retrieves the row at index, reporting ErrExpiredCache if the
// strategy has already evicted it, or (nil, false, nil) if it was never
// produced.
func (r *Read) Get(index int) ([]string, bool, error) {
	switch r.strategy {
	case ReadKeepAll:
		row, ok := r.keepAll.Load(index)
		return row, ok, nil
	default:
		if r.haveLast && r.lastIdx == index {
			return r.lastRow, true, nil
		}
		if r.haveLast && index < r.lastIdx {
			return nil, false, ErrExpiredCache
		}
		return nil, false, nil
	}
}

// Write is the write-side field store: a map from (row,field) to the
// staged value, or a fully-assembled row depending on strategy.
type Write struct {
	strategy WriteStrategy
	fields   map[coord]string
	rows     map[int][]string

	focusRow, focusField int
}

type coord struct{ row, field int }

// NewWrite constructs a Write buffer for the given strategy.
func NewWrite(strategy WriteStrategy) *Write {
	return &Write{
		strategy: strategy,
		fields:   map[coord]string{},
		rows:     map[int][]string{},
	}
}

// Focus reports the writer's current (row,field) position.
func (w *Write) Focus() (row, field int) { return w.focusRow, w.focusField }

// AdvanceFocus moves the writer's focus forward after a coordinate has
// been written through.
func (w *Write) AdvanceFocus(row, field int) {
	if row > w.focusRow || (row == w.focusRow && field >= w.focusField) {
		w.focusRow, w.focusField = row, field+1
		if w.focusField < 0 {
			w.focusField = 0
		}
	}
}

// Put stages value at (row,field). Writing at or ahead of the writer's
// focus always succeeds; writing behind the focus fails under the
// sequential strategy (spec §4.5/§4.7: "writing behind the focus
// fails").
func (w *Write) Put(row, field int, value string) error {
	if w.strategy == WriteSequential && (row < w.focusRow || (row == w.focusRow && field < w.focusField)) {
		return ErrWritingSurpassed
	}
	w.fields[coord{row, field}] = value
	return nil
}

// Take removes and returns the staged value at (row,field), if present.
func (w *Write) Take(row, field int) (string, bool) {
	v, ok := w.fields[coord{row, field}]
	if ok {
		delete(w.fields, coord{row, field})
	}
	return v, ok
}

// Has reports whether a value is staged at (row,field).
func (w *Write) Has(row, field int) bool {
	_, ok := w.fields[coord{row, field}]
	return ok
}

// MaxRow returns the highest row index with any staged field, and
// whether any field is staged at all.
func (w *Write) MaxRow() (int, bool) {
	max := -1
	any := false
	for c := range w.fields {
		any = true
		if c.row > max {
			max = c.row
		}
	}
	return max, any
}

// MaxFieldInRow returns the highest field index staged within row, and
// whether any field is staged in that row.
func (w *Write) MaxFieldInRow(row int) (int, bool) {
	max := -1
	any := false
	for c := range w.fields {
		if c.row != row {
			continue
		}
		any = true
		if c.field > max {
			max = c.field
		}
	}
	return max, any
}
