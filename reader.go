package csvcodec

import (
	"io"

	"github.com/brightfield/csvcodec/internal/encoding"
)

// Status reflects the lifecycle of a Reader, per spec §3's Reader state
// entity: "status in {active, finished, failed}".
type Status int

const (
	StatusActive Status = iota
	StatusFinished
	StatusFailed
)

// Reader is the streaming CSV reader state machine (spec §4.3): it pulls
// scalars from an encoding.Source, classifies them, and emits rows as
// string slices. Grounded on oleg578-swiftcsv/reader.go's buffered
// scanning loop, generalized from single bytes to Unicode scalars and
// from single-byte delimiters to arbitrary-length scalar sequences.
type Reader struct {
	cfg    *resolvedConfig
	src    encoding.Source
	scheme encoding.Scheme

	lookahead []rune // pushback queue for multi-scalar delimiter matching
	atEOF     bool   // true once src has reported encoding.EOF

	status Status
	err    error

	headers        []string
	headerResolved bool // true once header policy has decided row 0's fate
	rawRowsSeen    int  // physical rows scanned, including a header row
	expectedFields int  // 0 until the first physical row is emitted
	haveExpected   bool
	nextRowIndex   int // caller-visible index of the row ReadRow will produce next
}

// NewReader constructs a Reader over r using cfg. The encoding is detected
// (or taken from cfg.ReadEncoding when not EncodingInferred) before the
// first scalar is read.
func NewReader(r io.Reader, cfg Config) (*Reader, error) {
	rc, err := resolve(cfg)
	if err != nil {
		return nil, err
	}

	var src encoding.Source
	var scheme encoding.Scheme
	if rc.readEncoding == EncodingInferred {
		src, scheme, err = encoding.Open(r, encoding.Unknown)
		if err != nil {
			return nil, wrapEncodingError(err)
		}
	} else {
		scheme = schemeFor(rc.readEncoding)
		src, err = encoding.OpenWithScheme(r, scheme)
		if err != nil {
			return nil, wrapEncodingError(err)
		}
	}

	return &Reader{cfg: rc, src: src, scheme: scheme}, nil
}

func schemeFor(e Encoding) encoding.Scheme {
	switch e {
	case EncodingUTF8:
		return encoding.UTF8
	case EncodingUTF16LE:
		return encoding.UTF16LE
	case EncodingUTF16BE:
		return encoding.UTF16BE
	case EncodingUTF32LE:
		return encoding.UTF32LE
	case EncodingUTF32BE:
		return encoding.UTF32BE
	case EncodingASCII:
		return encoding.ASCII
	default:
		return encoding.UTF8
	}
}

func wrapEncodingError(err error) error {
	if err == nil {
		return nil
	}
	if inv, ok := err.(*encoding.InvalidInput); ok {
		return newError(KindInvalidInput, "%s", inv.Error()).wrap(err)
	}
	return newError(KindIOFailure, "%s", err.Error()).wrap(err)
}

// Status reports the reader's current lifecycle state.
func (r *Reader) Status() Status { return r.status }

// Headers returns the header row, or nil if none was configured/inferred.
func (r *Reader) Headers() []string { return r.headers }

// RowIndex reports the index of the row ReadRow will produce next.
func (r *Reader) RowIndex() int { return r.nextRowIndex }

// Count reports the best-known (rows read, expected fields per row).
func (r *Reader) Count() (rowsRead, expectedFields int) {
	return r.nextRowIndex, r.expectedFields
}

// Encoding reports the scheme that was detected or configured.
func (r *Reader) Encoding() encoding.Scheme { return r.scheme }

// ReadRow returns the next data row, or io.EOF once the input is
// exhausted. Once a failure occurs, status transitions to StatusFailed
// permanently and every subsequent call returns the same error.
func (r *Reader) ReadRow() ([]string, error) {
	if r.status == StatusFailed {
		return nil, r.err
	}
	if r.status == StatusFinished {
		return nil, io.EOF
	}

	for {
		row, eof, err := r.scanRow()
		if err != nil {
			r.status = StatusFailed
			r.err = err
			return nil, err
		}
		if eof {
			r.status = StatusFinished
			return nil, io.EOF
		}

		if err := r.checkWidth(row); err != nil {
			r.status = StatusFailed
			r.err = err
			return nil, err
		}
		r.rawRowsSeen++

		if !r.headerResolved {
			r.headerResolved = true
			switch r.cfg.header {
			case HeaderFirstLine:
				r.headers = row
				continue // row 0 was the header; read the next physical row as data row 0
			case HeaderInfer:
				if isPlausibleHeader(row) {
					r.headers = row
					continue
				}
			}
		}

		r.nextRowIndex++
		return row, nil
	}
}

// isPlausibleHeader implements Open Question Decision (b): the first row
// is a header only when every field is non-empty and all fields are
// pairwise distinct.
func isPlausibleHeader(row []string) bool {
	seen := make(map[string]struct{}, len(row))
	for _, f := range row {
		if f == "" {
			return false
		}
		if _, dup := seen[f]; dup {
			return false
		}
		seen[f] = struct{}{}
	}
	return true
}

// checkWidth enforces spec §3/§4.3's row-width invariant: row 0 (which
// may be the header row) fixes the expected width; every later row must
// match it exactly.
func (r *Reader) checkWidth(row []string) error {
	if !r.haveExpected {
		r.haveExpected = true
		r.expectedFields = len(row)
		return nil
	}
	if len(row) != r.expectedFields {
		return newError(KindInvalidInput, "row %d has %d fields, expected %d", r.rawRowsSeen, len(row), r.expectedFields).
			withContext("row_index", r.rawRowsSeen).
			withContext("field_count", len(row)).
			withContext("expected_field_count", r.expectedFields)
	}
	return nil
}

// --- scalar scanning state machine (spec §4.3) ---

type scanState int

const (
	stateStart scanState = iota
	stateUnquoted
	stateQuoted
	stateQuotedEscape
)

// scanRow scans one physical row (including a header row, when present)
// into its raw fields, honoring quoting, multi-scalar delimiters, and
// trim policy. eof is true only when the input ended with no pending
// content at all (no row to return).
func (r *Reader) scanRow() (row []string, eof bool, err error) {
	var fields []string
	var cur []rune
	state := stateStart
	sawContentInRow := false
	fieldHasContent := false
	fieldQuoted := false

	flushField := func() {
		fields = append(fields, r.applyTrim(cur, fieldQuoted))
		cur = nil
		fieldHasContent = false
		fieldQuoted = false
	}

	for {
		switch state {
		case stateStart, stateUnquoted:
			if !fieldHasContent && r.cfg.trimOf != nil {
				if err := r.skipLeadingTrim(); err != nil {
					return nil, false, err
				}
			}

			sc, perr := r.peek(1)
			if perr == encoding.EOF {
				if !sawContentInRow && len(fields) == 0 && len(cur) == 0 {
					return nil, true, nil
				}
				flushField()
				return fields, false, nil
			}
			if perr != nil {
				return nil, false, wrapEncodingError(perr)
			}

			if matched, n := r.matchDelim(r.cfg.fieldDelim); matched {
				r.advance(n)
				flushField()
				sawContentInRow = true
				state = stateStart
				continue
			}
			if matched, n := r.matchDelim(r.cfg.rowDelim); matched {
				r.advance(n)
				flushField()
				return fields, false, nil
			}

			if r.cfg.hasEscape && sc == r.cfg.escape && !fieldHasContent {
				r.advance(1)
				fieldQuoted = true
				fieldHasContent = true
				state = stateQuoted
				continue
			}

			r.advance(1)
			cur = append(cur, sc)
			fieldHasContent = true
			sawContentInRow = true
			state = stateUnquoted

		case stateQuoted:
			sc, perr := r.peek(1)
			if perr == encoding.EOF {
				return nil, false, newError(KindInvalidInput, "unterminated quoted field").
					withContext("row_index", r.rawRowsSeen)
			}
			if perr != nil {
				return nil, false, wrapEncodingError(perr)
			}
			if r.cfg.hasEscape && sc == r.cfg.escape {
				r.advance(1)
				state = stateQuotedEscape
				continue
			}
			r.advance(1)
			cur = append(cur, sc)

		case stateQuotedEscape:
			sc, perr := r.peek(1)
			if perr == encoding.EOF {
				flushField()
				return fields, false, nil
			}
			if perr != nil {
				return nil, false, wrapEncodingError(perr)
			}
			if r.cfg.hasEscape && sc == r.cfg.escape {
				r.advance(1)
				cur = append(cur, sc)
				state = stateQuoted
				continue
			}
			if matched, n := r.matchDelim(r.cfg.fieldDelim); matched {
				r.advance(n)
				flushField()
				sawContentInRow = true
				state = stateStart
				continue
			}
			if matched, n := r.matchDelim(r.cfg.rowDelim); matched {
				r.advance(n)
				flushField()
				return fields, false, nil
			}
			return nil, false, newError(KindInvalidInput, "unexpected scalar after closing quote").
				withContext("row_index", r.rawRowsSeen)
		}
	}
}

// applyTrim trims a field's trailing edge when unquoted (leading trim
// already happened in skipLeadingTrim before any content was buffered).
// Quoted field content is never trimmed (spec §4.3: "Scalars inside a
// quoted field are never trimmed.").
func (r *Reader) applyTrim(field []rune, quoted bool) string {
	if quoted || r.cfg.trimOf == nil {
		return string(field)
	}
	end := len(field)
	for end > 0 && r.cfg.trimOf(field[end-1]) {
		end--
	}
	return string(field[:end])
}

// skipLeadingTrim consumes leading trim-set scalars at a field's start,
// before any quote or content, stopping if the scalars form the start of
// a delimiter (a delimiter must never be silently absorbed as trim).
func (r *Reader) skipLeadingTrim() error {
	for {
		sc, perr := r.peek(1)
		if perr == encoding.EOF {
			return nil
		}
		if perr != nil {
			return wrapEncodingError(perr)
		}
		if !r.cfg.trimOf(sc) {
			return nil
		}
		if matched, _ := r.matchDelim(r.cfg.fieldDelim); matched {
			return nil
		}
		if matched, _ := r.matchDelim(r.cfg.rowDelim); matched {
			return nil
		}
		r.advance(1)
	}
}

// peek returns the scalar at lookahead position n (1-based; pulling from
// src as needed) without consuming it.
func (r *Reader) peek(n int) (rune, error) {
	if err := r.need(n); err != nil {
		return 0, err
	}
	if len(r.lookahead) < n {
		return 0, encoding.EOF
	}
	return r.lookahead[n-1], nil
}

// need ensures at least n scalars are buffered in lookahead, short of
// EOF.
func (r *Reader) need(n int) error {
	for len(r.lookahead) < n {
		if r.atEOF {
			return nil
		}
		sc, err := r.src.Next()
		if err == encoding.EOF {
			r.atEOF = true
			return nil
		}
		if err != nil {
			return err
		}
		r.lookahead = append(r.lookahead, sc)
	}
	return nil
}

// matchDelim reports whether delim matches the scalars currently at the
// front of lookahead, pulling additional scalars as needed. A partial
// match that fails is never consumed — the buffered scalars remain
// available to be read as ordinary field content (spec §4.3: "A
// partially matched prefix that fails must be flushed back into the
// current field verbatim").
func (r *Reader) matchDelim(delim []rune) (bool, int) {
	if err := r.need(len(delim)); err != nil {
		return false, 0
	}
	if len(r.lookahead) < len(delim) {
		return false, 0
	}
	for i, want := range delim {
		if r.lookahead[i] != want {
			return false, 0
		}
	}
	return true, len(delim)
}

// advance drops n scalars from the front of the lookahead queue; they
// have already been classified by the caller (as field content, a
// delimiter, or an escape).
func (r *Reader) advance(n int) {
	r.lookahead = append([]rune(nil), r.lookahead[n:]...)
}
