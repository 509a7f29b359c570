package csvcodec

import (
	"errors"
	"io"

	"github.com/brightfield/csvcodec/rowbuffer"
)

// Source is the codec bridge's read side (spec §4.6): it gives
// (row,field)-addressed access over a Reader that otherwise only knows how
// to produce rows in order. Grounded on Carlodf-cetl's Decoder/RecordIterator
// split, reworked to the spec's single field(row,col) primitive plus a
// pluggable row buffer instead of cetl's slice-backed record cache.
type Source struct {
	reader *Reader
	buf    *rowbuffer.Read

	headerBuilt bool
	headerIndex map[string]int
	headerErr   *CodecError
}

// NewSource constructs a Reader over r using cfg and wraps it with a row
// buffer selected by cfg.ReadBuffer.
func NewSource(r io.Reader, cfg Config) (*Source, error) {
	reader, err := NewReader(r, cfg)
	if err != nil {
		return nil, err
	}
	return &Source{reader: reader, buf: rowbuffer.NewRead(cfg.ReadBuffer)}, nil
}

// Field returns the value at (rowIndex, fieldIndex), pulling additional rows
// from the underlying Reader as needed. It fails with KindRowOutOfBounds if
// rowIndex is beyond the input, KindFieldOutOfBounds if fieldIndex is beyond
// the row's width, or KindExpiredCache if the row buffer's strategy has
// already evicted rowIndex (spec §4.5/§4.6).
func (s *Source) Field(rowIndex, fieldIndex int) (string, error) {
	row, err := s.rowAt(rowIndex)
	if err != nil {
		return "", err
	}
	if fieldIndex < 0 || fieldIndex >= len(row) {
		return "", newError(KindFieldOutOfBounds, "field %d is out of bounds for row %d (width %d)", fieldIndex, rowIndex, len(row)).
			withContext("row_index", rowIndex).
			withContext("field_index", fieldIndex)
	}
	return row[fieldIndex], nil
}

// rowAt returns the row at index, pulling from the Reader until it has been
// produced, already buffered, or definitively unreachable.
func (s *Source) rowAt(index int) ([]string, error) {
	if index < s.reader.RowIndex() {
		row, ok, err := s.buf.Get(index)
		if err != nil {
			return nil, newError(KindExpiredCache, "row %d was evicted by the read buffer's strategy", index).
				withContext("row_index", index)
		}
		if !ok {
			return nil, newError(KindRowOutOfBounds, "row %d is out of bounds", index).
				withContext("row_index", index)
		}
		return row, nil
	}

	for s.reader.RowIndex() <= index {
		if s.reader.Status() == StatusFailed {
			return nil, s.reader.err
		}
		produced := s.reader.RowIndex()
		row, err := s.reader.ReadRow()
		if errors.Is(err, io.EOF) {
			return nil, newError(KindRowOutOfBounds, "row %d is out of bounds", index).
				withContext("row_index", index)
		}
		if err != nil {
			return nil, err
		}
		s.buf.Store(produced, row)
	}

	row, ok, err := s.buf.Get(index)
	if err != nil {
		return nil, newError(KindExpiredCache, "row %d was evicted by the read buffer's strategy", index).
			withContext("row_index", index)
	}
	if !ok {
		return nil, newError(KindRowOutOfBounds, "row %d is out of bounds", index).
			withContext("row_index", index)
	}
	return row, nil
}

// NumRows reports the total row count, which is only known once the
// underlying Reader has finished or failed.
func (s *Source) NumRows() (int, bool) {
	if s.reader.Status() == StatusActive {
		return 0, false
	}
	return s.reader.RowIndex(), true
}

// IsRowAtEnd reports whether index is beyond the input, pulling rows as
// needed to find out.
func (s *Source) IsRowAtEnd(index int) bool {
	_, err := s.rowAt(index)
	if err == nil {
		return false
	}
	var cerr *CodecError
	return errors.As(err, &cerr) && cerr.Kind == KindRowOutOfBounds
}

// Headers returns the resolved header row, forcing row 0 through the
// Reader first if header resolution hasn't happened yet. Returns nil when
// cfg.Header is HeaderNone or HeaderInfer decided row 0 was data.
func (s *Source) Headers() []string {
	if s.reader.Headers() == nil {
		s.rowAt(0)
	}
	return s.reader.Headers()
}

// FieldIndexFor resolves key to a field index. An int key is returned as-is;
// a string key is resolved against the Reader's header row, built lazily on
// first use (spec §4.6: EmptyHeader, InvalidHashableHeader, UnmatchedHeader).
func (s *Source) FieldIndexFor(key any) (int, error) {
	if idx, ok := key.(int); ok {
		return idx, nil
	}
	name, ok := key.(string)
	if !ok {
		return 0, newError(KindMismatchError, "header key must be an int or a string, got %T", key)
	}

	if !s.headerBuilt {
		s.buildHeaderIndex()
	}
	if s.headerErr != nil {
		return 0, s.headerErr
	}
	idx, ok := s.headerIndex[name]
	if !ok {
		return 0, newError(KindUnmatchedHeader, "header %q not found", name).withContext("header", name)
	}
	return idx, nil
}

func (s *Source) buildHeaderIndex() {
	s.headerBuilt = true
	if s.reader.Headers() == nil {
		// Force the reader past row 0 so a HeaderFirstLine/HeaderInfer
		// policy has had a chance to resolve the header row.
		s.rowAt(0)
	}
	headers := s.reader.Headers()
	if len(headers) == 0 {
		s.headerErr = newError(KindEmptyHeader, "reader has no header row")
		return
	}
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		if _, dup := idx[h]; dup {
			s.headerErr = newError(KindInvalidHashableHeader, "duplicate header name %q", h).withContext("header", h)
			return
		}
		idx[h] = i
	}
	s.headerIndex = idx
}
