package csvcodec

import (
	"io"

	"github.com/brightfield/csvcodec/rowbuffer"
)

// Sink is the codec bridge's write side (spec §4.7): callers stage values at
// arbitrary (row,field) coordinates and Sink decides, per the configured
// WriteStrategy, when enough is known to push a row through the underlying
// Writer. Grounded on Carlodf-cetl's encoder counterpart to its
// Decoder/RecordIterator split.
type Sink struct {
	writer   *Writer
	buf      *rowbuffer.Write
	strategy rowbuffer.WriteStrategy
	width    int // fixed once known: either len(headers) or the first completed row's width
	base     int // writer rows emitted before staged row 0 (1 when a header row was written)
}

// NewSink constructs a Writer over w using cfg and headers, wrapped with a
// write-side row buffer selected by cfg.WriteBuffer.
func NewSink(w io.Writer, cfg Config, headers []string) (*Sink, error) {
	writer, err := NewWriter(w, cfg, headers)
	if err != nil {
		return nil, err
	}
	s := &Sink{writer: writer, buf: rowbuffer.NewWrite(cfg.WriteBuffer), strategy: cfg.WriteBuffer, base: writer.RowIndex()}
	if len(headers) > 0 {
		s.width = len(headers)
	}
	return s, nil
}

// Put stages value at (rowIndex, fieldIndex). Writing at or ahead of the
// writer's current focus always succeeds; writing behind the focus fails
// with KindWritingSurpassed under the sequential write strategy (spec §4.7).
// The value is staged first; as soon as the row at the writer's focus is
// fully staged (and the strategy allows it), that row is written through.
func (s *Sink) Put(rowIndex, fieldIndex int, value string) error {
	if err := s.buf.Put(rowIndex, fieldIndex, value); err != nil {
		return newError(KindWritingSurpassed, "coordinate (%d,%d) is behind the writer's focus", rowIndex, fieldIndex).
			withContext("row_index", rowIndex).
			withContext("field_index", fieldIndex)
	}
	return s.flushReady()
}

// flushReady writes through every row that is fully staged, contiguously,
// starting at the writer's current row, for as long as the expected row
// width is known. WriteKeepAll never auto-flushes: every row waits for
// Complete (spec §4.5: "retains every ... until complete flushes them").
func (s *Sink) flushReady() error {
	if s.strategy == rowbuffer.WriteKeepAll {
		return nil
	}
	if s.width == 0 {
		s.width = s.writer.ExpectedFields()
	}
	if s.width == 0 {
		return nil // width still unknown; everything waits for Complete
	}

	for {
		row := s.writer.RowIndex() - s.base
		ready := true
		for f := 0; f < s.width; f++ {
			if !s.buf.Has(row, f) {
				ready = false
				break
			}
		}
		if !ready {
			return nil
		}
		if err := s.flushRow(row); err != nil {
			return err
		}
	}
}

func (s *Sink) flushRow(row int) error {
	for f := 0; f < s.width; f++ {
		v, _ := s.buf.Take(row, f)
		if err := s.writer.WriteField(v); err != nil {
			return err
		}
	}
	if err := s.writer.EndRow(); err != nil {
		return err
	}
	s.buf.AdvanceFocus(row, s.width-1)
	return nil
}

// Complete flushes every remaining staged row and field in ascending order,
// padding gaps with empty fields and empty rows as required, then ends the
// underlying encoding (spec §4.7). It fails with KindCorruptedBuffer if
// fields remain staged outside the padded rectangle once flushing is done.
func (s *Sink) Complete() error {
	if s.width == 0 {
		s.width = s.writer.ExpectedFields()
	}
	if s.width == 0 {
		// No row ever reached a known width: infer it from whatever was
		// staged, so Complete can still pad and flush something sane.
		if maxRow, any := s.buf.MaxRow(); any {
			for r := 0; r <= maxRow; r++ {
				if maxField, rowAny := s.buf.MaxFieldInRow(r); rowAny && maxField+1 > s.width {
					s.width = maxField + 1
				}
			}
		}
	}

	if s.width > 0 {
		maxRow, any := s.buf.MaxRow()
		if any && maxRow >= s.writer.RowIndex()-s.base {
			for r := s.writer.RowIndex() - s.base; r <= maxRow; r++ {
				if err := s.flushRow(r); err != nil {
					return err
				}
			}
		}
	}

	if maxRow, any := s.buf.MaxRow(); any {
		return newError(KindCorruptedBuffer, "write buffer has unflushed residue at row %d after completion", maxRow)
	}

	return s.writer.EndEncoding()
}
