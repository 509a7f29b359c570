package csvcodec

import (
	"io"

	"github.com/brightfield/csvcodec/internal/encoding"
)

// Writer is the streaming CSV writer state machine (spec §4.4). Grounded
// on oleg578-swiftcsv/writer.go's quote/escape-doubling writeField loop,
// generalized to multi-scalar delimiters and an arbitrary declared text
// encoding via internal/encoding.Sink.
type Writer struct {
	cfg  *resolvedConfig
	sink encoding.Sink

	rowIndex       int
	fieldIndex     int
	expectedFields int
	haveExpected   bool

	status Status
	err    error
}

// NewWriter constructs a Writer over w using cfg. If headers is non-empty,
// NewWriter itself writes it as row 0 before returning, which fixes the
// expected width; writing the header is not deferred to the first
// WriteField or EndEncoding call.
func NewWriter(w io.Writer, cfg Config, headers []string) (*Writer, error) {
	rc, err := resolve(cfg)
	if err != nil {
		return nil, err
	}
	scheme := schemeFor(rc.writeEncoding)
	if rc.writeEncoding == EncodingInferred {
		scheme = encoding.UTF8
	}
	wr := &Writer{cfg: rc, sink: encoding.NewSink(w, scheme, rc.writeBOM)}
	if len(headers) > 0 {
		if err := wr.writeHeaderRow(headers); err != nil {
			return nil, err
		}
	}
	return wr, nil
}

func (w *Writer) writeHeaderRow(headers []string) error {
	for _, h := range headers {
		if err := w.WriteField(h); err != nil {
			return err
		}
	}
	return w.EndRow()
}

// RowIndex reports the row the writer is currently assembling.
func (w *Writer) RowIndex() int { return w.rowIndex }

// FieldIndex reports the field position within the current row.
func (w *Writer) FieldIndex() int { return w.fieldIndex }

// ExpectedFields reports the width fixed by row 0, or 0 if no row has
// been completed yet.
func (w *Writer) ExpectedFields() int { return w.expectedFields }

// Status reports the writer's lifecycle state.
func (w *Writer) Status() Status { return w.status }

// WriteField emits a single field value, quoting it if required. The
// field delimiter is emitted before every field except the first in a
// row (spec §4.4).
func (w *Writer) WriteField(value string) error {
	if w.status == StatusFailed {
		return w.err
	}
	if w.fieldIndex > 0 {
		if err := w.writeScalars(w.cfg.fieldDelim); err != nil {
			return w.fail(newError(KindIOFailure, "%s", err.Error()).wrap(err))
		}
	}
	if err := w.writeValue(value); err != nil {
		return w.fail(err)
	}
	w.fieldIndex++
	return nil
}

// needsQuote reports whether value must be quoted: it contains a field
// delimiter, row delimiter, or escape scalar, or — when trim is
// configured — a leading/trailing scalar of the trim set that would
// otherwise be silently stripped on read-back (spec §4.4).
func (w *Writer) needsQuote(value string) bool {
	runes := []rune(value)
	for i, r := range runes {
		if w.cfg.hasEscape && r == w.cfg.escape {
			return true
		}
		if hasPrefixAt(runes, i, w.cfg.fieldDelim) || hasPrefixAt(runes, i, w.cfg.rowDelim) {
			return true
		}
	}
	if w.cfg.trimOf != nil && len(runes) > 0 {
		if w.cfg.trimOf(runes[0]) || w.cfg.trimOf(runes[len(runes)-1]) {
			return true
		}
	}
	return false
}

func hasPrefixAt(runes []rune, i int, prefix []rune) bool {
	if i+len(prefix) > len(runes) {
		return false
	}
	for k, p := range prefix {
		if runes[i+k] != p {
			return false
		}
	}
	return true
}

func (w *Writer) writeValue(value string) error {
	if !w.needsQuote(value) {
		return w.writeScalars([]rune(value))
	}
	if !w.cfg.hasEscape {
		return newError(KindInvalidConfiguration, "field requires quoting but no escape scalar is configured")
	}
	if err := w.sink.WriteRune(w.cfg.escape); err != nil {
		return newError(KindIOFailure, "%s", err.Error()).wrap(err)
	}
	for _, r := range value {
		if r == w.cfg.escape {
			if err := w.sink.WriteRune(w.cfg.escape); err != nil {
				return newError(KindIOFailure, "%s", err.Error()).wrap(err)
			}
		}
		if err := w.sink.WriteRune(r); err != nil {
			return newError(KindIOFailure, "%s", err.Error()).wrap(err)
		}
	}
	if err := w.sink.WriteRune(w.cfg.escape); err != nil {
		return newError(KindIOFailure, "%s", err.Error()).wrap(err)
	}
	return nil
}

func (w *Writer) writeScalars(scalars []rune) error {
	for _, r := range scalars {
		if err := w.sink.WriteRune(r); err != nil {
			return err
		}
	}
	return nil
}

// EndRow emits the row delimiter, advances RowIndex, and resets
// FieldIndex. After the first EndRow, ExpectedFields is fixed; every
// later EndRow must find FieldIndex == ExpectedFields or it fails with
// InvalidFieldCount (spec §4.4).
func (w *Writer) EndRow() error {
	if w.status == StatusFailed {
		return w.err
	}
	if !w.haveExpected {
		w.haveExpected = true
		w.expectedFields = w.fieldIndex
	} else if w.fieldIndex != w.expectedFields {
		return w.fail(newError(KindInvalidFieldCount, "row %d has %d fields, expected %d", w.rowIndex, w.fieldIndex, w.expectedFields).
			withContext("row_index", w.rowIndex).
			withContext("field_count", w.fieldIndex).
			withContext("expected_field_count", w.expectedFields))
	}
	if err := w.writeScalars(w.cfg.rowDelim); err != nil {
		return w.fail(newError(KindIOFailure, "%s", err.Error()).wrap(err))
	}
	w.rowIndex++
	w.fieldIndex = 0
	return nil
}

// EndEncoding flushes the sink. It fails if a row is partially written
// (FieldIndex != 0) per spec §4.4.
func (w *Writer) EndEncoding() error {
	if w.status == StatusFailed {
		return w.err
	}
	if w.fieldIndex != 0 {
		return w.fail(newError(KindInvalidInput, "row %d is partially written (%d of %d fields)", w.rowIndex, w.fieldIndex, w.expectedFields))
	}
	if err := w.sink.Flush(); err != nil {
		return w.fail(newError(KindIOFailure, "%s", err.Error()).wrap(err))
	}
	w.status = StatusFinished
	return nil
}

func (w *Writer) fail(err *CodecError) error {
	w.status = StatusFailed
	w.err = err
	return err
}
