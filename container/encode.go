package container

import "github.com/brightfield/csvcodec"

// FileEncoder is the root write-side container: kind=file. Its unkeyed
// cursor allocates successive rows; its keyed accessor addresses a row
// directly by integer index.
type FileEncoder struct {
	sink   *csvcodec.Sink
	cursor int
	path   []any
}

// NewFileEncoder roots a container tree at sink.
func NewFileEncoder(sink *csvcodec.Sink) *FileEncoder {
	return &FileEncoder{sink: sink}
}

// Next allocates the record at the file's current row cursor and advances
// it. Writing is open-ended: there is no upper bound to fail against.
func (f *FileEncoder) Next() *RecordEncoder {
	row := f.cursor
	f.cursor++
	return &RecordEncoder{sink: f.sink, row: row, path: appendPath(f.path, row)}
}

// Record addresses the record at row index key directly. key must be an
// int; a file-level write has no header to resolve a name against.
func (f *FileEncoder) Record(key any) (*RecordEncoder, error) {
	row, ok := key.(int)
	if !ok {
		return nil, newErr(csvcodec.KindInvalidPath, f.path, "file-level record access requires an integer row index, got %T", key)
	}
	return &RecordEncoder{sink: f.sink, row: row, path: appendPath(f.path, row)}, nil
}

// SingleValue addresses the file's sole field: row 0, field 0. It fails
// with IsNotSingleColumn once Next has allocated a row through this file
// container; rows addressed through Record are not tracked.
func (f *FileEncoder) SingleValue() (*FieldEncoder, error) {
	if f.cursor != 0 {
		return nil, newErr(csvcodec.KindIsNotSingleColumn, f.path, "file already has %d row(s) staged", f.cursor)
	}
	return &FieldEncoder{sink: f.sink, row: 0, field: 0, path: appendPath(f.path, 0)}, nil
}

// Complete flushes every staged row/field and ends the underlying encoding
// (spec §4.7).
func (f *FileEncoder) Complete() error {
	return f.sink.Complete()
}

// RecordEncoder is a write-side container at kind=record, addressed by a
// fixed row. Its unkeyed cursor allocates successive fields; its keyed
// accessor addresses a field by integer index only.
type RecordEncoder struct {
	sink   *csvcodec.Sink
	row    int
	cursor int
	path   []any
}

// Next allocates the field at the record's current field cursor and
// advances it.
func (r *RecordEncoder) Next() *FieldEncoder {
	field := r.cursor
	r.cursor++
	return &FieldEncoder{sink: r.sink, row: r.row, field: field, path: appendPath(r.path, field)}
}

// Field addresses field index key directly. Unlike the read side, the
// write-side sink has no header map to resolve a string key against
// (headers are supplied once, up front, at Sink construction); key must be
// an int.
func (r *RecordEncoder) Field(key any) (*FieldEncoder, error) {
	idx, ok := key.(int)
	if !ok {
		return nil, newErr(csvcodec.KindInvalidPath, r.path, "record-level field access requires an integer field index, got %T", key)
	}
	return &FieldEncoder{sink: r.sink, row: r.row, field: idx, path: appendPath(r.path, key)}, nil
}

// SingleValue addresses the record's sole field: field 0. It fails with
// IsNotSingleColumn once Next has allocated a field through this record
// container; fields addressed through Field are not tracked.
func (r *RecordEncoder) SingleValue() (*FieldEncoder, error) {
	if r.cursor != 0 {
		return nil, newErr(csvcodec.KindIsNotSingleColumn, r.path, "row %d already has %d field(s) staged", r.row, r.cursor)
	}
	return &FieldEncoder{sink: r.sink, row: r.row, field: 0, path: appendPath(r.path, 0)}, nil
}

// FieldEncoder is the leaf write-side container at kind=field,
// single-value-only.
type FieldEncoder struct {
	sink  *csvcodec.Sink
	row   int
	field int
	path  []any
	set   bool
}

// Set stages the field's textual value. A FieldEncoder is single-use: a
// second call fails with AlreadyParsed.
func (e *FieldEncoder) Set(value string) error {
	if e.set {
		return newErr(csvcodec.KindAlreadyParsed, e.path, "field (%d,%d) was already encoded", e.row, e.field)
	}
	e.set = true
	return e.sink.Put(e.row, e.field, value)
}

// Record always fails: nesting depth is capped at file → record → field
// (spec §4.8).
func (e *FieldEncoder) Record(any) (*RecordEncoder, error) {
	return nil, newErr(csvcodec.KindInvalidNestedContainer, e.path, "cannot nest a record container under a field")
}

// Next always fails: nesting depth is capped at file → record → field
// (spec §4.8).
func (e *FieldEncoder) Next() (*RecordEncoder, error) {
	return nil, newErr(csvcodec.KindInvalidNestedContainer, e.path, "cannot nest a record container under a field")
}
