package container

import "github.com/brightfield/csvcodec"

// FileDecoder is the root read-side container: kind=file. Its unkeyed
// cursor walks rows in order; its keyed accessor addresses a row directly
// by integer index (spec §4.8: "header lookup on file is disallowed; key
// must be integer").
type FileDecoder struct {
	src    *csvcodec.Source
	cursor int
	path   []any
}

// NewFileDecoder roots a container tree at src.
func NewFileDecoder(src *csvcodec.Source) *FileDecoder {
	return &FileDecoder{src: src}
}

// Next allocates the record at the file's current row cursor and advances
// it, failing with IsAtEnd once the input is exhausted.
func (f *FileDecoder) Next() (*RecordDecoder, error) {
	row := f.cursor
	if f.src.IsRowAtEnd(row) {
		return nil, newErr(csvcodec.KindIsAtEnd, f.path, "no more rows at index %d", row)
	}
	f.cursor++
	return &RecordDecoder{src: f.src, row: row, path: appendPath(f.path, row)}, nil
}

// Record addresses the record at row index key directly. key must be an
// int; file-level lookup by header name is not meaningful, since a header
// names a column, not a row.
func (f *FileDecoder) Record(key any) (*RecordDecoder, error) {
	row, ok := key.(int)
	if !ok {
		return nil, newErr(csvcodec.KindInvalidPath, f.path, "file-level record access requires an integer row index, got %T", key)
	}
	return &RecordDecoder{src: f.src, row: row, path: appendPath(f.path, row)}, nil
}

// SingleValue addresses the file's sole field, valid only when the input
// has exactly one row and that row has exactly one column (spec §4.8).
func (f *FileDecoder) SingleValue() (*FieldDecoder, error) {
	rows := drainRowCount(f.src)
	if rows != 1 {
		return nil, newErr(csvcodec.KindIsNotSingleColumn, f.path, "file has %d rows, single-value access requires exactly 1", rows)
	}
	if _, err := f.src.Field(0, 1); err == nil {
		return nil, newErr(csvcodec.KindIsNotSingleColumn, f.path, "row 0 has more than one column")
	} else if !isKind(err, csvcodec.KindFieldOutOfBounds) {
		return nil, err
	}
	return &FieldDecoder{src: f.src, row: 0, field: 0, path: appendPath(f.path, 0)}, nil
}

// drainRowCount pulls rows until the source reports the input exhausted,
// then returns the total row count. NumRows is otherwise unknown until the
// underlying reader has finished or failed (spec §4.6).
func drainRowCount(src *csvcodec.Source) int {
	for i := 0; ; i++ {
		if src.IsRowAtEnd(i) {
			n, _ := src.NumRows()
			return n
		}
	}
}

// RecordDecoder is a read-side container at kind=record, addressed by a
// fixed row. Its unkeyed cursor walks fields in order; its keyed accessor
// resolves a header name (or integer index) via the source's header map.
type RecordDecoder struct {
	src    *csvcodec.Source
	row    int
	cursor int
	path   []any
}

// Next allocates the field at the record's current field cursor and
// advances it, failing with IsAtEnd once the row is exhausted.
func (r *RecordDecoder) Next() (*FieldDecoder, error) {
	field := r.cursor
	if _, err := r.src.Field(r.row, field); err != nil {
		if isKind(err, csvcodec.KindFieldOutOfBounds) {
			return nil, newErr(csvcodec.KindIsAtEnd, r.path, "no more fields at index %d", field)
		}
		return nil, err
	}
	r.cursor++
	return &FieldDecoder{src: r.src, row: r.row, field: field, path: appendPath(r.path, field)}, nil
}

// Field resolves key (an int index or a header name) to the matching field
// container.
func (r *RecordDecoder) Field(key any) (*FieldDecoder, error) {
	idx, err := r.src.FieldIndexFor(key)
	if err != nil {
		return nil, err
	}
	return &FieldDecoder{src: r.src, row: r.row, field: idx, path: appendPath(r.path, key)}, nil
}

// SingleValue addresses the record's sole field, valid only when the row
// has exactly one column.
func (r *RecordDecoder) SingleValue() (*FieldDecoder, error) {
	if _, err := r.src.Field(r.row, 1); err == nil {
		return nil, newErr(csvcodec.KindIsNotSingleColumn, r.path, "row %d has more than one column", r.row)
	} else if !isKind(err, csvcodec.KindFieldOutOfBounds) {
		return nil, err
	}
	return &FieldDecoder{src: r.src, row: r.row, field: 0, path: appendPath(r.path, 0)}, nil
}

// FieldDecoder is the leaf read-side container at kind=field,
// single-value-only: there is nothing further to descend into.
type FieldDecoder struct {
	src   *csvcodec.Source
	row   int
	field int
	path  []any
	got   bool
}

// Get reads the field's textual value. A FieldDecoder is single-use,
// mirroring Swift Codable's single-value containers: a second call fails
// with AlreadyParsed.
func (d *FieldDecoder) Get() (string, error) {
	if d.got {
		return "", newErr(csvcodec.KindAlreadyParsed, d.path, "field (%d,%d) was already decoded", d.row, d.field)
	}
	d.got = true
	return d.src.Field(d.row, d.field)
}

// Record always fails: nesting depth is capped at file → record → field
// (spec §4.8).
func (d *FieldDecoder) Record(any) (*RecordDecoder, error) {
	return nil, newErr(csvcodec.KindInvalidNestedContainer, d.path, "cannot nest a record container under a field")
}

// Next always fails: nesting depth is capped at file → record → field
// (spec §4.8).
func (d *FieldDecoder) Next() (*RecordDecoder, error) {
	return nil, newErr(csvcodec.KindInvalidNestedContainer, d.path, "cannot nest a record container under a field")
}
