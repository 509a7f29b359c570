package csvcodec

import (
	"github.com/brightfield/csvcodec/internal/settings"
	"github.com/brightfield/csvcodec/rowbuffer"
)

// HeaderPolicy selects how the first row of a CSV is treated.
type HeaderPolicy int

const (
	// HeaderNone treats every row as data; no header row is recognized.
	HeaderNone HeaderPolicy = iota
	// HeaderFirstLine treats row 0 as the header and excludes it from
	// the rows returned by ReadRow.
	HeaderFirstLine
	// HeaderInfer tentatively treats row 0 as a header when every field
	// is non-empty and all fields are pairwise distinct; otherwise it is
	// treated as data. See DESIGN.md, Open Question Decisions, (b).
	HeaderInfer
)

// TrimPolicy selects which scalars are trimmed from field boundaries
// outside of quoting.
type TrimPolicy int

const (
	// TrimNone performs no trimming.
	TrimNone TrimPolicy = iota
	// TrimWhitespace trims the ASCII whitespace scalars space, tab, CR,
	// LF, VT, and FF; other Unicode whitespace is not trimmed.
	TrimWhitespace
	// TrimCustom trims a caller-supplied scalar set (Config.TrimScalars).
	TrimCustom
)

// Encoding enumerates the presumed read/declared write text encodings.
type Encoding int

const (
	// EncodingInferred detects the encoding from a leading BOM, falling
	// back to ASCII/UTF-8 classification. As a WriteEncoding it selects
	// UTF-8.
	EncodingInferred Encoding = iota
	EncodingUTF8
	EncodingUTF16LE
	EncodingUTF16BE
	EncodingUTF32LE
	EncodingUTF32BE
	EncodingASCII
)

// String renders the encoding name.
func (e Encoding) String() string {
	switch e {
	case EncodingInferred:
		return "inferred"
	case EncodingUTF8:
		return "utf-8"
	case EncodingUTF16LE:
		return "utf-16le"
	case EncodingUTF16BE:
		return "utf-16be"
	case EncodingUTF32LE:
		return "utf-32le"
	case EncodingUTF32BE:
		return "utf-32be"
	case EncodingASCII:
		return "ascii"
	default:
		return "unknown"
	}
}

// Config is the frozen configuration shared by Reader and Writer. It is
// resolved once, at construction time, following the teacher's pattern of
// filling in defaults inline (oleg578-swiftcsv's NewReader/NewWriter).
type Config struct {
	// FieldDelimiter is a non-empty sequence of Unicode scalars separating
	// fields within a row. Defaults to a single comma.
	FieldDelimiter []rune
	// RowDelimiter is a non-empty sequence of Unicode scalars separating
	// rows. Defaults to a single line feed.
	RowDelimiter []rune
	// EscapeScalar both opens/closes quoted fields and escapes itself
	// when doubled inside a quoted field. The zero value selects the
	// default '"'; set NoEscape to have no escape scalar at all.
	EscapeScalar rune
	// NoEscape disables quoting entirely when true, overriding the
	// EscapeScalar default.
	NoEscape bool

	Header HeaderPolicy
	Trim   TrimPolicy
	// TrimScalars is consulted only when Trim == TrimCustom.
	TrimScalars []rune

	// ReadEncoding is the presumed encoding for Reader input.
	ReadEncoding Encoding
	// WriteEncoding is the encoding the Writer emits: UTF-8 (the default,
	// also chosen by EncodingInferred), UTF-16LE/BE, UTF-32LE/BE, or ASCII
	// (see internal/encoding's NewSink).
	WriteEncoding Encoding
	// WriteBOM, when true, emits a byte-order mark before the first byte.
	WriteBOM bool

	// ReadBuffer selects the row buffer's read-side eviction strategy.
	ReadBuffer rowbuffer.ReadStrategy
	// WriteBuffer selects the row buffer's write-side eviction strategy.
	WriteBuffer rowbuffer.WriteStrategy

	// NumericStrategy, DateStrategy, and DataStrategy are pass-through
	// hooks for the codec layer's type conversions. They are out of the
	// core's scope (spec §1) but threaded through Config so a caller's
	// decoder/encoder front-end can reach them without a global. Passed
	// as closures, never fetched from package-global state (spec §9,
	// "Mutable global formatters").
	NumericStrategy func(field string) (float64, error)
	DateStrategy    func(field string) (int64, error)
	DataStrategy    func(field string) ([]byte, error)

	resolved bool
}

// resolvedConfig holds the fully-defaulted, validated view of Config plus
// precomputed rune lookups used by the hot scanning loop.
type resolvedConfig struct {
	fieldDelim []rune
	rowDelim   []rune
	escape     rune
	hasEscape  bool

	header HeaderPolicy
	trim   TrimPolicy
	trimOf func(r rune) bool

	readEncoding  Encoding
	writeEncoding Encoding
	writeBOM      bool

	readBuffer  rowbuffer.ReadStrategy
	writeBuffer rowbuffer.WriteStrategy
}

func defaultTrimSet(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n' || r == '\v' || r == '\f'
}

// resolve validates delimiter pairs and fills in defaults by delegating to
// internal/settings, per spec §3/§4's settings resolver, then layers on
// the header/trim/encoding/buffering choices that settings knows nothing
// about.
func resolve(c Config) (*resolvedConfig, error) {
	resolvedDelims, err := settings.Resolve(settings.Raw{
		FieldDelimiter: c.FieldDelimiter,
		RowDelimiter:   c.RowDelimiter,
		EscapeScalar:   c.EscapeScalar,
		NoEscape:       c.NoEscape,
	})
	if err != nil {
		return nil, newError(KindInvalidConfiguration, "%s", err.Error())
	}

	rc := &resolvedConfig{
		fieldDelim:    resolvedDelims.FieldDelimiter,
		rowDelim:      resolvedDelims.RowDelimiter,
		escape:        resolvedDelims.EscapeScalar,
		hasEscape:     resolvedDelims.HasEscape,
		header:        c.Header,
		trim:          c.Trim,
		readEncoding:  c.ReadEncoding,
		writeEncoding: c.WriteEncoding,
		writeBOM:      c.WriteBOM,
		readBuffer:    c.ReadBuffer,
		writeBuffer:   c.WriteBuffer,
	}

	switch c.Trim {
	case TrimWhitespace:
		rc.trimOf = defaultTrimSet
	case TrimCustom:
		set := append([]rune(nil), c.TrimScalars...)
		rc.trimOf = func(r rune) bool { return containsRune(set, r) }
	default:
		rc.trimOf = nil
	}

	return rc, nil
}

func containsRune(set []rune, r rune) bool {
	for _, x := range set {
		if x == r {
			return true
		}
	}
	return false
}
