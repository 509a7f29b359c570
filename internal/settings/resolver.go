// Package settings validates and resolves delimiter configuration: it
// fills in defaults for empty delimiters and the escape scalar, rejects
// field delimiters, row delimiters, and escape scalars that share a
// scalar, and returns the resolved scalar sequences. It works on scalar
// values only and does not check that they are representable in the
// configured text encoding. It knows nothing about readers or writers,
// keeping it the leaf-most configuration dependency.
package settings

import "fmt"

// Raw is the caller-supplied, unvalidated delimiter configuration.
type Raw struct {
	FieldDelimiter []rune
	RowDelimiter   []rune
	EscapeScalar   rune
	NoEscape       bool
}

// Resolved is the validated, defaulted view consumed by the reader and
// writer state machines.
type Resolved struct {
	FieldDelimiter []rune
	RowDelimiter   []rune
	EscapeScalar   rune
	HasEscape      bool
}

// ConfigError reports why a Raw configuration was rejected; it maps
// one-to-one onto csvcodec.KindInvalidConfiguration at the call site.
type ConfigError struct{ Reason string }

func (e *ConfigError) Error() string { return fmt.Sprintf("settings: %s", e.Reason) }

// Resolve defaults empty delimiters (comma / line feed) and the escape
// scalar (double quote unless NoEscape), then validates that the field
// delimiter, row delimiter, and escape scalar are pairwise disjoint — a
// delimiter that could also start another delimiter would make the
// reader's lookahead ambiguous.
func Resolve(raw Raw) (*Resolved, error) {
	out := &Resolved{
		FieldDelimiter: raw.FieldDelimiter,
		RowDelimiter:   raw.RowDelimiter,
	}
	if len(out.FieldDelimiter) == 0 {
		out.FieldDelimiter = []rune{','}
	}
	if len(out.RowDelimiter) == 0 {
		out.RowDelimiter = []rune{'\n'}
	}
	if len(out.FieldDelimiter) == 0 || len(out.RowDelimiter) == 0 {
		return nil, &ConfigError{Reason: "field and row delimiters must be non-empty"}
	}

	if !raw.NoEscape {
		out.EscapeScalar = raw.EscapeScalar
		if out.EscapeScalar == 0 {
			out.EscapeScalar = '"'
		}
		out.HasEscape = true
	}

	if overlaps(out.FieldDelimiter, out.RowDelimiter) {
		return nil, &ConfigError{Reason: "field delimiter and row delimiter must be disjoint"}
	}
	if out.HasEscape {
		if contains(out.FieldDelimiter, out.EscapeScalar) || contains(out.RowDelimiter, out.EscapeScalar) {
			return nil, &ConfigError{Reason: "escape scalar must not overlap field or row delimiter"}
		}
	}
	return out, nil
}

func overlaps(a, b []rune) bool {
	for _, x := range a {
		if contains(b, x) {
			return true
		}
	}
	return false
}

func contains(set []rune, r rune) bool {
	for _, x := range set {
		if x == r {
			return true
		}
	}
	return false
}
