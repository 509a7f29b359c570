// Package encoding decodes byte streams of unknown or declared encoding
// into Unicode scalar values, with a single-scalar lookahead, per spec
// §4.1/§4.2. It is the leaf dependency of the codec: every other package
// in this module reads scalars, never raw bytes, once past this layer.
package encoding

import "fmt"

// Scheme enumerates the text encodings the detector and scalar source
// recognize.
type Scheme int

const (
	Unknown Scheme = iota
	UTF8
	UTF16LE
	UTF16BE
	UTF32LE
	UTF32BE
	ASCII
)

// String renders the scheme name for diagnostics.
func (s Scheme) String() string {
	switch s {
	case UTF8:
		return "utf-8"
	case UTF16LE:
		return "utf-16le"
	case UTF16BE:
		return "utf-16be"
	case UTF32LE:
		return "utf-32le"
	case UTF32BE:
		return "utf-32be"
	case ASCII:
		return "ascii"
	default:
		return "unknown"
	}
}

// InvalidInput is returned by a Source when a malformed byte sequence is
// encountered, per spec §4.2 ("Any malformed sequence fails with
// InvalidInput").
type InvalidInput struct {
	Scheme Scheme
	Offset int64
	Reason string
}

func (e *InvalidInput) Error() string {
	return fmt.Sprintf("encoding: invalid %s input at offset %d: %s", e.Scheme, e.Offset, e.Reason)
}

// EOF is the terminal sentinel returned by Peek/Next once the underlying
// stream is exhausted. It is distinct from io.EOF so callers cannot
// confuse scalar-level exhaustion with a byte-level read error; Source
// implementations translate io.EOF from their underlying reader into EOF.
var EOF = fmt.Errorf("encoding: end of scalar stream")
