package encoding

import (
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NewUTF16Source wraps r, decoding big- or little-endian UTF-16 into
// scalars. It is grounded on golang.org/x/text/encoding/unicode, the same
// package family demen1n/dbf imports for its encoding needs: the UTF-16
// decoder is run as a transform.Reader that re-encodes to UTF-8, and the
// resulting byte stream is handed to the UTF-8 scalar source (utf8.go), so the
// surrogate-pairing logic is entirely the library's, not hand-rolled.
func NewUTF16Source(r io.Reader, bigEndian bool) Source {
	endian := unicode.LittleEndian
	if bigEndian {
		endian = unicode.BigEndian
	}
	decoder := unicode.UTF16(endian, unicode.IgnoreBOM).NewDecoder()
	return NewUTF8Source(transform.NewReader(r, decoder))
}
