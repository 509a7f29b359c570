package encoding

import (
	"bufio"
	"io"
)

// Open detects the encoding of r (consulting fallback when no BOM is
// present and the leading bytes do not validate as ASCII/UTF-8) and
// returns a Source positioned just past any consumed BOM, plus the
// scheme that was chosen.
func Open(r io.Reader, fallback Scheme) (Source, Scheme, error) {
	br := bufio.NewReader(r)
	scheme, bomLen, err := Detect(br, fallback)
	if err != nil {
		return nil, Unknown, err
	}
	for bomLen > 0 {
		if _, err := br.Discard(bomLen); err != nil {
			return nil, Unknown, err
		}
		bomLen = 0
	}
	return newSourceForScheme(br, scheme), scheme, nil
}

// OpenWithScheme skips detection entirely and builds a Source for an
// explicitly configured encoding, still discarding a matching BOM if one
// is present (a caller-declared encoding may still carry a BOM).
func OpenWithScheme(r io.Reader, scheme Scheme) (Source, error) {
	br := bufio.NewReader(r)
	if head, _ := br.Peek(4); len(head) > 0 {
		if s, n, ok := DetectBOM(head); ok && s == scheme {
			br.Discard(n)
		}
	}
	return newSourceForScheme(br, scheme), nil
}

func newSourceForScheme(r io.Reader, scheme Scheme) Source {
	switch scheme {
	case UTF16LE:
		return NewUTF16Source(r, false)
	case UTF16BE:
		return NewUTF16Source(r, true)
	case UTF32LE:
		return NewUTF32Source(r, false)
	case UTF32BE:
		return NewUTF32Source(r, true)
	case ASCII:
		return NewASCIISource(r)
	default:
		return NewUTF8Source(r)
	}
}
