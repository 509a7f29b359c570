package encoding

import (
	"bufio"
	"io"
	"unicode/utf8"
)

// utf8Source decodes a UTF-8 byte stream into scalars using the standard
// library's rune decoder, which already enforces the spec's overlong,
// surrogate, and out-of-range rejection rules (spec §4.1).
type utf8Source struct {
	r        *bufio.Reader
	offset   int64
	lookahead rune
	haveLook bool
	lookErr  error
}

// NewUTF8Source wraps r as a UTF-8 Source.
func NewUTF8Source(r io.Reader) Source {
	return &utf8Source{r: bufio.NewReader(r)}
}

func (s *utf8Source) fill() (rune, error) {
	r, size, err := s.r.ReadRune()
	if err != nil {
		if err == io.EOF {
			return 0, EOF
		}
		return 0, err
	}
	if r == utf8.RuneError && size == 1 {
		return 0, &InvalidInput{Scheme: UTF8, Offset: s.offset, Reason: "invalid UTF-8 byte sequence"}
	}
	s.offset += int64(size)
	return r, nil
}

func (s *utf8Source) Peek() (rune, error) {
	if s.haveLook {
		return s.lookahead, s.lookErr
	}
	s.lookahead, s.lookErr = s.fill()
	s.haveLook = true
	return s.lookahead, s.lookErr
}

func (s *utf8Source) Next() (rune, error) {
	r, err := s.Peek()
	s.haveLook = false
	return r, err
}

func (s *utf8Source) Offset() int64 { return s.offset }
