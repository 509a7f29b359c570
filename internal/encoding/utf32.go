package encoding

import (
	"encoding/binary"
	"io"
)

// utf32Source decodes a UTF-32 byte stream four bytes at a time. There is
// no UTF-32 codec in golang.org/x/text (it ships UTF-16 and legacy 8-bit
// code pages only) and no other repo in the retrieval pack decodes
// UTF-32, so this is the one scalar decoder implemented directly over the
// standard library (encoding/binary) — see DESIGN.md.
type utf32Source struct {
	r         io.Reader
	order     binary.ByteOrder
	offset    int64
	lookahead rune
	haveLook  bool
	lookErr   error
}

// NewUTF32Source wraps r, decoding four-byte little- or big-endian code
// points per scalar.
func NewUTF32Source(r io.Reader, bigEndian bool) Source {
	var order binary.ByteOrder = binary.LittleEndian
	if bigEndian {
		order = binary.BigEndian
	}
	return &utf32Source{r: r, order: order}
}

func (s *utf32Source) fill() (rune, error) {
	var buf [4]byte
	n, err := io.ReadFull(s.r, buf[:])
	if n == 0 && err == io.EOF {
		return 0, EOF
	}
	if err != nil {
		if err == io.ErrUnexpectedEOF {
			return 0, &InvalidInput{Scheme: s.scheme(), Offset: s.offset, Reason: "truncated UTF-32 code unit"}
		}
		return 0, err
	}
	cp := s.order.Uint32(buf[:])
	if cp > 0x10FFFF || (cp >= 0xD800 && cp <= 0xDFFF) {
		return 0, &InvalidInput{Scheme: s.scheme(), Offset: s.offset, Reason: "code point out of range or a surrogate"}
	}
	s.offset += 4
	return rune(cp), nil
}

func (s *utf32Source) scheme() Scheme {
	if s.order == binary.BigEndian {
		return UTF32BE
	}
	return UTF32LE
}

func (s *utf32Source) Peek() (rune, error) {
	if s.haveLook {
		return s.lookahead, s.lookErr
	}
	s.lookahead, s.lookErr = s.fill()
	s.haveLook = true
	return s.lookahead, s.lookErr
}

func (s *utf32Source) Next() (rune, error) {
	r, err := s.Peek()
	s.haveLook = false
	return r, err
}

func (s *utf32Source) Offset() int64 { return s.offset }
