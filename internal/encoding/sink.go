package encoding

import (
	"bufio"
	"encoding/binary"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Sink is the write-side counterpart of Source: it encodes scalars into
// bytes of a declared scheme and flushes to an underlying io.Writer.
type Sink interface {
	WriteRune(r rune) error
	Flush() error
}

type utf8Sink struct{ w *bufio.Writer }

// NewUTF8Sink wraps w, encoding scalars as UTF-8.
func NewUTF8Sink(w io.Writer) Sink { return &utf8Sink{w: bufio.NewWriter(w)} }

func (s *utf8Sink) WriteRune(r rune) error {
	_, err := s.w.WriteRune(r)
	return err
}
func (s *utf8Sink) Flush() error { return s.w.Flush() }

type asciiSink struct{ w *bufio.Writer }

// NewASCIISink wraps w, rejecting any scalar above U+007F.
func NewASCIISink(w io.Writer) Sink { return &asciiSink{w: bufio.NewWriter(w)} }

func (s *asciiSink) WriteRune(r rune) error {
	if r > 0x7F {
		return &InvalidInput{Scheme: ASCII, Reason: "scalar outside ASCII range"}
	}
	return s.w.WriteByte(byte(r))
}
func (s *asciiSink) Flush() error { return s.w.Flush() }

// utf16Sink re-encodes UTF-8 bytes (produced by an inner bufio.Writer) into
// UTF-16 via golang.org/x/text/encoding/unicode's encoder, the same
// package family demen1n/dbf imports — grounded alongside the UTF-16
// Source in utf16.go.
type utf16Sink struct {
	tw  *transform.Writer
	buf *bufio.Writer
}

// NewUTF16Sink wraps w, encoding scalars as big- or little-endian UTF-16.
func NewUTF16Sink(w io.Writer, bigEndian bool, writeBOM bool) Sink {
	endian := unicode.LittleEndian
	bomPolicy := unicode.IgnoreBOM
	if bigEndian {
		endian = unicode.BigEndian
	}
	if writeBOM {
		bomPolicy = unicode.ExpectBOM
	}
	encoder := unicode.UTF16(endian, bomPolicy).NewEncoder()
	// With a BOM-writing policy the encoder emits the BOM itself ahead of
	// the first encoded unit.
	tw := transform.NewWriter(w, encoder)
	return &utf16Sink{tw: tw, buf: bufio.NewWriter(tw)}
}

func (s *utf16Sink) WriteRune(r rune) error {
	_, err := s.buf.WriteRune(r)
	return err
}
func (s *utf16Sink) Flush() error {
	if err := s.buf.Flush(); err != nil {
		return err
	}
	return s.tw.Close()
}

type utf32Sink struct {
	w     io.Writer
	order binary.ByteOrder
}

// NewUTF32Sink wraps w, encoding scalars as four-byte little- or
// big-endian code points. Hand-rolled for the same reason as the
// UTF-32 Source: golang.org/x/text has no UTF-32 codec (see DESIGN.md).
func NewUTF32Sink(w io.Writer, bigEndian bool) Sink {
	var order binary.ByteOrder = binary.LittleEndian
	if bigEndian {
		order = binary.BigEndian
	}
	return &utf32Sink{w: w, order: order}
}

func (s *utf32Sink) WriteRune(r rune) error {
	var buf [4]byte
	s.order.PutUint32(buf[:], uint32(r))
	_, err := s.w.Write(buf[:])
	return err
}
func (s *utf32Sink) Flush() error { return nil }

// NewSink constructs a Sink for the given scheme, writing a BOM first
// when writeBOM is true and the scheme supports one.
func NewSink(w io.Writer, scheme Scheme, writeBOM bool) Sink {
	switch scheme {
	case UTF16LE:
		return NewUTF16Sink(w, false, writeBOM)
	case UTF16BE:
		return NewUTF16Sink(w, true, writeBOM)
	case UTF32LE:
		s := NewUTF32Sink(w, false)
		if writeBOM {
			s.WriteRune('\uFEFF')
		}
		return s
	case UTF32BE:
		s := NewUTF32Sink(w, true)
		if writeBOM {
			s.WriteRune('\uFEFF')
		}
		return s
	case ASCII:
		return NewASCIISink(w)
	default:
		s := NewUTF8Sink(w)
		if writeBOM {
			s.WriteRune('\uFEFF')
		}
		return s
	}
}
