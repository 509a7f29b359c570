package encoding

import "bufio"

// bomTable lists the recognized byte-order marks, longest match first so
// that UTF-32LE (FF FE 00 00) is preferred over the UTF-16LE prefix it
// contains (FF FE), per spec §4.1 ("UTF-32-LE takes precedence over
// UTF-16-LE when the longer match is present").
var bomTable = []struct {
	bytes  []byte
	scheme Scheme
}{
	{[]byte{0x00, 0x00, 0xFE, 0xFF}, UTF32BE},
	{[]byte{0xFF, 0xFE, 0x00, 0x00}, UTF32LE},
	{[]byte{0xEF, 0xBB, 0xBF}, UTF8},
	{[]byte{0xFE, 0xFF}, UTF16BE},
	{[]byte{0xFF, 0xFE}, UTF16LE},
}

// DetectBOM inspects up to the first four bytes of peek for one of the
// five recognized BOMs. It returns the matched scheme and the number of
// bytes the BOM occupies; found is false when no BOM matched.
func DetectBOM(peek []byte) (scheme Scheme, consumed int, found bool) {
	for _, entry := range bomTable {
		if len(peek) >= len(entry.bytes) && bytesEqual(peek[:len(entry.bytes)], entry.bytes) {
			return entry.scheme, len(entry.bytes), true
		}
	}
	return Unknown, 0, false
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ClassifyASCIIOrUTF8 inspects peek (bytes available after any BOM) and
// returns ASCII when every byte has its high bit clear, UTF8 when the
// bytes validate as well-formed UTF-8 (rejecting overlong forms,
// surrogate code points, and values above U+10FFFF via validUTF8), or
// Unknown if validation fails.
func ClassifyASCIIOrUTF8(peek []byte) Scheme {
	allASCII := true
	for _, b := range peek {
		if b >= 0x80 {
			allASCII = false
			break
		}
	}
	if allASCII {
		return ASCII
	}
	if validUTF8(peek) {
		return UTF8
	}
	return Unknown
}

// Detect peeks at the front of r (without consuming beyond the BOM, if
// any) and returns the chosen scheme plus the number of leading bytes
// that belong to a BOM and should be discarded by the caller before
// scalar decoding begins.
func Detect(r *bufio.Reader, fallback Scheme) (scheme Scheme, bomLen int, err error) {
	head, _ := r.Peek(4)
	if s, n, ok := DetectBOM(head); ok {
		return s, n, nil
	}
	window, _ := r.Peek(r.Size())
	if len(window) == 0 {
		if fallback != Unknown {
			return fallback, 0, nil
		}
		return ASCII, 0, nil
	}
	if s := ClassifyASCIIOrUTF8(window); s != Unknown {
		return s, 0, nil
	}
	if fallback != Unknown {
		return fallback, 0, nil
	}
	return Unknown, 0, &InvalidInput{Scheme: Unknown, Reason: "could not classify input as ASCII or UTF-8 and no fallback encoding configured"}
}

// validUTF8 performs the spec's exact UTF-8 validation: 2/3/4-byte lead
// bytes with 10xxxxxx continuations, rejecting overlong encodings,
// surrogate code points (U+D800-U+DFFF), and values above U+10FFFF.
func validUTF8(b []byte) bool {
	i := 0
	for i < len(b) {
		c := b[i]
		switch {
		case c < 0x80:
			i++
		case c&0xE0 == 0xC0:
			if !hasContinuation(b, i, 1) {
				return false
			}
			if i+1 >= len(b) {
				return true // cut off by the end of the window
			}
			cp := rune(c&0x1F)<<6 | rune(b[i+1]&0x3F)
			if cp < 0x80 {
				return false // overlong
			}
			i += 2
		case c&0xF0 == 0xE0:
			if !hasContinuation(b, i, 2) {
				return false
			}
			if i+2 >= len(b) {
				return true // cut off by the end of the window
			}
			cp := rune(c&0x0F)<<12 | rune(b[i+1]&0x3F)<<6 | rune(b[i+2]&0x3F)
			if cp < 0x800 {
				return false // overlong
			}
			if cp >= 0xD800 && cp <= 0xDFFF {
				return false // surrogate
			}
			i += 3
		case c&0xF8 == 0xF0:
			if !hasContinuation(b, i, 3) {
				return false
			}
			if i+3 >= len(b) {
				return true // cut off by the end of the window
			}
			cp := rune(c&0x07)<<18 | rune(b[i+1]&0x3F)<<12 | rune(b[i+2]&0x3F)<<6 | rune(b[i+3]&0x3F)
			if cp < 0x10000 || cp > 0x10FFFF {
				return false // overlong or out of range
			}
			i += 4
		default:
			return false
		}
	}
	return true
}

func hasContinuation(b []byte, start, n int) bool {
	if start+n >= len(b) {
		// Truncated at the window boundary; treat as plausible rather
		// than invalid since Detect only sees a prefix of the stream.
		return len(b)-start-1 >= 0
	}
	for k := 1; k <= n; k++ {
		if b[start+k]&0xC0 != 0x80 {
			return false
		}
	}
	return true
}
