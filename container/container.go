// Package container implements the codec's container tree (spec §4.8): the
// file → record → field hierarchy of keyed, unkeyed, and single-value
// accessors that sit above Source/Sink and translate codec calls into
// coordinate arithmetic. Modeled on Swift's Codable container shape — the
// closest analogue in the retrieval pack is the node-kind table in
// oy3o/codec's util.go — but built directly from the spec's dispatch table,
// since no pack repo implements this exact keyed/unkeyed/single split.
package container

import (
	"errors"
	"fmt"

	"github.com/brightfield/csvcodec"
)

// appendPath returns a new coding path with key appended, never mutating
// the receiver's backing array (container nodes are created lazily and
// discarded per call, so paths must not alias across siblings).
func appendPath(path []any, key any) []any {
	out := make([]any, len(path)+1)
	copy(out, path)
	out[len(path)] = key
	return out
}

func newErr(kind csvcodec.Kind, path []any, format string, args ...any) *csvcodec.CodecError {
	return &csvcodec.CodecError{
		Kind:    kind,
		Reason:  fmt.Sprintf(format, args...),
		Context: map[string]any{},
		Path:    append([]any(nil), path...),
	}
}

func isKind(err error, kind csvcodec.Kind) bool {
	var cerr *csvcodec.CodecError
	return errors.As(err, &cerr) && cerr.Kind == kind
}

// IsAtEnd reports whether err is the IsAtEnd container error returned by
// FileDecoder.Next or RecordDecoder.Next once iteration is exhausted.
func IsAtEnd(err error) bool {
	return isKind(err, csvcodec.KindIsAtEnd)
}
