package csvcodec

import (
	"errors"
	"fmt"
)

// Kind identifies the category of a CodecError, per the error taxonomy
// partitioned by origin (reader, writer, codec source, codec sink,
// container).
type Kind int

const (
	// Reader errors.
	KindInvalidInput Kind = iota
	KindInvalidConfiguration
	KindIOFailure

	// Writer errors.
	KindInvalidFieldCount

	// Codec source errors.
	KindRowOutOfBounds
	KindFieldOutOfBounds
	KindExpiredCache
	KindEmptyHeader
	KindUnmatchedHeader
	KindInvalidHashableHeader

	// Codec sink errors.
	KindWritingSurpassed
	KindCorruptedBuffer
	KindInvalidPath

	// Container errors.
	KindInvalidNestedContainer
	KindAlreadyParsed
	KindIsAtEnd
	KindIsNotSingleColumn
	KindMismatchError
)

// String renders a Kind as the identifier used in error messages.
func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "InvalidInput"
	case KindInvalidConfiguration:
		return "InvalidConfiguration"
	case KindIOFailure:
		return "IOFailure"
	case KindInvalidFieldCount:
		return "InvalidFieldCount"
	case KindRowOutOfBounds:
		return "RowOutOfBounds"
	case KindFieldOutOfBounds:
		return "FieldOutOfBounds"
	case KindExpiredCache:
		return "ExpiredCache"
	case KindEmptyHeader:
		return "EmptyHeader"
	case KindUnmatchedHeader:
		return "UnmatchedHeader"
	case KindInvalidHashableHeader:
		return "InvalidHashableHeader"
	case KindWritingSurpassed:
		return "WritingSurpassed"
	case KindCorruptedBuffer:
		return "CorruptedBuffer"
	case KindInvalidPath:
		return "InvalidPath"
	case KindInvalidNestedContainer:
		return "InvalidNestedContainer"
	case KindAlreadyParsed:
		return "AlreadyParsed"
	case KindIsAtEnd:
		return "IsAtEnd"
	case KindIsNotSingleColumn:
		return "IsNotSingleColumn"
	case KindMismatchError:
		return "MismatchError"
	default:
		return "Unknown"
	}
}

// CodecError is the structured error value returned by every layer of the
// codec: reader, writer, codec bridge, and container tree. It carries a
// Kind, a human-readable Reason, an optional remediation Hint, and a
// Context map (row/field indices, coding path segments, etc).
type CodecError struct {
	Kind    Kind
	Reason  string
	Hint    string
	Context map[string]any

	// Path is the ordered list of coding-path keys (int or string) from
	// the root container down to the failing site. Populated only by the
	// container layer; nil for reader/writer-level errors.
	Path []any

	wrapped error
}

// Error formats the kind, reason, and coding path (when present).
func (e *CodecError) Error() string {
	if e == nil {
		return ""
	}
	msg := fmt.Sprintf("csvcodec: %s: %s", e.Kind, e.Reason)
	if len(e.Path) > 0 {
		msg += fmt.Sprintf(" (path=%v)", e.Path)
	}
	if e.Hint != "" {
		msg += " (hint: " + e.Hint + ")"
	}
	return msg
}

// Unwrap returns the wrapped cause, if any, so CodecError participates in
// errors.Is/errors.As chains.
func (e *CodecError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.wrapped
}

// Is reports whether target is a CodecError of the same Kind, letting
// callers write errors.Is(err, &CodecError{Kind: KindRowOutOfBounds}).
func (e *CodecError) Is(target error) bool {
	var other *CodecError
	if !errors.As(target, &other) || other == nil {
		return false
	}
	return e.Kind == other.Kind
}

// newError constructs a CodecError with the given kind and formatted reason.
func newError(kind Kind, format string, args ...any) *CodecError {
	return &CodecError{Kind: kind, Reason: fmt.Sprintf(format, args...), Context: map[string]any{}}
}

// withContext attaches a context key/value pair and returns the receiver
// for chaining.
func (e *CodecError) withContext(key string, value any) *CodecError {
	if e.Context == nil {
		e.Context = map[string]any{}
	}
	e.Context[key] = value
	return e
}

// withPath records the coding path at the point of failure.
func (e *CodecError) withPath(path []any) *CodecError {
	e.Path = append([]any(nil), path...)
	return e
}

// wrap records an underlying cause reachable via errors.Unwrap.
func (e *CodecError) wrap(cause error) *CodecError {
	e.wrapped = cause
	return e
}
