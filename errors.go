package urlform

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrorKind classifies the failures reported by [Error].
type ErrorKind int

const (
	// KindMalformed reports input that is not valid form data, such as an
	// invalid percent-escape.
	KindMalformed ErrorKind = iota + 1

	// KindShape reports a value whose shape cannot be mapped: a top-level
	// value that is not a struct, map, sequence of pairs or unit, a tuple that
	// is not a pair, a length mismatch or a duplicate field.
	KindShape

	// KindKey reports an unsupported key, or a value with no key to pair it
	// with.
	KindKey

	// KindValue reports an unsupported value, such as a nested struct or a
	// non-unit enum variant.
	KindValue

	// KindParse reports text that could not be parsed into the requested
	// scalar type.
	KindParse

	// KindEncoding reports bytes that are not valid UTF-8 where text is
	// required.
	KindEncoding
)

func (k ErrorKind) String() string {
	switch k {
	case KindMalformed:
		return "malformed input"
	case KindShape:
		return "shape mismatch"
	case KindKey:
		return "unsupported key"
	case KindValue:
		return "unsupported value"
	case KindParse:
		return "parse failure"
	case KindEncoding:
		return "invalid encoding"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Sentinel errors for use with [errors.Is]. Every [*Error] matches the
// sentinel of its kind.
var (
	ErrMalformed = errors.New("form: malformed input")
	ErrShape     = errors.New("form: shape mismatch")
	ErrKey       = errors.New("form: unsupported key")
	ErrValue     = errors.New("form: unsupported value")
	ErrParse     = errors.New("form: parse failure")
	ErrEncoding  = errors.New("form: invalid encoding")
)

// Error describes the first failure encountered while encoding or decoding.
type Error struct {
	Kind ErrorKind

	// Key is the key being processed when the failure occurred, if any.
	Key string

	// Msg describes the failure.
	Msg string

	// Err is the underlying cause, if any.
	Err error
}

func newError(kind ErrorKind, key string, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Key: key, Msg: fmt.Sprintf(format, args...), Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return "form: " + e.Msg + ": " + e.Err.Error()
	}
	return "form: " + e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel error for the kind of e.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrMalformed:
		return e.Kind == KindMalformed
	case ErrShape:
		return e.Kind == KindShape
	case ErrKey:
		return e.Kind == KindKey
	case ErrValue:
		return e.Kind == KindValue
	case ErrParse:
		return e.Kind == KindParse
	case ErrEncoding:
		return e.Kind == KindEncoding
	}
	return false
}

// parseError attaches key to a failure to parse its value. Errors that
// already carry a kind keep it.
func parseError(key string, err error) error {
	var fe *Error
	if errors.As(err, &fe) {
		if fe.Key == "" {
			fe.Key = key
		}
		return err
	}
	return newError(KindParse, key, err, "failed to parse value for key '%s'", key)
}

// valueError attaches key to a failure to produce its value. Errors that
// already carry a kind keep it.
func valueError(key string, err error) error {
	var fe *Error
	if errors.As(err, &fe) {
		if fe.Key == "" {
			fe.Key = key
		}
		return err
	}
	return newError(KindValue, key, err, "invalid value for key '%s'", key)
}

func lengthError(got int, want string) *Error {
	return newError(KindShape, "", nil, "invalid length %d, expected %s", got, want)
}

// Shapes accepted at the top level. Unit is only accepted when decoding.
const (
	decodeTopLevel = "a struct, map, sequence of pairs or unit"
	encodeTopLevel = "a struct, map or sequence of pairs"
)

func topLevelError(t reflect.Type, accepted string) *Error {
	return newError(KindShape, "", nil, "unsupported top-level type %v: must be %s", t, accepted)
}

// InvalidUnmarshalError describes an invalid argument passed to [Unmarshal].
// (The argument to [Unmarshal] must be a non-nil pointer.)
type InvalidUnmarshalError struct {
	Type reflect.Type
}

func (e *InvalidUnmarshalError) Error() string {
	if e.Type == nil {
		return "form: Unmarshal(nil)"
	}

	if e.Type.Kind() != reflect.Pointer {
		return "form: Unmarshal(non-pointer " + e.Type.String() + ")"
	}
	return "form: Unmarshal(nil " + e.Type.String() + ")"
}
