package urlform

import (
	"encoding"
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/apd/v3"
)

// Marshaler is the interface implemented by types that can marshal themselves
// into a form value.
type Marshaler interface {
	MarshalForm() (string, error)
}

// Unmarshaler is the interface implemented by types that can unmarshal a form
// value of themselves. [Unmarshaler.UnmarshalForm] must copy the string if it
// wishes to retain it after returning.
type Unmarshaler interface {
	UnmarshalForm(string) error
}

// formatScalar returns the canonical text of a scalar shaped value.
func formatScalar(v reflect.Value) (string, error) {
	switch v.Type() {
	case bigIntType:
		return addressable(v).Addr().Interface().(*big.Int).String(), nil
	case decimalType:
		return addressable(v).Addr().Interface().(*apd.Decimal).String(), nil
	case charType:
		r := rune(v.Int())
		if !utf8.ValidRune(r) {
			return "", newError(KindEncoding, "", nil, "invalid character %U", r)
		}
		return string(r), nil
	}

	// Handle custom marshalers before the underlying kind.
	if m, ok := as[Marshaler](v); ok {
		return m.MarshalForm()
	}
	if m, ok := as[encoding.TextMarshaler](v); ok {
		b, err := m.MarshalText()
		return string(b), err
	}

	switch v.Kind() {
	case reflect.String:
		return v.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return formatFloat(v.Float(), v.Type().Bits()), nil
	case reflect.Slice:
		b := v.Bytes()
		if !utf8.Valid(b) {
			return "", newError(KindEncoding, "", nil, "invalid UTF-8 in %v", v.Type())
		}
		return string(b), nil
	}
	return "", fmt.Errorf("unsupported type: %v", v.Type())
}

// formatFloat returns the shortest text that parses back to f. Integral values
// keep a trailing ".0" so they still read as floating point.
func formatFloat(f float64, bits int) string {
	s := strconv.FormatFloat(f, 'g', -1, bits)
	if strings.ContainsAny(s, ".eEnN") {
		return s
	}
	return s + ".0"
}

// parseScalar parses s into the scalar shaped value v, which must be
// settable.
func parseScalar(v reflect.Value, s string) error {
	switch v.Type() {
	case bigIntType:
		if _, ok := v.Addr().Interface().(*big.Int).SetString(s, 10); !ok {
			return &strconv.NumError{Func: "big.Int.SetString", Num: s, Err: strconv.ErrSyntax}
		}
		return nil
	case decimalType:
		_, _, err := v.Addr().Interface().(*apd.Decimal).SetString(s)
		return err
	case charType:
		return parseChar(v, s)
	}

	// Handle custom unmarshalers before the underlying kind.
	if u, ok := as[Unmarshaler](v); ok {
		return u.UnmarshalForm(s)
	}
	if u, ok := as[encoding.TextUnmarshaler](v); ok {
		return u.UnmarshalText([]byte(s))
	}

	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		return parseBool(v, s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(s, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, err := strconv.ParseUint(s, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetUint(i)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(f)
	case reflect.Slice:
		v.SetBytes([]byte(s))
	default:
		return fmt.Errorf("unsupported type: %v", v.Type())
	}
	return nil
}

// parseBool accepts exactly the text produced by formatting a bool.
func parseBool(v reflect.Value, s string) error {
	switch s {
	case "true":
		v.SetBool(true)
	case "false":
		v.SetBool(false)
	default:
		return &strconv.NumError{Func: "ParseBool", Num: s, Err: strconv.ErrSyntax}
	}
	return nil
}

func parseChar(v reflect.Value, s string) error {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 || n != len(s) || (r == utf8.RuneError && n == 1) {
		return fmt.Errorf("expected a single character, found %q", s)
	}
	v.SetInt(int64(r))
	return nil
}
