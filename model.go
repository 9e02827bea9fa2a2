package urlform

import (
	"encoding"
	"math/big"
	"reflect"

	"github.com/cockroachdb/apd/v3"
)

// Pair is a single key/value tuple. A slice or array of Pair is the flat
// sequence shape: each element maps to exactly one key=value pair, in order,
// and repeated keys stay as separate elements.
type Pair[K, V any] struct {
	Key   K
	Value V
}

func (Pair[K, V]) formPair() {}

type pairer interface {
	formPair()
}

// Char is a single Unicode code point. It encodes as its one character
// textual form rather than as a number.
type Char rune

// Enum is implemented by unit enum types. FormVariants returns the declared
// variant names. For integer kinds the value of the enum indexes the names,
// for string kinds the value is the name itself. Any other kind is treated as
// a variant carrying data, which cannot be represented in a form.
type Enum interface {
	FormVariants() []string
}

var (
	marshalerType       = reflect.TypeOf((*Marshaler)(nil)).Elem()
	unmarshalerType     = reflect.TypeOf((*Unmarshaler)(nil)).Elem()
	textMarshalerType   = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	enumType            = reflect.TypeOf((*Enum)(nil)).Elem()
	pairerType          = reflect.TypeOf((*pairer)(nil)).Elem()
	charType            = reflect.TypeOf(Char(0))
	bigIntType          = reflect.TypeOf(big.Int{})
	decimalType         = reflect.TypeOf(apd.Decimal{})
)

// shape is the data model category of a Go type. Encoding and decoding are
// both driven by the shape of the caller's type, never by the input.
type shape int

const (
	shapeInvalid shape = iota
	shapeScalar
	shapeOption
	shapeSequence
	shapeMap
	shapeEnum
	shapeUnit
	shapePair
)

func shapeOf(t reflect.Type) shape {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface:
		return shapeOption
	}
	if implements(t, enumType) {
		return shapeEnum
	}
	if t == bigIntType || t == decimalType || t == charType {
		return shapeScalar
	}
	if implements(t, marshalerType) || implements(t, unmarshalerType) ||
		implements(t, textMarshalerType) || implements(t, textUnmarshalerType) {
		return shapeScalar
	}

	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return shapeScalar
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return shapeScalar
		}
		return shapeSequence
	case reflect.Array:
		return shapeSequence
	case reflect.Map:
		return shapeMap
	case reflect.Struct:
		if implements(t, pairerType) {
			return shapePair
		}
		if t.NumField() == 0 {
			return shapeUnit
		}
		return shapeMap
	}
	return shapeInvalid
}

// implements reports whether t or *t implements the interface type it.
func implements(t, it reflect.Type) bool {
	return t.Implements(it) || reflect.PointerTo(t).Implements(it)
}

// isPairLike reports whether t can stand for one pair of a flat sequence.
// Arrays of any length qualify so that the arity can be reported rather than
// the whole sequence being rejected.
func isPairLike(t reflect.Type) bool {
	return t.Kind() == reflect.Array || (t.Kind() == reflect.Struct && implements(t, pairerType))
}

// isKeyType reports whether values of t can be used as a key.
func isKeyType(t reflect.Type) bool {
	switch shapeOf(t) {
	case shapeScalar, shapeEnum:
		return true
	case shapeUnit:
		return t.Name() != ""
	case shapeOption:
		return t.Kind() == reflect.Interface
	}
	return false
}

// isGrouped reports whether a destination of type t collects every
// occurrence of its key rather than exactly one. Pointers to sequences are
// grouped too, since they encode as the sequence they point to.
func isGrouped(t reflect.Type) bool {
	return shapeOf(indirect(t)) == shapeSequence
}

// indirect returns the type reached by following every pointer from t.
func indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// pairFields returns the key and value halves of a pair-like value.
func pairFields(v reflect.Value) (key, value reflect.Value, err error) {
	if v.Kind() == reflect.Struct {
		return v.Field(0), v.Field(1), nil
	}
	if n := v.Len(); n != 2 {
		return reflect.Value{}, reflect.Value{}, newError(KindShape, "", nil,
			"invalid length %d, expected a pair of values", n)
	}
	return v.Index(0), v.Index(1), nil
}

// addressable returns v itself when it can be addressed, and an addressable
// copy otherwise, so pointer receiver methods can be called on it.
func addressable(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return v
	}
	p := reflect.New(v.Type())
	p.Elem().Set(v)
	return p.Elem()
}

// as returns v as the interface type T, trying the value itself before its
// address.
func as[T any](v reflect.Value) (T, bool) {
	var x T
	it := reflect.TypeOf(&x).Elem()
	if v.Type().Implements(it) {
		return v.Interface().(T), true
	}
	if reflect.PointerTo(v.Type()).Implements(it) {
		return addressable(v).Addr().Interface().(T), true
	}
	return x, false
}
