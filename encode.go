package urlform

import (
	"fmt"
	"reflect"
	"sort"
)

// EncodeToString is a convenience function that returns the form encoding of v
// as a string.
func EncodeToString(v interface{}) (string, error) {
	e := newEncodeState()
	if err := e.encodeTop(reflect.ValueOf(v)); err != nil {
		return "", err
	}
	return e.sink.encode(), nil
}

// Marshal returns the form encoding of v.
//
// Structs encode their fields in declaration order, maps encode their entries
// sorted by key, and slices or arrays of [Pair] (or of pointers to them) encode
// one pair per element in order. A nil pointer or interface value is omitted
// together with its key, and a slice value encodes as one pair per element,
// all sharing the key. A unit struct cannot be encoded at the top level.
func Marshal(v interface{}) ([]byte, error) {
	s, err := EncodeToString(v)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

type encodeState struct {
	sink *sink
	w    pairWriter
}

func newEncodeState() *encodeState {
	s := &sink{}
	return &encodeState{sink: s, w: pairWriter{sink: s}}
}

func (e *encodeState) encodeTop(v reflect.Value) error {
	if !v.IsValid() {
		return nil
	}
	t := v.Type()

	// Dispatch based on the shape of the value.
	switch shapeOf(t) {
	case shapeOption:
		if v.IsNil() {
			return nil
		}
		return e.encodeTop(v.Elem())
	case shapeMap:
		if t.Kind() == reflect.Struct {
			return e.encodeStruct(v)
		}
		return e.encodeMap(v)
	case shapeSequence:
		if isPairLike(indirect(t.Elem())) || t.Elem().Kind() == reflect.Interface {
			return e.encodePairs(v)
		}
	}
	return topLevelError(t, encodeTopLevel)
}

func (e *encodeState) encodeStruct(v reflect.Value) error {
	for _, f := range cachedFields(v.Type()).list {
		fv := v.Field(f.index)
		if f.Omit && isEmptyValue(fv) {
			continue
		}
		if err := e.encodeEntry(f.Name, fv); err != nil {
			return err
		}
	}
	return nil
}

func (e *encodeState) encodeMap(v reflect.Value) error {
	if !isKeyType(v.Type().Key()) {
		return newError(KindKey, "", nil, "unsupported key type %v", v.Type().Key())
	}

	type entry struct {
		key   string
		value reflect.Value
	}

	// Sort the entries by their encoded key for stable output.
	entries := make([]entry, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		key, err := encodeKey(iter.Key())
		if err != nil {
			return err
		}
		entries = append(entries, entry{key: key, value: iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].key < entries[j].key
	})

	for _, ent := range entries {
		if err := e.encodeEntry(ent.key, ent.value); err != nil {
			return err
		}
	}
	return nil
}

// encodePairs encodes each element of a sequence as exactly one pair.
func (e *encodeState) encodePairs(v reflect.Value) error {
	for i := 0; i < v.Len(); i++ {
		elem := v.Index(i)
		for elem.Kind() == reflect.Interface || elem.Kind() == reflect.Pointer {
			if elem.IsNil() {
				return newError(KindShape, "", nil, "unsupported pair at index %d: nil", i)
			}
			elem = elem.Elem()
		}
		if !isPairLike(elem.Type()) {
			return newError(KindShape, "", nil, "unsupported pair at index %d: %v", i, elem.Type())
		}

		kf, vf, err := pairFields(elem)
		if err != nil {
			return err
		}
		key, err := encodeKey(kf)
		if err != nil {
			return err
		}
		if err := e.encodeEntry(key, vf); err != nil {
			return err
		}
	}
	return nil
}

// encodeEntry writes every pair produced by a single key and its value.
func (e *encodeState) encodeEntry(key string, v reflect.Value) error {
	e.w.writeKey(key)
	defer e.w.end()
	return e.encodeValue(key, v, false)
}

func (e *encodeState) encodeValue(key string, v reflect.Value, inSequence bool) error {
	// A nil interface held by a map or sequence is none.
	if !v.IsValid() {
		return nil
	}
	t := v.Type()

	switch shapeOf(t) {
	case shapeOption:
		if v.IsNil() {
			return nil
		}
		return e.encodeValue(key, v.Elem(), inSequence)
	case shapeScalar:
		s, err := formatScalar(v)
		if err != nil {
			return valueError(key, err)
		}
		return e.w.writeValue(s)
	case shapeEnum:
		s, err := variantName(v)
		if err != nil {
			return valueError(key, err)
		}
		return e.w.writeValue(s)
	case shapeUnit:
		if t.Name() != "" {
			return e.w.writeValue(t.Name())
		}
	case shapeSequence:
		// Each element becomes its own pair. Elements are never joined
		// into a single value.
		if !inSequence {
			for i := 0; i < v.Len(); i++ {
				if err := e.encodeValue(key, v.Index(i), true); err != nil {
					return err
				}
			}
			return nil
		}
	}
	return newError(KindValue, key, nil, "unsupported value type %v for key '%s'", t, key)
}

// encodeKey returns the text of a key.
func encodeKey(v reflect.Value) (string, error) {
	t := v.Type()

	var (
		s   string
		err error
	)
	switch shapeOf(t) {
	case shapeScalar:
		s, err = formatScalar(v)
	case shapeEnum:
		s, err = variantName(v)
	case shapeUnit:
		if t.Name() == "" {
			return "", newError(KindKey, "", nil, "unsupported key type %v", t)
		}
		s = t.Name()
	case shapeOption:
		if t.Kind() == reflect.Interface && !v.IsNil() {
			return encodeKey(v.Elem())
		}
		return "", newError(KindKey, "", nil, "unsupported key type %v", t)
	default:
		return "", newError(KindKey, "", nil, "unsupported key type %v", t)
	}

	if err != nil {
		if fe, ok := err.(*Error); ok {
			return "", fe
		}
		return "", newError(KindKey, "", err, "invalid key of type %v", t)
	}
	return s, nil
}

// variantName returns the name of the unit variant held by v.
func variantName(v reflect.Value) (string, error) {
	variants := enumVariants(v)

	var i uint64
	switch v.Kind() {
	case reflect.String:
		for _, name := range variants {
			if name == v.String() {
				return name, nil
			}
		}
		return "", fmt.Errorf("unknown variant `%s`, expected %s", v.String(), oneOf(variants))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.Int() < 0 {
			return "", fmt.Errorf("unknown variant index %d of %v", v.Int(), v.Type())
		}
		i = uint64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i = v.Uint()
	default:
		return "", newError(KindValue, "", nil, "unsupported non-unit variant %v", v.Type())
	}

	if i >= uint64(len(variants)) {
		return "", fmt.Errorf("unknown variant index %d of %v", i, v.Type())
	}
	return variants[i], nil
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Interface, reflect.Pointer:
		return v.IsZero()
	}
	return false
}
