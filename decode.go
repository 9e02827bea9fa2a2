package urlform

import (
	"fmt"
	"reflect"
	"strings"
)

// DecodeString is a convenience function that parses the form data in the
// string and stores the result in the value pointed to by v. Keys and values
// without escapes are not copied out of data. If v is nil or not a pointer,
// DecodeString returns an [InvalidUnmarshalError].
func DecodeString(data string, v interface{}) error {
	return unmarshal(data, v, false)
}

// Unmarshal parses the form data and stores the result in the value pointed to
// by v. If v is nil or not a pointer, Unmarshal returns an
// [InvalidUnmarshalError].
//
// The type of v decides how the pairs are read:
//
//   - A struct or map receives each pair as a field or entry. A field or map
//     value of slice type collects every occurrence of its key in order; any
//     other destination accepts a single occurrence and a repeated key is an
//     error. Unknown struct fields are ignored.
//   - A slice or array of [Pair] (or of two element arrays) receives one
//     element per pair, in order. Repeated keys are never merged.
//   - A struct with no fields is the unit shape, and requires empty input.
func Unmarshal(data []byte, v interface{}) error {
	return unmarshal(string(data), v, false)
}

func unmarshal(data string, v interface{}, disallowUnknownFields bool) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return &InvalidUnmarshalError{reflect.TypeOf(v)}
	}

	d := &decodeState{
		src:                   newSource(data),
		disallowUnknownFields: disallowUnknownFields,
	}
	return d.decodeTop(rv.Elem())
}

type decodeState struct {
	src                   *source
	disallowUnknownFields bool
}

func (d *decodeState) decodeTop(v reflect.Value) error {
	t := v.Type()

	// Dispatch based on the shape of the target.
	switch shapeOf(t) {
	case shapeMap:
		if t.Kind() == reflect.Struct {
			return d.decodeStruct(v)
		}
		return d.decodeMap(v)
	case shapeSequence:
		if isPairLike(indirect(t.Elem())) {
			return d.decodePairs(v)
		}
	case shapeUnit:
		return d.decodeUnit()
	case shapeOption:
		return d.decodeTopOption(v)
	}
	return topLevelError(t, decodeTopLevel)
}

// decodeTopOption allocates pointers, and decodes an empty interface as a
// map of strings.
func (d *decodeState) decodeTopOption(v reflect.Value) error {
	t := v.Type()
	if t.Kind() == reflect.Pointer {
		if v.IsNil() {
			v.Set(reflect.New(t.Elem()))
		}
		return d.decodeTop(v.Elem())
	}
	if t.NumMethod() != 0 {
		return topLevelError(t, decodeTopLevel)
	}

	m := make(map[string]interface{})
	mv := reflect.ValueOf(&m).Elem()
	if err := d.decodeMap(mv); err != nil {
		return err
	}
	v.Set(mv)
	return nil
}

// decodeUnit succeeds only when no pairs remain.
func (d *decodeState) decodeUnit() error {
	if n := d.src.remaining(); n > 0 {
		return lengthError(d.src.count+n, "0 elements in sequence")
	}
	return nil
}

func (d *decodeState) decodeStruct(v reflect.Value) error {
	fields := cachedFields(v.Type())

	// Number of times each field has been seen so far.
	seen := make([]int, len(fields.list))

	for {
		key, value, ok, err := d.src.next()
		if err != nil || !ok {
			return err
		}

		i, found := fields.byName[key]
		if !found {
			if d.disallowUnknownFields {
				return newError(KindKey, key, nil, "unknown field %q in struct %v", key, v.Type())
			}
			continue
		}

		fv := v.Field(fields.list[i].index)
		if seen[i] > 0 && !isGrouped(fv.Type()) {
			return newError(KindShape, key, nil, "duplicate field %q", key)
		}
		if err := decodeGrouped(fv, key, value, seen[i]); err != nil {
			return err
		}
		seen[i]++
	}
}

func (d *decodeState) decodeMap(v reflect.Value) error {
	t := v.Type()
	if !isKeyType(t.Key()) {
		return newError(KindShape, "", nil, "unsupported map key type %v", t.Key())
	}
	if v.IsNil() {
		v.Set(reflect.MakeMap(t))
	}

	// Number of times each key has been seen so far.
	seen := make(map[interface{}]int)

	for {
		key, value, ok, err := d.src.next()
		if err != nil || !ok {
			return err
		}

		kv := reflect.New(t.Key()).Elem()
		if err := decodeKey(kv, key); err != nil {
			return err
		}

		n := seen[kv.Interface()]
		if n > 0 && !isGrouped(t.Elem()) {
			return newError(KindShape, key, nil, "duplicate key %q", key)
		}

		elem := reflect.New(t.Elem()).Elem()
		if n > 0 {
			elem.Set(v.MapIndex(kv))
		}
		if err := decodeGrouped(elem, key, value, n); err != nil {
			return err
		}
		v.SetMapIndex(kv, elem)
		seen[kv.Interface()] = n + 1
	}
}

// decodePairs decodes each pair into one element of a sequence of pairs.
func (d *decodeState) decodePairs(v reflect.Value) error {
	t := v.Type()
	if t.Kind() == reflect.Slice {
		v.Set(reflect.MakeSlice(t, 0, 0))
	}

	for n := 0; ; n++ {
		key, value, ok, err := d.src.next()
		if err != nil || !ok {
			return err
		}

		var elem reflect.Value
		switch t.Kind() {
		case reflect.Slice:
			elem = reflect.New(t.Elem()).Elem()
		default:
			if n >= t.Len() {
				return lengthError(d.src.count+d.src.remaining(), fmt.Sprintf("%d elements in sequence", t.Len()))
			}
			elem = v.Index(n)
		}

		// Elements may point to their pair.
		pair := elem
		for pair.Kind() == reflect.Pointer {
			if pair.IsNil() {
				pair.Set(reflect.New(pair.Type().Elem()))
			}
			pair = pair.Elem()
		}

		kf, vf, err := pairFields(pair)
		if err != nil {
			return err
		}
		if err := decodeKey(kf, key); err != nil {
			return err
		}
		if err := decodeValue(vf, key, value); err != nil {
			return err
		}

		if t.Kind() == reflect.Slice {
			v.Set(reflect.Append(v, elem))
		}
	}
}

// decodeGrouped stores the n-th occurrence of key into v. Sequence typed
// destinations collect every occurrence; anything else takes exactly one.
func decodeGrouped(v reflect.Value, key, value string, n int) error {
	t := v.Type()
	if !isGrouped(t) {
		return decodeValue(v, key, value)
	}

	if t.Kind() == reflect.Pointer {
		if n == 0 || v.IsNil() {
			v.Set(reflect.New(t.Elem()))
		}
		return decodeGrouped(v.Elem(), key, value, n)
	}

	if t.Kind() == reflect.Array {
		if n >= t.Len() {
			return newError(KindShape, key, nil,
				"invalid length %d for key '%s', expected %d elements in sequence", n+1, key, t.Len())
		}
		return decodeValue(v.Index(n), key, value)
	}

	// The first occurrence replaces whatever the slice held before.
	if n == 0 {
		v.Set(reflect.MakeSlice(t, 0, 1))
	}
	elem := reflect.New(t.Elem()).Elem()
	if err := decodeValue(elem, key, value); err != nil {
		return err
	}
	v.Set(reflect.Append(v, elem))
	return nil
}

// decodeValue decodes the text of a single value into v.
func decodeValue(v reflect.Value, key, text string) error {
	t := v.Type()

	switch shapeOf(t) {
	case shapeScalar:
		if err := parseScalar(v, text); err != nil {
			return parseError(key, err)
		}
		return nil
	case shapeEnum:
		if err := decodeEnum(v, text); err != nil {
			return parseError(key, err)
		}
		return nil
	case shapeUnit:
		if t.Name() != "" {
			if err := decodeUnitStruct(v, text); err != nil {
				return parseError(key, err)
			}
			return nil
		}
	case shapeOption:
		// A present key is always some value. Absence is the only way to
		// express none.
		if t.Kind() == reflect.Pointer {
			if v.IsNil() {
				v.Set(reflect.New(t.Elem()))
			}
			return decodeValue(v.Elem(), key, text)
		}
		if t.NumMethod() == 0 {
			v.Set(reflect.ValueOf(text))
			return nil
		}
	}
	return newError(KindValue, key, nil, "unsupported value type %v for key '%s'", t, key)
}

// decodeKey decodes the text of a key into v.
func decodeKey(v reflect.Value, text string) error {
	t := v.Type()

	var err error
	switch shapeOf(t) {
	case shapeScalar:
		err = parseScalar(v, text)
	case shapeEnum:
		err = decodeEnum(v, text)
	case shapeUnit:
		if t.Name() == "" {
			return newError(KindKey, text, nil, "unsupported key type %v", t)
		}
		err = decodeUnitStruct(v, text)
	case shapeOption:
		if t.Kind() != reflect.Interface || t.NumMethod() != 0 {
			return newError(KindKey, text, nil, "unsupported key type %v", t)
		}
		v.Set(reflect.ValueOf(text))
	default:
		return newError(KindKey, text, nil, "unsupported key type %v", t)
	}

	if err != nil {
		if fe, ok := err.(*Error); ok {
			return fe
		}
		return newError(KindParse, text, err, "failed to parse key '%s'", text)
	}
	return nil
}

// decodeEnum matches text case-sensitively against the declared variants.
func decodeEnum(v reflect.Value, text string) error {
	variants := enumVariants(v)

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.String:
	default:
		return newError(KindValue, "", nil, "expected unit variant, found %v", v.Type())
	}

	for i, name := range variants {
		if name != text {
			continue
		}
		switch v.Kind() {
		case reflect.String:
			v.SetString(name)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			v.SetUint(uint64(i))
		default:
			v.SetInt(int64(i))
		}
		return nil
	}
	return fmt.Errorf("unknown variant `%s`, expected %s", text, oneOf(variants))
}

func decodeUnitStruct(v reflect.Value, text string) error {
	if text != v.Type().Name() {
		return fmt.Errorf("expected unit struct %s, found %q", v.Type().Name(), text)
	}
	return nil
}

func enumVariants(v reflect.Value) []string {
	e, _ := as[Enum](v)
	return e.FormVariants()
}

func oneOf(names []string) string {
	switch len(names) {
	case 0:
		return "no variants"
	case 1:
		return "`" + names[0] + "`"
	}
	return "one of `" + strings.Join(names, "`, `") + "`"
}
