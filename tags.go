package urlform

import (
	"reflect"
	"strings"
	"sync"
)

// cache of struct fields to avoid repeated parsing of the same struct type
// across multiple calls to cachedFields. The key is the [reflect.Type] of the
// struct, and the value is a *structFields.
//
// This cache is safe for concurrent use.
var structFieldCache sync.Map

type tag struct {
	Name   string
	Omit   bool
	Ignore bool
}

type field struct {
	tag
	index int
}

// structFields lists the encodable fields of a struct in declaration order,
// and indexes them by their form name.
type structFields struct {
	list   []field
	byName map[string]int
}

func cachedFields(t reflect.Type) *structFields {
	// Check the cache first.
	if cached, ok := structFieldCache.Load(t); ok {
		return cached.(*structFields)
	}

	fields := &structFields{byName: make(map[string]int, t.NumField())}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := parseTag(f.Tag.Get("form"))
		if tag.Ignore {
			continue
		}
		if tag.Name == "" {
			tag.Name = f.Name
		}

		// The first field to claim a name wins.
		if _, ok := fields.byName[tag.Name]; ok {
			continue
		}
		fields.byName[tag.Name] = len(fields.list)
		fields.list = append(fields.list, field{tag: *tag, index: i})
	}

	// Store the fields in the cache.
	cached, _ := structFieldCache.LoadOrStore(t, fields)
	return cached.(*structFields)
}

func parseTag(str string) *tag {
	str = strings.TrimSpace(str)
	if str == "-" {
		return &tag{Ignore: true}
	}

	// Split the tag into parts. Although it should never be the case that a
	// tag contains zero parts, we should handle this case gracefully.
	parts := strings.Split(str, ",")
	if len(parts) == 0 {
		return &tag{Ignore: true}
	}

	t := &tag{}

	// The first part of the tag is the name of the field. If the first part is
	// a hyphen, then the field should be ignored.
	name := strings.TrimSpace(parts[0])
	switch name {
	case "-":
		t.Ignore = true
	default:
		t.Name = name
	}

	// The remaining parts of the tag are flags that modify the behaviour of the
	// field.
	for _, p := range parts[1:] {
		switch strings.TrimSpace(p) {
		case "omitempty":
			t.Omit = true
		case "ignore":
			t.Ignore = true
		}
	}

	return t
}
