// Package urlform provides encoding and decoding of
// application/x-www-form-urlencoded data into Go types.
//
// A form is a flat, ordered sequence of key/value pairs. Built on reflection,
// urlform maps that sequence to and from structs, maps and sequences of
// [Pair], letting the shape of the Go type decide how pairs are grouped:
// pointers are optional values that are omitted when nil, slices hold every
// occurrence of a repeated key, and types implementing [Enum] are unit enums
// written by variant name. Nested structures are not supported; the format
// has no way to express them.
package urlform
