package urlform

import (
	"fmt"
	"io"
)

// Decoder reads form-urlencoded data from an [io.Reader] and decodes it into a
// Go value.
type Decoder struct {
	r                     io.Reader
	disallowUnknownFields bool
}

// NewDecoder creates a new [Decoder] that reads from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// DisallowUnknownFields causes the Decoder to return an error when the
// destination is a struct and the input contains a key which does not match
// any field in the destination.
func (d *Decoder) DisallowUnknownFields() {
	d.disallowUnknownFields = true
}

// Decode reads the form-urlencoded data from the underlying [io.Reader] and
// decodes it into v.
func (d *Decoder) Decode(v interface{}) error {
	body, err := io.ReadAll(d.r)
	if err != nil {
		return fmt.Errorf("form: failed to read body: %w", err)
	}

	return unmarshal(string(body), v, d.disallowUnknownFields)
}

// Encoder writes form-urlencoded data to an [io.Writer].
type Encoder struct {
	w io.Writer
}

// NewEncoder creates a new [Encoder] that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode encodes v as form-urlencoded data and writes it to the underlying
// [io.Writer].
func (e *Encoder) Encode(v interface{}) error {
	data, err := EncodeToString(v)
	if err != nil {
		return err
	}

	_, err = io.WriteString(e.w, data)
	return err
}
