package urlform

import "strings"

// sink accumulates pairs and encodes them in the order they were appended.
type sink struct {
	pairs []Pair[string, string]
}

func (s *sink) append(key, value string) {
	s.pairs = append(s.pairs, Pair[string, string]{Key: key, Value: value})
}

func (s *sink) encode() string {
	var b strings.Builder
	for i, p := range s.pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		writeEscaped(&b, p.Key)
		b.WriteByte('=')
		writeEscaped(&b, p.Value)
	}
	return b.String()
}

const upperhex = "0123456789ABCDEF"

// writeEscaped writes s percent-encoded for a form body. ASCII alphanumerics
// and "*-._" are written as is, a space becomes "+", and every other byte is
// escaped.
func writeEscaped(b *strings.Builder, s string) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isBare(c):
			b.WriteByte(c)
		case c == ' ':
			b.WriteByte('+')
		default:
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&15])
		}
	}
}

func isBare(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' ||
		c == '*' || c == '-' || c == '.' || c == '_'
}

// pairWriter buffers a key until the values belonging to it are written. A
// single key may receive several values, one pair each.
type pairWriter struct {
	sink    *sink
	key     string
	pending bool
}

func (w *pairWriter) writeKey(key string) {
	w.key = key
	w.pending = true
}

func (w *pairWriter) writeValue(value string) error {
	if !w.pending {
		return newError(KindKey, "", nil, "no key for value %q", value)
	}
	w.sink.append(w.key, value)
	return nil
}

// end releases the pending key.
func (w *pairWriter) end() {
	w.key = ""
	w.pending = false
}
