package urlform

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

// source yields the key/value pairs of form encoded input in order. Empty
// segments between separators are skipped, so "", "&" and "&&" all hold zero
// pairs.
type source struct {
	rest string

	// count is the number of pairs consumed so far.
	count int
}

func newSource(input string) *source {
	return &source{rest: input}
}

// next returns the next pair, decoded. ok is false once the input is
// exhausted.
func (s *source) next() (key, value string, ok bool, err error) {
	for s.rest != "" {
		var seg string
		seg, s.rest = cut(s.rest)
		if seg == "" {
			continue
		}

		rawKey, rawValue, _ := strings.Cut(seg, "=")
		if key, err = unescape(rawKey); err != nil {
			return "", "", false, err
		}
		if value, err = unescape(rawValue); err != nil {
			return "", "", false, err
		}
		s.count++
		return key, value, true, nil
	}
	return "", "", false, nil
}

// remaining returns the number of pairs not yet consumed, without decoding
// them.
func (s *source) remaining() int {
	n := 0
	for rest := s.rest; rest != ""; {
		var seg string
		seg, rest = cut(rest)
		if seg != "" {
			n++
		}
	}
	return n
}

func cut(s string) (seg, rest string) {
	if i := strings.IndexByte(s, '&'); i >= 0 {
		return s[:i], s[i+1:]
	}
	return s, ""
}

// unescape decodes a key or value. Text without escapes is returned as a view
// of the input; only text containing escapes is copied.
func unescape(s string) (string, error) {
	if strings.IndexByte(s, '%') < 0 && strings.IndexByte(s, '+') < 0 {
		if !utf8.ValidString(s) {
			return "", newError(KindEncoding, "", nil, "invalid UTF-8 in %q", s)
		}
		return s, nil
	}
	u, err := url.QueryUnescape(s)
	if err != nil {
		return "", newError(KindMalformed, "", err, "invalid form data")
	}
	if !utf8.ValidString(u) {
		return "", newError(KindEncoding, "", nil, "invalid UTF-8 in %q", s)
	}
	return u, nil
}
