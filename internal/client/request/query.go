package request

import (
	"slices"
	"strings"
)

const upperhex = "0123456789ABCDEF"

// encode percent-encodes s the way encodeURIComponent does: everything but
// letters, digits and -_.!~*'() is escaped byte by byte.
func encode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

// EncodeQuery renders the query of d as key=value pairs joined with '&'.
// Flags are rendered as the bare key. Keys are sorted so the output is stable.
func EncodeQuery(d Descriptor) string {
	keys := make([]string, 0, len(d.Query)+len(d.Flags))
	for k := range d.Query {
		keys = append(keys, k)
	}
	keys = append(keys, d.Flags...)
	slices.Sort(keys)
	keys = slices.Compact(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if v, ok := d.Query[k]; ok {
			parts = append(parts, encode(k)+"="+encode(v))
			continue
		}
		parts = append(parts, encode(k))
	}
	return strings.Join(parts, "&")
}

// URL returns host+path, followed by '?' and the query string when there is one.
func URL(d Descriptor) string {
	u := d.Host + d.Path
	if qs := EncodeQuery(d); qs != "" {
		u += "?" + qs
	}
	return u
}
