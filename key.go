package doxsearch

import "strings"

// DecodeKey converts a Doxygen search key into its normalized form.
//
// Doxygen writes every character outside [a-z0-9] as an underscore followed
// by two hex digits and appends "_<n>" to make keys unique within a file.
// DecodeKey strips the ordinal and decodes the escapes, so
// "io_5fbase_5faddress_8" becomes "io_base_address".
func DecodeKey(raw string) string {
	return decodeEscapes(stripOrdinal(strings.ToLower(raw)))
}

func stripOrdinal(s string) string {
	i := strings.LastIndexByte(s, '_')
	if i < 0 || i == len(s)-1 {
		return s
	}
	for _, c := range s[i+1:] {
		if c < '0' || c > '9' {
			return s
		}
	}
	return s[:i]
}

func decodeEscapes(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '_' && i+2 < len(s) {
			hi, okHi := unhex(s[i+1])
			lo, okLo := unhex(s[i+2])
			if okHi && okLo {
				b.WriteByte(hi<<4 | lo)
				i += 2
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
