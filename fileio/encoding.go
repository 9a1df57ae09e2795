package fileio

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// fallbackEncodings mirrors the original handlers' FALLBACK_ENCODINGS
// list: utf-8 first, then latin-1, then cp1252.
var fallbackEncodings = []*charmap.Charmap{
	charmap.ISO8859_1,
	charmap.Windows1252,
}

// decodeLine converts raw bytes into a valid UTF-8 string, using
// "replace" semantics like the original's errors="replace" mode: any
// byte sequence that isn't valid UTF-8 is first tried against the
// fallback single-byte charmaps (which can encode any byte value and
// so effectively never fail), falling back to the Unicode replacement
// character only if that somehow still fails.
func decodeLine(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	for _, cm := range fallbackEncodings {
		if decoded, ok := decodeWithCharmap(b, cm); ok {
			return decoded
		}
	}
	return toValidUTF8(b)
}

func decodeWithCharmap(b []byte, cm *charmap.Charmap) (string, bool) {
	decoded, err := cm.NewDecoder().Bytes(b)
	if err != nil {
		return "", false
	}
	return string(decoded), true
}

// toValidUTF8 replaces every invalid byte with the Unicode
// replacement character, the last-resort fallback when every charmap
// decode somehow fails.
func toValidUTF8(b []byte) string {
	out := make([]rune, 0, len(b))
	i := 0
	for i < len(b) {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			out = append(out, utf8.RuneError)
			i++
			continue
		}
		out = append(out, r)
		i += size
	}
	return string(out)
}
