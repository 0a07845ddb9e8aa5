// Package textcodec implements the Text Codec component (spec.md §4.1):
// Shift-JIS <-> Unicode conversion at the native-component boundary, plus
// half-width-katakana / full-width-ASCII normalisation of the decoded text.
//
// This is the one piece of this module's domain logic the Go standard
// library cannot provide on its own — encoding/ has no Shift-JIS table —
// so it is built directly on golang.org/x/text/encoding/japanese and
// golang.org/x/text/width, the same encoding subsystem the wider retrieval
// pack already depends on transitively.
package textcodec

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/width"
)

// shiftJIS is cp932 (Shift-JIS with the Windows/NEC/IBM vendor extensions
// the upstream JV-Link data actually uses), matching the "Windows code page
// 932 semantics" called for in spec.md §4.1.
var shiftJIS encoding.Encoding = japanese.ShiftJIS

// Decode converts raw Shift-JIS bytes from the native component into a Go
// string. The underlying transform substitutes U+FFFD for malformed
// sequences rather than failing outright — spec.md §4.1 requires decode to
// never raise on bad input, since one corrupt record must not abort a
// whole read loop — but Bytes is guarded regardless in case a future
// encoding swap (e.g. for a vendor-specific table) is stricter.
func Decode(b []byte) string {
	out, err := shiftJIS.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "�")
	}
	return string(out)
}

// Encode converts a Go string back into Shift-JIS bytes, the inverse of
// Decode for the ASCII-only subset spec.md §8 requires to round-trip.
func Encode(s string) ([]byte, error) {
	encoder := shiftJIS.NewEncoder()
	return encoder.Bytes([]byte(s))
}

// Normalize maps half-width katakana to full-width katakana and full-width
// ASCII digits/letters to half-width, leaving every other code point
// untouched. It is idempotent: Normalize(Normalize(s)) == Normalize(s).
//
// Only the halfwidth katakana block (U+FF61–U+FF9F) is widened, via
// width.Widen, and only fullwidth digits and Latin letters are narrowed.
// Other fullwidth or halfwidth forms (punctuation, the ideographic space,
// and so on) pass through as they are.
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 0xFF61 && r <= 0xFF9F:
			b.WriteString(width.Widen.String(string(r)))
		case (r >= 0xFF10 && r <= 0xFF19) || (r >= 0xFF21 && r <= 0xFF3A) || (r >= 0xFF41 && r <= 0xFF5A):
			b.WriteRune(r - 0xFEE0)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
