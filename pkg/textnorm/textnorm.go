// Package textnorm provides the deterministic text normalization used for
// canonical logins and group tags: accents stripped, non-ASCII folded, result
// lowercased. Output is identical across platforms for the same Unicode input.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// asciiFold maps Latin letters that do not decompose to an ASCII base letter
// under NFD. Unicode canonical decomposition handles the accented rest.
var asciiFold = strings.NewReplacer(
	"ß", "ss", "ẞ", "SS",
	"Ø", "O", "ø", "o",
	"Æ", "AE", "æ", "ae",
	"Œ", "OE", "œ", "oe",
	"Đ", "D", "đ", "d",
	"Ð", "D", "ð", "d",
	"Ħ", "H", "ħ", "h",
	"Ł", "L", "ł", "l",
	"Þ", "TH", "þ", "th",
	"Ŧ", "T", "ŧ", "t",
	"ı", "i",
)

// Normalize transliterates s to an ASCII-only representation, strips any
// character outside [a-zA-Z0-9. -_] and lowercases the result.
func Normalize(s string) string {
	s = asciiFold.Replace(s)

	// NFD splits base letters from combining marks; the marks are removed.
	strip := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(strip, s); err == nil {
		s = folded
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.' || r == ' ' || r == '-' || r == '_':
		default:
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}
