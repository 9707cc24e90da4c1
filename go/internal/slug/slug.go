// Package slug derives URL-safe identifiers from team names.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// letters that do not decompose under NFD
var replacer = strings.NewReplacer(
	"ð", "d", "Ð", "d",
	"þ", "th", "Þ", "th",
	"æ", "ae", "Æ", "ae",
	"ø", "o", "Ø", "o",
	"œ", "oe", "Œ", "oe",
	"ß", "ss",
	"đ", "d", "Đ", "d",
	"ł", "l", "Ł", "l",
	"&", " and ",
)

// Make returns the lowercase, URL-safe slug for name. Diacritics are folded to
// their base letters and every run of other characters becomes a single dash.
// The result is empty when name holds no letters or digits.
func Make(name string) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		replacer.Replace(name),
	)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	b.Grow(len(folded))
	dash := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		default:
			dash = true
		}
	}
	return b.String()
}
