// Package slug derives URL-safe identifiers from display names.
package slug

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Latin letters that have no decomposition but a conventional ASCII spelling.
var foldings = map[rune]string{
	'ß': "ss",
	'æ': "ae",
	'œ': "oe",
	'ø': "o",
	'đ': "d",
	'ð': "d",
	'ł': "l",
	'þ': "th",
	'ı': "i",
}

// Make lowercases s and joins runs of letters and digits with '-'. Accents on
// Latin letters are stripped; letters of other scripts are kept with their
// combining marks, so Devanagari or CJK names still produce a slug.
func Make(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	pendingDash := false
	latinBase := false
	for _, r := range norm.NFKD.String(s) {
		r = unicode.ToLower(r)
		switch {
		case unicode.In(r, unicode.Mn, unicode.Mc, unicode.Me):
			if b.Len() == 0 || pendingDash || latinBase {
				continue
			}
			b.WriteRune(r)
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingDash {
				b.WriteByte('-')
				pendingDash = false
			}
			if f, ok := foldings[r]; ok {
				b.WriteString(f)
				latinBase = true
				continue
			}
			b.WriteRune(r)
			latinBase = r <= unicode.MaxASCII
		default:
			pendingDash = b.Len() > 0
		}
	}
	return norm.NFC.String(b.String())
}

// WithSuffix appends a short disambiguator, typically the head of an id.
func WithSuffix(s, suffix string) string {
	base := Make(s)
	suffix = Make(suffix)
	if utf8.RuneCountInString(suffix) > 8 {
		suffix = string([]rune(suffix)[:8])
	}
	switch {
	case base == "":
		return suffix
	case suffix == "":
		return base
	default:
		return base + "-" + suffix
	}
}
