package catalog

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Normalize pliega mayúsculas y quita espacios y guiones:
// "Amazon-macaw", "amazon macaw" y "amazonmacaw" dan lo mismo.
func Normalize(s string) string {
	t := transform.Chain(
		runes.Remove(runes.Predicate(isSeparator)),
		cases.Fold(),
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || unicode.Is(unicode.Hyphen, r)
}
