package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

var trademarks = strings.NewReplacer("®", "", "©", "", "™", "")

// Slugify turns arbitrary display text into a URL-safe identifier: lower-case,
// NFD decomposition with combining marks stripped, trademark glyphs removed,
// every run of non-alphanumeric characters collapsed into a single dash.
// It is pure and total: any input yields a string, and the result is stable
// under re-application.
func Slugify(text string) string {
	lowered := strings.ToLower(text)
	stripped, _, err := transform.String(deaccent, lowered)
	if err != nil {
		stripped = lowered
	}
	stripped = trademarks.Replace(stripped)

	var b strings.Builder
	b.Grow(len(stripped))
	pendingDash := false
	for _, r := range stripped {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}
