package paper

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gosimple/slug"
)

// Words skipped when choosing the title component of a citekey.
var citekeyStopwords = map[string]bool{
	"a": true, "an": true, "the": true, "on": true, "in": true,
	"of": true, "and": true, "for": true, "to": true, "with": true,
}

var (
	nonAlpha      = regexp.MustCompile(`[^a-z]`)
	nonAlphaSpace = regexp.MustCompile(`[^a-z\s]`)
)

// GenerateCitekey derives the stable identifier for a paper from its
// bibliographic fields: first author's surname, year (0000 when
// unknown), and the first significant word of the title.
//
// Format: "smith2023algorithmic". The derivation is deterministic, so
// repeated imports of the same entry collide onto the same record
// instead of duplicating it.
func GenerateCitekey(authors []string, year int, title string) string {
	last := "unknown"
	if len(authors) > 0 {
		if n := lastName(authors[0]); n != "" {
			last = n
		}
	}
	// Transliterate accented names before stripping to bare letters.
	last = nonAlpha.ReplaceAllString(strings.ReplaceAll(slug.Make(last), "-", ""), "")
	if last == "" {
		last = "unknown"
	}

	yearStr := "0000"
	if year > 0 {
		yearStr = strconv.Itoa(year)
	}

	word := "paper"
	cleaned := nonAlphaSpace.ReplaceAllString(strings.ToLower(title), "")
	for _, w := range strings.Fields(cleaned) {
		if len(w) > 2 && !citekeyStopwords[w] {
			word = w
			break
		}
	}

	return last + yearStr + word
}
