package summary

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gsekeres/marginalia/internal/paper"
)

// MaxCitations caps how many scraped citations are kept per paper.
const MaxCitations = 50

// In-text citation shapes: "(Author, 2020)", "(Author and Author,
// 2020)", "Author et al. (2020)".
var citationRes = []*regexp.Regexp{
	regexp.MustCompile(`\(([A-Z][a-z]+(?:\s+(?:and|&)\s+[A-Z][a-z]+)?(?:\s+et\s+al\.)?),?\s*(\d{4})\)`),
	regexp.MustCompile(`\(([A-Z][a-z]+(?:\s+(?:and|&)\s+[A-Z][a-z]+)*),?\s*(\d{4})\)`),
	regexp.MustCompile(`([A-Z][a-z]+(?:\s+(?:and|&)\s+[A-Z][a-z]+)?(?:\s+et\s+al\.)?)\s*\((\d{4})\)`),
}

// ExtractCitations scrapes in-text citations from the paper body.
// This is a heuristic pass, not a references parser: it catches the
// common author-year shapes, dedupes them, and stops at MaxCitations.
func ExtractCitations(text string) []paper.Citation {
	var citations []paper.Citation
	found := make(map[string]bool)

	for _, re := range citationRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			author, year := m[1], m[2]
			key := strings.ToLower(strings.ReplaceAll(author, " ", "")) + "_" + year
			if found[key] {
				continue
			}
			found[key] = true

			lastName := strings.ToLower(strings.Fields(author)[0])
			y, _ := strconv.Atoi(year)
			citations = append(citations, paper.Citation{
				Citekey: lastName + year,
				Authors: author,
				Year:    y,
				Status:  "unknown",
			})
		}
	}

	if len(citations) > MaxCitations {
		citations = citations[:MaxCitations]
	}
	return citations
}
