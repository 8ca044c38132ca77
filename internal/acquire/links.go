package acquire

import (
	"fmt"
	"net/url"

	"github.com/gsekeres/marginalia/internal/paper"
)

// ManualLinks builds search URLs for a human to try when every
// provider has come up empty. The list always includes Google Scholar
// and SSRN/NBER queries; a direct doi.org link is appended when the
// paper has a DOI.
func ManualLinks(p *paper.Paper) []string {
	title := p.Title
	shortTitle := title
	if len(shortTitle) > 50 {
		shortTitle = shortTitle[:50]
	}
	surname := p.FirstAuthorLastName()

	links := []string{
		"https://scholar.google.com/scholar?q=" + url.QueryEscape(title),
		"https://scholar.google.com/scholar?q=" + url.QueryEscape(surname+" "+shortTitle),
		"https://papers.ssrn.com/sol3/results.cfm?txtKey_Words=" + url.QueryEscape(shortTitle),
		"https://www.nber.org/search?q=" + url.QueryEscape(surname),
	}
	if p.DOI != "" {
		links = append(links, fmt.Sprintf("https://doi.org/%s", p.DOI))
	}
	return links
}
