package vault

import (
	"regexp"
	"strings"

	"github.com/gsekeres/marginalia/internal/paper"
)

var nonAlnumSpace = regexp.MustCompile(`[^a-z0-9\s]`)

// normalizeTitle lowercases a title and strips everything but letters,
// digits, and spaces.
func normalizeTitle(title string) string {
	return strings.TrimSpace(nonAlnumSpace.ReplaceAllString(strings.ToLower(title), ""))
}

// MatchRelatedPapers resolves a paper's suggested related papers
// against the vault, setting VaultCitekey where a record matches.
// Matching uses normalized-title equality or substring containment in
// either direction; short titles can false-positive, which is an
// accepted limit of the heuristic.
func (v *Vault) MatchRelatedPapers(p *paper.Paper) {
	v.MatchRelated(p.RelatedPapers)
}

// MatchRelated resolves a standalone slice of suggested related
// papers in place.
func (v *Vault) MatchRelated(related []paper.RelatedPaper) {
	for i := range related {
		rel := &related[i]
		relNorm := normalizeTitle(rel.Title)
		if relNorm == "" {
			continue
		}
		for _, candidate := range v.Index.All() {
			candNorm := normalizeTitle(candidate.Title)
			if candNorm == "" {
				continue
			}
			if relNorm == candNorm ||
				strings.Contains(candNorm, relNorm) ||
				strings.Contains(relNorm, candNorm) {
				rel.VaultCitekey = candidate.Citekey
				break
			}
		}
	}
}
