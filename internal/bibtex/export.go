package bibtex

import (
	"fmt"
	"strings"

	"github.com/gsekeres/marginalia/internal/paper"
)

// Export renders a paper as a BibTeX @article entry keyed by its
// citekey. For the fields both formats carry (title, authors, year,
// journal, DOI) the output re-imports to an identical record.
func Export(p *paper.Paper) string {
	var b strings.Builder

	fmt.Fprintf(&b, "@article{%s,\n", p.Citekey)
	if p.Title != "" {
		fmt.Fprintf(&b, "  title = {%s},\n", p.Title)
	}
	if len(p.Authors) > 0 {
		fmt.Fprintf(&b, "  author = {%s},\n", strings.Join(p.Authors, " and "))
	}
	if p.Year > 0 {
		fmt.Fprintf(&b, "  year = {%d},\n", p.Year)
	}
	if p.Journal != "" {
		fmt.Fprintf(&b, "  journal = {%s},\n", p.Journal)
	}
	if p.Volume != "" {
		fmt.Fprintf(&b, "  volume = {%s},\n", p.Volume)
	}
	if p.Number != "" {
		fmt.Fprintf(&b, "  number = {%s},\n", p.Number)
	}
	if p.Pages != "" {
		fmt.Fprintf(&b, "  pages = {%s},\n", p.Pages)
	}
	if p.DOI != "" {
		fmt.Fprintf(&b, "  doi = {%s},\n", p.DOI)
	}
	if p.URL != "" {
		fmt.Fprintf(&b, "  url = {%s},\n", p.URL)
	}
	b.WriteString("}\n")

	return b.String()
}

// ExportAll renders multiple papers separated by blank lines.
func ExportAll(papers []*paper.Paper) string {
	entries := make([]string, 0, len(papers))
	for _, p := range papers {
		entries = append(entries, Export(p))
	}
	return strings.Join(entries, "\n")
}
