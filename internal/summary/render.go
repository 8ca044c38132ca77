package summary

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gsekeres/marginalia/internal/paper"
)

const citationsInSummary = 20

type frontmatter struct {
	Title        string   `yaml:"title"`
	Authors      []string `yaml:"authors"`
	Year         int      `yaml:"year"`
	Journal      string   `yaml:"journal"`
	Citekey      string   `yaml:"citekey"`
	DOI          string   `yaml:"doi"`
	Status       string   `yaml:"status"`
	SummarizedAt string   `yaml:"summarized_at"`
	PDFPath      string   `yaml:"pdf_path"`
}

// Render produces the summary.md document: YAML frontmatter, the
// structured sections, wikilinked related work and citations, and a
// navigation footer.
func Render(p *paper.Paper, s *Structured, citations []paper.Citation, now time.Time) (string, error) {
	journal := p.Journal
	if journal == "" {
		journal = "Working Paper"
	}
	fm, err := yaml.Marshal(frontmatter{
		Title:        p.Title,
		Authors:      p.Authors,
		Year:         p.Year,
		Journal:      journal,
		Citekey:      p.Citekey,
		DOI:          p.DOI,
		Status:       "summarized",
		SummarizedAt: now.Format(time.RFC3339),
		PDFPath:      "./paper.pdf",
	})
	if err != nil {
		return "", fmt.Errorf("rendering frontmatter: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("---\n")
	sb.Write(fm)
	sb.WriteString("---\n\n")

	sb.WriteString("## Summary\n\n")
	sb.WriteString(s.Summary)
	sb.WriteString("\n\n## Key Contributions\n\n")
	for _, c := range s.Contributions {
		fmt.Fprintf(&sb, "- %s\n", c)
	}
	sb.WriteString("\n## Methodology\n\n")
	sb.WriteString(s.Methodology)
	sb.WriteString("\n\n## Main Results\n\n")
	for _, r := range s.Results {
		fmt.Fprintf(&sb, "- %s\n", r)
	}

	if len(s.RelatedWork) > 0 {
		sb.WriteString("\n## Related Work\n\n")
		for _, rw := range s.RelatedWork {
			name := rw.Title
			if rw.VaultCitekey != "" {
				name = fmt.Sprintf("[[%s]] %s", rw.VaultCitekey, rw.Title)
			}
			fmt.Fprintf(&sb, "- %s (%s, %d): %s\n",
				name, strings.Join(rw.Authors, ", "), rw.Year, rw.WhyRelated)
		}
	}

	if len(citations) > 0 {
		sb.WriteString("\n## Extracted Citations\n\n")
		top := citations
		if len(top) > citationsInSummary {
			top = top[:citationsInSummary]
		}
		for _, c := range top {
			fmt.Fprintf(&sb, "- [[%s]] (%s, %d)\n", c.Citekey, c.Authors, c.Year)
		}
	}

	sb.WriteString("\n---\n")
	sb.WriteString("PDF: [[paper.pdf]]\n")
	fmt.Fprintf(&sb, "BibTeX key: `%s`\n", p.Citekey)
	return sb.String(), nil
}
