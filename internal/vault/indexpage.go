package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gsekeres/marginalia/internal/paper"
)

// maxIndexPageEntries caps how many papers are listed per status
// section on the generated overview page.
const maxIndexPageEntries = 20

// WriteIndexPage renders a markdown overview of the vault (stats,
// papers by status, the manual-download queue) to index.md and returns
// its path.
func (v *Vault) WriteIndexPage() (string, error) {
	var b strings.Builder

	b.WriteString("---\ntitle: Marginalia Index\n---\n\n")
	b.WriteString("# Literature Vault\n\n## Statistics\n")

	stats := v.Index.Stats()
	fmt.Fprintf(&b, "- **Total papers:** %d\n", stats.Total)
	for _, status := range paper.AllStatuses() {
		fmt.Fprintf(&b, "- **%s:** %d\n", status, stats.ByStatus[string(status)])
	}
	fmt.Fprintf(&b, "\n*Last updated: %s*\n", stats.LastUpdated.Format("2006-01-02 15:04:05"))

	b.WriteString("\n## By Status\n")
	for _, status := range []paper.Status{
		paper.StatusSummarized, paper.StatusDownloaded,
		paper.StatusWanted, paper.StatusDiscovered,
	} {
		papers := v.Index.ByStatus(status)
		if len(papers) == 0 {
			continue
		}
		sort.Slice(papers, func(i, j int) bool { return papers[i].Year > papers[j].Year })

		title := strings.ToUpper(string(status)[:1]) + string(status)[1:]
		fmt.Fprintf(&b, "\n### %s (%d)\n", title, len(papers))
		shown := papers
		if len(shown) > maxIndexPageEntries {
			shown = shown[:maxIndexPageEntries]
		}
		for _, p := range shown {
			fmt.Fprintf(&b, "- [[%s|%s]] (%d)\n", p.Citekey, truncate(p.Title, 60), p.Year)
		}
		if len(papers) > maxIndexPageEntries {
			fmt.Fprintf(&b, "- *... and %d more*\n", len(papers)-maxIndexPageEntries)
		}
	}

	if manual := v.NeedsManualDownload(); len(manual) > 0 {
		b.WriteString("\n## Manual Download Queue\n")
		b.WriteString("These papers need manual downloading:\n\n")
		for _, p := range manual {
			fmt.Fprintf(&b, "### %s\n", p.Citekey)
			fmt.Fprintf(&b, "**%s** (%s, %d)\n\n", p.Title, p.AuthorsString(), p.Year)
			if len(p.ManualDownloadLinks) > 0 {
				b.WriteString("Search links:\n")
				for i, link := range p.ManualDownloadLinks {
					if i >= 3 {
						break
					}
					fmt.Fprintf(&b, "- [%s...](%s)\n", truncate(link, 50), link)
				}
			}
			b.WriteString("\n")
		}
	}

	path := filepath.Join(v.Root, IndexPageFile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("writing index page: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("replacing index page: %w", err)
	}
	return path, nil
}

// truncate shortens s to at most n bytes.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
