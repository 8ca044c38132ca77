package bibtex

import (
	"strings"
	"testing"

	"github.com/gsekeres/marginalia/internal/paper"
)

func TestParseBasicEntry(t *testing.T) {
	bib := `@article{whateverKey99,
  title = {Algorithmic Mechanism Design},
  author = {Smith, John and Doe, Jane},
  year = {2023},
  journal = {Econometrica},
  volume = {91},
  number = {4},
  pages = {1205--1247},
  doi = {10.1234/amd},
}`
	papers, err := Parse(strings.NewReader(bib))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(papers) != 1 {
		t.Fatalf("got %d papers", len(papers))
	}

	p := papers[0]
	if p.Citekey != "smith2023algorithmic" {
		t.Errorf("citekey = %q; entry key must be ignored", p.Citekey)
	}
	if p.Title != "Algorithmic Mechanism Design" {
		t.Errorf("title = %q", p.Title)
	}
	if len(p.Authors) != 2 || p.Authors[0] != "John Smith" || p.Authors[1] != "Jane Doe" {
		t.Errorf("authors = %v", p.Authors)
	}
	if p.Year != 2023 || p.Journal != "Econometrica" || p.DOI != "10.1234/amd" {
		t.Errorf("fields: year=%d journal=%q doi=%q", p.Year, p.Journal, p.DOI)
	}
	if p.Volume != "91" || p.Number != "4" || p.Pages != "1205--1247" {
		t.Errorf("fields: volume=%q number=%q pages=%q", p.Volume, p.Number, p.Pages)
	}
	if p.Status != paper.StatusDiscovered {
		t.Errorf("status = %q", p.Status)
	}
}

func TestParseValueStyles(t *testing.T) {
	bib := `@article{k1,
  title = "Quoted Title Style",
  author = {Jane Doe},
  year = 2020
}

@inproceedings{k2,
  title = {Nested {BibTeX} Braces in a Title},
  author = {John Smith},
  booktitle = {Proceedings of Something},
  year = {2019},
}`
	papers, err := Parse(strings.NewReader(bib))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(papers) != 2 {
		t.Fatalf("got %d papers", len(papers))
	}
	if papers[0].Title != "Quoted Title Style" || papers[0].Year != 2020 {
		t.Errorf("quoted/bare entry: %+v", papers[0])
	}
	if papers[1].Title != "Nested BibTeX Braces in a Title" {
		t.Errorf("braces not cleaned: %q", papers[1].Title)
	}
	if papers[1].Journal != "Proceedings of Something" {
		t.Errorf("booktitle fallback: %q", papers[1].Journal)
	}
}

func TestParseSkipsNonEntries(t *testing.T) {
	bib := `@comment{this is ignored}
@preamble{"also ignored"}
@string{aer = {American Economic Review}}

@article{real,
  title = {A Real Paper},
  author = {Jane Doe},
  year = {2021},
}

@misc{untitled,
  author = {Nobody Atall},
  year = {2020},
}`
	papers, err := Parse(strings.NewReader(bib))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(papers) != 1 {
		t.Fatalf("got %d papers, want 1 (comment, preamble, string, titleless dropped)", len(papers))
	}
	if papers[0].Title != "A Real Paper" {
		t.Errorf("title = %q", papers[0].Title)
	}
}

func TestParseAuthors(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Smith, John and Doe, Jane", []string{"John Smith", "Jane Doe"}},
		{"John Smith and Jane Doe", []string{"John Smith", "Jane Doe"}},
		{"{van der Berg}, Jean", []string{"Jean van der Berg"}},
		{"", nil},
	}
	for _, tt := range tests {
		got := ParseAuthors(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("ParseAuthors(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParseAuthors(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"2023", 2023},
		{"{2019}", 2019},
		{"forthcoming", 0},
		{"circa 1984, revised", 1984},
		{"", 0},
	}
	for _, tt := range tests {
		if got := ParseYear(tt.in); got != tt.want {
			t.Errorf("ParseYear(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeDOI(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10.1234/amd", "10.1234/amd"},
		{"https://doi.org/10.1234/amd", "10.1234/amd"},
		{"doi:10.1234/amd", "10.1234/amd"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeDOI(tt.in); got != tt.want {
			t.Errorf("NormalizeDOI(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	orig := paper.New("Algorithmic Mechanism Design", []string{"John Smith", "Jane Doe"}, 2023)
	orig.Journal = "Econometrica"
	orig.Volume = "91"
	orig.Pages = "1205--1247"
	orig.DOI = "10.1234/amd"

	out := Export(orig)
	if !strings.HasPrefix(out, "@article{smith2023algorithmic,") {
		t.Errorf("export key: %q", strings.SplitN(out, "\n", 2)[0])
	}

	papers, err := Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if len(papers) != 1 {
		t.Fatalf("got %d papers", len(papers))
	}
	got := papers[0]

	if got.Citekey != orig.Citekey {
		t.Errorf("citekey drifted: %q vs %q", got.Citekey, orig.Citekey)
	}
	if got.Title != orig.Title || got.Year != orig.Year || got.Journal != orig.Journal ||
		got.Volume != orig.Volume || got.Pages != orig.Pages || got.DOI != orig.DOI {
		t.Errorf("fields drifted: %+v", got)
	}
	if len(got.Authors) != 2 || got.Authors[0] != "John Smith" {
		t.Errorf("authors drifted: %v", got.Authors)
	}
}

func TestExportAll(t *testing.T) {
	a := paper.New("First Paper", []string{"A Person"}, 2020)
	b := paper.New("Second Paper", []string{"B Person"}, 2021)

	out := ExportAll([]*paper.Paper{a, b})
	if strings.Count(out, "@article{") != 2 {
		t.Errorf("expected 2 entries:\n%s", out)
	}
	papers, err := Parse(strings.NewReader(out))
	if err != nil || len(papers) != 2 {
		t.Errorf("re-parse: %d papers, err=%v", len(papers), err)
	}
}
