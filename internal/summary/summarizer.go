package summary

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gsekeres/marginalia/internal/paper"
	"github.com/gsekeres/marginalia/internal/vault"
)

// ErrNoPDF means the paper has no PDF on disk to summarize.
var ErrNoPDF = errors.New("no PDF file found for paper")

// Summarizer runs the full pipeline for one paper. It never mutates
// the paper record: on success the caller applies the transition with
// the returned path and citations, on failure nothing has changed.
type Summarizer struct {
	vault   *vault.Vault
	gen     Generator
	extract func(path string) (string, error)
}

func NewSummarizer(v *vault.Vault, gen Generator) *Summarizer {
	return &Summarizer{
		vault: v,
		gen:   gen,
		extract: func(path string) (string, error) {
			return ExtractText(path)
		},
	}
}

// WithExtract overrides text extraction, for testing without real
// PDF fixtures.
func (s *Summarizer) WithExtract(fn func(path string) (string, error)) *Summarizer {
	s.extract = fn
	return s
}

// Summarize extracts, cleans, summarizes, and writes summary.md for
// one paper. It returns the vault-relative summary path and the
// scraped citations for the caller to record.
func (s *Summarizer) Summarize(ctx context.Context, p *paper.Paper) (string, []paper.Citation, error) {
	pdfPath := s.vault.PDFPath(p.Citekey)
	if _, err := os.Stat(pdfPath); err != nil {
		if p.PDFPath == "" {
			return "", nil, ErrNoPDF
		}
		pdfPath = filepath.Join(s.vault.Root, p.PDFPath)
		if _, err := os.Stat(pdfPath); err != nil {
			return "", nil, ErrNoPDF
		}
	}

	raw, err := s.extract(pdfPath)
	if err != nil {
		return "", nil, fmt.Errorf("extracting text: %w", err)
	}
	text := Truncate(CleanText(raw))

	structured, err := s.gen.Generate(ctx, p, text)
	if err != nil {
		return "", nil, err
	}
	s.vault.MatchRelated(structured.RelatedWork)

	citations := ExtractCitations(text)

	doc, err := Render(p, structured, citations, time.Now())
	if err != nil {
		return "", nil, err
	}

	dest := s.vault.SummaryPath(p.Citekey)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", nil, fmt.Errorf("creating paper directory: %w", err)
	}
	tmp := dest + ".tmp"
	if err := os.WriteFile(tmp, []byte(doc), 0o644); err != nil {
		return "", nil, fmt.Errorf("writing summary: %w", err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return "", nil, fmt.Errorf("writing summary: %w", err)
	}

	p.RelatedPapers = structured.RelatedWork
	return vault.RelSummaryPath(p.Citekey), citations, nil
}
