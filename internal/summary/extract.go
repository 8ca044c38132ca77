// Package summary turns a downloaded PDF into a structured summary
// document: extract text, clean and truncate it, generate the summary
// through an external model, and scrape a references list.
package summary

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNoText means every extraction strategy produced empty output,
// usually a scanned or image-only PDF.
var ErrNoText = errors.New("no extractable text in PDF")

// Extractor pulls plain text out of a PDF file.
type Extractor interface {
	Name() string
	Extract(path string) (string, error)
}

// PlainTextExtractor uses the document-level text stream. Fast, but
// some PDFs yield garbled or empty output through it.
type PlainTextExtractor struct{}

func (PlainTextExtractor) Name() string { return "plaintext" }

func (PlainTextExtractor) Extract(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting text: %w", err)
	}
	buf, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("reading text: %w", err)
	}
	return string(buf), nil
}

// ByRowExtractor walks each page row by row. Slower, but recovers
// text from PDFs the plain-text stream mangles.
type ByRowExtractor struct{}

func (ByRowExtractor) Name() string { return "byrow" }

func (ByRowExtractor) Extract(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			for _, word := range row.Content {
				sb.WriteString(word.S)
				sb.WriteByte(' ')
			}
			sb.WriteByte('\n')
		}
	}
	return sb.String(), nil
}

// ExtractText runs the extractors in order and returns the first
// non-empty result. Extractor failures are tolerated until the list
// is exhausted.
func ExtractText(path string, extractors ...Extractor) (string, error) {
	if len(extractors) == 0 {
		extractors = []Extractor{PlainTextExtractor{}, ByRowExtractor{}}
	}
	var lastErr error
	for _, ex := range extractors {
		text, err := ex.Extract(path)
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", ex.Name(), err)
			continue
		}
		if strings.TrimSpace(text) != "" {
			return text, nil
		}
	}
	if lastErr != nil {
		return "", lastErr
	}
	return "", ErrNoText
}
