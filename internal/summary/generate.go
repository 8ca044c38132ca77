package summary

import (
	"context"

	"github.com/gsekeres/marginalia/internal/paper"
)

// Structured is the model's summary broken into sections. RelatedWork
// entries are later matched against the vault index to produce
// wikilinks.
type Structured struct {
	Summary       string               `json:"summary"`
	Contributions []string             `json:"key_contributions"`
	Methodology   string               `json:"methodology"`
	Results       []string             `json:"main_results"`
	RelatedWork   []paper.RelatedPaper `json:"related_work"`
}

// Generator produces a structured summary from a paper's metadata and
// cleaned full text.
type Generator interface {
	Generate(ctx context.Context, p *paper.Paper, text string) (*Structured, error)
}
