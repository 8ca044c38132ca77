package summary

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gsekeres/marginalia/internal/anthropic"
	"github.com/gsekeres/marginalia/internal/paper"
)

const summaryMaxTokens = 4000

// ClaudeGenerator generates structured summaries through the
// Anthropic Messages API.
type ClaudeGenerator struct {
	client *anthropic.Client
}

func NewClaudeGenerator(client *anthropic.Client) *ClaudeGenerator {
	return &ClaudeGenerator{client: client}
}

func (g *ClaudeGenerator) Generate(ctx context.Context, p *paper.Paper, text string) (*Structured, error) {
	journal := p.Journal
	if journal == "" {
		journal = "Working Paper"
	}
	prompt := fmt.Sprintf(`You are an academic research assistant. Summarize this economics/political science paper.

PAPER METADATA:
Title: %s
Authors: %s
Year: %d
Journal: %s

FULL TEXT:
%s

Respond with ONLY a JSON object, no markdown fences, with these keys:
- "summary": one paragraph (3-5 sentences) explaining what this paper does and finds
- "key_contributions": array of 3-5 strings listing the main contributions
- "methodology": 1-2 paragraphs describing the methodology (theoretical model, empirical analysis, experimental, computational, etc.)
- "main_results": array of 3-5 strings summarizing the key findings
- "related_work": array of 3-5 objects {"title", "authors" (array of strings), "year" (number), "why_related"} for the most important papers this work builds on

Be concise but thorough. Focus on the economic/scientific contribution, not administrative details.`,
		p.Title, p.AuthorsString(), p.Year, journal, text)

	out, err := g.client.Complete(ctx, prompt, summaryMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("generating summary: %w", err)
	}

	var s Structured
	if err := json.Unmarshal([]byte(stripFences(out)), &s); err != nil {
		return nil, fmt.Errorf("parsing summary response: %w", err)
	}
	if s.Summary == "" {
		return nil, fmt.Errorf("summary response missing summary section")
	}
	return &s, nil
}

// stripFences removes a markdown code fence the model sometimes wraps
// JSON in despite instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
