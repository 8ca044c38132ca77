package acquire

import (
	"context"
	"fmt"
	"strings"

	"github.com/gsekeres/marginalia/internal/anthropic"
	"github.com/gsekeres/marginalia/internal/paper"
)

// completer is the slice of the Anthropic client the provider needs.
type completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Claude asks an LLM for a direct PDF URL as a last resort before
// giving up. It only runs when an API key is configured.
type Claude struct {
	client completer
}

func NewClaude(client *anthropic.Client) *Claude {
	return &Claude{client: client}
}

func (c *Claude) Name() string { return "claude" }

func (c *Claude) Resolve(ctx context.Context, p *paper.Paper) (string, error) {
	prompt := fmt.Sprintf(`Find a direct PDF download URL for this academic paper:

Title: %s
Authors: %s
Year: %d

Respond with ONLY the URL, or NONE if you cannot identify one with confidence.
The URL must point directly at a PDF file, not a landing page.`,
		p.Title, p.AuthorsString(), p.Year)

	out, err := c.client.Complete(ctx, prompt, 256)
	if err != nil {
		return "", fmt.Errorf("claude suggestion: %w", err)
	}
	out = strings.TrimSpace(out)
	if out == "" || strings.EqualFold(out, "NONE") {
		return "", nil
	}
	if !strings.HasPrefix(out, "http://") && !strings.HasPrefix(out, "https://") {
		return "", nil
	}
	return out, nil
}
