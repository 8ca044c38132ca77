// Package acquire locates and downloads open-access PDFs for vault
// papers through an ordered waterfall of source providers.
package acquire

import (
	"context"

	"github.com/gsekeres/marginalia/internal/paper"
)

// Provider resolves a candidate download URL for a paper. A provider
// that lacks the input it needs (for example no DOI) must return
// ("", nil) — no candidate — rather than an error. Errors are treated
// as recoverable: the waterfall logs them and moves on.
type Provider interface {
	Name() string
	Resolve(ctx context.Context, p *paper.Paper) (string, error)
}
