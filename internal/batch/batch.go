// Package batch runs an operation over a set of papers strictly one
// at a time, persisting the vault after every item so an interrupted
// run loses at most the item in flight.
package batch

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/gsekeres/marginalia/internal/paper"
	"github.com/gsekeres/marginalia/internal/vault"
)

// Op processes a single paper, mutating it in place. The boolean
// reports whether the item counts as a success; the error aborts the
// whole run only when persistence is at stake, so most ops return
// (false, nil) on per-item failure.
type Op func(ctx context.Context, p *paper.Paper) (bool, error)

// Progress exposes counters a concurrent poller can read while a run
// is in flight.
type Progress struct {
	total     atomic.Int64
	completed atomic.Int64
	succeeded atomic.Int64
}

// Snapshot is one consistent read of the counters.
type Snapshot struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Succeeded int `json:"succeeded"`
}

func (p *Progress) Snapshot() Snapshot {
	return Snapshot{
		Total:     int(p.total.Load()),
		Completed: int(p.completed.Load()),
		Succeeded: int(p.succeeded.Load()),
	}
}

// Runner executes ops over vault papers sequentially.
type Runner struct {
	vault    *vault.Vault
	progress *Progress
}

func NewRunner(v *vault.Vault) *Runner {
	return &Runner{vault: v, progress: &Progress{}}
}

// Progress returns the live counters for this runner.
func (r *Runner) Progress() *Progress { return r.progress }

// Run applies op to each paper in order, at most limit items (no cap
// when limit <= 0). The vault snapshot is saved after every item,
// success or failure, so partial progress survives a crash. A save
// failure stops the run immediately.
func (r *Runner) Run(ctx context.Context, papers []*paper.Paper, limit int, op Op) (Snapshot, error) {
	if limit > 0 && len(papers) > limit {
		papers = papers[:limit]
	}
	r.progress.total.Store(int64(len(papers)))
	r.progress.completed.Store(0)
	r.progress.succeeded.Store(0)

	for _, p := range papers {
		if err := ctx.Err(); err != nil {
			return r.progress.Snapshot(), err
		}

		ok, err := op(ctx, p)
		if err != nil {
			return r.progress.Snapshot(), fmt.Errorf("processing %s: %w", p.Citekey, err)
		}
		if ok {
			r.progress.succeeded.Add(1)
		}
		r.progress.completed.Add(1)

		if err := r.vault.Save(); err != nil {
			return r.progress.Snapshot(), fmt.Errorf("saving vault after %s: %w", p.Citekey, err)
		}
	}
	return r.progress.Snapshot(), nil
}
