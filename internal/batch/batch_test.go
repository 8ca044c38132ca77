package batch

import (
	"context"
	"errors"
	"testing"

	"github.com/gsekeres/marginalia/internal/paper"
	"github.com/gsekeres/marginalia/internal/vault"
)

func seededVault(t *testing.T, n int) (*vault.Vault, []*paper.Paper) {
	t.Helper()
	v, err := vault.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	var papers []*paper.Paper
	titles := []string{"Alpha Paper", "Beta Paper", "Gamma Paper", "Delta Paper"}
	for i := 0; i < n; i++ {
		p := paper.New(titles[i], []string{"A Person"}, 2020+i)
		p.MarkWanted()
		v.Index.Put(p)
		papers = append(papers, p)
	}
	if err := v.Save(); err != nil {
		t.Fatal(err)
	}
	return v, papers
}

func TestRunSequentialAndCounted(t *testing.T) {
	v, papers := seededVault(t, 3)
	r := NewRunner(v)

	var order []string
	snap, err := r.Run(context.Background(), papers, 0,
		func(ctx context.Context, p *paper.Paper) (bool, error) {
			order = append(order, p.Citekey)
			return p.Year != 2021, nil // middle one fails
		})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if snap.Total != 3 || snap.Completed != 3 || snap.Succeeded != 2 {
		t.Errorf("snapshot = %+v", snap)
	}
	if len(order) != 3 || order[0] != papers[0].Citekey {
		t.Errorf("order = %v", order)
	}
	if got := r.Progress().Snapshot(); got != snap {
		t.Errorf("live progress %+v != returned snapshot %+v", got, snap)
	}
}

func TestRunPersistsAfterEveryItem(t *testing.T) {
	v, papers := seededVault(t, 2)
	r := NewRunner(v)

	_, err := r.Run(context.Background(), papers, 0,
		func(ctx context.Context, p *paper.Paper) (bool, error) {
			if p.Citekey == papers[1].Citekey {
				// By the time the second item runs, the first item's
				// mutation must already be on disk.
				reloaded, err := vault.Open(v.Root)
				if err != nil {
					t.Fatal(err)
				}
				if got := reloaded.Index.Get(papers[0].Citekey).Status; got != paper.StatusQueued {
					t.Errorf("first item not persisted before second ran: status %q", got)
				}
			}
			return true, p.MarkQueued()
		})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRunLimit(t *testing.T) {
	v, papers := seededVault(t, 4)
	r := NewRunner(v)

	processed := 0
	snap, err := r.Run(context.Background(), papers, 2,
		func(ctx context.Context, p *paper.Paper) (bool, error) {
			processed++
			return true, nil
		})
	if err != nil {
		t.Fatal(err)
	}
	if processed != 2 || snap.Total != 2 || snap.Completed != 2 {
		t.Errorf("processed=%d snapshot=%+v", processed, snap)
	}
}

func TestRunOpErrorAborts(t *testing.T) {
	v, papers := seededVault(t, 3)
	r := NewRunner(v)

	boom := errors.New("boom")
	snap, err := r.Run(context.Background(), papers, 0,
		func(ctx context.Context, p *paper.Paper) (bool, error) {
			if p.Citekey == papers[1].Citekey {
				return false, boom
			}
			return true, nil
		})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if snap.Completed != 1 {
		t.Errorf("completed = %d, want 1 (run stopped at the failing item)", snap.Completed)
	}
}

func TestRunContextCanceled(t *testing.T) {
	v, papers := seededVault(t, 3)
	r := NewRunner(v)

	ctx, cancel := context.WithCancel(context.Background())
	snap, err := r.Run(ctx, papers, 0,
		func(ctx context.Context, p *paper.Paper) (bool, error) {
			cancel() // cancel during the first item
			return true, nil
		})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
	if snap.Completed != 1 {
		t.Errorf("completed = %d", snap.Completed)
	}
}
