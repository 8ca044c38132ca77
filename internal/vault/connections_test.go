package vault

import (
	"errors"
	"testing"

	"github.com/gsekeres/marginalia/internal/paper"
)

func vaultWithTwoPapers(t *testing.T) (*Vault, *paper.Paper, *paper.Paper) {
	t.Helper()
	v := newTestVault(t)
	a := paper.New("Algorithmic Mechanism Design", []string{"John Smith"}, 2023)
	b := paper.New("Matching Markets", []string{"Alvin Roth"}, 1984)
	v.Index.Put(a)
	v.Index.Put(b)
	return v, a, b
}

func TestAddConnection(t *testing.T) {
	v, a, b := vaultWithTwoPapers(t)

	conn, err := v.AddConnection(a.Citekey, b.Citekey, "builds on the matching model")
	if err != nil {
		t.Fatalf("AddConnection: %v", err)
	}
	if conn.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	conns, err := v.Connections()
	if err != nil {
		t.Fatalf("Connections: %v", err)
	}
	if len(conns) != 1 {
		t.Fatalf("got %d connections", len(conns))
	}
	if conns[0].Reason != "builds on the matching model" {
		t.Errorf("reason = %q", conns[0].Reason)
	}
}

func TestAddConnectionRejectsDuplicateEitherDirection(t *testing.T) {
	v, a, b := vaultWithTwoPapers(t)

	if _, err := v.AddConnection(a.Citekey, b.Citekey, "first"); err != nil {
		t.Fatal(err)
	}
	if _, err := v.AddConnection(a.Citekey, b.Citekey, "again"); !errors.Is(err, ErrDuplicateConnection) {
		t.Errorf("same direction: got %v", err)
	}
	if _, err := v.AddConnection(b.Citekey, a.Citekey, "reversed"); !errors.Is(err, ErrDuplicateConnection) {
		t.Errorf("reversed direction: got %v", err)
	}
}

func TestAddConnectionValidation(t *testing.T) {
	v, a, b := vaultWithTwoPapers(t)

	if _, err := v.AddConnection(a.Citekey, a.Citekey, "self"); !errors.Is(err, ErrSelfConnection) {
		t.Errorf("self connection: got %v", err)
	}
	if _, err := v.AddConnection(a.Citekey, b.Citekey, ""); !errors.Is(err, ErrEmptyReason) {
		t.Errorf("empty reason: got %v", err)
	}
	if _, err := v.AddConnection(a.Citekey, "nope2000zilch", "r"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown target: got %v", err)
	}
}

func TestConnectionsFor(t *testing.T) {
	v, a, b := vaultWithTwoPapers(t)
	c := paper.New("Auction Theory", []string{"Paul Milgrom"}, 2004)
	v.Index.Put(c)

	v.AddConnection(a.Citekey, b.Citekey, "r1")
	v.AddConnection(b.Citekey, c.Citekey, "r2")

	conns, err := v.ConnectionsFor(a.Citekey)
	if err != nil {
		t.Fatal(err)
	}
	if len(conns) != 1 {
		t.Errorf("a: %d connections", len(conns))
	}
	conns, _ = v.ConnectionsFor(b.Citekey)
	if len(conns) != 2 {
		t.Errorf("b: %d connections", len(conns))
	}
}

func TestConnectionsEmptyVault(t *testing.T) {
	v := newTestVault(t)
	conns, err := v.Connections()
	if err != nil {
		t.Fatalf("Connections on fresh vault: %v", err)
	}
	if len(conns) != 0 {
		t.Errorf("got %d connections", len(conns))
	}
}
