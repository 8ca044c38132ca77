package acquire

import (
	"context"
	"errors"
	"testing"
)

type stubCompleter struct {
	out string
	err error
}

func (s *stubCompleter) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	return s.out, s.err
}

func TestClaudeResolve(t *testing.T) {
	tests := []struct {
		name string
		out  string
		err  error
		want string
	}{
		{"direct url", "https://repo.example/p.pdf", nil, "https://repo.example/p.pdf"},
		{"url with whitespace", "  https://repo.example/p.pdf\n", nil, "https://repo.example/p.pdf"},
		{"none answer", "NONE", nil, ""},
		{"lowercase none", "none", nil, ""},
		{"chatty non-url answer", "I could not find a PDF for this paper.", nil, ""},
		{"empty answer", "", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Claude{client: &stubCompleter{out: tt.out, err: tt.err}}
			got, err := c.Resolve(context.Background(), testPaper())
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClaudeResolveError(t *testing.T) {
	c := &Claude{client: &stubCompleter{err: errors.New("api down")}}
	if _, err := c.Resolve(context.Background(), testPaper()); err == nil {
		t.Error("expected error")
	}
}
