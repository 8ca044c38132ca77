package summary

import (
	"errors"
	"testing"
)

type stubExtractor struct {
	name string
	out  string
	err  error
}

func (s stubExtractor) Name() string { return s.name }

func (s stubExtractor) Extract(path string) (string, error) { return s.out, s.err }

func TestExtractTextFallback(t *testing.T) {
	failing := stubExtractor{name: "first", err: errors.New("garbled")}
	empty := stubExtractor{name: "second"}
	working := stubExtractor{name: "third", out: "extracted body"}

	got, err := ExtractText("ignored.pdf", failing, empty, working)
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if got != "extracted body" {
		t.Errorf("got %q", got)
	}
}

func TestExtractTextAllEmpty(t *testing.T) {
	_, err := ExtractText("ignored.pdf",
		stubExtractor{name: "a"},
		stubExtractor{name: "b", out: "   \n  "})
	if !errors.Is(err, ErrNoText) {
		t.Errorf("got %v, want ErrNoText", err)
	}
}

func TestExtractTextReportsLastError(t *testing.T) {
	boom := errors.New("broken xref table")
	_, err := ExtractText("ignored.pdf",
		stubExtractor{name: "a"},
		stubExtractor{name: "b", err: boom})
	if !errors.Is(err, boom) {
		t.Errorf("got %v, want wrapped extractor error", err)
	}
}
