package summary

import (
	"strings"
	"testing"
)

func TestCleanText(t *testing.T) {
	in := "Introduction\n\n\n\n\nWe  study   markets.\n7\nSee https://example.com/paper for details.\nElectronic copy available at SSRN\nConclusion"
	out := CleanText(in)

	if strings.Contains(out, "\n\n\n") {
		t.Error("runs of blank lines survived")
	}
	if strings.Contains(out, "  ") {
		t.Error("runs of spaces survived")
	}
	if strings.Contains(out, "\n7\n") {
		t.Error("bare page number survived")
	}
	if strings.Contains(out, "https://") {
		t.Error("url survived")
	}
	if strings.Contains(out, "Electronic copy") {
		t.Error("boilerplate line survived")
	}
	if !strings.Contains(out, "We study markets.") {
		t.Errorf("real content damaged: %q", out)
	}
}

func TestTruncate(t *testing.T) {
	short := "short text"
	if got := Truncate(short); got != short {
		t.Errorf("short text modified: %q", got)
	}

	long := strings.Repeat("a", MaxTextChars+500)
	got := Truncate(long)
	if !strings.HasSuffix(got, "[TRUNCATED]") {
		t.Error("missing truncation marker")
	}
	if len(got) != MaxTextChars+len("\n\n[TRUNCATED]") {
		t.Errorf("truncated length = %d", len(got))
	}

	exact := strings.Repeat("b", MaxTextChars)
	if got := Truncate(exact); got != exact {
		t.Error("text at the limit should not be truncated")
	}
}
