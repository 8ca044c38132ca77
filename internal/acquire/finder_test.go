package acquire

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gsekeres/marginalia/internal/paper"
)

// fakeProvider is a scripted provider for waterfall tests.
type fakeProvider struct {
	name   string
	url    string
	err    error
	called int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Resolve(ctx context.Context, p *paper.Paper) (string, error) {
	f.called++
	return f.url, f.err
}

func testPaper() *paper.Paper {
	p := paper.New("Algorithmic Mechanism Design", []string{"John Smith"}, 2023)
	p.DOI = "10.1234/amd"
	p.MarkWanted()
	return p
}

func newTestFinder(t *testing.T, providers ...Provider) *Finder {
	t.Helper()
	return NewFinder(
		WithProviders(providers...),
		WithLimiter(NewLimiter(time.Millisecond)),
		WithHTTPClient(&http.Client{Timeout: 5 * time.Second}),
		WithLogWriter(io.Discard),
	)
}

func pdfServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4 fake body"))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFindFirstMatchWins(t *testing.T) {
	srv := pdfServer(t)

	first := &fakeProvider{name: "first", url: srv.URL}
	second := &fakeProvider{name: "second", url: srv.URL}
	f := newTestFinder(t, first, second)

	dest := filepath.Join(t.TempDir(), "paper.pdf")
	res := f.Find(context.Background(), testPaper(), dest)

	if !res.Success {
		t.Fatalf("Find failed: %s", res.Err)
	}
	if res.Source != "first" {
		t.Errorf("source = %q", res.Source)
	}
	if second.called != 0 {
		t.Error("later provider invoked after a success")
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("reading downloaded pdf: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF") {
		t.Error("downloaded file is not the pdf body")
	}
}

func TestFindSkipsFailingProviders(t *testing.T) {
	srv := pdfServer(t)

	failing := &fakeProvider{name: "failing", err: errors.New("api down")}
	empty := &fakeProvider{name: "empty"}
	working := &fakeProvider{name: "working", url: srv.URL}
	f := newTestFinder(t, failing, empty, working)

	res := f.Find(context.Background(), testPaper(), filepath.Join(t.TempDir(), "paper.pdf"))
	if !res.Success || res.Source != "working" {
		t.Errorf("result = %+v", res)
	}
	if failing.called != 1 || empty.called != 1 {
		t.Error("earlier providers skipped entirely")
	}
}

func TestFindExhaustionReturnsManualLinks(t *testing.T) {
	f := newTestFinder(t, &fakeProvider{name: "empty"})

	p := testPaper()
	res := f.Find(context.Background(), p, filepath.Join(t.TempDir(), "paper.pdf"))

	if res.Success {
		t.Fatal("expected failure")
	}
	if res.Err != ErrNoOpenAccess.Error() {
		t.Errorf("err = %q", res.Err)
	}
	if len(res.ManualLinks) == 0 {
		t.Fatal("no manual links")
	}
	joined := strings.Join(res.ManualLinks, "\n")
	if !strings.Contains(joined, "scholar.google.com") {
		t.Error("missing scholar link")
	}
	if !strings.Contains(joined, "doi.org/10.1234/amd") {
		t.Error("missing doi.org link for paper with DOI")
	}
}

func TestFindRejectsNonPDF(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, "<html><body>paywall</body></html>")
	}))
	defer srv.Close()

	f := newTestFinder(t, &fakeProvider{name: "htmlonly", url: srv.URL})

	dest := filepath.Join(t.TempDir(), "paper.pdf")
	res := f.Find(context.Background(), testPaper(), dest)
	if res.Success {
		t.Fatal("non-PDF content accepted")
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("non-PDF content written to destination")
	}
}

func TestFindAcceptsPDFByMagicBytes(t *testing.T) {
	// Server lies about the content type; the %PDF signature should
	// still get it accepted.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write([]byte("%PDF-1.7 body"))
	}))
	defer srv.Close()

	f := newTestFinder(t, &fakeProvider{name: "p", url: srv.URL})
	res := f.Find(context.Background(), testPaper(), filepath.Join(t.TempDir(), "paper.pdf"))
	if !res.Success {
		t.Errorf("magic-byte pdf rejected: %s", res.Err)
	}
}

func TestFindResolvesLandingPage(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/landing", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, `<html><head>
			<meta name="citation_pdf_url" content="`+srv.URL+`/real.pdf">
		</head><body>abstract page</body></html>`)
	})
	mux.HandleFunc("/real.pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4 real"))
	})

	f := newTestFinder(t, &fakeProvider{name: "landing", url: srv.URL + "/landing"})

	dest := filepath.Join(t.TempDir(), "paper.pdf")
	res := f.Find(context.Background(), testPaper(), dest)
	if !res.Success {
		t.Fatalf("landing page not resolved: %s", res.Err)
	}
	data, _ := os.ReadFile(dest)
	if string(data) != "%PDF-1.4 real" {
		t.Errorf("wrong body: %q", data)
	}
}

func TestLimiterSpacesRequests(t *testing.T) {
	const interval = 20 * time.Millisecond
	const n = 4

	l := NewLimiter(interval)
	start := time.Now()
	for i := 0; i < n; i++ {
		if err := l.Wait(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	elapsed := time.Since(start)

	// First permit is immediate; the remaining n-1 each wait the
	// interval.
	if min := (n - 1) * interval; elapsed < min {
		t.Errorf("4 permits took %v, want at least %v", elapsed, min)
	}
}

func TestLimiterWaitCanceled(t *testing.T) {
	l := NewLimiter(time.Hour)
	l.Wait(context.Background()) // consume the burst

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx); err == nil {
		t.Error("Wait returned nil with an exhausted limiter and canceled context")
	}
}

func TestManualLinks(t *testing.T) {
	p := testPaper()
	links := ManualLinks(p)
	if len(links) != 5 {
		t.Fatalf("got %d links: %v", len(links), links)
	}
	if !strings.Contains(links[0], "Algorithmic+Mechanism+Design") {
		t.Errorf("title query: %s", links[0])
	}
	if !strings.Contains(links[1], "Smith") {
		t.Errorf("author query: %s", links[1])
	}
	if links[4] != "https://doi.org/10.1234/amd" {
		t.Errorf("doi link: %s", links[4])
	}

	p.DOI = ""
	if got := len(ManualLinks(p)); got != 4 {
		t.Errorf("without DOI: %d links", got)
	}
}
