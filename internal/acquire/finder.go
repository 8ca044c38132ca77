package acquire

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gsekeres/marginalia/internal/paper"
)

// DefaultHTTPTimeout bounds each provider request and download.
const DefaultHTTPTimeout = 60 * time.Second

// pdfMagic is the file signature every valid PDF starts with.
var pdfMagic = []byte("%PDF")

// Result reports the outcome of one acquisition attempt.
type Result struct {
	Success     bool     `json:"success"`
	Source      string   `json:"source,omitempty"`
	PDFPath     string   `json:"pdf_path,omitempty"`
	Err         string   `json:"error,omitempty"`
	ManualLinks []string `json:"manual_links,omitempty"`
}

// Finder runs the provider waterfall for a single paper: each
// provider is tried in order, every outbound request gated through
// one shared limiter, and the first verified PDF wins.
type Finder struct {
	providers []Provider
	limiter   *Limiter
	client    *http.Client
	logw      io.Writer
}

// Option configures a Finder.
type Option func(*Finder)

// WithProviders sets the ordered provider list.
func WithProviders(ps ...Provider) Option {
	return func(f *Finder) { f.providers = ps }
}

// WithLimiter sets the shared rate limiter gating all requests.
func WithLimiter(l *Limiter) Option {
	return func(f *Finder) { f.limiter = l }
}

// WithHTTPClient overrides the download client, for testing.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Finder) { f.client = c }
}

// WithLogWriter directs progress lines somewhere other than stderr.
func WithLogWriter(w io.Writer) Option {
	return func(f *Finder) { f.logw = w }
}

func NewFinder(opts ...Option) *Finder {
	f := &Finder{
		limiter: NewLimiter(time.Second),
		client:  &http.Client{Timeout: DefaultHTTPTimeout},
		logw:    os.Stderr,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Find tries each provider in order and downloads the first verified
// PDF to destPath. Provider errors are logged and skipped, never
// fatal: a failing provider just hands off to the next one. When
// every provider is exhausted the result carries manual search links.
func (f *Finder) Find(ctx context.Context, p *paper.Paper, destPath string) Result {
	for _, prov := range f.providers {
		if err := f.limiter.Wait(ctx); err != nil {
			return Result{Err: err.Error(), ManualLinks: ManualLinks(p)}
		}

		candidate, err := prov.Resolve(ctx, p)
		if err != nil {
			fmt.Fprintf(f.logw, "  %s: %v\n", prov.Name(), err)
			continue
		}
		if candidate == "" {
			fmt.Fprintf(f.logw, "  %s: no match\n", prov.Name())
			continue
		}

		if err := f.download(ctx, candidate, destPath); err != nil {
			fmt.Fprintf(f.logw, "  %s: %v\n", prov.Name(), err)
			continue
		}
		return Result{Success: true, Source: prov.Name(), PDFPath: destPath}
	}
	return Result{Err: ErrNoOpenAccess.Error(), ManualLinks: ManualLinks(p)}
}

// download fetches the candidate URL and writes it to destPath only
// after verifying it is a real PDF. When the URL turns out to be an
// HTML landing page, one retry is made through its citation_pdf_url
// meta tag, re-gated by the limiter.
func (f *Finder) download(ctx context.Context, candidateURL, destPath string) error {
	body, contentType, err := f.fetch(ctx, candidateURL)
	if err != nil {
		return err
	}

	if !isPDF(body, contentType) {
		pdfURL := findPDFMetaURL(bytes.NewReader(body), candidateURL)
		if pdfURL == "" || pdfURL == candidateURL {
			return ErrNotPDF
		}
		if err := f.limiter.Wait(ctx); err != nil {
			return err
		}
		body, contentType, err = f.fetch(ctx, pdfURL)
		if err != nil {
			return err
		}
		if !isPDF(body, contentType) {
			return ErrNotPDF
		}
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("creating paper directory: %w", err)
	}
	tmp := destPath + ".tmp"
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	if err := os.Rename(tmp, destPath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

func (f *Finder) fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "marginalia/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("downloading: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("download: HTTP %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading body: %w", err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

// isPDF accepts a payload when either the server declares a PDF
// content type or the body carries the %PDF signature. Servers lie
// about content types in both directions, so either signal suffices.
func isPDF(body []byte, contentType string) bool {
	if strings.Contains(strings.ToLower(contentType), "pdf") {
		return true
	}
	return bytes.HasPrefix(body, pdfMagic)
}
