package acquire

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestUnpaywallResolve(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		io.WriteString(w, `{"best_oa_location": {"url_for_pdf": "https://repo.example/p.pdf"}}`)
	}))
	defer srv.Close()

	u := NewUnpaywall(srv.Client(), "me@example.edu")
	u.BaseURL = srv.URL

	got, err := u.Resolve(context.Background(), testPaper())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "https://repo.example/p.pdf" {
		t.Errorf("url = %q", got)
	}
	if gotPath != "/10.1234/amd" {
		t.Errorf("path = %q", gotPath)
	}
	if !strings.Contains(gotQuery, "email=me%40example.edu") {
		t.Errorf("query = %q", gotQuery)
	}
}

func TestUnpaywallFallsBackToLocationURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"best_oa_location": {"url": "https://repo.example/landing"}}`)
	}))
	defer srv.Close()

	u := NewUnpaywall(srv.Client(), "")
	u.BaseURL = srv.URL

	got, err := u.Resolve(context.Background(), testPaper())
	if err != nil {
		t.Fatal(err)
	}
	if got != "https://repo.example/landing" {
		t.Errorf("url = %q", got)
	}
}

func TestUnpaywallNoDOI(t *testing.T) {
	u := NewUnpaywall(http.DefaultClient, "")
	p := testPaper()
	p.DOI = ""

	got, err := u.Resolve(context.Background(), p)
	if err != nil || got != "" {
		t.Errorf("Resolve without DOI = (%q, %v), want no candidate", got, err)
	}
}

func TestUnpaywallNoLocation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"best_oa_location": null}`)
	}))
	defer srv.Close()

	u := NewUnpaywall(srv.Client(), "")
	u.BaseURL = srv.URL

	got, err := u.Resolve(context.Background(), testPaper())
	if err != nil || got != "" {
		t.Errorf("Resolve = (%q, %v), want no candidate", got, err)
	}
}

func TestSemanticScholarByDOI(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-api-key")
		io.WriteString(w, `{"openAccessPdf": {"url": "https://s2.example/p.pdf"}}`)
	}))
	defer srv.Close()

	s := NewSemanticScholar(srv.Client(), "sekrit")
	s.BaseURL = srv.URL

	got, err := s.Resolve(context.Background(), testPaper())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "https://s2.example/p.pdf" {
		t.Errorf("url = %q", got)
	}
	if gotPath != "/paper/DOI:10.1234/amd" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "sekrit" {
		t.Errorf("api key header = %q", gotKey)
	}
}

func TestSemanticScholarByTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/paper/search") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		io.WriteString(w, `{"data": [{"openAccessPdf": {"url": "https://s2.example/t.pdf"}}]}`)
	}))
	defer srv.Close()

	s := NewSemanticScholar(srv.Client(), "")
	s.BaseURL = srv.URL

	p := testPaper()
	p.DOI = ""
	got, err := s.Resolve(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if got != "https://s2.example/t.pdf" {
		t.Errorf("url = %q", got)
	}
}

func TestSemanticScholarNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	s := NewSemanticScholar(srv.Client(), "")
	s.BaseURL = srv.URL

	got, err := s.Resolve(context.Background(), testPaper())
	if err != nil || got != "" {
		t.Errorf("Resolve on 404 = (%q, %v), want no candidate", got, err)
	}
}

func TestNBERResolve(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/api/v1/search", func(w http.ResponseWriter, r *http.Request) {
		if q := r.URL.Query().Get("q"); !strings.Contains(q, "Smith") {
			t.Errorf("query = %q, missing surname", q)
		}
		io.WriteString(w, `{"results": [
			{"type": "news", "url": "/news/1"},
			{"type": "working_paper", "url": "/papers/w31234"}
		]}`)
	})
	mux.HandleFunc("/papers/w31234.pdf", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("verification used %s, want HEAD", r.Method)
		}
	})

	n := NewNBER(srv.Client())
	n.BaseURL = srv.URL

	got, err := n.Resolve(context.Background(), testPaper())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != srv.URL+"/papers/w31234.pdf" {
		t.Errorf("url = %q", got)
	}
}

func TestNBERSkipsDeadPDFLinks(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/api/v1/search", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"results": [{"type": "working_paper", "url": "/papers/gone"}]}`)
	})
	// /papers/gone.pdf 404s via the mux default.

	n := NewNBER(srv.Client())
	n.BaseURL = srv.URL

	got, err := n.Resolve(context.Background(), testPaper())
	if err != nil || got != "" {
		t.Errorf("Resolve = (%q, %v), want no candidate", got, err)
	}
}
