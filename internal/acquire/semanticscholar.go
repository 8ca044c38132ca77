package acquire

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gsekeres/marginalia/internal/paper"
)

// SemanticScholarBaseURL is the Semantic Scholar Graph API root.
const SemanticScholarBaseURL = "https://api.semanticscholar.org/graph/v1"

// SemanticScholar resolves open-access PDFs through the Semantic
// Scholar Graph API, by DOI when available and by title search
// otherwise.
type SemanticScholar struct {
	Client  *http.Client
	APIKey  string
	BaseURL string
}

// NewSemanticScholar creates the provider. The API key is optional;
// unauthenticated requests are rate-limited harder upstream.
func NewSemanticScholar(client *http.Client, apiKey string) *SemanticScholar {
	return &SemanticScholar{Client: client, APIKey: apiKey, BaseURL: SemanticScholarBaseURL}
}

func (s *SemanticScholar) Name() string { return "semantic_scholar" }

type s2Paper struct {
	OpenAccessPDF *struct {
		URL string `json:"url"`
	} `json:"openAccessPdf"`
}

func (s *SemanticScholar) Resolve(ctx context.Context, p *paper.Paper) (string, error) {
	if p.DOI != "" {
		return s.byDOI(ctx, p.DOI)
	}
	return s.byTitle(ctx, p.Title)
}

func (s *SemanticScholar) byDOI(ctx context.Context, doi string) (string, error) {
	reqURL := fmt.Sprintf("%s/paper/DOI:%s?fields=openAccessPdf", s.BaseURL, doi)

	var body s2Paper
	if err := s.getJSON(ctx, reqURL, &body); err != nil {
		return "", err
	}
	if body.OpenAccessPDF == nil {
		return "", nil
	}
	return body.OpenAccessPDF.URL, nil
}

func (s *SemanticScholar) byTitle(ctx context.Context, title string) (string, error) {
	if title == "" {
		return "", nil
	}
	reqURL := fmt.Sprintf("%s/paper/search?query=%s&fields=openAccessPdf&limit=1",
		s.BaseURL, url.QueryEscape(title))

	var body struct {
		Data []s2Paper `json:"data"`
	}
	if err := s.getJSON(ctx, reqURL, &body); err != nil {
		return "", err
	}
	if len(body.Data) == 0 || body.Data[0].OpenAccessPDF == nil {
		return "", nil
	}
	return body.Data[0].OpenAccessPDF.URL, nil
}

func (s *SemanticScholar) getJSON(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if s.APIKey != "" {
		req.Header.Set("x-api-key", s.APIKey)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("semantic scholar request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("semantic scholar: HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("semantic scholar: parsing response: %w", err)
	}
	return nil
}
