package acquire

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gsekeres/marginalia/internal/paper"
)

// NBERBaseURL is the NBER site root used for search and PDF links.
const NBERBaseURL = "https://www.nber.org"

// NBER resolves working-paper PDFs by searching the NBER site for the
// first author's surname plus the title. NBER hosts economics working
// papers that rarely surface through the open-access APIs.
type NBER struct {
	Client  *http.Client
	BaseURL string
}

func NewNBER(client *http.Client) *NBER {
	return &NBER{Client: client, BaseURL: NBERBaseURL}
}

func (n *NBER) Name() string { return "nber" }

func (n *NBER) Resolve(ctx context.Context, p *paper.Paper) (string, error) {
	if p.Title == "" {
		return "", nil
	}
	query := p.Title
	if len(query) > 50 {
		query = query[:50]
	}
	if surname := p.FirstAuthorLastName(); surname != "" {
		query = surname + " " + query
	}
	reqURL := fmt.Sprintf("%s/api/v1/search?q=%s&page=1&perPage=5",
		n.BaseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	resp, err := n.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("nber request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("nber: HTTP %d", resp.StatusCode)
	}

	var body struct {
		Results []struct {
			Type string `json:"type"`
			URL  string `json:"url"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("nber: parsing response: %w", err)
	}

	for _, r := range body.Results {
		if r.Type != "working_paper" || r.URL == "" {
			continue
		}
		pdfURL := n.BaseURL + r.URL + ".pdf"
		if n.headOK(ctx, pdfURL) {
			return pdfURL, nil
		}
	}
	return "", nil
}

// headOK checks that a constructed PDF URL actually exists before the
// waterfall spends a download on it.
func (n *NBER) headOK(ctx context.Context, pdfURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, pdfURL, nil)
	if err != nil {
		return false
	}
	resp, err := n.Client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
