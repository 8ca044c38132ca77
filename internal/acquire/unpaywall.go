package acquire

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gsekeres/marginalia/internal/paper"
)

// UnpaywallBaseURL is the Unpaywall REST API root.
const UnpaywallBaseURL = "https://api.unpaywall.org/v2"

// Unpaywall resolves open-access locations by DOI through the
// Unpaywall API. Papers without a DOI yield no candidate.
type Unpaywall struct {
	Client  *http.Client
	Email   string
	BaseURL string
}

// NewUnpaywall creates the provider. Unpaywall requires a contact
// email on every request; a placeholder is used when none is
// configured.
func NewUnpaywall(client *http.Client, email string) *Unpaywall {
	return &Unpaywall{Client: client, Email: email, BaseURL: UnpaywallBaseURL}
}

func (u *Unpaywall) Name() string { return "unpaywall" }

func (u *Unpaywall) Resolve(ctx context.Context, p *paper.Paper) (string, error) {
	if p.DOI == "" {
		return "", nil
	}

	email := u.Email
	if email == "" {
		email = "test@example.com"
	}
	reqURL := fmt.Sprintf("%s/%s?email=%s", u.BaseURL, p.DOI, url.QueryEscape(email))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := u.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("unpaywall request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unpaywall: HTTP %d", resp.StatusCode)
	}

	var body struct {
		BestOALocation *struct {
			URLForPDF string `json:"url_for_pdf"`
			URL       string `json:"url"`
		} `json:"best_oa_location"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("unpaywall: parsing response: %w", err)
	}

	if body.BestOALocation == nil {
		return "", nil
	}
	if body.BestOALocation.URLForPDF != "" {
		return body.BestOALocation.URLForPDF, nil
	}
	// Sometimes only a landing-page URL is available; the download
	// step verifies whatever comes back.
	return body.BestOALocation.URL, nil
}
