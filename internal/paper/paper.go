// Package paper defines the core domain types for papers in the vault.
package paper

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status is a paper's position in the vault lifecycle.
type Status string

const (
	StatusDiscovered Status = "discovered" // Metadata only, from a bib import
	StatusWanted     Status = "wanted"     // User wants this paper
	StatusQueued     Status = "queued"     // In the download queue
	StatusDownloaded Status = "downloaded" // PDF obtained
	StatusSummarized Status = "summarized" // Summary generated
	StatusFailed     Status = "failed"     // Needs manual intervention
)

// AllStatuses lists every status in lifecycle order.
func AllStatuses() []Status {
	return []Status{
		StatusDiscovered,
		StatusWanted,
		StatusQueued,
		StatusDownloaded,
		StatusSummarized,
		StatusFailed,
	}
}

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusDiscovered, StatusWanted, StatusQueued,
		StatusDownloaded, StatusSummarized, StatusFailed:
		return true
	}
	return false
}

// ErrInvalidTransition indicates a status change the lifecycle does not allow.
var ErrInvalidTransition = errors.New("invalid status transition")

// Citation is a reference extracted from a paper's text. It is a
// best-effort stub from a pattern heuristic, not an authoritative
// bibliography entry.
type Citation struct {
	Citekey string `json:"citekey"`
	Title   string `json:"title,omitempty"`
	Authors string `json:"authors,omitempty"`
	Year    int    `json:"year,omitempty"`
	DOI     string `json:"doi,omitempty"`
	Status  string `json:"status"` // in_vault, discovered, unknown
}

// RelatedPaper is a paper suggested by the summary generator,
// optionally resolved to an existing vault record.
type RelatedPaper struct {
	Title        string   `json:"title"`
	Authors      []string `json:"authors,omitempty"`
	Year         int      `json:"year,omitempty"`
	WhyRelated   string   `json:"why_related,omitempty"`
	VaultCitekey string   `json:"vault_citekey,omitempty"`
}

// Paper is a single record in the vault, identified by its citekey.
type Paper struct {
	Citekey  string   `json:"citekey"`
	Title    string   `json:"title"`
	Authors  []string `json:"authors,omitempty"`
	Year     int      `json:"year,omitempty"`
	Journal  string   `json:"journal,omitempty"`
	Volume   string   `json:"volume,omitempty"`
	Number   string   `json:"number,omitempty"`
	Pages    string   `json:"pages,omitempty"`
	DOI      string   `json:"doi,omitempty"`
	URL      string   `json:"url,omitempty"`
	Abstract string   `json:"abstract,omitempty"`

	Status Status `json:"status"`

	// Paths relative to the vault root; empty until the corresponding
	// pipeline stage succeeds.
	PDFPath     string `json:"pdf_path,omitempty"`
	SummaryPath string `json:"summary_path,omitempty"`
	NotesPath   string `json:"notes_path,omitempty"`

	AddedAt      time.Time  `json:"added_at"`
	DownloadedAt *time.Time `json:"downloaded_at,omitempty"`
	SummarizedAt *time.Time `json:"summarized_at,omitempty"`

	Citations     []Citation     `json:"citations,omitempty"`
	CitedBy       []string       `json:"cited_by,omitempty"`
	RelatedPapers []RelatedPaper `json:"related_papers,omitempty"`

	SearchAttempts      int      `json:"search_attempts"`
	LastSearchError     string   `json:"last_search_error,omitempty"`
	ManualDownloadLinks []string `json:"manual_download_links,omitempty"`
}

// New creates a discovered paper with a derived citekey.
func New(title string, authors []string, year int) *Paper {
	return &Paper{
		Citekey: GenerateCitekey(authors, year, title),
		Title:   title,
		Authors: authors,
		Year:    year,
		Status:  StatusDiscovered,
		AddedAt: time.Now().UTC(),
	}
}

// MarkWanted transitions a discovered paper to wanted. Marking an
// already-wanted paper is a no-op.
func (p *Paper) MarkWanted() error {
	switch p.Status {
	case StatusDiscovered, StatusWanted:
		p.Status = StatusWanted
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, p.Status, StatusWanted)
}

// MarkQueued places a wanted paper in the download queue.
func (p *Paper) MarkQueued() error {
	switch p.Status {
	case StatusWanted, StatusQueued:
		p.Status = StatusQueued
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, p.Status, StatusQueued)
}

// MarkDownloaded records a successful acquisition. pdfPath is the
// vault-relative location of the stored PDF. The downloaded timestamp
// is set once, on the first successful transition.
func (p *Paper) MarkDownloaded(pdfPath string) error {
	switch p.Status {
	case StatusDiscovered, StatusWanted, StatusQueued, StatusDownloaded:
		p.Status = StatusDownloaded
		p.PDFPath = pdfPath
		if p.DownloadedAt == nil {
			now := time.Now().UTC()
			p.DownloadedAt = &now
		}
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, p.Status, StatusDownloaded)
}

// MarkSummarized records a successful summarization. The paper must
// already hold a PDF.
func (p *Paper) MarkSummarized(summaryPath string, citations []Citation) error {
	if p.Status != StatusDownloaded && p.Status != StatusSummarized {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, p.Status, StatusSummarized)
	}
	if p.PDFPath == "" {
		return fmt.Errorf("%w: cannot summarize without a PDF", ErrInvalidTransition)
	}
	p.Status = StatusSummarized
	p.SummaryPath = summaryPath
	p.Citations = citations
	if p.SummarizedAt == nil {
		now := time.Now().UTC()
		p.SummarizedAt = &now
	}
	return nil
}

// RecordSearchFailure notes a failed acquisition attempt. The paper
// returns to wanted: failure is recoverable through the
// manual-download queue, not a terminal state. The manual links
// replace any previous set rather than accumulating.
func (p *Paper) RecordSearchFailure(errMsg string, manualLinks []string) {
	p.SearchAttempts++
	p.LastSearchError = errMsg
	p.ManualDownloadLinks = manualLinks
	if p.Status == StatusQueued {
		p.Status = StatusWanted
	}
}

// MarkFailed moves a paper into the failed state. This is a manual
// triage operation; the acquisition pipeline never calls it.
func (p *Paper) MarkFailed(reason string) {
	p.Status = StatusFailed
	if reason != "" {
		p.LastSearchError = reason
	}
}

// NeedsManualDownload reports whether automated acquisition has failed
// for this paper at least once and it is still waiting for a PDF.
func (p *Paper) NeedsManualDownload() bool {
	return p.Status == StatusWanted && p.SearchAttempts > 0
}

// AuthorsString returns the authors as a comma-separated list.
func (p *Paper) AuthorsString() string {
	return strings.Join(p.Authors, ", ")
}

// FirstAuthorLastName returns the surname of the first author, or ""
// if the paper has none.
func (p *Paper) FirstAuthorLastName() string {
	if len(p.Authors) == 0 {
		return ""
	}
	return lastName(p.Authors[0])
}

// lastName extracts a surname from "First Last" or "Last, First".
func lastName(name string) string {
	if i := strings.Index(name, ","); i >= 0 {
		return strings.TrimSpace(name[:i])
	}
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}
