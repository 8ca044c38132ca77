package vault

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gsekeres/marginalia/internal/paper"
)

// Vault file layout constants.
const (
	IndexFile       = ".marginalia_index.json"
	ConnectionsFile = "connections.jsonl"
	PapersDir       = "papers"
	PDFFile         = "paper.pdf"
	SummaryFile     = "summary.md"
	NotesFile       = "notes.json"
	IndexPageFile   = "index.md"
)

// Errors surfaced by vault operations.
var (
	// ErrNotFound indicates an unknown citekey.
	ErrNotFound = errors.New("paper not found in vault")
)

// Vault is the on-disk paper collection rooted at a single directory.
type Vault struct {
	Root  string
	Index *Index
}

// Open loads the vault at root, creating the directory structure and
// an empty index if none exists.
func Open(root string) (*Vault, error) {
	v := &Vault{Root: root, Index: NewIndex()}

	for _, dir := range []string{root, filepath.Join(root, PapersDir)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating vault directory: %w", err)
		}
	}

	data, err := os.ReadFile(v.IndexPath())
	if err != nil {
		if os.IsNotExist(err) {
			return v, nil
		}
		return nil, fmt.Errorf("reading vault index: %w", err)
	}

	if err := json.Unmarshal(data, v.Index); err != nil {
		return nil, fmt.Errorf("parsing vault index: %w", err)
	}
	if v.Index.Papers == nil {
		v.Index.Papers = make(map[string]*paper.Paper)
	}
	return v, nil
}

// Save writes the full index snapshot. The write is whole-file
// replace: a temp file followed by rename, so a crash never leaves a
// half-written index behind.
func (v *Vault) Save() error {
	data, err := json.MarshalIndent(v.Index, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding vault index: %w", err)
	}

	tmp := v.IndexPath() + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing vault index: %w", err)
	}
	if err := os.Rename(tmp, v.IndexPath()); err != nil {
		return fmt.Errorf("replacing vault index: %w", err)
	}
	return nil
}

// IndexPath returns the absolute path of the snapshot file.
func (v *Vault) IndexPath() string {
	return filepath.Join(v.Root, IndexFile)
}

// PaperDir returns the absolute directory for a paper's files.
func (v *Vault) PaperDir(citekey string) string {
	return filepath.Join(v.Root, PapersDir, citekey)
}

// PDFPath returns the canonical absolute PDF location for a paper.
func (v *Vault) PDFPath(citekey string) string {
	return filepath.Join(v.PaperDir(citekey), PDFFile)
}

// SummaryPath returns the canonical absolute summary location.
func (v *Vault) SummaryPath(citekey string) string {
	return filepath.Join(v.PaperDir(citekey), SummaryFile)
}

// NotesPath returns the canonical absolute notes location.
func (v *Vault) NotesPath(citekey string) string {
	return filepath.Join(v.PaperDir(citekey), NotesFile)
}

// RelPDFPath returns the vault-relative PDF path stored on records.
func RelPDFPath(citekey string) string {
	return filepath.Join(PapersDir, citekey, PDFFile)
}

// RelSummaryPath returns the vault-relative summary path.
func RelSummaryPath(citekey string) string {
	return filepath.Join(PapersDir, citekey, SummaryFile)
}

// RelNotesPath returns the vault-relative notes path.
func RelNotesPath(citekey string) string {
	return filepath.Join(PapersDir, citekey, NotesFile)
}

// Get returns the paper for citekey.
func (v *Vault) Get(citekey string) (*paper.Paper, error) {
	p := v.Index.Get(citekey)
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, citekey)
	}
	return p, nil
}

// ImportRecords merges bibliography records into the index. Import is
// idempotent by citekey: unknown keys are added as new records, known
// keys still in the discovered state get a metadata refresh that keeps
// their status and derived paths, and records that have advanced past
// discovered are left untouched.
func (v *Vault) ImportRecords(records []*paper.Paper) (added, refreshed int) {
	for _, rec := range records {
		existing := v.Index.Get(rec.Citekey)
		if existing == nil {
			v.Index.Put(rec)
			added++
			continue
		}
		if existing.Status != paper.StatusDiscovered {
			continue
		}
		rec.Status = existing.Status
		rec.PDFPath = existing.PDFPath
		rec.SummaryPath = existing.SummaryPath
		rec.NotesPath = existing.NotesPath
		rec.AddedAt = existing.AddedAt
		v.Index.Put(rec)
		refreshed++
	}
	return added, refreshed
}

// MarkWanted flips discovered papers to wanted and returns how many
// changed. Unknown citekeys and papers already past discovered are
// skipped.
func (v *Vault) MarkWanted(citekeys []string) int {
	count := 0
	for _, ck := range citekeys {
		p := v.Index.Get(ck)
		if p == nil || p.Status != paper.StatusDiscovered {
			continue
		}
		if err := p.MarkWanted(); err == nil {
			count++
		}
	}
	return count
}

// NeedsManualDownload returns the papers whose automated acquisition
// has failed at least once, ordered by citekey.
func (v *Vault) NeedsManualDownload() []*paper.Paper {
	var papers []*paper.Paper
	for _, p := range v.Index.All() {
		if p.NeedsManualDownload() {
			papers = append(papers, p)
		}
	}
	return papers
}

// Search matches papers by substring against title, citekey, and
// author names. Matching is case-insensitive.
func (v *Vault) Search(query string) []*paper.Paper {
	query = strings.ToLower(query)
	var results []*paper.Paper
	for _, p := range v.Index.All() {
		if strings.Contains(strings.ToLower(p.Title), query) ||
			strings.Contains(strings.ToLower(p.Citekey), query) {
			results = append(results, p)
			continue
		}
		for _, a := range p.Authors {
			if strings.Contains(strings.ToLower(a), query) {
				results = append(results, p)
				break
			}
		}
	}
	return results
}

// RegisterPDF records a manually obtained PDF for a paper, copying it
// into the paper's vault directory and transitioning the record to
// downloaded. The index is persisted before returning.
func (v *Vault) RegisterPDF(citekey, srcPath string) error {
	p, err := v.Get(citekey)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(v.PaperDir(citekey), 0755); err != nil {
		return fmt.Errorf("creating paper directory: %w", err)
	}

	dest := v.PDFPath(citekey)
	if abs, err := filepath.Abs(srcPath); err == nil && abs == dest {
		// Already in place.
	} else if err := copyFile(srcPath, dest); err != nil {
		return fmt.Errorf("copying PDF: %w", err)
	}

	if err := p.MarkDownloaded(RelPDFPath(citekey)); err != nil {
		return err
	}
	return v.Save()
}

// copyFile copies src to a temp file next to dest, then renames it
// into place.
func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp := dest + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dest)
}
