package vault

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/gsekeres/marginalia/internal/paper"
)

// Notes returns the notes document for a paper, or a fresh empty one
// if none has been saved yet.
func (v *Vault) Notes(citekey string) (*paper.Notes, error) {
	if _, err := v.Get(citekey); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(v.NotesPath(citekey))
	if err != nil {
		if os.IsNotExist(err) {
			return paper.NewNotes(citekey), nil
		}
		return nil, fmt.Errorf("reading notes: %w", err)
	}

	var n paper.Notes
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("parsing notes: %w", err)
	}
	return &n, nil
}

// SaveNotes persists a paper's notes document and records its path on
// the paper record.
func (v *Vault) SaveNotes(n *paper.Notes) error {
	p, err := v.Get(n.Citekey)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(v.PaperDir(n.Citekey), 0755); err != nil {
		return fmt.Errorf("creating paper directory: %w", err)
	}

	n.LastModified = time.Now().UTC()
	data, err := json.MarshalIndent(n, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding notes: %w", err)
	}

	path := v.NotesPath(n.Citekey)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing notes: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing notes: %w", err)
	}

	if p.NotesPath == "" {
		p.NotesPath = RelNotesPath(n.Citekey)
		return v.Save()
	}
	return nil
}
