// Package vault manages the persistent paper collection: the snapshot
// index, per-paper files, connections, and notes.
package vault

import (
	"sort"
	"time"

	"github.com/gsekeres/marginalia/internal/paper"
)

// Index is the in-memory map of citekey to paper record, the single
// source of truth for the vault. It is persisted as one JSON snapshot
// file; every mutation must be followed by a Save before it is durable.
type Index struct {
	Papers        map[string]*paper.Paper `json:"papers"`
	LastUpdated   time.Time               `json:"last_updated"`
	SourceBibPath string                  `json:"source_bib_path,omitempty"`
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{Papers: make(map[string]*paper.Paper)}
}

// Get returns the paper for citekey, or nil.
func (idx *Index) Get(citekey string) *paper.Paper {
	return idx.Papers[citekey]
}

// Put adds or replaces a paper, keyed by its own citekey.
func (idx *Index) Put(p *paper.Paper) {
	idx.Papers[p.Citekey] = p
	idx.LastUpdated = time.Now().UTC()
}

// Citekeys returns all citekeys in sorted order.
func (idx *Index) Citekeys() []string {
	keys := make([]string, 0, len(idx.Papers))
	for k := range idx.Papers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// All returns all papers ordered by citekey.
func (idx *Index) All() []*paper.Paper {
	papers := make([]*paper.Paper, 0, len(idx.Papers))
	for _, k := range idx.Citekeys() {
		papers = append(papers, idx.Papers[k])
	}
	return papers
}

// ByStatus returns all papers with the given status, ordered by citekey.
func (idx *Index) ByStatus(status paper.Status) []*paper.Paper {
	var papers []*paper.Paper
	for _, p := range idx.All() {
		if p.Status == status {
			papers = append(papers, p)
		}
	}
	return papers
}

// Stats summarizes the vault by lifecycle status.
type Stats struct {
	Total       int            `json:"total"`
	ByStatus    map[string]int `json:"by_status"`
	LastUpdated time.Time      `json:"last_updated"`
}

// Stats returns counts of papers per status.
func (idx *Index) Stats() Stats {
	s := Stats{
		Total:       len(idx.Papers),
		ByStatus:    make(map[string]int),
		LastUpdated: idx.LastUpdated,
	}
	for _, status := range paper.AllStatuses() {
		s.ByStatus[string(status)] = 0
	}
	for _, p := range idx.Papers {
		s.ByStatus[string(p.Status)]++
	}
	return s
}
