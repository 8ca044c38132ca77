// Package searchdb maintains a derived SQLite full-text index over
// the vault. The JSON snapshot remains the source of truth; this
// database is a cache that can be rebuilt from it at any time.
package searchdb

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/gsekeres/marginalia/internal/vault"
)

// DBFile is the cache filename inside the vault root.
const DBFile = ".marginalia_search.db"

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// Open opens or creates the search cache at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS papers (
			citekey TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			year INTEGER,
			status TEXT NOT NULL,
			doi TEXT
		);

		CREATE VIRTUAL TABLE IF NOT EXISTS papers_fts USING fts5(
			citekey,
			title,
			authors_text,
			abstract,
			year
		);
	`
	_, err := db.Exec(schema)
	return err
}

// Rebuild clears the cache and repopulates it from the vault index.
func (d *DB) Rebuild(idx *vault.Index) (int, error) {
	if _, err := d.db.Exec("DELETE FROM papers"); err != nil {
		return 0, fmt.Errorf("clearing papers table: %w", err)
	}
	if _, err := d.db.Exec("DELETE FROM papers_fts"); err != nil {
		return 0, fmt.Errorf("clearing papers_fts table: %w", err)
	}

	paperStmt, err := d.db.Prepare(`
		INSERT INTO papers (citekey, title, year, status, doi)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing papers insert: %w", err)
	}
	defer paperStmt.Close()

	ftsStmt, err := d.db.Prepare(`
		INSERT INTO papers_fts (citekey, title, authors_text, abstract, year)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	count := 0
	for _, p := range idx.All() {
		if _, err := paperStmt.Exec(p.Citekey, p.Title, p.Year, string(p.Status), p.DOI); err != nil {
			return 0, fmt.Errorf("inserting %s: %w", p.Citekey, err)
		}
		if _, err := ftsStmt.Exec(p.Citekey, p.Title, p.AuthorsString(), p.Abstract, strconv.Itoa(p.Year)); err != nil {
			return 0, fmt.Errorf("inserting fts for %s: %w", p.Citekey, err)
		}
		count++
	}
	return count, nil
}

// Search runs a full-text query and returns matching citekeys best
// match first.
func (d *DB) Search(query string, limit int) ([]string, error) {
	rows, err := d.db.Query(`
		SELECT citekey FROM papers_fts
		WHERE papers_fts MATCH ?
		ORDER BY rank
		LIMIT ?`, prepareFTSQuery(query), limit)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	var citekeys []string
	for rows.Next() {
		var ck string
		if err := rows.Scan(&ck); err != nil {
			return nil, err
		}
		citekeys = append(citekeys, ck)
	}
	return citekeys, rows.Err()
}

// Count returns the number of indexed papers.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM papers").Scan(&count)
	return count, err
}

// prepareFTSQuery escapes special characters for FTS5 queries.
func prepareFTSQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}
	if strings.ContainsAny(query, "\"*+-:(){}[]^~") {
		query = strings.ReplaceAll(query, "\"", "\"\"")
		return "\"" + query + "\""
	}
	return query
}
