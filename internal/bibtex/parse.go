// Package bibtex imports and exports vault papers as BibTeX entries.
package bibtex

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/gsekeres/marginalia/internal/paper"
)

var (
	yearRe = regexp.MustCompile(`\d{4}`)
	andRe  = regexp.MustCompile(`\s+and\s+`)
)

// Parse reads BibTeX entries and returns one discovered paper record
// per entry. Citekeys are derived from the bibliographic fields rather
// than taken from the entry key, so repeated imports of the same paper
// collide onto the same record regardless of how a file keyed it.
func Parse(r io.Reader) ([]*paper.Paper, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading bibliography: %w", err)
	}

	var papers []*paper.Paper
	src := []rune(string(data))
	i := 0
	for i < len(src) {
		if src[i] != '@' {
			i++
			continue
		}
		entry, next, err := parseEntry(src, i)
		if err != nil {
			return nil, err
		}
		i = next
		if entry == nil {
			continue
		}
		if p := entryToPaper(entry); p != nil {
			papers = append(papers, p)
		}
	}
	return papers, nil
}

// ParseFile parses a .bib file from disk.
func ParseFile(path string) ([]*paper.Paper, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening bibliography: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// entry holds one parsed BibTeX entry.
type entry struct {
	kind   string
	key    string
	fields map[string]string
}

// parseEntry parses a single @type{key, field = value, ...} block
// starting at the '@' at src[start]. It returns nil (no error) for
// non-record blocks like @comment and @preamble.
func parseEntry(src []rune, start int) (*entry, int, error) {
	i := start + 1

	kindStart := i
	for i < len(src) && src[i] != '{' && src[i] != '(' {
		i++
	}
	if i >= len(src) {
		return nil, i, fmt.Errorf("unterminated entry at offset %d", start)
	}
	kind := strings.ToLower(strings.TrimSpace(string(src[kindStart:i])))
	i++ // consume '{'

	if kind == "comment" || kind == "preamble" || kind == "string" {
		// Skip the balanced block.
		depth := 1
		for i < len(src) && depth > 0 {
			switch src[i] {
			case '{':
				depth++
			case '}':
				depth--
			}
			i++
		}
		return nil, i, nil
	}

	keyStart := i
	for i < len(src) && src[i] != ',' && src[i] != '}' {
		i++
	}
	if i >= len(src) {
		return nil, i, fmt.Errorf("unterminated entry %q", kind)
	}
	e := &entry{
		kind:   kind,
		key:    strings.TrimSpace(string(src[keyStart:i])),
		fields: make(map[string]string),
	}
	if src[i] == '}' {
		return e, i + 1, nil
	}
	i++ // consume ','

	for i < len(src) {
		i = skipSpace(src, i)
		if i >= len(src) {
			return nil, i, fmt.Errorf("unterminated entry %q", e.key)
		}
		if src[i] == '}' {
			return e, i + 1, nil
		}
		if src[i] == ',' {
			i++
			continue
		}

		nameStart := i
		for i < len(src) && src[i] != '=' && src[i] != '}' && src[i] != ',' {
			i++
		}
		if i >= len(src) || src[i] != '=' {
			// Trailing key with no value; skip it.
			continue
		}
		name := strings.ToLower(strings.TrimSpace(string(src[nameStart:i])))
		i++ // consume '='
		i = skipSpace(src, i)
		if i >= len(src) {
			return nil, i, fmt.Errorf("entry %q: field %q has no value", e.key, name)
		}

		var value string
		var err error
		switch src[i] {
		case '{':
			value, i, err = readBraced(src, i)
		case '"':
			value, i, err = readQuoted(src, i)
		default:
			valStart := i
			for i < len(src) && src[i] != ',' && src[i] != '}' {
				i++
			}
			value = strings.TrimSpace(string(src[valStart:i]))
		}
		if err != nil {
			return nil, i, fmt.Errorf("entry %q: %w", e.key, err)
		}
		if name != "" {
			e.fields[name] = value
		}
	}
	return nil, i, fmt.Errorf("unterminated entry %q", e.key)
}

// readBraced reads a {balanced} value starting at the opening brace,
// returning the contents with the outer braces removed.
func readBraced(src []rune, i int) (string, int, error) {
	start := i + 1
	depth := 1
	i++
	for i < len(src) {
		switch src[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return string(src[start:i]), i + 1, nil
			}
		}
		i++
	}
	return "", i, fmt.Errorf("unbalanced braces")
}

// readQuoted reads a "quoted" value starting at the opening quote.
func readQuoted(src []rune, i int) (string, int, error) {
	start := i + 1
	i++
	for i < len(src) {
		if src[i] == '"' {
			return string(src[start:i]), i + 1, nil
		}
		i++
	}
	return "", i, fmt.Errorf("unterminated quoted value")
}

func skipSpace(src []rune, i int) int {
	for i < len(src) && (src[i] == ' ' || src[i] == '\t' || src[i] == '\n' || src[i] == '\r') {
		i++
	}
	return i
}

// entryToPaper converts a parsed entry into a discovered paper record.
// Entries without a title are dropped.
func entryToPaper(e *entry) *paper.Paper {
	title := cleanBraces(e.fields["title"])
	if title == "" {
		return nil
	}

	authors := ParseAuthors(e.fields["author"])
	year := ParseYear(e.fields["year"])

	p := paper.New(title, authors, year)
	p.Journal = cleanBraces(firstNonEmpty(e.fields["journal"], e.fields["booktitle"]))
	p.Volume = e.fields["volume"]
	p.Number = e.fields["number"]
	p.Pages = e.fields["pages"]
	p.DOI = NormalizeDOI(e.fields["doi"])
	p.URL = e.fields["url"]
	p.Abstract = cleanBraces(e.fields["abstract"])
	return p
}

// ParseAuthors splits a BibTeX author string on " and " and converts
// "Last, First" names to "First Last".
func ParseAuthors(authorStr string) []string {
	if authorStr == "" {
		return nil
	}

	var authors []string
	for _, raw := range andRe.Split(authorStr, -1) {
		name := strings.Join(strings.Fields(cleanBraces(raw)), " ")
		if i := strings.Index(name, ","); i >= 0 {
			last := strings.TrimSpace(name[:i])
			first := strings.TrimSpace(name[i+1:])
			name = strings.TrimSpace(first + " " + last)
		}
		if name != "" {
			authors = append(authors, name)
		}
	}
	return authors
}

// ParseYear extracts the first 4-digit year from a year field. Values
// like "forthcoming" yield 0.
func ParseYear(yearStr string) int {
	m := yearRe.FindString(yearStr)
	if m == "" {
		return 0
	}
	year := 0
	fmt.Sscanf(m, "%d", &year)
	return year
}

// NormalizeDOI strips resolver prefixes from a DOI value.
func NormalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	doi = strings.TrimPrefix(doi, "https://doi.org/")
	doi = strings.TrimPrefix(doi, "http://doi.org/")
	doi = strings.TrimPrefix(doi, "doi.org/")
	doi = strings.TrimPrefix(doi, "DOI:")
	doi = strings.TrimPrefix(doi, "doi:")
	return doi
}

// cleanBraces removes the curly braces BibTeX uses to protect
// capitalization.
func cleanBraces(s string) string {
	return strings.TrimSpace(strings.NewReplacer("{", "", "}", "").Replace(s))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
