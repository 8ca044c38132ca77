package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gsekeres/marginalia/internal/bibtex"
)

func init() {
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <file.bib>",
	Short: "Import a BibTeX bibliography into the vault",
	Long: `Import papers from a BibTeX file. Import is idempotent: papers
already in the vault keep their status and files, with metadata
refreshed only while they are still in the discovered state.

Examples:
  mgn import references.bib
  mgn import ~/papers/library.bib --human`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

// ImportResponse reports the outcome of an import.
type ImportResponse struct {
	Parsed    int    `json:"parsed"`
	Added     int    `json:"added"`
	Refreshed int    `json:"refreshed"`
	Total     int    `json:"total"`
	Source    string `json:"source"`
}

func runImport(cmd *cobra.Command, args []string) error {
	bibPath := args[0]
	records, err := bibtex.ParseFile(bibPath)
	if err != nil {
		exitWithError(ExitDataError, "parsing %s: %v", bibPath, err)
	}

	v := mustOpenVault()
	added, refreshed := v.ImportRecords(records)
	if abs, err := filepath.Abs(bibPath); err == nil {
		v.Index.SourceBibPath = abs
	}
	mustSave(v)

	resp := ImportResponse{
		Parsed:    len(records),
		Added:     added,
		Refreshed: refreshed,
		Total:     len(v.Index.Papers),
		Source:    bibPath,
	}
	if humanOutput {
		outputHuman("Imported %d entries from %s: %d added, %d refreshed (%d papers total)\n",
			resp.Parsed, resp.Source, resp.Added, resp.Refreshed, resp.Total)
	} else {
		outputJSON(resp)
	}
	return nil
}
