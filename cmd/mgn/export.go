package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gsekeres/marginalia/internal/bibtex"
	"github.com/gsekeres/marginalia/internal/paper"
)

var (
	exportOutput string
	exportStatus string
)

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")
	exportCmd.Flags().StringVar(&exportStatus, "status", "", "Only export papers with this status")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the vault as BibTeX",
	Long: `Export vault papers as a BibTeX bibliography. Entry keys are the
vault citekeys, so exporting and re-importing is a stable round trip.

Examples:
  mgn export
  mgn export -o library.bib
  mgn export --status summarized`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	v := mustOpenVault()

	papers := v.Index.All()
	if exportStatus != "" {
		status := paper.Status(exportStatus)
		if !status.Valid() {
			exitWithError(ExitError, "unknown status %q", exportStatus)
		}
		papers = v.Index.ByStatus(status)
	}

	out := bibtex.ExportAll(papers)
	if exportOutput == "" {
		fmt.Print(out)
		return nil
	}

	if err := os.WriteFile(exportOutput, []byte(out), 0o644); err != nil {
		exitWithError(ExitError, "writing %s: %v", exportOutput, err)
	}
	if humanOutput {
		outputHuman("Exported %d papers to %s\n", len(papers), exportOutput)
	} else {
		outputJSON(StatusResponse{Status: "exported", Path: exportOutput})
	}
	return nil
}
