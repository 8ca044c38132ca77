package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Regenerate the vault's index.md page",
	Long: `Write index.md at the vault root: an Obsidian-friendly overview of
the collection grouped by status, with the manual-download queue.

Examples:
  mgn index`,
	RunE: runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	v := mustOpenVault()

	path, err := v.WriteIndexPage()
	if err != nil {
		exitWithError(ExitError, "writing index page: %v", err)
	}

	if humanOutput {
		outputHuman("Wrote %s\n", path)
	} else {
		outputJSON(StatusResponse{Status: "written", Path: path})
	}
	return nil
}
