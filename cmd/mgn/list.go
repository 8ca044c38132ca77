package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gsekeres/marginalia/internal/paper"
)

var listStatus string

func init() {
	listCmd.Flags().StringVar(&listStatus, "status", "", "Only list papers with this status")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List papers in the vault",
	Long: `List all papers, optionally filtered by lifecycle status.

Examples:
  mgn list
  mgn list --status wanted
  mgn list --status downloaded --human`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	v := mustOpenVault()

	papers := v.Index.All()
	if listStatus != "" {
		status := paper.Status(listStatus)
		if !status.Valid() {
			exitWithError(ExitError, "unknown status %q", listStatus)
		}
		papers = v.Index.ByStatus(status)
	}

	if humanOutput {
		if len(papers) == 0 {
			fmt.Println("No papers")
			return nil
		}
		fmt.Printf("%d papers:\n\n", len(papers))
		for _, p := range papers {
			printPaperLine(p)
		}
	} else {
		if papers == nil {
			papers = []*paper.Paper{}
		}
		outputJSON(papers)
	}
	return nil
}
