package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gsekeres/marginalia/internal/paper"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show vault statistics",
	Long: `Show how many papers the vault holds in each lifecycle state.

Examples:
  mgn status
  mgn status --human`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	v := mustOpenVault()
	stats := v.Index.Stats()

	if humanOutput {
		outputHuman("%d papers in vault (%s)\n\n", stats.Total, v.Root)
		for _, s := range paper.AllStatuses() {
			if n := stats.ByStatus[string(s)]; n > 0 {
				fmt.Printf("  %-12s %d\n", s, n)
			}
		}
		if manual := v.NeedsManualDownload(); len(manual) > 0 {
			fmt.Printf("\n%d papers need manual download (mgn manual)\n", len(manual))
		}
	} else {
		outputJSON(stats)
	}
	return nil
}
