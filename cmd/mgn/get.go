package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gsekeres/marginalia/internal/paper"
	"github.com/gsekeres/marginalia/internal/vault"
)

func init() {
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <citekey>",
	Short: "Show a paper's full record",
	Long: `Show everything the vault knows about one paper, including its
connections to other papers.

Examples:
  mgn get smith2023algorithmic
  mgn get smith2023algorithmic --human`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

// GetResponse is the full detail view for one paper.
type GetResponse struct {
	*paper.Paper
	Connections []vault.Connection `json:"connections,omitempty"`
}

func runGet(cmd *cobra.Command, args []string) error {
	v := mustOpenVault()

	p, err := v.Get(args[0])
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	conns, err := v.ConnectionsFor(p.Citekey)
	if err != nil {
		exitWithError(ExitError, "reading connections: %v", err)
	}

	if !humanOutput {
		outputJSON(GetResponse{Paper: p, Connections: conns})
		return nil
	}

	fmt.Printf("%s\n", p.Title)
	fmt.Printf("  citekey: %s\n", p.Citekey)
	fmt.Printf("  authors: %s\n", formatAuthorsShort(p.Authors, 5))
	if p.Year > 0 {
		fmt.Printf("  year:    %d\n", p.Year)
	}
	if p.Journal != "" {
		fmt.Printf("  journal: %s\n", p.Journal)
	}
	if p.DOI != "" {
		fmt.Printf("  doi:     %s\n", p.DOI)
	}
	fmt.Printf("  status:  %s\n", p.Status)
	if p.PDFPath != "" {
		fmt.Printf("  pdf:     %s\n", p.PDFPath)
	}
	if p.SummaryPath != "" {
		fmt.Printf("  summary: %s\n", p.SummaryPath)
	}
	if p.NeedsManualDownload() {
		fmt.Printf("  search attempts: %d (last error: %s)\n", p.SearchAttempts, p.LastSearchError)
	}
	if len(p.CitedBy) > 0 {
		fmt.Printf("  cited by: %s\n", formatAuthorsShort(p.CitedBy, 10))
	}
	if len(conns) > 0 {
		fmt.Printf("\n  connections:\n")
		for _, c := range conns {
			other := c.Target
			if other == p.Citekey {
				other = c.Source
			}
			fmt.Printf("    %s: %s\n", other, c.Reason)
		}
	}
	return nil
}
