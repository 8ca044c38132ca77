package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(manualCmd)
}

var manualCmd = &cobra.Command{
	Use:   "manual",
	Short: "List papers waiting for manual download",
	Long: `List papers automated acquisition could not find, with search links
to try by hand. Once you have a PDF, register it with mgn register.

Examples:
  mgn manual
  mgn manual --human`,
	RunE: runManual,
}

// ManualEntry is one paper in the manual-download queue.
type ManualEntry struct {
	Citekey   string   `json:"citekey"`
	Title     string   `json:"title"`
	Attempts  int      `json:"search_attempts"`
	LastError string   `json:"last_search_error,omitempty"`
	Links     []string `json:"manual_download_links"`
}

func runManual(cmd *cobra.Command, args []string) error {
	v := mustOpenVault()
	papers := v.NeedsManualDownload()

	entries := make([]ManualEntry, 0, len(papers))
	for _, p := range papers {
		entries = append(entries, ManualEntry{
			Citekey:   p.Citekey,
			Title:     p.Title,
			Attempts:  p.SearchAttempts,
			LastError: p.LastSearchError,
			Links:     p.ManualDownloadLinks,
		})
	}

	if !humanOutput {
		outputJSON(entries)
		return nil
	}

	if len(entries) == 0 {
		fmt.Println("No papers need manual download")
		return nil
	}
	fmt.Printf("%d papers need manual download:\n\n", len(entries))
	for _, e := range entries {
		fmt.Printf("  %s\n", e.Citekey)
		fmt.Printf("    %s\n", truncateString(e.Title, ListTitleMaxLen))
		for _, link := range e.Links {
			fmt.Printf("    %s\n", link)
		}
		fmt.Println()
	}
	fmt.Println("After downloading: mgn register <citekey> <pdf-path>")
	return nil
}
