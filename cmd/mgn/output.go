package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/gsekeres/marginalia/internal/config"
	"github.com/gsekeres/marginalia/internal/paper"
	"github.com/gsekeres/marginalia/internal/vault"
)

// Constants for output formatting.
const (
	DefaultSearchLimit = 20 // Default limit for search results

	ListTitleMaxLen   = 60 // Used in list command output
	SearchTitleMaxLen = 70 // Used in search result summaries
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// mustOpenVault resolves the vault path and opens it, exiting on failure.
func mustOpenVault() *vault.Vault {
	root := config.VaultPath(vaultFlag)
	v, err := vault.Open(root)
	if err != nil {
		exitWithError(ExitConfigError, "opening vault at %s: %v", root, err)
	}
	return v
}

// mustSave persists the vault index, exiting on failure.
func mustSave(v *vault.Vault) {
	if err := v.Save(); err != nil {
		exitWithError(ExitError, "saving vault: %v", err)
	}
}

// printPaperLine prints one paper in the compact list format.
func printPaperLine(p *paper.Paper) {
	fmt.Printf("  %-28s %-11s %s\n",
		p.Citekey, p.Status, truncateString(p.Title, ListTitleMaxLen))
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// formatAuthorsShort formats authors with "et al." past maxCount.
func formatAuthorsShort(authors []string, maxCount int) string {
	if len(authors) == 0 {
		return ""
	}
	var names []string
	for i, a := range authors {
		if i >= maxCount {
			names = append(names, "et al.")
			break
		}
		names = append(names, a)
	}
	return strings.Join(names, ", ")
}
