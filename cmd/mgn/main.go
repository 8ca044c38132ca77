// Package main provides the mgn CLI entry point.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// vaultFlag is the --vault override for the vault location.
var vaultFlag string

func main() {
	// Missing .env is fine; config falls back to the global file.
	godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mgn",
	Short: "Personal academic paper collection manager",
	Long: `mgn manages a vault of academic papers through their lifecycle:
import bibliography metadata, mark papers as wanted, hunt down
open-access PDFs, and generate structured summaries.

The vault is a plain directory with a JSON index and one folder per
paper, friendly to Obsidian and to git. All commands output JSON by
default for easy integration with agents and other tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&vaultFlag, "vault", "", "Vault directory (overrides MARGINALIA_VAULT and config)")
	rootCmd.Version = Version
}
