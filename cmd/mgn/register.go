package main

import (
	"github.com/spf13/cobra"

	"github.com/gsekeres/marginalia/internal/vault"
)

func init() {
	rootCmd.AddCommand(registerCmd)
}

var registerCmd = &cobra.Command{
	Use:   "register <citekey> <pdf-path>",
	Short: "Register a manually downloaded PDF",
	Long: `Copy a manually obtained PDF into the vault and mark the paper as
downloaded. This is the follow-up to mgn manual.

Examples:
  mgn register smith2023algorithmic ~/Downloads/smith.pdf`,
	Args: cobra.ExactArgs(2),
	RunE: runRegister,
}

func runRegister(cmd *cobra.Command, args []string) error {
	citekey, pdfPath := args[0], args[1]

	v := mustOpenVault()
	if err := v.RegisterPDF(citekey, pdfPath); err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	rel := vault.RelPDFPath(citekey)
	if humanOutput {
		outputHuman("Registered %s as %s\n", pdfPath, rel)
	} else {
		outputJSON(StatusResponse{Status: "downloaded", Path: rel})
	}
	return nil
}
