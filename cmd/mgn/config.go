package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gsekeres/marginalia/internal/config"
)

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage global configuration",
	Long: `Manage the global config file. Environment variables
(MARGINALIA_VAULT, UNPAYWALL_EMAIL, SEMANTIC_SCHOLAR_API_KEY,
ANTHROPIC_API_KEY) override file values at runtime.`,
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the current configuration",
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set one of: vault_path, unpaywall_email, s2_api_key,
anthropic_api_key, request_interval_seconds.

Examples:
  mgn config set vault_path ~/papers/vault
  mgn config set request_interval_seconds 2`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

// ConfigSetResponse is the response for config set.
type ConfigSetResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	if !humanOutput {
		outputJSON(cfg)
		return nil
	}
	fmt.Printf("config file: %s\n", config.Path())
	fmt.Printf("  vault_path:               %s\n", config.VaultPath(vaultFlag))
	fmt.Printf("  unpaywall_email:          %s\n", orUnset(config.UnpaywallEmail()))
	fmt.Printf("  s2_api_key:               %s\n", maskSecret(config.S2APIKey()))
	fmt.Printf("  anthropic_api_key:        %s\n", maskSecret(config.AnthropicAPIKey()))
	fmt.Printf("  request_interval_seconds: %g\n", config.RequestInterval().Seconds())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	switch key {
	case "vault_path":
		cfg.VaultPath = config.ExpandTilde(value)
	case "unpaywall_email":
		cfg.UnpaywallEmail = value
	case "s2_api_key":
		cfg.S2APIKey = value
	case "anthropic_api_key":
		cfg.AnthropicAPIKey = value
	case "request_interval_seconds":
		secs, err := strconv.ParseFloat(value, 64)
		if err != nil || secs <= 0 {
			exitWithError(ExitError, "request_interval_seconds must be a positive number")
		}
		cfg.RequestIntervalSeconds = secs
	default:
		exitWithError(ExitError, "unknown config key %q", key)
	}

	if err := cfg.Save(); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	if humanOutput {
		outputHuman("Set %s\n", key)
	} else {
		outputJSON(ConfigSetResponse{Status: "updated", Key: key, Value: value})
	}
	return nil
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}

func maskSecret(s string) string {
	if s == "" {
		return "(unset)"
	}
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
