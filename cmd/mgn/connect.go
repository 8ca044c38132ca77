package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gsekeres/marginalia/internal/vault"
)

var connectReason string

func init() {
	connectAddCmd.Flags().StringVar(&connectReason, "reason", "", "Why these papers are connected (required)")
	connectAddCmd.MarkFlagRequired("reason")
	connectCmd.AddCommand(connectAddCmd)
	connectCmd.AddCommand(connectListCmd)
	rootCmd.AddCommand(connectCmd)
}

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Manage connections between papers",
}

var connectAddCmd = &cobra.Command{
	Use:   "add <source> <target>",
	Short: "Record a connection between two papers",
	Long: `Record an undirected connection between two vault papers with a
reason. Duplicate pairs are rejected regardless of direction.

Examples:
  mgn connect add smith2023algorithmic roth1984evolution --reason "extends the matching model"`,
	Args: cobra.ExactArgs(2),
	RunE: runConnectAdd,
}

var connectListCmd = &cobra.Command{
	Use:   "list [citekey]",
	Short: "List connections, optionally for one paper",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConnectList,
}

func runConnectAdd(cmd *cobra.Command, args []string) error {
	v := mustOpenVault()

	conn, err := v.AddConnection(args[0], args[1], connectReason)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	if humanOutput {
		outputHuman("Connected %s <-> %s\n", conn.Source, conn.Target)
	} else {
		outputJSON(conn)
	}
	return nil
}

func runConnectList(cmd *cobra.Command, args []string) error {
	v := mustOpenVault()

	var conns []vault.Connection
	var err error
	if len(args) == 1 {
		if _, err := v.Get(args[0]); err != nil {
			exitWithError(ExitDataError, "%v", err)
		}
		conns, err = v.ConnectionsFor(args[0])
	} else {
		conns, err = v.Connections()
	}
	if err != nil {
		exitWithError(ExitError, "reading connections: %v", err)
	}

	if !humanOutput {
		if conns == nil {
			conns = []vault.Connection{}
		}
		outputJSON(conns)
		return nil
	}

	if len(conns) == 0 {
		fmt.Println("No connections")
		return nil
	}
	for _, c := range conns {
		fmt.Printf("  %s <-> %s: %s\n", c.Source, c.Target, c.Reason)
	}
	return nil
}
