package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gsekeres/marginalia/internal/paper"
)

var (
	notesContent string
	notesFile    string

	highlightPage int
	highlightText string
	highlightNote string
)

func init() {
	notesSetCmd.Flags().StringVar(&notesContent, "content", "", "Notes content")
	notesSetCmd.Flags().StringVar(&notesFile, "file", "", "Read notes content from a file")

	notesHighlightCmd.Flags().IntVar(&highlightPage, "page", 1, "Page number the highlight is on")
	notesHighlightCmd.Flags().StringVar(&highlightText, "text", "", "Highlighted text (required)")
	notesHighlightCmd.Flags().StringVar(&highlightNote, "note", "", "Annotation attached to the highlight")
	notesHighlightCmd.MarkFlagRequired("text")

	notesCmd.AddCommand(notesGetCmd)
	notesCmd.AddCommand(notesSetCmd)
	notesCmd.AddCommand(notesHighlightCmd)
	rootCmd.AddCommand(notesCmd)
}

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Manage reading notes and highlights",
}

var notesGetCmd = &cobra.Command{
	Use:   "get <citekey>",
	Short: "Show a paper's notes",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotesGet,
}

var notesSetCmd = &cobra.Command{
	Use:   "set <citekey>",
	Short: "Replace a paper's notes content",
	Long: `Replace the free-form notes for a paper. Highlights are kept.

Examples:
  mgn notes set smith2023algorithmic --content "Key insight: ..."
  mgn notes set smith2023algorithmic --file notes.md`,
	Args: cobra.ExactArgs(1),
	RunE: runNotesSet,
}

var notesHighlightCmd = &cobra.Command{
	Use:   "highlight <citekey>",
	Short: "Add a highlight to a paper",
	Long: `Record a highlight with an optional annotation.

Examples:
  mgn notes highlight smith2023algorithmic --page 4 --text "we show that..." --note "main theorem"`,
	Args: cobra.ExactArgs(1),
	RunE: runNotesHighlight,
}

func runNotesGet(cmd *cobra.Command, args []string) error {
	v := mustOpenVault()

	n, err := v.Notes(args[0])
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	if !humanOutput {
		outputJSON(n)
		return nil
	}
	if n.Content == "" && len(n.Highlights) == 0 {
		fmt.Println("No notes")
		return nil
	}
	if n.Content != "" {
		fmt.Println(n.Content)
	}
	for _, h := range n.Highlights {
		fmt.Printf("\n[p.%d] %q\n", h.Page, h.Text)
		if h.Note != "" {
			fmt.Printf("  %s\n", h.Note)
		}
	}
	return nil
}

func runNotesSet(cmd *cobra.Command, args []string) error {
	if notesContent == "" && notesFile == "" {
		exitWithError(ExitError, "provide --content or --file")
	}
	content := notesContent
	if notesFile != "" {
		data, err := os.ReadFile(notesFile)
		if err != nil {
			exitWithError(ExitError, "reading %s: %v", notesFile, err)
		}
		content = string(data)
	}

	v := mustOpenVault()
	n, err := v.Notes(args[0])
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	n.Content = content
	if err := v.SaveNotes(n); err != nil {
		exitWithError(ExitError, "saving notes: %v", err)
	}

	if humanOutput {
		outputHuman("Saved notes for %s\n", args[0])
	} else {
		outputJSON(StatusResponse{Status: "saved", Path: n.Citekey})
	}
	return nil
}

func runNotesHighlight(cmd *cobra.Command, args []string) error {
	v := mustOpenVault()

	n, err := v.Notes(args[0])
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	h := paper.NewHighlight(highlightPage, highlightText)
	h.Note = highlightNote
	n.Highlights = append(n.Highlights, h)

	if err := v.SaveNotes(n); err != nil {
		exitWithError(ExitError, "saving notes: %v", err)
	}

	if humanOutput {
		outputHuman("Added highlight %s to %s\n", h.ID, args[0])
	} else {
		outputJSON(h)
	}
	return nil
}
