package main

import (
	"github.com/spf13/cobra"
)

var wantAll bool

func init() {
	wantCmd.Flags().BoolVar(&wantAll, "all", false, "Mark every discovered paper as wanted")
	rootCmd.AddCommand(wantCmd)
}

var wantCmd = &cobra.Command{
	Use:   "want [citekeys...]",
	Short: "Mark discovered papers as wanted",
	Long: `Mark papers as wanted so the acquisition pipeline will hunt for
their PDFs. Only discovered papers change; anything further along the
lifecycle is left untouched.

Examples:
  mgn want smith2023algorithmic jones2021matching
  mgn want --all`,
	RunE: runWant,
}

// WantResponse reports how many papers changed state.
type WantResponse struct {
	Marked    int `json:"marked"`
	Requested int `json:"requested"`
}

func runWant(cmd *cobra.Command, args []string) error {
	if !wantAll && len(args) == 0 {
		exitWithError(ExitError, "provide citekeys or --all")
	}

	v := mustOpenVault()

	citekeys := args
	if wantAll {
		citekeys = v.Index.Citekeys()
	} else {
		for _, ck := range citekeys {
			if _, err := v.Get(ck); err != nil {
				exitWithError(ExitDataError, "%v", err)
			}
		}
	}

	marked := v.MarkWanted(citekeys)
	mustSave(v)

	if humanOutput {
		outputHuman("Marked %d of %d papers as wanted\n", marked, len(citekeys))
	} else {
		outputJSON(WantResponse{Marked: marked, Requested: len(citekeys)})
	}
	return nil
}
