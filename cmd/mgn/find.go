package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/gsekeres/marginalia/internal/acquire"
	"github.com/gsekeres/marginalia/internal/anthropic"
	"github.com/gsekeres/marginalia/internal/batch"
	"github.com/gsekeres/marginalia/internal/config"
	"github.com/gsekeres/marginalia/internal/paper"
	"github.com/gsekeres/marginalia/internal/vault"
)

var findLimit int

func init() {
	findCmd.Flags().IntVar(&findLimit, "limit", 0, "Maximum papers to process (0 = all)")
	rootCmd.AddCommand(findCmd)
}

var findCmd = &cobra.Command{
	Use:   "find [citekeys...]",
	Short: "Hunt for open-access PDFs of wanted papers",
	Long: `Run the acquisition waterfall for wanted papers: Unpaywall, then
Semantic Scholar, then NBER, each gated by a shared rate limit. The
first verified PDF wins. Papers nothing can find get manual search
links (see mgn manual).

Progress is saved after every paper, so an interrupted run can simply
be rerun.

Examples:
  mgn find
  mgn find --limit 5
  mgn find smith2023algorithmic`,
	RunE: runFind,
}

// FindItemResult is the per-paper outcome in find output.
type FindItemResult struct {
	Citekey string `json:"citekey"`
	acquire.Result
}

// FindResponse is the full find command output.
type FindResponse struct {
	batch.Snapshot
	Results []FindItemResult `json:"results"`
}

func runFind(cmd *cobra.Command, args []string) error {
	v := mustOpenVault()

	papers := v.Index.ByStatus(paper.StatusWanted)
	if len(args) > 0 {
		papers = papers[:0]
		for _, ck := range args {
			p, err := v.Get(ck)
			if err != nil {
				exitWithError(ExitDataError, "%v", err)
			}
			if p.Status != paper.StatusWanted {
				exitWithError(ExitDataError, "%s is %s, not wanted", ck, p.Status)
			}
			papers = append(papers, p)
		}
	}
	if len(papers) == 0 {
		if humanOutput {
			outputHuman("No wanted papers\n")
		} else {
			outputJSON(FindResponse{Results: []FindItemResult{}})
		}
		return nil
	}

	client := &http.Client{Timeout: acquire.DefaultHTTPTimeout}
	providers := []acquire.Provider{
		acquire.NewUnpaywall(client, config.UnpaywallEmail()),
		acquire.NewSemanticScholar(client, config.S2APIKey()),
		acquire.NewNBER(client),
	}
	if key := config.AnthropicAPIKey(); key != "" {
		ac, err := anthropic.New(key)
		if err == nil {
			providers = append(providers, acquire.NewClaude(ac))
		}
	}

	finder := acquire.NewFinder(
		acquire.WithProviders(providers...),
		acquire.WithLimiter(acquire.NewLimiter(config.RequestInterval())),
		acquire.WithHTTPClient(client),
	)

	var results []FindItemResult
	runner := batch.NewRunner(v)
	snap, err := runner.Run(context.Background(), papers, findLimit,
		func(ctx context.Context, p *paper.Paper) (bool, error) {
			fmt.Fprintf(os.Stderr, "finding %s...\n", p.Citekey)
			if err := p.MarkQueued(); err != nil {
				return false, err
			}

			res := finder.Find(ctx, p, v.PDFPath(p.Citekey))
			if res.Success {
				res.PDFPath = vault.RelPDFPath(p.Citekey)
				if err := p.MarkDownloaded(res.PDFPath); err != nil {
					return false, err
				}
			} else {
				p.RecordSearchFailure(res.Err, res.ManualLinks)
			}
			results = append(results, FindItemResult{Citekey: p.Citekey, Result: res})
			return res.Success, nil
		})
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		outputHuman("Processed %d papers: %d downloaded, %d need manual download\n",
			snap.Completed, snap.Succeeded, snap.Completed-snap.Succeeded)
		for _, r := range results {
			if r.Success {
				fmt.Printf("  %-28s downloaded via %s\n", r.Citekey, r.Source)
			} else {
				fmt.Printf("  %-28s not found\n", r.Citekey)
			}
		}
	} else {
		outputJSON(FindResponse{Snapshot: snap, Results: results})
	}
	return nil
}
