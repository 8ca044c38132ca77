package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gsekeres/marginalia/internal/anthropic"
	"github.com/gsekeres/marginalia/internal/batch"
	"github.com/gsekeres/marginalia/internal/config"
	"github.com/gsekeres/marginalia/internal/paper"
	"github.com/gsekeres/marginalia/internal/summary"
)

var summarizeLimit int

func init() {
	summarizeCmd.Flags().IntVar(&summarizeLimit, "limit", 0, "Maximum papers to process (0 = all)")
	rootCmd.AddCommand(summarizeCmd)
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize [citekeys...]",
	Short: "Generate structured summaries for downloaded papers",
	Long: `Extract text from downloaded PDFs and generate structured markdown
summaries. Requires an Anthropic API key (ANTHROPIC_API_KEY or the
config file). A paper that fails is left untouched and can be retried.

Examples:
  mgn summarize
  mgn summarize --limit 3
  mgn summarize smith2023algorithmic`,
	RunE: runSummarize,
}

// SummarizeItemResult is the per-paper outcome in summarize output.
type SummarizeItemResult struct {
	Citekey     string `json:"citekey"`
	Success     bool   `json:"success"`
	SummaryPath string `json:"summary_path,omitempty"`
	Citations   int    `json:"citations,omitempty"`
	Err         string `json:"error,omitempty"`
}

// SummarizeResponse is the full summarize command output.
type SummarizeResponse struct {
	batch.Snapshot
	Results []SummarizeItemResult `json:"results"`
}

func runSummarize(cmd *cobra.Command, args []string) error {
	key := config.AnthropicAPIKey()
	if key == "" {
		exitWithError(ExitConfigError, "summarization requires an Anthropic API key (set ANTHROPIC_API_KEY)")
	}
	client, err := anthropic.New(key)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	v := mustOpenVault()

	papers := v.Index.ByStatus(paper.StatusDownloaded)
	if len(args) > 0 {
		papers = papers[:0]
		for _, ck := range args {
			p, err := v.Get(ck)
			if err != nil {
				exitWithError(ExitDataError, "%v", err)
			}
			if p.Status != paper.StatusDownloaded {
				exitWithError(ExitDataError, "%s is %s, not downloaded", ck, p.Status)
			}
			papers = append(papers, p)
		}
	}
	if len(papers) == 0 {
		if humanOutput {
			outputHuman("No downloaded papers to summarize\n")
		} else {
			outputJSON(SummarizeResponse{Results: []SummarizeItemResult{}})
		}
		return nil
	}

	summarizer := summary.NewSummarizer(v, summary.NewClaudeGenerator(client))

	var results []SummarizeItemResult
	runner := batch.NewRunner(v)
	snap, err := runner.Run(context.Background(), papers, summarizeLimit,
		func(ctx context.Context, p *paper.Paper) (bool, error) {
			fmt.Fprintf(os.Stderr, "summarizing %s...\n", p.Citekey)

			summaryPath, citations, err := summarizer.Summarize(ctx, p)
			if err != nil {
				results = append(results, SummarizeItemResult{Citekey: p.Citekey, Err: err.Error()})
				return false, nil
			}
			if err := p.MarkSummarized(summaryPath, citations); err != nil {
				return false, err
			}
			results = append(results, SummarizeItemResult{
				Citekey:     p.Citekey,
				Success:     true,
				SummaryPath: summaryPath,
				Citations:   len(citations),
			})
			return true, nil
		})
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		outputHuman("Summarized %d of %d papers\n", snap.Succeeded, snap.Completed)
		for _, r := range results {
			if r.Success {
				fmt.Printf("  %-28s %s (%d citations)\n", r.Citekey, r.SummaryPath, r.Citations)
			} else {
				fmt.Printf("  %-28s failed: %s\n", r.Citekey, r.Err)
			}
		}
	} else {
		outputJSON(SummarizeResponse{Snapshot: snap, Results: results})
	}
	return nil
}
