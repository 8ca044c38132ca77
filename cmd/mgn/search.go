package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gsekeres/marginalia/internal/paper"
	"github.com/gsekeres/marginalia/internal/searchdb"
	"github.com/gsekeres/marginalia/internal/vault"
)

var (
	searchLimit   int
	searchRebuild bool
)

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", DefaultSearchLimit, "Maximum results to return")
	searchCmd.Flags().BoolVar(&searchRebuild, "rebuild", false, "Rebuild the search cache before querying")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search papers by title, author, or abstract",
	Long: `Full-text search over the vault. The search cache is a derived
SQLite database rebuilt from the JSON index; use --rebuild after bulk
changes.

Examples:
  mgn search "matching markets"
  mgn search roth --rebuild
  mgn search auctions --limit 5 --human`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]
	v := mustOpenVault()

	papers := searchWithCache(v, query)
	if len(papers) > searchLimit {
		papers = papers[:searchLimit]
	}

	if humanOutput {
		if len(papers) == 0 {
			fmt.Println("No matches")
			return nil
		}
		fmt.Printf("%d matches:\n\n", len(papers))
		for _, p := range papers {
			fmt.Printf("  %-28s %s\n", p.Citekey, truncateString(p.Title, SearchTitleMaxLen))
			fmt.Printf("  %-28s %s (%d)\n\n", "", formatAuthorsShort(p.Authors, 3), p.Year)
		}
	} else {
		if papers == nil {
			papers = []*paper.Paper{}
		}
		outputJSON(papers)
	}
	return nil
}

// searchWithCache queries the SQLite full-text cache, falling back to
// a linear scan of the index when the cache is unusable.
func searchWithCache(v *vault.Vault, query string) []*paper.Paper {
	db, err := searchdb.Open(filepath.Join(v.Root, searchdb.DBFile))
	if err != nil {
		return v.Search(query)
	}
	defer db.Close()

	count, err := db.Count()
	if err != nil {
		return v.Search(query)
	}
	if searchRebuild || count == 0 {
		if _, err := db.Rebuild(v.Index); err != nil {
			return v.Search(query)
		}
	}

	citekeys, err := db.Search(query, searchLimit)
	if err != nil {
		return v.Search(query)
	}
	papers := make([]*paper.Paper, 0, len(citekeys))
	for _, ck := range citekeys {
		if p := v.Index.Get(ck); p != nil {
			papers = append(papers, p)
		}
	}
	return papers
}
