// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-search/internal/engine"
	"github.com/pdiddy/scholar-search/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Run a web search through the aggregation engine",
	Long: `Search runs one query through the full engine path: backend selection,
rate limiting, fallback, source-credibility classification, and result
filtering. Results print as a ranked table, or as JSON with --json.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := engineConfig()
		if err != nil {
			return err
		}

		flagTimeout, _ := cmd.Flags().GetDuration("timeout")
		timeoutOrDefault(&cfg, flagTimeout)

		eng, closer, err := buildEngine(cfg, os.Stderr)
		if err != nil {
			return err
		}
		if closer != nil {
			defer closer.Close()
		}

		opts, err := optionsFromFlags(cmd)
		if err != nil {
			return err
		}

		resp, err := eng.Search(context.Background(), args[0], opts)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return engine.FormatJSON(resp, os.Stdout)
		}
		engine.FormatTable(resp, os.Stdout)
		return nil
	},
}

// optionsFromFlags translates search command flags into engine options.
func optionsFromFlags(cmd *cobra.Command) (engine.Options, error) {
	flags := cmd.Flags()

	maxResults, _ := flags.GetInt("max-results")
	textProvider, _ := flags.GetString("text-provider")
	backendName, _ := flags.GetString("backend")
	language, _ := flags.GetString("language")
	region, _ := flags.GetString("region")

	filters := types.SearchFilters{}
	filters.IncludeDomains, _ = flags.GetStringSlice("include-domain")
	filters.ExcludeDomains, _ = flags.GetStringSlice("exclude-domain")
	filters.FileTypes, _ = flags.GetStringSlice("file-type")
	filters.AcademicOnly, _ = flags.GetBool("academic-only")
	filters.FreeAccessOnly, _ = flags.GetBool("free-only")
	filters.PeerReviewedOnly, _ = flags.GetBool("peer-reviewed")
	filters.MinimumCitations, _ = flags.GetInt("min-citations")
	filters.MinimumRelevanceScore, _ = flags.GetFloat64("min-score")
	filters.Languages, _ = flags.GetStringSlice("result-language")

	contentTypes, _ := flags.GetStringSlice("content-type")
	for _, ct := range contentTypes {
		filters.ContentTypes = append(filters.ContentTypes, types.ContentType(strings.ToLower(ct)))
	}

	from, _ := flags.GetString("from")
	to, _ := flags.GetString("to")
	dates, err := parseDateRange(from, to)
	if err != nil {
		return engine.Options{}, err
	}
	filters.Dates = dates

	return engine.Options{
		MaxResults:   maxResults,
		TextProvider: textProvider,
		Backend:      backendName,
		Language:     language,
		Region:       region,
		Filters:      filters,
	}, nil
}

// parseDateRange parses the --from/--to flags. Either side may be empty.
func parseDateRange(from, to string) (types.DateRange, error) {
	var r types.DateRange
	var err error
	if from != "" {
		r.From, err = time.Parse("2006-01-02", from)
		if err != nil {
			return types.DateRange{}, fmt.Errorf("invalid --from date %q (want YYYY-MM-DD)", from)
		}
	}
	if to != "" {
		r.To, err = time.Parse("2006-01-02", to)
		if err != nil {
			return types.DateRange{}, fmt.Errorf("invalid --to date %q (want YYYY-MM-DD)", to)
		}
	}
	return r, nil
}

func init() {
	searchCmd.Flags().Int("max-results", engine.DefaultMaxResults, "maximum number of results to return")
	searchCmd.Flags().String("text-provider", "", "active text-generation provider; its pairing selects the backend")
	searchCmd.Flags().String("backend", "", "search backend override (native, online, cnki, wanfang, metasearch, simulated)")
	searchCmd.Flags().String("language", "", "preferred result language hint passed to the backend")
	searchCmd.Flags().String("region", "", "region hint passed to the backend")
	searchCmd.Flags().Duration("timeout", 0, "per-attempt HTTP timeout override")

	searchCmd.Flags().StringSlice("include-domain", nil, "keep only results from these domains")
	searchCmd.Flags().StringSlice("exclude-domain", nil, "drop results from these domains")
	searchCmd.Flags().StringSlice("file-type", nil, "keep only results with these file extensions (e.g. pdf)")
	searchCmd.Flags().Bool("academic-only", false, "keep only academic sources")
	searchCmd.Flags().Bool("free-only", false, "keep only results that declare open access")
	searchCmd.Flags().Bool("peer-reviewed", false, "keep only results with peer-review signals")
	searchCmd.Flags().Int("min-citations", 0, "minimum reported citation count")
	searchCmd.Flags().Float64("min-score", 0, "minimum relevance score (0.0-1.0)")
	searchCmd.Flags().StringSlice("result-language", nil, "keep only results in these ISO language codes")
	searchCmd.Flags().StringSlice("content-type", nil, "keep only these content types (article, paper, book, website, pdf, video)")
	searchCmd.Flags().String("from", "", "publication date range start (YYYY-MM-DD)")
	searchCmd.Flags().String("to", "", "publication date range end (YYYY-MM-DD)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}
