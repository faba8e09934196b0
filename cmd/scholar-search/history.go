// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-search/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent searches from the history store",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := engineConfig()
		if err != nil {
			return err
		}
		if cfg.HistoryPath == "" {
			return fmt.Errorf("no history store configured (set history.path)")
		}

		store, err := history.Open(cfg.HistoryPath)
		if err != nil {
			return err
		}
		defer store.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		entries, err := store.Recent(limit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No searches recorded.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "WHEN\tBACKEND\tRETURNED\tDURATION\tQUERY")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%d/%d\t%s\t%s\n",
				e.Timestamp.Format("2006-01-02 15:04:05"),
				e.BackendUsed, e.Returned, e.Requested,
				e.Duration.Round(time.Millisecond), e.Query)
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of entries to list")

	rootCmd.AddCommand(historyCmd)
}
