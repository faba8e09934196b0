// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// FormatTable writes a response as a human-readable table to w.
func FormatTable(resp Response, w io.Writer) {
	if len(resp.Results) == 0 {
		fmt.Fprintf(w, "No results found (backend: %s).\n", resp.BackendUsed)
		return
	}

	fmt.Fprintf(w, "%-4s  %-56s  %-8s  %-6s  %s\n",
		"Rank", "Title", "Tier", "Score", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for i, r := range resp.Results {
		title := r.Title
		if len(title) > 56 {
			title = title[:53] + "..."
		}
		tier := ""
		if r.Quality != nil {
			tier = string(r.Quality.Tier)
		}
		fmt.Fprintf(w, "%-4d  %-56s  %-8s  %-6.2f  %s\n",
			i+1, title, tier, r.RelevanceScore, r.Source)
		fmt.Fprintf(w, "      %s\n", r.URL)
	}

	fmt.Fprintf(w, "\n%d results via %s\n", resp.TotalResults, resp.BackendUsed)
}

// FormatJSON writes a response as indented JSON to w.
func FormatJSON(resp Response, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
