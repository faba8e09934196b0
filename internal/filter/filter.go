// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filter applies a caller-supplied SearchFilters specification to a
// batch of normalized results. The pass is pure and order-preserving:
// enabled dimensions are evaluated independently and conjunctively, and a
// disabled dimension constrains nothing. Optional result fields that are
// absent pass by default; FreeAccessOnly is the one dimension that requires
// the field to be present.
package filter

import (
	"net/url"
	"strings"

	"github.com/pdiddy/scholar-search/internal/classify"
	"github.com/pdiddy/scholar-search/pkg/types"
)

// academicSources are backend/publisher labels that identify a result as
// coming from an academic repository even when its URL alone does not.
var academicSources = []string{
	"cnki", "wanfang", "arxiv", "openalex", "semantic_scholar",
	"pubmed", "jstor", "crossref", "google_scholar",
}

// peerReviewIndicators are terms in a title or snippet that suggest the
// document went through editorial or peer review.
var peerReviewIndicators = []string{
	"journal", "proceedings", "doi:", "peer-reviewed", "peer reviewed",
	"conference on", "transactions on", "volume", "issue",
}

// Apply filters results against every enabled dimension of filters. The
// returned slice preserves relative order; applying the same filters twice
// is a no-op the second time.
func Apply(results []types.SearchResult, filters types.SearchFilters, classifier *classify.Classifier) []types.SearchResult {
	if filters.IsZero() {
		return results
	}

	out := make([]types.SearchResult, 0, len(results))
	for _, r := range results {
		if passes(r, filters, classifier) {
			out = append(out, r)
		}
	}
	return out
}

func passes(r types.SearchResult, f types.SearchFilters, classifier *classify.Classifier) bool {
	host := classify.Hostname(r.URL)

	if len(f.IncludeDomains) > 0 && !hostMatchesAny(host, f.IncludeDomains) {
		return false
	}
	if len(f.ExcludeDomains) > 0 && hostMatchesAny(host, f.ExcludeDomains) {
		return false
	}
	if len(f.FileTypes) > 0 && !fileTypeMatches(r.URL, f.FileTypes) {
		return false
	}
	if f.AcademicOnly && !isAcademic(r, classifier) {
		return false
	}
	if f.FreeAccessOnly && r.AccessType != types.AccessOpen {
		return false
	}
	if f.PeerReviewedOnly && !isPeerReviewed(r, classifier) {
		return false
	}
	if f.MinimumCitations > 0 && r.CitationCount != nil && *r.CitationCount < f.MinimumCitations {
		return false
	}
	if f.MinimumRelevanceScore > 0 && r.RelevanceScore < f.MinimumRelevanceScore {
		return false
	}
	if len(f.Languages) > 0 && r.Language != "" && !containsFold(f.Languages, r.Language) {
		return false
	}
	if !f.Dates.IsZero() && !r.PublishedDate.IsZero() {
		if !f.Dates.From.IsZero() && r.PublishedDate.Before(f.Dates.From) {
			return false
		}
		if !f.Dates.To.IsZero() && r.PublishedDate.After(f.Dates.To) {
			return false
		}
	}
	if len(f.ContentTypes) > 0 && r.ContentType != "" && !containsContentType(f.ContentTypes, r.ContentType) {
		return false
	}
	return true
}

// isAcademic reports whether the result comes from an academic domain or
// carries a known academic-repository source label.
func isAcademic(r types.SearchResult, classifier *classify.Classifier) bool {
	if classifier != nil && classifier.IsAcademic(r.URL) {
		return true
	}
	src := strings.ToLower(r.Source)
	for _, label := range academicSources {
		if src == label {
			return true
		}
	}
	return false
}

// isPeerReviewed applies the peer-review heuristic: indicator terms in the
// title or snippet, a DOI, or passing the academic test.
func isPeerReviewed(r types.SearchResult, classifier *classify.Classifier) bool {
	if isAcademic(r, classifier) {
		return true
	}
	if r.DOI != "" {
		return true
	}
	text := strings.ToLower(r.Title + " " + r.Snippet)
	for _, term := range peerReviewIndicators {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

func hostMatchesAny(host string, domains []string) bool {
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" && strings.Contains(host, d) {
			return true
		}
	}
	return false
}

func fileTypeMatches(rawURL string, fileTypes []string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	path := strings.ToLower(u.Path)
	for _, ft := range fileTypes {
		ft = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ft), "."))
		if ft != "" && strings.HasSuffix(path, "."+ft) {
			return true
		}
	}
	return false
}

func containsFold(haystack []string, needle string) bool {
	for _, h := range haystack {
		if strings.EqualFold(strings.TrimSpace(h), needle) {
			return true
		}
	}
	return false
}

func containsContentType(haystack []types.ContentType, needle types.ContentType) bool {
	for _, h := range haystack {
		if h == needle {
			return true
		}
	}
	return false
}
