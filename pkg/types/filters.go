// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// DateRange bounds publication dates. A zero From or To leaves that side
// unbounded.
type DateRange struct {
	From time.Time `json:"from,omitzero" yaml:"from,omitempty"`
	To   time.Time `json:"to,omitzero" yaml:"to,omitempty"`
}

// IsZero reports whether both bounds are unset.
func (r DateRange) IsZero() bool {
	return r.From.IsZero() && r.To.IsZero()
}

// SearchFilters is an optional result-shaping specification. An empty or
// zero-valued field means "no constraint on this dimension", never
// "exclude everything". Enabled fields are evaluated independently and
// conjunctively: a result must pass all of them.
type SearchFilters struct {
	// IncludeDomains keeps only results whose hostname matches one of the
	// listed domains.
	IncludeDomains []string `json:"include_domains,omitempty" yaml:"include_domains,omitempty"`

	// ExcludeDomains drops results whose hostname matches any listed domain.
	ExcludeDomains []string `json:"exclude_domains,omitempty" yaml:"exclude_domains,omitempty"`

	// FileTypes keeps only results whose URL path ends in one of the listed
	// extensions (e.g. "pdf").
	FileTypes []string `json:"file_types,omitempty" yaml:"file_types,omitempty"`

	// AcademicOnly keeps only results from academic domains or with a known
	// academic-repository source label.
	AcademicOnly bool `json:"academic_only,omitempty" yaml:"academic_only,omitempty"`

	// FreeAccessOnly keeps only results that declare open access. This is
	// the one filter where an absent field fails: a result that does not
	// declare open access cannot be guaranteed free.
	FreeAccessOnly bool `json:"free_access_only,omitempty" yaml:"free_access_only,omitempty"`

	// PeerReviewedOnly keeps results whose title or snippet carries
	// peer-review indicator terms, or that pass the academic test.
	PeerReviewedOnly bool `json:"peer_reviewed_only,omitempty" yaml:"peer_reviewed_only,omitempty"`

	// MinimumCitations drops results whose reported citation count is below
	// the threshold. Results without a reported count pass.
	MinimumCitations int `json:"minimum_citations,omitempty" yaml:"minimum_citations,omitempty"`

	// MinimumRelevanceScore drops results scoring below the threshold
	// (0.0–1.0).
	MinimumRelevanceScore float64 `json:"minimum_relevance_score,omitempty" yaml:"minimum_relevance_score,omitempty"`

	// Languages keeps only results in the listed ISO language codes.
	// Results without a language pass.
	Languages []string `json:"languages,omitempty" yaml:"languages,omitempty"`

	// Dates bounds the publication date. Results without a date pass.
	Dates DateRange `json:"dates,omitzero" yaml:"dates,omitempty"`

	// ContentTypes keeps only results of the listed content types. Results
	// without a content type pass.
	ContentTypes []ContentType `json:"content_types,omitempty" yaml:"content_types,omitempty"`
}

// IsZero reports whether no filter dimension is enabled.
func (f SearchFilters) IsZero() bool {
	return len(f.IncludeDomains) == 0 && len(f.ExcludeDomains) == 0 &&
		len(f.FileTypes) == 0 && !f.AcademicOnly && !f.FreeAccessOnly &&
		!f.PeerReviewedOnly && f.MinimumCitations == 0 &&
		f.MinimumRelevanceScore == 0 && len(f.Languages) == 0 &&
		f.Dates.IsZero() && len(f.ContentTypes) == 0
}
