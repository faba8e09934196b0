// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the scholar-search engine:
// normalized search results, domain-credibility classifications, result
// filters, and per-call execution configuration.
package types

import "time"

// Tier is a source-credibility bucket assigned to a hostname.
type Tier string

const (
	// TierAcademic covers academic domains, repositories, and scholarly
	// publishers: the most citable sources.
	TierAcademic Tier = "tier1"

	// TierReputable covers government domains, national statistics
	// agencies, and established news outlets.
	TierReputable Tier = "tier2"

	// TierGeneral is the catch-all for organizational and unrecognized
	// hostnames.
	TierGeneral Tier = "tier3"

	// TierExcluded marks sources dropped unconditionally: social media,
	// entertainment platforms, forums, e-commerce, personal blogs, and
	// URLs that fail to parse.
	TierExcluded Tier = "excluded"
)

// AccessType describes how a source can be read.
type AccessType string

const (
	AccessOpen         AccessType = "open"
	AccessSubscription AccessType = "subscription"
	AccessRestricted   AccessType = "restricted"
)

// ContentType categorizes the kind of document a result points at.
type ContentType string

const (
	ContentArticle ContentType = "article"
	ContentPaper   ContentType = "paper"
	ContentBook    ContentType = "book"
	ContentWebsite ContentType = "website"
	ContentPDF     ContentType = "pdf"
	ContentVideo   ContentType = "video"
)

// SearchResult is one discovered document or page, normalized from whatever
// shape the originating backend returned. URL is the unique key within a
// batch and must be a syntactically valid absolute URL; results failing that
// are dropped during normalization, never surfaced as errors.
type SearchResult struct {
	// Title is the document title as reported by the backend.
	Title string `json:"title" yaml:"title"`

	// URL is the absolute URL of the document. Required.
	URL string `json:"url" yaml:"url"`

	// Snippet is a short excerpt or abstract, markup stripped.
	Snippet string `json:"snippet,omitempty" yaml:"snippet,omitempty"`

	// PublishedDate is the publication date, when the backend reports one.
	PublishedDate time.Time `json:"published_date,omitzero" yaml:"published_date,omitempty"`

	// Author is the primary author or byline.
	Author string `json:"author,omitempty" yaml:"author,omitempty"`

	// Source labels the backend or publisher that produced this result
	// (e.g. "cnki", "metasearch", "simulated").
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// DOI is the document's DOI, when known.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// CitationCount is the number of citations reported by the backend.
	// Nil when the backend does not track citations.
	CitationCount *int `json:"citation_count,omitempty" yaml:"citation_count,omitempty"`

	// AccessType reports whether the source is open, subscription, or
	// otherwise restricted. Empty when unknown.
	AccessType AccessType `json:"access_type,omitempty" yaml:"access_type,omitempty"`

	// ContentType categorizes the document. Empty when unknown.
	ContentType ContentType `json:"content_type,omitempty" yaml:"content_type,omitempty"`

	// Language is the ISO language code of the document, stamped from the
	// request when the backend does not report it natively.
	Language string `json:"language,omitempty" yaml:"language,omitempty"`

	// ThumbnailURL is an optional preview image URL.
	ThumbnailURL string `json:"thumbnail_url,omitempty" yaml:"thumbnail_url,omitempty"`

	// RelevanceScore is a value between 0.0 and 1.0; backends without a
	// native score derive it from result position.
	RelevanceScore float64 `json:"relevance_score" yaml:"relevance_score"`

	// Quality is the domain classification attached by the engine after
	// dispatch. Nil until classification runs.
	Quality *DomainQuality `json:"quality,omitempty" yaml:"quality,omitempty"`
}

// DomainQuality is the classification outcome for one URL. Reasoning is for
// debugging and audit output only; nothing downstream parses it.
type DomainQuality struct {
	Tier      Tier   `json:"tier" yaml:"tier"`
	Reasoning string `json:"reasoning" yaml:"reasoning"`
}
