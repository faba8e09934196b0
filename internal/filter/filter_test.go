package filter

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/scholar-search/internal/classify"
	"github.com/pdiddy/scholar-search/pkg/types"
)

func intp(n int) *int { return &n }

func testClassifier() *classify.Classifier {
	return classify.New(types.ClassifierConfig{})
}

func sampleResults() []types.SearchResult {
	return []types.SearchResult{
		{
			Title:          "Deep Learning in Higher Education",
			URL:            "https://cs.stanford.edu/papers/dl-he.pdf",
			Snippet:        "Published in the Journal of Educational Technology.",
			Source:         "metasearch",
			CitationCount:  intp(120),
			AccessType:     types.AccessOpen,
			ContentType:    types.ContentPDF,
			Language:       "en",
			PublishedDate:  time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC),
			RelevanceScore: 0.9,
		},
		{
			Title:          "My thoughts on AI tutors",
			URL:            "https://someblog.example.com/ai-tutors",
			Snippet:        "Hot takes from my weekend.",
			Source:         "metasearch",
			ContentType:    types.ContentWebsite,
			Language:       "en",
			RelevanceScore: 0.5,
		},
		{
			Title:          "人工智能教育应用研究",
			URL:            "https://www.cnki.net/kcms/detail/99",
			Source:         "cnki",
			DOI:            "10.1234/cnki.99",
			CitationCount:  intp(8),
			AccessType:     types.AccessSubscription,
			ContentType:    types.ContentPaper,
			Language:       "zh",
			PublishedDate:  time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
			RelevanceScore: 0.7,
		},
	}
}

func TestApplyNoFiltersIsIdentity(t *testing.T) {
	results := sampleResults()
	out := Apply(results, types.SearchFilters{}, testClassifier())
	if !reflect.DeepEqual(out, results) {
		t.Error("empty filters must not constrain anything")
	}
}

func TestApplyIdempotent(t *testing.T) {
	c := testClassifier()
	filters := types.SearchFilters{
		AcademicOnly:     true,
		MinimumCitations: 5,
		Languages:        []string{"en", "zh"},
	}

	once := Apply(sampleResults(), filters, c)
	twice := Apply(once, filters, c)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("filtering twice changed the batch: %v != %v", once, twice)
	}
}

func TestAcademicOnly(t *testing.T) {
	out := Apply(sampleResults(), types.SearchFilters{AcademicOnly: true}, testClassifier())
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
	// Passes via .edu hostname and via cnki source label respectively.
	if out[0].URL != "https://cs.stanford.edu/papers/dl-he.pdf" {
		t.Errorf("out[0] = %q", out[0].URL)
	}
	if out[1].Source != "cnki" {
		t.Errorf("out[1].Source = %q", out[1].Source)
	}
}

func TestAcademicOnlyBySourceLabelWithoutClassifier(t *testing.T) {
	results := []types.SearchResult{
		{URL: "https://mirror.example.com/paper/1", Source: "arxiv"},
		{URL: "https://mirror.example.com/page/2", Source: "metasearch"},
	}
	out := Apply(results, types.SearchFilters{AcademicOnly: true}, nil)
	if len(out) != 1 || out[0].Source != "arxiv" {
		t.Errorf("out = %v, want only the arxiv-labeled result", out)
	}
}

func TestPeerReviewedOnly(t *testing.T) {
	results := []types.SearchResult{
		{URL: "https://news.example.com/1", Title: "Proceedings of the 12th Workshop"},
		{URL: "https://news.example.com/2", Snippet: "see doi:10.1000/xyz for details"},
		{URL: "https://news.example.com/3", DOI: "10.1000/abc"},
		{URL: "https://news.example.com/4", Title: "Ten productivity hacks"},
	}
	out := Apply(results, types.SearchFilters{PeerReviewedOnly: true}, testClassifier())
	if len(out) != 3 {
		t.Errorf("len(out) = %d, want 3", len(out))
	}
}

func TestFreeAccessOnlyRequiresPresence(t *testing.T) {
	results := []types.SearchResult{
		{URL: "https://a.example.com/1", AccessType: types.AccessOpen},
		{URL: "https://a.example.com/2", AccessType: types.AccessSubscription},
		{URL: "https://a.example.com/3"}, // undeclared: cannot be guaranteed free
	}
	out := Apply(results, types.SearchFilters{FreeAccessOnly: true}, testClassifier())
	if len(out) != 1 || out[0].AccessType != types.AccessOpen {
		t.Errorf("out = %v, want only the open-access result", out)
	}
}

func TestMinimumCitationsMissingCountPasses(t *testing.T) {
	results := []types.SearchResult{
		{URL: "https://a.example.com/1", CitationCount: intp(3)},
		{URL: "https://a.example.com/2", CitationCount: intp(50)},
		{URL: "https://a.example.com/3"}, // no reported count
	}
	out := Apply(results, types.SearchFilters{MinimumCitations: 10}, testClassifier())
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
	if out[0].CitationCount == nil || *out[0].CitationCount != 50 {
		t.Errorf("out[0] should be the 50-citation result")
	}
	if out[1].CitationCount != nil {
		t.Errorf("missing citation count should pass")
	}
}

func TestDomainIncludeExclude(t *testing.T) {
	results := sampleResults()

	out := Apply(results, types.SearchFilters{IncludeDomains: []string{"stanford.edu"}}, testClassifier())
	if len(out) != 1 {
		t.Errorf("include: len(out) = %d, want 1", len(out))
	}

	out = Apply(results, types.SearchFilters{ExcludeDomains: []string{"cnki.net"}}, testClassifier())
	if len(out) != 2 {
		t.Errorf("exclude: len(out) = %d, want 2", len(out))
	}
}

func TestFileTypes(t *testing.T) {
	out := Apply(sampleResults(), types.SearchFilters{FileTypes: []string{"pdf"}}, testClassifier())
	if len(out) != 1 || out[0].ContentType != types.ContentPDF {
		t.Errorf("out = %v, want only the .pdf result", out)
	}
}

func TestDateRange(t *testing.T) {
	filters := types.SearchFilters{
		Dates: types.DateRange{
			From: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	out := Apply(sampleResults(), filters, testClassifier())
	// The 2023 paper passes, the 2021 paper fails, the dateless result passes.
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
	for _, r := range out {
		if !r.PublishedDate.IsZero() && r.PublishedDate.Year() < 2022 {
			t.Errorf("result from %d should have been filtered", r.PublishedDate.Year())
		}
	}
}

func TestMinimumRelevanceScore(t *testing.T) {
	out := Apply(sampleResults(), types.SearchFilters{MinimumRelevanceScore: 0.6}, testClassifier())
	if len(out) != 2 {
		t.Errorf("len(out) = %d, want 2", len(out))
	}
}

func TestLanguagesMissingLanguagePasses(t *testing.T) {
	results := []types.SearchResult{
		{URL: "https://a.example.com/1", Language: "en"},
		{URL: "https://a.example.com/2", Language: "de"},
		{URL: "https://a.example.com/3"},
	}
	out := Apply(results, types.SearchFilters{Languages: []string{"EN"}}, testClassifier())
	if len(out) != 2 {
		t.Errorf("len(out) = %d, want 2 (case-insensitive match plus missing)", len(out))
	}
}

func TestContentTypes(t *testing.T) {
	out := Apply(sampleResults(), types.SearchFilters{
		ContentTypes: []types.ContentType{types.ContentPaper},
	}, testClassifier())
	if len(out) != 1 || out[0].ContentType != types.ContentPaper {
		t.Errorf("out = %v, want only the paper", out)
	}
}

func TestFiltersAreConjunctive(t *testing.T) {
	filters := types.SearchFilters{
		AcademicOnly:     true,
		MinimumCitations: 50,
	}
	out := Apply(sampleResults(), filters, testClassifier())
	// Only the Stanford paper is both academic and above 50 citations.
	if len(out) != 1 || !strings.Contains(out[0].URL, "stanford") {
		t.Errorf("out = %v, want only the highly-cited academic result", out)
	}
}
