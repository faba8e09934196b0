package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/scholar-search/pkg/types"
)

func testCfg() types.ProviderConfig {
	return types.ProviderConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "test/0.1",
		},
		MaxResults: 20,
	}
}

// --- normalization ---

func TestFinalizeDropsInvalidURLs(t *testing.T) {
	results := []types.SearchResult{
		{Title: "Good", URL: "https://arxiv.org/abs/1"},
		{Title: "No scheme", URL: "arxiv.org/abs/2"},
		{Title: "Garbage", URL: "not a url"},
		{Title: "Empty", URL: ""},
		{Title: "Also good", URL: "http://example.org/x"},
	}

	out := finalize(results, testCfg())
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
	if out[0].Title != "Good" || out[1].Title != "Also good" {
		t.Errorf("relative order not preserved: %v", out)
	}
}

func TestFinalizeCapsAtCeiling(t *testing.T) {
	var results []types.SearchResult
	for i := 0; i < 50; i++ {
		results = append(results, types.SearchResult{URL: fmt.Sprintf("https://example.org/%d", i)})
	}

	cfg := testCfg()
	cfg.MaxResults = 100 // above the absolute ceiling
	out := finalize(results, cfg)
	if len(out) != types.MaxResultsCeiling {
		t.Errorf("len(out) = %d, want ceiling %d", len(out), types.MaxResultsCeiling)
	}

	cfg.MaxResults = 3
	out = finalize(results, cfg)
	if len(out) != 3 {
		t.Errorf("len(out) = %d, want 3", len(out))
	}
}

func TestFinalizeStampsLanguage(t *testing.T) {
	cfg := testCfg()
	cfg.Language = "en"
	results := []types.SearchResult{
		{URL: "https://example.org/a"},
		{URL: "https://example.org/b", Language: "zh"},
	}

	out := finalize(results, cfg)
	if out[0].Language != "en" {
		t.Errorf("Language = %q, want stamped %q", out[0].Language, "en")
	}
	if out[1].Language != "zh" {
		t.Errorf("native language overwritten: %q", out[1].Language)
	}
}

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain text", "plain text"},
		{"with <b>bold</b> term", "with bold term"},
		{"<em>AI</em> in <strong>education</strong>", "AI in education"},
		{"  padded  ", "padded"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := stripMarkup(tt.input); got != tt.want {
				t.Errorf("stripMarkup(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPositionScore(t *testing.T) {
	if got := positionScore(0, 1); got != 1.0 {
		t.Errorf("single result score = %f, want 1.0", got)
	}
	if got := positionScore(0, 10); got != 1.0 {
		t.Errorf("first of many score = %f, want 1.0", got)
	}
	last := positionScore(9, 10)
	if last < 0.09 || last > 0.11 {
		t.Errorf("last of many score = %f, want ~0.1", last)
	}
}

// --- native adapter ---

const sampleNativeJSON = `{
  "sources": [
    {"title": "AI in Education Review", "url": "https://www.nature.com/articles/x1", "snippet": "A systematic review.", "published_date": "2024-03-01", "score": 0.97},
    {"title": "Classroom LLMs", "url": "https://www.example.org/post", "snippet": "Weblog musings.", "score": 0.41}
  ]
}`

func TestNativeAdapterExecute(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer key123" {
			t.Errorf("Authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, sampleNativeJSON)
	}))
	defer ts.Close()

	old := nativeAPIBase
	nativeAPIBase = ts.URL
	defer func() { nativeAPIBase = old }()

	a := &NativeAdapter{Client: ts.Client(), APIKey: "key123"}
	results, err := a.Execute(context.Background(), "AI in education", testCfg())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].Source != Native {
		t.Errorf("Source = %q, want %q", results[0].Source, Native)
	}
	if results[0].RelevanceScore != 0.97 {
		t.Errorf("RelevanceScore = %f, want backend-reported 0.97", results[0].RelevanceScore)
	}
	if results[0].PublishedDate.IsZero() {
		t.Error("PublishedDate should be parsed")
	}
}

func TestNativeAdapterMissingKey(t *testing.T) {
	a := &NativeAdapter{Client: http.DefaultClient}
	_, err := a.Execute(context.Background(), "query", testCfg())
	if err == nil || !strings.Contains(err.Error(), "missing API key") {
		t.Errorf("expected missing-key error, got %v", err)
	}
}

func TestNativeAdapterHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusBadGateway)
	}))
	defer ts.Close()

	old := nativeAPIBase
	nativeAPIBase = ts.URL
	defer func() { nativeAPIBase = old }()

	a := &NativeAdapter{Client: ts.Client(), APIKey: "key123"}
	_, err := a.Execute(context.Background(), "query", testCfg())
	if err == nil || !strings.Contains(err.Error(), "HTTP 502") {
		t.Errorf("expected HTTP 502 error, got %v", err)
	}
}

// --- CNKI adapter ---

const sampleCNKIXML = `<?xml version="1.0" encoding="UTF-8"?>
<response>
  <records>
    <record>
      <title>人工智能在教育中的应用</title>
      <link>https://www.cnki.net/kcms/detail/1001</link>
      <abstract>本文综述了人工智能在教育领域的应用。</abstract>
      <author>张伟</author>
      <doi>10.1234/cnki.1001</doi>
      <pubdate>2023-06-15</pubdate>
      <cited>42</cited>
    </record>
    <record>
      <title>机器学习教学实践</title>
      <link>https://www.cnki.net/kcms/detail/1002</link>
      <abstract>教学实践报告。</abstract>
      <author>李娜</author>
      <pubdate>2022-01-10</pubdate>
      <cited>0</cited>
    </record>
  </records>
</response>`

func TestCNKIAdapterExecute(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		fmt.Fprint(w, sampleCNKIXML)
	}))
	defer ts.Close()

	old := cnkiAPIBase
	cnkiAPIBase = ts.URL
	defer func() { cnkiAPIBase = old }()

	a := &CNKIAdapter{Client: ts.Client()}
	results, err := a.Execute(context.Background(), "人工智能 教育", testCfg())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}

	r := results[0]
	if r.Source != CNKI {
		t.Errorf("Source = %q, want %q", r.Source, CNKI)
	}
	if r.DOI != "10.1234/cnki.1001" {
		t.Errorf("DOI = %q", r.DOI)
	}
	if r.CitationCount == nil || *r.CitationCount != 42 {
		t.Errorf("CitationCount = %v, want 42", r.CitationCount)
	}
	if r.Language != "zh" {
		t.Errorf("Language = %q, want zh", r.Language)
	}
	if r.ContentType != types.ContentPaper {
		t.Errorf("ContentType = %q, want paper", r.ContentType)
	}
	// Zero cited count means no report, not zero citations.
	if results[1].CitationCount != nil {
		t.Errorf("CitationCount = %v, want nil for unreported", results[1].CitationCount)
	}
}

// --- Wanfang adapter ---

const sampleWanfangJSON = `{
  "total": 1,
  "papers": [
    {
      "title": "深度学习综述",
      "url": "https://www.wanfangdata.com.cn/paper/123",
      "abstract": "综述文章。",
      "authors": ["王芳", "刘洋"],
      "doi": "10.5678/wf.123",
      "publishDate": "2024-02-20",
      "citedCount": 17,
      "openAccess": true
    }
  ]
}`

func TestWanfangAdapterExecute(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, sampleWanfangJSON)
	}))
	defer ts.Close()

	old := wanfangAPIBase
	wanfangAPIBase = ts.URL
	defer func() { wanfangAPIBase = old }()

	a := &WanfangAdapter{Client: ts.Client()}
	results, err := a.Execute(context.Background(), "深度学习", testCfg())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}

	r := results[0]
	if r.Author != "王芳" {
		t.Errorf("Author = %q, want first listed author", r.Author)
	}
	if r.AccessType != types.AccessOpen {
		t.Errorf("AccessType = %q, want open", r.AccessType)
	}
	if r.CitationCount == nil || *r.CitationCount != 17 {
		t.Errorf("CitationCount = %v, want 17", r.CitationCount)
	}
}

// --- metasearch adapter ---

const sampleMetasearchJSON = `{
  "query": "AI in education",
  "results": [
    {"title": "AI in Education", "url": "https://www.brookings.edu/ai-education.pdf", "content": "The role of <b>AI</b> in modern classrooms."},
    {"title": "Bad entry", "url": "not a url", "content": "dropped"},
    {"title": "EdTech roundup", "url": "https://news.example.com/edtech", "content": "Weekly roundup.", "thumbnail": "https://news.example.com/t.png"}
  ]
}`

func TestMetasearchAdapterExecute(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("format"); got != "json" {
			t.Errorf("format = %q, want json", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, sampleMetasearchJSON)
	}))
	defer ts.Close()

	old := metasearchAPIBase
	metasearchAPIBase = ts.URL
	defer func() { metasearchAPIBase = old }()

	a := &MetasearchAdapter{Client: ts.Client()}
	results, err := a.Execute(context.Background(), "AI in education", testCfg())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2 (invalid URL dropped)", len(results))
	}
	if results[0].Snippet != "The role of AI in modern classrooms." {
		t.Errorf("Snippet = %q, markup should be stripped", results[0].Snippet)
	}
	if results[0].ContentType != types.ContentPDF {
		t.Errorf("ContentType = %q, want pdf for .pdf path", results[0].ContentType)
	}
	if results[1].ThumbnailURL == "" {
		t.Error("ThumbnailURL should be carried through")
	}
}

// --- simulated adapter ---

func TestSimulatedAdapterDeterminism(t *testing.T) {
	a := &SimulatedAdapter{}
	cfg := testCfg()
	cfg.MaxResults = 5

	first, err := a.Execute(context.Background(), "AI in education", cfg)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	second, err := a.Execute(context.Background(), "AI in education", cfg)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(first) != 5 {
		t.Fatalf("len(first) = %d, want 5", len(first))
	}
	for i := range first {
		if first[i].URL != second[i].URL || first[i].Title != second[i].Title {
			t.Errorf("result %d differs between identical queries", i)
		}
		if first[i].Source != Simulated {
			t.Errorf("Source = %q, want %q", first[i].Source, Simulated)
		}
	}

	other, err := a.Execute(context.Background(), "quantum computing", cfg)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if other[0].URL == first[0].URL {
		t.Error("distinct queries should fabricate distinct results")
	}
}

func TestSimulatedAdapterEmptyQuery(t *testing.T) {
	a := &SimulatedAdapter{}
	if _, err := a.Execute(context.Background(), "   ", testCfg()); err == nil {
		t.Error("empty query should error")
	}
}

// --- registry ---

func TestRegistry(t *testing.T) {
	r := make(Registry)
	r.Register(&SimulatedAdapter{})

	if _, ok := r.Lookup(Simulated); !ok {
		t.Error("registered adapter not found")
	}
	if _, ok := r.Lookup("nonexistent"); ok {
		t.Error("unregistered backend should not resolve")
	}
}
