// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify maps URLs to source-credibility tiers using curated
// domain lists. Classification is a pure function of the hostname: the
// lists are fixed at construction, so identical hostnames always yield
// identical tiers within one process.
package classify

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pdiddy/scholar-search/pkg/types"
)

// Default curated lists. Matching is substring containment on the
// lower-cased hostname, so entries like ".edu" also cover country variants
// such as ".edu.cn". Order within a list does not matter; list priority
// does (exclusion beats everything).

// defaultExcluded covers social media, entertainment and video/audio
// platforms, discussion forums, the general encyclopedia, e-commerce, and
// personal-blog platforms. These are never citable in academic writing.
var defaultExcluded = []string{
	"facebook.com", "twitter.com", "x.com", "instagram.com", "tiktok.com",
	"douyin.com", "weibo.com", "youtube.com", "bilibili.com", "twitch.tv",
	"spotify.com", "soundcloud.com", "netflix.com",
	"reddit.com", "quora.com", "zhihu.com", "tieba.baidu.com", "4chan.org",
	"wikipedia.org",
	"amazon.com", "taobao.com", "jd.com", "ebay.com", "aliexpress.com",
	"pinterest.com", "medium.com", "blogspot.com", "wordpress.com",
	"tumblr.com", "substack.com",
}

// defaultAcademic covers academic domain suffixes, named repositories, and
// major scholarly publishers and indexing services.
var defaultAcademic = []string{
	".edu", ".ac.uk", ".ac.jp", ".edu.cn", ".edu.au",
	"arxiv.org", "biorxiv.org", "ssrn.com", "pubmed.ncbi.nlm.nih.gov",
	"ncbi.nlm.nih.gov", "scholar.google", "semanticscholar.org",
	"openalex.org", "jstor.org", "doi.org", "core.ac.uk",
	"springer.com", "link.springer.com", "sciencedirect.com", "nature.com",
	"science.org", "wiley.com", "tandfonline.com", "sagepub.com",
	"ieee.org", "ieeexplore.ieee.org", "acm.org", "dl.acm.org",
	"cambridge.org", "oup.com", "academic.oup.com", "elsevier.com",
	"cnki.net", "wanfangdata.com.cn", "cqvip.com",
}

// defaultReputable covers government domain suffixes, national statistics
// agencies, and a curated set of established news outlets.
var defaultReputable = []string{
	".gov", ".gov.uk", ".gov.cn", ".go.jp", ".int",
	"stats.gov.cn", "census.gov", "ons.gov.uk", "eurostat.ec.europa.eu",
	"oecd.org", "worldbank.org", "imf.org", "un.org", "who.int",
	"reuters.com", "apnews.com", "bbc.co.uk", "bbc.com", "economist.com",
	"ft.com", "nytimes.com", "washingtonpost.com", "theguardian.com",
	"bloomberg.com", "wsj.com", "xinhuanet.com", "nikkei.com",
}

// Lists holds the curated classification lists. Empty slices fall back to
// the built-in defaults.
type Lists struct {
	Excluded  []string
	Academic  []string
	Reputable []string
}

// Classifier assigns credibility tiers to hostnames. Construct with New and
// treat as immutable; it is safe for concurrent use.
type Classifier struct {
	excluded  []string
	academic  []string
	reputable []string
}

// New builds a Classifier from cfg, substituting the built-in defaults for
// any empty list.
func New(cfg types.ClassifierConfig) *Classifier {
	c := &Classifier{
		excluded:  normalizeList(cfg.Excluded, defaultExcluded),
		academic:  normalizeList(cfg.Academic, defaultAcademic),
		reputable: normalizeList(cfg.Reputable, defaultReputable),
	}
	return c
}

func normalizeList(entries, fallback []string) []string {
	if len(entries) == 0 {
		entries = fallback
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			out = append(out, e)
		}
	}
	return out
}

// Classify maps a URL to its credibility tier. It never fails: a URL that
// does not parse, or has no hostname, classifies as excluded. Checks run in
// priority order and the first match wins; the exclusion list beats an
// academic match for the same hostname.
func (c *Classifier) Classify(rawURL string) types.DomainQuality {
	host := Hostname(rawURL)
	if host == "" {
		return types.DomainQuality{Tier: types.TierExcluded, Reasoning: "invalid URL"}
	}

	if entry, ok := match(host, c.excluded); ok {
		return types.DomainQuality{
			Tier:      types.TierExcluded,
			Reasoning: fmt.Sprintf("%s matches excluded source %s", host, entry),
		}
	}
	if entry, ok := match(host, c.academic); ok {
		return types.DomainQuality{
			Tier:      types.TierAcademic,
			Reasoning: fmt.Sprintf("%s matches academic source %s", host, entry),
		}
	}
	if entry, ok := match(host, c.reputable); ok {
		return types.DomainQuality{
			Tier:      types.TierReputable,
			Reasoning: fmt.Sprintf("%s matches reputable source %s", host, entry),
		}
	}
	return types.DomainQuality{
		Tier:      types.TierGeneral,
		Reasoning: fmt.Sprintf("%s not in any curated list", host),
	}
}

// IsAcademic reports whether the URL's hostname matches the academic list
// and is not excluded. Used by the result filter's academic-only pass.
func (c *Classifier) IsAcademic(rawURL string) bool {
	return c.Classify(rawURL).Tier == types.TierAcademic
}

// match reports whether host contains any curated entry.
func match(host string, entries []string) (string, bool) {
	for _, e := range entries {
		if strings.Contains(host, e) {
			return e, true
		}
	}
	return "", false
}

// Hostname extracts the lower-cased hostname from a raw URL. It returns ""
// for anything that is not a syntactically valid absolute URL.
func Hostname(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || !u.IsAbs() || u.Hostname() == "" {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
