// Package search - duckduckgo.go implements discovery against the
// DuckDuckGo HTML endpoint, which serves results without JavaScript.
package search

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"github.com/jonathan/social-scout/internal/fetch"
	"github.com/jonathan/social-scout/internal/query"
)

const (
	// DefaultBaseURL is the DuckDuckGo HTML search endpoint.
	DefaultBaseURL = "https://html.duckduckgo.com/html/"
	// defaultPageSize is the result count DuckDuckGo serves per HTML page.
	defaultPageSize = 30
	// defaultMaxPages caps pagination per query. Deep pages are mostly
	// noise for profile discovery and invite rate-limiting.
	defaultMaxPages = 3
)

// Client issues web searches and extracts candidate profile URLs from the
// ranked results.
type Client struct {
	BaseURL  string
	PageSize int
	MaxPages int

	opts *fetch.Options
}

// NewClient creates a search client. A nil opts uses fetch defaults.
func NewClient(opts *fetch.Options) *Client {
	if opts == nil {
		opts = fetch.DefaultOptions()
	}
	return &Client{
		BaseURL:  DefaultBaseURL,
		PageSize: defaultPageSize,
		MaxPages: defaultMaxPages,
		opts:     opts,
	}
}

// Discover runs one query and returns up to maxResults candidates for the
// query's platform, deduplicated by username. A degenerate (empty) query
// yields an empty slice, not an error. Zero-result pages are not failures
// either; only transport and response-shape problems produce a
// DiscoveryError.
func (c *Client) Discover(ctx context.Context, q query.Query, maxResults int) ([]Candidate, error) {
	if strings.TrimSpace(q.Term) == "" || maxResults <= 0 {
		return nil, nil
	}

	candidates := make([]Candidate, 0, maxResults)
	seen := make(map[string]bool)

	for page := 0; page < c.MaxPages && len(candidates) < maxResults; page++ {
		links, err := c.fetchResultLinks(ctx, q.Term, page*c.PageSize)
		if err != nil {
			return nil, err
		}
		if len(links) == 0 {
			break
		}

		for _, link := range links {
			if len(candidates) >= maxResults {
				break
			}
			cand, ok := c.toCandidate(link, q)
			if !ok || seen[cand.Key()] {
				continue
			}
			seen[cand.Key()] = true
			candidates = append(candidates, cand)
		}
	}

	logrus.Debugf("query %q: %d candidates", q.Term, len(candidates))
	return candidates, nil
}

// fetchResultLinks retrieves one result page and returns the raw hrefs of
// the ranked results.
func (c *Client) fetchResultLinks(ctx context.Context, term string, offset int) ([]string, error) {
	params := url.Values{}
	params.Set("q", term)
	if offset > 0 {
		params.Set("s", fmt.Sprintf("%d", offset))
	}
	searchURL := c.BaseURL + "?" + params.Encode()

	result, err := fetch.URL(ctx, searchURL, c.opts)
	if err != nil {
		return nil, &DiscoveryError{Query: term, Message: "search request failed", Cause: err}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(result.HTML))
	if err != nil {
		return nil, &DiscoveryError{Query: term, Message: "unparseable search response", Cause: err}
	}

	var links []string
	doc.Find("a.result__a").Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok && href != "" {
			links = append(links, href)
		}
	})
	return links, nil
}

// toCandidate resolves a raw result href into a deduplicable candidate for
// the query's platform. Redirect wrappers are unwrapped, non-platform hosts
// and non-profile paths rejected.
func (c *Client) toCandidate(href string, q query.Query) (Candidate, bool) {
	resolved := unwrapRedirect(href)

	normalized, ok := NormalizeURL(resolved)
	if !ok || !MatchesPlatform(normalized, q.Platform) {
		return Candidate{}, false
	}

	username := ExtractUsername(normalized, q.Platform)
	if username == "" {
		return Candidate{}, false
	}

	return Candidate{
		Platform: q.Platform,
		URL:      normalized,
		Username: username,
		Query:    q.Term,
	}, true
}

// unwrapRedirect resolves DuckDuckGo's /l/?uddg=... result wrapper to the
// destination URL. The wrapper href comes in absolute, protocol-relative
// and host-relative forms. Non-wrapper hrefs pass through unchanged.
func unwrapRedirect(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return href
	}
	wrapperHost := parsed.Host == "" || strings.Contains(parsed.Host, "duckduckgo.com")
	if wrapperHost && parsed.Path == "/l/" {
		if dest := parsed.Query().Get("uddg"); dest != "" {
			return dest
		}
	}
	return href
}
