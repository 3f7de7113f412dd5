// Package search - url.go normalizes discovered URLs and extracts profile
// usernames from them.
package search

import (
	"net/url"
	"strings"

	"github.com/jonathan/social-scout/internal/query"
)

// reservedSegments lists first path segments that are platform features
// rather than profile slugs. URLs starting with these are not candidates.
var reservedSegments = map[query.Platform]map[string]bool{
	query.PlatformFacebook: {
		"pages":       true,
		"people":      true,
		"public":      true,
		"groups":      true,
		"events":      true,
		"watch":       true,
		"marketplace": true,
		"share":       true,
		"story.php":   true,
		"profile.php": true,
		"hashtag":     true,
		"reel":        true,
		"login":       true,
		"help":        true,
		"policies":    true,
		"business":    true,
		"gaming":      true,
	},
	query.PlatformInstagram: {
		"p":         true,
		"explore":   true,
		"reel":      true,
		"reels":     true,
		"stories":   true,
		"accounts":  true,
		"tv":        true,
		"directory": true,
		"about":     true,
		"legal":     true,
	},
}

// NormalizeURL strips query string, fragment and trailing slash, keeping
// scheme://host/path with a lowercased host.
func NormalizeURL(raw string) (string, bool) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", false
	}
	host := strings.ToLower(parsed.Host)
	cleaned := parsed.Scheme + "://" + host + parsed.Path
	return strings.TrimRight(cleaned, "/"), true
}

// MatchesPlatform reports whether the URL's host belongs to the platform.
func MatchesPlatform(urlStr string, p query.Platform) bool {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Host)
	domain := p.Domain()
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// ExtractUsername returns the profile slug from a platform URL: the first
// path segment, unless it names a platform feature (posts, reels, search
// pages) instead of a profile. The slug is lowercased; profile URLs are
// case-insensitive on both platforms, so case variants are one profile.
func ExtractUsername(urlStr string, p query.Platform) string {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}

	var first string
	for _, seg := range strings.Split(parsed.Path, "/") {
		if seg != "" {
			first = seg
			break
		}
	}
	if first == "" {
		return ""
	}
	first = strings.ToLower(first)
	if reservedSegments[p][first] {
		return ""
	}
	return first
}
