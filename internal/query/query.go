// Package query builds per-platform search queries from business names or
// city+keyword combinations.
package query

import (
	"fmt"
	"strings"
)

// Platform identifies a supported social platform.
type Platform string

const (
	// PlatformFacebook is the Facebook Pages platform
	PlatformFacebook Platform = "facebook"
	// PlatformInstagram is the Instagram business-profile platform
	PlatformInstagram Platform = "instagram"
)

// Domain returns the platform's web domain.
func (p Platform) Domain() string {
	switch p {
	case PlatformFacebook:
		return "facebook.com"
	case PlatformInstagram:
		return "instagram.com"
	}
	return ""
}

// Platforms lists the supported platforms in discovery order.
// Instagram first, matching the conservative ordering of the pipeline.
func Platforms() []Platform {
	return []Platform{PlatformInstagram, PlatformFacebook}
}

// DefaultCityKeywords are the hospitality keywords combined with a city name
// when no custom keyword list is given.
var DefaultCityKeywords = []string{
	"restaurant",
	"bar",
	"cafe",
	"pub",
	"bistro",
	"grill",
	"steakhouse",
	"brewery",
	"hotel",
}

// Query is a single search-engine query biased toward one platform's domain.
type Query struct {
	Platform Platform
	Term     string
}

// String returns the full query string handed to the search engine.
func (q Query) String() string {
	return q.Term
}

// ForBusiness builds one query per platform for a business name.
// A blank name yields queries with empty terms, which the search client
// resolves to zero results rather than an error.
func ForBusiness(name string) []Query {
	name = strings.TrimSpace(name)

	queries := make([]Query, 0, 2)
	for _, p := range Platforms() {
		term := ""
		if name != "" {
			term = fmt.Sprintf("%s %s site:%s", name, p, p.Domain())
		}
		queries = append(queries, Query{Platform: p, Term: term})
	}
	return queries
}

// ForCity builds one query per platform per keyword, combining each keyword
// with the city name. An empty keyword list falls back to
// DefaultCityKeywords.
func ForCity(city string, keywords []string) []Query {
	city = strings.TrimSpace(city)
	if len(keywords) == 0 {
		keywords = DefaultCityKeywords
	}

	queries := make([]Query, 0, len(keywords)*2)
	for _, p := range Platforms() {
		for _, kw := range keywords {
			kw = strings.TrimSpace(kw)
			term := ""
			if city != "" && kw != "" {
				term = fmt.Sprintf("%s %s %s site:%s", kw, city, p, p.Domain())
			}
			queries = append(queries, Query{Platform: p, Term: term})
		}
	}
	return queries
}
