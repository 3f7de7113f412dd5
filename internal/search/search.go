// Package search discovers candidate profile URLs via a public search engine.
package search

import (
	"fmt"
	"strings"

	"github.com/jonathan/social-scout/internal/query"
)

// Candidate is a discovered profile URL, not yet confirmed fetchable.
type Candidate struct {
	Platform query.Platform
	URL      string
	Username string
	// Query records which search term surfaced this candidate.
	Query string
}

// Key identifies a candidate for deduplication across queries. Usernames
// are case-insensitive, so case variants share a key.
func (c Candidate) Key() string {
	return string(c.Platform) + "/" + strings.ToLower(c.Username)
}

// DiscoveryError represents a failed discovery attempt for one query.
// The pipeline logs it and moves on to the next query.
type DiscoveryError struct {
	Query   string
	Message string
	Cause   error
}

func (e *DiscoveryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("discovery failed for %q: %s: %v", e.Query, e.Message, e.Cause)
	}
	return fmt.Sprintf("discovery failed for %q: %s", e.Query, e.Message)
}

func (e *DiscoveryError) Unwrap() error {
	return e.Cause
}
