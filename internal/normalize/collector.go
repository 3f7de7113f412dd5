// Package normalize accumulates fetched profile records and tracks the
// union of columns seen across them.
package normalize

import (
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/social-scout/internal/profile"
)

// Collector owns the result set for a run: rows in insertion order plus the
// growing column union in first-seen order. Values are never renamed or
// coerced; normalization only tracks the superset of columns.
type Collector struct {
	rows    []profile.Record
	columns []string
	seen    map[string]bool
	keys    map[string]bool
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{seen: make(map[string]bool), keys: make(map[string]bool)}
}

// Add appends a record and registers its columns. Records missing the
// required platform or username are dropped with a warning and false is
// returned. A record whose (platform, username) pair was already collected
// is dropped too: fetchers canonicalize usernames, so two discovered
// handles can resolve to one profile.
func (c *Collector) Add(rec profile.Record) bool {
	if rec[profile.FieldPlatform] == "" || rec[profile.FieldUsername] == "" {
		logrus.Warnf("dropping malformed record (missing platform/username): %v", rec)
		return false
	}

	key := rec[profile.FieldPlatform] + "/" + strings.ToLower(rec[profile.FieldUsername])
	if c.keys[key] {
		logrus.Debugf("dropping duplicate record for %s", key)
		return false
	}
	c.keys[key] = true

	c.rows = append(c.rows, rec)

	// Required columns register first so the header always leads with
	// them. The remaining keys of each record register in sorted order:
	// a record is a mapping with no order of its own, and sorting keeps
	// the header deterministic across identical runs.
	c.register(profile.FieldPlatform)
	c.register(profile.FieldUsername)
	c.register(profile.FieldURL)

	rest := make([]string, 0, len(rec))
	for key := range rec {
		if key != profile.FieldPlatform && key != profile.FieldUsername && key != profile.FieldURL {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		c.register(key)
	}

	return true
}

func (c *Collector) register(column string) {
	if !c.seen[column] {
		c.seen[column] = true
		c.columns = append(c.columns, column)
	}
}

// Rows returns the accumulated records in insertion order.
func (c *Collector) Rows() []profile.Record {
	return c.rows
}

// Columns returns the column union in first-seen order.
func (c *Collector) Columns() []string {
	return c.columns
}

// Len returns the number of accumulated rows.
func (c *Collector) Len() int {
	return len(c.rows)
}
