// Package pipeline orchestrates one discovery-and-merge run:
// discover -> fetch -> normalize -> write, strictly sequential.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jonathan/social-scout/internal/config"
	"github.com/jonathan/social-scout/internal/export"
	"github.com/jonathan/social-scout/internal/fetch"
	"github.com/jonathan/social-scout/internal/normalize"
	"github.com/jonathan/social-scout/internal/profile"
	"github.com/jonathan/social-scout/internal/query"
	"github.com/jonathan/social-scout/internal/search"
)

// Discoverer finds candidate profile URLs for a query.
type Discoverer interface {
	Discover(ctx context.Context, q query.Query, maxResults int) ([]search.Candidate, error)
}

// Fetcher retrieves profile metadata for a discovered handle.
type Fetcher interface {
	Platform() query.Platform
	Fetch(ctx context.Context, handle string) (profile.Record, error)
}

// Summary reports the outcome of a run: how many candidates were
// discovered, fetched and failed. The CSV contains only successes.
type Summary struct {
	RunID         string
	Discovered    int
	Fetched       int
	Failed        int
	QueriesFailed int
	Output        string
}

// Runner executes the pipeline. All per-item failures are caught at the
// item boundary; only argument and output-path problems abort a run.
type Runner struct {
	cfg      *config.Config
	search   Discoverer
	fetchers map[query.Platform]Fetcher
}

// New creates a Runner with explicit collaborators. Tests inject stubs here.
func New(cfg *config.Config, discoverer Discoverer, fetchers map[query.Platform]Fetcher) *Runner {
	return &Runner{cfg: cfg, search: discoverer, fetchers: fetchers}
}

// FromConfig wires a Runner with the real search client and platform
// fetchers. Instagram login failures are non-fatal: the run continues
// anonymously, matching the degraded-but-working contract of the fetchers.
func FromConfig(ctx context.Context, cfg *config.Config) (*Runner, error) {
	opts := fetch.DefaultOptions()
	opts.ProxyURL = cfg.ProxyURL

	fbAuth := cfg.Facebook()
	fb, err := profile.NewFacebookFetcher(fbAuth.CookiesFile, opts)
	if err != nil {
		return nil, err
	}
	fb.UseBrowser = cfg.UseBrowser

	ig, err := profile.NewInstagramFetcher(opts)
	if err != nil {
		return nil, err
	}
	ig.UseBrowser = cfg.UseBrowser

	igAuth := cfg.Instagram()
	if err := ig.LoadSession(igAuth.SessionFile); err != nil {
		logrus.Warnf("ignoring unreadable Instagram session: %v", err)
	}
	if igAuth.HasCredentials() {
		if err := ig.Login(ctx, igAuth.Username, igAuth.Password); err != nil {
			logrus.Warnf("Instagram login failed, continuing anonymously: %v", err)
		} else if err := ig.SaveSession(igAuth.SessionFile); err != nil {
			logrus.Warnf("failed to persist Instagram session: %v", err)
		}
	}

	fetchers := map[query.Platform]Fetcher{
		query.PlatformFacebook:  fb,
		query.PlatformInstagram: ig,
	}
	return New(cfg, search.NewClient(opts), fetchers), nil
}

// Run executes the queries in order, fetching each deduplicated candidate
// at most once per run, and writes the collected rows to the configured
// output. Returns the run summary; the only fatal error after startup is a
// filesystem failure on the output path.
func (r *Runner) Run(ctx context.Context, queries []query.Query, maxPerQuery int) (*Summary, error) {
	summary := &Summary{
		RunID:  uuid.NewString(),
		Output: r.cfg.Output,
	}
	log := logrus.WithField("run_id", summary.RunID)

	if !r.cfg.HasAnyCredentials() {
		log.Warn("no Facebook cookies or Instagram credentials supplied; expect partial data and earlier rate limits")
	}

	collector := normalize.NewCollector()
	fetched := make(map[string]bool)
	delay := time.Duration(r.cfg.DelaySeconds) * time.Second
	first := true

	for _, q := range queries {
		candidates, err := r.search.Discover(ctx, q, maxPerQuery)
		if err != nil {
			summary.QueriesFailed++
			log.Warnf("skipping query: %v", err)
			continue
		}

		for _, cand := range candidates {
			if fetched[cand.Key()] {
				continue
			}
			fetched[cand.Key()] = true
			summary.Discovered++

			fetcher, ok := r.fetchers[cand.Platform]
			if !ok {
				summary.Failed++
				log.Warnf("no fetcher for platform %s", cand.Platform)
				continue
			}

			// The delay spaces fetch requests, so it runs between
			// fetches rather than after the last one.
			if !first && delay > 0 {
				select {
				case <-time.After(delay):
				case <-ctx.Done():
					return summary, ctx.Err()
				}
			}
			first = false

			rec, err := fetcher.Fetch(ctx, cand.Username)
			if err != nil {
				summary.Failed++
				if profile.IsRateLimited(err) {
					log.Warnf("rate limited, consider --delay or credentials: %v", err)
				} else {
					log.Warnf("skipping candidate: %v", err)
				}
			} else if collector.Add(rec) {
				summary.Fetched++
			} else {
				summary.Failed++
			}
		}
	}

	if collector.Len() == 0 {
		log.Info("no profiles collected, skipping CSV write")
		return summary, nil
	}

	if err := export.WriteCSV(r.cfg.Output, collector.Columns(), collector.Rows()); err != nil {
		return summary, fmt.Errorf("failed to write results: %w", err)
	}
	log.Infof("saved %d rows to %s", collector.Len(), r.cfg.Output)

	return summary, nil
}
