package profile

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/social-scout/internal/fetch"
	"github.com/jonathan/social-scout/internal/query"
)

// FacebookBaseURL is the canonical Facebook web host.
const FacebookBaseURL = "https://www.facebook.com"

// reFacebookCount matches display counts followed by a followers/likes
// label in a page's Open Graph description.
var reFacebookCount = regexp.MustCompile(`(?i)([\d.,]+[KM]?)\s+(?:likes|followers)`)

// FacebookFetcher retrieves public Facebook Page metadata. An optional
// cookies.txt file reduces anonymous blocking.
type FacebookFetcher struct {
	// BaseURL is overridable for tests.
	BaseURL    string
	UseBrowser bool

	opts    *fetch.Options
	cookies []*http.Cookie
}

// NewFacebookFetcher creates a Facebook fetcher. cookiesFile may be empty;
// when set, the file is loaded once and its cookies attached to every
// request.
func NewFacebookFetcher(cookiesFile string, opts *fetch.Options) (*FacebookFetcher, error) {
	if opts == nil {
		opts = fetch.DefaultOptions()
	}

	var cookies []*http.Cookie
	if cookiesFile != "" {
		var err error
		cookies, err = LoadNetscapeCookies(cookiesFile)
		if err != nil {
			return nil, err
		}
		logrus.Debugf("loaded %d Facebook cookies from %s", len(cookies), cookiesFile)
	}

	return &FacebookFetcher{
		BaseURL: FacebookBaseURL,
		opts:    opts,
		cookies: cookies,
	}, nil
}

// Platform returns the platform this fetcher serves.
func (f *FacebookFetcher) Platform() query.Platform {
	return query.PlatformFacebook
}

// Fetch retrieves the page metadata for a handle. Failures (not found,
// blocked, malformed response) come back as a *FetchError so the pipeline
// can skip the candidate.
func (f *FacebookFetcher) Fetch(ctx context.Context, handle string) (Record, error) {
	pageURL := f.BaseURL + "/" + handle

	reqOpts := *f.opts
	reqOpts.Cookies = append(reqOpts.Cookies, f.cookies...)

	result, err := fetch.URL(ctx, pageURL, &reqOpts)
	if err != nil {
		return nil, &FetchError{
			Platform:    f.Platform(),
			Handle:      handle,
			Message:     "page request failed",
			Cause:       err,
			RateLimited: result != nil && result.StatusCode == http.StatusTooManyRequests,
		}
	}

	og, err := fetch.OpenGraph(result.HTML)
	if err != nil {
		return nil, &FetchError{Platform: f.Platform(), Handle: handle, Message: "malformed response", Cause: err}
	}

	if fetch.ShouldUseBrowser(og) && f.UseBrowser {
		html, berr := fetch.BrowserSimple(ctx, pageURL)
		if berr != nil {
			logrus.Debugf("browser fallback for %s failed: %v", handle, berr)
		} else if rendered, perr := fetch.OpenGraph(html); perr == nil {
			og = rendered
		}
	}

	if og["title"] == "" {
		return nil, &FetchError{Platform: f.Platform(), Handle: handle, Message: "page unavailable or blocked"}
	}

	prof := &FacebookProfile{
		Username:  handle,
		Name:      og["title"],
		URL:       pageURL,
		Followers: -1,
	}
	if og["url"] != "" {
		prof.URL = og["url"]
	}
	parseFacebookDescription(prof, og["description"])

	return prof.ToRecord(), nil
}

// parseFacebookDescription pulls the follower count and category out of the
// page's Open Graph description, which reads like
// "12,345 likes · 67 talking about this · Pizza place".
func parseFacebookDescription(prof *FacebookProfile, desc string) {
	if desc == "" {
		return
	}

	if m := reFacebookCount.FindStringSubmatch(desc); m != nil {
		if n, ok := parseApproxCount(m[1]); ok {
			prof.Followers = n
		}
	}

	for _, segment := range strings.Split(desc, "·") {
		segment = strings.TrimSpace(segment)
		if segment == "" || strings.ContainsAny(segment, "0123456789") {
			continue
		}
		// Short digit-free segments are category labels.
		if len(segment) <= 40 {
			prof.Category = segment
		}
	}
}
