package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/social-scout/internal/fetch"
	"github.com/jonathan/social-scout/internal/query"
)

// InstagramBaseURL is the canonical Instagram web host.
const InstagramBaseURL = "https://www.instagram.com"

var (
	// "Full Name (@username) • Instagram photos and videos"
	reInstagramTitle = regexp.MustCompile(`^(.*?)\s*\(@([A-Za-z0-9._]+)\)`)
	// "1,234 Followers, 56 Following, 789 Posts - ..."
	reInstagramStats = regexp.MustCompile(`(?i)([\d.,]+[KM]?)\s+Followers?,\s*([\d.,]+[KM]?)\s+Following,\s*([\d.,]+[KM]?)\s+Posts`)
	// Profile pages embed these in their bootstrap JSON.
	reInstagramBio      = regexp.MustCompile(`"biography"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	reInstagramExternal = regexp.MustCompile(`"external_url"\s*:\s*"((?:[^"\\]|\\.)*)"`)
)

// sessionCookie is the on-disk shape of one persisted session cookie.
type sessionCookie struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Domain string `json:"domain,omitempty"`
	Path   string `json:"path,omitempty"`
}

// InstagramFetcher retrieves public Instagram profile metadata. Anonymous
// use works but returns partial data and rate-limits sooner; an optional
// login persists its session cookies for reuse across runs.
type InstagramFetcher struct {
	// BaseURL is overridable for tests.
	BaseURL    string
	UseBrowser bool

	opts   *fetch.Options
	client *http.Client
}

// NewInstagramFetcher creates an Instagram fetcher with a cookie-jar-backed
// client so login and session cookies carry across requests.
func NewInstagramFetcher(opts *fetch.Options) (*InstagramFetcher, error) {
	if opts == nil {
		opts = fetch.DefaultOptions()
	}

	client, err := fetch.NewClient(opts)
	if err != nil {
		return nil, err
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	client.Jar = jar

	reqOpts := *opts
	reqOpts.Client = client

	return &InstagramFetcher{
		BaseURL: InstagramBaseURL,
		opts:    &reqOpts,
		client:  client,
	}, nil
}

// Platform returns the platform this fetcher serves.
func (f *InstagramFetcher) Platform() query.Platform {
	return query.PlatformInstagram
}

// LoadSession restores persisted session cookies from a previous
// authenticated run. A missing file is not an error.
func (f *InstagramFetcher) LoadSession(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read session file %s: %w", path, err)
	}

	var stored []sessionCookie
	if err := json.Unmarshal(data, &stored); err != nil {
		return fmt.Errorf("failed to parse session file %s: %w", path, err)
	}

	base, err := url.Parse(f.BaseURL)
	if err != nil {
		return err
	}
	cookies := make([]*http.Cookie, 0, len(stored))
	for _, sc := range stored {
		cookies = append(cookies, &http.Cookie{Name: sc.Name, Value: sc.Value, Domain: sc.Domain, Path: sc.Path})
	}
	f.client.Jar.SetCookies(base, cookies)

	logrus.Debugf("restored %d Instagram session cookies from %s", len(cookies), path)
	return nil
}

// SaveSession persists the current session cookies so later runs can skip
// the login round trip.
func (f *InstagramFetcher) SaveSession(path string) error {
	base, err := url.Parse(f.BaseURL)
	if err != nil {
		return err
	}

	var stored []sessionCookie
	for _, c := range f.client.Jar.Cookies(base) {
		stored = append(stored, sessionCookie{Name: c.Name, Value: c.Value, Domain: c.Domain, Path: c.Path})
	}

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file %s: %w", path, err)
	}
	return nil
}

// Login authenticates against the web login endpoint. The caller treats a
// failure as non-fatal: the fetcher keeps working anonymously.
func (f *InstagramFetcher) Login(ctx context.Context, username, password string) error {
	// Bootstrap request to obtain a csrftoken cookie.
	if _, err := fetch.URL(ctx, f.BaseURL+"/", f.opts); err != nil {
		return fmt.Errorf("login bootstrap failed: %w", err)
	}

	base, err := url.Parse(f.BaseURL)
	if err != nil {
		return err
	}
	csrf := ""
	for _, c := range f.client.Jar.Cookies(base) {
		if c.Name == "csrftoken" {
			csrf = c.Value
		}
	}
	if csrf == "" {
		return fmt.Errorf("login bootstrap returned no csrf token")
	}

	form := url.Values{}
	form.Set("username", username)
	// Web login wraps the plaintext password in a versioned envelope.
	form.Set("enc_password", fmt.Sprintf("#PWD_INSTAGRAM_BROWSER:0:%d:%s", time.Now().Unix(), password))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.BaseURL+"/accounts/login/ajax/", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("X-CSRFToken", csrf)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("Referer", f.BaseURL+"/")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var body struct {
		Authenticated bool   `json:"authenticated"`
		Status        string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("unexpected login response: %w", err)
	}
	if !body.Authenticated {
		return fmt.Errorf("login rejected (status %q)", body.Status)
	}

	logrus.Infof("logged in to Instagram as %s", username)
	return nil
}

// Fetch retrieves profile metadata for a handle. Rate limits surface as a
// *FetchError with RateLimited set; the pipeline skips the candidate.
func (f *InstagramFetcher) Fetch(ctx context.Context, handle string) (Record, error) {
	profileURL := f.BaseURL + "/" + handle + "/"

	result, err := fetch.URL(ctx, profileURL, f.opts)
	if err != nil {
		rateLimited := result != nil && result.StatusCode == http.StatusTooManyRequests
		msg := "profile request failed"
		if rateLimited {
			msg = "rate limited"
		}
		return nil, &FetchError{
			Platform:    f.Platform(),
			Handle:      handle,
			Message:     msg,
			Cause:       err,
			RateLimited: rateLimited,
		}
	}

	og, err := fetch.OpenGraph(result.HTML)
	if err != nil {
		return nil, &FetchError{Platform: f.Platform(), Handle: handle, Message: "malformed response", Cause: err}
	}

	if fetch.ShouldUseBrowser(og) && f.UseBrowser {
		html, berr := fetch.BrowserSimple(ctx, profileURL)
		if berr != nil {
			logrus.Debugf("browser fallback for %s failed: %v", handle, berr)
		} else if rendered, perr := fetch.OpenGraph(html); perr == nil {
			og = rendered
			result.HTML = html
		}
	}

	if og["title"] == "" {
		return nil, &FetchError{Platform: f.Platform(), Handle: handle, Message: "profile unavailable or blocked"}
	}

	prof := &InstagramProfile{
		Username:  handle,
		URL:       fmt.Sprintf("%s/%s/", InstagramBaseURL, handle),
		Followers: -1,
		Following: -1,
		Posts:     -1,
	}

	if m := reInstagramTitle.FindStringSubmatch(og["title"]); m != nil {
		prof.FullName = strings.TrimSpace(m[1])
		prof.Username = m[2]
		prof.URL = fmt.Sprintf("%s/%s/", InstagramBaseURL, m[2])
	} else {
		prof.FullName = strings.TrimSpace(og["title"])
	}

	if m := reInstagramStats.FindStringSubmatch(og["description"]); m != nil {
		if n, ok := parseApproxCount(m[1]); ok {
			prof.Followers = n
		}
		if n, ok := parseApproxCount(m[2]); ok {
			prof.Following = n
		}
		if n, ok := parseApproxCount(m[3]); ok {
			prof.Posts = n
		}
	}

	if m := reInstagramBio.FindStringSubmatch(result.HTML); m != nil {
		prof.Bio = unescapeJSONString(m[1])
	}
	if m := reInstagramExternal.FindStringSubmatch(result.HTML); m != nil {
		prof.ExternalURL = unescapeJSONString(m[1])
	}

	return prof.ToRecord(), nil
}

// unescapeJSONString decodes a string literal body captured out of embedded
// bootstrap JSON.
func unescapeJSONString(s string) string {
	var out string
	if err := json.Unmarshal([]byte(`"`+s+`"`), &out); err != nil {
		return s
	}
	return out
}
