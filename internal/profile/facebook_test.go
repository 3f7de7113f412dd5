package profile

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/social-scout/internal/query"
)

func facebookPage(title, description string) string {
	return fmt.Sprintf(`<html><head>
		<meta property="og:title" content="%s" />
		<meta property="og:description" content="%s" />
	</head><body></body></html>`, title, description)
}

func newTestFacebookFetcher(t *testing.T, serverURL, cookiesFile string) *FacebookFetcher {
	t.Helper()
	f, err := NewFacebookFetcher(cookiesFile, nil)
	require.NoError(t, err)
	f.BaseURL = serverURL
	return f
}

func TestFacebookFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/joespizza", r.URL.Path)
		_, _ = w.Write([]byte(facebookPage("Joe's Pizza", "12,345 likes · 67 talking about this · Pizza place")))
	}))
	defer server.Close()

	f := newTestFacebookFetcher(t, server.URL, "")
	rec, err := f.Fetch(context.Background(), "joespizza")
	require.NoError(t, err)

	assert.Equal(t, "facebook", rec[FieldPlatform])
	assert.Equal(t, "joespizza", rec[FieldUsername])
	assert.Equal(t, server.URL+"/joespizza", rec[FieldURL])
	assert.Equal(t, "Joe's Pizza", rec["full_name"])
	assert.Equal(t, "12345", rec["followers"])
	assert.Equal(t, "Pizza place", rec["category"])
}

func TestFacebookFetch_SendsCookies(t *testing.T) {
	cookiesFile := writeCookieFile(t, ".facebook.com\tTRUE\t/\tTRUE\t1999999999\tc_user\t777\n")

	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("c_user"); err == nil {
			got = c.Value
		}
		_, _ = w.Write([]byte(facebookPage("Joe's Pizza", "")))
	}))
	defer server.Close()

	f := newTestFacebookFetcher(t, server.URL, cookiesFile)
	_, err := f.Fetch(context.Background(), "joespizza")
	require.NoError(t, err)
	assert.Equal(t, "777", got)
}

func TestFacebookFetch_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := newTestFacebookFetcher(t, server.URL, "")
	_, err := f.Fetch(context.Background(), "nosuchpage")
	require.Error(t, err)

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, query.PlatformFacebook, fe.Platform)
	assert.Equal(t, "nosuchpage", fe.Handle)
	assert.False(t, fe.RateLimited)
}

func TestFacebookFetch_BlockedPage(t *testing.T) {
	// 200 response with no Open Graph metadata means a login interstitial.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body>log in to continue</body></html>"))
	}))
	defer server.Close()

	f := newTestFacebookFetcher(t, server.URL, "")
	_, err := f.Fetch(context.Background(), "joespizza")
	require.Error(t, err)

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe.Message, "unavailable or blocked")
}

func TestFacebookFetch_MissingCookieFile(t *testing.T) {
	_, err := NewFacebookFetcher("/nonexistent/cookies.txt", nil)
	require.Error(t, err)
}

func TestParseFacebookDescription(t *testing.T) {
	prof := &FacebookProfile{Followers: -1}
	parseFacebookDescription(prof, "10.5K followers · Restaurant")
	assert.Equal(t, int64(10500), prof.Followers)
	assert.Equal(t, "Restaurant", prof.Category)

	prof = &FacebookProfile{Followers: -1}
	parseFacebookDescription(prof, "")
	assert.Equal(t, int64(-1), prof.Followers)
	assert.Empty(t, prof.Category)
}
