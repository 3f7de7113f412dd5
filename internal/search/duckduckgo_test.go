package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/social-scout/internal/query"
)

func serpPage(hrefs ...string) string {
	page := "<html><body>"
	for _, h := range hrefs {
		page += fmt.Sprintf(`<div class="result"><a class="result__a" href="%s">result</a></div>`, h)
	}
	return page + "</body></html>"
}

func newTestClient(serverURL string) *Client {
	c := NewClient(nil)
	c.BaseURL = serverURL + "/html/"
	return c
}

func TestDiscover_ExtractsAndDeduplicates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("s") != "" {
			_, _ = w.Write([]byte(serpPage())) // no further pages
			return
		}
		_, _ = w.Write([]byte(serpPage(
			"https://www.instagram.com/joespizza/",
			"https://www.instagram.com/joespizza/?hl=en", // duplicate after normalization
			"https://www.instagram.com/p/Cxyz123/",       // post, not a profile
			"https://www.facebook.com/joespizza",         // wrong platform
			"https://www.instagram.com/mainstreetbar/",
		)))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	q := query.Query{Platform: query.PlatformInstagram, Term: "Joe's Pizza instagram site:instagram.com"}

	candidates, err := client.Discover(context.Background(), q, 10)
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	assert.Equal(t, "joespizza", candidates[0].Username)
	assert.Equal(t, "https://www.instagram.com/joespizza", candidates[0].URL)
	assert.Equal(t, query.PlatformInstagram, candidates[0].Platform)
	assert.Equal(t, q.Term, candidates[0].Query)
	assert.Equal(t, "mainstreetbar", candidates[1].Username)
}

func TestDiscover_DeduplicatesCaseVariants(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("s") != "" {
			_, _ = w.Write([]byte(serpPage()))
			return
		}
		_, _ = w.Write([]byte(serpPage(
			"https://www.instagram.com/JoesPizza/",
			"https://www.instagram.com/joespizza/",
		)))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	q := query.Query{Platform: query.PlatformInstagram, Term: "joe"}

	candidates, err := client.Discover(context.Background(), q, 10)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "joespizza", candidates[0].Username)
}

func TestDiscover_UnwrapsRedirectLinks(t *testing.T) {
	wrapped := "//duckduckgo.com/l/?uddg=" + url.QueryEscape("https://www.instagram.com/joespizza/") + "&rut=abc"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(serpPage(wrapped)))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	q := query.Query{Platform: query.PlatformInstagram, Term: "joe"}

	candidates, err := client.Discover(context.Background(), q, 5)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "https://www.instagram.com/joespizza", candidates[0].URL)
}

func TestDiscover_UnwrapsHostRelativeRedirectLinks(t *testing.T) {
	wrapped := "/l/?uddg=" + url.QueryEscape("https://www.instagram.com/joespizza/") + "&rut=abc"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(serpPage(wrapped)))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	q := query.Query{Platform: query.PlatformInstagram, Term: "joe"}

	candidates, err := client.Discover(context.Background(), q, 5)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "https://www.instagram.com/joespizza", candidates[0].URL)
}

func TestDiscover_RespectsCap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hrefs := make([]string, 0, 20)
		for i := 0; i < 20; i++ {
			hrefs = append(hrefs, fmt.Sprintf("https://www.instagram.com/profile%d/", i))
		}
		_, _ = w.Write([]byte(serpPage(hrefs...)))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	q := query.Query{Platform: query.PlatformInstagram, Term: "pizza"}

	candidates, err := client.Discover(context.Background(), q, 5)
	require.NoError(t, err)
	assert.Len(t, candidates, 5)
}

func TestDiscover_Paginates(t *testing.T) {
	var offsets []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		offsets = append(offsets, r.URL.Query().Get("s"))
		switch r.URL.Query().Get("s") {
		case "":
			_, _ = w.Write([]byte(serpPage("https://www.instagram.com/first/")))
		case "30":
			_, _ = w.Write([]byte(serpPage("https://www.instagram.com/second/")))
		default:
			_, _ = w.Write([]byte(serpPage()))
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	q := query.Query{Platform: query.PlatformInstagram, Term: "pizza"}

	candidates, err := client.Discover(context.Background(), q, 10)
	require.NoError(t, err)
	assert.Len(t, candidates, 2)
	assert.Equal(t, []string{"", "30", "60"}, offsets)
}

func TestDiscover_EmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(serpPage()))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	q := query.Query{Platform: query.PlatformFacebook, Term: "nonexistent"}

	candidates, err := client.Discover(context.Background(), q, 10)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestDiscover_DegenerateQuery(t *testing.T) {
	// Must not make any network call.
	client := NewClient(nil)
	client.BaseURL = "http://127.0.0.1:1/html/"

	candidates, err := client.Discover(context.Background(), query.Query{Platform: query.PlatformInstagram, Term: "  "}, 10)
	require.NoError(t, err)
	assert.Empty(t, candidates)

	candidates, err = client.Discover(context.Background(), query.Query{Platform: query.PlatformInstagram, Term: "pizza"}, 0)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestDiscover_HTTPErrorIsDiscoveryError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	q := query.Query{Platform: query.PlatformInstagram, Term: "pizza"}

	_, err := client.Discover(context.Background(), q, 10)
	require.Error(t, err)

	var discErr *DiscoveryError
	assert.ErrorAs(t, err, &discErr)
	assert.Equal(t, "pizza", discErr.Query)
}
