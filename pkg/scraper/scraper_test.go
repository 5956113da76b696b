package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xhad/ltcc/internal/models"
)

const indexPage = `
<html>
	<head><title>2014 Long Term Care Cost Reports</title></head>
	<body>
		<div class="link-item"><a href="http://example.com/docs/Abbott House.pdf">Abbott House</a></div>
		<div class="link-item"><a href="http://example.com/docs/Alden Estates.pdf">Alden Estates</a></div>
		<div class="link-item other"><a href="http://example.com/docs/skipped.pdf">Skipped</a></div>
		<div class="sidebar"><a href="http://example.com/about">About</a></div>
		<div class="link-item"><span><a href="http://example.com/docs/nested.pdf">Nested</a></span></div>
		<div class="link-item"><a>No href</a></div>
		<div class="link-item"><a href="/docs/relative.pdf">Relative</a></div>
	</body>
</html>`

func TestFindLinks(t *testing.T) {
	links, err := FindLinks(strings.NewReader(indexPage))
	require.NoError(t, err)

	assert.Equal(t, []models.Link{
		"http://example.com/docs/Abbott House.pdf",
		"http://example.com/docs/Alden Estates.pdf",
		"/docs/relative.pdf",
	}, links)
}

func TestFindLinksNoMatches(t *testing.T) {
	pages := []string{
		"",
		"<html><body><p>Nothing published yet</p></body></html>",
		`<div class="sidebar"><a href="/x.pdf">x</a></div>`,
	}

	for _, page := range pages {
		links, err := FindLinks(strings.NewReader(page))
		require.NoError(t, err)
		assert.NotNil(t, links)
		assert.Empty(t, links)
	}
}

func TestScraperConfig(t *testing.T) {
	s := NewWithConfig(ScraperConfig{
		IndexURL:  "https://example.com",
		RateLimit: 5,
		Timeout:   10 * time.Second,
	})
	assert.Equal(t, "https://example.com", s.config.IndexURL)
	assert.Equal(t, 10*time.Second, s.client.Timeout)

	d := New("https://example.com")
	assert.Equal(t, 30*time.Second, d.client.Timeout)
	assert.NotNil(t, d.logger)
}

func TestCollectLinksWithMockServer(t *testing.T) {
	var userAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(indexPage))
	}))
	defer server.Close()

	s := NewWithConfig(ScraperConfig{
		IndexURL:  server.URL,
		RateLimit: 10,
		UserAgent: "ltcc-test",
	})

	links, err := s.CollectLinks(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, links, 3)
	assert.Equal(t, models.Link("http://example.com/docs/Abbott House.pdf"), links[0])
	assert.Equal(t, "ltcc-test", userAgent)
}

func TestCollectLinksEmptyPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body></body></html>"))
	}))
	defer server.Close()

	links, err := New(server.URL).CollectLinks(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestCollectLinksStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := New(server.URL).CollectLinks(context.Background(), "")
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.Equal(t, server.URL, fetchErr.URL)
}

func TestCollectLinksNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := New(url).CollectLinks(context.Background(), "")
	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Zero(t, fetchErr.StatusCode)
	assert.Error(t, fetchErr.Unwrap())
}
