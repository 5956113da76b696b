package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/xhad/ltcc/internal/models"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"
)

// LinkSelector matches anchors directly inside a container whose class
// attribute is exactly "link-item".
const LinkSelector = `div[class="link-item"] > a[href]`

type ScraperConfig struct {
	IndexURL  string
	RateLimit float64 // requests per second
	Timeout   time.Duration
	UserAgent string
	Logger    *zap.Logger
}

// FetchError reports a failure to retrieve or read the index page.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

type Scraper struct {
	config  ScraperConfig
	client  *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

func NewWithConfig(config ScraperConfig) *Scraper {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.RateLimit == 0 {
		config.RateLimit = 1
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scraper{
		config: config,
		client: &http.Client{
			Timeout: config.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(config.RateLimit), 1),
		logger:  logger,
	}
}

func New(indexURL string) *Scraper {
	return NewWithConfig(ScraperConfig{IndexURL: indexURL})
}

// CollectLinks fetches indexURL and returns the report links on it in
// document order. An empty indexURL falls back to the configured one.
func (s *Scraper) CollectLinks(ctx context.Context, indexURL string) ([]models.Link, error) {
	if indexURL == "" {
		indexURL = s.config.IndexURL
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, &FetchError{URL: indexURL, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, indexURL, nil)
	if err != nil {
		return nil, &FetchError{URL: indexURL, Err: err}
	}
	if s.config.UserAgent != "" {
		req.Header.Set("User-Agent", s.config.UserAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: indexURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{
			URL:        indexURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		s.logger.Warn("unknown charset, reading raw body",
			zap.String("url", indexURL), zap.Error(err))
		body = resp.Body
	}

	links, err := FindLinks(body)
	if err != nil {
		return nil, &FetchError{URL: indexURL, StatusCode: resp.StatusCode, Err: err}
	}

	s.logger.Info("collected report links",
		zap.String("url", indexURL), zap.Int("count", len(links)))
	return links, nil
}

// FindLinks parses an index page and returns the matching hrefs. Hrefs are
// returned as written; nothing checks that they point at PDFs.
func FindLinks(r io.Reader) ([]models.Link, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	links := make([]models.Link, 0)
	doc.Find(LinkSelector).Each(func(_ int, selection *goquery.Selection) {
		href, exists := selection.Attr("href")
		if !exists {
			return
		}
		links = append(links, models.Link(href))
	})

	return links, nil
}
