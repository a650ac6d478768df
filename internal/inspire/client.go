// Package inspire is a client for the INSPIRE-HEP literature API: query
// building, cursor pagination, and normalization of raw metadata records
// into canonical bibliographic entries.
package inspire

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	// BaseURL is the INSPIRE-HEP REST API base URL.
	BaseURL = "https://inspirehep.net/api"

	// DOIBaseURL resolves a DOI to its landing page.
	DOIBaseURL = "https://doi.org/"

	// ArxivAbsURL is the arXiv abstract page prefix.
	ArxivAbsURL = "https://arxiv.org/abs/"

	// ArchivePrefix is the literal identifying the preprint archive in
	// rendered entries.
	ArchivePrefix = "arXiv"

	// ADSSchema tags ADS bibcodes among external system identifiers.
	ADSSchema = "ADS"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// RateLimit is 2 requests per second, comfortably inside the
	// 15-requests-per-5-seconds limit INSPIRE documents.
	RateLimit = 2.0

	// DefaultMaxAuthors caps the number of names in an author line;
	// beyond it the line is truncated to "First and others".
	DefaultMaxAuthors = 10

	// DefaultMaxIterations caps page fetches in one pagination walk.
	DefaultMaxIterations = 20

	// DefaultPageSize is the page size requested when the caller does not
	// ask for one. MaxPageSize is the largest size the service accepts.
	DefaultPageSize = 250
	MaxPageSize     = 1000
)

// Client is a rate-limited HTTP client for the INSPIRE-HEP API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	maxAuthors int
	log        zerolog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for per-page progress and failure
// diagnostics.
func WithLogger(log zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

// WithMaxAuthors sets the author-line truncation cap.
func WithMaxAuthors(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.maxAuthors = n
		}
	}
}

// WithTimeout sets the HTTP request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// NewClient creates a new INSPIRE-HEP API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
		maxAuthors: DefaultMaxAuthors,
		log:        zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// textFrom performs a single GET and returns the body text. Every failure
// (transport error, non-2xx status, read failure) collapses to "" with a
// logged warning; the pagination walker turns that into a typed outcome.
func (c *Client) textFrom(ctx context.Context, url string) string {
	if err := c.limiter.Wait(ctx); err != nil {
		c.log.Warn().Err(err).Str("url", url).Msg("rate limiter interrupted")
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.log.Warn().Err(err).Str("url", url).Msg("building request failed")
		return ""
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("url", url).Msg("fetch failed")
		return ""
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Warn().Err(err).Str("url", url).Msg("reading response failed")
		return ""
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Error bodies are still returned: INSPIRE reports errors as a
		// JSON status/message pair the walker knows how to classify.
		c.log.Warn().Int("status", resp.StatusCode).Str("url", url).Msg("non-2xx response")
	}

	return string(body)
}
