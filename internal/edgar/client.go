// Package edgar is the SEC EDGAR client behind the M&A engine and the CLI.
// It resolves tickers to CIKs, reads company submissions, lists filings,
// reads the company 8-K Atom feed and downloads primary documents.
//
// No API key required. Every request carries the User-Agent identity the
// SEC asks for and is held to the fair-access rate (10 requests/second).
// Docs: https://www.sec.gov/edgar/sec-api-documentation
package edgar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/phuslu/log"

	"github.com/seenimoa/alphavault/internal/infra"
	"github.com/seenimoa/alphavault/pkg/models"
)

const (
	DefaultUserAgent   = "AlphaVault research@alphavault.dev"
	DefaultDataURL     = "https://data.sec.gov"
	DefaultArchivesURL = "https://www.sec.gov/Archives/edgar/data"
	DefaultBrowseURL   = "https://www.sec.gov/cgi-bin/browse-edgar"
	DefaultTickersURL  = "https://www.sec.gov/files/company_tickers.json"

	DefaultRateLimit = 10
	DefaultTimeout   = 30 * time.Second
	DefaultCacheTTL  = time.Hour
	DefaultRetries   = 2

	// pingCIK is Apple; its submissions file always exists.
	pingCIK = "0000320193"
)

// ErrCIKNotFound is returned when a ticker is not in the SEC ticker map.
var ErrCIKNotFound = errors.New("edgar: CIK not found")

// Client talks to EDGAR. It is safe for concurrent use.
type Client struct {
	http    *resty.Client
	limiter *infra.RateLimiter
	cache   *infra.Cache

	userAgent   string
	dataURL     string
	archivesURL string
	browseURL   string
	tickersURL  string
	rateLimit   int
	timeout     time.Duration
	cacheTTL    time.Duration
	retries     int
}

// Option configures a Client.
type Option func(*Client)

// WithUserAgent sets the identity sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithDataURL overrides the data.sec.gov base URL.
func WithDataURL(u string) Option { return func(c *Client) { c.dataURL = u } }

// WithArchivesURL overrides the filing archive base URL.
func WithArchivesURL(u string) Option { return func(c *Client) { c.archivesURL = u } }

// WithBrowseURL overrides the browse-edgar endpoint used for Atom feeds.
func WithBrowseURL(u string) Option { return func(c *Client) { c.browseURL = u } }

// WithTickersURL overrides the company ticker map URL.
func WithTickersURL(u string) Option { return func(c *Client) { c.tickersURL = u } }

// WithRateLimit sets requests per second; zero or less disables limiting.
func WithRateLimit(perSecond int) Option { return func(c *Client) { c.rateLimit = perSecond } }

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithCacheTTL sets how long ticker maps and submissions are cached.
func WithCacheTTL(d time.Duration) Option { return func(c *Client) { c.cacheTTL = d } }

// WithRetries sets how many times a 429, 5xx or transport failure is retried.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.retries = n
		}
	}
}

// NewClient creates an EDGAR client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		userAgent:   DefaultUserAgent,
		dataURL:     DefaultDataURL,
		archivesURL: DefaultArchivesURL,
		browseURL:   DefaultBrowseURL,
		tickersURL:  DefaultTickersURL,
		rateLimit:   DefaultRateLimit,
		timeout:     DefaultTimeout,
		cacheTTL:    DefaultCacheTTL,
		retries:     DefaultRetries,
	}
	for _, o := range opts {
		o(c)
	}

	c.http = resty.New().
		SetTimeout(c.timeout).
		SetHeader("User-Agent", c.userAgent).
		SetHeader("Accept-Encoding", "gzip, deflate").
		SetRetryCount(c.retries).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() == 429 || r.StatusCode() >= 500
		})
	c.limiter = infra.NewRateLimiter(c.rateLimit)
	c.cache = infra.NewCache(c.cacheTTL)
	return c
}

// UserAgent returns the identity sent with requests.
func (c *Client) UserAgent() string { return c.userAgent }

// Ping checks connectivity to EDGAR.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.get(ctx, c.dataURL+"/submissions/CIK"+pingCIK+".json"); err != nil {
		return fmt.Errorf("edgar ping: %w", err)
	}
	return nil
}

// get performs a rate-limited GET and returns the body of a 2xx response.
// Every failure wraps models.ErrUpstreamFetch.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("edgar: %w: %w", models.ErrUpstreamFetch, err)
	}
	start := time.Now()
	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("edgar request failed")
		return nil, fmt.Errorf("edgar: GET %s: %w: %w", url, models.ErrUpstreamFetch, err)
	}
	if resp.IsError() {
		herr := infra.NewHTTPError(resp.StatusCode(), resp.Status(), url, resp.Body())
		log.Warn().Int("status", resp.StatusCode()).Str("url", url).Msg("edgar request rejected")
		return nil, fmt.Errorf("edgar: %w: %w", models.ErrUpstreamFetch, herr)
	}
	log.Debug().Str("url", url).Int("bytes", len(resp.Body())).Dur("took", time.Since(start)).Msg("edgar request")
	return resp.Body(), nil
}
