package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/kamal-hamza/chartfetch/internal/core/domain"
)

const (
	DefaultTimeout      = 30 * time.Second
	DefaultMaxRedirects = 10
)

// Options configures the HTTP fetcher
type Options struct {
	Timeout      time.Duration
	MaxRedirects int
}

// HTTPFetcher implements the Fetcher port with a resty client.
// It sends plain GET requests with no auth and no retries.
type HTTPFetcher struct {
	client *resty.Client
}

// NewHTTPFetcher creates a fetcher; zero options fall back to the defaults
func NewHTTPFetcher(opts Options) *HTTPFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxRedirects <= 0 {
		opts.MaxRedirects = DefaultMaxRedirects
	}

	client := resty.New().
		SetTimeout(opts.Timeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(opts.MaxRedirects))

	return &HTTPFetcher{client: client}
}

// Fetch performs a GET on url and returns the final response, whatever its status
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*domain.FetchResult, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}

	return &domain.FetchResult{
		URL:         url,
		StatusCode:  resp.StatusCode(),
		Status:      resp.Status(),
		ContentType: resp.Header().Get("Content-Type"),
		Body:        resp.Body(),
	}, nil
}
