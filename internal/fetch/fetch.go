package fetch

import (
	"context"
	"io"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2/log"
)

const (
	defaultTimeout      = 10 * time.Second
	defaultMaxRedirects = 10
)

// Fetcher issues single-attempt GET requests with a fixed user agent and timeout.
type Fetcher struct {
	client    *resty.Client
	userAgent string
	timeout   time.Duration
}

type Option func(*Fetcher)

func WithUserAgent(userAgent string) Option {
	return func(f *Fetcher) {
		f.userAgent = userAgent
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(f *Fetcher) {
		if timeout > 0 {
			f.timeout = timeout
		}
	}
}

func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: defaultTimeout,
	}

	for _, opt := range opts {
		opt(f)
	}

	client := resty.New().
		// SetDebug(true).
		SetTimeout(f.timeout).
		SetRetryCount(0).
		SetRedirectPolicy(HTTPOnlyRedirects(defaultMaxRedirects))

	if f.userAgent != "" {
		client.SetHeader("User-Agent", f.userAgent)
	}

	f.client = client
	return f
}

// Get fetches url and returns the response body as text.
func (f *Fetcher) Get(ctx context.Context, url string) (string, error) {
	log.Debugf("GET %s", url)
	resp, err := f.client.
		R().
		SetContext(ctx).
		Get(url)

	if err != nil {
		return "", classify(url, err)
	}

	if resp.IsError() {
		return "", statusError(url, resp.StatusCode(), resp.Status())
	}

	return resp.String(), nil
}

// Open fetches url without buffering the body. The caller owns the returned
// body and must close it.
func (f *Fetcher) Open(ctx context.Context, url string) (io.ReadCloser, error) {
	log.Debugf("GET %s (stream)", url)
	resp, err := f.client.
		R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(url)

	if err != nil {
		return nil, classify(url, err)
	}

	body := resp.RawBody()
	if resp.IsError() {
		if body != nil {
			_ = body.Close()
		}
		return nil, statusError(url, resp.StatusCode(), resp.Status())
	}

	return body, nil
}
