// Package http provides a resty-based implementation of tmscrape.Fetcher.
// Every request is preceded by a randomized pacing delay and carries a
// fixed desktop-browser identity, which keeps the upstream site from
// throttling or blocking the scraper.
package http

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"net"
	"net/http"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/fwojciec/tmscrape"
	"github.com/go-resty/resty/v2"
)

// DefaultFetchTimeout bounds a single request, pacing delay excluded.
const DefaultFetchTimeout = 15 * time.Second

// DefaultMaxRedirects is the number of redirects followed before a fetch
// is reported as not found.
const DefaultMaxRedirects = 30

// DefaultPacing is the delay range applied before every request.
var DefaultPacing = Pacing{Min: 1500 * time.Millisecond, Max: 3 * time.Second}

// DefaultHeaders is the browser identity sent with every request.
var DefaultHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
		"AppleWebKit/605.1.15 (KHTML, like Gecko) " +
		"Version/15.5 Safari/605.1.15",
	"Accept-Language": "en-US,en;q=0.9",
	"Referer":         "https://www.google.com/",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Connection":      "keep-alive",
}

// ErrTooManyRedirects is the cause of a fetch that exceeded the redirect limit.
var ErrTooManyRedirects = errors.New("too many redirects")

// Pacing is the range a pre-request delay is sampled from.
type Pacing struct {
	Min time.Duration
	Max time.Duration
}

// Delay samples a duration uniformly from [Min, Max). Returns Min when the
// range is empty.
func (p Pacing) Delay() time.Duration {
	if p.Max <= p.Min {
		return p.Min
	}
	return p.Min + rand.N(p.Max-p.Min)
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the default SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Ensure Fetcher implements tmscrape.Fetcher at compile time.
var _ tmscrape.Fetcher = (*Fetcher)(nil)

// Fetcher issues paced GET requests with a fixed header set.
type Fetcher struct {
	client       *resty.Client
	timeout      time.Duration
	pacing       Pacing
	headers      map[string]string
	maxRedirects int
	sleep        SleepFunc
	logger       *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (15s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithPacing sets the pre-request delay range. A zero Pacing disables it.
func WithPacing(p Pacing) Option {
	return func(f *Fetcher) {
		f.pacing = p
	}
}

// WithHeaders replaces the header set sent with every request.
func WithHeaders(headers map[string]string) Option {
	return func(f *Fetcher) {
		f.headers = headers
	}
}

// WithMaxRedirects sets how many redirects are followed.
func WithMaxRedirects(n int) Option {
	return func(f *Fetcher) {
		f.maxRedirects = n
	}
}

// WithSleep replaces the function used to wait out the pacing delay.
func WithSleep(fn SleepFunc) Option {
	return func(f *Fetcher) {
		f.sleep = fn
	}
}

// WithLogger routes the HTTP client's internal warnings to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// NewFetcher creates a new Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:      DefaultFetchTimeout,
		pacing:       DefaultPacing,
		headers:      DefaultHeaders,
		maxRedirects: DefaultMaxRedirects,
		sleep:        Sleep,
	}
	for _, opt := range opts {
		opt(f)
	}

	client := resty.New()
	client.SetTimeout(f.timeout)
	client.SetHeaders(f.headers)
	client.SetRedirectPolicy(resty.RedirectPolicyFunc(
		func(_ *http.Request, via []*http.Request) error {
			if len(via) >= f.maxRedirects {
				return ErrTooManyRedirects
			}
			return nil
		},
	))
	if f.logger != nil {
		client.SetLogger(&restyLogger{logger: f.logger})
	}
	f.client = client

	return f
}

// Fetch waits out the pacing delay, then requests url once.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*tmscrape.Response, error) {
	if err := f.sleep(ctx, f.pacing.Delay()); err != nil {
		return nil, tmscrape.StatusErrorf(http.StatusInternalServerError, tmscrape.ESERVER, "Error for url: %s. %v", url, err)
	}

	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, transportError(url, err)
	}

	code := resp.StatusCode()
	reason := reasonPhrase(resp)
	switch {
	case code >= 400 && code < 500:
		return nil, tmscrape.StatusErrorf(code, tmscrape.ECLIENT, "Client Error. %s for url: %s", reason, url)
	case code >= 500 && code < 600:
		return nil, tmscrape.StatusErrorf(code, tmscrape.ESERVER, "Server Error. %s for url: %s", reason, url)
	}

	return &tmscrape.Response{
		URL:         url,
		StatusCode:  code,
		Reason:      reason,
		ContentType: resp.Header().Get("Content-Type"),
		Body:        resp.Body(),
	}, nil
}

// transportError maps a failed round trip onto the error taxonomy.
func transportError(url string, err error) error {
	switch {
	case errors.Is(err, ErrTooManyRedirects):
		return tmscrape.StatusErrorf(http.StatusNotFound, tmscrape.ENOTFOUND, "Not found for url: %s", url)
	case isConnectionError(err):
		return tmscrape.StatusErrorf(http.StatusInternalServerError, tmscrape.ESERVER, "Connection error for url: %s", url)
	default:
		return tmscrape.StatusErrorf(http.StatusInternalServerError, tmscrape.ESERVER, "Error for url: %s. %v", url, err)
	}
}

// isConnectionError reports whether err means the host could not be reached
// or dropped the connection. Timeouts are not connection errors.
func isConnectionError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return false
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET)
}

// reasonPhrase returns the reason part of the status line, e.g. "Not Found".
func reasonPhrase(resp *resty.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status(), strconv.Itoa(resp.StatusCode())))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode())
	}
	return reason
}
