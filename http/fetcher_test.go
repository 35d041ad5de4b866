package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/tmscrape"
	tmhttp "github.com/fwojciec/tmscrape/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noPacing disables the pre-request delay so tests run fast.
var noPacing = tmhttp.WithPacing(tmhttp.Pacing{})

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns body and metadata from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html><body>Hello World</body></html>"))
		}))
		defer server.Close()

		fetcher := tmhttp.NewFetcher(noPacing)

		resp, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html><body>Hello World</body></html>", string(resp.Body))
		assert.Equal(t, server.URL, resp.URL)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "OK", resp.Reason)
		assert.Equal(t, "text/html; charset=utf-8", resp.ContentType)
	})

	t.Run("sends the browser identity headers", func(t *testing.T) {
		t.Parallel()

		var got http.Header
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Clone()
		}))
		defer server.Close()

		fetcher := tmhttp.NewFetcher(noPacing)

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, tmhttp.DefaultHeaders["User-Agent"], got.Get("User-Agent"))
		assert.Equal(t, "en-US,en;q=0.9", got.Get("Accept-Language"))
		assert.Equal(t, "https://www.google.com/", got.Get("Referer"))
		assert.Equal(t, tmhttp.DefaultHeaders["Accept"], got.Get("Accept"))
	})

	t.Run("sends custom headers", func(t *testing.T) {
		t.Parallel()

		var got http.Header
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Clone()
		}))
		defer server.Close()

		fetcher := tmhttp.NewFetcher(noPacing, tmhttp.WithHeaders(map[string]string{"User-Agent": "tmscrape-test"}))

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "tmscrape-test", got.Get("User-Agent"))
		assert.Empty(t, got.Get("Referer"))
	})

	t.Run("issues exactly one GET request", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var methods []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			methods = append(methods, r.Method)
			mu.Unlock()
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		fetcher := tmhttp.NewFetcher(noPacing)

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []string{http.MethodGet}, methods)
	})

	t.Run("passes through 3xx responses that are not redirects", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotModified)
		}))
		defer server.Close()

		fetcher := tmhttp.NewFetcher(noPacing)

		resp, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotModified, resp.StatusCode)
	})
}

func TestFetcher_Fetch_Errors(t *testing.T) {
	t.Parallel()

	t.Run("classifies 4xx as client error with passed-through status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		fetcher := tmhttp.NewFetcher(noPacing)

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, tmscrape.ECLIENT, tmscrape.ErrorCode(err))
		assert.Equal(t, http.StatusForbidden, tmscrape.ErrorStatus(err))
		assert.Equal(t, "Client Error. Forbidden for url: "+server.URL, tmscrape.ErrorMessage(err))
	})

	t.Run("classifies 5xx as server error with passed-through status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		fetcher := tmhttp.NewFetcher(noPacing)

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, tmscrape.ESERVER, tmscrape.ErrorCode(err))
		assert.Equal(t, http.StatusServiceUnavailable, tmscrape.ErrorStatus(err))
		assert.Equal(t, "Server Error. Service Unavailable for url: "+server.URL, tmscrape.ErrorMessage(err))
	})

	t.Run("classifies too many redirects as not found", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/loop", http.StatusFound)
		}))
		defer server.Close()

		fetcher := tmhttp.NewFetcher(noPacing, tmhttp.WithMaxRedirects(3))

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, tmscrape.ENOTFOUND, tmscrape.ErrorCode(err))
		assert.Equal(t, http.StatusNotFound, tmscrape.ErrorStatus(err))
		assert.Equal(t, "Not found for url: "+server.URL, tmscrape.ErrorMessage(err))
	})

	t.Run("follows redirects within the limit", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/" {
				http.Redirect(w, r, "/target", http.StatusMovedPermanently)
				return
			}
			_, _ = w.Write([]byte("target"))
		}))
		defer server.Close()

		fetcher := tmhttp.NewFetcher(noPacing, tmhttp.WithMaxRedirects(3))

		resp, err := fetcher.Fetch(context.Background(), server.URL+"/")
		require.NoError(t, err)
		assert.Equal(t, "target", string(resp.Body))
	})

	t.Run("classifies refused connections as server unavailable", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		fetcher := tmhttp.NewFetcher(noPacing)

		_, err := fetcher.Fetch(context.Background(), url)
		require.Error(t, err)
		assert.Equal(t, tmscrape.ESERVER, tmscrape.ErrorCode(err))
		assert.Equal(t, http.StatusInternalServerError, tmscrape.ErrorStatus(err))
		assert.Equal(t, "Connection error for url: "+url, tmscrape.ErrorMessage(err))
	})

	t.Run("classifies timeouts as unexpected failures", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := tmhttp.NewFetcher(noPacing, tmhttp.WithTimeout(20*time.Millisecond))

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, tmscrape.ESERVER, tmscrape.ErrorCode(err))
		assert.Equal(t, http.StatusInternalServerError, tmscrape.ErrorStatus(err))
		assert.Contains(t, tmscrape.ErrorMessage(err), "Error for url: "+server.URL+".")
	})

	t.Run("classifies malformed addresses as unexpected failures", func(t *testing.T) {
		t.Parallel()

		fetcher := tmhttp.NewFetcher(noPacing)

		_, err := fetcher.Fetch(context.Background(), "://no-scheme")
		require.Error(t, err)
		assert.Equal(t, tmscrape.ESERVER, tmscrape.ErrorCode(err))
		assert.Contains(t, tmscrape.ErrorMessage(err), "Error for url: ://no-scheme.")
	})
}

func TestFetcher_Fetch_Pacing(t *testing.T) {
	t.Parallel()

	t.Run("sleeps within the default range before each request", func(t *testing.T) {
		t.Parallel()

		var delays []time.Duration
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer server.Close()

		fetcher := tmhttp.NewFetcher(tmhttp.WithSleep(func(_ context.Context, d time.Duration) error {
			delays = append(delays, d)
			return nil
		}))

		for range 3 {
			_, err := fetcher.Fetch(context.Background(), server.URL)
			require.NoError(t, err)
		}

		require.Len(t, delays, 3)
		for _, d := range delays {
			assert.GreaterOrEqual(t, d, 1500*time.Millisecond)
			assert.Less(t, d, 3*time.Second)
		}
	})

	t.Run("sleeps even when the connection then fails", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		slept := 0
		fetcher := tmhttp.NewFetcher(tmhttp.WithSleep(func(context.Context, time.Duration) error {
			slept++
			return nil
		}))

		_, err := fetcher.Fetch(context.Background(), url)
		require.Error(t, err)
		assert.Equal(t, 1, slept)
	})

	t.Run("does not send the request when the delay is canceled", func(t *testing.T) {
		t.Parallel()

		requests := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
		}))
		defer server.Close()

		fetcher := tmhttp.NewFetcher(tmhttp.WithPacing(tmhttp.Pacing{Min: time.Hour, Max: time.Hour}))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fetcher.Fetch(ctx, server.URL)
		require.Error(t, err)
		assert.Equal(t, tmscrape.ESERVER, tmscrape.ErrorCode(err))
		assert.Zero(t, requests)
	})
}

func TestPacing_Delay(t *testing.T) {
	t.Parallel()

	t.Run("samples from the half-open range", func(t *testing.T) {
		t.Parallel()

		p := tmhttp.Pacing{Min: 10 * time.Millisecond, Max: 20 * time.Millisecond}
		for range 1000 {
			d := p.Delay()
			assert.GreaterOrEqual(t, d, p.Min)
			assert.Less(t, d, p.Max)
		}
	})

	t.Run("returns min for an empty range", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, time.Second, tmhttp.Pacing{Min: time.Second, Max: time.Second}.Delay())
		assert.Zero(t, tmhttp.Pacing{}.Delay())
	})
}

func TestSleep(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := tmhttp.Sleep(ctx, time.Hour)

	assert.ErrorIs(t, err, context.Canceled)
	assert.NoError(t, tmhttp.Sleep(context.Background(), 0))
}

// Compile-time verification that Fetcher implements tmscrape.Fetcher
var _ tmscrape.Fetcher = (*tmhttp.Fetcher)(nil)
