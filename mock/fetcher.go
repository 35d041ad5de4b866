package mock

import (
	"context"

	"github.com/fwojciec/tmscrape"
)

var _ tmscrape.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of tmscrape.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*tmscrape.Response, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*tmscrape.Response, error) {
	return f.FetchFn(ctx, url)
}
