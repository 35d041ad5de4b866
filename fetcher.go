package tmscrape

import "context"

// Response is the raw result of a single fetch. It is not retained beyond
// the call that produced it.
type Response struct {
	URL         string
	StatusCode  int
	Reason      string
	ContentType string
	Body        []byte
}

// Fetcher retrieves raw pages from URLs.
type Fetcher interface {
	// Fetch issues exactly one GET request for url. Failures are returned
	// as *Error values carrying an HTTP-like status; nothing is retried.
	Fetch(ctx context.Context, url string) (*Response, error)
}
