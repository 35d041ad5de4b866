// Package slog provides log/slog decorators for the tmscrape interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/tmscrape"
	"github.com/google/uuid"
)

// Ensure LoggingFetcher implements tmscrape.Fetcher.
var _ tmscrape.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging. Each call is tagged with a
// fresh fetch id.
type LoggingFetcher struct {
	next   tmscrape.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next tmscrape.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (resp *tmscrape.Response, err error) {
	id := uuid.NewString()
	defer func(begin time.Time) {
		status, size := tmscrape.ErrorStatus(err), 0
		if resp != nil {
			status, size = resp.StatusCode, len(resp.Body)
		}
		f.logger.Info("fetch",
			"id", id,
			"url", url,
			"status", status,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}
