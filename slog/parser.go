package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/tmscrape"
)

// Ensure LoggingParser implements tmscrape.Parser.
var _ tmscrape.Parser = (*LoggingParser)(nil)

// LoggingParser wraps a Parser with debug logging.
type LoggingParser struct {
	next   tmscrape.Parser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next tmscrape.Parser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// Parse delegates to the wrapped parser and logs the operation.
func (p *LoggingParser) Parse(body []byte, contentType string) (tree tmscrape.Tree, err error) {
	defer func(begin time.Time) {
		p.logger.Debug("parse",
			"bytes", len(body),
			"content_type", contentType,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Parse(body, contentType)
}
