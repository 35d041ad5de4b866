package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/tmscrape"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Fetcher tmscrape.Fetcher
	Parser  tmscrape.Parser
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Timeout  time.Duration `default:"15s" env:"TMSCRAPE_TIMEOUT" help:"Timeout per request"`
	MinDelay time.Duration `default:"1500ms" env:"TMSCRAPE_MIN_DELAY" help:"Lower bound of the delay before each request"`
	MaxDelay time.Duration `default:"3s" env:"TMSCRAPE_MAX_DELAY" help:"Upper bound of the delay before each request"`
	Verbose  bool          `short:"v" help:"Log requests and parsing to stderr"`

	Query QueryCmd `cmd:"" help:"Extract values from a page with an XPath expression"`
	Pages PagesCmd `cmd:"" help:"Print the last page number of a paginated listing"`
}

// QueryCmd is the "query" subcommand.
type QueryCmd struct {
	URL       string  `arg:"" help:"Page URL"`
	Path      string  `arg:"" help:"XPath expression"`
	All       bool    `short:"a" help:"Print every matched value, one per line"`
	KeepEmpty bool    `help:"With --all, keep values that are empty after trimming"`
	Pos       int     `default:"0" help:"Position of the value to print"`
	At        *int    `help:"Narrow to the value at this index (out of range is an error)"`
	From      *int    `help:"Drop values before this index"`
	To        *int    `help:"Drop values from this index on"`
	Join      *string `help:"Join the remaining values with this separator"`
}

// PagesCmd is the "pages" subcommand.
type PagesCmd struct {
	URL    string `arg:"" help:"Listing URL"`
	Prefix string `help:"XPath prefix scoping the pagination element"`
}
