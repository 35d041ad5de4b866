package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/tmscrape"
	"github.com/fwojciec/tmscrape/goquery"
	"github.com/fwojciec/tmscrape/htmlquery"
	tmhttp "github.com/fwojciec/tmscrape/http"
	tmslog "github.com/fwojciec/tmscrape/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Fetcher replaces the HTTP fetcher, for end-to-end testing.
	// Set before calling Run().
	Fetcher tmscrape.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("tmscrape"),
		kong.Description("Query football statistics pages with XPath"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'tmscrape --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cli.MaxDelay < cli.MinDelay {
		return fmt.Errorf("max delay %s is shorter than min delay %s", cli.MaxDelay, cli.MinDelay)
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	fetcher := m.Fetcher
	if fetcher == nil {
		fetcher = tmhttp.NewFetcher(
			tmhttp.WithTimeout(cli.Timeout),
			tmhttp.WithPacing(tmhttp.Pacing{Min: cli.MinDelay, Max: cli.MaxDelay}),
			tmhttp.WithLogger(logger),
		)
	}
	deps.Fetcher = tmslog.NewLoggingFetcher(fetcher, logger)
	deps.Parser = tmslog.NewLoggingParser(htmlquery.NewParser(goquery.NewSanitizer()), logger)

	return kongCtx.Run(deps)
}

// report prints err the way collaborators see it and returns it.
func report(w io.Writer, err error) error {
	fmt.Fprintf(w, "error: %s (status %d)\n", tmscrape.ErrorMessage(err), tmscrape.ErrorStatus(err))
	return err
}
