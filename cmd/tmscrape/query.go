package main

import (
	"fmt"

	"github.com/fwojciec/tmscrape"
)

// Run executes the query command.
func (c *QueryCmd) Run(deps *Dependencies) error {
	base := tmscrape.NewBase(c.URL, deps.Fetcher, deps.Parser)
	if err := base.Load(deps.Ctx); err != nil {
		return report(deps.Stderr, err)
	}

	if c.All {
		var opts []tmscrape.ListOption
		if c.KeepEmpty {
			opts = append(opts, tmscrape.KeepEmpty())
		}
		values, err := base.ListByPath(c.Path, opts...)
		if err != nil {
			return report(deps.Stderr, err)
		}
		for _, v := range values {
			fmt.Fprintln(deps.Stdout, v)
		}
		return nil
	}

	text, ok, err := base.TextByPath(c.Path, c.textOptions()...)
	if err != nil {
		return report(deps.Stderr, err)
	} else if !ok {
		return report(deps.Stderr, tmscrape.Errorf(tmscrape.ENOTFOUND, "no value at %s (url: %s)", c.Path, c.URL))
	}

	fmt.Fprintln(deps.Stdout, text)
	return nil
}

func (c *QueryCmd) textOptions() []tmscrape.TextOption {
	opts := []tmscrape.TextOption{tmscrape.Pos(c.Pos)}
	if c.At != nil {
		opts = append(opts, tmscrape.At(*c.At))
	}
	if c.From != nil {
		opts = append(opts, tmscrape.From(*c.From))
	}
	if c.To != nil {
		opts = append(opts, tmscrape.To(*c.To))
	}
	if c.Join != nil {
		opts = append(opts, tmscrape.Join(*c.Join))
	}
	return opts
}
