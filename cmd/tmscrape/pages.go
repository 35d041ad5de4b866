package main

import (
	"fmt"

	"github.com/fwojciec/tmscrape"
)

// Run executes the pages command.
func (c *PagesCmd) Run(deps *Dependencies) error {
	base := tmscrape.NewBase(c.URL, deps.Fetcher, deps.Parser)
	if err := base.Load(deps.Ctx); err != nil {
		return report(deps.Stderr, err)
	}

	n, err := base.LastPageNumber(c.Prefix)
	if err != nil {
		return report(deps.Stderr, err)
	}

	fmt.Fprintln(deps.Stdout, n)
	return nil
}
