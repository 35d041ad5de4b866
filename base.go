package tmscrape

import "context"

// Base is the common core of a page scraper. It is bound to one primary URL
// and, once loaded, answers extraction queries against that page.
//
// A Base is not safe for concurrent use: Load writes the tree that every
// extraction call reads.
type Base struct {
	Page

	Fetcher Fetcher
	Parser  Parser
}

// NewBase returns a Base bound to url.
func NewBase(url string, fetcher Fetcher, parser Parser) *Base {
	return &Base{
		Page:    Page{URL: url},
		Fetcher: fetcher,
		Parser:  parser,
	}
}

// Fetch requests url, or the bound URL when url is empty.
func (b *Base) Fetch(ctx context.Context, url string) (*Response, error) {
	if url == "" {
		url = b.URL
	}
	return b.Fetcher.Fetch(ctx, url)
}

// FetchAndParse fetches url (the bound URL when empty) and returns its
// queryable tree. Nothing is cached; each call fetches and parses anew.
func (b *Base) FetchAndParse(ctx context.Context, url string) (Tree, error) {
	resp, err := b.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return b.Parser.Parse(resp.Body, resp.ContentType)
}

// Load fetches and parses the bound URL and makes it the tree all
// subsequent extraction calls read.
func (b *Base) Load(ctx context.Context) error {
	tree, err := b.FetchAndParse(ctx, "")
	if err != nil {
		return err
	}
	b.Tree = tree
	return nil
}
