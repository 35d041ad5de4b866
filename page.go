package tmscrape

import (
	"strconv"
	"strings"
)

// Pagination locators tried in order by LastPageNumber, each appended to
// the caller's prefix.
const (
	PaginationLastPage   = "//li[contains(@class, 'list-item--icon-last-page')]//@href"
	PaginationActivePage = "//li[contains(@class, 'list-item--active')]//@href"
)

// Page answers extraction queries against one parsed document.
// URL identifies the document in error messages.
type Page struct {
	URL  string
	Tree Tree
}

func (p *Page) evaluate(path string) ([]string, error) {
	if p.Tree == nil {
		return nil, Errorf(EINTERNAL, "page not loaded (url: %s)", p.URL)
	}
	return p.Tree.Evaluate(path)
}

// ListOption configures ListByPath.
type ListOption func(*listQuery)

type listQuery struct {
	keepEmpty bool
}

// KeepEmpty keeps values that trim to the empty string.
func KeepEmpty() ListOption {
	return func(q *listQuery) { q.keepEmpty = true }
}

// ListByPath returns the trimmed values selected by path. Values that trim
// to nothing are dropped unless KeepEmpty is given. No match yields an
// empty slice, never an error.
func (p *Page) ListByPath(path string, opts ...ListOption) ([]string, error) {
	var q listQuery
	for _, opt := range opts {
		opt(&q)
	}

	values, err := p.evaluate(path)
	if err != nil {
		return nil, err
	}
	return compact(values, q.keepEmpty), nil
}

// compact trims every value, dropping the ones left empty unless keepEmpty.
func compact(values []string, keepEmpty bool) []string {
	list := make([]string, 0, len(values))
	for _, v := range values {
		v = Trim(v)
		if v == "" && !keepEmpty {
			continue
		}
		list = append(list, v)
	}
	return list
}

// TextOption shapes the result of TextByPath.
type TextOption func(*textQuery)

type textQuery struct {
	pos  int
	at   *int
	from *int
	to   *int
	join *string
}

// Pos selects the value returned when no other shaping applies.
// An out-of-range position yields no value rather than an error.
func Pos(n int) TextOption {
	return func(q *textQuery) { q.pos = n }
}

// At narrows the values to the one at index i. Unlike Pos, an out-of-range
// index is an EINDEX error.
func At(i int) TextOption {
	return func(q *textQuery) { q.at = &i }
}

// From drops the values before index i.
func From(i int) TextOption {
	return func(q *textQuery) { q.from = &i }
}

// To drops the values from index i onwards.
func To(i int) TextOption {
	return func(q *textQuery) { q.to = &i }
}

// Join concatenates the remaining values with sep into one string.
func Join(sep string) TextOption {
	return func(q *textQuery) { q.join = &sep }
}

// shaper is one optional stage of the TextByPath pipeline.
type shaper struct {
	enabled bool
	apply   func([]string) ([]string, error)
}

// TextByPath returns a single string extracted by path. The boolean is
// false when nothing matched or Pos is out of range.
//
// Matched values are trimmed and empties dropped, then reshaped in order by
// At, From with To, To alone, From alone. Join, if given, returns the joined
// remainder; otherwise the value at Pos is returned.
func (p *Page) TextByPath(path string, opts ...TextOption) (string, bool, error) {
	var q textQuery
	for _, opt := range opts {
		opt(&q)
	}

	values, err := p.evaluate(path)
	if err != nil {
		return "", false, err
	} else if len(values) == 0 {
		return "", false, nil
	}

	values = compact(values, false)
	pipeline := []shaper{
		{q.at != nil, func(v []string) ([]string, error) {
			i, ok := index(len(v), *q.at)
			if !ok {
				return nil, Errorf(EINDEX, "index %d out of range for %d values at %s (url: %s)", *q.at, len(v), path, p.URL)
			}
			return v[i : i+1], nil
		}},
		{q.from != nil && q.to != nil, func(v []string) ([]string, error) {
			return slice(v, *q.from, *q.to), nil
		}},
		{q.to != nil && q.from == nil, func(v []string) ([]string, error) {
			return slice(v, 0, *q.to), nil
		}},
		{q.from != nil && q.to == nil, func(v []string) ([]string, error) {
			return slice(v, *q.from, len(v)), nil
		}},
	}
	for _, s := range pipeline {
		if !s.enabled {
			continue
		}
		if values, err = s.apply(values); err != nil {
			return "", false, err
		}
	}

	if q.join != nil {
		parts := make([]string, len(values))
		for i, v := range values {
			parts[i] = Trim(v)
		}
		return strings.Join(parts, *q.join), true, nil
	}

	i, ok := index(len(values), q.pos)
	if !ok {
		return "", false, nil
	}
	return Trim(values[i]), true, nil
}

// RequireNonEmpty returns an ENOTFOUND error when path yields no text.
func (p *Page) RequireNonEmpty(path string) error {
	text, ok, err := p.TextByPath(path)
	if err != nil {
		return err
	} else if !ok || text == "" {
		return Errorf(ENOTFOUND, "Invalid request (url: %s)", p.URL)
	}
	return nil
}

// LastPageNumber returns the number of the last page of a paginated listing
// found under prefix, or 1 when the listing has no pagination.
func (p *Page) LastPageNumber(prefix string) (int, error) {
	for _, locator := range []string{PaginationLastPage, PaginationActivePage} {
		text, ok, err := p.TextByPath(prefix + locator)
		if err != nil {
			return 0, err
		} else if !ok || text == "" {
			continue
		}
		return p.parsePageNumber(text)
	}
	return 1, nil
}

// parsePageNumber reads the trailing page indicator of a pagination link,
// e.g. "/verein/spielplan/saison_id/2023?page=7" or ".../page/7".
func (p *Page) parsePageNumber(text string) (int, error) {
	token := text[strings.LastIndex(text, "=")+1:]
	token = token[strings.LastIndex(token, "/")+1:]
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, Errorf(EINDEX, "invalid page number in %q (url: %s)", text, p.URL)
	}
	return n, nil
}

// index resolves i against a sequence of length n. Negative indexes count
// from the end.
func index(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}

// slice returns v[from:to] with negative bounds counting from the end and
// out-of-range bounds clamped.
func slice(v []string, from, to int) []string {
	clamp := func(i int) int {
		if i < 0 {
			i += len(v)
		}
		return max(0, min(i, len(v)))
	}
	from, to = clamp(from), clamp(to)
	if from >= to {
		return []string{}
	}
	return v[from:to]
}
