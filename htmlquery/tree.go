// Package htmlquery implements the queryable stage of parsing: sanitized
// markup becomes a tree that answers XPath expressions.
package htmlquery

import (
	"strconv"
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"github.com/fwojciec/tmscrape"
	"golang.org/x/net/html"
)

// Ensure Tree implements tmscrape.Tree at compile time.
var _ tmscrape.Tree = (*Tree)(nil)

// Tree is an XPath-queryable HTML document.
type Tree struct {
	root *html.Node
}

// ToQueryable parses markup into a Tree. The markup is expected to have
// been sanitized already.
func ToQueryable(markup string) (*Tree, error) {
	root, err := htmlquery.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, tmscrape.Errorf(tmscrape.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Tree{root: root}, nil
}

// Root returns the document node.
func (t *Tree) Root() *html.Node {
	return t.root
}

// HTML renders the whole tree.
func (t *Tree) HTML() string {
	return htmlquery.OutputHTML(t.root, true)
}

// Evaluate returns the string value of every node selected by path.
// Elements yield their inner text, attributes their value. Expressions
// that evaluate to a string, number or boolean yield one value, except
// for the empty string which yields none.
func (t *Tree) Evaluate(path string) ([]string, error) {
	expr, err := xpath.Compile(path)
	if err != nil {
		return nil, tmscrape.Errorf(tmscrape.EINVALID, "invalid path %q: %v", path, err)
	}

	switch v := expr.Evaluate(htmlquery.CreateXPathNavigator(t.root)).(type) {
	case *xpath.NodeIterator:
		var values []string
		for v.MoveNext() {
			values = append(values, v.Current().Value())
		}
		return values, nil
	case string:
		if v == "" {
			return nil, nil
		}
		return []string{v}, nil
	case float64:
		return []string{strconv.FormatFloat(v, 'f', -1, 64)}, nil
	case bool:
		return []string{strconv.FormatBool(v)}, nil
	}
	return nil, nil
}
