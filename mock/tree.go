package mock

import "github.com/fwojciec/tmscrape"

var (
	_ tmscrape.Tree      = (*Tree)(nil)
	_ tmscrape.Parser    = (*Parser)(nil)
	_ tmscrape.Sanitizer = (*Sanitizer)(nil)
)

// Tree is a mock implementation of tmscrape.Tree.
type Tree struct {
	EvaluateFn func(path string) ([]string, error)
}

func (t *Tree) Evaluate(path string) ([]string, error) {
	return t.EvaluateFn(path)
}

// Values returns a Tree that answers every path from values, and nothing
// for unknown paths.
func Values(values map[string][]string) *Tree {
	return &Tree{
		EvaluateFn: func(path string) ([]string, error) {
			return values[path], nil
		},
	}
}

// Parser is a mock implementation of tmscrape.Parser.
type Parser struct {
	ParseFn func(body []byte, contentType string) (tmscrape.Tree, error)
}

func (p *Parser) Parse(body []byte, contentType string) (tmscrape.Tree, error) {
	return p.ParseFn(body, contentType)
}

// Sanitizer is a mock implementation of tmscrape.Sanitizer.
type Sanitizer struct {
	SanitizeFn func(body []byte, contentType string) (string, error)
}

func (s *Sanitizer) Sanitize(body []byte, contentType string) (string, error) {
	return s.SanitizeFn(body, contentType)
}
