package htmlquery

import "github.com/fwojciec/tmscrape"

// Ensure Parser implements tmscrape.Parser at compile time.
var _ tmscrape.Parser = (*Parser)(nil)

// Parser sanitizes raw markup and builds a Tree from the result, so the
// strict query engine never sees malformed input.
type Parser struct {
	Sanitizer tmscrape.Sanitizer
}

// NewParser creates a new Parser.
func NewParser(sanitizer tmscrape.Sanitizer) *Parser {
	return &Parser{Sanitizer: sanitizer}
}

// Parse runs both stages on body.
func (p *Parser) Parse(body []byte, contentType string) (tmscrape.Tree, error) {
	markup, err := p.Sanitizer.Sanitize(body, contentType)
	if err != nil {
		return nil, err
	}

	tree, err := ToQueryable(markup)
	if err != nil {
		return nil, err
	}
	return tree, nil
}
