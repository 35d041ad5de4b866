package tmscrape

// Tree is a parsed document that answers path queries.
type Tree interface {
	// Evaluate returns the string values selected by the XPath expression
	// path, in document order. Scalar results yield a single value.
	// An empty result is not an error.
	Evaluate(path string) ([]string, error)
}

// Sanitizer normalizes raw, possibly malformed markup into well-formed HTML.
type Sanitizer interface {
	Sanitize(body []byte, contentType string) (string, error)
}

// Parser converts a raw response body into a queryable tree.
type Parser interface {
	Parse(body []byte, contentType string) (Tree, error)
}
