// Package goquery implements the lenient parsing stage with goquery. Raw
// markup is parsed the way a browser would, repairing unclosed tags and
// invalid nesting, and can be rendered back as well-formed HTML.
package goquery

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/tmscrape"
	"golang.org/x/net/html/charset"
)

// Ensure Sanitizer implements tmscrape.Sanitizer at compile time.
var _ tmscrape.Sanitizer = (*Sanitizer)(nil)

// ParseLenient parses body into a goquery document. Bodies that are not
// UTF-8 are decoded using the charset in contentType, falling back to the
// document's own meta declaration.
func ParseLenient(body []byte, contentType string) (*goquery.Document, error) {
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return nil, tmscrape.Errorf(tmscrape.EINVALID, "failed to decode HTML: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, tmscrape.Errorf(tmscrape.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// Render serializes a lenient document back into HTML.
func Render(doc *goquery.Document) (string, error) {
	html, err := goquery.OuterHtml(doc.Selection)
	if err != nil {
		return "", tmscrape.Errorf(tmscrape.EINTERNAL, "failed to render HTML: %v", err)
	}
	return html, nil
}

// Sanitizer normalizes markup by a lenient parse followed by a render.
type Sanitizer struct{}

// NewSanitizer creates a new Sanitizer.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{}
}

// Sanitize returns body as well-formed HTML.
func (s *Sanitizer) Sanitize(body []byte, contentType string) (string, error) {
	doc, err := ParseLenient(body, contentType)
	if err != nil {
		return "", err
	}
	return Render(doc)
}
