// Package fragment is the DOM adapter for the rewrite pipeline: it parses an
// HTML fragment string into a mutable, queryable tree and serializes it back
// without introducing a document wrapper.
package fragment

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse builds a queryable document from a fragment string. The parser is
// best-effort: unbalanced or partial markup yields whatever tree results,
// never an error for malformed content.
func Parse(markup string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(markup))
}

// Render serializes the fragment back to a string. Parsing wraps fragments in
// an implied html/body scaffold; rendering returns only the body's inner HTML
// so repeated parse/render cycles are stable.
func Render(doc *goquery.Document) (string, error) {
	body := doc.Find("body")
	if body.Length() == 0 {
		return goquery.OuterHtml(doc.Selection)
	}
	return body.Html()
}

// Body returns the implied body element of a parsed fragment, or nil.
func Body(doc *goquery.Document) *html.Node {
	if body := doc.Find("body"); body.Length() > 0 {
		return body.Get(0)
	}
	return nil
}

// GetAttr returns the value of an attribute on an element node.
func GetAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces an attribute on an element node.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// Text extracts the trimmed text content of a node subtree.
func Text(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(buf.String())
}

// IsHeading reports whether a node is one of h1..h6.
func IsHeading(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}

// IsElement reports whether a node is an element with the given tag.
func IsElement(n *html.Node, tag atom.Atom) bool {
	return n != nil && n.Type == html.ElementNode && n.DataAtom == tag
}
