package rewrite

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/campuskit/catview/internal/fragment"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PageWording rewrites "tab"-themed UI copy to "page"-themed copy. The
// upstream authoring tool renders sections as tabs; once flattened onto a
// single page that wording is wrong.
type PageWording struct{}

func (PageWording) Name() string { return "page-wording" }

const onThisPageTitleMarker = "on-this-page-title"

var tabPhrases = regexp.MustCompile(`(?i)on this tab|in this tab|this tab`)

func replaceTabPhrases(s string) string {
	return tabPhrases.ReplaceAllString(s, "On This Page")
}

func (PageWording) Apply(ctx Context, markup string) (string, error) {
	doc, err := fragment.Parse(markup)
	if err != nil {
		return markup, err
	}

	// Title markers are replaced wholesale by a heading carrying the same
	// classes and the normalized text.
	replaced := make(map[*html.Node]bool)
	doc.Find("[class]").Each(func(_ int, el *goquery.Selection) {
		n := el.Get(0)
		if !hasClassToken(n, onThisPageTitleMarker) {
			return
		}
		text := fragment.Text(n)
		if !tabPhrases.MatchString(text) {
			return
		}
		cls, _ := fragment.GetAttr(n, "class")
		h := &html.Node{
			Type:     html.ElementNode,
			Data:     "h2",
			DataAtom: atom.H2,
			Attr:     []html.Attribute{{Key: "class", Val: cls}},
		}
		h.AppendChild(&html.Node{Type: html.TextNode, Data: replaceTabPhrases(text)})
		if n.Parent == nil {
			return
		}
		n.Parent.InsertBefore(h, n)
		n.Parent.RemoveChild(n)
		replaced[h] = true
	})

	// Remaining tab wording inside navigation chrome is fixed in place,
	// without structural replacement.
	root := fragment.Body(doc)
	if root != nil {
		var walk func(*html.Node)
		walk = func(n *html.Node) {
			if replaced[n] {
				return
			}
			if n.Type == html.TextNode && strings.Contains(strings.ToLower(n.Data), "tab") {
				if underNavMarker(n) {
					n.Data = replaceTabPhrases(n.Data)
				}
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
		}
		walk(root)
	}

	return fragment.Render(doc)
}

// underNavMarker reports whether any ancestor carries a navigation or
// menu-related class marker.
func underNavMarker(n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type != html.ElementNode {
			continue
		}
		if classContains(p, "nav") || classContains(p, "menu") || classContains(p, "on-this-page") {
			return true
		}
	}
	return false
}
