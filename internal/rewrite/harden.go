package rewrite

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/campuskit/catview/internal/fragment"
	"golang.org/x/net/html"
)

// HardenLinks forces non-navigational hyperlinks to open in a new browsing
// context with noopener/noreferrer semantics. In-page anchors, links carrying
// a click-behavior binding, and links inside on-this-page navigation chrome
// are left untouched. Attributes are set rather than appended, so running the
// pass again changes nothing.
type HardenLinks struct{}

func (HardenLinks) Name() string { return "harden-links" }

func (HardenLinks) Apply(ctx Context, markup string) (string, error) {
	doc, err := fragment.Parse(markup)
	if err != nil {
		return markup, err
	}

	// Pass 1: links inside list items.
	doc.Find("li a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if strings.HasPrefix(href, "#") {
			return
		}
		if _, ok := a.Attr("onclick"); ok {
			return
		}
		if a.AttrOr("target", "") == "_blank" {
			return
		}
		openInNewContext(a.Get(0))
	})

	// Pass 2: any absolute or root-relative link outside navigation chrome.
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if strings.HasPrefix(href, "#") {
			return
		}
		if _, ok := a.Attr("onclick"); ok {
			return
		}
		if !isAbsolute(href) && !isRootRelative(href) {
			return
		}
		if inNavChrome(a.Get(0)) {
			return
		}
		openInNewContext(a.Get(0))
	})

	return fragment.Render(doc)
}

func openInNewContext(n *html.Node) {
	fragment.SetAttr(n, "target", "_blank")
	rel, _ := fragment.GetAttr(n, "rel")
	tokens := strings.Fields(rel)
	have := make(map[string]bool)
	for _, t := range tokens {
		have[strings.ToLower(t)] = true
	}
	for _, want := range []string{"noopener", "noreferrer"} {
		if !have[want] {
			tokens = append(tokens, want)
		}
	}
	fragment.SetAttr(n, "rel", strings.Join(tokens, " "))
}

// inNavChrome reports whether any ancestor carries an on-this-page or
// not-in-pdf class marker, meaning the link is in-page navigation chrome.
func inNavChrome(n *html.Node) bool {
	if n == nil {
		return false
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type != html.ElementNode {
			continue
		}
		if classContains(p, "on-this-page") || classContains(p, "not-in-pdf") {
			return true
		}
	}
	return false
}
