package rewrite

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/campuskit/catview/internal/fragment"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NavigationIDs namespaces heading ids and in-page anchors by section so ids
// stay unique even when two sections reuse the same upstream raw id. Anchors
// get an onclick binding to the page-global scrollToSection function and keep
// working as plain fragment links when scripting is unavailable.
type NavigationIDs struct{}

func (NavigationIDs) Name() string { return "navigation-ids" }

func (NavigationIDs) Apply(ctx Context, markup string) (string, error) {
	doc, err := fragment.Parse(markup)
	if err != nil {
		return markup, err
	}

	prefix := ctx.Section + "_section_"

	doc.Find("h1,h2,h3,h4,h5,h6").Each(func(_ int, h *goquery.Selection) {
		// data-section-id is only ever written by this pass; its
		// presence marks an already-processed heading.
		if _, done := h.Attr("data-section-id"); done {
			return
		}
		raw, ok := h.Attr("id")
		if !ok {
			return
		}
		raw = safeRawID(raw)
		if raw == "" {
			return
		}
		unique := prefix + raw
		h.SetAttr("id", unique)
		h.SetAttr("data-section-id", unique)
		if c := containerOf(h.Get(0)); c != nil {
			fragment.SetAttr(c, "data-section-id", unique)
		}
	})

	doc.Find(`a[href^="#"]`).Each(func(_ int, a *goquery.Selection) {
		if _, done := a.Attr("onclick"); done {
			return
		}
		href, _ := a.Attr("href")
		raw := safeRawID(strings.TrimPrefix(href, "#"))
		if raw == "" {
			return
		}
		unique := prefix + raw
		a.SetAttr("href", "#"+unique)
		a.SetAttr("onclick", fmt.Sprintf("scrollToSection('%s'); return false;", unique))
	})

	return fragment.Render(doc)
}

// Raw ids come from the semi-trusted section markup and end up inside an
// inline script string; anything beyond plain id characters is dropped so a
// crafted fragment cannot break out of the scrollToSection call.
var unsafeIDChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

func safeRawID(raw string) string {
	return unsafeIDChars.ReplaceAllString(raw, "")
}

// containerOf walks up the parent chain to the nearest block container. The
// implied body/html wrapper does not count; a heading with no real container
// is skipped silently.
func containerOf(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type != html.ElementNode {
			continue
		}
		switch p.DataAtom {
		case atom.Div, atom.Section, atom.Article, atom.Aside, atom.Td:
			return p
		case atom.Body, atom.Html:
			return nil
		}
	}
	return nil
}
