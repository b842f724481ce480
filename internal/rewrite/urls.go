package rewrite

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"github.com/campuskit/catview/internal/fragment"
)

// AbsoluteURLs rewrites root-relative hyperlinks, image sources, and inline
// CSS background-image URLs to absolute URLs anchored at the source
// document's origin. Absolute, protocol-relative, fragment, and mailto
// targets are left untouched, so the pass cannot double-prefix on a second
// run.
type AbsoluteURLs struct{}

func (AbsoluteURLs) Name() string { return "absolute-urls" }

// Captures background-image: url('/path') with a root-relative path. The
// leading slash must not be followed by another slash (protocol-relative).
var bgImageURL = regexp.MustCompile(`(background-image\s*:\s*url\(\s*['"]?)(/[^/'")][^'")]*)(['"]?\s*\))`)

func (AbsoluteURLs) Apply(ctx Context, markup string) (string, error) {
	doc, err := fragment.Parse(markup)
	if err != nil {
		return markup, err
	}

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		if href, _ := a.Attr("href"); isRootRelative(href) {
			a.SetAttr("href", ctx.Origin+href)
		}
	})

	doc.Find("img[src]").Each(func(_ int, img *goquery.Selection) {
		if src, _ := img.Attr("src"); isRootRelative(src) {
			img.SetAttr("src", ctx.Origin+src)
		}
	})

	doc.Find("[style]").Each(func(_ int, el *goquery.Selection) {
		style, _ := el.Attr("style")
		rewritten := bgImageURL.ReplaceAllString(style, "${1}"+ctx.Origin+"${2}${3}")
		if rewritten != style {
			el.SetAttr("style", rewritten)
		}
	})

	return fragment.Render(doc)
}
