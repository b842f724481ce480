package rewrite

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/campuskit/catview/internal/fragment"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ListClasses annotates list containers, lists, and list items with semantic
// CSS classes so themes can target program listings without caring how the
// authoring tool structured them. Container and list classes derive from the
// nearest preceding heading; item classes derive from the link text plus
// heuristic hints parsed out of the link target.
type ListClasses struct{}

func (ListClasses) Name() string { return "list-classes" }

// A 2-4 letter uppercase degree code sandwiched in the target path, e.g.
// program_MS_online or cs_BS/.
var degreeCode = regexp.MustCompile(`_([A-Z]{2,4})(?:[_/]|$)`)

var graduateCodes = map[string]bool{
	"ms": true, "ma": true, "mba": true, "mfa": true, "med": true,
	"meng": true, "mph": true, "phd": true, "edd": true, "dnp": true,
}

var undergraduateCodes = map[string]bool{
	"bs": true, "ba": true, "bfa": true, "bas": true,
	"aa": true, "as": true, "aas": true,
}

func (ListClasses) Apply(ctx Context, markup string) (string, error) {
	doc, err := fragment.Parse(markup)
	if err != nil {
		return markup, err
	}
	root := fragment.Body(doc)

	doc.Find("ul, ol").Each(func(_ int, list *goquery.Selection) {
		ln := list.Get(0)
		container := ln.Parent

		// Top-level lists sit directly under the implied body wrapper,
		// which is not part of the fragment: anchor the heading search
		// at the list itself and skip container classes.
		anchor := container
		realContainer := container != nil && container.Type == html.ElementNode &&
			container.DataAtom != atom.Body && container.DataAtom != atom.Html
		if !realContainer {
			anchor = ln
		}

		slug := ""
		if h := precedingHeading(root, anchor); h != nil {
			slug = Slugify(fragment.Text(h))
		}

		if realContainer {
			base := "general-list"
			if slug != "" {
				base = slug + "-list"
			}
			appendClasses(container, base, "course-list-container", "section-"+ctx.Section)
		}

		base := "general-ul"
		if slug != "" {
			base = slug + "-ul"
		}
		appendClasses(ln, "course-list", base)
	})

	doc.Find("li").Each(func(_ int, li *goquery.Selection) {
		link := li.Find("a[href]").First()
		if link.Length() == 0 {
			return
		}
		var classes []string
		if s := Slugify(link.Text()); s != "" {
			classes = append(classes, s)
		}
		classes = append(classes, classifyTarget(link.AttrOr("href", ""))...)
		appendClasses(li.Get(0), classes...)
	})

	return fragment.Render(doc)
}

// precedingHeading finds the nearest heading before the anchor node:
// direct previous siblings first, then the last heading preceding the anchor
// in document order.
func precedingHeading(root, anchor *html.Node) *html.Node {
	if anchor == nil {
		return nil
	}
	for s := anchor.PrevSibling; s != nil; s = s.PrevSibling {
		if fragment.IsHeading(s) {
			return s
		}
	}
	if root == nil {
		return nil
	}
	var last *html.Node
	done := false
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if done {
			return
		}
		if n == anchor {
			done = true
			return
		}
		if fragment.IsHeading(n) {
			last = n
		}
		for c := n.FirstChild; c != nil && !done; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return last
}

// classifyTarget scans a link target for degree, program-type, level, and
// department hints. Matches are non-exclusive; each rule appends at most one
// class, in fixed order.
func classifyTarget(target string) []string {
	if target == "" {
		return nil
	}
	var classes []string

	code := ""
	if m := degreeCode.FindStringSubmatch(target); m != nil {
		code = strings.ToLower(m[1])
		classes = append(classes, "degree-"+code)
	}

	lower := strings.ToLower(target)
	if strings.Contains(lower, "minor") {
		classes = append(classes, "type-minor")
	}
	if strings.Contains(lower, "certificate") || strings.Contains(lower, "_cert") {
		classes = append(classes, "type-certificate")
	}
	if strings.Contains(lower, "online") || strings.Contains(lower, "distance") {
		classes = append(classes, "type-online")
	}
	if (strings.Contains(lower, "graduate") && !strings.Contains(lower, "undergraduate")) ||
		graduateCodes[code] {
		classes = append(classes, "level-graduate")
	}
	if strings.Contains(lower, "undergrad") || undergraduateCodes[code] {
		classes = append(classes, "level-undergraduate")
	}

	if dept := departmentSegment(target); dept != "" {
		classes = append(classes, "dept-"+dept)
	}
	return classes
}

// departmentSegment slugifies the path segment immediately before the final
// one, which in catalog URLs names the owning department.
func departmentSegment(target string) string {
	path := target
	if u, err := url.Parse(target); err == nil && u.Path != "" {
		path = u.Path
	}
	var segs []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	if len(segs) < 2 {
		return ""
	}
	return Slugify(segs[len(segs)-2])
}
