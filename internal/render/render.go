// Package render orchestrates the per-section rewrite pipeline and assembles
// the final composite fragment. The caller always gets renderable HTML back:
// a success fragment or an inline error fragment, never an error value.
package render

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/campuskit/catview/internal/catalog"
	"github.com/campuskit/catview/internal/rewrite"
	"golang.org/x/net/html"
)

// Request carries the three directive attributes of one render invocation.
type Request struct {
	URL              string
	Tabs             string
	RemoveParagraphs []int
}

// Renderer runs the pipeline. Safe for concurrent use; each invocation is
// self-contained and shares no mutable state.
type Renderer struct {
	fetcher  *catalog.Fetcher
	sanitize *rewrite.Sanitize // nil disables the sanitizer pass
	log      *slog.Logger
}

// New creates a Renderer. Pass a nil sanitizer to skip sanitization.
func New(fetcher *catalog.Fetcher, sanitize *rewrite.Sanitize, log *slog.Logger) *Renderer {
	return &Renderer{fetcher: fetcher, sanitize: sanitize, log: log}
}

// Render produces the composite HTML fragment for one request.
func (r *Renderer) Render(ctx context.Context, req Request) string {
	if strings.TrimSpace(req.URL) == "" {
		return ErrorFragment("catalog url is required")
	}
	origin, err := originOf(req.URL)
	if err != nil {
		return ErrorFragment("catalog url is not valid")
	}

	data, err := r.fetcher.Fetch(ctx, req.URL)
	if err != nil {
		r.log.Warn("catalog fetch failed", "url", req.URL, "error", err)
		return ErrorFragment("the course catalog could not be loaded")
	}

	doc, err := catalog.Parse(data)
	if err != nil {
		r.log.Warn("catalog parse failed", "url", req.URL, "error", err)
		return ErrorFragment("the course catalog could not be read")
	}

	var b strings.Builder
	b.WriteString(`<div class="course-catalog">`)
	for _, sec := range doc.Select(req.Tabs) {
		body := r.renderSection(sec, origin, req.RemoveParagraphs)
		fmt.Fprintf(&b, `<div class="catalog-section" id="catalog-%s">`, html.EscapeString(sec.Name))
		fmt.Fprintf(&b, `<h2 class="catalog-section-title">%s</h2>`, html.EscapeString(sec.Label))
		b.WriteString(`<div class="catalog-section-body">`)
		b.WriteString(body)
		b.WriteString(`</div></div>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}

// renderSection runs the rewrite passes in pipeline order. A failing pass is
// skipped and the section keeps its pre-pass markup; one broken section never
// aborts the invocation.
func (r *Renderer) renderSection(sec catalog.Section, origin string, removals []int) string {
	rc := rewrite.Context{Section: sec.Name, Origin: origin}

	var passes []rewrite.Pass
	if r.sanitize != nil {
		passes = append(passes, r.sanitize)
	}
	passes = append(passes,
		rewrite.NavigationIDs{},
		rewrite.AbsoluteURLs{},
		rewrite.ListClasses{},
		rewrite.PageWording{},
		rewrite.HardenLinks{},
	)
	if sec.Name == "text" && len(removals) > 0 {
		passes = append(passes, rewrite.PruneParagraphs{Positions: removals})
	}

	body := sec.Markup
	for _, p := range passes {
		out, err := p.Apply(rc, body)
		if err != nil {
			r.log.Warn("rewrite pass failed", "pass", p.Name(), "section", sec.Name, "error", err)
			continue
		}
		body = out
	}
	return body
}

// ErrorFragment renders a terminal error as inline styled text so the host
// page always receives renderable output.
func ErrorFragment(msg string) string {
	return `<div class="course-catalog course-catalog-error" style="color:#b30000;border:1px solid #b30000;padding:0.5em;">` +
		html.EscapeString(msg) + `</div>`
}

// originOf extracts scheme://host from the source URL, ignoring path and
// query.
func originOf(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("url %q has no scheme or host", rawURL)
	}
	return u.Scheme + "://" + u.Host, nil
}
