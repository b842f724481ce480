// Package rewrite implements the structural rewrite passes applied to each
// catalog section's HTML fragment. Every pass re-parses the serialized output
// of the previous pass, mutates its own tree, and serializes it back; passes
// never share a live tree.
package rewrite

import (
	"regexp"
	"strings"

	"github.com/campuskit/catview/internal/fragment"
	"golang.org/x/net/html"
)

// Context carries the per-section inputs every pass sees. Immutable for the
// duration of a section's pipeline run.
type Context struct {
	Section string // lowercase section tag name
	Origin  string // scheme://host of the source document, no trailing slash
}

// Pass is a single fragment rewrite. Apply must tolerate malformed markup:
// it works best-effort on whatever tree the parser produced and only returns
// an error for failures outside the markup itself (the orchestrator then
// keeps the pre-pass markup).
type Pass interface {
	Name() string
	Apply(ctx Context, markup string) (string, error)
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases text and collapses every run of non-alphanumeric
// characters into a single hyphen.
func Slugify(s string) string {
	s = nonAlnum.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}

// appendClasses adds class tokens to a node's class attribute, preserving
// whatever was already there and skipping tokens already present.
func appendClasses(n *html.Node, classes ...string) {
	existing, _ := fragment.GetAttr(n, "class")
	have := make(map[string]bool)
	for _, c := range strings.Fields(existing) {
		have[c] = true
	}
	out := strings.TrimSpace(existing)
	for _, c := range classes {
		if c == "" || have[c] {
			continue
		}
		have[c] = true
		if out != "" {
			out += " "
		}
		out += c
	}
	fragment.SetAttr(n, "class", out)
}

// classContains reports whether a node's class attribute contains the given
// substring, case-insensitively.
func classContains(n *html.Node, sub string) bool {
	cls, ok := fragment.GetAttr(n, "class")
	return ok && strings.Contains(strings.ToLower(cls), sub)
}

// hasClassToken reports whether a node's class list contains the exact token.
func hasClassToken(n *html.Node, token string) bool {
	cls, _ := fragment.GetAttr(n, "class")
	for _, c := range strings.Fields(cls) {
		if strings.EqualFold(c, token) {
			return true
		}
	}
	return false
}

func isRootRelative(target string) bool {
	return strings.HasPrefix(target, "/") && !strings.HasPrefix(target, "//")
}

var schemePrefix = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)

func isAbsolute(target string) bool {
	return schemePrefix.MatchString(target)
}
