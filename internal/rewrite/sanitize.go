package rewrite

import (
	"github.com/microcosm-cc/bluemonday"
)

// Sanitize strips scripts and other active content from the semi-trusted
// section markup before the structural passes run. The policy keeps the
// attributes later passes read and write: ids, classes, names, and the
// background-image style the URL resolver rewrites.
type Sanitize struct {
	policy *bluemonday.Policy
}

// NewSanitize builds the sanitizer pass.
func NewSanitize() *Sanitize {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("id", "class", "name").Globally()
	p.AllowAttrs("style").Globally()
	p.AllowStyles("background-image").Globally()
	p.AllowAttrs("target", "rel").OnElements("a")
	return &Sanitize{policy: p}
}

func (*Sanitize) Name() string { return "sanitize" }

func (s *Sanitize) Apply(ctx Context, markup string) (string, error) {
	return s.policy.Sanitize(markup), nil
}
