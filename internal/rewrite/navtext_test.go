package rewrite

import (
	"strings"
	"testing"
)

var wordCtx = Context{Section: "text"}

func TestPageWording_TitleMarkerReplaced(t *testing.T) {
	in := `<div class="otp on-this-page-title">Links on this tab</div>`
	out, err := PageWording{}.Apply(wordCtx, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "<h2") {
		t.Errorf("title marker must become a heading: %q", out)
	}
	if !strings.Contains(out, "Links On This Page") {
		t.Errorf("tab wording not normalized: %q", out)
	}
	if !strings.Contains(out, `class="otp on-this-page-title"`) {
		t.Errorf("original classes must be copied onto the heading: %q", out)
	}
	if strings.Contains(out, "<div") {
		t.Errorf("original element must be replaced: %q", out)
	}
}

func TestPageWording_AllPhrasings(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Sections on this tab", "Sections On This Page"},
		{"Listed in this tab", "Listed On This Page"},
		{"See THIS TAB below", "See On This Page below"},
	}
	for _, c := range cases {
		if got := replaceTabPhrases(c.in); got != c.want {
			t.Errorf("replaceTabPhrases(%q): expected %q, got %q", c.in, c.want, got)
		}
	}
}

func TestPageWording_NavAncestorTextFixed(t *testing.T) {
	in := `<div class="sidebar-nav"><span>Jump to areas on this tab</span></div>`
	out, err := PageWording{}.Apply(wordCtx, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Jump to areas On This Page") {
		t.Errorf("nav text not fixed in place: %q", out)
	}
	if !strings.Contains(out, "<span>") {
		t.Errorf("no structural replacement expected for nav text: %q", out)
	}
}

func TestPageWording_UnrelatedTextUntouched(t *testing.T) {
	in := `<p>See the table of fees on this tab.</p>`
	out, err := PageWording{}.Apply(wordCtx, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "on this tab") {
		t.Errorf("text outside nav markers must be untouched: %q", out)
	}
}
