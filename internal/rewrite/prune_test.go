package rewrite

import (
	"strings"
	"testing"
)

func TestPruneParagraphs_OriginalIndexSemantics(t *testing.T) {
	in := `<p>A</p><p>B</p><p>C</p>`
	out, err := PruneParagraphs{Positions: []int{1, 3}}.Apply(Context{Section: "text"}, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, ">A<") || strings.Contains(out, ">C<") {
		t.Errorf("paragraphs 1 and 3 must be removed: %q", out)
	}
	if !strings.Contains(out, "<p>B</p>") {
		t.Errorf("paragraph 2 must survive: %q", out)
	}
}

func TestPruneParagraphs_OutOfRangeIgnored(t *testing.T) {
	in := `<p>A</p><p>B</p>`
	out, err := PruneParagraphs{Positions: []int{5, 2}}.Apply(Context{Section: "text"}, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "<p>A</p>") || strings.Contains(out, "<p>B</p>") {
		t.Errorf("only position 2 should be removed: %q", out)
	}
}

func TestPruneParagraphs_OnlyOverviewSection(t *testing.T) {
	in := `<p>A</p>`
	out, err := PruneParagraphs{Positions: []int{1}}.Apply(Context{Section: "degrees"}, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != in {
		t.Errorf("non-overview sections must be untouched: %q", out)
	}
}

func TestPruneParagraphs_DuplicatesAndNestedParagraphs(t *testing.T) {
	in := `<div><p>A</p></div><p>B</p>`
	out, err := PruneParagraphs{Positions: []int{1, 1}}.Apply(Context{Section: "text"}, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, ">A<") {
		t.Errorf("first paragraph in document order must be removed: %q", out)
	}
	if !strings.Contains(out, "<p>B</p>") {
		t.Errorf("second paragraph must survive a duplicated position: %q", out)
	}
}

func TestPruneParagraphs_NoPositionsNoReparse(t *testing.T) {
	in := `<p>unbalanced <b>markup`
	out, err := PruneParagraphs{}.Apply(Context{Section: "text"}, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != in {
		t.Errorf("empty removal list must be a no-op: %q", out)
	}
}
