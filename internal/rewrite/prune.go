package rewrite

import (
	"github.com/campuskit/catview/internal/fragment"
)

// PruneParagraphs removes the requested 1-indexed paragraphs from the
// overview section. Positions index the original document-order paragraph
// list: removing one paragraph never shifts the positions of the rest within
// the same call. Out-of-range positions and duplicates are ignored.
type PruneParagraphs struct {
	Positions []int
}

func (PruneParagraphs) Name() string { return "prune-paragraphs" }

func (p PruneParagraphs) Apply(ctx Context, markup string) (string, error) {
	if ctx.Section != "text" || len(p.Positions) == 0 {
		return markup, nil
	}

	doc, err := fragment.Parse(markup)
	if err != nil {
		return markup, err
	}

	// Snapshot of all paragraphs in document order.
	paragraphs := doc.Find("p").Nodes

	seen := make(map[int]bool)
	for _, pos := range p.Positions {
		if pos < 1 || pos > len(paragraphs) || seen[pos] {
			continue
		}
		seen[pos] = true
		n := paragraphs[pos-1]
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}

	return fragment.Render(doc)
}
