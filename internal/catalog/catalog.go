// Package catalog loads a course-catalog XML export and exposes its top-level
// children as displayable sections.
package catalog

import (
	"encoding/xml"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// Section is one top-level child of the catalog document.
type Section struct {
	Name   string // lowercase tag name
	Label  string // display label for the section heading
	Markup string // raw HTML markup embedded in the node
}

// Document is the parsed catalog. Sections keep document order; lookups are
// by lowercase tag name.
type Document struct {
	sections []Section
	index    map[string]int
}

type xmlNode struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Inner   string     `xml:",innerxml"`
}

type xmlRoot struct {
	XMLName xml.Name
	Nodes   []xmlNode `xml:",any"`
}

// Parse builds a Document from raw catalog XML. A child named "title" is
// never a displayable section and is skipped.
func Parse(data []byte) (*Document, error) {
	var root xmlRoot
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse catalog xml: %w", err)
	}

	doc := &Document{index: make(map[string]int)}
	for _, n := range root.Nodes {
		name := strings.ToLower(n.XMLName.Local)
		if name == "title" {
			continue
		}
		if _, ok := doc.index[name]; ok {
			// First occurrence wins for duplicate tag names.
			continue
		}
		doc.index[name] = len(doc.sections)
		doc.sections = append(doc.sections, Section{
			Name:   name,
			Label:  labelFor(name, n.Attrs),
			Markup: unwrapMarkup(n.Inner),
		})
	}
	return doc, nil
}

// Sections returns all displayable sections in discovery order.
func (d *Document) Sections() []Section {
	return d.sections
}

// Select resolves a comma-separated tab string against the discovered
// sections. An empty string (or one that trims down to no tokens) selects
// everything in discovery order. Unknown tokens are dropped silently;
// duplicates select a section once; known tokens keep the caller's order.
func (d *Document) Select(tabs string) []Section {
	var out []Section
	sawToken := false
	used := make(map[string]bool)
	for _, tok := range strings.Split(tabs, ",") {
		key := strings.ToLower(strings.TrimSpace(tok))
		if key == "" {
			continue
		}
		sawToken = true
		if used[key] {
			continue
		}
		used[key] = true
		if i, ok := d.index[key]; ok {
			out = append(out, d.sections[i])
		}
	}
	if !sawToken {
		return d.sections
	}
	return out
}

// labelFor derives a section's display label: "text" is always "Overview",
// an explicit name attribute wins, otherwise the tag name is prettified.
func labelFor(name string, attrs []xml.Attr) string {
	if name == "text" {
		return "Overview"
	}
	for _, a := range attrs {
		if strings.EqualFold(a.Name.Local, "name") && a.Value != "" {
			return a.Value
		}
	}
	label := strings.ReplaceAll(name, "_", " ")
	r := []rune(label)
	if len(r) > 0 {
		r[0] = unicode.ToUpper(r[0])
	}
	return string(r)
}

// unwrapMarkup normalizes the raw inner XML of a section node. Authoring
// tools emit the embedded HTML either as a CDATA block or entity-escaped;
// both forms come out as plain markup.
func unwrapMarkup(inner string) string {
	s := strings.TrimSpace(inner)
	if strings.HasPrefix(s, "<![CDATA[") && strings.HasSuffix(s, "]]>") {
		return strings.TrimSpace(s[len("<![CDATA[") : len(s)-len("]]>")])
	}
	if !strings.Contains(s, "<") && strings.Contains(s, "&lt;") {
		return html.UnescapeString(s)
	}
	return s
}
