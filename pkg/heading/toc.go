package heading

import (
	"html"
	"strings"
)

// Node is one element of a table of contents: either a leaf linking to a
// heading or a nested list of nodes one level deeper.
type Node struct {
	Target   string  `json:"target,omitempty"`
	Title    string  `json:"title,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

// IsList reports whether the node is a nested list rather than a leaf.
// Leaves always carry a target.
func (n *Node) IsList() bool {
	return n.Target == ""
}

// TOC is the table of contents tree built while headings are rendered.
type TOC struct {
	Items []*Node `json:"items"`
}

// Insert adds a leaf for a heading at level.
//
// The leaf lands level-1 lists deep. At each step the walk descends into
// the last sibling when it is already a list and opens a new list
// otherwise, so a level-3 heading directly under a level-1 heading still
// ends up two lists deep.
func (t *TOC) Insert(level int, target, title string) {
	level = clampLevel(level)

	items := &t.Items
	for range level - 1 {
		if n := len(*items); n == 0 || !(*items)[n-1].IsList() {
			*items = append(*items, &Node{})
		}
		last := (*items)[len(*items)-1]
		items = &last.Children
	}
	*items = append(*items, &Node{Target: target, Title: title})
}

// Empty reports whether no heading has been inserted.
func (t *TOC) Empty() bool {
	return len(t.Items) == 0
}

// Tree returns the top-level nodes.
func (t *TOC) Tree() []*Node {
	return t.Items
}

// HTML renders the tree as nested <ul> lists. Nested lists sit directly
// inside their parent list. Titles are inserted as HTML, targets are
// attribute-escaped.
func (t *TOC) HTML() string {
	var b strings.Builder
	writeList(&b, t.Items)
	return b.String()
}

func writeList(b *strings.Builder, nodes []*Node) {
	b.WriteString("<ul>")
	for _, n := range nodes {
		if n.IsList() {
			writeList(b, n.Children)
			continue
		}
		b.WriteString(`<li><a href="`)
		b.WriteString(html.EscapeString(n.Target))
		b.WriteString(`">`)
		b.WriteString(n.Title)
		b.WriteString("</a></li>")
	}
	b.WriteString("</ul>")
}

// Text renders the tree as an indented plain-text outline, two spaces
// per nesting level, one heading per line.
func (t *TOC) Text() string {
	var b strings.Builder
	writeText(&b, t.Items, 0)
	return b.String()
}

func writeText(b *strings.Builder, nodes []*Node, depth int) {
	for _, n := range nodes {
		if n.IsList() {
			writeText(b, n.Children, depth+1)
			continue
		}
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(n.Title)
		b.WriteByte('\n')
	}
}
