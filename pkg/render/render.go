// Package render converts Markdown documents containing LaTeX math into
// HTML fragments with numbered headings and a table of contents.
//
// Rendering runs in four steps:
//  1. Math spans are swapped for placeholders (package mathspan).
//  2. goldmark parses the masked text, reading YAML front matter.
//  3. goldmark renders HTML; headings go through a heading.Session.
//  4. The HTML is optionally sanitized, then the math is spliced back.
package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mathdown/pkg/heading"
	"github.com/yaklabco/mathdown/pkg/mathspan"
)

// DefaultTOCTitle heads the table of contents when the document has no title.
const DefaultTOCTitle = "Table of Content"

// Options controls how documents are rendered.
type Options struct {
	// Flavor is FlavorGFM or FlavorCommonMark. Anything else means GFM.
	Flavor string

	// HeadingNumber is the dotted numbering specifier, e.g. "i.a.i".
	// "", "none" and "false" hide the numbers.
	HeadingNumber string

	// TOC requests the table of contents HTML.
	TOC bool

	// Safe drops raw HTML from the Markdown source.
	Safe bool

	// Sanitize passes the generated HTML through a bluemonday policy.
	Sanitize bool

	// Highlight enables chroma syntax highlighting for code blocks.
	Highlight bool

	// HighlightStyle names the chroma style used for highlighting.
	HighlightStyle string
}

// Result is a rendered document.
type Result struct {
	// HTML is the converted content with math restored.
	HTML string `json:"html"`

	// TOC is the table of contents tree.
	TOC []*heading.Node `json:"toc"`

	// TOCHTML is the table of contents as nested lists, set only when
	// the table of contents was requested.
	TOCHTML string `json:"toc_html,omitempty"`

	// Headings lists every heading in document order.
	Headings []heading.Entry `json:"headings"`

	// Math holds the extracted math sources in document order.
	Math mathspan.Registry `json:"math"`

	// Title is the document title from a <title> element in the content
	// or, failing that, from front matter.
	Title string `json:"title,omitempty"`

	// Theme is the theme requested by front matter, if any.
	Theme string `json:"theme,omitempty"`

	// ShowTOC reports whether the table of contents should be displayed,
	// after front matter overrides.
	ShowTOC bool `json:"show_toc"`

	// Meta is the raw front matter.
	Meta map[string]any `json:"meta,omitempty"`

	// HasMath reports whether the document contained any math.
	HasMath bool `json:"has_math"`
}

// TOCTitle returns the heading shown above the table of contents.
func (r *Result) TOCTitle() string {
	if r.Title != "" {
		return r.Title
	}
	return DefaultTOCTitle
}

// Renderer renders documents with a fixed set of options.
// A Renderer is safe for concurrent use; every call builds its own
// converter and heading session.
type Renderer struct {
	opts Options
}

// New creates a renderer.
func New(opts Options) *Renderer {
	opts.Flavor = flavorOrDefault(opts.Flavor)
	return &Renderer{opts: opts}
}

// Options returns the renderer's options.
func (r *Renderer) Options() Options {
	return r.opts
}

//nolint:gochecknoglobals // Compiled once, read-only.
var titlePattern = regexp.MustCompile(`(?is)<title>(.*?)</title>`)

// Render converts source into HTML.
func (r *Renderer) Render(ctx context.Context, source []byte) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("render cancelled: %w", err)
	}

	masked, math := mathspan.Extract(string(source))
	content := []byte(masked)

	hr := &headingRenderer{}
	md := newMarkdown(r.opts, hr)

	pctx := parser.NewContext()
	doc := md.Parser().Parse(text.NewReader(content), parser.WithContext(pctx))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("render cancelled: %w", err)
	}

	fm := readFrontMatter(pctx)
	opts := fm.apply(r.opts)

	session := heading.NewSession(opts.HeadingNumber)
	hr.bind(md.Renderer(), session)

	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, content, doc); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}

	html := buf.String()
	if opts.Sanitize {
		html = sanitize(html)
	}

	spans := math.Spans()
	if len(spans) == 0 {
		// Without math the page loads no typesetter to consume escapes.
		math = math.Unescaped()
	}

	result := &Result{
		HTML:     math.Splice(html),
		TOC:      session.TOC().Tree(),
		Headings: session.Entries(),
		Math:     spans,
		Theme:    fm.theme,
		ShowTOC:  opts.TOC,
		Meta:     fm.raw,
		HasMath:  len(spans) > 0,
	}

	if m := titlePattern.FindStringSubmatch(html); m != nil {
		result.Title = strings.TrimSpace(math.Splice(m[1]))
	} else if fm.title != "" {
		result.Title = math.Splice(fm.title)
	}

	if opts.TOC {
		result.TOCHTML = math.Splice(session.TOC().HTML())
	}

	for i := range result.Headings {
		result.Headings[i].Text = math.Splice(result.Headings[i].Text)
	}
	spliceTree(result.TOC, math)

	return result, nil
}

func spliceTree(nodes []*heading.Node, math mathspan.Registry) {
	for _, n := range nodes {
		n.Title = math.Splice(n.Title)
		spliceTree(n.Children, math)
	}
}

// RenderString is a convenience wrapper around Render.
func (r *Renderer) RenderString(ctx context.Context, source string) (*Result, error) {
	return r.Render(ctx, []byte(source))
}
