package render

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/mathdown/pkg/heading"
)

// headingRenderer hands every heading to a heading.Session.
// The inner HTML is produced by the same goldmark renderer, so inline
// markup inside headings renders as usual.
type headingRenderer struct {
	inner   renderer.Renderer
	session *heading.Session
}

func (r *headingRenderer) bind(inner renderer.Renderer, session *heading.Session) {
	r.inner = inner
	r.session = session
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *headingRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHeading, r.renderHeading)
}

func (r *headingRenderer) renderHeading(
	w util.BufWriter, source []byte, node ast.Node, entering bool,
) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n, ok := node.(*ast.Heading)
	if !ok {
		return ast.WalkContinue, nil
	}

	var inner bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if err := r.inner.Render(&inner, source, c); err != nil {
			return ast.WalkStop, err
		}
	}

	_, _ = w.WriteString(r.session.Heading(inner.String(), n.Level))
	_ = w.WriteByte('\n')
	return ast.WalkSkipChildren, nil
}
