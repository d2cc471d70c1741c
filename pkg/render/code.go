package render

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/mathdown/pkg/langdetect"
)

// CodeWrapperClass marks every <pre> produced for a code block.
const CodeWrapperClass = "code-wrapper"

// codeRenderer writes code blocks as
// <pre class="code-wrapper LANG"><code class="language-LANG">.
// Blocks without an info string get a detected language.
type codeRenderer struct{}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *codeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderCode)
	reg.Register(ast.KindCodeBlock, r.renderCode)
}

func (r *codeRenderer) renderCode(
	w util.BufWriter, source []byte, node ast.Node, entering bool,
) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	var body bytes.Buffer
	lines := node.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		body.Write(seg.Value(source))
	}

	lang := ""
	if fenced, ok := node.(*ast.FencedCodeBlock); ok {
		lang = langdetect.Canonical(string(fenced.Language(source)))
	}
	if lang == "" {
		lang = langdetect.Detect(body.Bytes())
	}
	if lang == langdetect.Text {
		lang = ""
	}
	lang = string(util.EscapeHTML([]byte(lang)))

	_, _ = w.WriteString(`<pre class="` + CodeWrapperClass)
	if lang != "" {
		_, _ = w.WriteString(" " + lang + `"><code class="language-` + lang + `">`)
	} else {
		_, _ = w.WriteString(`"><code>`)
	}
	_, _ = w.Write(util.EscapeHTML(body.Bytes()))
	_, _ = w.WriteString("</code></pre>\n")
	return ast.WalkSkipChildren, nil
}
