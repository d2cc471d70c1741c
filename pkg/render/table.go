package render

import (
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// TableClass is the class attribute given to every table.
const TableClass = "table table-striped table-bordered"

// tableClassTransformer styles GFM tables.
type tableClassTransformer struct{}

// Transform implements parser.ASTTransformer.
func (tableClassTransformer) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && n.Kind() == east.KindTable {
			n.SetAttributeString("class", []byte(TableClass))
		}
		return ast.WalkContinue, nil
	})
}
