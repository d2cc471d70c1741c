package render

import (
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Supported Markdown flavors.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// Node renderers registered here must beat goldmark's HTML renderer (1000)
// and the highlighting extension (200); lower values win.
const overridePriority = 100

// flavorOrDefault returns the flavor if valid, otherwise GFM.
func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorGFM
	}
}

// newMarkdown creates a goldmark instance for one render.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newMarkdown(opts Options, hr *headingRenderer) goldmark.Markdown {
	extensions := []goldmark.Extender{meta.Meta}
	if opts.Flavor == FlavorGFM {
		extensions = append(extensions, extension.GFM)
	}

	nodeRenderers := []util.PrioritizedValue{util.Prioritized(hr, overridePriority)}
	if opts.Highlight {
		extensions = append(extensions, highlighting.NewHighlighting(
			highlighting.WithStyle(highlightStyle(opts.HighlightStyle)),
			highlighting.WithGuessLanguage(true),
			highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
		))
	} else {
		nodeRenderers = append(nodeRenderers, util.Prioritized(&codeRenderer{}, overridePriority))
	}

	rendererOpts := []renderer.Option{renderer.WithNodeRenderers(nodeRenderers...)}
	if !opts.Safe {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}

	return goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(util.Prioritized(tableClassTransformer{}, overridePriority)),
		),
		goldmark.WithRendererOptions(rendererOpts...),
	)
}

func highlightStyle(name string) string {
	if name == "" {
		return DefaultHighlightStyle
	}
	return name
}
