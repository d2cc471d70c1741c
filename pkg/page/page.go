// Package page wraps rendered documents into complete, themed HTML pages
// and renders directory listings for the server.
package page

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/yaklabco/mathdown/pkg/render"
)

// Defaults applied when Data leaves a field empty.
const (
	DefaultTitle      = "Wiki"
	DefaultTheme      = "chaitin"
	DefaultAssetsURL  = "https://cdn.ztx.io/strapdown"
	DefaultMathJaxURL = "https://cdn.jsdelivr.net/npm/mathjax@2.7.9/MathJax.js?config=TeX-AMS-MML_SVG"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

//nolint:gochecknoglobals // Parsed once, read-only.
var templates = template.Must(template.ParseFS(templateFS, "templates/*.html.tmpl"))

// Data describes a page to render.
type Data struct {
	// Title is the page title used when the document has none.
	Title string

	// Theme is the theme used when the document does not pick one.
	Theme string

	// AssetsURL is the base URL serving themes/<theme>.min.css.
	AssetsURL string

	// MathJaxURL is the MathJax loader, included only when the
	// document contains math.
	MathJaxURL string

	// HighlightStyle names the chroma style whose CSS is embedded.
	// Leave empty when highlighting is off.
	HighlightStyle string

	// Result is the rendered document.
	Result *render.Result
}

type pageView struct {
	Title         string
	ThemeURL      string
	ResponsiveURL string
	HighlightCSS  template.CSS
	ContentTitle  string
	TOC           template.HTML
	TOCTitle      string
	Content       template.HTML
	MathJaxURL    string
}

// Render writes the complete page for d to w.
func Render(w io.Writer, d Data) error {
	if d.Result == nil {
		return fmt.Errorf("render page: %w", ErrNoDocument)
	}
	res := d.Result

	view := pageView{
		Title:        firstNonEmpty(res.Title, d.Title, DefaultTitle),
		ContentTitle: res.Title,
		TOCTitle:     res.TOCTitle(),
		Content:      template.HTML(res.HTML), //nolint:gosec // Rendered by goldmark, optionally sanitized.
	}
	view.ThemeURL, view.ResponsiveURL = stylesheets(d.AssetsURL, firstNonEmpty(res.Theme, d.Theme, DefaultTheme))

	if res.ShowTOC && res.TOCHTML != "" {
		view.TOC = template.HTML(res.TOCHTML) //nolint:gosec // Built from rendered headings.
	}
	if res.HasMath {
		view.MathJaxURL = firstNonEmpty(d.MathJaxURL, DefaultMathJaxURL)
	}
	if d.HighlightStyle != "" {
		css, err := HighlightCSS(d.HighlightStyle)
		if err != nil {
			return err
		}
		view.HighlightCSS = template.CSS(css) //nolint:gosec // Generated by chroma.
	}

	if err := templates.ExecuteTemplate(w, "page.html.tmpl", view); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

// HighlightCSS returns the class-based stylesheet for a chroma style.
// Unknown styles fall back to chroma's default style.
func HighlightCSS(style string) (string, error) {
	var buf bytes.Buffer
	formatter := html.New(html.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(style)); err != nil {
		return "", fmt.Errorf("write highlight css: %w", err)
	}
	return buf.String(), nil
}

func stylesheets(assetsURL, theme string) (string, string) {
	base := strings.TrimRight(firstNonEmpty(assetsURL, DefaultAssetsURL), "/")
	return base + "/themes/" + strings.ToLower(theme) + ".min.css",
		base + "/themes/bootstrap-responsive.min.css"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
