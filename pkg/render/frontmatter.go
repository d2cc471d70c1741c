package render

import (
	"fmt"
	"strconv"

	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
)

// Front matter keys understood by the renderer.
const (
	metaTitle         = "title"
	metaTheme         = "theme"
	metaTOC           = "toc"
	metaHeadingNumber = "heading_number"
)

// frontMatter holds the per-document settings read from YAML front matter.
type frontMatter struct {
	raw           map[string]any
	title         string
	theme         string
	toc           *bool
	headingNumber *string
}

func readFrontMatter(pctx parser.Context) frontMatter {
	raw := meta.Get(pctx)
	if len(raw) == 0 {
		return frontMatter{}
	}
	for k, v := range raw {
		raw[k] = stringKeys(v)
	}
	fm := frontMatter{raw: raw}

	fm.title = scalar(raw[metaTitle])
	fm.theme = scalar(raw[metaTheme])

	if v, ok := raw[metaTOC]; ok {
		show := truthy(v)
		fm.toc = &show
	}
	if v, ok := raw[metaHeadingNumber]; ok {
		spec := scalar(v)
		fm.headingNumber = &spec
	}

	return fm
}

// apply overlays the front matter on the renderer options.
func (fm frontMatter) apply(opts Options) Options {
	if fm.toc != nil {
		opts.TOC = *fm.toc
	}
	if fm.headingNumber != nil {
		opts.HeadingNumber = *fm.headingNumber
	}
	return opts
}

func scalar(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

// truthy accepts YAML booleans and the strings "true", "yes", "on" and "1".
func truthy(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
		return val == "yes" || val == "on"
	default:
		return false
	}
}

// stringKeys converts the map[any]any values produced by the YAML decoder
// into map[string]any so the front matter can be encoded as JSON.
func stringKeys(v any) any {
	switch val := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = stringKeys(item)
		}
		return out
	case map[string]any:
		for k, item := range val {
			val[k] = stringKeys(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = stringKeys(item)
		}
		return val
	default:
		return v
	}
}
