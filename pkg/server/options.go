package server

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/yaklabco/mathdown/pkg/page"
	"github.com/yaklabco/mathdown/pkg/render"
)

// optionSuffix names the per-document settings file: notes.md is paired
// with notes.md.option.json, a directory with DIR.option.json.
const optionSuffix = ".option.json"

// documentOptions holds per-document overrides. Empty fields keep the
// server defaults. Keys match case-insensitively, so both "Toc" and
// "toc" are accepted.
type documentOptions struct {
	Title         string `json:"Title"`
	Theme         string `json:"Theme"`
	Toc           string `json:"Toc"`
	HeadingNumber string `json:"HeadingNumber"`
}

// loadDocumentOptions reads name's option file. A missing or malformed
// file yields no overrides.
func loadDocumentOptions(name string) documentOptions {
	var opts documentOptions
	data, err := os.ReadFile(name + optionSuffix)
	if err != nil {
		return opts
	}
	if err := json.Unmarshal(data, &opts); err != nil {
		return documentOptions{}
	}
	return opts
}

func (o documentOptions) apply(opts render.Options) render.Options {
	if toc, err := strconv.ParseBool(o.Toc); err == nil {
		opts.TOC = toc
	}
	if o.HeadingNumber != "" {
		opts.HeadingNumber = o.HeadingNumber
	}
	return opts
}

func (o documentOptions) applyPage(d page.Data) page.Data {
	if o.Title != "" {
		d.Title = o.Title
	}
	if o.Theme != "" {
		d.Theme = o.Theme
	}
	return d
}
