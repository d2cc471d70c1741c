package render

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

//nolint:gochecknoglobals // Policies are safe for concurrent use once built.
var sanitizePolicy = sync.OnceValue(func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	// Classes carry table styling, code languages and highlighting.
	p.AllowAttrs("class").Globally()

	// Heading anchors.
	p.AllowAttrs("name").OnElements("a")
	p.AllowStyles("position").MatchingEnum("relative").
		OnElements("h1", "h2", "h3", "h4", "h5", "h6")

	// Raw <title> elements name the document.
	p.AllowElements("title")

	return p
})

// sanitize strips unsafe markup from html.
func sanitize(html string) string {
	return sanitizePolicy().Sanitize(html)
}
