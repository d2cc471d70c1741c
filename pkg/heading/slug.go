package heading

import (
	"regexp"
	"strings"
)

// slugUnsafe matches runs of characters that cannot appear in an anchor name.
//
//nolint:gochecknoglobals // Compiled once, read-only.
var slugUnsafe = regexp.MustCompile(`[^-_.\w\x{00A0}-\x{D7FF}\x{F900}-\x{FDCF}\x{FDF0}-\x{FFEF}]+`)

// Slug builds the anchor name for a heading: "h", the heading number, an
// underscore, then the lowercased text with unsafe runs replaced by "-".
//
// Two headings with the same number and text share a slug.
func Slug(number, text string) string {
	return "h" + number + "_" + slugUnsafe.ReplaceAllString(strings.ToLower(text), "-")
}
