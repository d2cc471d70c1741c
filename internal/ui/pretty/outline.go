package pretty

import (
	"strings"

	"github.com/yaklabco/mathdown/pkg/heading"
)

const outlineIndent = "  "

// FormatOutline renders headings as an indented outline. Indentation is
// relative to the shallowest heading. Numbers are shown when numbered is
// set; text is printed as rendered, inline markup included.
func (s *Styles) FormatOutline(entries []heading.Entry, numbered bool) string {
	if len(entries) == 0 {
		return ""
	}

	top := heading.Levels
	for _, e := range entries {
		top = min(top, e.Level)
	}

	var builder strings.Builder
	for _, e := range entries {
		builder.WriteString(s.OutlineGuide.Render(strings.Repeat(outlineIndent, e.Level-top)))
		if numbered {
			builder.WriteString(s.OutlineNumber.Render(e.Number) + " ")
		}
		builder.WriteString(s.OutlineTitle.Render(e.Text))
		builder.WriteString("\n")
	}
	return builder.String()
}
