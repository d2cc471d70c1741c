package mathspan

import (
	"regexp"
	"strconv"
	"strings"
)

//nolint:gochecknoglobals // Compiled once, read-only.
var placeholderPattern = regexp.MustCompile(`@@@@(\d+)@@@@`)

// Registry holds extracted math sources, indexed by placeholder number.
type Registry []string

// Splice replaces every placeholder in html with its registry entry.
// Entries are inserted verbatim; they were escaped during extraction.
// Placeholders with no matching entry are left untouched.
func (r Registry) Splice(html string) string {
	if len(r) == 0 {
		return html
	}

	return placeholderPattern.ReplaceAllStringFunc(html, func(token string) string {
		n, err := strconv.Atoi(token[len(placeholderMark) : len(token)-len(placeholderMark)])
		if err != nil || n >= len(r) {
			return token
		}
		return r[n]
	})
}

// IsMath reports whether entry is a math span rather than text held
// back verbatim.
func IsMath(entry string) bool {
	return entry != EscapedDollar && !strings.HasPrefix(entry, "@")
}

// Spans returns the math entries in placeholder order.
func (r Registry) Spans() Registry {
	spans := Registry{}
	for _, entry := range r {
		if IsMath(entry) {
			spans = append(spans, entry)
		}
	}
	return spans
}

// Unescaped returns a copy of r whose escaped dollars splice back as a
// plain dollar, for output that no math typesetter will see.
func (r Registry) Unescaped() Registry {
	out := make(Registry, len(r))
	for i, entry := range r {
		if entry == EscapedDollar {
			entry = inlineDelim
		}
		out[i] = entry
	}
	return out
}
