// Package mathspan protects LaTeX math spans from the Markdown converter.
//
// Extract replaces every math span with an opaque @@@@<n>@@@@ placeholder
// and returns the original sources in a Registry. After conversion,
// Registry.Splice puts the math back into the generated HTML.
package mathspan

import "regexp"

// delimiterPattern matches every token the scanner cares about:
// math delimiters, environment markers, escaped specials, braces,
// newline runs, and placeholders (or their leading halves) already
// present in the text.
//
//nolint:gochecknoglobals // Compiled once, read-only.
var delimiterPattern = regexp.MustCompile(
	`(?i)(\$\$?|\\(?:begin|end)\{[a-z]*\*?\}|\\[\\{}$]|[{}]|(?:\n\s*)+|@@@@\d+(?:@@@@)?)`,
)

// Split slices text around every match of delim and returns the pieces
// interleaved with the values of delim's capture groups.
//
// When the capture groups cover the whole match (as delimiterPattern's
// single group does), joining the result reproduces text exactly, and the
// captured delimiters sit at the odd indices.
// Groups that did not participate in a match contribute an empty string.
func Split(text string, delim *regexp.Regexp) []string {
	matches := delim.FindAllStringSubmatchIndex(text, -1)
	groups := delim.NumSubexp()

	pieces := make([]string, 0, len(matches)*(groups+1)+1)
	prev := 0
	for _, m := range matches {
		pieces = append(pieces, text[prev:m[0]])
		for g := 1; g <= groups; g++ {
			start, end := m[2*g], m[2*g+1]
			if start < 0 {
				pieces = append(pieces, "")
				continue
			}
			pieces = append(pieces, text[start:end])
		}
		prev = m[1]
	}

	return append(pieces, text[prev:])
}
