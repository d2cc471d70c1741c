package mathspan

import "strings"

// Sentinels used to hide dollar signs inside code from the tokenizer.
// Every '~' is escaped first so the scheme stays reversible.
const (
	escapedTilde  = "~T"
	escapedDollar = "~D"
)

//nolint:gochecknoglobals // Read-only replacer.
var sentinelReplacer = strings.NewReplacer(escapedTilde, "~", escapedDollar, "$")

// unescapeFunc restores text produced by maskCode.
type unescapeFunc func(string) string

func identity(s string) string { return s }

func unescapeSentinels(s string) string { return sentinelReplacer.Replace(s) }

// maskCode hides '$' inside code spans and fenced code blocks so they are
// never taken for math delimiters. It returns the masked text and the
// function that undoes the masking.
//
// Text without backticks or tilde fences is returned unchanged together
// with the identity function.
func maskCode(text string) (string, unescapeFunc) {
	if !strings.Contains(text, "`") && !strings.Contains(text, "~~~") {
		return text, identity
	}

	inCode := codeRegions(text)

	var b strings.Builder
	b.Grow(len(text) + len(text)/16)
	for i := range len(text) {
		switch c := text[i]; {
		case c == '~':
			b.WriteString(escapedTilde)
		case c == '$' && inCode[i]:
			b.WriteString(escapedDollar)
		default:
			b.WriteByte(c)
		}
	}

	return b.String(), unescapeSentinels
}

// codeRegions marks every byte of text that belongs to a fenced code block
// or to a single-line backtick code span.
func codeRegions(text string) []bool {
	marked := make([]bool, len(text))

	var fence fenceState
	lineStart := 0
	for lineStart <= len(text) {
		lineEnd := strings.IndexByte(text[lineStart:], '\n')
		if lineEnd < 0 {
			lineEnd = len(text)
		} else {
			lineEnd += lineStart
		}
		line := text[lineStart:lineEnd]

		switch {
		case fence.open:
			markRange(marked, lineStart, lineEnd)
			if fence.closes(line) {
				fence = fenceState{}
			}
		case openFence(line, &fence):
			markRange(marked, lineStart, lineEnd)
		default:
			markInlineSpans(marked, line, lineStart)
		}

		lineStart = lineEnd + 1
	}

	return marked
}

func markRange(marked []bool, from, to int) {
	for i := from; i < to; i++ {
		marked[i] = true
	}
}

// fenceState tracks an open fenced code block.
type fenceState struct {
	open   bool
	char   byte
	length int
}

// maxFenceIndent is the deepest indentation at which a fence is recognized.
const maxFenceIndent = 3

// minFenceLength is the shortest run of fence characters.
const minFenceLength = 3

// openFence reports whether line opens a fenced code block and records it.
func openFence(line string, fence *fenceState) bool {
	indent := leadingSpaces(line)
	if indent > maxFenceIndent {
		return false
	}
	rest := line[indent:]
	if rest == "" || (rest[0] != '`' && rest[0] != '~') {
		return false
	}

	n := runLength(rest, rest[0])
	if n < minFenceLength {
		return false
	}
	// A backtick fence's info string may not contain backticks.
	if rest[0] == '`' && strings.IndexByte(rest[n:], '`') >= 0 {
		return false
	}

	*fence = fenceState{open: true, char: rest[0], length: n}
	return true
}

// closes reports whether line closes the open fence.
func (f fenceState) closes(line string) bool {
	indent := leadingSpaces(line)
	if indent > maxFenceIndent {
		return false
	}
	rest := line[indent:]
	n := runLength(rest, f.char)
	if n < f.length {
		return false
	}
	return strings.TrimSpace(rest[n:]) == ""
}

// markInlineSpans marks backtick code spans that open and close on line.
// A span opens with a run of N backticks not preceded by a backslash and
// closes with the next run of exactly N backticks; the content between the
// runs must not be empty.
func markInlineSpans(marked []bool, line string, offset int) {
	i := 0
	for i < len(line) {
		if line[i] != '`' {
			i++
			continue
		}

		n := runLength(line[i:], '`')
		if i > 0 && line[i-1] == '\\' {
			i += n
			continue
		}

		closeAt := findClosingRun(line, i+n, n)
		if closeAt < 0 || closeAt == i+n {
			i += n
			continue
		}

		markRange(marked, offset+i, offset+closeAt+n)
		i = closeAt + n
	}
}

// findClosingRun returns the index of the next run of exactly n backticks
// at or after from, or -1.
func findClosingRun(line string, from, n int) int {
	j := from
	for j < len(line) {
		if line[j] != '`' {
			j++
			continue
		}
		run := runLength(line[j:], '`')
		if run == n {
			return j
		}
		j += run
	}
	return -1
}

func runLength(s string, c byte) int {
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	return n
}

func leadingSpaces(s string) int {
	return runLength(s, ' ')
}
