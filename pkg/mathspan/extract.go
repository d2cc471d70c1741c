package mathspan

import (
	"strconv"
	"strings"
)

const (
	placeholderMark = "@@@@"
	inlineDelim     = "$"
	displayDelim    = "$$"
	beginPrefix     = "begin"
	endMarker       = `\end`

	// EscapedDollar is a backslash-escaped dollar outside math. It is
	// held in the registry so the converter keeps the backslash.
	EscapedDollar = `\$`
)

//nolint:gochecknoglobals // Read-only replacers.
var (
	lineEndingReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")
	htmlEscaper        = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
)

// Placeholder returns the token that stands in for registry entry n.
func Placeholder(n int) string {
	return placeholderMark + strconv.Itoa(n) + placeholderMark
}

// Extract removes the math spans from text.
//
// It returns the text with every span replaced by a placeholder and the
// registry holding the HTML-escaped sources, indexed by placeholder number.
// Malformed math never fails: an unterminated span is either closed at the
// last valid closing delimiter or left in place as ordinary text.
//
// Escaped dollars and text that already looks like a placeholder are
// registered verbatim too, so Splice(text) always reproduces the input
// with line endings normalized and math HTML-escaped.
func Extract(text string) (string, Registry) {
	text = lineEndingReplacer.Replace(text)
	masked, unescape := maskCode(text)

	s := &scanner{
		tokens:   Split(masked, delimiterPattern),
		unescape: unescape,
		math:     Registry{},
	}
	s.reset()
	s.scan()

	return unescape(strings.Join(s.tokens, "")), s.math
}

// scanner holds the state of a single Extract call.
type scanner struct {
	tokens   []string
	unescape unescapeFunc
	math     Registry

	start  int    // token index of the open delimiter, -1 outside math
	last   int    // last closing delimiter seen inside unbalanced braces, -1 if none
	end    string // closing delimiter expected for the open span
	braces int
}

func (s *scanner) reset() {
	s.start, s.last, s.end, s.braces = -1, -1, "", 0
}

// scan walks the delimiter tokens, which sit at the odd indices.
func (s *scanner) scan() {
	for i := 1; i < len(s.tokens); i += 2 {
		token := s.tokens[i]

		if s.start >= 0 {
			i = s.inMath(i, token)
		} else if !s.protect(i) {
			s.open(i, token)
		}

		if s.start >= 0 && i+2 >= len(s.tokens) {
			// Text ended inside a span.
			i = s.recover(i)
		}
	}
}

// protect registers tokens[i] verbatim when it must not reach the
// converter as written, and reports whether it did.
func (s *scanner) protect(i int) bool {
	token := s.tokens[i]
	if !strings.HasPrefix(token, "@") && token != EscapedDollar {
		return false
	}

	s.tokens[i] = Placeholder(len(s.math))
	s.math = append(s.math, token)
	return true
}

// open starts a span when token is an opening delimiter.
func (s *scanner) open(i int, token string) {
	switch {
	case token == inlineDelim || token == displayDelim:
		s.start, s.end, s.braces = i, token, 0
	case len(token) > len(beginPrefix) && token[1:1+len(beginPrefix)] == beginPrefix:
		s.start, s.end, s.braces = i, endMarker+token[1+len(beginPrefix):], 0
	}
}

// inMath handles token while a span is open and returns the index the
// scan continues from.
func (s *scanner) inMath(i int, token string) int {
	switch {
	case s.end == inlineDelim && strings.Contains(token, "\n"):
		// Inline math never crosses a line break.
		return s.recover(i)

	case token == s.end:
		if s.braces > 0 {
			s.last = i
		} else {
			s.process(s.start, i)
		}

	case strings.Count(token, "\n") >= 2:
		// Math does not span paragraphs.
		return s.recover(i)

	case token == "{":
		s.braces++

	case token == "}" && s.braces > 0:
		s.braces--
	}

	return i
}

// recover closes the open span at the last valid closing delimiter, or
// abandons it when there is none. Scanning resumes after the close, so
// tokens past it are seen outside math exactly once.
func (s *scanner) recover(i int) int {
	if s.last >= 0 {
		i = s.last
		s.process(s.start, i)
	} else {
		for j := s.start; j <= i; j += 2 {
			s.protect(j)
		}
	}
	s.reset()
	return i
}

// process collapses tokens[from..to] into a placeholder and stores the
// escaped math source.
func (s *scanner) process(from, to int) {
	block := htmlEscaper.Replace(strings.Join(s.tokens[from:to+1], ""))
	for j := to; j > from; j-- {
		s.tokens[j] = ""
	}
	s.tokens[from] = Placeholder(len(s.math))
	s.math = append(s.math, s.unescape(block))

	// Brace depth is reset when the next span opens.
	s.start, s.last, s.end = -1, -1, ""
}
