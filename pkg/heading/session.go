package heading

import (
	"strconv"
	"strings"
)

// Entry records one rendered heading.
type Entry struct {
	Level  int    `json:"level"`
	Number string `json:"number"`
	Slug   string `json:"slug"`
	Text   string `json:"text"`
}

// Session holds the numbering state of a single document render.
// Create one per render; a Session is not safe for concurrent use.
type Session struct {
	style   Style
	counter Counter
	toc     TOC
	entries []Entry
}

// NewSession returns a session numbering headings per the dotted
// specifier spec (see ParseStyle).
func NewSession(spec string) *Session {
	return &Session{style: ParseStyle(spec)}
}

// Heading numbers a heading whose inner HTML is text, records it in the
// table of contents and returns the heading element.
func (s *Session) Heading(text string, level int) string {
	level = clampLevel(level)
	s.counter.Advance(level)

	number := s.counter.Number(s.style)
	slug := Slug(number, text)

	prefix := ""
	if s.style.Enabled {
		prefix = number + " "
	}

	s.toc.Insert(level, "#"+slug, prefix+text)
	s.entries = append(s.entries, Entry{Level: level, Number: number, Slug: slug, Text: text})

	tag := "h" + strconv.Itoa(level)

	var b strings.Builder
	b.WriteString("<" + tag + ` style="position:relative;"><a name="`)
	b.WriteString(slug)
	b.WriteString(`" class="anchor" href="#`)
	b.WriteString(slug)
	b.WriteString(`"><span class="header-link"></span></a>`)
	b.WriteString(prefix)
	b.WriteString(text)
	b.WriteString("</" + tag + ">")
	return b.String()
}

// Style returns the numbering style in use.
func (s *Session) Style() Style {
	return s.style
}

// TOC returns the table of contents accumulated so far.
func (s *Session) TOC() *TOC {
	return &s.toc
}

// Entries returns the headings rendered so far, in document order.
func (s *Session) Entries() []Entry {
	return s.entries
}
