// Package langdetect guesses the language of fenced code blocks that carry
// no info string, so they can be labeled and highlighted like labeled ones.
// Detection is built on go-enry: shebangs first, then a small table of
// unambiguous markers, then enry's classifier over a fixed candidate set.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is returned when no language can be determined.
const Text = "text"

// candidates restricts enry's classifier to languages that commonly show
// up in technical documents.
//
//nolint:gochecknoglobals // Read-only.
var candidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript", "Ruby", "Rust",
	"Java", "C", "C++", "SQL", "JSON", "YAML", "HTML", "CSS", "TeX",
	"Markdown", "Dockerfile",
}

// marker recognizes a language from content that enry tends to misjudge
// on short snippets.
type marker struct {
	lang  string
	match func(raw, trimmed []byte) bool
}

//nolint:gochecknoglobals // Read-only.
var markers = []marker{
	{"tex", isTeX},
	{"go", func(_, trimmed []byte) bool { return bytes.HasPrefix(trimmed, []byte("package ")) }},
	{"python", isPython},
	{"html", isHTML},
	{"json", isJSON},
	{"dockerfile", isDockerfile},
	{"sql", isSQL},
	{"rust", func(raw, _ []byte) bool {
		return containsAny(raw, "fn main()", "println!", "let mut ")
	}},
	{"javascript", func(raw, _ []byte) bool {
		return containsAny(raw, "=>", "const ", "let ", "console.log")
	}},
	{"yaml", isYAML},
}

// Detect returns a fence tag for content, or Text.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return Text
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return tag(lang)
	}

	trimmed := bytes.TrimSpace(content)
	for _, m := range markers {
		if m.match(content, trimmed) {
			return m.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		return tag(lang)
	}

	return Text
}

// Canonical maps a fence info string such as "golang", "sh" or "py" to the
// tag Detect would return for that language. Unknown names are lowercased
// and returned unchanged.
func Canonical(info string) string {
	name := strings.ToLower(strings.TrimSpace(info))
	if name == "" {
		return ""
	}
	if lang, ok := enry.GetLanguageByAlias(name); ok {
		return tag(lang)
	}
	return name
}

// tag converts an enry language name to a fence tag.
func tag(lang string) string {
	switch lang {
	case "Shell":
		return "bash"
	case "TeX":
		return "tex"
	default:
		return strings.ToLower(lang)
	}
}

func containsAny(content []byte, needles ...string) bool {
	for _, n := range needles {
		if bytes.Contains(content, []byte(n)) {
			return true
		}
	}
	return false
}

// isTeX spots LaTeX sources pasted as code, the common unlabeled case in
// math-heavy documents.
func isTeX(raw, trimmed []byte) bool {
	return bytes.HasPrefix(trimmed, []byte(`\documentclass`)) ||
		containsAny(raw, `\usepackage{`, `\begin{document}`, `\newcommand{`)
}

func isPython(raw, trimmed []byte) bool {
	s := string(raw)
	if strings.Contains(s, "def ") && strings.Contains(s, "):") {
		return true
	}
	if strings.Contains(s, "import ") && !strings.Contains(s, "import (") &&
		(strings.Contains(s, "from ") || bytes.HasPrefix(trimmed, []byte("import "))) {
		return true
	}
	return strings.Contains(s, "__name__") || strings.Contains(s, "__main__")
}

func isHTML(_, trimmed []byte) bool {
	lower := bytes.ToLower(trimmed)
	return containsAny(lower, "<!doctype html", "<html", "<head>", "<body>")
}

func isJSON(_, trimmed []byte) bool {
	return (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`"`))
}

func isDockerfile(raw, trimmed []byte) bool {
	return bytes.HasPrefix(trimmed, []byte("FROM ")) ||
		(bytes.Contains(raw, []byte("\nFROM ")) && bytes.Contains(raw, []byte("\nRUN "))) ||
		(bytes.Contains(raw, []byte("WORKDIR ")) && bytes.Contains(raw, []byte("COPY ")))
}

func isSQL(_, trimmed []byte) bool {
	upper := strings.ToUpper(string(trimmed))
	for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
		if strings.HasPrefix(upper, kw) {
			return true
		}
	}
	return false
}

// isYAML needs two or more "key: value" or "- item" lines.
func isYAML(raw, _ []byte) bool {
	count := 0
	for line := range bytes.SplitSeq(raw, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if bytes.Contains(line, []byte(": ")) && !containsAny(line, "(", "{") && line[0] != '"' {
			count++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			count++
		}
	}
	return count >= 2
}
