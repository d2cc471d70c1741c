package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default value.
	// If false, generates a minimal commented template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string

	// Themes lists the theme names mentioned in the template comments.
	Themes []string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}
	if opts.Full {
		return generateFullTemplate(opts)
	}
	return generateMinimalTemplate(opts), nil
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Markdown flavor: commonmark or gfm
flavor: gfm

# Heading numbering per level, "i" for 1, 2, 3 and "a" for a, b, c.
# "false" hides the numbers.
heading_number: "false"

# Show the table of contents above each document
# toc: false

# Page title used when a document has none
# title: Wiki
`)
	writeThemeComment(&buf, opts.Themes)
	buf.WriteString(`# theme: chaitin

# Drop raw HTML from documents
# safe: false

# Clean rendered HTML with an allow-list
# sanitize: false

# Syntax highlighting for code blocks
# highlight:
#   enabled: false
#   style: github

# File patterns the build skips (glob patterns)
# ignore:
#   - "drafts/**"
`)

	return buf.Bytes()
}

// generateFullTemplate writes every setting with its default value.
func generateFullTemplate(opts TemplateOptions) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n#\n# Every setting with its default value.\n")
	writeThemeComment(&buf, opts.Themes)
	buf.WriteString("\n")

	cfg := NewConfig()
	cfg.Ignore = []string{}
	data, err := cfg.ToYAML()
	if err != nil {
		return nil, err
	}
	buf.Write(data)

	return buf.Bytes(), nil
}

func writeThemeComment(buf *bytes.Buffer, themes []string) {
	if len(themes) == 0 {
		return
	}
	buf.WriteString("# Themes: " + wrapComment(strings.Join(themes, ", "), commentWrapWidth) + "\n")
}

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n#   ")
}

// templateToJSON renders the defaults as JSON, keyed like the YAML file.
func templateToJSON() ([]byte, error) {
	data, err := NewConfig().ToYAML()
	if err != nil {
		return nil, err
	}

	var fields map[string]any
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("decode defaults: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return append(jsonBytes, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# mathdown configuration
# See: https://github.com/yaklabco/mathdown`
}
