package config

import (
	"fmt"
	"strings"
)

// OutputFormat specifies what render and toc write.
type OutputFormat string

const (
	// FormatPage is a complete themed HTML page.
	FormatPage OutputFormat = "page"
	// FormatFragment is the converted HTML alone.
	FormatFragment OutputFormat = "fragment"
	// FormatJSON is the render result as JSON.
	FormatJSON OutputFormat = "json"
	// FormatText is an indented heading outline.
	FormatText OutputFormat = "text"
)

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatPage, FormatFragment, FormatJSON, FormatText:
		return true
	default:
		return false
	}
}

// ParseOutputFormat parses a case-insensitive format name, checking it
// against the formats a command accepts.
func ParseOutputFormat(name string, allowed ...OutputFormat) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(name)))
	for _, a := range allowed {
		if format == a {
			return format, nil
		}
	}

	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	return "", fmt.Errorf("invalid format %q; must be one of: %s", name, strings.Join(names, ", "))
}
