package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/mathdown/pkg/config"
)

// envVarPrefix is the prefix for all mathdown environment variables.
const envVarPrefix = "MATHDOWN_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines an environment variable to config field mapping.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"FLAVOR":          {"flavor", envTypeString, "Markdown flavor: commonmark or gfm"},
	"HEADING_NUMBER":  {"heading_number", envTypeString, "Heading numbering, e.g. i.a.i, or false"},
	"TOC":             {"toc", envTypeBool, "Show the table of contents: true or false"},
	"TITLE":           {"title", envTypeString, "Default page title"},
	"THEME":           {"theme", envTypeString, "Default page theme"},
	"ASSETS_URL":      {"assets_url", envTypeString, "Base URL of the theme stylesheets"},
	"MATHJAX_URL":     {"mathjax_url", envTypeString, "MathJax loader URL"},
	"SAFE":            {"safe", envTypeBool, "Drop raw HTML: true or false"},
	"SANITIZE":        {"sanitize", envTypeBool, "Sanitize rendered HTML: true or false"},
	"HIGHLIGHT":       {"highlight.enabled", envTypeBool, "Enable syntax highlighting: true or false"},
	"HIGHLIGHT_STYLE": {"highlight.style", envTypeString, "Chroma style for highlighting"},
	"IGNORE":          {"ignore", envTypeSlice, "Comma-separated list of ignore patterns"},
	"JOBS":            {"jobs", envTypeInt, "Number of parallel workers (0 = auto)"},
	"OUT_DIR":         {"out_dir", envTypeString, "Build output directory"},
	"ADDR":            {"addr", envTypeString, "Server listen address"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with MATHDOWN_ (e.g., MATHDOWN_FLAVOR).
func LoadFromEnv(cfg *config.Config) error {
	return loadFromEnv(cfg, os.Getenv)
}

func loadFromEnv(cfg *config.Config, getenv func(string) string) error {
	if cfg == nil {
		return nil
	}

	// Sorted so the reported error does not depend on map order.
	suffixes := make([]string, 0, len(envMappings))
	for suffix := range envMappings {
		suffixes = append(suffixes, suffix)
	}
	slices.Sort(suffixes)

	for _, suffix := range suffixes {
		envVar := envVarPrefix + suffix
		value := getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, envMappings[suffix], value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "flavor":
		cfg.Flavor = config.Flavor(value)
	case "heading_number":
		cfg.HeadingNumber = value
	case "title":
		cfg.Title = value
	case "theme":
		cfg.Theme = value
	case "assets_url":
		cfg.AssetsURL = value
	case "mathjax_url":
		cfg.MathJaxURL = value
	case "highlight.style":
		cfg.Highlight.Style = value
	case "out_dir":
		cfg.OutDir = value
	case "addr":
		cfg.Addr = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "toc":
		cfg.TOC = value
	case "safe":
		cfg.Safe = value
	case "sanitize":
		cfg.Sanitize = value
	case "highlight.enabled":
		cfg.Highlight.Enabled = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
