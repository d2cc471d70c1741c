package configloader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mathdown/pkg/config"
)

func TestLoadFromEnv(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"MATHDOWN_FLAVOR":          "commonmark",
		"MATHDOWN_HEADING_NUMBER":  "i.a",
		"MATHDOWN_TOC":             "true",
		"MATHDOWN_SAFE":            "1",
		"MATHDOWN_HIGHLIGHT_STYLE": "monokai",
		"MATHDOWN_IGNORE":          " drafts/** , ,tmp/*",
		"MATHDOWN_JOBS":            "3",
		"MATHDOWN_ADDR":            "127.0.0.1:9000",
	}

	cfg := config.NewConfig()
	require.NoError(t, loadFromEnv(cfg, func(k string) string { return env[k] }))

	assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)
	assert.Equal(t, "i.a", cfg.HeadingNumber)
	assert.True(t, cfg.TOC)
	assert.True(t, cfg.Safe)
	assert.False(t, cfg.Sanitize)
	assert.Equal(t, "monokai", cfg.Highlight.Style)
	assert.Equal(t, []string{"drafts/**", "tmp/*"}, cfg.Ignore)
	assert.Equal(t, 3, cfg.Jobs)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, config.DefaultTheme, cfg.Theme)
}

func TestLoadFromEnv_FalseOverrides(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.TOC = true
	require.NoError(t, loadFromEnv(cfg, func(k string) string {
		if k == "MATHDOWN_TOC" {
			return "false"
		}
		return ""
	}))
	assert.False(t, cfg.TOC)
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{"bool", "MATHDOWN_SANITIZE", "maybe", "invalid boolean for MATHDOWN_SANITIZE"},
		{"int", "MATHDOWN_JOBS", "many", "invalid integer for MATHDOWN_JOBS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := loadFromEnv(config.NewConfig(), func(k string) string {
				if k == tt.key {
					return tt.val
				}
				return ""
			})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEnvVarNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "MATHDOWN_HIGHLIGHT_STYLE", GetEnvVarName("highlight.style"))
	assert.Empty(t, GetEnvVarName("nope"))

	vars := ListEnvVars()
	assert.Len(t, vars, len(envMappings))
	assert.Contains(t, vars, "MATHDOWN_FLAVOR")

	// Every mapped field is settable.
	for suffix, mapping := range envMappings {
		var value string
		switch mapping.typ {
		case envTypeBool:
			value = "true"
		case envTypeInt:
			value = "1"
		default:
			value = "x"
		}
		require.NoError(t, applyEnvValue(config.NewConfig(), mapping, value, envVarPrefix+suffix), suffix)
	}
}
