package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mathdown/pkg/config"
)

func TestParseOutputFormat(t *testing.T) {
	t.Parallel()

	allowed := []config.OutputFormat{config.FormatPage, config.FormatFragment, config.FormatJSON}

	tests := []struct {
		name    string
		input   string
		want    config.OutputFormat
		wantErr bool
	}{
		{"page", "page", config.FormatPage, false},
		{"case insensitive", "JSON", config.FormatJSON, false},
		{"trimmed", " fragment ", config.FormatFragment, false},
		{"known but not allowed", "text", "", true},
		{"unknown", "pdf", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := config.ParseOutputFormat(tt.input, allowed...)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "page, fragment, json")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutputFormat_IsValid(t *testing.T) {
	t.Parallel()

	for _, f := range []config.OutputFormat{config.FormatPage, config.FormatFragment, config.FormatJSON, config.FormatText} {
		assert.True(t, f.IsValid(), f)
	}
	assert.False(t, config.OutputFormat("sarif").IsValid())
	assert.False(t, config.OutputFormat("").IsValid())
}
