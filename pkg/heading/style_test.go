package heading_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mathdown/pkg/heading"
)

func TestParseStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		spec        string
		wantEnabled bool
		wantString  string
	}{
		{"", false, "none"},
		{"none", false, "none"},
		{"false", false, "none"},
		{"i.i.i", true, "i.i.i.i.i.i"},
		{"i.a", true, "i.a.i.i.i.i"},
		{"a.a.a.a.a.a.a.a", true, "a.a.a.a.a.a"},
		{"x.y", true, "i.i.i.i.i.i"},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			t.Parallel()

			style := heading.ParseStyle(tt.spec)
			assert.Equal(t, tt.wantEnabled, style.Enabled)
			assert.Equal(t, tt.wantString, style.String())
		})
	}
}

func TestValidateStyle(t *testing.T) {
	t.Parallel()

	for _, spec := range []string{"", "false", "none", "i", "a", "i.a.a.i", "i.i.i.i.i.i"} {
		require.NoError(t, heading.ValidateStyle(spec), spec)
	}
	for _, spec := range []string{"i.a.a.iiii", "1.2", "i..a", "i.i.i.i.i.i.i", "x"} {
		require.ErrorIs(t, heading.ValidateStyle(spec), heading.ErrInvalidStyle, spec)
	}
}

func TestStyle_Format(t *testing.T) {
	t.Parallel()

	style := heading.ParseStyle("i.a")

	assert.Equal(t, "3", style.Format(3, 1))
	assert.Equal(t, "a", style.Format(1, 2))
	assert.Equal(t, "z", style.Format(26, 2))
	assert.Equal(t, "27", style.Format(27, 2), "alpha overflow falls back to arabic")
	assert.Equal(t, "0", style.Format(0, 2))
	assert.Equal(t, "4", style.Format(4, 9), "unknown level is arabic")
}

func TestCounter(t *testing.T) {
	t.Parallel()

	style := heading.ParseStyle("i.i.i")

	var c heading.Counter
	c.Advance(1)
	assert.Equal(t, "1", c.Number(style))

	c.Advance(3)
	assert.Equal(t, "1.0.1", c.Number(style), "skipped levels show as zero")

	c.Advance(2)
	assert.Equal(t, "1.1", c.Number(style), "deeper levels reset")

	c.Advance(1)
	assert.Equal(t, "2", c.Number(style))

	c.Advance(9)
	assert.Equal(t, "2.0.0.0.0.1", c.Number(style), "levels are clamped to six")
}

func TestCounter_TopLevelAlwaysPresent(t *testing.T) {
	t.Parallel()

	var c heading.Counter
	c.Advance(2)
	assert.Equal(t, "0.1", c.Number(heading.ParseStyle("i.i")))
}

func TestSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		number string
		text   string
		want   string
	}{
		{"simple", "1", "Intro", "h1_intro"},
		{"spaces collapse", "1.2", "Getting   Started", "h1.2_getting-started"},
		{"punctuation runs", "2", "What? Why!", "h2_what-why-"},
		{"keeps word characters", "3", "snake_case-and.dots", "h3_snake_case-and.dots"},
		{"keeps unicode letters", "1", "Überblick Größe", "h1_überblick-größe"},
		{"markup", "1", "<em>Fast</em> path", "h1_-em-fast-em-path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, heading.Slug(tt.number, tt.text))
		})
	}
}
