package mathspan_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mathdown/pkg/mathspan"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		pattern string
		want    []string
	}{
		{"capture is kept", "aba", `(b)`, []string{"a", "b", "a"}},
		{"no match", "abc", `(x)`, []string{"abc"}},
		{"match at both ends", "bab", `(b)`, []string{"", "b", "a", "b", ""}},
		{"adjacent matches", "abba", `(b)`, []string{"a", "b", "", "b", "a"}},
		{"non participating group", "ab", `(a)|(b)`, []string{"", "a", "", "", "", "b", ""}},
		{"uncaptured text is dropped", "a-b", `-`, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := mathspan.Split(tt.text, regexp.MustCompile(tt.pattern))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplit_Lossless(t *testing.T) {
	t.Parallel()

	// Same shape as the extractor's delimiter pattern.
	delim := regexp.MustCompile(`(\$\$?|[{}]|(?:\n\s*)+)`)
	inputs := []string{
		"",
		"$a$",
		"text {with} $$math$$\n\n  next",
		"$$$$",
	}

	for _, input := range inputs {
		pieces := mathspan.Split(input, delim)
		assert.Equal(t, input, strings.Join(pieces, ""), "input %q", input)
		assert.Equal(t, 1, len(pieces)%2, "input %q: delimiters must sit at odd indices", input)
	}
}
