package mathspan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mathdown/pkg/mathspan"
)

func TestExtract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantText string
		wantMath mathspan.Registry
	}{
		{
			name:     "inline math",
			input:    "$x+y$",
			wantText: "@@@@0@@@@",
			wantMath: mathspan.Registry{"$x+y$"},
		},
		{
			name:     "display math with nested braces",
			input:    `$$\sum_{i=0}^{\{n\}} i$$`,
			wantText: "@@@@0@@@@",
			wantMath: mathspan.Registry{`$$\sum_{i=0}^{\{n\}} i$$`},
		},
		{
			name:     "environment",
			input:    `\begin{align}a&b\end{align}`,
			wantText: "@@@@0@@@@",
			wantMath: mathspan.Registry{`\begin{align}a&amp;b\end{align}`},
		},
		{
			name:     "starred environment",
			input:    "see \\begin{equation*}\nx\n\\end{equation*} done",
			wantText: "see @@@@0@@@@ done",
			wantMath: mathspan.Registry{"\\begin{equation*}\nx\n\\end{equation*}"},
		},
		{
			name:     "math is html escaped",
			input:    "$a<b>c$",
			wantText: "@@@@0@@@@",
			wantMath: mathspan.Registry{"$a&lt;b&gt;c$"},
		},
		{
			name:     "several spans numbered in order",
			input:    "a $x$ b $$y$$ c",
			wantText: "a @@@@0@@@@ b @@@@1@@@@ c",
			wantMath: mathspan.Registry{"$x$", "$$y$$"},
		},
		{
			name:     "dollar inside code span is not math",
			input:    "`$5`",
			wantText: "`$5`",
			wantMath: mathspan.Registry{},
		},
		{
			name:     "code span next to real math",
			input:    "`$a$` and $b$",
			wantText: "`$a$` and @@@@0@@@@",
			wantMath: mathspan.Registry{"$b$"},
		},
		{
			name:     "double backtick code span",
			input:    "``a ` $b$`` $c$",
			wantText: "``a ` $b$`` @@@@0@@@@",
			wantMath: mathspan.Registry{"$c$"},
		},
		{
			name:     "fenced code block is not math",
			input:    "```\n$a$\n```\n$b$",
			wantText: "```\n$a$\n```\n@@@@0@@@@",
			wantMath: mathspan.Registry{"$b$"},
		},
		{
			name:     "tilde fenced code block is not math",
			input:    "~~~tex\n$$a$$\n~~~\n",
			wantText: "~~~tex\n$$a$$\n~~~\n",
			wantMath: mathspan.Registry{},
		},
		{
			name:     "tilde inside math survives masking",
			input:    "`x` $a~b$",
			wantText: "`x` @@@@0@@@@",
			wantMath: mathspan.Registry{"$a~b$"},
		},
		{
			name:     "escaped dollars are held verbatim",
			input:    `costs \$5 and \$6`,
			wantText: "costs @@@@0@@@@5 and @@@@1@@@@6",
			wantMath: mathspan.Registry{`\$`, `\$`},
		},
		{
			name:     "escaped dollar inside math stays in the span",
			input:    `$a\$b$`,
			wantText: "@@@@0@@@@",
			wantMath: mathspan.Registry{`$a\$b$`},
		},
		{
			name:     "inline math does not cross a line break",
			input:    "$a\nb$",
			wantText: "$a\nb$",
			wantMath: mathspan.Registry{},
		},
		{
			name:     "display math crosses a single line break",
			input:    "$$a\nb$$",
			wantText: "@@@@0@@@@",
			wantMath: mathspan.Registry{"$$a\nb$$"},
		},
		{
			name:     "paragraph break abandons unclosed span",
			input:    "$$x\n\ny",
			wantText: "$$x\n\ny",
			wantMath: mathspan.Registry{},
		},
		{
			name:     "line break recovers at last valid close",
			input:    "$a{b$c\n",
			wantText: "@@@@0@@@@c\n",
			wantMath: mathspan.Registry{"$a{b$"},
		},
		{
			name:     "end of text recovers at last valid close",
			input:    "$$a{b$$",
			wantText: "@@@@0@@@@",
			wantMath: mathspan.Registry{"$$a{b$$"},
		},
		{
			name:     "extra closing braces are ignored",
			input:    "$a}}b$",
			wantText: "@@@@0@@@@",
			wantMath: mathspan.Registry{"$a}}b$"},
		},
		{
			name:     "unterminated span is left alone",
			input:    "price: $5",
			wantText: "price: $5",
			wantMath: mathspan.Registry{},
		},
		{
			name:     "placeholder lookalike is registered",
			input:    "@@@@7@@@@ $x$",
			wantText: "@@@@0@@@@ @@@@1@@@@",
			wantMath: mathspan.Registry{"@@@@7@@@@", "$x$"},
		},
		{
			name:     "placeholder lookalike after recovered span",
			input:    "$a{b$ @@@@3@@@@ c\nx",
			wantText: "@@@@0@@@@ @@@@1@@@@ c\nx",
			wantMath: mathspan.Registry{"$a{b$", "@@@@3@@@@"},
		},
		{
			name:     "placeholder lookalike inside math stays in the span",
			input:    "$a @@@@3@@@@ b$",
			wantText: "@@@@0@@@@",
			wantMath: mathspan.Registry{"$a @@@@3@@@@ b$"},
		},
		{
			name:     "placeholder lookalike in abandoned span",
			input:    "$a @@@@3@@@@\n",
			wantText: "$a @@@@0@@@@\n",
			wantMath: mathspan.Registry{"@@@@3@@@@"},
		},
		{
			name:     "half placeholder before math",
			input:    "@@@@1$x$",
			wantText: "@@@@0@@@@@@@@1@@@@",
			wantMath: mathspan.Registry{"@@@@1", "$x$"},
		},
		{
			name:     "text after last close is scanned once",
			input:    "$$a{b$$ @@@@1@@@@",
			wantText: "@@@@0@@@@ @@@@1@@@@",
			wantMath: mathspan.Registry{"$$a{b$$", "@@@@1@@@@"},
		},
		{
			name:     "line endings are normalized",
			input:    "a\r\nb\rc",
			wantText: "a\nb\nc",
			wantMath: mathspan.Registry{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			text, math := mathspan.Extract(tt.input)
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantMath, math)
		})
	}
}

func TestExtract_RoundTripWithoutMath(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"plain paragraph",
		"# Title\n\nSome *emphasis* and `code ~T with ~D` here.\n",
		"~~ strike ~~ and ~T~D literal sentinels",
		"```go\nfmt.Println(\"$HOME\")\n```\n",
		"{braces} \\{escaped\\} \\\\ backslashes\n\n\n\nruns",
	}

	for _, input := range inputs {
		text, math := mathspan.Extract(input)
		require.Empty(t, math, "input %q", input)
		assert.Equal(t, input, math.Splice(text), "input %q", input)
	}
}

func TestExtract_SpliceRestoresMath(t *testing.T) {
	t.Parallel()

	input := "Euler: $e^{i\\pi}+1=0$ and `$HOME` and\n\n$$\\int_0^1 x\\,dx$$\n"
	text, math := mathspan.Extract(input)
	require.Len(t, math, 2)
	assert.NotContains(t, text, "$e")
	assert.Equal(t, input, math.Splice(text))
}

func TestRegistry_Spans(t *testing.T) {
	t.Parallel()

	_, math := mathspan.Extract("@@@@9@@@@ \\$ $x$ and $$y$$")
	require.Len(t, math, 4)
	assert.Equal(t, mathspan.Registry{"$x$", "$$y$$"}, math.Spans())

	_, plain := mathspan.Extract("no math here")
	assert.Equal(t, mathspan.Registry{}, plain.Spans())
}

func TestRegistry_Unescaped(t *testing.T) {
	t.Parallel()

	text, math := mathspan.Extract(`costs \$5`)
	assert.Equal(t, `costs \$5`, math.Splice(text))
	assert.Equal(t, "costs $5", math.Unescaped().Splice(text))
	assert.Equal(t, mathspan.Registry{`\$`}, math, "original registry is unchanged")
}

func TestExtract_FreshStatePerCall(t *testing.T) {
	t.Parallel()

	// An unterminated span in one call must not leak into the next.
	_, first := mathspan.Extract("$$a{")
	text, second := mathspan.Extract("b$$")

	assert.Empty(t, first)
	assert.Empty(t, second)
	assert.Equal(t, "b$$", text)
}
