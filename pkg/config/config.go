// Package config defines core configuration types for mathdown.
// These types are pure data structures with no dependency on the loader.
package config

// Flavor specifies the Markdown flavor used for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// Defaults applied by NewConfig.
const (
	DefaultFlavor         = FlavorGFM
	DefaultHeadingNumber  = "false"
	DefaultTitle          = "Wiki"
	DefaultTheme          = "chaitin"
	DefaultHighlightStyle = "github"
	DefaultAddr           = ":8080"
)

// HighlightConfig controls syntax highlighting of code blocks.
type HighlightConfig struct {
	// Enabled switches from plain language-tagged blocks to chroma output.
	Enabled bool `yaml:"enabled"`

	// Style names a chroma style, e.g. "github" or "monokai".
	Style string `yaml:"style"`
}

// Config is the root configuration structure for mathdown.
type Config struct {
	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor"`

	// HeadingNumber is the dotted numbering specifier, e.g. "i.a.i".
	// "false" or "none" hides heading numbers.
	HeadingNumber string `yaml:"heading_number"`

	// TOC shows the table of contents above the document.
	TOC bool `yaml:"toc"`

	// Title is the page title used when a document has none.
	Title string `yaml:"title"`

	// Theme is the default page theme.
	Theme string `yaml:"theme"`

	// AssetsURL is the base URL serving the theme stylesheets.
	AssetsURL string `yaml:"assets_url,omitempty"`

	// MathJaxURL overrides the MathJax loader URL.
	MathJaxURL string `yaml:"mathjax_url,omitempty"`

	// Safe drops raw HTML from documents.
	Safe bool `yaml:"safe"`

	// Sanitize passes rendered HTML through an allow-list policy.
	Sanitize bool `yaml:"sanitize"`

	// Highlight configures syntax highlighting.
	Highlight HighlightConfig `yaml:"highlight"`

	// Ignore contains glob patterns for files the build skips.
	Ignore []string `yaml:"ignore"`

	// CLI-level options (not persisted to config files).

	// Format selects the output format of render and toc.
	Format OutputFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// OutDir is the build output directory; empty writes next to sources.
	OutDir string `yaml:"-"`

	// Addr is the listen address of the server.
	Addr string `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Flavor:        DefaultFlavor,
		HeadingNumber: DefaultHeadingNumber,
		Title:         DefaultTitle,
		Theme:         DefaultTheme,
		Highlight: HighlightConfig{
			Style: DefaultHighlightStyle,
		},
		Format: FormatPage,
		Jobs:   0, // 0 means use GOMAXPROCS
		Addr:   DefaultAddr,
	}
}
