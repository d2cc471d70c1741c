package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mathdown/internal/configloader"
	"github.com/yaklabco/mathdown/internal/logging"
	"github.com/yaklabco/mathdown/internal/ui/pretty"
	"github.com/yaklabco/mathdown/pkg/config"
	"github.com/yaklabco/mathdown/pkg/page"
	"github.com/yaklabco/mathdown/pkg/render"
)

// documentFlags are the rendering flags shared by the document commands.
// A flag only overrides configuration when it was set on the command line.
type documentFlags struct {
	flavor         string
	headingNumber  string
	toc            bool
	title          string
	theme          string
	highlight      bool
	highlightStyle string
	safe           bool
	sanitize       bool
}

// addNumberingFlags registers the flags that affect heading structure.
func (f *documentFlags) addNumberingFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.flavor, "flavor", string(config.DefaultFlavor), "Markdown flavor: commonmark, gfm")
	cmd.Flags().StringVar(&f.headingNumber, "heading-number", config.DefaultHeadingNumber,
		"heading numbering, e.g. i.a.i (i = arabic, a = alphabetic), or false")
}

// addPageFlags registers every rendering flag.
func (f *documentFlags) addPageFlags(cmd *cobra.Command) {
	f.addNumberingFlags(cmd)
	cmd.Flags().BoolVar(&f.toc, "toc", false, "show the table of contents")
	cmd.Flags().StringVar(&f.title, "title", config.DefaultTitle, "page title for documents without one")
	cmd.Flags().StringVar(&f.theme, "theme", config.DefaultTheme, "page theme")
	cmd.Flags().BoolVar(&f.highlight, "highlight", false, "syntax highlight code blocks")
	cmd.Flags().StringVar(&f.highlightStyle, "highlight-style", config.DefaultHighlightStyle,
		"chroma style used by --highlight")
	cmd.Flags().BoolVar(&f.safe, "safe", false, "drop raw HTML from documents")
	cmd.Flags().BoolVar(&f.sanitize, "sanitize", false, "sanitize the rendered HTML")
}

func (f *documentFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed

	if changed("flavor") {
		cfg.Flavor = config.Flavor(f.flavor)
	}
	if changed("heading-number") {
		cfg.HeadingNumber = f.headingNumber
	}
	if changed("toc") {
		cfg.TOC = f.toc
	}
	if changed("title") {
		cfg.Title = f.title
	}
	if changed("theme") {
		cfg.Theme = f.theme
	}
	if changed("highlight") {
		cfg.Highlight.Enabled = f.highlight
	}
	if changed("highlight-style") {
		cfg.Highlight.Style = f.highlightStyle
	}
	if changed("safe") {
		cfg.Safe = f.safe
	}
	if changed("sanitize") {
		cfg.Sanitize = f.sanitize
	}
}

// loadConfig resolves the configuration for cmd. overrides applies the
// command's flags on top of every other source.
func loadConfig(cmd *cobra.Command, overrides func(*config.Config)) (*config.Config, error) {
	logger := logging.Default()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIOverrides: overrides,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	if len(loadResult.Warnings) > 0 {
		styles := stylesFor(cmd, cmd.ErrOrStderr())
		for _, warning := range loadResult.Warnings {
			fmt.Fprint(cmd.ErrOrStderr(), styles.FormatWarning(warning))
		}
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldHeadingNumber, cfg.HeadingNumber,
		logging.FieldTheme, cfg.Theme,
		logging.FieldJobs, cfg.Jobs,
	)

	return cfg, nil
}

// renderOptions converts configuration into renderer options.
func renderOptions(cfg *config.Config) render.Options {
	return render.Options{
		Flavor:         string(cfg.Flavor),
		HeadingNumber:  cfg.HeadingNumber,
		TOC:            cfg.TOC,
		Safe:           cfg.Safe,
		Sanitize:       cfg.Sanitize,
		Highlight:      cfg.Highlight.Enabled,
		HighlightStyle: cfg.Highlight.Style,
	}
}

// pageData converts configuration into page defaults.
func pageData(cfg *config.Config) page.Data {
	data := page.Data{
		Title:      cfg.Title,
		Theme:      cfg.Theme,
		AssetsURL:  cfg.AssetsURL,
		MathJaxURL: cfg.MathJaxURL,
	}
	if cfg.Highlight.Enabled {
		data.HighlightStyle = cfg.Highlight.Style
	}
	return data
}

// stylesFor returns output styles honoring the --color flag for w.
func stylesFor(cmd *cobra.Command, w io.Writer) *pretty.Styles {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	return pretty.NewStyles(pretty.IsColorEnabled(colorMode, w))
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// commandLogger returns the default logger attached to the command context.
func commandLogger(cmd *cobra.Command) (context.Context, *log.Logger) {
	logger := logging.Default()
	return logging.WithLogger(commandContext(cmd), logger), logger
}
