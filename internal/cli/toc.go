package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mathdown/pkg/config"
	"github.com/yaklabco/mathdown/pkg/fsutil"
	"github.com/yaklabco/mathdown/pkg/heading"
	"github.com/yaklabco/mathdown/pkg/render"
)

type tocFlags struct {
	documentFlags

	format string
}

// tocDocument is the JSON form of a document outline.
type tocDocument struct {
	Title    string          `json:"title,omitempty"`
	TOC      []*heading.Node `json:"toc"`
	Headings []heading.Entry `json:"headings"`
}

func newTOCCommand() *cobra.Command {
	flags := &tocFlags{}

	cmd := &cobra.Command{
		Use:   "toc [file|-]",
		Short: "Print the heading outline of a document",
		Long: `Print the headings of a Markdown document as an outline.

Reads standard input when no file (or "-") is given.

Examples:
  mathdown toc notes.md                          # Indented outline
  mathdown toc --heading-number i.a.i notes.md   # With numbers
  mathdown toc --format json notes.md            # Tree and headings as JSON`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTOC(cmd, args, flags)
		},
	}

	flags.addNumberingFlags(cmd)
	cmd.Flags().StringVar(&flags.format, "format", string(config.FormatText), "output format: text, json")

	return cmd
}

func runTOC(cmd *cobra.Command, args []string, flags *tocFlags) error {
	format, err := config.ParseOutputFormat(flags.format, config.FormatText, config.FormatJSON)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, func(cfg *config.Config) {
		flags.apply(cmd, cfg)
		cfg.Format = format
	})
	if err != nil {
		return err
	}

	ctx, _ := commandLogger(cmd)

	path := fsutil.StdinPath
	if len(args) > 0 {
		path = args[0]
	}

	content, src, err := fsutil.ReadInput(ctx, path, cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	opts := renderOptions(cfg)
	opts.TOC = true
	doc, err := render.New(opts).Render(ctx, content)
	if err != nil {
		return fmt.Errorf("render %s: %w", src.Path, err)
	}

	out := cmd.OutOrStdout()
	if format == config.FormatJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(tocDocument{Title: doc.Title, TOC: doc.TOC, Headings: doc.Headings})
	}

	styles := stylesFor(cmd, out)
	_, err = fmt.Fprint(out, styles.FormatOutline(doc.Headings, !heading.Disabled(cfg.HeadingNumber)))
	return err
}
