package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mathdown/internal/logging"
	"github.com/yaklabco/mathdown/pkg/config"
	"github.com/yaklabco/mathdown/pkg/fsutil"
	"github.com/yaklabco/mathdown/pkg/page"
	"github.com/yaklabco/mathdown/pkg/render"
)

type renderFlags struct {
	documentFlags

	format string
	output string
}

func newRenderCommand() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render one Markdown document",
		Long: `Render a single Markdown document to HTML.

Reads standard input when no file (or "-") is given and writes to
standard output unless --output is set.

Examples:
  mathdown render notes.md                    # Full page on stdout
  mathdown render notes.md -o notes.html      # Write a page to a file
  mathdown render --format fragment notes.md  # Converted HTML only
  mathdown render --format json notes.md      # HTML, TOC and math as JSON
  cat notes.md | mathdown render --toc --heading-number i.a.i`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, flags)
		},
	}

	flags.addPageFlags(cmd)
	cmd.Flags().StringVar(&flags.format, "format", string(config.FormatPage), "output format: page, fragment, json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func runRender(cmd *cobra.Command, args []string, flags *renderFlags) error {
	format, err := config.ParseOutputFormat(flags.format, config.FormatPage, config.FormatFragment, config.FormatJSON)
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

	ctx, logger := commandLogger(cmd)

	path := fsutil.StdinPath
	if len(args) > 0 {
		path = args[0]
	}

	content, src, err := fsutil.ReadInput(ctx, path, cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	doc, err := render.New(renderOptions(cfg)).Render(ctx, content)
	if err != nil {
		return fmt.Errorf("render %s: %w", src.Path, err)
	}

	logger.Debug("rendered",
		logging.FieldPath, src.Path,
		logging.FieldFormat, format,
		logging.FieldHeadings, len(doc.Headings),
		logging.FieldMath, len(doc.Math),
	)

	out, err := encodeDocument(doc, format, pageData(cfg))
	if err != nil {
		return err
	}

	if flags.output == "" {
		_, err := cmd.OutOrStdout().Write(out)
		return err
	}

	if err := fsutil.WriteAtomic(ctx, flags.output, out, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Info("wrote", logging.FieldOutput, flags.output)
	return nil
}

// encodeDocument serializes a rendered document in the requested format.
func encodeDocument(doc *render.Result, format config.OutputFormat, data page.Data) ([]byte, error) {
	switch format {
	case config.FormatFragment:
		return []byte(doc.HTML), nil
	case config.FormatJSON:
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(out, '\n'), nil
	default:
		data.Result = doc
		var buf bytes.Buffer
		if err := page.Render(&buf, data); err != nil {
			return nil, fmt.Errorf("render page: %w", err)
		}
		return buf.Bytes(), nil
	}
}
