package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/mathdown/internal/logging"
	"github.com/yaklabco/mathdown/internal/ui/pretty"
	"github.com/yaklabco/mathdown/pkg/config"
	"github.com/yaklabco/mathdown/pkg/render"
	"github.com/yaklabco/mathdown/pkg/runner"
)

type buildFlags struct {
	documentFlags

	outDir      string
	jobs        int
	ignore      []string
	include     []string
	fragment    bool
	incremental bool
	follow      bool
	quiet       bool
}

func newBuildCommand() *cobra.Command {
	flags := &buildFlags{}

	cmd := &cobra.Command{
		Use:   "build [paths...]",
		Short: "Render every Markdown file under the given paths",
		Long: `Render Markdown files in bulk.

By default, builds all .md and .markdown files in the current directory
and subdirectories, writing name.html next to each source. Files are
written atomically and only when their content changed.

Examples:
  mathdown build                        # Build the current directory
  mathdown build docs/ --out-dir site/  # Mirror docs/ into site/
  mathdown build --incremental          # Skip sources older than their output
  mathdown build --ignore 'drafts/**'   # Skip matching files`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args, flags)
		},
	}

	flags.addPageFlags(cmd)
	cmd.Flags().StringVar(&flags.outDir, "out-dir", "", "output directory (default: next to the sources)")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "only build files matching these glob patterns")
	cmd.Flags().BoolVar(&flags.fragment, "fragment", false, "write HTML fragments instead of full pages")
	cmd.Flags().BoolVar(&flags.incremental, "incremental", false, "skip sources whose output is newer")
	cmd.Flags().BoolVar(&flags.follow, "follow-symlinks", false, "descend into symlinked directories")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "print only the one-line summary")

	return cmd
}

func runBuild(cmd *cobra.Command, args []string, flags *buildFlags) error {
	cfg, err := loadConfig(cmd, func(cfg *config.Config) {
		flags.apply(cmd, cfg)
		if cmd.Flags().Changed("out-dir") {
			cfg.OutDir = flags.outDir
		}
		if cmd.Flags().Changed("jobs") {
			cfg.Jobs = flags.jobs
		}
		if cmd.Flags().Changed("ignore") {
			cfg.Ignore = append(cfg.Ignore, flags.ignore...)
		}
	})
	if err != nil {
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	ctx, logger := commandLogger(cmd)

	runOpts := runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		Extensions:     runner.DefaultExtensions(),
		IncludeGlobs:   flags.include,
		ExcludeGlobs:   cfg.Ignore,
		FollowSymlinks: flags.follow,
		Jobs:           cfg.Jobs,
		OutDir:         cfg.OutDir,
		Fragment:       flags.fragment,
		Incremental:    flags.incremental,
	}

	logger.Debug("starting build",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	start := time.Now()
	result, err := runner.New(render.New(renderOptions(cfg)), pageData(cfg)).Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}
	duration := time.Since(start).Round(time.Millisecond)

	logger.Debug("build finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesRendered, result.Stats.FilesRendered,
		logging.FieldFilesWritten, result.Stats.FilesWritten,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
		logging.FieldDuration, duration,
	)

	reportBuild(cmd, result, duration, flags.quiet)

	if ExitCodeFromResult(result) != ExitSuccess {
		return fmt.Errorf("%w: %d of %d files", ErrRenderFailed, result.Stats.FilesErrored, result.Stats.FilesDiscovered)
	}
	return nil
}

// reportBuild prints the outcome table and summary to stdout, and each
// failure to stderr.
func reportBuild(cmd *cobra.Command, result *runner.Result, duration time.Duration, quiet bool) {
	out := cmd.OutOrStdout()
	styles := stylesFor(cmd, out)

	failed := lo.Filter(result.Files, func(file runner.FileOutcome, _ int) bool {
		return file.Error != nil
	})
	errStyles := stylesFor(cmd, cmd.ErrOrStderr())
	for _, file := range failed {
		fmt.Fprint(cmd.ErrOrStderr(), errStyles.FormatFileError(file.Path, file.Error))
	}

	if quiet {
		fmt.Fprint(out, styles.FormatSummaryOneLine(result.Stats))
		return
	}

	table := pretty.NewTableFormatter(styles, terminalWidth(out))
	fmt.Fprint(out, table.FormatTable(result))
	fmt.Fprint(out, table.FormatTableSummary(result.Stats, duration.String()))
	fmt.Fprint(out, styles.FormatSummary(result.Stats))
}

// terminalWidth returns the width of w when it is a terminal, or 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
