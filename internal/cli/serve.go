package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mathdown/internal/logging"
	"github.com/yaklabco/mathdown/pkg/config"
	"github.com/yaklabco/mathdown/pkg/render"
	"github.com/yaklabco/mathdown/pkg/server"
)

type serveFlags struct {
	documentFlags

	addr string
}

func newServeCommand() *cobra.Command {
	flags := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve [dir]",
		Short: "Serve a directory of Markdown files as HTML",
		Long: `Serve a directory over HTTP, rendering Markdown on request.

GET /notes renders notes.md. Add ?raw for the source or ?toc for the
table of contents as JSON. Directories render their index.md or a file
listing; other files are served as they are. A file name.option.json
next to a document overrides its title, theme, toc and heading numbering.
Stops gracefully on SIGINT or SIGTERM.

Examples:
  mathdown serve                         # Serve the current directory on :8080
  mathdown serve wiki/ --addr :3000      # Serve wiki/ on port 3000
  mathdown serve --heading-number i.a.i  # Number headings by default`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, args, flags)
		},
	}

	flags.addPageFlags(cmd)
	cmd.Flags().StringVar(&flags.addr, "addr", config.DefaultAddr, "listen address")

	return cmd
}

func runServe(cmd *cobra.Command, args []string, flags *serveFlags) error {
	cfg, err := loadConfig(cmd, func(cfg *config.Config) {
		flags.apply(cmd, cfg)
		if cmd.Flags().Changed("addr") {
			cfg.Addr = flags.addr
		}
	})
	if err != nil {
		return err
	}

	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	logger := logging.NewInteractive()
	if logging.Default().GetLevel() <= log.DebugLevel {
		logger.SetLevel(log.DebugLevel)
	}

	srv, err := server.New(server.Options{
		Root:     root,
		Addr:     cfg.Addr,
		Renderer: render.New(renderOptions(cfg)),
		Page:     pageData(cfg),
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.ListenAndServe(logging.WithLogger(ctx, logger))
}
