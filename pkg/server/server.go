// Package server serves a directory of Markdown documents as rendered
// HTML pages.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/mathdown/internal/logging"
	"github.com/yaklabco/mathdown/pkg/page"
	"github.com/yaklabco/mathdown/pkg/render"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8080"

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Options configures a Server.
type Options struct {
	// Root is the directory being served.
	Root string

	// Addr is the listen address, DefaultAddr when empty.
	Addr string

	// Renderer renders documents; per-file options derive from its options.
	Renderer *render.Renderer

	// Page holds the page defaults.
	Page page.Data

	// Logger receives request logs. Defaults to logging.Default().
	Logger *log.Logger
}

// Server renders Markdown files under a root directory on request.
type Server struct {
	root     string
	addr     string
	renderer *render.Renderer
	page     page.Data
	logger   *log.Logger
}

// New validates opts and creates a Server.
func New(opts Options) (*Server, error) {
	root := opts.Root
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("serve root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("serve root %s: %w", abs, errNotDirectory)
	}

	s := &Server{
		root:     abs,
		addr:     opts.Addr,
		renderer: opts.Renderer,
		page:     opts.Page,
		logger:   opts.Logger,
	}
	if s.addr == "" {
		s.addr = DefaultAddr
	}
	if s.renderer == nil {
		s.renderer = render.New(render.Options{})
	}
	if s.logger == nil {
		s.logger = logging.Default()
	}
	return s, nil
}

var errNotDirectory = errors.New("not a directory")

// Root returns the absolute directory being served.
func (s *Server) Root() string {
	return s.root
}

// Handler returns the HTTP handler, wrapped in request logging.
func (s *Server) Handler() http.Handler {
	return s.logRequests(http.HandlerFunc(s.serve))
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is done.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving", logging.FieldAddr, listener.Addr().String(), logging.FieldRoot, s.root)
		errCh <- srv.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		level := log.InfoLevel
		if rec.status >= http.StatusInternalServerError {
			level = log.ErrorLevel
		}
		s.logger.Log(level, "request",
			logging.FieldMethod, r.Method,
			logging.FieldStatus, rec.status,
			logging.FieldPath, r.URL.RequestURI(),
			logging.FieldDuration, time.Since(start).Round(time.Microsecond),
			logging.FieldRemote, r.RemoteAddr,
		)
	})
}
