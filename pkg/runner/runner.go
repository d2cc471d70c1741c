package runner

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/mathdown/internal/logging"
	"github.com/yaklabco/mathdown/pkg/fsutil"
	"github.com/yaklabco/mathdown/pkg/page"
	"github.com/yaklabco/mathdown/pkg/render"
)

// Runner builds documents with a shared renderer.
type Runner struct {
	// Renderer converts each document.
	Renderer *render.Renderer

	// Page holds the page settings; Result is filled per document.
	Page page.Data
}

// New creates a Runner.
func New(renderer *render.Renderer, pageData page.Data) *Runner {
	return &Runner{Renderer: renderer, Page: pageData}
}

// Run discovers files under opts.Paths and builds them concurrently.
// Outcomes are returned in path order regardless of completion order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Go(func() {
			r.worker(ctx, workDir, opts, workCh, outCh)
		})
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("build cancelled: %w", err)
	}
	return result, nil
}

func (r *Runner) worker(
	ctx context.Context,
	workDir string,
	opts Options,
	workCh <-chan string,
	outCh chan<- FileOutcome,
) {
	logger := logging.FromContext(ctx)

	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := r.build(ctx, workDir, opts, path)
		if outcome.Error != nil {
			logger.Debug("build failed", logging.FieldPath, path, logging.FieldError, outcome.Error)
		} else {
			logger.Debug("built", logging.FieldPath, path, logging.FieldOutput, outcome.Output,
				logging.FieldHeadings, outcome.Headings, logging.FieldMath, outcome.MathSpans)
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// build renders one file and writes it when its content changed.
func (r *Runner) build(ctx context.Context, workDir string, opts Options, path string) FileOutcome {
	outcome := FileOutcome{Path: path, Output: opts.OutputPath(workDir, path)}

	if opts.Incremental {
		fresh, err := fsutil.UpToDate(outcome.Output, path)
		if err != nil {
			outcome.Error = err
			return outcome
		}
		if fresh {
			outcome.UpToDate = true
			return outcome
		}
	}

	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	doc, err := r.Renderer.Render(ctx, content)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Headings = len(doc.Headings)
	outcome.MathSpans = len(doc.Math)

	var out []byte
	if opts.Fragment {
		out = []byte(doc.HTML)
	} else {
		data := r.Page
		data.Result = doc
		var buf bytes.Buffer
		if err := page.Render(&buf, data); err != nil {
			outcome.Error = err
			return outcome
		}
		out = buf.Bytes()
	}

	outcome.Written, outcome.Error = fsutil.WriteAtomicIfChanged(ctx, outcome.Output, out, fsutil.DefaultFileMode)
	return outcome
}
