package runner

import (
	"errors"
	"fmt"
)

// FileOutcome describes what happened to one source file.
type FileOutcome struct {
	// Path is the source file.
	Path string

	// Output is the rendered file's path.
	Output string

	// Written reports whether Output was created or changed.
	Written bool

	// UpToDate reports that rendering was skipped because Output was
	// newer than Path.
	UpToDate bool

	// Headings and MathSpans count what the document contained.
	Headings  int
	MathSpans int

	// Error is set if the file could not be built.
	Error error
}

// Stats captures aggregate information about a build.
type Stats struct {
	FilesDiscovered int
	FilesRendered   int
	FilesWritten    int
	FilesUnchanged  int
	FilesUpToDate   int
	FilesErrored    int
	Headings        int
	MathSpans       int
}

// Result is the overall build result.
type Result struct {
	// Files holds one outcome per source, ordered by path.
	Files []FileOutcome

	// Stats aggregates Files.
	Stats Stats
}

// HasFailures reports whether any file failed to build.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// Err joins the per-file errors, or returns nil.
func (r *Result) Err() error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, f := range r.Files {
		if f.Error != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.Path, f.Error))
		}
	}
	return errors.Join(errs...)
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	switch {
	case outcome.Error != nil:
		r.Stats.FilesErrored++
		return
	case outcome.UpToDate:
		r.Stats.FilesUpToDate++
		return
	}

	r.Stats.FilesRendered++
	r.Stats.Headings += outcome.Headings
	r.Stats.MathSpans += outcome.MathSpans
	if outcome.Written {
		r.Stats.FilesWritten++
	} else {
		r.Stats.FilesUnchanged++
	}
}
