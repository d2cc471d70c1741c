// Package runner renders many Markdown files concurrently.
package runner

import (
	"path/filepath"
	"strings"
)

// OutputExtension is appended to rendered files.
const OutputExtension = ".html"

// Options controls a build.
type Options struct {
	// Paths are the files or directories to build.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered Markdown. Defaults to DefaultExtensions().
	Extensions []string

	// IncludeGlobs restricts the build to matching files, relative to
	// WorkingDir. Empty means every Markdown file.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files or directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs is the maximum number of concurrent workers.
	// 0 or negative means runtime.NumCPU().
	Jobs int

	// OutDir receives the rendered files, mirroring their location
	// relative to WorkingDir. Empty writes each file next to its source.
	OutDir string

	// Fragment writes the bare HTML fragment instead of a full page.
	Fragment bool

	// Incremental skips sources whose output is newer than the source.
	Incremental bool
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

// OutputPath returns where the rendered form of source is written.
// Sources outside workDir are written next to themselves.
func (o Options) OutputPath(workDir, source string) string {
	base := strings.TrimSuffix(source, filepath.Ext(source)) + OutputExtension
	if o.OutDir == "" {
		return base
	}

	rel, err := filepath.Rel(workDir, base)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return base
	}

	outDir := o.OutDir
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(workDir, outDir)
	}
	return filepath.Join(outDir, rel)
}
