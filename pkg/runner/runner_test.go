package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mathdown/pkg/page"
	"github.com/yaklabco/mathdown/pkg/render"
	"github.com/yaklabco/mathdown/pkg/runner"
)

func newRunner() *runner.Runner {
	return runner.New(render.New(render.Options{HeadingNumber: "i.i"}), page.Data{Title: "Docs"})
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Zero(t, result.Stats.FilesDiscovered)
	assert.False(t, result.HasFailures())
	require.NoError(t, result.Err())
}

func TestRunner_Run_WritesPages(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("# A\n\n$x$ and $y$\n"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.md"), []byte("# B\n\n## C\n"), 0o600))

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: dir, OutDir: "site", Jobs: 2})
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.Equal(t, filepath.Join(dir, "a.md"), result.Files[0].Path)
	assert.Equal(t, filepath.Join(dir, "site", "sub", "b.html"), result.Files[1].Output)

	assert.Equal(t, runner.Stats{
		FilesDiscovered: 2,
		FilesRendered:   2,
		FilesWritten:    2,
		Headings:        3,
		MathSpans:       2,
	}, result.Stats)

	out, err := os.ReadFile(filepath.Join(dir, "site", "a.html"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "<!DOCTYPE html>"))
	assert.Contains(t, string(out), "$x$ and $y$")
	assert.Contains(t, string(out), "<title>Docs</title>")
}

func TestRunner_Run_SecondRunIsUnchanged(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("# A\n"), 0o600))

	r := newRunner()
	opts := runner.Options{WorkingDir: dir, Fragment: true}

	_, err := r.Run(context.Background(), opts)
	require.NoError(t, err)

	result, err := r.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Stats.FilesUnchanged)
	assert.Zero(t, result.Stats.FilesWritten)

	out, err := os.ReadFile(filepath.Join(dir, "a.html"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "<h1 "), "fragment has no page wrapper")
}

func TestRunner_Run_Incremental(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "a.md")
	require.NoError(t, os.WriteFile(src, []byte("# A\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.html"), []byte("stale"), 0o600))

	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(src, past, past))

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: dir, Incremental: true})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.True(t, result.Files[0].UpToDate)
	assert.Equal(t, 1, result.Stats.FilesUpToDate)

	out, err := os.ReadFile(filepath.Join(dir, "a.html"))
	require.NoError(t, err)
	assert.Equal(t, "stale", string(out))
}

func TestRunner_Run_ReportsErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("# A\n"), 0o600))
	// A directory where the output should go makes the write fail.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "b.html"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.md"), []byte("# B\n"), 0o600))

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)

	assert.True(t, result.HasFailures())
	assert.Equal(t, 1, result.Stats.FilesErrored)
	assert.Equal(t, 1, result.Stats.FilesWritten)
	require.Error(t, result.Err())
	assert.Contains(t, result.Err().Error(), "b.md")
}

func TestRunner_Run_SerialMatchesParallel(t *testing.T) {
	t.Parallel()

	build := func(jobs int) []string {
		dir := t.TempDir()
		for i := range 12 {
			name := filepath.Join(dir, "doc"+string(rune('a'+i))+".md")
			require.NoError(t, os.WriteFile(name, []byte("# Doc\n\n$"+name+"$\n"), 0o600))
		}
		result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: jobs, Fragment: true})
		require.NoError(t, err)

		bases := make([]string, 0, len(result.Files))
		for _, f := range result.Files {
			bases = append(bases, filepath.Base(f.Output))
		}
		return bases
	}

	assert.Equal(t, build(1), build(8))
}

func TestRunner_Run_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner().Run(ctx, runner.Options{WorkingDir: t.TempDir()})
	require.ErrorIs(t, err, context.Canceled)
}
