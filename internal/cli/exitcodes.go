package cli

import (
	"errors"

	"github.com/yaklabco/mathdown/pkg/runner"
)

// ErrRenderFailed is returned when one or more documents could not be built.
var ErrRenderFailed = errors.New("render failed")

// Exit codes for mathdown.
const (
	// ExitSuccess indicates every document was rendered.
	ExitSuccess = 0

	// ExitRenderFailed indicates at least one document failed to render.
	ExitRenderFailed = 1
)

// ExitCodeFromResult determines the exit code of a build.
func ExitCodeFromResult(result *runner.Result) int {
	if result.HasFailures() {
		return ExitRenderFailed
	}
	return ExitSuccess
}
