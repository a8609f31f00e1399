package cli

import (
	"errors"

	"github.com/yaklabco/gradlint/pkg/config"
	"github.com/yaklabco/gradlint/pkg/runner"
)

// Exit codes for gradlint.
const (
	// ExitSuccess indicates a clean run.
	ExitSuccess = 0

	// ExitIssues indicates the run completed but found failing violations.
	ExitIssues = 1

	// ExitError indicates the run could not complete: bad usage, invalid
	// configuration or an I/O failure.
	ExitError = 2
)

var (
	// ErrLintIssuesFound is returned when lint issues are found.
	ErrLintIssuesFound = errors.New("lint issues found")

	// ErrFilesFailed is returned when at least one build script could not
	// be read, linted or written.
	ErrFilesFailed = errors.New("some build scripts could not be processed")
)

// ExitCodeFromResult determines the exit code of a completed run. A file
// that could not be processed outranks violations. Error violations always
// fail the run and warnings fail it in strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.Stats.FilesErrored > 0 {
		return ExitError
	}
	if result.Stats.ViolationsBySeverity[config.SeverityError] > 0 {
		return ExitIssues
	}
	if strict && result.Stats.ViolationsBySeverity[config.SeverityWarning] > 0 {
		return ExitIssues
	}

	return ExitSuccess
}

// ExitCode maps the error returned by a command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrLintIssuesFound):
		return ExitIssues
	default:
		return ExitError
	}
}
