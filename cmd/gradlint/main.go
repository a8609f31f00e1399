// Command gradlint lints and autocorrects Gradle build scripts.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/gradlint/internal/cli"
	"github.com/yaklabco/gradlint/internal/logging"
)

// Set with -ldflags "-X main.version=..." by the release build.
//
//nolint:gochecknoglobals // ldflags targets
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	root := cli.NewRootCommand(cli.BuildInfo{Version: version, Commit: commit, Date: date})

	err := root.Execute()
	// Lint findings are already on stdout; only log real failures.
	if err != nil && !errors.Is(err, cli.ErrLintIssuesFound) {
		logging.Default().Error("gradlint failed", logging.FieldError, err)
	}
	os.Exit(cli.ExitCode(err))
}
