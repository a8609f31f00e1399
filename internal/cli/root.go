// Package cli wires the gradlint commands onto cobra.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gradlint/internal/logging"
)

// BuildInfo is stamped into the binary at release time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are shared by every subcommand. The lint command reads
// --config and --color back through cmd.Flags().
type globalFlags struct {
	debug  bool
	config string
	color  string
}

const rootLongDescription = `gradlint checks Gradle build scripts (build.gradle, build.gradle.kts,
settings.gradle) for deprecated configurations, duplicated dependencies,
layout problems and whitespace issues.

Most findings carry a fix. Fixes are grouped into patchsets, overlapping
changes are resolved so each file is edited consistently, and every write
is guarded by a modification check, an advisory lock and an optional backup.`

// NewRootCommand returns the gradlint command tree.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "gradlint",
		Short:         "A linter and autocorrector for Gradle build scripts",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if flags.debug {
				logging.SetLevel("debug")
			}
		},
	}

	persistent := root.PersistentFlags()
	persistent.BoolVar(&flags.debug, "debug", false, "enable debug logging")
	persistent.StringVar(&flags.config, "config", "", "path to config file")
	persistent.StringVar(&flags.color, "color", "auto", "colorize output: auto, always, never")

	root.AddCommand(
		newLintCommand(info),
		newRulesCommand(),
		newInitCommand(),
		newVersionCommand(info),
	)

	applyHelp(root, flags.color, os.Stdout)
	return root
}
