package cli

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gradlint/internal/configloader"
	"github.com/yaklabco/gradlint/internal/logging"
	"github.com/yaklabco/gradlint/pkg/analysis"
	"github.com/yaklabco/gradlint/pkg/config"
	"github.com/yaklabco/gradlint/pkg/lint"
	_ "github.com/yaklabco/gradlint/pkg/lint/rules" // built-in rules
	"github.com/yaklabco/gradlint/pkg/reporter"
	"github.com/yaklabco/gradlint/pkg/runner"
)

const lintLongDescription = `Lint Gradle build scripts.

With no paths, every *.gradle and *.gradle.kts file below the current
directory is linted; build/ and .gradle/ directories are skipped.

Examples:
  gradlint lint                     # lint the current directory
  gradlint lint app/                # lint one subproject
  gradlint lint build.gradle        # lint a single file
  gradlint lint --fix               # apply fixes
  gradlint lint --dry-run           # show fixes as a diff, write nothing
  gradlint lint --format sarif      # SARIF for code scanning
  gradlint lint --strict            # fail on warnings as well`

// lintFlags holds the flags that do not bind straight into config.Config.
type lintFlags struct {
	format       string
	ruleFormat   string
	ignore       []string
	enable       []string
	disable      []string
	fixRules     []string
	strict       bool
	noContext    bool
	compact      bool
	summaryOrder string
	sort         string
}

func newLintCommand(info BuildInfo) *cobra.Command {
	var cfg config.Config
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint Gradle build scripts",
		Long:  lintLongDescription + environmentHelp(),
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, &cfg, flags, info)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&cfg.Fix, "fix", false, "apply fixes to build scripts")
	f.BoolVar(&cfg.DryRun, "dry-run", false, "compute fixes and show them as a diff without writing")
	f.BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when fixing")
	f.IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	f.StringVar(&flags.format, "format", string(reporter.FormatText), "output format: "+reporter.FormatNames())
	f.StringVar(&flags.ruleFormat, "rule-format", string(config.RuleFormatName), "rule identifier format in output: name, id, or combined")
	f.StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	f.StringSliceVar(&flags.enable, "enable", nil, "rule IDs or names to enable")
	f.StringSliceVar(&flags.disable, "disable", nil, "rule IDs or names to disable")
	f.StringSliceVar(&flags.fixRules, "fix-rules", nil, "limit fixes to specific rule IDs or names")
	f.BoolVar(&flags.strict, "strict", false, "treat warnings as failures for the exit code")
	f.BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	f.BoolVar(&flags.compact, "compact", false, "use compact output format")
	f.StringVar(&flags.summaryOrder, "summary-order", string(reporter.SummaryOrderRules), "order of tables in summary output: rules, files")
	f.StringVar(&flags.sort, "sort", string(analysis.SortByCount), "row order in summary output: count, alpha, severity")

	return cmd
}

// environmentHelp lists the GRADLINT_* variables under the lint help.
func environmentHelp() string {
	vars := configloader.ListEnvVars()

	var sb strings.Builder
	sb.WriteString("\n\nEnvironment:")
	for _, name := range slices.Sorted(maps.Keys(vars)) {
		fmt.Fprintf(&sb, "\n  %-26s %s", name, vars[name])
	}
	return sb.String()
}

// applyTo copies the flags the user set onto cfg. Flags left at their
// defaults do not override file or environment settings.
func (f *lintFlags) applyTo(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(f.format)
	}
	if cmd.Flags().Changed("rule-format") {
		cfg.RuleFormat = config.RuleFormat(f.ruleFormat)
	}
	cfg.Ignore = f.ignore
	cfg.EnableRules = f.enable
	cfg.DisableRules = f.disable
	cfg.FixRules = f.fixRules
	cfg.Fix = cfg.Fix || cfg.DryRun
}

func runLint(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *lintFlags, info BuildInfo) error {
	logger := logging.Default()
	ctx := logging.WithLogger(cmd.Context(), logger)

	sortBy, err := analysis.ParseSortField(flags.sort)
	if err != nil {
		return fmt.Errorf("invalid sort: %w", err)
	}
	order, err := reporter.ParseSummaryOrder(flags.summaryOrder)
	if err != nil {
		return fmt.Errorf("invalid summary order: %w", err)
	}
	flags.applyTo(cmd, cliCfg)

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	cfg, err := loadLintConfig(ctx, cmd, workDir, cliCfg)
	if err != nil {
		return err
	}

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Suffixes:     runner.DefaultSuffixes(),
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		Config:       cfg,
	}
	logger.Debug("starting lint run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, workDir,
		logging.FieldJobs, runOpts.Jobs)

	engine := lint.NewEngine(lint.NewScriptParser(), lint.DefaultRegistry)
	result, err := runner.New(lint.NewPipeline(engine)).Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("lint run failed"), err)
	}

	// A dry run shows diffs unless a format was asked for.
	format := cfg.Format
	if cfg.DryRun && format == config.FormatText && !cmd.Flags().Changed("format") {
		format = config.FormatDiff
	}
	format, err = reporter.ParseFormat(string(format))
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}
	color, _ := cmd.Flags().GetString("color")

	rep, err := reporter.New(reporter.Options{
		Writer:       cmd.OutOrStdout(),
		ErrorWriter:  cmd.ErrOrStderr(),
		Format:       format,
		Color:        color,
		ShowContext:  !flags.noContext,
		ShowSummary:  true,
		GroupByFile:  true,
		Compact:      flags.compact,
		RuleFormat:   cfg.RuleFormat,
		SummaryOrder: order,
		SortBy:       sortBy,
		WorkingDir:   workDir,
		Rules:        lint.DefaultRegistry.RuleInfos(),
		ToolVersion:  info.Version,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}
	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	switch ExitCodeFromResult(result, flags.strict) {
	case ExitIssues:
		return ErrLintIssuesFound
	case ExitError:
		return ErrFilesFailed
	}
	return nil
}

// loadLintConfig layers the config files, the environment and cliCfg.
func loadLintConfig(ctx context.Context, cmd *cobra.Command, workDir string, cliCfg *config.Config) (*config.Config, error) {
	logger := logging.FromContext(ctx)
	explicit, _ := cmd.Flags().GetString("config")

	loaded, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: explicit,
		Registry:     lint.DefaultRegistry,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range loaded.Warnings {
		logger.Warn(warning)
	}
	cfg := loaded.Config
	logger.Debug("configuration loaded",
		logging.FieldFiles, loaded.LoadedFrom,
		logging.FieldFix, cfg.Fix,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldJobs, cfg.Jobs)
	return cfg, nil
}
