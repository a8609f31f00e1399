// Package configloader resolves the effective gradlint configuration from
// defaults, system, user and project files, GRADLINT_* variables and CLI
// flags, in that order.
package configloader

import (
	"context"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/samber/lo"
	"golang.org/x/term"

	"github.com/yaklabco/gradlint/internal/logging"
	"github.com/yaklabco/gradlint/pkg/config"
	"github.com/yaklabco/gradlint/pkg/lint"
)

const configFileMode = 0o644

type LoadOptions struct {
	WorkingDir   string // defaults to os.Getwd
	ExplicitPath string // --config

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// Registry resolves rule names used as rules-map keys. Nil means
	// lint.DefaultRegistry.
	Registry *lint.Registry

	// CLIConfig is merged last.
	CLIConfig *config.Config
}

type LoadResult struct {
	Config     *config.Config
	Paths      *ConfigPaths
	LoadedFrom []string // in merge order
	Warnings   []string
}

// layer is one config file candidate.
type layer struct {
	label string
	path  string
	skip  bool
}

func (o LoadOptions) layers(paths *ConfigPaths) []layer {
	return []layer{
		{label: "system", path: paths.System, skip: o.IgnoreSystemConfig},
		{label: "user", path: paths.User, skip: o.IgnoreUserConfig},
		{label: "project", path: paths.Project, skip: o.IgnoreProjectConfig},
		{label: "explicit", path: paths.Explicit},
	}
}

// Load merges every configuration source over config.NewConfig. Each file
// is validated on its own before merging so errors name the file; the merged
// result is validated again once CLI flags are in.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)

	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}
	registry := opts.Registry
	if registry == nil {
		registry = lint.DefaultRegistry
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	for _, l := range opts.layers(paths) {
		if l.skip || l.path == "" {
			continue
		}
		fileCfg, err := LoadFile(l.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", l.label, err)
		}
		if err := ValidateWithFile(fileCfg, l.path, registry).Err(); err != nil {
			return nil, err
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, l.path)
		logger.Debug("loaded config", logging.FieldConfig, l.label, logging.FieldPath, l.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}
	cfg = merge(cfg, opts.CLIConfig)

	result.Warnings = canonicalizeRules(cfg, registry)

	validation := Validate(cfg, registry)
	if err := validation.Err(); err != nil {
		return nil, err
	}
	result.Warnings = append(result.Warnings, lo.Map(validation.Warnings, func(w ValidationError, _ int) string {
		return w.Error()
	})...)

	result.Config = cfg
	return result, nil
}

// LoadFile decodes one config file, as TOML for .toml and YAML otherwise.
func LoadFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return config.Decode(config.FileFormatOf(path), content)
}

// WriteFile refuses to replace an existing file unless force is set.
func WriteFile(path string, content []byte, force bool) error {
	if !force && fileExists(path) {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := os.WriteFile(path, content, configFileMode); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// IsInteractive reports whether stdin is a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// canonicalizeRules rekeys cfg.Rules by rule ID so "trailing-whitespace"
// and "GL010" address the same entry. When both spellings are present the
// ID entry is kept and a warning returned. Unknown keys stay as they are.
func canonicalizeRules(cfg *config.Config, registry *lint.Registry) []string {
	if len(cfg.Rules) == 0 {
		return nil
	}

	var warnings []string
	out := make(map[string]config.RuleConfig, len(cfg.Rules))
	keyFor := make(map[string]string) // rule ID -> key that produced the entry

	for _, key := range slices.Sorted(maps.Keys(cfg.Rules)) {
		id, ok := registry.Resolve(key)
		if !ok {
			out[key] = cfg.Rules[key]
			continue
		}
		if prev, dup := keyFor[id]; dup {
			winner := lo.Ternary(key == id, key, prev)
			warnings = append(warnings, fmt.Sprintf(
				"duplicate rule configuration: %q and %q both refer to %s; using %q", prev, key, id, winner))
			if winner == prev {
				continue
			}
		}
		keyFor[id] = key
		out[id] = cfg.Rules[key]
	}

	cfg.Rules = out
	return warnings
}
