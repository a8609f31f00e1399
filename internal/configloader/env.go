package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/yaklabco/gradlint/pkg/config"
)

const envVarPrefix = "GRADLINT_"

// envVar binds one GRADLINT_* variable to a Config field. set receives the
// raw, non-empty value.
type envVar struct {
	name string
	help string
	set  func(cfg *config.Config, value string) error
}

func stringVar[T ~string](field func(*config.Config) *T) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		*field(cfg) = T(value)
		return nil
	}
}

func boolVar(field func(*config.Config) *bool) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("want true, false, 1 or 0, got %q", value)
		}
		*field(cfg) = b
		return nil
	}
}

func intVar(field func(*config.Config) *int) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("want an integer, got %q", value)
		}
		*field(cfg) = n
		return nil
	}
}

func listVar(field func(*config.Config) *[]string) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		items := lo.Map(strings.Split(value, ","), func(s string, _ int) string { return strings.TrimSpace(s) })
		*field(cfg) = lo.Compact(items)
		return nil
	}
}

//nolint:gochecknoglobals // read-only table
var envVars = []envVar{
	{"SEVERITY_DEFAULT", "default severity: error, warning or info",
		stringVar(func(c *config.Config) *string { return &c.SeverityDefault })},
	{"FIX", "apply fixes: true or false",
		boolVar(func(c *config.Config) *bool { return &c.Fix })},
	{"DRY_RUN", "show fixes as a diff without writing: true or false",
		boolVar(func(c *config.Config) *bool { return &c.DryRun })},
	{"JOBS", "parallel workers, 0 for one per CPU",
		intVar(func(c *config.Config) *int { return &c.Jobs })},
	{"FORMAT", "output format: text, json, sarif, diff or summary",
		stringVar(func(c *config.Config) *config.OutputFormat { return &c.Format })},
	{"RULE_FORMAT", "rule identifiers in output: name, id or combined",
		stringVar(func(c *config.Config) *config.RuleFormat { return &c.RuleFormat })},
	{"BACKUPS_ENABLED", "back up build scripts before fixing: true or false",
		boolVar(func(c *config.Config) *bool { return &c.Backups.Enabled })},
	{"BACKUPS_MODE", "backup mode: sidecar or none",
		stringVar(func(c *config.Config) *string { return &c.Backups.Mode })},
	{"NO_BACKUPS", "disable backups: true or false",
		boolVar(func(c *config.Config) *bool { return &c.NoBackups })},
	{"IGNORE", "comma-separated glob patterns to skip",
		listVar(func(c *config.Config) *[]string { return &c.Ignore })},
	{"MAX_FIX_PASSES", "lint-and-fix rounds per file",
		intVar(func(c *config.Config) *int { return &c.MaxFixPasses })},
	{"STRICT", "hash file content before writing, not only mtime and size: true or false",
		boolVar(func(c *config.Config) *bool { return &c.Strict })},
}

// LoadFromEnv applies every set GRADLINT_* variable to cfg. Empty
// variables are ignored. The first malformed value aborts with an error
// naming the variable.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}
	for _, v := range envVars {
		name := envVarPrefix + v.name
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		if err := v.set(cfg, value); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}
	return nil
}

// ListEnvVars maps each supported variable to its help text.
func ListEnvVars() map[string]string {
	return lo.SliceToMap(envVars, func(v envVar) (string, string) {
		return envVarPrefix + v.name, v.help
	})
}
