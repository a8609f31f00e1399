// Package config holds the configuration data types shared by the loader,
// the lint engine and the reporters. Loading and merging live in
// internal/configloader.
package config

import "slices"

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Severities lists the severities from most to least severe.
func Severities() []Severity {
	return []Severity{SeverityError, SeverityWarning, SeverityInfo}
}

func (s Severity) IsValid() bool { return slices.Contains(Severities(), s) }

// OutputFormat names a reporter.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

func OutputFormats() []OutputFormat {
	return []OutputFormat{FormatText, FormatJSON, FormatSARIF, FormatDiff, FormatSummary}
}

func (f OutputFormat) IsValid() bool { return slices.Contains(OutputFormats(), f) }

// RuleFormat selects how a rule is named in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // deprecated-configuration
	RuleFormatID       RuleFormat = "id"       // GL001
	RuleFormatCombined RuleFormat = "combined" // GL001/deprecated-configuration
)

func RuleFormats() []RuleFormat {
	return []RuleFormat{RuleFormatName, RuleFormatID, RuleFormatCombined}
}

func (f RuleFormat) IsValid() bool { return slices.Contains(RuleFormats(), f) }

// Label names a rule in this format. A rule without a name is shown by ID;
// an unset format shows names.
func (f RuleFormat) Label(ruleID, ruleName string) string {
	switch {
	case ruleName == "" || f == RuleFormatID:
		return ruleID
	case f == RuleFormatCombined:
		return ruleID + "/" + ruleName
	}
	return ruleName
}

// BackupModes lists the accepted backups.mode values.
func BackupModes() []string { return []string{"sidecar", "none"} }

// RuleConfig is one entry of the rules map. Nil pointers leave the rule's
// default in place.
type RuleConfig struct {
	Enabled  *bool          `yaml:"enabled" toml:"enabled"`
	Severity *string        `yaml:"severity" toml:"severity"`
	AutoFix  *bool          `yaml:"auto_fix" toml:"auto_fix"`
	Options  map[string]any `yaml:"options" toml:"options"`
}

type BackupsConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Mode    string `yaml:"mode" toml:"mode"`
}

// Config is the resolved configuration of a run. Fields tagged "-" come
// from flags and the environment only.
type Config struct {
	SeverityDefault string                `yaml:"severity_default" toml:"severity_default"`
	Rules           map[string]RuleConfig `yaml:"rules" toml:"rules"` // keyed by rule ID or name
	Ignore          []string              `yaml:"ignore" toml:"ignore"`
	Backups         BackupsConfig         `yaml:"backups" toml:"backups"`
	MaxFixPasses    int                   `yaml:"max_fix_passes" toml:"max_fix_passes"`

	Fix        bool         `yaml:"-" toml:"-"`
	DryRun     bool         `yaml:"-" toml:"-"`
	Format     OutputFormat `yaml:"-" toml:"-"`
	RuleFormat RuleFormat   `yaml:"-" toml:"-"`
	Jobs       int          `yaml:"-" toml:"-"` // 0 means one per CPU

	// EnableRules, DisableRules and FixRules hold rule IDs or names.
	EnableRules  []string `yaml:"-" toml:"-"`
	DisableRules []string `yaml:"-" toml:"-"`
	FixRules     []string `yaml:"-" toml:"-"`

	NoBackups bool `yaml:"-" toml:"-"`

	// Strict compares content hashes, not only mtime and size, before a
	// fixed file is written.
	Strict bool `yaml:"-" toml:"-"`
}

const DefaultMaxFixPasses = 10

func NewConfig() *Config {
	return &Config{
		SeverityDefault: string(SeverityWarning),
		Rules:           make(map[string]RuleConfig),
		Backups:         BackupsConfig{Enabled: true, Mode: "sidecar"},
		MaxFixPasses:    DefaultMaxFixPasses,
		Format:          FormatText,
		RuleFormat:      RuleFormatName,
		Strict:          true,
	}
}
