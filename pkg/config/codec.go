package config

import (
	"bytes"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileFormat is the encoding of a configuration file.
type FileFormat string

const (
	FileFormatYAML FileFormat = "yaml"
	FileFormatTOML FileFormat = "toml"
)

// IsValid reports whether f is a known file format.
func (f FileFormat) IsValid() bool {
	return f == FileFormatYAML || f == FileFormatTOML
}

// Extension returns the file extension conventionally used for f.
func (f FileFormat) Extension() string {
	if f == FileFormatTOML {
		return ".toml"
	}
	return ".yml"
}

// FileFormatOf picks the format from a file name: .toml files are TOML,
// everything else is YAML.
func FileFormatOf(path string) FileFormat {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FileFormatTOML
	}
	return FileFormatYAML
}

// yamlIndent is the indentation used when writing YAML.
const yamlIndent = 2

// Decode parses configuration data in the given format. The Rules map of
// the result is never nil.
func Decode(format FileFormat, data []byte) (*Config, error) {
	cfg := &Config{}

	switch format {
	case FileFormatTOML:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse toml: %w", err)
		}
	case FileFormatYAML, "":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}

	if cfg.Rules == nil {
		cfg.Rules = make(map[string]RuleConfig)
	}
	return cfg, nil
}

// Encode writes the persistent part of the configuration in the given
// format. A non-empty header is written first, followed by a blank line;
// it should consist of comment lines. A nil Config encodes to nil.
func (c *Config) Encode(format FileFormat, header string) ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	if header != "" {
		buf.WriteString(strings.TrimRight(header, "\n"))
		buf.WriteString("\n\n")
	}

	switch format {
	case FileFormatTOML:
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
	case FileFormatYAML, "":
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(yamlIndent)
		if err := enc.Encode(c); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}

	return buf.Bytes(), nil
}

// Clone returns a deep copy of c. Option values nested inside a rule's
// Options map are shared.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Ignore = slices.Clone(c.Ignore)
	clone.EnableRules = slices.Clone(c.EnableRules)
	clone.DisableRules = slices.Clone(c.DisableRules)
	clone.FixRules = slices.Clone(c.FixRules)

	if c.Rules != nil {
		clone.Rules = make(map[string]RuleConfig, len(c.Rules))
		for key, rc := range c.Rules {
			clone.Rules[key] = rc.clone()
		}
	}
	return &clone
}

func (rc RuleConfig) clone() RuleConfig {
	return RuleConfig{
		Enabled:  clonePtr(rc.Enabled),
		Severity: clonePtr(rc.Severity),
		AutoFix:  clonePtr(rc.AutoFix),
		Options:  maps.Clone(rc.Options),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
