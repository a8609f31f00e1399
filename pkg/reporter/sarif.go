package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"github.com/yaklabco/gradlint/pkg/config"
	"github.com/yaklabco/gradlint/pkg/fix"
	"github.com/yaklabco/gradlint/pkg/lint"
	"github.com/yaklabco/gradlint/pkg/runner"
)

const (
	sarifVersion   = "2.1.0"
	sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	toolURI        = "https://github.com/yaklabco/gradlint"
)

// The SARIF types below cover the subset of SARIF 2.1.0 gradlint emits:
// one run, a rule table, results with a single location and optional
// text replacements.
type (
	SARIFOutput struct {
		Schema  string     `json:"$schema"`
		Version string     `json:"version"`
		Runs    []SARIFRun `json:"runs"`
	}

	SARIFRun struct {
		Tool    SARIFTool     `json:"tool"`
		Results []SARIFResult `json:"results"`
	}

	SARIFTool struct {
		Driver SARIFDriver `json:"driver"`
	}

	SARIFDriver struct {
		Name           string      `json:"name"`
		Version        string      `json:"version"`
		InformationURI string      `json:"informationUri"`
		Rules          []SARIFRule `json:"rules"`
	}

	SARIFRule struct {
		ID               string           `json:"id"`
		Name             string           `json:"name,omitempty"`
		ShortDescription SARIFMessage     `json:"shortDescription,omitempty"`
		DefaultConfig    *SARIFRuleConfig `json:"defaultConfiguration,omitempty"`
		Properties       map[string]any   `json:"properties,omitempty"`
	}

	SARIFRuleConfig struct {
		Level string `json:"level"`
	}

	SARIFResult struct {
		RuleID    string          `json:"ruleId"`
		RuleIndex int             `json:"ruleIndex"`
		Level     string          `json:"level"`
		Message   SARIFMessage    `json:"message"`
		Locations []SARIFLocation `json:"locations"`
		Fixes     []SARIFFix      `json:"fixes,omitempty"`
	}

	// SARIFMessage is a plain-text message or artifact content.
	SARIFMessage struct {
		Text string `json:"text"`
	}

	SARIFLocation struct {
		PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
	}

	SARIFPhysicalLocation struct {
		ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
		Region           SARIFRegion           `json:"region"`
	}

	SARIFArtifactLocation struct {
		URI string `json:"uri"`
	}

	SARIFRegion struct {
		StartLine   int `json:"startLine"`
		StartColumn int `json:"startColumn,omitempty"`
		EndLine     int `json:"endLine,omitempty"`
		EndColumn   int `json:"endColumn,omitempty"`
	}

	SARIFFix struct {
		Description     SARIFMessage          `json:"description"`
		ArtifactChanges []SARIFArtifactChange `json:"artifactChanges"`
	}

	SARIFArtifactChange struct {
		ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
		Replacements     []SARIFReplacement    `json:"replacements"`
	}

	SARIFReplacement struct {
		DeletedRegion   SARIFRegion   `json:"deletedRegion"`
		InsertedContent *SARIFMessage `json:"insertedContent,omitempty"`
	}
)

// SARIFReporter writes a SARIF log. The rule table lists every registered
// rule, plus any rule that reported without being registered.
type SARIFReporter struct {
	opts Options
}

func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{opts: opts}
}

func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	output := r.buildOutput(result)
	return buffered(r.opts.Writer, func(w io.Writer) (int, error) {
		enc := json.NewEncoder(w)
		if !r.opts.Compact {
			enc.SetIndent("", "  ")
		}
		if err := enc.Encode(output); err != nil {
			return 0, fmt.Errorf("encode SARIF: %w", err)
		}
		return len(output.Runs[0].Results), nil
	})
}

func (r *SARIFReporter) buildOutput(result *runner.Result) *SARIFOutput {
	rules := lo.Map(r.opts.Rules, func(info config.RuleInfo, _ int) SARIFRule {
		return SARIFRule{
			ID:               info.ID,
			Name:             info.Name,
			ShortDescription: SARIFMessage{Text: info.Description},
			DefaultConfig:    &SARIFRuleConfig{Level: sarifLevel(info.Severity)},
			Properties: map[string]any{
				"tags":    info.Tags,
				"fixable": info.CanFix,
				"enabled": info.Enabled,
			},
		}
	})
	index := make(map[string]int, len(rules))
	for i, rule := range rules {
		index[rule.ID] = i
	}

	results := []SARIFResult{}
	if result != nil {
		for _, file := range result.Files {
			if file.Result == nil || file.Result.FileResult == nil {
				continue
			}
			for i := range file.Result.Violations {
				v := &file.Result.Violations[i]
				idx, ok := index[v.RuleID]
				if !ok {
					idx = len(rules)
					index[v.RuleID] = idx
					rules = append(rules, SARIFRule{
						ID:               v.RuleID,
						Name:             v.RuleName,
						ShortDescription: SARIFMessage{Text: v.Message},
						DefaultConfig:    &SARIFRuleConfig{Level: sarifLevel(v.Severity)},
					})
				}
				results = append(results, r.result(v, idx))
			}
		}
	}

	return &SARIFOutput{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs: []SARIFRun{{
			Tool: SARIFTool{Driver: SARIFDriver{
				Name:           "gradlint",
				Version:        r.opts.ToolVersion,
				InformationURI: toolURI,
				Rules:          rules,
			}},
			Results: results,
		}},
	}
}

func (r *SARIFReporter) result(v *lint.Violation, ruleIndex int) SARIFResult {
	res := SARIFResult{
		RuleID:    v.RuleID,
		RuleIndex: ruleIndex,
		Level:     sarifLevel(v.Severity),
		Message:   SARIFMessage{Text: v.Message},
		Locations: []SARIFLocation{{PhysicalLocation: SARIFPhysicalLocation{
			ArtifactLocation: SARIFArtifactLocation{URI: r.uri(v.FilePath)},
			Region: SARIFRegion{
				StartLine:   v.StartLine,
				StartColumn: v.StartColumn,
				EndLine:     v.EndLine,
				EndColumn:   v.EndColumn,
			},
		}}},
	}
	if f, ok := r.fix(v); ok {
		res.Fixes = []SARIFFix{f}
	}
	return res
}

// fix converts a text fix into a SARIF replacement. File creation and
// deletion have no replacement form and are left out.
func (r *SARIFReporter) fix(v *lint.Violation) (SARIFFix, bool) {
	if v.Fix == nil || !v.Fix.IsTextual() {
		return SARIFFix{}, false
	}
	f := *v.Fix

	replacement := SARIFReplacement{DeletedRegion: deletedRegion(f)}
	if text, ok := f.Changes(); ok {
		if f.Kind() != fix.KindReplaceRange {
			text = strings.TrimSuffix(text, "\n") + "\n"
		}
		replacement.InsertedContent = &SARIFMessage{Text: text}
	}

	description := v.Suggestion
	if description == "" {
		description = f.Kind().String()
	}
	return SARIFFix{
		Description: SARIFMessage{Text: description},
		ArtifactChanges: []SARIFArtifactChange{{
			ArtifactLocation: SARIFArtifactLocation{URI: r.uri(f.Path())},
			Replacements:     []SARIFReplacement{replacement},
		}},
	}, true
}

// deletedRegion maps a fix extent onto a SARIF region. Whole-line fixes run
// from column 1 of their first line to column 1 of the line after their
// last, which takes in the line terminators.
func deletedRegion(f fix.Fix) SARIFRegion {
	if f.Kind() == fix.KindReplaceRange {
		return SARIFRegion{StartLine: f.From(), StartColumn: f.FromColumn(), EndLine: f.To(), EndColumn: f.ToColumn()}
	}
	return SARIFRegion{StartLine: f.From(), StartColumn: 1, EndLine: f.To() + 1, EndColumn: 1}
}

func (r *SARIFReporter) uri(path string) string {
	return filepath.ToSlash(displayPath(r.opts.WorkingDir, path))
}

// sarifLevel maps a severity to a SARIF level; info becomes "note".
func sarifLevel(severity config.Severity) string {
	switch severity {
	case config.SeverityError:
		return "error"
	case config.SeverityInfo:
		return "note"
	default:
		return "warning"
	}
}
