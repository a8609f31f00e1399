package analysis

import "time"

// Report is the aggregated view of a run that summary-style renderers
// consume. Analyze computes it once.
type Report struct {
	Violations []ViolationEntry `json:"violations,omitempty"`
	ByFile     []FileAnalysis   `json:"byFile,omitempty"`
	ByRule     []RuleAnalysis   `json:"byRule,omitempty"`

	// Errors lists build scripts the runner could not process.
	Errors []FileError `json:"errors,omitempty"`

	Totals    Totals    `json:"summary"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// SeverityCounts tallies violations by severity. It is embedded in the
// totals and in each group, and flattened into their JSON.
type SeverityCounts struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
}

func (c *SeverityCounts) add(severity string) {
	switch severity {
	case severityError:
		c.Errors++
	case severityWarning:
		c.Warnings++
	case severityInfo:
		c.Infos++
	}
}

// ViolationEntry is one violation with its path made relative.
type ViolationEntry struct {
	FilePath    string    `json:"filePath"`
	RuleID      string    `json:"ruleId"`
	RuleName    string    `json:"ruleName"`
	Severity    string    `json:"severity"`
	Message     string    `json:"message"`
	StartLine   int       `json:"startLine"`
	StartColumn int       `json:"startColumn"`
	EndLine     int       `json:"endLine"`
	EndColumn   int       `json:"endColumn"`
	Suggestion  string    `json:"suggestion,omitempty"`
	Fixable     bool      `json:"fixable"`
	Fix         *FixEntry `json:"fix,omitempty"`
	FixError    string    `json:"fixError,omitempty"`
}

// FixEntry describes a fix primitive. Line and column fields are 1-based;
// ToLine below FromLine marks an insertion before FromLine.
type FixEntry struct {
	Kind       string `json:"kind"`
	Path       string `json:"path"`
	FromLine   int    `json:"fromLine,omitempty"`
	FromColumn int    `json:"fromColumn,omitempty"`
	ToLine     int    `json:"toLine,omitempty"`
	ToColumn   int    `json:"toColumn,omitempty"`
	NewText    string `json:"newText,omitempty"`
}

// FileError records a file the runner failed on.
type FileError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Totals aggregates the whole run.
type Totals struct {
	Files           int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesErrored    int `json:"filesErrored"`
	FilesSkipped    int `json:"filesSkipped"`
	FilesModified   int `json:"filesModified"`
	FilesCreated    int `json:"filesCreated"`
	FilesDeleted    int `json:"filesDeleted"`
	Issues          int `json:"totalIssues"`
	SeverityCounts
	Fixable      int `json:"fixable"`
	FixesApplied int `json:"fixesApplied"`
	Conflicts    int `json:"conflicts"`
}

func (t Totals) HasIssues() bool { return t.Issues > 0 }
func (t Totals) HasErrors() bool { return t.Errors > 0 }

// FileAnalysis groups the violations of one build script.
type FileAnalysis struct {
	Path   string `json:"path"`
	Issues int    `json:"issues"`
	SeverityCounts
	Rules []string `json:"rules,omitempty"`
}

// RuleAnalysis groups the violations of one rule. FixKinds counts the fix
// primitives the rule proposed, keyed by kind name.
type RuleAnalysis struct {
	RuleID   string `json:"ruleId"`
	RuleName string `json:"ruleName"`
	Issues   int    `json:"issues"`
	SeverityCounts
	Fixable  bool           `json:"fixable"`
	FixKinds map[string]int `json:"fixKinds,omitempty"`
	Files    []string       `json:"files,omitempty"`
}
