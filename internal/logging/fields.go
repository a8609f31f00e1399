package logging

// Structured field keys. Every package logs through these so that a key
// means the same thing wherever it appears.
const (
	FieldError = "error"
	FieldPath  = "path"
	FieldPaths = "paths"
	FieldFiles = "files"

	// Run setup.
	FieldConfig     = "config"
	FieldWorkingDir = "working_dir"
	FieldJobs       = "jobs"
	FieldFix        = "fix"
	FieldDryRun     = "dry_run"

	// Scanning and rules.
	FieldDialect     = "dialect"
	FieldLines       = "lines"
	FieldRule        = "rule"
	FieldSeverity    = "severity"
	FieldFixable     = "fixable"
	FieldDescription = "description"

	// Fix passes and file operations. FieldTarget names a file created or
	// removed on behalf of the script under FieldPath.
	FieldPass      = "pass"
	FieldFixes     = "fixes"
	FieldConflicts = "conflicts"
	FieldKind      = "kind"
	FieldTarget    = "target"

	// Run totals.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesWithIssues = "files_with_issues"
	FieldFilesModified   = "files_modified"
	FieldViolationsTotal = "violations_total"

	// Build information.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
