package runner_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/gradlint/pkg/config"
	"github.com/yaklabco/gradlint/pkg/lint"
	"github.com/yaklabco/gradlint/pkg/lint/rules"
	"github.com/yaklabco/gradlint/pkg/runner"
)

const (
	legacyScript = "dependencies {\n    compile 'a:b:1'\n}\n"
	cleanScript  = "dependencies {\n    implementation 'a:b:1'\n}\n"
	dupScript    = "dependencies {\n    implementation 'a:b:1'\n    implementation 'a:b:1'\n}\n"
)

func newRunner() *runner.Runner {
	registry := lint.NewRegistry()
	registry.Register(rules.NewDeprecatedConfigurationRule())
	registry.Register(rules.NewDuplicateDependencyRule())
	return runner.New(lint.NewPipeline(lint.NewEngine(lint.NewScriptParser(), registry)))
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	pipeline := lint.NewPipeline(lint.NewEngine(lint.NewScriptParser(), lint.NewRegistry()))
	r := runner.New(pipeline)
	if r.Pipeline != pipeline {
		t.Error("expected pipeline to be set")
	}
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Config:     config.NewConfig(),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesDiscovered != 0 || len(result.Files) != 0 {
		t.Errorf("expected no files, got %+v", result.Stats)
	}
	if result.HasIssues() || result.HasFailures() || result.HasErrors() {
		t.Error("empty run should be clean")
	}
}

func TestRunner_Run_LintOnly(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"b/build.gradle": legacyScript,
		"a/build.gradle": cleanScript,
	})

	result, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Config:     config.NewConfig(),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	stats := result.Stats
	if stats.FilesDiscovered != 2 || stats.FilesProcessed != 2 {
		t.Errorf("expected 2 files discovered and processed, got %+v", stats)
	}
	if stats.ViolationsTotal != 1 || stats.ViolationsFixable != 1 || stats.FilesWithIssues != 1 {
		t.Errorf("expected one fixable violation in one file, got %+v", stats)
	}
	if stats.ViolationsBySeverity[config.SeverityWarning] != 1 {
		t.Errorf("expected one warning, got %v", stats.ViolationsBySeverity)
	}
	if result.HasFailures() {
		t.Error("warnings are not failures")
	}

	if len(result.Files) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(result.Files))
	}
	if filepath.Base(filepath.Dir(result.Files[0].Path)) != "a" {
		t.Errorf("outcomes should be ordered by path, first is %s", result.Files[0].Path)
	}

	content, err := os.ReadFile(filepath.Join(dir, "b", "build.gradle"))
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != legacyScript {
		t.Error("lint-only run must not modify files")
	}
}

func TestRunner_Run_Failures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"build.gradle": dupScript})

	result, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Config:     config.NewConfig(),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !result.HasFailures() {
		t.Errorf("duplicate dependencies are errors, got %v", result.Stats.ViolationsBySeverity)
	}
}

func TestRunner_Run_WithFixes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"build.gradle":     legacyScript,
		"app/build.gradle": dupScript,
		"lib/build.gradle": cleanScript,
	})

	cfg := config.NewConfig()
	cfg.Fix = true
	cfg.NoBackups = true

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesModified != 2 {
		t.Errorf("expected 2 modified files, got %d", result.Stats.FilesModified)
	}
	if result.Stats.FixesApplied != 2 {
		t.Errorf("expected 2 fixes applied, got %d", result.Stats.FixesApplied)
	}
	if result.HasIssues() {
		t.Errorf("expected no remaining violations, got %d", result.Stats.ViolationsTotal)
	}

	for _, name := range []string{"build.gradle", "app/build.gradle", "lib/build.gradle"} {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		if string(content) != cleanScript {
			t.Errorf("%s = %q, want %q", name, content, cleanScript)
		}
	}
}

func TestRunner_Run_DryRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"build.gradle": legacyScript})

	cfg := config.NewConfig()
	cfg.Fix = true
	cfg.DryRun = true

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(result.Files) != 1 || result.Files[0].Result == nil {
		t.Fatalf("expected one outcome, got %+v", result.Files)
	}
	if len(result.Files[0].Result.Diffs) == 0 {
		t.Error("dry run should render a diff")
	}
	if result.Stats.FilesModified != 0 {
		t.Error("dry run must not count modified files")
	}

	content, err := os.ReadFile(filepath.Join(dir, "build.gradle"))
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != legacyScript {
		t.Error("dry run must not modify files")
	}
}

func TestRunner_Run_SerialVsParallelConsistency(t *testing.T) {
	t.Parallel()

	files := make(map[string]string)
	for i := range 24 {
		content := cleanScript
		if i%3 == 0 {
			content = legacyScript
		}
		files[fmt.Sprintf("mod%02d/build.gradle", i)] = content
	}

	run := func(jobs int) *runner.Result {
		dir := t.TempDir()
		writeFiles(t, dir, files)
		result, err := newRunner().Run(context.Background(), runner.Options{
			WorkingDir: dir,
			Jobs:       jobs,
			Config:     config.NewConfig(),
		})
		if err != nil {
			t.Fatalf("Run(jobs=%d) error = %v", jobs, err)
		}
		return result
	}

	serial, parallel := run(1), run(8)

	if serial.Stats.ViolationsTotal != parallel.Stats.ViolationsTotal || serial.Stats.ViolationsTotal != 8 {
		t.Errorf("violations differ: serial %d, parallel %d", serial.Stats.ViolationsTotal, parallel.Stats.ViolationsTotal)
	}
	if len(serial.Files) != len(parallel.Files) {
		t.Fatalf("outcome counts differ: %d vs %d", len(serial.Files), len(parallel.Files))
	}
	for i := range serial.Files {
		s := filepath.Base(filepath.Dir(serial.Files[i].Path))
		p := filepath.Base(filepath.Dir(parallel.Files[i].Path))
		if s != p {
			t.Errorf("outcome %d: serial %s, parallel %s", i, s, p)
		}
	}
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"build.gradle": legacyScript})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner().Run(ctx, runner.Options{WorkingDir: dir, Config: config.NewConfig()})
	if err == nil {
		t.Fatal("expected cancellation error")
	}
}
