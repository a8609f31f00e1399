package rules

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/yaklabco/gradlint/pkg/fix"
	"github.com/yaklabco/gradlint/pkg/lint"
)

// RepositoriesBeforeDependenciesRule flags a top-level dependencies block
// with no repositories block declared before it.
type RepositoriesBeforeDependenciesRule struct {
	lint.BaseRule
}

// NewRepositoriesBeforeDependenciesRule creates a new repositories rule.
func NewRepositoriesBeforeDependenciesRule() *RepositoriesBeforeDependenciesRule {
	return &RepositoriesBeforeDependenciesRule{
		BaseRule: lint.NewBaseRule(
			"GL005",
			"repositories-before-dependencies",
			"A repositories block should be declared before the dependencies block",
			[]string{"layout"},
			true,
		),
	}
}

// Apply inserts a repositories block when none exists. A repositories block
// declared after dependencies is reported without a fix.
//
// Options:
//   - repository: the repository declaration to insert (default "mavenCentral()")
func (r *RepositoriesBeforeDependenciesRule) Apply(ctx *lint.RuleContext) ([]lint.Violation, error) {
	deps, ok := topBlock(ctx, "dependencies")
	if !ok {
		return nil, nil
	}
	line, _ := ctx.Doc.Line(deps.StartLine)

	if repos, ok := topBlock(ctx, "repositories"); ok {
		if repos.StartLine < deps.StartLine {
			return nil, nil
		}
		v := lint.NewViolation(r.ID(), ctx.Doc, line,
			fmt.Sprintf("repositories block on line %d follows the dependencies block", repos.StartLine)).
			WithSuggestion("Move the repositories block above dependencies").
			Build()
		return []lint.Violation{v}, nil
	}

	repository := ctx.OptionString("repository", "mavenCentral()")
	block := "repositories {\n    " + repository + "\n}\n\n"

	v := lint.NewViolation(r.ID(), ctx.Doc, line, "dependencies declared without a repositories block").
		WithSuggestion("Add a repositories block using " + repository).
		WithFix(fix.InsertBefore(ctx.File, deps.StartLine, block)).
		Build()
	return []lint.Violation{v}, nil
}

// EmptyBuildFileRule flags build scripts that contain no code at all.
type EmptyBuildFileRule struct {
	lint.BaseRule
}

// NewEmptyBuildFileRule creates a new empty build file rule.
func NewEmptyBuildFileRule() *EmptyBuildFileRule {
	return &EmptyBuildFileRule{
		BaseRule: lint.NewBaseRule(
			"GL007",
			"empty-build-file",
			"Build scripts without code should be removed",
			[]string{"layout"},
			true,
		),
	}
}

// Apply offers to delete the file. Settings scripts are exempt: an empty
// settings file still marks the root of a build.
func (r *EmptyBuildFileRule) Apply(ctx *lint.RuleContext) ([]lint.Violation, error) {
	if isSettingsScript(ctx.Doc.Path) || !ctx.Doc.IsEmpty() {
		return nil, nil
	}

	pos := lint.Position{StartLine: 1, StartColumn: 1, EndLine: 1, EndColumn: 1}
	v := lint.NewViolationAt(r.ID(), ctx.Doc.Path, pos, "Build script is empty").
		WithSuggestion("Delete the file").
		WithFix(fix.DeleteFile(ctx.File)).
		Build()
	return []lint.Violation{v}, nil
}

// MissingSettingsFileRule flags a build script with no settings script in
// its directory or any parent directory.
type MissingSettingsFileRule struct {
	lint.BaseRule
}

// NewMissingSettingsFileRule creates a new missing settings file rule.
func NewMissingSettingsFileRule() *MissingSettingsFileRule {
	return &MissingSettingsFileRule{
		BaseRule: lint.NewBaseRule(
			"GL008",
			"missing-settings-file",
			"A build should have a settings script naming the root project",
			[]string{"layout"},
			true,
		),
	}
}

// Apply creates a settings script next to the build script, naming the root
// project after its directory. The search upward stops at a VCS root.
func (r *MissingSettingsFileRule) Apply(ctx *lint.RuleContext) ([]lint.Violation, error) {
	base := filepath.Base(ctx.Doc.Path)
	if base != "build.gradle" && base != "build.gradle.kts" {
		return nil, nil
	}

	dir := filepath.Dir(ctx.Doc.Path)
	found, err := findSettings(dir)
	if err != nil {
		return nil, err
	}
	if found {
		return nil, nil
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}

	dialect := dialectOf(ctx.Doc)
	target := filepath.Join(dir, dialect.SettingsFileName())
	content := "rootProject.name = " + dialect.Quote(filepath.Base(abs)) + "\n"

	pos := lint.Position{StartLine: 1, StartColumn: 1, EndLine: 1, EndColumn: 1}
	v := lint.NewViolationAt(r.ID(), ctx.Doc.Path, pos, "No settings script found for this build").
		WithSuggestion("Create "+target).
		WithFix(fix.CreateFile(fix.NewSourceFile(target), content, fix.FileTypeRegular), nil).
		Build()
	return []lint.Violation{v}, nil
}

// vcsMarkers end the upward search for a settings script.
var vcsMarkers = []string{".git", ".hg", ".svn"}

func findSettings(dir string) (bool, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return false, fmt.Errorf("resolve %s: %w", dir, err)
	}

	for {
		for _, name := range []string{"settings.gradle", "settings.gradle.kts"} {
			ok, err := exists(filepath.Join(abs, name))
			if err != nil || ok {
				return ok, err
			}
		}
		for _, marker := range vcsMarkers {
			if ok, _ := exists(filepath.Join(abs, marker)); ok {
				return false, nil
			}
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return false, nil
		}
		abs = parent
	}
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
}

func isSettingsScript(path string) bool {
	base := filepath.Base(path)
	return base == "settings.gradle" || base == "settings.gradle.kts"
}
