//go:build stave

package main

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const (
	binary     = "gradlint"
	binaryPath = "bin/" + binary
	mainPkg    = "./cmd/" + binary
	coverOut   = "coverage.out"
	coverHTML  = "coverage.html"
	rulesData  = "pkg/lint/rules/testdata"
)

var Default = Build

var Aliases = map[string]any{
	"b":   Build,
	"t":   Test.Default,
	"l":   Lint.Default,
	"c":   Check,
	"i":   Install,
	"fmt": Lint.Fmt,
	"fz":  Test.Fuzz,
	"dog": Dogfood,
}

type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// Build compiles bin/gradlint when any Go source or module file is newer
// than the binary.
func Build() error {
	stale, err := target.Dir(binaryPath, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !stale {
		fmt.Println(binaryPath, "is up to date")
		return nil
	}
	fmt.Println("Building", binary)
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binaryPath, mainPkg)
}

// Check formats, lints and tests, in that order.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

func Clean() error {
	for _, path := range []string{"bin", coverOut, coverHTML} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

func Install() error {
	return sh.RunV("go", "install", "-ldflags", ldflags(), mainPkg)
}

// Uninstall removes the binary Install placed in GOBIN or GOPATH/bin.
func Uninstall() error {
	path, err := installedBinary()
	if err != nil {
		return err
	}
	switch err := os.Remove(path); {
	case errors.Is(err, fs.ErrNotExist):
		fmt.Println(binary, "is not installed")
	case err != nil:
		return fmt.Errorf("remove %s: %w", path, err)
	default:
		fmt.Println("Removed", path)
	}
	return nil
}

func Deps() error {
	if err := sh.RunV("go", "mod", "download"); err != nil {
		return err
	}
	return sh.RunV("go", "mod", "tidy")
}

// Coverage renders the profile written by test:default as HTML.
func Coverage() error {
	st.Deps(Test.Default)
	if err := sh.RunV("go", "tool", "cover", "-html="+coverOut, "-o", coverHTML); err != nil {
		return err
	}
	return sh.RunV("open", coverHTML)
}

// Dogfood lints the rule fixtures with the built binary in dry-run mode.
// The fixtures violate rules on purpose, so a non-zero exit is printed
// rather than returned.
func Dogfood() {
	st.Deps(Build)
	if err := sh.RunV(binaryPath, "lint", "--dry-run", rulesData); err != nil {
		fmt.Println("gradlint exited with:", err)
	}
}

// Default runs the race-enabled suite through gotestsum and writes a
// coverage profile.
func (Test) Default() error {
	return gotestsum("pkgname-and-test-fails", "-race", "-coverprofile="+coverOut, "-covermode=atomic")
}

func (Test) Verbose() error {
	return gotestsum("standard-verbose", "-race", "-coverprofile="+coverOut, "-covermode=atomic")
}

// fuzzTargets are run one at a time; go test accepts a single -fuzz target
// per package invocation.
var fuzzTargets = []struct{ pkg, name string }{
	{"./pkg/fix", "FuzzApplyReplaceRange"},
	{"./pkg/fix", "FuzzGenerateDiff"},
	{"./pkg/fsutil", "FuzzWriteAtomicCountLines"},
	{"./pkg/fsutil", "FuzzReadFileCheckModified"},
}

// Fuzz runs every fuzz target for STAVE_FUZZTIME, 20s by default.
func (Test) Fuzz() error {
	budget := cmp.Or(os.Getenv("STAVE_FUZZTIME"), "20s")
	for _, ft := range fuzzTargets {
		fmt.Printf("%s %s (%s)\n", ft.pkg, ft.name, budget)
		err := sh.RunV("go", "test", "-run", "^$", "-fuzz", "^"+ft.name+"$", "-fuzztime", budget, ft.pkg)
		if err != nil {
			return fmt.Errorf("fuzz %s: %w", ft.name, err)
		}
	}
	return nil
}

func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI lints without rewriting files.
func (Lint) CI() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck fails when gofmt would change any file.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files (run 'stave lint:fmt'):\n%s", out)
	}
	return nil
}

func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Gate is the full pre-merge check.
func (CI) Gate() {
	st.SerialDeps(Lint.FmtCheck, Lint.Vet, Lint.CI, Build, Test.Default, CI.ModTidy, CI.Cross)
	fmt.Println("CI gate passed")
}

// ModTidy fails when go mod tidy changes go.mod or go.sum.
func (CI) ModTidy() error {
	modFiles := []string{"go.mod", "go.sum"}

	before := make(map[string][]byte, len(modFiles))
	for _, name := range modFiles {
		data, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		before[name] = data
	}

	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}

	for _, name := range modFiles {
		after, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if !bytes.Equal(before[name], after) {
			return fmt.Errorf("%s is not tidy; commit the result of 'go mod tidy'", name)
		}
	}
	return nil
}

// releasePlatforms are the GOOS/GOARCH pairs Cross builds.
var releasePlatforms = []string{
	"linux/amd64", "linux/arm64",
	"darwin/amd64", "darwin/arm64",
	"windows/amd64", "windows/arm64",
	"freebsd/amd64", "freebsd/arm64",
	"openbsd/amd64", "netbsd/amd64",
}

// Cross compiles the binary for every release platform with cgo disabled.
func (CI) Cross() error {
	for _, platform := range releasePlatforms {
		goos, goarch, _ := strings.Cut(platform, "/")
		env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, mainPkg); err != nil {
			return fmt.Errorf("build %s: %w", platform, err)
		}
	}
	return nil
}

// Default runs every benchmark once with allocation counts.
func (Bench) Default() error {
	return sh.RunV("go", "test", "-run", "^$", "-bench", ".", "-benchmem", "./...")
}

// gotestsum runs the whole suite through the gotestsum tool with the given
// output format. Parallelism follows STAVE_NUM_PROCESSORS, 4 by default.
func gotestsum(format string, testFlags ...string) error {
	procs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	args := []string{"tool", "gotestsum", "-f", format, "--", "-v", "-p", procs, "-parallel", procs}
	args = append(args, testFlags...)
	args = append(args, "./...")
	return sh.RunV("go", args...)
}

// gitOutput returns trimmed stdout of a git command, or "" on failure.
func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

func ldflags() string {
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s",
		cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev"),
		cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none"),
		time.Now().UTC().Format(time.RFC3339),
	)
}

func installedBinary() (string, error) {
	if gobin := os.Getenv("GOBIN"); gobin != "" {
		return filepath.Join(gobin, binary), nil
	}
	gopath := os.Getenv("GOPATH")
	if gopath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("home directory: %w", err)
		}
		gopath = filepath.Join(home, "go")
	}
	return filepath.Join(gopath, "bin", binary), nil
}
