package configloader

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/samber/lo"
)

// ConfigPaths are the configuration files found for a run. Empty fields
// mean no file was found or given.
type ConfigPaths struct {
	System   string
	User     string
	Project  string
	Explicit string
}

//nolint:gochecknoglobals // read-only tables
var (
	// projectConfigFiles are looked up in each directory of the upward
	// search, in this order.
	projectConfigFiles = []string{".gradlint.yml", ".gradlint.yaml", ".gradlint.toml"}

	// userConfigFiles are looked up in the user and system config
	// directories.
	userConfigFiles = []string{"config.yml", "config.yaml", "config.toml"}

	// rootMarkers end the upward search in the directory holding them: a
	// version control root, or the root project of a Gradle build.
	rootMarkers = []string{".git", ".hg", ".svn", "settings.gradle", "settings.gradle.kts"}
)

// DiscoverPaths locates the system, user and project configuration files
// for a run started in workDir.
//
//   - system: /etc/gradlint/config.{yml,yaml,toml} (%ProgramData%\gradlint on Windows)
//   - user: $XDG_CONFIG_HOME/gradlint/config.{yml,yaml,toml}
//   - project: .gradlint.{yml,yaml,toml}, see FindProjectConfig
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}
	return &ConfigPaths{
		System:  firstFileIn(systemConfigDir(), userConfigFiles),
		User:    firstFileIn(userConfigDir(), userConfigFiles),
		Project: project,
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(cmp.Or(os.Getenv("ProgramData"), `C:\ProgramData`), "gradlint")
	}
	return "/etc/gradlint"
}

func userConfigDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "gradlint")
}

// firstFileIn returns the first of names that is a regular file in dir.
func firstFileIn(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	path, _ := lo.Find(lo.Map(names, func(name string, _ int) string {
		return filepath.Join(dir, name)
	}), fileExists)
	return path
}

// FindProjectConfig walks from startDir towards the file system root and
// returns the first project configuration file it meets. The walk ends
// after a directory holding a root marker, at the home directory, or at
// the file system root; "" means nothing was found.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	dir, err := filepath.Abs(cmp.Or(startDir, "."))
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", startDir, err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("find project config: %w", err)
		}
		if path := firstFileIn(dir, projectConfigFiles); path != "" {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if isSearchRoot(dir) || dir == home || parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func isSearchRoot(dir string) bool {
	return lo.SomeBy(rootMarkers, func(marker string) bool {
		_, err := os.Stat(filepath.Join(dir, marker))
		return err == nil
	})
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
