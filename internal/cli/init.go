package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gradlint/internal/configloader"
	"github.com/yaklabco/gradlint/internal/logging"
	"github.com/yaklabco/gradlint/pkg/config"
	"github.com/yaklabco/gradlint/pkg/lint"
	"github.com/yaklabco/gradlint/pkg/lint/rules"
)

const initLongDescription = `Write a starter .gradlint.yml into the current directory.

Examples:
  gradlint init                      # minimal config
  gradlint init --full               # every rule with its defaults
  gradlint init --pack migration     # start from a rule pack
  gradlint init --format toml        # write .gradlint.toml
  gradlint init -o ci/gradlint.yml   # choose the path`

type initFlags struct {
	force  bool
	full   bool
	format string
	output string
	pack   string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a gradlint configuration file",
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := runInit(flags)
			if err != nil {
				return err
			}
			if !configloader.IsInteractive() {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
				return err
			}
			logger := logging.NewInteractive()
			logger.Info("created configuration file", logging.FieldPath, path)
			logger.Info("run 'gradlint rules' to see all available rules")
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&flags.force, "force", "f", false, "overwrite an existing file")
	f.BoolVar(&flags.full, "full", false, "document every rule with its defaults")
	f.StringVar(&flags.format, "format", string(config.FileFormatYAML), "file format: yaml or toml")
	f.StringVarP(&flags.output, "output", "o", "", "file to write (default .gradlint.yml or .gradlint.toml)")
	f.StringVar(&flags.pack, "pack", "", "start from a rule pack: "+strings.Join(rules.PackNames(), ", "))
	return cmd
}

// runInit writes the configuration file and returns the path as given.
func runInit(flags *initFlags) (string, error) {
	format := config.FileFormat(flags.format)
	if !format.IsValid() {
		return "", fmt.Errorf("invalid format %q: must be yaml or toml", flags.format)
	}
	path := flags.output
	if path == "" {
		path = ".gradlint" + format.Extension()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}

	var content []byte
	if flags.pack == "" {
		content, err = config.GenerateTemplate(config.TemplateOptions{
			Full:   flags.full,
			Format: format,
			Rules:  lint.DefaultRegistry.RuleInfos(),
		})
	} else {
		content, err = packContent(flags.pack, format)
	}
	if err != nil {
		return "", err
	}

	if err := configloader.WriteFile(abs, content, flags.force); err != nil {
		return "", err
	}
	return path, nil
}

// packContent renders a config holding only the settings of the named pack.
func packContent(name string, format config.FileFormat) ([]byte, error) {
	pack := rules.PackByName(name)
	if pack == nil {
		return nil, fmt.Errorf("unknown pack %q: must be one of %s", name, strings.Join(rules.PackNames(), ", "))
	}

	cfg := config.NewConfig()
	pack.Apply(cfg)

	header := fmt.Sprintf("%s\n# Rule pack: %s (%s)\n", config.DefaultTemplateHeader(), pack.Name, pack.Description)
	content, err := cfg.Encode(format, header)
	if err != nil {
		return nil, fmt.Errorf("encode pack %s: %w", name, err)
	}
	return content, nil
}
