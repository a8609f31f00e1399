package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gradlint/internal/logging"
	"github.com/yaklabco/gradlint/pkg/config"
	"github.com/yaklabco/gradlint/pkg/lint"
	"github.com/yaklabco/gradlint/pkg/lint/rules"
)

const rulesLongDescription = `Print every built-in rule with its ID, name, default severity and
whether it can fix what it reports. Rules marked "off by default" only run
when enabled in the config or with --enable.

With --packs, print the rule packs that "gradlint init --pack" starts from.`

// ruleInfo is one element of "gradlint rules --format json".
type ruleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Enabled     bool     `json:"enabled"`
	Fixable     bool     `json:"fixable"`
	Tags        []string `json:"tags,omitempty"`
}

func newRulesCommand() *cobra.Command {
	var (
		ruleFormat string
		format     string
		packs      bool
	)

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long:  rulesLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			switch {
			case packs:
				listPacks(out)
				return nil
			case format == "json":
				return outputRulesJSON(out, lint.DefaultRegistry.RuleInfos())
			case format != "text":
				return fmt.Errorf("unknown format %q; valid formats: text, json", format)
			}

			rf := config.RuleFormat(ruleFormat)
			if !rf.IsValid() {
				return fmt.Errorf("unknown rule format %q", ruleFormat)
			}
			listRules(out, rf, lint.DefaultRegistry.RuleInfos())
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&ruleFormat, "rule-format", string(config.RuleFormatCombined), "rule identifier format in output: name, id, or combined")
	f.StringVar(&format, "format", "text", "output format: text, json")
	f.BoolVar(&packs, "packs", false, "list rule packs instead of rules")
	return cmd
}

func listRules(w io.Writer, rf config.RuleFormat, infos []config.RuleInfo) {
	logger := logging.NewWithWriter(w, "info")
	for _, info := range infos {
		label := rf.Label(info.ID, info.Name)
		if !info.Enabled {
			label += " (off by default)"
		}
		logger.Info(label,
			logging.FieldSeverity, info.Severity,
			logging.FieldFixable, lo.Ternary(info.CanFix, "yes", "-"),
			logging.FieldDescription, info.Description,
		)
	}
}

func outputRulesJSON(w io.Writer, infos []config.RuleInfo) error {
	out := lo.Map(infos, func(info config.RuleInfo, _ int) ruleInfo {
		return ruleInfo{
			ID:          info.ID,
			Name:        info.Name,
			Description: info.Description,
			Severity:    string(info.Severity),
			Enabled:     info.Enabled,
			Fixable:     info.CanFix,
			Tags:        info.Tags,
		}
	})

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode rules: %w", err)
	}
	return nil
}

func listPacks(w io.Writer) {
	logger := logging.NewWithWriter(w, "info")
	for _, pack := range rules.Packs() {
		logger.Info(pack.Name,
			logging.FieldDescription, pack.Description,
			"rules", strings.Join(slices.Sorted(maps.Keys(pack.Rules)), ","),
		)
	}
}
