package cli

import (
	"io"
	"regexp"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gradlint/internal/ui/pretty"
)

// helpStyles colours the sections of command help.
type helpStyles struct {
	heading lipgloss.Style
	command lipgloss.Style
	flag    lipgloss.Style
	dim     lipgloss.Style
}

func newHelpStyles(colorEnabled bool) helpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return helpStyles{heading: plain, command: plain, flag: plain, dim: plain}
	}
	return helpStyles{
		heading: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		command: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		flag:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// flagNames matches the "-f, --flag" prefix of a pflag usage line and the
// value type that may follow it.
var flagNames = regexp.MustCompile(`^(\s*)((?:-\w, )?--[\w-]+)(?: (\w+))?`)

// styleFlags colours the names and types in a pflag usage block.
func (s helpStyles) styleFlags(usages string) string {
	lines := strings.Split(strings.TrimSuffix(usages, "\n"), "\n")
	for i, line := range lines {
		m := flagNames.FindStringSubmatchIndex(line)
		if m == nil {
			continue
		}
		styled := line[m[2]:m[3]] + s.flag.Render(line[m[4]:m[5]])
		if m[6] >= 0 {
			styled += " " + s.dim.Render(line[m[6]:m[7]])
		}
		lines[i] = styled + line[m[1]:]
	}
	return strings.Join(lines, "\n")
}

const usageTemplate = `{{heading "Usage:"}}
{{- if .Runnable}}
  {{command .UseLine}}{{end}}
{{- if .HasAvailableSubCommands}}
  {{command .CommandPath}} [command]{{end}}
{{- if .HasAvailableSubCommands}}

{{heading "Available Commands:"}}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{command (rpad .Name .NamePadding)}} {{.Short}}{{end}}{{end}}
{{- end}}
{{- if .HasAvailableLocalFlags}}

{{heading "Flags:"}}
{{flags .LocalFlags.FlagUsages}}
{{- end}}
{{- if .HasAvailableInheritedFlags}}

{{heading "Global Flags:"}}
{{flags .InheritedFlags.FlagUsages}}
{{- end}}
{{- if .HasAvailableSubCommands}}

Use "{{command (print .CommandPath " [command] --help")}}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{trimRight .}}

{{end}}` + usageTemplate

// applyHelp installs coloured help and usage output on cmd and, through
// inheritance, on all of its subcommands.
func applyHelp(cmd *cobra.Command, colorMode string, w io.Writer) {
	styles := newHelpStyles(pretty.IsColorEnabled(colorMode, w))

	funcs := template.FuncMap{
		"heading":   func(s string) string { return styles.heading.Render(s) },
		"command":   func(s string) string { return styles.command.Render(s) },
		"flags":     styles.styleFlags,
		"rpad":      rpad,
		"trimRight": func(s string) string { return strings.TrimRight(s, " \t\n") },
	}

	usage := template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(funcs).Parse(helpTemplate))

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		return usage.Execute(c.OutOrStdout(), c)
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := help.Execute(c.OutOrStdout(), c); err != nil {
			c.PrintErrln(err)
		}
	})
}

func rpad(s string, padding int) string {
	if len(s) >= padding {
		return s
	}
	return s + strings.Repeat(" ", padding-len(s))
}
