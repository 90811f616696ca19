package cli

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/gotexml/internal/ui/pretty"
)

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ name (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if not .HasParent}}

{{ heading "Exit Codes:" }}{{range exitCodes}}
  {{ name (rpad .Code 4) }} {{ .Meaning }}{{end}}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ trimRight . }}

{{end}}` + usageTemplate

// flagLine splits a pflag usage line into indent, names with type, and
// description. The description starts after a run of two or more spaces.
var flagLine = regexp.MustCompile(`^(\s*)(\S.*?)\s{2,}(\S.*)$`)

type exitCodeHelp struct {
	Code    string
	Meaning string
}

func exitCodeTable() []exitCodeHelp {
	codes := []struct {
		code    int
		meaning string
	}{
		{ExitSuccess, "every formula was translated"},
		{ExitFormulaErrors, "some formulas or files were rejected"},
		{ExitInvalidUsage, "invalid command-line usage"},
		{ExitConfigError, "invalid configuration"},
		{ExitInternalError, "layout invariant violated"},
		{ExitIOError, "file could not be read or written"},
	}
	table := make([]exitCodeHelp, len(codes))
	for i, c := range codes {
		table[i] = exitCodeHelp{Code: strconv.Itoa(c.code), Meaning: c.meaning}
	}
	return table
}

// applyHelp installs styled help and usage output on root. Subcommands
// inherit it. Colors follow the --color flag at render time.
func applyHelp(root *cobra.Command) {
	root.SetUsageFunc(func(cmd *cobra.Command) error {
		return renderHelp(cmd, usageTemplate)
	})
	root.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		if err := renderHelp(cmd, helpTemplate); err != nil {
			cmd.PrintErrln(err)
		}
	})
}

func renderHelp(cmd *cobra.Command, text string) error {
	mode := "auto"
	if f := cmd.Flag("color"); f != nil {
		mode = f.Value.String()
	}
	styles := pretty.NewStyles(pretty.IsColorEnabled(mode, cmd.OutOrStdout()))

	tmpl, err := template.New("help").Funcs(helpFuncs(styles)).Parse(text)
	if err != nil {
		return fmt.Errorf("parse help template: %w", err)
	}
	return tmpl.Execute(cmd.OutOrStdout(), cmd)
}

func helpFuncs(styles *pretty.Styles) template.FuncMap {
	return template.FuncMap{
		"heading":   styles.HelpHeading.Render,
		"command":   styles.HelpCommand.Render,
		"name":      styles.HelpName.Render,
		"dim":       styles.Dim.Render,
		"exitCodes": exitCodeTable,
		"rpad": func(s string, width int) string {
			return fmt.Sprintf("%-*s", width, s)
		},
		"trimRight": func(s string) string {
			lines := strings.Split(s, "\n")
			for i, line := range lines {
				lines[i] = strings.TrimRight(line, " \t")
			}
			return strings.Join(lines, "\n")
		},
		"flags": func(fs *pflag.FlagSet) string {
			return styleFlags(styles, fs.FlagUsages())
		},
	}
}

// styleFlags colors the flag names of a pflag usage block and dims their
// value types.
func styleFlags(styles *pretty.Styles, usages string) string {
	lines := strings.Split(strings.TrimSuffix(usages, "\n"), "\n")
	for i, line := range lines {
		m := flagLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		names := strings.Fields(m[2])
		for k, tok := range names {
			if clean, comma := strings.CutSuffix(tok, ","); strings.HasPrefix(clean, "-") {
				names[k] = styles.HelpFlag.Render(clean)
				if comma {
					names[k] += ","
				}
			} else {
				names[k] = styles.Dim.Render(tok)
			}
		}
		lines[i] = m[1] + strings.Join(names, " ") + "   " + m[3]
	}
	return strings.Join(lines, "\n")
}
