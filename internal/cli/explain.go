package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gotexml/internal/ui/pretty"
	"github.com/yaklabco/gotexml/pkg/config"
	"github.com/yaklabco/gotexml/pkg/layout"
	"github.com/yaklabco/gotexml/pkg/mathml"
	"github.com/yaklabco/gotexml/pkg/texmath"
)

type explainFlags struct {
	display   bool
	mathml    bool
	maxPasses int
	steps     bool
}

func newExplainCommand() *cobra.Command {
	flags := &explainFlags{}

	cmd := &cobra.Command{
		Use:   "explain <formula>",
		Short: "Show how the layout engine groups a formula",
		Long: `Parse a TeX formula and show every layout pass: the list analysed, the
flagged positions, and the ranges wrapped into synthetic rows. The
resulting list is printed as a tree.

Flag codes: l, m, r small delimiters; b big; B binary; R relation; d dummy.

Examples:
  gotexml explain '\int (x+y) dx'
  gotexml explain --mathml '\sum_{i=1}^n |a_i|'
  gotexml explain --steps '\int (a+b) = |c|'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain(cmd, strings.Join(args, " "), flags)
		},
	}

	cmd.Flags().BoolVar(&flags.display, "display", false, "encode in display style (with --mathml)")
	cmd.Flags().BoolVar(&flags.mathml, "mathml", false, "print the MathML of the result")
	cmd.Flags().BoolVar(&flags.steps, "steps", false, "list the decisions of the range finder under each pass")
	cmd.Flags().IntVar(&flags.maxPasses, "max-passes", config.DefaultMaxPasses, "upper bound on layout passes per list")

	return cmd
}

func runExplain(cmd *cobra.Command, src string, flags *explainFlags) (err error) {
	cliCfg := &config.Config{}
	if cmd.Flags().Changed("max-passes") {
		cliCfg.Layout.MaxPasses = flags.maxPasses
	}
	cfg, _, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}
	topts, err := translateOptions(cfg)
	if err != nil {
		return err
	}

	colorMode, flagErr := cmd.Flags().GetString("color")
	if flagErr != nil {
		colorMode = "auto"
	}
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout()))

	out := bufio.NewWriter(cmd.OutOrStdout())
	defer func() {
		if flushErr := out.Flush(); err == nil {
			err = flushErr
		}
	}()

	fmt.Fprintln(out, styles.Bold.Render("Formula: ")+src)
	fmt.Fprintln(out)

	list, err := texmath.Parse(src, topts.Parse)
	if err != nil {
		var perr *texmath.ParseError
		if errors.As(err, &perr) && perr.Pos.IsValid() {
			fmt.Fprint(out, styles.FormatSourceContext(src, perr.Pos.Column))
		}
		return fmt.Errorf("parse formula: %w", err)
	}

	// Decisions arrive before the pass that made them is reported.
	var steps []string
	lopts := topts.Layout
	lopts.Trace = func(pt layout.PassTrace) {
		fmt.Fprint(out, styles.FormatPass(pt))
		for _, step := range steps {
			fmt.Fprintln(out, "  "+styles.Dim.Render("step:  ")+step)
		}
		steps = steps[:0]
	}
	if flags.steps {
		lopts.Tracef = func(format string, args ...any) {
			steps = append(steps, fmt.Sprintf(format, args...))
		}
	}

	laidOut, res, err := layout.ApplyTree(list, lopts)
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}

	fmt.Fprintln(out)
	fmt.Fprint(out, styles.FormatTree("Result", laidOut))
	fmt.Fprintln(out)
	fmt.Fprintln(out, styles.Dim.Render(fmt.Sprintf("%d passes, %d groups inserted", res.Passes, res.Groups)))

	if flags.mathml {
		data, err := mathml.Marshal(laidOut, mathml.MathOptions{Display: flags.display || cfg.Output.Display})
		if err != nil {
			return fmt.Errorf("encode MathML: %w", err)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, string(data))
	}

	return nil
}
