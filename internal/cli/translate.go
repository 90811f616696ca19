package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gotexml/internal/logging"
	"github.com/yaklabco/gotexml/pkg/config"
	"github.com/yaklabco/gotexml/pkg/reporter"
	"github.com/yaklabco/gotexml/pkg/runner"
)

type translateFlags struct {
	format         string
	outDir         string
	ext            string
	kind           string
	ignore         []string
	jobs           int
	maxPasses      int
	maxDepth       int
	stdout         bool
	diff           bool
	display        bool
	altText        bool
	followSymlinks bool
	noContext      bool
	compact        bool
	filesFirst     bool
}

func newTranslateCommand() *cobra.Command {
	flags := &translateFlags{}

	cmd := &cobra.Command{
		Use:   "translate [paths...]",
		Short: "Translate TeX and Markdown sources to XML",
		Long:  translateLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd, args, flags)
		},
	}

	addTranslateFlags(cmd, flags)

	return cmd
}

const translateLongDescription = `Translate the formulas of TeX and Markdown sources into XML documents
with embedded MathML.

By default, translates all .tex, .ltx, .md and .markdown files in the
current directory and subdirectories, writing paper.xml next to paper.tex.
Files named explicitly are translated whatever their extension.

Examples:
  gotexml translate                     # Translate current directory
  gotexml translate paper.tex           # Translate a single file
  gotexml translate --out-dir build     # Write translations under build/
  gotexml translate --stdout notes.md   # Print the XML instead of writing it
  gotexml translate --diff              # Preview changes to existing output
  gotexml translate --format json       # Report as JSON for CI`

func runTranslate(cmd *cobra.Command, args []string, flags *translateFlags) error {
	logger := logging.Default()

	if _, err := reporter.ParseFormat(flags.format); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if flags.stdout && flags.outDir != "" {
		return fmt.Errorf("%w: --stdout and --out-dir are mutually exclusive", ErrUsage)
	}
	if flags.diff && (flags.stdout || cmd.Flags().Changed("format")) {
		return fmt.Errorf("%w: --diff cannot be combined with --stdout or --format", ErrUsage)
	}

	cfg, workDir, err := loadConfig(cmd, cliConfig(cmd, flags))
	if err != nil {
		return err
	}

	logger.Debug("configuration loaded",
		logging.FieldKind, cfg.Kind,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldMaxPasses, cfg.Layout.MaxPasses,
		logging.FieldOutDir, cfg.Output.Dir,
	)

	runOpts, err := runnerOptions(cfg, args, workDir)
	if err != nil {
		return err
	}
	runOpts.Trace = traceLogger(logger)
	runOpts.DryRun = flags.diff

	logger.Debug("starting translation",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	ctx := commandContext(cmd)
	start := time.Now()
	result, err := runner.New().Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("translation run failed: %w", err)
	}

	logger.Debug("translation finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
		logging.FieldFormulas, result.Stats.Formulas,
		logging.FieldFormulasFailed, result.Stats.FormulasFailed,
		logging.FieldGroups, result.Stats.Groups,
		logging.FieldDuration, time.Since(start),
	)

	// With --stdout the translations own standard output.
	reportWriter := cmd.OutOrStdout()
	if cfg.Stdout {
		if err := writeTranslations(cmd.OutOrStdout(), result); err != nil {
			return fmt.Errorf("write translations: %w", err)
		}
		reportWriter = cmd.ErrOrStderr()
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	repOpts := reporter.Options{
		Writer:      reportWriter,
		Format:      format,
		Color:       colorMode,
		ShowContext: !flags.noContext,
		ShowSummary: true,
		GroupByFile: true,
		Compact:     flags.compact,
		FilesFirst:  flags.filesFirst,
	}
	var rep reporter.Reporter
	if flags.diff {
		rep = reporter.NewDiffReporter(repOpts)
	} else if rep, err = reporter.New(repOpts); err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}
	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if code := ExitCodeFromResult(result); code != ExitSuccess {
		return &exitError{code: code}
	}
	return nil
}

// cliConfig collects the flags that were set explicitly, so that unset
// flags do not override configuration files or the environment.
func cliConfig(cmd *cobra.Command, flags *translateFlags) *config.Config {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if changed("out-dir") {
		cfg.Output.Dir = flags.outDir
	}
	if changed("ext") {
		cfg.Output.Extension = flags.ext
	}
	if changed("kind") {
		cfg.Kind = flags.kind
	}
	if changed("ignore") {
		cfg.Ignore = flags.ignore
	}
	if changed("jobs") {
		cfg.Jobs = flags.jobs
	}
	if changed("max-passes") {
		cfg.Layout.MaxPasses = flags.maxPasses
	}
	if changed("max-depth") {
		cfg.Layout.MaxDepth = flags.maxDepth
	}
	cfg.Stdout = flags.stdout
	cfg.Output.Display = flags.display
	cfg.Output.AltText = flags.altText
	cfg.FollowSymlinks = flags.followSymlinks
	return cfg
}

// writeTranslations prints the XML of every translated file in discovery
// order.
func writeTranslations(w io.Writer, result *runner.Result) error {
	for _, file := range result.Files {
		if len(file.XML) == 0 {
			continue
		}
		if _, err := w.Write(file.XML); err != nil {
			return err
		}
	}
	return nil
}

func addTranslateFlags(cmd *cobra.Command, flags *translateFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "report format: text, json, summary")
	cmd.Flags().StringVarP(&flags.outDir, "out-dir", "o", "", "write translations under this directory")
	cmd.Flags().StringVar(&flags.ext, "ext", config.DefaultExtension, "extension of translation files")
	cmd.Flags().StringVar(&flags.kind, "kind", "", "force the source kind: tex, markdown")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().IntVar(&flags.maxPasses, "max-passes", config.DefaultMaxPasses, "upper bound on layout passes per list")
	cmd.Flags().IntVar(&flags.maxDepth, "max-depth", config.DefaultMaxDepth, "upper bound on formula nesting")
	cmd.Flags().BoolVar(&flags.stdout, "stdout", false, "print translations instead of writing files")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "show how the output files would change without writing them")
	cmd.Flags().BoolVar(&flags.display, "display", false, "render every formula in display style")
	cmd.Flags().BoolVar(&flags.altText, "alttext", false, "add the TeX source of each formula as alttext")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "descend into symlinked directories")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide formula source in diagnostics")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().BoolVar(&flags.filesFirst, "files-first", false, "list files before causes in summary output")
}
