package lint

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/speakeasy-api/jsxlint/cmd/jsxlint/commands/cmdutil"
	"github.com/speakeasy-api/jsxlint/cmd/jsxlint/internal/output"
	"github.com/speakeasy-api/jsxlint/cmd/jsxlint/internal/settings"
	"github.com/speakeasy-api/jsxlint/linter/fix"
	"github.com/speakeasy-api/jsxlint/system"
	"github.com/speakeasy-api/jsxlint/validation"
	"github.com/spf13/cobra"

	// Enable custom rules support
	_ "github.com/speakeasy-api/jsxlint/jsx/linter/customrules"
)

var lintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Lint JavaScript and JSX source files",
	Long: `Lint JavaScript and JSX source files for Inferno component mistakes and style.

Paths may be files or directories. Directories are searched for .js, .jsx, .mjs
and .cjs files, skipping node_modules and .git. Without paths the current
directory is linted.

Use '-' as the path to read a single source from stdin:
  cat App.jsx | jsxlint lint -

Note: --fix and --fix-interactive are not supported when reading from stdin.

CONFIGURATION:

The linter looks for .jsxlint.yaml in the working directory, then for
~/.jsxlint/lint.yaml. Use --config to specify a custom configuration file.

Available rulesets: all (default), recommended, stylistic

Example configuration (.jsxlint.yaml):

  extends: recommended

  settings:
    pragma: Inferno

  rules:
    - id: jsx-props-class-name
      options: [class]
    - id: destructuring-assignment
      severity: warning
      options: [always]

  ignores:
    - "**/*.test.jsx"

  custom_rules:
    paths:
      - ./rules/*.ts

PREFERENCES:

Output color, the default format, caching and concurrency can be set in
~/.jsxlint/settings.yaml or with JSXLINT_* environment variables, e.g.
JSXLINT_OUTPUT_FORMAT=json. Flags take precedence.

AUTOFIXING:

Use --fix to apply every available fix and write the files back. Use
--fix-interactive to confirm each fix. Use --dry-run with either flag to preview
what would be changed without modifying files.

CACHING:

With --cache, results of unchanged files are read from a SQLite database
(default .jsxlintcache). The cache is keyed by file contents, the effective
configuration and the jsxlint version, and is not used when fixing.`,
	Args:    cobra.ArbitraryArgs,
	PreRunE: validateLintFlags,
	Run:     runLint,
}

var (
	lintOutputFormat   string
	lintRuleset        string
	lintConfigFile     string
	lintDisableRules   []string
	lintSummary        bool
	lintFix            bool
	lintFixInteractive bool
	lintDryRun         bool
	lintCache          bool
	lintCacheLocation  string
	lintNoColor        bool
	lintMaxWarnings    int
	lintConcurrency    int
)

func init() {
	lintCmd.Flags().StringVarP(&lintOutputFormat, "format", "f", settings.Defaults.Output.Format, "Output format: text, json or eslint")
	lintCmd.Flags().StringVarP(&lintRuleset, "ruleset", "r", "", "Ruleset to use (default loads from config)")
	lintCmd.Flags().StringVarP(&lintConfigFile, "config", "c", "", "Path to lint config file (default: .jsxlint.yaml, then ~/.jsxlint/lint.yaml)")
	lintCmd.Flags().StringSliceVarP(&lintDisableRules, "disable", "d", nil, "Rule IDs to disable (can be repeated)")
	lintCmd.Flags().BoolVar(&lintSummary, "summary", false, "Print a per-rule summary table of findings")
	lintCmd.Flags().BoolVar(&lintFix, "fix", false, "Automatically apply fixes and write back")
	lintCmd.Flags().BoolVar(&lintFixInteractive, "fix-interactive", false, "Apply fixes after confirming each one")
	lintCmd.Flags().BoolVar(&lintDryRun, "dry-run", false, "Show what fixes would be applied without changing files (requires --fix or --fix-interactive)")
	lintCmd.Flags().BoolVar(&lintCache, "cache", settings.Defaults.Cache.Enabled, "Only lint files that changed since the last run")
	lintCmd.Flags().StringVar(&lintCacheLocation, "cache-location", settings.Defaults.Cache.Location, "Path to the cache file")
	lintCmd.Flags().BoolVar(&lintNoColor, "no-color", false, "Disable colored output")
	lintCmd.Flags().IntVar(&lintMaxWarnings, "max-warnings", -1, "Number of warnings to trigger a failing exit status (-1 for no limit)")
	lintCmd.Flags().IntVar(&lintConcurrency, "concurrency", settings.Defaults.Concurrency, "Number of files linted in parallel")
}

func validateLintFlags(_ *cobra.Command, args []string) error {
	if lintFix && lintFixInteractive {
		return fmt.Errorf("--fix and --fix-interactive are mutually exclusive")
	}
	if lintDryRun && !lintFix && !lintFixInteractive {
		return fmt.Errorf("--dry-run requires --fix or --fix-interactive")
	}
	for _, arg := range args {
		if cmdutil.IsStdin(arg) && len(args) > 1 {
			return fmt.Errorf("'-' cannot be combined with other paths")
		}
		if cmdutil.IsStdin(arg) && (lintFix || lintFixInteractive) {
			return fmt.Errorf("--fix and --fix-interactive are not supported when reading from stdin")
		}
	}
	if err := validateFormat(lintOutputFormat); err != nil {
		return err
	}
	return nil
}

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatESLint:
		return nil
	default:
		return fmt.Errorf("unsupported format %q: expected text, json or eslint", format)
	}
}

func runLint(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	start := time.Now()

	opts, color, err := resolveLintOptions(cmd)
	if err != nil {
		cmdutil.Die(err)
	}
	output.SetNoColor(!color)

	runner := &Runner{
		FS:      system.NewOSFileSystem(),
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Color:   color,
		Version: cmd.Root().Version,
	}
	if opts.FixMode == fix.ModeInteractive {
		runner.Prompter = &lazyPrompter{}
	}

	paths := cmdutil.PathsFromArgs(args, len(args) == 0 && cmdutil.StdinIsPiped())
	err = runner.Run(ctx, opts, paths)
	reportElapsed(os.Stderr, "Linting", time.Since(start))

	if err != nil {
		cmdutil.Die(err)
	}
}

// resolveLintOptions merges user settings with the flags given on the command line.
func resolveLintOptions(cmd *cobra.Command) (Options, bool, error) {
	prefs, err := settings.Load("")
	if err != nil {
		return Options{}, false, fmt.Errorf("failed to load settings: %w", err)
	}

	flags := cmd.Flags()
	opts := Options{
		Format:        prefs.Output.Format,
		Ruleset:       lintRuleset,
		ConfigFile:    lintConfigFile,
		DisabledRules: lintDisableRules,
		Summary:       lintSummary,
		DryRun:        lintDryRun,
		Cache:         prefs.Cache.Enabled,
		CacheLocation: prefs.Cache.Location,
		MaxWarnings:   lintMaxWarnings,
		Concurrency:   prefs.Concurrency,
	}
	if flags.Changed("format") {
		opts.Format = lintOutputFormat
	}
	if flags.Changed("cache") {
		opts.Cache = lintCache
	}
	if flags.Changed("cache-location") {
		opts.CacheLocation = lintCacheLocation
	}
	if flags.Changed("concurrency") {
		opts.Concurrency = lintConcurrency
	}
	if err := validateFormat(opts.Format); err != nil {
		return Options{}, false, err
	}

	switch {
	case lintFixInteractive:
		opts.FixMode = fix.ModeInteractive
	case lintFix:
		opts.FixMode = fix.ModeAuto
	}

	color := output.ShouldColor(os.Stdout, prefs.Output.Color && !lintNoColor)
	return opts, color, nil
}

func reportFixResults(w io.Writer, file string, result *FileResult, dryRun bool) {
	prefix := ""
	if dryRun {
		prefix = "[dry-run] "
	}

	if len(result.Applied) > 0 {
		fmt.Fprintf(w, "\n%s%s %s\n", prefix, output.StyleSuccess.Render("Fixed:"), file)
		for _, af := range result.Applied {
			fmt.Fprintf(w, "  [%d:%d] %s - %s\n",
				af.Error.GetLineNumber(), af.Error.GetColumnNumber(),
				af.Error.Rule, af.Fix.Description())
			if af.Before != "" || af.After != "" {
				fmt.Fprintf(w, "    %s -> %s\n", af.Before, af.After)
			}
		}
	}

	if len(result.Skipped) > 0 {
		fmt.Fprintf(w, "\n%s%s %s\n", prefix, output.StyleWarning.Render("Skipped:"), file)
		for _, sf := range result.Skipped {
			fmt.Fprintf(w, "  [%d:%d] %s - %s (%s)\n",
				sf.Error.GetLineNumber(), sf.Error.GetColumnNumber(),
				sf.Error.Rule, sf.Fix.Description(), sf.Reason)
		}
	}

	if len(result.Failed) > 0 {
		fmt.Fprintf(w, "\n%s%s %s\n", prefix, output.StyleError.Render("Failed:"), file)
		for _, ff := range result.Failed {
			fmt.Fprintf(w, "  [%d:%d] %s - %s: %v\n",
				ff.Error.GetLineNumber(), ff.Error.GetColumnNumber(),
				ff.Error.Rule, ff.Fix.Description(), ff.FixError)
		}
	}
}

// lazyPrompter defers TerminalPrompter creation until a fix actually needs
// confirming, so clean runs never touch the terminal.
type lazyPrompter struct {
	once     sync.Once
	prompter *fix.TerminalPrompter
}

func (l *lazyPrompter) init() {
	l.once.Do(func() {
		l.prompter = fix.NewTerminalPrompter(os.Stdin, os.Stderr)
	})
}

func (l *lazyPrompter) ConfirmFix(finding *validation.Error, f validation.Fix) (bool, error) {
	l.init()
	return l.prompter.ConfirmFix(finding, f)
}

// displayPath shortens absolute paths to be relative to the working directory.
func displayPath(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil || len(rel) >= 2 && rel[:2] == ".." {
		return path
	}
	return rel
}
