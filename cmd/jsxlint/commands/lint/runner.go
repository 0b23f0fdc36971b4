package lint

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/speakeasy-api/jsxlint/cache"
	"github.com/speakeasy-api/jsxlint/cmd/jsxlint/commands/cmdutil"
	jsxerrors "github.com/speakeasy-api/jsxlint/errors"
	"github.com/speakeasy-api/jsxlint/hashing"
	jsxLinter "github.com/speakeasy-api/jsxlint/jsx/linter"
	"github.com/speakeasy-api/jsxlint/linter"
	"github.com/speakeasy-api/jsxlint/linter/fix"
	"github.com/speakeasy-api/jsxlint/linter/format"
	"github.com/speakeasy-api/jsxlint/pointer"
	"github.com/speakeasy-api/jsxlint/system"
	"github.com/speakeasy-api/jsxlint/validation"
	"golang.org/x/sync/errgroup"
)

const (
	formatText   = "text"
	formatJSON   = "json"
	formatESLint = "eslint"
)

// DefaultConfigFile is looked up in the working directory when no config is given.
const DefaultConfigFile = ".jsxlint.yaml"

// stdinLocation is the document location reported for sources read from stdin.
const stdinLocation = "stdin"

// Options are the resolved settings of a lint run.
type Options struct {
	Format        string
	Ruleset       string
	ConfigFile    string
	DisabledRules []string
	Summary       bool
	FixMode       fix.Mode
	DryRun        bool
	Cache         bool
	CacheLocation string
	// MaxWarnings fails the run when exceeded. Negative means no limit.
	MaxWarnings int
	Concurrency int
}

// Runner lints files and reports the results.
type Runner struct {
	FS     *system.FileSystem
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Color  bool
	// Version is part of every cache key, so upgrading invalidates cached results.
	Version  string
	Prompter fix.Prompter
}

// FileResult is the outcome of linting one file.
type FileResult struct {
	Path    string
	Source  []byte
	Results []error
	Cached  bool

	Applied []fix.AppliedFix
	Skipped []fix.SkippedFix
	Failed  []fix.FailedFix
}

// Run lints paths and writes the formatted results to Stdout. It returns an error
// when a finding has error severity or there are more warnings than allowed.
func (r *Runner) Run(ctx context.Context, opts Options, paths []string) error {
	config, err := r.loadConfig(opts)
	if err != nil {
		return err
	}

	lint, err := jsxLinter.NewLinter(config)
	if err != nil {
		return jsxerrors.WithCode(jsxerrors.CodeInvalidConfig, fmt.Errorf("failed to create linter: %w", err))
	}
	if err := lint.ValidateConfig(); err != nil {
		return err
	}

	var files []*FileResult
	if len(paths) == 1 && cmdutil.IsStdin(paths[0]) {
		fmt.Fprintf(r.Stderr, "Linting source from stdin\n")
		result, err := r.lintStdin(ctx, lint)
		if err != nil {
			return err
		}
		files = []*FileResult{result}
	} else {
		files, err = r.lintFiles(ctx, lint, opts, paths)
		if err != nil {
			return err
		}
	}

	return r.report(lint, opts, files)
}

func (r *Runner) lintStdin(ctx context.Context, lint *jsxLinter.Linter) (*FileResult, error) {
	src, err := io.ReadAll(r.Stdin)
	if err != nil {
		return nil, jsxerrors.WithCode(jsxerrors.CodeInvalidInput, fmt.Errorf("failed to read stdin: %w", err))
	}
	out, err := lint.LintSource(ctx, stdinLocation, src, nil)
	if err != nil {
		return nil, fmt.Errorf("linting failed: %w", err)
	}
	return &FileResult{Path: stdinLocation, Source: src, Results: out.Results}, nil
}

func (r *Runner) lintFiles(ctx context.Context, lint *jsxLinter.Linter, opts Options, paths []string) ([]*FileResult, error) {
	found, err := r.FS.Discover(paths, lint.Config().Ignores)
	if err != nil {
		return nil, jsxerrors.WithCode(jsxerrors.CodeInvalidInput, err)
	}
	if len(found) == 0 {
		fmt.Fprintf(r.Stderr, "No files to lint\n")
		return nil, nil
	}
	fmt.Fprintf(r.Stderr, "Linting %d file(s)\n", len(found))

	var store *cache.Manager
	var configKey string
	if opts.Cache && opts.FixMode == fix.ModeNone {
		store, err = cache.Open(ctx, opts.CacheLocation)
		if err != nil {
			return nil, fmt.Errorf("failed to open cache: %w", err)
		}
		defer store.Close()
		configKey = hashing.Hash(lint.Config())
	}

	fixOpts := fix.Options{Mode: opts.FixMode, DryRun: opts.DryRun}

	g, gctx := errgroup.WithContext(ctx)
	switch {
	case opts.FixMode == fix.ModeInteractive:
		// Prompts for different files must not interleave.
		g.SetLimit(1)
	case opts.Concurrency > 0:
		g.SetLimit(opts.Concurrency)
	}

	files := make([]*FileResult, len(found))
	for i, path := range found {
		g.Go(func() error {
			result, err := r.lintFile(gctx, lint, store, configKey, fixOpts, path)
			if err != nil {
				return err
			}
			files[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if store != nil {
		if err := r.pruneCache(ctx, store); err != nil {
			fmt.Fprintf(r.Stderr, "Warning: %v\n", err)
		}
	}

	return files, nil
}

func (r *Runner) lintFile(ctx context.Context, lint *jsxLinter.Linter, store *cache.Manager, configKey string, fixOpts fix.Options, path string) (*FileResult, error) {
	src, err := r.FS.ReadFile(path)
	if err != nil {
		return nil, jsxerrors.WithCode(jsxerrors.CodeInvalidInput, err)
	}
	location := displayPath(path)
	result := &FileResult{Path: location, Source: src}

	if fixOpts.Mode != fix.ModeNone {
		fixed, err := lint.FixSource(ctx, location, src, fixOpts, r.Prompter, nil)
		if err != nil {
			return nil, err
		}
		result.Results = fixed.Output.Results
		result.Applied = fixed.Applied
		result.Skipped = fixed.Skipped
		result.Failed = fixed.Failed

		if fixed.Changed() && !fixOpts.DryRun {
			if err := r.writeBack(path, fixed.Source); err != nil {
				return nil, err
			}
			result.Source = fixed.Source
		}
		return result, nil
	}

	var key string
	if store != nil {
		key = hashing.ContentHash(src, []byte(configKey), []byte(r.Version))
		cached, ok, err := store.Get(ctx, path, key)
		if err != nil {
			return nil, err
		}
		if ok {
			for _, err := range cached {
				var vErr *validation.Error
				if errors.As(err, &vErr) {
					vErr.DocumentLocation = location
				}
			}
			result.Results = cached
			result.Cached = true
			return result, nil
		}
	}

	out, err := lint.LintSource(ctx, location, src, nil)
	if err != nil {
		return nil, fmt.Errorf("linting failed: %w", err)
	}
	result.Results = out.Results

	if store != nil {
		if err := store.Put(ctx, path, key, out.Results); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r *Runner) writeBack(path string, src []byte) error {
	perm := os.FileMode(0o644)
	if info, err := r.FS.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := r.FS.WriteFile(path, src, perm); err != nil {
		return fmt.Errorf("failed to write fixed file: %w", err)
	}
	return nil
}

// pruneCache drops the entries of files that no longer exist.
func (r *Runner) pruneCache(ctx context.Context, store *cache.Manager) error {
	paths, err := store.Paths(ctx)
	if err != nil {
		return err
	}
	keep := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, err := r.FS.Stat(p); err == nil {
			keep = append(keep, p)
		}
	}
	if len(keep) == len(paths) {
		return nil
	}
	_, err = store.Prune(ctx, keep)
	return err
}

func (r *Runner) report(lint *jsxLinter.Linter, opts Options, files []*FileResult) error {
	var all []error
	sources := make(map[string][]byte, len(files))
	cached := 0
	for _, f := range files {
		all = append(all, f.Results...)
		sources[f.Path] = f.Source
		if f.Cached {
			cached++
		}
		if opts.FixMode != fix.ModeNone {
			reportFixResults(r.Stderr, f.Path, f, opts.DryRun)
			if len(f.Applied) > 0 && !opts.DryRun {
				fmt.Fprintf(r.Stderr, "Applied %d fix(es) to %s\n", len(f.Applied), f.Path)
			}
		}
	}
	if cached > 0 {
		fmt.Fprintf(r.Stderr, "%d of %d file(s) unchanged since the last run\n", cached, len(files))
	}

	formatOpts := []format.Option{
		format.WithColor(r.Color),
		format.WithCategoryLookup(categoryLookup(lint)),
		format.WithSources(sources),
	}

	var formatter format.Formatter
	switch opts.Format {
	case formatJSON:
		formatter = format.NewJSONFormatter(formatOpts...)
	case formatESLint:
		formatter = format.NewESLintFormatter(formatOpts...)
	default:
		formatter = format.NewTextFormatter(formatOpts...)
	}

	rendered, err := formatter.Format(all)
	if err != nil {
		return fmt.Errorf("failed to format results: %w", err)
	}
	if rendered != "" {
		fmt.Fprint(r.Stdout, ensureNewline(rendered))
	}

	if opts.Summary {
		summary, err := format.NewSummaryFormatter(formatOpts...).Format(all)
		if err != nil {
			return fmt.Errorf("failed to format summary: %w", err)
		}
		fmt.Fprint(r.Stdout, ensureNewline(summary))
	}

	output := &linter.Output{Results: all}
	if output.HasErrors() {
		return fmt.Errorf("linting found %d errors", output.ErrorCount())
	}
	if opts.MaxWarnings >= 0 && output.WarningCount() > opts.MaxWarnings {
		return fmt.Errorf("linting found %d warnings, more than the maximum of %d", output.WarningCount(), opts.MaxWarnings)
	}

	return nil
}

// loadConfig reads the lint config: the file given with --config, else
// .jsxlint.yaml in the working directory, else ~/.jsxlint/lint.yaml. Without any
// of them every rule runs with its defaults.
func (r *Runner) loadConfig(opts Options) (*linter.Config, error) {
	config := linter.NewConfig()

	path := opts.ConfigFile
	if path == "" {
		path = r.defaultConfigPath()
	}
	if path != "" {
		data, err := r.FS.ReadFile(path)
		if err != nil {
			return nil, jsxerrors.WithCode(jsxerrors.CodeInvalidInput, fmt.Errorf("failed to read config file: %w", err))
		}
		loaded, err := linter.LoadConfig(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		config = loaded
		resolveCustomRulePaths(config, filepath.Dir(path))
	}

	if opts.Ruleset != "" {
		config.Extends = []string{opts.Ruleset}
	}

	// Disable specified rules
	for _, rule := range opts.DisabledRules {
		config.Rules = append(config.Rules, linter.RuleEntry{
			ID:       rule,
			Disabled: pointer.From(true),
		})
	}

	switch opts.Format {
	case formatJSON:
		config.OutputFormat = linter.OutputFormatJSON
	case formatESLint:
		config.OutputFormat = linter.OutputFormatESLint
	default:
		config.OutputFormat = linter.OutputFormatText
	}

	return config, nil
}

func (r *Runner) defaultConfigPath() string {
	if _, err := r.FS.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(home, ".jsxlint", "lint.yaml")
	if _, err := r.FS.Stat(path); err == nil {
		return path
	}
	return ""
}

// resolveCustomRulePaths makes relative custom rule patterns relative to the
// directory of the config file that declared them.
func resolveCustomRulePaths(config *linter.Config, dir string) {
	if config.CustomRules == nil || dir == "." {
		return
	}
	for i, p := range config.CustomRules.Paths {
		if !filepath.IsAbs(p) {
			config.CustomRules.Paths[i] = filepath.Join(dir, p)
		}
	}
}

func categoryLookup(lint *jsxLinter.Linter) func(string) string {
	return func(ruleID string) string {
		if rule, ok := lint.Registry().GetRule(ruleID); ok {
			return rule.Category()
		}
		return ""
	}
}

func ensureNewline(s string) string {
	if s == "" || s[len(s)-1] == '\n' {
		return s
	}
	return s + "\n"
}
