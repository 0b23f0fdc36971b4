package linter

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/speakeasy-api/jsxlint/jsx"
	"github.com/speakeasy-api/jsxlint/jsx/linter/rules"
	baseLinter "github.com/speakeasy-api/jsxlint/linter"
	"github.com/speakeasy-api/jsxlint/linter/fix"
	"github.com/speakeasy-api/jsxlint/validation"
)

// MaxFixPasses bounds how often FixSource re-lints a file after rewriting it.
const MaxFixPasses = 10

// CustomRuleLoaderFunc loads custom rules from configuration.
// It is called during NewLinter when custom rules are configured.
type CustomRuleLoaderFunc func(config *baseLinter.CustomRulesConfig) ([]baseLinter.RuleRunner[*jsx.Document], error)

var (
	customRuleLoaders   []CustomRuleLoaderFunc
	customRuleLoadersMu sync.Mutex
)

// RegisterCustomRuleLoader registers a custom rule loader.
// This is called by the customrules package's init() function.
// Loaders are invoked in registration order during NewLinter.
func RegisterCustomRuleLoader(loader CustomRuleLoaderFunc) {
	customRuleLoadersMu.Lock()
	defer customRuleLoadersMu.Unlock()
	customRuleLoaders = append(customRuleLoaders, loader)
}

// Linter lints JavaScript and JSX sources. It parses documents with the configured
// settings so rules see the same pragma and factory names the config declares.
type Linter struct {
	base     *baseLinter.Linter[*jsx.Document]
	settings jsx.Settings
	fixes    *fix.FixRegistry
}

// NewLinterOption is a functional option for configuring linter creation.
type NewLinterOption func(*newLinterOpts)

type newLinterOpts struct {
	skipDefaultRules bool
	fixRegistry      *fix.FixRegistry
}

// WithoutDefaultRules creates a linter with no rules registered.
// This is useful for advanced use cases where you want to register custom
// rules or selectively register only specific rules via the Registry() method.
//
// Example:
//
//	linter, _ := NewLinter(config, WithoutDefaultRules())
//	linter.Registry().Register(&rules.NoTyposRule{})
func WithoutDefaultRules() NewLinterOption {
	return func(o *newLinterOpts) {
		o.skipDefaultRules = true
	}
}

// WithFixRegistry makes FixSource consult registry for findings whose rule attaches
// no fix, such as custom rules that only report a message.
func WithFixRegistry(registry *fix.FixRegistry) NewLinterOption {
	return func(o *newLinterOpts) {
		o.fixRegistry = registry
	}
}

// NewLinter creates a new JSX linter.
// By default, all built-in rules are registered. Use WithoutDefaultRules()
// to create a linter with no rules registered.
//
// Returns an error if the shared settings are malformed or if custom rules are
// configured and fail to load.
func NewLinter(config *baseLinter.Config, opts ...NewLinterOption) (*Linter, error) {
	options := &newLinterOpts{}
	for _, opt := range opts {
		opt(options)
	}

	if config == nil {
		config = baseLinter.NewConfig()
	}

	settings, err := jsx.SettingsFromMap(config.Settings)
	if err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	registry := baseLinter.NewRegistry[*jsx.Document]()

	if !options.skipDefaultRules {
		registerDefaultRules(registry)
	}

	// Load custom rules if configured and loaders are registered
	if config.CustomRules != nil && len(config.CustomRules.Paths) > 0 {
		customRuleLoadersMu.Lock()
		loaders := make([]CustomRuleLoaderFunc, len(customRuleLoaders))
		copy(loaders, customRuleLoaders)
		customRuleLoadersMu.Unlock()

		for _, loader := range loaders {
			customRules, err := loader(config.CustomRules)
			if err != nil {
				return nil, fmt.Errorf("loading custom rules: %w", err)
			}
			for _, rule := range customRules {
				registry.Register(rule)
			}
		}
	}

	return &Linter{
		base:     baseLinter.NewLinter(config, registry),
		settings: settings,
		fixes:    options.fixRegistry,
	}, nil
}

// Registry returns the rule registry for documentation generation
func (l *Linter) Registry() *baseLinter.Registry[*jsx.Document] {
	return l.base.Registry()
}

// Config returns the configuration the linter was created with.
func (l *Linter) Config() *baseLinter.Config {
	return l.base.Config()
}

// Settings returns the shared settings documents are parsed with.
func (l *Linter) Settings() jsx.Settings {
	return l.settings
}

// ValidateConfig checks rule entries and options against the registered rules.
func (l *Linter) ValidateConfig() error {
	return l.base.ValidateConfig()
}

// IsIgnored reports whether location matches one of the configured ignores.
func (l *Linter) IsIgnored(location string) bool {
	return l.base.IsIgnored(location)
}

// FilterErrors applies rule-level overrides and match filters to arbitrary errors.
// This is useful when you collect additional validation errors after the main lint run.
func (l *Linter) FilterErrors(errs []error) []error {
	return l.base.FilterErrors(errs)
}

// Lint runs all configured rules against the document.
func (l *Linter) Lint(ctx context.Context, docInfo *baseLinter.DocumentInfo[*jsx.Document], preExistingErrors []error, opts *baseLinter.LintOptions) (*baseLinter.Output, error) {
	return l.base.Lint(ctx, docInfo, preExistingErrors, opts)
}

// Parse parses src with the linter's settings. Syntax errors are returned as findings
// alongside a document without a program.
func (l *Linter) Parse(location string, src []byte) (*jsx.Document, []error, error) {
	return jsx.Parse(src, jsx.WithLocation(location), jsx.WithSettings(l.settings))
}

// LintSource parses and lints a single source file.
func (l *Linter) LintSource(ctx context.Context, location string, src []byte, opts *baseLinter.LintOptions) (*baseLinter.Output, error) {
	doc, parseErrs, err := l.Parse(location, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", location, err)
	}
	return l.Lint(ctx, baseLinter.NewDocumentInfo(doc, location), parseErrs, opts)
}

// FixResult is the outcome of FixSource.
type FixResult struct {
	// Source is the rewritten source, or the input when nothing was applied.
	Source []byte
	// Output is the lint output of the final source.
	Output *baseLinter.Output
	// Passes counts the lint runs that produced fixes.
	Passes int

	Applied []fix.AppliedFix
	Skipped []fix.SkippedFix
	Failed  []fix.FailedFix
}

// Changed reports whether Source differs from the input.
func (r *FixResult) Changed() bool {
	return len(r.Applied) > 0
}

// FixSource lints src and applies the fixes of its findings, then lints the rewritten
// source again until a pass applies nothing or MaxFixPasses is reached. Dry-run mode
// stops after the first pass.
func (l *Linter) FixSource(ctx context.Context, location string, src []byte, fixOpts fix.Options, prompter fix.Prompter, lintOpts *baseLinter.LintOptions) (*FixResult, error) {
	engine := fix.NewEngine(fixOpts, prompter, l.fixes)
	result := &FixResult{Source: src}

	for {
		output, err := l.LintSource(ctx, location, result.Source, lintOpts)
		if err != nil {
			return nil, err
		}
		result.Output = output

		if result.Passes >= MaxFixPasses || !l.hasFixes(output) {
			return result, nil
		}

		fixed, err := engine.ProcessErrors(ctx, result.Source, output.Results)
		if err != nil {
			return nil, fmt.Errorf("failed to fix %s: %w", location, err)
		}
		result.Passes++
		result.Applied = append(result.Applied, fixed.Applied...)
		result.Failed = append(result.Failed, fixed.Failed...)

		if fixOpts.DryRun || !fixed.Changed() {
			result.Skipped = append(result.Skipped, fixed.Skipped...)
			return result, nil
		}
		// Conflicting fixes are retried on the next pass, so only the last pass's
		// skips are final.
		result.Skipped = fixed.Skipped
		result.Source = fixed.Source
	}
}

func (l *Linter) hasFixes(output *baseLinter.Output) bool {
	if len(output.Fixable()) > 0 {
		return true
	}
	if l.fixes == nil {
		return false
	}
	for _, err := range output.Results {
		var vErr *validation.Error
		if errors.As(err, &vErr) && l.fixes.GetFix(vErr) != nil {
			return true
		}
	}
	return false
}

func registerDefaultRules(registry *baseLinter.Registry[*jsx.Document]) {
	registry.Register(&rules.JSXPropsClassNameRule{})
	registry.Register(&rules.NoDidMountSetStateRule{})
	registry.Register(&rules.NoDidUpdateSetStateRule{})
	registry.Register(&rules.NoDirectMutationStateRule{})
	registry.Register(&rules.NoTyposRule{})
	registry.Register(&rules.DestructuringAssignmentRule{})
	registry.Register(&rules.VoidDOMElementsNoChildrenRule{})

	// Register rulesets
	registerRulesets(registry)
}

// registerRulesets registers the built-in rulesets.
func registerRulesets(registry *baseLinter.Registry[*jsx.Document]) {
	// "recommended" - rules that catch real bugs, without stylistic preferences
	_ = registry.RegisterRuleset("recommended", []string{
		rules.RuleNoDidMountSetState,
		rules.RuleNoDidUpdateSetState,
		rules.RuleNoDirectMutationState,
		rules.RuleNoTypos,
		rules.RuleVoidDOMElementsNoChildren,
	})

	// "stylistic" - conventions teams opt into
	_ = registry.RegisterRuleset("stylistic", []string{
		rules.RuleJSXPropsClassName,
		rules.RuleDestructuringAssignment,
	})
}
