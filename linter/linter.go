package linter

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"

	jsxerrors "github.com/speakeasy-api/jsxlint/errors"
	"github.com/speakeasy-api/jsxlint/linter/format"
	"github.com/speakeasy-api/jsxlint/pointer"
	"github.com/speakeasy-api/jsxlint/system"
	"github.com/speakeasy-api/jsxlint/validation"
	"golang.org/x/sync/errgroup"
)

// Linter is the main linting engine
type Linter[T any] struct {
	config   *Config
	registry *Registry[T]

	optionsOnce sync.Once
	optionsErr  error
	validator   *OptionsValidator
}

// NewLinter creates a new linter with the given configuration
func NewLinter[T any](config *Config, registry *Registry[T]) *Linter[T] {
	if config == nil {
		config = NewConfig()
	}
	return &Linter[T]{
		config:    config,
		registry:  registry,
		validator: NewOptionsValidator(nil),
	}
}

// Registry returns the rule registry for documentation generation
func (l *Linter[T]) Registry() *Registry[T] {
	return l.registry
}

// Config returns the configuration the linter was created with
func (l *Linter[T]) Config() *Config {
	return l.config
}

// ValidateConfig checks that every configured rule exists and that rule options match
// the rule's schema. The result is computed once per linter.
func (l *Linter[T]) ValidateConfig() error {
	l.optionsOnce.Do(func() {
		var errs []error
		for _, entry := range l.config.Rules {
			rule, ok := l.registry.GetRule(entry.ID)
			if !ok {
				errs = append(errs, fmt.Errorf("unknown rule %q", entry.ID))
				continue
			}
			if len(entry.Options) == 0 {
				continue
			}
			configurable, ok := any(rule).(ConfigurableRule)
			if !ok {
				errs = append(errs, fmt.Errorf("rule %q does not accept options", entry.ID))
				continue
			}
			errs = append(errs, l.validator.Validate(configurable, entry.Options)...)
		}
		for _, name := range l.config.Extends {
			if _, ok := l.registry.GetRuleset(name); !ok {
				errs = append(errs, fmt.Errorf("unknown ruleset %q", name))
			}
		}
		if len(errs) > 0 {
			l.optionsErr = jsxerrors.WithCode(jsxerrors.CodeInvalidConfig, ErrInvalidConfig.Wrap(errors.Join(errs...)))
		}
	})
	return l.optionsErr
}

// IsIgnored reports whether a document location matches one of the configured ignores.
func (l *Linter[T]) IsIgnored(location string) bool {
	if location == "" {
		return false
	}
	return system.MatchAny(l.config.Ignores, location)
}

// Lint runs all configured rules against the document
func (l *Linter[T]) Lint(ctx context.Context, docInfo *DocumentInfo[T], preExistingErrors []error, opts *LintOptions) (*Output, error) {
	if err := l.ValidateConfig(); err != nil {
		return nil, err
	}
	if l.IsIgnored(docInfo.Location) {
		return l.formatOutput(nil), nil
	}

	var allErrs []error

	if len(preExistingErrors) > 0 {
		allErrs = append(allErrs, preExistingErrors...)
	}

	// Run lint rules - these also return validation.Error instances
	lintErrs, err := l.runRules(ctx, docInfo, opts)
	if err != nil {
		return nil, err
	}
	allErrs = append(allErrs, lintErrs...)

	// Apply severity overrides and match filters from config
	allErrs = l.FilterErrors(allErrs)

	for _, e := range allErrs {
		var vErr *validation.Error
		if errors.As(e, &vErr) && vErr.DocumentLocation == "" {
			vErr.DocumentLocation = docInfo.Location
		}
	}

	// Sort errors by location
	validation.SortValidationErrors(allErrs)

	return l.formatOutput(allErrs), nil
}

func (l *Linter[T]) runRules(ctx context.Context, docInfo *DocumentInfo[T], opts *LintOptions) ([]error, error) {
	enabledRules := l.EnabledRules(opts)

	g, gctx := errgroup.WithContext(ctx)
	if opts != nil && opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}

	results := make([][]error, len(enabledRules))
	for i, rule := range enabledRules {
		ruleConfig := l.GetRuleConfig(rule.ID())

		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					results[i] = []error{validation.NewValidationError(
						validation.SeverityError,
						validation.RuleInternal,
						fmt.Errorf("rule %q panicked: %v", rule.ID(), r),
						nil,
					)}
				}
			}()

			results[i] = rule.Run(gctx, docInfo, &ruleConfig)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var errs []error
	for _, r := range results {
		errs = append(errs, r...)
	}
	return errs, nil
}

// EnabledRules resolves which rules run: rulesets first, then categories, then
// individual rule entries, then the runtime disable list.
func (l *Linter[T]) EnabledRules(opts *LintOptions) []RuleRunner[T] {
	// Map to track enabled status: ruleID -> enabled
	ruleStatus := make(map[string]bool)

	// Apply rulesets
	for _, ruleset := range l.config.Extends {
		if ids, ok := l.registry.GetRuleset(ruleset); ok {
			for _, id := range ids {
				ruleStatus[id] = true
			}
		}
	}

	// Category config overrides ruleset config but is overridden by individual rule config
	for _, rule := range l.registry.AllRules() {
		if catConfig, ok := l.config.Categories[rule.Category()]; ok {
			if catConfig.Enabled != nil {
				ruleStatus[rule.ID()] = *catConfig.Enabled
			}
		}
	}

	for _, entry := range l.config.Rules {
		if entry.Match != nil {
			continue
		}
		if entry.Disabled != nil {
			ruleStatus[entry.ID] = !*entry.Disabled
		} else {
			// Configuring a rule outside the extended rulesets turns it on
			ruleStatus[entry.ID] = true
		}
	}

	if opts != nil {
		for _, id := range opts.DisabledRules {
			ruleStatus[id] = false
		}
	}

	var enabled []RuleRunner[T]
	for id, enabledFlag := range ruleStatus {
		if enabledFlag {
			if rule, ok := l.registry.GetRule(id); ok {
				enabled = append(enabled, rule)
			}
		}
	}

	// Sort for deterministic order
	sort.Slice(enabled, func(i, j int) bool {
		return enabled[i].ID() < enabled[j].ID()
	})

	return enabled
}

// GetRuleConfig returns the effective configuration of a rule: category severity, then
// the rule entry's severity and options, falling back to the rule's default options.
func (l *Linter[T]) GetRuleConfig(ruleID string) RuleConfig {
	config := RuleConfig{Settings: l.config.Settings}

	rule, known := l.registry.GetRule(ruleID)
	if known {
		if catConfig, ok := l.config.Categories[rule.Category()]; ok {
			if catConfig.Severity != nil {
				config.Severity = catConfig.Severity
			}
		}
	}

	for _, entry := range l.config.Rules {
		if entry.ID != ruleID || entry.Match != nil {
			continue
		}
		if entry.Severity != nil {
			config.Severity = entry.Severity
		}
		if entry.Options != nil {
			config.Options = entry.Options
		}
	}

	if config.Options == nil && known {
		if configurable, ok := any(rule).(ConfigurableRule); ok {
			config.Options = slices.Clone(configurable.ConfigDefaults())
		}
	}

	return config
}

// FilterErrors applies rule-level severity overrides and match filters to findings.
// This is useful when additional findings are collected after the main lint run.
func (l *Linter[T]) FilterErrors(errs []error) []error {
	filtered := errs[:0:0]
	for _, err := range errs {
		var vErr *validation.Error
		if !errors.As(err, &vErr) {
			filtered = append(filtered, err)
			continue
		}

		config := l.GetRuleConfig(vErr.Rule)
		if config.Severity != nil {
			vErr.Severity = *config.Severity
		}

		suppressed := false
		for _, entry := range l.config.Rules {
			if entry.ID != vErr.Rule || entry.Match == nil || !entry.Match.MatchString(vErr.Message()) {
				continue
			}
			if pointer.ValueOrZero(entry.Disabled) {
				suppressed = true
				break
			}
			if entry.Severity != nil {
				vErr.Severity = *entry.Severity
			}
		}
		if !suppressed {
			filtered = append(filtered, err)
		}
	}
	return filtered
}

func (l *Linter[T]) formatOutput(errs []error) *Output {
	return &Output{
		Results:  errs,
		Format:   l.config.OutputFormat,
		category: l.categoryOf,
	}
}

func (l *Linter[T]) categoryOf(ruleID string) string {
	if rule, ok := l.registry.GetRule(ruleID); ok {
		return rule.Category()
	}
	return ""
}

// Output represents the result of linting
type Output struct {
	Results []error
	Format  OutputFormat

	category func(string) string
}

func (o *Output) HasErrors() bool {
	return o.ErrorCount() > 0
}

func (o *Output) ErrorCount() int {
	count := 0
	for _, err := range o.Results {
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			if vErr.Severity == validation.SeverityError {
				count++
			}
		} else {
			// Non-validation errors are treated as errors
			count++
		}
	}
	return count
}

func (o *Output) WarningCount() int {
	count := 0
	for _, err := range o.Results {
		var vErr *validation.Error
		if errors.As(err, &vErr) && vErr.Severity == validation.SeverityWarning {
			count++
		}
	}
	return count
}

// Fixable returns the findings that carry a fix.
func (o *Output) Fixable() []*validation.Error {
	var fixable []*validation.Error
	for _, err := range o.Results {
		var vErr *validation.Error
		if errors.As(err, &vErr) && vErr.Fix != nil {
			fixable = append(fixable, vErr)
		}
	}
	return fixable
}

// FormatterOptions returns the options formatters need to render this output.
func (o *Output) FormatterOptions() []format.Option {
	if o.category == nil {
		return nil
	}
	return []format.Option{format.WithCategoryLookup(o.category)}
}

func (o *Output) FormatText(opts ...format.Option) string {
	f := format.NewTextFormatter(append(o.FormatterOptions(), opts...)...)
	s, _ := f.Format(o.Results)
	return s
}

func (o *Output) FormatJSON(opts ...format.Option) string {
	f := format.NewJSONFormatter(append(o.FormatterOptions(), opts...)...)
	s, _ := f.Format(o.Results)
	return s
}

func (o *Output) FormatSummary(opts ...format.Option) string {
	f := format.NewSummaryFormatter(append(o.FormatterOptions(), opts...)...)
	s, _ := f.Format(o.Results)
	return s
}
