package linter

import (
	"fmt"
	"regexp"
	"time"

	"github.com/speakeasy-api/jsxlint/errors"
	"github.com/speakeasy-api/jsxlint/validation"
)

// ErrInvalidConfig is returned for configuration that cannot be parsed or names
// unknown rules, rulesets or options.
const ErrInvalidConfig errors.Error = "invalid lint config"

// Config represents the linter configuration
type Config struct {
	// Extends specifies rulesets to extend (e.g., "recommended", "all")
	Extends []string `yaml:"extends,omitempty" json:"extends,omitempty"`

	// Settings are shared by every rule (e.g., the framework pragma)
	Settings map[string]any `yaml:"settings,omitempty" json:"settings,omitempty"`

	// Rules contains per-rule configuration
	Rules []RuleEntry `yaml:"rules,omitempty" json:"rules,omitempty"`

	// Categories contains per-category configuration
	Categories map[string]CategoryConfig `yaml:"categories,omitempty" json:"categories,omitempty"`

	// Ignores contains glob patterns of document locations that are not linted
	Ignores []string `yaml:"ignores,omitempty" json:"ignores,omitempty"`

	// CustomRules configures rules written in JavaScript or TypeScript
	CustomRules *CustomRulesConfig `yaml:"custom_rules,omitempty" json:"custom_rules,omitempty"`

	// OutputFormat specifies the output format
	OutputFormat OutputFormat `yaml:"output_format,omitempty" json:"output_format,omitempty"`
}

// RuleEntry configures a specific rule
type RuleEntry struct {
	ID string `yaml:"id" json:"id"`

	// Severity overrides the default severity
	Severity *validation.Severity `yaml:"severity,omitempty" json:"severity,omitempty"`

	// Disabled turns the rule off, or when Match is set suppresses the matching findings
	Disabled *bool `yaml:"disabled,omitempty" json:"disabled,omitempty"`

	// Options contains rule-specific configuration, validated against the rule's schema
	Options []any `yaml:"options,omitempty" json:"options,omitempty"`

	// Match restricts Severity and Disabled to findings whose message matches
	Match *regexp.Regexp `yaml:"-" json:"-"`
}

// RuleConfig is the effective configuration handed to a rule when it runs
type RuleConfig struct {
	// Severity overrides the default severity
	Severity *validation.Severity `yaml:"severity,omitempty" json:"severity,omitempty"`

	// Options contains rule-specific configuration
	Options []any `yaml:"options,omitempty" json:"options,omitempty"`

	// Settings are the shared settings of the configuration
	Settings map[string]any `yaml:"-" json:"-"`
}

// GetSeverity returns the effective severity, falling back to default if not overridden
func (c *RuleConfig) GetSeverity(defaultSeverity validation.Severity) validation.Severity {
	if c != nil && c.Severity != nil {
		return *c.Severity
	}
	return defaultSeverity
}

// CategoryConfig configures an entire category of rules
type CategoryConfig struct {
	// Enabled controls whether all rules in the category are active
	Enabled *bool `yaml:"enabled,omitempty" json:"enabled,omitempty"`

	// Severity overrides the default severity for all rules in the category
	Severity *validation.Severity `yaml:"severity,omitempty" json:"severity,omitempty"`
}

// CustomRulesConfig points at custom rule sources
type CustomRulesConfig struct {
	// Paths are files or glob patterns of .js/.ts rule files
	Paths []string `yaml:"paths,omitempty" json:"paths,omitempty"`

	// Timeout bounds a single rule run. Zero uses the loader's default.
	Timeout time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`
}

type OutputFormat string

const (
	OutputFormatText   OutputFormat = "text"
	OutputFormatJSON   OutputFormat = "json"
	OutputFormatESLint OutputFormat = "eslint"
)

func (f OutputFormat) valid() bool {
	switch f {
	case "", OutputFormatText, OutputFormatJSON, OutputFormatESLint:
		return true
	}
	return false
}

// NewConfig creates a new default configuration
func NewConfig() *Config {
	return &Config{
		Extends:      []string{"all"},
		Settings:     make(map[string]any),
		Rules:        []RuleEntry{},
		Categories:   make(map[string]CategoryConfig),
		OutputFormat: OutputFormatText,
	}
}

// Validate checks the configuration for structural mistakes. Rule options are validated
// separately against each rule's schema once the rules are known.
func (c *Config) Validate() error {
	var errs []error

	type entryKey struct{ id, match string }
	seen := make(map[entryKey]bool)

	for i, entry := range c.Rules {
		if entry.ID == "" {
			errs = append(errs, fmt.Errorf("rules[%d]: rule entry missing id", i))
			continue
		}
		if entry.Severity != nil && !entry.Severity.Valid() {
			errs = append(errs, fmt.Errorf("rule %q: invalid severity %q", entry.ID, *entry.Severity))
		}

		key := entryKey{id: entry.ID}
		if entry.Match != nil {
			key.match = entry.Match.String()
		}
		if seen[key] {
			errs = append(errs, fmt.Errorf("rule %q: duplicate rule entry", entry.ID))
		}
		seen[key] = true
	}

	for name, cat := range c.Categories {
		if cat.Severity != nil && !cat.Severity.Valid() {
			errs = append(errs, fmt.Errorf("category %q: invalid severity %q", name, *cat.Severity))
		}
	}

	if !c.OutputFormat.valid() {
		errs = append(errs, fmt.Errorf("unknown output_format %q", c.OutputFormat))
	}

	if c.CustomRules != nil && c.CustomRules.Timeout < 0 {
		errs = append(errs, fmt.Errorf("custom_rules: timeout must not be negative"))
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.WithCode(errors.CodeInvalidConfig, ErrInvalidConfig.Wrap(errors.Join(errs...)))
}
