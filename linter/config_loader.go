package linter

import (
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/speakeasy-api/jsxlint/errors"
	"github.com/speakeasy-api/jsxlint/validation"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads lint configuration from a YAML reader.
func LoadConfig(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WithCode(errors.CodeInvalidConfig, ErrInvalidConfig.Wrapf("failed to parse config: %w", err))
	}

	if len(cfg.Extends) == 0 {
		cfg.Extends = []string{"all"}
	}
	if cfg.Settings == nil {
		cfg.Settings = make(map[string]any)
	}
	if cfg.Categories == nil {
		cfg.Categories = make(map[string]CategoryConfig)
	}
	if cfg.Rules == nil {
		cfg.Rules = []RuleEntry{}
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = OutputFormatText
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadConfigFromFile loads lint configuration from a YAML file.
func LoadConfigFromFile(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, fmt.Errorf("failed to open config file: %w", err))
	}
	defer f.Close()

	return LoadConfig(f)
}

type rawConfig struct {
	Extends      yaml.Node                 `yaml:"extends,omitempty"`
	Settings     map[string]any            `yaml:"settings,omitempty"`
	Rules        []RuleEntry               `yaml:"rules,omitempty"`
	Categories   map[string]CategoryConfig `yaml:"categories,omitempty"`
	Ignores      []string                  `yaml:"ignores,omitempty"`
	CustomRules  *CustomRulesConfig        `yaml:"custom_rules,omitempty"`
	OutputFormat OutputFormat              `yaml:"output_format,omitempty"`
}

// UnmarshalYAML accepts extends as either a single ruleset name or a list.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	var raw rawConfig
	if err := value.Decode(&raw); err != nil {
		return err
	}

	var extends []string
	switch raw.Extends.Kind {
	case 0:
	case yaml.ScalarNode:
		extends = []string{raw.Extends.Value}
	case yaml.SequenceNode:
		if err := raw.Extends.Decode(&extends); err != nil {
			return fmt.Errorf("extends: %w", err)
		}
	default:
		return fmt.Errorf("line %d: extends must be a string or a list of strings", raw.Extends.Line)
	}

	*c = Config{
		Extends:      extends,
		Settings:     raw.Settings,
		Rules:        raw.Rules,
		Categories:   raw.Categories,
		Ignores:      raw.Ignores,
		CustomRules:  raw.CustomRules,
		OutputFormat: raw.OutputFormat,
	}
	return nil
}

type rawRuleEntry struct {
	ID       string `yaml:"id"`
	Severity string `yaml:"severity,omitempty"`
	Disabled *bool  `yaml:"disabled,omitempty"`
	Options  []any  `yaml:"options,omitempty"`
	Match    string `yaml:"match,omitempty"`
}

// UnmarshalYAML normalizes the severity spelling and compiles the match pattern.
func (e *RuleEntry) UnmarshalYAML(value *yaml.Node) error {
	var raw rawRuleEntry
	if err := value.Decode(&raw); err != nil {
		return err
	}

	entry := RuleEntry{ID: raw.ID, Disabled: raw.Disabled, Options: raw.Options}
	if raw.Severity != "" {
		severity, err := validation.ParseSeverity(raw.Severity)
		if err != nil {
			return fmt.Errorf("line %d: rule %q: %w", value.Line, raw.ID, err)
		}
		entry.Severity = &severity
	}
	if raw.Match != "" {
		re, err := regexp.Compile(raw.Match)
		if err != nil {
			return fmt.Errorf("line %d: rule %q: invalid match pattern: %w", value.Line, raw.ID, err)
		}
		entry.Match = re
	}

	*e = entry
	return nil
}

// MarshalYAML writes the entry back in the form UnmarshalYAML reads.
func (e RuleEntry) MarshalYAML() (any, error) {
	raw := rawRuleEntry{ID: e.ID, Disabled: e.Disabled, Options: e.Options}
	if e.Severity != nil {
		raw.Severity = e.Severity.String()
	}
	if e.Match != nil {
		raw.Match = e.Match.String()
	}
	return raw, nil
}
