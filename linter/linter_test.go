package linter_test

import (
	"context"
	"errors"
	"regexp"
	"sync/atomic"
	"testing"

	jsxerrors "github.com/speakeasy-api/jsxlint/errors"
	"github.com/speakeasy-api/jsxlint/linter"
	"github.com/speakeasy-api/jsxlint/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock document type for testing
type MockDoc struct {
	ID string
}

// Mock rule for testing
type mockRule struct {
	id              string
	category        string
	description     string
	summary         string
	link            string
	defaultSeverity validation.Severity
	runFunc         func(ctx context.Context, docInfo *linter.DocumentInfo[*MockDoc], config *linter.RuleConfig) []error
}

func (r *mockRule) ID() string                           { return r.id }
func (r *mockRule) Category() string                     { return r.category }
func (r *mockRule) Description() string                  { return r.description }
func (r *mockRule) Summary() string                      { return r.summary }
func (r *mockRule) Link() string                         { return r.link }
func (r *mockRule) DefaultSeverity() validation.Severity { return r.defaultSeverity }

func (r *mockRule) Run(ctx context.Context, docInfo *linter.DocumentInfo[*MockDoc], config *linter.RuleConfig) []error {
	if r.runFunc != nil {
		return r.runFunc(ctx, docInfo, config)
	}
	return nil
}

// reporting returns a rule that reports one finding with message at line.
func reporting(id, category string, severity validation.Severity, message string, line int) *mockRule {
	return &mockRule{
		id:              id,
		category:        category,
		defaultSeverity: severity,
		runFunc: func(_ context.Context, _ *linter.DocumentInfo[*MockDoc], config *linter.RuleConfig) []error {
			return []error{validation.NewValidationError(
				config.GetSeverity(severity),
				id,
				errors.New(message),
				&validation.Location{Line: line, Column: 1},
			)}
		},
	}
}

func ruleIDs(output *linter.Output) []string {
	var ids []string
	for _, err := range output.Results {
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			ids = append(ids, vErr.Rule)
		}
	}
	return ids
}

func boolPtr(b bool) *bool { return &b }

func severityPtr(s validation.Severity) *validation.Severity { return &s }

func newTestRegistry(t *testing.T) *linter.Registry[*MockDoc] {
	t.Helper()

	registry := linter.NewRegistry[*MockDoc]()
	registry.Register(reporting("rule-a", "possible-errors", validation.SeverityError, "problem a", 1))
	registry.Register(reporting("rule-b", "possible-errors", validation.SeverityError, "problem b", 2))
	registry.Register(reporting("rule-c", "stylistic-issues", validation.SeverityWarning, "problem c", 3))
	require.NoError(t, registry.RegisterRuleset("recommended", []string{"rule-a", "rule-b"}))
	return registry
}

func lint(t *testing.T, config *linter.Config, registry *linter.Registry[*MockDoc], opts *linter.LintOptions) *linter.Output {
	t.Helper()

	lntr := linter.NewLinter(config, registry)
	output, err := lntr.Lint(t.Context(), linter.NewDocumentInfo(&MockDoc{ID: "test"}, "src/app.jsx"), nil, opts)
	require.NoError(t, err)
	return output
}

func TestLinter_RuleSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		config   *linter.Config
		opts     *linter.LintOptions
		expected []string
	}{
		{
			name:     "nil config extends all",
			config:   nil,
			expected: []string{"rule-a", "rule-b", "rule-c"},
		},
		{
			name:     "extends recommended",
			config:   &linter.Config{Extends: []string{"recommended"}},
			expected: []string{"rule-a", "rule-b"},
		},
		{
			name: "rule entry enables rule outside ruleset",
			config: &linter.Config{
				Extends: []string{"recommended"},
				Rules:   []linter.RuleEntry{{ID: "rule-c"}},
			},
			expected: []string{"rule-a", "rule-b", "rule-c"},
		},
		{
			name: "disabled entry turns rule off",
			config: &linter.Config{
				Extends: []string{"all"},
				Rules:   []linter.RuleEntry{{ID: "rule-b", Disabled: boolPtr(true)}},
			},
			expected: []string{"rule-a", "rule-c"},
		},
		{
			name: "category disabled",
			config: &linter.Config{
				Extends:    []string{"all"},
				Categories: map[string]linter.CategoryConfig{"possible-errors": {Enabled: boolPtr(false)}},
			},
			expected: []string{"rule-c"},
		},
		{
			name: "rule entry overrides category",
			config: &linter.Config{
				Extends:    []string{"all"},
				Categories: map[string]linter.CategoryConfig{"possible-errors": {Enabled: boolPtr(false)}},
				Rules:      []linter.RuleEntry{{ID: "rule-a", Disabled: boolPtr(false)}},
			},
			expected: []string{"rule-a", "rule-c"},
		},
		{
			name:     "runtime disabled rules",
			config:   &linter.Config{Extends: []string{"all"}},
			opts:     &linter.LintOptions{DisabledRules: []string{"rule-a", "rule-c"}},
			expected: []string{"rule-b"},
		},
		{
			name:     "no rulesets",
			config:   &linter.Config{Extends: []string{}},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			output := lint(t, tt.config, newTestRegistry(t), tt.opts)
			assert.Equal(t, tt.expected, ruleIDs(output))
		})
	}
}

func TestLinter_SeverityOverrides(t *testing.T) {
	t.Parallel()

	t.Run("rule entry severity", func(t *testing.T) {
		t.Parallel()

		config := &linter.Config{
			Extends: []string{"recommended"},
			Rules:   []linter.RuleEntry{{ID: "rule-a", Severity: severityPtr(validation.SeverityHint)}},
		}
		output := lint(t, config, newTestRegistry(t), nil)

		require.Len(t, output.Results, 2)
		var vErr *validation.Error
		require.ErrorAs(t, output.Results[0], &vErr)
		assert.Equal(t, "rule-a", vErr.Rule)
		assert.Equal(t, validation.SeverityHint, vErr.Severity)
		assert.Equal(t, 1, output.ErrorCount())
	})

	t.Run("category severity applies below rule entry", func(t *testing.T) {
		t.Parallel()

		config := &linter.Config{
			Extends:    []string{"recommended"},
			Categories: map[string]linter.CategoryConfig{"possible-errors": {Severity: severityPtr(validation.SeverityWarning)}},
			Rules:      []linter.RuleEntry{{ID: "rule-b", Severity: severityPtr(validation.SeverityError)}},
		}
		output := lint(t, config, newTestRegistry(t), nil)

		assert.Equal(t, 1, output.ErrorCount())
		assert.Equal(t, 1, output.WarningCount())
	})
}

func TestLinter_MatchEntries(t *testing.T) {
	t.Parallel()

	registry := linter.NewRegistry[*MockDoc]()
	registry.Register(&mockRule{
		id:              "multi",
		category:        "possible-errors",
		defaultSeverity: validation.SeverityError,
		runFunc: func(_ context.Context, _ *linter.DocumentInfo[*MockDoc], _ *linter.RuleConfig) []error {
			return []error{
				validation.NewValidationError(validation.SeverityError, "multi", errors.New("Typo in prop type chain qualifier: isrequired"), &validation.Location{Line: 1, Column: 1}),
				validation.NewValidationError(validation.SeverityError, "multi", errors.New("Typo in static class property declaration"), &validation.Location{Line: 2, Column: 1}),
				validation.NewValidationError(validation.SeverityError, "multi", errors.New("Typo in component lifecycle method declaration"), &validation.Location{Line: 3, Column: 1}),
			}
		},
	})

	config := &linter.Config{
		Extends: []string{"all"},
		Rules: []linter.RuleEntry{
			{ID: "multi", Match: regexp.MustCompile(`prop type`), Disabled: boolPtr(true)},
			{ID: "multi", Match: regexp.MustCompile(`lifecycle`), Severity: severityPtr(validation.SeverityWarning)},
		},
	}
	output := lint(t, config, registry, nil)

	require.Len(t, output.Results, 2)
	var first, second *validation.Error
	require.ErrorAs(t, output.Results[0], &first)
	require.ErrorAs(t, output.Results[1], &second)
	assert.Equal(t, "Typo in static class property declaration", first.Message())
	assert.Equal(t, validation.SeverityError, first.Severity)
	assert.Equal(t, "Typo in component lifecycle method declaration", second.Message())
	assert.Equal(t, validation.SeverityWarning, second.Severity)
}

func TestLinter_Ignores(t *testing.T) {
	t.Parallel()

	config := &linter.Config{Extends: []string{"all"}, Ignores: []string{"src/**"}}
	lntr := linter.NewLinter(config, newTestRegistry(t))

	assert.True(t, lntr.IsIgnored("src/app.jsx"))
	assert.False(t, lntr.IsIgnored("lib/app.jsx"))
	assert.False(t, lntr.IsIgnored(""))

	output, err := lntr.Lint(t.Context(), linter.NewDocumentInfo(&MockDoc{}, "src/app.jsx"), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, output.Results)
}

func TestLinter_PreExistingErrorsAndLocations(t *testing.T) {
	t.Parallel()

	lntr := linter.NewLinter(&linter.Config{Extends: []string{"recommended"}}, newTestRegistry(t))

	syntaxErr := validation.NewValidationError(validation.SeverityError, validation.RuleSyntaxError, errors.New("Unexpected token"), &validation.Location{Line: 1, Column: 5})
	output, err := lntr.Lint(t.Context(), linter.NewDocumentInfo(&MockDoc{}, "src/app.jsx"), []error{syntaxErr}, nil)
	require.NoError(t, err)

	require.Len(t, output.Results, 3)
	for _, result := range output.Results {
		var vErr *validation.Error
		require.ErrorAs(t, result, &vErr)
		assert.Equal(t, "src/app.jsx", vErr.DocumentLocation)
	}

	var first *validation.Error
	require.ErrorAs(t, output.Results[0], &first)
	assert.Equal(t, "rule-a", first.Rule)
	var second *validation.Error
	require.ErrorAs(t, output.Results[1], &second)
	assert.Equal(t, validation.RuleSyntaxError, second.Rule)
}

func TestLinter_RuleOptions(t *testing.T) {
	t.Parallel()

	var seen atomic.Value
	rule := &configurableMockRule{
		mockRule: mockRule{
			id:              "mode-rule",
			category:        "stylistic-issues",
			defaultSeverity: validation.SeverityWarning,
			runFunc: func(_ context.Context, _ *linter.DocumentInfo[*MockDoc], config *linter.RuleConfig) []error {
				seen.Store(config.Options)
				return nil
			},
		},
		configSchema: map[string]any{
			"type":        "array",
			"prefixItems": []any{map[string]any{"enum": []any{"always", "never"}}},
			"items":       false,
		},
		configDefaults: []any{"always"},
	}

	t.Run("defaults are used without options", func(t *testing.T) {
		registry := linter.NewRegistry[*MockDoc]()
		registry.Register(rule)

		lint(t, nil, registry, nil)
		assert.Equal(t, []any{"always"}, seen.Load())
	})

	t.Run("configured options replace defaults", func(t *testing.T) {
		registry := linter.NewRegistry[*MockDoc]()
		registry.Register(rule)

		config := &linter.Config{
			Extends:  []string{"all"},
			Settings: map[string]any{"inferno": map[string]any{"pragma": "Inferno"}},
			Rules:    []linter.RuleEntry{{ID: "mode-rule", Options: []any{"never"}}},
		}
		lint(t, config, registry, nil)
		assert.Equal(t, []any{"never"}, seen.Load())

		ruleConfig := linter.NewLinter(config, registry).GetRuleConfig("mode-rule")
		assert.Equal(t, config.Settings, ruleConfig.Settings)
	})

	t.Run("invalid options fail validation", func(t *testing.T) {
		registry := linter.NewRegistry[*MockDoc]()
		registry.Register(rule)

		config := &linter.Config{
			Extends: []string{"all"},
			Rules:   []linter.RuleEntry{{ID: "mode-rule", Options: []any{"sometimes"}}},
		}
		lntr := linter.NewLinter(config, registry)
		_, err := lntr.Lint(t.Context(), linter.NewDocumentInfo(&MockDoc{}, ""), nil, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `rule "mode-rule": options.0`)
		assert.Equal(t, jsxerrors.CodeInvalidConfig, jsxerrors.CodeOf(err))
	})

	t.Run("wrong option type", func(t *testing.T) {
		registry := linter.NewRegistry[*MockDoc]()
		registry.Register(&configurableMockRule{
			mockRule: mockRule{id: "typed", category: "possible-errors", defaultSeverity: validation.SeverityError},
			configSchema: map[string]any{
				"type":        "array",
				"prefixItems": []any{map[string]any{"type": "object"}},
			},
		})

		config := &linter.Config{Rules: []linter.RuleEntry{{ID: "typed", Options: []any{"nope"}}}}
		err := linter.NewLinter(config, registry).ValidateConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), `rule "typed": options.0 has the wrong type`)
	})
}

func TestLinter_ValidateConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		config   *linter.Config
		contains string
	}{
		{
			name:     "unknown rule",
			config:   &linter.Config{Rules: []linter.RuleEntry{{ID: "no-such-rule"}}},
			contains: `unknown rule "no-such-rule"`,
		},
		{
			name:     "unknown ruleset",
			config:   &linter.Config{Extends: []string{"strict"}},
			contains: `unknown ruleset "strict"`,
		},
		{
			name:     "options on plain rule",
			config:   &linter.Config{Rules: []linter.RuleEntry{{ID: "rule-a", Options: []any{"x"}}}},
			contains: `rule "rule-a" does not accept options`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := linter.NewLinter(tt.config, newTestRegistry(t)).ValidateConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
			assert.ErrorIs(t, err, linter.ErrInvalidConfig)
			assert.Equal(t, jsxerrors.CodeInvalidConfig, jsxerrors.CodeOf(err))
		})
	}

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()

		config := &linter.Config{Extends: []string{"recommended"}, Rules: []linter.RuleEntry{{ID: "rule-c"}}}
		require.NoError(t, linter.NewLinter(config, newTestRegistry(t)).ValidateConfig())
	})
}

func TestLinter_RulePanicIsReported(t *testing.T) {
	t.Parallel()

	registry := linter.NewRegistry[*MockDoc]()
	registry.Register(&mockRule{
		id:              "boom",
		category:        "possible-errors",
		defaultSeverity: validation.SeverityError,
		runFunc: func(_ context.Context, _ *linter.DocumentInfo[*MockDoc], _ *linter.RuleConfig) []error {
			panic("unexpected node")
		},
	})
	registry.Register(reporting("rule-a", "possible-errors", validation.SeverityError, "problem a", 1))

	output := lint(t, nil, registry, nil)

	require.Len(t, output.Results, 2)
	var internal *validation.Error
	require.ErrorAs(t, output.Results[0], &internal)
	assert.Equal(t, validation.RuleInternal, internal.Rule)
	assert.Contains(t, internal.Message(), `rule "boom" panicked: unexpected node`)
}

func TestLinter_Concurrency(t *testing.T) {
	t.Parallel()

	var running, peak atomic.Int32
	registry := linter.NewRegistry[*MockDoc]()
	for _, id := range []string{"r1", "r2", "r3", "r4", "r5"} {
		registry.Register(&mockRule{
			id:              id,
			category:        "possible-errors",
			defaultSeverity: validation.SeverityError,
			runFunc: func(_ context.Context, _ *linter.DocumentInfo[*MockDoc], _ *linter.RuleConfig) []error {
				n := running.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				running.Add(-1)
				return []error{validation.NewValidationError(validation.SeverityError, id, errors.New(id), &validation.Location{Line: 1, Column: 1})}
			},
		})
	}

	output := lint(t, nil, registry, &linter.LintOptions{Concurrency: 1})
	assert.Equal(t, []string{"r1", "r2", "r3", "r4", "r5"}, ruleIDs(output))
	assert.Equal(t, int32(1), peak.Load())
}

func TestLinter_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	lntr := linter.NewLinter(nil, newTestRegistry(t))
	_, err := lntr.Lint(ctx, linter.NewDocumentInfo(&MockDoc{}, ""), nil, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestOutput_Counts(t *testing.T) {
	t.Parallel()

	output := &linter.Output{
		Results: []error{
			validation.NewValidationError(validation.SeverityError, "a", errors.New("a"), nil),
			validation.NewValidationError(validation.SeverityWarning, "b", errors.New("b"), nil),
			&validation.Error{Severity: validation.SeverityWarning, Rule: "c", UnderlyingError: errors.New("c"), Fix: &validation.ReplaceFix{Desc: "fix c"}},
			errors.New("plain failure"),
		},
	}

	assert.True(t, output.HasErrors())
	assert.Equal(t, 2, output.ErrorCount())
	assert.Equal(t, 2, output.WarningCount())
	require.Len(t, output.Fixable(), 1)
	assert.Equal(t, "c", output.Fixable()[0].Rule)
}
