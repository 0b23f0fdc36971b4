package customrules_test

import (
	"errors"
	"testing"
	"time"

	jsxLinter "github.com/speakeasy-api/jsxlint/jsx/linter"
	"github.com/speakeasy-api/jsxlint/jsx/linter/customrules"
	"github.com/speakeasy-api/jsxlint/linter"
	"github.com/speakeasy-api/jsxlint/linter/fix"
	"github.com/speakeasy-api/jsxlint/pointer"
	"github.com/speakeasy-api/jsxlint/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findRuleError(results []error, ruleID string) *validation.Error {
	for _, result := range results {
		var vErr *validation.Error
		if errors.As(result, &vErr) && vErr.Rule == ruleID {
			return vErr
		}
	}
	return nil
}

func TestCustomRule_RegisteredWithLinter(t *testing.T) {
	t.Parallel()

	config := linter.NewConfig()
	config.CustomRules = &linter.CustomRulesConfig{
		Paths: []string{testdataPath(t, "no-inline-style.ts")},
	}

	lint, err := jsxLinter.NewLinter(config)
	require.NoError(t, err)

	assert.Contains(t, lint.Registry().AllRuleIDs(), "custom-no-inline-style", "custom rule should be registered")
	assert.Contains(t, lint.Registry().AllCategories(), "style")
}

func TestCustomRule_SeverityOverride(t *testing.T) {
	t.Parallel()
	ctx := t.Context()

	config := &linter.Config{
		Extends: []string{"all"},
		CustomRules: &linter.CustomRulesConfig{
			Paths: []string{testdataPath(t, "no-inline-style.ts")},
		},
		Rules: []linter.RuleEntry{
			{
				ID:       "custom-no-inline-style",
				Severity: pointer.From(validation.SeverityError),
			},
		},
	}

	lint, err := jsxLinter.NewLinter(config)
	require.NoError(t, err)

	output, err := lint.LintSource(ctx, "test.jsx", []byte(`const a = <p style={{}} />;`), nil)
	require.NoError(t, err)

	customRuleErr := findRuleError(output.Results, "custom-no-inline-style")
	require.NotNil(t, customRuleErr, "should find custom rule error")
	assert.Equal(t, validation.SeverityError, customRuleErr.Severity, "severity should be overridden to error")
	assert.Equal(t, "test.jsx", customRuleErr.DocumentLocation)
}

func TestCustomRule_Disabled(t *testing.T) {
	t.Parallel()
	ctx := t.Context()

	config := &linter.Config{
		Extends: []string{"all"},
		CustomRules: &linter.CustomRulesConfig{
			Paths: []string{testdataPath(t, "no-inline-style.ts")},
		},
		Rules: []linter.RuleEntry{
			{
				ID:       "custom-no-inline-style",
				Disabled: pointer.From(true),
			},
		},
	}

	lint, err := jsxLinter.NewLinter(config)
	require.NoError(t, err)

	output, err := lint.LintSource(ctx, "test.jsx", []byte(`const a = <p style={{}} />;`), nil)
	require.NoError(t, err)

	assert.Nil(t, findRuleError(output.Results, "custom-no-inline-style"), "disabled rule should not report")
}

func TestCustomRule_RunModeSeverityOverride(t *testing.T) {
	t.Parallel()
	ctx := t.Context()

	config := &linter.Config{
		Extends: []string{"all"},
		CustomRules: &linter.CustomRulesConfig{
			Paths: []string{testdataPath(t, "no-todo-comments.ts")},
		},
		Rules: []linter.RuleEntry{
			{
				ID:       "custom-no-todo-comments",
				Severity: pointer.From(validation.SeverityHint),
			},
		},
	}

	lint, err := jsxLinter.NewLinter(config)
	require.NoError(t, err)

	output, err := lint.LintSource(ctx, "test.jsx", []byte("// TODO: later\nconst a = 1;\n"), nil)
	require.NoError(t, err)

	customRuleErr := findRuleError(output.Results, "custom-no-todo-comments")
	require.NotNil(t, customRuleErr)
	assert.Equal(t, validation.SeverityHint, customRuleErr.Severity)
	assert.Equal(t, 1, customRuleErr.GetLineNumber())
}

func TestCustomRule_FixSource(t *testing.T) {
	t.Parallel()
	ctx := t.Context()

	config := linter.NewConfig()
	config.CustomRules = &linter.CustomRulesConfig{
		Paths: []string{testdataPath(t, "prefer-html-for.js")},
	}

	lint, err := jsxLinter.NewLinter(config)
	require.NoError(t, err)

	result, err := lint.FixSource(ctx, "test.jsx", []byte(`<label for="x" class="y">hi</label>;`), fix.Options{Mode: fix.ModeAuto}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, `<label htmlFor="x" className="y">hi</label>;`, string(result.Source))
	assert.Len(t, result.Applied, 2, "custom and built-in fixes should both apply")
	assert.Empty(t, result.Output.Results)
}

func TestCustomRule_TimeoutFromLinterConfig(t *testing.T) {
	t.Parallel()
	ctx := t.Context()

	config := linter.NewConfig()
	config.CustomRules = &linter.CustomRulesConfig{
		Paths:   []string{testdataPath(t, "errors/infinite-loop.js")},
		Timeout: 50 * time.Millisecond,
	}

	lint, err := jsxLinter.NewLinter(config)
	require.NoError(t, err)

	rule, ok := lint.Registry().GetRule("custom-infinite-loop")
	require.True(t, ok)
	_, isCustom := rule.(*customrules.CustomRule)
	require.True(t, isCustom)

	output, err := lint.LintSource(ctx, "test.jsx", []byte("const a = 1;"), nil)
	require.NoError(t, err)

	require.Len(t, output.Results, 1, "the timeout should be the only result")
	assert.Contains(t, output.Results[0].Error(), "rule custom-infinite-loop: execution timeout exceeded -- limit 50ms")
	assert.ErrorIs(t, output.Results[0], customrules.ErrTimeout)
}
