package rules_test

import (
	"errors"
	"testing"

	"github.com/speakeasy-api/jsxlint/jsx"
	"github.com/speakeasy-api/jsxlint/linter"
	"github.com/speakeasy-api/jsxlint/validation"
	"github.com/stretchr/testify/require"
)

// runRule parses src and runs rule against it. Without options the rule's defaults are
// used, as the linter would.
func runRule(t *testing.T, rule linter.RuleRunner[*jsx.Document], src string, options ...any) []*validation.Error {
	t.Helper()
	return runRuleWithConfig(t, rule, src, &linter.RuleConfig{Options: options})
}

func runRuleWithConfig(t *testing.T, rule linter.RuleRunner[*jsx.Document], src string, config *linter.RuleConfig) []*validation.Error {
	t.Helper()

	doc, parseErrs, err := jsx.Parse([]byte(src), jsx.WithLocation("test.jsx"))
	require.NoError(t, err)
	require.Empty(t, parseErrs, "source should parse")

	if config.Options == nil {
		if configurable, ok := rule.(linter.ConfigurableRule); ok {
			config.Options = configurable.ConfigDefaults()
		}
	}

	errs := rule.Run(t.Context(), linter.NewDocumentInfo(doc, "test.jsx"), config)

	findings := make([]*validation.Error, 0, len(errs))
	for _, err := range errs {
		var vErr *validation.Error
		require.True(t, errors.As(err, &vErr), "rule should only report validation errors")
		require.Equal(t, rule.ID(), vErr.Rule)
		findings = append(findings, vErr)
	}
	return findings
}

func messages(findings []*validation.Error) []string {
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.Message())
	}
	return out
}

func repeat(msg string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = msg
	}
	return out
}
