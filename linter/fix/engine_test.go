package fix_test

import (
	"errors"
	"testing"

	"github.com/speakeasy-api/jsxlint/linter/fix"
	"github.com/speakeasy-api/jsxlint/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockFix is a fix with fixed edits for testing.
type mockFix struct {
	description string
	edits       []validation.TextEdit
}

func (f *mockFix) Description() string          { return f.description }
func (f *mockFix) Edits() []validation.TextEdit { return f.edits }

// mockPrompter is a test prompter that returns predefined answers.
type mockPrompter struct {
	answer bool
	err    error
	calls  int
}

func (p *mockPrompter) ConfirmFix(_ *validation.Error, _ validation.Fix) (bool, error) {
	p.calls++
	return p.answer, p.err
}

func replace(start, end int, text string) *validation.ReplaceFix {
	return &validation.ReplaceFix{
		Desc: "replace",
		Edit: validation.TextEdit{Start: start, End: end, NewText: text},
	}
}

func makeError(rule string, line, col int, msg string, f validation.Fix) error {
	return &validation.Error{
		UnderlyingError: errors.New(msg),
		Location:        &validation.Location{Line: line, Column: col},
		Severity:        validation.SeverityWarning,
		Rule:            rule,
		Fix:             f,
	}
}

const source = `<div class="a" />`

func TestEngine_ModeNone(t *testing.T) {
	t.Parallel()

	engine := fix.NewEngine(fix.Options{Mode: fix.ModeNone}, nil, nil)
	result, err := engine.ProcessErrors(t.Context(), []byte(source), []error{
		makeError("test-rule", 1, 6, "some error", replace(5, 10, "className")),
	})

	require.NoError(t, err, "ProcessErrors should not fail")
	assert.Empty(t, result.Applied, "should not apply any fixes in ModeNone")
	assert.Empty(t, result.Skipped, "should not skip any fixes in ModeNone")
	assert.Empty(t, result.Failed, "should not fail any fixes in ModeNone")
	assert.Equal(t, source, string(result.Source))
	assert.False(t, result.Changed())
}

func TestEngine_ModeAuto(t *testing.T) {
	t.Parallel()

	f := &validation.ReplaceFix{
		Desc:   "Replace 'class' with 'className'",
		Edit:   validation.TextEdit{Start: 5, End: 10, NewText: "className"},
		Before: "class",
	}
	engine := fix.NewEngine(fix.Options{Mode: fix.ModeAuto}, nil, nil)
	result, err := engine.ProcessErrors(t.Context(), []byte(source), []error{
		makeError("jsx-props-class-name", 1, 6, "issue", f),
	})

	require.NoError(t, err, "ProcessErrors should not fail")
	require.Len(t, result.Applied, 1, "should apply the fix")
	assert.Equal(t, `<div className="a" />`, string(result.Source))
	assert.Equal(t, "class", result.Applied[0].Before)
	assert.Equal(t, "className", result.Applied[0].After)
	assert.True(t, result.Changed())
}

func TestEngine_MultiEditFix(t *testing.T) {
	t.Parallel()

	f := &mockFix{description: "swap", edits: []validation.TextEdit{
		{Start: 12, End: 13, NewText: "b"},
		{Start: 1, End: 4, NewText: "span"},
	}}
	engine := fix.NewEngine(fix.Options{Mode: fix.ModeAuto}, nil, nil)
	result, err := engine.ProcessErrors(t.Context(), []byte(source), []error{
		makeError("test-rule", 1, 1, "issue", f),
	})

	require.NoError(t, err)
	assert.Len(t, result.Applied, 1)
	assert.Equal(t, `<span class="b" />`, string(result.Source))
}

func TestEngine_DryRun(t *testing.T) {
	t.Parallel()

	engine := fix.NewEngine(fix.Options{Mode: fix.ModeAuto, DryRun: true}, nil, nil)
	result, err := engine.ProcessErrors(t.Context(), []byte(source), []error{
		makeError("test-rule", 1, 6, "issue", replace(5, 10, "className")),
		makeError("test-rule", 1, 7, "overlapping", replace(6, 9, "x")),
	})

	require.NoError(t, err, "ProcessErrors should not fail")
	assert.Len(t, result.Applied, 1, "should record the fix as would-apply")
	require.Len(t, result.Skipped, 1, "conflicts are still detected in dry-run")
	assert.Equal(t, fix.SkipConflict, result.Skipped[0].Reason)
	assert.Equal(t, source, string(result.Source), "source should NOT change in dry-run")
}

func TestEngine_ConflictDetection(t *testing.T) {
	t.Parallel()

	engine := fix.NewEngine(fix.Options{Mode: fix.ModeAuto}, nil, nil)
	result, err := engine.ProcessErrors(t.Context(), []byte(source), []error{
		makeError("rule-b", 1, 6, "second by rule", replace(5, 10, "klass")),
		makeError("rule-a", 1, 6, "first by rule", replace(5, 10, "className")),
		makeError("rule-c", 1, 12, "independent", replace(12, 13, "b")),
	})

	require.NoError(t, err, "ProcessErrors should not fail")
	require.Len(t, result.Applied, 2)
	assert.Equal(t, "rule-a", result.Applied[0].Error.Rule, "ties are broken by rule id")
	assert.Equal(t, "rule-c", result.Applied[1].Error.Rule)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "rule-b", result.Skipped[0].Error.Rule)
	assert.Equal(t, fix.SkipConflict, result.Skipped[0].Reason)
	assert.Equal(t, "conflicts with another fix", result.Skipped[0].Reason.String())
	assert.Equal(t, `<div className="b" />`, string(result.Source))
}

func TestEngine_AdjacentEditsDoNotConflict(t *testing.T) {
	t.Parallel()

	engine := fix.NewEngine(fix.Options{Mode: fix.ModeAuto}, nil, nil)
	result, err := engine.ProcessErrors(t.Context(), []byte("ab"), []error{
		makeError("r", 1, 1, "a", replace(0, 1, "x")),
		makeError("r", 1, 2, "b", replace(1, 2, "y")),
	})

	require.NoError(t, err)
	assert.Len(t, result.Applied, 2)
	assert.Equal(t, "xy", string(result.Source))
}

func TestEngine_FailedFix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fix      validation.Fix
		contains string
	}{
		{
			name:     "out of range",
			fix:      replace(5, 100, "x"),
			contains: "outside the source",
		},
		{
			name:     "no edits",
			fix:      &mockFix{description: "empty"},
			contains: "no edits",
		},
		{
			name: "self overlapping",
			fix: &mockFix{description: "bad", edits: []validation.TextEdit{
				{Start: 1, End: 4, NewText: "a"},
				{Start: 2, End: 3, NewText: "b"},
			}},
			contains: "overlaps another edit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			engine := fix.NewEngine(fix.Options{Mode: fix.ModeAuto}, nil, nil)
			result, err := engine.ProcessErrors(t.Context(), []byte(source), []error{
				makeError("test-rule", 1, 1, "issue", tt.fix),
			})

			require.NoError(t, err, "ProcessErrors should not fail")
			assert.Empty(t, result.Applied)
			require.Len(t, result.Failed, 1, "should record failed fix")
			assert.Contains(t, result.Failed[0].FixError.Error(), tt.contains)
			assert.Equal(t, source, string(result.Source))
		})
	}
}

func TestEngine_RegistryFix(t *testing.T) {
	t.Parallel()

	registry := fix.NewFixRegistry()
	registry.Register("custom-rule", func(_ *validation.Error) validation.Fix {
		return replace(1, 4, "span")
	})

	engine := fix.NewEngine(fix.Options{Mode: fix.ModeAuto}, nil, registry)
	result, err := engine.ProcessErrors(t.Context(), []byte(source), []error{
		makeError("custom-rule", 1, 2, "issue", nil),
		makeError("other-rule", 1, 2, "no fix", nil),
	})

	require.NoError(t, err, "ProcessErrors should not fail")
	assert.Len(t, result.Applied, 1, "should apply fix from registry")
	assert.Equal(t, `<span class="a" />`, string(result.Source))
}

func TestEngine_NoFixableErrors(t *testing.T) {
	t.Parallel()

	engine := fix.NewEngine(fix.Options{Mode: fix.ModeAuto}, nil, nil)
	result, err := engine.ProcessErrors(t.Context(), []byte(source), []error{
		errors.New("not a validation error"),
		makeError("test-rule", 1, 1, "no fix", nil),
	})

	require.NoError(t, err, "ProcessErrors should not fail")
	assert.Empty(t, result.Applied, "should have no applied fixes")
	assert.Empty(t, result.Skipped, "should have no skipped fixes")
	assert.Empty(t, result.Failed, "should have no failed fixes")
}

func TestEngine_ModeInteractive(t *testing.T) {
	t.Parallel()

	t.Run("user accepts", func(t *testing.T) {
		t.Parallel()

		prompter := &mockPrompter{answer: true}
		engine := fix.NewEngine(fix.Options{Mode: fix.ModeInteractive}, prompter, nil)
		result, err := engine.ProcessErrors(t.Context(), []byte(source), []error{
			makeError("test-rule", 1, 6, "issue", replace(5, 10, "className")),
		})

		require.NoError(t, err)
		assert.Equal(t, 1, prompter.calls, "prompter should have been called")
		assert.Len(t, result.Applied, 1)
		assert.Equal(t, `<div className="a" />`, string(result.Source))
	})

	t.Run("user declines", func(t *testing.T) {
		t.Parallel()

		prompter := &mockPrompter{answer: false}
		engine := fix.NewEngine(fix.Options{Mode: fix.ModeInteractive}, prompter, nil)
		result, err := engine.ProcessErrors(t.Context(), []byte(source), []error{
			makeError("test-rule", 1, 6, "issue", replace(5, 10, "className")),
		})

		require.NoError(t, err)
		assert.Empty(t, result.Applied)
		require.Len(t, result.Skipped, 1)
		assert.Equal(t, fix.SkipUser, result.Skipped[0].Reason)
		assert.Equal(t, source, string(result.Source))
	})

	t.Run("user quits", func(t *testing.T) {
		t.Parallel()

		prompter := &mockPrompter{err: fix.ErrSkipFix}
		engine := fix.NewEngine(fix.Options{Mode: fix.ModeInteractive}, prompter, nil)
		result, err := engine.ProcessErrors(t.Context(), []byte(source), []error{
			makeError("test-rule", 1, 6, "issue", replace(5, 10, "className")),
		})

		require.NoError(t, err)
		require.Len(t, result.Skipped, 1)
		assert.Equal(t, fix.SkipUser, result.Skipped[0].Reason)
	})

	t.Run("prompter failure", func(t *testing.T) {
		t.Parallel()

		prompter := &mockPrompter{err: errors.New("stdin closed")}
		engine := fix.NewEngine(fix.Options{Mode: fix.ModeInteractive}, prompter, nil)
		_, err := engine.ProcessErrors(t.Context(), []byte(source), []error{
			makeError("test-rule", 1, 6, "issue", replace(5, 10, "className")),
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "stdin closed")
	})

	t.Run("no prompter", func(t *testing.T) {
		t.Parallel()

		engine := fix.NewEngine(fix.Options{Mode: fix.ModeInteractive}, nil, nil)
		result, err := engine.ProcessErrors(t.Context(), []byte(source), []error{
			makeError("test-rule", 1, 6, "issue", replace(5, 10, "className")),
		})

		require.NoError(t, err)
		require.Len(t, result.Skipped, 1)
		assert.Equal(t, fix.SkipInteractive, result.Skipped[0].Reason)
	})
}
