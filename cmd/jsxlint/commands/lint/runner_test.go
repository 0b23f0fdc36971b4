package lint_test

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/speakeasy-api/jsxlint/cmd/jsxlint/commands/lint"
	jsxerrors "github.com/speakeasy-api/jsxlint/errors"
	"github.com/speakeasy-api/jsxlint/linter/fix"
	"github.com/speakeasy-api/jsxlint/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	appSource    = "const a = <div class=\"foo\" />;\n"
	brokenSource = "<img>x</img>;\n"
)

type testRunner struct {
	*lint.Runner
	fs     *system.FileSystem
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestRunner(t *testing.T, files map[string]string) *testRunner {
	t.Helper()

	fsys := system.NewInMemoryFileSystem()
	for name, content := range files {
		require.NoError(t, fsys.WriteFile(name, []byte(content), 0o644))
	}

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &testRunner{
		Runner: &lint.Runner{
			FS:      fsys,
			Stdin:   strings.NewReader(""),
			Stdout:  stdout,
			Stderr:  stderr,
			Version: "test",
		},
		fs:     fsys,
		stdout: stdout,
		stderr: stderr,
	}
}

func defaultOptions() lint.Options {
	return lint.Options{Format: "text", MaxWarnings: -1, Concurrency: 2}
}

func TestRunner_Run_TextOutput(t *testing.T) {
	t.Parallel()

	r := newTestRunner(t, map[string]string{"src/App.jsx": appSource})

	err := r.Run(t.Context(), defaultOptions(), []string{"src/App.jsx"})
	require.NoError(t, err, "warnings alone should not fail the run")

	assert.Equal(t, "src/App.jsx\n"+
		"  1:16  warning  jsx-props-class-name  Invalid attribute 'class' found, use 'className' instead [fixable]\n"+
		"\n"+
		"✖ 1 problems (0 errors, 1 warnings, 0 hints)\n"+
		"  1 problems potentially fixable with the --fix option.\n", r.stdout.String())
	assert.Contains(t, r.stderr.String(), "Linting 1 file(s)")
}

func TestRunner_Run_CleanFiles(t *testing.T) {
	t.Parallel()

	r := newTestRunner(t, map[string]string{"src/App.jsx": `const a = <div className="foo" />;`})

	err := r.Run(t.Context(), defaultOptions(), []string{"src/App.jsx"})
	require.NoError(t, err)
	assert.Empty(t, r.stdout.String())
}

func TestRunner_Run_JSONOutput(t *testing.T) {
	t.Parallel()

	r := newTestRunner(t, map[string]string{
		"src/App.jsx":    appSource,
		"src/Broken.jsx": brokenSource,
	})

	opts := defaultOptions()
	opts.Format = "json"
	err := r.Run(t.Context(), opts, []string{"src/App.jsx", "src/Broken.jsx"})
	require.Error(t, err)
	assert.Equal(t, "linting found 1 errors", err.Error())

	var parsed struct {
		Results []struct {
			Rule     string `json:"rule"`
			Category string `json:"category"`
			Severity string `json:"severity"`
			Document string `json:"document"`
		} `json:"results"`
		Summary struct {
			Total    int `json:"total"`
			Errors   int `json:"errors"`
			Warnings int `json:"warnings"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(r.stdout.Bytes(), &parsed))
	require.Len(t, parsed.Results, 2)

	assert.Equal(t, "jsx-props-class-name", parsed.Results[0].Rule)
	assert.Equal(t, "stylistic-issues", parsed.Results[0].Category)
	assert.Equal(t, "src/App.jsx", parsed.Results[0].Document)
	assert.Equal(t, "void-dom-elements-no-children", parsed.Results[1].Rule)
	assert.Equal(t, "error", parsed.Results[1].Severity)
	assert.Equal(t, "src/Broken.jsx", parsed.Results[1].Document)
	assert.Equal(t, 2, parsed.Summary.Total)
	assert.Equal(t, 1, parsed.Summary.Errors)
	assert.Equal(t, 1, parsed.Summary.Warnings)
}

func TestRunner_Run_ESLintOutput(t *testing.T) {
	t.Parallel()

	r := newTestRunner(t, map[string]string{"src/App.jsx": appSource})

	opts := defaultOptions()
	opts.Format = "eslint"
	require.NoError(t, r.Run(t.Context(), opts, []string{"src/App.jsx"}))

	var parsed []struct {
		FilePath string `json:"filePath"`
		Messages []struct {
			RuleID   string `json:"ruleId"`
			Severity int    `json:"severity"`
			Line     int    `json:"line"`
			Column   int    `json:"column"`
		} `json:"messages"`
		WarningCount int    `json:"warningCount"`
		Source       string `json:"source"`
	}
	require.NoError(t, json.Unmarshal(r.stdout.Bytes(), &parsed))
	require.Len(t, parsed, 1)
	assert.Equal(t, "src/App.jsx", parsed[0].FilePath)
	assert.Equal(t, 1, parsed[0].WarningCount)
	assert.Equal(t, appSource, parsed[0].Source)
	require.Len(t, parsed[0].Messages, 1)
	assert.Equal(t, "jsx-props-class-name", parsed[0].Messages[0].RuleID)
	assert.Equal(t, 1, parsed[0].Messages[0].Severity)
	assert.Equal(t, 1, parsed[0].Messages[0].Line)
	assert.Equal(t, 16, parsed[0].Messages[0].Column)
}

func TestRunner_Run_MaxWarnings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		maxWarnings int
		wantErr     string
	}{
		{name: "unlimited", maxWarnings: -1},
		{name: "at the limit", maxWarnings: 1},
		{name: "over the limit", maxWarnings: 0, wantErr: "linting found 1 warnings, more than the maximum of 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := newTestRunner(t, map[string]string{"src/App.jsx": appSource})
			opts := defaultOptions()
			opts.MaxWarnings = tt.maxWarnings

			err := r.Run(t.Context(), opts, []string{"src/App.jsx"})
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestRunner_Run_Fix(t *testing.T) {
	t.Parallel()

	r := newTestRunner(t, map[string]string{"src/App.jsx": appSource})

	opts := defaultOptions()
	opts.FixMode = fix.ModeAuto
	require.NoError(t, r.Run(t.Context(), opts, []string{"src/App.jsx"}))

	fixed, err := r.fs.ReadFile("src/App.jsx")
	require.NoError(t, err)
	assert.Equal(t, "const a = <div className=\"foo\" />;\n", string(fixed))

	assert.Contains(t, r.stderr.String(), "Fixed: src/App.jsx\n  [1:16] jsx-props-class-name - ")
	assert.Contains(t, r.stderr.String(), "Applied 1 fix(es) to src/App.jsx")
	assert.Empty(t, r.stdout.String(), "no findings remain after fixing")
}

func TestRunner_Run_FixDryRun(t *testing.T) {
	t.Parallel()

	r := newTestRunner(t, map[string]string{"src/App.jsx": appSource})

	opts := defaultOptions()
	opts.FixMode = fix.ModeAuto
	opts.DryRun = true
	require.NoError(t, r.Run(t.Context(), opts, []string{"src/App.jsx"}))

	unchanged, err := r.fs.ReadFile("src/App.jsx")
	require.NoError(t, err)
	assert.Equal(t, appSource, string(unchanged))

	assert.Contains(t, r.stderr.String(), "[dry-run] Fixed: src/App.jsx")
	assert.NotContains(t, r.stderr.String(), "Applied")
	assert.Contains(t, r.stdout.String(), "jsx-props-class-name")
}

func TestRunner_Run_Stdin(t *testing.T) {
	t.Parallel()

	r := newTestRunner(t, nil)
	r.Stdin = strings.NewReader(brokenSource)

	err := r.Run(t.Context(), defaultOptions(), []string{"-"})
	require.Error(t, err)

	assert.Equal(t, "stdin\n"+
		"  1:1  error  void-dom-elements-no-children  Void DOM element <img /> cannot receive children.\n"+
		"\n"+
		"✖ 1 problems (1 errors, 0 warnings, 0 hints)\n", r.stdout.String())
	assert.Contains(t, r.stderr.String(), "Linting source from stdin")
}

func TestRunner_Run_ConfigFile(t *testing.T) {
	t.Parallel()

	config := `extends: recommended
rules:
  - id: void-dom-elements-no-children
    severity: warning
`
	r := newTestRunner(t, map[string]string{
		"src/App.jsx":    appSource,
		"src/Broken.jsx": brokenSource,
		"cfg/lint.yaml":  config,
	})

	opts := defaultOptions()
	opts.ConfigFile = "cfg/lint.yaml"
	require.NoError(t, r.Run(t.Context(), opts, []string{"src/App.jsx", "src/Broken.jsx"}))

	assert.Equal(t, "src/Broken.jsx\n"+
		"  1:1  warning  void-dom-elements-no-children  Void DOM element <img /> cannot receive children.\n"+
		"\n"+
		"✖ 1 problems (0 errors, 1 warnings, 0 hints)\n", r.stdout.String())
}

func TestRunner_Run_RulesetAndDisable(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"src/App.jsx":    appSource,
		"src/Broken.jsx": brokenSource,
	}

	tests := []struct {
		name     string
		ruleset  string
		disabled []string
		wantErr  bool
		want     []string
	}{
		{name: "stylistic ruleset", ruleset: "stylistic", want: []string{"jsx-props-class-name"}},
		{name: "recommended ruleset", ruleset: "recommended", wantErr: true, want: []string{"void-dom-elements-no-children"}},
		{name: "disabled rule", disabled: []string{"void-dom-elements-no-children"}, want: []string{"jsx-props-class-name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := newTestRunner(t, files)
			opts := defaultOptions()
			opts.Format = "json"
			opts.Ruleset = tt.ruleset
			opts.DisabledRules = tt.disabled

			err := r.Run(t.Context(), opts, []string{"src/App.jsx", "src/Broken.jsx"})
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}

			var parsed struct {
				Results []struct {
					Rule string `json:"rule"`
				} `json:"results"`
			}
			require.NoError(t, json.Unmarshal(r.stdout.Bytes(), &parsed))
			rules := make([]string, 0, len(parsed.Results))
			for _, res := range parsed.Results {
				rules = append(rules, res.Rule)
			}
			assert.Equal(t, tt.want, rules)
		})
	}
}

func TestRunner_Run_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		opts     func(o *lint.Options)
		paths    []string
		wantCode jsxerrors.Code
		wantErr  string
	}{
		{
			name:     "missing config file",
			opts:     func(o *lint.Options) { o.ConfigFile = "missing.yaml" },
			paths:    []string{"src/App.jsx"},
			wantCode: jsxerrors.CodeInvalidInput,
			wantErr:  "failed to read config file",
		},
		{
			name:     "unknown disabled rule",
			opts:     func(o *lint.Options) { o.DisabledRules = []string{"no-such-rule"} },
			paths:    []string{"src/App.jsx"},
			wantCode: jsxerrors.CodeInvalidConfig,
			wantErr:  `unknown rule "no-such-rule"`,
		},
		{
			name:     "unknown ruleset",
			opts:     func(o *lint.Options) { o.Ruleset = "strict" },
			paths:    []string{"src/App.jsx"},
			wantCode: jsxerrors.CodeInvalidConfig,
			wantErr:  `unknown ruleset "strict"`,
		},
		{
			name:     "missing path",
			opts:     func(o *lint.Options) {},
			paths:    []string{"src/Missing.jsx"},
			wantCode: jsxerrors.CodeInvalidInput,
			wantErr:  "src/Missing.jsx",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := newTestRunner(t, map[string]string{"src/App.jsx": appSource})
			opts := defaultOptions()
			tt.opts(&opts)

			err := r.Run(t.Context(), opts, tt.paths)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, tt.wantCode, jsxerrors.CodeOf(err))
		})
	}
}

func TestRunner_Run_Cache(t *testing.T) {
	t.Parallel()

	r := newTestRunner(t, map[string]string{
		"src/App.jsx":  appSource,
		"src/List.jsx": "const l = <ul className=\"list\" />;\n",
	})

	opts := defaultOptions()
	opts.Cache = true
	opts.CacheLocation = filepath.Join(t.TempDir(), "cache.db")
	paths := []string{"src/App.jsx", "src/List.jsx"}

	require.NoError(t, r.Run(t.Context(), opts, paths))
	first := r.stdout.String()
	assert.NotContains(t, r.stderr.String(), "unchanged since the last run")

	r.stdout.Reset()
	r.stderr.Reset()
	require.NoError(t, r.Run(t.Context(), opts, paths))
	assert.Equal(t, first, r.stdout.String(), "cached results render the same")
	assert.Contains(t, r.stderr.String(), "2 of 2 file(s) unchanged since the last run")

	require.NoError(t, r.fs.WriteFile("src/App.jsx", []byte(`const a = <div className="foo" />;`), 0o644))
	r.stdout.Reset()
	r.stderr.Reset()
	require.NoError(t, r.Run(t.Context(), opts, paths))
	assert.Empty(t, r.stdout.String(), "the changed file is linted again")
	assert.Contains(t, r.stderr.String(), "1 of 2 file(s) unchanged since the last run")
}

func TestRunner_Run_Directory(t *testing.T) {
	t.Parallel()

	r := newTestRunner(t, map[string]string{
		"project/src/App.jsx":                 appSource,
		"project/node_modules/inferno/dom.js": brokenSource,
		"project/README.md":                   "# readme",
	})

	opts := defaultOptions()
	opts.Format = "json"
	require.NoError(t, r.Run(t.Context(), opts, []string{"project"}))

	assert.Contains(t, r.stderr.String(), "Linting 1 file(s)")
	assert.Contains(t, r.stdout.String(), "jsx-props-class-name")
	assert.NotContains(t, r.stdout.String(), "void-dom-elements-no-children")
}
