package customrules

import (
	_ "embed"
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/go-sourcemap/sourcemap"
	"github.com/speakeasy-api/jsxlint/jsx"
	baseLinter "github.com/speakeasy-api/jsxlint/linter"
	"github.com/speakeasy-api/jsxlint/system"
)

// TypesModule is the import path rules use for the Rule base class and host helpers.
const TypesModule = "@speakeasy-api/jsxlint-types"

// typesShim is the JavaScript module TypesModule resolves to.
//
//go:embed shim/types-shim.js
var typesShim string

// ruleExtensions are the rule file extensions the loader accepts, with their esbuild loader.
var ruleExtensions = map[string]api.Loader{
	".ts": api.LoaderTS,
	".js": api.LoaderJS,
}

// Loader loads custom rules from TypeScript/JavaScript files.
type Loader struct {
	config *Config
	logger Logger
	fs     *system.FileSystem

	// Cache of transpiled code and source maps
	transpiledCache map[string]*TranspiledRule
}

// TranspiledRule holds transpiled JavaScript code and its source map.
type TranspiledRule struct {
	SourceFile string
	Code       string
	SourceMap  *sourcemap.Consumer
}

// NewLoader creates a new custom rule loader.
func NewLoader(config *Config) *Loader {
	return &Loader{
		config:          config,
		logger:          config.GetLogger(),
		fs:              config.GetFS(),
		transpiledCache: make(map[string]*TranspiledRule),
	}
}

// LoadRules loads all custom rules from the configured paths.
func (l *Loader) LoadRules(baseConfig *baseLinter.CustomRulesConfig) ([]baseLinter.RuleRunner[*jsx.Document], error) {
	if baseConfig == nil || len(baseConfig.Paths) == 0 {
		return nil, nil
	}

	config := l.mergeConfig(baseConfig)

	files, err := l.resolveFiles(config.Paths)
	if err != nil {
		return nil, ErrLoad.Wrapf("resolving rule files: %w", err)
	}

	if len(files) == 0 {
		return nil, nil
	}

	transpiled, err := l.transpileFiles(files)
	if err != nil {
		return nil, ErrLoad.Wrapf("transpiling rules: %w", err)
	}

	rules, err := l.loadRules(transpiled, config)
	if err != nil {
		return nil, ErrLoad.Wrapf("loading rules: %w", err)
	}

	return rules, nil
}

// mergeConfig merges the YAML config with the programmatic one.
func (l *Loader) mergeConfig(base *baseLinter.CustomRulesConfig) *Config {
	config := &Config{
		Paths:   base.Paths,
		Timeout: base.Timeout,
		Logger:  l.logger,
		FS:      l.fs,
	}

	if l.config != nil && l.config.Timeout > 0 {
		config.Timeout = l.config.Timeout
	}

	return config
}

// resolveFiles resolves glob patterns to rule files, in pattern order without duplicates.
func (l *Loader) resolveFiles(patterns []string) ([]string, error) {
	var files []string

	for _, pattern := range patterns {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}

		matches, err := l.fs.Glob(pattern)
		if err != nil {
			return nil, err
		}

		for _, match := range matches {
			if _, ok := ruleExtensions[strings.ToLower(filepath.Ext(match))]; !ok {
				continue
			}
			info, err := l.fs.Stat(match)
			if err != nil {
				return nil, fmt.Errorf("stat %q: %w", match, err)
			}
			if info.IsDir() || slices.Contains(files, match) {
				continue
			}
			files = append(files, match)
		}
	}

	return files, nil
}

// transpileFiles bundles each rule file into a self-contained script.
func (l *Loader) transpileFiles(files []string) ([]*TranspiledRule, error) {
	var transpiled []*TranspiledRule

	for _, file := range files {
		if cached, ok := l.transpiledCache[file]; ok {
			transpiled = append(transpiled, cached)
			continue
		}

		content, err := l.fs.ReadFile(file)
		if err != nil {
			return nil, err
		}

		code, sm, err := l.transpile(string(content), file)
		if err != nil {
			return nil, fmt.Errorf("transpiling %q: %w", file, err)
		}

		tr := &TranspiledRule{
			SourceFile: file,
			Code:       code,
			SourceMap:  sm,
		}
		l.transpiledCache[file] = tr
		transpiled = append(transpiled, tr)
	}

	return transpiled, nil
}

// transpile bundles source with esbuild. TypeScript types are erased and imports of
// TypesModule resolve to the embedded shim.
func (l *Loader) transpile(source, filename string) (string, *sourcemap.Consumer, error) {
	typesPlugin := api.Plugin{
		Name: "jsxlint-types",
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: "^" + regexp.QuoteMeta(TypesModule) + "$"},
				func(args api.OnResolveArgs) (api.OnResolveResult, error) {
					return api.OnResolveResult{
						Path:      args.Path,
						Namespace: "jsxlint-types",
					}, nil
				})

			build.OnLoad(api.OnLoadOptions{Filter: `.*`, Namespace: "jsxlint-types"},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					return api.OnLoadResult{
						Contents: &typesShim,
						Loader:   api.LoaderJS,
					}, nil
				})
		},
	}

	result := api.Build(api.BuildOptions{
		Stdin: &api.StdinOptions{
			Contents:   source,
			Sourcefile: filename,
			Loader:     ruleExtensions[strings.ToLower(filepath.Ext(filename))],
		},
		Bundle:         true,
		Write:          false,
		Target:         api.ES2020,
		Format:         api.FormatIIFE,
		Sourcemap:      api.SourceMapInline,
		SourcesContent: api.SourcesContentInclude,
		TreeShaking:    api.TreeShakingFalse,
		Plugins:        []api.Plugin{typesPlugin},
		LogLevel:       api.LogLevelSilent,
	})

	if len(result.Errors) > 0 {
		var errMsgs []string
		for _, e := range result.Errors {
			if e.Location != nil {
				errMsgs = append(errMsgs, fmt.Sprintf("%s:%d:%d: %s",
					e.Location.File, e.Location.Line, e.Location.Column, e.Text))
			} else {
				errMsgs = append(errMsgs, e.Text)
			}
		}
		return "", nil, fmt.Errorf("esbuild errors:\n%s", strings.Join(errMsgs, "\n"))
	}

	if len(result.OutputFiles) == 0 {
		return "", nil, fmt.Errorf("esbuild produced no output")
	}

	code := string(result.OutputFiles[0].Contents)

	sm, err := ExtractInlineSourceMap(code)
	if err != nil {
		// Runtime errors fall back to bundle positions.
		l.logger.Warn("failed to extract source map from", filename, ":", err)
	}

	return code, sm, nil
}

// loadRules runs each transpiled file in its own runtime and wraps the rules it registers.
func (l *Loader) loadRules(transpiled []*TranspiledRule, config *Config) ([]baseLinter.RuleRunner[*jsx.Document], error) {
	var rules []baseLinter.RuleRunner[*jsx.Document]

	for _, tr := range transpiled {
		rt, err := NewRuntime(config.GetLogger(), config)
		if err != nil {
			return nil, fmt.Errorf("creating runtime for %q: %w", tr.SourceFile, err)
		}

		if _, err := rt.RunScript(tr.SourceFile, tr.Code); err != nil {
			return nil, fmt.Errorf("executing %q: %w", tr.SourceFile, err)
		}

		jsRules := rt.GetRegisteredRules()
		if len(jsRules) == 0 {
			l.logger.Warn("no rules registered in", tr.SourceFile)
			continue
		}

		for _, jsRule := range jsRules {
			rule, err := NewCustomRule(rt, jsRule, tr.SourceFile, tr.SourceMap, config)
			if err != nil {
				return nil, fmt.Errorf("creating rule from %q: %w", tr.SourceFile, err)
			}
			rules = append(rules, rule)
		}
	}

	return rules, nil
}
