package customrules

import (
	"sync"

	"github.com/speakeasy-api/jsxlint/jsx"
	jsxLinter "github.com/speakeasy-api/jsxlint/jsx/linter"
	baseLinter "github.com/speakeasy-api/jsxlint/linter"
)

// defaultConfig holds programmatic options for the loader.
// Access is protected by defaultConfigMu.
var (
	defaultConfig   *Config
	defaultConfigMu sync.RWMutex
)

// init registers the custom rule loader with the JSX linter.
// This is called automatically when the package is imported.
func init() {
	jsxLinter.RegisterCustomRuleLoader(loadCustomRules)
}

// loadCustomRules is the registered loader function called by the JSX linter.
// Each call creates a new loader so linters built in parallel share no runtimes.
func loadCustomRules(config *baseLinter.CustomRulesConfig) ([]baseLinter.RuleRunner[*jsx.Document], error) {
	if config == nil || len(config.Paths) == 0 {
		return nil, nil
	}

	defaultConfigMu.RLock()
	cfg := defaultConfig
	defaultConfigMu.RUnlock()

	return NewLoader(cfg).LoadRules(config)
}

// SetDefaultConfig sets the default config for the loader.
// This allows customizing the loader with programmatic options (like Logger).
// Call this before creating any linters to take effect.
// This function is thread-safe.
func SetDefaultConfig(config *Config) {
	defaultConfigMu.Lock()
	defaultConfig = config
	defaultConfigMu.Unlock()
}
