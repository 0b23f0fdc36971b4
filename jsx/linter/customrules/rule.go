package customrules

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/dop251/goja"
	"github.com/go-sourcemap/sourcemap"
	"github.com/speakeasy-api/jsxlint/jsx"
	"github.com/speakeasy-api/jsxlint/linter"
	"github.com/speakeasy-api/jsxlint/validation"
)

// CustomRule wraps a JavaScript rule object and implements RuleRunner.
//
// A rule either defines create(context), returning visitor functions keyed by ESTree
// node type, or run(ctx, docInfo, config), returning an array of validation errors.
type CustomRule struct {
	runtime    *Runtime
	jsRule     goja.Value
	sourceFile string
	sourceMap  *sourcemap.Consumer
	config     *Config

	// Cached metadata from JS
	id          string
	category    string
	description string
	summary     string
	link        string
	severity    validation.Severity
	visitor     bool
}

var _ linter.RuleRunner[*jsx.Document] = (*CustomRule)(nil)

// NewCustomRule creates a new CustomRule from a JavaScript rule object.
func NewCustomRule(rt *Runtime, jsRule goja.Value, sourceFile string, sm *sourcemap.Consumer, config *Config) (*CustomRule, error) {
	rule := &CustomRule{
		runtime:    rt,
		jsRule:     jsRule,
		sourceFile: sourceFile,
		sourceMap:  sm,
		config:     config,
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()

	if err := rule.extractMetadata(); err != nil {
		return nil, err
	}

	return rule, nil
}

// extractMetadata calls JS methods to extract rule metadata.
func (r *CustomRule) extractMetadata() error {
	id, err := r.callStringMethod("id")
	if err != nil {
		return fmt.Errorf("getting rule id: %w", err)
	}
	if id == "" {
		return errors.New("rule id() returned empty string")
	}
	r.id = id

	if r.category, err = r.callStringMethod("category"); err != nil {
		return fmt.Errorf("rule %s: getting category: %w", id, err)
	}
	if r.description, err = r.callStringMethod("description"); err != nil {
		return fmt.Errorf("rule %s: getting description: %w", id, err)
	}
	if r.summary, err = r.callStringMethod("summary"); err != nil {
		return fmt.Errorf("rule %s: getting summary: %w", id, err)
	}

	// Optional
	r.link, _ = r.callStringMethod("link")

	severityStr, _ := r.callStringMethod("defaultSeverity")
	r.severity = validation.SeverityWarning
	if severityStr != "" {
		r.severity = parseSeverity(severityStr)
	}

	switch {
	case r.runtime.HasMethod(r.jsRule, "create"):
		r.visitor = true
	case r.runtime.HasMethod(r.jsRule, "run"):
	default:
		return fmt.Errorf("rule %s: must define create() or run()", id)
	}

	return nil
}

// callStringMethod calls a method on the JS rule that returns a string.
func (r *CustomRule) callStringMethod(method string) (string, error) {
	result, err := r.runtime.CallMethod(r.jsRule, method)
	if err != nil {
		return "", err
	}
	if result == nil || goja.IsUndefined(result) || goja.IsNull(result) {
		return "", nil
	}
	return result.String(), nil
}

// RuleRunner interface implementation

func (r *CustomRule) ID() string                           { return r.id }
func (r *CustomRule) Category() string                     { return r.category }
func (r *CustomRule) Description() string                  { return r.description }
func (r *CustomRule) Summary() string                      { return r.summary }
func (r *CustomRule) Link() string                         { return r.link }
func (r *CustomRule) DefaultSeverity() validation.Severity { return r.severity }

// SourceFile returns the file the rule was loaded from.
func (r *CustomRule) SourceFile() string { return r.sourceFile }

// Run executes the JavaScript rule against the document.
func (r *CustomRule) Run(ctx context.Context, docInfo *linter.DocumentInfo[*jsx.Document], config *linter.RuleConfig) []error {
	doc := docInfo.Document
	if doc == nil || doc.Program == nil {
		return nil
	}

	r.runtime.mu.Lock()
	defer r.runtime.mu.Unlock()

	timeout := r.config.GetTimeout()
	timer := time.AfterFunc(timeout, func() {
		r.runtime.Interrupt(fmt.Sprintf("rule %s: execution timeout exceeded (%v)", r.id, timeout))
	})
	defer func() {
		timer.Stop()
		r.runtime.ClearInterrupt()
	}()

	r.runtime.doc = doc
	defer func() { r.runtime.doc = nil }()

	index := newESTreeIndex(doc)
	settings := mergedSettings(doc.Settings, config)

	if r.visitor {
		return r.runVisitors(ctx, doc, index, settings, config)
	}
	return r.runOnce(ctx, docInfo, index, settings, config)
}

// runOnce calls rule.run(ctx, docInfo, config) and collects the returned errors.
func (r *CustomRule) runOnce(ctx context.Context, docInfo *linter.DocumentInfo[*jsx.Document], index *estreeIndex, settings map[string]any, config *linter.RuleConfig) []error {
	jsDocInfo := &documentInfo{
		Location: docInfo.Location,
		Source:   string(docInfo.Document.Source),
		Ast:      index.root,
		Settings: settings,
	}

	result, err := r.runtime.CallMethod(
		r.jsRule,
		"run",
		r.runtime.ToValue(NewBridgedContext(ctx)),
		r.runtime.ToValue(jsDocInfo),
		r.runtime.ToValue(&ruleConfigHelper{config: config}),
	)
	if err != nil {
		return r.handleError(err)
	}

	return r.convertErrors(result, config)
}

// handleError handles errors from JS execution.
func (r *CustomRule) handleError(err error) []error {
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		return []error{fmt.Errorf("rule %s: %w", r.id, ErrTimeout.Wrapf("limit %v", r.config.GetTimeout()))}
	}

	var exc *goja.Exception
	if errors.As(err, &exc) {
		return []error{fmt.Errorf("rule %s: %w", r.id, MapException(exc, r.sourceFile, r.sourceMap))}
	}

	return []error{fmt.Errorf("rule %s: %w", r.id, err)}
}

// convertErrors converts the JS result array to Go errors. Findings take the configured
// severity when one is set.
func (r *CustomRule) convertErrors(result goja.Value, config *linter.RuleConfig) []error {
	if result == nil || goja.IsUndefined(result) || goja.IsNull(result) {
		return nil
	}

	arr, ok := result.Export().([]any)
	if !ok {
		return []error{fmt.Errorf("rule %s: run must return an array, got %s", r.id, result.ExportType())}
	}

	var errs []error
	for _, item := range arr {
		switch v := item.(type) {
		case *validation.Error:
			if config != nil && config.Severity != nil {
				v.Severity = *config.Severity
			}
			errs = append(errs, v)
		case error:
			errs = append(errs, v)
		}
	}

	return errs
}

// mergedSettings returns the shared settings as a plain map with the document's
// resolved pragma and factory names.
func mergedSettings(docSettings jsx.Settings, config *linter.RuleConfig) map[string]any {
	settings := map[string]any{}
	if config != nil {
		maps.Copy(settings, config.Settings)
	}
	settings["pragma"] = docSettings.Pragma
	settings["createClass"] = docSettings.CreateClass
	return settings
}

// documentInfo is the docInfo argument of run().
type documentInfo struct {
	Location string
	Source   string
	Ast      map[string]any
	Settings map[string]any
}

// ruleConfigHelper provides JS-friendly access to RuleConfig.
type ruleConfigHelper struct {
	config *linter.RuleConfig
}

// GetSeverity returns the effective severity as a string.
func (h *ruleConfigHelper) GetSeverity(defaultSeverity string) string {
	defSev := parseSeverity(defaultSeverity)
	if h.config == nil {
		return string(defSev)
	}
	return string(h.config.GetSeverity(defSev))
}

// GetOptions returns the configured rule options.
func (h *ruleConfigHelper) GetOptions() []any {
	if h.config == nil || h.config.Options == nil {
		return []any{}
	}
	return h.config.Options
}
