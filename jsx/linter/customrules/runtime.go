package customrules

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dop251/goja"
	"github.com/speakeasy-api/jsxlint/jsx"
	"github.com/speakeasy-api/jsxlint/validation"
)

// Runtime wraps a goja JavaScript runtime with custom rule support.
//
// A goja runtime must only be used by one goroutine at a time. Rules loaded from the
// same file share a Runtime, so every entry point that executes JavaScript holds mu.
type Runtime struct {
	mu     sync.Mutex
	vm     *goja.Runtime
	logger Logger
	config *Config

	// doc is the document being linted while a rule runs
	doc *jsx.Document

	// registeredRules holds rules registered via registerRule()
	registeredRules []goja.Value
}

// NewRuntime creates a new JavaScript runtime configured for custom rules.
func NewRuntime(logger Logger, config *Config) (*Runtime, error) {
	vm := goja.New()

	// Expose Go fields and methods with their first letter lowercased
	vm.SetFieldNameMapper(goja.UncapFieldNameMapper())

	if logger == nil {
		logger = config.GetLogger()
	}

	rt := &Runtime{
		vm:     vm,
		logger: logger,
		config: config,
	}

	if err := rt.setupConsole(); err != nil {
		return nil, fmt.Errorf("setting up console: %w", err)
	}

	if err := rt.setupGlobals(); err != nil {
		return nil, fmt.Errorf("setting up globals: %w", err)
	}

	return rt, nil
}

// setupConsole creates the console object with log, warn, error methods.
func (rt *Runtime) setupConsole() error {
	console := rt.vm.NewObject()

	for name, log := range map[string]func(...any){
		"log":   rt.logger.Log,
		"info":  rt.logger.Log,
		"debug": rt.logger.Log,
		"warn":  rt.logger.Warn,
		"error": rt.logger.Error,
	} {
		if err := console.Set(name, func(call goja.FunctionCall) goja.Value {
			log(rt.formatArgs(call.Arguments)...)
			return goja.Undefined()
		}); err != nil {
			return err
		}
	}

	return rt.vm.Set("console", console)
}

// formatArgs converts goja values to Go values for logging.
func (rt *Runtime) formatArgs(args []goja.Value) []any {
	result := make([]any, len(args))
	for i, arg := range args {
		result[i] = arg.Export()
	}
	return result
}

// setupGlobals sets up global functions available to custom rules.
func (rt *Runtime) setupGlobals() error {
	// registerRule(rule) - registers a rule class instance
	if err := rt.vm.Set("registerRule", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			panic(rt.vm.NewTypeError("registerRule requires a rule argument"))
		}
		rt.registeredRules = append(rt.registeredRules, call.Arguments[0])
		return goja.Undefined()
	}); err != nil {
		return err
	}

	// createValidationError(severity, ruleId, message, node) - creates a validation error
	if err := rt.vm.Set("createValidationError", rt.createValidationError); err != nil {
		return err
	}

	// createFix({description, edits}) - creates a fix for attaching to validation errors
	if err := rt.vm.Set("createFix", rt.createFix); err != nil {
		return err
	}

	// createValidationErrorWithFix(severity, ruleId, message, node, fix)
	if err := rt.vm.Set("createValidationErrorWithFix", rt.createValidationErrorWithFix); err != nil {
		return err
	}

	return nil
}

// createValidationError is the JS-callable function for creating validation errors.
func (rt *Runtime) createValidationError(call goja.FunctionCall) goja.Value {
	if len(call.Arguments) < 4 {
		panic(rt.vm.NewTypeError("createValidationError requires 4 arguments: severity, ruleId, message, node"))
	}
	return rt.vm.ToValue(rt.newValidationError(call.Arguments))
}

// createFix is the JS-callable function for creating a fix object.
func (rt *Runtime) createFix(call goja.FunctionCall) goja.Value {
	if len(call.Arguments) < 1 {
		panic(rt.vm.NewTypeError("createFix requires an options argument"))
	}

	fix, err := newJSFix(rt, call.Arguments[0])
	if err != nil {
		panic(rt.vm.NewTypeError(err.Error()))
	}

	return rt.vm.ToValue(fix)
}

// createValidationErrorWithFix is the JS-callable function for creating validation errors with fixes.
func (rt *Runtime) createValidationErrorWithFix(call goja.FunctionCall) goja.Value {
	if len(call.Arguments) < 5 {
		panic(rt.vm.NewTypeError("createValidationErrorWithFix requires 5 arguments: severity, ruleId, message, node, fix"))
	}

	vErr := rt.newValidationError(call.Arguments)
	if fix, ok := call.Arguments[4].Export().(validation.Fix); ok {
		vErr.Fix = fix
	}
	return rt.vm.ToValue(vErr)
}

func (rt *Runtime) newValidationError(args []goja.Value) *validation.Error {
	node := exportNode(args[3])

	vErr := validation.NewValidationError(
		parseSeverity(args[0].String()),
		args[1].String(),
		errors.New(args[2].String()),
		nodeLocation(rt.doc, node),
	)
	vErr.NodeType = nodeType(node)
	return vErr
}

// parseSeverity converts a string to validation.Severity.
func parseSeverity(s string) validation.Severity {
	switch s {
	case "error":
		return validation.SeverityError
	case "warning":
		return validation.SeverityWarning
	case "hint":
		return validation.SeverityHint
	default:
		return validation.SeverityError
	}
}

// RunScript executes JavaScript code in the runtime.
func (rt *Runtime) RunScript(name, code string) (goja.Value, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.vm.RunScript(name, code)
}

// GetRegisteredRules returns all rules registered via registerRule().
func (rt *Runtime) GetRegisteredRules() []goja.Value {
	return rt.registeredRules
}

// ClearRegisteredRules clears the registered rules list.
func (rt *Runtime) ClearRegisteredRules() {
	rt.registeredRules = nil
}

// ToValue converts a Go value to a goja value.
func (rt *Runtime) ToValue(v any) goja.Value {
	return rt.vm.ToValue(v)
}

// Interrupt interrupts the currently running JavaScript.
// This is used for timeout handling.
func (rt *Runtime) Interrupt(reason string) {
	rt.vm.Interrupt(reason)
}

// ClearInterrupt clears any pending interrupt.
func (rt *Runtime) ClearInterrupt() {
	rt.vm.ClearInterrupt()
}

// CallMethod calls a method on a JavaScript object.
func (rt *Runtime) CallMethod(obj goja.Value, method string, args ...goja.Value) (goja.Value, error) {
	fn, err := rt.method(obj, method)
	if err != nil {
		return nil, err
	}
	return fn(obj, args...)
}

// HasMethod reports whether obj has a callable property named method.
func (rt *Runtime) HasMethod(obj goja.Value, method string) bool {
	_, err := rt.method(obj, method)
	return err == nil
}

func (rt *Runtime) method(obj goja.Value, method string) (goja.Callable, error) {
	if obj == nil || goja.IsUndefined(obj) || goja.IsNull(obj) {
		return nil, errors.New("object is nil")
	}
	objVal := obj.ToObject(rt.vm)

	methodVal := objVal.Get(method)
	if methodVal == nil || goja.IsUndefined(methodVal) {
		return nil, fmt.Errorf("method %s not found", method)
	}

	callable, ok := goja.AssertFunction(methodVal)
	if !ok {
		return nil, fmt.Errorf("%s is not a function", method)
	}
	return callable, nil
}

// BridgedContext wraps a Go context for JavaScript access.
type BridgedContext struct {
	ctx context.Context
}

// NewBridgedContext creates a JavaScript-accessible context wrapper.
func NewBridgedContext(ctx context.Context) *BridgedContext {
	return &BridgedContext{ctx: ctx}
}

// IsCancelled returns true if the context has been cancelled.
func (bc *BridgedContext) IsCancelled() bool {
	return bc.ctx.Err() != nil
}

// Deadline returns the deadline in milliseconds since epoch, or undefined if no deadline.
func (bc *BridgedContext) Deadline() any {
	deadline, ok := bc.ctx.Deadline()
	if !ok {
		return nil
	}
	return deadline.UnixMilli()
}
