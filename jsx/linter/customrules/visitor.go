package customrules

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dop251/goja"
	"github.com/speakeasy-api/jsxlint/jsx"
	"github.com/speakeasy-api/jsxlint/jsx/ast"
	"github.com/speakeasy-api/jsxlint/linter"
	"github.com/speakeasy-api/jsxlint/validation"
)

const exitSuffix = ":exit"

// runVisitors calls rule.create(context) and dispatches every node of the program to the
// returned visitor functions. Keys name an ESTree node type; a ":exit" suffix runs the
// function after the node's children were visited.
func (r *CustomRule) runVisitors(ctx context.Context, doc *jsx.Document, index *estreeIndex, settings map[string]any, config *linter.RuleConfig) []error {
	rc := &ruleContext{
		rule:     r,
		doc:      doc,
		index:    index,
		config:   config,
		Options:  (&ruleConfigHelper{config: config}).GetOptions(),
		Settings: settings,
		Filename: doc.Location,
	}

	visitorsVal, err := r.runtime.CallMethod(r.jsRule, "create", r.runtime.ToValue(rc))
	if err != nil {
		return r.handleError(err)
	}

	enter, exit, err := r.visitorFuncs(visitorsVal)
	if err != nil {
		return []error{err}
	}

	call := func(fn goja.Callable, n ast.Node) error {
		_, err := fn(goja.Undefined(), r.runtime.ToValue(index.get(n)))
		return err
	}

	var open []ast.Node
	leave := func(depth int) error {
		for len(open) > depth {
			n := open[len(open)-1]
			open = open[:len(open)-1]
			rc.ancestors = open
			if fn, ok := exit[n.Kind().String()]; ok {
				if err := call(fn, n); err != nil {
					return err
				}
			}
		}
		return nil
	}

	for item := range ast.Walk(ctx, doc.Program) {
		// Nodes arrive in pre-order, so the ancestors are a prefix of the open path.
		if err := leave(len(item.Ancestors)); err != nil {
			return r.handleError(err)
		}

		rc.ancestors = item.Ancestors
		if fn, ok := enter[item.Node.Kind().String()]; ok {
			if err := call(fn, item.Node); err != nil {
				return r.handleError(err)
			}
		}
		open = append(open, item.Node)
	}
	if err := ctx.Err(); err != nil {
		return nil
	}
	if err := leave(0); err != nil {
		return r.handleError(err)
	}

	return rc.reports
}

// visitorFuncs splits the object returned by create() into enter and exit handlers.
func (r *CustomRule) visitorFuncs(v goja.Value) (map[string]goja.Callable, map[string]goja.Callable, error) {
	enter := make(map[string]goja.Callable)
	exit := make(map[string]goja.Callable)
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return enter, exit, nil
	}

	obj := v.ToObject(r.runtime.vm)
	for _, key := range obj.Keys() {
		fn, ok := goja.AssertFunction(obj.Get(key))
		if !ok {
			return nil, nil, fmt.Errorf("rule %s: visitor %q is not a function", r.id, key)
		}
		if name, found := strings.CutSuffix(key, exitSuffix); found {
			exit[name] = fn
		} else {
			enter[key] = fn
		}
	}
	return enter, exit, nil
}

// ruleContext is the context argument of create(). Exported fields and methods are
// visible to JavaScript with a lowercase first letter.
type ruleContext struct {
	Options  []any
	Settings map[string]any
	Filename string

	rule      *CustomRule
	doc       *jsx.Document
	index     *estreeIndex
	config    *linter.RuleConfig
	ancestors []ast.Node
	reports   []error
}

// GetAncestors returns the ancestors of the node being visited, outermost first.
func (c *ruleContext) GetAncestors() []any {
	out := make([]any, len(c.ancestors))
	for i, n := range c.ancestors {
		out[i] = c.index.get(n)
	}
	return out
}

// GetText returns the source text of node, or the whole source without an argument.
func (c *ruleContext) GetText(node ...goja.Value) string {
	if len(node) == 0 || goja.IsUndefined(node[0]) {
		return string(c.doc.Source)
	}
	start, end, ok := nodeRange(exportNode(node[0]))
	if !ok || start < 0 || end > len(c.doc.Source) || start > end {
		panic(c.rule.runtime.vm.NewTypeError("getText: node has no valid range"))
	}
	return string(c.doc.Source[start:end])
}

// Report records a finding. The descriptor is { node, message, data?, fix? } where fix
// is called with a fixer and returns an edit or an array of edits.
func (c *ruleContext) Report(descriptor goja.Value) {
	vm := c.rule.runtime.vm
	if descriptor == nil || goja.IsUndefined(descriptor) || goja.IsNull(descriptor) {
		panic(vm.NewTypeError("report requires a descriptor"))
	}
	obj := descriptor.ToObject(vm)

	node := exportNode(obj.Get("node"))
	if node == nil {
		panic(vm.NewTypeError("report: node is required"))
	}
	messageVal := obj.Get("message")
	if messageVal == nil || goja.IsUndefined(messageVal) {
		panic(vm.NewTypeError("report: message is required"))
	}
	message := interpolate(messageVal.String(), obj.Get("data"))

	vErr := validation.NewValidationError(
		c.config.GetSeverity(c.rule.severity),
		c.rule.id,
		errors.New(message),
		nodeLocation(c.doc, node),
	)
	vErr.NodeType = nodeType(node)

	if fixVal := obj.Get("fix"); fixVal != nil && !goja.IsUndefined(fixVal) && !goja.IsNull(fixVal) {
		fix, err := c.buildFix(fixVal, message)
		if err != nil {
			panic(vm.NewTypeError(err.Error()))
		}
		if fix != nil {
			vErr.Fix = fix
		}
	}

	c.reports = append(c.reports, vErr)
}

func (c *ruleContext) buildFix(fixVal goja.Value, message string) (*JSFix, error) {
	rt := c.rule.runtime
	fn, ok := goja.AssertFunction(fixVal)
	if !ok {
		return nil, errors.New("report: fix must be a function")
	}
	result, err := fn(goja.Undefined(), rt.ToValue(&fixer{rt: rt}))
	if err != nil {
		return nil, err
	}
	if result == nil || goja.IsUndefined(result) || goja.IsNull(result) {
		return nil, nil
	}
	edits, err := parseEdits(result.Export())
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	if len(edits) == 0 {
		return nil, nil
	}
	return &JSFix{description: message, edits: edits}, nil
}

var placeholder = regexp.MustCompile(`\{\{\s*([^{}\s]+)\s*\}\}`)

// interpolate replaces {{ name }} placeholders with entries of data. Unknown names are
// left as written.
func interpolate(message string, data goja.Value) string {
	if data == nil || goja.IsUndefined(data) || goja.IsNull(data) {
		return message
	}
	values, ok := data.Export().(map[string]any)
	if !ok {
		return message
	}
	return placeholder.ReplaceAllStringFunc(message, func(m string) string {
		key := placeholder.FindStringSubmatch(m)[1]
		v, ok := values[key]
		if !ok {
			return m
		}
		return fmt.Sprint(v)
	})
}
