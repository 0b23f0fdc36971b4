// Package rules contains the built-in JSX lint rules.
//
// Every rule is written as a visitor: Create returns callbacks keyed by node kind, the
// shared run function walks the program once and dispatches each node to the matching
// callback, and findings are collected through Context.Report.
package rules

import (
	"context"
	"errors"
	"fmt"

	"github.com/speakeasy-api/jsxlint/jsx"
	"github.com/speakeasy-api/jsxlint/jsx/ast"
	"github.com/speakeasy-api/jsxlint/jsx/scope"
	"github.com/speakeasy-api/jsxlint/linter"
	"github.com/speakeasy-api/jsxlint/validation"
)

// Visitors maps node kinds to the callbacks invoked for them. Kinds without a callback
// are skipped.
type Visitors map[ast.Kind]func(ast.Node)

// Descriptor is a single report made by a rule.
type Descriptor struct {
	Node    ast.Node
	Message string
	// Fix optionally builds the replacement that corrects the report.
	Fix func(*Fixer) *validation.TextEdit
	// FixDescription is shown when the fix is confirmed interactively.
	FixDescription string
}

// Fixer builds text edits against the document being linted.
type Fixer struct {
	doc *jsx.Document
}

// ReplaceText replaces the source of n with text.
func (f *Fixer) ReplaceText(n ast.Node, text string) *validation.TextEdit {
	if n == nil {
		return nil
	}
	return &validation.TextEdit{Start: n.Pos(), End: n.End(), NewText: text}
}

// ReplaceRange replaces the bytes in [start, end) with text.
func (f *Fixer) ReplaceRange(start, end int, text string) *validation.TextEdit {
	if start < 0 || end > len(f.doc.Source) || start > end {
		return nil
	}
	return &validation.TextEdit{Start: start, End: end, NewText: text}
}

// Context is handed to a rule's Create function. It is created for a single document
// and a single rule.
type Context struct {
	id        string
	doc       *jsx.Document
	config    *linter.RuleConfig
	settings  jsx.Settings
	ancestors []ast.Node
	reports   []Descriptor
}

func newContext(id string, doc *jsx.Document, config *linter.RuleConfig) *Context {
	c := &Context{id: id, doc: doc, config: config, settings: doc.Settings}
	if config != nil && len(config.Settings) > 0 {
		if s, err := jsx.SettingsFromMap(config.Settings); err == nil {
			c.settings = s
		}
	}
	return c
}

// ID returns the id of the rule being run.
func (c *Context) ID() string { return c.id }

// Options returns the rule's configured options.
func (c *Context) Options() []any {
	if c.config == nil {
		return nil
	}
	return c.config.Options
}

// StringOption returns option i when it is a string, otherwise def.
func (c *Context) StringOption(i int, def string) string {
	opts := c.Options()
	if i < 0 || i >= len(opts) {
		return def
	}
	if s, ok := opts[i].(string); ok && s != "" {
		return s
	}
	return def
}

// ObjectOption returns option i when it is an object, otherwise nil.
func (c *Context) ObjectOption(i int) map[string]any {
	opts := c.Options()
	if i < 0 || i >= len(opts) {
		return nil
	}
	switch o := opts[i].(type) {
	case map[string]any:
		return o
	case map[any]any:
		m := make(map[string]any, len(o))
		for k, v := range o {
			m[fmt.Sprint(k)] = v
		}
		return m
	}
	return nil
}

// Settings returns the shared settings, such as the framework pragma.
func (c *Context) Settings() jsx.Settings { return c.settings }

// Document returns the document being linted.
func (c *Context) Document() *jsx.Document { return c.doc }

// Source returns the full source of the document.
func (c *Context) Source() []byte { return c.doc.Source }

// Text returns the source text of n.
func (c *Context) Text(n ast.Node) string { return c.doc.Text(n) }

// Ancestors returns the nodes enclosing the node being visited, outermost first. The
// slice is only valid for the duration of the callback.
func (c *Context) Ancestors() []ast.Node { return c.ancestors }

// Parent returns the direct parent of the node being visited.
func (c *Context) Parent() ast.Node {
	if len(c.ancestors) == 0 {
		return nil
	}
	return c.ancestors[len(c.ancestors)-1]
}

// Resolve looks up the binding name refers to from the node being visited.
func (c *Context) Resolve(name string) (*scope.Binding, bool) {
	return c.doc.Scope.Lookup(name, c.ancestors)
}

// Report records a finding.
func (c *Context) Report(d Descriptor) {
	if d.Node == nil {
		return
	}
	c.reports = append(c.reports, d)
}

// visitorRule is implemented by every rule in this package.
type visitorRule interface {
	linter.Rule
	Create(c *Context) Visitors
}

// run walks the document once with the visitors of rule and converts its reports into
// validation errors.
func run(ctx context.Context, rule visitorRule, docInfo *linter.DocumentInfo[*jsx.Document], config *linter.RuleConfig) []error {
	if docInfo == nil || docInfo.Document == nil || docInfo.Document.Program == nil {
		return nil
	}
	doc := docInfo.Document

	c := newContext(rule.ID(), doc, config)
	visitors := rule.Create(c)
	if len(visitors) == 0 {
		return nil
	}

	for item := range ast.Walk(ctx, doc.Program) {
		visit, ok := visitors[item.Node.Kind()]
		if !ok {
			continue
		}
		c.ancestors = item.Ancestors
		visit(item.Node)
	}
	c.ancestors = nil

	if ctx.Err() != nil {
		return nil
	}

	severity := config.GetSeverity(rule.DefaultSeverity())
	errs := make([]error, 0, len(c.reports))
	for _, d := range c.reports {
		vErr := validation.NewValidationError(severity, rule.ID(), errors.New(d.Message), doc.NodeLocation(d.Node))
		vErr.NodeType = d.Node.Kind().String()
		if d.Fix != nil {
			vErr.Fix = buildFix(doc, d)
		}
		errs = append(errs, vErr)
	}
	return errs
}

func buildFix(doc *jsx.Document, d Descriptor) validation.Fix {
	edit := d.Fix(&Fixer{doc: doc})
	if edit == nil || edit.Start < 0 || edit.End > len(doc.Source) || edit.Start > edit.End {
		return nil
	}
	desc := d.FixDescription
	if desc == "" {
		desc = d.Message
	}
	return &validation.ReplaceFix{
		Desc:   desc,
		Edit:   *edit,
		Before: string(doc.Source[edit.Start:edit.End]),
	}
}
