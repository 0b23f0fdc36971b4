package rules

import (
	"context"
	"fmt"
	"strings"

	"github.com/speakeasy-api/jsxlint/jsx"
	"github.com/speakeasy-api/jsxlint/jsx/ast"
	"github.com/speakeasy-api/jsxlint/jsx/scope"
	"github.com/speakeasy-api/jsxlint/linter"
	"github.com/speakeasy-api/jsxlint/validation"
)

const RuleVoidDOMElementsNoChildren = "void-dom-elements-no-children"

// voidElements are the DOM elements that cannot have content.
var voidElements = map[string]bool{
	"area":     true,
	"base":     true,
	"br":       true,
	"col":      true,
	"embed":    true,
	"hr":       true,
	"img":      true,
	"input":    true,
	"keygen":   true,
	"link":     true,
	"menuitem": true,
	"meta":     true,
	"param":    true,
	"source":   true,
	"track":    true,
	"wbr":      true,
}

// IsVoidElement reports whether name is a void DOM element.
func IsVoidElement(name string) bool {
	return voidElements[name]
}

const createElement = "createElement"

type VoidDOMElementsNoChildrenRule struct{}

func (r *VoidDOMElementsNoChildrenRule) ID() string       { return RuleVoidDOMElementsNoChildren }
func (r *VoidDOMElementsNoChildrenRule) Category() string { return CategoryBestPractices }
func (r *VoidDOMElementsNoChildrenRule) Description() string {
	return "Void DOM elements such as <img /> and <br /> cannot have content. Passing them children, a children prop or dangerouslySetInnerHTML fails at runtime. Both JSX and createElement calls are checked."
}
func (r *VoidDOMElementsNoChildrenRule) Summary() string {
	return "Disallow children on void DOM elements."
}
func (r *VoidDOMElementsNoChildrenRule) Link() string {
	return docsBaseURL + RuleVoidDOMElementsNoChildren
}
func (r *VoidDOMElementsNoChildrenRule) DefaultSeverity() validation.Severity {
	return validation.SeverityError
}

func (r *VoidDOMElementsNoChildrenRule) Run(ctx context.Context, docInfo *linter.DocumentInfo[*jsx.Document], config *linter.RuleConfig) []error {
	return run(ctx, r, docInfo, config)
}

func voidChildrenMessage(name string) string {
	return fmt.Sprintf("Void DOM element <%s /> cannot receive children.", name)
}

func isChildrenProp(name string) bool {
	return name == "children" || name == "dangerouslySetInnerHTML"
}

func (r *VoidDOMElementsNoChildrenRule) Create(c *Context) Visitors {
	pragma := c.Settings().Pragma

	// isCreateElement reports whether callee is the framework's createElement, either
	// as a member of the pragma or as an identifier bound to it.
	isCreateElement := func(callee ast.Node) bool {
		switch callee := callee.(type) {
		case *ast.MemberExpression:
			name, ok := ast.MemberPropertyName(callee)
			if !ok || name != createElement {
				return false
			}
			object, ok := callee.Object.(*ast.Identifier)
			return ok && isPragmaReference(c, object.Name, pragma)
		case *ast.Identifier:
			binding, ok := c.Resolve(callee.Name)
			if !ok {
				return false
			}
			return isCreateElementBinding(c, binding, pragma)
		}
		return false
	}

	return Visitors{
		ast.KindJSXElement: func(n ast.Node) {
			el, ok := n.(*ast.JSXElement)
			if !ok || el.OpeningElement == nil {
				return
			}
			id, ok := el.OpeningElement.Name.(*ast.JSXIdentifier)
			if !ok || !IsVoidElement(id.Name) {
				return
			}

			if len(el.Children) > 0 {
				c.Report(Descriptor{Node: el, Message: voidChildrenMessage(id.Name)})
				return
			}
			for _, attr := range el.OpeningElement.Attributes {
				a, ok := attr.(*ast.JSXAttribute)
				if !ok {
					continue
				}
				if name, ok := a.Name.(*ast.JSXIdentifier); ok && isChildrenProp(name.Name) {
					c.Report(Descriptor{Node: el, Message: voidChildrenMessage(id.Name)})
					return
				}
			}
		},

		ast.KindCallExpression: func(n ast.Node) {
			call, ok := n.(*ast.CallExpression)
			if !ok || len(call.Arguments) < 2 || !isCreateElement(call.Callee) {
				return
			}
			name, ok := ast.StringValue(call.Arguments[0])
			if !ok || !IsVoidElement(name) {
				return
			}
			props, ok := call.Arguments[1].(*ast.ObjectExpression)
			if !ok {
				return
			}

			if len(call.Arguments) > 2 {
				c.Report(Descriptor{Node: call, Message: voidChildrenMessage(name)})
				return
			}
			for _, p := range props.Properties {
				prop, ok := p.(*ast.Property)
				if !ok {
					continue
				}
				if key, ok := ast.PropertyName(prop.Key, prop.Computed); ok && isChildrenProp(key) {
					c.Report(Descriptor{Node: call, Message: voidChildrenMessage(name)})
					return
				}
			}
		},
	}
}

// isFrameworkModule reports whether an import source belongs to the framework, such as
// "inferno" or "inferno-create-element".
func isFrameworkModule(source string) bool {
	return source == "inferno" || strings.HasPrefix(source, "inferno-")
}

// isPragmaReference reports whether name refers to the framework namespace: an unbound
// global named like the pragma, or a default or namespace import of a framework module
// or bound to the pragma's name.
func isPragmaReference(c *Context, name, pragma string) bool {
	binding, ok := c.Resolve(name)
	if !ok {
		return name == pragma
	}
	if binding.Kind != scope.BindingImport {
		return false
	}
	if binding.ImportedName != "default" && binding.ImportedName != "*" {
		return false
	}
	return isFrameworkModule(binding.ImportSource) || name == pragma
}

// isCreateElementBinding reports whether a binding holds the framework's createElement:
// a named import (possibly aliased) or a value destructured from the pragma.
func isCreateElementBinding(c *Context, b *scope.Binding, pragma string) bool {
	switch b.Kind {
	case scope.BindingImport:
		return isFrameworkModule(b.ImportSource) && b.ImportedName == createElement
	case scope.BindingVar, scope.BindingLet, scope.BindingConst:
		if b.PatternKey != createElement {
			return false
		}
		id, ok := b.Init.(*ast.Identifier)
		return ok && isPragmaReference(c, id.Name, pragma)
	}
	return false
}

func (r *VoidDOMElementsNoChildrenRule) GoodExample() string {
	return `<div>Children</div>;
<img alt="" />;
Inferno.createElement("img", {});`
}

func (r *VoidDOMElementsNoChildrenRule) BadExample() string {
	return `<br>Children</br>;
<img children="Children" />;
Inferno.createElement("img", {}, "Children");`
}

func (r *VoidDOMElementsNoChildrenRule) Rationale() string {
	return "Void elements cannot render content, so children passed to them are an error."
}
