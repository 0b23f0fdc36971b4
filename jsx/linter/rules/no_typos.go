package rules

import (
	"context"
	"strings"

	"github.com/speakeasy-api/jsxlint/jsx"
	"github.com/speakeasy-api/jsxlint/jsx/ast"
	"github.com/speakeasy-api/jsxlint/jsx/scope"
	"github.com/speakeasy-api/jsxlint/linter"
	"github.com/speakeasy-api/jsxlint/validation"
)

const RuleNoTypos = "no-typos"

const (
	staticPropertyTypoMessage = "Typo in static class property declaration"
	lifecycleTypoMessage      = "Typo in component lifecycle method declaration"
)

// staticProperties and lifecycleMethods map lowercased names to their correct spelling.
var (
	staticProperties = caseDictionary(
		"propTypes",
		"contextTypes",
		"childContextTypes",
		"defaultProps",
	)
	lifecycleMethods = caseDictionary(
		"getDerivedStateFromProps",
		"componentWillMount",
		"UNSAFE_componentWillMount",
		"componentDidMount",
		"componentWillReceiveProps",
		"UNSAFE_componentWillReceiveProps",
		"shouldComponentUpdate",
		"componentWillUpdate",
		"UNSAFE_componentWillUpdate",
		"getSnapshotBeforeUpdate",
		"componentDidUpdate",
		"componentDidCatch",
		"componentWillUnmount",
		"render",
	)
)

func caseDictionary(names ...string) map[string]string {
	m := make(map[string]string, len(names))
	for _, name := range names {
		m[strings.ToLower(name)] = name
	}
	return m
}

// isTypo reports whether name differs from a dictionary entry only by case.
func isTypo(dict map[string]string, name string) bool {
	want, ok := dict[strings.ToLower(name)]
	return ok && want != name
}

type NoTyposRule struct{}

func (r *NoTyposRule) ID() string       { return RuleNoTypos }
func (r *NoTyposRule) Category() string { return CategoryPossibleErrors }
func (r *NoTyposRule) Description() string {
	return "Static properties and lifecycle methods are looked up by exact name. A component with a static PropTypes or a componentdidmount method compiles fine and is silently ignored by the framework. Computed member names are not checked."
}
func (r *NoTyposRule) Summary() string {
	return "Detect misspelled static properties and lifecycle methods."
}
func (r *NoTyposRule) Link() string {
	return docsBaseURL + RuleNoTypos
}
func (r *NoTyposRule) DefaultSeverity() validation.Severity {
	return validation.SeverityError
}

func (r *NoTyposRule) Run(ctx context.Context, docInfo *linter.DocumentInfo[*jsx.Document], config *linter.RuleConfig) []error {
	return run(ctx, r, docInfo, config)
}

func (r *NoTyposRule) Create(c *Context) Visitors {
	detector := newComponentDetector(c)

	// enclosingClass returns the class whose body holds the member being visited.
	enclosingClass := func() *ast.Class {
		ancestors := c.Ancestors()
		if len(ancestors) < 2 {
			return nil
		}
		cls, _ := ancestors[len(ancestors)-2].(*ast.Class)
		return cls
	}

	return Visitors{
		ast.KindClassProperty: func(n ast.Node) {
			prop, ok := n.(*ast.ClassProperty)
			if !ok || !prop.Static || prop.Computed {
				return
			}
			name, ok := ast.PropertyName(prop.Key, false)
			if !ok || !isTypo(staticProperties, name) {
				return
			}
			if !detector.isES6Component(enclosingClass()) {
				return
			}
			c.Report(Descriptor{Node: prop, Message: staticPropertyTypoMessage})
		},
		ast.KindMethodDefinition: func(n ast.Node) {
			method, ok := n.(*ast.MethodDefinition)
			if !ok || method.Computed {
				return
			}
			name, ok := ast.PropertyName(method.Key, false)
			if !ok || !isTypo(lifecycleMethods, name) {
				return
			}
			if !detector.isES6Component(enclosingClass()) {
				return
			}
			c.Report(Descriptor{Node: method, Message: lifecycleTypoMessage})
		},
		ast.KindAssignmentExpression: func(n ast.Node) {
			assign, ok := n.(*ast.AssignmentExpression)
			if !ok {
				return
			}
			member, ok := assign.Left.(*ast.MemberExpression)
			if !ok || member.Computed {
				return
			}
			object, ok := member.Object.(*ast.Identifier)
			if !ok {
				return
			}
			name, ok := ast.MemberPropertyName(member)
			if !ok || !isTypo(staticProperties, name) {
				return
			}
			binding, ok := c.Resolve(object.Name)
			if !ok || !isComponentBinding(detector, binding) {
				return
			}
			c.Report(Descriptor{Node: member, Message: staticPropertyTypoMessage})
		},
	}
}

// isComponentBinding reports whether a binding declares a class component or an SFC.
func isComponentBinding(d *componentDetector, b *scope.Binding) bool {
	switch b.Kind {
	case scope.BindingParam, scope.BindingCatch, scope.BindingImport:
		return false
	}
	switch n := b.Node.(type) {
	case *ast.Class:
		return d.isES6Component(n)
	case *ast.Function:
		return d.isSFC(n, nil)
	case *ast.VariableDeclarator:
		if b.PatternKey != "" {
			return false
		}
		switch init := n.Init.(type) {
		case *ast.Class:
			return d.isES6Component(init)
		case *ast.Function:
			return d.isSFC(init, n)
		}
	}
	return false
}

func (r *NoTyposRule) GoodExample() string {
	return `class MyComponent extends Inferno.Component {
  static propTypes = {};
  componentDidMount() {}
}
MyComponent.defaultProps = {};`
}

func (r *NoTyposRule) BadExample() string {
	return `class MyComponent extends Inferno.Component {
  static PropTypes = {};
  componentdidmount() {}
}
MyComponent.DefaultProps = {};`
}

func (r *NoTyposRule) Rationale() string {
	return "Misspelled static properties and lifecycle methods are never called and fail silently."
}
