package rules

import (
	"context"
	"fmt"

	"github.com/speakeasy-api/jsxlint/jsx"
	"github.com/speakeasy-api/jsxlint/jsx/ast"
	"github.com/speakeasy-api/jsxlint/linter"
	"github.com/speakeasy-api/jsxlint/validation"
)

const RuleDestructuringAssignment = "destructuring-assignment"

const (
	policyAlways = "always"
	policyNever  = "never"
	policyIgnore = "ignore"
)

const (
	sourceProps   = "props"
	sourceState   = "state"
	sourceContext = "context"
)

type DestructuringAssignmentRule struct{}

func (r *DestructuringAssignmentRule) ID() string       { return RuleDestructuringAssignment }
func (r *DestructuringAssignmentRule) Category() string { return CategoryStylisticIssues }
func (r *DestructuringAssignmentRule) Description() string {
	return "Components read props, state and context either through member access (this.props.name) or by destructuring them first (const { name } = this.props). This rule enforces one style, per source when configured with an object."
}
func (r *DestructuringAssignmentRule) Summary() string {
	return "Enforce consistent destructuring of props, state and context."
}
func (r *DestructuringAssignmentRule) Link() string {
	return docsBaseURL + RuleDestructuringAssignment
}
func (r *DestructuringAssignmentRule) DefaultSeverity() validation.Severity {
	return validation.SeverityWarning
}

func (r *DestructuringAssignmentRule) ConfigSchema() map[string]any {
	policy := map[string]any{"enum": []any{policyAlways, policyNever, policyIgnore}}
	return map[string]any{
		"type": "array",
		"prefixItems": []any{
			map[string]any{
				"enum":        []any{policyAlways, policyNever},
				"description": "Whether destructuring is required or forbidden",
			},
			map[string]any{
				"type":        "object",
				"description": "Per-source overrides and class field handling",
				"properties": map[string]any{
					sourceProps:         policy,
					sourceState:         policy,
					sourceContext:       policy,
					"ignoreClassFields": map[string]any{"type": "boolean"},
				},
				"additionalProperties": false,
			},
		},
		"items": false,
	}
}

func (r *DestructuringAssignmentRule) ConfigDefaults() []any {
	return []any{policyAlways}
}

func (r *DestructuringAssignmentRule) Run(ctx context.Context, docInfo *linter.DocumentInfo[*jsx.Document], config *linter.RuleConfig) []error {
	return run(ctx, r, docInfo, config)
}

// destructuringPolicy is the effective configuration of the rule.
type destructuringPolicy struct {
	mode              string
	sources           map[string]string
	ignoreClassFields bool
}

func newDestructuringPolicy(c *Context) destructuringPolicy {
	p := destructuringPolicy{
		mode:    c.StringOption(0, policyAlways),
		sources: map[string]string{},
	}
	overrides := c.ObjectOption(1)
	for _, source := range []string{sourceProps, sourceState, sourceContext} {
		if v, ok := overrides[source].(string); ok {
			p.sources[source] = v
		}
	}
	p.ignoreClassFields, _ = overrides["ignoreClassFields"].(bool)
	return p
}

func (p destructuringPolicy) of(source string) string {
	if v, ok := p.sources[source]; ok {
		return v
	}
	return p.mode
}

func (r *DestructuringAssignmentRule) Create(c *Context) Visitors {
	detector := newComponentDetector(c)
	policy := newDestructuringPolicy(c)

	inSFC := func() bool {
		fn, parent := innermostFunction(c.Ancestors())
		return detector.isSFC(fn, parent)
	}
	inClassComponent := func() bool {
		_, kind := detector.enclosingComponent(c.Ancestors())
		return kind != componentNone
	}
	skipClassField := func() bool {
		return policy.ignoreClassFields && inClassField(c.Ancestors())
	}

	checkParams := func(n ast.Node) {
		fn, ok := n.(*ast.Function)
		if !ok || !detector.isSFC(fn, c.Parent()) {
			return
		}
		switch {
		case len(fn.Params) > 0 && isObjectPattern(fn.Params[0]) && policy.of(sourceProps) == policyNever:
			c.Report(Descriptor{Node: fn, Message: "Must never use destructuring props assignment in SFC argument"})
		case len(fn.Params) > 1 && isObjectPattern(fn.Params[1]) && policy.of(sourceContext) == policyNever:
			c.Report(Descriptor{Node: fn, Message: "Must never use destructuring context assignment in SFC argument"})
		}
	}

	return Visitors{
		ast.KindFunctionDeclaration:     checkParams,
		ast.KindFunctionExpression:      checkParams,
		ast.KindArrowFunctionExpression: checkParams,

		ast.KindMemberExpression: func(n ast.Node) {
			member, ok := n.(*ast.MemberExpression)
			if !ok || isAssignmentTarget(c.Parent(), member) {
				return
			}

			// props.name or context.name
			if id, ok := member.Object.(*ast.Identifier); ok && isSFCSource(id.Name) {
				if policy.of(id.Name) == policyAlways && inSFC() {
					c.Report(Descriptor{Node: member, Message: fmt.Sprintf("Must use destructuring %s assignment", id.Name)})
				}
				return
			}

			// this.props.name, this.state.name or this.context.name
			source, ok := thisSource(member.Object)
			if !ok || policy.of(source) != policyAlways {
				return
			}
			if !inClassComponent() || skipClassField() {
				return
			}
			c.Report(Descriptor{Node: member, Message: fmt.Sprintf("Must use destructuring %s assignment", source)})
		},

		ast.KindVariableDeclarator: func(n ast.Node) {
			decl, ok := n.(*ast.VariableDeclarator)
			if !ok || decl.Init == nil || !isObjectPattern(decl.ID) {
				return
			}

			// const { name } = props
			if id, ok := decl.Init.(*ast.Identifier); ok && isSFCSource(id.Name) {
				if policy.of(id.Name) == policyNever && inSFC() {
					c.Report(Descriptor{Node: decl, Message: fmt.Sprintf("Must never use destructuring %s assignment", id.Name)})
				}
				return
			}

			// const { name } = this.props
			source, ok := thisSource(decl.Init)
			if !ok || policy.of(source) != policyNever {
				return
			}
			if !inClassComponent() || skipClassField() {
				return
			}
			c.Report(Descriptor{Node: decl, Message: fmt.Sprintf("Must never use destructuring %s assignment", source)})
		},
	}
}

func isSFCSource(name string) bool {
	return name == sourceProps || name == sourceContext
}

// thisSource returns which of this.props, this.state or this.context n is.
func thisSource(n ast.Node) (string, bool) {
	for _, source := range []string{sourceProps, sourceState, sourceContext} {
		if ast.IsThisMember(n, source) {
			return source, true
		}
	}
	return "", false
}

func isObjectPattern(n ast.Node) bool {
	if p, ok := n.(*ast.AssignmentPattern); ok {
		n = p.Left
	}
	_, ok := n.(*ast.ObjectPattern)
	return ok
}

func isAssignmentTarget(parent ast.Node, n ast.Node) bool {
	assign, ok := parent.(*ast.AssignmentExpression)
	return ok && assign.Left == n
}

// inClassField reports whether the node with the given ancestors is part of a class
// field initializer.
func inClassField(ancestors []ast.Node) bool {
	for i := len(ancestors) - 1; i >= 0; i-- {
		switch ancestors[i].(type) {
		case *ast.ClassProperty:
			return true
		case *ast.Class:
			return false
		}
	}
	return false
}

func (r *DestructuringAssignmentRule) GoodExample() string {
	return `const MyComponent = ({ id }) => <div id={id} />;

class Foo extends Inferno.Component {
  render() {
    const { title } = this.props;
    return <h1>{title}</h1>;
  }
}`
}

func (r *DestructuringAssignmentRule) BadExample() string {
	return `const MyComponent = (props) => <div id={props.id} />;

class Foo extends Inferno.Component {
  render() {
    return <h1>{this.props.title}</h1>;
  }
}`
}

func (r *DestructuringAssignmentRule) Rationale() string {
	return "A single access style makes it obvious which props, state and context a component uses."
}
