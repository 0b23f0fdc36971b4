package rules

import (
	"context"
	"fmt"

	"github.com/speakeasy-api/jsxlint/jsx"
	"github.com/speakeasy-api/jsxlint/jsx/ast"
	"github.com/speakeasy-api/jsxlint/linter"
	"github.com/speakeasy-api/jsxlint/validation"
)

const (
	RuleNoDidMountSetState  = "no-did-mount-set-state"
	RuleNoDidUpdateSetState = "no-did-update-set-state"
)

const modeDisallowInFunc = "disallow-in-func"

// setStateSchema is shared by the set-state rules.
func setStateSchema() map[string]any {
	return map[string]any{
		"type": "array",
		"prefixItems": []any{
			map[string]any{
				"enum":        []any{modeDisallowInFunc},
				"description": "Also report calls inside nested functions",
			},
		},
		"items": false,
	}
}

// createSetStateVisitors reports this.setState calls made from the method named hook.
//
// Arrow functions keep the method's this, so calls inside them are always reported.
// Calls inside a nested function expression or declaration are only reported in
// disallow-in-func mode.
func createSetStateVisitors(c *Context, hook string) Visitors {
	mode := c.StringOption(0, "")
	message := fmt.Sprintf("Do not use setState in %s", hook)

	return Visitors{
		ast.KindCallExpression: func(n ast.Node) {
			call, ok := n.(*ast.CallExpression)
			if !ok || !ast.IsThisMember(call.Callee, "setState") {
				return
			}

			ancestors := c.Ancestors()
			depth := 0
			for i := len(ancestors) - 1; i >= 0; i-- {
				if fn, ok := ancestors[i].(*ast.Function); ok && !fn.IsArrow() {
					depth++
				}
				name, ok := memberKeyName(ancestors[i])
				if !ok || name != hook {
					continue
				}
				if mode != modeDisallowInFunc && depth > 1 {
					continue
				}
				c.Report(Descriptor{Node: call.Callee, Message: message})
				return
			}
		},
	}
}

type NoDidMountSetStateRule struct{}

func (r *NoDidMountSetStateRule) ID() string       { return RuleNoDidMountSetState }
func (r *NoDidMountSetStateRule) Category() string { return CategoryBestPractices }
func (r *NoDidMountSetStateRule) Description() string {
	return "Calling setState in componentDidMount triggers a second render right after the component mounts, which causes layout thrashing. State that is known at mount time belongs in the constructor."
}
func (r *NoDidMountSetStateRule) Summary() string {
	return "Disallow this.setState in componentDidMount."
}
func (r *NoDidMountSetStateRule) Link() string {
	return docsBaseURL + RuleNoDidMountSetState
}
func (r *NoDidMountSetStateRule) DefaultSeverity() validation.Severity {
	return validation.SeverityWarning
}
func (r *NoDidMountSetStateRule) ConfigSchema() map[string]any { return setStateSchema() }
func (r *NoDidMountSetStateRule) ConfigDefaults() []any        { return []any{} }

func (r *NoDidMountSetStateRule) Run(ctx context.Context, docInfo *linter.DocumentInfo[*jsx.Document], config *linter.RuleConfig) []error {
	return run(ctx, r, docInfo, config)
}

func (r *NoDidMountSetStateRule) Create(c *Context) Visitors {
	return createSetStateVisitors(c, "componentDidMount")
}

func (r *NoDidMountSetStateRule) GoodExample() string {
	return `class Hello extends Inferno.Component {
  componentDidMount() {
    this.props.onMount();
  }
}`
}

func (r *NoDidMountSetStateRule) BadExample() string {
	return `class Hello extends Inferno.Component {
  componentDidMount() {
    this.setState({ name: this.props.name.toUpperCase() });
  }
}`
}

func (r *NoDidMountSetStateRule) Rationale() string {
	return "Updating state right after mount renders the component twice."
}

type NoDidUpdateSetStateRule struct{}

func (r *NoDidUpdateSetStateRule) ID() string       { return RuleNoDidUpdateSetState }
func (r *NoDidUpdateSetStateRule) Category() string { return CategoryBestPractices }
func (r *NoDidUpdateSetStateRule) Description() string {
	return "Calling setState in componentDidUpdate triggers another update, which can loop forever when the new state differs on every pass."
}
func (r *NoDidUpdateSetStateRule) Summary() string {
	return "Disallow this.setState in componentDidUpdate."
}
func (r *NoDidUpdateSetStateRule) Link() string {
	return docsBaseURL + RuleNoDidUpdateSetState
}
func (r *NoDidUpdateSetStateRule) DefaultSeverity() validation.Severity {
	return validation.SeverityWarning
}
func (r *NoDidUpdateSetStateRule) ConfigSchema() map[string]any { return setStateSchema() }
func (r *NoDidUpdateSetStateRule) ConfigDefaults() []any        { return []any{} }

func (r *NoDidUpdateSetStateRule) Run(ctx context.Context, docInfo *linter.DocumentInfo[*jsx.Document], config *linter.RuleConfig) []error {
	return run(ctx, r, docInfo, config)
}

func (r *NoDidUpdateSetStateRule) Create(c *Context) Visitors {
	return createSetStateVisitors(c, "componentDidUpdate")
}

func (r *NoDidUpdateSetStateRule) GoodExample() string {
	return `class Hello extends Inferno.Component {
  componentDidUpdate() {
    this.props.onUpdate();
  }
}`
}

func (r *NoDidUpdateSetStateRule) BadExample() string {
	return `class Hello extends Inferno.Component {
  componentDidUpdate() {
    this.setState({ name: this.props.name.toUpperCase() });
  }
}`
}

func (r *NoDidUpdateSetStateRule) Rationale() string {
	return "Updating state after every update renders again and can loop."
}
