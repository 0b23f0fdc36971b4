package rules

import (
	"context"

	"github.com/speakeasy-api/jsxlint/jsx"
	"github.com/speakeasy-api/jsxlint/jsx/ast"
	"github.com/speakeasy-api/jsxlint/linter"
	"github.com/speakeasy-api/jsxlint/validation"
)

const RuleNoDirectMutationState = "no-direct-mutation-state"

const directMutationMessage = "Do not mutate state directly. Use setState()."

type NoDirectMutationStateRule struct{}

func (r *NoDirectMutationStateRule) ID() string       { return RuleNoDirectMutationState }
func (r *NoDirectMutationStateRule) Category() string { return CategoryPossibleErrors }
func (r *NoDirectMutationStateRule) Description() string {
	return "Writing to this.state directly does not schedule a render and may be overwritten by a later setState call. Outside the constructor, state must only change through setState."
}
func (r *NoDirectMutationStateRule) Summary() string {
	return "Disallow direct mutation of this.state."
}
func (r *NoDirectMutationStateRule) Link() string {
	return docsBaseURL + RuleNoDirectMutationState
}
func (r *NoDirectMutationStateRule) DefaultSeverity() validation.Severity {
	return validation.SeverityError
}

func (r *NoDirectMutationStateRule) Run(ctx context.Context, docInfo *linter.DocumentInfo[*jsx.Document], config *linter.RuleConfig) []error {
	return run(ctx, r, docInfo, config)
}

func (r *NoDirectMutationStateRule) Create(c *Context) Visitors {
	detector := newComponentDetector(c)

	check := func(target ast.Node) {
		if !isStateMember(target) {
			return
		}
		ancestors := c.Ancestors()
		if _, kind := detector.enclosingComponent(ancestors); kind == componentNone {
			return
		}
		if inConstructor(ancestors) {
			return
		}
		c.Report(Descriptor{Node: target, Message: directMutationMessage})
	}

	return Visitors{
		ast.KindAssignmentExpression: func(n ast.Node) {
			if assign, ok := n.(*ast.AssignmentExpression); ok {
				check(assign.Left)
			}
		},
		ast.KindUpdateExpression: func(n ast.Node) {
			if update, ok := n.(*ast.UpdateExpression); ok {
				check(update.Argument)
			}
		},
	}
}

// isStateMember reports whether n is this.state or a member path rooted at it.
func isStateMember(n ast.Node) bool {
	for {
		m, ok := n.(*ast.MemberExpression)
		if !ok {
			return false
		}
		if ast.IsThisMember(m, "state") {
			return true
		}
		n = m.Object
	}
}

// inConstructor reports whether the node with the given ancestors runs directly in a
// class constructor. Code inside a function passed to a call runs later and does not
// count.
func inConstructor(ancestors []ast.Node) bool {
	for i := len(ancestors) - 1; i >= 0; i-- {
		switch n := ancestors[i].(type) {
		case *ast.Function:
			if i > 0 && isCallArgument(ancestors[i-1], n) {
				return false
			}
		case *ast.MethodDefinition:
			return n.MethodKind == "constructor"
		case *ast.Class:
			return false
		}
	}
	return false
}

func isCallArgument(parent ast.Node, fn *ast.Function) bool {
	var args []ast.Node
	switch p := parent.(type) {
	case *ast.CallExpression:
		args = p.Arguments
	case *ast.NewExpression:
		args = p.Arguments
	default:
		return false
	}
	for _, arg := range args {
		if arg == ast.Node(fn) {
			return true
		}
	}
	return false
}

func (r *NoDirectMutationStateRule) GoodExample() string {
	return `class Hello extends Inferno.Component {
  constructor(props) {
    super(props);
    this.state = { name: props.name };
  }
  rename(name) {
    this.setState({ name });
  }
}`
}

func (r *NoDirectMutationStateRule) BadExample() string {
	return `class Hello extends Inferno.Component {
  rename(name) {
    this.state.name = name;
  }
}`
}

func (r *NoDirectMutationStateRule) Rationale() string {
	return "Direct writes to state are lost or never rendered."
}
