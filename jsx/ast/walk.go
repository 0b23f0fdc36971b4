package ast

import (
	"context"
	"iter"
)

// WalkItem is a single node yielded by Walk.
type WalkItem struct {
	Node Node
	// Ancestors holds the enclosing nodes, outermost first. The slice is reused by the
	// walker and is only valid until the next item is yielded.
	Ancestors []Node
}

// Parent returns the immediate parent of the item's node, or nil for the root.
func (w WalkItem) Parent() Node {
	if len(w.Ancestors) == 0 {
		return nil
	}
	return w.Ancestors[len(w.Ancestors)-1]
}

// Walk returns an iterator over root and all of its descendants in source order
// (depth first, parents before children). Iteration stops early when the consumer
// breaks out of the loop or ctx is cancelled.
func Walk(ctx context.Context, root Node) iter.Seq[WalkItem] {
	return func(yield func(WalkItem) bool) {
		if root == nil {
			return
		}
		stack := make([]Node, 0, 32)
		walk(ctx, root, &stack, yield)
	}
}

func walk(ctx context.Context, n Node, stack *[]Node, yield func(WalkItem) bool) bool {
	if ctx.Err() != nil {
		return false
	}
	if !yield(WalkItem{Node: n, Ancestors: *stack}) {
		return false
	}

	*stack = append(*stack, n)
	for _, child := range Children(n) {
		if !walk(ctx, child, stack, yield) {
			return false
		}
	}
	*stack = (*stack)[:len(*stack)-1]

	return true
}

// Inspect traverses the tree rooted at n in depth-first order, calling f for each node.
// Children of a node are skipped when f returns false.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, child := range Children(n) {
		Inspect(child, f)
	}
}

// Children returns the direct, non-nil children of n in source order.
func Children(n Node) []Node {
	var c children

	switch n := n.(type) {
	case *Program:
		c.list(n.Body)

	case *ExpressionStatement:
		c.add(n.Expression)
	case *BlockStatement:
		c.list(n.Body)
	case *ReturnStatement:
		c.add(n.Argument)
	case *BreakStatement:
		c.ident(n.Label)
	case *ContinueStatement:
		c.ident(n.Label)
	case *IfStatement:
		c.add(n.Test, n.Consequent, n.Alternate)
	case *SwitchStatement:
		c.add(n.Discriminant)
		for _, sc := range n.Cases {
			c.add(sc)
		}
	case *SwitchCase:
		c.add(n.Test)
		c.list(n.Consequent)
	case *ThrowStatement:
		c.add(n.Argument)
	case *TryStatement:
		if n.Block != nil {
			c.add(n.Block)
		}
		if n.Handler != nil {
			c.add(n.Handler)
		}
		if n.Finalizer != nil {
			c.add(n.Finalizer)
		}
	case *CatchClause:
		c.add(n.Param)
		if n.Body != nil {
			c.add(n.Body)
		}
	case *WhileStatement:
		c.add(n.Test, n.Body)
	case *DoWhileStatement:
		c.add(n.Body, n.Test)
	case *ForStatement:
		c.add(n.Init, n.Test, n.Update, n.Body)
	case *ForInStatement:
		c.add(n.Left, n.Right, n.Body)
	case *ForOfStatement:
		c.add(n.Left, n.Right, n.Body)
	case *LabeledStatement:
		c.ident(n.Label)
		c.add(n.Body)

	case *VariableDeclaration:
		for _, d := range n.Declarations {
			c.add(d)
		}
	case *VariableDeclarator:
		c.add(n.ID, n.Init)
	case *ImportDeclaration:
		c.list(n.Specifiers)
		c.literal(n.Source)
	case *ImportSpecifier:
		if n.Imported != nil && n.Local != nil && n.Imported.Pos() == n.Local.Pos() {
			c.ident(n.Local)
		} else {
			c.ident(n.Imported)
			c.ident(n.Local)
		}
	case *ImportDefaultSpecifier:
		c.ident(n.Local)
	case *ImportNamespaceSpecifier:
		c.ident(n.Local)
	case *ExportNamedDeclaration:
		c.add(n.Declaration)
		for _, s := range n.Specifiers {
			c.add(s)
		}
		c.literal(n.Source)
	case *ExportSpecifier:
		if n.Local != nil && n.Exported != nil && n.Local.Pos() == n.Exported.Pos() {
			c.ident(n.Local)
		} else {
			c.ident(n.Local)
			c.ident(n.Exported)
		}
	case *ExportDefaultDeclaration:
		c.add(n.Declaration)
	case *ExportAllDeclaration:
		c.ident(n.Exported)
		c.literal(n.Source)

	case *Function:
		c.ident(n.ID)
		c.list(n.Params)
		c.add(n.Body)
	case *Class:
		c.ident(n.ID)
		c.add(n.SuperClass)
		if n.Body != nil {
			c.add(n.Body)
		}
	case *ClassBody:
		c.list(n.Body)
	case *MethodDefinition:
		c.add(n.Key)
		if n.Value != nil {
			c.add(n.Value)
		}
	case *ClassProperty:
		c.add(n.Key, n.Value)
	case *StaticBlock:
		c.list(n.Body)

	case *TemplateLiteral:
		// quasis and expressions interleave in the source
		for i, q := range n.Quasis {
			c.add(q)
			if i < len(n.Expressions) {
				c.add(n.Expressions[i])
			}
		}
	case *TaggedTemplateExpression:
		c.add(n.Tag)
		if n.Quasi != nil {
			c.add(n.Quasi)
		}
	case *ArrayExpression:
		c.list(n.Elements)
	case *ObjectExpression:
		c.list(n.Properties)
	case *Property:
		if n.Shorthand {
			c.add(n.Value)
		} else {
			c.add(n.Key, n.Value)
		}
	case *UnaryExpression:
		c.add(n.Argument)
	case *UpdateExpression:
		c.add(n.Argument)
	case *BinaryExpression:
		c.add(n.Left, n.Right)
	case *LogicalExpression:
		c.add(n.Left, n.Right)
	case *AssignmentExpression:
		c.add(n.Left, n.Right)
	case *ConditionalExpression:
		c.add(n.Test, n.Consequent, n.Alternate)
	case *CallExpression:
		c.add(n.Callee)
		c.list(n.Arguments)
	case *NewExpression:
		c.add(n.Callee)
		c.list(n.Arguments)
	case *MemberExpression:
		c.add(n.Object, n.Property)
	case *ChainExpression:
		c.add(n.Expression)
	case *SequenceExpression:
		c.list(n.Expressions)
	case *SpreadElement:
		c.add(n.Argument)
	case *YieldExpression:
		c.add(n.Argument)
	case *AwaitExpression:
		c.add(n.Argument)
	case *MetaProperty:
		c.ident(n.Meta)
		c.ident(n.Property)
	case *ImportExpression:
		c.add(n.Source)

	case *ObjectPattern:
		c.list(n.Properties)
	case *ArrayPattern:
		c.list(n.Elements)
	case *RestElement:
		c.add(n.Argument)
	case *AssignmentPattern:
		c.add(n.Left, n.Right)

	case *JSXElement:
		if n.OpeningElement != nil {
			c.add(n.OpeningElement)
		}
		c.list(n.Children)
		if n.ClosingElement != nil {
			c.add(n.ClosingElement)
		}
	case *JSXOpeningElement:
		c.add(n.Name)
		c.list(n.Attributes)
	case *JSXClosingElement:
		c.add(n.Name)
	case *JSXFragment:
		if n.OpeningFragment != nil {
			c.add(n.OpeningFragment)
		}
		c.list(n.Children)
		if n.ClosingFragment != nil {
			c.add(n.ClosingFragment)
		}
	case *JSXAttribute:
		c.add(n.Name, n.Value)
	case *JSXSpreadAttribute:
		c.add(n.Argument)
	case *JSXMemberExpression:
		c.add(n.Object)
		if n.Property != nil {
			c.add(n.Property)
		}
	case *JSXNamespacedName:
		if n.Namespace != nil {
			c.add(n.Namespace)
		}
		if n.Name != nil {
			c.add(n.Name)
		}
	case *JSXExpressionContainer:
		c.add(n.Expression)
	case *JSXSpreadChild:
		c.add(n.Expression)
	}

	return c.nodes
}

type children struct {
	nodes []Node
}

func (c *children) add(nodes ...Node) {
	for _, n := range nodes {
		if n != nil {
			c.nodes = append(c.nodes, n)
		}
	}
}

func (c *children) list(nodes []Node) {
	c.add(nodes...)
}

// ident and literal avoid storing typed nil pointers in the Node interface.
func (c *children) ident(id *Identifier) {
	if id != nil {
		c.nodes = append(c.nodes, id)
	}
}

func (c *children) literal(l *Literal) {
	if l != nil {
		c.nodes = append(c.nodes, l)
	}
}
