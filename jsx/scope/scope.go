// Package scope performs static binding analysis over a parsed program: which
// declaration a name refers to from a given position in the tree.
package scope

import (
	"github.com/speakeasy-api/jsxlint/jsx/ast"
)

// BindingKind is how a name was declared.
type BindingKind int

const (
	BindingVar BindingKind = iota + 1
	BindingLet
	BindingConst
	BindingFunction
	BindingClass
	BindingParam
	BindingImport
	BindingCatch
)

var bindingKindNames = map[BindingKind]string{
	BindingVar:      "var",
	BindingLet:      "let",
	BindingConst:    "const",
	BindingFunction: "function",
	BindingClass:    "class",
	BindingParam:    "parameter",
	BindingImport:   "import",
	BindingCatch:    "catch",
}

func (k BindingKind) String() string {
	return bindingKindNames[k]
}

// Kind is the construct that introduced a scope.
type Kind int

const (
	KindModule Kind = iota + 1
	KindFunction
	KindBlock
	KindClass
	KindCatch
)

// Binding is a declared name.
type Binding struct {
	Name       string
	Kind       BindingKind
	Identifier *ast.Identifier
	// Node is the declaring construct: a VariableDeclarator, Function, Class, import
	// specifier or CatchClause.
	Node ast.Node
	// Init is the initializer of the declarator the binding came from, if any.
	Init ast.Node
	// PatternKey is the property name the binding was destructured from, for example
	// "createElement" in `const { createElement: h } = Inferno`.
	PatternKey string

	// ImportSource and ImportedName are set for imports. ImportedName is "default" for
	// default imports and "*" for namespace imports.
	ImportSource string
	ImportedName string
}

// Scope is a lexical scope.
type Scope struct {
	Kind     Kind
	Node     ast.Node
	Parent   *Scope
	Bindings map[string]*Binding
}

func newScope(kind Kind, node ast.Node, parent *Scope) *Scope {
	return &Scope{Kind: kind, Node: node, Parent: parent, Bindings: map[string]*Binding{}}
}

// Lookup resolves name in s or its enclosing scopes.
func (s *Scope) Lookup(name string) (*Binding, bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		if b, ok := sc.Bindings[name]; ok {
			return b, true
		}
	}
	return nil, false
}

func (s *Scope) declare(b *Binding) {
	// the first declaration of a name wins, matching hoisted function semantics
	if _, exists := s.Bindings[b.Name]; !exists {
		s.Bindings[b.Name] = b
	}
}

func (s *Scope) functionScope() *Scope {
	sc := s
	for sc.Kind != KindFunction && sc.Kind != KindModule && sc.Parent != nil {
		sc = sc.Parent
	}
	return sc
}

// Info holds the scopes of a program.
type Info struct {
	Root   *Scope
	scopes map[ast.Node]*Scope
}

// ScopeOf returns the scope introduced by n, if any.
func (i *Info) ScopeOf(n ast.Node) (*Scope, bool) {
	s, ok := i.scopes[n]
	return s, ok
}

// Lookup resolves name from a position described by its ancestors (outermost first).
// All bindings of a scope are visible regardless of declaration order.
func (i *Info) Lookup(name string, ancestors []ast.Node) (*Binding, bool) {
	if i == nil {
		return nil, false
	}
	for k := len(ancestors) - 1; k >= 0; k-- {
		if s, ok := i.scopes[ancestors[k]]; ok {
			return s.Lookup(name)
		}
	}
	if i.Root == nil {
		return nil, false
	}
	return i.Root.Lookup(name)
}

// Analyze builds the scopes of prog.
func Analyze(prog *ast.Program) *Info {
	info := &Info{scopes: map[ast.Node]*Scope{}}
	if prog == nil {
		return info
	}
	info.Root = newScope(KindModule, prog, nil)
	info.scopes[prog] = info.Root

	a := &analyzer{info: info}
	for _, stmt := range prog.Body {
		a.visit(stmt, info.Root)
	}
	return info
}

type analyzer struct {
	info *Info
}

func (a *analyzer) push(kind Kind, n ast.Node, parent *Scope) *Scope {
	s := newScope(kind, n, parent)
	a.info.scopes[n] = s
	return s
}

func (a *analyzer) visitAll(nodes []ast.Node, s *Scope) {
	for _, n := range nodes {
		a.visit(n, s)
	}
}

func (a *analyzer) visit(n ast.Node, s *Scope) {
	switch n := n.(type) {
	case nil:
		return

	case *ast.Function:
		if n.FuncKind == ast.KindFunctionDeclaration && n.ID != nil {
			s.declare(&Binding{Name: n.ID.Name, Kind: BindingFunction, Identifier: n.ID, Node: n})
		}
		fs := a.push(KindFunction, n, s)
		if n.FuncKind == ast.KindFunctionExpression && n.ID != nil {
			fs.declare(&Binding{Name: n.ID.Name, Kind: BindingFunction, Identifier: n.ID, Node: n})
		}
		for _, param := range n.Params {
			declarePattern(param, "", func(id *ast.Identifier, key string) {
				fs.declare(&Binding{Name: id.Name, Kind: BindingParam, Identifier: id, Node: n, PatternKey: key})
			})
			a.visitPatternDefaults(param, fs)
		}
		if body, ok := n.Body.(*ast.BlockStatement); ok {
			a.visitAll(body.Body, fs)
		} else {
			a.visit(n.Body, fs)
		}

	case *ast.Class:
		if n.ClassKind == ast.KindClassDeclaration && n.ID != nil {
			s.declare(&Binding{Name: n.ID.Name, Kind: BindingClass, Identifier: n.ID, Node: n})
		}
		a.visit(n.SuperClass, s)
		cs := a.push(KindClass, n, s)
		if n.ClassKind == ast.KindClassExpression && n.ID != nil {
			cs.declare(&Binding{Name: n.ID.Name, Kind: BindingClass, Identifier: n.ID, Node: n})
		}
		if n.Body != nil {
			a.visit(n.Body, cs)
		}

	case *ast.VariableDeclaration:
		kind := BindingVar
		target := s.functionScope()
		switch n.Keyword {
		case "let":
			kind, target = BindingLet, s
		case "const":
			kind, target = BindingConst, s
		}
		for _, d := range n.Declarations {
			declarePattern(d.ID, "", func(id *ast.Identifier, key string) {
				target.declare(&Binding{Name: id.Name, Kind: kind, Identifier: id, Node: d, Init: d.Init, PatternKey: key})
			})
			a.visitPatternDefaults(d.ID, s)
			a.visit(d.Init, s)
		}

	case *ast.ImportDeclaration:
		source := ""
		if n.Source != nil {
			source, _ = n.Source.Value.(string)
		}
		root := s.functionScope()
		for _, spec := range n.Specifiers {
			b := &Binding{Kind: BindingImport, Node: spec, ImportSource: source}
			switch spec := spec.(type) {
			case *ast.ImportSpecifier:
				b.Identifier = spec.Local
				if spec.Imported != nil {
					b.ImportedName = spec.Imported.Name
				}
			case *ast.ImportDefaultSpecifier:
				b.Identifier = spec.Local
				b.ImportedName = "default"
			case *ast.ImportNamespaceSpecifier:
				b.Identifier = spec.Local
				b.ImportedName = "*"
			}
			if b.Identifier == nil {
				continue
			}
			b.Name = b.Identifier.Name
			root.declare(b)
		}

	case *ast.BlockStatement:
		a.visitAll(n.Body, a.push(KindBlock, n, s))

	case *ast.StaticBlock:
		a.visitAll(n.Body, a.push(KindFunction, n, s))

	case *ast.ForStatement, *ast.ForInStatement, *ast.ForOfStatement, *ast.SwitchStatement:
		a.visitAll(ast.Children(n), a.push(KindBlock, n, s))

	case *ast.CatchClause:
		cs := a.push(KindCatch, n, s)
		declarePattern(n.Param, "", func(id *ast.Identifier, key string) {
			cs.declare(&Binding{Name: id.Name, Kind: BindingCatch, Identifier: id, Node: n, PatternKey: key})
		})
		if n.Body != nil {
			a.visitAll(n.Body.Body, cs)
		}

	default:
		a.visitAll(ast.Children(n), s)
	}
}

// visitPatternDefaults visits default values and computed keys inside a binding pattern,
// which may contain functions and classes with scopes of their own.
func (a *analyzer) visitPatternDefaults(pattern ast.Node, s *Scope) {
	switch p := pattern.(type) {
	case *ast.AssignmentPattern:
		a.visitPatternDefaults(p.Left, s)
		a.visit(p.Right, s)
	case *ast.ObjectPattern:
		for _, prop := range p.Properties {
			switch prop := prop.(type) {
			case *ast.Property:
				if prop.Computed {
					a.visit(prop.Key, s)
				}
				a.visitPatternDefaults(prop.Value, s)
			case *ast.RestElement:
				a.visitPatternDefaults(prop.Argument, s)
			}
		}
	case *ast.ArrayPattern:
		for _, el := range p.Elements {
			a.visitPatternDefaults(el, s)
		}
	case *ast.RestElement:
		a.visitPatternDefaults(p.Argument, s)
	}
}

// declarePattern calls declare for every identifier bound by pattern. key is the
// property name of the enclosing object pattern entry.
func declarePattern(pattern ast.Node, key string, declare func(*ast.Identifier, string)) {
	switch p := pattern.(type) {
	case *ast.Identifier:
		declare(p, key)
	case *ast.AssignmentPattern:
		declarePattern(p.Left, key, declare)
	case *ast.RestElement:
		declarePattern(p.Argument, "", declare)
	case *ast.ArrayPattern:
		for _, el := range p.Elements {
			declarePattern(el, "", declare)
		}
	case *ast.ObjectPattern:
		for _, prop := range p.Properties {
			switch prop := prop.(type) {
			case *ast.Property:
				name, _ := ast.PropertyName(prop.Key, prop.Computed)
				declarePattern(prop.Value, name, declare)
			case *ast.RestElement:
				declarePattern(prop.Argument, "", declare)
			}
		}
	}
}
