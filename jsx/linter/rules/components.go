package rules

import (
	"regexp"
	"sort"
	"strings"

	"github.com/speakeasy-api/jsxlint/jsx"
	"github.com/speakeasy-api/jsxlint/jsx/ast"
)

// jsdocGap matches what may sit between a JSDoc comment and the class it documents.
var jsdocGap = regexp.MustCompile(`^\s*(?:export\s+(?:default\s+)?)?(?:(?:const|let|var)\s+[\w$]+\s*=\s*)?$`)

// componentDetector recognizes components using the pragma and createClass names from
// the shared settings.
type componentDetector struct {
	doc       *jsx.Document
	es6Super  *regexp.Regexp
	es5Callee *regexp.Regexp
	jsdoc     *regexp.Regexp
}

func newComponentDetector(c *Context) *componentDetector {
	settings := c.Settings()
	pragma := regexp.QuoteMeta(settings.Pragma)
	createClass := regexp.QuoteMeta(settings.CreateClass)

	return &componentDetector{
		doc:       c.Document(),
		es6Super:  regexp.MustCompile(`^(?:` + pragma + `\.)?(?:Pure)?Component$`),
		es5Callee: regexp.MustCompile(`^(?:` + pragma + `\.)?` + createClass + `$`),
		jsdoc:     regexp.MustCompile(`@(?:extends|augments)\s+\{?(?:` + pragma + `\.)?(?:Pure)?Component\b`),
	}
}

// isES6Component reports whether cls extends the framework's Component or PureComponent,
// either directly or as declared by a JSDoc @extends/@augments tag.
func (d *componentDetector) isES6Component(cls *ast.Class) bool {
	if cls == nil {
		return false
	}
	if cls.SuperClass == nil {
		return false
	}
	if d.es6Super.MatchString(strings.TrimSpace(d.doc.Text(cls.SuperClass))) {
		return true
	}
	comment, ok := d.leadingJSDoc(cls.Pos())
	return ok && d.jsdoc.MatchString(comment.Text)
}

func (d *componentDetector) leadingJSDoc(offset int) (*ast.Comment, bool) {
	comments := d.doc.Program.Comments
	i := sort.Search(len(comments), func(i int) bool {
		return comments[i].End() > offset
	}) - 1
	if i < 0 {
		return nil, false
	}
	c := comments[i]
	if !c.Block || !strings.HasPrefix(c.Text, "*") {
		return nil, false
	}
	if !jsdocGap.Match(d.doc.Source[c.End():offset]) {
		return nil, false
	}
	return &c, true
}

// isES5Component reports whether obj is the spec object passed to createClass.
func (d *componentDetector) isES5Component(obj *ast.ObjectExpression, parent ast.Node) bool {
	call, ok := parent.(*ast.CallExpression)
	if !ok || obj == nil || len(call.Arguments) == 0 {
		return false
	}
	if call.Arguments[0] != ast.Node(obj) {
		return false
	}
	return d.es5Callee.MatchString(strings.TrimSpace(d.doc.Text(call.Callee)))
}

// isSFC reports whether fn is a stateless function component: a function returning JSX
// that is not a method and not an argument of a call.
func (d *componentDetector) isSFC(fn *ast.Function, parent ast.Node) bool {
	if fn == nil {
		return false
	}
	switch p := parent.(type) {
	case *ast.MethodDefinition:
		return false
	case *ast.Property:
		if p.Method || p.PropKind == "get" || p.PropKind == "set" {
			return false
		}
	case *ast.CallExpression, *ast.NewExpression:
		return false
	}
	return returnsJSX(fn)
}

func returnsJSX(fn *ast.Function) bool {
	if fn.Expression {
		return isJSX(fn.Body)
	}

	found := false
	ast.Inspect(fn.Body, func(n ast.Node) bool {
		if found {
			return false
		}
		switch n := n.(type) {
		case *ast.Function, *ast.Class:
			return false
		case *ast.ReturnStatement:
			found = isJSX(n.Argument)
			return false
		}
		return true
	})
	return found
}

func isJSX(n ast.Node) bool {
	switch n := n.(type) {
	case *ast.JSXElement, *ast.JSXFragment:
		return true
	case *ast.ConditionalExpression:
		return isJSX(n.Consequent) || isJSX(n.Alternate)
	case *ast.LogicalExpression:
		return isJSX(n.Left) || isJSX(n.Right)
	case *ast.SequenceExpression:
		return len(n.Expressions) > 0 && isJSX(n.Expressions[len(n.Expressions)-1])
	}
	return false
}

// componentKind is what kind of component encloses a node.
type componentKind int

const (
	componentNone componentKind = iota
	componentES6
	componentES5
)

// enclosingComponent finds the innermost class or createClass spec object around the
// node whose ancestors are given, and reports which kind of component it is. A class
// that is not a component hides any component around it.
func (d *componentDetector) enclosingComponent(ancestors []ast.Node) (ast.Node, componentKind) {
	for i := len(ancestors) - 1; i >= 0; i-- {
		switch n := ancestors[i].(type) {
		case *ast.Class:
			if d.isES6Component(n) {
				return n, componentES6
			}
			return nil, componentNone
		case *ast.ObjectExpression:
			if i > 0 && d.isES5Component(n, ancestors[i-1]) {
				return n, componentES5
			}
		}
	}
	return nil, componentNone
}

// innermostFunction returns the closest enclosing function and its parent.
func innermostFunction(ancestors []ast.Node) (*ast.Function, ast.Node) {
	for i := len(ancestors) - 1; i >= 0; i-- {
		fn, ok := ancestors[i].(*ast.Function)
		if !ok {
			continue
		}
		var parent ast.Node
		if i > 0 {
			parent = ancestors[i-1]
		}
		return fn, parent
	}
	return nil, nil
}

// memberKeyName returns the static name of a class member or object property key.
func memberKeyName(n ast.Node) (string, bool) {
	switch n := n.(type) {
	case *ast.MethodDefinition:
		return ast.PropertyName(n.Key, n.Computed)
	case *ast.ClassProperty:
		return ast.PropertyName(n.Key, n.Computed)
	case *ast.Property:
		return ast.PropertyName(n.Key, n.Computed)
	}
	return "", false
}
