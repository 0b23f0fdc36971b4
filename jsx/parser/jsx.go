package parser

import (
	"fmt"

	"github.com/speakeasy-api/jsxlint/jsx/ast"
)

// parseJSXElementAt parses a JSX element or fragment in expression position. The
// current token is the opening '<'.
func (p *parser) parseJSXElementAt() ast.Node {
	start := p.tok.start
	p.nextJSXTag()
	node := p.parseJSXAfterOpen(start)
	// the closing '>' is still current
	p.next()
	return node
}

// parseJSXAfterOpen parses an element whose '<' at start has been consumed, leaving the
// element's final '>' as the current token.
func (p *parser) parseJSXAfterOpen(start int) ast.Node {
	if p.tok.is(">") {
		opening := &ast.JSXOpeningFragment{Loc: ast.Span(start, p.tok.end)}
		children, closing := p.parseJSXChildren(nil)
		closeFrag, ok := closing.(*ast.JSXClosingFragment)
		if !ok {
			p.fail(closing.Pos(), "Expected corresponding closing tag for JSX fragment")
		}
		return &ast.JSXFragment{
			Loc:             ast.Span(start, p.tok.end),
			OpeningFragment: opening,
			ClosingFragment: closeFrag,
			Children:        children,
		}
	}

	name := p.parseJSXElementName()
	attrs := []ast.Node{}
	selfClosing := false
	for {
		if p.tok.is("/") {
			p.nextJSXTag()
			if !p.tok.is(">") {
				p.unexpected()
			}
			selfClosing = true
			break
		}
		if p.tok.is(">") {
			break
		}
		attrs = append(attrs, p.parseJSXAttribute())
	}

	opening := &ast.JSXOpeningElement{
		Loc:         ast.Span(start, p.tok.end),
		Name:        name,
		Attributes:  attrs,
		SelfClosing: selfClosing,
	}
	el := &ast.JSXElement{OpeningElement: opening, Children: []ast.Node{}}
	if !selfClosing {
		children, closing := p.parseJSXChildren(name)
		closeEl, ok := closing.(*ast.JSXClosingElement)
		if !ok || ast.JSXElementName(closeEl.Name) != ast.JSXElementName(name) {
			p.fail(closing.Pos(), fmt.Sprintf("Expected corresponding JSX closing tag for <%s>", ast.JSXElementName(name)))
		}
		el.Children = children
		el.ClosingElement = closeEl
	}
	el.Loc = ast.Span(start, p.tok.end)
	return el
}

func (p *parser) parseJSXIdentifier() *ast.JSXIdentifier {
	if p.tok.kind != tokName {
		p.unexpected()
	}
	id := &ast.JSXIdentifier{Loc: ast.Span(p.tok.start, p.tok.end), Name: p.tok.value}
	p.nextJSXTag()
	return id
}

func (p *parser) parseJSXElementName() ast.Node {
	start := p.tok.start
	id := p.parseJSXIdentifier()
	if p.tok.is(":") {
		p.nextJSXTag()
		name := p.parseJSXIdentifier()
		return &ast.JSXNamespacedName{Loc: ast.Span(start, name.End()), Namespace: id, Name: name}
	}

	var name ast.Node = id
	for p.tok.is(".") {
		p.nextJSXTag()
		prop := p.parseJSXIdentifier()
		name = &ast.JSXMemberExpression{Loc: ast.Span(start, prop.End()), Object: name, Property: prop}
	}
	return name
}

func (p *parser) parseJSXAttribute() ast.Node {
	start := p.tok.start

	if p.tok.is("{") {
		p.next()
		p.expect("...")
		arg := p.parseAssign()
		if !p.tok.is("}") {
			p.unexpected()
		}
		attr := &ast.JSXSpreadAttribute{Loc: ast.Span(start, p.tok.end), Argument: arg}
		p.nextJSXTag()
		return attr
	}

	var name ast.Node = p.parseJSXIdentifier()
	if p.tok.is(":") {
		p.nextJSXTag()
		local := p.parseJSXIdentifier()
		name = &ast.JSXNamespacedName{Loc: ast.Span(start, local.End()), Namespace: name.(*ast.JSXIdentifier), Name: local}
	}

	attr := &ast.JSXAttribute{Name: name}
	if p.tok.is("=") {
		p.nextJSXTag()
		attr.Value = p.parseJSXAttributeValue()
	}
	attr.Loc = ast.Span(start, p.prevEnd)
	return attr
}

func (p *parser) parseJSXAttributeValue() ast.Node {
	start := p.tok.start

	switch {
	case p.tok.kind == tokString:
		lit := &ast.Literal{Loc: ast.Span(p.tok.start, p.tok.end), Value: p.tok.value, Raw: p.tok.raw}
		p.nextJSXTag()
		return lit
	case p.tok.is("{"):
		p.next()
		if p.tok.is("}") {
			p.fail(start, "JSX attributes must only be assigned a non-empty expression")
		}
		expr := p.parseAssign()
		if !p.tok.is("}") {
			p.unexpected()
		}
		container := &ast.JSXExpressionContainer{Loc: ast.Span(start, p.tok.end), Expression: expr}
		p.nextJSXTag()
		return container
	case p.tok.is("<"):
		p.nextJSXTag()
		el := p.parseJSXAfterOpen(start)
		p.nextJSXTag()
		return el
	}

	p.unexpected()
	return nil
}

// parseJSXChildren parses children up to and including the closing tag. openName is nil
// for fragments. The closing tag's '>' is left as the current token.
func (p *parser) parseJSXChildren(openName ast.Node) ([]ast.Node, ast.Node) {
	children := []ast.Node{}
	p.nextJSXChild()

	for {
		start := p.tok.start
		switch {
		case p.tok.kind == tokJSXText:
			children = append(children, &ast.JSXText{Loc: ast.Span(p.tok.start, p.tok.end), Value: p.tok.value, Raw: p.tok.raw})
			p.nextJSXChild()

		case p.tok.is("{"):
			p.next()
			switch {
			case p.tok.is("}"):
				empty := &ast.JSXEmptyExpression{Loc: ast.Span(start+1, p.tok.start)}
				children = append(children, &ast.JSXExpressionContainer{Loc: ast.Span(start, p.tok.end), Expression: empty})
			case p.tok.is("..."):
				p.next()
				expr := p.parseExpression()
				if !p.tok.is("}") {
					p.unexpected()
				}
				children = append(children, &ast.JSXSpreadChild{Loc: ast.Span(start, p.tok.end), Expression: expr})
			default:
				expr := p.parseExpression()
				if !p.tok.is("}") {
					p.unexpected()
				}
				children = append(children, &ast.JSXExpressionContainer{Loc: ast.Span(start, p.tok.end), Expression: expr})
			}
			p.nextJSXChild()

		case p.tok.is("<"):
			p.nextJSXTag()
			if !p.tok.is("/") {
				children = append(children, p.parseJSXAfterOpen(start))
				p.nextJSXChild()
				continue
			}

			p.nextJSXTag()
			if p.tok.is(">") {
				if openName != nil {
					p.fail(start, fmt.Sprintf("Expected corresponding JSX closing tag for <%s>", ast.JSXElementName(openName)))
				}
				return children, &ast.JSXClosingFragment{Loc: ast.Span(start, p.tok.end)}
			}
			if openName == nil {
				p.fail(start, "Expected corresponding closing tag for JSX fragment")
			}
			name := p.parseJSXElementName()
			if !p.tok.is(">") {
				p.unexpected()
			}
			return children, &ast.JSXClosingElement{Loc: ast.Span(start, p.tok.end), Name: name}

		default:
			p.unexpected()
		}
	}
}
