// Package parser implements a parser for JavaScript modules with JSX and class fields,
// producing the syntax tree declared in the jsx/ast package.
package parser

import (
	"fmt"

	"github.com/speakeasy-api/jsxlint/jsx/ast"
)

// Parse parses src as an ES module containing JSX. On failure the returned error is a
// *SyntaxError.
func Parse(src []byte) (prog *ast.Program, err error) {
	p := &parser{
		src: src,
		s:   scanner{src: src},
	}

	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			prog = nil
			err = b.err
		}
	}()

	return p.parseProgram(), nil
}

type parser struct {
	src []byte
	s   scanner

	tok     token
	prevEnd int

	comments       []ast.Comment
	lastCommentEnd int

	inFunction  bool
	inAsync     bool
	inGenerator bool
	// noIn disables the 'in' operator while parsing a for-statement head.
	noIn bool
}

func (p *parser) fail(offset int, msg string) {
	panic(bailout{err: newSyntaxError(p.src, offset, msg)})
}

func (p *parser) unexpected() {
	switch p.tok.kind {
	case tokEOF:
		p.fail(p.tok.start, "Unexpected end of input")
	case tokTemplate:
		p.fail(p.tok.start, "Unexpected template string")
	default:
		p.fail(p.tok.start, fmt.Sprintf("Unexpected token '%s'", p.tokenText()))
	}
}

func (p *parser) tokenText() string {
	if p.tok.kind == tokPunct || p.tok.kind == tokName {
		return p.tok.value
	}
	if p.tok.end > p.tok.start && p.tok.end <= len(p.src) {
		return string(p.src[p.tok.start:p.tok.end])
	}
	return p.tok.raw
}

func (p *parser) setToken(t token) {
	if t.kind == tokIllegal {
		p.fail(t.start, t.errMsg)
	}
	for _, c := range t.comments {
		if c.Pos() >= p.lastCommentEnd {
			p.comments = append(p.comments, c)
			p.lastCommentEnd = c.End()
		}
	}
	p.tok = t
}

// next advances to the next regular token.
func (p *parser) next() {
	p.prevEnd = p.tok.end
	p.setToken(p.s.scan(p.tok.end))
}

func (p *parser) nextJSXTag() {
	p.prevEnd = p.tok.end
	p.setToken(p.s.scanJSXTag(p.tok.end))
}

func (p *parser) nextJSXChild() {
	p.prevEnd = p.tok.end
	p.setToken(p.s.scanJSXChild(p.tok.end))
}

// peek returns the regular token after the current one without consuming anything.
func (p *parser) peek() token {
	return p.s.scan(p.tok.end)
}

func (p *parser) rescanRegex() {
	p.setToken(p.s.scanRegex(p.tok))
}

func (p *parser) rescanTemplateContinuation() {
	p.setToken(p.s.scanTemplate(token{nl: p.tok.nl}, p.tok.start))
}

func (p *parser) eat(punct string) bool {
	if p.tok.is(punct) {
		p.next()
		return true
	}
	return false
}

func (p *parser) expect(punct string) {
	if !p.tok.is(punct) {
		p.unexpected()
	}
	p.next()
}

func (p *parser) expectName(name string) {
	if !p.tok.isName(name) {
		p.unexpected()
	}
	p.next()
}

// semicolon consumes a statement terminator, applying automatic semicolon insertion.
func (p *parser) semicolon() {
	if p.eat(";") {
		return
	}
	if p.tok.is("}") || p.tok.kind == tokEOF || p.tok.nl {
		return
	}
	p.unexpected()
}

func (p *parser) canInsertSemicolon() bool {
	return p.tok.kind == tokEOF || p.tok.is("}") || p.tok.is(";") || p.tok.nl
}

func (p *parser) parseIdent(allowReserved bool) *ast.Identifier {
	if p.tok.kind != tokName {
		p.unexpected()
	}
	if !allowReserved && isReserved(p.tok.value) {
		p.unexpected()
	}
	id := &ast.Identifier{Loc: ast.Span(p.tok.start, p.tok.end), Name: p.tok.value}
	p.next()
	return id
}

func (p *parser) span(start int) ast.Loc {
	return ast.Span(start, p.prevEnd)
}

// enterFunction sets the function context flags and returns a func restoring them.
func (p *parser) enterFunction(async, generator bool) func() {
	inFunction, inAsync, inGenerator, noIn := p.inFunction, p.inAsync, p.inGenerator, p.noIn
	p.inFunction, p.inAsync, p.inGenerator, p.noIn = true, async, generator, false
	return func() {
		p.inFunction, p.inAsync, p.inGenerator, p.noIn = inFunction, inAsync, inGenerator, noIn
	}
}

// allowIn clears noIn for a bracketed sub-expression and returns a func restoring it.
func (p *parser) allowIn() func() {
	noIn := p.noIn
	p.noIn = false
	return func() { p.noIn = noIn }
}

var reservedWords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true, "continue": true,
	"debugger": true, "default": true, "delete": true, "do": true, "else": true, "enum": true,
	"export": true, "extends": true, "false": true, "finally": true, "for": true, "function": true,
	"if": true, "import": true, "in": true, "instanceof": true, "new": true, "null": true,
	"return": true, "super": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "var": true, "void": true, "while": true, "with": true,
}

func isReserved(name string) bool {
	return reservedWords[name]
}
