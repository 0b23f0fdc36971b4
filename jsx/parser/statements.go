package parser

import (
	"github.com/speakeasy-api/jsxlint/jsx/ast"
)

func (p *parser) parseProgram() *ast.Program {
	p.setToken(p.s.scan(0))

	prog := &ast.Program{SourceType: "module"}
	prog.Body = p.parseStatementList(true, func() bool { return p.tok.kind == tokEOF })
	prog.Loc = ast.Span(0, len(p.src))
	prog.Comments = p.comments
	return prog
}

// parseStatementList parses statements until done reports true. Leading string
// literal statements are marked as directives when directives is set.
func (p *parser) parseStatementList(directives bool, done func() bool) []ast.Node {
	body := []ast.Node{}
	for !done() {
		stmt := p.parseStatement()
		if directives {
			directives = markDirective(stmt, p.src)
		}
		body = append(body, stmt)
	}
	return body
}

func markDirective(stmt ast.Node, src []byte) bool {
	es, ok := stmt.(*ast.ExpressionStatement)
	if !ok {
		return false
	}
	lit, ok := es.Expression.(*ast.Literal)
	if !ok {
		return false
	}
	if _, ok := lit.Value.(string); !ok || len(lit.Raw) < 2 {
		return false
	}
	es.Directive = lit.Raw[1 : len(lit.Raw)-1]
	return true
}

func (p *parser) parseStatement() ast.Node {
	start := p.tok.start

	if p.tok.kind == tokPunct {
		switch p.tok.value {
		case "{":
			return p.parseBlock()
		case ";":
			p.next()
			return &ast.EmptyStatement{Loc: p.span(start)}
		}
	}

	if p.tok.kind == tokName {
		switch p.tok.value {
		case "var", "const":
			return p.parseVarStatement()
		case "let":
			if next := p.peek(); next.kind == tokName || next.is("[") || next.is("{") {
				return p.parseVarStatement()
			}
		case "function":
			return p.parseFunction(start, true, false, true)
		case "async":
			if next := p.peek(); next.isName("function") && !next.nl {
				p.next()
				return p.parseFunction(start, true, true, true)
			}
		case "class":
			return p.parseClass(start, true, true)
		case "if":
			return p.parseIf()
		case "for":
			return p.parseFor()
		case "while":
			p.next()
			test := p.parseParenExpression()
			body := p.parseStatement()
			return &ast.WhileStatement{Loc: p.span(start), Test: test, Body: body}
		case "do":
			p.next()
			body := p.parseStatement()
			p.expectName("while")
			test := p.parseParenExpression()
			p.eat(";")
			return &ast.DoWhileStatement{Loc: p.span(start), Body: body, Test: test}
		case "return":
			return p.parseReturn()
		case "break", "continue":
			return p.parseBreakContinue()
		case "throw":
			p.next()
			if p.tok.nl {
				p.fail(p.prevEnd, "Illegal newline after throw")
			}
			arg := p.parseExpression()
			p.semicolon()
			return &ast.ThrowStatement{Loc: p.span(start), Argument: arg}
		case "try":
			return p.parseTry()
		case "switch":
			return p.parseSwitch()
		case "debugger":
			p.next()
			p.semicolon()
			return &ast.DebuggerStatement{Loc: p.span(start)}
		case "import":
			if next := p.peek(); !next.is("(") && !next.is(".") {
				return p.parseImport()
			}
		case "export":
			return p.parseExport()
		}
	}

	expr := p.parseExpression()
	if id, ok := expr.(*ast.Identifier); ok && p.tok.is(":") {
		p.next()
		body := p.parseStatement()
		return &ast.LabeledStatement{Loc: p.span(start), Label: id, Body: body}
	}
	p.semicolon()
	return &ast.ExpressionStatement{Loc: p.span(start), Expression: expr}
}

func (p *parser) parseBlock() *ast.BlockStatement {
	start := p.tok.start
	p.expect("{")
	body := p.parseStatementList(false, func() bool { return p.tok.is("}") })
	p.expect("}")
	return &ast.BlockStatement{Loc: p.span(start), Body: body}
}

func (p *parser) parseFunctionBody(directives bool) *ast.BlockStatement {
	start := p.tok.start
	p.expect("{")
	body := p.parseStatementList(directives, func() bool { return p.tok.is("}") })
	p.expect("}")
	return &ast.BlockStatement{Loc: p.span(start), Body: body}
}

func (p *parser) parseParenExpression() ast.Node {
	p.expect("(")
	restore := p.allowIn()
	expr := p.parseExpression()
	restore()
	p.expect(")")
	return expr
}

func (p *parser) parseVarStatement() ast.Node {
	decl := p.parseVarDeclarations()
	p.semicolon()
	decl.Loc = p.span(decl.Pos())
	return decl
}

func (p *parser) parseVarDeclarations() *ast.VariableDeclaration {
	start := p.tok.start
	keyword := p.tok.value
	p.next()

	decl := &ast.VariableDeclaration{Keyword: keyword}
	for {
		dstart := p.tok.start
		id := p.parseBindingTarget()
		var init ast.Node
		if p.eat("=") {
			init = p.parseAssign()
		}
		decl.Declarations = append(decl.Declarations, &ast.VariableDeclarator{Loc: p.span(dstart), ID: id, Init: init})
		if !p.eat(",") {
			break
		}
	}
	decl.Loc = p.span(start)
	return decl
}

func (p *parser) parseIf() ast.Node {
	start := p.tok.start
	p.next()
	test := p.parseParenExpression()
	cons := p.parseStatement()
	var alt ast.Node
	if p.tok.isName("else") {
		p.next()
		alt = p.parseStatement()
	}
	return &ast.IfStatement{Loc: p.span(start), Test: test, Consequent: cons, Alternate: alt}
}

func (p *parser) parseFor() ast.Node {
	start := p.tok.start
	p.next()
	await := false
	if p.tok.isName("await") {
		await = true
		p.next()
	}
	p.expect("(")

	var init ast.Node
	switch {
	case p.tok.is(";"):
	case p.tok.isName("var") || p.tok.isName("const") || (p.tok.isName("let") && p.letStartsDeclaration()):
		noIn := p.noIn
		p.noIn = true
		decl := p.parseVarDeclarations()
		p.noIn = noIn
		if (p.tok.isName("of") || p.tok.isName("in")) && len(decl.Declarations) == 1 {
			return p.parseForInOf(start, decl, await)
		}
		init = decl
	default:
		noIn := p.noIn
		p.noIn = true
		expr := p.parseExpression()
		p.noIn = noIn
		if p.tok.isName("of") || p.tok.isName("in") {
			return p.parseForInOf(start, p.toPattern(expr, false), await)
		}
		init = expr
	}

	p.expect(";")
	var test, update ast.Node
	if !p.tok.is(";") {
		test = p.parseExpression()
	}
	p.expect(";")
	if !p.tok.is(")") {
		update = p.parseExpression()
	}
	p.expect(")")
	body := p.parseStatement()
	return &ast.ForStatement{Loc: p.span(start), Init: init, Test: test, Update: update, Body: body}
}

func (p *parser) letStartsDeclaration() bool {
	next := p.peek()
	return next.kind == tokName || next.is("[") || next.is("{")
}

func (p *parser) parseForInOf(start int, left ast.Node, await bool) ast.Node {
	isOf := p.tok.isName("of")
	p.next()
	var right ast.Node
	if isOf {
		right = p.parseAssign()
	} else {
		right = p.parseExpression()
	}
	p.expect(")")
	body := p.parseStatement()
	if isOf {
		return &ast.ForOfStatement{Loc: p.span(start), Left: left, Right: right, Body: body, Await: await}
	}
	return &ast.ForInStatement{Loc: p.span(start), Left: left, Right: right, Body: body}
}

func (p *parser) parseReturn() ast.Node {
	start := p.tok.start
	p.next()
	var arg ast.Node
	if !p.canInsertSemicolon() {
		arg = p.parseExpression()
	}
	p.semicolon()
	return &ast.ReturnStatement{Loc: p.span(start), Argument: arg}
}

func (p *parser) parseBreakContinue() ast.Node {
	start := p.tok.start
	isBreak := p.tok.value == "break"
	p.next()
	var label *ast.Identifier
	if p.tok.kind == tokName && !p.tok.nl && !isReserved(p.tok.value) {
		label = p.parseIdent(false)
	}
	p.semicolon()
	if isBreak {
		return &ast.BreakStatement{Loc: p.span(start), Label: label}
	}
	return &ast.ContinueStatement{Loc: p.span(start), Label: label}
}

func (p *parser) parseTry() ast.Node {
	start := p.tok.start
	p.next()
	stmt := &ast.TryStatement{Block: p.parseBlock()}

	if p.tok.isName("catch") {
		cstart := p.tok.start
		p.next()
		clause := &ast.CatchClause{}
		if p.eat("(") {
			clause.Param = p.parseBindingTarget()
			p.expect(")")
		}
		clause.Body = p.parseBlock()
		clause.Loc = p.span(cstart)
		stmt.Handler = clause
	}
	if p.tok.isName("finally") {
		p.next()
		stmt.Finalizer = p.parseBlock()
	}
	if stmt.Handler == nil && stmt.Finalizer == nil {
		p.fail(p.tok.start, "Missing catch or finally clause")
	}
	stmt.Loc = p.span(start)
	return stmt
}

func (p *parser) parseSwitch() ast.Node {
	start := p.tok.start
	p.next()
	stmt := &ast.SwitchStatement{Discriminant: p.parseParenExpression()}
	p.expect("{")
	for !p.tok.is("}") {
		cstart := p.tok.start
		sc := &ast.SwitchCase{}
		switch {
		case p.tok.isName("case"):
			p.next()
			sc.Test = p.parseExpression()
		case p.tok.isName("default"):
			p.next()
		default:
			p.unexpected()
		}
		p.expect(":")
		sc.Consequent = p.parseStatementList(false, func() bool {
			return p.tok.is("}") || p.tok.isName("case") || p.tok.isName("default")
		})
		sc.Loc = p.span(cstart)
		stmt.Cases = append(stmt.Cases, sc)
	}
	p.expect("}")
	stmt.Loc = p.span(start)
	return stmt
}

func (p *parser) parseImport() ast.Node {
	start := p.tok.start
	p.next()
	decl := &ast.ImportDeclaration{Specifiers: []ast.Node{}}

	if p.tok.kind != tokString {
		if p.tok.kind == tokName {
			local := p.parseIdent(false)
			decl.Specifiers = append(decl.Specifiers, &ast.ImportDefaultSpecifier{Loc: local.Loc, Local: local})
			if p.eat(",") {
				p.parseImportSpecifiers(decl)
			}
		} else {
			p.parseImportSpecifiers(decl)
		}
		p.expectName("from")
	}

	decl.Source = p.parseModuleSource()
	p.skipImportAttributes()
	p.semicolon()
	decl.Loc = p.span(start)
	return decl
}

// parseImportSpecifiers parses a namespace import or a braced list of named imports.
func (p *parser) parseImportSpecifiers(decl *ast.ImportDeclaration) {
	switch {
	case p.tok.is("*"):
		start := p.tok.start
		p.next()
		p.expectName("as")
		local := p.parseIdent(false)
		decl.Specifiers = append(decl.Specifiers, &ast.ImportNamespaceSpecifier{Loc: p.span(start), Local: local})
	case p.tok.is("{"):
		p.next()
		for !p.tok.is("}") {
			start := p.tok.start
			imported := p.parseModuleExportName()
			local := imported
			if p.tok.isName("as") {
				p.next()
				local = p.parseIdent(false)
			}
			decl.Specifiers = append(decl.Specifiers, &ast.ImportSpecifier{Loc: p.span(start), Imported: imported, Local: local})
			if !p.tok.is("}") {
				p.expect(",")
			}
		}
		p.next()
	default:
		p.unexpected()
	}
}

func (p *parser) parseModuleSource() *ast.Literal {
	if p.tok.kind != tokString {
		p.unexpected()
	}
	lit := &ast.Literal{Loc: ast.Span(p.tok.start, p.tok.end), Value: p.tok.value, Raw: p.tok.raw}
	p.next()
	return lit
}

// parseModuleExportName parses an import or export binding name. String names are
// accepted and represented as identifiers.
func (p *parser) parseModuleExportName() *ast.Identifier {
	if p.tok.kind == tokString {
		id := &ast.Identifier{Loc: ast.Span(p.tok.start, p.tok.end), Name: p.tok.value}
		p.next()
		return id
	}
	return p.parseIdent(true)
}

// skipImportAttributes consumes a trailing `with { type: "json" }` clause.
func (p *parser) skipImportAttributes() {
	if (p.tok.isName("with") || p.tok.isName("assert")) && !p.tok.nl {
		p.next()
		p.parseObjectLiteral()
	}
}

func (p *parser) parseExport() ast.Node {
	start := p.tok.start
	p.next()

	switch {
	case p.tok.isName("default"):
		p.next()
		var decl ast.Node
		dstart := p.tok.start
		switch {
		case p.tok.isName("function"):
			decl = p.parseFunction(dstart, true, false, false)
		case p.tok.isName("async") && p.peek().isName("function") && !p.peek().nl:
			p.next()
			decl = p.parseFunction(dstart, true, true, false)
		case p.tok.isName("class"):
			decl = p.parseClass(dstart, true, false)
		default:
			decl = p.parseAssign()
			p.semicolon()
		}
		return &ast.ExportDefaultDeclaration{Loc: p.span(start), Declaration: decl}

	case p.tok.is("*"):
		p.next()
		stmt := &ast.ExportAllDeclaration{}
		if p.tok.isName("as") {
			p.next()
			stmt.Exported = p.parseModuleExportName()
		}
		p.expectName("from")
		stmt.Source = p.parseModuleSource()
		p.skipImportAttributes()
		p.semicolon()
		stmt.Loc = p.span(start)
		return stmt

	case p.tok.is("{"):
		p.next()
		stmt := &ast.ExportNamedDeclaration{Specifiers: []*ast.ExportSpecifier{}}
		for !p.tok.is("}") {
			sstart := p.tok.start
			local := p.parseModuleExportName()
			exported := local
			if p.tok.isName("as") {
				p.next()
				exported = p.parseModuleExportName()
			}
			stmt.Specifiers = append(stmt.Specifiers, &ast.ExportSpecifier{Loc: p.span(sstart), Local: local, Exported: exported})
			if !p.tok.is("}") {
				p.expect(",")
			}
		}
		p.next()
		if p.tok.isName("from") {
			p.next()
			stmt.Source = p.parseModuleSource()
			p.skipImportAttributes()
		}
		p.semicolon()
		stmt.Loc = p.span(start)
		return stmt
	}

	var decl ast.Node
	dstart := p.tok.start
	switch {
	case p.tok.isName("var") || p.tok.isName("let") || p.tok.isName("const"):
		decl = p.parseVarStatement()
	case p.tok.isName("function"):
		decl = p.parseFunction(dstart, true, false, true)
	case p.tok.isName("async"):
		p.next()
		decl = p.parseFunction(dstart, true, true, true)
	case p.tok.isName("class"):
		decl = p.parseClass(dstart, true, true)
	default:
		p.unexpected()
	}
	return &ast.ExportNamedDeclaration{Loc: p.span(start), Declaration: decl, Specifiers: []*ast.ExportSpecifier{}}
}
