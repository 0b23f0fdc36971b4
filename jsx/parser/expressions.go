package parser

import (
	"github.com/speakeasy-api/jsxlint/jsx/ast"
)

var assignOps = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true, "**=": true,
	"<<=": true, ">>=": true, ">>>=": true, "&=": true, "|=": true, "^=": true,
	"&&=": true, "||=": true, "??=": true,
}

var binaryPrecedence = map[string]int{
	"??": 1, "||": 1,
	"&&": 2,
	"|":  3,
	"^":  4,
	"&":  5,
	"==": 6, "!=": 6, "===": 6, "!==": 6,
	"<": 7, ">": 7, "<=": 7, ">=": 7, "in": 7, "instanceof": 7,
	"<<": 8, ">>": 8, ">>>": 8,
	"+": 9, "-": 9,
	"*": 10, "/": 10, "%": 10,
	"**": 11,
}

func (p *parser) parseExpression() ast.Node {
	start := p.tok.start
	expr := p.parseAssign()
	if !p.tok.is(",") {
		return expr
	}
	exprs := []ast.Node{expr}
	for p.eat(",") {
		exprs = append(exprs, p.parseAssign())
	}
	return &ast.SequenceExpression{Loc: p.span(start), Expressions: exprs}
}

func (p *parser) parseAssign() ast.Node {
	if p.inGenerator && p.tok.isName("yield") {
		return p.parseYield()
	}

	start := p.tok.start
	left := p.parseConditional()
	if p.tok.kind != tokPunct || !assignOps[p.tok.value] {
		return left
	}

	op := p.tok.value
	if op == "=" {
		left = p.toPattern(left, false)
	} else if !isSimpleTarget(left) {
		p.fail(start, "Invalid left-hand side in assignment")
	}
	p.next()
	right := p.parseAssign()
	return &ast.AssignmentExpression{Loc: p.span(start), Operator: op, Left: left, Right: right}
}

func (p *parser) parseYield() ast.Node {
	start := p.tok.start
	p.next()
	y := &ast.YieldExpression{}
	if !p.tok.nl && p.tok.kind != tokEOF && !p.tok.is(")") && !p.tok.is("]") && !p.tok.is("}") &&
		!p.tok.is(",") && !p.tok.is(";") && !p.tok.is(":") {
		y.Delegate = p.eat("*")
		y.Argument = p.parseAssign()
	}
	y.Loc = p.span(start)
	return y
}

func (p *parser) parseConditional() ast.Node {
	start := p.tok.start
	test := p.parseExprOps()
	if !p.tok.is("?") {
		return test
	}
	p.next()
	restore := p.allowIn()
	cons := p.parseAssign()
	restore()
	p.expect(":")
	alt := p.parseAssign()
	return &ast.ConditionalExpression{Loc: p.span(start), Test: test, Consequent: cons, Alternate: alt}
}

func (p *parser) parseExprOps() ast.Node {
	start := p.tok.start
	left := p.parseMaybeUnary()
	if f, ok := left.(*ast.Function); ok && f.IsArrow() {
		return left
	}
	return p.parseExprOp(left, start, 0)
}

// parseExprOp applies binary operators binding tighter than minPrec by precedence climbing.
func (p *parser) parseExprOp(left ast.Node, start, minPrec int) ast.Node {
	op, prec := p.binaryOperator()
	if prec <= minPrec {
		return left
	}
	p.next()

	rstart := p.tok.start
	rightMin := prec
	if op == "**" {
		// right associative
		rightMin = prec - 1
	}
	right := p.parseExprOp(p.parseMaybeUnary(), rstart, rightMin)

	var node ast.Node
	if op == "||" || op == "&&" || op == "??" {
		node = &ast.LogicalExpression{Loc: p.span(start), Operator: op, Left: left, Right: right}
	} else {
		node = &ast.BinaryExpression{Loc: p.span(start), Operator: op, Left: left, Right: right}
	}
	return p.parseExprOp(node, start, minPrec)
}

func (p *parser) binaryOperator() (string, int) {
	switch p.tok.kind {
	case tokPunct:
		return p.tok.value, binaryPrecedence[p.tok.value]
	case tokName:
		if p.tok.value == "instanceof" || (p.tok.value == "in" && !p.noIn) {
			return p.tok.value, binaryPrecedence[p.tok.value]
		}
	}
	return "", 0
}

func (p *parser) parseMaybeUnary() ast.Node {
	start := p.tok.start

	switch {
	case p.tok.kind == tokPunct && (p.tok.value == "!" || p.tok.value == "~" || p.tok.value == "+" || p.tok.value == "-"),
		p.tok.isName("typeof") || p.tok.isName("void") || p.tok.isName("delete"):
		op := p.tok.value
		p.next()
		arg := p.parseMaybeUnary()
		return &ast.UnaryExpression{Loc: p.span(start), Operator: op, Prefix: true, Argument: arg}

	case p.tok.is("++") || p.tok.is("--"):
		op := p.tok.value
		p.next()
		arg := p.parseMaybeUnary()
		if !isSimpleTarget(arg) {
			p.fail(arg.Pos(), "Invalid left-hand side in prefix operation")
		}
		return &ast.UpdateExpression{Loc: p.span(start), Operator: op, Prefix: true, Argument: arg}

	case p.tok.isName("await") && (p.inAsync || !p.inFunction):
		p.next()
		arg := p.parseMaybeUnary()
		return &ast.AwaitExpression{Loc: p.span(start), Argument: arg}
	}

	expr := p.parseExprSubscripts()
	if (p.tok.is("++") || p.tok.is("--")) && !p.tok.nl {
		if !isSimpleTarget(expr) {
			p.fail(start, "Invalid left-hand side in postfix operation")
		}
		op := p.tok.value
		p.next()
		expr = &ast.UpdateExpression{Loc: p.span(start), Operator: op, Argument: expr}
	}
	return expr
}

func (p *parser) parseExprSubscripts() ast.Node {
	start := p.tok.start
	expr := p.parseExprAtom()
	if f, ok := expr.(*ast.Function); ok && f.IsArrow() {
		return expr
	}
	return p.parseSubscripts(expr, start, false)
}

// parseSubscripts parses member accesses, calls and tagged templates following base.
// Calls are not consumed when noCalls is set, for the callee of a new expression.
func (p *parser) parseSubscripts(base ast.Node, start int, noCalls bool) ast.Node {
	chained := false
	for {
		switch {
		case p.tok.is("?."):
			if noCalls {
				p.fail(p.tok.start, "Invalid optional chain from new expression")
			}
			chained = true
			p.next()
			switch {
			case p.tok.is("("):
				args := p.parseArguments()
				base = &ast.CallExpression{Loc: p.span(start), Callee: base, Arguments: args, Optional: true}
			case p.tok.is("["):
				prop := p.parseComputedMember()
				base = &ast.MemberExpression{Loc: p.span(start), Object: base, Property: prop, Computed: true, Optional: true}
			default:
				prop := p.parseMemberProperty()
				base = &ast.MemberExpression{Loc: p.span(start), Object: base, Property: prop, Optional: true}
			}
		case p.tok.is("."):
			p.next()
			prop := p.parseMemberProperty()
			base = &ast.MemberExpression{Loc: p.span(start), Object: base, Property: prop}
		case p.tok.is("["):
			prop := p.parseComputedMember()
			base = &ast.MemberExpression{Loc: p.span(start), Object: base, Property: prop, Computed: true}
		case p.tok.is("(") && !noCalls:
			args := p.parseArguments()
			base = &ast.CallExpression{Loc: p.span(start), Callee: base, Arguments: args}
		case p.tok.kind == tokTemplate:
			if chained {
				p.fail(p.tok.start, "Tagged template cannot be used in optional chain")
			}
			quasi := p.parseTemplate()
			base = &ast.TaggedTemplateExpression{Loc: p.span(start), Tag: base, Quasi: quasi}
		default:
			if chained {
				return &ast.ChainExpression{Loc: p.span(start), Expression: base}
			}
			return base
		}
	}
}

func (p *parser) parseComputedMember() ast.Node {
	p.expect("[")
	restore := p.allowIn()
	prop := p.parseExpression()
	restore()
	p.expect("]")
	return prop
}

func (p *parser) parseMemberProperty() ast.Node {
	if p.tok.kind == tokPrivateName {
		id := &ast.PrivateIdentifier{Loc: ast.Span(p.tok.start, p.tok.end), Name: p.tok.value}
		p.next()
		return id
	}
	return p.parseIdent(true)
}

func (p *parser) parseArguments() []ast.Node {
	p.expect("(")
	restore := p.allowIn()
	args := []ast.Node{}
	for !p.tok.is(")") {
		if p.tok.is("...") {
			start := p.tok.start
			p.next()
			arg := p.parseAssign()
			args = append(args, &ast.SpreadElement{Loc: p.span(start), Argument: arg})
		} else {
			args = append(args, p.parseAssign())
		}
		if !p.tok.is(")") {
			p.expect(",")
		}
	}
	restore()
	p.next()
	return args
}

func (p *parser) parseNew() ast.Node {
	start := p.tok.start
	p.next()
	if p.tok.is(".") {
		meta := &ast.Identifier{Loc: ast.Span(start, start+len("new")), Name: "new"}
		p.next()
		prop := p.parseIdent(true)
		if prop.Name != "target" {
			p.fail(prop.Pos(), "The only valid meta property for new is new.target")
		}
		return &ast.MetaProperty{Loc: p.span(start), Meta: meta, Property: prop}
	}

	cstart := p.tok.start
	callee := p.parseSubscripts(p.parseExprAtom(), cstart, true)
	args := []ast.Node{}
	if p.tok.is("(") {
		args = p.parseArguments()
	}
	return &ast.NewExpression{Loc: p.span(start), Callee: callee, Arguments: args}
}

func (p *parser) parseExprAtom() ast.Node {
	start := p.tok.start

	switch p.tok.kind {
	case tokName:
		switch p.tok.value {
		case "this":
			p.next()
			return &ast.ThisExpression{Loc: p.span(start)}
		case "super":
			p.next()
			return &ast.Super{Loc: p.span(start)}
		case "null":
			p.next()
			return &ast.Literal{Loc: p.span(start), Value: nil, Raw: "null"}
		case "true", "false":
			v := p.tok.value == "true"
			raw := p.tok.value
			p.next()
			return &ast.Literal{Loc: p.span(start), Value: v, Raw: raw}
		case "function":
			return p.parseFunction(start, false, false, false)
		case "class":
			return p.parseClass(start, false, false)
		case "new":
			return p.parseNew()
		case "import":
			return p.parseImportCallOrMeta()
		case "async":
			return p.parseAsyncAtom()
		}
		id := p.parseIdent(false)
		if p.tok.is("=>") && !p.tok.nl {
			return p.parseArrowBody(start, []ast.Node{id}, false)
		}
		return id

	case tokNumber:
		lit := &ast.Literal{Loc: ast.Span(p.tok.start, p.tok.end), Value: p.tok.num, Raw: p.tok.raw}
		if p.tok.bigint != "" {
			lit.Value = nil
			lit.BigInt = p.tok.bigint
		}
		p.next()
		return lit

	case tokString:
		lit := &ast.Literal{Loc: ast.Span(p.tok.start, p.tok.end), Value: p.tok.value, Raw: p.tok.raw}
		p.next()
		return lit

	case tokTemplate:
		return p.parseTemplate()

	case tokPrivateName:
		id := &ast.PrivateIdentifier{Loc: ast.Span(p.tok.start, p.tok.end), Name: p.tok.value}
		p.next()
		return id

	case tokPunct:
		switch p.tok.value {
		case "(":
			return p.parseParenOrArrow()
		case "[":
			return p.parseArrayLiteral()
		case "{":
			return p.parseObjectLiteral()
		case "<":
			return p.parseJSXElementAt()
		case "/", "/=":
			p.rescanRegex()
			lit := &ast.Literal{
				Loc:   ast.Span(p.tok.start, p.tok.end),
				Raw:   p.tok.raw,
				Regex: &ast.RegExp{Pattern: p.tok.regexPattern, Flags: p.tok.regexFlags},
			}
			p.next()
			return lit
		}
	}

	p.unexpected()
	return nil
}

func (p *parser) parseImportCallOrMeta() ast.Node {
	start := p.tok.start
	p.next()
	switch {
	case p.tok.is("("):
		p.next()
		restore := p.allowIn()
		source := p.parseAssign()
		if p.eat(",") && !p.tok.is(")") {
			p.parseAssign()
			p.eat(",")
		}
		restore()
		p.expect(")")
		return &ast.ImportExpression{Loc: p.span(start), Source: source}
	case p.tok.is("."):
		meta := &ast.Identifier{Loc: ast.Span(start, start+len("import")), Name: "import"}
		p.next()
		prop := p.parseIdent(true)
		return &ast.MetaProperty{Loc: p.span(start), Meta: meta, Property: prop}
	}
	p.unexpected()
	return nil
}

// parseAsyncAtom handles the forms starting with the contextual keyword async: async
// functions, async arrows, a call to a function named async, or the plain identifier.
func (p *parser) parseAsyncAtom() ast.Node {
	start := p.tok.start
	id := &ast.Identifier{Loc: ast.Span(p.tok.start, p.tok.end), Name: "async"}
	p.next()
	if p.tok.nl {
		return id
	}

	switch {
	case p.tok.isName("function"):
		return p.parseFunction(start, false, true, false)
	case p.tok.kind == tokName && !isReserved(p.tok.value):
		param := p.parseIdent(false)
		if !p.tok.is("=>") {
			p.unexpected()
		}
		return p.parseArrowBody(start, []ast.Node{param}, true)
	case p.tok.is("("):
		args := p.parseArguments()
		if p.tok.is("=>") && !p.tok.nl {
			return p.parseArrowBody(start, p.toParams(args), true)
		}
		return &ast.CallExpression{Loc: p.span(start), Callee: id, Arguments: args}
	case p.tok.is("=>"):
		return p.parseArrowBody(start, []ast.Node{id}, false)
	}
	return id
}

// parseParenOrArrow parses a parenthesized expression or, when followed by =>, the
// parameter list of an arrow function.
func (p *parser) parseParenOrArrow() ast.Node {
	start := p.tok.start
	p.next()
	restore := p.allowIn()

	items := []ast.Node{}
	rest := false
	trailingComma := false
	for !p.tok.is(")") {
		if p.tok.is("...") {
			rs := p.tok.start
			p.next()
			arg := p.parseBindingTarget()
			items = append(items, &ast.RestElement{Loc: p.span(rs), Argument: arg})
			rest = true
			if !p.tok.is(")") {
				p.unexpected()
			}
			break
		}
		items = append(items, p.parseAssign())
		if !p.tok.is(")") {
			p.expect(",")
			trailingComma = p.tok.is(")")
		}
	}
	restore()
	p.expect(")")

	if p.tok.is("=>") && !p.tok.nl {
		return p.parseArrowBody(start, p.toParams(items), false)
	}
	if len(items) == 0 || rest || trailingComma {
		p.unexpected()
	}
	if len(items) == 1 {
		return items[0]
	}
	return &ast.SequenceExpression{Loc: ast.Span(items[0].Pos(), items[len(items)-1].End()), Expressions: items}
}

func (p *parser) parseArrowBody(start int, params []ast.Node, async bool) *ast.Function {
	p.expect("=>")
	fn := &ast.Function{FuncKind: ast.KindArrowFunctionExpression, Params: params, Async: async}
	restore := p.enterFunction(async, false)
	if p.tok.is("{") {
		fn.Body = p.parseFunctionBody(true)
	} else {
		fn.Body = p.parseAssign()
		fn.Expression = true
	}
	restore()
	fn.Loc = p.span(start)
	return fn
}

func (p *parser) parseArrayLiteral() ast.Node {
	start := p.tok.start
	p.next()
	restore := p.allowIn()
	elems := []ast.Node{}
	for !p.tok.is("]") {
		if p.tok.is(",") {
			p.next()
			elems = append(elems, nil)
			continue
		}
		if p.tok.is("...") {
			s := p.tok.start
			p.next()
			arg := p.parseAssign()
			elems = append(elems, &ast.SpreadElement{Loc: p.span(s), Argument: arg})
		} else {
			elems = append(elems, p.parseAssign())
		}
		if !p.tok.is("]") {
			p.expect(",")
		}
	}
	restore()
	p.next()
	return &ast.ArrayExpression{Loc: p.span(start), Elements: elems}
}

func (p *parser) parseObjectLiteral() *ast.ObjectExpression {
	start := p.tok.start
	p.expect("{")
	restore := p.allowIn()
	props := []ast.Node{}
	for !p.tok.is("}") {
		props = append(props, p.parseObjectMember())
		if !p.tok.is("}") {
			p.expect(",")
		}
	}
	restore()
	p.next()
	return &ast.ObjectExpression{Loc: p.span(start), Properties: props}
}

func isPropertyNameEnd(t token) bool {
	return t.is("(") || t.is(":") || t.is(",") || t.is("}") || t.is("=")
}

func (p *parser) parseObjectMember() ast.Node {
	start := p.tok.start
	if p.tok.is("...") {
		p.next()
		arg := p.parseAssign()
		return &ast.SpreadElement{Loc: p.span(start), Argument: arg}
	}

	isAsync, isGen := false, false
	kind := "init"
	if p.tok.isName("async") {
		if next := p.peek(); !isPropertyNameEnd(next) && !next.nl {
			isAsync = true
			p.next()
		}
	}
	if p.tok.is("*") {
		isGen = true
		p.next()
	}
	if !isAsync && !isGen && (p.tok.isName("get") || p.tok.isName("set")) && !isPropertyNameEnd(p.peek()) {
		kind = p.tok.value
		p.next()
	}

	key, computed := p.parsePropertyKey()
	prop := &ast.Property{Key: key, Computed: computed, PropKind: kind}
	switch {
	case kind != "init":
		prop.Value = p.parseMethodFunction(false, false)
	case p.tok.is("("):
		prop.Method = true
		prop.Value = p.parseMethodFunction(isAsync, isGen)
	case isAsync || isGen:
		p.unexpected()
	case p.eat(":"):
		prop.Value = p.parseAssign()
	default:
		id, ok := key.(*ast.Identifier)
		if !ok || computed {
			p.unexpected()
		}
		prop.Shorthand = true
		if p.tok.is("=") {
			p.next()
			def := p.parseAssign()
			prop.Value = &ast.AssignmentPattern{Loc: p.span(start), Left: id, Right: def}
		} else {
			prop.Value = id
		}
	}
	prop.Loc = p.span(start)
	return prop
}

func (p *parser) parsePropertyKey() (ast.Node, bool) {
	loc := ast.Span(p.tok.start, p.tok.end)
	switch p.tok.kind {
	case tokName:
		id := &ast.Identifier{Loc: loc, Name: p.tok.value}
		p.next()
		return id, false
	case tokString:
		lit := &ast.Literal{Loc: loc, Value: p.tok.value, Raw: p.tok.raw}
		p.next()
		return lit, false
	case tokNumber:
		lit := &ast.Literal{Loc: loc, Value: p.tok.num, Raw: p.tok.raw}
		p.next()
		return lit, false
	case tokPrivateName:
		id := &ast.PrivateIdentifier{Loc: loc, Name: p.tok.value}
		p.next()
		return id, false
	case tokPunct:
		if p.tok.is("[") {
			p.next()
			restore := p.allowIn()
			key := p.parseAssign()
			restore()
			p.expect("]")
			return key, true
		}
	}
	p.unexpected()
	return nil, false
}

func (p *parser) parseMethodFunction(async, generator bool) *ast.Function {
	start := p.tok.start
	restore := p.enterFunction(async, generator)
	fn := &ast.Function{FuncKind: ast.KindFunctionExpression, Async: async, Generator: generator}
	fn.Params = p.parseParams()
	fn.Body = p.parseFunctionBody(true)
	restore()
	fn.Loc = p.span(start)
	return fn
}

func (p *parser) parseTemplate() *ast.TemplateLiteral {
	start := p.tok.start
	tl := &ast.TemplateLiteral{Quasis: []*ast.TemplateElement{}, Expressions: []ast.Node{}}
	for {
		if p.tok.kind != tokTemplate {
			p.unexpected()
		}
		elemEnd := p.tok.end - 2
		if p.tok.tail {
			elemEnd = p.tok.end - 1
		}
		tl.Quasis = append(tl.Quasis, &ast.TemplateElement{
			Loc:    ast.Span(p.tok.start+1, elemEnd),
			Raw:    p.tok.raw,
			Cooked: p.tok.value,
			Tail:   p.tok.tail,
		})
		if p.tok.tail {
			p.next()
			break
		}
		p.next()
		restore := p.allowIn()
		tl.Expressions = append(tl.Expressions, p.parseExpression())
		restore()
		if !p.tok.is("}") {
			p.unexpected()
		}
		p.rescanTemplateContinuation()
	}
	tl.Loc = p.span(start)
	return tl
}

func (p *parser) parseFunction(start int, isStatement, isAsync, requireID bool) *ast.Function {
	p.expectName("function")
	gen := p.eat("*")

	fn := &ast.Function{FuncKind: ast.KindFunctionExpression, Async: isAsync, Generator: gen}
	if isStatement {
		fn.FuncKind = ast.KindFunctionDeclaration
	}
	if p.tok.kind == tokName {
		fn.ID = p.parseIdent(false)
	} else if isStatement && requireID {
		p.unexpected()
	}

	restore := p.enterFunction(isAsync, gen)
	fn.Params = p.parseParams()
	fn.Body = p.parseFunctionBody(true)
	restore()
	fn.Loc = p.span(start)
	return fn
}

func (p *parser) parseParams() []ast.Node {
	p.expect("(")
	params := []ast.Node{}
	for !p.tok.is(")") {
		if p.tok.is("...") {
			start := p.tok.start
			p.next()
			arg := p.parseBindingTarget()
			params = append(params, &ast.RestElement{Loc: p.span(start), Argument: arg})
			break
		}
		params = append(params, p.parseBindingElement())
		if !p.tok.is(")") {
			p.expect(",")
		}
	}
	p.expect(")")
	return params
}

func (p *parser) parseClass(start int, isStatement, requireID bool) *ast.Class {
	p.expectName("class")
	class := &ast.Class{ClassKind: ast.KindClassExpression}
	if isStatement {
		class.ClassKind = ast.KindClassDeclaration
	}
	if p.tok.kind == tokName && !p.tok.isName("extends") {
		class.ID = p.parseIdent(false)
	} else if isStatement && requireID {
		p.unexpected()
	}
	if p.tok.isName("extends") {
		p.next()
		sstart := p.tok.start
		class.SuperClass = p.parseSubscripts(p.parseExprAtom(), sstart, false)
	}

	bstart := p.tok.start
	p.expect("{")
	body := &ast.ClassBody{Body: []ast.Node{}}
	for !p.tok.is("}") {
		if p.eat(";") {
			continue
		}
		body.Body = append(body.Body, p.parseClassMember())
	}
	p.next()
	body.Loc = p.span(bstart)
	class.Body = body
	class.Loc = p.span(start)
	return class
}

func isMemberNameEnd(t token) bool {
	return t.is("(") || t.is("=") || t.is(";") || t.is("}")
}

func (p *parser) parseClassMember() ast.Node {
	start := p.tok.start

	isStatic := false
	if p.tok.isName("static") {
		next := p.peek()
		if next.is("{") {
			p.next()
			restore := p.enterFunction(false, false)
			block := p.parseBlock()
			restore()
			return &ast.StaticBlock{Loc: p.span(start), Body: block.Body}
		}
		if !isMemberNameEnd(next) {
			isStatic = true
			p.next()
		}
	}

	isAsync, isGen := false, false
	kind := "method"
	if p.tok.isName("async") {
		if next := p.peek(); !isMemberNameEnd(next) && !next.nl {
			isAsync = true
			p.next()
		}
	}
	if p.tok.is("*") {
		isGen = true
		p.next()
	}
	if !isAsync && !isGen && (p.tok.isName("get") || p.tok.isName("set")) && !isMemberNameEnd(p.peek()) {
		kind = p.tok.value
		p.next()
	}

	key, computed := p.parsePropertyKey()

	if p.tok.is("(") || kind != "method" || isAsync || isGen {
		if name, ok := ast.PropertyName(key, computed); ok && name == "constructor" && !isStatic && kind == "method" {
			if _, private := key.(*ast.PrivateIdentifier); !private {
				kind = "constructor"
			}
		}
		fn := p.parseMethodFunction(isAsync, isGen)
		return &ast.MethodDefinition{Loc: p.span(start), Key: key, Value: fn, MethodKind: kind, Computed: computed, Static: isStatic}
	}

	prop := &ast.ClassProperty{Key: key, Computed: computed, Static: isStatic}
	if p.eat("=") {
		restore := p.enterFunction(false, false)
		prop.Value = p.parseAssign()
		restore()
	}
	p.semicolon()
	prop.Loc = p.span(start)
	return prop
}

func (p *parser) parseBindingTarget() ast.Node {
	switch {
	case p.tok.is("["):
		return p.parseArrayPattern()
	case p.tok.is("{"):
		return p.parseObjectPattern()
	}
	return p.parseIdent(false)
}

func (p *parser) parseBindingElement() ast.Node {
	start := p.tok.start
	target := p.parseBindingTarget()
	if !p.eat("=") {
		return target
	}
	restore := p.allowIn()
	def := p.parseAssign()
	restore()
	return &ast.AssignmentPattern{Loc: p.span(start), Left: target, Right: def}
}

func (p *parser) parseArrayPattern() ast.Node {
	start := p.tok.start
	p.expect("[")
	elems := []ast.Node{}
	for !p.tok.is("]") {
		if p.tok.is(",") {
			p.next()
			elems = append(elems, nil)
			continue
		}
		if p.tok.is("...") {
			rs := p.tok.start
			p.next()
			arg := p.parseBindingTarget()
			elems = append(elems, &ast.RestElement{Loc: p.span(rs), Argument: arg})
		} else {
			elems = append(elems, p.parseBindingElement())
		}
		if !p.tok.is("]") {
			p.expect(",")
		}
	}
	p.next()
	return &ast.ArrayPattern{Loc: p.span(start), Elements: elems}
}

func (p *parser) parseObjectPattern() ast.Node {
	start := p.tok.start
	p.expect("{")
	props := []ast.Node{}
	for !p.tok.is("}") {
		pstart := p.tok.start
		if p.tok.is("...") {
			p.next()
			arg := p.parseBindingTarget()
			props = append(props, &ast.RestElement{Loc: p.span(pstart), Argument: arg})
		} else {
			key, computed := p.parsePropertyKey()
			prop := &ast.Property{Key: key, Computed: computed, PropKind: "init"}
			if p.eat(":") {
				prop.Value = p.parseBindingElement()
			} else {
				id, ok := key.(*ast.Identifier)
				if !ok || computed {
					p.unexpected()
				}
				prop.Shorthand = true
				prop.Value = id
				if p.eat("=") {
					def := p.parseAssign()
					prop.Value = &ast.AssignmentPattern{Loc: p.span(pstart), Left: id, Right: def}
				}
			}
			prop.Loc = p.span(pstart)
			props = append(props, prop)
		}
		if !p.tok.is("}") {
			p.expect(",")
		}
	}
	p.next()
	return &ast.ObjectPattern{Loc: p.span(start), Properties: props}
}

func (p *parser) toParams(items []ast.Node) []ast.Node {
	params := make([]ast.Node, 0, len(items))
	for _, item := range items {
		params = append(params, p.toPattern(item, true))
	}
	return params
}

// toPattern reinterprets an expression parsed through the cover grammar as a pattern.
// Member expressions are valid assignment targets but not binding targets.
func (p *parser) toPattern(n ast.Node, binding bool) ast.Node {
	switch n := n.(type) {
	case *ast.Identifier:
		return n
	case *ast.MemberExpression:
		if binding {
			p.fail(n.Pos(), "Invalid destructuring target")
		}
		return n
	case *ast.ObjectPattern, *ast.ArrayPattern, *ast.RestElement:
		return n
	case *ast.AssignmentPattern:
		n.Left = p.toPattern(n.Left, binding)
		return n
	case *ast.ObjectExpression:
		props := make([]ast.Node, 0, len(n.Properties))
		for i, prop := range n.Properties {
			switch prop := prop.(type) {
			case *ast.Property:
				if prop.Method || prop.PropKind != "init" {
					p.fail(prop.Pos(), "Object pattern can't contain getter, setter or method")
				}
				prop.Value = p.toPattern(prop.Value, binding)
				props = append(props, prop)
			case *ast.SpreadElement:
				if i != len(n.Properties)-1 {
					p.fail(prop.Pos(), "Rest element must be last element")
				}
				props = append(props, &ast.RestElement{Loc: prop.Loc, Argument: p.toPattern(prop.Argument, binding)})
			}
		}
		return &ast.ObjectPattern{Loc: n.Loc, Properties: props}
	case *ast.ArrayExpression:
		elems := make([]ast.Node, 0, len(n.Elements))
		for i, el := range n.Elements {
			switch el := el.(type) {
			case nil:
				elems = append(elems, nil)
			case *ast.SpreadElement:
				if i != len(n.Elements)-1 {
					p.fail(el.Pos(), "Rest element must be last element")
				}
				elems = append(elems, &ast.RestElement{Loc: el.Loc, Argument: p.toPattern(el.Argument, binding)})
			default:
				elems = append(elems, p.toPattern(el, binding))
			}
		}
		return &ast.ArrayPattern{Loc: n.Loc, Elements: elems}
	case *ast.AssignmentExpression:
		if n.Operator != "=" {
			p.fail(n.Pos(), "Only '=' operator can be used for specifying default value.")
		}
		return &ast.AssignmentPattern{Loc: n.Loc, Left: p.toPattern(n.Left, binding), Right: n.Right}
	case *ast.SpreadElement:
		return &ast.RestElement{Loc: n.Loc, Argument: p.toPattern(n.Argument, binding)}
	}

	if n != nil {
		p.fail(n.Pos(), "Assigning to rvalue")
	}
	p.unexpected()
	return nil
}

func isSimpleTarget(n ast.Node) bool {
	switch n.(type) {
	case *ast.Identifier, *ast.MemberExpression:
		return true
	}
	return false
}
