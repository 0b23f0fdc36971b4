package ast

// Program is the root of a parsed file.
type Program struct {
	Loc        `estree:"-"`
	Body       []Node    `estree:"body"`
	SourceType string    `estree:"sourceType"`
	Comments   []Comment `estree:"-"`
}

type (
	ExpressionStatement struct {
		Loc        `estree:"-"`
		Expression Node `estree:"expression"`
		// Directive holds the raw string of a prologue directive such as "use strict".
		Directive string `estree:"directive,omitempty"`
	}

	BlockStatement struct {
		Loc  `estree:"-"`
		Body []Node `estree:"body"`
	}

	EmptyStatement struct {
		Loc `estree:"-"`
	}

	DebuggerStatement struct {
		Loc `estree:"-"`
	}

	ReturnStatement struct {
		Loc      `estree:"-"`
		Argument Node `estree:"argument"`
	}

	BreakStatement struct {
		Loc   `estree:"-"`
		Label *Identifier `estree:"label"`
	}

	ContinueStatement struct {
		Loc   `estree:"-"`
		Label *Identifier `estree:"label"`
	}

	IfStatement struct {
		Loc        `estree:"-"`
		Test       Node `estree:"test"`
		Consequent Node `estree:"consequent"`
		Alternate  Node `estree:"alternate"`
	}

	SwitchStatement struct {
		Loc          `estree:"-"`
		Discriminant Node          `estree:"discriminant"`
		Cases        []*SwitchCase `estree:"cases"`
	}

	SwitchCase struct {
		Loc        `estree:"-"`
		Test       Node   `estree:"test"`
		Consequent []Node `estree:"consequent"`
	}

	ThrowStatement struct {
		Loc      `estree:"-"`
		Argument Node `estree:"argument"`
	}

	TryStatement struct {
		Loc       `estree:"-"`
		Block     *BlockStatement `estree:"block"`
		Handler   *CatchClause    `estree:"handler"`
		Finalizer *BlockStatement `estree:"finalizer"`
	}

	CatchClause struct {
		Loc   `estree:"-"`
		Param Node            `estree:"param"`
		Body  *BlockStatement `estree:"body"`
	}

	WhileStatement struct {
		Loc  `estree:"-"`
		Test Node `estree:"test"`
		Body Node `estree:"body"`
	}

	DoWhileStatement struct {
		Loc  `estree:"-"`
		Body Node `estree:"body"`
		Test Node `estree:"test"`
	}

	ForStatement struct {
		Loc    `estree:"-"`
		Init   Node `estree:"init"`
		Test   Node `estree:"test"`
		Update Node `estree:"update"`
		Body   Node `estree:"body"`
	}

	ForInStatement struct {
		Loc   `estree:"-"`
		Left  Node `estree:"left"`
		Right Node `estree:"right"`
		Body  Node `estree:"body"`
	}

	ForOfStatement struct {
		Loc   `estree:"-"`
		Left  Node `estree:"left"`
		Right Node `estree:"right"`
		Body  Node `estree:"body"`
		Await bool `estree:"await"`
	}

	LabeledStatement struct {
		Loc   `estree:"-"`
		Label *Identifier `estree:"label"`
		Body  Node        `estree:"body"`
	}
)

type (
	// VariableDeclaration is a var, let or const declaration.
	VariableDeclaration struct {
		Loc          `estree:"-"`
		Declarations []*VariableDeclarator `estree:"declarations"`
		Keyword      string                `estree:"kind"`
	}

	VariableDeclarator struct {
		Loc  `estree:"-"`
		ID   Node `estree:"id"`
		Init Node `estree:"init"`
	}

	ImportDeclaration struct {
		Loc        `estree:"-"`
		Specifiers []Node    `estree:"specifiers"`
		Source     *Literal `estree:"source"`
	}

	// ImportSpecifier is a named import: {Imported as Local}.
	ImportSpecifier struct {
		Loc      `estree:"-"`
		Imported *Identifier `estree:"imported"`
		Local    *Identifier `estree:"local"`
	}

	ImportDefaultSpecifier struct {
		Loc   `estree:"-"`
		Local *Identifier `estree:"local"`
	}

	ImportNamespaceSpecifier struct {
		Loc   `estree:"-"`
		Local *Identifier `estree:"local"`
	}

	ExportNamedDeclaration struct {
		Loc         `estree:"-"`
		Declaration Node               `estree:"declaration"`
		Specifiers  []*ExportSpecifier `estree:"specifiers"`
		Source      *Literal           `estree:"source"`
	}

	ExportSpecifier struct {
		Loc      `estree:"-"`
		Local    *Identifier `estree:"local"`
		Exported *Identifier `estree:"exported"`
	}

	ExportDefaultDeclaration struct {
		Loc         `estree:"-"`
		Declaration Node `estree:"declaration"`
	}

	ExportAllDeclaration struct {
		Loc      `estree:"-"`
		Exported *Identifier `estree:"exported"`
		Source   *Literal    `estree:"source"`
	}
)

// Function is a function declaration, function expression or arrow function. The
// concrete kind is reported by Kind.
type Function struct {
	Loc       `estree:"-"`
	FuncKind  Kind        `estree:"-"`
	ID        *Identifier `estree:"id"`
	Params    []Node      `estree:"params"`
	Body      Node        `estree:"body"`
	Async     bool        `estree:"async"`
	Generator bool        `estree:"generator"`
	// Expression is set for arrow functions with an expression body.
	Expression bool `estree:"expression"`
}

// IsArrow reports whether f is an arrow function.
func (f *Function) IsArrow() bool {
	return f.FuncKind == KindArrowFunctionExpression
}

// Class is a class declaration or class expression.
type Class struct {
	Loc        `estree:"-"`
	ClassKind  Kind        `estree:"-"`
	ID         *Identifier `estree:"id"`
	SuperClass Node        `estree:"superClass"`
	Body       *ClassBody  `estree:"body"`
}

type (
	ClassBody struct {
		Loc  `estree:"-"`
		Body []Node `estree:"body"`
	}

	// MethodDefinition is a class method, getter, setter or constructor.
	MethodDefinition struct {
		Loc        `estree:"-"`
		Key        Node      `estree:"key"`
		Value      *Function `estree:"value"`
		MethodKind string    `estree:"kind"`
		Computed   bool      `estree:"computed"`
		Static     bool      `estree:"static"`
	}

	// ClassProperty is a class field, with or without an initializer.
	ClassProperty struct {
		Loc      `estree:"-"`
		Key      Node `estree:"key"`
		Value    Node `estree:"value"`
		Computed bool `estree:"computed"`
		Static   bool `estree:"static"`
	}

	StaticBlock struct {
		Loc  `estree:"-"`
		Body []Node `estree:"body"`
	}
)

type (
	Identifier struct {
		Loc  `estree:"-"`
		Name string `estree:"name"`
	}

	// PrivateIdentifier is a #name in a class body or member access. Name excludes the #.
	PrivateIdentifier struct {
		Loc  `estree:"-"`
		Name string `estree:"name"`
	}

	// Literal is a string, number, boolean, null, bigint or regular expression literal.
	// Value is a string, float64, bool or nil; bigints keep their digits as a string.
	Literal struct {
		Loc    `estree:"-"`
		Value  any     `estree:"value"`
		Raw    string  `estree:"raw"`
		Regex  *RegExp `estree:"regex,omitempty"`
		BigInt string  `estree:"bigint,omitempty"`
	}

	RegExp struct {
		Pattern string `estree:"pattern"`
		Flags   string `estree:"flags"`
	}

	TemplateLiteral struct {
		Loc         `estree:"-"`
		Quasis      []*TemplateElement `estree:"quasis"`
		Expressions []Node             `estree:"expressions"`
	}

	TemplateElement struct {
		Loc    `estree:"-"`
		Raw    string `estree:"raw"`
		Cooked string `estree:"cooked"`
		Tail   bool   `estree:"tail"`
	}

	TaggedTemplateExpression struct {
		Loc   `estree:"-"`
		Tag   Node             `estree:"tag"`
		Quasi *TemplateLiteral `estree:"quasi"`
	}

	ThisExpression struct {
		Loc `estree:"-"`
	}

	Super struct {
		Loc `estree:"-"`
	}

	// ArrayExpression elements are nil for holes.
	ArrayExpression struct {
		Loc      `estree:"-"`
		Elements []Node `estree:"elements"`
	}

	ObjectExpression struct {
		Loc        `estree:"-"`
		Properties []Node `estree:"properties"`
	}

	// Property is a member of an object literal or object pattern.
	Property struct {
		Loc       `estree:"-"`
		Key       Node   `estree:"key"`
		Value     Node   `estree:"value"`
		PropKind  string `estree:"kind"`
		Method    bool   `estree:"method"`
		Shorthand bool   `estree:"shorthand"`
		Computed  bool   `estree:"computed"`
	}

	UnaryExpression struct {
		Loc      `estree:"-"`
		Operator string `estree:"operator"`
		Prefix   bool   `estree:"prefix"`
		Argument Node   `estree:"argument"`
	}

	UpdateExpression struct {
		Loc      `estree:"-"`
		Operator string `estree:"operator"`
		Prefix   bool   `estree:"prefix"`
		Argument Node   `estree:"argument"`
	}

	BinaryExpression struct {
		Loc      `estree:"-"`
		Operator string `estree:"operator"`
		Left     Node   `estree:"left"`
		Right    Node   `estree:"right"`
	}

	LogicalExpression struct {
		Loc      `estree:"-"`
		Operator string `estree:"operator"`
		Left     Node   `estree:"left"`
		Right    Node   `estree:"right"`
	}

	AssignmentExpression struct {
		Loc      `estree:"-"`
		Operator string `estree:"operator"`
		Left     Node   `estree:"left"`
		Right    Node   `estree:"right"`
	}

	ConditionalExpression struct {
		Loc        `estree:"-"`
		Test       Node `estree:"test"`
		Consequent Node `estree:"consequent"`
		Alternate  Node `estree:"alternate"`
	}

	CallExpression struct {
		Loc       `estree:"-"`
		Callee    Node   `estree:"callee"`
		Arguments []Node `estree:"arguments"`
		Optional  bool   `estree:"optional"`
	}

	NewExpression struct {
		Loc       `estree:"-"`
		Callee    Node   `estree:"callee"`
		Arguments []Node `estree:"arguments"`
	}

	MemberExpression struct {
		Loc      `estree:"-"`
		Object   Node `estree:"object"`
		Property Node `estree:"property"`
		Computed bool `estree:"computed"`
		Optional bool `estree:"optional"`
	}

	// ChainExpression wraps an optional chain such as a?.b.c.
	ChainExpression struct {
		Loc        `estree:"-"`
		Expression Node `estree:"expression"`
	}

	SequenceExpression struct {
		Loc         `estree:"-"`
		Expressions []Node `estree:"expressions"`
	}

	SpreadElement struct {
		Loc      `estree:"-"`
		Argument Node `estree:"argument"`
	}

	YieldExpression struct {
		Loc      `estree:"-"`
		Argument Node `estree:"argument"`
		Delegate bool `estree:"delegate"`
	}

	AwaitExpression struct {
		Loc      `estree:"-"`
		Argument Node `estree:"argument"`
	}

	// MetaProperty is new.target or import.meta.
	MetaProperty struct {
		Loc      `estree:"-"`
		Meta     *Identifier `estree:"meta"`
		Property *Identifier `estree:"property"`
	}

	ImportExpression struct {
		Loc    `estree:"-"`
		Source Node `estree:"source"`
	}
)

type (
	ObjectPattern struct {
		Loc        `estree:"-"`
		Properties []Node `estree:"properties"`
	}

	ArrayPattern struct {
		Loc      `estree:"-"`
		Elements []Node `estree:"elements"`
	}

	RestElement struct {
		Loc      `estree:"-"`
		Argument Node `estree:"argument"`
	}

	AssignmentPattern struct {
		Loc   `estree:"-"`
		Left  Node `estree:"left"`
		Right Node `estree:"right"`
	}
)

type (
	JSXElement struct {
		Loc            `estree:"-"`
		OpeningElement *JSXOpeningElement `estree:"openingElement"`
		ClosingElement *JSXClosingElement `estree:"closingElement"`
		Children       []Node             `estree:"children"`
	}

	JSXOpeningElement struct {
		Loc         `estree:"-"`
		Name        Node   `estree:"name"`
		Attributes  []Node `estree:"attributes"`
		SelfClosing bool   `estree:"selfClosing"`
	}

	JSXClosingElement struct {
		Loc  `estree:"-"`
		Name Node `estree:"name"`
	}

	JSXFragment struct {
		Loc             `estree:"-"`
		OpeningFragment *JSXOpeningFragment `estree:"openingFragment"`
		ClosingFragment *JSXClosingFragment `estree:"closingFragment"`
		Children        []Node              `estree:"children"`
	}

	JSXOpeningFragment struct {
		Loc `estree:"-"`
	}

	JSXClosingFragment struct {
		Loc `estree:"-"`
	}

	// JSXAttribute Value is nil for a bare attribute, otherwise a string Literal,
	// JSXExpressionContainer, JSXElement or JSXFragment.
	JSXAttribute struct {
		Loc   `estree:"-"`
		Name  Node `estree:"name"`
		Value Node `estree:"value"`
	}

	JSXSpreadAttribute struct {
		Loc      `estree:"-"`
		Argument Node `estree:"argument"`
	}

	JSXIdentifier struct {
		Loc  `estree:"-"`
		Name string `estree:"name"`
	}

	JSXMemberExpression struct {
		Loc      `estree:"-"`
		Object   Node           `estree:"object"`
		Property *JSXIdentifier `estree:"property"`
	}

	JSXNamespacedName struct {
		Loc       `estree:"-"`
		Namespace *JSXIdentifier `estree:"namespace"`
		Name      *JSXIdentifier `estree:"name"`
	}

	JSXExpressionContainer struct {
		Loc        `estree:"-"`
		Expression Node `estree:"expression"`
	}

	JSXEmptyExpression struct {
		Loc `estree:"-"`
	}

	JSXText struct {
		Loc   `estree:"-"`
		Value string `estree:"value"`
		Raw   string `estree:"raw"`
	}

	JSXSpreadChild struct {
		Loc        `estree:"-"`
		Expression Node `estree:"expression"`
	}
)

func (*Program) Kind() Kind { return KindProgram }

func (*ExpressionStatement) Kind() Kind { return KindExpressionStatement }
func (*BlockStatement) Kind() Kind      { return KindBlockStatement }
func (*EmptyStatement) Kind() Kind      { return KindEmptyStatement }
func (*DebuggerStatement) Kind() Kind   { return KindDebuggerStatement }
func (*ReturnStatement) Kind() Kind     { return KindReturnStatement }
func (*BreakStatement) Kind() Kind      { return KindBreakStatement }
func (*ContinueStatement) Kind() Kind   { return KindContinueStatement }
func (*IfStatement) Kind() Kind         { return KindIfStatement }
func (*SwitchStatement) Kind() Kind     { return KindSwitchStatement }
func (*SwitchCase) Kind() Kind          { return KindSwitchCase }
func (*ThrowStatement) Kind() Kind      { return KindThrowStatement }
func (*TryStatement) Kind() Kind        { return KindTryStatement }
func (*CatchClause) Kind() Kind         { return KindCatchClause }
func (*WhileStatement) Kind() Kind      { return KindWhileStatement }
func (*DoWhileStatement) Kind() Kind    { return KindDoWhileStatement }
func (*ForStatement) Kind() Kind        { return KindForStatement }
func (*ForInStatement) Kind() Kind      { return KindForInStatement }
func (*ForOfStatement) Kind() Kind      { return KindForOfStatement }
func (*LabeledStatement) Kind() Kind    { return KindLabeledStatement }

func (*VariableDeclaration) Kind() Kind      { return KindVariableDeclaration }
func (*VariableDeclarator) Kind() Kind       { return KindVariableDeclarator }
func (*ImportDeclaration) Kind() Kind        { return KindImportDeclaration }
func (*ImportSpecifier) Kind() Kind          { return KindImportSpecifier }
func (*ImportDefaultSpecifier) Kind() Kind   { return KindImportDefaultSpecifier }
func (*ImportNamespaceSpecifier) Kind() Kind { return KindImportNamespaceSpecifier }
func (*ExportNamedDeclaration) Kind() Kind   { return KindExportNamedDeclaration }
func (*ExportSpecifier) Kind() Kind          { return KindExportSpecifier }
func (*ExportDefaultDeclaration) Kind() Kind { return KindExportDefaultDeclaration }
func (*ExportAllDeclaration) Kind() Kind     { return KindExportAllDeclaration }

func (f *Function) Kind() Kind { return f.FuncKind }
func (c *Class) Kind() Kind    { return c.ClassKind }

func (*ClassBody) Kind() Kind        { return KindClassBody }
func (*MethodDefinition) Kind() Kind { return KindMethodDefinition }
func (*ClassProperty) Kind() Kind    { return KindClassProperty }
func (*StaticBlock) Kind() Kind      { return KindStaticBlock }

func (*Identifier) Kind() Kind               { return KindIdentifier }
func (*PrivateIdentifier) Kind() Kind        { return KindPrivateIdentifier }
func (*Literal) Kind() Kind                  { return KindLiteral }
func (*TemplateLiteral) Kind() Kind          { return KindTemplateLiteral }
func (*TemplateElement) Kind() Kind          { return KindTemplateElement }
func (*TaggedTemplateExpression) Kind() Kind { return KindTaggedTemplateExpression }
func (*ThisExpression) Kind() Kind           { return KindThisExpression }
func (*Super) Kind() Kind                    { return KindSuper }
func (*ArrayExpression) Kind() Kind          { return KindArrayExpression }
func (*ObjectExpression) Kind() Kind         { return KindObjectExpression }
func (*Property) Kind() Kind                 { return KindProperty }
func (*UnaryExpression) Kind() Kind          { return KindUnaryExpression }
func (*UpdateExpression) Kind() Kind         { return KindUpdateExpression }
func (*BinaryExpression) Kind() Kind         { return KindBinaryExpression }
func (*LogicalExpression) Kind() Kind        { return KindLogicalExpression }
func (*AssignmentExpression) Kind() Kind     { return KindAssignmentExpression }
func (*ConditionalExpression) Kind() Kind    { return KindConditionalExpression }
func (*CallExpression) Kind() Kind           { return KindCallExpression }
func (*NewExpression) Kind() Kind            { return KindNewExpression }
func (*MemberExpression) Kind() Kind         { return KindMemberExpression }
func (*ChainExpression) Kind() Kind          { return KindChainExpression }
func (*SequenceExpression) Kind() Kind       { return KindSequenceExpression }
func (*SpreadElement) Kind() Kind            { return KindSpreadElement }
func (*YieldExpression) Kind() Kind          { return KindYieldExpression }
func (*AwaitExpression) Kind() Kind          { return KindAwaitExpression }
func (*MetaProperty) Kind() Kind             { return KindMetaProperty }
func (*ImportExpression) Kind() Kind         { return KindImportExpression }

func (*ObjectPattern) Kind() Kind     { return KindObjectPattern }
func (*ArrayPattern) Kind() Kind      { return KindArrayPattern }
func (*RestElement) Kind() Kind       { return KindRestElement }
func (*AssignmentPattern) Kind() Kind { return KindAssignmentPattern }

func (*JSXElement) Kind() Kind             { return KindJSXElement }
func (*JSXOpeningElement) Kind() Kind      { return KindJSXOpeningElement }
func (*JSXClosingElement) Kind() Kind      { return KindJSXClosingElement }
func (*JSXFragment) Kind() Kind            { return KindJSXFragment }
func (*JSXOpeningFragment) Kind() Kind     { return KindJSXOpeningFragment }
func (*JSXClosingFragment) Kind() Kind     { return KindJSXClosingFragment }
func (*JSXAttribute) Kind() Kind           { return KindJSXAttribute }
func (*JSXSpreadAttribute) Kind() Kind     { return KindJSXSpreadAttribute }
func (*JSXIdentifier) Kind() Kind          { return KindJSXIdentifier }
func (*JSXMemberExpression) Kind() Kind    { return KindJSXMemberExpression }
func (*JSXNamespacedName) Kind() Kind      { return KindJSXNamespacedName }
func (*JSXExpressionContainer) Kind() Kind { return KindJSXExpressionContainer }
func (*JSXEmptyExpression) Kind() Kind     { return KindJSXEmptyExpression }
func (*JSXText) Kind() Kind                { return KindJSXText }
func (*JSXSpreadChild) Kind() Kind         { return KindJSXSpreadChild }
