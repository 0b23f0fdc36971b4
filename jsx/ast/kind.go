package ast

// Kind identifies the type of a syntax tree node. Names follow ESTree.
type Kind int

const (
	KindInvalid Kind = iota

	KindProgram

	// Statements
	KindExpressionStatement
	KindBlockStatement
	KindEmptyStatement
	KindDebuggerStatement
	KindReturnStatement
	KindBreakStatement
	KindContinueStatement
	KindIfStatement
	KindSwitchStatement
	KindSwitchCase
	KindThrowStatement
	KindTryStatement
	KindCatchClause
	KindWhileStatement
	KindDoWhileStatement
	KindForStatement
	KindForInStatement
	KindForOfStatement
	KindLabeledStatement

	// Declarations
	KindVariableDeclaration
	KindVariableDeclarator
	KindFunctionDeclaration
	KindClassDeclaration
	KindImportDeclaration
	KindImportSpecifier
	KindImportDefaultSpecifier
	KindImportNamespaceSpecifier
	KindExportNamedDeclaration
	KindExportSpecifier
	KindExportDefaultDeclaration
	KindExportAllDeclaration

	// Expressions
	KindIdentifier
	KindPrivateIdentifier
	KindLiteral
	KindTemplateLiteral
	KindTemplateElement
	KindTaggedTemplateExpression
	KindThisExpression
	KindSuper
	KindArrayExpression
	KindObjectExpression
	KindProperty
	KindFunctionExpression
	KindArrowFunctionExpression
	KindClassExpression
	KindUnaryExpression
	KindUpdateExpression
	KindBinaryExpression
	KindLogicalExpression
	KindAssignmentExpression
	KindConditionalExpression
	KindCallExpression
	KindNewExpression
	KindMemberExpression
	KindChainExpression
	KindSequenceExpression
	KindSpreadElement
	KindYieldExpression
	KindAwaitExpression
	KindMetaProperty
	KindImportExpression

	// Patterns
	KindObjectPattern
	KindArrayPattern
	KindRestElement
	KindAssignmentPattern

	// Classes
	KindClassBody
	KindMethodDefinition
	KindClassProperty
	KindStaticBlock

	// JSX
	KindJSXElement
	KindJSXOpeningElement
	KindJSXClosingElement
	KindJSXFragment
	KindJSXOpeningFragment
	KindJSXClosingFragment
	KindJSXAttribute
	KindJSXSpreadAttribute
	KindJSXIdentifier
	KindJSXMemberExpression
	KindJSXNamespacedName
	KindJSXExpressionContainer
	KindJSXEmptyExpression
	KindJSXText
	KindJSXSpreadChild

	kindCount
)

var kindNames = [...]string{
	KindInvalid: "Invalid",

	KindProgram: "Program",

	KindExpressionStatement: "ExpressionStatement",
	KindBlockStatement:      "BlockStatement",
	KindEmptyStatement:      "EmptyStatement",
	KindDebuggerStatement:   "DebuggerStatement",
	KindReturnStatement:     "ReturnStatement",
	KindBreakStatement:      "BreakStatement",
	KindContinueStatement:   "ContinueStatement",
	KindIfStatement:         "IfStatement",
	KindSwitchStatement:     "SwitchStatement",
	KindSwitchCase:          "SwitchCase",
	KindThrowStatement:      "ThrowStatement",
	KindTryStatement:        "TryStatement",
	KindCatchClause:         "CatchClause",
	KindWhileStatement:      "WhileStatement",
	KindDoWhileStatement:    "DoWhileStatement",
	KindForStatement:        "ForStatement",
	KindForInStatement:      "ForInStatement",
	KindForOfStatement:      "ForOfStatement",
	KindLabeledStatement:    "LabeledStatement",

	KindVariableDeclaration:      "VariableDeclaration",
	KindVariableDeclarator:       "VariableDeclarator",
	KindFunctionDeclaration:      "FunctionDeclaration",
	KindClassDeclaration:         "ClassDeclaration",
	KindImportDeclaration:        "ImportDeclaration",
	KindImportSpecifier:          "ImportSpecifier",
	KindImportDefaultSpecifier:   "ImportDefaultSpecifier",
	KindImportNamespaceSpecifier: "ImportNamespaceSpecifier",
	KindExportNamedDeclaration:   "ExportNamedDeclaration",
	KindExportSpecifier:          "ExportSpecifier",
	KindExportDefaultDeclaration: "ExportDefaultDeclaration",
	KindExportAllDeclaration:     "ExportAllDeclaration",

	KindIdentifier:               "Identifier",
	KindPrivateIdentifier:        "PrivateIdentifier",
	KindLiteral:                  "Literal",
	KindTemplateLiteral:          "TemplateLiteral",
	KindTemplateElement:          "TemplateElement",
	KindTaggedTemplateExpression: "TaggedTemplateExpression",
	KindThisExpression:           "ThisExpression",
	KindSuper:                    "Super",
	KindArrayExpression:          "ArrayExpression",
	KindObjectExpression:         "ObjectExpression",
	KindProperty:                 "Property",
	KindFunctionExpression:       "FunctionExpression",
	KindArrowFunctionExpression:  "ArrowFunctionExpression",
	KindClassExpression:          "ClassExpression",
	KindUnaryExpression:          "UnaryExpression",
	KindUpdateExpression:         "UpdateExpression",
	KindBinaryExpression:         "BinaryExpression",
	KindLogicalExpression:        "LogicalExpression",
	KindAssignmentExpression:     "AssignmentExpression",
	KindConditionalExpression:    "ConditionalExpression",
	KindCallExpression:           "CallExpression",
	KindNewExpression:            "NewExpression",
	KindMemberExpression:         "MemberExpression",
	KindChainExpression:          "ChainExpression",
	KindSequenceExpression:       "SequenceExpression",
	KindSpreadElement:            "SpreadElement",
	KindYieldExpression:          "YieldExpression",
	KindAwaitExpression:          "AwaitExpression",
	KindMetaProperty:             "MetaProperty",
	KindImportExpression:         "ImportExpression",

	KindObjectPattern:     "ObjectPattern",
	KindArrayPattern:      "ArrayPattern",
	KindRestElement:       "RestElement",
	KindAssignmentPattern: "AssignmentPattern",

	KindClassBody:        "ClassBody",
	KindMethodDefinition: "MethodDefinition",
	KindClassProperty:    "ClassProperty",
	KindStaticBlock:      "StaticBlock",

	KindJSXElement:             "JSXElement",
	KindJSXOpeningElement:      "JSXOpeningElement",
	KindJSXClosingElement:      "JSXClosingElement",
	KindJSXFragment:            "JSXFragment",
	KindJSXOpeningFragment:     "JSXOpeningFragment",
	KindJSXClosingFragment:     "JSXClosingFragment",
	KindJSXAttribute:           "JSXAttribute",
	KindJSXSpreadAttribute:     "JSXSpreadAttribute",
	KindJSXIdentifier:          "JSXIdentifier",
	KindJSXMemberExpression:    "JSXMemberExpression",
	KindJSXNamespacedName:      "JSXNamespacedName",
	KindJSXExpressionContainer: "JSXExpressionContainer",
	KindJSXEmptyExpression:     "JSXEmptyExpression",
	KindJSXText:                "JSXText",
	KindJSXSpreadChild:         "JSXSpreadChild",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		if Kind(k) != KindInvalid {
			m[name] = Kind(k)
		}
	}
	return m
}()

// String returns the ESTree type name of the kind.
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return kindNames[KindInvalid]
	}
	return kindNames[k]
}

// KindFromString returns the kind with the given ESTree type name.
func KindFromString(name string) (Kind, bool) {
	k, ok := kindsByName[name]
	return k, ok
}

// IsFunction reports whether k is one of the three function kinds.
func (k Kind) IsFunction() bool {
	return k == KindFunctionDeclaration || k == KindFunctionExpression || k == KindArrowFunctionExpression
}

// IsClass reports whether k is a class declaration or expression.
func (k Kind) IsClass() bool {
	return k == KindClassDeclaration || k == KindClassExpression
}
