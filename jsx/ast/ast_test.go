package ast_test

import (
	"encoding/json"
	"testing"

	"github.com/speakeasy-api/jsxlint/jsx/ast"
	"github.com/speakeasy-api/jsxlint/jsx/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalk_SourceOrderWithAncestors(t *testing.T) {
	t.Parallel()

	prog, err := parser.Parse([]byte(`const a = <br>{b}</br>;`))
	require.NoError(t, err)

	var kinds []string
	var exprAncestors []ast.Kind
	for item := range ast.Walk(t.Context(), prog) {
		kinds = append(kinds, item.Node.Kind().String())
		if id, ok := item.Node.(*ast.Identifier); ok && id.Name == "b" {
			for _, a := range item.Ancestors {
				exprAncestors = append(exprAncestors, a.Kind())
			}
			assert.Equal(t, ast.KindJSXExpressionContainer, item.Parent().Kind())
		}
	}

	assert.Equal(t, []string{
		"Program",
		"VariableDeclaration",
		"VariableDeclarator",
		"Identifier",
		"JSXElement",
		"JSXOpeningElement",
		"JSXIdentifier",
		"JSXExpressionContainer",
		"Identifier",
		"JSXClosingElement",
		"JSXIdentifier",
	}, kinds)
	assert.Equal(t, []ast.Kind{
		ast.KindProgram,
		ast.KindVariableDeclaration,
		ast.KindVariableDeclarator,
		ast.KindJSXElement,
		ast.KindJSXExpressionContainer,
	}, exprAncestors)
}

func TestWalk_Break(t *testing.T) {
	t.Parallel()

	prog, err := parser.Parse([]byte(`a(); b(); c();`))
	require.NoError(t, err)

	count := 0
	for item := range ast.Walk(t.Context(), prog) {
		count++
		if item.Node.Kind() == ast.KindCallExpression {
			break
		}
	}
	assert.Equal(t, 3, count)
}

func TestInspect_SkipsChildren(t *testing.T) {
	t.Parallel()

	prog, err := parser.Parse([]byte(`function f() { return g(); } h();`))
	require.NoError(t, err)

	var calls []string
	ast.Inspect(prog, func(n ast.Node) bool {
		if fn, ok := n.(*ast.Function); ok && fn.ID != nil && fn.ID.Name == "f" {
			return false
		}
		if call, ok := n.(*ast.CallExpression); ok {
			calls = append(calls, call.Callee.(*ast.Identifier).Name)
		}
		return true
	})
	assert.Equal(t, []string{"h"}, calls)
}

func TestToESTree_Success(t *testing.T) {
	t.Parallel()

	src := "x = this.state.y;\n<div class=\"a\" />;"
	prog, err := parser.Parse([]byte(src))
	require.NoError(t, err)

	pos := func(offset int) ast.Position {
		line, col := 1, 1
		for _, r := range src[:offset] {
			if r == '\n' {
				line++
				col = 1
				continue
			}
			col++
		}
		return ast.Position{Line: line, Column: col}
	}

	tree := ast.ToESTree(prog, pos)
	raw, err := json.Marshal(tree)
	require.NoError(t, err)

	var decoded struct {
		Type string `json:"type"`
		Body []struct {
			Type       string `json:"type"`
			Expression struct {
				Type     string `json:"type"`
				Operator string `json:"operator"`
				Right    struct {
					Type     string `json:"type"`
					Computed bool   `json:"computed"`
					Property struct {
						Name string `json:"name"`
					} `json:"property"`
				} `json:"right"`
				OpeningElement struct {
					Attributes []struct {
						Name struct {
							Name string `json:"name"`
						} `json:"name"`
						Value struct {
							Value string `json:"value"`
						} `json:"value"`
					} `json:"attributes"`
				} `json:"openingElement"`
				Loc struct {
					Start struct {
						Line   int `json:"line"`
						Column int `json:"column"`
					} `json:"start"`
				} `json:"loc"`
			} `json:"expression"`
		} `json:"body"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "Program", decoded.Type)
	require.Len(t, decoded.Body, 2)
	assert.Equal(t, "AssignmentExpression", decoded.Body[0].Expression.Type)
	assert.Equal(t, "=", decoded.Body[0].Expression.Operator)
	assert.Equal(t, "MemberExpression", decoded.Body[0].Expression.Right.Type)
	assert.Equal(t, "y", decoded.Body[0].Expression.Right.Property.Name)

	jsxExpr := decoded.Body[1].Expression
	assert.Equal(t, "JSXElement", jsxExpr.Type)
	require.Len(t, jsxExpr.OpeningElement.Attributes, 1)
	assert.Equal(t, "class", jsxExpr.OpeningElement.Attributes[0].Name.Name)
	assert.Equal(t, "a", jsxExpr.OpeningElement.Attributes[0].Value.Value)
	assert.Equal(t, 2, jsxExpr.Loc.Start.Line)
	assert.Equal(t, 0, jsxExpr.Loc.Start.Column)
}

func TestKindFromString(t *testing.T) {
	t.Parallel()

	k, ok := ast.KindFromString("JSXAttribute")
	require.True(t, ok)
	assert.Equal(t, ast.KindJSXAttribute, k)
	assert.Equal(t, "JSXAttribute", k.String())

	_, ok = ast.KindFromString("NotANode")
	assert.False(t, ok)
	assert.True(t, ast.KindArrowFunctionExpression.IsFunction())
	assert.True(t, ast.KindClassExpression.IsClass())
}
