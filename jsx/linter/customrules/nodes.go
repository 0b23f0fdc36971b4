package customrules

import (
	"math"

	"github.com/dop251/goja"
	"github.com/speakeasy-api/jsxlint/jsx"
	"github.com/speakeasy-api/jsxlint/jsx/ast"
	"github.com/speakeasy-api/jsxlint/validation"
)

// estreeIndex holds the ESTree form of a program and the map of every converted node,
// so visitors receive the same objects rules see through parents and ancestors.
type estreeIndex struct {
	root  map[string]any
	nodes map[ast.Node]map[string]any
	conv  *ast.ESTreeConverter
}

func newESTreeIndex(doc *jsx.Document) *estreeIndex {
	idx := &estreeIndex{nodes: make(map[ast.Node]map[string]any)}
	idx.conv = &ast.ESTreeConverter{
		Position: doc.Position,
		OnNode: func(n ast.Node, m map[string]any) {
			idx.nodes[n] = m
		},
	}
	idx.root = idx.conv.Convert(doc.Program)
	return idx
}

// get returns the ESTree map of n, converting it on demand if the program conversion
// did not reach it.
func (idx *estreeIndex) get(n ast.Node) map[string]any {
	if m, ok := idx.nodes[n]; ok {
		return m
	}
	return idx.conv.Convert(n)
}

// exportNode returns the ESTree map behind a JavaScript node value.
func exportNode(v goja.Value) map[string]any {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	m, _ := v.Export().(map[string]any)
	return m
}

// nodeRange reads the [start, end) byte range of an ESTree node.
func nodeRange(node map[string]any) (int, int, bool) {
	if node == nil {
		return 0, 0, false
	}
	if r, ok := node["range"].([]any); ok && len(r) == 2 {
		start, okStart := toInt(r[0])
		end, okEnd := toInt(r[1])
		if okStart && okEnd {
			return start, end, true
		}
	}
	start, okStart := toInt(node["start"])
	end, okEnd := toInt(node["end"])
	return start, end, okStart && okEnd
}

// nodeLocation resolves the location of an ESTree node: from its range when the
// document is known, otherwise from its loc.
func nodeLocation(doc *jsx.Document, node map[string]any) *validation.Location {
	if node == nil {
		return nil
	}
	if start, end, ok := nodeRange(node); ok && doc != nil {
		s, e := doc.Position(start), doc.Position(end)
		return &validation.Location{Line: s.Line, Column: s.Column, EndLine: e.Line, EndColumn: e.Column}
	}

	loc, ok := node["loc"].(map[string]any)
	if !ok {
		return nil
	}
	startLine, startCol, ok := linePosition(loc["start"])
	if !ok {
		return nil
	}
	out := &validation.Location{Line: startLine, Column: startCol + 1}
	if endLine, endCol, ok := linePosition(loc["end"]); ok {
		out.EndLine, out.EndColumn = endLine, endCol+1
	}
	return out
}

func linePosition(v any) (int, int, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return 0, 0, false
	}
	line, okLine := toInt(m["line"])
	col, okCol := toInt(m["column"])
	return line, col, okLine && okCol
}

func nodeType(node map[string]any) string {
	t, _ := node["type"].(string)
	return t
}

// toInt accepts the number shapes goja exports: Go ints from wrapped maps, int64 and
// float64 from JavaScript objects.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
