// Package ast declares the syntax tree produced by the jsx/parser package. Node types
// follow the ESTree shape with the JSX extension and class fields.
package ast

// Node is implemented by every syntax tree node.
type Node interface {
	Kind() Kind
	// Pos is the byte offset of the first character of the node.
	Pos() int
	// End is the byte offset immediately after the node.
	End() int
}

// Loc is the source range of a node, embedded in every node type.
type Loc struct {
	Start  int
	Finish int
}

func (l Loc) Pos() int { return l.Start }
func (l Loc) End() int { return l.Finish }

// Span builds a Loc from byte offsets.
func Span(start, end int) Loc {
	return Loc{Start: start, Finish: end}
}

// Comment is a line (//) or block (/* */) comment. Text excludes the delimiters.
type Comment struct {
	Loc
	Block bool
	Text  string
}
