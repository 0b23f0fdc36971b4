// Package jsx loads JavaScript and JSX source files into documents the linter can run
// rules against.
package jsx

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/speakeasy-api/jsxlint/errors"
	"github.com/speakeasy-api/jsxlint/jsx/ast"
	"github.com/speakeasy-api/jsxlint/jsx/parser"
	"github.com/speakeasy-api/jsxlint/jsx/scope"
	"github.com/speakeasy-api/jsxlint/validation"
)

// Document is a parsed source file.
type Document struct {
	Location string
	Source   []byte
	// Program is nil when the source failed to parse.
	Program  *ast.Program
	Scope    *scope.Info
	Settings Settings

	lineStarts []int
}

type Option[T any] func(o *T)

type UnmarshalOptions struct {
	location string
	settings *Settings
}

// WithLocation records the path the document was read from.
func WithLocation(location string) Option[UnmarshalOptions] {
	return func(o *UnmarshalOptions) {
		o.location = location
	}
}

// WithSettings sets the shared settings rules read component detection names from.
func WithSettings(settings Settings) Option[UnmarshalOptions] {
	return func(o *UnmarshalOptions) {
		o.settings = &settings
	}
}

// Unmarshal reads and parses a document. Failures reading r are returned as err. A
// syntax error is returned as a validation error with rule syntax-error, together with
// a document whose Program is nil.
func Unmarshal(ctx context.Context, r io.Reader, opts ...Option[UnmarshalOptions]) (*Document, []error, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read document: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	return Parse(src, opts...)
}

// Parse parses src into a document.
func Parse(src []byte, opts ...Option[UnmarshalOptions]) (*Document, []error, error) {
	o := UnmarshalOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	doc := &Document{
		Location: o.location,
		Source:   src,
		Settings: DefaultSettings(),
	}
	if o.settings != nil {
		doc.Settings = o.settings.withDefaults()
	}
	doc.lineStarts = computeLineStarts(src)

	prog, err := parser.Parse(src)
	if err != nil {
		var syntaxErr *parser.SyntaxError
		if !errors.As(err, &syntaxErr) {
			return nil, nil, err
		}
		vErr := validation.NewValidationError(
			validation.SeverityError,
			validation.RuleSyntaxError,
			errors.New(syntaxErr.Msg),
			&validation.Location{Line: syntaxErr.Line, Column: syntaxErr.Column},
		)
		return doc, []error{vErr}, nil
	}

	doc.Program = prog
	doc.Scope = scope.Analyze(prog)
	return doc, nil, nil
}

func computeLineStarts(src []byte) []int {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\n':
			starts = append(starts, i+1)
		case '\r':
			if i+1 < len(src) && src[i+1] == '\n' {
				i++
			}
			starts = append(starts, i+1)
		}
	}
	return starts
}

// Position converts a byte offset into a 1-based line and rune column.
func (d *Document) Position(offset int) ast.Position {
	if d == nil {
		return ast.Position{Line: -1, Column: -1}
	}
	offset = max(0, min(offset, len(d.Source)))
	line := sort.Search(len(d.lineStarts), func(i int) bool {
		return d.lineStarts[i] > offset
	}) - 1
	start := d.lineStarts[line]
	return ast.Position{Line: line + 1, Column: utf8.RuneCount(d.Source[start:offset]) + 1}
}

// NodeLocation returns the source range of a node.
func (d *Document) NodeLocation(n ast.Node) *validation.Location {
	start := d.Position(n.Pos())
	end := d.Position(n.End())
	return &validation.Location{Line: start.Line, Column: start.Column, EndLine: end.Line, EndColumn: end.Column}
}

// Text returns the source text of a node.
func (d *Document) Text(n ast.Node) string {
	if n == nil || n.Pos() < 0 || n.End() > len(d.Source) || n.Pos() > n.End() {
		return ""
	}
	return string(d.Source[n.Pos():n.End()])
}

// LeadingComment returns the comment immediately preceding offset, separated from it
// only by whitespace.
func (d *Document) LeadingComment(offset int) (*ast.Comment, bool) {
	if d.Program == nil {
		return nil, false
	}
	comments := d.Program.Comments
	i := sort.Search(len(comments), func(i int) bool {
		return comments[i].End() > offset
	}) - 1
	if i < 0 {
		return nil, false
	}
	c := comments[i]
	if strings.TrimSpace(string(d.Source[c.End():offset])) != "" {
		return nil, false
	}
	return &c, true
}
