package jsx_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/speakeasy-api/jsxlint/jsx"
	"github.com/speakeasy-api/jsxlint/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("boom")
}

func TestUnmarshal_Success(t *testing.T) {
	t.Parallel()

	src := "const a = 1;\nconst é = <div class=\"x\" />;\n"
	doc, validationErrs, err := jsx.Unmarshal(t.Context(), strings.NewReader(src), jsx.WithLocation("a.jsx"))
	require.NoError(t, err)
	assert.Empty(t, validationErrs)
	require.NotNil(t, doc.Program)
	require.NotNil(t, doc.Scope)
	assert.Equal(t, "a.jsx", doc.Location)
	assert.Equal(t, jsx.DefaultSettings(), doc.Settings)

	pos := doc.Position(0)
	assert.Equal(t, 1, pos.Line)
	assert.Equal(t, 1, pos.Column)

	// rune columns: the identifier is two bytes wide
	offset := strings.Index(src, "<div")
	pos = doc.Position(offset)
	assert.Equal(t, 2, pos.Line)
	assert.Equal(t, 11, pos.Column)

	loc := doc.NodeLocation(doc.Program.Body[1])
	assert.Equal(t, 2, loc.Line)
	assert.Equal(t, 1, loc.Column)
	assert.Equal(t, 2, loc.EndLine)
	assert.Equal(t, "const é = <div class=\"x\" />;", doc.Text(doc.Program.Body[1]))
}

func TestUnmarshal_SyntaxError(t *testing.T) {
	t.Parallel()

	doc, validationErrs, err := jsx.Unmarshal(t.Context(), strings.NewReader("const a = ;"))
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Nil(t, doc.Program)
	require.Len(t, validationErrs, 1)

	var vErr *validation.Error
	require.ErrorAs(t, validationErrs[0], &vErr)
	assert.Equal(t, validation.RuleSyntaxError, vErr.Rule)
	assert.Equal(t, validation.SeverityError, vErr.Severity)
	assert.Equal(t, 1, vErr.GetLineNumber())
	assert.Equal(t, 11, vErr.GetColumnNumber())
	assert.Equal(t, "[1:11] error syntax-error Unexpected token ';'", vErr.Error())
}

func TestUnmarshal_Error(t *testing.T) {
	t.Parallel()

	_, _, err := jsx.Unmarshal(t.Context(), failingReader{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read document")

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, _, err = jsx.Unmarshal(ctx, bytes.NewReader(nil))
	require.ErrorIs(t, err, context.Canceled)
}

func TestUnmarshal_CRLFLines(t *testing.T) {
	t.Parallel()

	src := "a;\r\nb;\rc;"
	doc, _, err := jsx.Unmarshal(t.Context(), strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, 2, doc.Position(strings.Index(src, "b")).Line)
	assert.Equal(t, 3, doc.Position(strings.Index(src, "c")).Line)
}

func TestDocument_LeadingComment(t *testing.T) {
	t.Parallel()

	src := "/**\n * @extends Inferno.Component\n */\nclass A {}\n\n// unrelated\nfoo();\nclass B {}\n"
	doc, _, err := jsx.Parse([]byte(src))
	require.NoError(t, err)

	c, ok := doc.LeadingComment(strings.Index(src, "class A"))
	require.True(t, ok)
	assert.True(t, c.Block)
	assert.Contains(t, c.Text, "@extends Inferno.Component")

	_, ok = doc.LeadingComment(strings.Index(src, "class B"))
	assert.False(t, ok)
}

func TestParse_WithSettings(t *testing.T) {
	t.Parallel()

	doc, _, err := jsx.Parse([]byte("x;"), jsx.WithSettings(jsx.Settings{Pragma: "Preact"}))
	require.NoError(t, err)
	assert.Equal(t, "Preact", doc.Settings.Pragma)
	assert.Equal(t, jsx.DefaultCreateClass, doc.Settings.CreateClass)
}

func TestSettingsFromMap(t *testing.T) {
	t.Parallel()

	s, err := jsx.SettingsFromMap(map[string]any{"pragma": "Foo", "other": 1})
	require.NoError(t, err)
	assert.Equal(t, jsx.Settings{Pragma: "Foo", CreateClass: jsx.DefaultCreateClass}, s)

	s, err = jsx.SettingsFromMap(nil)
	require.NoError(t, err)
	assert.Equal(t, jsx.DefaultSettings(), s)

	_, err = jsx.SettingsFromMap(map[string]any{"createClass": 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "createClass")
}
