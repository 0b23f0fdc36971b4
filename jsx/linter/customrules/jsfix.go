package customrules

import (
	"errors"
	"fmt"

	"github.com/dop251/goja"
	"github.com/speakeasy-api/jsxlint/validation"
)

// JSFix is a fix produced by JavaScript: a description and text edits against the
// linted source.
type JSFix struct {
	description string
	edits       []validation.TextEdit
}

var _ validation.Fix = (*JSFix)(nil)

func (f *JSFix) Description() string          { return f.description }
func (f *JSFix) Edits() []validation.TextEdit { return f.edits }

// newJSFix creates a JSFix from a JavaScript options object.
// Expected JS shape: { description: string, edits: [{ range: [start, end], text: string }] }
func newJSFix(rt *Runtime, optionsVal goja.Value) (*JSFix, error) {
	if optionsVal == nil || goja.IsUndefined(optionsVal) || goja.IsNull(optionsVal) {
		return nil, errors.New("createFix: argument must be an object")
	}
	obj := optionsVal.ToObject(rt.vm)

	descVal := obj.Get("description")
	if descVal == nil || goja.IsUndefined(descVal) {
		return nil, errors.New("createFix: description is required")
	}

	editsVal := obj.Get("edits")
	if editsVal == nil || goja.IsUndefined(editsVal) || goja.IsNull(editsVal) {
		return nil, errors.New("createFix: edits are required")
	}
	edits, err := parseEdits(editsVal.Export())
	if err != nil {
		return nil, fmt.Errorf("createFix: %w", err)
	}
	if len(edits) == 0 {
		return nil, errors.New("createFix: edits must not be empty")
	}

	return &JSFix{description: descVal.String(), edits: edits}, nil
}

// parseEdits converts an exported edit or array of edits. Null entries are skipped so
// fixer callbacks can return conditional edits.
func parseEdits(v any) ([]validation.TextEdit, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case []any:
		var edits []validation.TextEdit
		for i, item := range val {
			if item == nil {
				continue
			}
			edit, err := parseEdit(item)
			if err != nil {
				return nil, fmt.Errorf("edits[%d]: %w", i, err)
			}
			edits = append(edits, edit)
		}
		return edits, nil
	default:
		edit, err := parseEdit(val)
		if err != nil {
			return nil, err
		}
		return []validation.TextEdit{edit}, nil
	}
}

func parseEdit(v any) (validation.TextEdit, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return validation.TextEdit{}, fmt.Errorf("edit must be an object, got %T", v)
	}
	start, end, ok := nodeRange(m)
	if !ok {
		return validation.TextEdit{}, errors.New("edit requires a range of two integers")
	}
	if start > end {
		return validation.TextEdit{}, fmt.Errorf("edit range [%d, %d] is reversed", start, end)
	}
	text, _ := m["text"].(string)
	return validation.TextEdit{Start: start, End: end, NewText: text}, nil
}

// fixer is handed to report fix callbacks. Each method returns an edit object.
type fixer struct {
	rt *Runtime
}

func (f *fixer) edit(start, end int, text string) map[string]any {
	return map[string]any{"range": []any{start, end}, "text": text}
}

func (f *fixer) nodeRange(node goja.Value) (int, int) {
	start, end, ok := nodeRange(exportNode(node))
	if !ok {
		panic(f.rt.vm.NewTypeError("fixer: node has no range"))
	}
	return start, end
}

func (f *fixer) ReplaceText(node goja.Value, text string) map[string]any {
	start, end := f.nodeRange(node)
	return f.edit(start, end, text)
}

func (f *fixer) ReplaceTextRange(r []int, text string) map[string]any {
	if len(r) != 2 {
		panic(f.rt.vm.NewTypeError("fixer: range must have two elements"))
	}
	return f.edit(r[0], r[1], text)
}

func (f *fixer) InsertTextBefore(node goja.Value, text string) map[string]any {
	start, _ := f.nodeRange(node)
	return f.edit(start, start, text)
}

func (f *fixer) InsertTextAfter(node goja.Value, text string) map[string]any {
	_, end := f.nodeRange(node)
	return f.edit(end, end, text)
}

func (f *fixer) Remove(node goja.Value) map[string]any {
	start, end := f.nodeRange(node)
	return f.edit(start, end, "")
}
