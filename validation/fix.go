package validation

import (
	"fmt"
	"slices"
)

// TextEdit replaces the bytes in [Start, End) of a source file with NewText.
type TextEdit struct {
	Start   int
	End     int
	NewText string
}

// Overlaps reports whether e and other touch the same bytes. Two insertions at the
// same offset also overlap since their order would be ambiguous.
func (e TextEdit) Overlaps(other TextEdit) bool {
	if e.Start == e.End && other.Start == other.End {
		return e.Start == other.Start
	}
	return e.Start < other.End && other.Start < e.End
}

// Fix is a suggested correction for a finding, expressed as text edits against the
// source the finding was produced from. Fixes never mutate a syntax tree.
type Fix interface {
	// Description returns a human-readable description of what the fix does.
	Description() string

	// Edits returns non-overlapping edits against the original source.
	Edits() []TextEdit
}

// ChangeDescriber is implemented by fixes that can describe their change as
// before/after text, used for dry-run reporting.
type ChangeDescriber interface {
	DescribeChange() (before, after string)
}

// ReplaceFix replaces a single span of text.
type ReplaceFix struct {
	Desc   string
	Edit   TextEdit
	Before string
}

var (
	_ Fix             = (*ReplaceFix)(nil)
	_ ChangeDescriber = (*ReplaceFix)(nil)
)

func (f *ReplaceFix) Description() string { return f.Desc }
func (f *ReplaceFix) Edits() []TextEdit   { return []TextEdit{f.Edit} }

func (f *ReplaceFix) DescribeChange() (string, string) {
	return f.Before, f.Edit.NewText
}

// ApplyEdits applies edits to src. Edits must not overlap.
func ApplyEdits(src []byte, edits []TextEdit) ([]byte, error) {
	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b TextEdit) int {
		return a.Start - b.Start
	})

	out := make([]byte, 0, len(src))
	last := 0
	for i, edit := range sorted {
		if edit.Start < 0 || edit.End > len(src) || edit.Start > edit.End {
			return nil, fmt.Errorf("edit [%d,%d) is outside the source (length %d)", edit.Start, edit.End, len(src))
		}
		if i > 0 && sorted[i-1].Overlaps(edit) {
			return nil, fmt.Errorf("edit [%d,%d) overlaps edit [%d,%d)", edit.Start, edit.End, sorted[i-1].Start, sorted[i-1].End)
		}
		out = append(out, src[last:edit.Start]...)
		out = append(out, edit.NewText...)
		last = edit.End
	}
	out = append(out, src[last:]...)
	return out, nil
}
