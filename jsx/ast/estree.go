package ast

import (
	"reflect"
	"strings"
)

// Position is a 1-based line and column.
type Position struct {
	Line   int
	Column int
}

// PositionFunc maps a byte offset to a position.
type PositionFunc func(offset int) Position

// ESTreeConverter converts nodes into ESTree-shaped maps, the form JavaScript tooling
// expects (type, range, loc and the kind-specific properties).
type ESTreeConverter struct {
	// Position, when set, is used to populate loc. ESTree columns are 0-based.
	Position PositionFunc
	// OnNode is called for every converted node with its map.
	OnNode func(Node, map[string]any)
}

// ToESTree converts the tree rooted at n.
func ToESTree(n Node, pos PositionFunc) map[string]any {
	c := &ESTreeConverter{Position: pos}
	return c.Convert(n)
}

// Convert converts the tree rooted at n. A nil node converts to nil.
func (c *ESTreeConverter) Convert(n Node) map[string]any {
	if isNilNode(n) {
		return nil
	}

	out := map[string]any{
		"type":  n.Kind().String(),
		"start": n.Pos(),
		"end":   n.End(),
		"range": []any{n.Pos(), n.End()},
	}
	if c.Position != nil {
		out["loc"] = c.loc(n.Pos(), n.End())
	}

	v := reflect.ValueOf(n).Elem()
	t := v.Type()
	for i := range t.NumField() {
		field := t.Field(i)
		name, omitEmpty, ok := estreeTag(field)
		if !ok {
			continue
		}
		fv := v.Field(i)
		if omitEmpty && fv.IsZero() {
			continue
		}
		out[name] = c.value(fv)
	}

	if p, ok := n.(*Program); ok {
		comments := make([]any, 0, len(p.Comments))
		for _, cm := range p.Comments {
			kind := "Line"
			if cm.Block {
				kind = "Block"
			}
			entry := map[string]any{
				"type":  kind,
				"value": cm.Text,
				"range": []any{cm.Pos(), cm.End()},
			}
			if c.Position != nil {
				entry["loc"] = c.loc(cm.Pos(), cm.End())
			}
			comments = append(comments, entry)
		}
		out["comments"] = comments
	}

	if c.OnNode != nil {
		c.OnNode(n, out)
	}

	return out
}

func (c *ESTreeConverter) loc(start, end int) map[string]any {
	s := c.Position(start)
	e := c.Position(end)
	return map[string]any{
		"start": map[string]any{"line": s.Line, "column": s.Column - 1},
		"end":   map[string]any{"line": e.Line, "column": e.Column - 1},
	}
}

var nodeType = reflect.TypeFor[Node]()

func (c *ESTreeConverter) value(v reflect.Value) any {
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return nil
		}
		if n, ok := v.Interface().(Node); ok {
			return c.Convert(n)
		}
		return v.Interface()
	case reflect.Pointer:
		if v.IsNil() {
			return nil
		}
		if v.Type().Implements(nodeType) {
			return c.Convert(v.Interface().(Node))
		}
		if re, ok := v.Interface().(*RegExp); ok {
			return map[string]any{"pattern": re.Pattern, "flags": re.Flags}
		}
		return c.value(v.Elem())
	case reflect.Slice:
		items := make([]any, v.Len())
		for i := range v.Len() {
			items[i] = c.value(v.Index(i))
		}
		return items
	default:
		return v.Interface()
	}
}

func estreeTag(field reflect.StructField) (name string, omitEmpty bool, ok bool) {
	tag, found := field.Tag.Lookup("estree")
	if !found || tag == "-" || !field.IsExported() {
		return "", false, false
	}
	name, opts, _ := strings.Cut(tag, ",")
	return name, opts == "omitempty", true
}

func isNilNode(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
