package ast

// PropertyName returns the static name of a property, method or class member key:
// identifiers, private names and string or numeric literals. Computed keys only
// have a name when they are string literals.
func PropertyName(key Node, computed bool) (string, bool) {
	switch k := key.(type) {
	case *Identifier:
		if computed {
			return "", false
		}
		return k.Name, true
	case *PrivateIdentifier:
		return k.Name, true
	case *Literal:
		if s, ok := k.Value.(string); ok {
			return s, true
		}
		if !computed && k.Raw != "" {
			return k.Raw, true
		}
	case *TemplateLiteral:
		if len(k.Expressions) == 0 && len(k.Quasis) == 1 {
			return k.Quasis[0].Cooked, true
		}
	}
	return "", false
}

// StringValue returns the value of a string literal or a template literal without
// substitutions.
func StringValue(n Node) (string, bool) {
	switch n := n.(type) {
	case *Literal:
		s, ok := n.Value.(string)
		return s, ok
	case *TemplateLiteral:
		if len(n.Expressions) == 0 && len(n.Quasis) == 1 {
			return n.Quasis[0].Cooked, true
		}
	}
	return "", false
}

// IsIdentifier reports whether n is an identifier with the given name.
func IsIdentifier(n Node, name string) bool {
	id, ok := n.(*Identifier)
	return ok && id.Name == name
}

// MemberPropertyName returns the static name of a member expression's property.
func MemberPropertyName(m *MemberExpression) (string, bool) {
	if m == nil {
		return "", false
	}
	return PropertyName(m.Property, m.Computed)
}

// IsThisMember reports whether n is this.<name>, in dot or string-literal bracket form.
func IsThisMember(n Node, name string) bool {
	m, ok := n.(*MemberExpression)
	if !ok {
		return false
	}
	if _, ok := m.Object.(*ThisExpression); !ok {
		return false
	}
	prop, ok := MemberPropertyName(m)
	return ok && prop == name
}

// JSXElementName returns the tag name of a JSX element name node, joining member
// and namespaced names with "." and ":".
func JSXElementName(n Node) string {
	switch n := n.(type) {
	case *JSXIdentifier:
		return n.Name
	case *JSXMemberExpression:
		if n.Property == nil {
			return JSXElementName(n.Object)
		}
		return JSXElementName(n.Object) + "." + n.Property.Name
	case *JSXNamespacedName:
		if n.Namespace == nil || n.Name == nil {
			return ""
		}
		return n.Namespace.Name + ":" + n.Name.Name
	}
	return ""
}

// FunctionOf returns n as a function node when it is one.
func FunctionOf(n Node) (*Function, bool) {
	f, ok := n.(*Function)
	return f, ok && f != nil
}

// ClassOf returns n as a class node when it is one.
func ClassOf(n Node) (*Class, bool) {
	c, ok := n.(*Class)
	return c, ok && c != nil
}
