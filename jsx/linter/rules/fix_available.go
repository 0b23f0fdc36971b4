package rules

// FixAvailable returns true for rules that provide auto-fix suggestions.
// This satisfies the linter.DocumentedRule interface's FixAvailable() method.

func (r *JSXPropsClassNameRule) FixAvailable() bool         { return true }
func (r *NoDidMountSetStateRule) FixAvailable() bool        { return false }
func (r *NoDidUpdateSetStateRule) FixAvailable() bool       { return false }
func (r *NoDirectMutationStateRule) FixAvailable() bool     { return false }
func (r *NoTyposRule) FixAvailable() bool                   { return false }
func (r *DestructuringAssignmentRule) FixAvailable() bool   { return false }
func (r *VoidDOMElementsNoChildrenRule) FixAvailable() bool { return false }
