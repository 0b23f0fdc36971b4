package validation

const (
	// RuleSyntaxError is reported when a file cannot be parsed.
	RuleSyntaxError = "syntax-error"
	// RuleInternal is used for failures that are not findings, such as a crashing custom rule.
	RuleInternal = "internal"
)

// RuleInfo describes findings that do not come from a lint rule.
type RuleInfo struct {
	Summary     string
	Description string
	HowToFix    string
}

var ruleInfo = map[string]RuleInfo{
	RuleSyntaxError: {
		Summary:     "File could not be parsed.",
		Description: "The file contains JavaScript or JSX the parser does not accept, so no rule could run against it.",
		HowToFix:    "Fix the syntax error at the reported position.",
	},
	RuleInternal: {
		Summary:     "Linting failed.",
		Description: "A rule failed to run. This is not a problem in the linted file.",
		HowToFix:    "Check the custom rule named in the message.",
	},
}

// RuleInfoForID returns the description of a built-in finding type.
func RuleInfoForID(id string) (RuleInfo, bool) {
	info, ok := ruleInfo[id]
	return info, ok
}
