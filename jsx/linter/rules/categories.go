package rules

// Rule categories for JSX linting

const (
	// CategoryPossibleErrors represents rules that catch code that is broken at runtime
	// or silently does nothing
	// Examples: mutating state directly, misspelled lifecycle methods
	CategoryPossibleErrors = "possible-errors"

	// CategoryBestPractices represents rules that flag patterns known to cause bugs or
	// wasted renders
	// Examples: setState in componentDidMount, children on void elements
	CategoryBestPractices = "best-practices"

	// CategoryStylisticIssues represents rules that enforce a consistent code style
	// These don't affect behavior
	// Examples: class vs className, destructuring props
	CategoryStylisticIssues = "stylistic-issues"
)

const docsBaseURL = "https://github.com/speakeasy-api/jsxlint/blob/main/docs/rules.md#"
