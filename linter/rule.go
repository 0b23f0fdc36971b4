package linter

import (
	"context"

	"github.com/speakeasy-api/jsxlint/validation"
)

// Rule represents a single linting rule
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "no-typos")
	ID() string

	// Category returns the rule category (e.g., "possible-errors", "stylistic-issues")
	Category() string

	// Description returns a human-readable description of what the rule checks
	Description() string

	// Summary returns a short summary of what the rule checks
	Summary() string

	// Link returns an optional URL to documentation for this rule
	Link() string

	// DefaultSeverity returns the default severity level for this rule
	DefaultSeverity() validation.Severity
}

// RuleRunner is the interface rules must implement to execute their logic
// This is separate from Rule to allow different runner types for different document types
type RuleRunner[T any] interface {
	Rule

	// Run executes the rule against the provided document
	// Returns any issues found as validation errors
	Run(ctx context.Context, docInfo *DocumentInfo[T], config *RuleConfig) []error
}

// DocumentedRule provides extended documentation for a rule
type DocumentedRule interface {
	Rule

	// GoodExample returns source showing correct usage
	GoodExample() string

	// BadExample returns source showing incorrect usage
	BadExample() string

	// Rationale explains why this rule exists
	Rationale() string

	// FixAvailable returns true if the rule provides auto-fix suggestions
	FixAvailable() bool
}

// ConfigurableRule indicates a rule has configurable options
type ConfigurableRule interface {
	Rule

	// ConfigSchema returns JSON Schema for the rule's options array
	ConfigSchema() map[string]any

	// ConfigDefaults returns the options used when none are configured
	ConfigDefaults() []any
}
