package validation

import (
	"fmt"
	"strings"
)

// Severity is the level a finding is reported at.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityHint    Severity = "hint"
)

func (s Severity) String() string {
	return string(s)
}

// Valid reports whether s is one of the known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityHint:
		return true
	default:
		return false
	}
}

// Rank orders severities from most to least severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}

// ParseSeverity converts user input into a Severity. "warn" is accepted for warning.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return SeverityError, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "hint", "info":
		return SeverityHint, nil
	default:
		return "", fmt.Errorf("unknown severity %q", s)
	}
}

// Location is the source range a finding points at. Lines and columns are 1-based.
type Location struct {
	Line      int
	Column    int
	EndLine   int
	EndColumn int
}

// Error is a single finding produced by a rule or by parsing a document.
type Error struct {
	UnderlyingError error
	Location        *Location
	Severity        Severity
	Rule            string

	// NodeType is the AST node kind the finding was reported on, if any.
	NodeType string

	// Fix is set when the finding can be corrected automatically.
	Fix Fix

	// DocumentLocation is the file the finding belongs to when it differs from the linted one.
	DocumentLocation string
}

var _ error = (*Error)(nil)

// NewValidationError creates a finding. loc may be nil when the position is unknown.
func NewValidationError(severity Severity, rule string, err error, loc *Location) *Error {
	return &Error{
		UnderlyingError: err,
		Location:        loc,
		Severity:        severity,
		Rule:            rule,
	}
}

func (e *Error) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%d:%d]", e.GetLineNumber(), e.GetColumnNumber())
	if e.Severity != "" {
		sb.WriteString(" ")
		sb.WriteString(e.Severity.String())
	}
	if e.Rule != "" {
		sb.WriteString(" ")
		sb.WriteString(e.Rule)
	}
	sb.WriteString(" ")
	if e.UnderlyingError != nil {
		sb.WriteString(e.UnderlyingError.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.UnderlyingError
}

// Message returns the bare finding text.
func (e *Error) Message() string {
	if e.UnderlyingError == nil {
		return ""
	}
	return e.UnderlyingError.Error()
}

// GetLineNumber returns the 1-based line or -1 when unknown.
func (e *Error) GetLineNumber() int {
	if e == nil || e.Location == nil {
		return -1
	}
	return e.Location.Line
}

// GetColumnNumber returns the 1-based column or -1 when unknown.
func (e *Error) GetColumnNumber() int {
	if e == nil || e.Location == nil {
		return -1
	}
	return e.Location.Column
}
