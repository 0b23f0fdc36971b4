package errors

import "fmt"

// Code classifies a failure of the tool itself, as opposed to a lint finding.
type Code string

const (
	// CodeInvalidConfig marks a configuration file or rule option that cannot be used.
	CodeInvalidConfig Code = "invalid-configuration"
	// CodeInvalidInput marks unreadable inputs such as missing files.
	CodeInvalidInput Code = "invalid-input"
	// CodeInternal marks bugs and failures in custom rule execution.
	CodeInternal Code = "internal"
)

// ExitCode maps a code to the process exit status used by the CLI.
func (c Code) ExitCode() int {
	switch c {
	case CodeInvalidConfig, CodeInvalidInput:
		return 2
	default:
		return 1
	}
}

// CodedError attaches a Code to an error.
type CodedError struct {
	Code  Code
	Cause error
}

func (e *CodedError) Error() string {
	return fmt.Sprintf("%s: %v", e.Code, e.Cause)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// WithCode wraps err with code. A nil err stays nil.
func WithCode(code Code, err error) error {
	if err == nil {
		return nil
	}
	return &CodedError{Code: code, Cause: err}
}

// CodeOf returns the code of the first CodedError in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var coded *CodedError
	if As(err, &coded) {
		return coded.Code
	}
	return CodeInternal
}
