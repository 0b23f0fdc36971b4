package customrules

import jsxerrors "github.com/speakeasy-api/jsxlint/errors"

const (
	// ErrLoad is returned by LoadRules when rule files cannot be resolved, bundled or
	// evaluated.
	ErrLoad jsxerrors.Error = "failed to load custom rules"
	// ErrTimeout is reported when a rule run exceeds the configured timeout.
	ErrTimeout jsxerrors.Error = "execution timeout exceeded"
)
