package fix

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/speakeasy-api/jsxlint/validation"
)

// Mode controls how fixes are applied.
type Mode int

const (
	// ModeNone means no fixing (normal lint).
	ModeNone Mode = iota
	// ModeAuto applies every available fix.
	ModeAuto
	// ModeInteractive asks the prompter before applying each fix.
	ModeInteractive
)

// Options configures fix engine behavior.
type Options struct {
	// Mode controls which fixes are applied.
	Mode Mode
	// DryRun when true reports what would be fixed without applying changes.
	// Acts as a modifier on ModeAuto or ModeInteractive.
	DryRun bool
}

// SkipReason explains why a fix was skipped.
type SkipReason int

const (
	// SkipInteractive means the fix needs confirmation but no prompter is available.
	SkipInteractive SkipReason = iota
	// SkipConflict means an earlier fix already edited an overlapping range.
	SkipConflict
	// SkipUser means the user declined the fix in interactive mode.
	SkipUser
)

func (r SkipReason) String() string {
	switch r {
	case SkipInteractive:
		return "needs confirmation"
	case SkipConflict:
		return "conflicts with another fix"
	case SkipUser:
		return "skipped by user"
	default:
		return "unknown"
	}
}

// Prompter asks whether a fix should be applied.
type Prompter interface {
	ConfirmFix(finding *validation.Error, fix validation.Fix) (bool, error)
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	Error  *validation.Error
	Fix    validation.Fix
	Before string // populated from ChangeDescriber if implemented
	After  string // populated from ChangeDescriber if implemented
}

// SkippedFix records a fix that was skipped.
type SkippedFix struct {
	Error  *validation.Error
	Fix    validation.Fix
	Reason SkipReason
}

// FailedFix records a fix that failed to apply.
type FailedFix struct {
	Error    *validation.Error
	Fix      validation.Fix
	FixError error
}

// Result tracks what the engine did.
type Result struct {
	Applied []AppliedFix
	Skipped []SkippedFix
	Failed  []FailedFix

	// Source is the rewritten source. In dry-run mode, or when nothing was applied,
	// it is the input unchanged.
	Source []byte
}

// Changed reports whether Source differs from the input.
func (r *Result) Changed() bool {
	return r != nil && len(r.Applied) > 0
}

// Engine applies fixes to a source file.
type Engine struct {
	opts     Options
	prompter Prompter
	registry *FixRegistry
}

// NewEngine creates a new fix engine.
func NewEngine(opts Options, prompter Prompter, registry *FixRegistry) *Engine {
	return &Engine{
		opts:     opts,
		prompter: prompter,
		registry: registry,
	}
}

// ProcessErrors takes lint output errors and applies fixes where available.
//
// Pipeline ordering:
//  1. Fixable errors are collected from both Error.Fix fields and the FixRegistry.
//  2. Errors are sorted by position (line, column, rule) so fixes are considered in
//     document order. This ensures deterministic results.
//  3. A fix whose edits overlap an edit accepted earlier is skipped as a conflict.
//     Running the linter again after fixing picks such findings up in a later pass.
//  4. In ModeInteractive every fix is confirmed through the prompter first.
//  5. In dry-run mode, fixes are recorded without rewriting the source but conflict
//     detection still operates.
func (e *Engine) ProcessErrors(ctx context.Context, source []byte, errs []error) (*Result, error) {
	result := &Result{Source: source}
	if e.opts.Mode == ModeNone {
		return result, nil
	}

	type fixableError struct {
		vErr *validation.Error
		fix  validation.Fix
	}

	var fixable []fixableError

	for _, err := range errs {
		var vErr *validation.Error
		if !errors.As(err, &vErr) {
			continue
		}

		fix := vErr.Fix

		// If no fix attached to the error, check the registry
		if fix == nil && e.registry != nil {
			fix = e.registry.GetFix(vErr)
		}

		if fix != nil {
			fixable = append(fixable, fixableError{vErr: vErr, fix: fix})
		}
	}

	if len(fixable) == 0 {
		return result, nil
	}

	sort.SliceStable(fixable, func(i, j int) bool {
		li, ci := fixable[i].vErr.GetLineNumber(), fixable[i].vErr.GetColumnNumber()
		lj, cj := fixable[j].vErr.GetLineNumber(), fixable[j].vErr.GetColumnNumber()
		if li != lj {
			return li < lj
		}
		if ci != cj {
			return ci < cj
		}
		return fixable[i].vErr.Rule < fixable[j].vErr.Rule
	})

	var accepted []validation.TextEdit

	for _, fe := range fixable {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fix := fe.fix
		vErr := fe.vErr
		edits := fix.Edits()

		if err := checkEdits(edits, len(source)); err != nil {
			result.Failed = append(result.Failed, FailedFix{Error: vErr, Fix: fix, FixError: err})
			continue
		}

		if overlapsAny(edits, accepted) {
			result.Skipped = append(result.Skipped, SkippedFix{
				Error:  vErr,
				Fix:    fix,
				Reason: SkipConflict,
			})
			continue
		}

		if e.opts.Mode == ModeInteractive {
			if e.prompter == nil {
				result.Skipped = append(result.Skipped, SkippedFix{
					Error:  vErr,
					Fix:    fix,
					Reason: SkipInteractive,
				})
				continue
			}

			ok, err := e.prompter.ConfirmFix(vErr, fix)
			if err != nil {
				if errors.Is(err, ErrSkipFix) {
					result.Skipped = append(result.Skipped, SkippedFix{Error: vErr, Fix: fix, Reason: SkipUser})
					continue
				}
				return nil, fmt.Errorf("failed to confirm fix: %w", err)
			}
			if !ok {
				result.Skipped = append(result.Skipped, SkippedFix{Error: vErr, Fix: fix, Reason: SkipUser})
				continue
			}
		}

		accepted = append(accepted, edits...)
		result.Applied = append(result.Applied, makeAppliedFix(vErr, fix))
	}

	if e.opts.DryRun || len(accepted) == 0 {
		return result, nil
	}

	out, err := validation.ApplyEdits(source, accepted)
	if err != nil {
		return nil, fmt.Errorf("failed to apply fixes: %w", err)
	}
	result.Source = out

	return result, nil
}

// checkEdits validates a fix's edits against the source length and each other.
func checkEdits(edits []validation.TextEdit, size int) error {
	if len(edits) == 0 {
		return errors.New("fix has no edits")
	}
	for i, edit := range edits {
		if edit.Start < 0 || edit.End > size || edit.Start > edit.End {
			return fmt.Errorf("edit [%d,%d) is outside the source (length %d)", edit.Start, edit.End, size)
		}
		if slices.ContainsFunc(edits[:i], edit.Overlaps) {
			return fmt.Errorf("edit [%d,%d) overlaps another edit of the same fix", edit.Start, edit.End)
		}
	}
	return nil
}

func overlapsAny(edits, accepted []validation.TextEdit) bool {
	for _, edit := range edits {
		if slices.ContainsFunc(accepted, edit.Overlaps) {
			return true
		}
	}
	return false
}

func makeAppliedFix(vErr *validation.Error, fix validation.Fix) AppliedFix {
	af := AppliedFix{Error: vErr, Fix: fix}
	if cd, ok := fix.(validation.ChangeDescriber); ok {
		af.Before, af.After = cd.DescribeChange()
	}
	return af
}
