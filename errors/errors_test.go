package errors_test

import (
	"fmt"
	"testing"

	"github.com/speakeasy-api/jsxlint/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const errRuleNotFound = errors.Error("rule not found")

func TestError_Is_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		target   error
		expected bool
	}{
		{
			name:     "exact match",
			target:   errors.Error("rule not found"),
			expected: true,
		},
		{
			name:     "wrapped with cause",
			target:   errors.New("rule not found -- jsx-props-classname"),
			expected: true,
		},
		{
			name:     "prefix without separator",
			target:   errors.New("rule not found anywhere"),
			expected: false,
		},
		{
			name:     "different error",
			target:   errors.Error("invalid severity"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, errRuleNotFound.Is(tt.target))
		})
	}
}

func TestError_Wrap_Success(t *testing.T) {
	t.Parallel()

	wrapped := errRuleNotFound.Wrap(fmt.Errorf("id %q", "no-typo"))

	assert.Equal(t, `rule not found -- id "no-typo"`, wrapped.Error())
	require.ErrorIs(t, wrapped, errRuleNotFound)

	var target errors.Error
	require.ErrorAs(t, wrapped, &target)
	assert.Equal(t, errRuleNotFound, target)

	assert.Equal(t, "rule not found -- id 3", errRuleNotFound.Wrapf("id %d", 3).Error())
	assert.Equal(t, "rule not found", errRuleNotFound.Wrap(nil).Error())
}

func TestUnwrapErrors_Success(t *testing.T) {
	t.Parallel()

	first := errors.New("first")
	second := errors.New("second")

	assert.Nil(t, errors.UnwrapErrors(nil))
	assert.Equal(t, []error{first}, errors.UnwrapErrors(first))
	assert.Equal(t, []error{first, second}, errors.UnwrapErrors(errors.Join(first, second)))
}

func TestCodeOf_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		code     errors.Code
		exitCode int
	}{
		{
			name:     "configuration error",
			err:      errors.WithCode(errors.CodeInvalidConfig, errors.New("unknown severity")),
			code:     errors.CodeInvalidConfig,
			exitCode: 2,
		},
		{
			name:     "wrapped input error",
			err:      fmt.Errorf("linting: %w", errors.WithCode(errors.CodeInvalidInput, errors.New("no such file"))),
			code:     errors.CodeInvalidInput,
			exitCode: 2,
		},
		{
			name:     "uncoded error",
			err:      errors.New("boom"),
			code:     errors.CodeInternal,
			exitCode: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			code := errors.CodeOf(tt.err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.exitCode, code.ExitCode())
		})
	}
}

func TestWithCode_Nil(t *testing.T) {
	t.Parallel()
	assert.NoError(t, errors.WithCode(errors.CodeInternal, nil))
}
