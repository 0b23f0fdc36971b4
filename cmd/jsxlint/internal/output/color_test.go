package output_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/speakeasy-api/jsxlint/cmd/jsxlint/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldColor_NotATerminal(t *testing.T) {
	t.Parallel()

	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	assert.False(t, output.IsTerminal(f), "regular files are not terminals")
	assert.False(t, output.ShouldColor(f, true))
	assert.False(t, output.ShouldColor(f, false))
}

func TestIsTerminal_Nil(t *testing.T) {
	t.Parallel()

	assert.False(t, output.IsTerminal(nil))
}

func TestShouldColor_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, output.ShouldColor(os.Stdout, true))
}

func TestSetNoColor(t *testing.T) {
	output.SetNoColor(true)

	assert.True(t, output.IsNoColor())
	assert.Equal(t, "Fixed:", output.StyleSuccess.Render("Fixed:"))
	assert.Equal(t, "Failed:", output.StyleError.Render("Failed:"))
}
