package lint

import (
	"fmt"
	"io"
	"time"

	"github.com/speakeasy-api/jsxlint/cmd/jsxlint/internal/output"
)

func reportElapsed(w io.Writer, action string, elapsed time.Duration) {
	roundedElapsed := elapsed.Round(time.Millisecond)
	if roundedElapsed < time.Millisecond {
		roundedElapsed = time.Millisecond
	}

	fmt.Fprintln(w, output.StyleMuted.Render(fmt.Sprintf("%s completed in %s", action, roundedElapsed)))
}
