package fix

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/speakeasy-api/jsxlint/validation"
)

// ErrSkipFix is returned by a prompter when the user skips the remaining fixes.
var ErrSkipFix = errors.New("fix skipped")

// TerminalPrompter implements Prompter using stdin/stdout for terminal interaction.
type TerminalPrompter struct {
	reader *bufio.Reader
	writer io.Writer

	all  bool
	quit bool
}

var _ Prompter = (*TerminalPrompter)(nil)

// NewTerminalPrompter creates a new terminal-based prompter.
func NewTerminalPrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{
		reader: bufio.NewReader(in),
		writer: out,
	}
}

// writef writes formatted output to the prompter's writer, ignoring write errors
// since terminal output failures are not recoverable.
func (p *TerminalPrompter) writef(format string, args ...any) {
	_, _ = fmt.Fprintf(p.writer, format, args...)
}

// ConfirmFix shows the finding and its change and asks whether to apply it.
// Answering "a" applies this and every later fix, "q" skips every later fix.
func (p *TerminalPrompter) ConfirmFix(finding *validation.Error, fix validation.Fix) (bool, error) {
	if p.all {
		return true, nil
	}
	if p.quit {
		return false, ErrSkipFix
	}

	// Display context about the error
	p.writef("\n[%d:%d] %s %s\n", finding.GetLineNumber(), finding.GetColumnNumber(), finding.Rule, finding.Message())
	p.writef("  Fix: %s\n", fix.Description())
	if cd, ok := fix.(validation.ChangeDescriber); ok {
		before, after := cd.DescribeChange()
		p.writef("  - %s\n  + %s\n", before, after)
	}

	for {
		p.writef("  Apply? [y]es [n]o [a]ll [q]uit > ")

		line, err := p.reader.ReadString('\n')
		if err != nil {
			return false, fmt.Errorf("reading input: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes", "":
			return true, nil
		case "n", "no", "s", "skip":
			return false, nil
		case "a", "all":
			p.all = true
			return true, nil
		case "q", "quit":
			p.quit = true
			return false, ErrSkipFix
		default:
			p.writef("  Invalid answer: %s\n", strings.TrimSpace(line))
		}
	}
}

// Confirm asks a yes/no question.
func (p *TerminalPrompter) Confirm(message string) (bool, error) {
	p.writef("%s [y/n]: ", message)

	line, err := p.reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("reading input: %w", err)
	}
	line = strings.ToLower(strings.TrimSpace(line))

	return line == "y" || line == "yes", nil
}
