package format

import (
	"errors"
	"fmt"
	"strings"

	"github.com/speakeasy-api/jsxlint/validation"
)

type TextFormatter struct {
	opts options
}

func NewTextFormatter(opts ...Option) *TextFormatter {
	return &TextFormatter{opts: newOptions(opts)}
}

type textRow struct {
	position string
	severity validation.Severity
	rule     string
	message  string
	fixable  bool
}

func (f *TextFormatter) Format(results []error) (string, error) {
	var sb strings.Builder
	p := painter(f.opts.color)

	var total counts
	for _, group := range groupByDocument(results) {
		indent := ""
		if group.document != "" {
			sb.WriteString(p.paint(styleDocument, group.document))
			sb.WriteString("\n")
			indent = "  "
		}

		rows := make([]textRow, 0, len(group.results))
		var posWidth, sevWidth, ruleWidth int
		for _, err := range group.results {
			total.add(err)
			rows = append(rows, newTextRow(err))
			r := rows[len(rows)-1]
			posWidth = max(posWidth, len(r.position))
			sevWidth = max(sevWidth, len(r.severity))
			ruleWidth = max(ruleWidth, len(r.rule))
		}

		for _, r := range rows {
			sb.WriteString(indent)
			sb.WriteString(p.paint(styleMuted, pad(r.position, posWidth)))
			sb.WriteString("  ")
			sb.WriteString(p.paint(severityStyle(r.severity), pad(string(r.severity), sevWidth)))
			sb.WriteString("  ")
			sb.WriteString(p.paint(styleMuted, pad(r.rule, ruleWidth)))
			sb.WriteString("  ")
			sb.WriteString(r.message)
			if r.fixable {
				sb.WriteString(" ")
				sb.WriteString(p.paint(styleHint, "[fixable]"))
			}
			sb.WriteString("\n")
		}

		if group.document != "" {
			sb.WriteString("\n")
		}
	}

	if len(results) > 0 {
		if !strings.HasSuffix(sb.String(), "\n\n") {
			sb.WriteString("\n")
		}
		summary := fmt.Sprintf("✖ %d problems (%d errors, %d warnings, %d hints)", len(results), total.errors, total.warnings, total.hints)
		style := styleSummary
		if total.errors > 0 {
			style = styleSummary.Foreground(colorError)
		}
		sb.WriteString(p.paint(style, summary))
		sb.WriteString("\n")
		if total.fixable > 0 {
			fmt.Fprintf(&sb, "  %d problems potentially fixable with the --fix option.\n", total.fixable)
		}
	}

	return sb.String(), nil
}

func newTextRow(err error) textRow {
	var vErr *validation.Error
	if !errors.As(err, &vErr) {
		return textRow{position: "-", severity: validation.SeverityError, rule: validation.RuleInternal, message: err.Error()}
	}
	return textRow{
		position: fmt.Sprintf("%d:%d", vErr.GetLineNumber(), vErr.GetColumnNumber()),
		severity: vErr.Severity,
		rule:     vErr.Rule,
		message:  vErr.Message(),
		fixable:  vErr.Fix != nil,
	}
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
