package format

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/speakeasy-api/jsxlint/validation"
)

var (
	colorError   = lipgloss.Color("#ef5350")
	colorWarning = lipgloss.Color("#fff59d")
	colorHint    = lipgloss.Color("#64b5f6")
	colorMuted   = lipgloss.Color("#888888")
)

var (
	styleDocument = lipgloss.NewStyle().Underline(true)
	styleMuted    = lipgloss.NewStyle().Foreground(colorMuted)
	styleError    = lipgloss.NewStyle().Foreground(colorError)
	styleWarning  = lipgloss.NewStyle().Foreground(colorWarning)
	styleHint     = lipgloss.NewStyle().Foreground(colorHint)
	styleSummary  = lipgloss.NewStyle().Bold(true)
)

// painter applies styles only when color is enabled, leaving text untouched otherwise.
type painter bool

func (p painter) paint(style lipgloss.Style, s string) string {
	if !p || s == "" {
		return s
	}
	return style.Render(s)
}

func severityStyle(sev validation.Severity) lipgloss.Style {
	switch sev {
	case validation.SeverityError:
		return styleError
	case validation.SeverityWarning:
		return styleWarning
	default:
		return styleHint
	}
}
