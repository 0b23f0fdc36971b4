package format

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/speakeasy-api/jsxlint/validation"
)

// SummaryFormatter formats results as a per-rule summary table.
type SummaryFormatter struct {
	opts options
}

// NewSummaryFormatter creates a new SummaryFormatter.
func NewSummaryFormatter(opts ...Option) *SummaryFormatter {
	return &SummaryFormatter{opts: newOptions(opts)}
}

type ruleSummary struct {
	rule     string
	category string
	severity validation.Severity
	count    int
}

// Format outputs a per-rule summary table sorted by count descending.
func (f *SummaryFormatter) Format(results []error) (string, error) {
	byRule := make(map[string]*ruleSummary)

	var total counts
	for _, err := range results {
		total.add(err)

		rule := validation.RuleInternal
		severity := validation.SeverityError
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			rule = vErr.Rule
			severity = vErr.Severity
		}

		rs, ok := byRule[rule]
		if !ok {
			rs = &ruleSummary{
				rule:     rule,
				category: f.opts.categoryOf(rule),
				severity: severity,
			}
			byRule[rule] = rs
		}
		rs.count++
	}

	// Sort by count descending, then by rule name
	sorted := make([]*ruleSummary, 0, len(byRule))
	for _, rs := range byRule {
		sorted = append(sorted, rs)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].rule < sorted[j].rule
	})

	p := painter(f.opts.color)
	var sb strings.Builder

	fmt.Fprintf(&sb, "%-40s %8s %18s %8s\n", "Rule", "Severity", "Category", "Count")
	sb.WriteString(strings.Repeat("─", 77))
	sb.WriteString("\n")

	for _, rs := range sorted {
		severity := fmt.Sprintf("%8s", rs.severity)
		fmt.Fprintf(&sb, "%-40s %s %18s %8d\n", rs.rule, p.paint(severityStyle(rs.severity), severity), rs.category, rs.count)
	}

	sb.WriteString(strings.Repeat("─", 77))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "✖ %d problems (%d errors, %d warnings, %d hints) across %d rules\n",
		len(results), total.errors, total.warnings, total.hints, len(byRule))

	return sb.String(), nil
}
