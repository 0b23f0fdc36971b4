// Package format renders lint results for terminals and machines.
package format

import (
	"errors"

	"github.com/speakeasy-api/jsxlint/validation"
)

type Formatter interface {
	Format(results []error) (string, error)
}

// Option configures a formatter.
type Option func(o *options)

type options struct {
	color    bool
	category func(rule string) string
	sources  map[string][]byte
}

func newOptions(opts []Option) options {
	o := options{color: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithColor enables or disables severity colors. Colors are on by default and are
// still dropped by lipgloss when the output is not a terminal.
func WithColor(enabled bool) Option {
	return func(o *options) {
		o.color = enabled
	}
}

// WithCategoryLookup sets how a rule ID maps to its category.
func WithCategoryLookup(lookup func(rule string) string) Option {
	return func(o *options) {
		o.category = lookup
	}
}

// WithSources provides file contents keyed by document location, for formats that
// embed the source.
func WithSources(sources map[string][]byte) Option {
	return func(o *options) {
		o.sources = sources
	}
}

func (o options) categoryOf(rule string) string {
	switch rule {
	case validation.RuleInternal, validation.RuleSyntaxError:
		return "internal"
	}
	if o.category != nil {
		if c := o.category(rule); c != "" {
			return c
		}
	}
	return "unknown"
}

type counts struct {
	errors   int
	warnings int
	hints    int
	fixable  int
}

func (c *counts) add(err error) {
	var vErr *validation.Error
	if !errors.As(err, &vErr) {
		c.errors++
		return
	}
	switch vErr.Severity {
	case validation.SeverityError:
		c.errors++
	case validation.SeverityWarning:
		c.warnings++
	case validation.SeverityHint:
		c.hints++
	}
	if vErr.Fix != nil {
		c.fixable++
	}
}

type documentGroup struct {
	document string
	results  []error
}

// groupByDocument groups results by document location in order of first appearance.
func groupByDocument(results []error) []documentGroup {
	var groups []documentGroup
	index := make(map[string]int)
	for _, err := range results {
		doc := ""
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			doc = vErr.DocumentLocation
		}
		i, ok := index[doc]
		if !ok {
			i = len(groups)
			index[doc] = i
			groups = append(groups, documentGroup{document: doc})
		}
		groups[i].results = append(groups[i].results, err)
	}
	return groups
}
