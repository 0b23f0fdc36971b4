package rules

import (
	"context"
	"fmt"
	"regexp"

	"github.com/speakeasy-api/jsxlint/jsx"
	"github.com/speakeasy-api/jsxlint/jsx/ast"
	"github.com/speakeasy-api/jsxlint/linter"
	"github.com/speakeasy-api/jsxlint/validation"
)

const RuleJSXPropsClassName = "jsx-props-class-name"

const (
	attrClass     = "class"
	attrClassName = "className"
)

var (
	classWord     = regexp.MustCompile(`class\b`)
	classNameWord = regexp.MustCompile(`className\b`)
)

type JSXPropsClassNameRule struct{}

func (r *JSXPropsClassNameRule) ID() string       { return RuleJSXPropsClassName }
func (r *JSXPropsClassNameRule) Category() string { return CategoryStylisticIssues }
func (r *JSXPropsClassNameRule) Description() string {
	return "Inferno accepts both class and className for the CSS class of an element. Mixing the two makes markup harder to search and review, so this rule enforces a single spelling, className by default."
}
func (r *JSXPropsClassNameRule) Summary() string {
	return "Enforce a single attribute name for CSS classes."
}
func (r *JSXPropsClassNameRule) Link() string {
	return docsBaseURL + RuleJSXPropsClassName
}
func (r *JSXPropsClassNameRule) DefaultSeverity() validation.Severity {
	return validation.SeverityWarning
}

func (r *JSXPropsClassNameRule) ConfigSchema() map[string]any {
	return map[string]any{
		"type": "array",
		"prefixItems": []any{
			map[string]any{
				"enum":        []any{attrClassName, attrClass},
				"description": "Attribute name to require",
			},
		},
		"items": false,
	}
}

func (r *JSXPropsClassNameRule) ConfigDefaults() []any {
	return []any{attrClassName}
}

func (r *JSXPropsClassNameRule) Run(ctx context.Context, docInfo *linter.DocumentInfo[*jsx.Document], config *linter.RuleConfig) []error {
	return run(ctx, r, docInfo, config)
}

func (r *JSXPropsClassNameRule) Create(c *Context) Visitors {
	preferred := c.StringOption(0, attrClassName)
	if preferred != attrClass {
		preferred = attrClassName
	}

	return Visitors{
		ast.KindJSXAttribute: func(n ast.Node) {
			attr, ok := n.(*ast.JSXAttribute)
			if !ok {
				return
			}
			name, ok := attr.Name.(*ast.JSXIdentifier)
			if !ok || (name.Name != attrClass && name.Name != attrClassName) {
				return
			}
			if name.Name == preferred {
				return
			}

			found := name.Name
			c.Report(Descriptor{
				Node:           attr,
				Message:        fmt.Sprintf("Invalid attribute '%s' found, use '%s' instead", found, preferred),
				FixDescription: fmt.Sprintf("Replace '%s' with '%s'", found, preferred),
				Fix: func(f *Fixer) *validation.TextEdit {
					return f.ReplaceText(name, convertClassAttr(c.Text(name), preferred))
				},
			})
		},
	}
}

func convertClassAttr(text, preferred string) string {
	if preferred == attrClass {
		return classNameWord.ReplaceAllString(text, attrClass)
	}
	return classWord.ReplaceAllString(text, attrClassName)
}

func (r *JSXPropsClassNameRule) GoodExample() string {
	return `<div className="container" />`
}

func (r *JSXPropsClassNameRule) BadExample() string {
	return `<div class="container" />`
}

func (r *JSXPropsClassNameRule) Rationale() string {
	return "A single spelling keeps components consistent and makes class usage easy to grep for."
}
