package linter

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// DocGenerator generates documentation from registered rules
type DocGenerator[T any] struct {
	registry *Registry[T]
}

// NewDocGenerator creates a new documentation generator
func NewDocGenerator[T any](registry *Registry[T]) *DocGenerator[T] {
	return &DocGenerator[T]{registry: registry}
}

// RuleDoc represents documentation for a single rule
type RuleDoc struct {
	ID              string         `json:"id" yaml:"id"`
	Category        string         `json:"category" yaml:"category"`
	Summary         string         `json:"summary" yaml:"summary"`
	Description     string         `json:"description" yaml:"description"`
	Rationale       string         `json:"rationale,omitempty" yaml:"rationale,omitempty"`
	Link            string         `json:"link,omitempty" yaml:"link,omitempty"`
	DefaultSeverity string         `json:"default_severity" yaml:"default_severity"`
	GoodExample     string         `json:"good_example,omitempty" yaml:"good_example,omitempty"`
	BadExample      string         `json:"bad_example,omitempty" yaml:"bad_example,omitempty"`
	FixAvailable    bool           `json:"fix_available" yaml:"fix_available"`
	ConfigSchema    map[string]any `json:"config_schema,omitempty" yaml:"config_schema,omitempty"`
	ConfigDefaults  []any          `json:"config_defaults,omitempty" yaml:"config_defaults,omitempty"`
	Rulesets        []string       `json:"rulesets" yaml:"rulesets"`
}

// GenerateRuleDoc generates documentation for a single rule
func (g *DocGenerator[T]) GenerateRuleDoc(rule RuleRunner[T]) *RuleDoc {
	doc := &RuleDoc{
		ID:              rule.ID(),
		Category:        rule.Category(),
		Summary:         rule.Summary(),
		Description:     rule.Description(),
		Link:            rule.Link(),
		DefaultSeverity: rule.DefaultSeverity().String(),
		Rulesets:        g.registry.RulesetsContaining(rule.ID()),
	}

	// Check for optional documentation interface
	if documented, ok := any(rule).(DocumentedRule); ok {
		doc.GoodExample = documented.GoodExample()
		doc.BadExample = documented.BadExample()
		doc.Rationale = documented.Rationale()
		doc.FixAvailable = documented.FixAvailable()
	}

	// Check for configuration interface
	if configurable, ok := any(rule).(ConfigurableRule); ok {
		doc.ConfigSchema = configurable.ConfigSchema()
		doc.ConfigDefaults = configurable.ConfigDefaults()
	}

	return doc
}

// GenerateAllRuleDocs generates documentation for all registered rules
func (g *DocGenerator[T]) GenerateAllRuleDocs() []*RuleDoc {
	var docs []*RuleDoc
	for _, rule := range g.registry.AllRules() {
		docs = append(docs, g.GenerateRuleDoc(rule))
	}
	return docs
}

// GenerateCategoryDocs groups rules by category
func (g *DocGenerator[T]) GenerateCategoryDocs() map[string][]*RuleDoc {
	categories := make(map[string][]*RuleDoc)
	for _, rule := range g.registry.AllRules() {
		doc := g.GenerateRuleDoc(rule)
		categories[doc.Category] = append(categories[doc.Category], doc)
	}
	return categories
}

// WriteJSON writes rule documentation as JSON
func (g *DocGenerator[T]) WriteJSON(w io.Writer) error {
	docs := g.GenerateAllRuleDocs()
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"rules":      docs,
		"categories": g.registry.AllCategories(),
		"rulesets":   g.registry.AllRulesets(),
	})
}

// WriteMarkdown writes rule documentation as Markdown
func (g *DocGenerator[T]) WriteMarkdown(w io.Writer) error {
	docs := g.GenerateCategoryDocs()

	categories := make([]string, 0, len(docs))
	for category := range docs {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	if err := writeLine(w, "# Lint Rules Reference"); err != nil {
		return err
	}
	if err := writeEmptyLine(w); err != nil {
		return err
	}

	// Table of contents
	if err := writeLine(w, "## Categories"); err != nil {
		return err
	}
	if err := writeEmptyLine(w); err != nil {
		return err
	}
	for _, category := range categories {
		if err := writeF(w, "- [%s](#%s)\n", category, category); err != nil {
			return err
		}
	}
	if err := writeEmptyLine(w); err != nil {
		return err
	}

	// Rules by category
	for _, category := range categories {
		if err := writeF(w, "## %s\n\n", category); err != nil {
			return err
		}

		for _, rule := range docs[category] {
			if err := g.writeRuleMarkdown(w, rule); err != nil {
				return err
			}
		}
	}

	return nil
}

func (g *DocGenerator[T]) writeRuleMarkdown(w io.Writer, rule *RuleDoc) error {
	if err := writeF(w, "### %s\n\n", rule.ID); err != nil {
		return err
	}
	if err := writeF(w, "**Severity:** %s  \n", rule.DefaultSeverity); err != nil {
		return err
	}
	if err := writeF(w, "**Category:** %s  \n", rule.Category); err != nil {
		return err
	}
	if rule.Summary != "" {
		if err := writeF(w, "**Summary:** %s  \n", rule.Summary); err != nil {
			return err
		}
	}
	if err := writeF(w, "**Rulesets:** %s  \n", strings.Join(rule.Rulesets, ", ")); err != nil {
		return err
	}

	if rule.FixAvailable {
		if err := writeLine(w, "**Auto-fix available:** Yes  "); err != nil {
			return err
		}
	}
	if err := writeEmptyLine(w); err != nil {
		return err
	}

	if err := writeF(w, "%s\n\n", rule.Description); err != nil {
		return err
	}

	if rule.Rationale != "" {
		if err := writeF(w, "#### Rationale\n\n%s\n\n", rule.Rationale); err != nil {
			return err
		}
	}

	if rule.BadExample != "" {
		if err := writeExample(w, "#### ❌ Incorrect", rule.BadExample); err != nil {
			return err
		}
	}

	if rule.GoodExample != "" {
		if err := writeExample(w, "#### ✅ Correct", rule.GoodExample); err != nil {
			return err
		}
	}

	if options := optionRows(rule.ConfigSchema, rule.ConfigDefaults); len(options) > 0 {
		if err := writeLine(w, "#### Options"); err != nil {
			return err
		}
		if err := writeEmptyLine(w); err != nil {
			return err
		}
		if err := writeLine(w, "| Position | Type | Default | Description |"); err != nil {
			return err
		}
		if err := writeLine(w, "|----------|------|---------|-------------|"); err != nil {
			return err
		}
		for _, row := range options {
			if err := writeF(w, "| %d | %s | %s | %s |\n", row.position, row.typ, row.def, row.description); err != nil {
				return err
			}
		}
		if err := writeEmptyLine(w); err != nil {
			return err
		}
	}

	if rule.Link != "" {
		if err := writeF(w, "[Documentation →](%s)\n\n", rule.Link); err != nil {
			return err
		}
	}

	if err := writeLine(w, "---"); err != nil {
		return err
	}
	if err := writeEmptyLine(w); err != nil {
		return err
	}

	return nil
}

type optionRow struct {
	position    int
	typ         string
	def         string
	description string
}

// optionRows describes the positional options of an array schema using prefixItems.
func optionRows(schema map[string]any, defaults []any) []optionRow {
	items, _ := schema["prefixItems"].([]any)
	rows := make([]optionRow, 0, len(items))
	for i, item := range items {
		itemSchema, _ := item.(map[string]any)
		row := optionRow{position: i, typ: schemaType(itemSchema), def: "-"}
		if i < len(defaults) && defaults[i] != nil {
			row.def = "`" + compactJSON(defaults[i]) + "`"
		}
		if desc, ok := itemSchema["description"].(string); ok {
			row.description = desc
		}
		rows = append(rows, row)
	}
	return rows
}

func schemaType(schema map[string]any) string {
	if enum, ok := schema["enum"].([]any); ok {
		values := make([]string, 0, len(enum))
		for _, v := range enum {
			values = append(values, "`"+compactJSON(v)+"`")
		}
		return strings.Join(values, " \\| ")
	}
	if typ, ok := schema["type"].(string); ok {
		return typ
	}
	return "any"
}

func compactJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

func writeExample(w io.Writer, heading, example string) error {
	if err := writeLine(w, heading); err != nil {
		return err
	}
	if err := writeLine(w, "```jsx"); err != nil {
		return err
	}
	if err := writeLine(w, example); err != nil {
		return err
	}
	if err := writeLine(w, "```"); err != nil {
		return err
	}
	return writeEmptyLine(w)
}

func writeLine(w io.Writer, text string) error {
	_, err := fmt.Fprintln(w, text)
	return err
}

func writeEmptyLine(w io.Writer) error {
	_, err := fmt.Fprintln(w)
	return err
}

func writeF(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}
