package lint

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/speakeasy-api/jsxlint/cmd/jsxlint/commands/cmdutil"
	"github.com/speakeasy-api/jsxlint/cmd/jsxlint/internal/output"
	"github.com/speakeasy-api/jsxlint/jsx"
	jsxLinter "github.com/speakeasy-api/jsxlint/jsx/linter"
	"github.com/speakeasy-api/jsxlint/linter"
	"github.com/spf13/cobra"
)

var listRulesCmd = &cobra.Command{
	Use:   "list-rules",
	Short: "List all available linting rules",
	Long: `List all available linting rules with their metadata.

Shows each rule's ID, category, default severity, summary and rulesets.
Use --category to filter by category, or --ruleset to show only rules in a ruleset.

Examples:
  jsxlint list-rules
  jsxlint list-rules --category possible-errors
  jsxlint list-rules --ruleset recommended
  jsxlint list-rules --format json`,
	Args: cobra.NoArgs,
	Run:  runListRules,
}

var (
	listRulesFormat   string
	listRulesCategory string
	listRulesRuleset  string
)

func init() {
	listRulesCmd.Flags().StringVarP(&listRulesFormat, "format", "f", "text", "Output format: text or json")
	listRulesCmd.Flags().StringVar(&listRulesCategory, "category", "", "Filter by category (e.g., possible-errors, best-practices, stylistic-issues)")
	listRulesCmd.Flags().StringVar(&listRulesRuleset, "ruleset", "", "Filter by ruleset (e.g., recommended, stylistic, all)")
}

type ruleInfo struct {
	ID              string   `json:"id"`
	Category        string   `json:"category"`
	DefaultSeverity string   `json:"defaultSeverity"`
	Summary         string   `json:"summary"`
	Description     string   `json:"description"`
	FixAvailable    bool     `json:"fixAvailable,omitempty"`
	Configurable    bool     `json:"configurable,omitempty"`
	Link            string   `json:"link,omitempty"`
	Rulesets        []string `json:"rulesets"`
}

func runListRules(_ *cobra.Command, _ []string) {
	lint, err := jsxLinter.NewLinter(linter.NewConfig())
	if err != nil {
		cmdutil.Die(err)
	}

	infos := collectRules(lint.Registry(), listRulesCategory, listRulesRuleset)

	switch listRulesFormat {
	case "json":
		if err := printRulesJSON(os.Stdout, infos); err != nil {
			cmdutil.Die(err)
		}
	default:
		printRulesText(os.Stdout, infos, lint.Registry().AllCategories())
	}
}

func collectRules(registry *linter.Registry[*jsx.Document], category, ruleset string) []ruleInfo {
	var infos []ruleInfo
	for _, rule := range registry.AllRules() {
		if category != "" && rule.Category() != category {
			continue
		}

		rulesets := registry.RulesetsContaining(rule.ID())
		if ruleset != "" && !slices.Contains(rulesets, ruleset) {
			continue
		}

		info := ruleInfo{
			ID:              rule.ID(),
			Category:        rule.Category(),
			DefaultSeverity: rule.DefaultSeverity().String(),
			Summary:         rule.Summary(),
			Description:     rule.Description(),
			Link:            rule.Link(),
			Rulesets:        rulesets,
		}

		if fixable, ok := rule.(interface{ FixAvailable() bool }); ok {
			info.FixAvailable = fixable.FixAvailable()
		}
		if _, ok := rule.(linter.ConfigurableRule); ok {
			info.Configurable = true
		}

		infos = append(infos, info)
	}
	return infos
}

func printRulesText(w io.Writer, infos []ruleInfo, categories []string) {
	if len(infos) == 0 {
		fmt.Fprintln(w, "No rules found matching the specified filters.")
		return
	}

	// Group by category
	byCategory := make(map[string][]ruleInfo)
	for _, info := range infos {
		byCategory[info.Category] = append(byCategory[info.Category], info)
	}

	for _, cat := range categories {
		rules, ok := byCategory[cat]
		if !ok {
			continue
		}

		fmt.Fprintf(w, "\n%s\n", output.StyleHeader.Render(fmt.Sprintf("%s (%d rules)", strings.ToUpper(cat), len(rules))))
		fmt.Fprintln(w, strings.Repeat("─", 80))

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, info := range rules {
			fixMarker := ""
			if info.FixAvailable {
				fixMarker = " [fixable]"
			}
			fmt.Fprintf(tw, "  %s\t%s\t[%s]%s\n", info.ID, info.Summary, info.DefaultSeverity, fixMarker)
			if info.Link != "" {
				fmt.Fprintf(tw, "  \tDocs: %s\n", info.Link)
			}
			fmt.Fprintf(tw, "  \tRulesets: %s\n", strings.Join(info.Rulesets, ", "))
		}
		_ = tw.Flush()
	}

	fmt.Fprintf(w, "\n%d rules total\n", len(infos))
}

func printRulesJSON(w io.Writer, infos []ruleInfo) error {
	if infos == nil {
		infos = []ruleInfo{}
	}
	bytes, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(bytes))
	return err
}
