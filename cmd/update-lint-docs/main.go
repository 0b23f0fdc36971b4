package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/speakeasy-api/jsxlint/jsx"
	jsxLinter "github.com/speakeasy-api/jsxlint/jsx/linter"
	"github.com/speakeasy-api/jsxlint/linter"
	"github.com/spf13/cobra"
)

const defaultOutput = "docs/rules.md"

var (
	outputPath string
	checkOnly  bool
)

var rootCmd = &cobra.Command{
	Use:           "update-lint-docs",
	Short:         "Regenerate the lint rules reference",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(_ *cobra.Command, _ []string) error {
		return updateLintDocs(outputPath, checkOnly)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", defaultOutput, "Markdown file to write")
	rootCmd.Flags().BoolVar(&checkOnly, "check", false, "Fail if the file is out of date instead of writing it")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func updateLintDocs(output string, check bool) error {
	fmt.Println("🔄 Updating lint rules reference...")

	// Create linter to get the registry
	lint, err := jsxLinter.NewLinter(linter.NewConfig())
	if err != nil {
		return fmt.Errorf("failed to create linter: %w", err)
	}
	docGen := linter.NewDocGenerator(lint.Registry())

	content, err := generateDocs(docGen)
	if err != nil {
		return err
	}

	existing, err := os.ReadFile(output) //nolint:gosec
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read %s: %w", output, err)
	}
	if bytes.Equal(existing, content) {
		fmt.Printf("✅ %s is up to date\n", output)
		return nil
	}
	if check {
		return fmt.Errorf("%s is out of date, run go run ./cmd/update-lint-docs", output)
	}

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(output, content, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	fmt.Printf("🎉 Updated %s\n", output)
	return nil
}

// generateDocs renders a summary table followed by the full per-category reference.
func generateDocs(docGen *linter.DocGenerator[*jsx.Document]) ([]byte, error) {
	var buf bytes.Buffer
	if err := docGen.WriteMarkdown(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate markdown: %w", err)
	}

	reference := buf.String()
	heading, body, _ := strings.Cut(reference, "\n")

	var content strings.Builder
	content.WriteString(heading)
	content.WriteString("\n\n")
	content.WriteString(generateRulesTable(docGen))
	content.WriteString(body)
	return []byte(content.String()), nil
}

func generateRulesTable(docGen *linter.DocGenerator[*jsx.Document]) string {
	docs := docGen.GenerateAllRuleDocs()

	// Sort rules alphabetically by ID
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].ID < docs[j].ID
	})

	var content strings.Builder
	content.WriteString("| Rule | Severity | Fixable | Description |\n")
	content.WriteString("|------|----------|---------|-------------|\n")

	for _, doc := range docs {
		// Escape pipe characters in description
		desc := strings.ReplaceAll(doc.Summary, "|", "\\|")
		desc = strings.ReplaceAll(desc, "\n", " ")
		fixable := ""
		if doc.FixAvailable {
			fixable = "yes"
		}
		fmt.Fprintf(&content, "| [`%s`](#%s) | %s | %s | %s |\n", doc.ID, doc.ID, doc.DefaultSeverity, fixable, desc)
	}

	return content.String()
}
