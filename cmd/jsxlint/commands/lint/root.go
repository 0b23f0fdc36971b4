// Package lint implements the jsxlint commands: lint, list-rules and ast.
package lint

import "github.com/spf13/cobra"

// Apply adds the lint commands to rootCmd.
func Apply(rootCmd *cobra.Command) {
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(listRulesCmd)
	rootCmd.AddCommand(astCmd)
}
