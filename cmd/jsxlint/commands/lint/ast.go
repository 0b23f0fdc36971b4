package lint

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/speakeasy-api/jsxlint/cmd/jsxlint/commands/cmdutil"
	jsxerrors "github.com/speakeasy-api/jsxlint/errors"
	"github.com/speakeasy-api/jsxlint/jsx"
	"github.com/speakeasy-api/jsxlint/jsx/ast"
	"github.com/spf13/cobra"
)

var astCmd = &cobra.Command{
	Use:   "ast <file>",
	Short: "Print the syntax tree of a source file as ESTree JSON",
	Long: `Parse a JavaScript or JSX source file and print its syntax tree in the
ESTree format used by custom rules.

Use '-' or pipe data to read from stdin:
  echo '<div class="a" />' | jsxlint ast

Examples:
  jsxlint ast src/App.jsx
  jsxlint ast --compact src/App.jsx > App.ast.json`,
	Args: cmdutil.StdinOrFileArgs(1, 1),
	Run:  runAST,
}

var astCompact bool

func init() {
	astCmd.Flags().BoolVar(&astCompact, "compact", false, "Print compact JSON without indentation")
}

func runAST(cmd *cobra.Command, args []string) {
	file := cmdutil.InputFileFromArgs(args)

	var src []byte
	var err error
	if cmdutil.IsStdin(file) {
		src, err = io.ReadAll(os.Stdin)
		file = stdinLocation
	} else {
		src, err = os.ReadFile(file) //nolint:gosec
	}
	if err != nil {
		cmdutil.Die(jsxerrors.WithCode(jsxerrors.CodeInvalidInput, err))
	}

	if err := writeAST(os.Stdout, file, src, astCompact); err != nil {
		cmdutil.Die(err)
	}
}

// writeAST parses src and writes its ESTree JSON to w. Syntax errors are returned
// joined, as the tree of an unparsable source is empty.
func writeAST(w io.Writer, location string, src []byte, compact bool) error {
	doc, parseErrs, err := jsx.Parse(src, jsx.WithLocation(location))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", location, err)
	}
	if doc.Program == nil {
		return jsxerrors.WithCode(jsxerrors.CodeInvalidInput, errors.Join(parseErrs...))
	}

	tree := ast.ToESTree(doc.Program, doc.Position)

	var data []byte
	if compact {
		data, err = json.Marshal(tree)
	} else {
		data, err = json.MarshalIndent(tree, "", "  ")
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
