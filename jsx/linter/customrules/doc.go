// Package customrules provides support for writing JSX linter rules in TypeScript/JavaScript.
//
// Rule files are bundled with esbuild and executed in a goja JavaScript runtime, so the
// linter can be extended without modifying its Go code.
//
// # Usage
//
// Import this package for its side effects to enable custom rule loading:
//
//	import (
//	    _ "github.com/speakeasy-api/jsxlint/jsx/linter/customrules"
//	    "github.com/speakeasy-api/jsxlint/jsx/linter"
//	)
//
//	func main() {
//	    config := &baseLinter.Config{
//	        Extends: []string{"recommended"},
//	        CustomRules: &baseLinter.CustomRulesConfig{
//	            Paths: []string{"./rules/*.ts"},
//	        },
//	    }
//	    lint, err := linter.NewLinter(config)
//	    // ...
//	}
//
// # Writing Custom Rules
//
// Rules extend the Rule class from @speakeasy-api/jsxlint-types and are registered with
// registerRule. A rule either defines create(context), returning visitor functions keyed
// by ESTree node type, or run(ctx, docInfo, config), returning validation errors.
//
// Visitor rule (no-inline-style.ts):
//
//	import { Rule, registerRule } from '@speakeasy-api/jsxlint-types';
//
//	class NoInlineStyle extends Rule {
//	  id() { return 'custom-no-inline-style'; }
//	  category() { return 'style'; }
//	  description() { return 'Inline style attributes should be replaced with class names.'; }
//	  summary() { return 'Disallow inline styles'; }
//
//	  create(context) {
//	    return {
//	      JSXAttribute(node) {
//	        if (node.name.name === 'style') {
//	          context.report({ node, message: 'Avoid inline style.' });
//	        }
//	      },
//	    };
//	  }
//	}
//
//	registerRule(new NoInlineStyle());
//
// A key ending in ":exit" runs after the node's children were visited. The context
// exposes options, settings, filename, getAncestors(), getText(node) and report().
// report takes { node, message, data, fix }; {{ name }} placeholders in the message are
// replaced from data, and fix receives a fixer with replaceText, replaceTextRange,
// insertTextBefore, insertTextAfter and remove.
//
// Run rules receive docInfo with location, source, ast (the ESTree program, including
// its comments) and settings, and build findings with createValidationError,
// createFix({ description, edits }) and createValidationErrorWithFix.
//
// # Configuration
//
//	extends: recommended
//
//	custom_rules:
//	  paths:
//	    - ./rules/*.ts
//	  timeout: 30s  # Optional timeout per rule run (default: 30s)
//
//	rules:
//	  - id: custom-no-inline-style
//	    severity: error
//
// Field and method names are lowercased in JavaScript (e.g., getAncestors(), not
// GetAncestors()) due to goja's UncapFieldNameMapper.
//
// # Error Handling
//
// Exceptions and timeouts in rules are returned as errors from the rule run. Source maps
// are used to map error locations back to the original rule source.
//
// # Thread Safety
//
// Each rule file gets its own goja runtime. Rules from the same file share it, and runs
// are serialized on it.
//
// # Limitations
//
//   - No npm package resolution - rules must be self-contained or use the types package
//   - No file system or network access from JavaScript
package customrules
