package format

import (
	"encoding/json"
	"errors"
	"sort"

	"github.com/speakeasy-api/jsxlint/validation"
)

// ESLintFormatter renders results in the JSON shape of ESLint's json formatter, so
// editors and CI tooling that consume ESLint output can read them.
type ESLintFormatter struct {
	opts options
}

func NewESLintFormatter(opts ...Option) *ESLintFormatter {
	return &ESLintFormatter{opts: newOptions(opts)}
}

type eslintResult struct {
	FilePath            string          `json:"filePath"`
	Messages            []eslintMessage `json:"messages"`
	ErrorCount          int             `json:"errorCount"`
	FatalErrorCount     int             `json:"fatalErrorCount"`
	WarningCount        int             `json:"warningCount"`
	FixableErrorCount   int             `json:"fixableErrorCount"`
	FixableWarningCount int             `json:"fixableWarningCount"`
	Source              string          `json:"source,omitempty"`
}

type eslintMessage struct {
	RuleID    *string    `json:"ruleId"`
	Severity  int        `json:"severity"`
	Message   string     `json:"message"`
	Line      int        `json:"line"`
	Column    int        `json:"column"`
	NodeType  *string    `json:"nodeType"`
	Fatal     bool       `json:"fatal,omitempty"`
	EndLine   int        `json:"endLine,omitempty"`
	EndColumn int        `json:"endColumn,omitempty"`
	Fix       *eslintFix `json:"fix,omitempty"`
}

type eslintFix struct {
	Range [2]int `json:"range"`
	Text  string `json:"text"`
}

func (f *ESLintFormatter) Format(results []error) (string, error) {
	byFile := make(map[string]*eslintResult)
	get := func(path string) *eslintResult {
		r, ok := byFile[path]
		if !ok {
			r = &eslintResult{FilePath: path, Messages: []eslintMessage{}}
			byFile[path] = r
		}
		return r
	}
	for path := range f.opts.sources {
		get(path)
	}

	for _, err := range results {
		var vErr *validation.Error
		if !errors.As(err, &vErr) {
			r := get("")
			r.Messages = append(r.Messages, eslintMessage{Severity: 2, Message: err.Error(), Fatal: true})
			r.ErrorCount++
			r.FatalErrorCount++
			continue
		}

		r := get(vErr.DocumentLocation)
		r.Messages = append(r.Messages, f.message(vErr))

		fixable := vErr.Fix != nil
		if vErr.Severity == validation.SeverityError {
			r.ErrorCount++
			if fixable {
				r.FixableErrorCount++
			}
		} else {
			r.WarningCount++
			if fixable {
				r.FixableWarningCount++
			}
		}
		if vErr.Rule == validation.RuleSyntaxError {
			r.FatalErrorCount++
		}
	}

	paths := make([]string, 0, len(byFile))
	for path := range byFile {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	output := make([]*eslintResult, 0, len(paths))
	for _, path := range paths {
		r := byFile[path]
		if len(r.Messages) > 0 {
			r.Source = string(f.opts.sources[path])
		}
		output = append(output, r)
	}

	bytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (f *ESLintFormatter) message(vErr *validation.Error) eslintMessage {
	msg := eslintMessage{
		Severity: 1,
		Message:  vErr.Message(),
		Line:     vErr.GetLineNumber(),
		Column:   vErr.GetColumnNumber(),
	}
	if vErr.Severity == validation.SeverityError {
		msg.Severity = 2
	}
	if vErr.Location != nil {
		msg.EndLine = vErr.Location.EndLine
		msg.EndColumn = vErr.Location.EndColumn
	}

	// ESLint reports parse failures without a rule id
	if vErr.Rule == validation.RuleSyntaxError {
		msg.Fatal = true
		msg.Message = "Parsing error: " + msg.Message
		return msg
	}

	rule := vErr.Rule
	msg.RuleID = &rule
	if vErr.NodeType != "" {
		nodeType := vErr.NodeType
		msg.NodeType = &nodeType
	}
	if vErr.Fix != nil {
		if edits := vErr.Fix.Edits(); len(edits) == 1 {
			msg.Fix = &eslintFix{Range: [2]int{edits[0].Start, edits[0].End}, Text: edits[0].NewText}
		}
	}
	return msg
}
