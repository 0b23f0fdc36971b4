package format

import (
	"encoding/json"
	"errors"

	"github.com/speakeasy-api/jsxlint/validation"
)

type JSONFormatter struct {
	opts options
}

func NewJSONFormatter(opts ...Option) *JSONFormatter {
	return &JSONFormatter{opts: newOptions(opts)}
}

type jsonOutput struct {
	Results []jsonResult `json:"results"`
	Summary jsonSummary  `json:"summary"`
}

type jsonResult struct {
	Rule     string       `json:"rule"`
	Category string       `json:"category"`
	Severity string       `json:"severity"`
	Message  string       `json:"message"`
	Location jsonLocation `json:"location"`
	NodeType string       `json:"nodeType,omitempty"`
	Document string       `json:"document,omitempty"`
	Fix      *jsonFix     `json:"fix,omitempty"`
}

type jsonLocation struct {
	Line      int `json:"line"`
	Column    int `json:"column"`
	EndLine   int `json:"endLine,omitempty"`
	EndColumn int `json:"endColumn,omitempty"`
}

type jsonFix struct {
	Description string     `json:"description"`
	Edits       []jsonEdit `json:"edits,omitempty"`
}

type jsonEdit struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

type jsonSummary struct {
	Total    int `json:"total"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Hints    int `json:"hints"`
	Fixable  int `json:"fixable"`
}

func (f *JSONFormatter) Format(results []error) (string, error) {
	output := jsonOutput{
		Results: make([]jsonResult, 0, len(results)),
	}

	var total counts
	for _, err := range results {
		total.add(err)

		var vErr *validation.Error
		if !errors.As(err, &vErr) {
			// Non-validation error
			output.Results = append(output.Results, jsonResult{
				Rule:     validation.RuleInternal,
				Category: "internal",
				Severity: validation.SeverityError.String(),
				Message:  err.Error(),
				Location: jsonLocation{Line: -1, Column: -1},
			})
			continue
		}

		result := jsonResult{
			Rule:     vErr.Rule,
			Category: f.opts.categoryOf(vErr.Rule),
			Severity: vErr.Severity.String(),
			Message:  vErr.Message(),
			Location: jsonLocation{
				Line:   vErr.GetLineNumber(),
				Column: vErr.GetColumnNumber(),
			},
			NodeType: vErr.NodeType,
			Document: vErr.DocumentLocation,
		}
		if vErr.Location != nil {
			result.Location.EndLine = vErr.Location.EndLine
			result.Location.EndColumn = vErr.Location.EndColumn
		}

		if vErr.Fix != nil {
			fix := &jsonFix{Description: vErr.Fix.Description()}
			for _, edit := range vErr.Fix.Edits() {
				fix.Edits = append(fix.Edits, jsonEdit{Start: edit.Start, End: edit.End, Text: edit.NewText})
			}
			result.Fix = fix
		}

		output.Results = append(output.Results, result)
	}

	output.Summary = jsonSummary{
		Total:    len(results),
		Errors:   total.errors,
		Warnings: total.warnings,
		Hints:    total.hints,
		Fixable:  total.fixable,
	}

	bytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return "", err
	}

	return string(bytes), nil
}
