package cache

import (
	"encoding/json"
	"errors"

	"github.com/speakeasy-api/jsxlint/validation"
)

// finding is the stored form of a validation error.
type finding struct {
	Rule             string               `json:"rule"`
	Severity         validation.Severity  `json:"severity"`
	Message          string               `json:"message"`
	Location         *validation.Location `json:"location,omitempty"`
	NodeType         string               `json:"nodeType,omitempty"`
	DocumentLocation string               `json:"documentLocation,omitempty"`
	Fix              *storedFix           `json:"fix,omitempty"`
}

// storedFix restores a finding's fix from its recorded edits.
type storedFix struct {
	Desc      string                `json:"description"`
	TextEdits []validation.TextEdit `json:"edits"`
}

var _ validation.Fix = (*storedFix)(nil)

func (f *storedFix) Description() string          { return f.Desc }
func (f *storedFix) Edits() []validation.TextEdit { return f.TextEdits }

// encodeResults serializes results. ok is false when a result is not a validation error.
func encodeResults(results []error) ([]byte, bool, error) {
	findings := make([]finding, 0, len(results))
	for _, err := range results {
		var vErr *validation.Error
		if !errors.As(err, &vErr) {
			return nil, false, nil
		}
		f := finding{
			Rule:             vErr.Rule,
			Severity:         vErr.Severity,
			Message:          vErr.Message(),
			Location:         vErr.Location,
			NodeType:         vErr.NodeType,
			DocumentLocation: vErr.DocumentLocation,
		}
		if vErr.Fix != nil {
			f.Fix = &storedFix{Desc: vErr.Fix.Description(), TextEdits: vErr.Fix.Edits()}
		}
		findings = append(findings, f)
	}

	data, err := json.Marshal(findings)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func decodeResults(data []byte) ([]error, error) {
	var findings []finding
	if err := json.Unmarshal(data, &findings); err != nil {
		return nil, err
	}

	results := make([]error, 0, len(findings))
	for _, f := range findings {
		vErr := validation.NewValidationError(f.Severity, f.Rule, errors.New(f.Message), f.Location)
		vErr.NodeType = f.NodeType
		vErr.DocumentLocation = f.DocumentLocation
		if f.Fix != nil {
			vErr.Fix = f.Fix
		}
		results = append(results, vErr)
	}
	return results, nil
}
