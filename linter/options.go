package linter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	jsValidator "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"github.com/speakeasy-api/jsxlint/errors"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var defaultPrinter = message.NewPrinter(language.English)

// OptionsValidator validates rule options against the JSON Schema a rule declares.
// Compiled schemas are cached per rule ID.
type OptionsValidator struct {
	mu      sync.Mutex
	schemas map[string]*jsValidator.Schema
	printer *message.Printer
}

// NewOptionsValidator creates a validator whose messages are rendered with printer.
// A nil printer renders English messages.
func NewOptionsValidator(printer *message.Printer) *OptionsValidator {
	if printer == nil {
		printer = defaultPrinter
	}
	return &OptionsValidator{
		schemas: make(map[string]*jsValidator.Schema),
		printer: printer,
	}
}

// Validate checks options against the rule's schema and returns one error per root
// cause. Rules without a schema accept any options.
func (v *OptionsValidator) Validate(rule ConfigurableRule, options []any) []error {
	schema, err := v.compile(rule)
	if err != nil {
		return []error{err}
	}
	if schema == nil {
		return nil
	}

	instance, err := toJSONValue(options)
	if err != nil {
		return []error{fmt.Errorf("rule %q: options are not valid json: %w", rule.ID(), err)}
	}

	err = schema.Validate(instance)
	if err == nil {
		return nil
	}

	var validationErr *jsValidator.ValidationError
	if !errors.As(err, &validationErr) {
		return []error{fmt.Errorf("rule %q: invalid options: %w", rule.ID(), err)}
	}
	return v.rootCauses(rule.ID(), validationErr)
}

func (v *OptionsValidator) compile(rule ConfigurableRule) (*jsValidator.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if schema, ok := v.schemas[rule.ID()]; ok {
		return schema, nil
	}

	raw := rule.ConfigSchema()
	if len(raw) == 0 {
		v.schemas[rule.ID()] = nil
		return nil, nil
	}

	doc, err := toJSONValue(raw)
	if err != nil {
		return nil, fmt.Errorf("rule %q: schema is not valid json: %w", rule.ID(), err)
	}

	url := rule.ID() + ".schema.json"
	c := jsValidator.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("rule %q: invalid schema: %w", rule.ID(), err)
	}
	schema, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("rule %q: invalid schema: %w", rule.ID(), err)
	}

	v.schemas[rule.ID()] = schema
	return schema, nil
}

func (v *OptionsValidator) rootCauses(ruleID string, err *jsValidator.ValidationError) []error {
	if len(err.Causes) == 0 {
		return []error{v.causeError(ruleID, err)}
	}

	var errs []error
	for _, cause := range err.Causes {
		if len(cause.Causes) == 0 {
			errs = append(errs, v.causeError(ruleID, cause))
		} else {
			errs = append(errs, v.rootCauses(ruleID, cause)...)
		}
	}
	return errs
}

func (v *OptionsValidator) causeError(ruleID string, cause *jsValidator.ValidationError) error {
	location := "options"
	if len(cause.InstanceLocation) > 0 {
		location += "." + strings.Join(cause.InstanceLocation, ".")
	}

	switch cause.ErrorKind.(type) {
	case *kind.Type:
		return fmt.Errorf("rule %q: %s has the wrong type: %s", ruleID, location, cause.ErrorKind.LocalizedString(v.printer))
	case *kind.Required:
		return fmt.Errorf("rule %q: %s is missing a field: %s", ruleID, location, cause.ErrorKind.LocalizedString(v.printer))
	default:
		return fmt.Errorf("rule %q: %s %s", ruleID, location, cause.ErrorKind.LocalizedString(v.printer))
	}
}

// toJSONValue round-trips v through encoding/json so numbers and maps take the shapes
// the schema validator expects.
func toJSONValue(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return jsValidator.UnmarshalJSON(bytes.NewReader(data))
}
