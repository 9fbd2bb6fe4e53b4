package model

import (
	"errors"
	"fmt"
)

var (
	errSchemaIDMissing       = errors.New("model: schema id is required")
	errSchemaEndpointMissing = errors.New("model: schema endpoint is required")
	errSchemaNoFields        = errors.New("model: schema declares no fields")
)

// Validate checks the structural sanity of a schema before any flow consumes
// it: non-empty id and endpoint, unique non-empty field names, and options on
// every select field.
func (s FormSchema) Validate() error {
	if s.ID == "" {
		return errSchemaIDMissing
	}
	if s.Endpoint == "" {
		return errSchemaEndpointMissing
	}
	if len(s.Fields) == 0 {
		return errSchemaNoFields
	}

	seen := make(map[string]struct{}, len(s.Fields))
	for _, field := range s.Fields {
		if field.Name == "" {
			return fmt.Errorf("model: schema %q declares a field with no name", s.ID)
		}
		if _, dup := seen[field.Name]; dup {
			return fmt.Errorf("model: schema %q declares field %q twice", s.ID, field.Name)
		}
		seen[field.Name] = struct{}{}

		if err := field.validate(s.ID); err != nil {
			return err
		}
	}
	return nil
}

func (f Field) validate(schemaID string) error {
	switch f.Type {
	case FieldTypeString, FieldTypeSelect, "":
	default:
		return fmt.Errorf("model: schema %q field %q has unknown type %q", schemaID, f.Name, f.Type)
	}

	if f.Type == FieldTypeSelect && len(f.Options) == 0 {
		return fmt.Errorf("model: schema %q select field %q has no options", schemaID, f.Name)
	}

	for _, rule := range f.Rules {
		switch rule.Kind {
		case RuleMinLength, RuleMaxLength, RulePattern, RuleName, RuleEmail, RuleOneOf:
		default:
			return fmt.Errorf("model: schema %q field %q has unknown rule %q", schemaID, f.Name, rule.Kind)
		}
		if rule.Kind == RuleOneOf && len(f.Options) == 0 {
			return fmt.Errorf("model: schema %q field %q uses oneOf without options", schemaID, f.Name)
		}
	}
	return nil
}
