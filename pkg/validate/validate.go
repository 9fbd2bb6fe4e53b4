package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-regflow/pkg/model"
)

// Validator applies a schema's declared rules to raw input. It is pure and
// deterministic: the same field/value pair always yields the same result, and
// no call performs I/O or mutates shared state.
type Validator struct {
	schema model.FormSchema
	rules  map[string]ruleSet
}

// New compiles a Validator from a schema. The schema is sanity-checked first
// so rule compilation never sees a malformed document.
func New(schema model.FormSchema) (*Validator, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}

	rules := make(map[string]ruleSet, len(schema.Fields))
	for _, field := range schema.Fields {
		set, err := compileRules(field)
		if err != nil {
			return nil, err
		}
		rules[field.Name] = set
	}

	return &Validator{schema: schema, rules: rules}, nil
}

// Schema returns the schema the validator was compiled from.
func (v *Validator) Schema() model.FormSchema {
	return v.schema
}

// Field validates a single field. It returns the normalized value (trimmed,
// markup stripped, canonical option token for closed sets) and an empty
// message when valid, or a human-readable message when not.
func (v *Validator) Field(name, raw string) (string, string) {
	set, ok := v.rules[name]
	if !ok {
		return strings.TrimSpace(raw), ""
	}
	return set.check(raw)
}

// All validates every schema field against the supplied values and returns the
// error map keyed by field name. A clean form yields an empty (non-nil) map.
func (v *Validator) All(values map[string]string) map[string]string {
	errs := make(map[string]string)
	for _, field := range v.schema.Fields {
		if _, msg := v.Field(field.Name, values[field.Name]); msg != "" {
			errs[field.Name] = msg
		}
	}
	return errs
}

// Normalize returns the value that would be committed for the field, ignoring
// any validation outcome.
func (v *Validator) Normalize(name, raw string) string {
	normalized, _ := v.Field(name, raw)
	return normalized
}

// namePattern allows unicode letters separated by single spaces, hyphens, or
// apostrophes, so "Mary-Jane O'Brien" passes while digits and symbols fail.
var namePattern = regexp.MustCompile(`^[\p{L}]+(?:[ '\-][\p{L}]+)*$`)

type ruleSet struct {
	label       string
	required    bool
	freeText    bool
	name        bool
	email       bool
	emailDomain string
	minLen      *int
	maxLen      *int
	pattern     *regexp.Regexp
	oneOf       []string
}

func compileRules(field model.Field) (ruleSet, error) {
	set := ruleSet{
		label:    field.DisplayLabel(),
		required: field.Required,
		freeText: field.Type != model.FieldTypeSelect,
	}

	for _, rule := range field.Rules {
		switch rule.Kind {
		case model.RuleMinLength:
			val, err := strconv.Atoi(rule.Param("value"))
			if err != nil {
				return ruleSet{}, fmt.Errorf("validate: field %q minLength: %w", field.Name, err)
			}
			set.minLen = &val
		case model.RuleMaxLength:
			val, err := strconv.Atoi(rule.Param("value"))
			if err != nil {
				return ruleSet{}, fmt.Errorf("validate: field %q maxLength: %w", field.Name, err)
			}
			set.maxLen = &val
		case model.RulePattern:
			expr := rule.Param("pattern")
			re, err := regexp.Compile(expr)
			if err != nil {
				return ruleSet{}, fmt.Errorf("validate: field %q pattern %q: %w", field.Name, expr, err)
			}
			set.pattern = re
		case model.RuleName:
			set.name = true
		case model.RuleEmail:
			set.email = true
			set.emailDomain = strings.ToLower(strings.TrimSpace(rule.Param("domain")))
		case model.RuleOneOf:
			set.oneOf = field.Options
		}
	}

	if set.oneOf == nil && field.Type == model.FieldTypeSelect {
		set.oneOf = field.Options
	}
	return set, nil
}

// check runs the compiled rules in order of specificity: requiredness, closed
// sets, then free-text shape rules.
func (r ruleSet) check(raw string) (string, string) {
	value := strings.TrimSpace(raw)
	if r.freeText {
		value = strings.TrimSpace(StripMarkup(value))
	}

	if value == "" {
		if r.required {
			return "", r.label + " is required"
		}
		return "", ""
	}

	if len(r.oneOf) > 0 {
		for _, option := range r.oneOf {
			if strings.EqualFold(option, value) {
				return option, ""
			}
		}
		return value, "Select a " + strings.ToLower(r.label) + " from the list"
	}

	if r.name {
		if len([]rune(value)) < 2 {
			return value, r.label + " must be at least 2 characters"
		}
		if !namePattern.MatchString(value) {
			return value, r.label + " may only contain letters, spaces, hyphens, and apostrophes"
		}
	}

	if r.email {
		if !isEmailAddress(value) {
			return value, "Enter a valid email address"
		}
		if r.emailDomain != "" && !strings.HasSuffix(strings.ToLower(value), "@"+r.emailDomain) {
			return value, "Email must be a @" + r.emailDomain + " address"
		}
	}

	if r.minLen != nil && len([]rune(value)) < *r.minLen {
		return value, fmt.Sprintf("%s must be at least %d characters", r.label, *r.minLen)
	}
	if r.maxLen != nil && len([]rune(value)) > *r.maxLen {
		return value, fmt.Sprintf("%s must be at most %d characters", r.label, *r.maxLen)
	}
	if r.pattern != nil && !r.pattern.MatchString(value) {
		return value, r.label + " has an invalid format"
	}

	return value, ""
}
