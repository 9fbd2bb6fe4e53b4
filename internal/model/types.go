package model

// FieldType is the simplified enum for form-friendly field kinds. Registration
// flows only collect text and single-choice values, so the type surface stays
// deliberately small.
type FieldType string

const (
	FieldTypeString FieldType = "string"
	FieldTypeSelect FieldType = "select"
)

const (
	RuleMinLength = "minLength"
	RuleMaxLength = "maxLength"
	RulePattern   = "pattern"
	RuleName      = "name"
	RuleEmail     = "email"
	RuleOneOf     = "oneOf"
)

// Rule represents a single validation constraint applied to a field. Use the
// Rule* constants for the canonical kinds. Length limits encode their
// threshold in Params["value"], pattern rules keep the expression in
// Params["pattern"], and email rules may pin a required domain suffix in
// Params["domain"]. OneOf rules draw their choices from the field's Options.
type Rule struct {
	Kind   string            `json:"kind" yaml:"kind"`
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}

// Param returns a named rule parameter or "" when absent.
func (r Rule) Param(name string) string {
	if len(r.Params) == 0 {
		return ""
	}
	return r.Params[name]
}

// Well-known Field.Metadata keys.
const (
	// MetadataSubmitName overrides the wire name used when posting a field.
	MetadataSubmitName = "submit.name"
	// MetadataOptionsURL names an HTTP endpoint that serves select options as
	// {"data": [{"value": ..., "label": ...}]}.
	MetadataOptionsURL = "options.url"
)

// Field models an individual input inside a registration form. Struct fields
// are annotated so schema documents can serialise them directly.
type Field struct {
	Name        string            `json:"name" yaml:"name"`
	Type        FieldType         `json:"type" yaml:"type"`
	Required    bool              `json:"required" yaml:"required"`
	Label       string            `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Help        string            `json:"help,omitempty" yaml:"help,omitempty"`
	Options     []string          `json:"options,omitempty" yaml:"options,omitempty"`
	Rules       []Rule            `json:"rules,omitempty" yaml:"rules,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// DisplayLabel resolves the label shown next to the input, falling back to a
// humanised version of the field name.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return Labelize(f.Name)
}

// SubmitName resolves the wire name used when posting the field, falling back
// to the schema field name when no override is declared.
func (f Field) SubmitName() string {
	if len(f.Metadata) > 0 {
		if name := f.Metadata[MetadataSubmitName]; name != "" {
			return name
		}
	}
	return f.Name
}

// Rule returns the first rule of the given kind, if declared.
func (f Field) Rule(kind string) (Rule, bool) {
	for _, rule := range f.Rules {
		if rule.Kind == kind {
			return rule, true
		}
	}
	return Rule{}, false
}

// FormSchema is the top-level representation the validator, selector
// controller, submission gateway, and runners consume.
type FormSchema struct {
	ID          string            `json:"id" yaml:"id"`
	Title       string            `json:"title,omitempty" yaml:"title,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Endpoint    string            `json:"endpoint" yaml:"endpoint"`
	Method      string            `json:"method,omitempty" yaml:"method,omitempty"`
	BeaconURL   string            `json:"beaconUrl,omitempty" yaml:"beaconUrl,omitempty"`
	Fields      []Field           `json:"fields" yaml:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Field looks up a field by schema name.
func (s FormSchema) Field(name string) (Field, bool) {
	for _, field := range s.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// FieldNames returns the declared field names in schema order.
func (s FormSchema) FieldNames() []string {
	out := make([]string, 0, len(s.Fields))
	for _, field := range s.Fields {
		out = append(out, field.Name)
	}
	return out
}
