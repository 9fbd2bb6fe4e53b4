package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-regflow/pkg/model"
)

// Extension keys recognised on operations and string properties. Operations
// describe where the form posts and which analytics beacon it pings; string
// properties can pin wire names and person-name validation.
const (
	extEndpoint    = "x-endpoint"
	extBeaconURL   = "x-beacon-url"
	extEmailDomain = "x-email-domain"
	extSubmitName  = "x-submit-name"
	extPlaceholder = "x-placeholder"
	extNameRule    = "x-name"
)

// Parser converts OpenAPI documents into form schemas using kin-openapi.
type Parser struct {
	resolveReferences bool
}

// ParserOption customises Parser construction.
type ParserOption func(*Parser)

// WithResolvedReferences validates the document and resolves $ref targets
// before extraction.
func WithResolvedReferences() ParserOption {
	return func(p *Parser) {
		p.resolveReferences = true
	}
}

// NewParser constructs a Parser from the supplied options.
func NewParser(opts ...ParserOption) *Parser {
	parser := &Parser{}
	for _, opt := range opts {
		if opt != nil {
			opt(parser)
		}
	}
	return parser
}

// Forms extracts a form schema from every operation in the document that
// declares a request body, keyed by operation id.
func (p *Parser) Forms(ctx context.Context, data []byte) (map[string]model.FormSchema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: p.resolveReferences,
	}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if p.resolveReferences {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate document: %w", err)
		}
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("openapi: document declares no paths")
	}

	baseURL := ""
	if len(spec.Servers) > 0 && spec.Servers[0] != nil {
		baseURL = strings.TrimSuffix(spec.Servers[0].URL, "/")
	}

	forms := make(map[string]model.FormSchema)
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, operation := range item.Operations() {
			if operation == nil || operation.RequestBody == nil {
				continue
			}
			schema, err := p.operationForm(operation, method, path, baseURL)
			if err != nil {
				return nil, err
			}
			if _, dup := forms[schema.ID]; dup {
				return nil, fmt.Errorf("openapi: duplicate operation id %q", schema.ID)
			}
			forms[schema.ID] = schema
		}
	}
	if len(forms) == 0 {
		return nil, errors.New("openapi: no operations declare a request body")
	}
	return forms, nil
}

// Form extracts the schema for a single operation id.
func (p *Parser) Form(ctx context.Context, data []byte, operationID string) (model.FormSchema, error) {
	forms, err := p.Forms(ctx, data)
	if err != nil {
		return model.FormSchema{}, err
	}
	schema, ok := forms[operationID]
	if !ok {
		return model.FormSchema{}, fmt.Errorf("openapi: operation %q not found", operationID)
	}
	return schema, nil
}

func (p *Parser) operationForm(operation *openapi3.Operation, method, path, baseURL string) (model.FormSchema, error) {
	id := operation.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}

	schema := model.FormSchema{
		ID:          id,
		Title:       operation.Summary,
		Description: operation.Description,
		Method:      strings.ToUpper(method),
		Endpoint:    baseURL + path,
	}
	if endpoint := stringExtension(operation.Extensions, extEndpoint); endpoint != "" {
		schema.Endpoint = endpoint
	}
	schema.BeaconURL = stringExtension(operation.Extensions, extBeaconURL)
	emailDomain := stringExtension(operation.Extensions, extEmailDomain)

	body := requestBodySchema(operation.RequestBody)
	if body == nil {
		return model.FormSchema{}, fmt.Errorf("openapi: operation %q request body has no usable schema", id)
	}

	required := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		required[name] = true
	}

	for _, name := range orderedProperties(body) {
		ref := body.Properties[name]
		field, ok := fieldFromProperty(name, ref, required[name], emailDomain)
		if !ok {
			continue
		}
		schema.Fields = append(schema.Fields, field)
	}

	if err := schema.Validate(); err != nil {
		return model.FormSchema{}, fmt.Errorf("openapi: operation %q: %w", id, err)
	}
	return schema, nil
}

// requestBodySchema picks the request media type the gateway can actually
// post, preferring multipart payloads.
func requestBodySchema(ref *openapi3.RequestBodyRef) *openapi3.Schema {
	if ref == nil || ref.Value == nil {
		return nil
	}
	content := ref.Value.Content
	for _, mediaType := range []string{"multipart/form-data", "application/x-www-form-urlencoded", "application/json"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

// orderedProperties returns property names deterministically: the required
// list order first, remaining properties alphabetically. OpenAPI property
// maps carry no ordering of their own.
func orderedProperties(body *openapi3.Schema) []string {
	out := make([]string, 0, len(body.Properties))
	seen := make(map[string]bool, len(body.Properties))
	for _, name := range body.Required {
		if _, ok := body.Properties[name]; ok && !seen[name] {
			out = append(out, name)
			seen[name] = true
		}
	}
	rest := make([]string, 0, len(body.Properties))
	for name := range body.Properties {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// fieldFromProperty maps a string property into a form field. Non-string
// properties are skipped; registration forms only collect text and
// single-choice values.
func fieldFromProperty(name string, ref *openapi3.SchemaRef, required bool, emailDomain string) (model.Field, bool) {
	if ref == nil || ref.Value == nil {
		return model.Field{}, false
	}
	prop := ref.Value
	if !prop.Type.Is(openapi3.TypeString) {
		return model.Field{}, false
	}

	field := model.Field{
		Name:        name,
		Type:        model.FieldTypeString,
		Required:    required,
		Label:       prop.Title,
		Help:        prop.Description,
		Placeholder: stringExtension(prop.Extensions, extPlaceholder),
	}
	if submitName := stringExtension(prop.Extensions, extSubmitName); submitName != "" {
		field.Metadata = map[string]string{model.MetadataSubmitName: submitName}
	}

	if len(prop.Enum) > 0 {
		field.Type = model.FieldTypeSelect
		for _, value := range prop.Enum {
			field.Options = append(field.Options, fmt.Sprint(value))
		}
		field.Rules = append(field.Rules, model.Rule{Kind: model.RuleOneOf})
		return field, true
	}

	if boolExtension(prop.Extensions, extNameRule) {
		field.Rules = append(field.Rules, model.Rule{Kind: model.RuleName})
	}
	if prop.Format == "email" {
		rule := model.Rule{Kind: model.RuleEmail}
		if emailDomain != "" {
			rule.Params = map[string]string{"domain": emailDomain}
		}
		field.Rules = append(field.Rules, rule)
	}
	if prop.MinLength > 0 {
		field.Rules = append(field.Rules, model.Rule{
			Kind:   model.RuleMinLength,
			Params: map[string]string{"value": strconv.FormatUint(prop.MinLength, 10)},
		})
	}
	if prop.MaxLength != nil && *prop.MaxLength > 0 {
		field.Rules = append(field.Rules, model.Rule{
			Kind:   model.RuleMaxLength,
			Params: map[string]string{"value": strconv.FormatUint(*prop.MaxLength, 10)},
		})
	}
	if prop.Pattern != "" {
		field.Rules = append(field.Rules, model.Rule{
			Kind:   model.RulePattern,
			Params: map[string]string{"pattern": prop.Pattern},
		})
	}
	return field, true
}

func stringExtension(extensions map[string]any, key string) string {
	if len(extensions) == 0 {
		return ""
	}
	if value, ok := extensions[key].(string); ok {
		return value
	}
	return ""
}

func boolExtension(extensions map[string]any, key string) bool {
	if len(extensions) == 0 {
		return false
	}
	value, _ := extensions[key].(bool)
	return value
}
