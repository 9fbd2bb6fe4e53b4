package model

import internalmodel "github.com/goliatone/go-regflow/internal/model"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeString = internalmodel.FieldTypeString
	FieldTypeSelect = internalmodel.FieldTypeSelect
)

const (
	RuleMinLength = internalmodel.RuleMinLength
	RuleMaxLength = internalmodel.RuleMaxLength
	RulePattern   = internalmodel.RulePattern
	RuleName      = internalmodel.RuleName
	RuleEmail     = internalmodel.RuleEmail
	RuleOneOf     = internalmodel.RuleOneOf
)

const (
	MetadataSubmitName = internalmodel.MetadataSubmitName
	MetadataOptionsURL = internalmodel.MetadataOptionsURL
)

type Rule = internalmodel.Rule
type Field = internalmodel.Field
type FormSchema = internalmodel.FormSchema

// Registration returns the canonical six-field event registration schema.
func Registration() FormSchema { return internalmodel.Registration() }

// RegistrationFreeText returns the free-text hospital variant of the
// registration schema.
func RegistrationFreeText() FormSchema { return internalmodel.RegistrationFreeText() }

// Labelize converts a field name into a human-friendly label.
func Labelize(name string) string { return internalmodel.Labelize(name) }

// Canonical option sets and constants for the registration schema.
var (
	Sizes     = internalmodel.Sizes
	Hospitals = internalmodel.Hospitals
)

const RegistrationDomain = internalmodel.RegistrationDomain
