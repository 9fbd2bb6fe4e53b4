package model

// Canonical option sets for the event registration form.
var (
	// Sizes lists the apparel size tokens accepted for shirt and jacket
	// selections. Matching is case-insensitive; the canonical token is what
	// gets committed and submitted.
	Sizes = []string{"XS", "S", "M", "L", "XL", "XXL"}

	// Hospitals lists the facilities eligible for the event.
	Hospitals = []string{
		"Cedars-Sinai Medical Center",
		"Marina del Rey Hospital",
		"Torrance Memorial Medical Center",
		"Huntington Health",
		"Providence Saint John's Health Center",
	}
)

// RegistrationDomain is the corporate email suffix attendees must register
// with.
const RegistrationDomain = "cedars.com"

// Registration returns the canonical six-field event registration schema with
// a closed hospital list. Endpoint and beacon URLs are placeholders the caller
// is expected to override.
func Registration() FormSchema {
	return registration(Field{
		Name:     "hospital",
		Type:     FieldTypeSelect,
		Required: true,
		Label:    "Hospital",
		Options:  append([]string(nil), Hospitals...),
		Rules:    []Rule{{Kind: RuleOneOf}},
		Metadata: map[string]string{MetadataSubmitName: "Hospital"},
	})
}

// RegistrationFreeText returns the registration schema variant that accepts
// any hospital name of at least three characters instead of a closed list.
func RegistrationFreeText() FormSchema {
	return registration(Field{
		Name:        "hospital",
		Type:        FieldTypeString,
		Required:    true,
		Label:       "Hospital",
		Placeholder: "Where do you work?",
		Rules:       []Rule{{Kind: RuleMinLength, Params: map[string]string{"value": "3"}}},
		Metadata:    map[string]string{MetadataSubmitName: "Hospital"},
	})
}

func registration(hospital Field) FormSchema {
	return FormSchema{
		ID:        "eventRegistration",
		Title:     "Event Registration",
		Endpoint:  "https://forms.example.com/registration",
		Method:    "POST",
		BeaconURL: "https://analytics.example.com/beacon",
		Fields: []Field{
			{
				Name:     "firstName",
				Type:     FieldTypeString,
				Required: true,
				Label:    "First Name",
				Rules:    []Rule{{Kind: RuleName}},
				Metadata: map[string]string{MetadataSubmitName: "FirstName"},
			},
			{
				Name:     "lastName",
				Type:     FieldTypeString,
				Required: true,
				Label:    "Last Name",
				Rules:    []Rule{{Kind: RuleName}},
				Metadata: map[string]string{MetadataSubmitName: "LastName"},
			},
			hospital,
			{
				Name:        "email",
				Type:        FieldTypeString,
				Required:    true,
				Label:       "Email",
				Placeholder: "you@" + RegistrationDomain,
				Rules: []Rule{{
					Kind:   RuleEmail,
					Params: map[string]string{"domain": RegistrationDomain},
				}},
				Metadata: map[string]string{MetadataSubmitName: "Email"},
			},
			{
				Name:     "shirtSize",
				Type:     FieldTypeSelect,
				Required: true,
				Label:    "Shirt Size",
				Options:  append([]string(nil), Sizes...),
				Rules:    []Rule{{Kind: RuleOneOf}},
				Metadata: map[string]string{MetadataSubmitName: "ShirtSize"},
			},
			{
				Name:     "jacketSize",
				Type:     FieldTypeSelect,
				Required: true,
				Label:    "Jacket Size",
				Options:  append([]string(nil), Sizes...),
				Rules:    []Rule{{Kind: RuleOneOf}},
				Metadata: map[string]string{MetadataSubmitName: "JacketSize"},
			},
		},
	}
}
