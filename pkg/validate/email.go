package validate

import "github.com/go-playground/validator/v10"

var emailChecker = validator.New()

// isEmailAddress reports whether value has a plausible local@domain.tld shape.
// Domain eligibility is checked separately so the two failures produce
// distinct messages.
func isEmailAddress(value string) bool {
	return emailChecker.Var(value, "email") == nil
}
