package form

import (
	"sync"

	"github.com/goliatone/go-regflow/pkg/validate"
)

// State is the in-memory record of current field values for one registration
// session, plus the per-field validation messages shown inline. It lives only
// for the page session: created with the flow, discarded with it.
type State struct {
	mu        sync.Mutex
	validator *validate.Validator
	values    map[string]string
	errors    map[string]string
}

// NewState builds an empty state bound to a compiled validator.
func NewState(validator *validate.Validator) *State {
	return &State{
		validator: validator,
		values:    make(map[string]string),
		errors:    make(map[string]string),
	}
}

// Set stores a raw value and clears any error recorded for the field, so the
// inline message disappears as soon as the user edits the input.
func (s *State) Set(field, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[field] = value
	delete(s.errors, field)
}

// Commit stores the normalized form of a value, the path used when a selector
// commits a chosen option.
func (s *State) Commit(field, value string) {
	s.Set(field, s.validator.Normalize(field, value))
}

// Blur validates a single field and records or clears its message. It returns
// the message, empty when the field is valid.
func (s *State) Blur(field string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, msg := s.validator.Field(field, s.values[field])
	if msg == "" {
		delete(s.errors, field)
	} else {
		s.errors[field] = msg
	}
	return msg
}

// Value returns the raw value currently held for the field.
func (s *State) Value(field string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[field]
}

// Values returns a copy of all current values.
func (s *State) Values() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// ErrorFor returns the message recorded for the field, empty when clean.
func (s *State) ErrorFor(field string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errors[field]
}

// Errors returns a copy of the current error map.
func (s *State) Errors() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.errors))
	for k, v := range s.errors {
		out[k] = v
	}
	return out
}

// SetErrors replaces the whole error map, the path used when a submit attempt
// re-validates every field.
func (s *State) SetErrors(errs map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = make(map[string]string, len(errs))
	for k, v := range errs {
		s.errors[k] = v
	}
}

// HasErrors reports whether any field currently carries a message.
func (s *State) HasErrors() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.errors) > 0
}

// Reset discards all values and errors.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]string)
	s.errors = make(map[string]string)
}
