// Package regflow assembles the registration form toolkit: declarative form
// schemas, per-field validation, single-open selector state, view-state
// transitions, and a submission gateway with an analytics beacon. The root
// package re-exports the pieces most callers need and offers small entry
// points that wire them together.
package regflow

import (
	"context"
	"fmt"

	"github.com/goliatone/go-regflow/pkg/flow"
	"github.com/goliatone/go-regflow/pkg/formspec"
	"github.com/goliatone/go-regflow/pkg/model"
	"github.com/goliatone/go-regflow/pkg/openapi"
	"github.com/goliatone/go-regflow/pkg/selector"
	"github.com/goliatone/go-regflow/pkg/submit"
	"github.com/goliatone/go-regflow/pkg/tui"
	"github.com/goliatone/go-regflow/pkg/validate"
	"github.com/goliatone/go-regflow/pkg/viewstate"
)

// FormSchema describes a registration form.
type FormSchema = model.FormSchema

// Field is a single input inside a schema.
type Field = model.Field

// Rule is a declarative validation constraint.
type Rule = model.Rule

// Result is the outcome of a submission.
type Result = submit.Result

// ValidationError carries per-field messages from a rejected submission.
type ValidationError = submit.ValidationError

// DismissReason names the trigger that closed a selector without a choice.
type DismissReason = selector.DismissReason

// Stage is a view-state flag set.
type Stage = viewstate.Stage

const (
	StageForm       = viewstate.StageForm
	StageSubmitting = viewstate.StageSubmitting
	StageComplete   = viewstate.StageComplete
	StageFailed     = viewstate.StageFailed
)

// Registration returns the canonical event registration schema with the
// closed hospital list.
func Registration() FormSchema { return model.Registration() }

// RegistrationFreeText returns the registration schema variant that accepts
// free-text hospital entry.
func RegistrationFreeText() FormSchema { return model.RegistrationFreeText() }

// NewFlow builds a complete flow (state, selectors, view state, gateway) from
// a schema.
func NewFlow(schema FormSchema, options ...flow.Option) (*flow.Flow, error) {
	return flow.New(schema, options...)
}

// NewValidator compiles a schema's rules into a field validator.
func NewValidator(schema FormSchema) (*validate.Validator, error) {
	return validate.New(schema)
}

// FlowFromOpenAPI loads an OpenAPI document, extracts the named operation's
// request schema, and builds a flow for it.
func FlowFromOpenAPI(ctx context.Context, src openapi.Source, operationID string, options ...flow.Option) (*flow.Flow, error) {
	data, err := openapi.NewLoader().Load(ctx, src)
	if err != nil {
		return nil, err
	}
	schema, err := openapi.NewParser().Form(ctx, data, operationID)
	if err != nil {
		return nil, err
	}
	return flow.New(schema, options...)
}

// FlowFromStore builds a flow for a named form inside a formspec store.
func FlowFromStore(store *formspec.Store, id string, options ...flow.Option) (*flow.Flow, error) {
	schema, ok := store.Form(id)
	if !ok {
		return nil, fmt.Errorf("regflow: form %q not found", id)
	}
	return flow.New(schema, options...)
}

// Run drives a schema through the interactive terminal runner and returns the
// submission result.
func Run(ctx context.Context, schema FormSchema, options ...tui.Option) (*Result, error) {
	runner, err := tui.New(schema, options...)
	if err != nil {
		return nil, err
	}
	return runner.Run(ctx)
}
