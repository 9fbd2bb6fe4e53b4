package flow

import (
	"context"

	"github.com/goliatone/go-regflow/pkg/form"
	"github.com/goliatone/go-regflow/pkg/model"
	"github.com/goliatone/go-regflow/pkg/selector"
	"github.com/goliatone/go-regflow/pkg/submit"
	"github.com/goliatone/go-regflow/pkg/validate"
	"github.com/goliatone/go-regflow/pkg/viewstate"
)

// Option customises the flow configuration.
type Option func(*Flow)

// WithGatewayOptions forwards options to the submission gateway built for the
// flow.
func WithGatewayOptions(options ...submit.Option) Option {
	return func(f *Flow) {
		f.gatewayOptions = append(f.gatewayOptions, options...)
	}
}

// WithViewFlow shares an existing view-state machine, for callers whose other
// screens already watch one.
func WithViewFlow(view *viewstate.Flow) Option {
	return func(f *Flow) {
		if view != nil {
			f.view = view
		}
	}
}

// Flow wires a schema, its validator, the form state, the selector
// controller, the submission gateway, and the view-state machine into the
// registration control flow: input → blur validation → error map → submit.
type Flow struct {
	schema         model.FormSchema
	validator      *validate.Validator
	state          *form.State
	selectors      *selector.Controller
	gateway        *submit.Gateway
	view           *viewstate.Flow
	gatewayOptions []submit.Option
}

// New compiles the schema and assembles a ready flow.
func New(schema model.FormSchema, options ...Option) (*Flow, error) {
	validator, err := validate.New(schema)
	if err != nil {
		return nil, err
	}

	f := &Flow{
		schema:    schema,
		validator: validator,
		view:      viewstate.NewFlow(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}

	f.state = form.NewState(validator)
	f.selectors = selector.NewController(f.state)
	f.gateway = submit.NewGateway(validator, f.gatewayOptions...)
	return f, nil
}

// Schema returns the schema driving the flow.
func (f *Flow) Schema() model.FormSchema { return f.schema }

// State returns the form state holder.
func (f *Flow) State() *form.State { return f.state }

// View returns the view-state machine.
func (f *Flow) View() *viewstate.Flow { return f.view }

// Gateway returns the submission gateway.
func (f *Flow) Gateway() *submit.Gateway { return f.gateway }

// Validator returns the compiled field validator.
func (f *Flow) Validator() *validate.Validator { return f.validator }

// Input records a raw value for a field, clearing its inline error.
func (f *Flow) Input(field, value string) {
	f.state.Set(field, value)
}

// Blur validates one field and returns its message, empty when valid.
func (f *Flow) Blur(field string) string {
	return f.state.Blur(field)
}

// ToggleSelector opens or closes the field's selector and returns the field
// that is open afterwards.
func (f *Flow) ToggleSelector(field string) string {
	return f.selectors.Toggle(field)
}

// Select commits a choice for the open selector and closes it.
func (f *Flow) Select(field, value string) error {
	return f.selectors.Choose(field, value)
}

// DismissSelector closes any open selector without committing.
func (f *Flow) DismissSelector(reason selector.DismissReason) {
	f.selectors.Dismiss(reason)
}

// OpenSelector returns the field whose selector is open, "" when closed.
func (f *Flow) OpenSelector() string {
	return f.selectors.Open()
}

// Submit validates every field and, when clean, forwards the form through the
// gateway and advances the view state. Validation failures populate the error
// map and leave the view on the form; gateway behavior (optimistic vs
// confirmed) decides how endpoint failures affect the view.
func (f *Flow) Submit(ctx context.Context) (*submit.Result, error) {
	values := f.state.Values()

	if errs := f.validator.All(values); len(errs) > 0 {
		f.state.SetErrors(errs)
		return nil, &submit.ValidationError{Fields: errs}
	}
	f.state.SetErrors(nil)

	if f.gateway.Confirmed() {
		if err := f.view.BeginSubmission(); err != nil {
			return nil, err
		}
		res, err := f.gateway.Submit(ctx, values)
		if err != nil {
			_ = f.view.Fail(err)
			return res, err
		}
		return res, f.view.Complete()
	}

	// Optimistic: the completion view shows regardless of what the network
	// does, matching the observed front-end behavior.
	res, err := f.gateway.Submit(ctx, values)
	if err != nil {
		return res, err
	}
	return res, f.view.Complete()
}
