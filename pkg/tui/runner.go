// Package tui drives a registration flow through terminal prompts. Each field
// is validated as it is entered, select fields reuse the single-open selector
// semantics, and a successful submission prints the completion summary.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goliatone/go-regflow/pkg/completion"
	"github.com/goliatone/go-regflow/pkg/flow"
	"github.com/goliatone/go-regflow/pkg/model"
	"github.com/goliatone/go-regflow/pkg/selector"
	"github.com/goliatone/go-regflow/pkg/submit"
)

// Runner walks a schema's fields through terminal prompts and submits the
// collected values.
type Runner struct {
	flow           *flow.Flow
	driver         PromptDriver
	httpClient     *http.Client
	pageSize       int
	skipConfirm    bool
	gatewayOptions []submit.Option
	summary        *completion.Renderer
}

// New constructs a Runner for the supplied schema.
func New(schema model.FormSchema, options ...Option) (*Runner, error) {
	r := &Runner{
		driver:   newSurveyDriver(),
		pageSize: defaultPageSize,
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}

	f, err := flow.New(schema, flow.WithGatewayOptions(r.gatewayOptions...))
	if err != nil {
		return nil, err
	}
	r.flow = f

	summary, err := completion.New()
	if err != nil {
		return nil, err
	}
	r.summary = summary
	return r, nil
}

// Flow exposes the underlying flow, mainly for inspection in tests.
func (r *Runner) Flow() *flow.Flow { return r.flow }

// Run prompts for every field, confirms, submits, and prints the completion
// summary. It returns the gateway result on success.
func (r *Runner) Run(ctx context.Context) (*submit.Result, error) {
	schema := r.flow.Schema()

	for _, field := range schema.Fields {
		if err := r.promptField(ctx, field); err != nil {
			return nil, err
		}
	}

	if !r.skipConfirm {
		ok, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: "Submit registration?",
			Default: true,
		})
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrDeclined
		}
	}

	result, err := r.flow.Submit(ctx)
	if err != nil {
		var invalid *submit.ValidationError
		if errors.As(err, &invalid) {
			for _, name := range schema.FieldNames() {
				if msg := invalid.Fields[name]; msg != "" {
					_ = r.driver.Info(ctx, msg)
				}
			}
		}
		return nil, err
	}

	view := completion.ViewFor(schema, r.flow.State().Values(), result)
	text, err := r.summary.Render(view)
	if err != nil {
		return result, err
	}
	return result, r.driver.Info(ctx, text)
}

func (r *Runner) promptField(ctx context.Context, field model.Field) error {
	if field.Type == model.FieldTypeSelect {
		return r.promptSelect(ctx, field, field.Options)
	}

	if url := field.Metadata[model.MetadataOptionsURL]; url != "" && r.httpClient != nil {
		options, err := r.fetchOptions(ctx, url)
		if err == nil && len(options) > 0 {
			return r.promptSelect(ctx, field, options)
		}
		// Fetch failures degrade to free-text entry.
	}
	return r.promptInput(ctx, field)
}

func (r *Runner) promptInput(ctx context.Context, field model.Field) error {
	name := field.Name
	validator := r.flow.Validator()

	value, err := r.driver.Input(ctx, InputConfig{
		Message:     field.DisplayLabel(),
		Default:     r.flow.State().Value(name),
		Help:        field.Help,
		Placeholder: field.Placeholder,
		Validator: func(raw string) error {
			if _, msg := validator.Field(name, raw); msg != "" {
				return errors.New(msg)
			}
			return nil
		},
	})
	if err != nil {
		return err
	}

	r.flow.Input(name, value)
	if msg := r.flow.Blur(name); msg != "" {
		return fmt.Errorf("tui: %s", msg)
	}
	return nil
}

func (r *Runner) promptSelect(ctx context.Context, field model.Field, options []string) error {
	defaultIndex := indexOf(options, r.flow.State().Value(field.Name))

	r.flow.ToggleSelector(field.Name)
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      field.DisplayLabel(),
		Options:      options,
		DefaultIndex: defaultIndex,
		Help:         field.Help,
		PageSize:     r.pageSize,
	})
	if err != nil {
		r.flow.DismissSelector(selector.DismissEscape)
		return err
	}
	if idx < 0 || idx >= len(options) {
		r.flow.DismissSelector(selector.DismissOutside)
		return fmt.Errorf("tui: selection out of range for %s", field.Name)
	}
	return r.flow.Select(field.Name, options[idx])
}

type optionsResponse struct {
	Data []struct {
		Value string `json:"value"`
		Label string `json:"label"`
	} `json:"data"`
}

func (r *Runner) fetchOptions(ctx context.Context, url string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("tui: build options request: %w", err)
	}

	res, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tui: fetch options: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, res.Body)
		_ = res.Body.Close()
	}()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tui: fetch options: status %d", res.StatusCode)
	}

	var payload optionsResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("tui: decode options: %w", err)
	}

	options := make([]string, 0, len(payload.Data))
	for _, item := range payload.Data {
		if item.Value != "" {
			options = append(options, item.Value)
		}
	}
	return options, nil
}
