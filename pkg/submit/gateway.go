package submit

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/goliatone/go-regflow/pkg/validate"
)

// EventSubmit is the beacon event name fired when a submission goes out.
const EventSubmit = "submitbtn"

const defaultTimeout = 10 * time.Second

// ValidationError carries the field error map produced when a submit attempt
// finds invalid input. No network call happens when it is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("submit: %d field(s) failed validation", len(e.Fields))
}

// Result reports what a submission did.
type Result struct {
	// SubmissionID correlates the POST, the beacon event, and logs.
	SubmissionID string
	// StatusCode is the endpoint's response status. Zero in optimistic mode
	// when the endpoint could not be reached.
	StatusCode int
	// Delivered reports whether the endpoint acknowledged with a 2xx.
	Delivered bool
}

// Option configures the gateway.
type Option func(*Gateway)

// WithHTTPClient overrides the client used for the form POST.
func WithHTTPClient(client *http.Client) Option {
	return func(g *Gateway) {
		if client != nil {
			g.client = client
		}
	}
}

// WithEndpoint overrides the schema's submission endpoint.
func WithEndpoint(url string) Option {
	return func(g *Gateway) {
		if url != "" {
			g.endpoint = url
		}
	}
}

// WithBeaconURL overrides the schema's analytics beacon URL. Pass "" via the
// schema to disable beacons entirely.
func WithBeaconURL(url string) Option {
	return func(g *Gateway) {
		if url != "" {
			g.beaconURL = url
		}
	}
}

// WithHidden appends extra hidden fields to every submission payload.
func WithHidden(fields ...HiddenField) Option {
	return func(g *Gateway) {
		g.hidden = MergeHiddenFields(g.hidden, fields...)
	}
}

// WithConfirmedCompletion makes Submit report endpoint failures instead of
// the observed optimistic behavior, so callers can hold the completion view
// until the server acknowledges.
func WithConfirmedCompletion() Option {
	return func(g *Gateway) {
		g.confirmed = true
	}
}

// WithDryRun makes Submit print the outgoing field set to w, one "name: value"
// line per field, instead of firing the beacon and posting. Validation still
// runs and a submission id is still minted.
func WithDryRun(w io.Writer) Option {
	return func(g *Gateway) {
		g.dryRun = w
	}
}

// WithSubmitEvent overrides the beacon event name fired on submission.
func WithSubmitEvent(name string) Option {
	return func(g *Gateway) {
		if name != "" {
			g.submitEvent = name
		}
	}
}

// Gateway re-validates a form and forwards it to the configured endpoint and
// analytics beacon.
type Gateway struct {
	validator   *validate.Validator
	client      *http.Client
	endpoint    string
	beaconURL   string
	hidden      map[string]string
	confirmed   bool
	submitEvent string
	dryRun      io.Writer
}

// NewGateway builds a gateway bound to a compiled validator; the schema
// supplies the endpoint and beacon defaults.
func NewGateway(validator *validate.Validator, options ...Option) *Gateway {
	schema := validator.Schema()
	g := &Gateway{
		validator:   validator,
		client:      &http.Client{Timeout: defaultTimeout},
		endpoint:    schema.Endpoint,
		beaconURL:   schema.BeaconURL,
		submitEvent: EventSubmit,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	return g
}

// Confirmed reports whether the gateway gates completion on a 2xx response.
func (g *Gateway) Confirmed() bool {
	return g.confirmed
}

// Submit re-validates every field, and when the form is clean fires the
// analytics beacon and posts the fields as multipart/form-data. In optimistic
// mode endpoint failures are swallowed and the returned error is nil; with
// WithConfirmedCompletion they surface as errors.
func (g *Gateway) Submit(ctx context.Context, values map[string]string) (*Result, error) {
	if errs := g.validator.All(values); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	submission := SubmissionID("SubmissionID")
	res := &Result{SubmissionID: submission.Value}

	if g.dryRun != nil {
		for _, field := range g.payload(values, submission) {
			fmt.Fprintf(g.dryRun, "%s: %s\n", field.Name, field.Value)
		}
		return res, nil
	}

	g.fireBeacon(ctx, g.submitEvent)

	body, contentType, err := g.encode(values, submission)
	if err != nil {
		return res, fmt.Errorf("submit: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, body)
	if err != nil {
		return res, fmt.Errorf("submit: build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := g.client.Do(req)
	if err != nil {
		if g.confirmed {
			return res, fmt.Errorf("submit: post form: %w", err)
		}
		return res, nil
	}
	defer resp.Body.Close()

	res.StatusCode = resp.StatusCode
	res.Delivered = resp.StatusCode >= 200 && resp.StatusCode < 300
	if g.confirmed && !res.Delivered {
		return res, fmt.Errorf("submit: endpoint returned status %d", resp.StatusCode)
	}
	return res, nil
}

// payload lists the outgoing fields in wire order: schema fields first, in
// declaration order under their submit names, then the hidden fields sorted
// for determinism.
func (g *Gateway) payload(values map[string]string, submission HiddenField) []HiddenField {
	fields := g.validator.Schema().Fields
	out := make([]HiddenField, 0, len(fields)+len(g.hidden)+1)
	for _, field := range fields {
		out = append(out, HiddenField{
			Name:  field.SubmitName(),
			Value: g.validator.Normalize(field.Name, values[field.Name]),
		})
	}
	return append(out, SortedHiddenFields(MergeHiddenFields(g.hidden, submission))...)
}

func (g *Gateway) encode(values map[string]string, submission HiddenField) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, field := range g.payload(values, submission) {
		if err := w.WriteField(field.Name, field.Value); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
