// Package completion renders the post-submission summary shown once a
// registration flow reaches its terminal stage.
package completion

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-regflow/pkg/model"
	"github.com/goliatone/go-regflow/pkg/submit"
)

//go:embed templates/*.tpl
var templateFS embed.FS

const defaultTemplate = "completion.tpl"

// Row is a single label/value line in the rendered summary.
type Row struct {
	Label string
	Value string
}

// View is the data handed to the completion template.
type View struct {
	Title        string
	SubmissionID string
	Delivered    bool
	Rows         []Row
}

// ViewFor assembles a View from a schema, the submitted values, and the
// gateway result. Rows follow schema field order and skip empty values.
func ViewFor(schema model.FormSchema, values map[string]string, result *submit.Result) View {
	view := View{Title: schema.Title}
	if view.Title == "" {
		view.Title = model.Labelize(schema.ID)
	}
	if result != nil {
		view.SubmissionID = result.SubmissionID
		view.Delivered = result.Delivered
	}
	for _, field := range schema.Fields {
		value := values[field.Name]
		if value == "" {
			continue
		}
		view.Rows = append(view.Rows, Row{Label: field.DisplayLabel(), Value: value})
	}
	return view
}

// Option configures the renderer before construction.
type Option func(*config)

type config struct {
	templates fs.FS
	name      string
}

// WithTemplates overrides the embedded template set.
func WithTemplates(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templates = files
		}
	}
}

// WithTemplateName selects which template in the set renders the summary.
func WithTemplateName(name string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(name) != "" {
			cfg.name = name
		}
	}
}

// WithEngineOptions exists for compatibility with go-template configuration
// and is currently a no-op.
func WithEngineOptions(_ ...gotemplatepkg.Option) Option {
	return func(*config) {}
}

// Renderer renders completion summaries from a pongo2 template set.
type Renderer struct {
	mu       sync.RWMutex
	set      *pongo2.TemplateSet
	name     string
	compiled *pongo2.Template
}

// New constructs a Renderer. With no options it uses the embedded default
// template.
func New(options ...Option) (*Renderer, error) {
	cfg := &config{name: defaultTemplate}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	files := cfg.templates
	if files == nil {
		sub, err := fs.Sub(templateFS, "templates")
		if err != nil {
			return nil, fmt.Errorf("completion: embedded templates: %w", err)
		}
		files = sub
	}

	return &Renderer{
		set:  pongo2.NewSet("completion", pongo2.NewFSLoader(files)),
		name: cfg.name,
	}, nil
}

// Render executes the template against the supplied view.
func (r *Renderer) Render(view View) (string, error) {
	if r == nil || r.set == nil {
		return "", errors.New("completion: renderer is nil")
	}

	tmpl, err := r.template()
	if err != nil {
		return "", err
	}

	out, err := tmpl.Execute(pongo2.Context{
		"title":         view.Title,
		"submission_id": view.SubmissionID,
		"delivered":     view.Delivered,
		"rows":          view.Rows,
	})
	if err != nil {
		return "", fmt.Errorf("completion: execute %q: %w", r.name, err)
	}
	return strings.TrimRight(out, "\n") + "\n", nil
}

func (r *Renderer) template() (*pongo2.Template, error) {
	r.mu.RLock()
	compiled := r.compiled
	r.mu.RUnlock()
	if compiled != nil {
		return compiled, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.compiled == nil {
		tmpl, err := r.set.FromFile(r.name)
		if err != nil {
			return nil, fmt.Errorf("completion: load %q: %w", r.name, err)
		}
		r.compiled = tmpl
	}
	return r.compiled, nil
}
