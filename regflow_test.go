package regflow

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-regflow/pkg/formspec"
	"github.com/goliatone/go-regflow/pkg/openapi"
)

func TestFlowFromStore(t *testing.T) {
	store, err := formspec.LoadDefaults()
	if err != nil {
		t.Fatalf("LoadDefaults() error = %v", err)
	}

	f, err := FlowFromStore(store, "eventRegistration")
	if err != nil {
		t.Fatalf("FlowFromStore() error = %v", err)
	}
	if got := f.Schema().ID; got != "eventRegistration" {
		t.Fatalf("Schema().ID = %q", got)
	}

	if _, err := FlowFromStore(store, "missing"); err == nil || !strings.Contains(err.Error(), `form "missing" not found`) {
		t.Fatalf("FlowFromStore(missing) error = %v, want not-found error", err)
	}
}

func TestFlowFromOpenAPI(t *testing.T) {
	document := `
openapi: 3.0.3
info: {title: Event Registration API, version: 1.0.0}
servers:
  - url: https://forms.example.com
paths:
  /registration:
    post:
      operationId: eventRegistration
      requestBody:
        content:
          multipart/form-data:
            schema:
              type: object
              required: [firstName]
              properties:
                firstName:
                  type: string
                  x-name: true
      responses:
        "200":
          description: accepted
`

	f, err := FlowFromOpenAPI(context.Background(),
		openapi.SourceFromBytes("inline", []byte(document)), "eventRegistration")
	if err != nil {
		t.Fatalf("FlowFromOpenAPI() error = %v", err)
	}

	f.Input("firstName", "J")
	if msg := f.Blur("firstName"); msg == "" {
		t.Fatal("expected a validation message for a one-letter name")
	}
	f.Input("firstName", "Jane")
	if msg := f.Blur("firstName"); msg != "" {
		t.Fatalf("Blur() = %q, want clean", msg)
	}
}
