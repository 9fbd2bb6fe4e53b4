package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/goliatone/go-regflow/pkg/formspec"
	"github.com/goliatone/go-regflow/pkg/model"
	"github.com/goliatone/go-regflow/pkg/openapi"
	"github.com/goliatone/go-regflow/pkg/submit"
	"github.com/goliatone/go-regflow/pkg/tui"
)

func main() {
	// A .env file next to the binary can seed REGFLOW_* defaults.
	_ = godotenv.Load()

	formID := flag.String("form", "eventRegistration", "form id to run")
	specPath := flag.String("formspec", "", "form document path (YAML or JSON); empty uses the built-in forms")
	openapiPath := flag.String("openapi", "", "OpenAPI document path; overrides -formspec")
	operation := flag.String("operation", "", "OpenAPI operation id (defaults to -form)")
	endpoint := flag.String("endpoint", os.Getenv("REGFLOW_ENDPOINT"), "override the submission endpoint")
	beacon := flag.String("beacon", os.Getenv("REGFLOW_BEACON_URL"), "override the analytics beacon URL")
	confirmed := flag.Bool("confirmed", false, "hold completion until the endpoint acknowledges with 2xx")
	dryRun := flag.Bool("dry-run", false, "print the outgoing field set instead of posting it")
	freeText := flag.Bool("free-text", false, "use the free-text hospital variant of the built-in form")
	remote := flag.Bool("remote-options", false, "fetch select options from endpoints declared in field metadata")
	listForms := flag.Bool("list", false, "list available form ids and exit")
	flag.Parse()

	ctx := context.Background()

	if *listForms {
		if err := printForms(*specPath); err != nil {
			log.Fatalf("list forms: %v", err)
		}
		return
	}

	schema, err := resolveSchema(ctx, *specPath, *openapiPath, *operation, *formID, *freeText)
	if err != nil {
		log.Fatalf("resolve form: %v", err)
	}

	var gatewayOptions []submit.Option
	if *endpoint != "" {
		gatewayOptions = append(gatewayOptions, submit.WithEndpoint(*endpoint))
	}
	if *beacon != "" {
		gatewayOptions = append(gatewayOptions, submit.WithBeaconURL(*beacon))
	}
	if *confirmed {
		gatewayOptions = append(gatewayOptions, submit.WithConfirmedCompletion())
	}
	if *dryRun {
		gatewayOptions = append(gatewayOptions, submit.WithDryRun(os.Stdout))
	}

	options := []tui.Option{tui.WithGatewayOptions(gatewayOptions...)}
	if *remote {
		options = append(options, tui.WithHTTPClient(http.DefaultClient))
	}

	runner, err := tui.New(schema, options...)
	if err != nil {
		log.Fatalf("build runner: %v", err)
	}

	if _, err := runner.Run(ctx); err != nil {
		switch {
		case errors.Is(err, tui.ErrAborted):
			fmt.Fprintln(os.Stderr, "aborted")
			os.Exit(130)
		case errors.Is(err, tui.ErrDeclined):
			fmt.Fprintln(os.Stderr, "submission declined")
		default:
			log.Fatalf("run form: %v", err)
		}
	}
}

func printForms(specPath string) error {
	store, err := loadStore(specPath)
	if err != nil {
		return err
	}
	for _, id := range store.IDs() {
		fmt.Println(id)
	}
	return nil
}

func resolveSchema(ctx context.Context, specPath, openapiPath, operation, formID string, freeText bool) (model.FormSchema, error) {
	if openapiPath != "" {
		data, err := openapi.NewLoader().Load(ctx, openapi.SourceFromFile(openapiPath))
		if err != nil {
			return model.FormSchema{}, err
		}
		if operation == "" {
			operation = formID
		}
		return openapi.NewParser().Form(ctx, data, operation)
	}

	if specPath != "" {
		store, err := loadStore(specPath)
		if err != nil {
			return model.FormSchema{}, err
		}
		schema, ok := store.Form(formID)
		if !ok {
			return model.FormSchema{}, fmt.Errorf("form %q not found in %s (have: %s)",
				formID, specPath, strings.Join(store.IDs(), ", "))
		}
		return schema, nil
	}

	if freeText {
		return model.RegistrationFreeText(), nil
	}
	return model.Registration(), nil
}

func loadStore(specPath string) (*formspec.Store, error) {
	if specPath == "" {
		return formspec.LoadDefaults()
	}
	data, err := os.ReadFile(specPath)
	if err != nil {
		return nil, err
	}
	return formspec.Parse(data, filepath.Base(specPath))
}
