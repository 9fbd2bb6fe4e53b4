package tui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regflow/pkg/model"
	"github.com/goliatone/go-regflow/pkg/submit"
)

type stubDriver struct {
	inputs     []string
	selects    []int
	confirms   []bool
	selectErr  error
	infoMsgs   []string
	selectCfgs []SelectConfig

	inputPos   int
	selectPos  int
	confirmPos int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	if cfg.Validator != nil {
		if err := cfg.Validator(val); err != nil {
			return "", err
		}
	}
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if s.selectErr != nil {
		return 0, s.selectErr
	}
	if s.selectPos >= len(s.selects) {
		return 0, errors.New("no select scripted")
	}
	s.selectCfgs = append(s.selectCfgs, cfg)
	val := s.selects[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirms) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirms[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMsgs = append(s.infoMsgs, msg)
	return nil
}

type capturedPost struct {
	mu     sync.Mutex
	values map[string]string
	hits   int
}

func (c *capturedPost) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		c.hits++
		c.values = make(map[string]string)
		for key := range r.MultipartForm.Value {
			c.values[key] = r.FormValue(key)
		}
		w.WriteHeader(http.StatusOK)
	}
}

func (c *capturedPost) snapshot() (map[string]string, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	values := make(map[string]string, len(c.values))
	for k, v := range c.values {
		values[k] = v
	}
	return values, c.hits
}

func TestRun_SubmitsCollectedValues(t *testing.T) {
	captured := &capturedPost{}
	mux := http.NewServeMux()
	mux.Handle("/registration", captured.handler())
	mux.HandleFunc("/beacon", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	driver := &stubDriver{
		inputs:   []string{"Jane", "Doe", "jane.doe@cedars.com"},
		selects:  []int{0, 2, 3}, // hospital, shirt M, jacket L
		confirms: []bool{true},
	}

	runner, err := New(model.Registration(),
		WithPromptDriver(driver),
		WithGatewayOptions(
			submit.WithHTTPClient(server.Client()),
			submit.WithEndpoint(server.URL+"/registration"),
			submit.WithBeaconURL(server.URL+"/beacon"),
		),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result == nil || result.SubmissionID == "" {
		t.Fatalf("Run() result = %+v, want submission id", result)
	}

	values, hits := captured.snapshot()
	if hits != 1 {
		t.Fatalf("endpoint hits = %d, want 1", hits)
	}
	want := map[string]string{
		"FirstName":    "Jane",
		"LastName":     "Doe",
		"Email":        "jane.doe@cedars.com",
		"Hospital":     model.Hospitals[0],
		"ShirtSize":    "M",
		"JacketSize":   "L",
		"SubmissionID": result.SubmissionID,
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("posted values mismatch (-want +got):\n%s", diff)
	}

	if len(driver.infoMsgs) == 0 {
		t.Fatal("Run() printed no completion summary")
	}
	summary := driver.infoMsgs[len(driver.infoMsgs)-1]
	if !strings.Contains(summary, result.SubmissionID) {
		t.Fatalf("summary missing submission id:\n%s", summary)
	}
}

func TestRun_DeclinedConfirmation(t *testing.T) {
	captured := &capturedPost{}
	server := httptest.NewServer(captured.handler())
	defer server.Close()

	driver := &stubDriver{
		inputs:   []string{"Jane", "Doe", "jane.doe@cedars.com"},
		selects:  []int{0, 2, 3},
		confirms: []bool{false},
	}

	runner, err := New(model.Registration(),
		WithPromptDriver(driver),
		WithGatewayOptions(
			submit.WithHTTPClient(server.Client()),
			submit.WithEndpoint(server.URL),
		),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := runner.Run(context.Background()); !errors.Is(err, ErrDeclined) {
		t.Fatalf("Run() error = %v, want ErrDeclined", err)
	}
	if _, hits := captured.snapshot(); hits != 0 {
		t.Fatal("declined run must not reach the endpoint")
	}
}

func TestRun_AbortedSelectClosesSelector(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Jane", "Doe", "jane.doe@cedars.com"},
		selectErr: ErrAborted,
	}

	runner, err := New(model.Registration(), WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := runner.Run(context.Background()); !errors.Is(err, ErrAborted) {
		t.Fatalf("Run() error = %v, want ErrAborted", err)
	}
	if open := runner.Flow().OpenSelector(); open != "" {
		t.Fatalf("OpenSelector() = %q, want closed after abort", open)
	}
}

func TestRun_FetchesRemoteOptions(t *testing.T) {
	captured := &capturedPost{}
	mux := http.NewServeMux()
	mux.Handle("/registration", captured.handler())
	mux.HandleFunc("/beacon", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/hospitals", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"data":[{"value":%q,"label":%q},{"value":%q,"label":%q}]}`,
			model.Hospitals[0], model.Hospitals[0], model.Hospitals[1], model.Hospitals[1])
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	schema := model.RegistrationFreeText()
	for i := range schema.Fields {
		if schema.Fields[i].Name == "hospital" {
			if schema.Fields[i].Metadata == nil {
				schema.Fields[i].Metadata = map[string]string{}
			}
			schema.Fields[i].Metadata[model.MetadataOptionsURL] = server.URL + "/hospitals"
		}
	}

	driver := &stubDriver{
		inputs:   []string{"Jane", "Doe", "jane.doe@cedars.com"},
		selects:  []int{1, 2, 3}, // hospital from remote options
		confirms: []bool{true},
	}

	runner, err := New(schema,
		WithPromptDriver(driver),
		WithHTTPClient(server.Client()),
		WithGatewayOptions(
			submit.WithHTTPClient(server.Client()),
			submit.WithEndpoint(server.URL+"/registration"),
			submit.WithBeaconURL(server.URL+"/beacon"),
		),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	values, _ := captured.snapshot()
	if values["Hospital"] != model.Hospitals[1] {
		t.Fatalf("Hospital = %q, want %q", values["Hospital"], model.Hospitals[1])
	}

	var hospitalSelect *SelectConfig
	for i := range driver.selectCfgs {
		if driver.selectCfgs[i].Message == "Hospital" {
			hospitalSelect = &driver.selectCfgs[i]
		}
	}
	if hospitalSelect == nil {
		t.Fatal("hospital was never prompted as a select")
	}
	if diff := cmp.Diff([]string{model.Hospitals[0], model.Hospitals[1]}, hospitalSelect.Options); diff != "" {
		t.Fatalf("remote options mismatch (-want +got):\n%s", diff)
	}
}
