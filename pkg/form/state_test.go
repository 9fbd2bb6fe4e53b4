package form_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regflow/pkg/form"
	"github.com/goliatone/go-regflow/pkg/model"
	"github.com/goliatone/go-regflow/pkg/validate"
)

func newState(t *testing.T) *form.State {
	t.Helper()
	v, err := validate.New(model.Registration())
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}
	return form.NewState(v)
}

func TestBlurRecordsAndClearsErrors(t *testing.T) {
	state := newState(t)

	if msg := state.Blur("firstName"); msg != "First Name is required" {
		t.Fatalf("blur message = %q", msg)
	}
	if got := state.ErrorFor("firstName"); got != "First Name is required" {
		t.Fatalf("recorded error = %q", got)
	}

	// Editing the field clears the message immediately, before any
	// re-validation happens.
	state.Set("firstName", "J")
	if got := state.ErrorFor("firstName"); got != "" {
		t.Fatalf("error not cleared on edit: %q", got)
	}

	if msg := state.Blur("firstName"); msg != "First Name must be at least 2 characters" {
		t.Fatalf("blur message = %q", msg)
	}
	state.Set("firstName", "Jane")
	if msg := state.Blur("firstName"); msg != "" {
		t.Fatalf("valid value still flagged: %q", msg)
	}
	if state.HasErrors() {
		t.Fatal("state still reports errors")
	}
}

func TestCommitNormalizes(t *testing.T) {
	state := newState(t)

	state.Commit("shirtSize", "xl")
	if got := state.Value("shirtSize"); got != "XL" {
		t.Fatalf("committed value = %q, want XL", got)
	}
}

func TestSetErrorsAndReset(t *testing.T) {
	state := newState(t)
	state.Set("email", "jane@cedars.com")

	state.SetErrors(map[string]string{"lastName": "Last Name is required"})
	want := map[string]string{"lastName": "Last Name is required"}
	if diff := cmp.Diff(want, state.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	state.Reset()
	if state.HasErrors() || len(state.Values()) != 0 {
		t.Fatal("reset did not clear state")
	}
}
