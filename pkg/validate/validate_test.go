package validate_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regflow/pkg/model"
	"github.com/goliatone/go-regflow/pkg/validate"
)

func newValidator(t *testing.T, schema model.FormSchema) *validate.Validator {
	t.Helper()
	v, err := validate.New(schema)
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}
	return v
}

func TestField_Required(t *testing.T) {
	v := newValidator(t, model.Registration())

	cases := []struct {
		field string
		raw   string
		want  string
	}{
		{"firstName", "", "First Name is required"},
		{"firstName", "   ", "First Name is required"},
		{"lastName", "\t\n", "Last Name is required"},
		{"email", "", "Email is required"},
		{"hospital", "", "Hospital is required"},
		{"shirtSize", "", "Shirt Size is required"},
		{"jacketSize", " ", "Jacket Size is required"},
	}

	for _, tc := range cases {
		if _, msg := v.Field(tc.field, tc.raw); msg != tc.want {
			t.Errorf("Field(%q, %q) message = %q, want %q", tc.field, tc.raw, msg, tc.want)
		}
	}
}

func TestField_Names(t *testing.T) {
	v := newValidator(t, model.Registration())

	valid := []string{"Jane", "Mary-Jane", "O'Brien", "Mary-Jane O'Brien", "Da Silva"}
	for _, name := range valid {
		normalized, msg := v.Field("firstName", " "+name+" ")
		if msg != "" {
			t.Errorf("Field(firstName, %q) unexpected message %q", name, msg)
		}
		if normalized != name {
			t.Errorf("Field(firstName, %q) normalized = %q, want %q", name, normalized, name)
		}
	}

	if _, msg := v.Field("firstName", "J"); msg != "First Name must be at least 2 characters" {
		t.Errorf("short name message = %q", msg)
	}

	invalid := []string{"J4ne", "Jane!", "jane_doe", "Jane@Doe", "12"}
	want := "First Name may only contain letters, spaces, hyphens, and apostrophes"
	for _, name := range invalid {
		if _, msg := v.Field("firstName", name); msg != want {
			t.Errorf("Field(firstName, %q) message = %q, want %q", name, msg, want)
		}
	}
}

func TestField_Email(t *testing.T) {
	v := newValidator(t, model.Registration())

	if _, msg := v.Field("email", "jane.doe@cedars.com"); msg != "" {
		t.Fatalf("valid email rejected: %q", msg)
	}

	if _, msg := v.Field("email", "not-an-email"); msg != "Enter a valid email address" {
		t.Errorf("malformed email message = %q", msg)
	}

	// Well-formed but outside the corporate domain gets the distinct
	// eligibility message, not the malformed one.
	if _, msg := v.Field("email", "jane.doe@gmail.com"); msg != "Email must be a @cedars.com address" {
		t.Errorf("domain email message = %q", msg)
	}
}

func TestField_SizeNormalization(t *testing.T) {
	v := newValidator(t, model.Registration())

	normalized, msg := v.Field("shirtSize", "xxl")
	if msg != "" {
		t.Fatalf("unexpected message %q", msg)
	}
	if normalized != "XXL" {
		t.Fatalf("normalized = %q, want XXL", normalized)
	}

	if _, msg := v.Field("shirtSize", "enormous"); msg != "Select a shirt size from the list" {
		t.Errorf("invalid size message = %q", msg)
	}
}

func TestField_HospitalVariants(t *testing.T) {
	closed := newValidator(t, model.Registration())
	free := newValidator(t, model.RegistrationFreeText())

	if _, msg := closed.Field("hospital", "cedars-sinai medical center"); msg != "" {
		t.Errorf("closed-set case-insensitive match rejected: %q", msg)
	}
	if _, msg := closed.Field("hospital", "Somewhere Else"); msg != "Select a hospital from the list" {
		t.Errorf("closed-set miss message = %q", msg)
	}

	if _, msg := free.Field("hospital", "St. Vincent"); msg != "" {
		t.Errorf("free-text hospital rejected: %q", msg)
	}
	if _, msg := free.Field("hospital", "AB"); msg != "Hospital must be at least 3 characters" {
		t.Errorf("free-text minLength message = %q", msg)
	}
}

func TestField_StripsMarkup(t *testing.T) {
	free := newValidator(t, model.RegistrationFreeText())

	normalized, msg := free.Field("hospital", "<script>alert(1)</script>Marina del Rey Hospital")
	if msg != "" {
		t.Fatalf("unexpected message %q", msg)
	}
	if normalized != "Marina del Rey Hospital" {
		t.Fatalf("normalized = %q", normalized)
	}

	// A value that is nothing but markup collapses to empty and trips the
	// required rule.
	if _, msg := free.Field("hospital", "<b></b>"); msg != "Hospital is required" {
		t.Errorf("markup-only message = %q", msg)
	}
}

func TestAll(t *testing.T) {
	v := newValidator(t, model.Registration())

	clean := map[string]string{
		"firstName":  "Jane",
		"lastName":   "Doe",
		"hospital":   "Cedars-Sinai Medical Center",
		"email":      "jane.doe@cedars.com",
		"shirtSize":  "M",
		"jacketSize": "L",
	}
	if errs := v.All(clean); len(errs) != 0 {
		t.Fatalf("clean form produced errors: %v", errs)
	}

	errs := v.All(map[string]string{
		"firstName": "Jane",
		"email":     "jane.doe@gmail.com",
		"shirtSize": "huge",
	})
	want := map[string]string{
		"lastName":   "Last Name is required",
		"hospital":   "Hospital is required",
		"email":      "Email must be a @cedars.com address",
		"shirtSize":  "Select a shirt size from the list",
		"jacketSize": "Jacket Size is required",
	}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Fatalf("error map mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_RejectsInvalidSchema(t *testing.T) {
	_, err := validate.New(model.FormSchema{ID: "broken"})
	if err == nil {
		t.Fatal("expected schema validation error")
	}
}
