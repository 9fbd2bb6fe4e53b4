package selector_test

import (
	"testing"

	"github.com/goliatone/go-regflow/pkg/selector"
)

type recordingSink struct {
	commits map[string]string
}

func (s *recordingSink) Commit(field, value string) {
	if s.commits == nil {
		s.commits = make(map[string]string)
	}
	s.commits[field] = value
}

func TestToggleSingleOpenInvariant(t *testing.T) {
	c := selector.NewController(&recordingSink{})

	if open := c.Toggle("shirtSize"); open != "shirtSize" {
		t.Fatalf("open = %q", open)
	}

	// Opening a second selector closes the first.
	if open := c.Toggle("jacketSize"); open != "jacketSize" {
		t.Fatalf("open = %q", open)
	}
	if c.IsOpen("shirtSize") {
		t.Fatal("shirtSize still open")
	}

	// Toggling the open selector closes it.
	if open := c.Toggle("jacketSize"); open != "" {
		t.Fatalf("open = %q, want closed", open)
	}
}

func TestChooseCommitsAndCloses(t *testing.T) {
	sink := &recordingSink{}
	c := selector.NewController(sink)

	c.Toggle("shirtSize")
	if err := c.Choose("shirtSize", "M"); err != nil {
		t.Fatalf("choose: %v", err)
	}
	if got := sink.commits["shirtSize"]; got != "M" {
		t.Fatalf("committed = %q", got)
	}
	if c.Open() != "" {
		t.Fatal("selector still open after choose")
	}
}

func TestChooseRequiresOpenSelector(t *testing.T) {
	sink := &recordingSink{}
	c := selector.NewController(sink)

	if err := c.Choose("shirtSize", "M"); err == nil {
		t.Fatal("expected error choosing while closed")
	}

	c.Toggle("jacketSize")
	if err := c.Choose("shirtSize", "M"); err == nil {
		t.Fatal("expected error choosing for a different open field")
	}
	if len(sink.commits) != 0 {
		t.Fatalf("rejected choose mutated state: %v", sink.commits)
	}
	if !c.IsOpen("jacketSize") {
		t.Fatal("open selector changed by rejected choose")
	}
}

func TestDismissFromAnyTrigger(t *testing.T) {
	c := selector.NewController(&recordingSink{})

	for _, reason := range []selector.DismissReason{
		selector.DismissBackdrop,
		selector.DismissOutside,
		selector.DismissEscape,
	} {
		c.Toggle("hospital")
		if was := c.Dismiss(reason); was != "hospital" {
			t.Fatalf("dismiss(%s) closed %q", reason, was)
		}
		if c.Open() != "" {
			t.Fatalf("selector open after dismiss(%s)", reason)
		}
		if c.LastDismiss() != reason {
			t.Fatalf("last dismiss = %q, want %q", c.LastDismiss(), reason)
		}
	}

	// Dismissing with nothing open is a no-op.
	if was := c.Dismiss(selector.DismissEscape); was != "" {
		t.Fatalf("no-op dismiss reported %q", was)
	}
}
