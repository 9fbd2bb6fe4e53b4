package selector

import (
	"fmt"
	"sync"
)

// DismissReason names the trigger that closed an open selector without a
// choice being made. All overlay dismissal paths funnel through the same
// Dismiss call so each modal does not grow its own handling.
type DismissReason string

const (
	DismissBackdrop DismissReason = "backdrop"
	DismissOutside  DismissReason = "outside"
	DismissEscape   DismissReason = "escape"
)

// Sink receives values committed by a selector. form.State satisfies it.
type Sink interface {
	Commit(field, value string)
}

// Controller tracks which single-choice selector is currently open and commits
// chosen values back into the form state. At most one selector is open at any
// time.
type Controller struct {
	mu          sync.Mutex
	open        string
	sink        Sink
	lastDismiss DismissReason
}

// NewController builds a controller committing into sink.
func NewController(sink Sink) *Controller {
	return &Controller{sink: sink}
}

// Toggle opens the field's selector, closing any other that was open. Toggling
// the field that is already open closes it. It returns the field that is open
// after the call, or "" when everything is closed.
func (c *Controller) Toggle(field string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.open == field {
		c.open = ""
	} else {
		c.open = field
	}
	return c.open
}

// Choose commits a value for the open selector and closes it. Choosing for a
// field whose selector is not open is rejected and mutates nothing.
func (c *Controller) Choose(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.open != field {
		return fmt.Errorf("selector: %q is not open", field)
	}
	if c.sink != nil {
		c.sink.Commit(field, value)
	}
	c.open = ""
	return nil
}

// Dismiss closes whatever selector is open without committing a value. It
// returns the field that was open, or "" when the dismissal was a no-op.
func (c *Controller) Dismiss(reason DismissReason) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	was := c.open
	if was != "" {
		c.lastDismiss = reason
	}
	c.open = ""
	return was
}

// LastDismiss returns the reason recorded by the most recent effective
// dismissal.
func (c *Controller) LastDismiss() DismissReason {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastDismiss
}

// Open returns the field whose selector is currently open, "" when closed.
func (c *Controller) Open() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// IsOpen reports whether the field's selector is the open one.
func (c *Controller) IsOpen(field string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open == field
}
