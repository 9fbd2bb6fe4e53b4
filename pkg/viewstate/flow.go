package viewstate

import (
	"fmt"
	"sync"
)

// Stage names the screen the application should render. It replaces the
// process-wide boolean flags other screens used to read with one explicit
// state machine owned by the flow.
type Stage string

const (
	// StageForm shows the registration form.
	StageForm Stage = "form"
	// StageSubmitting covers the window between a valid submit and the
	// gateway resolving, only observable in confirmed-completion mode.
	StageSubmitting Stage = "submitting"
	// StageComplete shows the completion view.
	StageComplete Stage = "complete"
	// StageFailed keeps the form visible with a submission failure recorded.
	StageFailed Stage = "failed"
)

// Flow holds the current stage and notifies watchers on every transition.
type Flow struct {
	mu       sync.Mutex
	stage    Stage
	err      error
	watchers []func(Stage)
}

// NewFlow starts at StageForm.
func NewFlow() *Flow {
	return &Flow{stage: StageForm}
}

// Current returns the active stage.
func (f *Flow) Current() Stage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stage
}

// ShowForm reports whether the form should render. Failed submissions keep
// the form visible so the user can retry.
func (f *Flow) ShowForm() bool {
	s := f.Current()
	return s == StageForm || s == StageFailed
}

// ShowCompletion reports whether the completion view should render.
func (f *Flow) ShowCompletion() bool {
	return f.Current() == StageComplete
}

// Err returns the failure recorded by Fail, nil otherwise.
func (f *Flow) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// BeginSubmission moves form → submitting.
func (f *Flow) BeginSubmission() error {
	return f.transition(StageSubmitting, StageForm, StageFailed)
}

// Complete moves to the completion view from either the form (optimistic
// submits) or the submitting stage (confirmed submits).
func (f *Flow) Complete() error {
	return f.transition(StageComplete, StageForm, StageSubmitting, StageFailed)
}

// Fail records a submission failure and returns to a retryable stage.
func (f *Flow) Fail(err error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stage == StageComplete {
		return fmt.Errorf("viewstate: cannot fail from %q", f.stage)
	}
	f.stage = StageFailed
	f.err = err
	f.notify()
	return nil
}

// Reset returns to the form stage and clears any recorded failure.
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stage = StageForm
	f.err = nil
	f.notify()
}

// Watch registers fn to be called, under the flow lock, with each new stage.
func (f *Flow) Watch(fn func(Stage)) {
	if fn == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.watchers = append(f.watchers, fn)
}

func (f *Flow) transition(to Stage, from ...Stage) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, stage := range from {
		if f.stage == stage {
			f.stage = to
			if to != StageFailed {
				f.err = nil
			}
			f.notify()
			return nil
		}
	}
	return fmt.Errorf("viewstate: cannot move from %q to %q", f.stage, to)
}

func (f *Flow) notify() {
	for _, fn := range f.watchers {
		fn(f.stage)
	}
}
