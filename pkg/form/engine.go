package form

import (
	"context"
	"errors"
)

// DefaultLockoutThreshold is the number of submit attempts allowed before the
// form locks. The attempt that exceeds it triggers the lock.
const DefaultLockoutThreshold = 3

// Status is the submission state of an Engine.
type Status string

const (
	StatusEditing   Status = "editing"
	StatusSubmitted Status = "submitted"
	StatusRejected  Status = "rejected"
	StatusLocked    Status = "locked"
)

// Banner identifies the notice a View shows above the form.
type Banner string

const (
	BannerNone      Banner = ""
	BannerSubmitted Banner = "Form is submitted"
	BannerLocked    Banner = "You are locked"
)

// SubmitSink receives accepted submissions. Accept is fire-and-forget: the
// engine neither waits on nor inspects the outcome.
type SubmitSink interface {
	Accept(ctx context.Context, snapshot Snapshot)
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithSink sets the collaborator that receives accepted snapshots.
func WithSink(sink SubmitSink) EngineOption {
	return func(e *Engine) {
		e.sink = sink
	}
}

// WithLockoutThreshold overrides DefaultLockoutThreshold. Values below one
// are ignored.
func WithLockoutThreshold(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.threshold = n
		}
	}
}

// WithEvaluator swaps the evaluator used for blur and submit runs.
func WithEvaluator(evaluator *Evaluator) EngineOption {
	return func(e *Engine) {
		if evaluator != nil {
			e.evaluator = evaluator
		}
	}
}

// Engine processes field changes, blurs and submits against a single
// FormState. Events are expected one at a time from the hosting loop.
type Engine struct {
	state     *FormState
	evaluator *Evaluator
	sink      SubmitSink
	threshold int
	status    Status
	submitted bool
}

// NewEngine builds an engine over a fresh state seeded with initial.
func NewEngine(registry *Registry, initial map[string]Value, options ...EngineOption) (*Engine, error) {
	state, err := NewState(registry, initial)
	if err != nil {
		return nil, err
	}
	e := &Engine{
		state:     state,
		evaluator: NewEvaluator(),
		threshold: DefaultLockoutThreshold,
		status:    StatusEditing,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e, nil
}

// State exposes the underlying form state for Views.
func (e *Engine) State() *FormState {
	return e.state
}

// Registry returns the field registry backing the engine.
func (e *Engine) Registry() *Registry {
	return e.state.registry
}

// Status reports the current submission state.
func (e *Engine) Status() Status {
	return e.status
}

// Attempts reports how many times Submit has been called.
func (e *Engine) Attempts() int {
	return e.state.Attempts()
}

// Threshold reports the number of attempts allowed before locking.
func (e *Engine) Threshold() int {
	return e.threshold
}

// Locked reports whether the engine reached the terminal lockout.
func (e *Engine) Locked() bool {
	return e.status == StatusLocked
}

// Valid recomputes overall validity from current values.
func (e *Engine) Valid() bool {
	return e.evaluator.Valid(e.state)
}

// Submittable mirrors an enabled submit control: the form is valid, at least
// one field was edited, and the engine is not locked.
func (e *Engine) Submittable() bool {
	return !e.Locked() && e.state.Dirty() && e.Valid()
}

// Snapshot captures the current values.
func (e *Engine) Snapshot() Snapshot {
	return e.state.Snapshot()
}

// Banner reports which notice a View should display.
func (e *Engine) Banner() Banner {
	switch {
	case e.Locked():
		return BannerLocked
	case e.submitted && e.Valid():
		return BannerSubmitted
	default:
		return BannerNone
	}
}

// Change records a user edit. Validation waits for Blur or Submit. Any edit
// after a submit returns the engine to editing.
func (e *Engine) Change(name string, value Value) error {
	if e.Locked() {
		return ErrLocked
	}
	if err := e.state.SetValue(name, value); err != nil {
		return err
	}
	e.status = StatusEditing
	return nil
}

// Blur marks name as touched and validates it, returning the stored message
// ("" when valid).
func (e *Engine) Blur(name string) (string, error) {
	if err := e.state.Touch(name); err != nil {
		return "", err
	}
	return e.evaluator.Validate(e.state, name)
}

// Submit counts an attempt and then locks, accepts or rejects the form. The
// returned error is non-nil only for ErrLocked or context cancellation.
func (e *Engine) Submit(ctx context.Context) (Status, error) {
	attempts := e.state.incrementAttempts()
	if e.Locked() {
		return e.status, ErrLocked
	}
	if attempts > e.threshold {
		e.status = StatusLocked
		return e.status, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return e.status, err
	}

	for _, name := range e.state.names {
		e.state.touched[name] = true
	}
	if _, err := e.evaluator.ValidateAll(e.state); err != nil {
		return e.status, err
	}

	e.submitted = true
	if !e.Valid() {
		e.status = StatusRejected
		return e.status, nil
	}

	e.status = StatusSubmitted
	if e.sink != nil {
		e.sink.Accept(ctx, e.state.Snapshot())
	}
	return e.status, nil
}

// IsLocked reports whether err signals a locked form.
func IsLocked(err error) bool {
	return errors.Is(err, ErrLocked)
}
