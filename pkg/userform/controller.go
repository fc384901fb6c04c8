package userform

import (
	"context"
	"errors"
	"sync"

	"github.com/goliatone/go-userform/pkg/form"
	"github.com/goliatone/go-userform/pkg/profile"
)

// DefaultProfileID is the placeholder user fetched to prefill the form.
const DefaultProfileID = "10"

// Phase is the lifecycle stage of a Controller.
type Phase string

const (
	PhaseLoading    Phase = "loading"
	PhaseLoadFailed Phase = "load_failed"
	PhaseReady      Phase = "ready"
	PhaseClosed     Phase = "closed"
)

var (
	// ErrNotReady is returned when the engine is requested before loading
	// completes.
	ErrNotReady = errors.New("userform: form is not ready")
	// ErrClosed is returned when the controller was torn down.
	ErrClosed = errors.New("userform: controller closed")
	// ErrLoaderRequired signals a controller built without a profile loader.
	ErrLoaderRequired = errors.New("userform: profile loader is required")
)

// Option configures a Controller.
type Option func(*Controller)

// WithLoader sets the profile collaborator.
func WithLoader(loader profile.Loader) Option {
	return func(c *Controller) {
		c.loader = loader
	}
}

// WithSink sets the collaborator that receives accepted submissions.
func WithSink(sink form.SubmitSink) Option {
	return func(c *Controller) {
		c.sink = sink
	}
}

// WithAgeSource overrides the generator behind the placeholder age.
func WithAgeSource(ages AgeSource) Option {
	return func(c *Controller) {
		if ages != nil {
			c.ages = ages
		}
	}
}

// WithLockoutThreshold overrides form.DefaultLockoutThreshold.
func WithLockoutThreshold(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.threshold = n
		}
	}
}

// WithProfileID overrides DefaultProfileID.
func WithProfileID(id string) Option {
	return func(c *Controller) {
		if id != "" {
			c.profileID = id
		}
	}
}

// WithRegistry swaps the field registry. Mapped keys must exist in it.
func WithRegistry(registry *form.Registry) Option {
	return func(c *Controller) {
		if registry != nil {
			c.registry = registry
		}
	}
}

// WithHoldOnLoadFailure keeps the controller in PhaseLoading when the fetch
// fails instead of moving to PhaseLoadFailed. The error is still returned
// from Load.
func WithHoldOnLoadFailure() Option {
	return func(c *Controller) {
		c.holdOnFailure = true
	}
}

// Controller owns one form instance: it fetches the profile, seeds the
// engine, and discards everything on Close.
type Controller struct {
	loader        profile.Loader
	sink          form.SubmitSink
	ages          AgeSource
	registry      *form.Registry
	threshold     int
	profileID     string
	holdOnFailure bool

	mu         sync.Mutex
	phase      Phase
	generation uint64
	engine     *form.Engine
	loadErr    error
}

// NewController constructs a controller in PhaseLoading.
func NewController(options ...Option) *Controller {
	c := &Controller{
		ages:      DefaultAgeSource(),
		threshold: form.DefaultLockoutThreshold,
		profileID: DefaultProfileID,
		phase:     PhaseLoading,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.registry == nil {
		c.registry = NewRegistry()
	}
	return c
}

// Phase reports the lifecycle stage.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// LoadErr returns the last fetch failure, if any.
func (c *Controller) LoadErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadErr
}

// ProfileID reports the id fetched by Load.
func (c *Controller) ProfileID() string {
	return c.profileID
}

// Load fetches the configured profile and seeds a fresh engine. Each call
// supersedes earlier ones; a result arriving after Close or after a newer
// Load is dropped.
func (c *Controller) Load(ctx context.Context) error {
	return c.LoadID(ctx, c.profileID)
}

// LoadID is Load for an explicit profile id.
func (c *Controller) LoadID(ctx context.Context, id string) error {
	if c.loader == nil {
		return ErrLoaderRequired
	}

	c.mu.Lock()
	if c.phase == PhaseClosed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.generation++
	gen := c.generation
	c.phase = PhaseLoading
	c.engine = nil
	c.loadErr = nil
	c.mu.Unlock()

	rec, fetchErr := c.loader.FetchProfile(ctx, id)

	var (
		engine   *form.Engine
		buildErr error
	)
	if fetchErr == nil {
		engine, buildErr = form.NewEngine(c.registry, MapRecord(rec, c.ages),
			form.WithSink(c.sink),
			form.WithLockoutThreshold(c.threshold),
		)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase == PhaseClosed {
		return ErrClosed
	}
	if gen != c.generation {
		return context.Canceled
	}

	switch {
	case fetchErr != nil:
		if !profile.IsLoadError(fetchErr) {
			fetchErr = &profile.LoadError{ID: id, Op: profile.OpRequest, Err: fetchErr}
		}
		c.loadErr = fetchErr
		if !c.holdOnFailure {
			c.phase = PhaseLoadFailed
		}
		return fetchErr
	case buildErr != nil:
		c.loadErr = buildErr
		c.phase = PhaseLoadFailed
		return buildErr
	}

	c.engine = engine
	c.phase = PhaseReady
	return nil
}

// Engine returns the live engine once the controller is ready.
func (c *Controller) Engine() (*form.Engine, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.phase {
	case PhaseReady:
		return c.engine, nil
	case PhaseClosed:
		return nil, ErrClosed
	default:
		return nil, ErrNotReady
	}
}

// Close tears the controller down and discards the form state. Pending loads
// complete into the void.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.phase = PhaseClosed
	c.engine = nil
}
