package profile

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the placeholder user directory queried by the HTTP loader.
const DefaultBaseURL = "https://jsonplaceholder.typicode.com/users"

// Address is the subset of the remote address the form consumes.
type Address struct {
	Street string `json:"street,omitempty"`
	City   string `json:"city"`
}

// Record is a remote user record.
type Record struct {
	ID       int     `json:"id,omitempty"`
	Name     string  `json:"name"`
	Username string  `json:"username,omitempty"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone,omitempty"`
	Address  Address `json:"address"`
}

// Loader fetches a user record by id. Failures are reported as *LoadError.
type Loader interface {
	FetchProfile(ctx context.Context, id string) (Record, error)
}

// LoaderFunc adapts a function into a Loader.
type LoaderFunc func(ctx context.Context, id string) (Record, error)

// FetchProfile calls fn.
func (fn LoaderFunc) FetchProfile(ctx context.Context, id string) (Record, error) {
	return fn(ctx, id)
}

// Failure stages reported in LoadError.Op.
const (
	OpRequest = "request"
	OpStatus  = "status"
	OpDecode  = "decode"
)

// LoadError reports a failed profile fetch.
type LoadError struct {
	ID  string
	Op  string
	Err error
}

func (e *LoadError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("profile: load %q: %v", e.ID, e.Err)
	}
	return fmt.Sprintf("profile: load %q (%s): %v", e.ID, e.Op, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// IsLoadError reports whether err wraps a LoadError.
func IsLoadError(err error) bool {
	var target *LoadError
	return errors.As(err, &target)
}

// LoaderOptions configures the HTTP loader.
type LoaderOptions struct {
	BaseURL        string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

// LoaderOption mutates LoaderOptions.
type LoaderOption func(*LoaderOptions)

// NewLoaderOptions applies options over the defaults.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{BaseURL: DefaultBaseURL}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithBaseURL overrides the user directory URL. Trailing slashes are dropped.
func WithBaseURL(raw string) LoaderOption {
	return func(o *LoaderOptions) {
		if trimmed := strings.TrimRight(strings.TrimSpace(raw), "/"); trimmed != "" {
			o.BaseURL = trimmed
		}
	}
}

// WithHTTPClient sets the client used for requests.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(o *LoaderOptions) {
		o.HTTPClient = client
	}
}

// WithRequestTimeout bounds each request. Zero disables the bound.
func WithRequestTimeout(timeout time.Duration) LoaderOption {
	return func(o *LoaderOptions) {
		o.RequestTimeout = timeout
	}
}
