package userform

import (
	"context"

	internalLoader "github.com/goliatone/go-userform/internal/profile/loader"
	"github.com/goliatone/go-userform/pkg/form"
	"github.com/goliatone/go-userform/pkg/profile"
	pkguserform "github.com/goliatone/go-userform/pkg/userform"
)

// Controller aliases pkg/userform.Controller for callers that only import the
// root module.
type Controller = pkguserform.Controller

// Snapshot aliases form.Snapshot, the payload handed to submit sinks.
type Snapshot = form.Snapshot

// NewLoader constructs the HTTP profile loader while keeping the concrete type
// hidden from consumers.
func NewLoader(options ...profile.LoaderOption) profile.Loader {
	cfg := profile.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewController wires the HTTP loader into a controller. Options passed by
// the caller run afterwards, so WithLoader still overrides the default.
func NewController(loaderOptions []profile.LoaderOption, options ...pkguserform.Option) *Controller {
	opts := append([]pkguserform.Option{pkguserform.WithLoader(NewLoader(loaderOptions...))}, options...)
	return pkguserform.NewController(opts...)
}

// Load builds a controller and performs the initial fetch in one call.
func Load(ctx context.Context, loaderOptions []profile.LoaderOption, options ...pkguserform.Option) (*Controller, error) {
	ctrl := NewController(loaderOptions, options...)
	if err := ctrl.Load(ctx); err != nil {
		return ctrl, err
	}
	return ctrl, nil
}
