package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-userform/pkg/form"
	"github.com/goliatone/go-userform/pkg/userform"
)

const (
	msgLoading       = "Loading"
	msgLoadFailed    = "Failed to load profile"
	msgTitle         = "Create user"
	defaultSubmitMsg = "Submit the form?"
)

// Session is the lifecycle owner the view drives. *userform.Controller
// satisfies it.
type Session interface {
	Load(ctx context.Context) error
	Phase() userform.Phase
	Engine() (*form.Engine, error)
}

// View renders a form session in the terminal. Every prompt answer is fed to
// the engine as a change followed by a blur.
type View struct {
	driver       PromptDriver
	theme        Theme
	submitPrompt string
}

// New constructs a view with defaults (survey driver, DefaultTheme).
func New(options ...Option) *View {
	v := &View{
		theme:        DefaultTheme,
		submitPrompt: defaultSubmitMsg,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(v)
	}
	if v.driver == nil {
		v.driver = NewSurveyDriver(nil)
	}
	return v
}

// Run loads the session when needed and then loops over the fields until the
// form is submitted, locked, or the user declines to submit. It returns the
// final engine status.
func (v *View) Run(ctx context.Context, session Session) (form.Status, error) {
	if ctx == nil {
		return "", errors.New("tui: context is required")
	}
	if session == nil {
		return "", ErrSessionRequired
	}

	if session.Phase() != userform.PhaseReady {
		if err := v.info(ctx, msgLoading); err != nil {
			return "", err
		}
		if err := session.Load(ctx); err != nil {
			if session.Phase() == userform.PhaseLoadFailed {
				_ = v.errorf(ctx, "%s: %v", msgLoadFailed, err)
			}
			return "", err
		}
	}

	engine, err := session.Engine()
	if err != nil {
		return "", err
	}

	for {
		if engine.Locked() {
			return engine.Status(), v.banner(ctx, engine)
		}
		if err := v.info(ctx, msgTitle); err != nil {
			return engine.Status(), err
		}
		for _, def := range engine.Registry().Definitions() {
			if err := v.promptField(ctx, engine, def); err != nil {
				return engine.Status(), err
			}
		}

		ok, err := v.driver.Confirm(ctx, ConfirmConfig{
			Message: v.submitPrompt,
			Default: engine.Submittable(),
		})
		if err != nil {
			return engine.Status(), err
		}
		if !ok {
			return engine.Status(), nil
		}

		status, err := engine.Submit(ctx)
		if err != nil && !form.IsLocked(err) {
			return status, err
		}
		switch status {
		case form.StatusSubmitted, form.StatusLocked:
			return status, v.banner(ctx, engine)
		}
		if err := v.printErrors(ctx, engine); err != nil {
			return status, err
		}
	}
}

func (v *View) promptField(ctx context.Context, engine *form.Engine, def form.FieldDefinition) error {
	current, err := engine.State().Value(def.Name)
	if err != nil {
		return err
	}

	var answer form.Value
	switch def.Kind {
	case form.InputSelect:
		labels := make([]string, 0, len(def.Options)+1)
		defaultIdx := -1
		for i, opt := range def.Options {
			labels = append(labels, opt.Label)
			if opt.Value == form.Stringify(current) {
				defaultIdx = i
			}
		}
		// A prefilled value outside the option list is offered as a trailing
		// choice so that accepting the default keeps it.
		if defaultIdx < 0 {
			defaultIdx = len(labels)
			labels = append(labels, form.Stringify(current))
		}
		idx, err := v.driver.Select(ctx, SelectConfig{
			Message:      def.Label,
			Options:      labels,
			DefaultIndex: defaultIdx,
		})
		if err != nil {
			return err
		}
		switch {
		case idx >= 0 && idx < len(def.Options):
			answer = def.Options[idx].Value
		case idx == len(def.Options) && len(labels) > len(def.Options):
			answer = current
		default:
			return v.errorf(ctx, "Invalid %s selection", def.Label)
		}
	case form.InputPassword:
		text, err := v.driver.Password(ctx, InputConfig{
			Message: def.Label,
			Default: form.Stringify(current),
		})
		if err != nil {
			return err
		}
		answer = text
	default:
		text, err := v.driver.Input(ctx, InputConfig{
			Message: def.Label,
			Default: form.Stringify(current),
		})
		if err != nil {
			return err
		}
		answer = text
	}

	if form.Stringify(answer) != form.Stringify(current) {
		if err := engine.Change(def.Name, answer); err != nil {
			return err
		}
	}
	msg, err := engine.Blur(def.Name)
	if err != nil {
		return err
	}
	if msg != "" {
		return v.errorf(ctx, "%s", def.DisplayMessage(msg))
	}
	return nil
}

func (v *View) printErrors(ctx context.Context, engine *form.Engine) error {
	errs := engine.State().Errors()
	for _, def := range engine.Registry().Definitions() {
		msg, ok := errs[def.Name]
		if !ok {
			continue
		}
		if err := v.errorf(ctx, "%s", def.DisplayMessage(msg)); err != nil {
			return err
		}
	}
	return nil
}

func (v *View) banner(ctx context.Context, engine *form.Engine) error {
	b := engine.Banner()
	if b == form.BannerNone {
		return nil
	}
	return v.driver.Info(ctx, v.theme.BannerPrefix+string(b))
}

func (v *View) info(ctx context.Context, msg string) error {
	return v.driver.Info(ctx, v.theme.InfoPrefix+msg)
}

func (v *View) errorf(ctx context.Context, format string, args ...any) error {
	return v.driver.Info(ctx, v.theme.ErrorPrefix+fmt.Sprintf(format, args...))
}
