package form

import "errors"

// Evaluator runs rule sets against a FormState. It holds no state of its own,
// so repeated runs over unchanged values produce the same error map.
type Evaluator struct{}

// NewEvaluator returns the default evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Validate runs the rules of name in order against a snapshot of state and
// stores the first failing message ("" when valid) in the error map.
func (e *Evaluator) Validate(state *FormState, name string) (string, error) {
	if state == nil {
		return "", ErrRegistryRequired
	}
	rules, err := state.registry.Rules(name)
	if err != nil {
		return "", err
	}
	value, err := state.Value(name)
	if err != nil {
		return "", err
	}
	message := firstFailure(name, rules, value, state.Snapshot())
	state.setError(name, message)
	return message, nil
}

// ValidateAll validates every field and returns the resulting error map.
func (e *Evaluator) ValidateAll(state *FormState) (map[string]string, error) {
	if state == nil {
		return nil, ErrRegistryRequired
	}
	for _, name := range state.names {
		if _, err := e.Validate(state, name); err != nil {
			return nil, err
		}
	}
	return state.Errors(), nil
}

// Check evaluates every definition in the registry against snap without
// touching any state. Valid fields are absent from the result.
func (e *Evaluator) Check(registry *Registry, snap Snapshot) map[string]string {
	out := make(map[string]string)
	for _, def := range registry.Definitions() {
		value, _ := snap.Get(def.Name)
		if message := firstFailure(def.Name, def.Rules, value, snap); message != "" {
			out[def.Name] = message
		}
	}
	return out
}

// Valid reports whether the current values pass every rule and every required
// field is non-empty. It is recomputed on each call.
func (e *Evaluator) Valid(state *FormState) bool {
	if state == nil {
		return false
	}
	snap := state.Snapshot()
	if len(e.Check(state.registry, snap)) > 0 {
		return false
	}
	for _, def := range state.registry.Definitions() {
		if !def.Required() {
			continue
		}
		value, _ := snap.Get(def.Name)
		if IsEmpty(value) {
			return false
		}
	}
	return true
}

func firstFailure(field string, rules []Rule, value Value, snap Snapshot) string {
	for _, rule := range rules {
		if rule == nil {
			continue
		}
		err := rule.Check(value, snap)
		if err == nil {
			continue
		}
		var verr *ValidationError
		if errors.As(err, &verr) {
			verr.Field = field
			return verr.Message
		}
		return err.Error()
	}
	return ""
}
