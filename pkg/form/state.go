package form

import "reflect"

// FormState tracks current values, interaction flags, validation messages and
// the submission counter for one form instance. It belongs to a single event
// loop and is not safe for concurrent mutation.
type FormState struct {
	registry *Registry
	names    []string
	initial  map[string]Value
	values   map[string]Value
	touched  map[string]bool
	dirty    map[string]bool
	errors   map[string]string
	attempts int
}

// NewState seeds a state from the registry. Values in initial override each
// definition's Initial value; keys that are not registered fail with
// *UnknownFieldError.
func NewState(registry *Registry, initial map[string]Value) (*FormState, error) {
	if registry == nil {
		return nil, ErrRegistryRequired
	}
	for name := range initial {
		if !registry.Has(name) {
			return nil, &UnknownFieldError{Name: name}
		}
	}

	defs := registry.Definitions()
	s := &FormState{
		registry: registry,
		names:    make([]string, 0, len(defs)),
		initial:  make(map[string]Value, len(defs)),
		values:   make(map[string]Value, len(defs)),
		touched:  make(map[string]bool, len(defs)),
		dirty:    make(map[string]bool, len(defs)),
		errors:   make(map[string]string),
	}
	for _, def := range defs {
		value := def.Initial
		if v, ok := initial[def.Name]; ok {
			value = v
		}
		s.names = append(s.names, def.Name)
		s.initial[def.Name] = value
		s.values[def.Name] = value
		s.touched[def.Name] = false
		s.dirty[def.Name] = false
	}
	return s, nil
}

// Registry returns the registry the state was built from.
func (s *FormState) Registry() *Registry {
	return s.registry
}

// Names lists field names in declaration order.
func (s *FormState) Names() []string {
	return append([]string(nil), s.names...)
}

// Value returns the current value of name.
func (s *FormState) Value(name string) (Value, error) {
	if err := s.check(name); err != nil {
		return nil, err
	}
	return s.values[name], nil
}

// SetValue stores a new value and recomputes the dirty flag against the
// initial value.
func (s *FormState) SetValue(name string, value Value) error {
	if err := s.check(name); err != nil {
		return err
	}
	s.values[name] = value
	s.dirty[name] = !sameValue(s.initial[name], value)
	return nil
}

// Touch marks name as blurred at least once.
func (s *FormState) Touch(name string) error {
	if err := s.check(name); err != nil {
		return err
	}
	s.touched[name] = true
	return nil
}

// Touched reports whether name has been blurred.
func (s *FormState) Touched(name string) bool {
	return s.touched[name]
}

// Dirty reports whether name differs from its initial value. With no argument
// it reports whether any field is dirty.
func (s *FormState) Dirty(names ...string) bool {
	if len(names) == 0 {
		for _, dirty := range s.dirty {
			if dirty {
				return true
			}
		}
		return false
	}
	for _, name := range names {
		if s.dirty[name] {
			return true
		}
	}
	return false
}

// Error returns the stored validation message for name, if any.
func (s *FormState) Error(name string) string {
	return s.errors[name]
}

// Errors returns a copy of the error map. Valid fields are absent.
func (s *FormState) Errors() map[string]string {
	out := make(map[string]string, len(s.errors))
	for k, v := range s.errors {
		out[k] = v
	}
	return out
}

// Attempts reports how many times submit has been called.
func (s *FormState) Attempts() int {
	return s.attempts
}

// Snapshot captures the current values.
func (s *FormState) Snapshot() Snapshot {
	return NewSnapshot(s.values)
}

func (s *FormState) setError(name, message string) {
	if message == "" {
		delete(s.errors, name)
		return
	}
	s.errors[name] = message
}

func (s *FormState) incrementAttempts() int {
	s.attempts++
	return s.attempts
}

func (s *FormState) check(name string) error {
	if _, ok := s.values[name]; !ok {
		return &UnknownFieldError{Name: name}
	}
	return nil
}

func sameValue(a, b Value) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}
	// Edits arrive as strings while seeds may be numeric.
	return Stringify(a) == Stringify(b)
}
