package form

import (
	"fmt"
	"strings"
	"sync"
)

// InputKind hints how a View should present a field.
type InputKind string

const (
	InputText     InputKind = "text"
	InputNumber   InputKind = "number"
	InputPassword InputKind = "password"
	InputEmail    InputKind = "email"
	InputSelect   InputKind = "select"
)

// Option is one choice of a select field.
type Option struct {
	Value string
	Label string
}

// FieldDefinition declares a field, its ordered rule set, and the display
// metadata a View needs. Rendering concerns stop at Label, Kind, Options and
// InvalidMessage.
type FieldDefinition struct {
	Name    string
	Label   string
	Kind    InputKind
	Options []Option
	Rules   []Rule
	Initial Value
	// InvalidMessage, when set, is what the View shows instead of the rule
	// message whenever the field has an error.
	InvalidMessage string
}

// Required reports whether the rule set contains a required check.
func (d FieldDefinition) Required() bool {
	for _, rule := range d.Rules {
		if rule != nil && rule.Name() == RuleRequired {
			return true
		}
	}
	return false
}

// DisplayMessage resolves what a View should print for the given rule
// message. An empty message yields "".
func (d FieldDefinition) DisplayMessage(message string) string {
	if message == "" {
		return ""
	}
	if d.InvalidMessage != "" {
		return d.InvalidMessage
	}
	return message
}

// Registry holds field definitions keyed by name, preserving declaration
// order.
type Registry struct {
	mu      sync.RWMutex
	defs    map[string]FieldDefinition
	ordered []string
}

// NewRegistry creates a registry seeded with defs.
func NewRegistry(defs ...FieldDefinition) (*Registry, error) {
	r := &Registry{defs: make(map[string]FieldDefinition, len(defs))}
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustRegistry panics when NewRegistry fails. Useful for init-time wiring.
func MustRegistry(defs ...FieldDefinition) *Registry {
	r, err := NewRegistry(defs...)
	if err != nil {
		panic(err)
	}
	return r
}

// Register adds a definition. Empty and duplicate names are rejected.
func (r *Registry) Register(def FieldDefinition) error {
	name := strings.TrimSpace(def.Name)
	if name == "" {
		return errEmptyFieldName
	}
	def.Name = name
	def.Rules = append([]Rule(nil), def.Rules...)
	def.Options = append([]Option(nil), def.Options...)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defs[name]; exists {
		return fmt.Errorf("form: field %q already registered", name)
	}
	r.defs[name] = def
	r.ordered = append(r.ordered, name)
	return nil
}

// Rules returns the ordered rule set for name.
func (r *Registry) Rules(name string) ([]Rule, error) {
	def, err := r.Definition(name)
	if err != nil {
		return nil, err
	}
	return append([]Rule(nil), def.Rules...), nil
}

// Definition returns the definition registered under name.
func (r *Registry) Definition(name string) (FieldDefinition, error) {
	if r == nil {
		return FieldDefinition{}, ErrRegistryRequired
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.defs[name]
	if !ok {
		return FieldDefinition{}, &UnknownFieldError{Name: name}
	}
	return def, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, err := r.Definition(name)
	return err == nil
}

// Names lists field names in declaration order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.ordered...)
}

// Definitions lists definitions in declaration order.
func (r *Registry) Definitions() []FieldDefinition {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]FieldDefinition, 0, len(r.ordered))
	for _, name := range r.ordered {
		out = append(out, r.defs[name])
	}
	return out
}
