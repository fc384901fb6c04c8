package form

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Value is a field value: string, int, int64, float64, or nil when unset.
type Value = any

// Snapshot is a read-only copy of every field value at a point in time. Rules
// receive it for cross-field checks and sinks receive it on submit.
type Snapshot struct {
	values map[string]Value
}

// NewSnapshot copies values into a Snapshot.
func NewSnapshot(values map[string]Value) Snapshot {
	return Snapshot{values: cloneValues(values)}
}

// Get returns the value stored under name.
func (s Snapshot) Get(name string) (Value, bool) {
	v, ok := s.values[name]
	return v, ok
}

// String returns the stringified value under name, or "" when unset.
func (s Snapshot) String(name string) string {
	return Stringify(s.values[name])
}

// Map returns a fresh copy of the captured values.
func (s Snapshot) Map() map[string]Value {
	return cloneValues(s.values)
}

// Names lists captured field names, sorted.
func (s Snapshot) Names() []string {
	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len reports how many values the snapshot holds.
func (s Snapshot) Len() int {
	return len(s.values)
}

// Stringify renders a value the way it would appear in a text input.
func Stringify(v Value) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return typed
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	default:
		return fmt.Sprint(typed)
	}
}

// IsEmpty reports whether v counts as "not provided": nil or the empty string.
// Whitespace counts as provided. Numbers are never empty.
func IsEmpty(v Value) bool {
	switch typed := v.(type) {
	case nil:
		return true
	case string:
		return typed == ""
	default:
		return false
	}
}

// AsNumber coerces v into a float64. Strings are trimmed and parsed.
func AsNumber(v Value) (float64, bool) {
	switch typed := v.(type) {
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case float64:
		return typed, !math.IsNaN(typed)
	case string:
		trimmed := strings.TrimSpace(typed)
		if trimmed == "" {
			return 0, false
		}
		n, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || math.IsNaN(n) {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func cloneValues(src map[string]Value) map[string]Value {
	out := make(map[string]Value, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
