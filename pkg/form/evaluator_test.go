package form

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestEvaluator_FirstFailureWins(t *testing.T) {
	state, err := NewState(testRegistry(t), map[string]Value{"title": "", "count": "abc"})
	if err != nil {
		t.Fatalf("new state: %v", err)
	}
	got, err := NewEvaluator().ValidateAll(state)
	if err != nil {
		t.Fatalf("validate all: %v", err)
	}
	want := map[string]string{
		"title": "title required",
		"count": "count nan",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluator_CheckDoesNotWrite(t *testing.T) {
	state, err := NewState(testRegistry(t), map[string]Value{"title": "x"})
	if err != nil {
		t.Fatalf("new state: %v", err)
	}
	eval := NewEvaluator()
	issues := eval.Check(state.Registry(), state.Snapshot())
	if len(issues) == 0 {
		t.Fatalf("expected issues")
	}
	if len(state.Errors()) != 0 {
		t.Fatalf("Check must not write to the error map")
	}
	if eval.Valid(state) {
		t.Fatalf("expected invalid")
	}
}

func TestEvaluator_ValidRequiresRequiredFields(t *testing.T) {
	reg := MustRegistry(
		FieldDefinition{Name: "a", Rules: []Rule{Required("")}},
		FieldDefinition{Name: "b"},
	)
	state, err := NewState(reg, map[string]Value{"a": "set"})
	if err != nil {
		t.Fatalf("new state: %v", err)
	}
	eval := NewEvaluator()
	if !eval.Valid(state) {
		t.Fatalf("expected valid with optional field empty")
	}
	if err := state.SetValue("a", ""); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if eval.Valid(state) {
		t.Fatalf("validity must be recomputed after a change")
	}
}

func TestEvaluator_UnknownField(t *testing.T) {
	state, err := NewState(testRegistry(t), nil)
	if err != nil {
		t.Fatalf("new state: %v", err)
	}
	if _, err := NewEvaluator().Validate(state, "ghost"); !IsUnknownField(err) {
		t.Fatalf("expected UnknownFieldError, got %v", err)
	}
}

func TestEvaluator_IdempotentProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("validating unchanged values twice yields the same errors", prop.ForAll(
		func(title, count string) bool {
			reg := MustRegistry(
				FieldDefinition{Name: "title", Rules: []Rule{Required(""), MinLength(3, ""), MaxLength(8, "")}},
				FieldDefinition{Name: "count", Rules: []Rule{Required(""), Numeric(""), NumericRange(1, 10, "")}},
			)
			state, err := NewState(reg, map[string]Value{"title": title, "count": count})
			if err != nil {
				return false
			}
			eval := NewEvaluator()
			first, err := eval.ValidateAll(state)
			if err != nil {
				return false
			}
			second, err := eval.ValidateAll(state)
			if err != nil {
				return false
			}
			return reflect.DeepEqual(first, second) &&
				reflect.DeepEqual(first, eval.Check(reg, state.Snapshot()))
		},
		gen.AlphaString(),
		gen.NumString(),
	))

	properties.TestingRun(t)
}
