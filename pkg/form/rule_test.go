package form

import (
	"errors"
	"testing"
)

func TestRules_Check(t *testing.T) {
	snap := NewSnapshot(map[string]Value{"other": "same"})
	cases := []struct {
		name    string
		rule    Rule
		value   Value
		wantMsg string
	}{
		{name: "required nil", rule: Required("needed"), value: nil, wantMsg: "needed"},
		{name: "required empty", rule: Required(""), value: "", wantMsg: "required"},
		{name: "required whitespace", rule: Required(""), value: "   "},
		{name: "required number", rule: Required(""), value: 0},
		{name: "min length short", rule: MinLength(3, ""), value: "Al", wantMsg: "min length 3"},
		{name: "min length runes", rule: MinLength(3, ""), value: "Zoë"},
		{name: "max length long", rule: MaxLength(2, "too long"), value: "abc", wantMsg: "too long"},
		{name: "numeric string", rule: Numeric(""), value: " 42 "},
		{name: "numeric nan", rule: Numeric("nope"), value: "NaN", wantMsg: "nope"},
		{name: "numeric text", rule: Numeric("nope"), value: "abc", wantMsg: "nope"},
		{name: "range inside", rule: NumericRange(18, 100, ""), value: 18},
		{name: "range upper", rule: NumericRange(18, 100, ""), value: "100"},
		{name: "range above", rule: NumericRange(18, 100, "bad"), value: 150, wantMsg: "bad"},
		{name: "range non numeric", rule: NumericRange(18, 100, "bad"), value: "x", wantMsg: "bad"},
		{name: "pattern match", rule: Pattern(`^a+$`, ""), value: "aaa"},
		{name: "pattern miss", rule: Pattern(`^a+$`, ""), value: "ab", wantMsg: "does not match required pattern"},
		{
			name: "cross field",
			rule: CrossField("notOther", func(v Value, s Snapshot) string {
				if Stringify(v) == s.String("other") {
					return "must differ"
				}
				return ""
			}),
			value:   "same",
			wantMsg: "must differ",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.rule.Check(tc.value, snap)
			if tc.wantMsg == "" {
				if err != nil {
					t.Fatalf("expected pass, got %v", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Message != tc.wantMsg {
				t.Fatalf("message: got %q want %q", verr.Message, tc.wantMsg)
			}
			if verr.Rule != tc.rule.Name() {
				t.Fatalf("rule: got %q want %q", verr.Rule, tc.rule.Name())
			}
		})
	}
}

func TestCrossField_DefaultName(t *testing.T) {
	rule := CrossField("", nil)
	if rule.Name() != RuleCrossField {
		t.Fatalf("expected default name, got %q", rule.Name())
	}
	if err := rule.Check("x", Snapshot{}); err != nil {
		t.Fatalf("nil func should pass, got %v", err)
	}
}
