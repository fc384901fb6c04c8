package form

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// Rule names, mirroring the canonical identifiers used by renderers.
const (
	RuleRequired     = "required"
	RuleMinLength    = "minLength"
	RuleMaxLength    = "maxLength"
	RuleNumeric      = "numeric"
	RuleNumericRange = "range"
	RulePattern      = "pattern"
	RuleCrossField   = "crossField"
)

// Rule checks one field value. Check returns nil when the value passes or a
// *ValidationError carrying the message to display. The snapshot holds every
// field value so rules can compare against siblings; rules must not retain it.
type Rule interface {
	Name() string
	Check(value Value, snap Snapshot) error
}

// RequiredRule fails on nil or blank values.
type RequiredRule struct {
	Message string
}

// Required constructs a RequiredRule. An empty message falls back to "required".
func Required(message string) RequiredRule {
	return RequiredRule{Message: message}
}

func (RequiredRule) Name() string { return RuleRequired }

func (r RequiredRule) Check(value Value, _ Snapshot) error {
	if IsEmpty(value) {
		return invalid(RuleRequired, orDefault(r.Message, "required"))
	}
	return nil
}

// MinLengthRule fails when the stringified value has fewer than Min runes.
type MinLengthRule struct {
	Min     int
	Message string
}

// MinLength constructs a MinLengthRule.
func MinLength(min int, message string) MinLengthRule {
	return MinLengthRule{Min: min, Message: message}
}

func (MinLengthRule) Name() string { return RuleMinLength }

func (r MinLengthRule) Check(value Value, _ Snapshot) error {
	if utf8.RuneCountInString(Stringify(value)) < r.Min {
		return invalid(RuleMinLength, orDefault(r.Message, fmt.Sprintf("min length %d", r.Min)))
	}
	return nil
}

// MaxLengthRule fails when the stringified value has more than Max runes.
type MaxLengthRule struct {
	Max     int
	Message string
}

// MaxLength constructs a MaxLengthRule.
func MaxLength(max int, message string) MaxLengthRule {
	return MaxLengthRule{Max: max, Message: message}
}

func (MaxLengthRule) Name() string { return RuleMaxLength }

func (r MaxLengthRule) Check(value Value, _ Snapshot) error {
	if utf8.RuneCountInString(Stringify(value)) > r.Max {
		return invalid(RuleMaxLength, orDefault(r.Message, fmt.Sprintf("max length %d", r.Max)))
	}
	return nil
}

// NumericRule fails when the value cannot be read as a number.
type NumericRule struct {
	Message string
}

// Numeric constructs a NumericRule.
func Numeric(message string) NumericRule {
	return NumericRule{Message: message}
}

func (NumericRule) Name() string { return RuleNumeric }

func (r NumericRule) Check(value Value, _ Snapshot) error {
	if _, ok := AsNumber(value); !ok {
		return invalid(RuleNumeric, orDefault(r.Message, "must be a number"))
	}
	return nil
}

// NumericRangeRule fails when the numeric value falls outside [Min, Max].
// Non-numeric values fail as well so the rule is safe on its own.
type NumericRangeRule struct {
	Min     float64
	Max     float64
	Message string
}

// NumericRange constructs a NumericRangeRule with inclusive bounds.
func NumericRange(min, max float64, message string) NumericRangeRule {
	return NumericRangeRule{Min: min, Max: max, Message: message}
}

func (NumericRangeRule) Name() string { return RuleNumericRange }

func (r NumericRangeRule) Check(value Value, _ Snapshot) error {
	n, ok := AsNumber(value)
	if !ok || n < r.Min || n > r.Max {
		return invalid(RuleNumericRange, orDefault(r.Message, fmt.Sprintf("must be between %v and %v", r.Min, r.Max)))
	}
	return nil
}

// PatternRule fails when the stringified value does not match Expr.
type PatternRule struct {
	Expr    *regexp.Regexp
	Message string
}

// Pattern compiles expr into a PatternRule and panics on an invalid
// expression, like regexp.MustCompile. Rules are declared at init time.
func Pattern(expr, message string) PatternRule {
	return PatternRule{Expr: regexp.MustCompile(expr), Message: message}
}

func (PatternRule) Name() string { return RulePattern }

func (r PatternRule) Check(value Value, _ Snapshot) error {
	if r.Expr == nil {
		return nil
	}
	if !r.Expr.MatchString(Stringify(value)) {
		return invalid(RulePattern, orDefault(r.Message, "does not match required pattern"))
	}
	return nil
}

// CrossFieldFunc inspects a value alongside every other field value. It
// returns the failure message, or "" when the value passes.
type CrossFieldFunc func(value Value, snap Snapshot) string

// CrossFieldRule adapts a CrossFieldFunc into a Rule.
type CrossFieldRule struct {
	Label string
	Fn    CrossFieldFunc
}

// CrossField constructs a CrossFieldRule. label identifies the rule in
// ValidationError.Rule; it defaults to "crossField".
func CrossField(label string, fn CrossFieldFunc) CrossFieldRule {
	return CrossFieldRule{Label: label, Fn: fn}
}

func (r CrossFieldRule) Name() string { return orDefault(r.Label, RuleCrossField) }

func (r CrossFieldRule) Check(value Value, snap Snapshot) error {
	if r.Fn == nil {
		return nil
	}
	if msg := r.Fn(value, snap); msg != "" {
		return invalid(r.Name(), msg)
	}
	return nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
