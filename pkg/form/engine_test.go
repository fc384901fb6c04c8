package form

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

type recordingSink struct {
	snapshots []Snapshot
}

func (s *recordingSink) Accept(_ context.Context, snap Snapshot) {
	s.snapshots = append(s.snapshots, snap)
}

func newTestEngine(t *testing.T, initial map[string]Value, opts ...EngineOption) *Engine {
	t.Helper()
	engine, err := NewEngine(testRegistry(t), initial, opts...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestNewState_UnknownInitialKey(t *testing.T) {
	_, err := NewState(testRegistry(t), map[string]Value{"nope": 1})
	if !IsUnknownField(err) {
		t.Fatalf("expected UnknownFieldError, got %v", err)
	}
}

func TestNewState_NilRegistry(t *testing.T) {
	if _, err := NewState(nil, nil); !errors.Is(err, ErrRegistryRequired) {
		t.Fatalf("expected ErrRegistryRequired, got %v", err)
	}
}

func TestEngine_BlurValidatesSingleField(t *testing.T) {
	engine := newTestEngine(t, map[string]Value{"title": "ok title", "count": 3})

	if err := engine.Change("title", "ab"); err != nil {
		t.Fatalf("change: %v", err)
	}
	if msg := engine.State().Error("title"); msg != "" {
		t.Fatalf("change should not validate, got %q", msg)
	}

	msg, err := engine.Blur("title")
	if err != nil {
		t.Fatalf("blur: %v", err)
	}
	if msg != "title short" {
		t.Fatalf("unexpected message %q", msg)
	}
	if !engine.State().Touched("title") {
		t.Fatalf("title should be touched")
	}
	if engine.State().Touched("count") {
		t.Fatalf("count should not be touched")
	}
	if diff := cmp.Diff(map[string]string{"title": "title short"}, engine.State().Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	if err := engine.Change("title", "abcd"); err != nil {
		t.Fatalf("change: %v", err)
	}
	if msg, _ := engine.Blur("title"); msg != "" {
		t.Fatalf("expected error cleared, got %q", msg)
	}
	if len(engine.State().Errors()) != 0 {
		t.Fatalf("expected empty error map")
	}
}

func TestEngine_BlurUnknownField(t *testing.T) {
	engine := newTestEngine(t, nil)
	if _, err := engine.Blur("ghost"); !IsUnknownField(err) {
		t.Fatalf("expected UnknownFieldError, got %v", err)
	}
	if err := engine.Change("ghost", "x"); !IsUnknownField(err) {
		t.Fatalf("expected UnknownFieldError, got %v", err)
	}
}

func TestEngine_SubmitAcceptsValidForm(t *testing.T) {
	sink := &recordingSink{}
	engine := newTestEngine(t, map[string]Value{"title": "Hello", "count": 5}, WithSink(sink))

	status, err := engine.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if status != StatusSubmitted {
		t.Fatalf("expected submitted, got %s", status)
	}
	if engine.Attempts() != 1 {
		t.Fatalf("expected 1 attempt, got %d", engine.Attempts())
	}
	if len(sink.snapshots) != 1 {
		t.Fatalf("expected one accepted snapshot, got %d", len(sink.snapshots))
	}
	want := map[string]Value{"title": "Hello", "count": 5, "color": nil}
	if diff := cmp.Diff(want, sink.snapshots[0].Map()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
	if engine.Banner() != BannerSubmitted {
		t.Fatalf("expected submitted banner, got %q", engine.Banner())
	}
}

func TestEngine_SubmitRejectsInvalidForm(t *testing.T) {
	sink := &recordingSink{}
	engine := newTestEngine(t, map[string]Value{"title": "Hello", "count": "many"}, WithSink(sink))

	status, err := engine.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if status != StatusRejected {
		t.Fatalf("expected rejected, got %s", status)
	}
	if len(sink.snapshots) != 0 {
		t.Fatalf("sink must not receive rejected submissions")
	}
	if got := engine.State().Error("count"); got != "count nan" {
		t.Fatalf("unexpected count error %q", got)
	}
	for _, name := range engine.State().Names() {
		if !engine.State().Touched(name) {
			t.Fatalf("%s should be touched after submit", name)
		}
	}
	if engine.Banner() != BannerNone {
		t.Fatalf("expected no banner, got %q", engine.Banner())
	}

	if err := engine.Change("count", "4"); err != nil {
		t.Fatalf("change: %v", err)
	}
	if engine.Status() != StatusEditing {
		t.Fatalf("edit after reject should return to editing, got %s", engine.Status())
	}
}

func TestEngine_LocksAfterThreshold(t *testing.T) {
	sink := &recordingSink{}
	engine := newTestEngine(t, map[string]Value{"title": "Hello", "count": 5}, WithSink(sink))

	for i := 0; i < DefaultLockoutThreshold; i++ {
		if _, err := engine.Submit(context.Background()); err != nil {
			t.Fatalf("submit %d: %v", i+1, err)
		}
	}
	status, err := engine.Submit(context.Background())
	if err != nil {
		t.Fatalf("locking submit: %v", err)
	}
	if status != StatusLocked {
		t.Fatalf("expected locked, got %s", status)
	}
	if len(sink.snapshots) != DefaultLockoutThreshold {
		t.Fatalf("locking attempt must not reach the sink, got %d", len(sink.snapshots))
	}
	if engine.Banner() != BannerLocked {
		t.Fatalf("expected locked banner")
	}
	if err := engine.Change("title", "other"); !IsLocked(err) {
		t.Fatalf("expected ErrLocked on change, got %v", err)
	}
	if status, err := engine.Submit(context.Background()); status != StatusLocked || !IsLocked(err) {
		t.Fatalf("expected locked to persist, got %s %v", status, err)
	}
	if engine.Attempts() != DefaultLockoutThreshold+2 {
		t.Fatalf("attempts must keep counting, got %d", engine.Attempts())
	}
}

func TestEngine_CustomThreshold(t *testing.T) {
	engine := newTestEngine(t, nil, WithLockoutThreshold(1))
	_, _ = engine.Submit(context.Background())
	if status, _ := engine.Submit(context.Background()); status != StatusLocked {
		t.Fatalf("expected lock on second attempt, got %s", status)
	}
}

func TestEngine_SubmitCancelledContext(t *testing.T) {
	sink := &recordingSink{}
	engine := newTestEngine(t, map[string]Value{"title": "Hello", "count": 5}, WithSink(sink))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := engine.Submit(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if engine.Attempts() != 1 {
		t.Fatalf("cancelled submit still counts, got %d", engine.Attempts())
	}
	if len(sink.snapshots) != 0 {
		t.Fatalf("cancelled submit must not reach the sink")
	}
}

func TestEngine_Submittable(t *testing.T) {
	engine := newTestEngine(t, map[string]Value{"title": "Hello", "count": 5})
	if engine.Submittable() {
		t.Fatalf("pristine form should not be submittable")
	}
	if err := engine.Change("title", "Hello!"); err != nil {
		t.Fatalf("change: %v", err)
	}
	if !engine.Submittable() {
		t.Fatalf("dirty valid form should be submittable")
	}
	if err := engine.Change("count", "5"); err != nil {
		t.Fatalf("change: %v", err)
	}
	if engine.State().Dirty("count") {
		t.Fatalf("string edit equal to numeric seed should not be dirty")
	}
	if err := engine.Change("title", ""); err != nil {
		t.Fatalf("change: %v", err)
	}
	if engine.Submittable() {
		t.Fatalf("invalid form should not be submittable")
	}
}

func TestEngine_SubmitAttemptsProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("each submit adds exactly one attempt", prop.ForAll(
		func(calls int, title string) bool {
			engine, err := NewEngine(MustRegistry(
				FieldDefinition{Name: "title", Rules: []Rule{Required(""), MinLength(3, "")}},
			), map[string]Value{"title": title})
			if err != nil {
				return false
			}
			for i := 1; i <= calls; i++ {
				_, _ = engine.Submit(context.Background())
				if engine.Attempts() != i {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 12),
		gen.AlphaString(),
	))

	properties.Property("locked is terminal once attempts exceed the threshold", prop.ForAll(
		func(calls int, title string) bool {
			engine, err := NewEngine(MustRegistry(
				FieldDefinition{Name: "title", Rules: []Rule{Required(""), MinLength(3, "")}},
			), map[string]Value{"title": title})
			if err != nil {
				return false
			}
			for i := 1; i <= calls; i++ {
				status, _ := engine.Submit(context.Background())
				if i > DefaultLockoutThreshold && status != StatusLocked {
					return false
				}
				if i <= DefaultLockoutThreshold && status == StatusLocked {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 12),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
