package sink

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"sync"

	"github.com/goliatone/go-userform/pkg/form"
)

// Func adapts a function into a form.SubmitSink.
type Func func(ctx context.Context, snapshot form.Snapshot)

// Accept calls fn.
func (fn Func) Accept(ctx context.Context, snapshot form.Snapshot) {
	if fn != nil {
		fn(ctx, snapshot)
	}
}

// Log returns a sink that prints each accepted snapshot through logger.
// A nil logger uses log.Default.
func Log(logger *log.Logger) form.SubmitSink {
	if logger == nil {
		logger = log.Default()
	}
	return Func(func(_ context.Context, snapshot form.Snapshot) {
		data, err := json.Marshal(snapshot.Map())
		if err != nil {
			logger.Printf("userform: submitted (unencodable): %v", err)
			return
		}
		logger.Printf("userform: submitted %s", data)
	})
}

// JSON returns a sink that writes one JSON object per accepted snapshot.
// Write errors are dropped; the sink is fire-and-forget.
func JSON(w io.Writer) form.SubmitSink {
	var mu sync.Mutex
	return Func(func(_ context.Context, snapshot form.Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		_ = json.NewEncoder(w).Encode(snapshot.Map())
	})
}

// Multi fans each snapshot out to every non-nil sink in order.
func Multi(sinks ...form.SubmitSink) form.SubmitSink {
	return Func(func(ctx context.Context, snapshot form.Snapshot) {
		for _, s := range sinks {
			if s != nil {
				s.Accept(ctx, snapshot)
			}
		}
	})
}

// Recorder keeps every snapshot it receives.
type Recorder struct {
	mu        sync.Mutex
	snapshots []form.Snapshot
}

// Accept stores snapshot.
func (r *Recorder) Accept(_ context.Context, snapshot form.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots = append(r.snapshots, snapshot)
}

// Snapshots returns the recorded snapshots in arrival order.
func (r *Recorder) Snapshots() []form.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]form.Snapshot(nil), r.snapshots...)
}

// Len reports how many snapshots were recorded.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.snapshots)
}
