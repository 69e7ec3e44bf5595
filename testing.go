package announce

import (
	"sync"
	"time"
)

// TestRegistry creates a registry configured for testing: argument
// validation on, metrics and tracing off.
func TestRegistry(opts ...Option) *Registry {
	base := []Option{
		WithName("test-registry"),
		WithValidation(true),
		WithTracing(false),
		WithMetrics(false),
	}
	return New(append(base, opts...)...)
}

// Call represents one recorded handler invocation.
type Call struct {
	Event     string
	Args      []any
	Timestamp time.Time
}

// Recorder records handler invocations during a test.
// Subscribe the value returned by Handler, publish, then assert on Calls.
//
// Example:
//
//	rec := announce.NewRecorder()
//	reg.Subscribe("order.created", rec.Handler("order.created"))
//	reg.Publish(ctx, "order.created", 42)
//	if rec.CountFor("order.created") != 1 { ... }
type Recorder struct {
	mu    sync.Mutex
	calls []Call
}

// NewRecorder creates a recorder with no recorded calls.
func NewRecorder() *Recorder {
	return &Recorder{calls: make([]Call, 0)}
}

// Handler returns a variadic function that records every invocation under
// the given event name. Functions returned by Handler share an identity for
// Unsubscribe purposes: removing one removes the earliest subscription.
//
// Must not be inlined: inlining duplicates the func literal per call site,
// giving each returned closure a distinct code pointer and breaking the
// shared identity.
//
//go:noinline
func (r *Recorder) Handler(event string) func(args ...any) {
	return func(args ...any) {
		r.mu.Lock()
		r.calls = append(r.calls, Call{
			Event:     event,
			Args:      args,
			Timestamp: time.Now(),
		})
		r.mu.Unlock()
	}
}

// Calls returns a copy of all recorded calls in invocation order.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// CallsFor returns recorded calls for a specific event.
func (r *Recorder) CallsFor(event string) []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Call
	for _, c := range r.calls {
		if c.Event == event {
			out = append(out, c)
		}
	}
	return out
}

// Count returns the number of recorded calls.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// CountFor returns the number of recorded calls for a specific event.
func (r *Recorder) CountFor(event string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if c.Event == event {
			n++
		}
	}
	return n
}

// Reset clears all recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.calls = r.calls[:0]
	r.mu.Unlock()
}
