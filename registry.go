package announce

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"runtime/debug"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// NewID generates a new unique ID.
func NewID() string {
	u, err := uuid.NewRandom()
	if err != nil {
		return ""
	}
	return u.String()
}

// subscription pairs a handler with its identity and an ID for logging.
type subscription struct {
	id  string
	fn  reflect.Value
	ref any
}

// Registry owns event declarations and their subscriptions.
// Declarations and subscriptions are parallel structures: an event
// registered with zero subscribers is distinct from an unregistered event.
//
// A Registry is safe for concurrent use. Dispatch itself is synchronous:
// Publish invokes every current handler in subscription order on the
// calling goroutine.
type Registry struct {
	id              string
	name            string
	validation      bool
	recoveryEnabled bool
	tracingEnabled  bool
	metricsEnabled  bool
	logger          *slog.Logger

	published  metric.Int64Counter
	handled    metric.Int64Counter
	subscribed metric.Int64Counter

	mu     sync.RWMutex
	events map[string]*Definition
	subs   map[string][]subscription
}

// New creates a registry. The validation mode and all other behavior flags
// are fixed at construction.
//
// There is no package-level default registry; construct one and pass it to
// whichever components need it.
func New(opts ...Option) *Registry {
	o := newOptions(opts...)

	r := &Registry{
		id:              NewID(),
		name:            o.name,
		validation:      o.validation,
		recoveryEnabled: o.recoveryEnabled,
		tracingEnabled:  o.tracingEnabled,
		metricsEnabled:  o.metricsEnabled,
		logger:          o.logger.With("component", "registry>"+o.name),
		events:          make(map[string]*Definition),
		subs:            make(map[string][]subscription),
	}

	if r.metricsEnabled {
		meter := otel.Meter(r.name)
		r.published, _ = meter.Int64Counter("event.published",
			metric.WithDescription("Total number of events published"))
		r.handled, _ = meter.Int64Counter("event.handled",
			metric.WithDescription("Total number of handler invocations"))
		r.subscribed, _ = meter.Int64Counter("event.subscribed",
			metric.WithDescription("Total number of subscriptions"))
	}

	return r
}

// ID returns the registry ID.
func (r *Registry) ID() string {
	return r.id
}

// Name returns the registry name.
func (r *Registry) Name() string {
	return r.name
}

// Validating reports whether publish-time argument validation is on.
func (r *Registry) Validating() bool {
	return r.validation
}

// Register declares a named event with an ordered parameter signature.
// Params may be raw literals; they are validated as in NewParam.
// Returns error if:
//   - name is empty (ErrMissingEventName)
//   - the declaration is malformed (ErrInvalidEvent, ErrInvalidSignature,
//     ErrInvalidParameterOrder, ErrDuplicateParameter)
//   - an event with the same name exists (ErrAlreadyRegistered)
func (r *Registry) Register(name string, params []Param, opts ...RegisterOption) (*Definition, error) {
	if name == "" {
		return nil, ErrMissingEventName
	}
	o := newRegisterOptions(opts...)
	def, err := newDefinition(name, params, o.description, o.registrant)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrAlreadyRegistered, name)
	}
	r.events[name] = def

	r.logger.Debug("registered event", "event", name, "params", len(params))
	return def, nil
}

// Deregister removes an event and all its subscriptions.
func (r *Registry) Deregister(name string) error {
	if name == "" {
		return ErrMissingEventName
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[name]; !ok {
		return fmt.Errorf("%w: %q", ErrNotRegistered, name)
	}
	delete(r.events, name)
	delete(r.subs, name)

	r.logger.Debug("deregistered event", "event", name)
	return nil
}

// DeregisterAll removes every event and every subscription. Never fails.
func (r *Registry) DeregisterAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = make(map[string]*Definition)
	r.subs = make(map[string][]subscription)

	r.logger.Debug("deregistered all events")
}

// Subscribe appends a handler to the named event's dispatch list.
// The handler may be any function value; Publish invokes it with the
// published arguments. Handlers fire in subscription order and the same
// function may be subscribed multiple times.
//
// The handler is returned unchanged so the caller retains an identity token
// for Unsubscribe.
//
// Returns error if:
//   - name is empty (ErrMissingEventName)
//   - the event does not exist (ErrNotRegistered)
//   - handler is nil or not a function (ErrMissingHandler)
//   - a fixed-arity handler takes fewer arguments than the event declares
//     required parameters (ErrArityMismatch)
func (r *Registry) Subscribe(name string, handler any) (any, error) {
	if name == "" {
		return nil, ErrMissingEventName
	}
	fn := reflect.ValueOf(handler)
	if handler == nil || fn.Kind() != reflect.Func || fn.IsNil() {
		return nil, fmt.Errorf("%w: subscribe to %q requires a function", ErrMissingHandler, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	def, ok := r.events[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotRegistered, name)
	}
	if t := fn.Type(); !t.IsVariadic() && t.NumIn() < def.requiredCount() {
		return nil, fmt.Errorf("%w: event %q requires %d arguments, handler takes %d",
			ErrArityMismatch, name, def.requiredCount(), t.NumIn())
	}

	sub := subscription{id: NewID(), fn: fn, ref: handler}
	r.subs[name] = append(r.subs[name], sub)

	if r.metricsEnabled && r.subscribed != nil {
		r.subscribed.Add(context.Background(), 1,
			metric.WithAttributes(attribute.String("event", name)))
	}
	r.logger.Debug("added subscriber", "event", name, "subscription", sub.id)
	return handler, nil
}

// Unsubscribe removes the first subscription of the named event whose
// handler is identical to fn. Identity is the function's code pointer, so a
// function subscribed twice needs two Unsubscribe calls.
//
// Reports true when a subscription was removed. Absence of a match is not
// an error: (false, nil) means nothing was removed.
func (r *Registry) Unsubscribe(name string, fn any) (bool, error) {
	if name == "" {
		return false, ErrMissingEventName
	}
	hv := reflect.ValueOf(fn)
	if fn == nil || hv.Kind() != reflect.Func || hv.IsNil() {
		return false, fmt.Errorf("%w: unsubscribe from %q requires a function", ErrMissingHandler, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[name]; !ok {
		return false, fmt.Errorf("%w: %q", ErrNotRegistered, name)
	}
	ptr := hv.Pointer()
	for i, sub := range r.subs[name] {
		if sub.fn.Pointer() == ptr {
			r.subs[name] = slices.Delete(r.subs[name], i, i+1)
			r.logger.Debug("removed subscriber", "event", name, "subscription", sub.id)
			return true, nil
		}
	}
	return false, nil
}

// UnsubscribeAll removes every subscription of the named event.
// The event stays registered with zero subscribers.
func (r *Registry) UnsubscribeAll(name string) error {
	if name == "" {
		return ErrMissingEventName
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[name]; !ok {
		return fmt.Errorf("%w: %q", ErrNotRegistered, name)
	}
	delete(r.subs, name)

	r.logger.Debug("removed all subscribers", "event", name)
	return nil
}

// Publish invokes every current handler of the named event, in subscription
// order, synchronously, with the given arguments. Handler return values are
// ignored. Returns the number of handlers invoked; (0, nil) when the event
// has no subscribers.
//
// Dispatch iterates over a snapshot of the subscription list taken at the
// start of the call: a handler that subscribes or unsubscribes during
// dispatch affects only subsequent publishes.
//
// In validating mode the arguments are checked once against the declared
// signature before any handler runs; a mismatch aborts the publish with an
// *ArgumentError. A handler panic aborts the remaining fan-out: it
// propagates to the caller, or surfaces as a *HandlerPanicError when
// recovery is enabled.
func (r *Registry) Publish(ctx context.Context, name string, args ...any) (int, error) {
	if name == "" {
		return 0, ErrMissingEventName
	}

	r.mu.RLock()
	def := r.events[name]
	list := r.subs[name]
	snapshot := make([]subscription, len(list))
	copy(snapshot, list)
	r.mu.RUnlock()

	if len(snapshot) == 0 {
		return 0, nil
	}

	if r.metricsEnabled && r.published != nil {
		r.published.Add(ctx, 1, metric.WithAttributes(attribute.String("event", name)))
	}
	if r.tracingEnabled {
		tracer := otel.Tracer(r.name)
		var span trace.Span
		ctx, span = tracer.Start(ctx, fmt.Sprintf("%s.publish", name),
			trace.WithAttributes(
				attribute.String("event.name", name),
				attribute.String("event.source", r.id)),
			trace.WithSpanKind(trace.SpanKindProducer))
		defer span.End()
	}

	// Validation depends only on args, not on which handler runs,
	// so one check before the fan-out covers every handler.
	if r.validation && def != nil {
		if err := def.CheckArgs(args); err != nil {
			return 0, err
		}
	}

	invoked := 0
	for _, sub := range snapshot {
		if err := r.invoke(name, sub, args); err != nil {
			return invoked, err
		}
		invoked++
		if r.metricsEnabled && r.handled != nil {
			r.handled.Add(ctx, 1, metric.WithAttributes(attribute.String("event", name)))
		}
	}

	r.logger.Debug("published event", "event", name, "handlers", invoked)
	return invoked, nil
}

// invoke calls one handler with the published arguments.
func (r *Registry) invoke(name string, sub subscription, args []any) (err error) {
	in, err := callArgs(sub.fn.Type(), args)
	if err != nil {
		var argErr *ArgumentError
		if errors.As(err, &argErr) {
			argErr.Event = name
		}
		return err
	}
	if r.recoveryEnabled {
		defer func() {
			if v := recover(); v != nil {
				r.logger.Error("handler panic recovered",
					"event", name,
					"subscription", sub.id,
					"panic", v,
					"stack", string(debug.Stack()))
				err = &HandlerPanicError{Event: name, Value: v}
			}
		}()
	}
	sub.fn.Call(in)
	return nil
}

// callArgs adapts published arguments to a handler's own parameter list.
// Missing trailing arguments become the parameter's zero value. A variadic
// handler receives every argument; a fixed-arity handler receives the first
// NumIn arguments and extra trailing arguments are dropped.
func callArgs(t reflect.Type, args []any) ([]reflect.Value, error) {
	fixed := t.NumIn()
	if t.IsVariadic() {
		fixed--
	}
	in := make([]reflect.Value, 0, fixed)
	for i := 0; i < fixed; i++ {
		v, err := argValue(args, i, t.In(i))
		if err != nil {
			return nil, err
		}
		in = append(in, v)
	}
	if t.IsVariadic() {
		elem := t.In(t.NumIn() - 1).Elem()
		for i := fixed; i < len(args); i++ {
			v, err := argValue(args, i, elem)
			if err != nil {
				return nil, err
			}
			in = append(in, v)
		}
	}
	return in, nil
}

// argValue converts args[i] to the handler's parameter type.
func argValue(args []any, i int, want reflect.Type) (reflect.Value, error) {
	if i >= len(args) || args[i] == nil {
		return reflect.Zero(want), nil
	}
	rv := reflect.ValueOf(args[i])
	if !rv.Type().AssignableTo(want) {
		return reflect.Value{}, &ArgumentError{
			Position: i,
			Want:     want.String(),
			Got:      rv.Type().String(),
		}
	}
	return rv, nil
}

// Get returns the declaration of the named event.
// Returns ErrNotRegistered if the event is absent.
func (r *Registry) Get(name string) (*Definition, error) {
	if name == "" {
		return nil, ErrMissingEventName
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.events[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotRegistered, name)
	}
	return def, nil
}

// Events returns every registered declaration, sorted by name.
func (r *Registry) Events() []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Definition, 0, len(r.events))
	for _, def := range r.events {
		out = append(out, def)
	}
	slices.SortFunc(out, func(a, b *Definition) int {
		return strings.Compare(a.name, b.name)
	})
	return out
}

// Description returns the named event's description.
func (r *Registry) Description(name string) (string, error) {
	def, err := r.Get(name)
	if err != nil {
		return "", err
	}
	return def.Description(), nil
}

// Params returns a copy of the named event's parameter signature.
func (r *Registry) Params(name string) ([]Param, error) {
	def, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return def.Params(), nil
}

// Registrant returns the named event's registrant, or nil.
func (r *Registry) Registrant(name string) (any, error) {
	def, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return def.Registrant(), nil
}

// Handlers returns the named event's current handlers in subscription order.
// The returned slice is a snapshot; the handler references are the exact
// values passed to Subscribe.
func (r *Registry) Handlers(name string) ([]any, error) {
	if name == "" {
		return nil, ErrMissingEventName
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.events[name]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotRegistered, name)
	}
	list := r.subs[name]
	out := make([]any, len(list))
	for i, sub := range list {
		out[i] = sub.ref
	}
	return out, nil
}

// Subscribers returns the number of current subscriptions for an event.
// Returns 0 for unknown events.
func (r *Registry) Subscribers(name string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs[name])
}
