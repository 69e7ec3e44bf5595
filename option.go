package announce

import (
	"log/slog"
)

// DefaultName is the registry name used when none is given. The name scopes
// the registry's logger, meter and tracer.
var DefaultName = "announce"

// options holds configuration for a registry (unexported)
type options struct {
	name            string
	logger          *slog.Logger
	validation      bool
	recoveryEnabled bool
	tracingEnabled  bool
	metricsEnabled  bool
}

// Option option function for registry configuration
type Option func(*options)

// newOptions creates options with defaults and applies provided options
func newOptions(opts ...Option) *options {
	o := &options{
		name:           DefaultName,
		logger:         slog.Default(),
		tracingEnabled: true,
		metricsEnabled: true,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithName sets the registry name.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithLogger sets a custom logger for the registry.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithValidation enables or disables publish-time argument validation.
// When enabled, Publish checks the arguments against the event's declared
// signature before any handler runs, and fails fast on a mismatch. Intended
// for development; disabled by default for production throughput.
func WithValidation(v bool) Option {
	return func(o *options) {
		o.validation = v
	}
}

// WithRecovery enables or disables panic recovery in handlers.
// When enabled, a panicking handler is caught and surfaced as a
// *HandlerPanicError from Publish; the remaining fan-out is still aborted.
// Disabled by default: a handler panic propagates to the Publish caller.
func WithRecovery(v bool) Option {
	return func(o *options) {
		o.recoveryEnabled = v
	}
}

// WithTracing enables or disables OpenTelemetry tracing for publishes.
// Default is true.
func WithTracing(v bool) Option {
	return func(o *options) {
		o.tracingEnabled = v
	}
}

// WithMetrics enables or disables OpenTelemetry metrics. Default is true.
func WithMetrics(v bool) Option {
	return func(o *options) {
		o.metricsEnabled = v
	}
}

// registerOptions holds per-event configuration (unexported)
type registerOptions struct {
	description string
	registrant  any
}

// RegisterOption option function for event registration
type RegisterOption func(*registerOptions)

func newRegisterOptions(opts ...RegisterOption) *registerOptions {
	o := &registerOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithDescription sets the event description.
func WithDescription(desc string) RegisterOption {
	return func(o *registerOptions) {
		o.description = desc
	}
}

// WithRegistrant associates an opaque owner with the event. The registrant
// is held as-is and exposed through Registrant for introspection tooling.
func WithRegistrant(registrant any) RegisterOption {
	return func(o *registerOptions) {
		o.registrant = registrant
	}
}
