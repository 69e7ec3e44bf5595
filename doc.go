// Package announce provides an in-process, topic-based publish/subscribe
// registry with typed parameter signatures.
//
// Callers declare named events with an ordered list of parameter
// signatures, other callers attach handler functions to those events, and a
// publisher invokes all attached handlers synchronously, in subscription
// order, optionally validating the arguments against the declared signature
// first.
//
// Basic example:
//
//	reg := announce.New(announce.WithValidation(true))
//
//	_, err := reg.Register("user.renamed", []announce.Param{
//	    {Name: "id", Type: announce.TypeNumber},
//	    {Name: "name", Type: announce.TypeString},
//	    {Name: "note", Type: announce.TypeString, Optional: true},
//	}, announce.WithDescription("fired after a user changes their name"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	handler, err := reg.Subscribe("user.renamed", func(id int, name string) {
//	    fmt.Printf("user %d is now %q\n", id, name)
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if _, err := reg.Publish(ctx, "user.renamed", 42, "john"); err != nil {
//	    log.Fatal(err)
//	}
//
//	reg.Unsubscribe("user.renamed", handler)
//
// Parameter signatures:
// Each Param declares a name, a runtime category from a closed tag set
// (boolean, number, string, symbol, function, object), an optional flag and
// a description. Once a parameter is optional, every parameter after it
// must be optional too, and parameter names must be unique per event.
//
// Validation modes:
// A registry built with WithValidation(true) checks published arguments
// against the declared signature before any handler runs and fails fast
// with an *ArgumentError. Without it, Publish skips the signature check
// entirely. The mode is fixed at construction.
//
// Dispatch semantics:
// Publish runs every current handler to completion on the calling
// goroutine, in subscription order, ignoring handler return values.
// The subscription list is snapshotted when Publish starts, so a handler
// that subscribes or unsubscribes during dispatch only affects later
// publishes. A panicking handler aborts the remaining fan-out; with
// WithRecovery(true) the panic is returned as a *HandlerPanicError instead
// of propagating.
//
// Registry Options:
//   - WithValidation: enable publish-time argument validation. Default is false.
//   - WithRecovery: recover handler panics into errors. Default is false.
//   - WithTracing: enable/disable OpenTelemetry tracing. Default is true.
//   - WithMetrics: enable/disable OpenTelemetry metrics. Default is true.
//   - WithLogger: set a logger for the registry.
//   - WithName: set the registry name used for logger/meter/tracer scoping.
//
// There is no process-wide default registry: construct a Registry
// explicitly and hand it to the components that need it.
package announce
