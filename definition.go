package announce

import (
	"fmt"
)

// Definition is a named event declaration: an ordered parameter signature,
// a description, and the opaque registrant that declared it.
// Definitions are immutable once created by Register.
type Definition struct {
	name        string
	params      []Param
	description string
	registrant  any
}

// newDefinition validates and builds an event declaration.
func newDefinition(name string, params []Param, description string, registrant any) (*Definition, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty event name", ErrInvalidEvent)
	}
	seen := make(map[string]struct{}, len(params))
	optionalSeen := false
	for i, p := range params {
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("event %q parameter %d: %w", name, i, err)
		}
		if p.Optional {
			optionalSeen = true
		} else if optionalSeen {
			return nil, fmt.Errorf("%w: event %q required parameter %q at position %d",
				ErrInvalidParameterOrder, name, p.Name, i)
		}
		if _, ok := seen[p.Name]; ok {
			return nil, fmt.Errorf("%w: event %q parameter %q at position %d",
				ErrDuplicateParameter, name, p.Name, i)
		}
		seen[p.Name] = struct{}{}
	}
	def := &Definition{
		name:        name,
		description: description,
		registrant:  registrant,
	}
	if len(params) > 0 {
		def.params = make([]Param, len(params))
		copy(def.params, params)
	}
	return def, nil
}

func (d *Definition) String() string {
	return d.name
}

// Name returns the event name.
func (d *Definition) Name() string {
	return d.name
}

// Description returns the event description.
func (d *Definition) Description() string {
	return d.description
}

// Registrant returns the opaque owner supplied at registration, or nil.
func (d *Definition) Registrant() any {
	return d.registrant
}

// Params returns a copy of the declared parameter signature.
func (d *Definition) Params() []Param {
	if len(d.params) == 0 {
		return nil
	}
	out := make([]Param, len(d.params))
	copy(out, d.params)
	return out
}

// requiredCount returns the number of non-optional parameters.
func (d *Definition) requiredCount() int {
	n := 0
	for _, p := range d.params {
		if !p.Optional {
			n++
		}
	}
	return n
}

// CheckArgs validates positional arguments against the declared signature.
// A required parameter must be present and match its category. An optional
// parameter may be absent (missing or nil) but must match when present.
// Extra trailing arguments beyond the declared count are never checked.
func (d *Definition) CheckArgs(args []any) error {
	for i, p := range d.params {
		got := TypeNone
		if i < len(args) {
			got = CategoryOf(args[i])
		}
		if got == p.Type {
			continue
		}
		if p.Optional && got == TypeNone {
			continue
		}
		return &ArgumentError{
			Event:    d.name,
			Param:    p.Name,
			Position: i,
			Want:     string(p.Type),
			Got:      string(got),
		}
	}
	return nil
}
