package announce

import (
	"fmt"
	"reflect"
)

// ParamType is the runtime category a published argument must fall into.
// The set of valid tags is closed; anything else fails signature validation.
type ParamType string

const (
	// TypeBoolean matches bool values.
	TypeBoolean ParamType = "boolean"
	// TypeNumber matches all integer and floating point values.
	TypeNumber ParamType = "number"
	// TypeString matches string values other than Symbol.
	TypeString ParamType = "string"
	// TypeSymbol matches values of the Symbol type.
	TypeSymbol ParamType = "symbol"
	// TypeFunction matches function values.
	TypeFunction ParamType = "function"
	// TypeObject matches everything else: maps, slices, structs, pointers.
	TypeObject ParamType = "object"

	// TypeNone is reported by CategoryOf for nil or absent arguments.
	// It is not a valid declaration tag.
	TypeNone ParamType = "nil"
)

// Valid reports whether t is one of the closed set of declaration tags.
func (t ParamType) Valid() bool {
	switch t {
	case TypeBoolean, TypeNumber, TypeString, TypeSymbol, TypeFunction, TypeObject:
		return true
	}
	return false
}

func (t ParamType) String() string {
	return string(t)
}

// Symbol is a distinct string type for arguments declared as TypeSymbol.
// Plain strings categorize as TypeString; Symbol values as TypeSymbol.
type Symbol string

// CategoryOf returns the ParamType category of a runtime value.
// Returns TypeNone for nil.
func CategoryOf(v any) ParamType {
	if v == nil {
		return TypeNone
	}
	if _, ok := v.(Symbol); ok {
		return TypeSymbol
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return TypeBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return TypeNumber
	case reflect.String:
		return TypeString
	case reflect.Func:
		return TypeFunction
	default:
		return TypeObject
	}
}

// Param declares one expected argument of an event: its name, runtime
// category, whether it may be omitted, and a free-form description.
// Raw Param literals passed to Register are validated the same way
// NewParam validates.
type Param struct {
	Name        string    `json:"name"`
	Type        ParamType `json:"type"`
	Optional    bool      `json:"optional,omitempty"`
	Description string    `json:"description,omitempty"`
}

// ParamOption option function for parameter construction
type ParamOption func(*Param)

// Optional marks the parameter as omittable. An optional parameter may be
// absent at publish time; if present it must still match its declared type.
func Optional() ParamOption {
	return func(p *Param) {
		p.Optional = true
	}
}

// Describe sets the parameter description.
func Describe(desc string) ParamOption {
	return func(p *Param) {
		p.Description = desc
	}
}

// NewParam builds a validated parameter signature.
// Returns an error wrapping ErrInvalidSignature if the name is empty or the
// type is not in the closed tag set.
func NewParam(name string, typ ParamType, opts ...ParamOption) (Param, error) {
	p := Param{Name: name, Type: typ}
	for _, opt := range opts {
		opt(&p)
	}
	if err := p.validate(); err != nil {
		return Param{}, err
	}
	return p, nil
}

// validate checks the invariants shared by NewParam and raw descriptors.
func (p Param) validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: empty parameter name", ErrInvalidSignature)
	}
	if !p.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q for parameter %q", ErrInvalidSignature, p.Type, p.Name)
	}
	return nil
}
