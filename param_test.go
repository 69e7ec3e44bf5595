package announce

import (
	"errors"
	"testing"
	"time"

	"syreclabs.com/go/faker"
)

func init() {
	faker.Seed(time.Now().UnixNano())
}

func TestParamTypeValid(t *testing.T) {
	valid := []ParamType{TypeBoolean, TypeNumber, TypeString, TypeSymbol, TypeFunction, TypeObject}
	for _, typ := range valid {
		if !typ.Valid() {
			t.Errorf("%s should be valid", typ)
		}
	}
	invalid := []ParamType{TypeNone, "", "integer", "Number", "OBJECT"}
	for _, typ := range invalid {
		if typ.Valid() {
			t.Errorf("%q should not be valid", typ)
		}
	}
}

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		name string
		arg  any
		want ParamType
	}{
		{"nil", nil, TypeNone},
		{"bool", true, TypeBoolean},
		{"int", 42, TypeNumber},
		{"int64", int64(-1), TypeNumber},
		{"uint8", uint8(7), TypeNumber},
		{"float64", 3.14, TypeNumber},
		{"string", "hello", TypeString},
		{"symbol", Symbol("tag"), TypeSymbol},
		{"func", func() {}, TypeFunction},
		{"variadic func", func(...any) {}, TypeFunction},
		{"struct", struct{ N int }{1}, TypeObject},
		{"pointer", &struct{}{}, TypeObject},
		{"map", map[string]int{}, TypeObject},
		{"slice", []int{1, 2}, TypeObject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CategoryOf(tt.arg); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNewParam(t *testing.T) {
	p, err := NewParam("count", TypeNumber, Optional(), Describe("number of items"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "count" || p.Type != TypeNumber {
		t.Errorf("wrong param: %+v", p)
	}
	if !p.Optional {
		t.Error("optional flag not applied")
	}
	if p.Description != "number of items" {
		t.Errorf("description not applied: %q", p.Description)
	}
}

func TestNewParamDefaults(t *testing.T) {
	p, err := NewParam(faker.Lorem().Word(), TypeString)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Optional {
		t.Error("optional should default to false")
	}
	if p.Description != "" {
		t.Error("description should default to empty")
	}
}

func TestNewParamInvalid(t *testing.T) {
	tests := []struct {
		name      string
		paramName string
		typ       ParamType
	}{
		{"empty name", "", TypeString},
		{"unknown type", "x", "integer"},
		{"empty type", "x", ""},
		{"none type", "x", TypeNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewParam(tt.paramName, tt.typ); !errors.Is(err, ErrInvalidSignature) {
				t.Errorf("want ErrInvalidSignature, got %v", err)
			}
		})
	}
}
