package announce

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewDefinition(t *testing.T) {
	params := []Param{
		{Name: "id", Type: TypeNumber, Description: "user id"},
		{Name: "name", Type: TypeString},
		{Name: "meta", Type: TypeObject, Optional: true},
	}
	def, err := newDefinition("user.created", params, "fired on signup", "auth-module")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if def.Name() != "user.created" {
		t.Errorf("wrong name: %q", def.Name())
	}
	if def.Description() != "fired on signup" {
		t.Errorf("wrong description: %q", def.Description())
	}
	if def.Registrant() != "auth-module" {
		t.Errorf("wrong registrant: %v", def.Registrant())
	}
	if !cmp.Equal(def.Params(), params) {
		t.Errorf("params diff: %s", cmp.Diff(def.Params(), params))
	}
	// Params returns a copy, mutating it must not touch the definition
	got := def.Params()
	got[0].Name = "mutated"
	if def.Params()[0].Name != "id" {
		t.Error("Params exposed internal state")
	}
}

func TestNewDefinitionEmptyName(t *testing.T) {
	if _, err := newDefinition("", nil, "", nil); !errors.Is(err, ErrInvalidEvent) {
		t.Errorf("want ErrInvalidEvent, got %v", err)
	}
}

func TestNewDefinitionBadParam(t *testing.T) {
	params := []Param{{Name: "x", Type: "float"}}
	if _, err := newDefinition("e", params, "", nil); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("want ErrInvalidSignature, got %v", err)
	}
}

func TestNewDefinitionParameterOrder(t *testing.T) {
	params := []Param{
		{Name: "x", Type: TypeNumber},
		{Name: "y", Type: TypeNumber, Optional: true},
		{Name: "z", Type: TypeString},
	}
	_, err := newDefinition("sum", params, "", nil)
	if !errors.Is(err, ErrInvalidParameterOrder) {
		t.Fatalf("want ErrInvalidParameterOrder, got %v", err)
	}
	if !strings.Contains(err.Error(), `"z"`) || !strings.Contains(err.Error(), "position 2") {
		t.Errorf("error should name the offending parameter and position: %v", err)
	}
}

func TestNewDefinitionDuplicateParameter(t *testing.T) {
	params := []Param{
		{Name: "x", Type: TypeNumber},
		{Name: "x", Type: TypeString},
	}
	_, err := newDefinition("e", params, "", nil)
	if !errors.Is(err, ErrDuplicateParameter) {
		t.Fatalf("want ErrDuplicateParameter, got %v", err)
	}
	if !strings.Contains(err.Error(), "position 1") {
		t.Errorf("error should report the offending position: %v", err)
	}
}

func TestCheckArgs(t *testing.T) {
	def, err := newDefinition("shape.changed", []Param{
		{Name: "id", Type: TypeNumber},
		{Name: "visible", Type: TypeBoolean},
		{Name: "label", Type: TypeString, Optional: true},
	}, "", nil)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []any
		ok   bool
	}{
		{"all present", []any{1, true, "box"}, true},
		{"optional absent", []any{1, true}, true},
		{"optional nil", []any{1, true, nil}, true},
		{"extra trailing args ignored", []any{1, true, "box", 9.5, struct{}{}}, true},
		{"required wrong type", []any{"one", true}, false},
		{"required missing", []any{1}, false},
		{"required nil", []any{1, nil}, false},
		{"optional present but wrong type", []any{1, true, 7}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := def.CheckArgs(tt.args)
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrArgumentMismatch) {
				t.Errorf("want ErrArgumentMismatch, got %v", err)
			}
		})
	}
}

func TestCheckArgsReportsPosition(t *testing.T) {
	def, err := newDefinition("e", []Param{
		{Name: "a", Type: TypeString},
		{Name: "b", Type: TypeNumber},
	}, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	checkErr := def.CheckArgs([]any{"ok", "not a number"})
	var argErr *ArgumentError
	if !errors.As(checkErr, &argErr) {
		t.Fatalf("want *ArgumentError, got %v", checkErr)
	}
	if argErr.Position != 1 || argErr.Param != "b" {
		t.Errorf("wrong position: %+v", argErr)
	}
	if argErr.Want != "number" || argErr.Got != "string" {
		t.Errorf("wrong categories: %+v", argErr)
	}
}

func TestCheckArgsSymbolAndFunction(t *testing.T) {
	def, err := newDefinition("e", []Param{
		{Name: "tag", Type: TypeSymbol},
		{Name: "cb", Type: TypeFunction},
	}, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := def.CheckArgs([]any{Symbol("s"), func() {}}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	// a plain string is not a symbol
	if err := def.CheckArgs([]any{"s", func() {}}); !errors.Is(err, ErrArgumentMismatch) {
		t.Errorf("want ErrArgumentMismatch, got %v", err)
	}
}

func TestCheckArgsNoParams(t *testing.T) {
	def, err := newDefinition("tick", nil, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := def.CheckArgs(nil); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := def.CheckArgs([]any{1, "anything"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
