package evaluator_test

import (
	"testing"

	"github.com/thomasrohde/evalml/pkg/evaluator"
)

func TestValueString(t *testing.T) {
	tests := []struct {
		value evaluator.Value
		want  string
	}{
		{evaluator.NewInt(0), "0"},
		{evaluator.NewInt(-42), "-42"},
		{evaluator.NewBool(true), "true"},
		{evaluator.NewBool(false), "false"},
	}
	for _, tt := range tests {
		if got := tt.value.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestTypeName(t *testing.T) {
	if got := evaluator.TypeName(evaluator.NewInt(1)); got != "int" {
		t.Errorf("got %q, want int", got)
	}
	if got := evaluator.TypeName(evaluator.NewBool(true)); got != "bool" {
		t.Errorf("got %q, want bool", got)
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b evaluator.Value
		want bool
	}{
		{evaluator.NewInt(1), evaluator.NewInt(1), true},
		{evaluator.NewInt(1), evaluator.NewInt(2), false},
		{evaluator.NewBool(true), evaluator.NewBool(true), true},
		{evaluator.NewInt(1), evaluator.NewBool(true), false},
		{nil, nil, true},
		{nil, evaluator.NewInt(0), false},
	}
	for i, tt := range tests {
		if got := evaluator.Equal(tt.a, tt.b); got != tt.want {
			t.Errorf("test %d: Equal(%v, %v) = %v, want %v", i, tt.a, tt.b, got, tt.want)
		}
	}
}

func TestValueToJSON(t *testing.T) {
	if got := evaluator.ValueToJSONString(evaluator.NewInt(-7)); got != "-7" {
		t.Errorf("got %s, want -7", got)
	}
	if got := evaluator.ValueToJSONString(evaluator.NewBool(false)); got != "false" {
		t.Errorf("got %s, want false", got)
	}
}

func TestEnvToJSON(t *testing.T) {
	env := evaluator.Empty().Bind("x", evaluator.NewInt(1)).Bind("b", evaluator.NewBool(true))
	b, err := evaluator.EnvToJSON(env)
	if err != nil {
		t.Fatal(err)
	}
	want := `[{"name":"x","value":1},{"name":"b","value":true}]`
	if string(b) != want {
		t.Errorf("got %s, want %s", b, want)
	}

	b, err = evaluator.EnvToJSON(evaluator.Empty())
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "[]" {
		t.Errorf("got %s, want []", b)
	}
}
