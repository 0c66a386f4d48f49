package evaluator

import (
	"strings"

	"github.com/samber/lo"
	"github.com/thomasrohde/evalml/pkg/diagnostics"
)

// Binding is a single name/value pair of an environment.
type Binding struct {
	Name  string
	Value Value
}

func (b Binding) String() string {
	return b.Name + " = " + b.Value.String()
}

// Env is a persistent environment, most recent binding first.
// The nil *Env is the empty environment. Extending an environment never
// mutates it, so environments may be shared freely.
type Env struct {
	binding Binding
	rest    *Env
}

// Empty returns the environment with no bindings.
func Empty() *Env {
	return nil
}

// Bind returns a new environment with name bound in front of e.
func (e *Env) Bind(name string, val Value) *Env {
	return &Env{binding: Binding{Name: name, Value: val}, rest: e}
}

// IsEmpty reports whether e has no bindings.
func (e *Env) IsEmpty() bool {
	return e == nil
}

// Len returns the number of bindings, shadowed ones included.
func (e *Env) Len() int {
	n := 0
	for cur := e; cur != nil; cur = cur.rest {
		n++
	}
	return n
}

// MostRecent returns the front binding.
func (e *Env) MostRecent() (Binding, error) {
	if e == nil {
		return Binding{}, &RuntimeError{
			Code:    diagnostics.EEmptyEnv,
			Message: "environment is empty",
		}
	}
	return e.binding, nil
}

// WithoutMostRecent returns e minus its front binding. The empty
// environment stays empty.
func (e *Env) WithoutMostRecent() *Env {
	if e == nil {
		return nil
	}
	return e.rest
}

// Lookup returns the most recent value bound to name.
func (e *Env) Lookup(name string) (Value, bool) {
	for cur := e; cur != nil; cur = cur.rest {
		if cur.binding.Name == name {
			return cur.binding.Value, true
		}
	}
	return nil, false
}

// Bindings returns all bindings, oldest first.
func (e *Env) Bindings() []Binding {
	var out []Binding
	for cur := e; cur != nil; cur = cur.rest {
		out = append(out, cur.binding)
	}
	return lo.Reverse(out)
}

// String renders e as "x = 1, y = 2", oldest binding first.
func (e *Env) String() string {
	return strings.Join(lo.Map(e.Bindings(), func(b Binding, _ int) string {
		return b.String()
	}), ", ")
}
