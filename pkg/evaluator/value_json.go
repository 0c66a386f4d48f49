package evaluator

import (
	"encoding/json"
)

// ValueToJSON marshals a Value to JSON bytes: integers as numbers,
// booleans as JSON booleans.
func ValueToJSON(v Value) ([]byte, error) {
	return json.Marshal(valueToRaw(v))
}

func valueToRaw(v Value) any {
	switch val := v.(type) {
	case IntValue:
		return val.Value
	case BoolValue:
		return val.Value
	}
	return nil
}

// ValueToJSONString is a convenience that returns a string.
func ValueToJSONString(v Value) string {
	b, err := ValueToJSON(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

type bindingJSON struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// EnvToJSON marshals an environment as a list of bindings, oldest first.
func EnvToJSON(env *Env) ([]byte, error) {
	items := make([]bindingJSON, 0, env.Len())
	for _, b := range env.Bindings() {
		items = append(items, bindingJSON{Name: b.Name, Value: valueToRaw(b.Value)})
	}
	return json.Marshal(items)
}
