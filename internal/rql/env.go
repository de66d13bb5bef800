package rql

import (
	"fmt"

	"github.com/roach88/filterql/internal/value"
)

// Env maps dependency names to their values. It is built once per
// translation and never modified afterwards.
type Env struct {
	names []string
	vals  map[string]value.Value
}

// EmptyEnv returns an environment with no bindings.
func EmptyEnv() *Env {
	return &Env{vals: map[string]value.Value{}}
}

// BindArgs zips names against values by position.
//
// Extra values are ignored. Names without a value stay unbound, so using
// them in a filter fails with UNDEFINED_ARGUMENT. Every supplied value must
// convert to a scalar (string, number, boolean or null); anything else fails
// with INVALID_ARGUMENT.
func BindArgs(names []string, values []any) (*Env, error) {
	env := &Env{
		names: append([]string(nil), names...),
		vals:  make(map[string]value.Value, len(names)),
	}

	for i, name := range names {
		if _, dup := env.vals[name]; dup {
			return nil, &Error{
				Code:    ErrCodeParse,
				Message: fmt.Sprintf("duplicate dependency name %q", name),
				Name:    name,
			}
		}
		if i >= len(values) {
			continue
		}

		v, err := value.FromGo(values[i])
		if err != nil {
			return nil, &Error{
				Code:    ErrCodeInvalidArgument,
				Message: fmt.Sprintf("dependency %q: %v", name, err),
				Name:    name,
				Err:     err,
			}
		}
		if !value.IsScalar(v) {
			return nil, &Error{
				Code:    ErrCodeInvalidArgument,
				Message: fmt.Sprintf("dependency %q is an %s; only strings, numbers, booleans and null can be used", name, value.TypeName(v)),
				Name:    name,
			}
		}
		env.vals[name] = v
	}

	return env, nil
}

// Lookup returns the value bound to name.
func (e *Env) Lookup(name string) (value.Value, bool) {
	if e == nil {
		return nil, false
	}
	v, ok := e.vals[name]
	return v, ok
}

// Values returns the bound values in declaration order.
func (e *Env) Values() []value.Value {
	if e == nil {
		return nil
	}
	out := make([]value.Value, 0, len(e.vals))
	for _, name := range e.names {
		if v, ok := e.vals[name]; ok {
			out = append(out, v)
		}
	}
	return out
}
