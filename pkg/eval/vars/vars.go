// Package vars contains the variable store: scalars, sparse arrays and user
// functions, all keyed by normalized names.
package vars

import "src.abasic.dev/pkg/eval/vals"

// Var is an assignable location: a scalar variable or an array element.
type Var interface {
	Get() vals.Value
	Set(v vals.Value) error
}

type scalarVar struct {
	s   *Store
	key string
}

func (v scalarVar) Get() vals.Value        { return v.s.Get(v.key) }
func (v scalarVar) Set(x vals.Value) error { return v.s.Set(v.key, x) }

type elemVar struct {
	s   *Store
	key string
	idx []int
}

func (v elemVar) Get() vals.Value {
	x, _ := v.s.GetElem(v.key, v.idx)
	return x
}

func (v elemVar) Set(x vals.Value) error { return v.s.SetElem(v.key, v.idx, x) }
