package vars

import (
	"src.abasic.dev/pkg/eval/errs"
	"src.abasic.dev/pkg/eval/vals"
)

// MaxCallDepth limits nested user function calls.
const MaxCallDepth = 64

// Func is a user function defined with DEF FN. The body is opaque to this
// package; it is evaluated by the callback passed to Call.
type Func struct {
	Param string
	Body  any
}

// Define defines or redefines a user function.
func (s *Store) Define(name, param string, body any) {
	s.funcs[Normalize(name)] = &Func{Normalize(param), body}
}

// Func returns the named user function, or nil.
func (s *Store) Func(name string) *Func { return s.funcs[Normalize(name)] }

// Call calls a user function with dynamic scoping: the parameter is bound in
// the global scalar namespace while eval runs, and restored (or unbound)
// afterwards. Assignments the body makes to other variables stay visible.
func (s *Store) Call(name string, arg vals.Value, eval func(body any) (vals.Value, error)) (vals.Value, error) {
	key := Normalize(name)
	f, ok := s.funcs[key]
	if !ok {
		return vals.Value{}, errs.Newf(errs.UndefFunction, "%s", key)
	}
	if s.depth >= MaxCallDepth {
		return vals.Value{}, errs.Newf(errs.FormulaTooComplex, "%s nested too deeply", key)
	}
	saved, existed := s.scalars[f.Param]
	if err := s.Set(f.Param, arg); err != nil {
		return vals.Value{}, err
	}
	s.depth++
	defer func() {
		s.depth--
		if existed {
			s.scalars[f.Param] = saved
		} else {
			delete(s.scalars, f.Param)
		}
	}()
	return eval(f.Body)
}
