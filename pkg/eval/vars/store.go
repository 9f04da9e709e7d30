package vars

import (
	"math"

	"src.abasic.dev/pkg/eval/errs"
	"src.abasic.dev/pkg/eval/vals"
)

// Store holds all variables of one interpreter session. Every method accepts
// either raw source names or already normalized keys.
type Store struct {
	scalars map[string]vals.Value
	arrays  map[string]*Array
	funcs   map[string]*Func
	depth   int
}

// NewStore returns an empty Store.
func NewStore() *Store {
	s := &Store{}
	s.Clear()
	return s
}

// Clear removes all scalars, arrays and functions.
func (s *Store) Clear() {
	s.scalars = make(map[string]vals.Value)
	s.arrays = make(map[string]*Array)
	s.funcs = make(map[string]*Func)
	s.depth = 0
}

// Scalar returns a Var for the scalar variable with the given name.
func (s *Store) Scalar(name string) Var { return scalarVar{s, Normalize(name)} }

// Get returns the value of a scalar. Uninitialized variables read as 0 or "".
func (s *Store) Get(name string) vals.Value {
	key := Normalize(name)
	if v, ok := s.scalars[key]; ok {
		return v
	}
	return vals.Zero(IsString(key))
}

// Set assigns a scalar, converting the value for integer variables.
func (s *Store) Set(name string, v vals.Value) error {
	key := Normalize(name)
	v, err := coerce(key, v)
	if err != nil {
		return err
	}
	s.scalars[key] = v
	return nil
}

// Names returns the keys of all assigned scalars.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.scalars))
	for k := range s.scalars {
		names = append(names, k)
	}
	return names
}

// coerce checks that v has the type the key demands and applies the integer
// conversion: round to nearest, then clamp to the 16-bit signed range.
func coerce(key string, v vals.Value) (vals.Value, error) {
	if IsString(key) != v.IsString() {
		return vals.Value{}, errs.Newf(errs.TypeMismatch, "assigning %v to %s", v, key)
	}
	if IsInt(key) {
		f := math.Round(v.Float())
		f = math.Max(math.MinInt16, math.Min(math.MaxInt16, f))
		return vals.Num(f), nil
	}
	return v, nil
}
