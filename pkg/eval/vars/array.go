package vars

import (
	"strconv"
	"strings"

	"src.abasic.dev/pkg/eval/errs"
	"src.abasic.dev/pkg/eval/vals"
)

// DefaultBound is the upper bound of each axis of an array that is used
// without being dimensioned.
const DefaultBound = 10

// Array is a sparse array. Only written elements are stored.
type Array struct {
	// Dims holds the inclusive upper bound of each axis.
	Dims  []int
	cells map[string]vals.Value
}

func newArray(dims []int) *Array {
	return &Array{append([]int(nil), dims...), make(map[string]vals.Value)}
}

func cellKey(idx []int) string {
	var sb strings.Builder
	for i, n := range idx {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(n))
	}
	return sb.String()
}

func (a *Array) check(key string, idx []int) error {
	if len(idx) != len(a.Dims) {
		return errs.Newf(errs.BadSubscript, "%s has %d dimensions, got %d subscripts",
			key, len(a.Dims), len(idx))
	}
	for i, n := range idx {
		if n < 0 || n > a.Dims[i] {
			return errs.Newf(errs.BadSubscript, "%s(%s)", key, cellKey(idx))
		}
	}
	return nil
}

// Dim creates the named array with the given inclusive bounds. Dimensioning an
// existing array replaces it, discarding its elements.
func (s *Store) Dim(name string, dims []int) error {
	key := Normalize(name)
	for _, d := range dims {
		if d < 0 || d > 32767 {
			return errs.Newf(errs.IllegalQuantity, "DIM %s(%d)", key, d)
		}
	}
	s.arrays[key] = newArray(dims)
	return nil
}

// HasArray reports whether the named array exists.
func (s *Store) HasArray(name string) bool {
	_, ok := s.arrays[Normalize(name)]
	return ok
}

// Array returns the named array, or nil.
func (s *Store) Array(name string) *Array { return s.arrays[Normalize(name)] }

// array returns the named array, creating it with DefaultBound on each of
// naxes axes if it does not exist.
func (s *Store) array(key string, naxes int) *Array {
	a, ok := s.arrays[key]
	if !ok {
		dims := make([]int, naxes)
		for i := range dims {
			dims[i] = DefaultBound
		}
		a = newArray(dims)
		s.arrays[key] = a
	}
	return a
}

// GetElem reads an array element.
func (s *Store) GetElem(name string, idx []int) (vals.Value, error) {
	key := Normalize(name)
	a := s.array(key, len(idx))
	if err := a.check(key, idx); err != nil {
		return vals.Value{}, err
	}
	if v, ok := a.cells[cellKey(idx)]; ok {
		return v, nil
	}
	return vals.Zero(IsString(key)), nil
}

// SetElem writes an array element.
func (s *Store) SetElem(name string, idx []int, v vals.Value) error {
	key := Normalize(name)
	a := s.array(key, len(idx))
	if err := a.check(key, idx); err != nil {
		return err
	}
	v, err := coerce(key, v)
	if err != nil {
		return err
	}
	a.cells[cellKey(idx)] = v
	return nil
}

// Elem returns a Var for an array element after checking the subscripts.
func (s *Store) Elem(name string, idx []int) (Var, error) {
	key := Normalize(name)
	if err := s.array(key, len(idx)).check(key, idx); err != nil {
		return nil, err
	}
	return elemVar{s, key, append([]int(nil), idx...)}, nil
}
