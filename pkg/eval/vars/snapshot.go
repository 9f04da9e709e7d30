package vars

import (
	"sort"

	"gopkg.in/yaml.v3"

	"src.abasic.dev/pkg/eval/errs"
	"src.abasic.dev/pkg/eval/vals"
)

// cell is the persisted form of a Value.
type cell struct {
	Str *string  `yaml:"s,omitempty"`
	Num *float64 `yaml:"n,omitempty"`
}

func toCell(v vals.Value) cell {
	if v.IsString() {
		s := v.Text()
		return cell{Str: &s}
	}
	f := v.Float()
	return cell{Num: &f}
}

func (c cell) value() vals.Value {
	if c.Str != nil {
		return vals.Str(*c.Str)
	}
	if c.Num != nil {
		return vals.Num(*c.Num)
	}
	return vals.Value{}
}

type arrayData struct {
	Dims  []int           `yaml:"dims,flow"`
	Cells map[string]cell `yaml:"cells,omitempty"`
}

type snapshot struct {
	Scalars map[string]cell      `yaml:"scalars,omitempty"`
	Arrays  map[string]arrayData `yaml:"arrays,omitempty"`
}

func (a *Array) data() arrayData {
	d := arrayData{Dims: a.Dims, Cells: make(map[string]cell, len(a.cells))}
	for k, v := range a.cells {
		d.Cells[k] = toCell(v)
	}
	return d
}

func (d arrayData) array(key string) (*Array, error) {
	a := newArray(d.Dims)
	for k, c := range d.Cells {
		v := c.value()
		if IsString(key) != v.IsString() {
			return nil, errs.Newf(errs.TypeMismatch, "restoring %s", key)
		}
		a.cells[k] = v
	}
	return a, nil
}

// Snapshot encodes all scalars and arrays. User functions are not included,
// since their bodies belong to program text.
func (s *Store) Snapshot() ([]byte, error) {
	snap := snapshot{
		Scalars: make(map[string]cell, len(s.scalars)),
		Arrays:  make(map[string]arrayData, len(s.arrays)),
	}
	for k, v := range s.scalars {
		snap.Scalars[k] = toCell(v)
	}
	for k, a := range s.arrays {
		snap.Arrays[k] = a.data()
	}
	return yaml.Marshal(&snap)
}

// LoadSnapshot replaces all scalars and arrays with the ones encoded in data.
func (s *Store) LoadSnapshot(data []byte) error {
	var snap snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return errs.Newf(errs.IOError, "decoding variables: %v", err)
	}
	scalars := make(map[string]vals.Value, len(snap.Scalars))
	for k, c := range snap.Scalars {
		key := Normalize(k)
		v, err := coerce(key, c.value())
		if err != nil {
			return err
		}
		scalars[key] = v
	}
	arrays := make(map[string]*Array, len(snap.Arrays))
	for k, d := range snap.Arrays {
		key := Normalize(k)
		a, err := d.array(key)
		if err != nil {
			return err
		}
		arrays[key] = a
	}
	s.scalars, s.arrays = scalars, arrays
	return nil
}

// EncodeArray encodes one array for storage on tape.
func (s *Store) EncodeArray(name string) ([]byte, error) {
	key := Normalize(name)
	a, ok := s.arrays[key]
	if !ok {
		return nil, errs.Newf(errs.BadSubscript, "array %s not dimensioned", key)
	}
	return yaml.Marshal(a.data())
}

// DecodeArray loads an array encoded by EncodeArray into the named array,
// replacing it. The stored name does not matter.
func (s *Store) DecodeArray(name string, data []byte) error {
	key := Normalize(name)
	var d arrayData
	if err := yaml.Unmarshal(data, &d); err != nil {
		return errs.Newf(errs.IOError, "decoding array: %v", err)
	}
	a, err := d.array(key)
	if err != nil {
		return err
	}
	s.arrays[key] = a
	return nil
}

// ArrayNames returns the keys of all arrays in sorted order.
func (s *Store) ArrayNames() []string {
	names := make([]string, 0, len(s.arrays))
	for k := range s.arrays {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
