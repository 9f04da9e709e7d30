package vals

import (
	"math"
	"math/rand"
)

// Rand is the random-number state of one interpreter session.
type Rand struct {
	r *rand.Rand
}

// NewRand returns a Rand seeded with seed.
func NewRand(seed int64) *Rand {
	return &Rand{rand.New(rand.NewSource(seed))}
}

// Next implements RND(arg). A negative argument reseeds the generator
// deterministically from the argument before drawing; any other argument draws
// the next value. The result is in [0, 1).
func (r *Rand) Next(arg float64) Value {
	if arg < 0 {
		r.r.Seed(int64(math.Float64bits(arg)))
	}
	for {
		v := Num(r.r.Float64())
		// Rounding may carry 0.9999999999 up to 1.
		if v.n < 1 {
			return v
		}
	}
}
