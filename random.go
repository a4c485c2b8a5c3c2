package physbench

import "math/rand/v2"

// Source produces the uniform [0,1) scalars used to seed component values.
// It is not safe for concurrent use.
type Source struct {
	rng *rand.Rand
}

// NewSource returns a deterministic Source for the given seed.
func NewSource(seed uint64) *Source {
	return &Source{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewRandomSource returns a Source seeded from the runtime's entropy.
func NewRandomSource() *Source {
	return NewSource(rand.Uint64())
}

// Float32 returns a value in [0,1).
func (s *Source) Float32() float32 {
	return s.rng.Float32()
}

// Float3 draws x, y and z in that order.
func (s *Source) Float3() Float3 {
	x := s.rng.Float32()
	y := s.rng.Float32()
	z := s.rng.Float32()
	return Float3{X: x, Y: y, Z: z}
}
