// Package physbench is a small archetype-based Entity Component System built
// to compare two ways of integrating simple physics over large entity
// populations: a component registry queried through a join, and flat
// parallel arrays indexed directly.
//
// Features:
//   - Archetype storage with up to 256 component types and 1024-row chunks.
//   - Bitmask archetype matching for two-component joins.
//   - A linear scan join kept as a slower reference strategy.
//   - Shared update kernels usable directly on caller-owned slices.
package physbench

// Float3 is three single-precision floats laid out as x, y, z with no
// padding. It is the only data format exchanged with callers.
type Float3 struct {
	X float32
	Y float32
	Z float32
}

// AddScaled adds in*dt to f componentwise. The product is rounded to float32
// before the add so results never depend on fused multiply-add.
func (f *Float3) AddScaled(in Float3, dt float32) {
	f.X += float32(in.X * dt)
	f.Y += float32(in.Y * dt)
	f.Z += float32(in.Z * dt)
}
