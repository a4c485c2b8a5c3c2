package physbench

import (
	"reflect"
	"unsafe"
)

// Filter2 iterates every entity that has at least the components T1 and T2.
// It keeps the list of matching archetypes and only rebuilds it when the
// registry has created new archetypes, so an iteration costs the number of
// archetypes plus the matched rows, independent of how many other entities
// the registry holds.
type Filter2[T1 any, T2 any] struct {
	registry *Registry
	matching []*archetype
	cur      *chunk
	mask     bitmask256
	sizes    [2]uintptr
	archIdx  int    // index into matching
	chunkIdx int    // next chunk of matching[archIdx]
	row      int    // row inside cur
	version  uint32 // registry archetype version the cache was built at
	ids      [2]uint8
}

// NewFilter2 creates a new `Filter2` that iterates over all entities
// possessing at least the components T1 and T2. Either type is registered if
// the registry has not seen it yet. Matching archetypes are cached and
// rediscovered only when the registry creates a new archetype.
//
// Parameters:
//   - r: The Registry to query.
//
// Returns:
//   - A pointer to the newly created `Filter2[T1, T2]`, already Reset.
func NewFilter2[T1 any, T2 any](r *Registry) *Filter2[T1, T2] {
	r.mustBeAlive()
	id1 := r.componentID(reflect.TypeFor[T1]())
	id2 := r.componentID(reflect.TypeFor[T2]())
	if id1 == id2 {
		panic("ecs: duplicate component types in Filter2")
	}
	f := &Filter2[T1, T2]{
		registry: r,
		ids:      [2]uint8{id1, id2},
		sizes: [2]uintptr{
			r.components.specs[id1].size,
			r.components.specs[id2].size,
		},
	}
	f.mask.set(id1)
	f.mask.set(id2)
	f.refresh()
	f.Reset()
	return f
}

// refresh rebuilds the matching archetypes if the registry has changed shape.
func (f *Filter2[T1, T2]) refresh() {
	r := f.registry
	r.mustBeAlive()
	if f.version == r.archetypeVersion {
		return
	}
	f.matching = f.matching[:0]
	for _, a := range r.archetypes {
		if a.mask.contains(f.mask) {
			f.matching = append(f.matching, a)
		}
	}
	f.version = r.archetypeVersion
}

// Reset rewinds the iterator. Call it before every pass.
func (f *Filter2[T1, T2]) Reset() {
	f.refresh()
	f.archIdx = 0
	f.chunkIdx = 0
	f.row = -1
	f.cur = nil
}

// Next advances to the next matching entity and reports whether there was
// one.
//
//	f := physbench.NewFilter2[Acceleration, Velocity](r)
//	for f.Next() {
//	    a, v := f.Get()
//	    // ...
//	}
func (f *Filter2[T1, T2]) Next() bool {
	f.row++
	if f.cur != nil && f.row < f.cur.size {
		return true
	}
	for f.archIdx < len(f.matching) {
		a := f.matching[f.archIdx]
		if f.chunkIdx < len(a.chunks) {
			c := a.chunks[f.chunkIdx]
			f.chunkIdx++
			if c.size == 0 {
				continue
			}
			f.cur = c
			f.row = 0
			return true
		}
		f.archIdx++
		f.chunkIdx = 0
	}
	f.cur = nil
	return false
}

// Entity returns the current entity. Only valid after Next returned true.
func (f *Filter2[T1, T2]) Entity() Entity {
	return f.cur.entities[f.row]
}

// Get returns the current entity's components. Only valid after Next returned
// true.
func (f *Filter2[T1, T2]) Get() (*T1, *T2) {
	return (*T1)(f.cur.at(f.ids[0], f.sizes[0], f.row)),
		(*T2)(f.cur.at(f.ids[1], f.sizes[1], f.row))
}

// EachChunk calls fn once per non-empty chunk of every matching archetype with
// the two columns of that chunk. The slices alias registry storage and have
// equal length.
func (f *Filter2[T1, T2]) EachChunk(fn func(c1 []T1, c2 []T2)) {
	f.refresh()
	for _, a := range f.matching {
		for _, c := range a.chunks {
			n := c.size
			if n == 0 {
				continue
			}
			fn(unsafe.Slice((*T1)(c.columns[f.ids[0]]), n),
				unsafe.Slice((*T2)(c.columns[f.ids[1]]), n))
		}
	}
}

// Count returns the size of the match set.
func (f *Filter2[T1, T2]) Count() int {
	f.refresh()
	n := 0
	for _, a := range f.matching {
		n += a.size
	}
	return n
}

// Entities returns a new slice with every matching entity in iteration order.
func (f *Filter2[T1, T2]) Entities() []Entity {
	f.refresh()
	ents := make([]Entity, 0, f.Count())
	for _, a := range f.matching {
		for _, c := range a.chunks {
			ents = append(ents, c.entities[:c.size]...)
		}
	}
	return ents
}
