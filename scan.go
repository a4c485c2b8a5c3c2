package physbench

import "reflect"

// Scan2 is the linear join over T1 and T2: it walks every entity of the
// registry in ID order and tests its archetype mask. It matches exactly the
// entities Filter2 matches but costs the total entity count, which makes it
// the reference point for the archetype join.
type Scan2[T1 any, T2 any] struct {
	registry *Registry
	mask     bitmask256
	ids      [2]uint8
}

// NewScan2 creates a linear join over T1 and T2.
func NewScan2[T1 any, T2 any](r *Registry) *Scan2[T1, T2] {
	r.mustBeAlive()
	id1 := r.componentID(reflect.TypeFor[T1]())
	id2 := r.componentID(reflect.TypeFor[T2]())
	if id1 == id2 {
		panic("ecs: duplicate component types in Scan2")
	}
	s := &Scan2[T1, T2]{registry: r, ids: [2]uint8{id1, id2}}
	s.mask.set(id1)
	s.mask.set(id2)
	return s
}

// Each calls fn for every matching entity in ID order.
func (s *Scan2[T1, T2]) Each(fn func(e Entity, c1 *T1, c2 *T2)) {
	r := s.registry
	r.mustBeAlive()
	id1, id2 := s.ids[0], s.ids[1]
	for i := range r.records {
		rec := &r.records[i]
		a := r.archetypes[rec.archetypeIndex]
		if !a.mask.contains(s.mask) {
			continue
		}
		c := a.chunks[rec.chunkIndex]
		fn(c.entities[rec.row],
			(*T1)(c.at(id1, a.sizes[id1], rec.row)),
			(*T2)(c.at(id2, a.sizes[id2], rec.row)))
	}
}

// Count returns the size of the match set.
func (s *Scan2[T1, T2]) Count() int {
	r := s.registry
	r.mustBeAlive()
	n := 0
	for i := range r.records {
		if r.archetypes[r.records[i].archetypeIndex].mask.contains(s.mask) {
			n++
		}
	}
	return n
}
