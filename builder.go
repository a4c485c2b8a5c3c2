package physbench

import "reflect"

// Builder2 creates entities directly in the archetype {T1, T2}, skipping the
// archetype moves that AddComponent would cause.
type Builder2[T1 any, T2 any] struct {
	registry *Registry
	arch     *archetype
	ids      [2]uint8
	sizes    [2]uintptr
}

// NewBuilder2 resolves and caches the archetype for T1 and T2.
func NewBuilder2[T1 any, T2 any](r *Registry) *Builder2[T1, T2] {
	r.mustBeAlive()
	id1 := r.componentID(reflect.TypeFor[T1]())
	id2 := r.componentID(reflect.TypeFor[T2]())
	if id1 == id2 {
		panic("ecs: duplicate component types in Builder2")
	}
	var mask bitmask256
	mask.set(id1)
	mask.set(id2)
	specs := []compSpec{r.components.specs[id1], r.components.specs[id2]}
	a := r.archetypeFor(mask, specs)
	return &Builder2[T1, T2]{
		registry: r,
		arch:     a,
		ids:      [2]uint8{id1, id2},
		sizes:    [2]uintptr{a.sizes[id1], a.sizes[id2]},
	}
}

// NewEntity creates one entity holding v1 and v2.
func (b *Builder2[T1, T2]) NewEntity(v1 T1, v2 T2) Entity {
	var ent Entity
	b.NewEntitiesFunc(1, func(e Entity, c1 *T1, c2 *T2) {
		ent = e
		*c1 = v1
		*c2 = v2
	})
	return ent
}

// NewEntitiesFunc creates count entities and calls fill once per entity, in
// creation order, with pointers to its zeroed components.
func (b *Builder2[T1, T2]) NewEntitiesFunc(count int, fill func(e Entity, c1 *T1, c2 *T2)) {
	b.registry.mustBeAlive()
	if count <= 0 {
		return
	}
	b.registry.spawn(b.arch, count, func(c *chunk, row int) {
		if fill == nil {
			return
		}
		fill(c.entities[row],
			(*T1)(c.at(b.ids[0], b.sizes[0], row)),
			(*T2)(c.at(b.ids[1], b.sizes[1], row)))
	})
}

// Builder3 creates entities directly in the archetype {T1, T2, T3}.
type Builder3[T1 any, T2 any, T3 any] struct {
	registry *Registry
	arch     *archetype
	ids      [3]uint8
	sizes    [3]uintptr
}

// NewBuilder3 resolves and caches the archetype for T1, T2 and T3.
func NewBuilder3[T1 any, T2 any, T3 any](r *Registry) *Builder3[T1, T2, T3] {
	r.mustBeAlive()
	id1 := r.componentID(reflect.TypeFor[T1]())
	id2 := r.componentID(reflect.TypeFor[T2]())
	id3 := r.componentID(reflect.TypeFor[T3]())
	if id1 == id2 || id1 == id3 || id2 == id3 {
		panic("ecs: duplicate component types in Builder3")
	}
	var mask bitmask256
	mask.set(id1)
	mask.set(id2)
	mask.set(id3)
	specs := []compSpec{r.components.specs[id1], r.components.specs[id2], r.components.specs[id3]}
	a := r.archetypeFor(mask, specs)
	return &Builder3[T1, T2, T3]{
		registry: r,
		arch:     a,
		ids:      [3]uint8{id1, id2, id3},
		sizes:    [3]uintptr{a.sizes[id1], a.sizes[id2], a.sizes[id3]},
	}
}

// NewEntity creates one entity holding v1, v2 and v3.
func (b *Builder3[T1, T2, T3]) NewEntity(v1 T1, v2 T2, v3 T3) Entity {
	var ent Entity
	b.NewEntitiesFunc(1, func(e Entity, c1 *T1, c2 *T2, c3 *T3) {
		ent = e
		*c1 = v1
		*c2 = v2
		*c3 = v3
	})
	return ent
}

// NewEntitiesFunc creates count entities and calls fill once per entity, in
// creation order, with pointers to its zeroed components.
func (b *Builder3[T1, T2, T3]) NewEntitiesFunc(count int, fill func(e Entity, c1 *T1, c2 *T2, c3 *T3)) {
	b.registry.mustBeAlive()
	if count <= 0 {
		return
	}
	b.registry.spawn(b.arch, count, func(c *chunk, row int) {
		if fill == nil {
			return
		}
		fill(c.entities[row],
			(*T1)(c.at(b.ids[0], b.sizes[0], row)),
			(*T2)(c.at(b.ids[1], b.sizes[1], row)),
			(*T3)(c.at(b.ids[2], b.sizes[2], row)))
	})
}
