package physbench

import "reflect"

// GetComponent returns a pointer to e's component of type T, or nil when e is
// not valid in r or does not have the component. The pointer stays valid
// until a component is added to any entity of the same archetype.
func GetComponent[T any](r *Registry, e Entity) *T {
	r.mustBeAlive()
	if !r.IsValid(e) {
		return nil
	}
	id, ok := r.lookupID(reflect.TypeFor[T]())
	if !ok {
		return nil
	}
	rec := r.records[e.ID]
	a := r.archetypes[rec.archetypeIndex]
	if !a.mask.containsBit(id) {
		return nil
	}
	return (*T)(a.chunks[rec.chunkIndex].at(id, a.sizes[id], rec.row))
}

// HasComponent reports whether e has a component of type T.
func HasComponent[T any](r *Registry, e Entity) bool {
	return GetComponent[T](r, e) != nil
}

// AddComponent attaches val to e, overwriting any existing value of type T.
// Attaching a new type moves e to the archetype that includes it. Invalid
// entities are ignored.
func AddComponent[T any](r *Registry, e Entity, val T) {
	r.mustBeAlive()
	if !r.IsValid(e) {
		return
	}
	id := r.componentID(reflect.TypeFor[T]())
	rec := r.records[e.ID]
	a := r.archetypes[rec.archetypeIndex]
	if a.mask.containsBit(id) {
		*(*T)(a.chunks[rec.chunkIndex].at(id, a.sizes[id], rec.row)) = val
		return
	}
	target := r.archetypeWith(a, id)
	c, row := r.move(e, target)
	*(*T)(c.at(id, target.sizes[id], row)) = val
}
