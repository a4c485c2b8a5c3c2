package physbench

// bitmask256 is a set of up to 256 component IDs. Every archetype is keyed by
// the mask of the components it stores.
type bitmask256 [4]uint64

func (m *bitmask256) set(id uint8) {
	m[id/64] |= 1 << (id % 64)
}

// with returns a copy of m that also holds id.
func (m bitmask256) with(id uint8) bitmask256 {
	m.set(id)
	return m
}

func (m bitmask256) containsBit(id uint8) bool {
	return m[id/64]&(1<<(id%64)) != 0
}

// contains reports whether m is a superset of sub. A join matches an
// archetype when the archetype mask contains the join mask.
func (m bitmask256) contains(sub bitmask256) bool {
	for i, w := range sub {
		if m[i]&w != w {
			return false
		}
	}
	return true
}
