package physbench

// Arrays is the structure-of-arrays baseline: velocities and translations
// share an index and nothing else. There is no entity identity and no
// acceleration column.
type Arrays struct {
	// Velocities and Translations always have the same length.
	Velocities   []Float3
	Translations []Float3
	destroyed    bool
}

// NewArrays allocates count velocities and translations with every scalar
// drawn from src in [0,1). For each index the velocity is drawn before the
// translation. A nil src uses a runtime-seeded Source.
func NewArrays(count int, src *Source) *Arrays {
	if count < 0 {
		panic("ecs: negative array count")
	}
	if src == nil {
		src = NewRandomSource()
	}
	a := &Arrays{
		Velocities:   make([]Float3, count),
		Translations: make([]Float3, count),
	}
	for i := range count {
		a.Velocities[i] = src.Float3()
		a.Translations[i] = src.Float3()
	}
	return a
}

// NewArraysFrom builds a store from literal values. The slices are copied.
func NewArraysFrom(velocities, translations []Float3) *Arrays {
	if len(velocities) != len(translations) {
		panic("ecs: velocity and translation lengths differ")
	}
	a := &Arrays{
		Velocities:   make([]Float3, len(velocities)),
		Translations: make([]Float3, len(translations)),
	}
	copy(a.Velocities, velocities)
	copy(a.Translations, translations)
	return a
}

// Len returns the number of slots.
func (a *Arrays) Len() int {
	a.mustBeAlive()
	return len(a.Translations)
}

// Update performs translation[i] += velocity[i] * deltaTime for every slot.
func (a *Arrays) Update(deltaTime float32) {
	a.mustBeAlive()
	UpdateTranslation(len(a.Translations), a.Velocities, a.Translations, deltaTime)
}

// Destroy releases both arrays. The store must not be used afterwards.
func (a *Arrays) Destroy() {
	a.mustBeAlive()
	a.Velocities = nil
	a.Translations = nil
	a.destroyed = true
}

func (a *Arrays) mustBeAlive() {
	if a.destroyed {
		panic("ecs: arrays used after destroy")
	}
}
