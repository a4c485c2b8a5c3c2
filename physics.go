package physbench

import "unsafe"

// JoinStrategy selects how StepVelocity and StepVelocityAndTranslation find
// the entities they update.
type JoinStrategy uint8

const (
	// JoinArchetype walks the cached matching archetypes chunk by chunk and
	// runs the update kernels over whole columns.
	JoinArchetype JoinStrategy = iota
	// JoinScan walks every entity and tests its archetype mask.
	JoinScan
)

func (j JoinStrategy) String() string {
	switch j {
	case JoinArchetype:
		return "archetype"
	case JoinScan:
		return "scan"
	default:
		return "unknown"
	}
}

// joinCache holds the two joins the physics steps need, built on first use.
type joinCache struct {
	velocity        *Filter2[Acceleration, Velocity]
	translation     *Filter2[Velocity, Translation]
	velocityScan    *Scan2[Acceleration, Velocity]
	translationScan *Scan2[Velocity, Translation]
}

// Populate creates 3*count entities in three groups of count, in this order:
// {Translation, Velocity}, {Velocity, Acceleration} and
// {Translation, Velocity, Acceleration}.
//
// Every scalar is drawn in [0,1) from the registry's Source, component by
// component in the listed order and x before y before z. Calling Populate
// again appends three more groups.
//
// Parameters:
//   - count: The number of entities per group. Negative counts panic.
func (r *Registry) Populate(count int) {
	r.mustBeAlive()
	if count < 0 {
		panic("ecs: negative entity count")
	}
	src := r.source
	NewBuilder2[Translation, Velocity](r).NewEntitiesFunc(count,
		func(_ Entity, t *Translation, v *Velocity) {
			*t = Translation(src.Float3())
			*v = Velocity(src.Float3())
		})
	NewBuilder2[Velocity, Acceleration](r).NewEntitiesFunc(count,
		func(_ Entity, v *Velocity, a *Acceleration) {
			*v = Velocity(src.Float3())
			*a = Acceleration(src.Float3())
		})
	NewBuilder3[Translation, Velocity, Acceleration](r).NewEntitiesFunc(count,
		func(_ Entity, t *Translation, v *Velocity, a *Acceleration) {
			*t = Translation(src.Float3())
			*v = Velocity(src.Float3())
			*a = Acceleration(src.Float3())
		})
}

// StepVelocity applies velocity += acceleration * deltaTime to every entity
// that has both components. Entities with only one of them are untouched.
func (r *Registry) StepVelocity(deltaTime float32) {
	r.mustBeAlive()
	if r.join == JoinScan {
		r.velocityScan().Each(func(_ Entity, a *Acceleration, v *Velocity) {
			(*Float3)(v).AddScaled(Float3(*a), deltaTime)
		})
		return
	}
	r.velocityJoin().EachChunk(func(acc []Acceleration, vel []Velocity) {
		UpdateVelocity(len(vel), float3s(acc), float3s(vel), deltaTime)
	})
}

// StepVelocityAndTranslation runs StepVelocity and then applies
// translation += velocity * deltaTime to every entity that has both
// Translation and Velocity. The second pass reads the velocities the first
// pass just wrote.
func (r *Registry) StepVelocityAndTranslation(deltaTime float32) {
	r.StepVelocity(deltaTime)
	if r.join == JoinScan {
		r.translationScan().Each(func(_ Entity, v *Velocity, t *Translation) {
			(*Float3)(t).AddScaled(Float3(*v), deltaTime)
		})
		return
	}
	r.translationJoin().EachChunk(func(vel []Velocity, tr []Translation) {
		UpdateTranslation(len(tr), float3s(vel), float3s(tr), deltaTime)
	})
}

func (r *Registry) velocityJoin() *Filter2[Acceleration, Velocity] {
	if r.joins.velocity == nil {
		r.joins.velocity = NewFilter2[Acceleration, Velocity](r)
	}
	return r.joins.velocity
}

func (r *Registry) translationJoin() *Filter2[Velocity, Translation] {
	if r.joins.translation == nil {
		r.joins.translation = NewFilter2[Velocity, Translation](r)
	}
	return r.joins.translation
}

func (r *Registry) velocityScan() *Scan2[Acceleration, Velocity] {
	if r.joins.velocityScan == nil {
		r.joins.velocityScan = NewScan2[Acceleration, Velocity](r)
	}
	return r.joins.velocityScan
}

func (r *Registry) translationScan() *Scan2[Velocity, Translation] {
	if r.joins.translationScan == nil {
		r.joins.translationScan = NewScan2[Velocity, Translation](r)
	}
	return r.joins.translationScan
}

// float3s views a component column as raw vectors.
func float3s[T Translation | Velocity | Acceleration](s []T) []Float3 {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*Float3)(unsafe.Pointer(&s[0])), len(s))
}
