package physbench

// Integrate performs outputs[i] += inputs[i] * deltaTime for every i in
// [0, count), in place. Each product is rounded to float32 before the add, so
// the result matches Float3.AddScaled bit for bit.
//
// Parameters:
//   - count: The number of elements to update. Zero or less is a no-op.
//   - inputs: The rates, read only. Must hold at least count elements.
//   - outputs: The values to advance. Must hold at least count elements.
//   - deltaTime: The time step.
//
// Short slices are a caller bug and panic through the usual bounds checks.
func Integrate(count int, inputs, outputs []Float3, deltaTime float32) {
	if count <= 0 {
		return
	}
	in := inputs[:count]
	out := outputs[:count]
	for i := range out {
		a := &in[i]
		o := &out[i]
		o.X += float32(a.X * deltaTime)
		o.Y += float32(a.Y * deltaTime)
		o.Z += float32(a.Z * deltaTime)
	}
}

// UpdateVelocity integrates accelerations into velocities.
func UpdateVelocity(count int, accelerations, velocities []Float3, deltaTime float32) {
	Integrate(count, accelerations, velocities, deltaTime)
}

// UpdateTranslation integrates velocities into translations.
func UpdateTranslation(count int, velocities, translations []Float3, deltaTime float32) {
	Integrate(count, velocities, translations, deltaTime)
}
