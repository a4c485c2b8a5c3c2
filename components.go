package physbench

// Translation is the position of an entity.
type Translation Float3

// Velocity is the rate of change of Translation.
type Velocity Float3

// Acceleration is the rate of change of Velocity.
type Acceleration Float3
