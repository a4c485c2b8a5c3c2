package harness

import (
	"github.com/rs/zerolog"

	"github.com/edwinsyarief/physbench"
	"github.com/edwinsyarief/physbench/internal/log"
)

// Scenario names.
const (
	RegistryVelocity            = "registry/velocity"
	RegistryVelocityTranslation = "registry/velocity-translation"
	ScanVelocity                = "scan/velocity"
	ScanVelocityTranslation     = "scan/velocity-translation"
	ArraysTranslation           = "arrays/translation"
	KernelVelocity              = "kernel/velocity"
	KernelTranslation           = "kernel/translation"
)

// fixture is a prepared store plus the operation that gets timed.
type fixture struct {
	registry *physbench.Registry // nil for array and kernel scenarios
	step     func(dt float32)
	teardown func()
	rows     int // rows the step touches
}

// Scenario describes how to build one timed workload for n entities per
// registry group.
type Scenario struct {
	Name        string
	Description string
	setup       func(n int, seed uint64) fixture
}

// Scenarios lists every scenario in run order.
var Scenarios = []Scenario{
	{
		Name:        RegistryVelocity,
		Description: "archetype join over {Acceleration, Velocity}",
		setup: func(n int, seed uint64) fixture {
			return registryFixture(n, seed, physbench.JoinArchetype, false)
		},
	},
	{
		Name:        RegistryVelocityTranslation,
		Description: "archetype joins over {Acceleration, Velocity} then {Velocity, Translation}",
		setup: func(n int, seed uint64) fixture {
			return registryFixture(n, seed, physbench.JoinArchetype, true)
		},
	},
	{
		Name:        ScanVelocity,
		Description: "linear scan join over {Acceleration, Velocity}",
		setup: func(n int, seed uint64) fixture {
			return registryFixture(n, seed, physbench.JoinScan, false)
		},
	},
	{
		Name:        ScanVelocityTranslation,
		Description: "linear scan joins over {Acceleration, Velocity} then {Velocity, Translation}",
		setup: func(n int, seed uint64) fixture {
			return registryFixture(n, seed, physbench.JoinScan, true)
		},
	},
	{
		Name:        ArraysTranslation,
		Description: "flat arrays, translation += velocity*dt over 2N slots",
		setup: func(n int, seed uint64) fixture {
			a := physbench.NewArrays(2*n, physbench.NewSource(seed))
			return fixture{step: a.Update, teardown: a.Destroy, rows: 2 * n}
		},
	},
	{
		Name:        KernelVelocity,
		Description: "raw kernel, velocity += acceleration*dt over 2N vectors",
		setup: func(n int, seed uint64) fixture {
			return kernelFixture(2*n, seed, physbench.UpdateVelocity)
		},
	},
	{
		Name:        KernelTranslation,
		Description: "raw kernel, translation += velocity*dt over 2N vectors",
		setup: func(n int, seed uint64) fixture {
			return kernelFixture(2*n, seed, physbench.UpdateTranslation)
		},
	},
}

// Lookup returns the scenario called name.
func Lookup(name string) (Scenario, bool) {
	for _, s := range Scenarios {
		if s.Name == name {
			return s, true
		}
	}
	return Scenario{}, false
}

func registryFixture(n int, seed uint64, join physbench.JoinStrategy, translate bool) fixture {
	r := physbench.NewRegistry(
		physbench.WithSeed(seed),
		physbench.WithCapacity(3*n),
		physbench.WithJoin(join),
	)
	r.Populate(n)
	f := fixture{registry: r, teardown: r.Destroy}
	if translate {
		f.step = r.StepVelocityAndTranslation
		f.rows = 4 * n // groups 2+3, then groups 1+3
	} else {
		f.step = r.StepVelocity
		f.rows = 2 * n
	}
	return f
}

func kernelFixture(count int, seed uint64, kernel func(int, []physbench.Float3, []physbench.Float3, float32)) fixture {
	src := physbench.NewSource(seed)
	in := make([]physbench.Float3, count)
	out := make([]physbench.Float3, count)
	for i := range count {
		in[i] = src.Float3()
		out[i] = src.Float3()
	}
	return fixture{
		step: func(dt float32) {
			kernel(count, in, out, dt)
		},
		teardown: func() {},
		rows:     count,
	}
}

// describe logs the registry layout when the fixture has one.
func (f fixture) describe(logger log.Logger) {
	if f.registry != nil {
		logger.LogRegistry(f.registry, zerolog.DebugLevel)
	}
}
