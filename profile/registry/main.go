// Profiling:
// go build ./profile/registry
// go tool pprof -http=":8000" -nodefraction=0.001 ./registry mem.pprof

package main

import (
	"github.com/pkg/profile"

	"github.com/edwinsyarief/physbench"
)

func main() {
	rounds := 20
	iters := 1000
	entities := 100000
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(rounds, iters, entities)
	p.Stop()
}

func run(rounds, iters, numEntities int) {
	const dt = float32(1.0 / 30)
	for round := range rounds {
		r := physbench.NewRegistry(physbench.WithSeed(uint64(round)), physbench.WithCapacity(3*numEntities))
		r.Populate(numEntities)
		for range iters {
			r.StepVelocityAndTranslation(dt)
		}
		r.Destroy()
	}
}
