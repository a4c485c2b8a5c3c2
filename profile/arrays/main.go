// Profiling:
// go build ./profile/arrays
// go tool pprof -http=":8000" -nodefraction=0.001 ./arrays cpu.pprof

package main

import (
	"github.com/pkg/profile"

	"github.com/edwinsyarief/physbench"
)

func main() {
	rounds := 20
	iters := 1000
	entities := 200000
	p := profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	run(rounds, iters, entities)
	p.Stop()
}

func run(rounds, iters, count int) {
	const dt = float32(1.0 / 30)
	for round := range rounds {
		a := physbench.NewArrays(count, physbench.NewSource(uint64(round)))
		for range iters {
			a.Update(dt)
		}
		a.Destroy()
	}
}
