// Package harness times the registry, array and kernel workloads.
package harness

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/edwinsyarief/physbench/internal/config"
	"github.com/edwinsyarief/physbench/internal/log"
	"github.com/edwinsyarief/physbench/internal/report"
)

// Select resolves names to scenarios, keeping the order of Scenarios. An
// empty list selects everything.
func Select(names []string) ([]Scenario, error) {
	if len(names) == 0 {
		return Scenarios, nil
	}
	want := make(map[string]bool, len(names))
	for _, name := range names {
		if _, ok := Lookup(name); !ok {
			return nil, eris.Errorf("unknown scenario %q", name)
		}
		want[name] = true
	}
	selected := make([]Scenario, 0, len(want))
	for _, s := range Scenarios {
		if want[s.Name] {
			selected = append(selected, s)
		}
	}
	return selected, nil
}

// Run executes every scenario selected by cfg and returns one result per
// scenario. Setup, warmup and teardown are not timed. Cancellation is checked
// between iterations.
func Run(ctx context.Context, cfg config.Config, logger log.Logger) ([]report.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	scenarios, err := Select(cfg.ScenarioNames())
	if err != nil {
		return nil, err
	}
	results := make([]report.Result, 0, len(scenarios))
	for _, s := range scenarios {
		res, err := runScenario(ctx, s, cfg, logger.ScenarioLogger(s.Name))
		if err != nil {
			return results, eris.Wrapf(err, "scenario %s", s.Name)
		}
		results = append(results, res)
	}
	return results, nil
}

func runScenario(ctx context.Context, s Scenario, cfg config.Config, logger log.Logger) (report.Result, error) {
	f := s.setup(cfg.Entities, cfg.Seed)
	defer f.teardown()
	f.describe(logger)

	for range cfg.Warmup {
		if err := ctx.Err(); err != nil {
			return report.Result{}, eris.Wrap(err, "cancelled during warmup")
		}
		f.step(cfg.DeltaTime)
	}

	var total time.Duration
	for range cfg.Iterations {
		if err := ctx.Err(); err != nil {
			return report.Result{}, eris.Wrap(err, "cancelled")
		}
		start := time.Now()
		f.step(cfg.DeltaTime)
		total += time.Since(start)
	}

	res := report.Result{
		Scenario:   s.Name,
		Entities:   cfg.Entities,
		Rows:       f.rows,
		Iterations: cfg.Iterations,
		Total:      total,
		PerOp:      total / time.Duration(cfg.Iterations),
	}
	if f.rows > 0 {
		res.PerRow = float64(res.PerOp.Nanoseconds()) / float64(f.rows)
	}
	logger.Info().
		Int("rows", res.Rows).
		Dur("per_op", res.PerOp).
		Float64("ns_per_row", res.PerRow).
		Msg("scenario finished")
	return res, nil
}
