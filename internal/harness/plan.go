package harness

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rotisserie/eris"

	"github.com/edwinsyarief/physbench/internal/config"
)

// Plan is a list of runs read from a TOML file:
//
//	[[run]]
//	name = "small"
//	entities = 1000
//	iterations = 500
//	scenarios = ["registry/velocity", "arrays/translation"]
type Plan struct {
	Runs []PlanRun `toml:"run"`
}

// PlanRun overrides parts of the base config. Keys left out of the file keep
// the base value; iterations and scenarios also keep it when zero or empty.
type PlanRun struct {
	Name       string   `toml:"name"`
	Entities   *int     `toml:"entities"`
	Iterations int      `toml:"iterations"`
	Warmup     *int     `toml:"warmup"`
	DeltaTime  *float32 `toml:"delta_time"`
	Seed       *uint64  `toml:"seed"`
	Scenarios  []string `toml:"scenarios"`
}

// LoadPlan decodes the plan at path and rejects unknown keys and scenarios.
func LoadPlan(path string) (Plan, error) {
	var p Plan
	md, err := toml.DecodeFile(path, &p)
	if err != nil {
		return Plan{}, eris.Wrapf(err, "failed to decode plan %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Plan{}, eris.Errorf("unknown plan keys: %v", undecoded)
	}
	if len(p.Runs) == 0 {
		return Plan{}, eris.Errorf("plan %s has no runs", path)
	}
	for i, run := range p.Runs {
		if _, err := Select(run.Scenarios); err != nil {
			return Plan{}, eris.Wrapf(err, "run %d", i)
		}
	}
	return p, nil
}

// Configs applies every run on top of base, in order.
func (p Plan) Configs(base config.Config) ([]config.Config, error) {
	cfgs := make([]config.Config, 0, len(p.Runs))
	for i, run := range p.Runs {
		cfg := base
		if run.Entities != nil {
			cfg.Entities = *run.Entities
		}
		if run.Iterations != 0 {
			cfg.Iterations = run.Iterations
		}
		if run.Warmup != nil {
			cfg.Warmup = *run.Warmup
		}
		if run.DeltaTime != nil {
			cfg.DeltaTime = *run.DeltaTime
		}
		if run.Seed != nil {
			cfg.Seed = *run.Seed
		}
		if len(run.Scenarios) > 0 {
			cfg.Scenarios = strings.Join(run.Scenarios, ",")
		}
		if err := cfg.Validate(); err != nil {
			return nil, eris.Wrapf(err, "run %d (%s)", i, run.Name)
		}
		cfgs = append(cfgs, cfg)
	}
	return cfgs, nil
}
