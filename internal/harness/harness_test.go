package harness

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edwinsyarief/physbench"
	"github.com/edwinsyarief/physbench/internal/config"
	"github.com/edwinsyarief/physbench/internal/log"
)

func smallConfig() config.Config {
	cfg := config.Default()
	cfg.Entities = 64
	cfg.Iterations = 3
	cfg.Warmup = 1
	return cfg
}

func TestRunAllScenarios(t *testing.T) {
	results, err := Run(context.Background(), smallConfig(), log.Nop())
	require.NoError(t, err)
	require.Len(t, results, len(Scenarios))

	wantRows := map[string]int{
		RegistryVelocity:            128,
		RegistryVelocityTranslation: 256,
		ScanVelocity:                128,
		ScanVelocityTranslation:     256,
		ArraysTranslation:           128,
		KernelVelocity:              128,
		KernelTranslation:           128,
	}
	for i, res := range results {
		assert.Equal(t, Scenarios[i].Name, res.Scenario)
		assert.Equal(t, wantRows[res.Scenario], res.Rows, res.Scenario)
		assert.Equal(t, 64, res.Entities)
		assert.Equal(t, 3, res.Iterations)
		assert.Equal(t, res.Total/3, res.PerOp)
		assert.GreaterOrEqual(t, res.PerRow, 0.0)
	}
}

func TestRunSelectedScenarios(t *testing.T) {
	cfg := smallConfig()
	cfg.Scenarios = "kernel/translation, registry/velocity"

	results, err := Run(context.Background(), cfg, log.Nop())
	require.NoError(t, err)
	require.Len(t, results, 2)
	// Run order follows Scenarios, not the config.
	assert.Equal(t, RegistryVelocity, results[0].Scenario)
	assert.Equal(t, KernelTranslation, results[1].Scenario)
}

func TestRunZeroEntities(t *testing.T) {
	cfg := smallConfig()
	cfg.Entities = 0

	results, err := Run(context.Background(), cfg, log.Nop())
	require.NoError(t, err)
	for _, res := range results {
		assert.Zero(t, res.Rows)
		assert.Zero(t, res.PerRow)
	}
}

func TestRunUnknownScenario(t *testing.T) {
	cfg := smallConfig()
	cfg.Scenarios = "registry/velocity,nope"

	_, err := Run(context.Background(), cfg, log.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown scenario "nope"`)
}

func TestRunInvalidConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.Iterations = 0

	_, err := Run(context.Background(), cfg, log.Nop())
	require.Error(t, err)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := Run(ctx, smallConfig(), log.Nop())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

func TestSelect(t *testing.T) {
	all, err := Select(nil)
	require.NoError(t, err)
	assert.Len(t, all, len(Scenarios))

	picked, err := Select([]string{ArraysTranslation, ArraysTranslation})
	require.NoError(t, err)
	require.Len(t, picked, 1)
	assert.Equal(t, ArraysTranslation, picked[0].Name)

	_, ok := Lookup("registry/none")
	assert.False(t, ok)
}

func writePlan(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadPlan(t *testing.T) {
	path := writePlan(t, `
[[run]]
name = "small"
entities = 10
iterations = 5
scenarios = ["arrays/translation"]

[[run]]
name = "defaults"
warmup = 0
seed = 7

[[run]]
name = "still"
delta_time = 0.0
`)
	plan, err := LoadPlan(path)
	require.NoError(t, err)
	require.Len(t, plan.Runs, 3)

	base := smallConfig()
	cfgs, err := plan.Configs(base)
	require.NoError(t, err)
	require.Len(t, cfgs, 3)

	assert.Equal(t, 10, cfgs[0].Entities)
	assert.Equal(t, 5, cfgs[0].Iterations)
	assert.Equal(t, base.Warmup, cfgs[0].Warmup)
	assert.Equal(t, []string{ArraysTranslation}, cfgs[0].ScenarioNames())

	assert.Equal(t, base.Entities, cfgs[1].Entities)
	assert.Equal(t, 0, cfgs[1].Warmup)
	assert.Equal(t, uint64(7), cfgs[1].Seed)
	assert.Nil(t, cfgs[1].ScenarioNames())
	assert.Equal(t, base.DeltaTime, cfgs[1].DeltaTime)

	// an explicit zero step is kept, not replaced by the base
	assert.Equal(t, float32(0), cfgs[2].DeltaTime)
	assert.Equal(t, base.Entities, cfgs[2].Entities)
}

func TestPlanZeroDeltaRunIsIdentity(t *testing.T) {
	path := writePlan(t, `
[[run]]
name = "still"
entities = 8
delta_time = 0.0
scenarios = ["registry/velocity-translation"]
`)
	plan, err := LoadPlan(path)
	require.NoError(t, err)
	cfgs, err := plan.Configs(smallConfig())
	require.NoError(t, err)
	require.Len(t, cfgs, 1)

	s, ok := Lookup(RegistryVelocityTranslation)
	require.True(t, ok)
	f := s.setup(cfgs[0].Entities, cfgs[0].Seed)
	defer f.teardown()
	before := snapshot(f)
	f.step(cfgs[0].DeltaTime)
	assert.Equal(t, before, snapshot(f))
}

// snapshot copies every Float3 component of the fixture's registry.
func snapshot(f fixture) []physbench.Float3 {
	var out []physbench.Float3
	for _, e := range f.registry.Entities() {
		if v := physbench.GetComponent[physbench.Velocity](f.registry, e); v != nil {
			out = append(out, physbench.Float3(*v))
		}
		if tr := physbench.GetComponent[physbench.Translation](f.registry, e); tr != nil {
			out = append(out, physbench.Float3(*tr))
		}
	}
	return out
}

func TestLoadPlanErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty", body: ""},
		{name: "unknown key", body: "[[run]]\nentites = 3\n"},
		{name: "unknown scenario", body: "[[run]]\nscenarios = [\"kernel/none\"]\n"},
		{name: "syntax", body: "[[run]\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadPlan(writePlan(t, tc.body))
			require.Error(t, err)
		})
	}

	_, err := LoadPlan(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestPlanConfigsValidate(t *testing.T) {
	plan := Plan{Runs: []PlanRun{{Name: "bad", Entities: ptr(-1)}}}
	_, err := plan.Configs(smallConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
}

func ptr[T any](v T) *T { return &v }
