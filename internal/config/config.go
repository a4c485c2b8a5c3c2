// Package config loads harness settings from an env-style file and the
// process environment.
package config

import (
	"strings"

	"github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// Formats accepted for reports.
var Formats = []string{"text", "json", "yaml"}

// Config holds every harness setting. Each field maps to one PHYSBENCH_*
// environment key.
type Config struct {
	Entities   int     `config:"PHYSBENCH_ENTITIES"`
	Iterations int     `config:"PHYSBENCH_ITERATIONS"`
	Warmup     int     `config:"PHYSBENCH_WARMUP"`
	DeltaTime  float32 `config:"PHYSBENCH_DELTA_TIME"`
	Seed       uint64  `config:"PHYSBENCH_SEED"`
	Scenarios  string  `config:"PHYSBENCH_SCENARIOS"` // comma separated, empty means all
	Format     string  `config:"PHYSBENCH_FORMAT"`
	LogLevel   string  `config:"PHYSBENCH_LOG_LEVEL"`
}

// Default returns 100k entities per group stepped at 30Hz.
func Default() Config {
	return Config{
		Entities:   100_000,
		Iterations: 100,
		Warmup:     10,
		DeltaTime:  1.0 / 30,
		Seed:       0,
		Format:     "text",
		LogLevel:   "info",
	}
}

// Load starts from Default, applies file when it is not empty and then the
// environment, and validates the result.
func Load(file string) (Config, error) {
	cfg := Default()
	b := config.FromEnv()
	if file != "" {
		b = config.From(file).FromEnv()
	}
	if err := b.To(&cfg); err != nil {
		return Config{}, eris.Wrap(err, "failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ScenarioNames splits Scenarios. It returns nil when every scenario should
// run.
func (c Config) ScenarioNames() []string {
	var names []string
	for _, s := range strings.Split(c.Scenarios, ",") {
		if s = strings.TrimSpace(s); s != "" {
			names = append(names, s)
		}
	}
	return names
}

// Level parses LogLevel.
func (c Config) Level() (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.NoLevel, eris.Wrapf(err, "invalid log level %q", c.LogLevel)
	}
	return lvl, nil
}

// Validate checks ranges and names. Scenario names are checked by the harness.
func (c Config) Validate() error {
	if c.Entities < 0 {
		return eris.Errorf("entities must not be negative, got %d", c.Entities)
	}
	if c.Iterations <= 0 {
		return eris.Errorf("iterations must be positive, got %d", c.Iterations)
	}
	if c.Warmup < 0 {
		return eris.Errorf("warmup must not be negative, got %d", c.Warmup)
	}
	if !validFormat(c.Format) {
		return eris.Errorf("unknown format %q, expected one of %s", c.Format, strings.Join(Formats, ", "))
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

func validFormat(f string) bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}
