package main

import (
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/edwinsyarief/physbench/internal/config"
	"github.com/edwinsyarief/physbench/internal/harness"
	"github.com/edwinsyarief/physbench/internal/log"
	"github.com/edwinsyarief/physbench/internal/report"
)

// NewRootCmd creates the physbench command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "physbench",
		Short:         "Benchmark ECS physics integration against flat arrays",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(), newScenariosCmd())
	return root
}

type runFlags struct {
	configFile  string
	planFile    string
	entities    int
	iterations  int
	warmup      int
	deltaTime   float32
	seed        uint64
	scenarios   string
	format      string
	logLevel    string
	jsonLogs    bool
	profileMode string
	profilePath string
}

func newRunCmd() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the selected scenarios and print a report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(f.configFile)
			if err != nil {
				return err
			}
			applyFlags(cmd, f, &cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			cfgs := []config.Config{cfg}
			if f.planFile != "" {
				plan, err := harness.LoadPlan(f.planFile)
				if err != nil {
					return err
				}
				if cfgs, err = plan.Configs(cfg); err != nil {
					return err
				}
			}

			stop, err := startProfile(f.profileMode, f.profilePath)
			if err != nil {
				return err
			}
			defer stop()

			lvl, _ := cfg.Level()
			logger := log.New(cmd.ErrOrStderr(), lvl, f.jsonLogs)

			var results []report.Result
			for _, c := range cfgs {
				logger.Info().
					Int("entities", c.Entities).
					Int("iterations", c.Iterations).
					Float32("dt", c.DeltaTime).
					Uint64("seed", c.Seed).
					Msg("starting run")
				res, err := harness.Run(cmd.Context(), c, logger)
				results = append(results, res...)
				if err != nil {
					return err
				}
			}
			return report.Write(cmd.OutOrStdout(), cfg.Format, results)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.configFile, "config", "", "env-style file with PHYSBENCH_* keys")
	flags.StringVar(&f.planFile, "plan", "", "TOML file listing several runs")
	flags.IntVar(&f.entities, "entities", 0, "entities per registry group")
	flags.IntVar(&f.iterations, "iterations", 0, "timed iterations per scenario")
	flags.IntVar(&f.warmup, "warmup", 0, "untimed iterations per scenario")
	flags.Float32Var(&f.deltaTime, "dt", 0, "time step")
	flags.Uint64Var(&f.seed, "seed", 0, "random seed")
	flags.StringVar(&f.scenarios, "scenarios", "", "comma separated scenario names, empty runs all")
	flags.StringVar(&f.format, "format", "", "report format: text, json or yaml")
	flags.StringVar(&f.logLevel, "log-level", "", "zerolog level")
	flags.BoolVar(&f.jsonLogs, "json-logs", false, "write logs as JSON")
	flags.StringVar(&f.profileMode, "profile", "none", "profile to record: cpu, mem or none")
	flags.StringVar(&f.profilePath, "profile-path", ".", "directory for profile output")
	return cmd
}

// applyFlags copies every flag the user set over cfg.
func applyFlags(cmd *cobra.Command, f runFlags, cfg *config.Config) {
	set := cmd.Flags().Changed
	if set("entities") {
		cfg.Entities = f.entities
	}
	if set("iterations") {
		cfg.Iterations = f.iterations
	}
	if set("warmup") {
		cfg.Warmup = f.warmup
	}
	if set("dt") {
		cfg.DeltaTime = f.deltaTime
	}
	if set("seed") {
		cfg.Seed = f.seed
	}
	if set("scenarios") {
		cfg.Scenarios = f.scenarios
	}
	if set("format") {
		cfg.Format = f.format
	}
	if set("log-level") {
		cfg.LogLevel = f.logLevel
	}
}

func startProfile(mode, path string) (func(), error) {
	var opt func(*profile.Profile)
	switch mode {
	case "", "none":
		return func() {}, nil
	case "cpu":
		opt = profile.CPUProfile
	case "mem":
		opt = profile.MemProfileAllocs
	default:
		return nil, eris.Errorf("unknown profile mode %q", mode)
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, eris.Wrapf(err, "failed to create profile directory %s", path)
	}
	p := profile.Start(opt, profile.ProfilePath(path), profile.NoShutdownHook, profile.Quiet)
	return p.Stop, nil
}

func newScenariosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List the available scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, s := range harness.Scenarios {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-32s %s\n", s.Name, s.Description); err != nil {
					return eris.Wrap(err, "failed to list scenarios")
				}
			}
			return nil
		},
	}
}
