// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/cardiocomp/config"
	"github.com/katalvlaran/cardiocomp/minimize"
	"github.com/katalvlaran/cardiocomp/model"
)

// app carries the state shared by every subcommand. Tests set logger
// before Execute to skip building the production logger.
type app struct {
	logger *zap.Logger

	verbose    bool
	configPath string
	run        config.Run
}

func newRootCmd(a *app) *cobra.Command {
	def := config.Default()

	root := &cobra.Command{
		Use:   "cardiocomp",
		Short: "Estimate vascular compliances for a physiological preset",
		Long: `cardiocomp distributes a target blood volume over four compartments
(systemic arterial, systemic venous, pulmonary arterial, pulmonary venous)
and searches for the compliances that minimize V/Tsum while keeping the
distributed volume on target.

Values from --config are applied first; flags given explicitly win.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.logger != nil {
				return nil
			}
			zc := zap.NewProductionConfig()
			if a.verbose {
				zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := zc.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger

			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: a.estimate,
	}

	pf := root.PersistentFlags()
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&a.configPath, "config", "", "YAML run configuration")
	pf.StringVar(&a.run.Mode, "mode", def.Mode, "preset: "+joinModes())

	a.runFlags(root, true)

	root.AddCommand(newPresetsCmd(), newDescribeCmd(a), newConfigCmd(a))

	return root
}

// runFlags declares --vol and, when withRun is set, --numit and --seed on
// cmd, all bound to a.run.
func (a *app) runFlags(cmd *cobra.Command, withRun bool) {
	def := config.Default()
	f := cmd.Flags()
	f.Float64Var(&a.run.Volume, "vol", def.Volume, "total volume of blood")
	if withRun {
		f.IntVar(&a.run.Iterations, "numit", def.Iterations, "number of iterations")
		f.Int64Var(&a.run.Seed, "seed", 0, "random seed for the initial vector (0 = time based)")
	}
}

// resolve merges the optional config file with explicitly set flags and
// validates the result.
func (a *app) resolve(cmd *cobra.Command) (*config.Run, error) {
	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	a.override(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// override copies every flag the user set on cmd into cfg. Flags a
// subcommand does not declare are never reported as changed.
func (a *app) override(cmd *cobra.Command, cfg *config.Run) {
	flags := cmd.Flags()
	if flags.Changed("mode") {
		cfg.Mode = a.run.Mode
	}
	if flags.Changed("vol") {
		cfg.Volume = a.run.Volume
	}
	if flags.Changed("numit") {
		cfg.Iterations = a.run.Iterations
	}
	if flags.Changed("seed") {
		cfg.Seed = a.run.Seed
	}
}

func (a *app) estimate(cmd *cobra.Command, args []string) error {
	cfg, err := a.resolve(cmd)
	if err != nil {
		return err
	}

	mc, err := cfg.Model()
	if err != nil {
		return err
	}
	m, err := model.Build(mc)
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	log := a.logger.With(zap.String("run_id", uuid.NewString()))
	log.Info("estimating compliances",
		zap.String("mode", cfg.Mode),
		zap.Float64("volume", cfg.Volume),
		zap.Int("iterations", cfg.Iterations),
		zap.Int64("seed", seed),
	)

	start := time.Now()
	res, err := minimize.Run(cmd.Context(), m,
		minimize.WithIterations(cfg.Iterations),
		minimize.WithSeed(seed),
		minimize.WithLogger(log),
	)
	if err != nil {
		return err
	}

	log.Info("estimation finished",
		zap.Float64("best_value", res.BestValue),
		zap.Int("improvements", res.Improvements),
		zap.Float64("volume", m.Volume(res.Best)),
		zap.Duration("elapsed", time.Since(start)),
	)

	out := cmd.OutOrStdout()
	for i, name := range model.SymbolNames {
		fmt.Fprintf(out, "%s: %v\n", name, res.Best[i])
	}

	return nil
}
