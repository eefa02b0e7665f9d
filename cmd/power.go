package cmd

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/labdc/abpower/abtest"
	"github.com/labdc/abpower/abtest/power"
)

var (
	sweepConfigPath  string    // YAML sweep file
	sweepOutcome     string    // binary or count
	sweepDirection   string    // increase or decrease
	sweepSampleSizes []int     // Total participants per design point
	sweepEffectSizes []float64 // Assumed absolute effects
	sweepBaseRates   []float64 // Assumed control rates
	sweepNumDraws    int       // Simulated experiments per design point
	sweepExposure    float64   // Per-observation exposure (count outcome)
	sweepSeed        int64     // Seed for simulated draws
	sweepDecorrelate bool      // Derive a distinct stream per design point
	sweepWorkers     int       // Design points evaluated concurrently
	sweepThreshold   float64   // Certainty required to detect an effect
)

// powerCmd runs a Monte Carlo power sweep over design points
var powerCmd = &cobra.Command{
	Use:   "power",
	Short: "Estimate power over sample sizes, effect sizes and base rates",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := DefaultSweepConfig()
		if sweepConfigPath != "" {
			loaded, err := LoadSweepConfig(sweepConfigPath)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			cfg = *loaded
		}
		applySweepFlags(cmd.Flags(), &cfg)
		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("invalid sweep: %v", err)
		}

		points := cfg.Points()
		logrus.Infof("Starting power sweep: %d design points, outcome=%s, direction=%s, draws=%d, seed=%d",
			len(points), cfg.Outcome, cfg.Direction, cfg.NumDraws, cfg.Seed)
		startTime := time.Now()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		results, err := power.Run(ctx, points, cfg.Scenario(), power.Options{Workers: cfg.Workers})
		if err != nil {
			logrus.Warnf("power sweep interrupted: %v", err)
		}
		if err := writePowerResults(os.Stdout, outputFormat, &cfg, results); err != nil {
			logrus.Fatalf("writing results: %v", err)
		}

		failed := power.Failed(results)
		logrus.Infof("Power sweep complete in %s: %d/%d design points failed",
			time.Since(startTime).Round(time.Millisecond), len(failed), len(results))
		if len(failed) > 0 {
			stop()
			os.Exit(2)
		}
	},
}

// applySweepFlags overrides cfg with every flag set explicitly on the command line.
func applySweepFlags(flags *pflag.FlagSet, cfg *SweepConfig) {
	if flags.Changed("outcome") {
		cfg.Outcome = sweepOutcome
	}
	if flags.Changed("direction") {
		cfg.Direction = sweepDirection
	}
	if flags.Changed("sample-sizes") {
		cfg.SampleSizes = sweepSampleSizes
	}
	if flags.Changed("effect-sizes") {
		cfg.EffectSizes = sweepEffectSizes
	}
	if flags.Changed("base-rates") {
		cfg.BaseRates = sweepBaseRates
	}
	if flags.Changed("num-draws") {
		cfg.NumDraws = sweepNumDraws
	}
	if flags.Changed("exposure") {
		cfg.Exposure = sweepExposure
	}
	if flags.Changed("seed") {
		cfg.Seed = sweepSeed
	}
	if flags.Changed("decorrelate") {
		cfg.Decorrelate = sweepDecorrelate
	}
	if flags.Changed("workers") {
		cfg.Workers = sweepWorkers
	}
	if flags.Changed("threshold") {
		cfg.Threshold = sweepThreshold
	}
}

func init() {
	defaults := DefaultSweepConfig()

	powerCmd.Flags().StringVar(&sweepConfigPath, "config", "", "Path to a YAML sweep config; flags override its values")
	powerCmd.Flags().StringVar(&sweepOutcome, "outcome", defaults.Outcome, "Outcome type (binary, count)")
	powerCmd.Flags().StringVar(&sweepDirection, "direction", defaults.Direction, "Expected effect direction (increase, decrease)")
	powerCmd.Flags().IntSliceVar(&sweepSampleSizes, "sample-sizes", nil, "Comma-separated total sample sizes")
	powerCmd.Flags().Float64SliceVar(&sweepEffectSizes, "effect-sizes", nil, "Comma-separated absolute effect sizes")
	powerCmd.Flags().Float64SliceVar(&sweepBaseRates, "base-rates", nil, "Comma-separated control rates (success rate, or events per observation)")
	powerCmd.Flags().IntVar(&sweepNumDraws, "num-draws", defaults.NumDraws, "Simulated experiments per design point")
	powerCmd.Flags().Float64Var(&sweepExposure, "exposure", defaults.Exposure, "Exposure per observation (count outcome)")
	powerCmd.Flags().Int64Var(&sweepSeed, "seed", defaults.Seed, "Seed for simulated draws")
	powerCmd.Flags().BoolVar(&sweepDecorrelate, "decorrelate", false, "Derive a distinct random stream per design point")
	powerCmd.Flags().IntVar(&sweepWorkers, "workers", 0, "Design points evaluated concurrently (0 = GOMAXPROCS)")
	powerCmd.Flags().Float64Var(&sweepThreshold, "threshold", abtest.DefaultThreshold, "Certainty a simulated experiment must reach")
}
