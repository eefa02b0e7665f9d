package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/labdc/abpower/abtest"
	"github.com/labdc/abpower/abtest/montecarlo"
)

var (
	drawsOutcome     string  // binary or count
	drawsDirection   string  // increase or decrease
	drawsNumDraws    int     // Simulated experiments
	drawsSeed        int64   // Seed for simulated draws
	drawsThreshold   float64 // Certainty required to detect an effect
	drawsBaseRate    float64 // Control success rate (binary)
	drawsTreatRate   float64 // Treatment success rate (binary)
	drawsNumTotal    int     // Total participants (binary)
	drawsNumControl  int     // Control participants (binary)
	drawsNumTreat    int     // Treatment participants (binary)
	drawsRateScale   float64 // Rate difference multiplier (count)
	drawsEventsCtrl  float64 // Observed control events (count)
	drawsEventsTreat float64 // Observed treatment events (count)
	drawsExposeCtrl  float64 // Observed control exposure (count)
	drawsExposeTreat float64 // Observed treatment exposure (count)
)

// drawsCmd simulates one design and reports the draw distribution for a write-up
var drawsCmd = &cobra.Command{
	Use:   "draws",
	Short: "Simulate one design and summarize its certainty draws and posterior difference",
	Run: func(cmd *cobra.Command, args []string) {
		outcome, err := abtest.ParseOutcome(drawsOutcome)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		dir, err := abtest.ParseDirection(drawsDirection)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		rng := abtest.NewPartitionedRNG(abtest.Seed(drawsSeed))

		var w montecarlo.Writeup
		switch outcome {
		case abtest.OutcomeBinary:
			w, err = montecarlo.BinaryWriteup(montecarlo.BinaryConfig{
				BaseRate:      drawsBaseRate,
				TreatmentRate: drawsTreatRate,
				Arms: abtest.ArmSizes{
					NumParticipants: drawsNumTotal,
					NumControl:      drawsNumControl,
					NumTreatment:    drawsNumTreat,
				},
				NumDraws: drawsNumDraws,
			}, dir, drawsThreshold, rng)
		case abtest.OutcomeCount:
			w, err = montecarlo.CountWriteup(montecarlo.CountTotals{
				ControlEvents:     drawsEventsCtrl,
				TreatmentEvents:   drawsEventsTreat,
				ControlExposure:   drawsExposeCtrl,
				TreatmentExposure: drawsExposeTreat,
				NumDraws:          drawsNumDraws,
				RateScale:         drawsRateScale,
			}, dir, drawsThreshold, rng)
		}
		if err != nil {
			logrus.Fatalf("simulating draws: %v", err)
		}
		if err := writeWriteup(os.Stdout, outputFormat, w); err != nil {
			logrus.Fatalf("writing results: %v", err)
		}
	},
}

func init() {
	drawsCmd.Flags().StringVar(&drawsOutcome, "outcome", string(abtest.OutcomeBinary), "Outcome type (binary, count)")
	drawsCmd.Flags().StringVar(&drawsDirection, "direction", string(abtest.Increase), "Expected effect direction (increase, decrease)")
	drawsCmd.Flags().IntVar(&drawsNumDraws, "num-draws", 1000, "Simulated experiments")
	drawsCmd.Flags().Int64Var(&drawsSeed, "seed", int64(abtest.DefaultSeed), "Seed for simulated draws")
	drawsCmd.Flags().Float64Var(&drawsThreshold, "threshold", abtest.DefaultThreshold, "Certainty a simulated experiment must reach")

	// binary outcome
	drawsCmd.Flags().Float64Var(&drawsBaseRate, "base-rate", 0, "Control success rate")
	drawsCmd.Flags().Float64Var(&drawsTreatRate, "treatment-rate", 0, "Treatment success rate")
	drawsCmd.Flags().IntVar(&drawsNumTotal, "num-participants", 0, "Total participants, split evenly")
	drawsCmd.Flags().IntVar(&drawsNumControl, "num-control", 0, "Control participants (with --num-treatment)")
	drawsCmd.Flags().IntVar(&drawsNumTreat, "num-treatment", 0, "Treatment participants (with --num-control)")

	// count outcome
	drawsCmd.Flags().Float64Var(&drawsEventsCtrl, "events-control", 0, "Observed control events")
	drawsCmd.Flags().Float64Var(&drawsEventsTreat, "events-treatment", 0, "Observed treatment events")
	drawsCmd.Flags().Float64Var(&drawsExposeCtrl, "exposure-control", 1, "Observed control exposure")
	drawsCmd.Flags().Float64Var(&drawsExposeTreat, "exposure-treatment", 1, "Observed treatment exposure")
	drawsCmd.Flags().Float64Var(&drawsRateScale, "rate-scale", 1, "Multiplier for the reported rate difference, e.g. 14 for per-two-weeks")
}
