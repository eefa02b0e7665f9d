package power

import (
	"fmt"
	"math"

	"github.com/labdc/abpower/abtest"
	"github.com/labdc/abpower/abtest/montecarlo"
)

// DesignPoint is one combination of sample size, effect size and base rate.
type DesignPoint struct {
	SampleSize int     `json:"sample_size"`
	EffectSize float64 `json:"effect_size"`
	BaseRate   float64 `json:"base_rate"`
}

func (p DesignPoint) String() string {
	return fmt.Sprintf("n=%d, effect=%g, base=%g", p.SampleSize, p.EffectSize, p.BaseRate)
}

// Combinations returns the Cartesian product of the inputs: sample size
// outermost, effect size in the middle, base rate innermost. A single-element
// list holds that parameter fixed across the others.
func Combinations(sampleSizes []int, effectSizes, baseRates []float64) []DesignPoint {
	points := make([]DesignPoint, 0, len(sampleSizes)*len(effectSizes)*len(baseRates))
	for _, n := range sampleSizes {
		for _, effect := range effectSizes {
			for _, base := range baseRates {
				points = append(points, DesignPoint{SampleSize: n, EffectSize: effect, BaseRate: base})
			}
		}
	}
	return points
}

// Scenario holds the settings shared by every design point of a sweep.
type Scenario struct {
	Outcome   abtest.Outcome
	Direction abtest.Direction
	NumDraws  int

	// Exposure is the per-observation exposure of both arms. Count outcomes only.
	Exposure float64

	// Threshold is the certainty a draw must reach. Zero means abtest.DefaultThreshold.
	Threshold float64

	Seed abtest.Seed

	// Decorrelate derives a distinct stream per design point from Seed and the
	// point's index. Otherwise every point replays the stream of Seed.
	Decorrelate bool
}

// Validate checks the settings shared by all design points.
func (s Scenario) Validate() error {
	if _, err := abtest.ParseOutcome(string(s.Outcome)); err != nil {
		return err
	}
	if _, err := abtest.ParseDirection(string(s.Direction)); err != nil {
		return err
	}
	if s.NumDraws <= 0 {
		return fmt.Errorf("%w: num_draws must be positive, got %d", abtest.ErrInvalidDesign, s.NumDraws)
	}
	if math.IsNaN(s.Threshold) || s.Threshold < 0 || s.Threshold > 1 {
		return fmt.Errorf("%w: threshold must be in (0, 1], got %v", abtest.ErrInvalidDesign, s.Threshold)
	}
	if s.Outcome == abtest.OutcomeCount && !(s.Exposure > 0) {
		return fmt.Errorf("%w: exposure must be positive for count outcomes, got %v", abtest.ErrInvalidCount, s.Exposure)
	}
	return nil
}

// EffectiveThreshold returns the decision threshold in use.
func (s Scenario) EffectiveThreshold() float64 {
	if s.Threshold == 0 {
		return abtest.DefaultThreshold
	}
	return s.Threshold
}

// Design returns the experiment a design point describes under s.
func (s Scenario) Design(p DesignPoint) abtest.ExperimentDesign {
	return abtest.ExperimentDesign{
		Arms:       abtest.ArmSizes{NumParticipants: p.SampleSize},
		EffectSize: p.EffectSize,
		BaseRate:   p.BaseRate,
		Outcome:    s.Outcome,
		Direction:  s.Direction,
	}
}

// Estimate simulates one design point and returns the fraction of simulated
// experiments reaching the threshold in the scenario's direction.
//
// Binary outcomes treat the base rate as the control success rate; count
// outcomes treat it as control events per observation. Either way the
// treatment rate is base ± effect.
func Estimate(point DesignPoint, sc Scenario, rng *abtest.PartitionedRNG) (float64, error) {
	design := sc.Design(point)
	if err := design.Validate(); err != nil {
		return 0, err
	}
	switch design.Outcome {
	case abtest.OutcomeBinary:
		return montecarlo.BinaryPower(montecarlo.BinaryConfig{
			BaseRate:      design.BaseRate,
			TreatmentRate: design.TreatmentRate(),
			Arms:          design.Arms,
			NumDraws:      sc.NumDraws,
		}, design.Direction, sc.EffectiveThreshold(), rng)
	case abtest.OutcomeCount:
		return montecarlo.CountPower(montecarlo.CountConfig{
			ControlEventsPerObs:     design.BaseRate,
			TreatmentEventsPerObs:   design.TreatmentRate(),
			ControlExposurePerObs:   sc.Exposure,
			TreatmentExposurePerObs: sc.Exposure,
			Arms:                    design.Arms,
			NumDraws:                sc.NumDraws,
		}, design.Direction, sc.EffectiveThreshold(), rng)
	}
	return 0, fmt.Errorf("%w: unknown outcome %q", abtest.ErrInvalidDesign, design.Outcome)
}
