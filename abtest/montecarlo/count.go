package montecarlo

import (
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/labdc/abpower/abtest"
)

// CountConfig describes a count/exposure experiment simulated under assumed
// per-observation event rates. Exposure is not randomized.
type CountConfig struct {
	ControlEventsPerObs     float64
	TreatmentEventsPerObs   float64
	ControlExposurePerObs   float64
	TreatmentExposurePerObs float64
	Arms                    abtest.ArmSizes
	NumDraws                int
}

// CountTotals describes observed arm totals whose event counts are
// resampled for a write-up.
type CountTotals struct {
	ControlEvents     float64
	TreatmentEvents   float64
	ControlExposure   float64
	TreatmentExposure float64
	NumDraws          int

	// RateScale multiplies the per-exposure rate difference, e.g. 14 to
	// report events per two weeks when exposure is in days. Zero means 1.
	RateScale float64
}

// countSample holds the simulated event totals of every draw.
type countSample struct {
	exposureControl, exposureTreatment float64
	control, treatment                 []float64
}

func (s countSample) certainties() (abtest.PosteriorDraws, error) {
	return mapDraws(len(s.control), func(i int) (float64, error) {
		return abtest.DegreeOfCertaintyCounts(s.control[i], s.exposureControl, s.treatment[i], s.exposureTreatment)
	})
}

func validatePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %v", abtest.ErrInvalidCount, name, v)
	}
	return nil
}

func simulateCounts(eventsControl, exposureControl, eventsTreatment, exposureTreatment float64, numDraws int, rng *abtest.PartitionedRNG) (countSample, error) {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"control events", eventsControl},
		{"control exposure", exposureControl},
		{"treatment events", eventsTreatment},
		{"treatment exposure", exposureTreatment},
	} {
		if err := validatePositive(f.name, f.value); err != nil {
			return countSample{}, err
		}
	}
	logrus.Debugf("simulating %d count draws: control events=%.2f exposure=%.2f, treatment events=%.2f exposure=%.2f",
		numDraws, eventsControl, exposureControl, eventsTreatment, exposureTreatment)
	return countSample{
		exposureControl:   exposureControl,
		exposureTreatment: exposureTreatment,
		control:           gammaDraws(eventsControl, numDraws, rng.ForSubsystem(abtest.SubsystemControl)),
		treatment:         gammaDraws(eventsTreatment, numDraws, rng.ForSubsystem(abtest.SubsystemTreatment)),
	}, nil
}

func (c CountConfig) sample(rng *abtest.PartitionedRNG) (countSample, error) {
	if err := validateNumDraws(c.NumDraws); err != nil {
		return countSample{}, err
	}
	nc, nt, err := c.Arms.Resolve()
	if err != nil {
		return countSample{}, err
	}
	return simulateCounts(
		c.ControlEventsPerObs*float64(nc), c.ControlExposurePerObs*float64(nc),
		c.TreatmentEventsPerObs*float64(nt), c.TreatmentExposurePerObs*float64(nt),
		c.NumDraws, rng)
}

// CountDraws simulates cfg.NumDraws experiments and returns
// Pr(rate_treatment > rate_control) for each, in draw order.
func CountDraws(cfg CountConfig, rng *abtest.PartitionedRNG) (abtest.PosteriorDraws, error) {
	sample, err := cfg.sample(rng)
	if err != nil {
		return nil, err
	}
	return sample.certainties()
}

// CountPower returns the fraction of simulated experiments whose certainty in
// direction dir reaches threshold.
func CountPower(cfg CountConfig, dir abtest.Direction, threshold float64, rng *abtest.PartitionedRNG) (float64, error) {
	if err := validateThreshold(threshold); err != nil {
		return 0, err
	}
	draws, err := CountDraws(cfg, rng)
	if err != nil {
		return 0, err
	}
	return draws.FractionReaching(dir, threshold), nil
}

// CountWriteup resamples observed totals and returns the power, the oriented
// draws and the sorted posterior rate difference
// (treatment/exposure - control/exposure) * RateScale.
func CountWriteup(totals CountTotals, dir abtest.Direction, threshold float64, rng *abtest.PartitionedRNG) (Writeup, error) {
	if err := validateThreshold(threshold); err != nil {
		return Writeup{}, err
	}
	if err := validateNumDraws(totals.NumDraws); err != nil {
		return Writeup{}, err
	}
	sample, err := simulateCounts(totals.ControlEvents, totals.ControlExposure,
		totals.TreatmentEvents, totals.TreatmentExposure, totals.NumDraws, rng)
	if err != nil {
		return Writeup{}, err
	}
	draws, err := sample.certainties()
	if err != nil {
		return Writeup{}, err
	}

	scale := totals.RateScale
	if scale == 0 {
		scale = 1
	}
	posterior := make([]float64, totals.NumDraws)
	for i := range posterior {
		posterior[i] = (sample.treatment[i]/sample.exposureTreatment - sample.control[i]/sample.exposureControl) * scale
	}
	sort.Float64s(posterior)

	return Writeup{
		Power:     draws.FractionReaching(dir, threshold),
		Draws:     draws.Oriented(dir),
		Posterior: posterior,
	}, nil
}
