package montecarlo

import (
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/labdc/abpower/abtest"
)

// BinaryConfig describes a binary experiment simulated under assumed true
// success rates.
type BinaryConfig struct {
	BaseRate      float64 // control success rate
	TreatmentRate float64 // treatment success rate
	Arms          abtest.ArmSizes
	NumDraws      int
}

// binarySample holds the simulated successes of every draw.
type binarySample struct {
	numControl, numTreatment int
	control, treatment       []int
}

func (c BinaryConfig) validate() (numControl, numTreatment int, err error) {
	if err := validateNumDraws(c.NumDraws); err != nil {
		return 0, 0, err
	}
	for _, r := range []struct {
		name string
		rate float64
	}{{"base_rate", c.BaseRate}, {"treatment_rate", c.TreatmentRate}} {
		if math.IsNaN(r.rate) || r.rate < 0 || r.rate > 1 {
			return 0, 0, fmt.Errorf("%w: %s must be in [0, 1], got %v", abtest.ErrInvalidDesign, r.name, r.rate)
		}
	}
	return c.Arms.Resolve()
}

func simulateBinary(cfg BinaryConfig, rng *abtest.PartitionedRNG) (binarySample, error) {
	nc, nt, err := cfg.validate()
	if err != nil {
		return binarySample{}, err
	}
	logrus.Debugf("simulating %d binary draws: control n=%d rate=%.4f, treatment n=%d rate=%.4f",
		cfg.NumDraws, nc, cfg.BaseRate, nt, cfg.TreatmentRate)
	return binarySample{
		numControl:   nc,
		numTreatment: nt,
		control:      binomialDraws(nc, cfg.BaseRate, cfg.NumDraws, rng.ForSubsystem(abtest.SubsystemControl)),
		treatment:    binomialDraws(nt, cfg.TreatmentRate, cfg.NumDraws, rng.ForSubsystem(abtest.SubsystemTreatment)),
	}, nil
}

func (s binarySample) certainties() (abtest.PosteriorDraws, error) {
	return mapDraws(len(s.control), func(i int) (float64, error) {
		return abtest.DegreeOfCertainty(s.control[i], s.numControl-s.control[i], s.treatment[i], s.numTreatment-s.treatment[i])
	})
}

// BinaryDraws simulates cfg.NumDraws experiments and returns
// Pr(p_treatment > p_control) for each, in draw order.
func BinaryDraws(cfg BinaryConfig, rng *abtest.PartitionedRNG) (abtest.PosteriorDraws, error) {
	sample, err := simulateBinary(cfg, rng)
	if err != nil {
		return nil, err
	}
	return sample.certainties()
}

// BinaryPower returns the fraction of simulated experiments whose certainty in
// direction dir reaches threshold.
func BinaryPower(cfg BinaryConfig, dir abtest.Direction, threshold float64, rng *abtest.PartitionedRNG) (float64, error) {
	if err := validateThreshold(threshold); err != nil {
		return 0, err
	}
	draws, err := BinaryDraws(cfg, rng)
	if err != nil {
		return 0, err
	}
	return draws.FractionReaching(dir, threshold), nil
}

// BinaryWriteup is BinaryPower plus the oriented draws and, for each draw, a
// sample of p_treatment - p_control from the Beta(s+1, f+1) posteriors,
// sorted ascending.
func BinaryWriteup(cfg BinaryConfig, dir abtest.Direction, threshold float64, rng *abtest.PartitionedRNG) (Writeup, error) {
	if err := validateThreshold(threshold); err != nil {
		return Writeup{}, err
	}
	sample, err := simulateBinary(cfg, rng)
	if err != nil {
		return Writeup{}, err
	}
	draws, err := sample.certainties()
	if err != nil {
		return Writeup{}, err
	}

	src := rng.ForSubsystem(abtest.SubsystemPosterior)
	posterior := make([]float64, cfg.NumDraws)
	for i := range posterior {
		sc, st := sample.control[i], sample.treatment[i]
		control := betaDraw(float64(sc+1), float64(sample.numControl-sc+1), src)
		treatment := betaDraw(float64(st+1), float64(sample.numTreatment-st+1), src)
		posterior[i] = treatment - control
	}
	sort.Float64s(posterior)

	return Writeup{
		Power:     draws.FractionReaching(dir, threshold),
		Draws:     draws.Oriented(dir),
		Posterior: posterior,
	}, nil
}
