package montecarlo

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/labdc/abpower/abtest"
)

// Writeup is the detailed result of a simulation: the power, the per-draw
// certainties oriented by direction, and a sorted sample of the posterior
// difference (treatment minus control) for interval reporting.
type Writeup struct {
	Power     float64
	Draws     abtest.PosteriorDraws
	Posterior []float64
}

// mapDraws evaluates posterior(i) for every draw index. posterior must be a
// pure function of i.
func mapDraws(numDraws int, posterior func(i int) (float64, error)) (abtest.PosteriorDraws, error) {
	out := make(abtest.PosteriorDraws, numDraws)
	for i := range out {
		p, err := posterior(i)
		if err != nil {
			return nil, fmt.Errorf("draw %d: %w", i, err)
		}
		out[i] = p
	}
	return out, nil
}

func validateNumDraws(numDraws int) error {
	if numDraws <= 0 {
		return fmt.Errorf("%w: num_draws must be positive, got %d", abtest.ErrInvalidDesign, numDraws)
	}
	return nil
}

func validateThreshold(threshold float64) error {
	if math.IsNaN(threshold) || threshold <= 0 || threshold > 1 {
		return fmt.Errorf("%w: threshold must be in (0, 1], got %v", abtest.ErrInvalidDesign, threshold)
	}
	return nil
}

// binomialDraws returns size draws of Binomial(n, p).
func binomialDraws(n int, p float64, size int, src rand.Source) []int {
	out := make([]int, size)
	switch {
	case n == 0 || p == 0:
		return out
	case p == 1:
		for i := range out {
			out[i] = n
		}
		return out
	}
	dist := distuv.Binomial{N: float64(n), P: p, Src: src}
	for i := range out {
		out[i] = int(math.Round(dist.Rand()))
	}
	return out
}

// gammaDraws returns size draws of Gamma(shape, 1).
func gammaDraws(shape float64, size int, src rand.Source) []float64 {
	out := make([]float64, size)
	dist := distuv.Gamma{Alpha: shape, Beta: 1, Src: src}
	for i := range out {
		out[i] = dist.Rand()
	}
	return out
}

// betaDraw returns one draw of Beta(alpha, beta).
func betaDraw(alpha, beta float64, src rand.Source) float64 {
	return distuv.Beta{Alpha: alpha, Beta: beta, Src: src}.Rand()
}
