package abtest

import "sort"

// DefaultThreshold is the posterior certainty a simulated experiment must
// reach to count as detecting the effect.
const DefaultThreshold = 0.95

// PosteriorDraws is an ordered sequence of per-draw posterior probabilities,
// one per simulated repetition of an experiment.
type PosteriorDraws []float64

// Reversed returns 1-p for each draw, i.e. Pr(treatment < control).
func (d PosteriorDraws) Reversed() PosteriorDraws {
	out := make(PosteriorDraws, len(d))
	for i, p := range d {
		out[i] = 1 - p
	}
	return out
}

// Oriented returns the draws as seen by a hypothesis in the given direction.
func (d PosteriorDraws) Oriented(dir Direction) PosteriorDraws {
	if dir == Decrease {
		return d.Reversed()
	}
	out := make(PosteriorDraws, len(d))
	copy(out, d)
	return out
}

// Sorted returns an ascending copy of the draws.
func (d PosteriorDraws) Sorted() PosteriorDraws {
	out := make(PosteriorDraws, len(d))
	copy(out, d)
	sort.Float64s(out)
	return out
}

// FractionReaching returns the fraction of draws whose certainty in the given
// direction is at least threshold. For Decrease each draw is read as 1-p.
// Returns 0 for an empty sequence.
func (d PosteriorDraws) FractionReaching(dir Direction, threshold float64) float64 {
	if len(d) == 0 {
		return 0
	}
	hits := 0
	for _, p := range d {
		if dir == Decrease {
			p = 1 - p
		}
		if p >= threshold {
			hits++
		}
	}
	return float64(hits) / float64(len(d))
}
