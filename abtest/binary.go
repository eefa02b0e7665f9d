package abtest

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mathext"
)

// DegreeOfCertainty returns Pr(p_b > p_a) for a binary outcome, where each
// arm's success probability has a uniform Beta(1, 1) prior, so that
// p_g ~ Beta(successes_g+1, failures_g+1) after observation.
//
// The closed form is
//
//	Σ_{j=0..successes_b} B(1+s_a+j, f_a+f_b+2) / ((1+f_b+j) B(1+j, 1+f_b) B(s_a+1, f_a+1))
//
// evaluated term by term in log space so that counts in the thousands do not
// overflow. See http://www.evanmiller.org/bayesian-ab-testing.html.
func DegreeOfCertainty(successesA, failuresA, successesB, failuresB int) (float64, error) {
	if successesA < 0 || failuresA < 0 || successesB < 0 || failuresB < 0 {
		return 0, fmt.Errorf("%w: binary counts must be non-negative, got successes_a=%d failures_a=%d successes_b=%d failures_b=%d",
			ErrInvalidCount, successesA, failuresA, successesB, failuresB)
	}

	sa, fa, fb := float64(successesA), float64(failuresA), float64(failuresB)
	conditionalA := mathext.Lbeta(sa+1, fa+1)

	total := 0.0
	for j := 0; j <= successesB; j++ {
		jf := float64(j)
		logTerm := mathext.Lbeta(1+sa+jf, fa+fb+2) -
			math.Log(1+fb+jf) -
			mathext.Lbeta(1+jf, 1+fb) -
			conditionalA
		if math.IsNaN(logTerm) || math.IsInf(logTerm, 1) {
			return 0, fmt.Errorf("%w: binary term j=%d is %v", ErrDomain, j, logTerm)
		}
		total += math.Exp(logTerm)
	}
	return clampProbability(total)
}

// DegreeOfCertaintyTrials is DegreeOfCertainty over value types: the
// probability that treatment's success rate exceeds control's.
func DegreeOfCertaintyTrials(control, treatment BinaryTrial) (float64, error) {
	return DegreeOfCertainty(control.Successes, control.Failures, treatment.Successes, treatment.Failures)
}

// clampProbability absorbs last-ulp rounding of a summed probability and
// rejects anything further outside [0, 1].
func clampProbability(p float64) (float64, error) {
	const slack = 1e-9
	switch {
	case math.IsNaN(p) || math.IsInf(p, 0):
		return 0, fmt.Errorf("%w: probability is %v", ErrDomain, p)
	case p < -slack || p > 1+slack:
		return 0, fmt.Errorf("%w: probability %v outside [0, 1]", ErrDomain, p)
	case p < 0:
		return 0, nil
	case p > 1:
		return 1, nil
	}
	return p, nil
}
