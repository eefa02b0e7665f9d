package abtest

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mathext"
)

// DegreeOfCertaintyCounts returns Pr(rate_treatment > rate_control) for count
// data, where each arm's event rate has posterior Gamma(events, exposure).
// The result equals the regularized incomplete beta I_x(eventsControl,
// eventsTreatment) at x = exposureControl / (exposureControl + exposureTreatment).
//
// With n = floor(eventsControl) and f the fractional part, it is evaluated as
//
//	I_x(f, et) - Σ_{k=0..n-1} x^(f+k) (1-x)^et / ((f+k+et) B(f+k+1, et))
//
// in log space, where I_x(0, et) = 1. Integer totals reduce to the finite
// Gamma-Poisson sum. Simulated (continuous) totals start from the incomplete
// beta of f, so the result is continuous and non-increasing in eventsControl.
// Zero control events returns 1.
func DegreeOfCertaintyCounts(eventsControl, exposureControl, eventsTreatment, exposureTreatment float64) (float64, error) {
	if err := validateCounts(eventsControl, exposureControl, eventsTreatment, exposureTreatment); err != nil {
		return 0, err
	}

	terms := math.Floor(eventsControl)
	frac := eventsControl - terms
	logX := math.Log(exposureControl) - math.Log(exposureControl+exposureTreatment)
	log1mX := math.Log(exposureTreatment) - math.Log(exposureControl+exposureTreatment)

	total := 1.0
	if frac > 0 {
		x := exposureControl / (exposureControl + exposureTreatment)
		total = mathext.RegIncBeta(frac, eventsTreatment, x)
		if math.IsNaN(total) {
			return 0, fmt.Errorf("%w: incomplete beta at events_control=%v events_treatment=%v is NaN",
				ErrDomain, eventsControl, eventsTreatment)
		}
	}
	for k := 0; k < int(terms); k++ {
		a := frac + float64(k)
		logTerm := a*logX +
			eventsTreatment*log1mX -
			math.Log(a+eventsTreatment) -
			mathext.Lbeta(a+1, eventsTreatment)
		if math.IsNaN(logTerm) || math.IsInf(logTerm, 1) {
			return 0, fmt.Errorf("%w: count term k=%d is %v", ErrDomain, k, logTerm)
		}
		total -= math.Exp(logTerm)
	}
	return clampProbability(total)
}

// DegreeOfCertaintyObservations is DegreeOfCertaintyCounts over value types.
func DegreeOfCertaintyObservations(control, treatment CountObservation) (float64, error) {
	return DegreeOfCertaintyCounts(control.Events, control.Exposure, treatment.Events, treatment.Exposure)
}

func validateCounts(eventsControl, exposureControl, eventsTreatment, exposureTreatment float64) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"events_control", eventsControl},
		{"exposure_control", exposureControl},
		{"events_treatment", eventsTreatment},
		{"exposure_treatment", exposureTreatment},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidCount, f.name, f.value)
		}
	}
	if exposureControl <= 0 {
		return fmt.Errorf("%w: exposure_control must be positive, got %v", ErrInvalidCount, exposureControl)
	}
	if exposureTreatment <= 0 {
		return fmt.Errorf("%w: exposure_treatment must be positive, got %v", ErrInvalidCount, exposureTreatment)
	}
	if eventsControl < 0 {
		return fmt.Errorf("%w: events_control must be non-negative, got %v", ErrInvalidCount, eventsControl)
	}
	if eventsTreatment <= 0 {
		return fmt.Errorf("%w: events_treatment must be positive, got %v", ErrInvalidCount, eventsTreatment)
	}
	return nil
}
