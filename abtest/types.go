package abtest

import "fmt"

// Outcome is the family of the measured outcome.
type Outcome string

const (
	OutcomeBinary Outcome = "binary"
	OutcomeCount  Outcome = "count"
)

// Direction is the hypothesized direction of the treatment effect.
type Direction string

const (
	Increase Direction = "increase"
	Decrease Direction = "decrease"
)

// Valid value registries.
var (
	validOutcomes   = map[Outcome]bool{OutcomeBinary: true, OutcomeCount: true}
	validDirections = map[Direction]bool{Increase: true, Decrease: true}
)

// ParseOutcome converts a string into an Outcome.
func ParseOutcome(s string) (Outcome, error) {
	o := Outcome(s)
	if !validOutcomes[o] {
		return "", fmt.Errorf("%w: unknown outcome %q; valid: binary, count", ErrInvalidDesign, s)
	}
	return o, nil
}

// ParseDirection converts a string into a Direction.
func ParseDirection(s string) (Direction, error) {
	d := Direction(s)
	if !validDirections[d] {
		return "", fmt.Errorf("%w: unknown direction %q; valid: increase, decrease", ErrInvalidDesign, s)
	}
	return d, nil
}

// BinaryTrial is the observed outcome of one arm of a binary experiment.
type BinaryTrial struct {
	Successes int
	Failures  int
}

// Trials returns the number of participants in the arm.
func (b BinaryTrial) Trials() int {
	return b.Successes + b.Failures
}

// CountObservation is the observed outcome of one arm of a count experiment.
// Events may be continuous when produced by simulation.
type CountObservation struct {
	Events   float64
	Exposure float64
}

// ArmSizes describes how many participants each arm receives. Zero means the
// value was not supplied. Either NumParticipants, or both NumControl and
// NumTreatment, must be set.
type ArmSizes struct {
	NumParticipants int
	NumControl      int
	NumTreatment    int
}

// Resolve returns the per-arm sizes. A total is split as control = n/2,
// treatment = n - control.
func (a ArmSizes) Resolve() (control, treatment int, err error) {
	if a.NumParticipants < 0 || a.NumControl < 0 || a.NumTreatment < 0 {
		return 0, 0, fmt.Errorf("%w: arm sizes must be non-negative, got num_participants=%d num_control=%d num_treatment=%d",
			ErrInvalidDesign, a.NumParticipants, a.NumControl, a.NumTreatment)
	}
	if a.NumParticipants > 0 {
		control = a.NumParticipants / 2
		return control, a.NumParticipants - control, nil
	}
	switch {
	case a.NumControl > 0 && a.NumTreatment > 0:
		return a.NumControl, a.NumTreatment, nil
	case a.NumControl > 0:
		return 0, 0, fmt.Errorf("%w: num_treatment is required when num_control is provided", ErrInvalidDesign)
	case a.NumTreatment > 0:
		return 0, 0, fmt.Errorf("%w: num_control is required when num_treatment is provided", ErrInvalidDesign)
	default:
		return 0, 0, fmt.Errorf("%w: num_participants, or both num_control and num_treatment, must be provided", ErrInvalidDesign)
	}
}

// ExperimentDesign is one hypothesized experiment: arm sizes plus the assumed
// truth it is simulated under.
type ExperimentDesign struct {
	Arms       ArmSizes
	EffectSize float64
	BaseRate   float64
	Outcome    Outcome
	Direction  Direction
}

// TreatmentRate returns the assumed treatment rate, base ± effect by direction.
func (d ExperimentDesign) TreatmentRate() float64 {
	if d.Direction == Decrease {
		return d.BaseRate - d.EffectSize
	}
	return d.BaseRate + d.EffectSize
}

// Validate checks the design's enumerations and arm sizes.
func (d ExperimentDesign) Validate() error {
	if !validOutcomes[d.Outcome] {
		return fmt.Errorf("%w: unknown outcome %q", ErrInvalidDesign, d.Outcome)
	}
	if !validDirections[d.Direction] {
		return fmt.Errorf("%w: unknown direction %q", ErrInvalidDesign, d.Direction)
	}
	_, _, err := d.Arms.Resolve()
	return err
}
