package abtest

import "errors"

var (
	// ErrInvalidDesign reports an experiment design that cannot be simulated,
	// e.g. missing arm sizes or a rate outside [0, 1].
	ErrInvalidDesign = errors.New("invalid design")

	// ErrInvalidCount reports counts or exposures outside the domain of the
	// posterior computation.
	ErrInvalidCount = errors.New("invalid count")

	// ErrDomain reports a numerical failure inside the special-function layer.
	ErrDomain = errors.New("numerical domain error")
)
