// Package abtest provides the Bayesian core of the A/B power-analysis engine.
//
// # Reading Guide
//
//   - binary.go: Pr(p_treatment > p_control) for success/failure outcomes
//   - counts.go: Pr(rate_treatment > rate_control) for events/exposure outcomes
//   - draws.go: PosteriorDraws and the decision-threshold reducer
//   - rng.go: seeded, partitioned random streams threaded through simulation
//
// # Architecture
//
// The abtest package holds value types and closed-form posterior computations;
// simulation and sweeps live in sub-packages:
//   - abtest/montecarlo/: repeated-experiment simulation feeding the posterior engines
//   - abtest/power/: design-point combinations and the parallel power sweep
//
// Nothing in this tree performs file or network I/O. All randomness comes from
// a PartitionedRNG supplied by the caller, so two calls with the same seed and
// inputs produce bit-for-bit identical results.
package abtest
