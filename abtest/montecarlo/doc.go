// Package montecarlo simulates repeated runs of an experiment under an
// assumed truth and feeds every simulated outcome through the abtest
// posterior engines.
//
// Binary arms draw successes from Binomial(n, rate). Count arms draw event
// totals from Gamma(events, 1) as a continuous stand-in for a large Poisson
// count, with exposure held fixed. Each arm reads from its own subsystem of
// the caller's abtest.PartitionedRNG.
package montecarlo
