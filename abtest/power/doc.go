// Package power estimates how often an experiment design detects a true
// effect, across a grid of sample sizes, effect sizes and base rates.
//
// Combinations builds the grid; Estimate simulates one design point; Run
// evaluates a whole grid in parallel and returns one PointResult per point in
// input order. A failing point carries its own error and never aborts the
// rest of the sweep.
package power
