//go:build property
// +build property

package abtest

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"gonum.org/v1/gonum/mathext"
)

// TestDegreeOfCertaintyProperties checks the binary posterior engine over
// randomly generated arm counts.
func TestDegreeOfCertaintyProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// Property: identical arms sit at one half
	properties.Property("identical arms", prop.ForAll(
		func(s, f int) bool {
			p, err := DegreeOfCertainty(s, f, s, f)
			return err == nil && p > 0 && p < 1 && math.Abs(p-0.5) < 1e-6
		},
		gen.IntRange(0, 400),
		gen.IntRange(0, 400),
	))

	// Property: one more treatment success never lowers certainty
	properties.Property("monotone in treatment successes", prop.ForAll(
		func(sa, fa, sb, fb int) bool {
			p1, err1 := DegreeOfCertainty(sa, fa, sb, fb)
			p2, err2 := DegreeOfCertainty(sa, fa, sb+1, fb)
			return err1 == nil && err2 == nil && p2 >= p1-1e-12
		},
		gen.IntRange(0, 200),
		gen.IntRange(0, 200),
		gen.IntRange(0, 200),
		gen.IntRange(0, 200),
	))

	// Property: swapping arms gives the complement
	properties.Property("swap complement", prop.ForAll(
		func(sa, fa, sb, fb int) bool {
			p, err1 := DegreeOfCertainty(sa, fa, sb, fb)
			q, err2 := DegreeOfCertainty(sb, fb, sa, fa)
			return err1 == nil && err2 == nil && math.Abs(p+q-1) < 1e-8
		},
		gen.IntRange(0, 150),
		gen.IntRange(0, 150),
		gen.IntRange(0, 150),
		gen.IntRange(0, 150),
	))

	properties.TestingRun(t)
}

// TestDegreeOfCertaintyCountsProperties checks the count posterior engine.
func TestDegreeOfCertaintyCountsProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// Property: result is always a probability
	properties.Property("bounded", prop.ForAll(
		func(ec, et int, xc, xt float64) bool {
			p, err := DegreeOfCertaintyCounts(float64(ec), xc, float64(et), xt)
			return err == nil && p >= 0 && p <= 1
		},
		gen.IntRange(0, 500),
		gen.IntRange(1, 500),
		gen.Float64Range(0.5, 200),
		gen.Float64Range(0.5, 200),
	))

	// Property: equal integer totals and exposures sit at one half
	properties.Property("identical arms", prop.ForAll(
		func(e int, x float64) bool {
			p, err := DegreeOfCertaintyCounts(float64(e), x, float64(e), x)
			return err == nil && math.Abs(p-0.5) < 1e-6
		},
		gen.IntRange(1, 500),
		gen.Float64Range(0.5, 200),
	))

	// Property: more control events, even fractional ones, never raise certainty
	properties.Property("monotone in continuous control events", prop.ForAll(
		func(ec, step, et, xc, xt float64) bool {
			p1, err1 := DegreeOfCertaintyCounts(ec, xc, et, xt)
			p2, err2 := DegreeOfCertaintyCounts(ec+step, xc, et, xt)
			return err1 == nil && err2 == nil && p2 <= p1+1e-9
		},
		gen.Float64Range(0, 200),
		gen.Float64Range(0, 5),
		gen.Float64Range(0.2, 200),
		gen.Float64Range(0.5, 200),
		gen.Float64Range(0.5, 200),
	))

	// Property: integer totals agree with the regularized incomplete beta
	properties.Property("integer sum matches incomplete beta", prop.ForAll(
		func(ec int, et, xc, xt float64) bool {
			p, err := DegreeOfCertaintyCounts(float64(ec), xc, et, xt)
			want := mathext.RegIncBeta(float64(ec), et, xc/(xc+xt))
			return err == nil && math.Abs(p-want) < 1e-8
		},
		gen.IntRange(1, 200),
		gen.Float64Range(0.2, 200),
		gen.Float64Range(0.5, 200),
		gen.Float64Range(0.5, 200),
	))

	properties.TestingRun(t)
}
