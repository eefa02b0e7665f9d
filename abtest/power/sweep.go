package power

import (
	"context"
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/labdc/abpower/abtest"
)

// PointResult is the outcome of one design point. Exactly one of Power and
// Err is meaningful.
type PointResult struct {
	Index int
	Point DesignPoint
	Power float64
	Err   error
}

// Options tunes how a sweep is executed. It never changes the results.
type Options struct {
	// Workers bounds the number of design points evaluated concurrently.
	// Zero or negative means runtime.GOMAXPROCS(0).
	Workers int
}

// Sweep evaluates every combination of the inputs. See Combinations and Run.
func Sweep(ctx context.Context, sampleSizes []int, effectSizes, baseRates []float64, sc Scenario, opts Options) ([]PointResult, error) {
	return Run(ctx, Combinations(sampleSizes, effectSizes, baseRates), sc, opts)
}

// Run evaluates every design point and returns one result per point in input
// order. A point that fails, including by a numerical panic, records its error
// in its own slot while the remaining points are still evaluated.
//
// If ctx is cancelled, points not yet started record ctx.Err() and Run returns
// the partial results together with ctx.Err(). An invalid scenario fails the
// whole run before any point is evaluated.
func Run(ctx context.Context, points []DesignPoint, sc Scenario, opts Options) ([]PointResult, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	logrus.Debugf("power sweep: %d design points, outcome=%s, direction=%s, draws=%d, workers=%d",
		len(points), sc.Outcome, sc.Direction, sc.NumDraws, workers)

	base := abtest.NewPartitionedRNG(sc.Seed)
	results := make([]PointResult, len(points))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, pt := range points {
		results[i] = PointResult{Index: i, Point: pt}
		if err := gctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Power, results[i].Err = evaluate(i, pt, sc, base)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; failures live in results

	return results, ctx.Err()
}

// evaluate runs one design point on its own stream.
func evaluate(index int, pt DesignPoint, sc Scenario, base *abtest.PartitionedRNG) (power float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			power = 0
			err = fmt.Errorf("design point %d (%s): %w: %v", index, pt, abtest.ErrDomain, r)
			logrus.Warnf("%v", err)
		}
	}()

	rng := abtest.NewPartitionedRNG(sc.Seed)
	if sc.Decorrelate {
		rng = base.ForPoint(index)
	}
	power, err = Estimate(pt, sc, rng)
	if err != nil {
		err = fmt.Errorf("design point %d (%s): %w", index, pt, err)
		logrus.Warnf("%v", err)
		return 0, err
	}
	logrus.Debugf("design point %d (%s): power=%.4f, seed=%d", index, pt, power, rng.Seed())
	return power, nil
}

// Failed returns the results that carry an error, in input order.
func Failed(results []PointResult) []PointResult {
	var failed []PointResult
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}
