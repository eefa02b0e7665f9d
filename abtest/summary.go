package abtest

import (
	"errors"
	"fmt"

	"github.com/montanaflynn/stats"
)

// Summary describes a sample of simulated values: posterior probabilities or
// posterior differences.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Lower  float64 `json:"p2_5"`
	Median float64 `json:"p50"`
	Upper  float64 `json:"p97_5"`
	Max    float64 `json:"max"`
}

// Summarize returns the mean, extremes and central 95% interval of values.
func Summarize(values []float64) (Summary, error) {
	data := stats.Float64Data(values)
	if data.Len() == 0 {
		return Summary{}, errors.New("summarizing draws: no values")
	}
	var (
		s   = Summary{Count: data.Len()}
		err error
	)
	if s.Mean, err = stats.Mean(data); err != nil {
		return Summary{}, fmt.Errorf("summarizing draws: %w", err)
	}
	if s.Min, err = stats.Min(data); err != nil {
		return Summary{}, fmt.Errorf("summarizing draws: %w", err)
	}
	if s.Max, err = stats.Max(data); err != nil {
		return Summary{}, fmt.Errorf("summarizing draws: %w", err)
	}
	if s.Lower, err = stats.Percentile(data, 2.5); err != nil {
		return Summary{}, fmt.Errorf("summarizing draws: %w", err)
	}
	if s.Median, err = stats.Median(data); err != nil {
		return Summary{}, fmt.Errorf("summarizing draws: %w", err)
	}
	if s.Upper, err = stats.Percentile(data, 97.5); err != nil {
		return Summary{}, fmt.Errorf("summarizing draws: %w", err)
	}
	return s, nil
}
