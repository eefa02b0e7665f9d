package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/labdc/abpower/abtest"
	"github.com/labdc/abpower/abtest/montecarlo"
	"github.com/labdc/abpower/abtest/power"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// pointRecord is the serialized form of one design point's result.
type pointRecord struct {
	Index      int      `json:"index"`
	SampleSize int      `json:"sample_size"`
	EffectSize float64  `json:"effect_size"`
	BaseRate   float64  `json:"base_rate"`
	Power      *float64 `json:"power,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// powerReport is the serialized form of a whole sweep.
type powerReport struct {
	Outcome   string        `json:"outcome"`
	Direction string        `json:"direction"`
	NumDraws  int           `json:"num_draws"`
	Threshold float64       `json:"threshold"`
	Seed      int64         `json:"seed"`
	Points    []pointRecord `json:"points"`
}

// writeupReport is the serialized form of a single-design simulation.
type writeupReport struct {
	Power     float64        `json:"power"`
	Draws     abtest.Summary `json:"draws"`
	Posterior abtest.Summary `json:"posterior_difference"`
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeCertainty(w io.Writer, format, label string, p float64) error {
	if format == formatJSON {
		return writeJSON(w, map[string]float64{"certainty": p})
	}
	_, err := fmt.Fprintf(w, "%s = %.6f\n", label, p)
	return err
}

func newPowerReport(cfg *SweepConfig, results []power.PointResult) powerReport {
	report := powerReport{
		Outcome:   cfg.Outcome,
		Direction: cfg.Direction,
		NumDraws:  cfg.NumDraws,
		Threshold: cfg.Threshold,
		Seed:      cfg.Seed,
		Points:    make([]pointRecord, 0, len(results)),
	}
	for _, r := range results {
		rec := pointRecord{
			Index:      r.Index,
			SampleSize: r.Point.SampleSize,
			EffectSize: r.Point.EffectSize,
			BaseRate:   r.Point.BaseRate,
		}
		if r.Err != nil {
			rec.Error = r.Err.Error()
		} else {
			p := r.Power
			rec.Power = &p
		}
		report.Points = append(report.Points, rec)
	}
	return report
}

func writePowerResults(w io.Writer, format string, cfg *SweepConfig, results []power.PointResult) error {
	report := newPowerReport(cfg, results)
	if format == formatJSON {
		return writeJSON(w, report)
	}

	fmt.Fprintf(w, "=== Power Analysis (%s, %s, %d draws, threshold %.2f) ===\n",
		report.Outcome, report.Direction, report.NumDraws, report.Threshold)
	fmt.Fprintf(w, "%-12s %-12s %-12s %s\n", "sample_size", "effect_size", "base_rate", "power")
	for _, rec := range report.Points {
		if rec.Power == nil {
			fmt.Fprintf(w, "%-12d %-12g %-12g error: %s\n", rec.SampleSize, rec.EffectSize, rec.BaseRate, rec.Error)
			continue
		}
		fmt.Fprintf(w, "%-12d %-12g %-12g %.4f\n", rec.SampleSize, rec.EffectSize, rec.BaseRate, *rec.Power)
	}
	return nil
}

func writeWriteup(w io.Writer, format string, wu montecarlo.Writeup) error {
	draws, err := abtest.Summarize(wu.Draws)
	if err != nil {
		return err
	}
	posterior, err := abtest.Summarize(wu.Posterior)
	if err != nil {
		return err
	}
	report := writeupReport{Power: wu.Power, Draws: draws, Posterior: posterior}
	if format == formatJSON {
		return writeJSON(w, report)
	}

	fmt.Fprintf(w, "=== Simulated Draws (%d) ===\n", draws.Count)
	fmt.Fprintf(w, "power:                 %.4f\n", report.Power)
	fmt.Fprintf(w, "certainty mean:        %.4f\n", draws.Mean)
	fmt.Fprintf(w, "certainty 95%% range:   [%.4f, %.4f]\n", draws.Lower, draws.Upper)
	fmt.Fprintf(w, "difference median:     %.4f\n", posterior.Median)
	fmt.Fprintf(w, "difference 95%% range:  [%.4f, %.4f]\n", posterior.Lower, posterior.Upper)
	return nil
}
