package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labdc/abpower/abtest/montecarlo"
	"github.com/labdc/abpower/abtest/power"
)

func TestWriteCertainty_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCertainty(&buf, formatText, "Pr(p_B > p_A)", 0.5))
	assert.Equal(t, "Pr(p_B > p_A) = 0.500000\n", buf.String())
}

func TestWriteCertainty_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCertainty(&buf, formatJSON, "ignored", 0.25))

	var got map[string]float64
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, map[string]float64{"certainty": 0.25}, got)
}

func sampleResults() []power.PointResult {
	return []power.PointResult{
		{Index: 0, Point: power.DesignPoint{SampleSize: 100, EffectSize: 0.05, BaseRate: 0.1}, Power: 0.42},
		{Index: 1, Point: power.DesignPoint{SampleSize: 100, EffectSize: 0.05, BaseRate: 0.99}, Err: errors.New("treatment_rate out of range")},
	}
}

func TestWritePowerResults_Text(t *testing.T) {
	cfg := validSweep()
	var buf bytes.Buffer
	require.NoError(t, writePowerResults(&buf, formatText, &cfg, sampleResults()))

	out := buf.String()
	assert.Contains(t, out, "=== Power Analysis")
	assert.Contains(t, out, "0.4200")
	assert.Contains(t, out, "error: treatment_rate out of range")
}

func TestWritePowerResults_JSONKeepsFailedPoints(t *testing.T) {
	// GIVEN one successful and one failed design point
	cfg := validSweep()
	var buf bytes.Buffer

	// WHEN results are written as JSON
	require.NoError(t, writePowerResults(&buf, formatJSON, &cfg, sampleResults()))

	// THEN both points appear; only the successful one carries a power
	var got powerReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got.Points, 2)
	require.NotNil(t, got.Points[0].Power)
	assert.Equal(t, 0.42, *got.Points[0].Power)
	assert.Empty(t, got.Points[0].Error)
	assert.Nil(t, got.Points[1].Power)
	assert.Equal(t, "treatment_rate out of range", got.Points[1].Error)
	assert.Equal(t, "binary", got.Outcome)
	assert.Equal(t, cfg.NumDraws, got.NumDraws)
}

func TestWriteWriteup(t *testing.T) {
	wu := montecarlo.Writeup{
		Power:     0.5,
		Draws:     []float64{0.2, 0.4, 0.96, 0.99},
		Posterior: []float64{-0.01, 0.0, 0.01, 0.02},
	}

	var text bytes.Buffer
	require.NoError(t, writeWriteup(&text, formatText, wu))
	assert.Contains(t, text.String(), "=== Simulated Draws (4) ===")
	assert.Contains(t, text.String(), "0.5000")

	var js bytes.Buffer
	require.NoError(t, writeWriteup(&js, formatJSON, wu))
	var got writeupReport
	require.NoError(t, json.Unmarshal(js.Bytes(), &got))
	assert.Equal(t, 0.5, got.Power)
	assert.Equal(t, 4, got.Draws.Count)
	assert.Equal(t, 0.99, got.Draws.Max)
	assert.Equal(t, -0.01, got.Posterior.Min)
}

func TestWriteWriteup_EmptyDrawsFails(t *testing.T) {
	var buf bytes.Buffer
	err := writeWriteup(&buf, formatText, montecarlo.Writeup{})
	assert.Error(t, err)
	assert.Empty(t, buf.String())
}
