package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labdc/abpower/abtest"
	"github.com/labdc/abpower/abtest/power"
)

func writeSweepFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sweep.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func validSweep() SweepConfig {
	cfg := DefaultSweepConfig()
	cfg.SampleSizes = []int{100, 200}
	cfg.EffectSizes = []float64{0.05}
	cfg.BaseRates = []float64{0.1, 0.2}
	return cfg
}

func TestLoadSweepConfig_UnsetFieldsKeepDefaults(t *testing.T) {
	// GIVEN a file that only names the grid
	path := writeSweepFile(t, `
sample_sizes: [500, 1000]
effect_sizes: [0.02]
base_rates: [0.1]
`)

	// WHEN it is loaded
	cfg, err := LoadSweepConfig(path)
	require.NoError(t, err)

	// THEN the grid comes from the file and everything else from the defaults
	assert.Equal(t, []int{500, 1000}, cfg.SampleSizes)
	assert.Equal(t, []float64{0.02}, cfg.EffectSizes)
	assert.Equal(t, "binary", cfg.Outcome)
	assert.Equal(t, "increase", cfg.Direction)
	assert.Equal(t, 1000, cfg.NumDraws)
	assert.Equal(t, int64(abtest.DefaultSeed), cfg.Seed)
	assert.Equal(t, abtest.DefaultThreshold, cfg.Threshold)
	assert.NoError(t, cfg.Validate())
}

func TestLoadSweepConfig_AllFields(t *testing.T) {
	path := writeSweepFile(t, `
outcome: count
direction: decrease
sample_sizes: [40]
effect_sizes: [0.5, 1.0]
base_rates: [3]
num_draws: 50
exposure: 2.5
seed: 7
decorrelate: true
workers: 3
threshold: 0.9
`)
	cfg, err := LoadSweepConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "count", cfg.Outcome)
	assert.Equal(t, "decrease", cfg.Direction)
	assert.Equal(t, 50, cfg.NumDraws)
	assert.Equal(t, 2.5, cfg.Exposure)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.True(t, cfg.Decorrelate)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, 0.9, cfg.Threshold)

	sc := cfg.Scenario()
	assert.Equal(t, abtest.OutcomeCount, sc.Outcome)
	assert.Equal(t, abtest.Decrease, sc.Direction)
	assert.Equal(t, abtest.Seed(7), sc.Seed)
	assert.True(t, sc.Decorrelate)
}

func TestLoadSweepConfig_UnknownKeyRejected(t *testing.T) {
	// GIVEN a typo in a key
	path := writeSweepFile(t, `
sample_size: [100]
effect_sizes: [0.05]
base_rates: [0.1]
`)

	// THEN strict parsing refuses the file instead of silently ignoring the key
	_, err := LoadSweepConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sample_size")
}

func TestLoadSweepConfig_MissingFile(t *testing.T) {
	_, err := LoadSweepConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading sweep config")
}

func TestSweepConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SweepConfig)
		wantErr string
	}{
		{"empty sample sizes", func(c *SweepConfig) { c.SampleSizes = nil }, "sample_sizes"},
		{"empty effect sizes", func(c *SweepConfig) { c.EffectSizes = nil }, "effect_sizes"},
		{"empty base rates", func(c *SweepConfig) { c.BaseRates = nil }, "base_rates"},
		{"non-positive sample size", func(c *SweepConfig) { c.SampleSizes = []int{100, 0} }, "sample_sizes[1]"},
		{"zero threshold", func(c *SweepConfig) { c.Threshold = 0 }, "threshold"},
		{"threshold above one", func(c *SweepConfig) { c.Threshold = 1.5 }, "threshold"},
		{"negative workers", func(c *SweepConfig) { c.Workers = -1 }, "workers"},
		{"count without exposure", func(c *SweepConfig) {
			c.Outcome = "count"
			c.Exposure = 0
		}, "exposure"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validSweep()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSweepConfig_PointsFollowGridOrder(t *testing.T) {
	cfg := validSweep()
	points := cfg.Points()
	require.Len(t, points, 4)
	assert.Equal(t, power.DesignPoint{SampleSize: 100, EffectSize: 0.05, BaseRate: 0.1}, points[0])
	assert.Equal(t, power.DesignPoint{SampleSize: 100, EffectSize: 0.05, BaseRate: 0.2}, points[1])
	assert.Equal(t, power.DesignPoint{SampleSize: 200, EffectSize: 0.05, BaseRate: 0.1}, points[2])
}

func TestLoadSweepConfig_ShippedExamples(t *testing.T) {
	for _, name := range []string{"sweep.yaml", "count_sweep.yaml"} {
		t.Run(name, func(t *testing.T) {
			cfg, err := LoadSweepConfig(filepath.Join("..", "examples", name))
			require.NoError(t, err)
			assert.NoError(t, cfg.Validate())
		})
	}
}
