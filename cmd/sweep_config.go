package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/labdc/abpower/abtest"
	"github.com/labdc/abpower/abtest/power"
)

// SweepConfig is the YAML description of a power sweep.
// Loaded via LoadSweepConfig(path); unset fields keep DefaultSweepConfig values.
type SweepConfig struct {
	Outcome     string    `yaml:"outcome"`
	Direction   string    `yaml:"direction"`
	SampleSizes []int     `yaml:"sample_sizes"`
	EffectSizes []float64 `yaml:"effect_sizes"`
	BaseRates   []float64 `yaml:"base_rates"`
	NumDraws    int       `yaml:"num_draws"`
	Exposure    float64   `yaml:"exposure,omitempty"` // per-observation exposure, count outcome only
	Seed        int64     `yaml:"seed"`
	Decorrelate bool      `yaml:"decorrelate"`
	Workers     int       `yaml:"workers,omitempty"` // 0 = GOMAXPROCS
	Threshold   float64   `yaml:"threshold"`
}

// DefaultSweepConfig returns the settings used when neither a file nor a flag
// provides a value.
func DefaultSweepConfig() SweepConfig {
	return SweepConfig{
		Outcome:   string(abtest.OutcomeBinary),
		Direction: string(abtest.Increase),
		NumDraws:  1000,
		Exposure:  1,
		Seed:      int64(abtest.DefaultSeed),
		Threshold: abtest.DefaultThreshold,
	}
}

// LoadSweepConfig reads and parses a YAML sweep file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadSweepConfig(path string) (*SweepConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sweep config: %w", err)
	}
	cfg := DefaultSweepConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing sweep config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the sweep can be run.
func (c *SweepConfig) Validate() error {
	if len(c.SampleSizes) == 0 {
		return fmt.Errorf("sample_sizes must not be empty")
	}
	if len(c.EffectSizes) == 0 {
		return fmt.Errorf("effect_sizes must not be empty")
	}
	if len(c.BaseRates) == 0 {
		return fmt.Errorf("base_rates must not be empty")
	}
	for i, n := range c.SampleSizes {
		if n <= 0 {
			return fmt.Errorf("sample_sizes[%d] must be positive, got %d", i, n)
		}
	}
	if c.Threshold <= 0 || c.Threshold > 1 {
		return fmt.Errorf("threshold must be in (0, 1], got %v", c.Threshold)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	return c.Scenario().Validate()
}

// Scenario converts the config into the settings shared by every design point.
func (c *SweepConfig) Scenario() power.Scenario {
	return power.Scenario{
		Outcome:     abtest.Outcome(c.Outcome),
		Direction:   abtest.Direction(c.Direction),
		NumDraws:    c.NumDraws,
		Exposure:    c.Exposure,
		Threshold:   c.Threshold,
		Seed:        abtest.Seed(c.Seed),
		Decorrelate: c.Decorrelate,
	}
}

// Points returns the sweep's design points in evaluation order.
func (c *SweepConfig) Points() []power.DesignPoint {
	return power.Combinations(c.SampleSizes, c.EffectSizes, c.BaseRates)
}
