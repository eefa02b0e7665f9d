package abtest

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// Seed selects the simulated experiments of a run. Rerunning a design with the
// same Seed replays the same draws.
type Seed int64

// DefaultSeed is used when no seed is configured.
const DefaultSeed Seed = 9252018

// Stream names.
const (
	// SubsystemControl draws the control arm's simulated outcomes.
	SubsystemControl = "control"

	// SubsystemTreatment draws the treatment arm's simulated outcomes.
	SubsystemTreatment = "treatment"

	// SubsystemPosterior draws posterior samples for write-up summaries.
	SubsystemPosterior = "posterior"
)

// subsystemPoint names the stream of a sweep's design point.
func subsystemPoint(index int) string {
	return fmt.Sprintf("point_%d", index)
}

// PartitionedRNG hands out one PCG stream per named subsystem, keyed by
// (seed, fnv1a64(name)). Drawing more control outcomes leaves the treatment
// and posterior streams where they were.
//
// A PartitionedRNG belongs to one goroutine; a sweep gives each design point
// its own (see ForPoint).
type PartitionedRNG struct {
	seed       Seed
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a Seed.
func NewPartitionedRNG(seed Seed) *PartitionedRNG {
	return &PartitionedRNG{
		seed:       seed,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns the stream for name, creating it on first use. Later
// calls with the same name continue that stream.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewPCG(uint64(p.seed), fnv1a64(name)))
	p.subsystems[name] = rng
	return rng
}

// ForPoint returns a fresh PartitionedRNG for design point index, seeded with
// seed XOR fnv1a64("point_<index>"). The result does not depend on the order
// in which points are requested.
func (p *PartitionedRNG) ForPoint(index int) *PartitionedRNG {
	return NewPartitionedRNG(p.seed ^ Seed(fnv1a64(subsystemPoint(index))))
}

// Seed returns the seed used to create this PartitionedRNG.
func (p *PartitionedRNG) Seed() Seed {
	return p.seed
}

// fnv1a64 maps a stream name to the PCG stream selector.
func fnv1a64(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}
