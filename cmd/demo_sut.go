package cmd

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"

	"github.com/probassert/probassert/model"
)

// demoSeedKey uniquely identifies a reproducible demo run. Two demo runs
// with the same key and configuration produce bit-for-bit identical
// outcomes.
type demoSeedKey int64

// demoRNG derives a deterministic, isolated RNG per demo subsystem, so a
// failure-injection decision and a latency-jitter decision drawing from the
// same master seed never perturb one another. Adapted from the teacher's
// PartitionedRNG (sim/rng.go): same XOR-with-hash derivation, generalized
// from simulation subsystems to demo-SUT concerns.
type demoRNG struct {
	key        demoSeedKey
	subsystems map[string]*rand.Rand
}

func newDemoRNG(key demoSeedKey) *demoRNG {
	return &demoRNG{key: key, subsystems: make(map[string]*rand.Rand)}
}

func (d *demoRNG) forSubsystem(name string) *rand.Rand {
	if rng, ok := d.subsystems[name]; ok {
		return rng
	}
	derivedSeed := int64(d.key) ^ fnv1a64(name)
	rng := rand.New(rand.NewSource(derivedSeed))
	d.subsystems[name] = rng
	return rng
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

// DemoSUT is a configurable, in-process stand-in for a real system under
// test, used by the measure and run commands so the CLI is exercisable
// without any external dependency. Its failure rate is fixed at
// construction, so running it repeatedly at a stable rate demonstrates the
// statistics engine against a known ground truth.
type DemoSUT struct {
	rng         *demoRNG
	successRate float64
}

// NewDemoSUT constructs a DemoSUT whose samples succeed with probability
// successRate, deterministically seeded by seed.
func NewDemoSUT(seed int64, successRate float64) *DemoSUT {
	return &DemoSUT{
		rng:         newDemoRNG(demoSeedKey(seed)),
		successRate: successRate,
	}
}

// Invoke implements harness.TestBody: it draws the next outcome from the
// demo SUT's seeded RNG at its fixed success rate. The sample index only
// labels the failure message; it does not influence the draw.
func (d *DemoSUT) Invoke(_ context.Context, input model.SampleInput) (model.CriterionOutcomes, error) {
	r := d.rng.forSubsystem("outcome")
	if r.Float64() < d.successRate {
		return model.CriterionOutcomes{model.Passed("demo criterion")}, nil
	}
	return nil, model.NewAssertionFailure(fmt.Sprintf("demo sample %d: synthetic failure", input.Index))
}

// demoInputSource is a harness.InputSource over a fixed count of
// index-only samples; the demo SUT draws its randomness from its own
// seeded RNG, not from the input.
type demoInputSource struct {
	n int
}

func (s demoInputSource) Len() int { return s.n }

func (s demoInputSource) At(i int) model.SampleInput {
	return model.SampleInput{Index: i}
}
