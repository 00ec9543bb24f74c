package model

// DerivationContext captures the inputs a DerivedThreshold was computed
// from: the baseline rate and sample size it was derived against, the test
// sample size it will be evaluated over, and the confidence level used (or,
// for Threshold-First, implied).
type DerivationContext struct {
	BaselineRate    float64
	BaselineSamples int
	TestSamples     int
	Confidence      float64
}

// DerivedThreshold is the output of the Threshold Deriver (C3): the
// pass/fail boundary a test's observed rate will be compared against.
type DerivedThreshold struct {
	Value    float64
	Approach OperationalApproach
	Context  DerivationContext

	// IsStatisticallySound is false iff a Threshold-First inversion
	// recovers an implied confidence below the soundness cutoff (see
	// stats.ImpliedConfidenceSoundnessCutoff). Always true for
	// Sample-Size-First thresholds.
	IsStatisticallySound bool
}
