package model

import "math"

// VerdictWithConfidence is the final, qualified pass/fail pronouncement the
// Verdict Evaluator (C6) produces from a run's observed counts and derived
// threshold.
type VerdictWithConfidence struct {
	Passed      bool
	ObservedRate float64
	Threshold   DerivedThreshold

	// FalsePositiveProbability is 0 when Passed, and alpha (1 -
	// threshold.Context.Confidence) when not — except for spec-less
	// Threshold-First failures, where the confidence can't be recovered
	// and this is reported via FalsePositiveUnknown instead.
	FalsePositiveProbability float64
	FalsePositiveUnknown     bool

	Interpretation string
}

// Shortfall returns max(0, threshold.Value - observedRate).
func (v VerdictWithConfidence) Shortfall() float64 {
	return math.Max(0, v.Threshold.Value-v.ObservedRate)
}
