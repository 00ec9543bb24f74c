package model

// ProportionEstimate is a point estimate of a binomial proportion together
// with its two-sided confidence interval, as produced by
// stats.Estimate.
type ProportionEstimate struct {
	PointEstimate   float64
	SampleSize      int
	LowerBound      float64
	UpperBound      float64
	ConfidenceLevel float64
}

// SampleSizeRequirement is the output of a power-analysis sample-size
// calculation (C2): how many trials are needed to detect a degradation of
// Delta from BaselineRate P0 at significance Confidence with the given
// Power, plus the derived alternative rate P1.
type SampleSizeRequirement struct {
	P0             float64
	Delta          float64
	Confidence     float64
	Power          float64
	P1             float64
	RequiredSamples int
}

// FeasibilityResult is the output of the Feasibility Evaluator (C4): can a
// configured (n, p0, confidence) ever yield a verification-grade verdict.
type FeasibilityResult struct {
	Feasible       bool
	MinimumSamples int
	Alpha          float64
	P0             float64
	N              int
	Criterion      string
}
