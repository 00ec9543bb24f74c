// Package stats implements the statistics engine (spec components C1-C4):
// Wilson score confidence intervals, one-sided bounds, power-analysis
// sample sizes, threshold derivation, and feasibility evaluation. Every
// function here is pure; none of it logs or touches global state.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/probassert/probassert/model"
)

// standardNormal is the Φ/Φ⁻¹ primitive shared by every formula below.
var standardNormal = distuv.Normal{Mu: 0, Sigma: 1}

func checkTrial(k, n int) error {
	if n <= 0 {
		return model.NewInvalidArgument("n must be > 0, got %d", n)
	}
	if k < 0 || k > n {
		return model.NewInvalidArgument("k must be in [0, %d], got %d", n, k)
	}
	return nil
}

func checkConfidence(c float64) error {
	if c <= 0 || c >= 1 {
		return model.NewInvalidArgument("confidence must be in (0, 1), got %v", c)
	}
	return nil
}

// StandardError returns sqrt(p*(1-p)/n) where p = k/n. Returns 0 when p is
// 0 or 1 — a known collapse at the boundary; callers should prefer the
// Wilson forms (Estimate, LowerBound) near p ∈ {0, 1} rather than this raw
// normal-approximation error.
func StandardError(k, n int) (float64, error) {
	if err := checkTrial(k, n); err != nil {
		return 0, err
	}
	p := float64(k) / float64(n)
	return math.Sqrt(p * (1 - p) / float64(n)), nil
}

// ZScoreOneSided returns Φ⁻¹(1 - alpha) for alpha = 1 - confidence: the
// z-score with all the error budget on one tail.
func ZScoreOneSided(confidence float64) (float64, error) {
	if err := checkConfidence(confidence); err != nil {
		return 0, err
	}
	alpha := 1 - confidence
	return standardNormal.Quantile(1 - alpha), nil
}

// ZScoreTwoSided returns Φ⁻¹(1 - alpha/2) for alpha = 1 - confidence: the
// z-score with the error budget split across both tails.
func ZScoreTwoSided(confidence float64) (float64, error) {
	if err := checkConfidence(confidence); err != nil {
		return 0, err
	}
	alpha := 1 - confidence
	return standardNormal.Quantile(1 - alpha/2), nil
}

// ZTestStatistic returns (observed - hypothesised) / sqrt(hypothesised *
// (1 - hypothesised) / n). Returns 0 when the denominator is 0 (hypothesised
// is 0 or 1).
func ZTestStatistic(observed, hypothesised float64, n int) float64 {
	denom := math.Sqrt(hypothesised * (1 - hypothesised) / float64(n))
	if denom == 0 {
		return 0
	}
	return (observed - hypothesised) / denom
}

// OneSidedPValue returns 1 - Φ(z).
func OneSidedPValue(z float64) float64 {
	return 1 - standardNormal.CDF(z)
}

// Estimate computes the two-sided Wilson score confidence interval for k
// successes in n trials at the given confidence level.
func Estimate(k, n int, confidence float64) (model.ProportionEstimate, error) {
	if err := checkTrial(k, n); err != nil {
		return model.ProportionEstimate{}, err
	}
	if err := checkConfidence(confidence); err != nil {
		return model.ProportionEstimate{}, err
	}

	nf := float64(n)
	p := float64(k) / nf
	z, _ := ZScoreTwoSided(confidence)
	z2 := z * z

	center := (p + z2/(2*nf)) / (1 + z2/nf)
	margin := z * math.Sqrt(p*(1-p)/nf+z2/(4*nf*nf)) / (1 + z2/nf)

	lower := math.Max(0, center-margin)
	upper := math.Min(1, center+margin)

	return model.ProportionEstimate{
		PointEstimate:   p,
		SampleSize:      n,
		LowerBound:      lower,
		UpperBound:      upper,
		ConfidenceLevel: confidence,
	}, nil
}

// LowerBound computes the one-sided Wilson lower bound for k successes in
// n trials at the given confidence level: the largest hypothesis p0 that
// this data would fail to reject at level alpha = 1 - confidence.
func LowerBound(k, n int, confidence float64) (float64, error) {
	if err := checkTrial(k, n); err != nil {
		return 0, err
	}
	if err := checkConfidence(confidence); err != nil {
		return 0, err
	}

	nf := float64(n)
	p := float64(k) / nf
	z, _ := ZScoreOneSided(confidence)
	z2 := z * z

	center := (p + z2/(2*nf)) / (1 + z2/nf)
	margin := z * math.Sqrt(p*(1-p)/nf+z2/(4*nf*nf)) / (1 + z2/nf)

	return math.Max(0, center-margin), nil
}
