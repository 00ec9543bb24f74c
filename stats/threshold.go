package stats

import (
	"math"

	"github.com/probassert/probassert/model"
)

// ImpliedConfidenceSoundnessCutoff is the policy constant below which a
// Threshold-First inversion is considered statistically unsound (spec.md
// §9, Open Question 2: kept in the core rather than a presentation layer,
// since the core is what produces qualified verdicts).
const ImpliedConfidenceSoundnessCutoff = 0.80

// impliedConfidenceSearchLowerBound and impliedConfidenceSearchUpperBound
// bound the binary search DeriveThresholdFirst runs to recover an implied
// confidence. Inherited as-is from spec.md §4.3; their stability at
// extreme thresholds is not proven (spec.md §9, Open Question 1).
const (
	impliedConfidenceSearchLowerBound = 0.01
	impliedConfidenceSearchUpperBound = 0.9999999
	impliedConfidenceTolerance        = 1e-4
	impliedConfidenceMaxIterations    = 100
)

// DeriveSampleSizeFirst derives a test threshold from a baseline
// observation: the one-sided Wilson lower bound at confidence c is the
// largest hypothesis p0 the baseline data would fail to reject at level
// alpha, so using it as the threshold bounds the long-run false-positive
// rate under "system unchanged" at alpha.
func DeriveSampleSizeFirst(baseN, baseK, testN int, confidence float64) (model.DerivedThreshold, error) {
	value, err := LowerBound(baseK, baseN, confidence)
	if err != nil {
		return model.DerivedThreshold{}, err
	}
	return model.DerivedThreshold{
		Value:    value,
		Approach: model.SampleSizeFirst,
		Context: model.DerivationContext{
			BaselineRate:    float64(baseK) / float64(baseN),
			BaselineSamples: baseN,
			TestSamples:     testN,
			Confidence:      confidence,
		},
		IsStatisticallySound: true,
	}, nil
}

// DeriveThresholdFirst returns a DerivedThreshold carrying an explicitly
// chosen threshold value, together with the confidence that value would
// have been derived at under Sample-Size-First (the "implied confidence"),
// recovered by binary search since LowerBound is strictly decreasing in
// confidence.
func DeriveThresholdFirst(baseN, baseK, testN int, explicitThreshold float64) (model.DerivedThreshold, error) {
	if explicitThreshold < 0 || explicitThreshold > 1 {
		return model.DerivedThreshold{}, model.NewInvalidArgument(
			"explicitThreshold must be in [0, 1], got %v", explicitThreshold)
	}

	impliedConfidence, err := impliedConfidenceFor(baseN, baseK, explicitThreshold)
	if err != nil {
		return model.DerivedThreshold{}, err
	}

	return model.DerivedThreshold{
		Value:    explicitThreshold,
		Approach: model.ThresholdFirst,
		Context: model.DerivationContext{
			BaselineRate:    float64(baseK) / float64(baseN),
			BaselineSamples: baseN,
			TestSamples:     testN,
			Confidence:      impliedConfidence,
		},
		IsStatisticallySound: impliedConfidence >= ImpliedConfidenceSoundnessCutoff,
	}, nil
}

// impliedConfidenceFor binary-searches c in
// (impliedConfidenceSearchLowerBound, impliedConfidenceSearchUpperBound)
// for the value whose LowerBound(baseK, baseN, c) equals target, within
// impliedConfidenceTolerance, in at most impliedConfidenceMaxIterations
// steps.
func impliedConfidenceFor(baseN, baseK int, target float64) (float64, error) {
	lo, hi := impliedConfidenceSearchLowerBound, impliedConfidenceSearchUpperBound

	loVal, err := LowerBound(baseK, baseN, lo)
	if err != nil {
		return 0, err
	}
	hiVal, err := LowerBound(baseK, baseN, hi)
	if err != nil {
		return 0, err
	}

	// LowerBound is strictly decreasing in confidence: loVal is the
	// largest attainable bound, hiVal the smallest. Clamp targets outside
	// that range to the nearest search endpoint rather than iterating.
	if target >= loVal {
		return lo, nil
	}
	if target <= hiVal {
		return hi, nil
	}

	for i := 0; i < impliedConfidenceMaxIterations; i++ {
		mid := (lo + hi) / 2
		val, err := LowerBound(baseK, baseN, mid)
		if err != nil {
			return 0, err
		}
		if math.Abs(val-target) <= impliedConfidenceTolerance {
			return mid, nil
		}
		if val > target {
			// bound too generous for this target; need higher confidence
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2, nil
}
