package stats

import (
	"math"

	"github.com/probassert/probassert/model"
)

// Evaluate decides whether a configured (n, p0, confidence) can ever yield
// a verification-grade verdict: the smallest n for which the one-sided
// Wilson lower bound of a perfect run (n successes in n trials) reaches p0
// is minimumSamples, and feasible reports whether n already meets it.
func Evaluate(n int, p0, confidence float64) (model.FeasibilityResult, error) {
	if n <= 0 {
		return model.FeasibilityResult{}, model.NewInvalidArgument("n must be > 0, got %d", n)
	}
	if p0 <= 0 || p0 >= 1 {
		return model.FeasibilityResult{}, model.NewInvalidArgument("p0 must be in (0, 1), got %v", p0)
	}
	if err := checkConfidence(confidence); err != nil {
		return model.FeasibilityResult{}, err
	}

	z, err := ZScoreOneSided(confidence)
	if err != nil {
		return model.FeasibilityResult{}, err
	}
	z2 := z * z

	minimumSamples := int(math.Ceil(p0 * z2 / (1 - p0)))
	if minimumSamples < 1 {
		minimumSamples = 1
	}

	feasibleBound, err := LowerBound(n, n, confidence)
	if err != nil {
		return model.FeasibilityResult{}, err
	}

	return model.FeasibilityResult{
		Feasible:       feasibleBound >= p0,
		MinimumSamples: minimumSamples,
		Alpha:          1 - confidence,
		P0:             p0,
		N:              n,
		Criterion:      "Wilson score one-sided lower bound",
	}, nil
}
