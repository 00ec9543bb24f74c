package stats

import (
	"math"

	"github.com/probassert/probassert/model"
)

// CalculateForPower returns the sample size required to detect a
// degradation of delta from baseline rate p0, at significance confidence
// with the given power. p1 = p0 - delta is the alternative rate; it is an
// error for p1 to be negative.
func CalculateForPower(p0, delta, confidence, power float64) (model.SampleSizeRequirement, error) {
	p1 := p0 - delta
	if p1 < 0 {
		return model.SampleSizeRequirement{}, model.NewInvalidArgument(
			"p0 - delta must be >= 0, got p0=%v delta=%v (p1=%v)", p0, delta, p1)
	}
	if err := checkConfidence(confidence); err != nil {
		return model.SampleSizeRequirement{}, err
	}
	if err := checkConfidence(power); err != nil {
		return model.SampleSizeRequirement{}, err
	}

	sigma0 := math.Sqrt(p0 * (1 - p0))
	sigma1 := math.Sqrt(p1 * (1 - p1))

	zAlpha := standardNormal.Quantile(confidence)
	zBeta := standardNormal.Quantile(power)

	n := math.Ceil(math.Pow((zAlpha*sigma0+zBeta*sigma1)/delta, 2))

	return model.SampleSizeRequirement{
		P0:              p0,
		Delta:           delta,
		Confidence:      confidence,
		Power:           power,
		P1:              p1,
		RequiredSamples: int(n),
	}, nil
}

// CalculateAchievedPower returns the statistical power achieved by a given
// sample size n for detecting a degradation of delta from baseline rate p0
// at significance confidence.
func CalculateAchievedPower(n int, p0, delta, confidence float64) (float64, error) {
	if n <= 0 {
		return 0, model.NewInvalidArgument("n must be > 0, got %d", n)
	}
	if err := checkConfidence(confidence); err != nil {
		return 0, err
	}

	p1 := p0 - delta
	sigma0 := math.Sqrt(p0 * (1 - p0))
	sigma1 := math.Sqrt(p1 * (1 - p1))
	if sigma1 == 0 {
		return 0, model.NewInvalidArgument("p1 = p0 - delta must not collapse to 0 or 1, got %v", p1)
	}

	zAlpha := standardNormal.Quantile(confidence)
	zBeta := (delta*math.Sqrt(float64(n)) - zAlpha*sigma0) / sigma1

	return standardNormal.CDF(zBeta), nil
}
