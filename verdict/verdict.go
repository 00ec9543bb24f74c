// Package verdict implements the Verdict Evaluator (C6): it compares an
// observed success rate to a derived threshold and produces a qualified
// pass/fail verdict with a human-readable interpretation.
package verdict

import (
	"fmt"
	"strings"

	"github.com/probassert/probassert/model"
)

// Evaluate compares testK successes in testN trials against threshold and
// produces a VerdictWithConfidence.
func Evaluate(testK, testN int, threshold model.DerivedThreshold) model.VerdictWithConfidence {
	observedRate := float64(testK) / float64(testN)
	passed := observedRate >= threshold.Value

	v := model.VerdictWithConfidence{
		Passed:       passed,
		ObservedRate: observedRate,
		Threshold:    threshold,
	}

	if passed {
		v.Interpretation = fmt.Sprintf(
			"observed rate %.4f >= threshold %.4f; no evidence of degradation from baseline",
			observedRate, threshold.Value)
		return v
	}

	if threshold.Approach == model.ThresholdFirst && !thresholdConfidenceRecoverable(threshold) {
		v.FalsePositiveUnknown = true
		v.Interpretation = fmt.Sprintf(
			"observed rate %.4f < threshold %.4f (shortfall %.4f); false-positive probability unknown "+
				"(spec-less Threshold-First threshold carries no recoverable confidence level)",
			observedRate, threshold.Value, v.Shortfall())
		return v
	}

	v.FalsePositiveProbability = 1 - threshold.Context.Confidence
	v.Interpretation = fmt.Sprintf(
		"observed rate %.4f < threshold %.4f (shortfall %.4f) at %.1f%% confidence; "+
			"there is a %.1f%% chance this failure reflects sampling variance rather than true degradation",
		observedRate, threshold.Value, v.Shortfall(),
		threshold.Context.Confidence*100, v.FalsePositiveProbability*100)
	return v
}

// thresholdConfidenceRecoverable reports whether a Threshold-First
// threshold's implied confidence is a meaningful alpha to report. A
// spec-less Threshold-First configuration that never derived a baseline
// (BaselineSamples == 0) has no implied confidence to recover.
func thresholdConfidenceRecoverable(threshold model.DerivedThreshold) bool {
	return threshold.Context.BaselineSamples > 0
}

// SummarizeMultipleRuns produces a human-readable summary across repeated
// runs of the same probabilistic test. The probability-of-all-false-
// positives figure assumes the runs are i.i.d.; that assumption is called
// out explicitly in the returned string rather than left implicit (spec.md
// §9, Open Question 3).
func SummarizeMultipleRuns(verdicts ...model.VerdictWithConfidence) string {
	if len(verdicts) == 0 {
		return "No test runs to summarize."
	}

	var failed []model.VerdictWithConfidence
	for _, v := range verdicts {
		if !v.Passed {
			failed = append(failed, v)
		}
	}

	switch len(failed) {
	case 0:
		return fmt.Sprintf("all %d runs passed", len(verdicts))
	case 1:
		return fmt.Sprintf(
			"1 of %d runs failed; single-run false-positive probability %.1f%%",
			len(verdicts), failed[0].FalsePositiveProbability*100)
	default:
		product := 1.0
		for _, v := range failed {
			product *= v.FalsePositiveProbability
		}
		return fmt.Sprintf(
			"%d of %d runs failed; assuming independent (i.i.d.) runs, the probability of all %d "+
				"being false positives is %.6f%% — strong evidence of actual degradation",
			len(failed), len(verdicts), len(failed), product*100)
	}
}

// FormatExampleFailures renders up to maxExamples causes for a failing
// verdict's report, matching the bounded "example causes" the Sample
// Aggregator retains.
func FormatExampleFailures(causes []string, maxExamples int) string {
	if len(causes) == 0 {
		return ""
	}
	if len(causes) > maxExamples {
		causes = causes[:maxExamples]
	}
	return "example failures: " + strings.Join(causes, "; ")
}
