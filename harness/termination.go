package harness

import (
	"math"

	"github.com/probassert/probassert/model"
)

// TerminationEvaluator is the Early-Termination Evaluator (C8): a pure
// function of (successes, failures, totalSamples, minPassRate) deciding
// whether a run's outcome is already mathematically determined.
type TerminationEvaluator struct {
	totalSamples      int
	requiredSuccesses int
}

// NewTerminationEvaluator constructs a TerminationEvaluator for a run of
// totalSamples samples requiring at least minPassRate of them to succeed.
func NewTerminationEvaluator(totalSamples int, minPassRate float64) *TerminationEvaluator {
	return &TerminationEvaluator{
		totalSamples:      totalSamples,
		requiredSuccesses: int(math.Ceil(float64(totalSamples) * minPassRate)),
	}
}

// Evaluate returns the termination reason implied by the given counts, or
// TerminationNone if the outcome is not yet determined. The decision is a
// pure function of its arguments (spec.md §8, invariant 7).
func (e *TerminationEvaluator) Evaluate(successes, failures int) model.TerminationReason {
	samplesExecuted := successes + failures
	remaining := e.totalSamples - samplesExecuted

	// minPassRate == 0 means requiredSuccesses == 0: impossibility can
	// never trigger, since 0 successes already satisfies the requirement.
	if successes+remaining < e.requiredSuccesses {
		return model.TerminationImpossibility
	}

	// Success is guaranteed once the worst case (every remaining sample
	// also fails) cannot push total failures past the tolerable cap
	// (totalSamples - requiredSuccesses) — note the boundary is inclusive:
	// failing exactly up to the cap still leaves successes == required,
	// which satisfies minPassRate.
	allRemainingFail := failures + remaining
	if allRemainingFail <= e.totalSamples-e.requiredSuccesses {
		return model.TerminationSuccessGuaranteed
	}

	return model.TerminationNone
}

// RequiredSuccesses returns ceil(totalSamples * minPassRate).
func (e *TerminationEvaluator) RequiredSuccesses() int { return e.requiredSuccesses }
