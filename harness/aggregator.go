// Package harness implements the execution engine (spec components
// C7-C11): the sample aggregator, early-termination evaluator, budget
// tracker, pacing scheduler, and the execution driver that ties them
// together. None of these types are safe for concurrent use — a run is
// strictly single-threaded (spec.md §5).
package harness

import (
	"time"

	"github.com/probassert/probassert/model"
)

// Aggregator is the Sample Aggregator (C7): a single-threaded mutable
// accumulator of successes, failures, and termination state for one run.
// Not safe for concurrent use; exclusively owned by a Driver for the
// duration of a run.
type Aggregator struct {
	totalSamples       int
	maxExampleFailures int

	successes int
	failures  int

	exampleFailures []string

	startTime time.Time

	terminationReason  model.TerminationReason
	terminationDetails string
	forcedFailure      bool
}

// NewAggregator constructs an Aggregator for a run of totalSamples samples,
// retaining up to maxExampleFailures failure causes.
func NewAggregator(totalSamples, maxExampleFailures int) *Aggregator {
	return &Aggregator{
		totalSamples:       totalSamples,
		maxExampleFailures: maxExampleFailures,
		startTime:          time.Now(),
	}
}

// RecordSuccess records one successful sample.
func (a *Aggregator) RecordSuccess() {
	a.successes++
}

// RecordFailure records one failed sample, retaining cause only if fewer
// than maxExampleFailures have already been captured.
func (a *Aggregator) RecordFailure(cause string) {
	a.failures++
	if cause != "" && len(a.exampleFailures) < a.maxExampleFailures {
		a.exampleFailures = append(a.exampleFailures, cause)
	}
}

// SetTerminated records the reason a run stopped. Idempotent: once a
// non-empty reason is set, subsequent calls are no-ops — termination is
// sticky.
func (a *Aggregator) SetTerminated(reason model.TerminationReason, details string) {
	if a.terminationReason != model.TerminationNone {
		return
	}
	a.terminationReason = reason
	a.terminationDetails = details
}

// SetCompleted is sugar for SetTerminated(COMPLETED, "").
func (a *Aggregator) SetCompleted() {
	a.SetTerminated(model.TerminationCompleted, "")
}

// SetForcedFailure marks the run as forced to FAIL regardless of observed
// rate (budget exhaustion under the FAIL policy).
func (a *Aggregator) SetForcedFailure(forced bool) {
	a.forcedFailure = forced
}

// Successes returns the number of recorded successes.
func (a *Aggregator) Successes() int { return a.successes }

// Failures returns the number of recorded failures.
func (a *Aggregator) Failures() int { return a.failures }

// SamplesExecuted returns successes + failures. Never decreases.
func (a *Aggregator) SamplesExecuted() int { return a.successes + a.failures }

// RemainingSamples returns totalSamples - SamplesExecuted(), floored at 0.
func (a *Aggregator) RemainingSamples() int {
	remaining := a.totalSamples - a.SamplesExecuted()
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ObservedPassRate returns successes / SamplesExecuted(), or 0 if no
// samples have executed yet.
func (a *Aggregator) ObservedPassRate() float64 {
	executed := a.SamplesExecuted()
	if executed == 0 {
		return 0
	}
	return float64(a.successes) / float64(executed)
}

// ElapsedMs returns the milliseconds elapsed since the aggregator was
// constructed.
func (a *Aggregator) ElapsedMs() int64 {
	return time.Since(a.startTime).Milliseconds()
}

// ExampleFailures returns an immutable view of the captured failure causes.
func (a *Aggregator) ExampleFailures() []string {
	out := make([]string, len(a.exampleFailures))
	copy(out, a.exampleFailures)
	return out
}

// IsComplete reports whether the run has terminated (for any reason) or
// has executed every planned sample.
func (a *Aggregator) IsComplete() bool {
	return a.terminationReason != model.TerminationNone || a.SamplesExecuted() >= a.totalSamples
}

// WasTerminatedEarly reports whether the run stopped before executing
// every planned sample for a reason other than natural completion.
func (a *Aggregator) WasTerminatedEarly() bool {
	return a.terminationReason != model.TerminationNone && a.terminationReason != model.TerminationCompleted
}

// TerminationReason returns the current termination reason (possibly
// TerminationNone).
func (a *Aggregator) TerminationReason() model.TerminationReason { return a.terminationReason }

// TerminationDetails returns the detail string passed to SetTerminated, if
// any.
func (a *Aggregator) TerminationDetails() string { return a.terminationDetails }

// ForcedFailure reports whether budget exhaustion forced a FAIL verdict.
func (a *Aggregator) ForcedFailure() bool { return a.forcedFailure }

// TotalSamples returns the planned sample count.
func (a *Aggregator) TotalSamples() int { return a.totalSamples }
