package harness

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/probassert/probassert/model"
	"github.com/probassert/probassert/verdict"
)

// DriverState is the Execution Driver's lifecycle state.
type DriverState string

const (
	StateInit       DriverState = "INIT"
	StateConfigured DriverState = "CONFIGURED"
	StateRunning    DriverState = "RUNNING"
	StateTerminated DriverState = "TERMINATED"
	StateReported   DriverState = "REPORTED"
)

// TestBody is the host's per-sample callback: given one SampleInput, it
// returns the outcomes of every criterion evaluated for that sample. A
// returned error that is a *model.AssertionFailure is a normal sample
// failure; any other error is a non-assertion exception subject to the
// resolved configuration's OnException policy.
type TestBody func(ctx context.Context, input model.SampleInput) (model.CriterionOutcomes, error)

// InputSource supplies the sequence of SampleInput values a run draws from,
// cycling by index modulo Len when a run requires more samples than the
// source holds (spec.md §4.11 step 3).
type InputSource interface {
	Len() int
	At(i int) model.SampleInput
}

// Driver is the Execution Driver (C11): it owns the INIT -> CONFIGURED ->
// RUNNING -> TERMINATED -> REPORTED state machine for a single run,
// consulting the budget tracker, pacing scheduler, and early-termination
// evaluator once per sample the way the teacher's simulator loop consults
// its event queue and admission policy once per step.
type Driver struct {
	state DriverState

	config    model.ResolvedConfiguration
	threshold model.DerivedThreshold

	aggregator  *Aggregator
	termination *TerminationEvaluator
	budget      *BudgetTracker
	pacing      *PacingScheduler

	body   TestBody
	source InputSource

	log *logrus.Entry
}

// NewDriver constructs a Driver in state INIT.
func NewDriver(body TestBody, source InputSource) *Driver {
	return &Driver{
		state:  StateInit,
		body:   body,
		source: source,
		log:    logrus.WithField("component", "driver"),
	}
}

// Configure transitions INIT -> CONFIGURED: it stores the resolved
// configuration and derived threshold and arms the aggregator, termination
// evaluator, budget tracker, and pacing scheduler for a run of
// config.Samples samples. Configure requires config.Samples to already be
// resolved (not the -1 pending sentinel) — callers running CONFIDENCE_FIRST
// must invoke stats.CalculateForPower first.
func (d *Driver) Configure(config model.ResolvedConfiguration, threshold model.DerivedThreshold) error {
	if d.state != StateInit {
		return model.NewConfigurationErrorf("driver state", "Configure called in state %s, want %s", d.state, StateInit)
	}
	if config.SamplesPending() {
		return model.NewConfigurationError("Configure requires a resolved sample count, got the CONFIDENCE_FIRST pending sentinel")
	}

	d.config = config
	d.threshold = threshold
	d.aggregator = NewAggregator(config.Samples, config.Budget.MaxExampleFailures)
	d.termination = NewTerminationEvaluator(config.Samples, threshold.Value)
	d.budget = NewBudgetTracker(config.Budget)
	d.pacing = NewPacingScheduler(config.Budget.Pacing)

	preflight := d.pacing.Preflight(config.Samples, config.Budget.TimeBudgetMs)
	d.log.WithFields(logrus.Fields{
		"samples":              config.Samples,
		"effectiveDelayMs":     preflight.EffectiveDelayMs,
		"estimatedDurationMs":  preflight.EstimatedDurationMs,
	}).Info("pacing preflight computed")
	if preflight.FeasibilityWarning != "" {
		d.log.Warn(preflight.FeasibilityWarning)
	}

	d.state = StateConfigured
	return nil
}

// Run transitions CONFIGURED -> RUNNING -> TERMINATED, executing samples
// until the budget is exhausted, early termination is determined, the
// sample count is exhausted, or ctx is cancelled.
func (d *Driver) Run(ctx context.Context) error {
	if d.state != StateConfigured {
		return model.NewConfigurationErrorf("driver state", "Run called in state %s, want %s", d.state, StateConfigured)
	}
	if d.source.Len() == 0 {
		return model.NewConfigurationError("input source is empty")
	}

	d.state = StateRunning

	for !d.aggregator.IsComplete() {
		if reason, exhausted := d.budget.Exhausted(); exhausted {
			d.log.WithField("reason", reason).Info("budget exhausted")
			if d.config.Budget.OnBudgetExhausted == model.OnExhaustionFail {
				d.aggregator.SetForcedFailure(true)
			}
			d.aggregator.SetTerminated(reason, "budget exhausted")
			break
		}

		idx := d.aggregator.SamplesExecuted() % d.source.Len()
		input := d.source.At(idx)

		d.budget.ChargeStatic()
		outcomes, err := d.body(ctx, input)

		if err != nil {
			var assertionFailure *model.AssertionFailure
			if errors.As(err, &assertionFailure) {
				d.aggregator.RecordFailure(assertionFailure.Message)
			} else if d.config.Budget.OnException == model.OnExceptionAbortTest {
				d.aggregator.RecordFailure(err.Error())
				d.aggregator.SetTerminated(model.TerminationExceptionAbort, err.Error())
				break
			} else {
				d.aggregator.RecordFailure(err.Error())
			}
		} else if outcomes.AllPassed() {
			d.aggregator.RecordSuccess()
		} else if cause := outcomes.FirstCause(); cause != nil {
			d.aggregator.RecordFailure(cause.Error())
		} else {
			d.aggregator.RecordFailure(firstFailureReason(outcomes))
		}

		if reason := d.termination.Evaluate(d.aggregator.Successes(), d.aggregator.Failures()); reason != model.TerminationNone {
			d.aggregator.SetTerminated(reason, fmt.Sprintf(
				"determined after %d samples (%d successes, %d failures)",
				d.aggregator.SamplesExecuted(), d.aggregator.Successes(), d.aggregator.Failures()))
			break
		}

		if d.aggregator.SamplesExecuted() >= d.aggregator.TotalSamples() {
			d.aggregator.SetCompleted()
			break
		}

		if err := d.pacing.Wait(ctx); err != nil {
			d.aggregator.SetTerminated(model.TerminationExceptionAbort, "context cancelled during pacing: "+err.Error())
			break
		}
	}

	d.state = StateTerminated
	d.log.WithFields(logrus.Fields{
		"terminationReason": d.aggregator.TerminationReason(),
		"successes":         d.aggregator.Successes(),
		"failures":          d.aggregator.Failures(),
	}).Info("run terminated")
	return nil
}

// Report transitions TERMINATED -> REPORTED, producing the final verdict.
// A forced failure (budget exhausted under the FAIL policy) or an
// IMPOSSIBILITY termination both force a failing verdict: verdict.Evaluate
// still computes the observed rate and interpretation, but its pass/fail
// result is overridden, since the outcome is already determined.
func (d *Driver) Report() (model.VerdictWithConfidence, error) {
	if d.state != StateTerminated {
		return model.VerdictWithConfidence{}, model.NewConfigurationErrorf(
			"driver state", "Report called in state %s, want %s", d.state, StateTerminated)
	}

	executed := d.aggregator.SamplesExecuted()
	if executed == 0 {
		return model.VerdictWithConfidence{}, model.NewConfigurationError("Report called with zero samples executed")
	}

	v := verdict.Evaluate(d.aggregator.Successes(), executed, d.threshold)

	if d.aggregator.ForcedFailure() {
		v.Passed = false
		v.Interpretation = "FAIL: " + string(d.budget.Policy()) + " budget exhaustion policy forced failure regardless of observed rate; " + v.Interpretation
	} else if d.aggregator.TerminationReason() == model.TerminationImpossibility {
		v.Passed = false
	}

	if notes := verdict.FormatExampleFailures(d.aggregator.ExampleFailures(), d.config.Budget.MaxExampleFailures); notes != "" {
		v.Interpretation += "; " + notes
	}

	d.state = StateReported
	return v, nil
}

// State returns the driver's current lifecycle state.
func (d *Driver) State() DriverState { return d.state }

// Aggregator exposes the run's accumulated counts for inspection (e.g. by a
// CLI command printing progress).
func (d *Driver) Aggregator() *Aggregator { return d.aggregator }

func firstFailureReason(outcomes model.CriterionOutcomes) string {
	for _, o := range outcomes {
		if o.Kind == model.CriterionFailed {
			return o.Reason
		}
	}
	return "criterion not passed"
}
