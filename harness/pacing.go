package harness

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/probassert/probassert/model"
)

// PreflightReport summarizes the pacing plan for a run before it starts,
// so a caller can see the projected duration without executing a single
// sample.
type PreflightReport struct {
	PlannedSamples      int
	EffectiveDelayMs    float64
	EffectiveThroughput float64 // samples per second
	EstimatedDurationMs int64
	EstimatedCompletion time.Time
	FeasibilityWarning  string // empty if the plan fits within the time budget
}

// PacingScheduler is the Pacing Scheduler (C10): it derives the most
// restrictive inter-sample delay implied by the declared rate constraints
// and paces the run using a golang.org/x/time/rate.Limiter, so pacing
// honors context cancellation the way a bare time.Sleep cannot.
type PacingScheduler struct {
	delayMs float64
	limiter *rate.Limiter
}

// NewPacingScheduler derives the effective inter-sample delay as the
// maximum of the candidate delays implied by each declared constraint
// (the most restrictive constraint wins).
func NewPacingScheduler(constraints model.PacingConstraints) *PacingScheduler {
	delay := 0.0
	if constraints.MaxRequestsPerHour > 0 {
		delay = max(delay, 3_600_000.0/float64(constraints.MaxRequestsPerHour))
	}
	if constraints.PerMinute > 0 {
		delay = max(delay, 60_000.0/float64(constraints.PerMinute))
	}
	if constraints.PerSecond > 0 {
		delay = max(delay, 1000.0/float64(constraints.PerSecond))
	}
	if constraints.MinMsPerSample > 0 {
		delay = max(delay, float64(constraints.MinMsPerSample))
	}

	var limiter *rate.Limiter
	if delay > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Duration(delay*float64(time.Millisecond))), 1)
	}

	return &PacingScheduler{delayMs: delay, limiter: limiter}
}

// Wait blocks until the next sample may proceed, honoring ctx
// cancellation. A scheduler with no declared constraints never blocks.
func (p *PacingScheduler) Wait(ctx context.Context) error {
	if p.limiter == nil {
		return nil
	}
	return p.limiter.Wait(ctx)
}

// DelayMs returns the derived effective inter-sample delay in
// milliseconds (0 if unconstrained).
func (p *PacingScheduler) DelayMs() float64 { return p.delayMs }

// Preflight computes a PreflightReport for running plannedSamples samples
// under this scheduler's pacing, warning (without aborting) if the
// projected duration would exceed timeBudgetMs.
func (p *PacingScheduler) Preflight(plannedSamples int, timeBudgetMs int64) PreflightReport {
	report := PreflightReport{
		PlannedSamples:   plannedSamples,
		EffectiveDelayMs: p.delayMs,
	}

	if p.delayMs > 0 {
		report.EffectiveThroughput = 1000.0 / p.delayMs
	}

	// N samples incur N-1 inter-sample delays (no pacing after the final
	// sample, per spec.md §4.11 step 6).
	gaps := plannedSamples - 1
	if gaps < 0 {
		gaps = 0
	}
	report.EstimatedDurationMs = int64(float64(gaps) * p.delayMs)
	report.EstimatedCompletion = time.Now().Add(time.Duration(report.EstimatedDurationMs) * time.Millisecond)

	if timeBudgetMs > 0 && report.EstimatedDurationMs > timeBudgetMs {
		report.FeasibilityWarning = fmt.Sprintf(
			"projected duration %dms exceeds time budget %dms; remediations: reduce samples, "+
				"increase the time budget, or relax pacing constraints",
			report.EstimatedDurationMs, timeBudgetMs)
	}

	return report
}
