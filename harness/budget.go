package harness

import (
	"time"

	"github.com/probassert/probassert/model"
)

// scopeBudget is one hierarchical time/token envelope (suite, class, or
// method scope). A zero limit means "unbounded at this scope".
type scopeBudget struct {
	timeBudgetMs int64
	tokenBudget  int64
}

// BudgetTracker enforces independent time and token envelopes across one
// or more hierarchical scopes (suite/class/method); the effective limit at
// any instant is the minimum remaining budget across all active scopes —
// the first scope to exhaust wins. Adapted from the teacher's TokenBucket
// admission policy (a refilling capacity tracker), generalized here to a
// monotonically-draining one. Not safe for concurrent use.
type BudgetTracker struct {
	scopes []scopeBudget

	tokensSpent  int64
	startTime    time.Time
	staticCharge int64

	onExhausted model.BudgetExhaustionPolicy
}

// NewBudgetTracker constructs a tracker for a single (method-scope) budget
// envelope. Use AddScope to layer additional (suite/class) envelopes
// sharing the same clock.
func NewBudgetTracker(budget model.BudgetEnvelope) *BudgetTracker {
	t := &BudgetTracker{
		startTime:    time.Now(),
		staticCharge: budget.TokenCharge,
		onExhausted:  budget.OnBudgetExhausted,
	}
	t.AddScope(budget.TimeBudgetMs, budget.TokenBudget)
	return t
}

// AddScope layers an additional hierarchical envelope (e.g. a suite- or
// class-level budget shared across methods). A zero value in either field
// means that scope imposes no constraint of that kind.
func (t *BudgetTracker) AddScope(timeBudgetMs, tokenBudget int64) {
	t.scopes = append(t.scopes, scopeBudget{timeBudgetMs: timeBudgetMs, tokenBudget: tokenBudget})
}

// ChargeStatic applies the per-sample static token charge declared in the
// budget envelope. A no-op when TokenCharge is 0 (dynamic accounting mode).
func (t *BudgetTracker) ChargeStatic() {
	t.tokensSpent += t.staticCharge
}

// ChargeDynamic records tokens the test body reported spending itself.
func (t *BudgetTracker) ChargeDynamic(tokens int64) {
	t.tokensSpent += tokens
}

// Exhausted reports which envelope (if any) has been exhausted across all
// active scopes, checking time before tokens so that a simultaneous
// exhaustion in the same sample resolves deterministically in favor of the
// time budget (spec.md §8, invariant 9).
func (t *BudgetTracker) Exhausted() (model.TerminationReason, bool) {
	elapsedMs := time.Since(t.startTime).Milliseconds()
	for _, s := range t.scopes {
		if s.timeBudgetMs > 0 && elapsedMs >= s.timeBudgetMs {
			return model.TerminationTimeBudget, true
		}
	}
	for _, s := range t.scopes {
		if s.tokenBudget > 0 && t.tokensSpent >= s.tokenBudget {
			return model.TerminationTokenBudget, true
		}
	}
	return model.TerminationNone, false
}

// Policy returns the configured exhaustion policy.
func (t *BudgetTracker) Policy() model.BudgetExhaustionPolicy { return t.onExhausted }

// TokensSpent returns the total tokens charged so far.
func (t *BudgetTracker) TokensSpent() int64 { return t.tokensSpent }
