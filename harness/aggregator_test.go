package harness

import "testing"

func TestAggregator_Conservation(t *testing.T) {
	// Invariant: successes + failures == samplesExecuted at every point.
	a := NewAggregator(10, 3)
	a.RecordSuccess()
	a.RecordFailure("boom")
	a.RecordSuccess()

	if got := a.SamplesExecuted(); got != 3 {
		t.Errorf("expected 3 samples executed, got %d", got)
	}
	if a.Successes() != 2 || a.Failures() != 1 {
		t.Errorf("expected 2 successes / 1 failure, got %d/%d", a.Successes(), a.Failures())
	}
	if got := a.RemainingSamples(); got != 7 {
		t.Errorf("expected 7 remaining, got %d", got)
	}
}

func TestAggregator_ExampleFailuresBounded(t *testing.T) {
	a := NewAggregator(10, 2)
	a.RecordFailure("one")
	a.RecordFailure("two")
	a.RecordFailure("three")

	failures := a.ExampleFailures()
	if len(failures) != 2 {
		t.Fatalf("expected 2 retained failures, got %d", len(failures))
	}
	if failures[0] != "one" || failures[1] != "two" {
		t.Errorf("expected first two causes retained in order, got %v", failures)
	}
}

func TestAggregator_TerminationSticky(t *testing.T) {
	a := NewAggregator(10, 5)
	a.SetTerminated("TIME_BUDGET", "first")
	a.SetTerminated("TOKEN_BUDGET", "second")

	if a.TerminationReason() != "TIME_BUDGET" {
		t.Errorf("expected termination reason to stick to the first call, got %v", a.TerminationReason())
	}
	if a.TerminationDetails() != "first" {
		t.Errorf("expected details from the first call, got %q", a.TerminationDetails())
	}
}

func TestAggregator_ObservedPassRate(t *testing.T) {
	a := NewAggregator(10, 5)
	if got := a.ObservedPassRate(); got != 0 {
		t.Errorf("expected 0 pass rate before any samples, got %v", got)
	}
	a.RecordSuccess()
	a.RecordSuccess()
	a.RecordFailure("x")
	if got := a.ObservedPassRate(); got != 2.0/3.0 {
		t.Errorf("expected 2/3 pass rate, got %v", got)
	}
}

func TestAggregator_IsCompleteOnFullSampleCount(t *testing.T) {
	a := NewAggregator(2, 5)
	if a.IsComplete() {
		t.Fatal("expected not complete before any samples")
	}
	a.RecordSuccess()
	a.RecordSuccess()
	if !a.IsComplete() {
		t.Error("expected complete once samplesExecuted reaches totalSamples")
	}
}
