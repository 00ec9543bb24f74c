package stats

import (
	"math"
	"testing"

	"github.com/probassert/probassert/model"
)

func TestDeriveSampleSizeFirst_MatchesLowerBound(t *testing.T) {
	threshold, err := DeriveSampleSizeFirst(1000, 970, 200, 0.95)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want, _ := LowerBound(970, 1000, 0.95)
	if threshold.Value != want {
		t.Errorf("expected threshold %v, got %v", want, threshold.Value)
	}
	if threshold.Approach != model.SampleSizeFirst {
		t.Errorf("expected SampleSizeFirst approach, got %v", threshold.Approach)
	}
	if !threshold.IsStatisticallySound {
		t.Error("Sample-Size-First thresholds are always sound")
	}
}

func TestDeriveThresholdFirst_RoundTripsImpliedConfidence(t *testing.T) {
	// Derive a threshold from a baseline at a known confidence, then feed
	// that same threshold value back through DeriveThresholdFirst: the
	// recovered implied confidence should match the original within the
	// search's tolerance.
	baseN, baseK, confidence := 1000, 970, 0.95
	derived, err := DeriveSampleSizeFirst(baseN, baseK, 200, confidence)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	recovered, err := DeriveThresholdFirst(baseN, baseK, 200, derived.Value)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(recovered.Context.Confidence-confidence) > 0.01 {
		t.Errorf("expected recovered confidence near %v, got %v", confidence, recovered.Context.Confidence)
	}
}

func TestDeriveThresholdFirst_UnsoundBelowCutoff(t *testing.T) {
	// An explicit threshold above the baseline's own rate (0.99 vs 0.97)
	// implies very low confidence, which should fail the soundness cutoff.
	threshold, err := DeriveThresholdFirst(1000, 970, 200, 0.99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if threshold.IsStatisticallySound {
		t.Error("expected a threshold above the baseline rate to be flagged unsound")
	}
}

func TestDeriveThresholdFirst_RejectsOutOfRangeThreshold(t *testing.T) {
	if _, err := DeriveThresholdFirst(1000, 970, 200, 1.5); err == nil {
		t.Error("expected error for threshold > 1, got nil")
	}
	if _, err := DeriveThresholdFirst(1000, 970, 200, -0.1); err == nil {
		t.Error("expected error for threshold < 0, got nil")
	}
}
