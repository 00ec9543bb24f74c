package stats

import (
	"math"
	"testing"
)

func approxEqual(t *testing.T, got, want, tol float64, msg string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %v, want %v (tol %v)", msg, got, want, tol)
	}
}

func TestEstimate_PerfectBaseline(t *testing.T) {
	// S1: k=n (all successes) still yields a lower bound strictly below 1,
	// since Wilson never collapses the interval to a point.
	est, err := Estimate(100, 100, 0.95)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if est.PointEstimate != 1.0 {
		t.Errorf("expected point estimate 1.0, got %v", est.PointEstimate)
	}
	if est.LowerBound >= 1.0 {
		t.Errorf("expected lower bound < 1.0 for a finite sample, got %v", est.LowerBound)
	}
	if est.UpperBound != 1.0 {
		t.Errorf("expected upper bound clamped to 1.0, got %v", est.UpperBound)
	}
}

func TestLowerBound_MonotonicDecreasingInConfidence(t *testing.T) {
	// Invariant: a wider confidence demands a more conservative (lower)
	// bound for the same observed data.
	low, err := LowerBound(90, 100, 0.80)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	high, err := LowerBound(90, 100, 0.99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !(high < low) {
		t.Errorf("expected LowerBound(0.99) < LowerBound(0.80), got %v >= %v", high, low)
	}
}

func TestEstimate_TwoSidedWidensOverOneSided(t *testing.T) {
	k, n, confidence := 95, 100, 0.95
	est, err := Estimate(k, n, confidence)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lower, err := LowerBound(k, n, confidence)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The one-sided bound puts the entire alpha budget on one tail, so it
	// sits above the two-sided interval's lower bound.
	if !(lower >= est.LowerBound) {
		t.Errorf("expected one-sided LowerBound (%v) >= two-sided LowerBound (%v)", lower, est.LowerBound)
	}
}

func TestEstimate_InvalidTrial(t *testing.T) {
	cases := []struct {
		name string
		k, n int
	}{
		{"n zero", 0, 0},
		{"n negative", 0, -5},
		{"k negative", -1, 10},
		{"k exceeds n", 11, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Estimate(tc.k, tc.n, 0.95); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestEstimate_InvalidConfidence(t *testing.T) {
	for _, c := range []float64{0, 1, -0.1, 1.1} {
		if _, err := Estimate(50, 100, c); err == nil {
			t.Errorf("confidence=%v: expected error, got nil", c)
		}
	}
}

func TestZScoreOneSidedVsTwoSided(t *testing.T) {
	// At the same confidence, the one-sided z-score is smaller than the
	// two-sided z-score (less tail probability to exclude on one side).
	oneSided, err := ZScoreOneSided(0.95)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twoSided, err := ZScoreTwoSided(0.95)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !(oneSided < twoSided) {
		t.Errorf("expected one-sided z (%v) < two-sided z (%v)", oneSided, twoSided)
	}
	approxEqual(t, oneSided, 1.645, 0.01, "z_0.95 one-sided")
	approxEqual(t, twoSided, 1.96, 0.01, "z_0.95 two-sided")
}

func TestStandardError_BoundaryCollapse(t *testing.T) {
	se, err := StandardError(10, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if se != 0 {
		t.Errorf("expected 0 standard error at p=1, got %v", se)
	}
}
