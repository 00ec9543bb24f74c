package stats

import "testing"

func TestFeasibility_SmallNInfeasible(t *testing.T) {
	// S6: with too few samples, even a perfect run cannot reach a high p0
	// at a demanding confidence level.
	result, err := Evaluate(5, 0.99, 0.95)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Feasible {
		t.Error("expected n=5 to be infeasible for p0=0.99 at 95% confidence")
	}
	if result.MinimumSamples <= 5 {
		t.Errorf("expected minimum samples > 5, got %d", result.MinimumSamples)
	}
}

func TestFeasibility_LargeNFeasible(t *testing.T) {
	result, err := Evaluate(5000, 0.99, 0.95)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Feasible {
		t.Errorf("expected n=5000 to be feasible for p0=0.99 at 95%% confidence (minimum %d)", result.MinimumSamples)
	}
}

func TestFeasibility_BoundaryAtMinimumSamples(t *testing.T) {
	result, err := Evaluate(10, 0.90, 0.95)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	atMinimum, err := Evaluate(result.MinimumSamples, 0.90, 0.95)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !atMinimum.Feasible {
		t.Errorf("expected n=MinimumSamples (%d) to be feasible", result.MinimumSamples)
	}
}

func TestFeasibility_InvalidP0(t *testing.T) {
	for _, p0 := range []float64{0, 1, -0.5, 1.5} {
		if _, err := Evaluate(100, p0, 0.95); err == nil {
			t.Errorf("p0=%v: expected error, got nil", p0)
		}
	}
}
