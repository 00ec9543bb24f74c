package model

import "testing"

func TestNewBaselineData_Valid(t *testing.T) {
	b, err := NewBaselineData(100, 95)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Rate() != 0.95 {
		t.Errorf("expected rate 0.95, got %v", b.Rate())
	}
}

func TestNewBaselineData_Invalid(t *testing.T) {
	cases := []struct {
		name               string
		samples, successes int
	}{
		{"zero samples", 0, 0},
		{"negative samples", -1, 0},
		{"negative successes", 100, -1},
		{"successes exceed samples", 100, 101},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewBaselineData(tc.samples, tc.successes); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
