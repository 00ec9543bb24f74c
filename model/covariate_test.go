package model

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestCovariateProfile_OrderMattersForEquality(t *testing.T) {
	a := NewCovariateProfile().With("region", StringCovariate("us-east")).With("tier", StringCovariate("gold"))
	b := NewCovariateProfile().With("tier", StringCovariate("gold")).With("region", StringCovariate("us-east"))

	if a.Equal(b) {
		t.Error("expected profiles with the same entries in different order to be unequal")
	}
	if !a.Equal(a) {
		t.Error("expected a profile to equal itself")
	}
}

func TestCovariateProfile_HashStableUnderContent(t *testing.T) {
	a := NewCovariateProfile().With("region", StringCovariate("us-east"))
	b := NewCovariateProfile().With("region", StringCovariate("us-east"))
	if a.ComputeHash() != b.ComputeHash() {
		t.Error("expected identical profiles to hash identically")
	}

	c := NewCovariateProfile().With("region", StringCovariate("us-west"))
	if a.ComputeHash() == c.ComputeHash() {
		t.Error("expected differing content to hash differently")
	}
}

func TestCovariateProfile_EmptyHash(t *testing.T) {
	if got := NewCovariateProfile().ComputeHash(); got != "" {
		t.Errorf("expected empty profile to hash to empty string, got %q", got)
	}
}

func TestCovariateProfile_YAMLRoundTrip(t *testing.T) {
	original := NewCovariateProfile().
		With("region", StringCovariate("us-east")).
		With("business_hours", TimeWindowCovariate("09:00:00", "17:00:00", "America/New_York")).
		With("tier", StringCovariate("gold"))

	data, err := yaml.Marshal(original)
	if err != nil {
		t.Fatalf("unexpected marshal error: %v", err)
	}

	var restored CovariateProfile
	if err := yaml.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unexpected unmarshal error: %v", err)
	}

	if !original.Equal(restored) {
		t.Errorf("expected round-tripped profile to equal the original (order and values preserved)")
	}
	if original.ComputeHash() != restored.ComputeHash() {
		t.Errorf("expected round-tripped profile to hash identically to the original")
	}
}
