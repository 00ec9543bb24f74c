package model

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSaveLoadSpec_RoundTrip(t *testing.T) {
	baseline, err := NewBaselineData(1000, 970)
	require.NoError(t, err)
	covariates := NewCovariateProfile().With("region", StringCovariate("us-east"))

	original := &ExecutionSpecification{
		SpecID:      "spec-001",
		UseCaseID:   "usecase-001",
		Version:     "1",
		GeneratedAt: time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
		Baseline:    &baseline,
		FactorSourceMetadata: &FactorSourceMetadata{
			Hash: "abc12345", SourceName: "prod-sample", SamplesUsed: 1000,
		},
		Covariates: &covariates,
		Expiration: &ExpirationPolicy{Days: 30, BaselineEndTime: time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)},
	}

	path := filepath.Join(t.TempDir(), "spec.yaml")
	require.NoError(t, SaveSpec(path, original))

	restored, err := LoadSpec(path)
	require.NoError(t, err)

	if !restored.HasBaseline() {
		t.Fatal("expected restored spec to carry a baseline")
	}
	if restored.Baseline.Rate() != original.Baseline.Rate() {
		t.Errorf("expected baseline rate to round-trip, got %v want %v", restored.Baseline.Rate(), original.Baseline.Rate())
	}
	if restored.FactorSourceMetadata.Hash != "abc12345" {
		t.Errorf("expected factor hash to round-trip, got %q", restored.FactorSourceMetadata.Hash)
	}
	if !restored.Covariates.Equal(*original.Covariates) {
		t.Error("expected covariate profile to round-trip with order preserved")
	}
	if restored.Expiration.Evaluate(restored.GeneratedAt.AddDate(0, 0, 10)) != ExpirationActive {
		t.Error("expected baseline to still be active 10 days into a 30-day expiration window")
	}
}

func TestHasBaseline_NilSpec(t *testing.T) {
	var spec *ExecutionSpecification
	if spec.HasBaseline() {
		t.Error("expected a nil spec to report no baseline")
	}
}

func TestHasBaseline_NoBaselineSet(t *testing.T) {
	spec := &ExecutionSpecification{SpecID: "x"}
	if spec.HasBaseline() {
		t.Error("expected a spec with no Baseline field to report no baseline")
	}
}
