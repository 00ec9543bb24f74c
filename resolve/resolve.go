// Package resolve implements the Approach Resolver (C5): it classifies a
// pre-resolved configuration into one of the three operational approaches,
// rejecting conflicting or incomplete configurations before a run ever
// reaches the execution driver.
package resolve

import "github.com/probassert/probassert/model"

// Resolve classifies input into a ResolvedConfiguration. hasSpec reports
// whether the execution is driven by a persisted ExecutionSpecification
// carrying baseline data.
func Resolve(input model.ResolvedConfigInput, hasSpec bool) (model.ResolvedConfiguration, error) {
	if input.MinPassRate != nil && input.ThresholdConfidence != nil {
		return model.ResolvedConfiguration{}, model.NewConfigurationError(
			"Conflicting Approaches: Sample-Size-First AND Threshold-First")
	}

	confidenceFirstFieldsSet := countSet(input.Confidence != nil, input.MinDetectableEffect != nil, input.Power != nil)

	switch {
	case confidenceFirstFieldsSet == 3:
		return resolveConfidenceFirst(input, hasSpec)

	case confidenceFirstFieldsSet > 0:
		return model.ResolvedConfiguration{}, model.NewConfigurationErrorf(
			"Incomplete Confidence-First", "missing %s", missingConfidenceFirstField(input))

	case input.ThresholdConfidence != nil:
		return resolveSampleSizeFirst(input, hasSpec)

	case input.MinPassRate != nil:
		return resolveThresholdFirst(input, hasSpec)

	default:
		return model.ResolvedConfiguration{}, model.NewConfigurationError(
			"no operational approach was specified: set thresholdConfidence with a spec (Sample-Size-First), " +
				"confidence + minDetectableEffect + power (Confidence-First), or minPassRate alone (Threshold-First)")
	}
}

func countSet(flags ...bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}

func missingConfidenceFirstField(input model.ResolvedConfigInput) string {
	switch {
	case input.Confidence == nil:
		return "confidence"
	case input.MinDetectableEffect == nil:
		return "minDetectableEffect"
	default:
		return "power"
	}
}

// resolveConfidenceFirst classifies a confidence+effect+power configuration.
// Confidence-First can run spec-driven (baseline feeds the sample-size
// calculator's p0) or spec-less (caller supplies p0 separately via
// MinPassRate); the sample-size calculator validates p0 when it runs, so no
// missing-baseline check is needed here.
func resolveConfidenceFirst(input model.ResolvedConfigInput, hasSpec bool) (model.ResolvedConfiguration, error) {
	cfg := model.ResolvedConfiguration{
		OperationalApproach: model.ConfidenceFirst,
		Samples:             -1, // computed later by stats.CalculateForPower
		Confidence:          *input.Confidence,
		MinDetectableEffect: input.MinDetectableEffect,
		Power:               input.Power,
		IsSpecDriven:        hasSpec,
		IsSpecless:          !hasSpec,
		TestIntent:          defaultIntent(input.TestIntent),
		ThresholdOrigin:     defaultOrigin(input.ThresholdOrigin),
		ContractRef:         input.ContractRef,
		Budget:              input.Budget,
	}
	if input.MinPassRate != nil {
		cfg.MinPassRate = *input.MinPassRate
	}
	if input.Samples != nil {
		cfg.Samples = *input.Samples
	}
	return cfg, nil
}

func resolveSampleSizeFirst(input model.ResolvedConfigInput, hasSpec bool) (model.ResolvedConfiguration, error) {
	if !hasSpec {
		return model.ResolvedConfiguration{}, model.NewConfigurationError("Sample-Size-First requires a spec")
	}
	if input.Samples == nil {
		return model.ResolvedConfiguration{}, model.NewConfigurationError("Sample-Size-First requires a sample count")
	}

	return model.ResolvedConfiguration{
		OperationalApproach: model.SampleSizeFirst,
		Samples:             *input.Samples,
		Confidence:          *input.ThresholdConfidence,
		IsSpecDriven:        true,
		IsSpecless:          false,
		TestIntent:          defaultIntent(input.TestIntent),
		ThresholdOrigin:     defaultOrigin(input.ThresholdOrigin),
		ContractRef:         input.ContractRef,
		Budget:              input.Budget,
	}, nil
}

func resolveThresholdFirst(input model.ResolvedConfigInput, hasSpec bool) (model.ResolvedConfiguration, error) {
	if input.Samples == nil {
		return model.ResolvedConfiguration{}, model.NewConfigurationError("Threshold-First requires a sample count")
	}

	// Threshold-First is permitted with or without a spec; without a spec
	// it is the only legal mode (spec.md §4.5).
	confidence := 0.95
	if input.ThresholdConfidence != nil {
		confidence = *input.ThresholdConfidence
	}

	return model.ResolvedConfiguration{
		OperationalApproach: model.ThresholdFirst,
		Samples:             *input.Samples,
		MinPassRate:         *input.MinPassRate,
		Confidence:          confidence,
		IsSpecDriven:        hasSpec,
		IsSpecless:          !hasSpec,
		TestIntent:          defaultIntent(input.TestIntent),
		ThresholdOrigin:     defaultOrigin(input.ThresholdOrigin),
		ContractRef:         input.ContractRef,
		Budget:              input.Budget,
	}, nil
}

func defaultIntent(intent model.TestIntent) model.TestIntent {
	if intent == "" {
		return model.Verification
	}
	return intent
}

func defaultOrigin(origin model.ThresholdOrigin) model.ThresholdOrigin {
	if origin == "" {
		return model.OriginUnspecified
	}
	return origin
}
