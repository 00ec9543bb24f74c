// Package factor implements the Factor-Consistency Validator (C12): it
// compares a test-time factor source's content hash against the hash
// recorded in a baseline's ExecutionSpecification, to catch a test
// silently running against a different input population than the one the
// baseline was measured from.
package factor

import (
	"fmt"

	"github.com/probassert/probassert/model"
)

// TestFactorSource describes the factor source a test is about to run
// against. A zero value (Hash == "") means the test uses no factor source.
type TestFactorSource struct {
	Hash        string
	SourceName  string
	SamplesUsed int
}

// Report is the outcome of comparing a test-time factor source against a
// baseline's recorded metadata.
type Report struct {
	Status  model.FactorConsistencyStatus
	Message string
	Note    string // non-fatal note, e.g. differing sample counts
}

// Check compares test against baseline and returns a Report.
//
// Hash semantics: the hash identifies a factor source's full ordered value
// sequence, independent of how many of those values a consumer cycles
// through — two runs using the same factor source match even when they
// consumed different sample counts (spec.md §4.12).
func Check(test *TestFactorSource, baseline *model.FactorSourceMetadata) Report {
	if test == nil || test.Hash == "" {
		return Report{Status: model.FactorNotApplicable, Message: "test does not use a factor source"}
	}
	if baseline == nil {
		return Report{Status: model.FactorNotApplicable, Message: "spec carries no factor-source metadata (legacy spec)"}
	}

	var report Report
	if test.Hash == baseline.Hash {
		report = Report{
			Status:  model.FactorMatch,
			Message: fmt.Sprintf("[MATCH] factor source %q matches baseline (hash %s)", test.SourceName, truncateHash(test.Hash)),
		}
	} else {
		report = Report{
			Status: model.FactorMismatch,
			Message: fmt.Sprintf(
				"[MISMATCH] factor source %q (hash %s) does not match baseline %q (hash %s)",
				test.SourceName, truncateHash(test.Hash), baseline.SourceName, truncateHash(baseline.Hash)),
		}
	}

	if test.SamplesUsed != baseline.SamplesUsed {
		report.Note = fmt.Sprintf(
			"note: sample counts differ (test used %d, baseline used %d) — status unaffected",
			test.SamplesUsed, baseline.SamplesUsed)
	}

	return report
}

// truncateHash shortens a hash for display, matching spec.md's S10
// requirement that mismatch messages truncate both hashes.
func truncateHash(hash string) string {
	const n = 8
	if len(hash) <= n {
		return hash
	}
	return hash[:n]
}
