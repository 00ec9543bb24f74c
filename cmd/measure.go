package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/probassert/probassert/model"
	"github.com/probassert/probassert/stats"
)

var (
	measureSamples     int
	measureSuccessRate float64
	measureSeed        int64
	measureUseCaseID   string
	measureSpecID      string
	measureOut         string
	measureExpireDays  int
)

var measureCmd = &cobra.Command{
	Use:   "measure",
	Short: "Run a measure phase against the demo SUT and persist an execution specification",
	Run: func(cmd *cobra.Command, args []string) {
		logrus.Infof("measuring baseline: %d samples against demo SUT (success rate %.3f, seed %d)",
			measureSamples, measureSuccessRate, measureSeed)

		sut := NewDemoSUT(measureSeed, measureSuccessRate)
		successes := 0
		for i := 0; i < measureSamples; i++ {
			if _, err := sut.Invoke(context.Background(), model.SampleInput{Index: i}); err == nil {
				successes++
			}
		}

		baseline, err := model.NewBaselineData(measureSamples, successes)
		if err != nil {
			logrus.Fatalf("invalid baseline observation: %v", err)
		}

		estimate, err := stats.Estimate(successes, measureSamples, 0.95)
		if err != nil {
			logrus.Fatalf("failed to estimate baseline proportion: %v", err)
		}
		logrus.Infof("observed rate %.4f (95%% CI [%.4f, %.4f])",
			estimate.PointEstimate, estimate.LowerBound, estimate.UpperBound)

		spec := &model.ExecutionSpecification{
			SpecID:      measureSpecID,
			UseCaseID:   measureUseCaseID,
			Version:     "1",
			GeneratedAt: time.Now().UTC(),
			Baseline:    &baseline,
		}
		if measureExpireDays > 0 {
			spec.Expiration = &model.ExpirationPolicy{Days: measureExpireDays, BaselineEndTime: spec.GeneratedAt}
		}

		if err := model.SaveSpec(measureOut, spec); err != nil {
			logrus.Fatalf("failed to save execution specification: %v", err)
		}
		fmt.Printf("wrote execution specification to %s (baseline %d/%d = %.4f)\n",
			measureOut, successes, measureSamples, baseline.Rate())
	},
}

func init() {
	measureCmd.Flags().IntVar(&measureSamples, "samples", 200, "Number of baseline samples to collect")
	measureCmd.Flags().Float64Var(&measureSuccessRate, "success-rate", 0.97, "Demo SUT's fixed success probability")
	measureCmd.Flags().Int64Var(&measureSeed, "seed", 42, "Demo SUT deterministic seed")
	measureCmd.Flags().StringVar(&measureUseCaseID, "usecase-id", "demo-usecase", "Use case identifier recorded in the spec")
	measureCmd.Flags().StringVar(&measureSpecID, "spec-id", "demo-spec-001", "Spec identifier recorded in the spec")
	measureCmd.Flags().StringVar(&measureOut, "out", "execution-spec.yaml", "Output path for the execution specification")
	measureCmd.Flags().IntVar(&measureExpireDays, "expire-days", 0, "Baseline validity window in days (0 = no expiration)")
}
