package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/probassert/probassert/harness"
	"github.com/probassert/probassert/model"
	"github.com/probassert/probassert/resolve"
	"github.com/probassert/probassert/stats"
	"github.com/probassert/probassert/verdict"
)

var (
	runSpecPath      string
	runMinPassRate   float64
	runThresholdConf float64
	runConfidence    float64
	runMDE           float64
	runPower         float64
	runSamples       int

	runSUTSeed        int64
	runSUTSuccessRate float64
	runRuns           int

	runTimeBudgetMs int64
	runTokenBudget  int64
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Drive a probabilistic test run against the demo SUT",
	Run: func(cmd *cobra.Command, args []string) {
		var spec *model.ExecutionSpecification
		if runSpecPath != "" {
			loaded, err := model.LoadSpec(runSpecPath)
			if err != nil {
				logrus.Fatalf("failed to load execution specification: %v", err)
			}
			spec = loaded
			if spec.Expiration != nil && spec.Expiration.Evaluate(spec.GeneratedAt) == model.ExpirationExpired {
				logrus.Warn("loaded baseline has already expired as of its own generation time; check --expire-days")
			}
		}

		input := buildResolveInput(cmd)
		config, err := resolve.Resolve(input, spec.HasBaseline())
		if err != nil {
			logrus.Fatalf("failed to resolve operational approach: %v", err)
		}

		baseN, baseK := 0, 0
		if spec.HasBaseline() {
			baseN, baseK = spec.Baseline.BaselineSamples, spec.Baseline.BaselineSuccesses
		}

		if config.SamplesPending() {
			p0 := config.MinPassRate
			if spec.HasBaseline() {
				p0 = spec.Baseline.Rate()
			}
			req, err := stats.CalculateForPower(p0, *config.MinDetectableEffect, config.Confidence, *config.Power)
			if err != nil {
				logrus.Fatalf("failed to calculate required sample size: %v", err)
			}
			config.Samples = req.RequiredSamples
			logrus.Infof("CONFIDENCE_FIRST resolved to %d required samples (p0=%.4f, p1=%.4f)", req.RequiredSamples, req.P0, req.P1)
		}

		var threshold model.DerivedThreshold
		switch config.OperationalApproach {
		case model.SampleSizeFirst:
			threshold, err = stats.DeriveSampleSizeFirst(baseN, baseK, config.Samples, config.Confidence)
		case model.ThresholdFirst:
			if spec.HasBaseline() {
				threshold, err = stats.DeriveThresholdFirst(baseN, baseK, config.Samples, config.MinPassRate)
			} else {
				threshold = model.DerivedThreshold{
					Value:    config.MinPassRate,
					Approach: model.ThresholdFirst,
					Context:  model.DerivationContext{TestSamples: config.Samples, Confidence: config.Confidence},
				}
			}
		case model.ConfidenceFirst:
			if spec.HasBaseline() {
				threshold, err = stats.DeriveSampleSizeFirst(baseN, baseK, config.Samples, config.Confidence)
			} else {
				// Spec-less Confidence-First: p0 came from --min-pass-rate
				// rather than a recorded baseline, so there is no (k, n) to
				// run through the Wilson bound — the power analysis already
				// used p0 directly as the threshold.
				threshold = model.DerivedThreshold{
					Value:    config.MinPassRate,
					Approach: model.ConfidenceFirst,
					Context:  model.DerivationContext{TestSamples: config.Samples, Confidence: config.Confidence},
					IsStatisticallySound: true,
				}
			}
		}
		if err != nil {
			logrus.Fatalf("failed to derive threshold: %v", err)
		}

		var verdicts []model.VerdictWithConfidence
		for i := 0; i < runRuns; i++ {
			v, err := runOnce(config, threshold, int64(i))
			if err != nil {
				logrus.Fatalf("run %d failed: %v", i, err)
			}
			verdicts = append(verdicts, v)
			fmt.Printf("run %d: passed=%v observed=%.4f threshold=%.4f — %s\n",
				i, v.Passed, v.ObservedRate, v.Threshold.Value, v.Interpretation)
		}

		if len(verdicts) > 1 {
			fmt.Println(verdict.SummarizeMultipleRuns(verdicts...))
		}
	},
}

func runOnce(config model.ResolvedConfiguration, threshold model.DerivedThreshold, runOffset int64) (model.VerdictWithConfidence, error) {
	sut := NewDemoSUT(runSUTSeed+runOffset, runSUTSuccessRate)
	source := demoInputSource{n: config.Samples}

	driver := harness.NewDriver(sut.Invoke, source)
	if err := driver.Configure(config, threshold); err != nil {
		return model.VerdictWithConfidence{}, err
	}
	if err := driver.Run(context.Background()); err != nil {
		return model.VerdictWithConfidence{}, err
	}
	return driver.Report()
}

// buildResolveInput maps the flags the caller actually set to the
// resolver's pointer-optional fields; cmd.Flags().Changed is cobra's own
// way of distinguishing "explicitly set" from "left at its zero default".
func buildResolveInput(cmd *cobra.Command) model.ResolvedConfigInput {
	input := model.ResolvedConfigInput{
		Budget: model.BudgetEnvelope{
			TimeBudgetMs:       runTimeBudgetMs,
			TokenBudget:        runTokenBudget,
			OnBudgetExhausted:  model.OnExhaustionEvaluatePartial,
			OnException:        model.OnExceptionFailSample,
			MaxExampleFailures: 5,
		},
	}
	flags := cmd.Flags()
	if flags.Changed("min-pass-rate") {
		input.MinPassRate = &runMinPassRate
	}
	if flags.Changed("threshold-confidence") {
		input.ThresholdConfidence = &runThresholdConf
	}
	if flags.Changed("confidence") {
		input.Confidence = &runConfidence
	}
	if flags.Changed("mde") {
		input.MinDetectableEffect = &runMDE
	}
	if flags.Changed("power") {
		input.Power = &runPower
	}
	if flags.Changed("samples") {
		input.Samples = &runSamples
	}
	return input
}

func init() {
	runCmd.Flags().StringVar(&runSpecPath, "spec", "", "Path to a persisted execution specification (optional)")

	runCmd.Flags().Float64Var(&runMinPassRate, "min-pass-rate", 0, "Minimum acceptable pass rate (Threshold-First, or p0 for spec-less Confidence-First)")
	runCmd.Flags().Float64Var(&runThresholdConf, "threshold-confidence", 0, "Confidence level for Sample-Size-First")
	runCmd.Flags().Float64Var(&runConfidence, "confidence", 0, "Confidence level for Confidence-First")
	runCmd.Flags().Float64Var(&runMDE, "mde", 0, "Minimum detectable effect for Confidence-First")
	runCmd.Flags().Float64Var(&runPower, "power", 0, "Statistical power for Confidence-First")
	runCmd.Flags().IntVar(&runSamples, "samples", 0, "Explicit sample count (Threshold-First, or override)")

	runCmd.Flags().Int64Var(&runSUTSeed, "sut-seed", 1, "Demo SUT deterministic seed")
	runCmd.Flags().Float64Var(&runSUTSuccessRate, "sut-success-rate", 0.97, "Demo SUT's fixed success probability")
	runCmd.Flags().IntVar(&runRuns, "runs", 1, "Number of independent runs to execute and summarize")

	runCmd.Flags().Int64Var(&runTimeBudgetMs, "time-budget-ms", 0, "Time budget in milliseconds (0 = unbounded)")
	runCmd.Flags().Int64Var(&runTokenBudget, "token-budget", 0, "Token budget (0 = unbounded)")
}
