package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/sbm-harness/sbm-harness/sim"
)

var (
	batchTrials   int    // Number of trials
	batchSteps    int    // Steps per trial
	batchSeedBase uint32 // Trial i runs with seed base+i
	batchWorkers  int    // Trial-level parallelism
	batchOut      string // Output summary file (JSONL)
)

// batchCmd runs many trials across a deterministic seed sequence
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run a batch of trials and write per-trial summaries",
	Run: func(cmd *cobra.Command, args []string) {
		logrus.Infof("running %d trials with %d steps each", batchTrials, batchSteps)

		result, err := sim.RunBatch(sim.BatchConfig{
			Trials:   batchTrials,
			Steps:    batchSteps,
			SeedBase: batchSeedBase,
			Workers:  batchWorkers,
		})
		if err != nil {
			logrus.Fatalf("batch run: %v", err)
		}
		if err := sim.WriteSummaries(batchOut, result.Summaries); err != nil {
			logrus.Fatalf("write summaries: %v", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Batch simulation completed:")
		fmt.Fprintf(out, "  Total trials: %d\n", batchTrials)
		fmt.Fprintf(out, "  Failures: %d\n", result.Failures)
		fmt.Fprintf(out, "  Failure rate: %.6f (%.4f%%)\n", result.FailureRate(), result.FailureRate()*100)
	},
}

func init() {
	batchCmd.Flags().IntVar(&batchTrials, "trials", 0, "Number of trials to run")
	batchCmd.Flags().IntVar(&batchSteps, "steps", 1000, "Number of steps per trial")
	batchCmd.Flags().Uint32Var(&batchSeedBase, "seed-base", 1000, "Base seed; trial i uses seed-base+i")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 1, "Concurrent trial workers (output order stays by trial index)")
	batchCmd.Flags().StringVar(&batchOut, "out", "", "Output summary file (JSONL)")
	_ = batchCmd.MarkFlagRequired("trials")
	_ = batchCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(batchCmd)
}
