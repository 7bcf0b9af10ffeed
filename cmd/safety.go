package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sbm-harness/sbm-harness/gate"
	"github.com/sbm-harness/sbm-harness/sim/trace"
)

var (
	safetyPMax       float64 // Maximum acceptable failure probability
	safetyConfidence float64 // Confidence level for the Wilson interval
)

// safetyCmd bounds the simulator's own failed-trial rate
var safetyCmd = &cobra.Command{
	Use:   "safety SUMMARY_FILE",
	Short: "Bound the batch failure probability with a Wilson upper bound",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		summaries, err := trace.LoadSummaries(args[0])
		if err != nil {
			logrus.Fatalf("load summaries: %v", err)
		}
		if len(summaries) == 0 {
			logrus.Fatalf("no results found in %s", args[0])
		}

		report := gate.EvaluateSafety(summaries, safetyPMax, safetyConfidence)

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "SAFETY GATE REPORT:")
		encoded, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			logrus.Fatalf("encode report: %v", err)
		}
		fmt.Fprintln(out, string(encoded))

		if !report.Pass {
			fmt.Fprintf(cmd.ErrOrStderr(), "FAIL: Wilson Upper %.6f > %.6f\n", report.WilsonUpper, report.PMax)
			os.Exit(1)
		}
		fmt.Fprintln(out, "\nSAFETY GATE PASSED")
	},
}

func init() {
	safetyCmd.Flags().Float64Var(&safetyPMax, "p-max", 0, "Maximum acceptable failure probability (e.g. 0.01 for 1%)")
	safetyCmd.Flags().Float64Var(&safetyConfidence, "confidence", 0.95, "Confidence level for the Wilson interval")
	_ = safetyCmd.MarkFlagRequired("p-max")

	rootCmd.AddCommand(safetyCmd)
}
