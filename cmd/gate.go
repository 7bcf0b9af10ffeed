package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sbm-harness/sbm-harness/gate"
)

var (
	gatePMax  float64 // Gate 1 threshold: max acceptable Wilson upper bound
	gateRMin  float64 // Gate 1/2 threshold: minimum acceptable R
	gateTCrit int     // Gate 3 threshold: critical consecutive-supercritical count
	gateZ     float64 // Normal quantile for the confidence intervals
)

// gateCmd renders the three-criterion certification verdict
var gateCmd = &cobra.Command{
	Use:   "gate RESULTS_FILE",
	Short: "Render a three-criterion certification verdict over a results feed",
	Long: `gate evaluates three independent, all-must-pass criteria over a JSONL
results feed of R values and consecutive-supercritical counters:

  1. the Wilson upper bound on P(R < r-min) must stay under p-max
  2. the lower confidence bound of mean R must not fall below r-min
  3. the max consecutive-supercritical count must stay under t-crit

The full numeric report is printed whether or not the gates pass.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		records, err := gate.LoadRunRecords(args[0])
		if err != nil {
			logrus.Fatalf("load results: %v", err)
		}
		if len(records) == 0 {
			logrus.Fatalf("no results found in %s", args[0])
		}

		th := gate.Thresholds{PMax: gatePMax, RMin: gateRMin, TCrit: gateTCrit, Z: gateZ}
		report := gate.Evaluate(records, th)

		for _, line := range report.Failures(th) {
			fmt.Fprintln(cmd.ErrOrStderr(), line)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "\nGATE REPORT:")
		encoded, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			logrus.Fatalf("encode report: %v", err)
		}
		fmt.Fprintln(out, string(encoded))

		if !report.Pass {
			os.Exit(1)
		}
		fmt.Fprintln(out, "\nALL GATES PASSED")
	},
}

func init() {
	gateCmd.Flags().Float64Var(&gatePMax, "p-max", 0, "Maximum acceptable failure probability (Wilson upper bound threshold)")
	gateCmd.Flags().Float64Var(&gateRMin, "r-min", 0, "Minimum acceptable R value for the performance floor")
	gateCmd.Flags().IntVar(&gateTCrit, "t-crit", 0, "Critical threshold for max consecutive supercritical steps")
	gateCmd.Flags().Float64Var(&gateZ, "z", gate.DefaultZ, "Normal quantile for the confidence intervals")
	_ = gateCmd.MarkFlagRequired("p-max")
	_ = gateCmd.MarkFlagRequired("r-min")
	_ = gateCmd.MarkFlagRequired("t-crit")

	rootCmd.AddCommand(gateCmd)
}
