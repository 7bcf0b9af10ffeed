package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sbm-harness/sbm-harness/sim/trace"
)

var compareRTol float64 // Relative tolerance for numeric comparisons

// compareCmd certifies equivalence of two independently produced traces
var compareCmd = &cobra.Command{
	Use:   "compare TRACE_FILE_1 TRACE_FILE_2",
	Short: "Diff two trace files within numeric tolerance",
	Long: `compare checks that two independently produced traces (for example the
reference simulator against an external native implementation) are
equivalent: exact step, state, request and success fields, and
buffer_used within a relative tolerance.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		a, err := trace.LoadTrace(args[0])
		if err != nil {
			logrus.Fatalf("load trace: %v", err)
		}
		b, err := trace.LoadTrace(args[1])
		if err != nil {
			logrus.Fatalf("load trace: %v", err)
		}

		result := trace.Compare(a, b, compareRTol)

		if result.Match() {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Reproducibility check PASSED")
			fmt.Fprintf(out, "  Compared %d events with rtol=%g\n", result.Events, compareRTol)
			return
		}

		errOut := cmd.ErrOrStderr()
		fmt.Fprintln(errOut, "Reproducibility check FAILED")
		fmt.Fprintf(errOut, "  Found %d error(s):\n", len(result.Mismatches))
		for _, m := range result.Mismatches {
			fmt.Fprintf(errOut, "    - %s\n", m)
		}
		os.Exit(1)
	},
}

func init() {
	compareCmd.Flags().Float64Var(&compareRTol, "rtol", trace.DefaultRTol, "Relative tolerance for numeric comparisons")

	rootCmd.AddCommand(compareCmd)
}
