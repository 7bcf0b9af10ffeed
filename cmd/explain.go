package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sbm-harness/sbm-harness/echo"
)

var explainContext map[string]string // Optional context: operation, file, line, msg

// explainCmd translates a harness status code into a causal echo
var explainCmd = &cobra.Command{
	Use:   "explain STATUS_CODE",
	Short: "Translate a harness status code into a structured causal echo",
	Long: `explain turns a raw status code (e.g. SBM_ERR_OOB) into a structured,
human-interpretable signal: the violated invariant class, its severity,
and recommended recovery strategies. Unrecognized codes degrade to the
unknown class instead of erroring.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		result := echo.Translate(args[0], explainContext)

		encoded, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			logrus.Fatalf("encode echo: %v", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
	},
}

func init() {
	explainCmd.Flags().StringToStringVar(&explainContext, "context", nil,
		"Context key=value pairs (operation, file, line, msg)")

	rootCmd.AddCommand(explainCmd)
}
