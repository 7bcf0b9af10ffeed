package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sbm-harness/sbm-harness/fault"
)

var (
	faultEnvPath     string  // YAML environment file (overrides the flags below)
	faultTempKelvin  float64 // Temperature in Kelvin
	faultVCoreMV     float64 // Core voltage in millivolts
	faultTraceLength float64 // PCB trace length in meters
	faultClockPeriod float64 // Clock period in seconds
)

// FaultParams is the JSON document the fault command emits. The jitter
// field is present only when the environment carries timing parameters.
type FaultParams struct {
	BitFlipProbability float64  `json:"bit_flip_probability"`
	MaxTimingJitterS   *float64 `json:"max_timing_jitter_s,omitempty"`
}

// faultCmd derives fault-injection parameters from physics
var faultCmd = &cobra.Command{
	Use:   "fault",
	Short: "Derive fault-injection parameters from the operating environment",
	Long: `fault computes the physics-derived fault parameters for an operating
environment: the thermal bit-flip probability, and (when PCB trace length
and clock period are given) the maximum permissible timing jitter. The
output is plain data; it never feeds the deterministic trial loop.`,
	Run: func(cmd *cobra.Command, args []string) {
		var env fault.Environment
		if faultEnvPath != "" {
			loaded, err := fault.LoadEnvironment(faultEnvPath)
			if err != nil {
				logrus.Fatalf("load environment: %v", err)
			}
			env = loaded
		} else {
			env = fault.Environment{TempKelvin: faultTempKelvin, VCoreMV: faultVCoreMV}
			if cmd.Flags().Changed("trace-length") {
				env.TraceLengthM = &faultTraceLength
			}
			if cmd.Flags().Changed("clock-period") {
				env.ClockPeriodS = &faultClockPeriod
			}
		}

		params := FaultParams{BitFlipProbability: fault.BitFlipProbability(env)}
		if env.TraceLengthM != nil && env.ClockPeriodS != nil {
			jitter, err := fault.MaxTimingJitter(env)
			if err != nil {
				logrus.Fatalf("timing jitter: %v", err)
			}
			params.MaxTimingJitterS = &jitter
		}

		encoded, err := json.MarshalIndent(params, "", "  ")
		if err != nil {
			logrus.Fatalf("encode parameters: %v", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
	},
}

func init() {
	faultCmd.Flags().StringVar(&faultEnvPath, "env", "", "YAML environment file (takes precedence over the parameter flags)")
	faultCmd.Flags().Float64Var(&faultTempKelvin, "temp-kelvin", 300.0, "Temperature in Kelvin")
	faultCmd.Flags().Float64Var(&faultVCoreMV, "v-core-mv", 1000.0, "Core voltage in millivolts")
	faultCmd.Flags().Float64Var(&faultTraceLength, "trace-length", 0, "PCB trace length in meters")
	faultCmd.Flags().Float64Var(&faultClockPeriod, "clock-period", 0, "Clock period in seconds")

	rootCmd.AddCommand(faultCmd)
}
