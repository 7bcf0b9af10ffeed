// Package fault derives fault-injection parameters from first-principles
// physics: the thermal noise floor (kT) for bit-flip probability and the
// speed-of-light bound on signal propagation for timing jitter budgets.
//
// Everything here is a stateless pure function. The output is consumed as
// plain data by the CLI and is never wired into the deterministic trial
// loop, which must stay a pure function of its seed.
package fault

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Physical constants.
const (
	Boltzmann        = 1.380649e-23 // J/K
	ElementaryCharge = 1.602176e-19 // C
	SpeedOfLight     = 2.998e8      // m/s
)

// Environment holds the operating conditions the model is evaluated at.
// TraceLengthM and ClockPeriodS are needed only for jitter budgets and may
// be absent.
type Environment struct {
	TempKelvin   float64  `yaml:"temp_kelvin"`
	VCoreMV      float64  `yaml:"v_core_mv"`
	TraceLengthM *float64 `yaml:"pcb_trace_length_m,omitempty"`
	ClockPeriodS *float64 `yaml:"clock_period_s,omitempty"`
}

// LoadEnvironment reads an Environment from a YAML file.
func LoadEnvironment(path string) (Environment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Environment{}, fmt.Errorf("read environment file: %w", err)
	}
	var env Environment
	if err := yaml.Unmarshal(data, &env); err != nil {
		return Environment{}, fmt.Errorf("parse environment file %s: %w", path, err)
	}
	return env, nil
}

// BitFlipProbability derives a bit-flip probability from thermal
// activation over the CMOS energy barrier at the core voltage:
// P = exp(−eV/kT), scaled for noise margins and clamped to [0, 1].
// A zero or negative barrier yields the worst case 1.0.
//
// Higher temperature raises the probability, higher core voltage lowers it.
func BitFlipProbability(env Environment) float64 {
	thermal := Boltzmann * env.TempKelvin
	vCore := env.VCoreMV / 1000.0

	barrier := ElementaryCharge * vCore
	if barrier <= 0 {
		return 1.0
	}

	raw := math.Exp(-barrier / thermal)
	prob := raw * scalingFactor(thermal, vCore)
	return math.Min(1.0, math.Max(0.0, prob))
}

// scalingFactor adjusts the raw thermal activation probability for circuit
// noise margins and error correction. Normalized to 1.0 V core voltage and
// 300 K thermal energy.
func scalingFactor(thermal, vCoreV float64) float64 {
	const baseScale = 1e-6
	voltageFactor := 1.0 / math.Max(0.1, vCoreV)
	thermalFactor := thermal / (Boltzmann * 300.0)
	return baseScale * voltageFactor * thermalFactor
}

// jitterFloor is the sentinel returned when timing closure is impossible:
// one femtosecond, effectively zero budget.
const jitterFloor = 1e-15

// MaxTimingJitter derives the maximum permissible timing jitter from the
// c-bound on round-trip signal propagation over the PCB trace, minus a 20%
// setup/hold margin of the clock period. Signals travel at roughly c/2.12
// in FR4 (effective permittivity ≈ 4.5).
//
// A negative budget means timing closure is impossible for this
// environment; the jitterFloor sentinel is returned instead.
func MaxTimingJitter(env Environment) (float64, error) {
	if env.TraceLengthM == nil {
		return 0, errors.New("environment missing pcb_trace_length_m")
	}
	if env.ClockPeriodS == nil {
		return 0, errors.New("environment missing clock_period_s")
	}

	effectiveSpeed := SpeedOfLight / 2.12
	propagationDelay := (2 * *env.TraceLengthM) / effectiveSpeed
	safetyMargin := 0.2 * *env.ClockPeriodS

	maxJitter := *env.ClockPeriodS - propagationDelay - safetyMargin
	if maxJitter < 0 {
		return jitterFloor, nil
	}
	return maxJitter, nil
}
