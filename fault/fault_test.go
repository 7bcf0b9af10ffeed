package fault

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

// === BitFlipProbability Tests ===

func TestBitFlipProbability_InValidRange(t *testing.T) {
	tests := []struct {
		name string
		env  Environment
	}{
		{"room temperature", Environment{TempKelvin: 300, VCoreMV: 1000}},
		{"hot and undervolted", Environment{TempKelvin: 400, VCoreMV: 800}},
		{"cold", Environment{TempKelvin: 250, VCoreMV: 1200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prob := BitFlipProbability(tt.env)
			if prob < 0 || prob > 1 {
				t.Errorf("probability %v outside [0, 1]", prob)
			}
		})
	}
}

func TestBitFlipProbability_RisesWithTemperature(t *testing.T) {
	low := BitFlipProbability(Environment{TempKelvin: 250, VCoreMV: 1000})
	high := BitFlipProbability(Environment{TempKelvin: 400, VCoreMV: 1000})

	if high <= low {
		t.Errorf("probability did not rise with temperature: %v at 250K, %v at 400K", low, high)
	}
}

func TestBitFlipProbability_RisesWithUndervolting(t *testing.T) {
	highV := BitFlipProbability(Environment{TempKelvin: 300, VCoreMV: 1200})
	lowV := BitFlipProbability(Environment{TempKelvin: 300, VCoreMV: 800})

	if lowV <= highV {
		t.Errorf("probability did not rise with lower voltage: %v at 1.2V, %v at 0.8V", highV, lowV)
	}
}

func TestBitFlipProbability_ZeroVoltage_NoBarrier(t *testing.T) {
	// No energy barrier means every bit is up for grabs.
	if got := BitFlipProbability(Environment{TempKelvin: 300, VCoreMV: 0}); got != 1.0 {
		t.Errorf("probability = %v, want 1.0", got)
	}
}

// === MaxTimingJitter Tests ===

func TestMaxTimingJitter_ValidBudget(t *testing.T) {
	// 5 cm trace on a 100 MHz clock leaves a healthy budget.
	env := Environment{
		TempKelvin:   300,
		VCoreMV:      1000,
		TraceLengthM: floatPtr(0.05),
		ClockPeriodS: floatPtr(10e-9),
	}

	jitter, err := MaxTimingJitter(env)
	require.NoError(t, err)

	if jitter <= 0 || jitter >= *env.ClockPeriodS {
		t.Errorf("jitter budget %v outside (0, clock period)", jitter)
	}
}

func TestMaxTimingJitter_ClosureViolation_Sentinel(t *testing.T) {
	// 50 cm trace on a 1 GHz clock: propagation alone exceeds the period.
	env := Environment{
		TempKelvin:   300,
		VCoreMV:      1000,
		TraceLengthM: floatPtr(0.5),
		ClockPeriodS: floatPtr(1e-9),
	}

	jitter, err := MaxTimingJitter(env)
	require.NoError(t, err)
	require.Equal(t, 1e-15, jitter, "violation must return the femtosecond sentinel")
}

func TestMaxTimingJitter_MissingParameters(t *testing.T) {
	_, err := MaxTimingJitter(Environment{TempKelvin: 300, VCoreMV: 1000})
	require.Error(t, err)

	_, err = MaxTimingJitter(Environment{TempKelvin: 300, VCoreMV: 1000, TraceLengthM: floatPtr(0.05)})
	require.Error(t, err)
}

// === LoadEnvironment Tests ===

func TestLoadEnvironment_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	content := `temp_kelvin: 350.0
v_core_mv: 900.0
pcb_trace_length_m: 0.05
clock_period_s: 1.0e-8
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	env, err := LoadEnvironment(path)
	require.NoError(t, err)
	require.Equal(t, 350.0, env.TempKelvin)
	require.Equal(t, 900.0, env.VCoreMV)
	require.NotNil(t, env.TraceLengthM)
	require.Equal(t, 0.05, *env.TraceLengthM)
}

func TestLoadEnvironment_OptionalFieldsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	require.NoError(t, os.WriteFile(path, []byte("temp_kelvin: 300.0\nv_core_mv: 1000.0\n"), 0o644))

	env, err := LoadEnvironment(path)
	require.NoError(t, err)
	require.Nil(t, env.TraceLengthM)
	require.Nil(t, env.ClockPeriodS)
}

func TestLoadEnvironment_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	require.NoError(t, os.WriteFile(path, []byte("temp_kelvin: [not a number\n"), 0o644))

	_, err := LoadEnvironment(path)
	require.Error(t, err)
}
