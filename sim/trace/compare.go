package trace

import (
	"fmt"
	"math"
)

const (
	// DefaultRTol is the relative tolerance applied to buffer_used values.
	DefaultRTol = 1e-7

	// maxMismatches caps the diagnostics accumulated per comparison run.
	maxMismatches = 10
)

// CompareResult reports the outcome of a trace comparison.
type CompareResult struct {
	Events     int      // events compared (length of the first trace)
	Mismatches []string // capped list of mismatch descriptions
}

// Match returns true if no mismatches were found.
func (r CompareResult) Match() bool {
	return len(r.Mismatches) == 0
}

// Compare diffs two equal-intent traces event by event, within rtol for
// buffer_used. A length mismatch is fatal and short-circuits everything
// else; per-event field checks are independent of each other so a single
// run surfaces as many distinct defects as possible, capped at
// maxMismatches plus a truncation marker.
func Compare(a, b []Event, rtol float64) CompareResult {
	result := CompareResult{Events: len(a)}

	if len(a) != len(b) {
		result.Mismatches = append(result.Mismatches,
			fmt.Sprintf("length mismatch: %d vs %d", len(a), len(b)))
		return result
	}

	for i := range a {
		e1, e2 := a[i], b[i]
		if e1.Step != e2.Step {
			result.Mismatches = append(result.Mismatches,
				fmt.Sprintf("Step %d: step number mismatch %d vs %d", i, e1.Step, e2.Step))
		}
		if e1.State != e2.State {
			result.Mismatches = append(result.Mismatches,
				fmt.Sprintf("Step %d: state mismatch '%s' vs '%s'", i, e1.State, e2.State))
		}
		if !withinTolerance(float64(e1.BufferUsed), float64(e2.BufferUsed), rtol) {
			result.Mismatches = append(result.Mismatches,
				fmt.Sprintf("Step %d: buffer_used mismatch %d vs %d", i, e1.BufferUsed, e2.BufferUsed))
		}
		if e1.Request != e2.Request {
			result.Mismatches = append(result.Mismatches,
				fmt.Sprintf("Step %d: request mismatch %d vs %d", i, e1.Request, e2.Request))
		}
		if e1.Success != e2.Success {
			result.Mismatches = append(result.Mismatches,
				fmt.Sprintf("Step %d: success mismatch %t vs %t", i, e1.Success, e2.Success))
		}
		if len(result.Mismatches) >= maxMismatches {
			result.Mismatches = append(result.Mismatches, "... (more errors omitted)")
			break
		}
	}

	return result
}

// withinTolerance implements |a−b| ≤ rtol·max(|a|, |b|, 1).
func withinTolerance(a, b, rtol float64) bool {
	return math.Abs(a-b) <= rtol*math.Max(math.Max(math.Abs(a), math.Abs(b)), 1.0)
}
