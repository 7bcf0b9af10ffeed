package gate

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

// Thresholds are the three certification criteria. All three gates must
// pass for the batch to certify.
type Thresholds struct {
	PMax  float64 // Gate 1: maximum acceptable Wilson upper bound on P(R < RMin)
	RMin  float64 // Gate 1 failure cutoff and Gate 2 performance floor
	TCrit int     // Gate 3: critical consecutive-supercritical step count
	Z     float64 // normal quantile; zero value means DefaultZ
}

// Report is the decision artifact, created once per evaluation and
// immutable. The JSON keys are fixed: downstream audit tooling parses them.
type Report struct {
	NRuns         int     `json:"n_runs"`
	PFailureObs   float64 `json:"p_failure_obs"`
	WilsonUpper95 float64 `json:"wilson_upper95"`
	MeanR         float64 `json:"mean_R"`
	MeanRLower95  float64 `json:"meanR_lower95"`
	MaxConsecObs  int     `json:"max_consec_observed"`

	WilsonPass      bool `json:"gate_wilson_pass"`
	PerfFloorPass   bool `json:"gate_perf_floor_pass"`
	CriticalSeqPass bool `json:"gate_critical_seq_pass"`
	Pass            bool `json:"pass"`
}

// Evaluate runs the three all-must-pass gates over the full record set.
//
//   - Gate 1 bounds the failure probability: Wilson upper bound on the
//     proportion of records with R below RMin must stay under PMax.
//   - Gate 2 enforces the performance floor: the lower confidence bound
//     of mean R must not fall below RMin.
//   - Gate 3 limits critical sequences: the maximum observed
//     consecutive-supercritical counter must stay under TCrit.
//
// With no R-bearing records the observed failure probability and its
// Wilson bound are worst-case 1.0, never a silent pass.
func Evaluate(records []RunRecord, th Thresholds) Report {
	z := th.Z
	if z == 0 {
		z = DefaultZ
	}

	rs := make([]float64, 0, len(records))
	for _, rec := range records {
		if rec.R != nil {
			rs = append(rs, *rec.R)
		}
	}
	n := len(rs)

	k := 0
	for _, r := range rs {
		if r < th.RMin {
			k++
		}
	}

	pFail := 1.0
	if n > 0 {
		pFail = float64(k) / float64(n)
	}
	wilson := WilsonUpper(k, n, z)

	var meanR, stdR float64
	if n > 0 {
		meanR, _ = stats.Mean(stats.Float64Data(rs))
	}
	if n > 1 {
		// Sample standard deviation; with n <= 1 there is no spread
		// evidence and the deviation is left at zero.
		stdR, _ = stats.StandardDeviationSample(stats.Float64Data(rs))
	}
	stderr := 0.0
	if n > 0 {
		stderr = stdR / math.Sqrt(float64(n))
	}
	meanRLower := meanR - z*stderr

	maxConsec := 0
	for _, rec := range records {
		if rec.MaxConsecutiveSupercritical > maxConsec {
			maxConsec = rec.MaxConsecutiveSupercritical
		}
	}

	report := Report{
		NRuns:         n,
		PFailureObs:   pFail,
		WilsonUpper95: wilson,
		MeanR:         meanR,
		MeanRLower95:  meanRLower,
		MaxConsecObs:  maxConsec,

		WilsonPass:      wilson < th.PMax,
		PerfFloorPass:   meanRLower >= th.RMin,
		CriticalSeqPass: maxConsec < th.TCrit,
	}
	report.Pass = report.WilsonPass && report.PerfFloorPass && report.CriticalSeqPass
	return report
}

// Failures returns one line per failing gate, each carrying the exact
// numeric margin, so a verdict can be diagnosed without re-running.
func (r Report) Failures(th Thresholds) []string {
	var lines []string
	if !r.WilsonPass {
		lines = append(lines, fmt.Sprintf("FAIL: Wilson Upper %.4f >= %.4f", r.WilsonUpper95, th.PMax))
	}
	if !r.PerfFloorPass {
		lines = append(lines, fmt.Sprintf("FAIL: Mean R Lower Bound %.4f < %.4f", r.MeanRLower95, th.RMin))
	}
	if !r.CriticalSeqPass {
		lines = append(lines, fmt.Sprintf("FAIL: Max Consec %d >= %d", r.MaxConsecObs, th.TCrit))
	}
	return lines
}
