package gate

import (
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sbm-harness/sbm-harness/sim/trace"
)

// zTable pins the quantiles the certification protocol documents for its
// standard confidence levels; other levels fall through to the exact
// normal quantile.
var zTable = map[float64]float64{
	0.90:  1.645,
	0.95:  1.96,
	0.99:  2.576,
	0.999: 3.291,
}

// ZScore returns the two-sided normal quantile for a confidence level,
// e.g. 0.95 → 1.96.
func ZScore(confidence float64) float64 {
	if z, ok := zTable[confidence]; ok {
		return z
	}
	return distuv.UnitNormal.Quantile(1 - (1-confidence)/2)
}

// SafetyReport is the decision artifact of the single-criterion gate that
// bounds the simulator's own failed-trial rate, as opposed to the
// three-criterion gate over an external performance feed.
type SafetyReport struct {
	Trials      int     `json:"total_trials"`
	Failures    int     `json:"failures"`
	FailureRate float64 `json:"failure_rate"`
	WilsonUpper float64 `json:"wilson_upper"`
	Confidence  float64 `json:"confidence"`
	PMax        float64 `json:"p_max"`
	Pass        bool    `json:"pass"`
}

// EvaluateSafety bounds the failure probability of a batch using the
// Wilson upper bound on the failed-trial proportion. An empty batch is
// statistical insufficiency: the bound is 1.0 and the gate fails.
func EvaluateSafety(summaries []trace.Summary, pMax, confidence float64) SafetyReport {
	failures := 0
	for _, s := range summaries {
		if s.Failed {
			failures++
		}
	}

	n := len(summaries)
	rate := 0.0
	if n > 0 {
		rate = float64(failures) / float64(n)
	}
	upper := WilsonUpper(failures, n, ZScore(confidence))

	return SafetyReport{
		Trials:      n,
		Failures:    failures,
		FailureRate: rate,
		WilsonUpper: upper,
		Confidence:  confidence,
		PMax:        pMax,
		Pass:        upper <= pMax,
	}
}
