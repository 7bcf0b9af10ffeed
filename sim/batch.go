package sim

import (
	"encoding/json"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/sbm-harness/sbm-harness/sim/trace"
)

// BatchConfig groups batch runner parameters.
type BatchConfig struct {
	Trials   int    // number of trials (must be > 0)
	Steps    int    // steps per trial
	SeedBase uint32 // trial i runs with seed SeedBase + i
	Workers  int    // trial-level parallelism; <= 1 means sequential
}

// BatchResult aggregates a finished batch. Summaries are ordered by trial
// index regardless of how many workers produced them.
type BatchResult struct {
	Summaries []trace.Summary
	Failures  int
}

// FailureRate returns the observed fraction of failed trials.
func (r BatchResult) FailureRate() float64 {
	if len(r.Summaries) == 0 {
		return 0
	}
	return float64(r.Failures) / float64(len(r.Summaries))
}

// RunBatch drives the trial simulator across the contiguous seed sequence
// SeedBase+i. Trials share no mutable state, so they are embarrassingly
// parallel; with Workers > 1 each result is buffered into its index slot
// and the output order still matches trial index order exactly.
func RunBatch(cfg BatchConfig) (BatchResult, error) {
	if cfg.Trials <= 0 {
		return BatchResult{}, fmt.Errorf("batch needs at least one trial, got %d", cfg.Trials)
	}

	summaries := make([]trace.Summary, cfg.Trials)
	var completed atomic.Int64
	runOne := func(i int) {
		_, s := NewTrial(cfg.SeedBase+uint32(i), cfg.Steps).Run()
		summaries[i] = s
		if n := completed.Add(1); n%100 == 0 {
			logrus.Infof("completed %d/%d trials", n, cfg.Trials)
		}
	}

	if cfg.Workers <= 1 {
		for i := 0; i < cfg.Trials; i++ {
			runOne(i)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(cfg.Workers)
		for i := 0; i < cfg.Trials; i++ {
			i := i
			g.Go(func() error {
				runOne(i)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return BatchResult{}, err
		}
	}

	result := BatchResult{Summaries: summaries}
	for _, s := range summaries {
		if s.Failed {
			result.Failures++
		}
	}
	return result, nil
}

// WriteSummaries appends one serialized summary per line to path, in trial
// index order. Each record is written with a single Write call so an
// interrupted run can truncate the file only at a line boundary, never
// mid-record.
func WriteSummaries(path string, summaries []trace.Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create summary file: %w", err)
	}
	defer func() { _ = f.Close() }()

	for _, s := range summaries {
		line, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("encode summary for seed %d: %w", s.Seed, err)
		}
		if _, err := f.Write(append(line, '\n')); err != nil {
			return fmt.Errorf("write summary for seed %d: %w", s.Seed, err)
		}
	}
	return nil
}
