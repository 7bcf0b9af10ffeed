package sim

import (
	"fmt"
	"testing"

	"github.com/sbm-harness/sbm-harness/sim/internal/testutil"
	"github.com/sbm-harness/sbm-harness/sim/trace"
)

// TestTrial_GoldenDataset checks the trial against reference outcomes
// produced by an independent implementation of the same recurrence. A
// mismatch here means the simulator no longer reproduces the protocol's
// reference behavior bit for bit.
func TestTrial_GoldenDataset(t *testing.T) {
	dataset := testutil.LoadGoldenDataset(t)
	if len(dataset.Trials) == 0 {
		t.Fatal("golden dataset is empty")
	}

	for _, golden := range dataset.Trials {
		t.Run(fmt.Sprintf("seed_%d_steps_%d", golden.Seed, golden.Steps), func(t *testing.T) {
			events, summary := NewTrial(golden.Seed, golden.Steps).Run()

			if summary.Failed {
				t.Fatalf("trial failed: %+v", summary)
			}
			if summary.OverflowCount != golden.OverflowCount {
				t.Errorf("overflow_count = %d, want %d", summary.OverflowCount, golden.OverflowCount)
			}
			if summary.FinalBufferUsed != golden.FinalBufferUsed {
				t.Errorf("final_buffer_used = %d, want %d", summary.FinalBufferUsed, golden.FinalBufferUsed)
			}

			deallocs := 0
			for _, e := range events {
				if e.State == trace.StateDeallocated {
					deallocs++
				}
			}
			if deallocs != golden.DeallocationSteps {
				t.Errorf("deallocation steps = %d, want %d", deallocs, golden.DeallocationSteps)
			}
		})
	}
}
