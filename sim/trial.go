package sim

import (
	"github.com/sbm-harness/sbm-harness/sim/trace"
)

// Allocation model constants, fixed by the certification protocol.
const (
	// BufferCapacity is the bounded buffer size in units.
	BufferCapacity = 100
	// RequestMin and RequestMax bound the per-step request size, drawn
	// from the inclusive-exclusive range [RequestMin, RequestMax).
	RequestMin = 1
	RequestMax = 11
	// DeallocProb is the per-step probability of a deallocation.
	DeallocProb = 0.1
)

// Trial steps a bounded-buffer allocator under random load for a fixed
// number of steps. There is no early termination and no cancellation:
// the step count bounds execution deterministically.
type Trial struct {
	seed  uint32
	steps int
	src   Source
}

// NewTrial creates a trial that owns a fresh LCG seeded with seed.
func NewTrial(seed uint32, steps int) *Trial {
	return &Trial{seed: seed, steps: steps, src: NewLCG(seed)}
}

// NewTrialWithSource creates a trial drawing from the given Source.
// The seed is recorded in the summary only; determinism is then the
// Source's responsibility.
func NewTrialWithSource(seed uint32, steps int, src Source) *Trial {
	return &Trial{seed: seed, steps: steps, src: src}
}

// Run executes the trial and returns its full event trace and summary.
//
// Per step the draw order is fixed and must be preserved for trace parity:
// request size first, then (only if the buffer is non-empty) the
// deallocation coin-flip, then (only if the coin hits) the deallocation
// amount. A deallocating step keeps the request and success fields of the
// allocation attempt, but the "deallocated" label overwrites the
// allocation label: the trace format compresses both outcomes into one
// event.
func (t *Trial) Run() ([]trace.Event, trace.Summary) {
	bufferUsed := 0
	overflowCount := 0
	events := make([]trace.Event, 0, t.steps)

	for step := 0; step < t.steps; step++ {
		request := t.src.IntRange(RequestMin, RequestMax)

		var state trace.State
		var success bool
		if bufferUsed+request <= BufferCapacity {
			bufferUsed += request
			state = trace.StateAllocated
			success = true
		} else {
			// The guard rejecting an oversized request is the allocator
			// working as designed, not a trial failure.
			state = trace.StateOverflowPrevented
			success = false
			overflowCount++
		}

		if bufferUsed > 0 && t.src.UnitFloat() < DeallocProb {
			dealloc := t.src.IntRange(RequestMin, RequestMax)
			if dealloc > bufferUsed {
				dealloc = bufferUsed
			}
			bufferUsed -= dealloc
			state = trace.StateDeallocated
		}

		events = append(events, trace.Event{
			Step:       step,
			State:      state,
			BufferUsed: bufferUsed,
			Request:    request,
			Success:    success,
		})
	}

	summary := trace.Summary{
		Seed:  t.seed,
		Steps: t.steps,
		// Failed flags the buffer leaving [0, capacity]. That is a defect
		// in the simulator itself, distinct from business-level failure,
		// and must never trigger under correct logic.
		Failed:          bufferUsed < 0 || bufferUsed > BufferCapacity,
		OverflowCount:   overflowCount,
		FinalBufferUsed: bufferUsed,
	}
	return events, summary
}
