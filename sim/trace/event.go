// Package trace holds the per-step trial records exchanged between the
// simulator, the reproducibility comparator, and the statistical gates.
// This package has no dependencies on sim/: it stores pure data types
// plus their line-oriented (JSONL) encoding.
package trace

// State labels the outcome of a single simulation step. The set is closed:
// any conforming implementation must emit exactly these strings, since the
// reproducibility check compares labels byte for byte.
type State string

const (
	// StateAllocated marks a step whose allocation request fit the buffer.
	StateAllocated State = "allocated"
	// StateDeallocated marks a step that released buffer space. It takes
	// precedence over the allocation label when both occur in one step.
	StateDeallocated State = "deallocated"
	// StateOverflowPrevented marks a rejected request. The guard working
	// as intended is a success of the allocator, not a trial failure.
	StateOverflowPrevented State = "overflow_prevented"
)

// validStates maps accepted state label strings.
var validStates = map[State]bool{
	StateAllocated:         true,
	StateDeallocated:       true,
	StateOverflowPrevented: true,
}

// IsValidState returns true if the given label is a recognized step state.
func IsValidState(label string) bool {
	return validStates[State(label)]
}

// Event is one step of a trial trace. A trial produces one Event per step,
// append-only, fully determined by (seed, step count). Field names and
// order are the wire contract shared with external implementations.
type Event struct {
	Step       int   `json:"step"`
	State      State `json:"state"`
	BufferUsed int   `json:"buffer_used"`
	Request    int   `json:"request"`
	Success    bool  `json:"success"`
}
