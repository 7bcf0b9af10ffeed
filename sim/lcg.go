package sim

// === Source ===

// Source is the deterministic random stream a trial draws from. It is a
// strategy object: each trial owns exactly one instance and no instance is
// ever shared, so trials stay isolated and order-independent.
type Source interface {
	// Next returns the next raw unsigned 32-bit value.
	Next() uint32
	// IntRange returns an integer in [min, max).
	IntRange(min, max int) int
	// UnitFloat returns a float in [0, 1).
	UnitFloat() float64
}

// === LCG ===

// Linear-congruential recurrence constants (Numerical Recipes). Both the
// multiplier and the increment are fixed by the certification protocol:
// changing either breaks trace parity with external implementations.
const (
	lcgMultiplier uint32 = 1664525
	lcgIncrement  uint32 = 1013904223
)

// LCG is a linear congruential generator with full 2^32 period. Its
// statistical quality is deliberately weak: the certification protocol
// depends on bit-for-bit trace equality between independent
// implementations, not on randomness quality, and this recurrence is
// trivial to replicate exactly on any platform.
//
// Thread-safety: NOT thread-safe. Must be owned by a single trial.
type LCG struct {
	state uint32
}

// NewLCG returns a generator whose entire mutable state is the seed.
func NewLCG(seed uint32) *LCG {
	return &LCG{state: seed}
}

// Next advances the recurrence and returns the new state. The output
// sequence is a pure function of the seed and the call count.
func (g *LCG) Next() uint32 {
	g.state = lcgMultiplier*g.state + lcgIncrement
	return g.state
}

// IntRange returns an integer in [min, max) via modulo on the raw value.
// The modulo bias is part of the wire contract: replacing it with a
// rejection-sampling scheme would desynchronize traces.
func (g *LCG) IntRange(min, max int) int {
	return min + int(g.Next()%uint32(max-min))
}

// UnitFloat returns Next()/2^32, a float in [0, 1).
func (g *LCG) UnitFloat() float64 {
	return float64(g.Next()) / 4294967296.0
}
