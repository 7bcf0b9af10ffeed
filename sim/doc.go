// Package sim provides the deterministic Monte Carlo core of the SBM
// certification harness.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - lcg.go: the Source contract and its linear-congruential implementation
//   - trial.go: the bounded-buffer allocation state machine, one trial per seed
//   - batch.go: sequential or worker-pool execution across a seed sequence
//
// # Reproducibility
//
// Everything in this package is a pure function of its seed: no wall-clock
// time, no OS entropy, no global generator. Two conforming implementations
// given the same seed and step count must produce bit-identical traces.
// That constraint shapes every design choice here, including keeping the
// deliberately weak generator and its modulo bias.
//
// Pure data types (trace events, trial summaries) and their line-oriented
// encoding live in sim/trace, which has no dependency on this package.
package sim
