// Package testutil provides shared test infrastructure for the harness.
// It holds the golden dataset types and loader used by determinism tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
// The expected values were produced by an independent implementation of
// the trial recurrence; any drift from them breaks cross-implementation
// trace parity.
type GoldenDataset struct {
	Trials []GoldenTrial `json:"trials"`
}

// GoldenTrial pins the summary-level outcome of one (seed, steps) pair.
type GoldenTrial struct {
	Seed              uint32 `json:"seed"`
	Steps             int    `json:"steps"`
	OverflowCount     int    `json:"overflow_count"`
	FinalBufferUsed   int    `json:"final_buffer_used"`
	DeallocationSteps int    `json:"deallocation_steps"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}
