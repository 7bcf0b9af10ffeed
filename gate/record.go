// Package gate renders certification verdicts from batches of trial
// results using confidence-interval mathematics. Evaluation is a pure
// function of the full input record set: it never partially applies, and
// it always emits the complete numeric report whether or not the gates
// pass, so an audit trail exists either way.
package gate

import (
	"bufio"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// RunRecord is one parsed line of an externally supplied results feed.
// R is optional: a record without it carries no performance evidence and
// is excluded from the proportion and mean estimates, but it is still
// scanned for the consecutive-supercritical counter.
type RunRecord struct {
	R                           *float64 `json:"R,omitempty"`
	MaxConsecutiveSupercritical int      `json:"max_consecutive_supercritical,omitempty"`
}

//go:embed schemas/run_record.schema.json
var runRecordSchemaJSON string

var runRecordSchema = jsonschema.MustCompileString("run_record.schema.json", runRecordSchemaJSON)

// LoadRunRecords reads a JSONL results feed. Blank lines are skipped;
// any line that is not valid JSON or violates the record schema aborts
// the load with its line number. Records are never mutated afterwards.
func LoadRunRecords(path string) ([]RunRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var records []RunRecord
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var payload any
		if err := json.Unmarshal(line, &payload); err != nil {
			return nil, fmt.Errorf("%s:%d: invalid JSON: %w", path, lineNum, err)
		}
		if err := runRecordSchema.Validate(payload); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNum, err)
		}
		var rec RunRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNum, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return records, nil
}
