package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// WriteTrace writes one serialized Event per line to path, in order.
func WriteTrace(path string, events []Event) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create trace file: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := bufio.NewWriter(f)
	for _, e := range events {
		line, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("encode event %d: %w", e.Step, err)
		}
		if _, err := w.Write(append(line, '\n')); err != nil {
			return fmt.Errorf("write event %d: %w", e.Step, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush trace file: %w", err)
	}
	return nil
}

// LoadTrace reads a JSONL trace file. Traces are decision-relevant input:
// the first blank, unparsable, or schema-invalid line aborts the load with
// its line number.
func LoadTrace(path string) ([]Event, error) {
	var events []Event
	err := loadLines(path, eventSchema, func(line []byte) error {
		var e Event
		if err := json.Unmarshal(line, &e); err != nil {
			return err
		}
		events = append(events, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

// LoadSummaries reads a JSONL batch summary file with the same strictness
// as LoadTrace.
func LoadSummaries(path string) ([]Summary, error) {
	var summaries []Summary
	err := loadLines(path, summarySchema, func(line []byte) error {
		var s Summary
		if err := json.Unmarshal(line, &s); err != nil {
			return err
		}
		summaries = append(summaries, s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// loadLines scans a JSONL file, validates each line against schema, and
// hands the raw line to decode.
func loadLines(path string, schema *jsonschema.Schema, decode func([]byte) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			return fmt.Errorf("%s:%d: blank line", path, lineNum)
		}
		var payload any
		if err := json.Unmarshal(line, &payload); err != nil {
			return fmt.Errorf("%s:%d: invalid JSON: %w", path, lineNum, err)
		}
		if err := schema.Validate(payload); err != nil {
			return fmt.Errorf("%s:%d: %w", path, lineNum, err)
		}
		if err := decode(line); err != nil {
			return fmt.Errorf("%s:%d: %w", path, lineNum, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}
