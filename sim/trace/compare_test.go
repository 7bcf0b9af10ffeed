package trace

import (
	"strings"
	"testing"
)

func makeTrace(n int) []Event {
	events := make([]Event, n)
	for i := range events {
		events[i] = Event{Step: i, State: StateAllocated, BufferUsed: i % 100, Request: 1 + i%10, Success: true}
	}
	return events
}

func TestCompare_IdenticalCopy_NoMismatches(t *testing.T) {
	// Idempotence: a trace against an exact copy of itself matches for
	// any rtol >= 0.
	a := makeTrace(100)
	b := makeTrace(100)

	for _, rtol := range []float64{0, 1e-12, 1e-7, 0.5} {
		result := Compare(a, b, rtol)
		if !result.Match() {
			t.Errorf("rtol=%g: identical traces mismatch: %v", rtol, result.Mismatches)
		}
		if result.Events != 100 {
			t.Errorf("rtol=%g: compared %d events, want 100", rtol, result.Events)
		}
	}
}

func TestCompare_LengthMismatch_ShortCircuits(t *testing.T) {
	a := makeTrace(10)
	b := makeTrace(7)
	// Make the shared prefix differ too; none of it may be reported.
	b[0].State = StateDeallocated

	result := Compare(a, b, DefaultRTol)

	if len(result.Mismatches) != 1 {
		t.Fatalf("got %d mismatches, want exactly the length report: %v", len(result.Mismatches), result.Mismatches)
	}
	if !strings.Contains(result.Mismatches[0], "length mismatch: 10 vs 7") {
		t.Errorf("unexpected message: %s", result.Mismatches[0])
	}
}

func TestCompare_FieldChecks_Independent(t *testing.T) {
	// Several fields differing within one event are all reported.
	a := makeTrace(3)
	b := makeTrace(3)
	b[1].State = StateOverflowPrevented
	b[1].Success = false
	b[1].Request = 9999

	result := Compare(a, b, DefaultRTol)

	if len(result.Mismatches) != 3 {
		t.Fatalf("got %d mismatches, want 3: %v", len(result.Mismatches), result.Mismatches)
	}
	for _, want := range []string{"state mismatch", "request mismatch", "success mismatch"} {
		found := false
		for _, m := range result.Mismatches {
			if strings.Contains(m, want) {
				found = true
			}
		}
		if !found {
			t.Errorf("no %q in %v", want, result.Mismatches)
		}
	}
}

func TestCompare_BufferUsed_Tolerance(t *testing.T) {
	tests := []struct {
		name   string
		a, b   int
		rtol   float64
		match  bool
	}{
		{"exact", 50, 50, 0, true},
		{"off by one, zero tolerance", 50, 51, 0, false},
		{"off by one, loose tolerance", 50, 51, 0.1, true},
		{"zero values", 0, 0, 1e-7, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := []Event{{Step: 0, State: StateAllocated, BufferUsed: tt.a, Request: 1, Success: true}}
			b := []Event{{Step: 0, State: StateAllocated, BufferUsed: tt.b, Request: 1, Success: true}}
			if got := Compare(a, b, tt.rtol).Match(); got != tt.match {
				t.Errorf("match = %v, want %v", got, tt.match)
			}
		})
	}
}

func TestCompare_MismatchList_Capped(t *testing.T) {
	// 20 differing events produce the cap plus one truncation marker.
	a := makeTrace(20)
	b := makeTrace(20)
	for i := range b {
		b[i].Request = 9999
	}

	result := Compare(a, b, DefaultRTol)

	if len(result.Mismatches) != 11 {
		t.Fatalf("got %d mismatches, want 10 + truncation marker", len(result.Mismatches))
	}
	last := result.Mismatches[len(result.Mismatches)-1]
	if !strings.Contains(last, "omitted") {
		t.Errorf("last entry %q is not the truncation marker", last)
	}
}
