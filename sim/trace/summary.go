package trace

// Summary is the per-trial record appended to a batch results file.
// It is derived once from a finished trial's event sequence and is
// immutable thereafter.
type Summary struct {
	Seed            uint32 `json:"seed"`
	Steps           int    `json:"steps"`
	Failed          bool   `json:"failed"`
	OverflowCount   int    `json:"overflow_count"`
	FinalBufferUsed int    `json:"final_buffer_used"`
}
