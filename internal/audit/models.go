package audit

import "time"

// Event records one validation run against the personnel database, kept
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp         time.Time
	RequestID         string
	DBFPath           string
	RegistrationCount int
	IssueCount        int
	Outcome           string // "ok", "load_error", "input_error"
	Reason            string
}
