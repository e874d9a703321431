package reembed

import (
	"github.com/google/uuid"
	"github.com/poiesic/recall/core"
)

// Status classifies what happened to a single note during a run.
type Status string

const (
	// StatusProcessed means a fresh embedding was generated and persisted.
	StatusProcessed Status = "processed"
	// StatusSkipped means the note was not worth embedding (too little text).
	StatusSkipped Status = "skipped"
	// StatusError means the note failed after retries and was left untouched.
	StatusError Status = "error"
)

// Outcome records the fate of one note.
type Outcome struct {
	Id     core.ID
	Status Status
	// Detail explains a skip or carries the failure message. Empty for
	// processed notes.
	Detail string
}

// Summary reports a completed run. A run always produces a Summary, even
// when every note failed: per-note failures are data, not run failures.
type Summary struct {
	RunId     uuid.UUID
	Owner     string
	Processed int
	Skipped   int
	Errors    int
	Outcomes  []Outcome
}

// Total returns the number of notes the run looked at.
func (s *Summary) Total() int {
	return s.Processed + s.Skipped + s.Errors
}

func (s *Summary) record(outcome Outcome) {
	s.Outcomes = append(s.Outcomes, outcome)
	switch outcome.Status {
	case StatusProcessed:
		s.Processed++
	case StatusSkipped:
		s.Skipped++
	case StatusError:
		s.Errors++
	}
}
