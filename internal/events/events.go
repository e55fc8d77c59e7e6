package events

import (
	"time"
)

type EventType string

const (
	// AttemptSubmitted fires after a quiz attempt has replaced any previous
	// attempt for the same email.
	AttemptSubmitted EventType = "attempt.submitted"

	// AttemptsCleared fires when a question mutation wipes the attempt
	// history.
	AttemptsCleared EventType = "attempts.cleared"
)

// Event is the envelope published for every domain event.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Source    string      `json:"source"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// AttemptSubmittedPayload carries the identity and outcome of a submission.
type AttemptSubmittedPayload struct {
	AttemptID      uint   `json:"attempt_id"`
	UserEmail      string `json:"user_email"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"total_questions"`
}

// AttemptsClearedPayload names the question mutation that caused the wipe.
type AttemptsClearedPayload struct {
	Reason     string `json:"reason"` // "question_updated" or "question_deleted"
	QuestionID uint   `json:"question_id"`
}
