package models

import "fmt"

// Status represents the lifecycle state of a persisted record
type Status string

const (
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusSent       Status = "sent"
	StatusReceived   Status = "received"
	StatusProcessed  Status = "processed"
	StatusActive     Status = "active"
)

// allowedTransitions lists, per status, the statuses a record may move to.
// Statuses absent from the table (or mapped to nothing) are terminal.
var allowedTransitions = map[Status][]Status{
	StatusQueued:     {StatusProcessing, StatusCompleted, StatusFailed, StatusSent},
	StatusProcessing: {StatusCompleted, StatusFailed},
	StatusReceived:   {StatusProcessed, StatusFailed},
}

// CanTransitionTo reports whether moving from s to next is allowed
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition returns next if the move from s is allowed, or a TransitionError otherwise
func (s Status) Transition(next Status) (Status, error) {
	if !s.CanTransitionTo(next) {
		return s, &TransitionError{From: s, To: next}
	}
	return next, nil
}

func (s Status) String() string {
	return string(s)
}

// TransitionError is returned when a status change is not in the transition table
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal status transition from %q to %q", e.From, e.To)
}
