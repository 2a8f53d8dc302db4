package models

import "time"

// CompletionState is the terminal state of a photo submission
type CompletionState string

const (
	// StateSubmitted is the initial state: photo recorded, no judgment yet
	StateSubmitted CompletionState = "submitted"
	// StateValidated means the judge accepted the photo and tokens were awarded
	StateValidated CompletionState = "validated"
	// StateRejected means the judge declined the photo (or its output was unusable)
	StateRejected CompletionState = "rejected"
	// StateFailed means the judge could not be reached; the submission may be retried
	StateFailed CompletionState = "failed"
)

// ActivityCompletion records one photo submission attempt for an activity.
// Child and activity references are immutable after creation, and the token
// award is set at most once.
type ActivityCompletion struct {
	ID             int64
	ChildID        int64
	ActivityID     int64
	PhotoPath      string
	PhotoTimestamp *time.Time
	State          CompletionState
	Validated      bool
	Reasoning      string // raw judge reasoning, kept for the child/guardian
	TokensAwarded  int
	CreatedAt      time.Time
}

// CompletionSummary is a completion joined with its activity title for listings
type CompletionSummary struct {
	ID            int64
	ActivityID    int64
	ActivityTitle string
	Validated     bool
	TokensAwarded int
	CreatedAt     time.Time
}

// CompletionResult is the outcome of the completion pipeline returned to callers
type CompletionResult struct {
	CompletionID  int64
	State         CompletionState
	Validated     bool
	TokensAwarded int
	Reasoning     string
}
