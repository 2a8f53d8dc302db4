package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"treasurehunt/internal/judge"
	"treasurehunt/internal/models"
)

var (
	ErrChildNotFound    = errors.New("child not found")
	ErrActivityNotFound = errors.New("activity not found")
	ErrPhotoRequired    = errors.New("photo is required")
)

// completionStore is the slice of the domain store the pipeline writes to
type completionStore interface {
	CreateCompletion(childID, activityID int64, photoPath string, photoTimestamp time.Time) (*models.ActivityCompletion, error)
	MarkRejected(completionID int64, reasoning string) error
	MarkFailed(completionID int64, note string) error
	Award(completionID, childID int64, tokens int, reasoning string) error
}

type childStore interface {
	GetChildByID(childID int64) (*models.Child, error)
}

type activityStore interface {
	GetActivityByID(activityID int64) (*models.Activity, error)
}

type photoStore interface {
	Save(photo []byte) (string, error)
}

// CompletionService runs the completion validation and reward pipeline: it
// records the submission, obtains a verdict from the judge, and on a positive
// verdict performs the atomic token award.
type CompletionService struct {
	completions completionStore
	children    childStore
	activities  activityStore
	photos      photoStore
	judge       judge.Client
}

// NewCompletionService creates a new completion service
func NewCompletionService(completions completionStore, children childStore, activities activityStore, photos photoStore, judgeClient judge.Client) *CompletionService {
	return &CompletionService{
		completions: completions,
		children:    children,
		activities:  activities,
		photos:      photos,
		judge:       judgeClient,
	}
}

// Submit runs one photo submission through the pipeline. Each call produces
// exactly one completion record; the record survives judge failures so no
// submission attempt is silently discarded. Terminal states:
//
//   - validated: positive verdict, tokens awarded atomically with the balance
//   - rejected: negative or unusable verdict, zero tokens (fail closed)
//   - failed: judge unreachable or timed out, zero tokens, caller may resubmit
func (s *CompletionService) Submit(ctx context.Context, childID, activityID int64, photo []byte) (*models.CompletionResult, error) {
	if len(photo) == 0 {
		return nil, ErrPhotoRequired
	}

	child, err := s.children.GetChildByID(childID)
	if err != nil {
		return nil, fmt.Errorf("failed to load child: %w", err)
	}
	if child == nil {
		return nil, ErrChildNotFound
	}

	activity, err := s.activities.GetActivityByID(activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity: %w", err)
	}
	if activity == nil {
		return nil, ErrActivityNotFound
	}

	photoPath, err := s.photos.Save(photo)
	if err != nil {
		return nil, fmt.Errorf("failed to store photo: %w", err)
	}

	completion, err := s.completions.CreateCompletion(childID, activityID, photoPath, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to record submission: %w", err)
	}

	rubric := activity.Rubric
	if rubric == "" {
		rubric = judge.FallbackRubric(activity.Description)
	}

	// The judge call is detached from caller cancellation: a client that
	// disconnects mid-judgment must not strand the record in the submitted
	// state. The judge client bounds the wait with its own timeout, and no
	// database transaction is open while we wait.
	raw, err := s.judge.Assess(context.WithoutCancel(ctx), photo, activity.Description, rubric)
	if err != nil {
		if markErr := s.completions.MarkFailed(completion.ID, err.Error()); markErr != nil {
			log.Printf("Error marking completion %d failed: %v", completion.ID, markErr)
		}
		return &models.CompletionResult{
			CompletionID: completion.ID,
			State:        models.StateFailed,
		}, err
	}

	verdict, err := judge.ParseVerdict(raw)
	if err != nil {
		// Fail closed: an ambiguous verdict never awards tokens. The raw
		// response is kept on the record for investigation.
		if markErr := s.completions.MarkRejected(completion.ID, raw); markErr != nil {
			return nil, fmt.Errorf("failed to record rejection: %w", markErr)
		}
		return &models.CompletionResult{
			CompletionID: completion.ID,
			State:        models.StateRejected,
		}, nil
	}

	if !verdict.Valid {
		if markErr := s.completions.MarkRejected(completion.ID, verdict.Reasoning); markErr != nil {
			return nil, fmt.Errorf("failed to record rejection: %w", markErr)
		}
		return &models.CompletionResult{
			CompletionID: completion.ID,
			State:        models.StateRejected,
			Reasoning:    verdict.Reasoning,
		}, nil
	}

	if err := s.completions.Award(completion.ID, childID, activity.TokensReward, verdict.Reasoning); err != nil {
		return nil, fmt.Errorf("failed to award tokens: %w", err)
	}

	return &models.CompletionResult{
		CompletionID:  completion.ID,
		State:         models.StateValidated,
		Validated:     true,
		TokensAwarded: activity.TokensReward,
		Reasoning:     verdict.Reasoning,
	}, nil
}
