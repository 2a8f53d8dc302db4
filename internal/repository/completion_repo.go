package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"treasurehunt/internal/database"
	"treasurehunt/internal/models"
)

// ErrAlreadyAwarded means the completion's token award was already set; a
// completion record is credited at most once.
var ErrAlreadyAwarded = errors.New("completion already awarded")

// CompletionRepository handles database operations for activity completions,
// including the atomic token award.
type CompletionRepository struct {
	db database.DBTX
}

// NewCompletionRepository creates a new completion repository
func NewCompletionRepository(db database.DBTX) *CompletionRepository {
	return &CompletionRepository{db: db}
}

// CreateCompletion records a new photo submission in the submitted state
func (r *CompletionRepository) CreateCompletion(childID, activityID int64, photoPath string, photoTimestamp time.Time) (*models.ActivityCompletion, error) {
	query := `
		INSERT INTO activity_completions (child_id, activity_id, photo_path, photo_timestamp, state, validated, tokens_awarded)
		VALUES (?, ?, ?, ?, ?, ?, 0)
	`
	id, err := r.db.ExecReturningID(query,
		childID,
		activityID,
		nullableString(photoPath),
		photoTimestamp,
		string(models.StateSubmitted),
		false,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create completion: %w", err)
	}

	ts := photoTimestamp
	return &models.ActivityCompletion{
		ID:             id,
		ChildID:        childID,
		ActivityID:     activityID,
		PhotoPath:      photoPath,
		PhotoTimestamp: &ts,
		State:          models.StateSubmitted,
		Validated:      false,
		TokensAwarded:  0,
		CreatedAt:      time.Now(),
	}, nil
}

// GetCompletionByID retrieves a completion by ID; returns nil when not found
func (r *CompletionRepository) GetCompletionByID(completionID int64) (*models.ActivityCompletion, error) {
	query := `
		SELECT id, child_id, activity_id, photo_path, photo_timestamp, state, validated, reasoning, tokens_awarded, created_at
		FROM activity_completions
		WHERE id = ?
	`
	c := &models.ActivityCompletion{}
	var photoPath, reasoning sql.NullString
	var photoTimestamp sql.NullTime
	var state string
	err := r.db.QueryRow(query, completionID).Scan(
		&c.ID,
		&c.ChildID,
		&c.ActivityID,
		&photoPath,
		&photoTimestamp,
		&state,
		&c.Validated,
		&reasoning,
		&c.TokensAwarded,
		&c.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get completion: %w", err)
	}

	c.PhotoPath = photoPath.String
	c.Reasoning = reasoning.String
	c.State = models.CompletionState(state)
	if photoTimestamp.Valid {
		ts := photoTimestamp.Time
		c.PhotoTimestamp = &ts
	}
	return c, nil
}

// ListCompletionsByChild lists a child's completions joined with activity titles
func (r *CompletionRepository) ListCompletionsByChild(childID int64) ([]models.CompletionSummary, error) {
	query := `
		SELECT c.id, c.activity_id, a.title, c.validated, c.tokens_awarded, c.created_at
		FROM activity_completions c
		JOIN activities a ON a.id = c.activity_id
		WHERE c.child_id = ?
		ORDER BY c.created_at DESC
	`
	rows, err := r.db.Query(query, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to query completions: %w", err)
	}
	defer rows.Close()

	var completions []models.CompletionSummary
	for rows.Next() {
		var s models.CompletionSummary
		if err := rows.Scan(
			&s.ID,
			&s.ActivityID,
			&s.ActivityTitle,
			&s.Validated,
			&s.TokensAwarded,
			&s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan completion: %w", err)
		}
		completions = append(completions, s)
	}
	return completions, rows.Err()
}

// MarkRejected records a negative (or unusable) verdict. The completion stays
// unvalidated with zero tokens; the reasoning is kept for the child's feedback.
func (r *CompletionRepository) MarkRejected(completionID int64, reasoning string) error {
	query := "UPDATE activity_completions SET state = ?, reasoning = ? WHERE id = ?"
	_, err := r.db.Exec(query, string(models.StateRejected), reasoning, completionID)
	if err != nil {
		return fmt.Errorf("failed to mark completion rejected: %w", err)
	}
	return nil
}

// MarkFailed records that the judge could not be reached. The record is kept
// as evidence so the submission can be investigated or resubmitted.
func (r *CompletionRepository) MarkFailed(completionID int64, note string) error {
	query := "UPDATE activity_completions SET state = ?, reasoning = ? WHERE id = ?"
	_, err := r.db.Exec(query, string(models.StateFailed), note, completionID)
	if err != nil {
		return fmt.Errorf("failed to mark completion failed: %w", err)
	}
	return nil
}

// Award marks the completion validated and credits the child's balance in one
// transaction. The guarded UPDATE only fires while tokens_awarded is still
// zero, so a record can never be credited twice, and the balance increment
// serializes on the child row under concurrent submissions.
func (r *CompletionRepository) Award(completionID, childID int64, tokens int, reasoning string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin award transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		UPDATE activity_completions
		SET state = ?, validated = ?, reasoning = ?, tokens_awarded = ?
		WHERE id = ? AND tokens_awarded = 0
	`, string(models.StateValidated), true, reasoning, tokens, completionID)
	if err != nil {
		return fmt.Errorf("failed to mark completion validated: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check award update: %w", err)
	}
	if affected == 0 {
		return ErrAlreadyAwarded
	}

	if _, err := tx.Exec(
		"UPDATE children SET token_balance = token_balance + ? WHERE id = ?",
		tokens, childID,
	); err != nil {
		return fmt.Errorf("failed to credit token balance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit award: %w", err)
	}
	return nil
}
