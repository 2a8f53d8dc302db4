package repository

import (
	"database/sql"
	"fmt"
	"time"

	"treasurehunt/internal/database"
	"treasurehunt/internal/models"
)

// ActivityRepository handles database operations for activities
type ActivityRepository struct {
	db database.DBTX
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db database.DBTX) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// CreateActivity creates a new activity
func (r *ActivityRepository) CreateActivity(a *models.Activity) (*models.Activity, error) {
	query := `
		INSERT INTO activities (title, description, category, age_min, age_max, location, tokens_reward, rubric)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		a.Title,
		a.Description,
		string(a.Category),
		a.AgeMin,
		a.AgeMax,
		a.Location,
		a.TokensReward,
		nullableString(a.Rubric),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	created := *a
	created.ID = id
	created.CreatedAt = time.Now()
	return &created, nil
}

// GetActivityByID retrieves an activity by ID; returns nil when not found
func (r *ActivityRepository) GetActivityByID(activityID int64) (*models.Activity, error) {
	query := `
		SELECT id, title, description, category, age_min, age_max, location, tokens_reward, rubric, created_at
		FROM activities
		WHERE id = ?
	`
	row := r.db.QueryRow(query, activityID)
	activity, err := scanActivity(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return activity, nil
}

// ListActivities retrieves activities, optionally filtered by category and/or
// an age that must fall within the activity's range
func (r *ActivityRepository) ListActivities(category models.Category, age int) ([]models.Activity, error) {
	query := `
		SELECT id, title, description, category, age_min, age_max, location, tokens_reward, rubric, created_at
		FROM activities
		WHERE 1 = 1
	`
	var args []interface{}

	if category != "" {
		query += " AND category = ?"
		args = append(args, string(category))
	}
	if age > 0 {
		query += " AND age_min <= ? AND age_max >= ?"
		args = append(args, age, age)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, *activity)
	}
	return activities, rows.Err()
}

// DeleteActivity removes an activity; completions cascade at the schema level
func (r *ActivityRepository) DeleteActivity(activityID int64) error {
	_, err := r.db.Exec("DELETE FROM activities WHERE id = ?", activityID)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanActivity(s scanner) (*models.Activity, error) {
	activity := &models.Activity{}
	var category string
	var rubric sql.NullString
	err := s.Scan(
		&activity.ID,
		&activity.Title,
		&activity.Description,
		&category,
		&activity.AgeMin,
		&activity.AgeMax,
		&activity.Location,
		&activity.TokensReward,
		&rubric,
		&activity.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	activity.Category = models.Category(category)
	activity.Rubric = rubric.String
	return activity, nil
}
