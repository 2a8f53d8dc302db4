package repository

import (
	"database/sql"
	"fmt"
	"time"

	"treasurehunt/internal/database"
	"treasurehunt/internal/models"
)

// ChildRepository handles database operations for children
type ChildRepository struct {
	db database.DBTX
}

// NewChildRepository creates a new child repository
func NewChildRepository(db database.DBTX) *ChildRepository {
	return &ChildRepository{db: db}
}

// CreateChild creates a new child profile with a zero token balance
func (r *ChildRepository) CreateChild(name string, dateOfBirth time.Time, passwordHash, parentAccountID string) (*models.Child, error) {
	query := `
		INSERT INTO children (name, date_of_birth, password_hash, token_balance, parent_account_id)
		VALUES (?, ?, ?, 0, ?)
	`
	id, err := r.db.ExecReturningID(query,
		name,
		dateOfBirth.Format("2006-01-02"),
		nullableString(passwordHash),
		nullableString(parentAccountID),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create child: %w", err)
	}

	return &models.Child{
		ID:              id,
		Name:            name,
		DateOfBirth:     dateOfBirth,
		PasswordHash:    passwordHash,
		TokenBalance:    0,
		ParentAccountID: parentAccountID,
		CreatedAt:       time.Now(),
	}, nil
}

// GetChildByID retrieves a child by ID; returns nil when not found
func (r *ChildRepository) GetChildByID(childID int64) (*models.Child, error) {
	query := `
		SELECT id, name, date_of_birth, password_hash, token_balance, parent_account_id, created_at
		FROM children
		WHERE id = ?
	`
	child := &models.Child{}
	var passwordHash, parentAccountID sql.NullString
	err := r.db.QueryRow(query, childID).Scan(
		&child.ID,
		&child.Name,
		&child.DateOfBirth,
		&passwordHash,
		&child.TokenBalance,
		&parentAccountID,
		&child.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}

	child.PasswordHash = passwordHash.String
	child.ParentAccountID = parentAccountID.String
	return child, nil
}

// UpdatePasswordHash replaces a child's password hash
func (r *ChildRepository) UpdatePasswordHash(childID int64, passwordHash string) error {
	_, err := r.db.Exec("UPDATE children SET password_hash = ? WHERE id = ?", passwordHash, childID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// DeleteChild removes a child profile; completions cascade at the schema level
func (r *ChildRepository) DeleteChild(childID int64) error {
	_, err := r.db.Exec("DELETE FROM children WHERE id = ?", childID)
	if err != nil {
		return fmt.Errorf("failed to delete child: %w", err)
	}
	return nil
}

// nullableString converts an empty string to a NULL database value
func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
