package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"treasurehunt/internal/database"
)

// BackupData represents the complete database backup structure
type BackupData struct {
	Version     string             `json:"version"`
	ExportedAt  time.Time          `json:"exported_at"`
	Children    []ChildBackup      `json:"children"`
	Activities  []ActivityBackup   `json:"activities"`
	Completions []CompletionBackup `json:"completions"`
}

// ChildBackup represents a child record for backup
type ChildBackup struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	DateOfBirth     string    `json:"date_of_birth"`
	PasswordHash    string    `json:"password_hash,omitempty"`
	TokenBalance    int       `json:"token_balance"`
	ParentAccountID string    `json:"parent_account_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// ActivityBackup represents an activity record for backup
type ActivityBackup struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	AgeMin       int       `json:"age_min"`
	AgeMax       int       `json:"age_max"`
	Location     string    `json:"location"`
	TokensReward int       `json:"tokens_reward"`
	Rubric       string    `json:"rubric,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// CompletionBackup represents a completion record for backup
type CompletionBackup struct {
	ID             int64      `json:"id"`
	ChildID        int64      `json:"child_id"`
	ActivityID     int64      `json:"activity_id"`
	PhotoPath      string     `json:"photo_path,omitempty"`
	PhotoTimestamp *time.Time `json:"photo_timestamp,omitempty"`
	State          string     `json:"state"`
	Validated      bool       `json:"validated"`
	Reasoning      string     `json:"reasoning,omitempty"`
	TokensAwarded  int        `json:"tokens_awarded"`
	CreatedAt      time.Time  `json:"created_at"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export creates a complete backup of the database to a file
func (s *BackupService) Export(outputPath string) error {
	log.Println("Starting database export...")

	backup := &BackupData{
		Version:    "1.0",
		ExportedAt: time.Now(),
	}

	if err := s.exportChildren(backup); err != nil {
		return fmt.Errorf("failed to export children: %w", err)
	}
	if err := s.exportActivities(backup); err != nil {
		return fmt.Errorf("failed to export activities: %w", err)
	}
	if err := s.exportCompletions(backup); err != nil {
		return fmt.Errorf("failed to export completions: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Database exported successfully to %s", outputPath)
	log.Printf("Exported: %d children, %d activities, %d completions",
		len(backup.Children), len(backup.Activities), len(backup.Completions))

	return nil
}

// Import restores a database from a backup file. Records are inserted with
// their original IDs so the child/activity references stay intact.
func (s *BackupService) Import(inputPath string) error {
	log.Printf("Starting database import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	var backup BackupData
	if err := json.NewDecoder(file).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	// Import in dependency order: completions reference both parents
	if err := s.importChildren(backup.Children); err != nil {
		return fmt.Errorf("failed to import children: %w", err)
	}
	if err := s.importActivities(backup.Activities); err != nil {
		return fmt.Errorf("failed to import activities: %w", err)
	}
	if err := s.importCompletions(backup.Completions); err != nil {
		return fmt.Errorf("failed to import completions: %w", err)
	}

	log.Println("Database import completed successfully")
	return nil
}

// Clear removes all data, in dependency order
func (s *BackupService) Clear() error {
	for _, table := range []string{"activity_completions", "activities", "children"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

func (s *BackupService) exportChildren(backup *BackupData) error {
	rows, err := s.db.Query(`
		SELECT id, name, date_of_birth, password_hash, token_balance, parent_account_id, created_at
		FROM children ORDER BY id
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var c ChildBackup
		var dob time.Time
		var passwordHash, parentAccountID sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &dob, &passwordHash, &c.TokenBalance, &parentAccountID, &c.CreatedAt); err != nil {
			return err
		}
		c.DateOfBirth = dob.Format("2006-01-02")
		c.PasswordHash = passwordHash.String
		c.ParentAccountID = parentAccountID.String
		backup.Children = append(backup.Children, c)
	}
	return rows.Err()
}

func (s *BackupService) exportActivities(backup *BackupData) error {
	rows, err := s.db.Query(`
		SELECT id, title, description, category, age_min, age_max, location, tokens_reward, rubric, created_at
		FROM activities ORDER BY id
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var a ActivityBackup
		var rubric sql.NullString
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.Category, &a.AgeMin, &a.AgeMax, &a.Location, &a.TokensReward, &rubric, &a.CreatedAt); err != nil {
			return err
		}
		a.Rubric = rubric.String
		backup.Activities = append(backup.Activities, a)
	}
	return rows.Err()
}

func (s *BackupService) exportCompletions(backup *BackupData) error {
	rows, err := s.db.Query(`
		SELECT id, child_id, activity_id, photo_path, photo_timestamp, state, validated, reasoning, tokens_awarded, created_at
		FROM activity_completions ORDER BY id
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var c CompletionBackup
		var photoPath, reasoning sql.NullString
		var photoTimestamp sql.NullTime
		if err := rows.Scan(&c.ID, &c.ChildID, &c.ActivityID, &photoPath, &photoTimestamp, &c.State, &c.Validated, &reasoning, &c.TokensAwarded, &c.CreatedAt); err != nil {
			return err
		}
		c.PhotoPath = photoPath.String
		c.Reasoning = reasoning.String
		if photoTimestamp.Valid {
			ts := photoTimestamp.Time
			c.PhotoTimestamp = &ts
		}
		backup.Completions = append(backup.Completions, c)
	}
	return rows.Err()
}

func (s *BackupService) importChildren(children []ChildBackup) error {
	for _, c := range children {
		_, err := s.db.Exec(`
			INSERT INTO children (id, name, date_of_birth, password_hash, token_balance, parent_account_id, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, c.ID, c.Name, c.DateOfBirth, nullable(c.PasswordHash), c.TokenBalance, nullable(c.ParentAccountID), c.CreatedAt)
		if err != nil {
			return fmt.Errorf("child %d: %w", c.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importActivities(activities []ActivityBackup) error {
	for _, a := range activities {
		_, err := s.db.Exec(`
			INSERT INTO activities (id, title, description, category, age_min, age_max, location, tokens_reward, rubric, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, a.ID, a.Title, a.Description, a.Category, a.AgeMin, a.AgeMax, a.Location, a.TokensReward, nullable(a.Rubric), a.CreatedAt)
		if err != nil {
			return fmt.Errorf("activity %d: %w", a.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importCompletions(completions []CompletionBackup) error {
	for _, c := range completions {
		_, err := s.db.Exec(`
			INSERT INTO activity_completions (id, child_id, activity_id, photo_path, photo_timestamp, state, validated, reasoning, tokens_awarded, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, c.ID, c.ChildID, c.ActivityID, nullable(c.PhotoPath), c.PhotoTimestamp, c.State, c.Validated, nullable(c.Reasoning), c.TokensAwarded, c.CreatedAt)
		if err != nil {
			return fmt.Errorf("completion %d: %w", c.ID, err)
		}
	}
	return nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
