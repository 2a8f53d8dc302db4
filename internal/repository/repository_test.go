package repository

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"treasurehunt/internal/database"
	"treasurehunt/internal/models"
)

// openTestDB creates a fresh migrated SQLite database per test
func openTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func seedChildAndActivity(t *testing.T, db *database.DB) (*models.Child, *models.Activity) {
	t.Helper()

	child, err := NewChildRepository(db).CreateChild("Mia", time.Date(2018, 6, 15, 0, 0, 0, 0, time.UTC), "", "parent-1")
	if err != nil {
		t.Fatalf("CreateChild() error = %v", err)
	}

	activity, err := NewActivityRepository(db).CreateActivity(&models.Activity{
		Title:        "Find the fountain",
		Description:  "Find the big fountain in the town square",
		Category:     models.CategoryCity,
		AgeMin:       6,
		AgeMax:       10,
		Location:     "Town square",
		TokensReward: 3,
		Rubric:       "Must show a fountain or water feature",
	})
	if err != nil {
		t.Fatalf("CreateActivity() error = %v", err)
	}
	return child, activity
}

func TestChildRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	db := openTestDB(t)
	repo := NewChildRepository(db)

	child, err := repo.CreateChild("Mia", time.Date(2018, 6, 15, 0, 0, 0, 0, time.UTC), "hash", "parent-1")
	if err != nil {
		t.Fatalf("CreateChild() error = %v", err)
	}
	if child.ID == 0 {
		t.Fatal("CreateChild() returned zero ID")
	}
	if child.TokenBalance != 0 {
		t.Errorf("new child balance = %d, want 0", child.TokenBalance)
	}

	loaded, err := repo.GetChildByID(child.ID)
	if err != nil {
		t.Fatalf("GetChildByID() error = %v", err)
	}
	if loaded == nil {
		t.Fatal("GetChildByID() = nil for existing child")
	}
	if loaded.Name != "Mia" || loaded.ParentAccountID != "parent-1" {
		t.Errorf("loaded child = %+v", loaded)
	}
	if !loaded.DateOfBirth.Equal(time.Date(2018, 6, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("DateOfBirth = %v", loaded.DateOfBirth)
	}

	missing, err := repo.GetChildByID(9999)
	if err != nil {
		t.Fatalf("GetChildByID(missing) error = %v", err)
	}
	if missing != nil {
		t.Error("GetChildByID(missing) should return nil")
	}

	if err := repo.UpdatePasswordHash(child.ID, "newhash"); err != nil {
		t.Fatalf("UpdatePasswordHash() error = %v", err)
	}
	loaded, _ = repo.GetChildByID(child.ID)
	if loaded.PasswordHash != "newhash" {
		t.Errorf("PasswordHash = %q, want newhash", loaded.PasswordHash)
	}
}

func TestActivityRepositoryListFilters(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	db := openTestDB(t)
	repo := NewActivityRepository(db)

	seed := []models.Activity{
		{Title: "City walk", Description: "d", Category: models.CategoryCity, AgeMin: 5, AgeMax: 8, TokensReward: 1},
		{Title: "Beach shells", Description: "d", Category: models.CategoryBeach, AgeMin: 6, AgeMax: 12, TokensReward: 2},
		{Title: "Bush tracks", Description: "d", Category: models.CategoryBush, AgeMin: 9, AgeMax: 12, TokensReward: 2},
	}
	for i := range seed {
		if _, err := repo.CreateActivity(&seed[i]); err != nil {
			t.Fatalf("CreateActivity() error = %v", err)
		}
	}

	tests := []struct {
		name     string
		category models.Category
		age      int
		want     int
	}{
		{"no filters", "", 0, 3},
		{"by category", models.CategoryBeach, 0, 1},
		{"by age", "", 7, 2},
		{"category and age", models.CategoryCity, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			activities, err := repo.ListActivities(tt.category, tt.age)
			if err != nil {
				t.Fatalf("ListActivities() error = %v", err)
			}
			if len(activities) != tt.want {
				t.Errorf("got %d activities, want %d", len(activities), tt.want)
			}
		})
	}
}

func TestCompletionLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	db := openTestDB(t)
	child, activity := seedChildAndActivity(t, db)
	repo := NewCompletionRepository(db)

	completion, err := repo.CreateCompletion(child.ID, activity.ID, "photos/a.jpg", time.Now())
	if err != nil {
		t.Fatalf("CreateCompletion() error = %v", err)
	}
	if completion.State != models.StateSubmitted {
		t.Errorf("new completion state = %v, want submitted", completion.State)
	}

	if err := repo.Award(completion.ID, child.ID, activity.TokensReward, "fountain visible"); err != nil {
		t.Fatalf("Award() error = %v", err)
	}

	stored, err := repo.GetCompletionByID(completion.ID)
	if err != nil {
		t.Fatalf("GetCompletionByID() error = %v", err)
	}
	if stored.State != models.StateValidated || !stored.Validated {
		t.Errorf("stored = %+v, want validated", stored)
	}
	if stored.TokensAwarded != 3 || stored.Reasoning != "fountain visible" {
		t.Errorf("stored = %+v", stored)
	}

	balance := childBalance(t, db, child.ID)
	if balance != 3 {
		t.Errorf("balance = %d, want 3", balance)
	}
}

func TestAwardAtMostOnce(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	db := openTestDB(t)
	child, activity := seedChildAndActivity(t, db)
	repo := NewCompletionRepository(db)

	completion, err := repo.CreateCompletion(child.ID, activity.ID, "", time.Now())
	if err != nil {
		t.Fatalf("CreateCompletion() error = %v", err)
	}

	if err := repo.Award(completion.ID, child.ID, 3, "ok"); err != nil {
		t.Fatalf("first Award() error = %v", err)
	}
	if err := repo.Award(completion.ID, child.ID, 3, "ok"); !errors.Is(err, ErrAlreadyAwarded) {
		t.Fatalf("second Award() error = %v, want ErrAlreadyAwarded", err)
	}

	if balance := childBalance(t, db, child.ID); balance != 3 {
		t.Errorf("balance = %d, want 3 after double-award attempt", balance)
	}
}

func TestAwardConcurrent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	db := openTestDB(t)
	child, activity := seedChildAndActivity(t, db)
	repo := NewCompletionRepository(db)

	// Separate submissions award independently; each credits exactly once
	const submissions = 4
	ids := make([]int64, submissions)
	for i := range ids {
		completion, err := repo.CreateCompletion(child.ID, activity.ID, "", time.Now())
		if err != nil {
			t.Fatalf("CreateCompletion() error = %v", err)
		}
		ids[i] = completion.ID
	}

	var wg sync.WaitGroup
	errs := make(chan error, submissions)
	for _, id := range ids {
		wg.Add(1)
		go func(completionID int64) {
			defer wg.Done()
			errs <- repo.Award(completionID, child.ID, 2, "ok")
		}(id)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("Award() error = %v", err)
		}
	}

	if balance := childBalance(t, db, child.ID); balance != submissions*2 {
		t.Errorf("balance = %d, want %d", balance, submissions*2)
	}
}

func TestMarkRejectedAndFailed(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	db := openTestDB(t)
	child, activity := seedChildAndActivity(t, db)
	repo := NewCompletionRepository(db)

	rejected, _ := repo.CreateCompletion(child.ID, activity.ID, "", time.Now())
	if err := repo.MarkRejected(rejected.ID, "no fountain visible"); err != nil {
		t.Fatalf("MarkRejected() error = %v", err)
	}
	stored, _ := repo.GetCompletionByID(rejected.ID)
	if stored.State != models.StateRejected || stored.Validated || stored.TokensAwarded != 0 {
		t.Errorf("rejected completion = %+v", stored)
	}
	if stored.Reasoning != "no fountain visible" {
		t.Errorf("Reasoning = %q", stored.Reasoning)
	}

	failed, _ := repo.CreateCompletion(child.ID, activity.ID, "", time.Now())
	if err := repo.MarkFailed(failed.ID, "judge unavailable"); err != nil {
		t.Fatalf("MarkFailed() error = %v", err)
	}
	stored, _ = repo.GetCompletionByID(failed.ID)
	if stored.State != models.StateFailed || stored.TokensAwarded != 0 {
		t.Errorf("failed completion = %+v", stored)
	}

	if balance := childBalance(t, db, child.ID); balance != 0 {
		t.Errorf("balance = %d, want 0", balance)
	}
}

func TestListCompletionsByChild(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	db := openTestDB(t)
	child, activity := seedChildAndActivity(t, db)
	repo := NewCompletionRepository(db)

	first, _ := repo.CreateCompletion(child.ID, activity.ID, "", time.Now())
	repo.Award(first.ID, child.ID, 3, "ok")
	second, _ := repo.CreateCompletion(child.ID, activity.ID, "", time.Now())
	repo.MarkRejected(second.ID, "blurry")

	completions, err := repo.ListCompletionsByChild(child.ID)
	if err != nil {
		t.Fatalf("ListCompletionsByChild() error = %v", err)
	}
	if len(completions) != 2 {
		t.Fatalf("got %d completions, want 2", len(completions))
	}
	for _, c := range completions {
		if c.ActivityTitle != activity.Title {
			t.Errorf("ActivityTitle = %q, want %q", c.ActivityTitle, activity.Title)
		}
		// The invariant: tokens only ever accompany a validated completion
		if c.TokensAwarded > 0 && !c.Validated {
			t.Errorf("completion %d has tokens without validation", c.ID)
		}
	}
}

func childBalance(t *testing.T, db *database.DB, childID int64) int {
	t.Helper()
	child, err := NewChildRepository(db).GetChildByID(childID)
	if err != nil {
		t.Fatalf("GetChildByID() error = %v", err)
	}
	return child.TokenBalance
}
