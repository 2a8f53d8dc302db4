package validation

import (
	"errors"
	"testing"
	"time"

	"treasurehunt/internal/models"
)

func TestValidateChildName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid name", "Mia", false},
		{"name with spaces", "Mia Rose", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"too long", string(make([]byte, 101)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChildName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateChildName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDateOfBirth(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name    string
		dob     time.Time
		wantErr bool
	}{
		{"mid-range age", now.AddDate(-8, 0, 0), false},
		{"youngest allowed", now.AddDate(-MinAge, 0, -1), false},
		{"oldest allowed", now.AddDate(-MaxAge, 0, -1), false},
		{"too young", now.AddDate(-3, 0, 0), true},
		{"too old", now.AddDate(-15, 0, 0), true},
		{"zero value", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDateOfBirth(tt.dob)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDateOfBirth(%v) error = %v, wantErr %v", tt.dob, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"empty is allowed", "", false},
		{"long enough", "sunny-dragon-42", false},
		{"exactly minimum", "abcdef", false},
		{"too short", "abc", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCategory(t *testing.T) {
	for _, category := range models.Categories {
		if err := ValidateCategory(category); err != nil {
			t.Errorf("ValidateCategory(%q) error = %v", category, err)
		}
	}
	for _, bad := range []models.Category{"", "mountain", "CITY"} {
		if err := ValidateCategory(bad); err == nil {
			t.Errorf("ValidateCategory(%q) should fail", bad)
		}
	}
}

func TestValidateAgeRange(t *testing.T) {
	tests := []struct {
		name    string
		min     int
		max     int
		wantErr bool
	}{
		{"full range", MinAge, MaxAge, false},
		{"single age", 7, 7, false},
		{"min below floor", 3, 8, true},
		{"max above ceiling", 6, 14, true},
		{"inverted range", 10, 6, true},
		{"zeroes", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAgeRange(tt.min, tt.max)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAgeRange(%d, %d) error = %v, wantErr %v", tt.min, tt.max, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTokensReward(t *testing.T) {
	if err := ValidateTokensReward(1); err != nil {
		t.Errorf("ValidateTokensReward(1) error = %v", err)
	}
	if err := ValidateTokensReward(0); err == nil {
		t.Error("ValidateTokensReward(0) should fail")
	}
	if err := ValidateTokensReward(-2); err == nil {
		t.Error("ValidateTokensReward(-2) should fail")
	}
}

// Validation failures must be the typed error handlers map to 400
func TestErrorsAreTyped(t *testing.T) {
	var target *Error
	if err := ValidateChildName(""); !errors.As(err, &target) {
		t.Errorf("ValidateChildName error type = %T, want *validation.Error", err)
	}
	if err := ValidateCategory("nope"); !errors.As(err, &target) {
		t.Errorf("ValidateCategory error type = %T, want *validation.Error", err)
	}
}
