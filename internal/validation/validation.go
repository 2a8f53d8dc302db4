package validation

import (
	"fmt"
	"strings"
	"time"

	"treasurehunt/internal/models"
)

const (
	// MinAge and MaxAge bound the ages the app serves
	MinAge = 5
	MaxAge = 12

	maxNameLength     = 100
	minPasswordLength = 6
)

// Error is a user-facing input validation failure. Handlers map it to a 400
// response, distinguishing it from internal failures.
type Error struct {
	msg string
}

func (e *Error) Error() string {
	return e.msg
}

func newError(format string, args ...interface{}) *Error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}

// ValidateChildName checks a child's display name
func ValidateChildName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return newError("name is required")
	}
	if len(name) > maxNameLength {
		return newError("name must be at most %d characters", maxNameLength)
	}
	return nil
}

// ValidateDateOfBirth checks that the date of birth yields an age within [MinAge, MaxAge]
func ValidateDateOfBirth(dateOfBirth time.Time) error {
	if dateOfBirth.IsZero() {
		return newError("date of birth is required")
	}
	age := models.AgeAt(dateOfBirth, time.Now())
	if age < MinAge || age > MaxAge {
		return newError("child must be between %d and %d years old", MinAge, MaxAge)
	}
	return nil
}

// ValidatePassword checks an optional child password; empty is allowed
func ValidatePassword(password string) error {
	if password == "" {
		return nil
	}
	if len(password) < minPasswordLength {
		return newError("password must be at least %d characters", minPasswordLength)
	}
	return nil
}

// ValidateRequired checks that a free-text field is non-blank
func ValidateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return newError("%s is required", field)
	}
	return nil
}

// ValidateCategory checks an activity category value
func ValidateCategory(category models.Category) error {
	if !category.IsValid() {
		return newError("invalid category: %q", string(category))
	}
	return nil
}

// ValidateAgeRange checks an activity's age range
func ValidateAgeRange(ageMin, ageMax int) error {
	if ageMin < MinAge || ageMin > MaxAge {
		return newError("age_min must be between %d and %d", MinAge, MaxAge)
	}
	if ageMax < MinAge || ageMax > MaxAge {
		return newError("age_max must be between %d and %d", MinAge, MaxAge)
	}
	if ageMin > ageMax {
		return newError("age_min must not exceed age_max")
	}
	return nil
}

// ValidateTokensReward checks an activity's token reward
func ValidateTokensReward(tokens int) error {
	if tokens < 1 {
		return newError("tokens_reward must be at least 1")
	}
	return nil
}
