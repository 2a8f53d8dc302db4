package models

import "time"

// Child represents a registered child profile with a token balance
type Child struct {
	ID              int64
	Name            string
	DateOfBirth     time.Time
	PasswordHash    string // empty when no password is set
	TokenBalance    int
	ParentAccountID string
	CreatedAt       time.Time
}

// Age computes the child's age in whole years as of now
func (c *Child) Age() int {
	return AgeAt(c.DateOfBirth, time.Now())
}

// AgeAt computes age in whole years at the given reference date
func AgeAt(dateOfBirth, at time.Time) int {
	age := at.Year() - dateOfBirth.Year()
	// Subtract a year if the birthday hasn't happened yet this year
	if at.Month() < dateOfBirth.Month() ||
		(at.Month() == dateOfBirth.Month() && at.Day() < dateOfBirth.Day()) {
		age--
	}
	return age
}
