package models

import "time"

// Category is the location type of a treasure hunt activity
type Category string

const (
	CategoryCity   Category = "city"
	CategoryBeach  Category = "beach"
	CategoryBush   Category = "bush"
	CategoryGarden Category = "garden"
)

// Categories lists all valid activity categories
var Categories = []Category{CategoryCity, CategoryBeach, CategoryBush, CategoryGarden}

// IsValid reports whether the category is one of the known values
func (c Category) IsValid() bool {
	switch c {
	case CategoryCity, CategoryBeach, CategoryBush, CategoryGarden:
		return true
	}
	return false
}

// Activity represents a treasure hunt activity a child can complete
type Activity struct {
	ID           int64
	Title        string
	Description  string
	Category     Category
	AgeMin       int
	AgeMax       int
	Location     string
	TokensReward int
	Rubric       string // what the judge should look for in the photo; empty = generic fallback
	CreatedAt    time.Time
}
