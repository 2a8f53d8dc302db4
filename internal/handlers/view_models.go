package handlers

import (
	"time"

	"treasurehunt/internal/models"
)

type registerChildRequest struct {
	Name             string `json:"name"`
	DateOfBirth      string `json:"date_of_birth"` // YYYY-MM-DD
	Password         string `json:"password,omitempty"`
	ParentAccountID  string `json:"parent_account_id,omitempty"`
	GeneratePassword bool   `json:"generate_password,omitempty"`
}

type childResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Age          int    `json:"age"`
	TokenBalance int    `json:"token_balance"`
}

type registerChildResponse struct {
	childResponse
	GeneratedPassword string `json:"generated_password,omitempty"`
}

func toChildResponse(c *models.Child) childResponse {
	return childResponse{
		ID:           c.ID,
		Name:         c.Name,
		Age:          c.Age(),
		TokenBalance: c.TokenBalance,
	}
}

type tokensResponse struct {
	ChildID int64 `json:"child_id"`
	Tokens  int   `json:"tokens"`
}

type completionItem struct {
	ID            int64     `json:"id"`
	ActivityID    int64     `json:"activity_id"`
	ActivityTitle string    `json:"activity_title"`
	Validated     bool      `json:"validated"`
	TokensAwarded int       `json:"tokens_awarded"`
	CompletedAt   time.Time `json:"completed_at"`
}

type completionListResponse struct {
	ChildID     int64            `json:"child_id"`
	Completions []completionItem `json:"completions"`
}

type activityResponse struct {
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

func toActivityResponse(a *models.Activity) activityResponse {
	return activityResponse{
		ID:           a.ID,
		Title:        a.Title,
		Description:  a.Description,
		Category:     string(a.Category),
		AgeMin:       a.AgeMin,
		AgeMax:       a.AgeMax,
		Location:     a.Location,
		TokensReward: a.TokensReward,
		Rubric:       a.Rubric,
		CreatedAt:    a.CreatedAt,
	}
}

type createActivityRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	AgeMin       int    `json:"age_min"`
	AgeMax       int    `json:"age_max"`
	Location     string `json:"location"`
	TokensReward int    `json:"tokens_reward"`
	Rubric       string `json:"rubric,omitempty"`
}

type generateActivitiesRequest struct {
	Category string `json:"category"`
	AgeMin   int    `json:"age_min"`
	AgeMax   int    `json:"age_max"`
	Location string `json:"location"`
	Count    int    `json:"count"`
}

type completionOutcomeResponse struct {
	CompletionID  int64  `json:"completion_id"`
	State         string `json:"state"`
	Validated     bool   `json:"validated"`
	Reasoning     string `json:"reasoning"`
	TokensAwarded int    `json:"tokens_awarded"`
}

type regeneratePasswordResponse struct {
	ChildID  int64  `json:"child_id"`
	Password string `json:"password"`
}
