package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"treasurehunt/internal/judge"
	"treasurehunt/internal/models"
	"treasurehunt/internal/repository"
	"treasurehunt/internal/validation"
)

var ErrNoActivitiesGenerated = errors.New("no usable activities were generated")

// ActivityService handles activity catalog operations, including LLM-backed
// activity generation
type ActivityService struct {
	activityRepo *repository.ActivityRepository
	judge        judge.Client
}

// NewActivityService creates a new activity service
func NewActivityService(activityRepo *repository.ActivityRepository, judgeClient judge.Client) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		judge:        judgeClient,
	}
}

// CreateActivity validates and persists a new activity
func (s *ActivityService) CreateActivity(a *models.Activity) (*models.Activity, error) {
	if err := validation.ValidateRequired("title", a.Title); err != nil {
		return nil, err
	}
	if err := validation.ValidateRequired("description", a.Description); err != nil {
		return nil, err
	}
	if err := validation.ValidateCategory(a.Category); err != nil {
		return nil, err
	}
	if err := validation.ValidateAgeRange(a.AgeMin, a.AgeMax); err != nil {
		return nil, err
	}
	if err := validation.ValidateTokensReward(a.TokensReward); err != nil {
		return nil, err
	}
	return s.activityRepo.CreateActivity(a)
}

// GetActivity retrieves an activity by ID
func (s *ActivityService) GetActivity(activityID int64) (*models.Activity, error) {
	activity, err := s.activityRepo.GetActivityByID(activityID)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, ErrActivityNotFound
	}
	return activity, nil
}

// ListActivities lists activities filtered by optional category and age
func (s *ActivityService) ListActivities(category models.Category, age int) ([]models.Activity, error) {
	if category != "" {
		if err := validation.ValidateCategory(category); err != nil {
			return nil, err
		}
	}
	return s.activityRepo.ListActivities(category, age)
}

// GenerateRequest describes an activity-generation call
type GenerateRequest struct {
	Category models.Category
	AgeMin   int
	AgeMax   int
	Location string
	Count    int
}

// GenerateActivities asks the text model for activity drafts and persists the
// usable ones. Drafts missing a title or description are dropped rather than
// stored half-formed.
func (s *ActivityService) GenerateActivities(ctx context.Context, req GenerateRequest) ([]models.Activity, error) {
	if err := validation.ValidateCategory(req.Category); err != nil {
		return nil, err
	}
	if err := validation.ValidateAgeRange(req.AgeMin, req.AgeMax); err != nil {
		return nil, err
	}
	if req.Count < 1 || req.Count > 20 {
		req.Count = 5
	}
	if err := validation.ValidateRequired("location", req.Location); err != nil {
		return nil, err
	}

	drafts, err := s.judge.GenerateActivities(ctx, judge.GenerateRequest{
		Category: string(req.Category),
		AgeMin:   req.AgeMin,
		AgeMax:   req.AgeMax,
		Location: req.Location,
		Count:    req.Count,
	})
	if err != nil {
		return nil, err
	}

	var created []models.Activity
	for _, draft := range drafts {
		if strings.TrimSpace(draft.Title) == "" || strings.TrimSpace(draft.Description) == "" {
			continue
		}

		location := strings.TrimSpace(draft.Location)
		if location == "" {
			location = req.Location
		}

		activity, err := s.activityRepo.CreateActivity(&models.Activity{
			Title:        draft.Title,
			Description:  draft.Description,
			Category:     req.Category,
			AgeMin:       req.AgeMin,
			AgeMax:       req.AgeMax,
			Location:     location,
			TokensReward: 1,
			Rubric:       draft.Rubric,
		})
		if err != nil {
			log.Printf("Error persisting generated activity %q: %v", draft.Title, err)
			continue
		}
		created = append(created, *activity)
	}

	if len(created) == 0 {
		return nil, fmt.Errorf("%w: %d drafts received", ErrNoActivitiesGenerated, len(drafts))
	}
	return created, nil
}
