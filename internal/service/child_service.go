package service

import (
	"errors"
	"fmt"
	"time"

	"treasurehunt/internal/credentials"
	"treasurehunt/internal/models"
	"treasurehunt/internal/repository"
	"treasurehunt/internal/security"
	"treasurehunt/internal/validation"
)

// ChildService handles child registration and profile lookups
type ChildService struct {
	childRepo      *repository.ChildRepository
	completionRepo *repository.CompletionRepository
}

// NewChildService creates a new child service
func NewChildService(childRepo *repository.ChildRepository, completionRepo *repository.CompletionRepository) *ChildService {
	return &ChildService{
		childRepo:      childRepo,
		completionRepo: completionRepo,
	}
}

// Register creates a new child profile. The password is optional; when
// generatePassword is set and no password is supplied, a kid-friendly one is
// generated and returned in plain text exactly once.
func (s *ChildService) Register(name string, dateOfBirth time.Time, password, parentAccountID string, generatePassword bool) (*models.Child, string, error) {
	if err := validation.ValidateChildName(name); err != nil {
		return nil, "", err
	}
	if err := validation.ValidateDateOfBirth(dateOfBirth); err != nil {
		return nil, "", err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, "", err
	}

	generated := ""
	if password == "" && generatePassword {
		var err error
		generated, err = credentials.GenerateChildPassword()
		if err != nil {
			return nil, "", fmt.Errorf("failed to generate password: %w", err)
		}
		password = generated
	}

	passwordHash := ""
	if password != "" {
		var err error
		passwordHash, err = security.HashPassword(password)
		if err != nil {
			return nil, "", fmt.Errorf("failed to hash password: %w", err)
		}
	}

	child, err := s.childRepo.CreateChild(name, dateOfBirth, passwordHash, parentAccountID)
	if err != nil {
		return nil, "", err
	}
	return child, generated, nil
}

// GetChild retrieves a child profile
func (s *ChildService) GetChild(childID int64) (*models.Child, error) {
	child, err := s.childRepo.GetChildByID(childID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, ErrChildNotFound
	}
	return child, nil
}

// GetTokenBalance returns a child's current token balance
func (s *ChildService) GetTokenBalance(childID int64) (int, error) {
	child, err := s.GetChild(childID)
	if err != nil {
		return 0, err
	}
	return child.TokenBalance, nil
}

// ListCompletions returns a child's completion history with activity titles
func (s *ChildService) ListCompletions(childID int64) ([]models.CompletionSummary, error) {
	if _, err := s.GetChild(childID); err != nil {
		return nil, err
	}
	return s.completionRepo.ListCompletionsByChild(childID)
}

// RegeneratePassword replaces a child's password with a freshly generated one
// and returns it in plain text exactly once
func (s *ChildService) RegeneratePassword(childID int64) (string, error) {
	if _, err := s.GetChild(childID); err != nil {
		return "", err
	}

	password, err := credentials.GenerateChildPassword()
	if err != nil {
		return "", fmt.Errorf("failed to generate password: %w", err)
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.childRepo.UpdatePasswordHash(childID, passwordHash); err != nil {
		return "", err
	}
	return password, nil
}

// CheckPassword verifies a child's password where one is set
func (s *ChildService) CheckPassword(childID int64, password string) (bool, error) {
	child, err := s.GetChild(childID)
	if err != nil {
		return false, err
	}
	if child.PasswordHash == "" {
		return false, errors.New("child has no password set")
	}
	return security.CheckPassword(child.PasswordHash, password), nil
}
