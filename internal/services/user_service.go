package services

import (
	"fmt"

	"marketplace/internal/models"
	"marketplace/internal/repositories"
)

// UserService handles admin console user management.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsers returns every account.
func (s *UserService) ListUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

// ChangeRole sets a user's role. The handler gates this to admins.
func (s *UserService) ChangeRole(userID, role string) (*models.User, error) {
	switch role {
	case models.RoleBuyer, models.RoleSeller, models.RoleAdmin:
	default:
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
