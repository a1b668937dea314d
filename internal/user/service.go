package user

import (
	"fmt"
	"log/slog"
)

// Repository loads users together with their role assignments. Permission
// expansion happens only on the detail path since listings don't need it.
type Repository interface {
	GetAllWithRoles() ([]*User, error)
	GetByIDWithRoles(userID int64) (*User, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListUsers returns every user with compact role info for the admin listing.
func (s *Service) ListUsers() ([]AdminUserDTO, error) {
	users, err := s.repo.GetAllWithRoles()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	dtos := make([]AdminUserDTO, len(users))
	for i, u := range users {
		dtos[i] = ToAdminUserDTO(u)
	}
	return dtos, nil
}

// GetUser returns one user with roles and each role's permissions expanded.
func (s *Service) GetUser(userID int64) (*AdminUserDetailDTO, error) {
	u, err := s.repo.GetByIDWithRoles(userID)
	if err != nil {
		s.logger.Error("failed to get user", "error", err, "user_id", userID)
		return nil, err
	}

	dto := ToAdminUserDetailDTO(u)
	return &dto, nil
}
