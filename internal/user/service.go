package user

import (
	"fmt"

	"github.com/commerceops/backoffice/internal/core/pagination"
)

type Repository interface {
	GetByID(userID int64) (*User, error)
	List(query pagination.PageQuery) ([]*User, int64, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) GetByID(userID int64) (*User, error) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return u, nil
}

func (s *Service) List(query pagination.PageQuery) (*pagination.PageResult[*User], error) {
	users, total, err := s.repo.List(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	result := pagination.NewPageResult(users, query, total)
	return &result, nil
}
