package mocks

import (
	"context"

	"repo-growth-service/internal/domain"

	"github.com/stretchr/testify/mock"
)

// RepositoryRepository - мок для domain.RepositoryRepository.
type RepositoryRepository struct {
	mock.Mock
}

func (m *RepositoryRepository) Create(ctx context.Context, owner, name string) (*domain.Repository, error) {
	args := m.Called(ctx, owner, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Repository), args.Error(1)
}

func (m *RepositoryRepository) GetByID(ctx context.Context, repositoryID int64) (*domain.Repository, error) {
	args := m.Called(ctx, repositoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Repository), args.Error(1)
}

func (m *RepositoryRepository) GetByOwnerName(ctx context.Context, owner, name string) (*domain.Repository, error) {
	args := m.Called(ctx, owner, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Repository), args.Error(1)
}

func (m *RepositoryRepository) List(ctx context.Context) ([]*domain.Repository, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Repository), args.Error(1)
}

func (m *RepositoryRepository) UpdateSyncStatus(ctx context.Context, repositoryID int64, status string, syncErr *string) error {
	args := m.Called(ctx, repositoryID, status, syncErr)
	return args.Error(0)
}
