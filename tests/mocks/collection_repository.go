package mocks

import (
	"context"

	"repo-growth-service/internal/domain"

	"github.com/stretchr/testify/mock"
)

// CollectionRepository - мок для domain.CollectionRepository.
type CollectionRepository struct {
	mock.Mock
}

func (m *CollectionRepository) Create(ctx context.Context, name string, description *string) (*domain.Collection, error) {
	args := m.Called(ctx, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Collection), args.Error(1)
}

func (m *CollectionRepository) GetByID(ctx context.Context, collectionID int64) (*domain.Collection, error) {
	args := m.Called(ctx, collectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Collection), args.Error(1)
}

func (m *CollectionRepository) List(ctx context.Context) ([]*domain.Collection, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Collection), args.Error(1)
}

func (m *CollectionRepository) Update(ctx context.Context, collectionID int64, name, description *string) (*domain.Collection, error) {
	args := m.Called(ctx, collectionID, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Collection), args.Error(1)
}

func (m *CollectionRepository) Delete(ctx context.Context, collectionID int64) error {
	args := m.Called(ctx, collectionID)
	return args.Error(0)
}

func (m *CollectionRepository) AddRepository(ctx context.Context, collectionID, repositoryID int64) (bool, error) {
	args := m.Called(ctx, collectionID, repositoryID)
	return args.Bool(0), args.Error(1)
}

func (m *CollectionRepository) RemoveRepository(ctx context.Context, collectionID, repositoryID int64) (bool, error) {
	args := m.Called(ctx, collectionID, repositoryID)
	return args.Bool(0), args.Error(1)
}

func (m *CollectionRepository) ExistsCollection(ctx context.Context, collectionID int64) (bool, error) {
	args := m.Called(ctx, collectionID)
	return args.Bool(0), args.Error(1)
}
