package mocks

import (
	"context"
	"time"

	"repo-growth-service/internal/domain"

	"github.com/stretchr/testify/mock"
)

// CommitRepository - мок для domain.CommitRepository.
type CommitRepository struct {
	mock.Mock
}

func (m *CommitRepository) LatestCommitDate(ctx context.Context, repositoryID int64) (*time.Time, error) {
	args := m.Called(ctx, repositoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *CommitRepository) InsertBatch(ctx context.Context, commits []*domain.Commit) (int64, error) {
	args := m.Called(ctx, commits)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CommitRepository) CountByRepository(ctx context.Context, repositoryID int64) (int64, error) {
	args := m.Called(ctx, repositoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CommitRepository) ActivityByRepository(ctx context.Context, repositoryID int64) ([]domain.ActivityEvent, error) {
	args := m.Called(ctx, repositoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityEvent), args.Error(1)
}

func (m *CommitRepository) ActivityByCollection(ctx context.Context, collectionID int64) ([]domain.ActivityEvent, error) {
	args := m.Called(ctx, collectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityEvent), args.Error(1)
}
