package mocks

import (
	"context"

	"repo-growth-service/internal/domain"

	"github.com/stretchr/testify/mock"
)

// CommitSource - мок для domain.CommitSource.
type CommitSource struct {
	mock.Mock
}

func (m *CommitSource) ListCommits(ctx context.Context, token, owner, name string, page int) (*domain.CommitPage, error) {
	args := m.Called(ctx, token, owner, name, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommitPage), args.Error(1)
}
