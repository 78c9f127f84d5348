package ingest

import (
	"context"
	"io"
	"testing"
	"time"

	"repo-growth-service/internal/domain"
	"repo-growth-service/internal/github"
	"repo-growth-service/tests/mocks"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// newTestFetcher отключает джиттер и сжимает паузы backoff, чтобы тесты
// повторов выполнялись за миллисекунды.
func newTestFetcher(source domain.CommitSource, commits domain.CommitRepository, maxRetries uint64) *Fetcher {
	f := NewFetcher(source, commits, testLogger(), maxRetries)
	f.newBackOff = func() backoff.BackOff {
		policy := backoff.NewExponentialBackOff()
		policy.InitialInterval = time.Millisecond
		policy.RandomizationFactor = 0
		return policy
	}
	return f
}

func testJob() domain.SyncJob {
	return domain.SyncJob{RepositoryID: 1, Owner: "octocat", Name: "hello", Token: "token"}
}

func sourceCommit(sha string, authoredAt time.Time) domain.SourceCommit {
	return domain.SourceCommit{
		SHA:        sha,
		Message:    "commit " + sha,
		AuthorName: "alice",
		AuthoredAt: authoredAt,
	}
}

func TestFetcher_Sync_SinglePage(t *testing.T) {
	ctx := context.Background()
	source := &mocks.CommitSource{}
	commits := &mocks.CommitRepository{}
	fetcher := newTestFetcher(source, commits, 3)

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	page := &domain.CommitPage{
		Commits: []domain.SourceCommit{
			sourceCommit("bbb", now),
			sourceCommit("aaa", now.Add(-time.Hour)),
		},
		HasNext: false,
	}

	commits.On("LatestCommitDate", ctx, int64(1)).Return(nil, nil)
	source.On("ListCommits", mock.Anything, "token", "octocat", "hello", 1).Return(page, nil).Once()
	commits.On("InsertBatch", ctx, mock.MatchedBy(func(batch []*domain.Commit) bool {
		return len(batch) == 2 && batch[0].SHA == "bbb" && batch[1].SHA == "aaa"
	})).Return(int64(2), nil).Once()

	err := fetcher.Sync(ctx, testJob())

	require.NoError(t, err)
	source.AssertExpectations(t)
	commits.AssertExpectations(t)
}

func TestFetcher_Sync_WalksPagesUntilLast(t *testing.T) {
	ctx := context.Background()
	source := &mocks.CommitSource{}
	commits := &mocks.CommitRepository{}
	fetcher := newTestFetcher(source, commits, 3)

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	firstPage := &domain.CommitPage{
		Commits: []domain.SourceCommit{sourceCommit("ccc", now)},
		HasNext: true,
	}
	lastPage := &domain.CommitPage{
		Commits: []domain.SourceCommit{sourceCommit("bbb", now.Add(-time.Hour))},
		HasNext: false,
	}

	commits.On("LatestCommitDate", ctx, int64(1)).Return(nil, nil)
	source.On("ListCommits", mock.Anything, "token", "octocat", "hello", 1).Return(firstPage, nil).Once()
	source.On("ListCommits", mock.Anything, "token", "octocat", "hello", 2).Return(lastPage, nil).Once()
	commits.On("InsertBatch", ctx, mock.Anything).Return(int64(1), nil).Twice()

	err := fetcher.Sync(ctx, testJob())

	require.NoError(t, err)
	source.AssertExpectations(t)
	commits.AssertExpectations(t)
}

func TestFetcher_Sync_WatermarkStopsPagination(t *testing.T) {
	ctx := context.Background()
	source := &mocks.CommitSource{}
	commits := &mocks.CommitRepository{}
	fetcher := newTestFetcher(source, commits, 3)

	watermark := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	firstPage := &domain.CommitPage{
		Commits: []domain.SourceCommit{
			sourceCommit("new", watermark.Add(24 * time.Hour)),
			sourceCommit("old", watermark),
		},
		HasNext: true,
	}
	// Вторая страница целиком не новее водяного знака.
	secondPage := &domain.CommitPage{
		Commits: []domain.SourceCommit{
			sourceCommit("older", watermark.Add(-24*time.Hour)),
		},
		HasNext: true,
	}

	commits.On("LatestCommitDate", ctx, int64(1)).Return(&watermark, nil)
	source.On("ListCommits", mock.Anything, "token", "octocat", "hello", 1).Return(firstPage, nil).Once()
	source.On("ListCommits", mock.Anything, "token", "octocat", "hello", 2).Return(secondPage, nil).Once()
	commits.On("InsertBatch", ctx, mock.MatchedBy(func(batch []*domain.Commit) bool {
		return len(batch) == 1 && batch[0].SHA == "new"
	})).Return(int64(1), nil).Once()

	err := fetcher.Sync(ctx, testJob())

	require.NoError(t, err)
	// Третья страница не запрашивается: проход завершен на пустом батче.
	source.AssertNumberOfCalls(t, "ListCommits", 2)
	source.AssertExpectations(t)
	commits.AssertExpectations(t)
}

func TestFetcher_Sync_RetriesRateLimit(t *testing.T) {
	ctx := context.Background()
	source := &mocks.CommitSource{}
	commits := &mocks.CommitRepository{}
	fetcher := newTestFetcher(source, commits, 5)

	rateLimited := &github.APIError{StatusCode: 429, Message: "API rate limit exceeded", RateLimited: true}
	page := &domain.CommitPage{
		Commits: []domain.SourceCommit{sourceCommit("aaa", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))},
		HasNext: false,
	}

	commits.On("LatestCommitDate", ctx, int64(1)).Return(nil, nil)
	source.On("ListCommits", mock.Anything, "token", "octocat", "hello", 1).Return(nil, rateLimited).Times(3)
	source.On("ListCommits", mock.Anything, "token", "octocat", "hello", 1).Return(page, nil).Once()
	commits.On("InsertBatch", ctx, mock.Anything).Return(int64(1), nil).Once()

	err := fetcher.Sync(ctx, testJob())

	require.NoError(t, err)
	// Страница запрошена четыре раза, но сохранена ровно один.
	source.AssertNumberOfCalls(t, "ListCommits", 4)
	commits.AssertNumberOfCalls(t, "InsertBatch", 1)
}

func TestFetcher_Sync_RetriesExhausted(t *testing.T) {
	ctx := context.Background()
	source := &mocks.CommitSource{}
	commits := &mocks.CommitRepository{}
	fetcher := newTestFetcher(source, commits, 2)

	rateLimited := &github.APIError{StatusCode: 429, Message: "API rate limit exceeded", RateLimited: true}

	commits.On("LatestCommitDate", ctx, int64(1)).Return(nil, nil)
	source.On("ListCommits", mock.Anything, "token", "octocat", "hello", 1).Return(nil, rateLimited)

	err := fetcher.Sync(ctx, testJob())

	require.Error(t, err)
	assert.ErrorIs(t, err, rateLimited)
	// Первый запрос плюс maxRetries повторов.
	source.AssertNumberOfCalls(t, "ListCommits", 3)
	commits.AssertNotCalled(t, "InsertBatch", mock.Anything, mock.Anything)
}

func TestFetcher_Sync_PermanentErrorAbortsImmediately(t *testing.T) {
	ctx := context.Background()
	source := &mocks.CommitSource{}
	commits := &mocks.CommitRepository{}
	fetcher := newTestFetcher(source, commits, 5)

	notFound := &github.APIError{StatusCode: 404, Message: "Not Found"}

	commits.On("LatestCommitDate", ctx, int64(1)).Return(nil, nil)
	source.On("ListCommits", mock.Anything, "token", "octocat", "hello", 1).Return(nil, notFound)

	err := fetcher.Sync(ctx, testJob())

	require.Error(t, err)
	assert.ErrorIs(t, err, notFound)
	// Постоянная ошибка не повторяется несмотря на запас повторов.
	source.AssertNumberOfCalls(t, "ListCommits", 1)
	commits.AssertNotCalled(t, "InsertBatch", mock.Anything, mock.Anything)
}

func TestFetcher_Sync_EmptyRepository(t *testing.T) {
	ctx := context.Background()
	source := &mocks.CommitSource{}
	commits := &mocks.CommitRepository{}
	fetcher := newTestFetcher(source, commits, 3)

	commits.On("LatestCommitDate", ctx, int64(1)).Return(nil, nil)
	source.On("ListCommits", mock.Anything, "token", "octocat", "hello", 1).
		Return(&domain.CommitPage{}, nil).Once()

	err := fetcher.Sync(ctx, testJob())

	require.NoError(t, err)
	commits.AssertNotCalled(t, "InsertBatch", mock.Anything, mock.Anything)
}
