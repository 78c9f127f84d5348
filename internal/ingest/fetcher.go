package ingest

import (
	"context"
	"fmt"
	"time"

	"repo-growth-service/internal/domain"
	"repo-growth-service/internal/github"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

// Fetcher инкрементально загружает историю коммитов репозитория из
// внешнего источника и сохраняет ее в хранилище.
type Fetcher struct {
	source     domain.CommitSource
	commits    domain.CommitRepository
	logger     *logrus.Logger
	maxRetries uint64
	newBackOff func() backoff.BackOff
}

// NewFetcher создает новый экземпляр Fetcher. maxRetries ограничивает число
// повторов одной страницы при transient-ошибках источника.
func NewFetcher(source domain.CommitSource, commits domain.CommitRepository, logger *logrus.Logger, maxRetries uint64) *Fetcher {
	return &Fetcher{
		source:     source,
		commits:    commits,
		logger:     logger,
		maxRetries: maxRetries,
		newBackOff: func() backoff.BackOff { return backoff.NewExponentialBackOff() },
	}
}

// Sync выполняет одно задание синхронизации. Повторный запуск для того же
// репозитория идемпотентен: дубликаты отбрасываются ограничением
// (repository_id, sha), а водяной знак отсекает уже загруженные страницы.
func (f *Fetcher) Sync(ctx context.Context, job domain.SyncJob) error {
	watermark, err := f.commits.LatestCommitDate(ctx, job.RepositoryID)
	if err != nil {
		return fmt.Errorf("failed to read watermark: %w", err)
	}

	logEntry := f.logger.WithFields(logrus.Fields{
		"repository_id": job.RepositoryID,
		"repository":    job.Owner + "/" + job.Name,
	})
	if watermark != nil {
		logEntry = logEntry.WithField("watermark", watermark.Format(time.RFC3339))
	}
	logEntry.Info("Starting commit sync")

	var totalInserted int64
	page := 1

	for {
		commitPage, err := f.fetchPage(ctx, job, page)
		if err != nil {
			return err
		}

		batch := make([]*domain.Commit, 0, len(commitPage.Commits))
		for _, commit := range commitPage.Commits {
			// Коммиты не новее водяного знака уже загружены ранее.
			if watermark != nil && !commit.AuthoredAt.After(*watermark) {
				continue
			}

			batch = append(batch, &domain.Commit{
				RepositoryID: job.RepositoryID,
				SHA:          commit.SHA,
				Message:      commit.Message,
				Author:       commit.AuthorName,
				Date:         commit.AuthoredAt,
			})
		}

		if len(batch) > 0 {
			inserted, err := f.commits.InsertBatch(ctx, batch)
			if err != nil {
				return fmt.Errorf("failed to persist commits: %w", err)
			}
			totalInserted += inserted
		}

		// Страницы идут от новых к старым, поэтому страница без новых
		// относительно водяного знака коммитов завершает проход.
		if !commitPage.HasNext || len(batch) == 0 {
			break
		}
		page++
	}

	logEntry.WithFields(logrus.Fields{
		"pages":    page,
		"inserted": totalInserted,
	}).Info("Commit sync finished")

	return nil
}

// fetchPage загружает одну страницу с экспоненциальным backoff: transient
// ошибки (rate limit) повторяются до maxRetries раз, остальные прерывают
// задание сразу.
func (f *Fetcher) fetchPage(ctx context.Context, job domain.SyncJob, page int) (*domain.CommitPage, error) {
	operation := func() (*domain.CommitPage, error) {
		commitPage, err := f.source.ListCommits(ctx, job.Token, job.Owner, job.Name, page)
		if err != nil {
			if github.IsTransient(err) {
				f.logger.WithFields(logrus.Fields{
					"repository": job.Owner + "/" + job.Name,
					"page":       page,
				}).WithError(err).Warn("Rate limited, will retry")
				return nil, err
			}
			return nil, backoff.Permanent(err)
		}
		return commitPage, nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(f.newBackOff(), f.maxRetries),
		ctx,
	)

	commitPage, err := backoff.RetryWithData(operation, policy)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page %d: %w", page, err)
	}
	return commitPage, nil
}
