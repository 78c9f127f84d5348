package ingest

import (
	"context"
	"time"

	"repo-growth-service/internal/domain"

	"github.com/sirupsen/logrus"
)

// Worker — единственный фоновый потребитель очереди. Задания обрабатываются
// строго последовательно: одна синхронизация за раз ограничивает давление
// на rate limit источника. Результат каждого задания фиксируется в статусе
// репозитория, чтобы фоновые сбои были видны через API, а не только в логах.
type Worker struct {
	queue        *Queue
	fetcher      *Fetcher
	repositories domain.RepositoryRepository
	logger       *logrus.Logger
	pollInterval time.Duration
}

// NewWorker создает новый экземпляр Worker.
func NewWorker(queue *Queue, fetcher *Fetcher, repositories domain.RepositoryRepository, logger *logrus.Logger, pollInterval time.Duration) *Worker {
	return &Worker{
		queue:        queue,
		fetcher:      fetcher,
		repositories: repositories,
		logger:       logger,
		pollInterval: pollInterval,
	}
}

// Run крутит цикл обработки до отмены контекста. При пустой очереди воркер
// засыпает на pollInterval.
func (w *Worker) Run(ctx context.Context) {
	for {
		job, ok := w.queue.Pop()
		if ok {
			w.process(ctx, job)
			continue
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(w.pollInterval):
		}
	}
}

func (w *Worker) process(ctx context.Context, job domain.SyncJob) {
	defer w.queue.Done(job.RepositoryID)

	logEntry := w.logger.WithFields(logrus.Fields{
		"repository_id": job.RepositoryID,
		"repository":    job.Owner + "/" + job.Name,
	})
	logEntry.Info("Processing sync job")

	err := w.fetcher.Sync(ctx, job)

	status := domain.SyncStatusOK
	var syncErr *string
	if err != nil {
		// Задание не перезапускается: повтор по ошибке легко уходит в
		// бесконечный цикл. Сбой записывается в статус репозитория.
		logEntry.WithError(err).Error("Sync job failed")
		status = domain.SyncStatusFailed
		message := err.Error()
		syncErr = &message
	} else {
		logEntry.Info("Sync job completed")
	}

	if updateErr := w.repositories.UpdateSyncStatus(ctx, job.RepositoryID, status, syncErr); updateErr != nil {
		logEntry.WithError(updateErr).Error("Failed to record sync status")
	}
}
