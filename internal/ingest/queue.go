// Package ingest содержит конвейер загрузки коммитов: очередь заданий,
// фоновый воркер и инкрементальный загрузчик страниц источника.
package ingest

import (
	"sync"

	"repo-growth-service/internal/domain"
)

// Queue — FIFO-очередь заданий синхронизации с дедупликацией по репозиторию:
// пока задание для репозитория стоит в очереди или выполняется, повторный
// Push для него схлопывается. Push никогда не блокирует вызывающего.
type Queue struct {
	mu       sync.Mutex
	jobs     []domain.SyncJob
	inFlight map[int64]bool
}

// NewQueue создает новый экземпляр Queue.
func NewQueue() *Queue {
	return &Queue{
		inFlight: make(map[int64]bool),
	}
}

// Push ставит задание в хвост очереди. Возвращает false, если задание для
// этого репозитория уже в работе.
func (q *Queue) Push(job domain.SyncJob) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.inFlight[job.RepositoryID] {
		return false
	}

	q.inFlight[job.RepositoryID] = true
	q.jobs = append(q.jobs, job)
	return true
}

// Pop снимает задание с головы очереди. Ключ дедупликации удерживается
// до вызова Done.
func (q *Queue) Pop() (domain.SyncJob, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.jobs) == 0 {
		return domain.SyncJob{}, false
	}

	job := q.jobs[0]
	q.jobs = q.jobs[1:]
	return job, true
}

// Done освобождает ключ дедупликации после завершения задания.
func (q *Queue) Done(repositoryID int64) {
	q.mu.Lock()
	defer q.mu.Unlock()

	delete(q.inFlight, repositoryID)
}

// Len возвращает число заданий в очереди.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.jobs)
}
