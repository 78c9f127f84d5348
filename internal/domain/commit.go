package domain

import (
	"context"
	"time"
)

// Commit представляет один коммит репозитория. Записи неизменяемы;
// уникальность (repository_id, sha) делает повторную загрузку идемпотентной.
type Commit struct {
	RepositoryID int64
	SHA          string
	Message      string
	Author       string
	Date         time.Time
}

// ActivityEvent — производное событие активности: один коммит пользователя
// за день. Не хранится, вычисляется при чтении.
type ActivityEvent struct {
	UserID string
	Day    time.Time
	Amount int64
}

// CommitRepository определяет контракт для работы с хранилищем коммитов.
type CommitRepository interface {
	LatestCommitDate(ctx context.Context, repositoryID int64) (*time.Time, error)
	InsertBatch(ctx context.Context, commits []*Commit) (int64, error)
	CountByRepository(ctx context.Context, repositoryID int64) (int64, error)
	ActivityByRepository(ctx context.Context, repositoryID int64) ([]ActivityEvent, error)
	ActivityByCollection(ctx context.Context, collectionID int64) ([]ActivityEvent, error)
}

// SourceCommit — коммит, полученный из внешнего источника (GitHub API).
type SourceCommit struct {
	SHA        string
	Message    string
	AuthorName string
	AuthoredAt time.Time
}

// CommitPage — одна страница коммитов источника. Страницы идут строго
// от новых к старым; на этом порядке основано правило остановки загрузки.
type CommitPage struct {
	Commits []SourceCommit
	HasNext bool
}

// CommitSource определяет контракт внешнего источника истории коммитов.
type CommitSource interface {
	ListCommits(ctx context.Context, token, owner, name string, page int) (*CommitPage, error)
}
