package domain

import (
	"context"
	"time"
)

// Статусы последней синхронизации репозитория.
const (
	SyncStatusOK     = "ok"
	SyncStatusFailed = "failed"
)

// Repository представляет отслеживаемый репозиторий в системе.
type Repository struct {
	ID             int64
	Owner          string
	Name           string
	LastSyncedAt   *time.Time
	LastSyncStatus *string
	LastSyncError  *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RepositoryRepository определяет контракт для работы с хранилищем репозиториев.
type RepositoryRepository interface {
	Create(ctx context.Context, owner, name string) (*Repository, error)
	GetByID(ctx context.Context, repositoryID int64) (*Repository, error)
	GetByOwnerName(ctx context.Context, owner, name string) (*Repository, error)
	List(ctx context.Context) ([]*Repository, error)
	UpdateSyncStatus(ctx context.Context, repositoryID int64, status string, syncErr *string) error
}
