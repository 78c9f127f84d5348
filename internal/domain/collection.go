package domain

import (
	"context"
	"time"
)

// Collection представляет именованный набор репозиториев.
type Collection struct {
	ID           int64
	Name         string
	Description  *string
	Repositories []*Repository
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CollectionRepository определяет контракт для работы с хранилищем коллекций.
type CollectionRepository interface {
	Create(ctx context.Context, name string, description *string) (*Collection, error)
	GetByID(ctx context.Context, collectionID int64) (*Collection, error)
	List(ctx context.Context) ([]*Collection, error)
	Update(ctx context.Context, collectionID int64, name, description *string) (*Collection, error)
	Delete(ctx context.Context, collectionID int64) error
	AddRepository(ctx context.Context, collectionID, repositoryID int64) (bool, error)
	RemoveRepository(ctx context.Context, collectionID, repositoryID int64) (bool, error)
	ExistsCollection(ctx context.Context, collectionID int64) (bool, error)
}
