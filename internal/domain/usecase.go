package domain

import "context"

// RepositoryUseCase определяет бизнес-логику для работы с репозиториями.
type RepositoryUseCase interface {
	TrackRepository(ctx context.Context, owner, name string) (*Repository, error)
	GetRepository(ctx context.Context, repositoryID int64) (*Repository, error)
	ListRepositories(ctx context.Context) ([]*Repository, error)
	RequestSync(ctx context.Context, repositoryID int64) (bool, error)
}

// CollectionUseCase определяет бизнес-логику для работы с коллекциями.
type CollectionUseCase interface {
	CreateCollection(ctx context.Context, name string, description *string) (*Collection, error)
	GetCollection(ctx context.Context, collectionID int64) (*Collection, error)
	ListCollections(ctx context.Context) ([]*Collection, error)
	UpdateCollection(ctx context.Context, collectionID int64, name, description *string) (*Collection, error)
	DeleteCollection(ctx context.Context, collectionID int64) error
	AddRepository(ctx context.Context, collectionID int64, owner, name string) (*Repository, bool, error)
	RemoveRepository(ctx context.Context, collectionID, repositoryID int64) error
}

// GrowthUseCase определяет бизнес-логику расчета growth accounting.
type GrowthUseCase interface {
	ComputeForRepository(ctx context.Context, repositoryID int64) (*GrowthReport, error)
	ComputeForCollection(ctx context.Context, collectionID int64) (*GrowthReport, error)
}
