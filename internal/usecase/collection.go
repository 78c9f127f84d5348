package usecase

import (
	"context"

	"repo-growth-service/internal/domain"
)

// CollectionUseCase реализует бизнес-логику для работы с коллекциями.
type CollectionUseCase struct {
	collectionRepo domain.CollectionRepository
	repositoryUC   domain.RepositoryUseCase
}

// NewCollectionUseCase создает новый экземпляр CollectionUseCase.
func NewCollectionUseCase(collectionRepo domain.CollectionRepository, repositoryUC domain.RepositoryUseCase) domain.CollectionUseCase {
	return &CollectionUseCase{
		collectionRepo: collectionRepo,
		repositoryUC:   repositoryUC,
	}
}

// CreateCollection создает новую коллекцию.
func (uc *CollectionUseCase) CreateCollection(ctx context.Context, name string, description *string) (*domain.Collection, error) {
	// Валидация
	if name == "" {
		return nil, domain.ErrInvalidCollectionName
	}

	return uc.collectionRepo.Create(ctx, name, description)
}

// GetCollection возвращает коллекцию вместе с ее репозиториями.
func (uc *CollectionUseCase) GetCollection(ctx context.Context, collectionID int64) (*domain.Collection, error) {
	if collectionID <= 0 {
		return nil, domain.ErrInvalidCollectionID
	}

	return uc.collectionRepo.GetByID(ctx, collectionID)
}

// ListCollections возвращает все коллекции.
func (uc *CollectionUseCase) ListCollections(ctx context.Context) ([]*domain.Collection, error) {
	return uc.collectionRepo.List(ctx)
}

// UpdateCollection изменяет имя и/или описание коллекции.
func (uc *CollectionUseCase) UpdateCollection(ctx context.Context, collectionID int64, name, description *string) (*domain.Collection, error) {
	if collectionID <= 0 {
		return nil, domain.ErrInvalidCollectionID
	}
	if name != nil && *name == "" {
		return nil, domain.ErrInvalidCollectionName
	}

	return uc.collectionRepo.Update(ctx, collectionID, name, description)
}

// DeleteCollection удаляет коллекцию.
func (uc *CollectionUseCase) DeleteCollection(ctx context.Context, collectionID int64) error {
	if collectionID <= 0 {
		return domain.ErrInvalidCollectionID
	}

	return uc.collectionRepo.Delete(ctx, collectionID)
}

// AddRepository добавляет репозиторий в коллекцию, при необходимости
// регистрируя его (с постановкой первой синхронизации). Второй результат —
// false, если репозиторий уже был в коллекции.
func (uc *CollectionUseCase) AddRepository(ctx context.Context, collectionID int64, owner, name string) (*domain.Repository, bool, error) {
	if collectionID <= 0 {
		return nil, false, domain.ErrInvalidCollectionID
	}

	// Проверяем, что коллекция существует
	exists, err := uc.collectionRepo.ExistsCollection(ctx, collectionID)
	if err != nil {
		return nil, false, err
	}
	if !exists {
		return nil, false, domain.ErrCollectionNotFound
	}

	repo, err := uc.repositoryUC.TrackRepository(ctx, owner, name)
	if err != nil {
		return nil, false, err
	}

	added, err := uc.collectionRepo.AddRepository(ctx, collectionID, repo.ID)
	if err != nil {
		return nil, false, err
	}

	return repo, added, nil
}

// RemoveRepository убирает репозиторий из коллекции.
func (uc *CollectionUseCase) RemoveRepository(ctx context.Context, collectionID, repositoryID int64) error {
	if collectionID <= 0 {
		return domain.ErrInvalidCollectionID
	}
	if repositoryID <= 0 {
		return domain.ErrInvalidRepositoryID
	}

	// Проверяем, что коллекция существует
	exists, err := uc.collectionRepo.ExistsCollection(ctx, collectionID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrCollectionNotFound
	}

	removed, err := uc.collectionRepo.RemoveRepository(ctx, collectionID, repositoryID)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrRepositoryNotInCollection
	}

	return nil
}
