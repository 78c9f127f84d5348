package usecase

import (
	"context"

	"repo-growth-service/internal/domain"
	"repo-growth-service/internal/growth"
)

// GrowthUseCase реализует расчет growth accounting для репозитория или
// коллекции. Чтение идет поверх живой таблицы коммитов: результат может
// отражать еще не завершенную синхронизацию.
type GrowthUseCase struct {
	commitRepo     domain.CommitRepository
	repositoryRepo domain.RepositoryRepository
	collectionRepo domain.CollectionRepository
}

// NewGrowthUseCase создает новый экземпляр GrowthUseCase.
func NewGrowthUseCase(commitRepo domain.CommitRepository, repositoryRepo domain.RepositoryRepository, collectionRepo domain.CollectionRepository) domain.GrowthUseCase {
	return &GrowthUseCase{
		commitRepo:     commitRepo,
		repositoryRepo: repositoryRepo,
		collectionRepo: collectionRepo,
	}
}

// ComputeForRepository считает отчет по активности одного репозитория.
func (uc *GrowthUseCase) ComputeForRepository(ctx context.Context, repositoryID int64) (*domain.GrowthReport, error) {
	if repositoryID <= 0 {
		return nil, domain.ErrInvalidRepositoryID
	}

	// Проверяем, что репозиторий существует
	if _, err := uc.repositoryRepo.GetByID(ctx, repositoryID); err != nil {
		return nil, err
	}

	events, err := uc.commitRepo.ActivityByRepository(ctx, repositoryID)
	if err != nil {
		return nil, err
	}

	return growth.Compute(events), nil
}

// ComputeForCollection считает отчет по объединенной активности
// репозиториев коллекции.
func (uc *GrowthUseCase) ComputeForCollection(ctx context.Context, collectionID int64) (*domain.GrowthReport, error) {
	if collectionID <= 0 {
		return nil, domain.ErrInvalidCollectionID
	}

	// Проверяем, что коллекция существует
	exists, err := uc.collectionRepo.ExistsCollection(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrCollectionNotFound
	}

	events, err := uc.commitRepo.ActivityByCollection(ctx, collectionID)
	if err != nil {
		return nil, err
	}

	return growth.Compute(events), nil
}
