package usecase

import (
	"context"
	"errors"

	"repo-growth-service/internal/domain"
	"repo-growth-service/internal/ingest"
)

// RepositoryUseCase реализует бизнес-логику для работы с репозиториями.
type RepositoryUseCase struct {
	repositoryRepo domain.RepositoryRepository
	queue          *ingest.Queue
	githubToken    string
}

// NewRepositoryUseCase создает новый экземпляр RepositoryUseCase.
func NewRepositoryUseCase(repositoryRepo domain.RepositoryRepository, queue *ingest.Queue, githubToken string) domain.RepositoryUseCase {
	return &RepositoryUseCase{
		repositoryRepo: repositoryRepo,
		queue:          queue,
		githubToken:    githubToken,
	}
}

// TrackRepository регистрирует репозиторий и ставит в очередь первую
// синхронизацию. Повторная регистрация возвращает существующую запись
// без ошибки и тоже ставит синхронизацию.
func (uc *RepositoryUseCase) TrackRepository(ctx context.Context, owner, name string) (*domain.Repository, error) {
	// Валидация
	if owner == "" {
		return nil, domain.ErrInvalidRepositoryOwner
	}
	if name == "" {
		return nil, domain.ErrInvalidRepositoryName
	}

	repo, err := uc.repositoryRepo.Create(ctx, owner, name)
	if errors.Is(err, domain.ErrRepositoryAlreadyExists) {
		repo, err = uc.repositoryRepo.GetByOwnerName(ctx, owner, name)
	}
	if err != nil {
		return nil, err
	}

	uc.enqueue(repo)
	return repo, nil
}

// GetRepository возвращает репозиторий по ID.
func (uc *RepositoryUseCase) GetRepository(ctx context.Context, repositoryID int64) (*domain.Repository, error) {
	if repositoryID <= 0 {
		return nil, domain.ErrInvalidRepositoryID
	}

	return uc.repositoryRepo.GetByID(ctx, repositoryID)
}

// ListRepositories возвращает все отслеживаемые репозитории.
func (uc *RepositoryUseCase) ListRepositories(ctx context.Context) ([]*domain.Repository, error) {
	return uc.repositoryRepo.List(ctx)
}

// RequestSync ставит синхронизацию репозитория в очередь. Возвращает false,
// если задание для репозитория уже в очереди или выполняется.
func (uc *RepositoryUseCase) RequestSync(ctx context.Context, repositoryID int64) (bool, error) {
	if repositoryID <= 0 {
		return false, domain.ErrInvalidRepositoryID
	}

	repo, err := uc.repositoryRepo.GetByID(ctx, repositoryID)
	if err != nil {
		return false, err
	}

	return uc.enqueue(repo), nil
}

func (uc *RepositoryUseCase) enqueue(repo *domain.Repository) bool {
	return uc.queue.Push(domain.SyncJob{
		RepositoryID: repo.ID,
		Owner:        repo.Owner,
		Name:         repo.Name,
		Token:        uc.githubToken,
	})
}
