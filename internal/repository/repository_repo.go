package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"repo-growth-service/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// RepositoryRepository реализует взаимодействие с данными репозиториев в PostgreSQL.
type RepositoryRepository struct {
	db *sql.DB
}

// NewRepositoryRepository создает новый экземпляр RepositoryRepository.
func NewRepositoryRepository(db *sql.DB) domain.RepositoryRepository {
	return &RepositoryRepository{
		db: db,
	}
}

const repositoryColumns = `repository_id, owner, name, last_synced_at, last_sync_status, last_sync_error, created_at, updated_at`

func scanRepository(row interface{ Scan(...any) error }) (*domain.Repository, error) {
	var repo domain.Repository
	err := row.Scan(
		&repo.ID,
		&repo.Owner,
		&repo.Name,
		&repo.LastSyncedAt,
		&repo.LastSyncStatus,
		&repo.LastSyncError,
		&repo.CreatedAt,
		&repo.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &repo, nil
}

// Create создает запись о репозитории.
func (r *RepositoryRepository) Create(ctx context.Context, owner, name string) (*domain.Repository, error) {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO repository (owner, name) VALUES ($1, $2) RETURNING `+repositoryColumns,
		owner, name,
	)

	repo, err := scanRepository(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrRepositoryAlreadyExists
		}
		return nil, fmt.Errorf("failed to create repository: %w", err)
	}

	return repo, nil
}

// GetByID возвращает репозиторий по ID.
func (r *RepositoryRepository) GetByID(ctx context.Context, repositoryID int64) (*domain.Repository, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+repositoryColumns+` FROM repository WHERE repository_id = $1`,
		repositoryID,
	)

	repo, err := scanRepository(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRepositoryNotFound
		}
		return nil, fmt.Errorf("failed to get repository: %w", err)
	}

	return repo, nil
}

// GetByOwnerName возвращает репозиторий по владельцу и имени.
func (r *RepositoryRepository) GetByOwnerName(ctx context.Context, owner, name string) (*domain.Repository, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+repositoryColumns+` FROM repository WHERE owner = $1 AND name = $2`,
		owner, name,
	)

	repo, err := scanRepository(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRepositoryNotFound
		}
		return nil, fmt.Errorf("failed to get repository: %w", err)
	}

	return repo, nil
}

// List возвращает все отслеживаемые репозитории.
func (r *RepositoryRepository) List(ctx context.Context) ([]*domain.Repository, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+repositoryColumns+` FROM repository ORDER BY repository_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories: %w", err)
	}
	defer rows.Close()

	repos := make([]*domain.Repository, 0)
	for rows.Next() {
		repo, err := scanRepository(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan repository: %w", err)
		}
		repos = append(repos, repo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list repositories: %w", err)
	}

	return repos, nil
}

// UpdateSyncStatus фиксирует результат последней синхронизации репозитория.
func (r *RepositoryRepository) UpdateSyncStatus(ctx context.Context, repositoryID int64, status string, syncErr *string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE repository
		 SET last_synced_at = NOW(), last_sync_status = $2, last_sync_error = $3, updated_at = NOW()
		 WHERE repository_id = $1`,
		repositoryID, status, syncErr,
	)
	if err != nil {
		return fmt.Errorf("failed to update sync status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update sync status: %w", err)
	}
	if affected == 0 {
		return domain.ErrRepositoryNotFound
	}

	return nil
}
