package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"repo-growth-service/internal/domain"
)

// CollectionRepository реализует взаимодействие с данными коллекций в PostgreSQL.
type CollectionRepository struct {
	db *sql.DB
}

// NewCollectionRepository создает новый экземпляр CollectionRepository.
func NewCollectionRepository(db *sql.DB) domain.CollectionRepository {
	return &CollectionRepository{
		db: db,
	}
}

const collectionColumns = `collection_id, name, description, created_at, updated_at`

func scanCollection(row interface{ Scan(...any) error }) (*domain.Collection, error) {
	var collection domain.Collection
	err := row.Scan(
		&collection.ID,
		&collection.Name,
		&collection.Description,
		&collection.CreatedAt,
		&collection.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &collection, nil
}

// Create создает коллекцию.
func (r *CollectionRepository) Create(ctx context.Context, name string, description *string) (*domain.Collection, error) {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO collection (name, description) VALUES ($1, $2) RETURNING `+collectionColumns,
		name, description,
	)

	collection, err := scanCollection(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrCollectionAlreadyExists
		}
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	collection.Repositories = make([]*domain.Repository, 0)
	return collection, nil
}

// GetByID возвращает коллекцию вместе с ее репозиториями.
func (r *CollectionRepository) GetByID(ctx context.Context, collectionID int64) (*domain.Collection, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+collectionColumns+` FROM collection WHERE collection_id = $1`,
		collectionID,
	)

	collection, err := scanCollection(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCollectionNotFound
		}
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT r.repository_id, r.owner, r.name, r.last_synced_at, r.last_sync_status, r.last_sync_error, r.created_at, r.updated_at
		 FROM repository r
		 JOIN collection_repository cr ON cr.repository_id = r.repository_id
		 WHERE cr.collection_id = $1
		 ORDER BY r.repository_id`,
		collectionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get collection repositories: %w", err)
	}
	defer rows.Close()

	collection.Repositories = make([]*domain.Repository, 0)
	for rows.Next() {
		repo, err := scanRepository(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan collection repository: %w", err)
		}
		collection.Repositories = append(collection.Repositories, repo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get collection repositories: %w", err)
	}

	return collection, nil
}

// List возвращает все коллекции без состава репозиториев.
func (r *CollectionRepository) List(ctx context.Context) ([]*domain.Collection, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+collectionColumns+` FROM collection ORDER BY collection_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	collections := make([]*domain.Collection, 0)
	for rows.Next() {
		collection, err := scanCollection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan collection: %w", err)
		}
		collections = append(collections, collection)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}

	return collections, nil
}

// Update изменяет имя и/или описание коллекции; nil оставляет поле как есть.
func (r *CollectionRepository) Update(ctx context.Context, collectionID int64, name, description *string) (*domain.Collection, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE collection
		 SET name = COALESCE($2, name),
		     description = COALESCE($3, description),
		     updated_at = NOW()
		 WHERE collection_id = $1
		 RETURNING `+collectionColumns,
		collectionID, name, description,
	)

	collection, err := scanCollection(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCollectionNotFound
		}
		if isUniqueViolation(err) {
			return nil, domain.ErrCollectionAlreadyExists
		}
		return nil, fmt.Errorf("failed to update collection: %w", err)
	}

	return collection, nil
}

// Delete удаляет коллекцию; связи с репозиториями уходят каскадом.
func (r *CollectionRepository) Delete(ctx context.Context, collectionID int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM collection WHERE collection_id = $1`,
		collectionID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}
	if affected == 0 {
		return domain.ErrCollectionNotFound
	}

	return nil
}

// AddRepository добавляет репозиторий в коллекцию. Возвращает false, если
// репозиторий уже был в коллекции.
func (r *CollectionRepository) AddRepository(ctx context.Context, collectionID, repositoryID int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO collection_repository (collection_id, repository_id)
		 VALUES ($1, $2)
		 ON CONFLICT (collection_id, repository_id) DO NOTHING`,
		collectionID, repositoryID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to add repository to collection: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to add repository to collection: %w", err)
	}

	return affected > 0, nil
}

// RemoveRepository убирает репозиторий из коллекции. Возвращает false,
// если связи не было.
func (r *CollectionRepository) RemoveRepository(ctx context.Context, collectionID, repositoryID int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM collection_repository
		 WHERE collection_id = $1 AND repository_id = $2`,
		collectionID, repositoryID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to remove repository from collection: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to remove repository from collection: %w", err)
	}

	return affected > 0, nil
}

// ExistsCollection проверяет существование коллекции.
func (r *CollectionRepository) ExistsCollection(ctx context.Context, collectionID int64) (bool, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM collection WHERE collection_id = $1`,
		collectionID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check collection exists: %w", err)
	}
	return count > 0, nil
}
