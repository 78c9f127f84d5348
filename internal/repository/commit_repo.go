package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"repo-growth-service/internal/domain"
)

// CommitRepository реализует взаимодействие с данными коммитов в PostgreSQL.
type CommitRepository struct {
	db *sql.DB
}

// NewCommitRepository создает новый экземпляр CommitRepository.
func NewCommitRepository(db *sql.DB) domain.CommitRepository {
	return &CommitRepository{
		db: db,
	}
}

// LatestCommitDate возвращает водяной знак репозитория: дату самого свежего
// сохраненного коммита. nil — коммитов еще нет, нужна полная загрузка.
func (r *CommitRepository) LatestCommitDate(ctx context.Context, repositoryID int64) (*time.Time, error) {
	var latest sql.NullTime
	err := r.db.QueryRowContext(ctx,
		`SELECT MAX(date) FROM "commit" WHERE repository_id = $1`,
		repositoryID,
	).Scan(&latest)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest commit date: %w", err)
	}

	if !latest.Valid {
		return nil, nil
	}
	return &latest.Time, nil
}

// InsertBatch сохраняет пачку коммитов в одной транзакции. Дубликаты
// отбрасываются ограничением (repository_id, sha); возвращается число
// реально вставленных строк.
func (r *CommitRepository) InsertBatch(ctx context.Context, commits []*domain.Commit) (int64, error) {
	if len(commits) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var inserted int64
	for _, commit := range commits {
		result, execErr := tx.ExecContext(ctx,
			`INSERT INTO "commit" (repository_id, sha, message, author, date)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (repository_id, sha) DO NOTHING`,
			commit.RepositoryID, commit.SHA, commit.Message, commit.Author, commit.Date,
		)
		if execErr != nil {
			err = execErr
			return 0, fmt.Errorf("failed to insert commit %s: %w", commit.SHA, execErr)
		}

		affected, execErr := result.RowsAffected()
		if execErr != nil {
			err = execErr
			return 0, fmt.Errorf("failed to insert commit %s: %w", commit.SHA, execErr)
		}
		inserted += affected
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return inserted, nil
}

// CountByRepository возвращает число сохраненных коммитов репозитория.
func (r *CommitRepository) CountByRepository(ctx context.Context, repositoryID int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM "commit" WHERE repository_id = $1`,
		repositoryID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count commits: %w", err)
	}
	return count, nil
}

// ActivityByRepository возвращает поток событий активности одного
// репозитория: (автор, день, число коммитов).
func (r *CommitRepository) ActivityByRepository(ctx context.Context, repositoryID int64) ([]domain.ActivityEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT author, date_trunc('day', date) AS day, COUNT(*)
		 FROM "commit"
		 WHERE repository_id = $1
		 GROUP BY 1, 2
		 ORDER BY 2, 1`,
		repositoryID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load repository activity: %w", err)
	}

	return scanActivity(rows)
}

// ActivityByCollection возвращает поток событий активности по объединению
// репозиториев коллекции. Область задается bind-параметром через таблицу
// связей, а не подстановкой в текст запроса.
func (r *CommitRepository) ActivityByCollection(ctx context.Context, collectionID int64) ([]domain.ActivityEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.author, date_trunc('day', c.date) AS day, COUNT(*)
		 FROM "commit" c
		 JOIN collection_repository cr ON cr.repository_id = c.repository_id
		 WHERE cr.collection_id = $1
		 GROUP BY 1, 2
		 ORDER BY 2, 1`,
		collectionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection activity: %w", err)
	}

	return scanActivity(rows)
}

func scanActivity(rows *sql.Rows) ([]domain.ActivityEvent, error) {
	defer rows.Close()

	events := make([]domain.ActivityEvent, 0)
	for rows.Next() {
		var event domain.ActivityEvent
		if err := rows.Scan(&event.UserID, &event.Day, &event.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan activity event: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load activity: %w", err)
	}

	return events, nil
}
