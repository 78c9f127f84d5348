package handler

import (
	"net/http"
	"strconv"
	"time"

	"repo-growth-service/internal/domain"

	"github.com/labstack/echo/v4"
)

// Вспомогательные функции преобразования доменных моделей в API модели

type repositoryResponse struct {
	RepositoryID   int64      `json:"repository_id"`
	Owner          string     `json:"owner"`
	Name           string     `json:"name"`
	LastSyncedAt   *time.Time `json:"last_synced_at"`
	LastSyncStatus *string    `json:"last_sync_status"`
	LastSyncError  *string    `json:"last_sync_error"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type collectionResponse struct {
	CollectionID int64                `json:"collection_id"`
	Name         string               `json:"name"`
	Description  *string              `json:"description"`
	Repositories []repositoryResponse `json:"repositories,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

func toAPIRepository(repo *domain.Repository) repositoryResponse {
	return repositoryResponse{
		RepositoryID:   repo.ID,
		Owner:          repo.Owner,
		Name:           repo.Name,
		LastSyncedAt:   repo.LastSyncedAt,
		LastSyncStatus: repo.LastSyncStatus,
		LastSyncError:  repo.LastSyncError,
		CreatedAt:      repo.CreatedAt,
		UpdatedAt:      repo.UpdatedAt,
	}
}

func toAPIRepositories(repos []*domain.Repository) []repositoryResponse {
	result := make([]repositoryResponse, len(repos))
	for i, repo := range repos {
		result[i] = toAPIRepository(repo)
	}
	return result
}

func toAPICollection(collection *domain.Collection) collectionResponse {
	response := collectionResponse{
		CollectionID: collection.ID,
		Name:         collection.Name,
		Description:  collection.Description,
		CreatedAt:    collection.CreatedAt,
		UpdatedAt:    collection.UpdatedAt,
	}
	if collection.Repositories != nil {
		response.Repositories = toAPIRepositories(collection.Repositories)
	}
	return response
}

func toErrorResponse(code, message string) domain.ErrorResponse {
	return domain.ErrorResponse{
		Error: domain.HTTPError{
			Code:    code,
			Message: message,
		},
	}
}

func getHTTPStatusCode(err error) int {
	switch err {
	// Conflict errors (409)
	case domain.ErrRepositoryAlreadyExists, domain.ErrCollectionAlreadyExists:
		return http.StatusConflict

	// Not Found errors (404)
	case domain.ErrRepositoryNotFound, domain.ErrCollectionNotFound,
		domain.ErrRepositoryNotInCollection:
		return http.StatusNotFound

	// Bad Request errors (400) - валидация
	case domain.ErrInvalidRepositoryID, domain.ErrInvalidRepositoryOwner,
		domain.ErrInvalidRepositoryName, domain.ErrInvalidCollectionID,
		domain.ErrInvalidCollectionName:
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// respondError отвечает структурированной ошибкой по доменному коду.
func respondError(c echo.Context, err error) error {
	if httpErr, ok := domain.ToHTTPError(err); ok {
		return c.JSON(getHTTPStatusCode(err), domain.ErrorResponse{Error: httpErr})
	}
	return c.JSON(http.StatusInternalServerError, toErrorResponse("INTERNAL_ERROR", err.Error()))
}

func pathID(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
