package handler

import (
	"net/http"

	"repo-growth-service/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// RepositoryHandler обрабатывает HTTP-запросы для работы с репозиториями.
type RepositoryHandler struct {
	*BaseHandler
	repositoryUseCase domain.RepositoryUseCase
	growthUseCase     domain.GrowthUseCase
}

// NewRepositoryHandler создает новый экземпляр RepositoryHandler.
func NewRepositoryHandler(repositoryUseCase domain.RepositoryUseCase, growthUseCase domain.GrowthUseCase, logger *logrus.Logger) *RepositoryHandler {
	return &RepositoryHandler{
		BaseHandler:       NewBaseHandler(logger),
		repositoryUseCase: repositoryUseCase,
		growthUseCase:     growthUseCase,
	}
}

type trackRepositoryRequest struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

// TrackRepository обрабатывает POST запрос на отслеживание репозитория.
func (h *RepositoryHandler) TrackRepository(c echo.Context) error {
	logEntry := h.logRequest(c, "track_repository")

	var req trackRepositoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, toErrorResponse("BAD_REQUEST", "invalid JSON body"))
	}

	logEntry = logEntry.WithField("repository", req.Owner+"/"+req.Name)
	logEntry.Info("Tracking repository")

	repo, err := h.repositoryUseCase.TrackRepository(c.Request().Context(), req.Owner, req.Name)
	if err != nil {
		logEntry.WithError(err).Error("Failed to track repository")
		return respondError(c, err)
	}

	logEntry.WithField("repository_id", repo.ID).Info("Repository tracked")
	return c.JSON(http.StatusCreated, toAPIRepository(repo))
}

// ListRepositories обрабатывает GET запрос на список репозиториев.
func (h *RepositoryHandler) ListRepositories(c echo.Context) error {
	logEntry := h.logRequest(c, "list_repositories")

	repos, err := h.repositoryUseCase.ListRepositories(c.Request().Context())
	if err != nil {
		logEntry.WithError(err).Error("Failed to list repositories")
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"repositories": toAPIRepositories(repos),
	})
}

// GetRepository обрабатывает GET запрос на один репозиторий
// (включая статус последней синхронизации).
func (h *RepositoryHandler) GetRepository(c echo.Context) error {
	logEntry := h.logRequest(c, "get_repository")

	repositoryID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, toErrorResponse("BAD_REQUEST", "invalid repository id"))
	}

	repo, err := h.repositoryUseCase.GetRepository(c.Request().Context(), repositoryID)
	if err != nil {
		logEntry.WithError(err).Warn("Failed to get repository")
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toAPIRepository(repo))
}

// RequestSync обрабатывает POST запрос на синхронизацию репозитория.
func (h *RepositoryHandler) RequestSync(c echo.Context) error {
	logEntry := h.logRequest(c, "request_sync")

	repositoryID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, toErrorResponse("BAD_REQUEST", "invalid repository id"))
	}

	queued, err := h.repositoryUseCase.RequestSync(c.Request().Context(), repositoryID)
	if err != nil {
		logEntry.WithError(err).Error("Failed to request sync")
		return respondError(c, err)
	}

	if !queued {
		logEntry.WithField("repository_id", repositoryID).Info("Sync already queued")
		return c.JSON(http.StatusOK, map[string]string{"status": "already_queued"})
	}

	logEntry.WithField("repository_id", repositoryID).Info("Sync queued")
	return c.JSON(http.StatusAccepted, map[string]string{"status": "queued"})
}

// GetGrowth обрабатывает GET запрос на growth accounting репозитория.
func (h *RepositoryHandler) GetGrowth(c echo.Context) error {
	logEntry := h.logRequest(c, "repository_growth")

	repositoryID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, toErrorResponse("BAD_REQUEST", "invalid repository id"))
	}

	report, err := h.growthUseCase.ComputeForRepository(c.Request().Context(), repositoryID)
	if err != nil {
		logEntry.WithError(err).Error("Failed to compute growth accounting")
		return respondError(c, err)
	}

	logEntry.WithFields(logrus.Fields{
		"repository_id": repositoryID,
		"mau_points":    len(report.MAU),
	}).Info("Growth accounting computed")
	return c.JSON(http.StatusOK, report)
}
