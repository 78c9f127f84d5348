package handler

import (
	"repo-growth-service/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// APIHandler объединяет обработчики всех областей API.
type APIHandler struct {
	*RepositoryHandler
	*CollectionHandler
}

// NewAPIHandler создает новый экземпляр APIHandler.
func NewAPIHandler(
	repositoryUseCase domain.RepositoryUseCase,
	collectionUseCase domain.CollectionUseCase,
	growthUseCase domain.GrowthUseCase,
	logger *logrus.Logger,
) *APIHandler {
	return &APIHandler{
		RepositoryHandler: NewRepositoryHandler(repositoryUseCase, growthUseCase, logger),
		CollectionHandler: NewCollectionHandler(collectionUseCase, growthUseCase, logger),
	}
}

// RegisterRoutes регистрирует маршруты API.
func RegisterRoutes(e *echo.Echo, h *APIHandler) {
	e.POST("/repositories", h.TrackRepository)
	e.GET("/repositories", h.ListRepositories)
	e.GET("/repositories/:id", h.RepositoryHandler.GetRepository)
	e.POST("/repositories/:id/sync", h.RequestSync)
	e.GET("/repositories/:id/growth", h.RepositoryHandler.GetGrowth)

	e.POST("/collections", h.CreateCollection)
	e.GET("/collections", h.ListCollections)
	e.GET("/collections/:id", h.GetCollection)
	e.PUT("/collections/:id", h.UpdateCollection)
	e.DELETE("/collections/:id", h.DeleteCollection)
	e.POST("/collections/:id/repositories", h.CollectionHandler.AddRepository)
	e.DELETE("/collections/:id/repositories/:repositoryID", h.CollectionHandler.RemoveRepository)
	e.GET("/collections/:id/growth", h.CollectionHandler.GetGrowth)
}
