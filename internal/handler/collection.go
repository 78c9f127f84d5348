package handler

import (
	"net/http"

	"repo-growth-service/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// CollectionHandler обрабатывает HTTP-запросы для работы с коллекциями.
type CollectionHandler struct {
	*BaseHandler
	collectionUseCase domain.CollectionUseCase
	growthUseCase     domain.GrowthUseCase
}

// NewCollectionHandler создает новый экземпляр CollectionHandler.
func NewCollectionHandler(collectionUseCase domain.CollectionUseCase, growthUseCase domain.GrowthUseCase, logger *logrus.Logger) *CollectionHandler {
	return &CollectionHandler{
		BaseHandler:       NewBaseHandler(logger),
		collectionUseCase: collectionUseCase,
		growthUseCase:     growthUseCase,
	}
}

type createCollectionRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type updateCollectionRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type addRepositoryRequest struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

// CreateCollection обрабатывает POST запрос на создание коллекции.
func (h *CollectionHandler) CreateCollection(c echo.Context) error {
	logEntry := h.logRequest(c, "create_collection")

	var req createCollectionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, toErrorResponse("BAD_REQUEST", "invalid JSON body"))
	}

	collection, err := h.collectionUseCase.CreateCollection(c.Request().Context(), req.Name, req.Description)
	if err != nil {
		logEntry.WithError(err).Error("Failed to create collection")
		return respondError(c, err)
	}

	logEntry.WithField("collection_id", collection.ID).Info("Collection created")
	return c.JSON(http.StatusCreated, toAPICollection(collection))
}

// ListCollections обрабатывает GET запрос на список коллекций.
func (h *CollectionHandler) ListCollections(c echo.Context) error {
	logEntry := h.logRequest(c, "list_collections")

	collections, err := h.collectionUseCase.ListCollections(c.Request().Context())
	if err != nil {
		logEntry.WithError(err).Error("Failed to list collections")
		return respondError(c, err)
	}

	result := make([]collectionResponse, len(collections))
	for i, collection := range collections {
		result[i] = toAPICollection(collection)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"collections": result,
	})
}

// GetCollection обрабатывает GET запрос на коллекцию с ее репозиториями.
func (h *CollectionHandler) GetCollection(c echo.Context) error {
	logEntry := h.logRequest(c, "get_collection")

	collectionID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, toErrorResponse("BAD_REQUEST", "invalid collection id"))
	}

	collection, err := h.collectionUseCase.GetCollection(c.Request().Context(), collectionID)
	if err != nil {
		logEntry.WithError(err).Warn("Failed to get collection")
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toAPICollection(collection))
}

// UpdateCollection обрабатывает PUT запрос на изменение коллекции.
func (h *CollectionHandler) UpdateCollection(c echo.Context) error {
	logEntry := h.logRequest(c, "update_collection")

	collectionID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, toErrorResponse("BAD_REQUEST", "invalid collection id"))
	}

	var req updateCollectionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, toErrorResponse("BAD_REQUEST", "invalid JSON body"))
	}

	collection, err := h.collectionUseCase.UpdateCollection(c.Request().Context(), collectionID, req.Name, req.Description)
	if err != nil {
		logEntry.WithError(err).Error("Failed to update collection")
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toAPICollection(collection))
}

// DeleteCollection обрабатывает DELETE запрос на удаление коллекции.
func (h *CollectionHandler) DeleteCollection(c echo.Context) error {
	logEntry := h.logRequest(c, "delete_collection")

	collectionID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, toErrorResponse("BAD_REQUEST", "invalid collection id"))
	}

	if err := h.collectionUseCase.DeleteCollection(c.Request().Context(), collectionID); err != nil {
		logEntry.WithError(err).Error("Failed to delete collection")
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// AddRepository обрабатывает POST запрос на добавление репозитория в коллекцию.
func (h *CollectionHandler) AddRepository(c echo.Context) error {
	logEntry := h.logRequest(c, "collection_add_repository")

	collectionID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, toErrorResponse("BAD_REQUEST", "invalid collection id"))
	}

	var req addRepositoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, toErrorResponse("BAD_REQUEST", "invalid JSON body"))
	}

	repo, added, err := h.collectionUseCase.AddRepository(c.Request().Context(), collectionID, req.Owner, req.Name)
	if err != nil {
		logEntry.WithError(err).Error("Failed to add repository to collection")
		return respondError(c, err)
	}

	if !added {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"message":    "repository already in collection",
			"repository": toAPIRepository(repo),
		})
	}

	logEntry.WithFields(logrus.Fields{
		"collection_id": collectionID,
		"repository_id": repo.ID,
	}).Info("Repository added to collection")
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":    "repository added to collection",
		"repository": toAPIRepository(repo),
	})
}

// RemoveRepository обрабатывает DELETE запрос на исключение репозитория из коллекции.
func (h *CollectionHandler) RemoveRepository(c echo.Context) error {
	logEntry := h.logRequest(c, "collection_remove_repository")

	collectionID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, toErrorResponse("BAD_REQUEST", "invalid collection id"))
	}

	repositoryID, err := pathID(c, "repositoryID")
	if err != nil {
		return c.JSON(http.StatusBadRequest, toErrorResponse("BAD_REQUEST", "invalid repository id"))
	}

	if err := h.collectionUseCase.RemoveRepository(c.Request().Context(), collectionID, repositoryID); err != nil {
		logEntry.WithError(err).Error("Failed to remove repository from collection")
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetGrowth обрабатывает GET запрос на growth accounting коллекции.
func (h *CollectionHandler) GetGrowth(c echo.Context) error {
	logEntry := h.logRequest(c, "collection_growth")

	collectionID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, toErrorResponse("BAD_REQUEST", "invalid collection id"))
	}

	report, err := h.growthUseCase.ComputeForCollection(c.Request().Context(), collectionID)
	if err != nil {
		logEntry.WithError(err).Error("Failed to compute growth accounting")
		return respondError(c, err)
	}

	logEntry.WithFields(logrus.Fields{
		"collection_id": collectionID,
		"mau_points":    len(report.MAU),
	}).Info("Growth accounting computed")
	return c.JSON(http.StatusOK, report)
}
