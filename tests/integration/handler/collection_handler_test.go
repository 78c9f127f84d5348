package handler_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"repo-growth-service/internal/database"
	"repo-growth-service/internal/handler"
	"repo-growth-service/internal/ingest"
	"repo-growth-service/internal/repository"
	"repo-growth-service/internal/usecase"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type CollectionHandlerTestSuite struct {
	suite.Suite
	db      *sql.DB
	echo    *echo.Echo
	handler *handler.CollectionHandler
	ctx     context.Context
}

func (suite *CollectionHandlerTestSuite) SetupSuite() {
	suite.ctx = context.Background()

	var err error
	suite.db, err = sql.Open("pgx", testDSN())
	if err != nil {
		log.Fatalf("Failed to connect to test database: %v", err)
	}

	if err = suite.db.Ping(); err != nil {
		log.Fatalf("Failed to ping test database: %v", err)
	}

	if err = database.MigrateDB(suite.db); err != nil {
		log.Fatalf("Failed to migrate test database: %v", err)
	}

	suite.cleanDatabase()

	suite.echo = echo.New()
	logger := logrus.New()

	repositoryRepo := repository.NewRepositoryRepository(suite.db)
	commitRepo := repository.NewCommitRepository(suite.db)
	collectionRepo := repository.NewCollectionRepository(suite.db)

	repositoryUC := usecase.NewRepositoryUseCase(repositoryRepo, ingest.NewQueue(), "")
	collectionUC := usecase.NewCollectionUseCase(collectionRepo, repositoryUC)
	growthUC := usecase.NewGrowthUseCase(commitRepo, repositoryRepo, collectionRepo)

	suite.handler = handler.NewCollectionHandler(collectionUC, growthUC, logger)
}

func (suite *CollectionHandlerTestSuite) TearDownTest() {
	suite.cleanDatabase()
}

func (suite *CollectionHandlerTestSuite) TearDownSuite() {
	if suite.db != nil {
		suite.db.Close()
	}
}

func (suite *CollectionHandlerTestSuite) cleanDatabase() {
	tables := []string{"collection_repository", `"commit"`, "collection", "repository"}
	for _, table := range tables {
		_, err := suite.db.ExecContext(suite.ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			log.Printf("Failed to clean table %s: %v", table, err)
		}
	}
}

func (suite *CollectionHandlerTestSuite) createCollection(name string) int64 {
	body, _ := json.Marshal(map[string]string{"name": name})
	req := httptest.NewRequest(http.MethodPost, "/collections", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	c := suite.echo.NewContext(req, rec)
	err := suite.handler.CreateCollection(c)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)

	var response map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &response)
	return int64(response["collection_id"].(float64))
}

func (suite *CollectionHandlerTestSuite) TestCreateCollection_Duplicate() {
	suite.createCollection("go")

	body, _ := json.Marshal(map[string]string{"name": "go"})
	req := httptest.NewRequest(http.MethodPost, "/collections", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	c := suite.echo.NewContext(req, rec)
	err := suite.handler.CreateCollection(c)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusConflict, rec.Code)

	var response map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &response)

	errorObj := response["error"].(map[string]interface{})
	assert.Equal(suite.T(), "COLLECTION_EXISTS", errorObj["code"])
}

func (suite *CollectionHandlerTestSuite) TestAddRepository_CreatesAndTracks() {
	collectionID := suite.createCollection("go")

	body, _ := json.Marshal(map[string]string{"owner": "octocat", "name": "hello"})
	target := fmt.Sprintf("/collections/%d/repositories", collectionID)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	c := suite.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprintf("%d", collectionID))

	err := suite.handler.AddRepository(c)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)

	// Повторное добавление того же репозитория.
	req2 := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req2.Header.Set("Content-Type", "application/json")
	rec2 := httptest.NewRecorder()

	c2 := suite.echo.NewContext(req2, rec2)
	c2.SetParamNames("id")
	c2.SetParamValues(fmt.Sprintf("%d", collectionID))

	err = suite.handler.AddRepository(c2)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, rec2.Code)

	var response map[string]interface{}
	json.Unmarshal(rec2.Body.Bytes(), &response)
	assert.Equal(suite.T(), "repository already in collection", response["message"])
}

func (suite *CollectionHandlerTestSuite) TestAddRepository_CollectionNotFound() {
	body, _ := json.Marshal(map[string]string{"owner": "octocat", "name": "hello"})
	req := httptest.NewRequest(http.MethodPost, "/collections/999999/repositories", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	c := suite.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("999999")

	err := suite.handler.AddRepository(c)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
}

func (suite *CollectionHandlerTestSuite) TestUpdateCollection_Success() {
	collectionID := suite.createCollection("go")

	description := "system languages"
	body, _ := json.Marshal(map[string]interface{}{"name": "golang", "description": description})
	target := fmt.Sprintf("/collections/%d", collectionID)
	req := httptest.NewRequest(http.MethodPut, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	c := suite.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprintf("%d", collectionID))

	err := suite.handler.UpdateCollection(c)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	var response map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &response)
	assert.Equal(suite.T(), "golang", response["name"])
	assert.Equal(suite.T(), description, response["description"])
}

func (suite *CollectionHandlerTestSuite) TestDeleteCollection_Success() {
	collectionID := suite.createCollection("go")

	target := fmt.Sprintf("/collections/%d", collectionID)
	req := httptest.NewRequest(http.MethodDelete, target, nil)
	rec := httptest.NewRecorder()

	c := suite.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprintf("%d", collectionID))

	err := suite.handler.DeleteCollection(c)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusNoContent, rec.Code)
}

func (suite *CollectionHandlerTestSuite) TestGetGrowth_EmptyCollection() {
	collectionID := suite.createCollection("go")

	target := fmt.Sprintf("/collections/%d/growth", collectionID)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()

	c := suite.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprintf("%d", collectionID))

	err := suite.handler.GetGrowth(c)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	var response map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &response)
	assert.Empty(suite.T(), response["mau"])
	assert.Empty(suite.T(), response["mrr"])
	assert.Empty(suite.T(), response["ltv"])
}

func TestCollectionHandlerTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(CollectionHandlerTestSuite))
}
