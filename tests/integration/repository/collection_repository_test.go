package repository_test

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"testing"

	"repo-growth-service/internal/database"
	"repo-growth-service/internal/domain"
	"repo-growth-service/internal/repository"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type CollectionRepositoryTestSuite struct {
	suite.Suite
	db          *sql.DB
	collections domain.CollectionRepository
	repos       domain.RepositoryRepository
	ctx         context.Context
}

func (suite *CollectionRepositoryTestSuite) SetupSuite() {
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

	suite.collections = repository.NewCollectionRepository(suite.db)
	suite.repos = repository.NewRepositoryRepository(suite.db)
	suite.cleanDatabase()
}

func (suite *CollectionRepositoryTestSuite) TearDownTest() {
	suite.cleanDatabase()
}

func (suite *CollectionRepositoryTestSuite) TearDownSuite() {
	if suite.db != nil {
		suite.db.Close()
	}
}

func (suite *CollectionRepositoryTestSuite) cleanDatabase() {
	tables := []string{"collection_repository", `"commit"`, "collection", "repository"}
	for _, table := range tables {
		_, err := suite.db.ExecContext(suite.ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			log.Printf("Failed to clean table %s: %v", table, err)
		}
	}
}

func (suite *CollectionRepositoryTestSuite) TestCreate_And_Duplicate() {
	description := "tracked Go projects"
	collection, err := suite.collections.Create(suite.ctx, "go", &description)

	assert.NoError(suite.T(), err)
	assert.NotZero(suite.T(), collection.ID)
	assert.Equal(suite.T(), "go", collection.Name)
	assert.Equal(suite.T(), description, *collection.Description)

	duplicate, err := suite.collections.Create(suite.ctx, "go", nil)
	assert.ErrorIs(suite.T(), err, domain.ErrCollectionAlreadyExists)
	assert.Nil(suite.T(), duplicate)
}

func (suite *CollectionRepositoryTestSuite) TestGetByID_WithMembers() {
	collection, err := suite.collections.Create(suite.ctx, "go", nil)
	assert.NoError(suite.T(), err)

	repo, err := suite.repos.Create(suite.ctx, "octocat", "hello")
	assert.NoError(suite.T(), err)

	added, err := suite.collections.AddRepository(suite.ctx, collection.ID, repo.ID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), added)

	found, err := suite.collections.GetByID(suite.ctx, collection.ID)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), found.Repositories, 1)
	assert.Equal(suite.T(), repo.ID, found.Repositories[0].ID)
}

func (suite *CollectionRepositoryTestSuite) TestGetByID_NotFound() {
	collection, err := suite.collections.GetByID(suite.ctx, 999999)

	assert.ErrorIs(suite.T(), err, domain.ErrCollectionNotFound)
	assert.Nil(suite.T(), collection)
}

func (suite *CollectionRepositoryTestSuite) TestUpdate_PartialFields() {
	description := "before"
	collection, err := suite.collections.Create(suite.ctx, "go", &description)
	assert.NoError(suite.T(), err)

	name := "golang"
	updated, err := suite.collections.Update(suite.ctx, collection.ID, &name, nil)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "golang", updated.Name)
	// Не переданное описание остается прежним.
	assert.Equal(suite.T(), description, *updated.Description)
}

func (suite *CollectionRepositoryTestSuite) TestDelete_CascadesMembership() {
	collection, err := suite.collections.Create(suite.ctx, "go", nil)
	assert.NoError(suite.T(), err)

	repo, err := suite.repos.Create(suite.ctx, "octocat", "hello")
	assert.NoError(suite.T(), err)

	_, err = suite.collections.AddRepository(suite.ctx, collection.ID, repo.ID)
	assert.NoError(suite.T(), err)

	err = suite.collections.Delete(suite.ctx, collection.ID)
	assert.NoError(suite.T(), err)

	// Репозиторий переживает удаление коллекции.
	survived, err := suite.repos.GetByID(suite.ctx, repo.ID)
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), survived)

	var memberships int64
	err = suite.db.QueryRowContext(suite.ctx,
		"SELECT COUNT(*) FROM collection_repository WHERE collection_id = $1", collection.ID,
	).Scan(&memberships)
	assert.NoError(suite.T(), err)
	assert.Zero(suite.T(), memberships)
}

func (suite *CollectionRepositoryTestSuite) TestAddRepository_Idempotent() {
	collection, err := suite.collections.Create(suite.ctx, "go", nil)
	assert.NoError(suite.T(), err)

	repo, err := suite.repos.Create(suite.ctx, "octocat", "hello")
	assert.NoError(suite.T(), err)

	added, err := suite.collections.AddRepository(suite.ctx, collection.ID, repo.ID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), added)

	added, err = suite.collections.AddRepository(suite.ctx, collection.ID, repo.ID)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), added)
}

func (suite *CollectionRepositoryTestSuite) TestRemoveRepository() {
	collection, err := suite.collections.Create(suite.ctx, "go", nil)
	assert.NoError(suite.T(), err)

	repo, err := suite.repos.Create(suite.ctx, "octocat", "hello")
	assert.NoError(suite.T(), err)

	removed, err := suite.collections.RemoveRepository(suite.ctx, collection.ID, repo.ID)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), removed)

	_, err = suite.collections.AddRepository(suite.ctx, collection.ID, repo.ID)
	assert.NoError(suite.T(), err)

	removed, err = suite.collections.RemoveRepository(suite.ctx, collection.ID, repo.ID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), removed)
}

func (suite *CollectionRepositoryTestSuite) TestExistsCollection() {
	exists, err := suite.collections.ExistsCollection(suite.ctx, 999999)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), exists)

	collection, err := suite.collections.Create(suite.ctx, "go", nil)
	assert.NoError(suite.T(), err)

	exists, err = suite.collections.ExistsCollection(suite.ctx, collection.ID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), exists)
}

func TestCollectionRepositoryTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(CollectionRepositoryTestSuite))
}
