package domain

import "errors"

// Domain errors (для бизнес-логики)
var (
	// Validation errors
	ErrInvalidRepositoryID    = errors.New("invalid repository id")
	ErrInvalidRepositoryOwner = errors.New("invalid repository owner")
	ErrInvalidRepositoryName  = errors.New("invalid repository name")
	ErrInvalidCollectionID    = errors.New("invalid collection id")
	ErrInvalidCollectionName  = errors.New("invalid collection name")

	// Repository errors
	ErrRepositoryNotFound      = errors.New("repository not found")
	ErrRepositoryAlreadyExists = errors.New("repository already exists")

	// Collection errors
	ErrCollectionNotFound        = errors.New("collection not found")
	ErrCollectionAlreadyExists   = errors.New("collection already exists")
	ErrRepositoryNotInCollection = errors.New("repository not in collection")
)

// HTTPError для тела ответа с ошибкой
type HTTPError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error HTTPError `json:"error"`
}

// Маппинг domain ошибок в HTTP ошибки
var ErrorMapping = map[error]HTTPError{
	ErrRepositoryAlreadyExists:   {Code: "REPOSITORY_EXISTS", Message: "repository already tracked"},
	ErrCollectionAlreadyExists:   {Code: "COLLECTION_EXISTS", Message: "collection name already exists"},
	ErrRepositoryNotFound:        {Code: "NOT_FOUND", Message: "repository not found"},
	ErrCollectionNotFound:        {Code: "NOT_FOUND", Message: "collection not found"},
	ErrRepositoryNotInCollection: {Code: "NOT_FOUND", Message: "repository not in collection"},
	ErrInvalidRepositoryID:       {Code: "BAD_REQUEST", Message: "invalid repository id"},
	ErrInvalidRepositoryOwner:    {Code: "BAD_REQUEST", Message: "owner must not be empty"},
	ErrInvalidRepositoryName:     {Code: "BAD_REQUEST", Message: "name must not be empty"},
	ErrInvalidCollectionID:       {Code: "BAD_REQUEST", Message: "invalid collection id"},
	ErrInvalidCollectionName:     {Code: "BAD_REQUEST", Message: "collection name must not be empty"},
}

// ToHTTPError преобразует domain ошибку в HTTP ошибку
func ToHTTPError(err error) (HTTPError, bool) {
	httpErr, exists := ErrorMapping[err]
	return httpErr, exists
}
