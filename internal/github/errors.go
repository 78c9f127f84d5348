package github

import (
	"errors"
	"fmt"
)

// APIError — структурированная ошибка GitHub API. Признак rate limit
// выставляется клиентом по статусу и заголовкам ответа, чтобы выше по
// стеку не приходилось разбирать текст сообщения.
type APIError struct {
	StatusCode  int
	Message     string
	RateLimited bool
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github api error: status %d: %s", e.StatusCode, e.Message)
}

// IsTransient сообщает, можно ли повторить запрос после паузы.
// Transient — только rate limit; все остальное (not found, auth,
// неразбираемый ответ) считается постоянной ошибкой.
func IsTransient(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.RateLimited
	}
	return false
}
