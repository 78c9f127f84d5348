// Package github содержит минимальный клиент GitHub REST API для чтения
// истории коммитов. Эндпоинт list-commits возвращает страницы строго от
// новых коммитов к старым; инкрементальная загрузка опирается на этот порядок.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"repo-growth-service/internal/domain"
)

const (
	perPage        = 100
	acceptHeader   = "application/vnd.github+json"
	apiVersion     = "2022-11-28"
	requestTimeout = 30 * time.Second
)

// Client реализует domain.CommitSource поверх GitHub REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient создает новый экземпляр Client. token используется по умолчанию,
// если задание на синхронизацию не несет собственный.
func NewClient(baseURL, token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
	}
}

type commitItem struct {
	SHA    string `json:"sha"`
	Commit struct {
		Message string `json:"message"`
		Author  *struct {
			Name string     `json:"name"`
			Date *time.Time `json:"date"`
		} `json:"author"`
	} `json:"commit"`
}

type errorBody struct {
	Message string `json:"message"`
}

// ListCommits возвращает одну страницу коммитов репозитория.
// Страницы нумеруются с единицы и идут от новых к старым.
func (c *Client) ListCommits(ctx context.Context, token, owner, name string, page int) (*domain.CommitPage, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/commits?per_page=%d&page=%d", c.baseURL, owner, name, perPage, page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	if token == "" {
		token = c.token
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch commits: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, newAPIError(resp)
	}

	var items []commitItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("malformed response: %v", err)}
	}

	commits := make([]domain.SourceCommit, 0, len(items))
	for _, item := range items {
		commits = append(commits, toSourceCommit(item))
	}

	return &domain.CommitPage{
		Commits: commits,
		HasNext: hasNextPage(resp.Header.Get("Link")),
	}, nil
}

func toSourceCommit(item commitItem) domain.SourceCommit {
	author := "Unknown"
	date := time.Now().UTC()
	if item.Commit.Author != nil {
		if item.Commit.Author.Name != "" {
			author = item.Commit.Author.Name
		}
		if item.Commit.Author.Date != nil {
			date = *item.Commit.Author.Date
		}
	}

	return domain.SourceCommit{
		SHA:        item.SHA,
		Message:    item.Commit.Message,
		AuthorName: author,
		AuthoredAt: date,
	}
}

func newAPIError(resp *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var parsed errorBody
	_ = json.Unmarshal(body, &parsed)
	message := parsed.Message
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Message:     message,
		RateLimited: isRateLimited(resp, message),
	}
}

// isRateLimited распознает ответ rate limit: 429, либо 403 с исчерпанным
// X-RateLimit-Remaining или сообщением "rate limit" в теле.
func isRateLimited(resp *http.Response, message string) bool {
	if resp.StatusCode == http.StatusTooManyRequests {
		return true
	}
	if resp.StatusCode != http.StatusForbidden {
		return false
	}
	if resp.Header.Get("X-RateLimit-Remaining") == "0" {
		return true
	}
	return strings.Contains(strings.ToLower(message), "rate limit")
}

func hasNextPage(linkHeader string) bool {
	return strings.Contains(linkHeader, `rel="next"`)
}
