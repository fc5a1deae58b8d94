package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"task_manager_app_go/config"
	"task_manager_app_go/models"
)

// Task API paths
const (
	PathUserDashboardData = "/api/tasks/user-dashboard-data"
	PathProfile           = "/api/auth/profile"
	PathUsers             = "/api/users"
)

// maxResponseSize caps how much of an API response is read
const maxResponseSize = 2 << 20

// ErrUnauthorized is returned when the API rejects the bearer token
var ErrUnauthorized = errors.New("task api: unauthorized")

// APIError is a non-2xx answer from the task API
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("task api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("task api: status %d: %s", e.StatusCode, e.Message)
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 answers
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// IsAPIUnavailable reports whether err means the API could not serve the
// request (transport failure or 5xx) as opposed to rejecting it
func IsAPIUnavailable(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= http.StatusInternalServerError
	}
	return !errors.Is(err, ErrInvalidInput) && !errors.Is(err, ErrUnauthorized)
}

// TaskAPIClient calls the remote task manager API on behalf of a user
type TaskAPIClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewTaskAPIClient creates a client for the configured API
func NewTaskAPIClient(cfg *config.Config) *TaskAPIClient {
	timeout := cfg.TaskAPITimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &TaskAPIClient{
		BaseURL:    strings.TrimRight(cfg.TaskAPIURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// GetUserDashboardData fetches the dashboard statistics of the token's user
func (c *TaskAPIClient) GetUserDashboardData(ctx context.Context, token string) (*models.DashboardStatistics, error) {
	body, err := c.get(ctx, PathUserDashboardData, token)
	if err != nil {
		return nil, err
	}

	stats, err := DecodeDashboardStatistics(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode dashboard data: %w", err)
	}
	return stats, nil
}

// GetUserDashboardRaw fetches the dashboard payload without decoding it
func (c *TaskAPIClient) GetUserDashboardRaw(ctx context.Context, token string) ([]byte, error) {
	return c.get(ctx, PathUserDashboardData, token)
}

// GetProfile returns the user the token belongs to
func (c *TaskAPIClient) GetProfile(ctx context.Context, token string) (*models.User, error) {
	body, err := c.get(ctx, PathProfile, token)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("failed to decode profile: missing user id")
	}
	return &user, nil
}

// GetAllUsers lists the users tasks can be assigned to
func (c *TaskAPIClient) GetAllUsers(ctx context.Context, token string) ([]models.User, error) {
	body, err := c.get(ctx, PathUsers, token)
	if err != nil {
		return nil, err
	}

	var users []models.User
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

func (c *TaskAPIClient) get(ctx context.Context, path, token string) ([]byte, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call task api %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read task api response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}
	return body, nil
}

// errorMessage extracts the "message" field the API puts in error bodies
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}
