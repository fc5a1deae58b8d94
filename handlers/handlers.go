package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"task_manager_app_go/config"
	"task_manager_app_go/middleware"
	"task_manager_app_go/models"
	"task_manager_app_go/services"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// DashboardLoader builds the dashboard of a user
type DashboardLoader interface {
	Load(ctx context.Context, token string, user *models.User) (*services.DashboardView, error)
}

// UserLister lists the users tasks can be assigned to
type UserLister interface {
	GetAllUsers(ctx context.Context, token string) ([]models.User, error)
}

// Handler serves the dashboard routes
type Handler struct {
	Dashboards DashboardLoader
	Users      UserLister
	Now        func() time.Time
}

func New(dashboards DashboardLoader, users UserLister) *Handler {
	return &Handler{Dashboards: dashboards, Users: users, Now: time.Now}
}

func (h *Handler) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

func render(c echo.Context, component templ.Component) error {
	return component.Render(c.Request().Context(), c.Response().Writer)
}

func renderStatus(c echo.Context, status int, component templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	return render(c, component)
}

// apiErrorStatus maps a task API error to the status and message shown to
// the client
func apiErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized, "Not authenticated"
	case errors.Is(err, services.ErrInvalidInput):
		return http.StatusBadGateway, "Task service returned malformed data"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "Task service timed out"
	case services.IsAPIUnavailable(err):
		return http.StatusBadGateway, "Task service unavailable"
	default:
		var apiErr *services.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return apiErr.StatusCode, apiErr.Message
		}
		return http.StatusBadGateway, "Task service error"
	}
}

func loginURL(c echo.Context) string {
	if cfg, ok := c.Get(middleware.ContextKeyConfig).(*config.Config); ok && cfg.LoginURL != "" {
		return cfg.LoginURL
	}
	return "/login"
}
