package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"task_manager_app_go/middleware"
	"task_manager_app_go/services"
	"task_manager_app_go/templates/components"
	"task_manager_app_go/templates/pages"

	"github.com/labstack/echo/v4"
)

const dashboardTitle = "Dashboard | Task Manager"

// DashboardHandler renders the user dashboard
func (h *Handler) DashboardHandler(c echo.Context) error {
	ctx := c.Request().Context()
	user := middleware.GetCurrentUser(c)
	nonce := middleware.GetNonce(ctx)

	view, err := h.Dashboards.Load(ctx, middleware.GetAPIToken(c), user)
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			return c.Redirect(http.StatusSeeOther, loginURL(c))
		}
		log.Printf("[WARNING] Failed to load dashboard: %v", err)
		status, message := apiErrorStatus(err)
		page := pages.DashboardPage{Error: message, Now: h.now()}
		return renderStatus(c, status, components.Layout(dashboardTitle, nonce, pages.Dashboard(page)))
	}

	page := pages.DashboardPage{View: view, Now: h.now()}
	return render(c, components.Layout(dashboardTitle, nonce, pages.Dashboard(page)))
}

// GetDashboardHandler returns the dashboard view model as JSON
func (h *Handler) GetDashboardHandler(c echo.Context) error {
	view, err := h.Dashboards.Load(c.Request().Context(), middleware.GetAPIToken(c), middleware.GetCurrentUser(c))
	if err != nil {
		status, message := apiErrorStatus(err)
		if status >= http.StatusInternalServerError {
			log.Printf("[WARNING] Failed to load dashboard: %v", err)
		}
		return c.JSON(status, map[string]string{"error": message})
	}
	return c.JSON(http.StatusOK, view)
}

// ExportDashboardHandler downloads the dashboard as a spreadsheet
func (h *Handler) ExportDashboardHandler(c echo.Context) error {
	view, err := h.Dashboards.Load(c.Request().Context(), middleware.GetAPIToken(c), middleware.GetCurrentUser(c))
	if err != nil {
		status, message := apiErrorStatus(err)
		return echo.NewHTTPError(status, message)
	}

	file, err := services.ExportDashboardXLSX(view)
	if err != nil {
		log.Printf("[WARNING] Failed to export dashboard: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to export dashboard")
	}
	defer file.Close()

	filename := fmt.Sprintf("dashboard-%s.xlsx", view.FetchedAt.Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)

	if _, err := file.WriteTo(c.Response().Writer); err != nil {
		log.Printf("[WARNING] Failed to write dashboard export: %v", err)
		return err
	}
	return nil
}
