package handlers

import (
	"log"
	"net/http"
	"slices"

	"task_manager_app_go/middleware"
	"task_manager_app_go/models"
	"task_manager_app_go/services"
	"task_manager_app_go/templates/pages"

	"github.com/labstack/echo/v4"
)

// SelectUsersHandler renders the assign users widget. The query carries the
// committed selection, and while the modal is open the pending one.
func (h *Handler) SelectUsersHandler(c echo.Context) error {
	users, err := h.listUsers(c)
	if err != nil {
		return err
	}

	view := pages.SelectUsersView{
		Users:     users,
		Selected:  knownIDs(users, services.ParseSelection(c.QueryParam("selected"))),
		Open:      c.QueryParam("open") == "1",
		CSRFToken: middleware.GetCSRFToken(c),
	}
	if view.Open {
		view.Pending = knownIDs(users, services.ParseSelection(c.QueryParam("pending")))
	}

	return render(c, pages.SelectUsers(view))
}

// ToggleUserHandler checks or unchecks a user in the open modal
func (h *Handler) ToggleUserHandler(c echo.Context) error {
	userID := c.FormValue("user_id")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	users, err := h.listUsers(c)
	if err != nil {
		return err
	}
	if !slices.ContainsFunc(users, func(u models.User) bool { return u.ID == userID }) {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown user")
	}

	pending := knownIDs(users, services.ParseSelection(c.FormValue("pending")))
	view := pages.SelectUsersView{
		Users:     users,
		Selected:  knownIDs(users, services.ParseSelection(c.FormValue("selected"))),
		Pending:   services.ToggleUserSelection(pending, userID),
		Open:      true,
		CSRFToken: middleware.GetCSRFToken(c),
	}

	return render(c, pages.SelectUsers(view))
}

func (h *Handler) listUsers(c echo.Context) ([]models.User, error) {
	users, err := h.Users.GetAllUsers(c.Request().Context(), middleware.GetAPIToken(c))
	if err != nil {
		status, message := apiErrorStatus(err)
		if status == http.StatusUnauthorized {
			c.Response().Header().Set("HX-Redirect", loginURL(c))
		} else {
			log.Printf("[WARNING] Failed to list users: %v", err)
		}
		return nil, echo.NewHTTPError(status, message)
	}
	return users, nil
}

// knownIDs drops ids that are not in the user listing
func knownIDs(users []models.User, ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if slices.ContainsFunc(users, func(u models.User) bool { return u.ID == id }) {
			out = append(out, id)
		}
	}
	return out
}
