package pages

import (
	"slices"
	"strings"
	"time"

	"task_manager_app_go/models"
	"task_manager_app_go/services"
)

// DashboardPage holds the data for the dashboard page
type DashboardPage struct {
	View  *services.DashboardView
	Error string
	Now   time.Time
}

// SelectUsersView holds the data for the assign users widget
type SelectUsersView struct {
	Users []models.User
	// Selected is the committed selection, Pending the one being edited in
	// the modal. Done commits Pending, Cancel drops it.
	Selected  []string
	Pending   []string
	Open      bool
	CSRFToken string
}

// SelectedUsers returns the committed users in listing order
func (v SelectUsersView) SelectedUsers() []models.User {
	return services.SelectedUserObjects(v.Users, v.Selected)
}

// IsPending reports whether userID is checked in the modal
func (v SelectUsersView) IsPending(userID string) bool {
	return slices.Contains(v.Pending, userID)
}

// SelectionValue is the hidden input value carrying the selection
func (v SelectUsersView) SelectionValue() string {
	return strings.Join(v.Selected, ",")
}

// PendingValue is Pending in the same comma separated form
func (v SelectUsersView) PendingValue() string {
	return strings.Join(v.Pending, ",")
}
