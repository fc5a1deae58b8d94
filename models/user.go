package models

import "strings"

// User is a member of the task manager as returned by the task API.
// Users are owned by the remote API and never stored locally.
type User struct {
	ID              string `json:"_id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Role            string `json:"role,omitempty"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`

	// Per-user counters, only present on the users listing
	PendingTasks    int `json:"pendingTasks,omitempty"`
	InProgressTasks int `json:"inProgressTasks,omitempty"`
	CompletedTasks  int `json:"completedTasks,omitempty"`
}

// DisplayName returns the name, falling back to the email
func (u *User) DisplayName() string {
	if name := strings.TrimSpace(u.Name); name != "" {
		return name
	}
	return u.Email
}
