package services

import (
	"html"
	"net/url"
	"slices"
	"strings"

	"task_manager_app_go/models"

	"github.com/microcosm-cc/bluemonday"
)

const (
	// AvatarOrigin serves the placeholder avatars
	AvatarOrigin = "https://i.pravatar.cc"
	// DefaultAvatarBaseURL generates a stable placeholder avatar per user id
	DefaultAvatarBaseURL = AvatarOrigin + "/150?u="
	// DefaultMaxVisibleAvatars is how many avatars an avatar group shows
	DefaultMaxVisibleAvatars = 3
)

var textPolicy = bluemonday.StrictPolicy()

// CleanText strips any markup from text coming from the task API and returns
// plain text, ready to be escaped by the template
func CleanText(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

// ToggleUserSelection adds userID to the selection or removes it if present.
// The input slice is not modified.
func ToggleUserSelection(selected []string, userID string) []string {
	if slices.Contains(selected, userID) {
		out := make([]string, 0, len(selected))
		for _, id := range selected {
			if id != userID {
				out = append(out, id)
			}
		}
		return out
	}

	out := make([]string, 0, len(selected)+1)
	out = append(out, selected...)
	return append(out, userID)
}

// SelectedUserObjects returns the users whose ids are selected, in the order
// the API listed them
func SelectedUserObjects(all []models.User, selected []string) []models.User {
	out := make([]models.User, 0, len(selected))
	for _, u := range all {
		if slices.Contains(selected, u.ID) {
			out = append(out, u)
		}
	}
	return out
}

// AvatarURL returns the user's profile image or a generated placeholder
func AvatarURL(u models.User) string {
	if img := strings.TrimSpace(u.ProfileImageURL); img != "" {
		return img
	}
	return DefaultAvatarBaseURL + url.QueryEscape(u.ID)
}

// AvatarGroup is the compact avatar row shown for assigned users
type AvatarGroup struct {
	Visible  []string
	Overflow int
}

// OverflowLabel renders the hidden avatar count, e.g. "+2"
func (g AvatarGroup) OverflowLabel() string {
	if g.Overflow <= 0 {
		return ""
	}
	return "+" + FormatThousands(g.Overflow)
}

// BuildAvatarGroup keeps the first maxVisible avatars and counts the rest.
// A non-positive maxVisible falls back to DefaultMaxVisibleAvatars.
func BuildAvatarGroup(avatars []string, maxVisible int) AvatarGroup {
	if maxVisible <= 0 {
		maxVisible = DefaultMaxVisibleAvatars
	}
	if len(avatars) <= maxVisible {
		return AvatarGroup{Visible: slices.Clone(avatars)}
	}
	return AvatarGroup{
		Visible:  slices.Clone(avatars[:maxVisible]),
		Overflow: len(avatars) - maxVisible,
	}
}

// ParseSelection reads a comma separated id list, dropping blanks and duplicates
func ParseSelection(raw string) []string {
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		id := strings.TrimSpace(part)
		if id != "" && !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	return ids
}
