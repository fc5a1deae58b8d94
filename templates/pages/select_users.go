package pages

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"task_manager_app_go/models"
	"task_manager_app_go/services"
	"task_manager_app_go/templates/components"

	"github.com/a-h/templ"
)

const (
	selectUsersID   = "select-users"
	selectUsersPath = "/htmx/users/select"
)

// SelectUsers renders the assign users widget with its modal
func SelectUsers(v SelectUsersView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewHTMLWriter(w)

		h.Raw(`<div`)
		h.Attr("id", selectUsersID)
		h.Attr("hx-target", "#"+selectUsersID)
		h.Raw(` hx-swap="outerHTML" class="space-y-4 mt-2">`)
		h.Raw(`<input type="hidden" name="assignedTo"`)
		h.Attr("value", v.SelectionValue())
		h.Raw(`>`)

		selected := v.SelectedUsers()
		openURL := widgetURL(v.SelectionValue(), v.SelectionValue(), true)
		if len(selected) == 0 {
			h.Raw(`<button type="button" class="card-btn"`)
			h.Attr("hx-get", openURL)
			h.Raw(`>Assign Users</button>`)
		} else {
			avatars := make([]string, 0, len(selected))
			for _, u := range selected {
				avatars = append(avatars, services.AvatarURL(u))
			}
			avatarGroup(h, services.BuildAvatarGroup(avatars, services.DefaultMaxVisibleAvatars), openURL)
		}

		if v.Open {
			selectModal(h, v)
		}

		h.Raw(`</div>`)
		return h.Err()
	})
}

func avatarGroup(h *components.HTMLWriter, group services.AvatarGroup, openURL string) {
	h.Raw(`<div class="flex items-center cursor-pointer"`)
	h.Attr("hx-get", openURL)
	h.Raw(`>`)
	for i, src := range group.Visible {
		h.Raw(`<img class="w-9 h-9 rounded-full border-2 border-white -ml-3 first:ml-0"`)
		h.Attr("src", src)
		h.Attr("alt", "Avatar "+strconv.Itoa(i+1))
		h.Raw(`>`)
	}
	if label := group.OverflowLabel(); label != "" {
		h.Raw(`<div class="w-9 h-9 flex items-center justify-center bg-blue-50 text-sm font-medium rounded-full border-2 border-white -ml-3">`)
		h.Text(label)
		h.Raw(`</div>`)
	}
	h.Raw(`</div>`)
}

func selectModal(h *components.HTMLWriter, v SelectUsersView) {
	h.Raw(`<div class="fixed inset-0 z-50 flex justify-center items-center w-full h-full bg-black/20" role="dialog" aria-modal="true">`)
	h.Raw(`<div class="relative p-4 w-full max-w-2xl max-h-full"><div class="relative bg-white rounded-lg shadow-sm">`)
	h.Raw(`<div class="flex items-center justify-between p-4 md:p-5 border-b border-gray-200 rounded-t"><h3 class="text-lg font-medium text-gray-900">Select Team Members</h3></div>`)
	h.Raw(`<div class="p-4 md:p-5 space-y-4 h-[60vh] overflow-y-auto">`)

	for _, u := range v.Users {
		userRow(h, v, u)
	}
	if len(v.Users) == 0 {
		h.Raw(`<p class="text-sm text-gray-500">No users found</p>`)
	}

	h.Raw(`</div><div class="flex justify-end gap-4 pt-4 p-4">`)
	h.Raw(`<button type="button" class="card-btn"`)
	h.Attr("hx-get", widgetURL(v.SelectionValue(), "", false))
	h.Raw(`>CANCEL</button>`)
	h.Raw(`<button type="button" class="card-btn-fill"`)
	h.Attr("hx-get", widgetURL(v.PendingValue(), "", false))
	h.Raw(`>DONE</button>`)
	h.Raw(`</div></div></div></div>`)
}

func userRow(h *components.HTMLWriter, v SelectUsersView, u models.User) {
	h.Raw(`<div class="flex items-center gap-4 p-3 border-b border-gray-200">`)
	h.Raw(`<img class="w-10 h-10 rounded-full"`)
	h.Attr("src", services.AvatarURL(u))
	h.Attr("alt", services.CleanText(u.DisplayName()))
	h.Raw(`><div class="flex-1"><p class="font-medium text-gray-800">`)
	h.Text(services.CleanText(u.Name))
	h.Raw(`</p><p class="text-[13px] text-gray-500">`)
	h.Text(u.Email)
	h.Raw(`</p></div>`)

	h.Raw(`<input type="checkbox" class="w-4 h-4 text-primary bg-gray-100 border-gray-300 rounded-sm outline-none"`)
	h.Attr("hx-post", selectUsersPath+"/toggle")
	h.Attr("hx-vals", components.JSON(map[string]string{
		"selected": v.SelectionValue(),
		"pending":  v.PendingValue(),
		"user_id":  u.ID,
	}))
	if v.CSRFToken != "" {
		h.Attr("hx-headers", components.JSON(map[string]string{"X-CSRF-Token": v.CSRFToken}))
	}
	if v.IsPending(u.ID) {
		h.Raw(` checked`)
	}
	h.Raw(`></div>`)
}

// widgetURL links back to the widget with the given selections
func widgetURL(selected, pending string, open bool) string {
	q := url.Values{}
	q.Set("selected", selected)
	if open {
		q.Set("pending", pending)
		q.Set("open", "1")
	}
	return selectUsersPath + "?" + q.Encode()
}
