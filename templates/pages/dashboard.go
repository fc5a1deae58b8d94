package pages

import (
	"context"
	"io"

	"task_manager_app_go/middleware"
	"task_manager_app_go/templates/components"
	"task_manager_app_go/templates/partials"

	"github.com/a-h/templ"
)

// Dashboard renders the user dashboard
func Dashboard(page DashboardPage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewHTMLWriter(w)
		nonce := middleware.GetNonce(ctx)

		h.Raw(`<div class="my-5">`)

		if page.Error != "" {
			h.Raw(`<div class="bg-red-500/10 border border-red-500/20 text-red-500 px-4 py-3 rounded-xl text-sm" role="alert">`)
			h.Text(page.Error)
			h.Raw(`</div>`)
		}

		view := page.View
		if view == nil {
			h.Raw(`</div>`)
			return h.Err()
		}

		if view.Stale {
			h.Raw(`<div class="bg-amber-50 border border-amber-200 text-amber-700 px-4 py-3 rounded-xl text-sm mb-4" data-stale="true">`)
			h.Text("The task service is unreachable. Showing data from " + partials.FormatRelativeTime(view.FetchedAt, page.Now) + ".")
			h.Raw(`</div>`)
		}

		h.Raw(`<div class="bg-white p-6 rounded-2xl shadow-md shadow-gray-100 border border-gray-200/50"><div>`)
		h.Raw(`<h2 class="text-xl md:text-2xl">`)
		h.Text("Good day! " + view.UserName)
		h.Raw(`</h2><p class="text-xs md:text-[13px] text-gray-400 mt-1.5">`)
		h.Text(view.Date)
		h.Raw(`</p></div>`)

		h.Raw(`<div class="grid grid-cols-2 sm:grid-cols-2 md:grid-cols-4 gap-3 md:gap-6 mt-5">`)
		for _, card := range view.InfoCards {
			h.Raw(`<div class="flex items-center gap-3"><div`)
			h.Attr("class", "w-2 md:w-2 h-3 md:h-5 rounded-full "+card.Color)
			h.Raw(`></div><p class="text-xs md:text-[14px] text-gray-500"><span class="text-sm md:text-[15px] text-black font-semibold">`)
			h.Text(card.Value)
			h.Raw(`</span> `)
			h.Text(card.Label)
			h.Raw(`</p></div>`)
		}
		h.Raw(`</div></div>`)

		h.Raw(`<div class="grid grid-cols-1 md:grid-cols-2 gap-6 my-4 md:my-6">`)
		chartCard(h, nonce, "Task Distribution", "task-distribution", map[string]any{
			"type":   "pie",
			"data":   view.Distribution,
			"colors": view.DistributionColors,
		})
		chartCard(h, nonce, "Task Priority Levels", "task-priority", map[string]any{
			"type": "bar",
			"data": view.Priority,
		})

		h.Raw(`<div class="md:col-span-2 bg-white p-6 rounded-2xl shadow-md shadow-gray-100 border border-gray-200/50">`)
		h.Raw(`<div class="flex items-center justify-between"><h5 class="text-lg">Recent Tasks</h5>`)
		h.Raw(`<a href="/user/tasks" class="flex items-center gap-3 text-[12px] font-medium text-gray-700 hover:text-primary bg-gray-50 hover:bg-blue-50 px-4 py-1.5 rounded-lg border border-gray-200/50 cursor-pointer">See All</a></div>`)
		if h.Err() == nil {
			if err := partials.TaskListTable(view.RecentTasks, page.Now).Render(ctx, w); err != nil {
				return err
			}
		}
		h.Raw(`</div></div></div>`)

		return h.Err()
	})
}

// chartCard writes a chart container with its data embedded as JSON
func chartCard(h *components.HTMLWriter, nonce, title, id string, data map[string]any) {
	h.Raw(`<div class="bg-white p-6 rounded-2xl shadow-md shadow-gray-100 border border-gray-200/50"><div class="flex items-center justify-between"><h5 class="font-medium">`)
	h.Text(title)
	h.Raw(`</h5></div><div class="mt-6 h-[325px]"`)
	h.Attr("id", id)
	h.Attr("data-chart", id+"-data")
	h.Raw(`></div><script type="application/json"`)
	h.Attr("id", id+"-data")
	if nonce != "" {
		h.Attr("nonce", nonce)
	}
	h.Raw(`>`)
	h.Raw(components.JSON(data))
	h.Raw(`</script></div>`)
}
