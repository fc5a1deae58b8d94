package pages

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"task_manager_app_go/middleware"
	"task_manager_app_go/models"
	"task_manager_app_go/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

func testView(t *testing.T) *services.DashboardView {
	t.Helper()
	stats := &models.DashboardStatistics{
		Charts: &models.DashboardCharts{
			TaskDistribution:   models.StatusCounts{All: 1500, Pending: 700, InProgress: 300, Completed: 500},
			TaskPriorityLevels: models.PriorityCounts{Low: 2, Medium: 5, High: 1},
		},
		RecentTasks: []models.Task{
			{ID: "t1", Title: "Prepare <b>report</b>", Status: models.TaskStatusPending, Priority: models.TaskPriorityHigh, CreatedAt: testNow},
		},
	}
	view, err := services.BuildDashboardView(&models.User{ID: "u1", Name: "Ada"}, stats, testNow)
	require.NoError(t, err)
	return view
}

func render(t *testing.T, ctx context.Context, c interface {
	Render(context.Context, io.Writer) error
}) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(ctx, &buf))
	return buf.String()
}

func TestDashboard(t *testing.T) {
	t.Run("FullPage", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), middleware.NonceKey, "abc123")
		out := render(t, ctx, Dashboard(DashboardPage{View: testView(t), Now: testNow}))

		assert.Contains(t, out, "Good day! Ada")
		assert.Contains(t, out, "Thursday 15th Oct 2026")
		assert.Contains(t, out, "1,500</span> Total Tasks")
		assert.Contains(t, out, "700</span> Pending Tasks")
		assert.Contains(t, out, "Task Distribution")
		assert.Contains(t, out, "Task Priority Levels")
		assert.Contains(t, out, `nonce="abc123"`)
		assert.Contains(t, out, `{"label":"Pending","value":700}`)
		assert.Contains(t, out, "Prepare report")
		assert.Contains(t, out, `href="/user/tasks"`)
		assert.NotContains(t, out, `data-stale="true"`)

		// distribution slices keep projector order
		pending := strings.Index(out, `"label":"Pending"`)
		inProgress := strings.Index(out, `"label":"In Progress"`)
		completed := strings.Index(out, `"label":"Completed"`)
		assert.True(t, pending < inProgress && inProgress < completed)
	})

	t.Run("Stale", func(t *testing.T) {
		view := testView(t)
		view.Stale = true
		view.FetchedAt = testNow.Add(-2 * time.Hour)

		out := render(t, context.Background(), Dashboard(DashboardPage{View: view, Now: testNow}))
		assert.Contains(t, out, `data-stale="true"`)
		assert.Contains(t, out, "2 hours ago")
		assert.NotContains(t, out, "nonce=")
	})

	t.Run("ErrorOnly", func(t *testing.T) {
		out := render(t, context.Background(), Dashboard(DashboardPage{Error: "Task service unavailable", Now: testNow}))
		assert.Contains(t, out, "Task service unavailable")
		assert.NotContains(t, out, "Good day!")
	})
}

func testUsers() []models.User {
	return []models.User{
		{ID: "u1", Name: "Ada", Email: "ada@example.com"},
		{ID: "u2", Name: "Grace", Email: "grace@example.com", ProfileImageURL: "https://cdn.example.com/grace.png"},
		{ID: "u3", Name: "Linus", Email: "linus@example.com"},
		{ID: "u4", Name: "Ken", Email: "ken@example.com"},
		{ID: "u5", Name: "Rob", Email: "rob@example.com"},
	}
}

func TestSelectUsers(t *testing.T) {
	t.Run("NothingSelected", func(t *testing.T) {
		out := render(t, context.Background(), SelectUsers(SelectUsersView{Users: testUsers()}))

		assert.Contains(t, out, "Assign Users")
		assert.Contains(t, out, `name="assignedTo" value=""`)
		assert.NotContains(t, out, "Select Team Members")
	})

	t.Run("AvatarGroupOverflow", func(t *testing.T) {
		v := SelectUsersView{Users: testUsers(), Selected: []string{"u5", "u1", "u2", "u3"}}
		out := render(t, context.Background(), SelectUsers(v))

		assert.NotContains(t, out, "Assign Users")
		assert.Equal(t, 3, strings.Count(out, "<img "))
		assert.Contains(t, out, "+1")
		assert.Contains(t, out, "https://i.pravatar.cc/150?u=u1")
		assert.Contains(t, out, "https://cdn.example.com/grace.png")
		assert.Contains(t, out, `value="u5,u1,u2,u3"`)
	})

	t.Run("ModalOpen", func(t *testing.T) {
		v := SelectUsersView{
			Users:     testUsers(),
			Selected:  []string{"u1"},
			Pending:   []string{"u1", "u3"},
			Open:      true,
			CSRFToken: "tok",
		}
		out := render(t, context.Background(), SelectUsers(v))

		assert.Contains(t, out, "Select Team Members")
		assert.Equal(t, 2, strings.Count(out, " checked"))
		assert.Contains(t, out, "CANCEL")
		assert.Contains(t, out, "DONE")
		assert.Contains(t, out, `hx-get="/htmx/users/select?selected=u1%2Cu3"`)
		assert.Contains(t, out, `hx-get="/htmx/users/select?selected=u1"`)
		assert.Contains(t, out, "X-CSRF-Token")
	})
}

func TestSelectUsersView(t *testing.T) {
	v := SelectUsersView{Users: testUsers(), Selected: []string{"u3", "u1"}, Pending: []string{"u2"}}

	selected := v.SelectedUsers()
	require.Len(t, selected, 2)
	assert.Equal(t, "u1", selected[0].ID)
	assert.Equal(t, "u3", selected[1].ID)

	assert.True(t, v.IsPending("u2"))
	assert.False(t, v.IsPending("u1"))
	assert.Equal(t, "u3,u1", v.SelectionValue())
	assert.Equal(t, "u2", v.PendingValue())
}
