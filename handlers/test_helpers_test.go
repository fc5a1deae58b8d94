package handlers

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"task_manager_app_go/config"
	"task_manager_app_go/middleware"
	"task_manager_app_go/models"
	"task_manager_app_go/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testNow = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

const testPayload = `{
	"charts": {
		"taskDistribution": {"All": 2500, "Pending": 1200, "InProgress": 300, "Completed": 1000},
		"taskPriorityLevels": {"Low": 4, "Medium": 8, "High": 2}
	},
	"recentTasks": [
		{"_id": "t1", "title": "Quarterly review", "status": "Pending", "priority": "High", "createdAt": "2026-10-14T08:00:00Z"}
	]
}`

func setupTestDB(t *testing.T) *gorm.DB {
	// Unique shared memory name isolates tests
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, testDB.AutoMigrate(&models.DashboardSnapshot{}))
	return testDB
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	c.Set(middleware.ContextKeyConfig, &config.Config{
		Environment: "test",
		LoginURL:    "/login",
	})

	return e, c, rec
}

// authenticate sets what RequireAPIToken would have stored
func authenticate(c echo.Context, user *models.User) {
	c.Set(middleware.ContextKeyUser, user)
	c.Set(middleware.ContextKeyToken, "test-token")
}

type fakeDashboards struct {
	view *services.DashboardView
	err  error
}

func (f *fakeDashboards) Load(_ context.Context, token string, user *models.User) (*services.DashboardView, error) {
	if user == nil || token == "" {
		return nil, services.ErrUnauthorized
	}
	return f.view, f.err
}

type fakeUsers struct {
	users []models.User
	err   error
}

func (f *fakeUsers) GetAllUsers(context.Context, string) ([]models.User, error) {
	return f.users, f.err
}

func testUsers() []models.User {
	return []models.User{
		{ID: "u1", Name: "Ada", Email: "ada@example.com"},
		{ID: "u2", Name: "Grace", Email: "grace@example.com"},
		{ID: "u3", Name: "Linus", Email: "linus@example.com"},
	}
}

func testView(t *testing.T) *services.DashboardView {
	t.Helper()
	stats, err := services.DecodeDashboardStatistics([]byte(testPayload))
	require.NoError(t, err)
	view, err := services.BuildDashboardView(&models.User{ID: "u1", Name: "Ada"}, stats, testNow)
	require.NoError(t, err)
	return view
}
