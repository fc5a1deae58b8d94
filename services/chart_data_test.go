package services

import (
	"fmt"
	"sync"
	"testing"

	"task_manager_app_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectDistribution(t *testing.T) {
	t.Run("Empty payload defaults to zero", func(t *testing.T) {
		got, err := ProjectDistribution(&models.DashboardStatistics{})
		require.NoError(t, err)
		assert.Equal(t, []models.ChartSlice{
			{Label: "Pending", Value: 0},
			{Label: "In Progress", Value: 0},
			{Label: "Completed", Value: 0},
		}, got)
	})

	t.Run("Order is fixed regardless of magnitude", func(t *testing.T) {
		stats, err := DecodeDashboardStatistics([]byte(`{"charts":{"taskDistribution":{"Completed":12,"InProgress":3,"Pending":5}}}`))
		require.NoError(t, err)

		got, err := ProjectDistribution(stats)
		require.NoError(t, err)
		assert.Equal(t, []models.ChartSlice{
			{Label: "Pending", Value: 5},
			{Label: "In Progress", Value: 3},
			{Label: "Completed", Value: 12},
		}, got)
	})

	t.Run("All is not part of the chart", func(t *testing.T) {
		stats := &models.DashboardStatistics{Charts: &models.DashboardCharts{
			TaskDistribution: models.StatusCounts{All: 20, Pending: 20},
		}}

		got, err := ProjectDistribution(stats)
		require.NoError(t, err)
		assert.Len(t, got, 3)
		assert.Equal(t, int64(20), got[0].Value)
	})

	t.Run("Nil input is rejected", func(t *testing.T) {
		got, err := ProjectDistribution(nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Nil(t, got)
	})
}

func TestProjectPriority(t *testing.T) {
	t.Run("Partial payload", func(t *testing.T) {
		stats, err := DecodeDashboardStatistics([]byte(`{"charts":{"taskPriorityLevels":{"High":2}}}`))
		require.NoError(t, err)

		got, err := ProjectPriority(stats)
		require.NoError(t, err)
		assert.Equal(t, []models.ChartSlice{
			{Label: "Low", Value: 0},
			{Label: "Medium", Value: 0},
			{Label: "High", Value: 2},
		}, got)
	})

	t.Run("Missing charts", func(t *testing.T) {
		got, err := ProjectPriority(&models.DashboardStatistics{})
		require.NoError(t, err)
		assert.Equal(t, []string{"Low", "Medium", "High"}, labels(got))
	})

	t.Run("Nil input is rejected", func(t *testing.T) {
		_, err := ProjectPriority(nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestProjectorsAreIdempotent(t *testing.T) {
	stats, err := DecodeDashboardStatistics([]byte(`{"charts":{"taskDistribution":{"Pending":1,"InProgress":2,"Completed":3},"taskPriorityLevels":{"Low":4,"Medium":5,"High":6}}}`))
	require.NoError(t, err)
	before := *stats.Charts

	first, err := ProjectDistribution(stats)
	require.NoError(t, err)
	second, err := ProjectDistribution(stats)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	firstPriority, err := ProjectPriority(stats)
	require.NoError(t, err)
	secondPriority, err := ProjectPriority(stats)
	require.NoError(t, err)
	assert.Equal(t, firstPriority, secondPriority)

	// input untouched
	assert.Equal(t, before, *stats.Charts)
}

func TestProjectorsConcurrent(t *testing.T) {
	stats, err := DecodeDashboardStatistics([]byte(`{"charts":{"taskDistribution":{"All":6,"Pending":1,"InProgress":2,"Completed":3},"taskPriorityLevels":{"Low":4,"Medium":5,"High":6}}}`))
	require.NoError(t, err)

	wantDistribution, err := ProjectDistribution(stats)
	require.NoError(t, err)
	wantPriority, err := ProjectPriority(stats)
	require.NoError(t, err)

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers*2)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				distribution, err := ProjectDistribution(stats)
				if err != nil || !assert.ObjectsAreEqual(wantDistribution, distribution) {
					errs <- fmt.Errorf("distribution mismatch: %v %v", distribution, err)
					return
				}
				priority, err := ProjectPriority(stats)
				if err != nil || !assert.ObjectsAreEqual(wantPriority, priority) {
					errs <- fmt.Errorf("priority mismatch: %v %v", priority, err)
					return
				}
				if got := FormatThousands("1234567.50"); got != "1,234,567.50" {
					errs <- fmt.Errorf("format mismatch: %s", got)
					return
				}
				if !IsValidEmail("ada@example.com") || IsValidEmail("ada@example") {
					errs <- fmt.Errorf("email check changed between calls")
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestDecodeDashboardStatistics(t *testing.T) {
	t.Run("Rejects non-object payloads", func(t *testing.T) {
		for _, raw := range []string{`[]`, `[{"charts":{}}]`, `"charts"`, `42`, `true`, `null`, ``, `   `, `{"charts":`} {
			_, err := DecodeDashboardStatistics([]byte(raw))
			assert.ErrorIs(t, err, ErrInvalidInput, "payload %q", raw)
		}
	})

	t.Run("Empty object", func(t *testing.T) {
		stats, err := DecodeDashboardStatistics([]byte(`{}`))
		require.NoError(t, err)
		assert.Nil(t, stats.Charts)
		assert.Empty(t, stats.RecentTasks)
	})

	t.Run("Wrongly shaped nested fields default to zero", func(t *testing.T) {
		stats, err := DecodeDashboardStatistics([]byte(`{
			"charts": {"taskDistribution": [1, 2, 3], "taskPriorityLevels": {"Low": "7", "Medium": null, "High": {"x": 1}}},
			"recentTasks": "none"
		}`))
		require.NoError(t, err)
		require.NotNil(t, stats.Charts)
		assert.Equal(t, models.StatusCounts{}, stats.Charts.TaskDistribution)
		assert.Equal(t, models.PriorityCounts{Low: 7}, stats.Charts.TaskPriorityLevels)
		assert.Nil(t, stats.RecentTasks)
	})

	t.Run("Charts that are not an object are ignored", func(t *testing.T) {
		stats, err := DecodeDashboardStatistics([]byte(`{"charts": 5}`))
		require.NoError(t, err)
		assert.Nil(t, stats.Charts)

		got, err := ProjectDistribution(stats)
		require.NoError(t, err)
		assert.Equal(t, int64(0), got[0].Value)
	})

	t.Run("Counts outside int64 range default to zero", func(t *testing.T) {
		stats, err := DecodeDashboardStatistics([]byte(`{
			"charts": {
				"taskDistribution": {"Pending": 1e30, "InProgress": -1e30, "Completed": "9.3e18"},
				"taskPriorityLevels": {"Low": 12.9, "Medium": -4e18, "High": 1e308}
			}
		}`))
		require.NoError(t, err)

		got, err := ProjectDistribution(stats)
		require.NoError(t, err)
		assert.Equal(t, []models.ChartSlice{
			{Label: "Pending", Value: 0},
			{Label: "In Progress", Value: 0},
			{Label: "Completed", Value: 0},
		}, got)

		priority, err := ProjectPriority(stats)
		require.NoError(t, err)
		assert.Equal(t, []models.ChartSlice{
			{Label: "Low", Value: 12},
			{Label: "Medium", Value: -4000000000000000000},
			{Label: "High", Value: 0},
		}, priority)
	})

	t.Run("Full payload", func(t *testing.T) {
		stats, err := DecodeDashboardStatistics([]byte(`{
			"statistics": {"totalTasks": 10, "pendingTasks": 4, "completedTasks": 6, "overdueTasks": 1},
			"charts": {
				"taskDistribution": {"All": 10, "Pending": 4, "InProgress": 0, "Completed": 6},
				"taskPriorityLevels": {"Low": 3, "Medium": 5, "High": 2}
			},
			"recentTasks": [
				{"_id": "t1", "title": "Write report", "status": "Pending", "priority": "High", "createdAt": "2026-10-01T10:00:00Z"},
				{"_id": 7, "title": "broken"},
				{"_id": "t2", "title": "Review", "status": "Completed", "priority": "Low", "createdAt": "2026-10-02T10:00:00Z"}
			]
		}`))
		require.NoError(t, err)
		assert.Equal(t, models.Count(10), stats.Statistics.TotalTasks)
		assert.Equal(t, models.Count(10), stats.Charts.TaskDistribution.All)
		assert.Equal(t, models.Count(5), stats.Charts.TaskPriorityLevels.Medium)
		require.Len(t, stats.RecentTasks, 2)
		assert.Equal(t, "t1", stats.RecentTasks[0].ID)
		assert.Equal(t, "t2", stats.RecentTasks[1].ID)
	})
}

func labels(slices []models.ChartSlice) []string {
	out := make([]string, len(slices))
	for i, s := range slices {
		out[i] = s.Label
	}
	return out
}
