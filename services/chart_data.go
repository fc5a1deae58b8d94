package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"task_manager_app_go/models"
)

// ErrInvalidInput is returned when the dashboard payload is not an object
var ErrInvalidInput = errors.New("invalid input: dashboard statistics must be an object")

// Chart labels, in render and legend order
const (
	LabelPending    = "Pending"
	LabelInProgress = "In Progress"
	LabelCompleted  = "Completed"
	LabelLow        = "Low"
	LabelMedium     = "Medium"
	LabelHigh       = "High"
)

// ProjectDistribution returns the task distribution chart data in the fixed
// order Pending, In Progress, Completed. Missing counts are 0.
func ProjectDistribution(stats *models.DashboardStatistics) ([]models.ChartSlice, error) {
	if stats == nil {
		return nil, ErrInvalidInput
	}

	var counts models.StatusCounts
	if stats.Charts != nil {
		counts = stats.Charts.TaskDistribution
	}

	return []models.ChartSlice{
		{Label: LabelPending, Value: int64(counts.Pending)},
		{Label: LabelInProgress, Value: int64(counts.InProgress)},
		{Label: LabelCompleted, Value: int64(counts.Completed)},
	}, nil
}

// ProjectPriority returns the priority chart data in the fixed order
// Low, Medium, High. Missing counts are 0.
func ProjectPriority(stats *models.DashboardStatistics) ([]models.ChartSlice, error) {
	if stats == nil {
		return nil, ErrInvalidInput
	}

	var counts models.PriorityCounts
	if stats.Charts != nil {
		counts = stats.Charts.TaskPriorityLevels
	}

	return []models.ChartSlice{
		{Label: LabelLow, Value: int64(counts.Low)},
		{Label: LabelMedium, Value: int64(counts.Medium)},
		{Label: LabelHigh, Value: int64(counts.High)},
	}, nil
}

// DecodeDashboardStatistics parses a dashboard payload.
// The top-level value must be a JSON object. Nested fields that are missing,
// null or of an unexpected shape are left at their zero value.
func DecodeDashboardStatistics(raw []byte) (*models.DashboardStatistics, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrInvalidInput
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	stats := &models.DashboardStatistics{}

	if rawCharts, ok := fields["charts"]; ok && isJSONObject(rawCharts) {
		var chartFields map[string]json.RawMessage
		if err := json.Unmarshal(rawCharts, &chartFields); err == nil {
			charts := &models.DashboardCharts{}
			decodeObject(chartFields["taskDistribution"], &charts.TaskDistribution)
			decodeObject(chartFields["taskPriorityLevels"], &charts.TaskPriorityLevels)
			stats.Charts = charts
		}
	}

	if rawStatistics, ok := fields["statistics"]; ok && isJSONObject(rawStatistics) {
		statistics := &models.TaskStatistics{}
		decodeObject(rawStatistics, statistics)
		stats.Statistics = statistics
	}

	stats.RecentTasks = decodeTasks(fields["recentTasks"])

	return stats, nil
}

// decodeObject fills dst from an object, leaving it zeroed otherwise
func decodeObject[T any](raw json.RawMessage, dst *T) {
	if !isJSONObject(raw) {
		return
	}
	var decoded T
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return
	}
	*dst = decoded
}

// decodeTasks keeps every well-formed task and skips the rest
func decodeTasks(raw json.RawMessage) []models.Task {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}

	tasks := make([]models.Task, 0, len(items))
	for _, item := range items {
		if !isJSONObject(item) {
			continue
		}
		var task models.Task
		if err := json.Unmarshal(item, &task); err != nil {
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks
}

func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
