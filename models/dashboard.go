package models

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"time"
)

// Task status values as returned by the task API
const (
	TaskStatusPending    = "Pending"
	TaskStatusInProgress = "In Progress"
	TaskStatusCompleted  = "Completed"
)

// Task priority values
const (
	TaskPriorityLow    = "Low"
	TaskPriorityMedium = "Medium"
	TaskPriorityHigh   = "High"
)

// Count is a task counter from the dashboard payload.
// Decoding never fails: missing, null and non-numeric values become 0.
type Count int64

func (c *Count) UnmarshalJSON(data []byte) error {
	*c = 0

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	text := string(data)
	if data[0] == '"' {
		unquoted, err := strconv.Unquote(text)
		if err != nil {
			return nil
		}
		text = strings.TrimSpace(unquoted)
	}

	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		*c = Count(n)
		return nil
	}
	// out of int64 range (and NaN) stays 0 rather than wrapping
	if f, err := strconv.ParseFloat(text, 64); err == nil && f >= math.MinInt64 && f < math.MaxInt64 {
		*c = Count(int64(f))
	}
	return nil
}

// StatusCounts maps completion status to number of tasks
type StatusCounts struct {
	All        Count `json:"All"`
	Pending    Count `json:"Pending"`
	InProgress Count `json:"InProgress"`
	Completed  Count `json:"Completed"`
}

// PriorityCounts maps priority level to number of tasks
type PriorityCounts struct {
	Low    Count `json:"Low"`
	Medium Count `json:"Medium"`
	High   Count `json:"High"`
}

type DashboardCharts struct {
	TaskDistribution   StatusCounts   `json:"taskDistribution"`
	TaskPriorityLevels PriorityCounts `json:"taskPriorityLevels"`
}

// TaskStatistics is the summary block some API versions send next to the charts
type TaskStatistics struct {
	TotalTasks     Count `json:"totalTasks"`
	PendingTasks   Count `json:"pendingTasks"`
	CompletedTasks Count `json:"completedTasks"`
	OverdueTasks   Count `json:"overdueTasks"`
}

// DashboardStatistics is the payload of the user dashboard endpoint.
// Every field is optional; it is treated as read-only once decoded.
type DashboardStatistics struct {
	Statistics  *TaskStatistics  `json:"statistics,omitempty"`
	Charts      *DashboardCharts `json:"charts,omitempty"`
	RecentTasks []Task           `json:"recentTasks"`
}

// Task is a task row as listed in the dashboard's recent tasks
type Task struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Progress    int        `json:"progress,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// IsOverdue reports whether the task is past its due date and not completed
func (t *Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.Status != TaskStatusCompleted && t.DueDate.Before(now)
}

// ChartSlice is one labelled value of a chart series
type ChartSlice struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}
