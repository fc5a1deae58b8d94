package partials

import (
	"fmt"
	"time"

	"task_manager_app_go/models"
)

// FormatRelativeTime formats t relative to now
func FormatRelativeTime(t, now time.Time) string {
	duration := now.Sub(t)

	if duration < time.Minute {
		return "just now"
	} else if duration < time.Hour {
		minutes := int(duration.Minutes())
		if minutes == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", minutes)
	} else if duration < 24*time.Hour {
		hours := int(duration.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	} else if duration < 7*24*time.Hour {
		days := int(duration.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	} else {
		return t.Format("Jan 2, 2006")
	}
}

// StatusBadgeClass returns the badge colours of a task status
func StatusBadgeClass(status string) string {
	switch status {
	case models.TaskStatusCompleted:
		return "bg-green-100 text-green-500 border border-green-200"
	case models.TaskStatusPending:
		return "bg-purple-100 text-purple-500 border border-purple-200"
	case models.TaskStatusInProgress:
		return "bg-cyan-100 text-cyan-500 border border-cyan-200"
	default:
		return "bg-gray-100 text-gray-500 border border-gray-200"
	}
}

// PriorityBadgeClass returns the badge colours of a task priority
func PriorityBadgeClass(priority string) string {
	switch priority {
	case models.TaskPriorityHigh:
		return "bg-red-100 text-red-500 border border-red-200"
	case models.TaskPriorityMedium:
		return "bg-orange-100 text-orange-500 border border-orange-200"
	case models.TaskPriorityLow:
		return "bg-green-100 text-green-500 border border-green-200"
	default:
		return "bg-gray-100 text-gray-500 border border-gray-200"
	}
}
